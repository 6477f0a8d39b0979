package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/aretw0/guts/pkg/observability"
	"github.com/aretw0/guts/pkg/schema"
	"github.com/aretw0/guts/pkg/schemafile"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testRegistry() *schema.Registry {
	reg := schema.NewRegistry()
	reg.Define("Duration").
		Prop("unit", schema.String(schema.Optional(), schema.XMLAttribute())).
		Prop("value", schema.Float(schema.XMLContent())).
		MustRegister()
	return reg
}

func newTestServer(t *testing.T) (*Server, http.Handler) {
	t.Helper()
	s := NewServer(testRegistry(), WithMetrics(observability.NewMetrics()))
	return s, s.Routes()
}

func do(h http.Handler, method, target, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func TestGetHealth(t *testing.T) {
	_, h := newTestServer(t)
	w := do(h, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

func TestGetKinds(t *testing.T) {
	_, h := newTestServer(t)
	w := do(h, http.MethodGet, "/kinds", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

	doc, err := schemafile.Parse(w.Body.Bytes(), schemafile.JSON)
	require.NoError(t, err)
	require.Len(t, doc.Kinds, 1)
	assert.Equal(t, "Duration", doc.Kinds[0].Name)
}

func TestValidate(t *testing.T) {
	_, h := newTestServer(t)

	t.Run("Regularized", func(t *testing.T) {
		w := do(h, http.MethodPost, "/validate?format=xml", `<duration unit="s">10</duration>`)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		assert.Equal(t, "application/xml", w.Header().Get("Content-Type"))
		assert.Equal(t, `<duration unit="s">10.0</duration>`, w.Body.String())
	})

	t.Run("Failures", func(t *testing.T) {
		w := do(h, http.MethodPost, "/validate", "!Duration\nunit: s\n")
		require.Equal(t, http.StatusUnprocessableEntity, w.Code)

		var resp FailureResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		require.Len(t, resp.Failures, 1)
		assert.Equal(t, "value", resp.Failures[0].Path)
		assert.Equal(t, "missing required property", resp.Failures[0].Reason)
	})

	t.Run("Strict", func(t *testing.T) {
		w := do(h, http.MethodPost, "/validate?regularize=false", "!Duration\nvalue: '10.5'\n")
		require.Equal(t, http.StatusUnprocessableEntity, w.Code, w.Body.String())
		var resp FailureResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		require.Len(t, resp.Failures, 1)
		assert.Equal(t, "value", resp.Failures[0].Path)

		w = do(h, http.MethodPost, "/validate", "!Duration\nvalue: '10.5'\n")
		assert.Equal(t, http.StatusOK, w.Code, w.Body.String())

		w = do(h, http.MethodPost, "/validate?regularize=maybe", "!Duration\nvalue: 1.0\n")
		require.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
	})

	t.Run("Malformed", func(t *testing.T) {
		w := do(h, http.MethodPost, "/validate?format=xml", `<duration`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("Unknown Kind", func(t *testing.T) {
		w := do(h, http.MethodPost, "/validate", "!Nope\nvalue: 1.0\n")
		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	})

	t.Run("Unknown Format", func(t *testing.T) {
		w := do(h, http.MethodPost, "/validate?format=json", `{}`)
		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	})
}

func TestConvert(t *testing.T) {
	_, h := newTestServer(t)

	w := do(h, http.MethodPost, "/convert?from=yaml&to=xml", "!Duration\nunit: s\nvalue: 10.5\n")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, `<duration unit="s">10.5</duration>`, w.Body.String())

	w = do(h, http.MethodPost, "/convert?from=xml&to=yaml", `<duration>2.5</duration>`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "application/yaml", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Body.String(), "value: 2.5")
}

func TestDocuments(t *testing.T) {
	_, h := newTestServer(t)

	w := do(h, http.MethodPut, "/documents/d1?format=xml", `<duration unit="ms">5</duration>`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = do(h, http.MethodGet, "/documents/d1?format=xml", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, `<duration unit="ms">5.0</duration>`, w.Body.String())

	w = do(h, http.MethodPost, "/documents", "!Duration\nvalue: 1.0\n")
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var created DocumentRef
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.NotEmpty(t, created.Id)
	assert.Equal(t, "/documents/"+created.Id, w.Header().Get("Location"))

	w = do(h, http.MethodGet, "/documents", "")
	require.Equal(t, http.StatusOK, w.Code)
	var listed DocumentList
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &listed))
	assert.ElementsMatch(t, []string{"d1", created.Id}, listed.Ids)

	w = do(h, http.MethodDelete, "/documents/d1", "")
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = do(h, http.MethodGet, "/documents/d1", "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = do(h, http.MethodPut, "/documents/d2", "!Duration\nunit: s\n")
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestMetricsEndpoint(t *testing.T) {
	_, h := newTestServer(t)
	do(h, http.MethodPost, "/validate", "!Duration\nvalue: 1.0\n")
	do(h, http.MethodPost, "/validate", "!Duration\nunit: s\n")

	w := do(h, http.MethodGet, "/metrics", "")
	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, `guts_validations_total{kind="Duration",result="ok"} 1`)
	assert.Contains(t, body, `guts_validations_total{kind="Duration",result="invalid"} 1`)
	assert.Contains(t, body, `guts_codec_operations_total{codec="yaml",op="load",result="ok"} 2`)
}

func TestCORSPreflight(t *testing.T) {
	_, h := newTestServer(t)
	w := do(h, http.MethodOptions, "/validate", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestOpenAPIDocument(t *testing.T) {
	swagger, err := GetSwagger()
	require.NoError(t, err)
	require.NoError(t, swagger.Validate(context.Background()))
	assert.NotNil(t, swagger.Paths.Find("/documents/{id}"))

	_, h := newTestServer(t)
	w := do(h, http.MethodGet, "/openapi.yaml", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/yaml", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Body.String(), "getDocument")

	w = do(h, http.MethodGet, "/swagger", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "/openapi.yaml")
}

func TestServerImplementsEveryRoute(t *testing.T) {
	_, h := newTestServer(t)
	for _, tc := range []struct{ method, target string }{
		{http.MethodGet, "/info"},
		{http.MethodGet, "/documents"},
		{http.MethodDelete, "/documents/missing"},
	} {
		w := do(h, tc.method, tc.target, "")
		assert.NotEqual(t, http.StatusNotImplemented, w.Code, tc.target)
		assert.NotEqual(t, http.StatusMethodNotAllowed, w.Code, tc.target)
	}
}

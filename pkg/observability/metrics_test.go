package observability_test

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/aretw0/guts/pkg/observability"
	"github.com/aretw0/guts/pkg/schema"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResultOf(t *testing.T) {
	invalid := &schema.ValidationError{Errors: []*schema.FieldError{{Path: "a", Reason: "missing required property"}}}

	assert.Equal(t, observability.ResultOK, observability.ResultOf(nil))
	assert.Equal(t, observability.ResultInvalid, observability.ResultOf(invalid))
	assert.Equal(t, observability.ResultInvalid, observability.ResultOf(fmt.Errorf("load: %w", invalid)))
	assert.Equal(t, observability.ResultError, observability.ResultOf(errors.New("boom")))
}

func TestMetrics_Counts(t *testing.T) {
	m := observability.NewMetrics()

	m.ObserveValidation("Duration", nil)
	m.ObserveValidation("Duration", nil)
	m.ObserveValidation("Duration", schema.ErrValidation)
	m.ObserveCodec("yaml", "dump", time.Now(), nil)
	m.ObserveCodec("xml", "load", time.Now(), schema.ErrMalformed)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.Validations.WithLabelValues("Duration", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Validations.WithLabelValues("Duration", "invalid")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.CodecOps.WithLabelValues("yaml", "dump", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.CodecOps.WithLabelValues("xml", "load", "error")))
	assert.Equal(t, 2, testutil.CollectAndCount(m.CodecDurations))
}

func TestMetrics_NilIsNoop(t *testing.T) {
	var m *observability.Metrics
	assert.NotPanics(t, func() {
		m.ObserveValidation("X", nil)
		m.ObserveCodec("yaml", "dump", time.Now(), nil)
	})
}

func TestMetrics_Handler(t *testing.T) {
	m := observability.NewMetrics()
	m.ObserveValidation("Duration", nil)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `guts_validations_total{kind="Duration",result="ok"} 1`)
}

func TestNewMetricsWith_DuplicateRegistration(t *testing.T) {
	reg := prometheus.NewRegistry()
	_, err := observability.NewMetricsWith(reg)
	require.NoError(t, err)

	_, err = observability.NewMetricsWith(reg)
	assert.Error(t, err)
}

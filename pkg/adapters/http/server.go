package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/aretw0/guts"
	"github.com/aretw0/guts/pkg/adapters/memory"
	"github.com/aretw0/guts/pkg/observability"
	"github.com/aretw0/guts/pkg/ports"
	"github.com/aretw0/guts/pkg/schema"
	"github.com/aretw0/guts/pkg/schemafile"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

//go:generate go tool oapi-codegen -package http -generate types,chi-server,spec -o api.gen.go ../../../api/openapi.yaml

// MaxBodyBytes bounds request bodies.
const MaxBodyBytes = 4 << 20

// Server validates, converts and stores records of a registry over HTTP.
type Server struct {
	Registry *schema.Registry
	Store    ports.DocumentStore
	Locker   ports.DistributedLocker
	Metrics  *observability.Metrics
	Logger   *slog.Logger
	LockTTL  time.Duration
}

var _ ServerInterface = (*Server)(nil)

// Option configures a Server.
type Option func(*Server)

// WithStore backs /documents with store. The default is an in-memory store.
func WithStore(store ports.DocumentStore) Option {
	return func(s *Server) { s.Store = store }
}

// WithLocker guards document writes with locker.
func WithLocker(locker ports.DistributedLocker) Option {
	return func(s *Server) { s.Locker = locker }
}

// WithMetrics records into m and serves it on /metrics.
func WithMetrics(m *observability.Metrics) Option {
	return func(s *Server) { s.Metrics = m }
}

// WithLogger sets the request logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) { s.Logger = logger }
}

// NewServer creates a Server for reg with defaults for everything not set.
func NewServer(reg *schema.Registry, opts ...Option) *Server {
	s := &Server{Registry: reg, LockTTL: 30 * time.Second}
	for _, opt := range opts {
		opt(s)
	}
	if s.Registry == nil {
		s.Registry = schema.DefaultRegistry()
	}
	if s.Store == nil {
		s.Store = memory.NewStore()
	}
	if s.Locker == nil {
		s.Locker = memory.NewLocker()
	}
	if s.Metrics == nil {
		s.Metrics = observability.NewMetrics()
	}
	if s.Logger == nil {
		s.Logger = slog.Default()
	}
	return s
}

// NewHandler creates the HTTP handler for a registry.
func NewHandler(reg *schema.Registry, opts ...Option) http.Handler {
	return NewServer(reg, opts...).Routes()
}

// Routes builds the router.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(enableCORS)

	r.Get("/openapi.yaml", func(w http.ResponseWriter, r *http.Request) {
		spec, err := rawSpec()
		if err != nil {
			s.fail(w, r, "OpenAPI", err)
			return
		}
		w.Header().Set("Content-Type", "text/yaml")
		_, _ = w.Write(spec)
	})
	r.Get("/swagger", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(swaggerHTML))
	})
	r.Method(http.MethodGet, "/metrics", s.Metrics.Handler())

	return HandlerWithOptions(s, ChiServerOptions{
		BaseRouter: r,
		ErrorHandlerFunc: func(w http.ResponseWriter, r *http.Request, err error) {
			s.fail(w, r, "BindParams", fmt.Errorf("%w: %v", errBadRequest, err))
		},
	})
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

const swaggerHTML = `
<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="utf-8" />
    <meta name="viewport" content="width=device-width, initial-scale=1" />
    <title>guts API Documentation</title>
    <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@5.11.0/swagger-ui.css" />
</head>
<body>
<div id="swagger-ui"></div>
<script src="https://unpkg.com/swagger-ui-dist@5.11.0/swagger-ui-bundle.js" crossorigin></script>
<script>
    window.onload = () => {
    window.ui = SwaggerUIBundle({
        url: '/openapi.yaml',
        dom_id: '#swagger-ui',
    });
    };
</script>
</body>
</html>
`

// GetHealth handles the GET /health request.
func (s *Server) GetHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{Status: "ok"})
}

// GetInfo handles the GET /info request.
func (s *Server) GetInfo(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, InfoResponse{
		App:     "guts-http",
		Version: strings.TrimSpace(guts.Version),
	})
}

// GetKinds handles the GET /kinds request: the registry as a declaration
// document.
func (s *Server) GetKinds(w http.ResponseWriter, r *http.Request) {
	data, err := schemafile.Marshal(schemafile.FromRegistry(s.Registry), schemafile.JSON)
	if err != nil {
		s.fail(w, r, "GetKinds", err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write(data)
}

// Validate handles POST /validate?format=yaml|xml&regularize=true. It replies
// with the canonical dump of the record, or 422 with the failures.
func (s *Server) Validate(w http.ResponseWriter, r *http.Request, params ValidateParams) {
	format, err := formatOf(params.Format, guts.YAML)
	if err != nil {
		s.fail(w, r, "Validate", err)
		return
	}
	regularize := params.Regularize == nil || *params.Regularize

	obj, err := s.decode(w, r, format)
	if err != nil {
		s.fail(w, r, "Validate", err)
		return
	}
	if err := s.validate(obj, regularize); err != nil {
		s.fail(w, r, "Validate", err)
		return
	}
	s.writeRecord(w, r, http.StatusOK, obj, format)
}

// Convert handles POST /convert?from=yaml&to=xml.
func (s *Server) Convert(w http.ResponseWriter, r *http.Request, params ConvertParams) {
	from, err := formatOf(params.From, guts.YAML)
	if err != nil {
		s.fail(w, r, "Convert", err)
		return
	}
	to, err := formatOf(params.To, guts.XML)
	if err != nil {
		s.fail(w, r, "Convert", err)
		return
	}

	obj, err := s.decode(w, r, from)
	if err != nil {
		s.fail(w, r, "Convert", err)
		return
	}
	if err := s.validate(obj, true); err != nil {
		s.fail(w, r, "Convert", err)
		return
	}
	s.writeRecord(w, r, http.StatusOK, obj, to)
}

// ListDocuments handles GET /documents.
func (s *Server) ListDocuments(w http.ResponseWriter, r *http.Request) {
	ids, err := s.Store.List(r.Context())
	if err != nil {
		s.fail(w, r, "ListDocuments", err)
		return
	}
	if ids == nil {
		ids = []string{}
	}
	writeJSON(w, http.StatusOK, DocumentList{Ids: ids})
}

// CreateDocument handles POST /documents, storing the record under a new id.
func (s *Server) CreateDocument(w http.ResponseWriter, r *http.Request, params CreateDocumentParams) {
	id := ports.NewID()
	if err := s.store(w, r, id, params.Format); err != nil {
		s.fail(w, r, "CreateDocument", err)
		return
	}
	w.Header().Set("Location", "/documents/"+id)
	writeJSON(w, http.StatusCreated, DocumentRef{Id: id})
}

// PutDocument handles PUT /documents/{id}.
func (s *Server) PutDocument(w http.ResponseWriter, r *http.Request, id string, params PutDocumentParams) {
	if err := s.store(w, r, id, params.Format); err != nil {
		s.fail(w, r, "PutDocument", err)
		return
	}
	writeJSON(w, http.StatusOK, DocumentRef{Id: id})
}

// GetDocument handles GET /documents/{id}?format=yaml|xml.
func (s *Server) GetDocument(w http.ResponseWriter, r *http.Request, id string, params GetDocumentParams) {
	format, err := formatOf(params.Format, guts.YAML)
	if err != nil {
		s.fail(w, r, "GetDocument", err)
		return
	}
	obj, err := s.Store.Load(r.Context(), id)
	if err != nil {
		s.fail(w, r, "GetDocument", err)
		return
	}
	s.writeRecord(w, r, http.StatusOK, obj, format)
}

// DeleteDocument handles DELETE /documents/{id}.
func (s *Server) DeleteDocument(w http.ResponseWriter, r *http.Request, id string) {
	err := s.withLock(r.Context(), id, func(ctx context.Context) error {
		return s.Store.Delete(ctx, id)
	})
	if err != nil {
		s.fail(w, r, "DeleteDocument", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// store decodes, regularizes and saves the request body under id.
func (s *Server) store(w http.ResponseWriter, r *http.Request, id string, p *Format) error {
	format, err := formatOf(p, guts.YAML)
	if err != nil {
		return err
	}
	obj, err := s.decode(w, r, format)
	if err != nil {
		return err
	}
	if err := s.validate(obj, true); err != nil {
		return err
	}
	return s.withLock(r.Context(), id, func(ctx context.Context) error {
		return s.Store.Save(ctx, id, obj)
	})
}

func (s *Server) withLock(ctx context.Context, id string, fn func(ctx context.Context) error) error {
	unlock, err := s.Locker.Lock(ctx, "doc:"+id, s.LockTTL)
	if err != nil {
		return fmt.Errorf("failed to lock document %q: %w", id, err)
	}
	defer func() {
		if err := unlock(context.WithoutCancel(ctx)); err != nil {
			s.Logger.Warn("Failed to release document lock", "id", id, "error", err)
		}
	}()
	return fn(ctx)
}

func (s *Server) decode(w http.ResponseWriter, r *http.Request, format guts.Format) (*schema.Object, error) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, MaxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errBadRequest, err)
	}
	start := time.Now()
	obj, err := guts.Decode(body, format, guts.Options{Registry: s.Registry})
	s.Metrics.ObserveCodec(string(format), "load", start, err)
	return obj, err
}

func (s *Server) validate(obj *schema.Object, regularize bool) error {
	err := obj.Validate(schema.RegularizeIf(regularize))
	s.Metrics.ObserveValidation(obj.Kind().Name(), err)
	return err
}

func (s *Server) writeRecord(w http.ResponseWriter, r *http.Request, status int, obj *schema.Object, format guts.Format) {
	start := time.Now()
	data, err := guts.Encode(obj, format, guts.Options{Registry: s.Registry})
	s.Metrics.ObserveCodec(string(format), "dump", start, err)
	if err != nil {
		s.fail(w, r, "Encode", err)
		return
	}
	w.Header().Set("Content-Type", format.ContentType())
	w.WriteHeader(status)
	_, _ = w.Write(data)
}

var errBadRequest = errors.New("bad request")

// statusOf maps the error taxonomy onto HTTP statuses.
func statusOf(err error) int {
	switch {
	case errors.Is(err, ports.ErrDocumentNotFound):
		return http.StatusNotFound
	case errors.Is(err, schema.ErrValidation),
		errors.Is(err, schema.ErrArgument),
		errors.Is(err, schema.ErrLookup):
		return http.StatusUnprocessableEntity
	case errors.Is(err, schema.ErrMalformed), errors.Is(err, errBadRequest):
		return http.StatusBadRequest
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) fail(w http.ResponseWriter, r *http.Request, op string, err error) {
	status := statusOf(err)
	if status >= http.StatusInternalServerError {
		s.Logger.Error(op+" failed", "error", err, "path", r.URL.Path)
	} else {
		s.Logger.Debug(op+" rejected", "error", err, "status", status)
	}

	resp := FailureResponse{Error: err.Error()}
	for _, fe := range schema.FieldErrors(err) {
		resp.Failures = append(resp.Failures, FieldFailure{Path: fe.Path, Reason: fe.Reason})
	}
	if len(resp.Failures) > 0 {
		resp.Error = schema.ErrValidation.Error()
	}
	writeJSON(w, status, resp)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("Response encode failed", "error", err)
	}
}

func formatOf(p *Format, def guts.Format) (guts.Format, error) {
	if p == nil || *p == "" {
		return def, nil
	}
	return guts.ParseFormat(string(*p))
}

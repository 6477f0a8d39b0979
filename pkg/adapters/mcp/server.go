package mcp

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/aretw0/guts"
	"github.com/aretw0/guts/pkg/observability"
	"github.com/aretw0/guts/pkg/schema"
	"github.com/aretw0/guts/pkg/schemafile"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// KindsURI is the resource holding the loaded kinds as a YAML declaration document.
const KindsURI = "guts://kinds"

// Failure is one field that did not validate.
type Failure struct {
	Path   string `json:"path" jsonschema_description:"Dotted path of the field, empty for the record itself"`
	Reason string `json:"reason" jsonschema_description:"Why the value was rejected"`
}

// ValidateArgs are the arguments of the validate tool.
type ValidateArgs struct {
	Document   string `json:"document"`
	Format     string `json:"format"`
	Regularize bool   `json:"regularize"`
}

// ValidateResult reports the outcome of the validate tool. Canonical holds
// the record re-encoded in its input format when it is valid.
type ValidateResult struct {
	Valid     bool      `json:"valid" jsonschema_description:"Whether the record validated"`
	Kind      string    `json:"kind,omitempty" jsonschema_description:"Kind of the decoded record"`
	Canonical string    `json:"canonical,omitempty" jsonschema_description:"The record after regularization"`
	Failures  []Failure `json:"failures,omitempty" jsonschema_description:"Field failures, when invalid"`
}

// ConvertArgs are the arguments of the convert tool.
type ConvertArgs struct {
	Document   string `json:"document"`
	From       string `json:"from"`
	To         string `json:"to"`
	Regularize bool   `json:"regularize"`
}

// ConvertResult carries the converted record.
type ConvertResult struct {
	Kind     string `json:"kind" jsonschema_description:"Kind of the converted record"`
	Document string `json:"document" jsonschema_description:"The record in the target format"`
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the logger. Defaults to slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(s *Server) { s.logger = l }
}

// WithMetrics records validations and codec calls.
func WithMetrics(m *observability.Metrics) Option {
	return func(s *Server) { s.metrics = m }
}

// Server exposes a schema registry as MCP tools and resources.
type Server struct {
	reg       *schema.Registry
	logger    *slog.Logger
	metrics   *observability.Metrics
	mcpServer *server.MCPServer
}

// NewServer creates an MCP server over reg. A nil registry means schema.DefaultRegistry().
func NewServer(reg *schema.Registry, opts ...Option) *Server {
	if reg == nil {
		reg = schema.DefaultRegistry()
	}
	s := &Server{
		reg:    reg,
		logger: slog.Default(),
		mcpServer: server.NewMCPServer("guts-mcp", strings.TrimSpace(guts.Version),
			server.WithToolCapabilities(false),
			server.WithResourceCapabilities(false, false),
		),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.registerTools()
	s.registerResources()
	return s
}

// MCPServer returns the underlying server, for in-process clients.
func (s *Server) MCPServer() *server.MCPServer { return s.mcpServer }

// ServeStdio speaks the stdio transport over in and out until ctx is done
// or in is closed.
func (s *Server) ServeStdio(ctx context.Context, in io.Reader, out io.Writer) error {
	stdio := server.NewStdioServer(s.mcpServer)
	stdio.SetErrorLogger(slog.NewLogLogger(s.logger.Handler(), slog.LevelError))
	s.logger.Info("MCP server listening (stdio)")
	return stdio.Listen(ctx, in, out)
}

// Handler returns the streamable HTTP transport mounted at /mcp.
func (s *Server) Handler() http.Handler {
	return server.NewStreamableHTTPServer(s.mcpServer, server.WithEndpointPath("/mcp"))
}

// ServeHTTP serves the streamable HTTP transport on ln until ctx is done.
func (s *Server) ServeHTTP(ctx context.Context, ln net.Listener) error {
	mux := http.NewServeMux()
	mux.Handle("/mcp", corsMiddleware(s.Handler()))
	httpServer := &http.Server{Handler: mux, ReadHeaderTimeout: 10 * time.Second}

	serverErrors := make(chan error, 1)
	go func() {
		s.logger.Info("MCP server listening (HTTP)", "address", ln.Addr().String())
		serverErrors <- httpServer.Serve(ln)
	}()

	select {
	case err := <-serverErrors:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		s.logger.Info("Shutdown signal received, stopping MCP server")
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
		return nil
	}
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, Mcp-Session-Id")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) registerTools() {
	validateTool := mcp.NewTool("validate",
		mcp.WithDescription("Decode a YAML or XML record and validate it against its kind."),
		mcp.WithString("document", mcp.Required(), mcp.Description("The record text")),
		mcp.WithString("format", mcp.Description("yaml or xml"), mcp.Enum("yaml", "xml"), mcp.DefaultString("yaml")),
		mcp.WithBoolean("regularize", mcp.Description("Coerce loosely typed values before checking"), mcp.DefaultBool(true)),
		mcp.WithOutputSchema[ValidateResult](),
	)
	s.mcpServer.AddTool(validateTool, mcp.NewStructuredToolHandler(s.handleValidate))

	convertTool := mcp.NewTool("convert",
		mcp.WithDescription("Convert a record between YAML and XML, validating it on the way."),
		mcp.WithString("document", mcp.Required(), mcp.Description("The record text")),
		mcp.WithString("from", mcp.Description("Input format"), mcp.Enum("yaml", "xml"), mcp.DefaultString("yaml")),
		mcp.WithString("to", mcp.Required(), mcp.Description("Output format"), mcp.Enum("yaml", "xml")),
		mcp.WithBoolean("regularize", mcp.Description("Coerce loosely typed values before checking"), mcp.DefaultBool(true)),
		mcp.WithOutputSchema[ConvertResult](),
	)
	s.mcpServer.AddTool(convertTool, mcp.NewStructuredToolHandler(s.handleConvert))

	s.mcpServer.AddTool(mcp.NewTool("list_kinds",
		mcp.WithDescription("List the loaded kinds as a YAML declaration document."),
	), func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		data, err := s.kindsDocument()
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("list kinds failed: %v", err)), nil
		}
		return mcp.NewToolResultText(string(data)), nil
	})
}

func (s *Server) options() guts.Options {
	return guts.Options{Registry: s.reg}
}

func (s *Server) handleValidate(ctx context.Context, request mcp.CallToolRequest, args ValidateArgs) (ValidateResult, error) {
	format, err := parseFormat(args.Format)
	if err != nil {
		return ValidateResult{}, err
	}
	if _, ok := request.GetArguments()["regularize"]; !ok {
		args.Regularize = true
	}

	start := time.Now()
	obj, err := guts.Decode([]byte(args.Document), format, s.options())
	s.metrics.ObserveCodec(string(format), "load", start, err)
	if err != nil {
		return ValidateResult{}, fmt.Errorf("decode failed: %w", err)
	}

	kind := obj.Kind().Name()
	err = obj.Validate(schema.RegularizeIf(args.Regularize))
	s.metrics.ObserveValidation(kind, err)
	if err != nil {
		fields := schema.FieldErrors(err)
		if len(fields) == 0 {
			return ValidateResult{}, err
		}
		s.logger.Debug("MCP validate: record rejected", "kind", kind, "failures", len(fields))
		return ValidateResult{Kind: kind, Failures: failuresOf(fields)}, nil
	}

	out, err := guts.Encode(obj, format, s.options())
	if err != nil {
		return ValidateResult{}, fmt.Errorf("encode failed: %w", err)
	}
	return ValidateResult{Valid: true, Kind: kind, Canonical: string(out)}, nil
}

func (s *Server) handleConvert(ctx context.Context, request mcp.CallToolRequest, args ConvertArgs) (ConvertResult, error) {
	from, err := parseFormat(args.From)
	if err != nil {
		return ConvertResult{}, err
	}
	to, err := guts.ParseFormat(args.To)
	if err != nil {
		return ConvertResult{}, err
	}
	if _, ok := request.GetArguments()["regularize"]; !ok {
		args.Regularize = true
	}

	obj, err := guts.Decode([]byte(args.Document), from, s.options())
	if err != nil {
		return ConvertResult{}, fmt.Errorf("decode failed: %w", err)
	}
	err = obj.Validate(schema.RegularizeIf(args.Regularize))
	s.metrics.ObserveValidation(obj.Kind().Name(), err)
	if err != nil {
		return ConvertResult{}, err
	}

	start := time.Now()
	out, err := guts.Encode(obj, to, s.options())
	s.metrics.ObserveCodec(string(to), "dump", start, err)
	if err != nil {
		return ConvertResult{}, fmt.Errorf("encode failed: %w", err)
	}
	return ConvertResult{Kind: obj.Kind().Name(), Document: string(out)}, nil
}

func (s *Server) registerResources() {
	s.mcpServer.AddResource(mcp.NewResource(KindsURI, "Loaded kinds",
		mcp.WithResourceDescription("Every registered kind as a YAML declaration document"),
		mcp.WithMIMEType("application/yaml"),
	), func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		data, err := s.kindsDocument()
		if err != nil {
			return nil, fmt.Errorf("failed to render kinds: %w", err)
		}
		return []mcp.ResourceContents{
			mcp.TextResourceContents{
				URI:      KindsURI,
				MIMEType: "application/yaml",
				Text:     string(data),
			},
		}, nil
	})
}

func (s *Server) kindsDocument() ([]byte, error) {
	return schemafile.Marshal(schemafile.FromRegistry(s.reg), schemafile.YAML)
}

func parseFormat(name string) (guts.Format, error) {
	if name == "" {
		return guts.YAML, nil
	}
	return guts.ParseFormat(name)
}

func failuresOf(fields []*schema.FieldError) []Failure {
	out := make([]Failure, len(fields))
	for i, fe := range fields {
		out[i] = Failure{Path: fe.Path, Reason: fe.Reason}
	}
	return out
}

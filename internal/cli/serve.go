package cli

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"

	"github.com/aretw0/guts"
	"github.com/aretw0/guts/internal/presentation/tui"
	httpAdapter "github.com/aretw0/guts/pkg/adapters/http"
	"github.com/aretw0/guts/pkg/observability"
)

// Handler builds the HTTP service for the app over backend.
func (a *App) Handler(backend *Backend) http.Handler {
	return httpAdapter.NewHandler(a.Registry,
		httpAdapter.WithStore(backend.Store),
		httpAdapter.WithLocker(backend.Locker),
		httpAdapter.WithLogger(a.Logger),
		httpAdapter.WithMetrics(observability.NewMetrics()),
	)
}

// Serve runs the HTTP service on ln until ctx is done, then shuts down
// gracefully within the configured timeout.
func (a *App) Serve(ctx context.Context, ln net.Listener) error {
	backend, err := OpenBackend(ctx, a.Config.Store, a.Registry)
	if err != nil {
		return err
	}
	defer func() {
		if err := backend.Close(); err != nil {
			a.Logger.Warn("Failed to close store", "error", err)
		}
	}()

	srv := &http.Server{Handler: a.Handler(backend)}
	if tui.IsTerminal(a.Err) {
		tui.PrintBanner(a.Err, strings.TrimSpace(guts.Version))
	}

	// Channel to listen for errors coming from the listener.
	serverErrors := make(chan error, 1)
	go func() {
		a.Logger.Info("Starting guts server", "addr", ln.Addr().String(),
			"store", a.Config.Store.Backend, "kinds", len(a.Registry.Kinds()))
		serverErrors <- srv.Serve(ln)
	}()

	select {
	case err := <-serverErrors:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server error: %w", err)

	case <-ctx.Done():
		a.Logger.Info("Start shutdown")
		timeout := a.Config.Server.ShutdownTimeout
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), timeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			a.Logger.Error("Graceful shutdown did not complete", "timeout", timeout, "error", err)
			if err := srv.Close(); err != nil {
				return fmt.Errorf("error killing server: %w", err)
			}
		}
		a.Logger.Info("Server stopped gracefully")
		return nil
	}
}

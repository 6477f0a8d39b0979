// Package cli implements the guts commands on top of the library packages.
// The cobra wiring in cmd/guts only parses flags and calls into an App.
package cli

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/aretw0/guts/internal/config"
	"github.com/aretw0/guts/internal/logging"
	"github.com/aretw0/guts/pkg/schema"
	"github.com/aretw0/guts/pkg/schemafile"
)

// App carries what every command needs.
type App struct {
	Config   *config.Config
	Registry *schema.Registry
	Logger   *slog.Logger
	In       io.Reader
	Out      io.Writer
	Err      io.Writer
}

// NewApp loads the configured declaration documents into a fresh registry.
func NewApp(cfg *config.Config, in io.Reader, out, errOut io.Writer) (*App, error) {
	level, err := cfg.Level()
	if err != nil {
		return nil, err
	}
	app := &App{
		Config:   cfg,
		Registry: schema.NewRegistry(),
		Logger:   logging.NewTo(errOut, level),
		In:       in,
		Out:      out,
		Err:      errOut,
	}
	for _, path := range cfg.Schemas {
		kinds, err := schemafile.Load(path, app.Registry)
		if err != nil {
			return nil, fmt.Errorf("failed to load schema %s: %w", path, err)
		}
		app.Logger.Debug("Schema loaded", "path", path, "kinds", len(kinds))
	}
	return app, nil
}

// readInput reads a file, or the app's input for "-".
func (a *App) readInput(path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(a.In)
	}
	return os.ReadFile(path)
}

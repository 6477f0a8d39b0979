package cli

import (
	"github.com/aretw0/guts"
	"github.com/aretw0/guts/pkg/schema"
)

// ValidateOptions controls Validate.
type ValidateOptions struct {
	// Format overrides detection by file extension. Required for "-".
	Format string
	// Strict disables regularization.
	Strict bool
}

// Validate checks each input and prints a line per input. It returns
// ErrFailed if any input failed.
func (a *App) Validate(paths []string, opts ValidateOptions) error {
	failed := false
	for _, path := range paths {
		kind, err := a.validateOne(path, opts)
		if err != nil {
			failed = true
			printFailure(a.Out, path, err)
			a.Logger.Debug("Validation failed", "path", path, "error", err)
			continue
		}
		printOK(a.Out, path, kind)
	}
	if failed {
		return ErrFailed
	}
	return nil
}

func (a *App) validateOne(path string, opts ValidateOptions) (string, error) {
	format, err := a.formatFor(path, opts.Format)
	if err != nil {
		return "", err
	}
	data, err := a.readInput(path)
	if err != nil {
		return "", err
	}
	obj, err := guts.Decode(data, format, guts.Options{Registry: a.Registry})
	if err != nil {
		return "", err
	}
	if err := obj.Validate(schema.RegularizeIf(!opts.Strict)); err != nil {
		return obj.Kind().Name(), err
	}
	return obj.Kind().Name(), nil
}

func (a *App) formatFor(path, override string) (guts.Format, error) {
	if override != "" {
		return guts.ParseFormat(override)
	}
	return guts.FormatOfPath(path)
}

package cli

import (
	"fmt"
	"os"

	"github.com/aretw0/guts"
	"github.com/aretw0/guts/pkg/schemafile"
)

// ConvertOptions controls Convert.
type ConvertOptions struct {
	From   string
	To     string
	Output string // empty writes to the app's output
	Strict bool
}

// Convert reads one record and writes it in another format.
func (a *App) Convert(path string, opts ConvertOptions) error {
	from, err := a.formatFor(path, opts.From)
	if err != nil {
		return err
	}
	to, err := guts.ParseFormat(opts.To)
	if err != nil {
		return err
	}
	data, err := a.readInput(path)
	if err != nil {
		return err
	}

	out, err := guts.Convert(data, from, to, !opts.Strict, guts.Options{
		Registry: a.Registry,
		Indent:   a.Config.XML.Indent,
		Header:   a.Config.XML.Header,
	})
	if err != nil {
		printFailure(a.Err, path, err)
		return ErrFailed
	}
	if to == guts.XML {
		out = append(out, '\n')
	}

	if opts.Output == "" {
		_, err = a.Out.Write(out)
		return err
	}
	if err := os.WriteFile(opts.Output, out, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", opts.Output, err)
	}
	a.Logger.Info("Converted", "from", path, "to", opts.Output)
	return nil
}

// Kinds prints the registry as a declaration document.
func (a *App) Kinds(format string) error {
	f := schemafile.Format(format)
	data, err := schemafile.Marshal(schemafile.FromRegistry(a.Registry), f)
	if err != nil {
		return err
	}
	_, err = a.Out.Write(data)
	return err
}

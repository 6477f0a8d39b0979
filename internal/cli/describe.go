package cli

import (
	"fmt"
	"io"

	"github.com/aretw0/guts/internal/presentation/graph"
	"github.com/aretw0/guts/internal/presentation/tui"
	"github.com/aretw0/guts/pkg/schema"
)

// kindsNamed returns the named kinds in order, or every kind when names is
// empty.
func (a *App) kindsNamed(names []string) ([]*schema.Kind, error) {
	if len(names) == 0 {
		return a.Registry.Kinds(), nil
	}
	kinds := make([]*schema.Kind, 0, len(names))
	for _, name := range names {
		k, ok := a.Registry.Kind(name)
		if !ok {
			return nil, fmt.Errorf("%w: unknown kind %q", schema.ErrLookup, name)
		}
		kinds = append(kinds, k)
	}
	return kinds, nil
}

// Describe documents kinds as markdown. On a terminal the markdown is
// rendered with glamour unless raw is set.
func (a *App) Describe(names []string, raw bool) error {
	kinds, err := a.kindsNamed(names)
	if err != nil {
		return err
	}
	md := tui.KindsMarkdown(kinds)
	if raw || !tui.IsTerminal(a.Out) {
		_, err := io.WriteString(a.Out, md)
		return err
	}

	render, err := tui.NewRenderer(tui.Width(a.Out))
	if err != nil {
		return fmt.Errorf("failed to create renderer: %w", err)
	}
	out, err := render(md)
	if err != nil {
		return fmt.Errorf("failed to render markdown: %w", err)
	}
	_, err = io.WriteString(a.Out, out)
	return err
}

// Graph prints a Mermaid flowchart of the loaded kinds. A focus kind is
// highlighted together with its direct neighbours.
func (a *App) Graph(focus string) error {
	kinds := a.Registry.Kinds()
	var overlay *graph.Overlay
	if focus != "" {
		if _, ok := a.Registry.Kind(focus); !ok {
			return fmt.Errorf("%w: unknown kind %q", schema.ErrLookup, focus)
		}
		overlay = &graph.Overlay{Related: graph.Neighbours(kinds, focus), Focus: focus}
	}
	_, err := io.WriteString(a.Out, graph.GenerateMermaid(kinds, overlay))
	return err
}

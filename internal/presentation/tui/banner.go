package tui

import (
	"fmt"
	"io"

	"github.com/muesli/termenv"
)

// PrintBanner writes the guts ASCII art banner and version to w.
func PrintBanner(w io.Writer, version string) {
	p := termenv.ColorProfile()
	lines := []struct{ text, color string }{
		{"   __ _ _   _| |_ ___ ", "#34d399"},
		{"  / _` | | | | __/ __|", "#2dd4bf"},
		{" | (_| | |_| | |_\\__ \\", "#22d3ee"},
		{"  \\__, |\\__,_|\\__|___/", "#38bdf8"},
		{"   __/ |", "#60a5fa"},
		{"  |___/   " + version, "#818cf8"},
	}

	fmt.Fprintln(w)
	for _, l := range lines {
		fmt.Fprintln(w, termenv.String(l.text).Foreground(p.Color(l.color)))
	}
	fmt.Fprintln(w)
}

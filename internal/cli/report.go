package cli

import (
	"errors"
	"fmt"
	"io"

	"github.com/aretw0/guts/pkg/schema"
	"github.com/fatih/color"
)

// ErrFailed is returned when at least one input did not validate. The
// details have already been printed.
var ErrFailed = errors.New("validation failed")

var (
	okColor   = color.New(color.FgGreen, color.Bold)
	failColor = color.New(color.FgRed, color.Bold)
	pathColor = color.New(color.FgYellow)
)

func printOK(w io.Writer, name, kind string) {
	fmt.Fprintf(w, "%s %s (%s)\n", okColor.Sprint("ok"), name, kind)
}

// printFailure renders err, listing field failures one per line.
func printFailure(w io.Writer, name string, err error) {
	fields := schema.FieldErrors(err)
	if len(fields) == 0 {
		fmt.Fprintf(w, "%s %s: %v\n", failColor.Sprint("FAIL"), name, err)
		return
	}
	fmt.Fprintf(w, "%s %s: %d failure(s)\n", failColor.Sprint("FAIL"), name, len(fields))
	for _, fe := range fields {
		where := fe.Path
		if where == "" {
			where = "(root)"
		}
		fmt.Fprintf(w, "  %s: %s\n", pathColor.Sprint(where), fe.Reason)
	}
}

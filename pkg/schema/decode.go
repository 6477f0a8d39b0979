package schema

import (
	"fmt"

	"github.com/mitchellh/mapstructure"
)

// Decode copies the values of o into out, a pointer to a Go struct (or map).
// Struct fields are matched by their `guts` tag, falling back to the field
// name. Nested records decode into nested structs, lists and tuples into
// slices.
//
//	type Duration struct {
//	    Unit  string  `guts:"unit"`
//	    Value float64 `guts:"value"`
//	}
//	var d Duration
//	err := obj.Decode(&d)
func (o *Object) Decode(out any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName: "guts",
		Result:  out,
	})
	if err != nil {
		return fmt.Errorf("failed to create decoder: %w", err)
	}
	if err := dec.Decode(o.Map()); err != nil {
		return fmt.Errorf("%w: decode %s: %v", ErrArgument, o.kind.name, err)
	}
	return nil
}

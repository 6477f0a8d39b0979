package guts_test

import (
	"fmt"

	"github.com/aretw0/guts"
	"github.com/aretw0/guts/pkg/schema"
)

func Example() {
	duration := schema.Define("ExampleDuration").
		Tag("duration").
		Prop("unit", schema.String(schema.Optional(), schema.XMLAttribute())).
		Prop("value", schema.Float(schema.XMLContent())).
		MustRegister()

	d := duration.MustNew(schema.Values{"unit": "s", "value": "10.5"})
	if err := guts.Validate(d, true); err != nil {
		fmt.Println(err)
		return
	}

	out, _ := guts.DumpXML(d)
	fmt.Println(string(out))

	loaded, _ := guts.LoadXML(out)
	fmt.Println(loaded.MustGet("value"))
	// Output:
	// <duration unit="s">10.5</duration>
	// 10.5
}

func Example_validationFailures() {
	point := schema.Define("ExamplePoint").
		Prop("x", schema.Int()).
		Prop("y", schema.Int()).
		MustRegister()

	p := point.MustNew(schema.Values{"x": "one"})
	for _, fe := range schema.FieldErrors(guts.Validate(p, true)) {
		fmt.Println(fe.Path)
	}
	// Output:
	// x
	// y
}

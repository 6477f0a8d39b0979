// Package schema provides a declarative type system for structured records.
//
// Record kinds are declared once with a Builder, listing ordered properties,
// each backed by a Type descriptor:
//
//	duration := schema.Define("Duration").
//	    Tag("duration").
//	    Prop("unit", schema.String(schema.Optional(), schema.XMLAttribute())).
//	    Prop("uncertainty", schema.Float(schema.Optional())).
//	    Prop("value", schema.Float(schema.Optional(), schema.XMLContent())).
//	    MustRegister()
//
//	d := duration.MustNew(schema.Values{"unit": "s", "value": 10.5})
//	if err := d.Validate(); err != nil {
//	    // Handle validation errors
//	}
//
// Validation collects every failure in the value tree and reports them at
// once in a *ValidationError. With Regularize(), loosely typed input ("1",
// 1.0, "2010-01-01 10:20:01") is coerced into the canonical representation
// of each type before being checked again, and the canonical values replace
// the originals when the whole call succeeds.
//
// Canonical representations:
//
//	Bool       bool
//	Int        int64
//	Float      float64
//	Complex    complex128
//	String     string (also Pattern and Choice)
//	Timestamp  float64 seconds since the epoch, UTC
//	ListOf     []any
//	TupleOf    Tuple
//	records    *Object
//
// Recursive schemas use Defer, which names a kind (or a type registered with
// RegisterType) and resolves it on first use:
//
//	node := schema.Define("Node").
//	    Prop("children", schema.ListOf(schema.Defer("Node"))).
//	    MustRegister()
//
// Unions try their members in declaration order. A strict pass runs first;
// when regularizing and no member accepts the value as is, a second pass
// tries coercion with each member in the same order.
package schema

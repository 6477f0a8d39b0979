/*
Package guts is a declarative data-binding engine.

Callers describe records as kinds: named, ordered sets of typed properties.
Values are validated against those descriptions, loosely typed input is
coerced into canonical form (regularization), and records are read from and
written to YAML and XML.

# Concept

A schema is built in a registry, either in Go or from a declaration document
(see package schemafile). Kinds may reference each other, or themselves, by
name; references resolve on first use.

	reg := schema.NewRegistry()
	duration := reg.Define("Duration").
		Prop("unit", schema.String(schema.Optional(), schema.XMLAttribute())).
		Prop("value", schema.Float(schema.XMLContent())).
		MustRegister()

	d := duration.MustNew(schema.Values{"unit": "s", "value": "10.5"})
	if err := d.Validate(schema.Regularize()); err != nil {
		log.Fatal(err)
	}

	out, _ := guts.DumpXML(d)
	// <duration unit="s">10.5</duration>

# Packages

  - schema: types, kinds, records, validation and regularization.
  - yamlcodec and xmlcodec: the two text forms.
  - schemafile: declaration documents in YAML, TOML or JSON.
  - ports and adapters: document stores (memory, file, Redis) and the HTTP service.

This package offers format-agnostic helpers over the codecs, used by the
guts command and the HTTP service.
*/
package guts

// Package yamlcodec reads and writes schema records as YAML.
//
// Records become mappings tagged with their kind name ("!Station"), their
// properties in declaration order. Unset optional properties are omitted.
// Floats always carry a decimal point or exponent, with .inf, -.inf and .nan
// for special values. Timestamps are written as
// "YYYY-MM-DD HH:MM:SS.ffffff" in UTC and complex numbers as "(re+imi)".
//
// Strings that would not survive a plain or block scalar are double-quoted.
//
// Loading does not validate. Scalars keep the type YAML resolves them to, so
// a quoted '10' under a Float property stays a string until Validate is asked
// to regularize. Integers under a Float property and complex or timestamp
// strings are converted to their native form.
package yamlcodec

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/aretw0/guts/pkg/schema"
	"gopkg.in/yaml.v3"
)

// TimestampFormat is the layout timestamps are written with.
const TimestampFormat = "%Y-%m-%d %H:%M:%S.6FRAC"

// Option configures Dump and Load.
type Option func(*options)

type options struct {
	reg *schema.Registry
}

// WithRegistry resolves kind tags in reg instead of the default registry.
func WithRegistry(reg *schema.Registry) Option {
	return func(o *options) { o.reg = reg }
}

func newOptions(opts []Option) *options {
	o := &options{reg: schema.DefaultRegistry()}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Dump renders v, a record or a plain value, as a YAML document.
func Dump(v any, opts ...Option) ([]byte, error) {
	return DumpAll([]any{v}, opts...)
}

// DumpAll renders each value as a document of one YAML stream.
func DumpAll(vs []any, opts ...Option) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	for _, v := range vs {
		node, err := encode(schema.Normalize(v), nil)
		if err != nil {
			return nil, err
		}
		if err := enc.Encode(node); err != nil {
			return nil, fmt.Errorf("failed to encode yaml: %w", err)
		}
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("failed to encode yaml: %w", err)
	}
	return buf.Bytes(), nil
}

// Load parses a single YAML document. Tagged mappings become records of the
// kind named by the tag. An empty document loads as nil.
func Load(data []byte, opts ...Option) (any, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", schema.ErrMalformed, err)
	}
	if doc.Kind == 0 || len(doc.Content) == 0 {
		return nil, nil
	}
	d := &decoder{reg: newOptions(opts).reg}
	return d.decode(doc.Content[0], nil)
}

// LoadAll parses every document of a YAML stream.
func LoadAll(data []byte, opts ...Option) ([]any, error) {
	d := &decoder{reg: newOptions(opts).reg}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	var out []any
	for {
		var doc yaml.Node
		err := dec.Decode(&doc)
		if errors.Is(err, io.EOF) {
			return out, nil
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %v", schema.ErrMalformed, err)
		}
		if len(doc.Content) == 0 {
			out = append(out, nil)
			continue
		}
		v, err := d.decode(doc.Content[0], nil)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
}

// LoadObject is like Load but requires the document to be a record.
func LoadObject(data []byte, opts ...Option) (*schema.Object, error) {
	v, err := Load(data, opts...)
	if err != nil {
		return nil, err
	}
	obj, ok := v.(*schema.Object)
	if !ok {
		return nil, fmt.Errorf("%w: document is not a tagged record (got %T)", schema.ErrArgument, v)
	}
	return obj, nil
}

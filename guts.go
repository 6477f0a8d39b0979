package guts

import (
	"fmt"
	"strings"

	"github.com/aretw0/guts/pkg/schema"
	"github.com/aretw0/guts/pkg/xmlcodec"
	"github.com/aretw0/guts/pkg/yamlcodec"
)

// Format names a record text form.
type Format string

const (
	YAML Format = "yaml"
	XML  Format = "xml"
)

// ParseFormat accepts "yaml", "yml" and "xml" in any case.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "yaml", "yml":
		return YAML, nil
	case "xml":
		return XML, nil
	}
	return "", fmt.Errorf("%w: unknown format %q (want yaml or xml)", schema.ErrArgument, s)
}

// FormatOfPath picks the format from a file extension.
func FormatOfPath(path string) (Format, error) {
	i := strings.LastIndexByte(path, '.')
	if i < 0 {
		return "", fmt.Errorf("%w: cannot infer format of %q", schema.ErrArgument, path)
	}
	return ParseFormat(path[i+1:])
}

// ContentType returns the media type of f.
func (f Format) ContentType() string {
	if f == XML {
		return "application/xml"
	}
	return "application/yaml"
}

// Options controls Decode and Encode.
type Options struct {
	// Registry resolves kinds; nil means schema.DefaultRegistry().
	Registry *schema.Registry
	// Indent is the XML indentation width; 0 writes XML on one line.
	Indent int
	// Header prefixes XML output with a declaration.
	Header bool
}

func (o Options) registry() *schema.Registry {
	if o.Registry == nil {
		return schema.DefaultRegistry()
	}
	return o.Registry
}

// Decode parses a record in format f. The result is not validated.
func Decode(data []byte, f Format, o Options) (*schema.Object, error) {
	switch f {
	case YAML:
		return yamlcodec.LoadObject(data, yamlcodec.WithRegistry(o.registry()))
	case XML:
		return xmlcodec.Load(data, xmlcodec.WithRegistry(o.registry()))
	}
	return nil, fmt.Errorf("%w: unknown format %q", schema.ErrArgument, f)
}

// Encode renders obj in format f.
func Encode(obj *schema.Object, f Format, o Options) ([]byte, error) {
	switch f {
	case YAML:
		return yamlcodec.Dump(obj, yamlcodec.WithRegistry(o.registry()))
	case XML:
		opts := []xmlcodec.Option{xmlcodec.WithRegistry(o.registry()), xmlcodec.WithIndent(o.Indent)}
		if o.Header {
			opts = append(opts, xmlcodec.WithHeader())
		}
		return xmlcodec.Dump(obj, opts...)
	}
	return nil, fmt.Errorf("%w: unknown format %q", schema.ErrArgument, f)
}

// Convert reads a record in one format, validates it (regularizing when
// asked) and writes it in another.
func Convert(data []byte, from, to Format, regularize bool, o Options) ([]byte, error) {
	obj, err := Decode(data, from, o)
	if err != nil {
		return nil, err
	}
	if err := obj.Validate(schema.RegularizeIf(regularize)); err != nil {
		return nil, err
	}
	return Encode(obj, to, o)
}

// Dump renders a record or plain value as YAML.
func Dump(v any) ([]byte, error) { return yamlcodec.Dump(v) }

// Load parses YAML using the default registry.
func Load(data []byte) (any, error) { return yamlcodec.Load(data) }

// DumpXML renders a record as XML.
func DumpXML(obj *schema.Object) ([]byte, error) { return xmlcodec.Dump(obj) }

// LoadXML parses an XML record using the default registry.
func LoadXML(data []byte) (*schema.Object, error) { return xmlcodec.Load(data) }

// Validate checks obj against its kind, regularizing when asked.
func Validate(obj *schema.Object, regularize bool) error {
	return obj.Validate(schema.RegularizeIf(regularize))
}

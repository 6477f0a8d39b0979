// Package schemafile declares schema kinds from YAML, TOML or JSON documents
// and renders registries back into such documents.
//
//	kinds:
//	  - name: Duration
//	    tag: duration
//	    properties:
//	      - {name: unit, type: string, optional: true, xmlstyle: attribute}
//	      - {name: value, type: float, xmlstyle: content}
//	types:
//	  Size: "union(int, choice(small, large))"
//
// Property types are type expressions as understood by schema.ParseType.
package schemafile

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/aretw0/guts/pkg/schema"
	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

// Format names a declaration document encoding.
type Format string

const (
	YAML Format = "yaml"
	TOML Format = "toml"
	JSON Format = "json"
)

// FormatOf picks the format from a file extension.
func FormatOf(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return YAML, nil
	case ".toml":
		return TOML, nil
	case ".json":
		return JSON, nil
	}
	return "", fmt.Errorf("%w: unsupported schema file extension %q", schema.ErrArgument, filepath.Ext(path))
}

// Document is a set of kind and named type declarations.
type Document struct {
	Kinds []schema.KindDecl `json:"kinds" yaml:"kinds" toml:"kinds" mapstructure:"kinds"`
	Types map[string]string `json:"types,omitempty" yaml:"types,omitempty" toml:"types,omitempty" mapstructure:"types"`
}

// Parse decodes a declaration document.
func Parse(data []byte, format Format) (*Document, error) {
	raw := make(map[string]any)
	var err error
	switch format {
	case YAML:
		err = yaml.Unmarshal(data, &raw)
	case TOML:
		err = toml.Unmarshal(data, &raw)
	case JSON:
		err = json.Unmarshal(data, &raw)
	default:
		return nil, fmt.Errorf("%w: unknown format %q", schema.ErrArgument, format)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: failed to parse %s schema: %v", schema.ErrMalformed, format, err)
	}

	var doc Document
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:      &doc,
		ErrorUnused: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create decoder: %w", err)
	}
	if err := dec.Decode(raw); err != nil {
		return nil, fmt.Errorf("%w: %v", schema.ErrSchema, err)
	}
	return &doc, nil
}

// ReadFile reads and parses a declaration document, choosing the format by
// extension.
func ReadFile(path string) (*Document, error) {
	format, err := FormatOf(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read schema file: %w", err)
	}
	return Parse(data, format)
}

// Apply registers the document in reg: named types first, then kinds in
// document order.
func (d *Document) Apply(reg *schema.Registry) ([]*schema.Kind, error) {
	names := make([]string, 0, len(d.Types))
	for name := range d.Types {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		t, err := schema.ParseType(d.Types[name], reg)
		if err != nil {
			return nil, fmt.Errorf("type %s: %w", name, err)
		}
		if err := reg.RegisterType(name, t); err != nil {
			return nil, err
		}
	}

	kinds := make([]*schema.Kind, 0, len(d.Kinds))
	for _, decl := range d.Kinds {
		k, err := reg.Declare(decl)
		if err != nil {
			return nil, err
		}
		kinds = append(kinds, k)
	}
	return kinds, nil
}

// Load reads the file at path and registers its declarations in reg.
func Load(path string, reg *schema.Registry) ([]*schema.Kind, error) {
	doc, err := ReadFile(path)
	if err != nil {
		return nil, err
	}
	return doc.Apply(reg)
}

// FromRegistry collects the declarations of reg. Parents are listed before
// the kinds extending them.
func FromRegistry(reg *schema.Registry) *Document {
	doc := &Document{}
	seen := make(map[*schema.Kind]bool)
	var add func(k *schema.Kind)
	add = func(k *schema.Kind) {
		if seen[k] {
			return
		}
		seen[k] = true
		if p := k.Parent(); p != nil {
			add(p)
		}
		doc.Kinds = append(doc.Kinds, k.Decl())
	}
	for _, k := range reg.Kinds() {
		add(k)
	}

	if types := reg.Types(); len(types) > 0 {
		doc.Types = make(map[string]string, len(types))
		for name, t := range types {
			doc.Types[name] = t.Name()
		}
	}
	return doc
}

// Marshal renders doc in the given format.
func Marshal(doc *Document, format Format) ([]byte, error) {
	switch format {
	case YAML:
		var buf bytes.Buffer
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(doc); err != nil {
			return nil, fmt.Errorf("failed to encode yaml: %w", err)
		}
		if err := enc.Close(); err != nil {
			return nil, fmt.Errorf("failed to encode yaml: %w", err)
		}
		return buf.Bytes(), nil
	case TOML:
		var buf bytes.Buffer
		if err := toml.NewEncoder(&buf).Encode(doc); err != nil {
			return nil, fmt.Errorf("failed to encode toml: %w", err)
		}
		return buf.Bytes(), nil
	case JSON:
		return json.MarshalIndent(doc, "", "  ")
	}
	return nil, fmt.Errorf("%w: unknown format %q", schema.ErrArgument, format)
}

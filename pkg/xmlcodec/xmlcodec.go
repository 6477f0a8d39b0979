// Package xmlcodec reads and writes schema records as XML.
//
// The root element is named by the kind tag. Each property is placed
// according to its XML style: attributes on the element, the content
// property as the element's own text, and everything else as child
// elements in declaration order. List and tuple properties repeat their
// child element once per item.
package xmlcodec

import (
	"bytes"
	"fmt"

	"github.com/aretw0/guts/pkg/schema"
	"github.com/beevik/etree"
)

// TimestampFormat is the layout timestamps are written with.
const TimestampFormat = "%Y-%m-%dT%H:%M:%S.6FRACZ"

// Option configures Dump and Load.
type Option func(*options)

type options struct {
	reg    *schema.Registry
	indent int
	header bool
}

// WithRegistry resolves root tags in reg instead of the default registry.
func WithRegistry(reg *schema.Registry) Option {
	return func(o *options) { o.reg = reg }
}

// WithIndent indents nested elements by n spaces per level.
func WithIndent(n int) Option {
	return func(o *options) { o.indent = n }
}

// WithHeader prefixes the output with an XML declaration.
func WithHeader() Option {
	return func(o *options) { o.header = true }
}

func newOptions(opts []Option) *options {
	o := &options{reg: schema.DefaultRegistry()}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Dump renders obj as an XML document rooted at an element named by its
// kind tag.
func Dump(obj *schema.Object, opts ...Option) ([]byte, error) {
	o := newOptions(opts)
	doc := etree.NewDocument()
	if o.header {
		doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)
	}
	root := doc.CreateElement(obj.Kind().Tag())
	if err := encodeObject(root, obj); err != nil {
		return nil, err
	}
	if o.indent > 0 {
		s := etree.NewIndentSettings()
		s.Spaces = o.indent
		s.PreserveLeafWhitespace = true
		doc.IndentWithSettings(s)
	} else if o.header {
		doc.Element.InsertChildAt(1, etree.NewText("\n"))
	}

	var buf bytes.Buffer
	if _, err := doc.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("failed to write xml: %w", err)
	}
	return buf.Bytes(), nil
}

// DumpString is like Dump but returns a string.
func DumpString(obj *schema.Object, opts ...Option) (string, error) {
	b, err := Dump(obj, opts...)
	return string(b), err
}

// Load parses an XML document into a record of the kind whose tag matches
// the root element. The result is not validated.
func Load(data []byte, opts ...Option) (*schema.Object, error) {
	o := newOptions(opts)
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(data); err != nil {
		return nil, fmt.Errorf("%w: %v", schema.ErrMalformed, err)
	}
	root := doc.Root()
	if root == nil {
		return nil, fmt.Errorf("%w: document has no root element", schema.ErrMalformed)
	}
	kind, ok := o.reg.KindByTag(root.Tag)
	if !ok {
		return nil, fmt.Errorf("%w: no kind with tag %q", schema.ErrArgument, root.Tag)
	}
	return decodeObject(root, kind)
}

// LoadString is like Load but reads from a string.
func LoadString(s string, opts ...Option) (*schema.Object, error) {
	return Load([]byte(s), opts...)
}

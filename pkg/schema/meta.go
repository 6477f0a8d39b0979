package schema

import "fmt"

// XMLStyle selects where a property is placed in a markup element.
type XMLStyle int

const (
	// StyleElement renders the property as a child element (default).
	StyleElement XMLStyle = iota
	// StyleAttribute renders the property as an attribute of the element.
	StyleAttribute
	// StyleContent renders the property as the element's own text.
	StyleContent
)

func (s XMLStyle) String() string {
	switch s {
	case StyleAttribute:
		return "attribute"
	case StyleContent:
		return "content"
	default:
		return "element"
	}
}

// ParseXMLStyle is the inverse of XMLStyle.String. The empty string is
// StyleElement.
func ParseXMLStyle(s string) (XMLStyle, error) {
	switch s {
	case "", "element":
		return StyleElement, nil
	case "attribute":
		return StyleAttribute, nil
	case "content":
		return StyleContent, nil
	}
	return StyleElement, fmt.Errorf("%w: unknown xml style %q", ErrSchema, s)
}

// Meta is the metadata shared by every type descriptor.
type Meta struct {
	Optional   bool
	Default    any
	HasDefault bool
	XMLStyle   XMLStyle
	XMLTag     string
	Help       string
}

// Option configures a type descriptor at declaration time.
type Option func(*Meta)

// Optional marks a property that may be left unset.
func Optional() Option {
	return func(m *Meta) { m.Optional = true }
}

// Default sets the value a property takes when the caller supplies none.
func Default(v any) Option {
	return func(m *Meta) {
		m.Default = normalize(v)
		m.HasDefault = true
	}
}

// XMLAttribute places the property in an attribute of the enclosing element.
func XMLAttribute() Option {
	return func(m *Meta) { m.XMLStyle = StyleAttribute }
}

// XMLContent places the property in the text of the enclosing element.
func XMLContent() Option {
	return func(m *Meta) { m.XMLStyle = StyleContent }
}

// XMLStyleOf sets the placement explicitly.
func XMLStyleOf(s XMLStyle) Option {
	return func(m *Meta) { m.XMLStyle = s }
}

// XMLTag overrides the element or attribute name of the property.
func XMLTag(name string) Option {
	return func(m *Meta) { m.XMLTag = name }
}

// Help attaches a description.
func Help(text string) Option {
	return func(m *Meta) { m.Help = text }
}

func buildMeta(opts []Option) Meta {
	var m Meta
	for _, opt := range opts {
		opt(&m)
	}
	return m
}

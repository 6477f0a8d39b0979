package schema

import (
	"fmt"
	"strings"
	"unicode"
)

// Property is a named, typed member of a record kind.
type Property struct {
	Name string
	Type Type
}

// Optional reports whether the property may be left unset.
func (p *Property) Optional() bool { return p.Type.Meta().Optional }

// Kind is a declared record kind: an ordered list of properties plus the
// markup tag used when a record of this kind is the root element.
type Kind struct {
	name        string
	tag         string
	explicitTag bool
	help        string
	parent      *Kind
	props       []*Property
	index       map[string]int
	reg         *Registry
	slot        int
}

// Name returns the kind name.
func (k *Kind) Name() string { return k.name }

// Tag returns the markup tag name.
func (k *Kind) Tag() string { return k.tag }

// HasExplicitTag reports whether Tag was declared rather than derived.
func (k *Kind) HasExplicitTag() bool { return k.explicitTag }

// Help returns the kind description.
func (k *Kind) Help() string { return k.help }

// Parent returns the kind k extends, or nil.
func (k *Kind) Parent() *Kind { return k.parent }

// Registry returns the registry k was declared in.
func (k *Kind) Registry() *Registry { return k.reg }

// Props returns the properties, inherited ones first.
func (k *Kind) Props() []*Property {
	return append([]*Property(nil), k.props...)
}

// Prop returns the property named name.
func (k *Kind) Prop(name string) (*Property, bool) {
	i, ok := k.index[name]
	if !ok {
		return nil, false
	}
	return k.props[i], true
}

// T returns a record type for this kind, for use as a property type.
func (k *Kind) T(opts ...Option) *RecordType {
	return &RecordType{base: base{buildMeta(opts)}, kind: k}
}

// AssignableFrom reports whether records of kind other may be used where k
// is expected: other is k or extends it.
func (k *Kind) AssignableFrom(other *Kind) bool {
	for x := other; x != nil; x = x.parent {
		if x == k {
			return true
		}
	}
	return false
}

func (k *Kind) String() string { return k.name }

// Builder declares a record kind.
type Builder struct {
	reg    *Registry
	name   string
	tag    string
	help   string
	parent *Kind
	props  []*Property
}

// Tag sets the markup tag name. Defaults to the kind name in snake_case.
func (b *Builder) Tag(tag string) *Builder {
	b.tag = tag
	return b
}

// Help sets a description of the kind.
func (b *Builder) Help(text string) *Builder {
	b.help = text
	return b
}

// Extends makes the kind inherit the properties of parent. Inherited
// properties come first; redeclaring one replaces its type in place.
func (b *Builder) Extends(parent *Kind) *Builder {
	b.parent = parent
	return b
}

// Prop appends a property.
func (b *Builder) Prop(name string, t Type) *Builder {
	b.props = append(b.props, &Property{Name: name, Type: t})
	return b
}

// Register checks the declaration and adds the kind to the registry,
// replacing any kind of the same name.
func (b *Builder) Register() (*Kind, error) {
	if b.name == "" {
		return nil, fmt.Errorf("%w: kind name cannot be empty", ErrSchema)
	}
	k := &Kind{
		name:   b.name,
		tag:    b.tag,
		help:   b.help,
		parent: b.parent,
		index:  make(map[string]int),
		reg:    b.reg,
	}
	if k.tag != "" {
		k.explicitTag = true
	} else {
		k.tag = snakeCase(b.name)
	}

	if b.parent != nil {
		for _, p := range b.parent.props {
			k.index[p.Name] = len(k.props)
			k.props = append(k.props, p)
		}
	}

	declared := make(map[string]bool)
	for _, p := range b.props {
		if p.Name == "" {
			return nil, fmt.Errorf("%w: kind %s: property name cannot be empty", ErrSchema, b.name)
		}
		if p.Type == nil {
			return nil, fmt.Errorf("%w: kind %s: property %q has no type", ErrSchema, b.name, p.Name)
		}
		if declared[p.Name] {
			return nil, fmt.Errorf("%w: kind %s: duplicate property %q", ErrSchema, b.name, p.Name)
		}
		declared[p.Name] = true
		if i, inherited := k.index[p.Name]; inherited {
			k.props[i] = p
			continue
		}
		k.index[p.Name] = len(k.props)
		k.props = append(k.props, p)
	}

	content := ""
	for _, p := range k.props {
		style := p.Type.Meta().XMLStyle
		if style == StyleElement {
			continue
		}
		if _, deferred := p.Type.(*DeferredType); !deferred && !IsScalar(p.Type) {
			return nil, fmt.Errorf("%w: kind %s: property %q of type %s cannot use %s placement",
				ErrSchema, b.name, p.Name, p.Type.Name(), style)
		}
		if style == StyleContent {
			if content != "" {
				return nil, fmt.Errorf("%w: kind %s: properties %q and %q both use content placement",
					ErrSchema, b.name, content, p.Name)
			}
			content = p.Name
		}
	}

	attrs := make(map[string]string)
	elems := make(map[string]string)
	for _, p := range k.props {
		meta := p.Type.Meta()
		seen := elems
		switch meta.XMLStyle {
		case StyleContent:
			continue
		case StyleAttribute:
			seen = attrs
		}
		name := p.Name
		if meta.XMLTag != "" {
			name = meta.XMLTag
		}
		if other, dup := seen[name]; dup {
			return nil, fmt.Errorf("%w: kind %s: properties %q and %q both use xml %s name %q",
				ErrSchema, b.name, other, p.Name, meta.XMLStyle, name)
		}
		seen[name] = p.Name
	}

	b.reg.registerKind(k)
	return k, nil
}

// MustRegister is like Register but panics on error. It suits declarations
// in package-level variables.
func (b *Builder) MustRegister() *Kind {
	k, err := b.Register()
	if err != nil {
		panic(err)
	}
	return k
}

// snakeCase derives a tag name: "pkg.StationXML" -> "station_xml".
func snakeCase(name string) string {
	if i := strings.LastIndexByte(name, '.'); i != -1 {
		name = name[i+1:]
	}
	runes := []rune(name)
	var b strings.Builder
	for i, r := range runes {
		if unicode.IsUpper(r) {
			if i > 0 && (unicode.IsLower(runes[i-1]) ||
				(i+1 < len(runes) && unicode.IsLower(runes[i+1]) && unicode.IsUpper(runes[i-1]))) {
				b.WriteByte('_')
			}
			b.WriteRune(unicode.ToLower(r))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

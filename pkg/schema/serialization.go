package schema

import (
	"encoding/json"
	"fmt"
)

// KindDecl is the declarative form of a kind, as read from and written to
// schema documents.
type KindDecl struct {
	Name       string         `json:"name" yaml:"name" toml:"name" mapstructure:"name"`
	Tag        string         `json:"tag,omitempty" yaml:"tag,omitempty" toml:"tag,omitempty" mapstructure:"tag"`
	Extends    string         `json:"extends,omitempty" yaml:"extends,omitempty" toml:"extends,omitempty" mapstructure:"extends"`
	Help       string         `json:"help,omitempty" yaml:"help,omitempty" toml:"help,omitempty" mapstructure:"help"`
	Properties []PropertyDecl `json:"properties" yaml:"properties" toml:"properties" mapstructure:"properties"`
}

// PropertyDecl is the declarative form of a property. Type is a type
// expression understood by ParseType.
type PropertyDecl struct {
	Name     string `json:"name" yaml:"name" toml:"name" mapstructure:"name"`
	Type     string `json:"type" yaml:"type" toml:"type" mapstructure:"type"`
	Optional bool   `json:"optional,omitempty" yaml:"optional,omitempty" toml:"optional,omitempty" mapstructure:"optional"`
	Default  any    `json:"default,omitempty" yaml:"default,omitempty" toml:"default,omitempty" mapstructure:"default"`
	XMLStyle string `json:"xmlstyle,omitempty" yaml:"xmlstyle,omitempty" toml:"xmlstyle,omitempty" mapstructure:"xmlstyle"`
	XMLTag   string `json:"xmltag,omitempty" yaml:"xmltag,omitempty" toml:"xmltag,omitempty" mapstructure:"xmltag"`
	Help     string `json:"help,omitempty" yaml:"help,omitempty" toml:"help,omitempty" mapstructure:"help"`
}

// Decl returns the declarative form of k. Inherited properties are omitted
// unless k redeclares them.
func (k *Kind) Decl() KindDecl {
	d := KindDecl{Name: k.name, Help: k.help}
	if k.explicitTag {
		d.Tag = k.tag
	}
	if k.parent != nil {
		d.Extends = k.parent.name
	}
	for _, p := range k.props {
		if k.parent != nil {
			if pp, ok := k.parent.Prop(p.Name); ok && pp == p {
				continue
			}
		}
		m := p.Type.Meta()
		pd := PropertyDecl{
			Name:     p.Name,
			Type:     p.Type.Name(),
			Optional: m.Optional,
			XMLTag:   m.XMLTag,
			Help:     m.Help,
		}
		if m.XMLStyle != StyleElement {
			pd.XMLStyle = m.XMLStyle.String()
		}
		if m.HasDefault {
			pd.Default = plain(m.Default)
		}
		d.Properties = append(d.Properties, pd)
	}
	return d
}

// MarshalJSON serializes the kind in its declarative form.
func (k *Kind) MarshalJSON() ([]byte, error) {
	if k == nil {
		return []byte("null"), nil
	}
	return json.Marshal(k.Decl())
}

// Declare registers the kind described by d. A parent named by Extends must
// already be registered; property types may reference kinds declared later.
func (r *Registry) Declare(d KindDecl) (*Kind, error) {
	b := r.Define(d.Name).Tag(d.Tag).Help(d.Help)
	if d.Extends != "" {
		parent, ok := r.Kind(d.Extends)
		if !ok {
			return nil, fmt.Errorf("%w: kind %s extends unknown kind %q", ErrLookup, d.Name, d.Extends)
		}
		b.Extends(parent)
	}

	for _, pd := range d.Properties {
		style, err := ParseXMLStyle(pd.XMLStyle)
		if err != nil {
			return nil, fmt.Errorf("kind %s: property %q: %w", d.Name, pd.Name, err)
		}
		opts := []Option{XMLStyleOf(style)}
		if pd.Optional {
			opts = append(opts, Optional())
		}
		if pd.XMLTag != "" {
			opts = append(opts, XMLTag(pd.XMLTag))
		}
		if pd.Help != "" {
			opts = append(opts, Help(pd.Help))
		}

		t, err := ParseType(pd.Type, r, opts...)
		if err != nil {
			return nil, fmt.Errorf("kind %s: property %q: %w", d.Name, pd.Name, err)
		}
		if pd.Default != nil {
			def, err := Coerce(pd.Default, t)
			if err != nil {
				return nil, fmt.Errorf("%w: kind %s: property %q: default %v: %v",
					ErrSchema, d.Name, pd.Name, pd.Default, err)
			}
			t, err = ParseType(pd.Type, r, append(opts, Default(def))...)
			if err != nil {
				return nil, err
			}
		}
		b.Prop(pd.Name, t)
	}
	return b.Register()
}

package xmlcodec

import (
	"fmt"
	"strconv"

	"github.com/aretw0/guts/pkg/schema"
	"github.com/aretw0/guts/pkg/timestr"
	"github.com/beevik/etree"
)

func encodeObject(el *etree.Element, o *schema.Object) error {
	props := o.Kind().Props()
	names := elementNames(o.Kind())

	for _, p := range props {
		if p.Type.Meta().XMLStyle != schema.StyleAttribute {
			continue
		}
		v, ok := o.Get(p.Name)
		if !ok {
			continue
		}
		s, err := text(v, p.Type)
		if err != nil {
			return fmt.Errorf("%s.%s: %w", o.Kind().Name(), p.Name, err)
		}
		el.CreateAttr(attrName(p), s)
	}

	for _, p := range props {
		v, ok := o.Get(p.Name)
		if !ok {
			continue
		}
		var err error
		switch p.Type.Meta().XMLStyle {
		case schema.StyleAttribute:
			continue
		case schema.StyleContent:
			var s string
			if s, err = text(v, p.Type); err == nil {
				el.CreateText(s)
			}
		default:
			err = encodeProp(el, names[p.Name], p, v)
		}
		if err != nil {
			return fmt.Errorf("%s.%s: %w", o.Kind().Name(), p.Name, err)
		}
	}
	return nil
}

func encodeProp(el *etree.Element, name string, p *schema.Property, v any) error {
	t, err := schema.Resolve(p.Type)
	if err != nil {
		return err
	}

	var items []any
	var elem schema.Type
	switch tt := t.(type) {
	case *schema.ListType:
		items, _ = v.([]any)
		elem = tt.Elem()
	case *schema.TupleType:
		if tup, ok := v.(schema.Tuple); ok {
			items = tup.Items()
		}
		elem = tt.Elem()
	default:
		return encodeValue(el.CreateElement(name), v, t)
	}

	if isSequence(elem) {
		return fmt.Errorf("%w: nested sequences have no xml form", schema.ErrArgument)
	}
	for i, item := range items {
		if err := encodeValue(el.CreateElement(name), item, elem); err != nil {
			return fmt.Errorf("[%d]: %w", i, err)
		}
	}
	return nil
}

func encodeValue(el *etree.Element, v any, t schema.Type) error {
	if obj, ok := v.(*schema.Object); ok {
		return encodeObject(el, obj)
	}
	s, err := text(v, t)
	if err != nil {
		return err
	}
	if s != "" {
		el.CreateText(s)
	}
	return nil
}

// text renders a scalar value.
func text(v any, t schema.Type) (string, error) {
	t, err := concrete(v, t)
	if err != nil {
		return "", err
	}
	switch x := v.(type) {
	case bool:
		return strconv.FormatBool(x), nil
	case int64:
		return strconv.FormatInt(x, 10), nil
	case float64:
		if _, ok := t.(*schema.TimestampType); ok {
			s, err := timestr.Format(x, TimestampFormat)
			if err != nil {
				return "", fmt.Errorf("%w: %v", schema.ErrArgument, err)
			}
			return s, nil
		}
		return schema.FormatFloat(x), nil
	case complex128:
		return schema.FormatComplex(x), nil
	case string:
		return x, nil
	}
	return "", fmt.Errorf("%w: cannot render %T as xml text", schema.ErrArgument, v)
}

// concrete resolves deferred references and picks the union member that
// accepts v as is.
func concrete(v any, t schema.Type) (schema.Type, error) {
	t, err := schema.Resolve(t)
	if err != nil || t == nil {
		return t, err
	}
	if u, ok := t.(*schema.UnionType); ok {
		for _, m := range u.Members() {
			if _, err := schema.Check(v, m, schema.Depth(0)); err == nil {
				return concrete(v, m)
			}
		}
		return nil, nil
	}
	return t, nil
}

func attrName(p *schema.Property) string {
	if tag := p.Type.Meta().XMLTag; tag != "" {
		return tag
	}
	return p.Name
}

// elementNames maps each element-placed property of k to its child element
// name: its XML tag, else the explicit tag of its record type, else the
// property name. A record tag is only used when no other property of k
// would produce the same name.
func elementNames(k *schema.Kind) map[string]string {
	names := make(map[string]string)
	tagged := make(map[string]string)
	uses := make(map[string]int)
	for _, p := range k.Props() {
		if p.Type.Meta().XMLStyle != schema.StyleElement {
			continue
		}
		if tag := p.Type.Meta().XMLTag; tag != "" {
			names[p.Name] = tag
			continue
		}
		names[p.Name] = p.Name
		if tag := recordTag(p.Type); tag != "" {
			tagged[p.Name] = tag
			uses[tag]++
		}
	}
	for prop, tag := range tagged {
		if uses[tag] > 1 {
			continue
		}
		if other, clash := owner(names, tag); clash && other != prop {
			continue
		}
		names[prop] = tag
	}
	return names
}

func owner(names map[string]string, element string) (string, bool) {
	for prop, name := range names {
		if name == element {
			return prop, true
		}
	}
	return "", false
}

// recordTag returns the explicit tag of the record kind t holds, directly
// or as list and tuple items.
func recordTag(t schema.Type) string {
	t, err := schema.Resolve(t)
	if err != nil {
		return ""
	}
	switch tt := t.(type) {
	case *schema.ListType:
		t, err = schema.Resolve(tt.Elem())
	case *schema.TupleType:
		t, err = schema.Resolve(tt.Elem())
	}
	if err != nil {
		return ""
	}
	if rec, ok := t.(*schema.RecordType); ok && rec.Kind().HasExplicitTag() {
		return rec.Kind().Tag()
	}
	return ""
}

func isSequence(t schema.Type) bool {
	t, err := schema.Resolve(t)
	if err != nil {
		return false
	}
	switch t.(type) {
	case *schema.ListType, *schema.TupleType:
		return true
	}
	return false
}

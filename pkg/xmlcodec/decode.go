package xmlcodec

import (
	"fmt"
	"strings"

	"github.com/aretw0/guts/pkg/schema"
	"github.com/beevik/etree"
)

func decodeObject(el *etree.Element, kind *schema.Kind) (*schema.Object, error) {
	attrs := make(map[string]*schema.Property)
	elems := make(map[string]*schema.Property)
	var content *schema.Property
	names := elementNames(kind)
	for _, p := range kind.Props() {
		switch p.Type.Meta().XMLStyle {
		case schema.StyleAttribute:
			attrs[attrName(p)] = p
		case schema.StyleContent:
			content = p
		default:
			elems[names[p.Name]] = p
		}
	}

	vals := make(schema.Values)
	for _, a := range el.Attr {
		if a.Space == "xmlns" || (a.Space == "" && a.Key == "xmlns") {
			continue
		}
		p, ok := attrs[a.Key]
		if !ok {
			return nil, fmt.Errorf("%w: <%s>: unexpected attribute %q", schema.ErrArgument, el.Tag, a.Key)
		}
		v, err := scalar(a.Value, p.Type)
		if err != nil {
			return nil, err
		}
		vals[p.Name] = v
	}

	var body strings.Builder
	seqs := make(map[string][]any)
	for _, tok := range el.Child {
		switch x := tok.(type) {
		case *etree.CharData:
			if content == nil {
				if strings.TrimSpace(x.Data) != "" {
					return nil, fmt.Errorf("%w: <%s>: unexpected text %q", schema.ErrArgument, el.Tag, x.Data)
				}
				continue
			}
			body.WriteString(x.Data)
		case *etree.Element:
			p, ok := elems[x.Tag]
			if !ok {
				return nil, fmt.Errorf("%w: <%s>: unexpected element <%s>", schema.ErrArgument, el.Tag, x.Tag)
			}
			t, err := schema.Resolve(p.Type)
			if err != nil {
				return nil, err
			}
			if elem, isSeq := seqElem(t); isSeq {
				if isSequence(elem) {
					return nil, fmt.Errorf("%w: <%s>: nested sequences have no xml form", schema.ErrArgument, x.Tag)
				}
				v, err := decodeValue(x, elem)
				if err != nil {
					return nil, err
				}
				seqs[p.Name] = append(seqs[p.Name], v)
				continue
			}
			if _, seen := vals[p.Name]; seen {
				return nil, fmt.Errorf("%w: <%s>: element <%s> repeated but %s.%s holds a single value",
					schema.ErrArgument, el.Tag, x.Tag, kind.Name(), p.Name)
			}
			v, err := decodeValue(x, t)
			if err != nil {
				return nil, err
			}
			vals[p.Name] = v
		}
	}

	for name, items := range seqs {
		p, _ := kind.Prop(name)
		if t, _ := schema.Resolve(p.Type); isTuple(t) {
			vals[name] = schema.NewTuple(items...)
			continue
		}
		vals[name] = items
	}

	if content != nil {
		s := body.String()
		if !isText(content.Type) || strings.TrimSpace(s) == "" {
			s = strings.TrimSpace(s)
		}
		if s != "" {
			v, err := scalar(s, content.Type)
			if err != nil {
				return nil, err
			}
			vals[content.Name] = v
		}
	}
	return kind.New(vals)
}

func decodeValue(el *etree.Element, t schema.Type) (any, error) {
	t, err := schema.Resolve(t)
	if err != nil {
		return nil, err
	}
	if rec := recordOf(t); rec != nil {
		return decodeObject(el, rec.Kind())
	}

	var b strings.Builder
	for _, tok := range el.Child {
		switch x := tok.(type) {
		case *etree.CharData:
			b.WriteString(x.Data)
		case *etree.Element:
			return nil, fmt.Errorf("%w: <%s>: unexpected element <%s> in %s value",
				schema.ErrArgument, el.Tag, x.Tag, t.Name())
		}
	}
	return scalar(b.String(), t)
}

// recordOf returns the record type t decodes into: t itself, or the first
// record member of a union.
func recordOf(t schema.Type) *schema.RecordType {
	switch tt := t.(type) {
	case *schema.RecordType:
		return tt
	case *schema.UnionType:
		if schema.IsScalar(tt) {
			return nil
		}
		for _, m := range tt.Members() {
			if r, err := schema.Resolve(m); err == nil {
				if rec, ok := r.(*schema.RecordType); ok {
					return rec
				}
			}
		}
	}
	return nil
}

// scalar converts text into the representation of t. Conversion is best
// effort: text that does not fit is kept as is for validation to report.
func scalar(s string, t schema.Type) (any, error) {
	t, err := schema.Resolve(t)
	if err != nil {
		return nil, err
	}
	if u, ok := t.(*schema.UnionType); ok {
		for _, m := range u.Members() {
			if v, err := scalar(s, m); err == nil && accepts(v, m) {
				return v, nil
			}
		}
		return s, nil
	}
	switch t.(type) {
	case *schema.StringType, *schema.PatternType, *schema.ChoiceType:
		return s, nil
	}
	if v, err := schema.Coerce(strings.TrimSpace(s), t); err == nil {
		return v, nil
	}
	return s, nil
}

func accepts(v any, t schema.Type) bool {
	_, err := schema.Check(v, t, schema.Depth(0))
	return err == nil
}

func seqElem(t schema.Type) (schema.Type, bool) {
	switch tt := t.(type) {
	case *schema.ListType:
		return tt.Elem(), true
	case *schema.TupleType:
		return tt.Elem(), true
	}
	return nil, false
}

// isText reports whether t holds strings, whose surrounding whitespace is
// part of the value.
func isText(t schema.Type) bool {
	t, err := schema.Resolve(t)
	if err != nil {
		return false
	}
	switch t.(type) {
	case *schema.StringType, *schema.PatternType, *schema.ChoiceType:
		return true
	}
	return false
}

func isTuple(t schema.Type) bool {
	_, ok := t.(*schema.TupleType)
	return ok
}

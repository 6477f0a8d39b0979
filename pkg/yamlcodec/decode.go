package yamlcodec

import (
	"fmt"
	"strings"
	"time"

	"github.com/aretw0/guts/pkg/schema"
	"gopkg.in/yaml.v3"
)

type decoder struct {
	reg *schema.Registry
}

// decode converts node into a value. t is the declared type, nil when
// unknown.
func (d *decoder) decode(node *yaml.Node, t schema.Type) (any, error) {
	if node.Kind == yaml.AliasNode {
		return d.decode(node.Alias, t)
	}
	rt, err := schema.Resolve(t)
	if err != nil {
		return nil, err
	}

	switch node.Kind {
	case yaml.MappingNode:
		return d.decodeMapping(node, rt)
	case yaml.SequenceNode:
		elem := elemType(rt)
		items := make([]any, len(node.Content))
		for i, child := range node.Content {
			v, err := d.decode(child, elem)
			if err != nil {
				return nil, err
			}
			items[i] = v
		}
		if _, isTuple := rt.(*schema.TupleType); isTuple {
			return schema.NewTuple(items...), nil
		}
		return items, nil
	case yaml.ScalarNode:
		return d.decodeScalar(node, rt)
	}
	return nil, fmt.Errorf("%w: line %d: unexpected yaml node", schema.ErrMalformed, node.Line)
}

func (d *decoder) decodeMapping(node *yaml.Node, t schema.Type) (any, error) {
	var kind *schema.Kind
	if tag := node.Tag; strings.HasPrefix(tag, "!") && !strings.HasPrefix(tag, "!!") {
		k, ok := d.reg.Kind(tag[1:])
		if !ok {
			return nil, fmt.Errorf("%w: line %d: unknown tag %q", schema.ErrLookup, node.Line, tag)
		}
		kind = k
	} else if rec, ok := t.(*schema.RecordType); ok {
		kind = rec.Kind()
	}

	if kind == nil {
		m := make(map[string]any, len(node.Content)/2)
		for i := 0; i+1 < len(node.Content); i += 2 {
			v, err := d.decode(node.Content[i+1], nil)
			if err != nil {
				return nil, err
			}
			m[node.Content[i].Value] = v
		}
		return m, nil
	}

	vals := make(schema.Values, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		key := node.Content[i].Value
		p, ok := kind.Prop(key)
		if !ok {
			return nil, fmt.Errorf("%w: line %d: %s has no property %q",
				schema.ErrArgument, node.Content[i].Line, kind.Name(), key)
		}
		v, err := d.decode(node.Content[i+1], p.Type)
		if err != nil {
			return nil, err
		}
		vals[key] = v
	}
	return kind.New(vals)
}

func (d *decoder) decodeScalar(node *yaml.Node, t schema.Type) (any, error) {
	tag := node.ShortTag()
	if tag == "!!null" {
		return nil, nil
	}
	if strings.HasPrefix(tag, "!") && !strings.HasPrefix(tag, "!!") {
		return nil, fmt.Errorf("%w: line %d: unknown tag %q on scalar", schema.ErrLookup, node.Line, tag)
	}

	switch t.(type) {
	case *schema.StringType, *schema.PatternType, *schema.ChoiceType:
		return node.Value, nil
	}

	v, err := natural(node, tag)
	if err != nil {
		return nil, err
	}
	if cv, ok := native(v, t); ok {
		return cv, nil
	}
	return v, nil
}

// native converts a decoded scalar into the representation t stores, for
// the types YAML has no literal of its own for: complex numbers and
// timestamps, and integers standing in for floats. Quoted numbers and
// booleans stay strings so that strict validation rejects them.
func native(v any, t schema.Type) (any, bool) {
	switch tt := t.(type) {
	case *schema.FloatType:
		if i, ok := v.(int64); ok {
			return float64(i), true
		}
	case *schema.ComplexType, *schema.TimestampType:
		if cv, err := schema.Coerce(v, t); err == nil {
			return cv, true
		}
	case *schema.UnionType:
		for _, m := range tt.Members() {
			if accepts(v, m) {
				return v, true
			}
		}
		for _, m := range tt.Members() {
			rm, err := schema.Resolve(m)
			if err != nil {
				continue
			}
			if cv, ok := native(v, rm); ok && accepts(cv, rm) {
				return cv, true
			}
		}
	}
	return nil, false
}

func accepts(v any, t schema.Type) bool {
	_, err := schema.Check(v, t, schema.Depth(0))
	return err == nil
}

// natural decodes a scalar by its resolved YAML tag.
func natural(node *yaml.Node, tag string) (any, error) {
	switch tag {
	case "!!bool":
		var b bool
		if err := node.Decode(&b); err != nil {
			return nil, fmt.Errorf("%w: line %d: %v", schema.ErrMalformed, node.Line, err)
		}
		return b, nil
	case "!!int":
		var i int64
		if err := node.Decode(&i); err == nil {
			return i, nil
		}
		var f float64
		if err := node.Decode(&f); err != nil {
			return nil, fmt.Errorf("%w: line %d: %v", schema.ErrMalformed, node.Line, err)
		}
		return f, nil
	case "!!float":
		var f float64
		if err := node.Decode(&f); err != nil {
			return nil, fmt.Errorf("%w: line %d: %v", schema.ErrMalformed, node.Line, err)
		}
		return f, nil
	case "!!timestamp":
		if ts, err := schema.ParseTimestamp(node.Value); err == nil {
			return ts, nil
		}
		var tm time.Time
		if err := node.Decode(&tm); err != nil {
			return nil, fmt.Errorf("%w: line %d: %v", schema.ErrMalformed, node.Line, err)
		}
		return float64(tm.Unix()) + float64(tm.Nanosecond())/1e9, nil
	}
	return node.Value, nil
}

package yamlcodec

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/aretw0/guts/pkg/schema"
	"github.com/aretw0/guts/pkg/timestr"
	"gopkg.in/yaml.v3"
)

func scalar(tag, value string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: tag, Value: value}
}

// str renders a string scalar. Strings a block scalar would not carry
// intact, such as a lone line break or surrounding blanks, are double quoted.
func str(s string) *yaml.Node {
	n := scalar("!!str", s)
	if strings.ContainsAny(s, "\n\r\t") || strings.TrimSpace(s) != s {
		n.Style = yaml.DoubleQuotedStyle
	}
	return n
}

// encode builds the node for v. t is the declared type, nil when unknown.
func encode(v any, t schema.Type) (*yaml.Node, error) {
	t, err := concrete(v, t)
	if err != nil {
		return nil, err
	}

	switch x := v.(type) {
	case nil:
		return scalar("!!null", "null"), nil
	case *schema.Object:
		return encodeObject(x)
	case []any:
		return encodeSeq(x, elemType(t))
	case schema.Tuple:
		return encodeSeq(x.Items(), elemType(t))
	case map[string]any:
		node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
		keys := make([]string, 0, len(x))
		for k := range x {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			val, err := encode(x[k], nil)
			if err != nil {
				return nil, err
			}
			node.Content = append(node.Content, scalar("!!str", k), val)
		}
		return node, nil
	case bool:
		return scalar("!!bool", strconv.FormatBool(x)), nil
	case int64:
		return scalar("!!int", strconv.FormatInt(x, 10)), nil
	case float64:
		if _, ok := t.(*schema.TimestampType); ok {
			s, err := timestr.Format(x, TimestampFormat)
			if err != nil {
				return nil, fmt.Errorf("%w: %v", schema.ErrArgument, err)
			}
			return scalar("!!timestamp", s), nil
		}
		return scalar("!!float", formatFloat(x)), nil
	case complex128:
		return scalar("!!str", schema.FormatComplex(x)), nil
	case string:
		return str(x), nil
	}
	return nil, fmt.Errorf("%w: cannot encode %T as yaml", schema.ErrArgument, v)
}

func encodeObject(o *schema.Object) (*yaml.Node, error) {
	node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!" + o.Kind().Name()}
	for _, p := range o.Kind().Props() {
		val, ok := o.Get(p.Name)
		if !ok {
			continue
		}
		vn, err := encode(val, p.Type)
		if err != nil {
			return nil, fmt.Errorf("%s.%s: %w", o.Kind().Name(), p.Name, err)
		}
		node.Content = append(node.Content, scalar("!!str", p.Name), vn)
	}
	return node, nil
}

func encodeSeq(items []any, elem schema.Type) (*yaml.Node, error) {
	node := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
	for i, item := range items {
		in, err := encode(item, elem)
		if err != nil {
			return nil, fmt.Errorf("[%d]: %w", i, err)
		}
		node.Content = append(node.Content, in)
	}
	return node, nil
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

func elemType(t schema.Type) schema.Type {
	switch tt := t.(type) {
	case *schema.ListType:
		return tt.Elem()
	case *schema.TupleType:
		return tt.Elem()
	}
	return nil
}

func formatFloat(f float64) string {
	switch s := schema.FormatFloat(f); s {
	case "inf":
		return ".inf"
	case "-inf":
		return "-.inf"
	case "nan":
		return ".nan"
	default:
		return s
	}
}

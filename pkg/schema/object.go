package schema

import (
	"fmt"
	"reflect"
	"strings"
	"time"
)

// Values holds property values by name, used to construct records.
type Values map[string]any

// Object is a record instance. It owns one value per declared property of its
// kind; unset properties have no value.
type Object struct {
	kind   *Kind
	values map[string]any
}

// New creates a record of kind k. Properties missing from vals take their
// declared default, list and tuple properties start empty, and the rest are
// left unset. Unknown names fail with ErrArgument.
func (k *Kind) New(vals Values) (*Object, error) {
	o := &Object{kind: k, values: make(map[string]any, len(k.props))}
	for name := range vals {
		if _, ok := k.index[name]; !ok {
			return nil, fmt.Errorf("%w: %s has no property %q", ErrArgument, k.name, name)
		}
	}
	for _, p := range k.props {
		if v, ok := vals[p.Name]; ok && v != nil {
			o.values[p.Name] = normalize(v)
			continue
		}
		o.initProp(p)
	}
	return o, nil
}

// MustNew is like New but panics on error.
func (k *Kind) MustNew(vals Values) *Object {
	o, err := k.New(vals)
	if err != nil {
		panic(err)
	}
	return o
}

func (o *Object) initProp(p *Property) {
	meta := p.Type.Meta()
	if meta.HasDefault {
		o.values[p.Name] = cloneValue(meta.Default)
		return
	}
	switch p.Type.(type) {
	case *ListType:
		o.values[p.Name] = []any{}
	case *TupleType:
		o.values[p.Name] = Tuple{}
	default:
		delete(o.values, p.Name)
	}
}

// Kind returns the record kind.
func (o *Object) Kind() *Kind { return o.kind }

// Get returns the value of a property and whether it is set.
func (o *Object) Get(name string) (any, bool) {
	v, ok := o.values[name]
	return v, ok
}

// MustGet returns the value of a property, nil if unset. It panics if the
// kind has no such property.
func (o *Object) MustGet(name string) any {
	if _, ok := o.kind.index[name]; !ok {
		panic(fmt.Sprintf("schema: %s has no property %q", o.kind.name, name))
	}
	return o.values[name]
}

// IsSet reports whether a property has a value.
func (o *Object) IsSet(name string) bool {
	_, ok := o.values[name]
	return ok
}

// Set assigns a property. Setting nil unsets it.
func (o *Object) Set(name string, v any) error {
	p, ok := o.kind.Prop(name)
	if !ok {
		return fmt.Errorf("%w: %s has no property %q", ErrArgument, o.kind.name, name)
	}
	if v == nil {
		o.clear(p)
		return nil
	}
	o.values[name] = normalize(v)
	return nil
}

// Unset removes the value of a property. List and tuple properties become
// empty rather than unset.
func (o *Object) Unset(name string) error {
	p, ok := o.kind.Prop(name)
	if !ok {
		return fmt.Errorf("%w: %s has no property %q", ErrArgument, o.kind.name, name)
	}
	o.clear(p)
	return nil
}

func (o *Object) clear(p *Property) {
	switch p.Type.(type) {
	case *ListType:
		o.values[p.Name] = []any{}
	case *TupleType:
		o.values[p.Name] = Tuple{}
	default:
		delete(o.values, p.Name)
	}
}

// Append adds values to a list property.
func (o *Object) Append(name string, vs ...any) error {
	p, ok := o.kind.Prop(name)
	if !ok {
		return fmt.Errorf("%w: %s has no property %q", ErrArgument, o.kind.name, name)
	}
	if _, isList := p.Type.(*ListType); !isList {
		return fmt.Errorf("%w: %s.%s is not a list", ErrArgument, o.kind.name, name)
	}
	items, _ := o.values[name].([]any)
	for _, v := range vs {
		items = append(items, normalize(v))
	}
	o.values[name] = items
	return nil
}

// Each calls fn for every set property in declaration order.
func (o *Object) Each(fn func(name string, v any)) {
	for _, p := range o.kind.props {
		if v, ok := o.values[p.Name]; ok {
			fn(p.Name, v)
		}
	}
}

// Clone returns a deep copy of o.
func (o *Object) Clone() *Object {
	c := &Object{kind: o.kind, values: make(map[string]any, len(o.values))}
	for k, v := range o.values {
		c.values[k] = cloneValue(v)
	}
	return c
}

// Map converts o into plain Go values: nested records become maps and
// tuples become slices. Unset properties are omitted.
func (o *Object) Map() map[string]any {
	m := make(map[string]any, len(o.values))
	o.Each(func(name string, v any) {
		m[name] = plain(v)
	})
	return m
}

func plain(v any) any {
	switch x := v.(type) {
	case *Object:
		return x.Map()
	case Tuple:
		items := make([]any, x.Len())
		for i := range items {
			items[i] = plain(x.At(i))
		}
		return items
	case []any:
		items := make([]any, len(x))
		for i, item := range x {
			items[i] = plain(item)
		}
		return items
	default:
		return v
	}
}

func (o *Object) String() string {
	var b strings.Builder
	b.WriteString(o.kind.name)
	b.WriteByte('{')
	first := true
	o.Each(func(name string, v any) {
		if !first {
			b.WriteString(", ")
		}
		first = false
		if s, ok := v.(string); ok {
			fmt.Fprintf(&b, "%s: %q", name, s)
			return
		}
		fmt.Fprintf(&b, "%s: %v", name, v)
	})
	b.WriteByte('}')
	return b.String()
}

// Normalize converts Go native values into canonical representations:
// sized integers become int64, float32 becomes float64, slices become []any.
// Other values are returned unchanged.
func Normalize(v any) any { return normalize(v) }

// normalize converts Go native values into the representation the validator
// works with: sized integers become int64, float32 becomes float64, slices
// become []any.
func normalize(v any) any {
	switch x := v.(type) {
	case nil, bool, int64, float64, complex128, string, Tuple, *Object, time.Time:
		return v
	case int:
		return int64(x)
	case int8:
		return int64(x)
	case int16:
		return int64(x)
	case int32:
		return int64(x)
	case uint8:
		return int64(x)
	case uint16:
		return int64(x)
	case uint32:
		return int64(x)
	case uint:
		if uint64(x) <= 1<<63-1 {
			return int64(x)
		}
		return v
	case uint64:
		if x <= 1<<63-1 {
			return int64(x)
		}
		return v
	case float32:
		return float64(x)
	case complex64:
		return complex128(x)
	case []any:
		items := make([]any, len(x))
		for i, item := range x {
			items[i] = normalize(item)
		}
		return items
	case map[string]any:
		m := make(map[string]any, len(x))
		for k, item := range x {
			m[k] = normalize(item)
		}
		return m
	}

	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Slice || rv.Kind() == reflect.Array {
		items := make([]any, rv.Len())
		for i := range items {
			items[i] = normalize(rv.Index(i).Interface())
		}
		return items
	}
	return v
}

func cloneValue(v any) any {
	switch x := v.(type) {
	case []any:
		items := make([]any, len(x))
		for i, item := range x {
			items[i] = cloneValue(item)
		}
		return items
	case map[string]any:
		m := make(map[string]any, len(x))
		for k, item := range x {
			m[k] = cloneValue(item)
		}
		return m
	case *Object:
		return x.Clone()
	default:
		return v
	}
}

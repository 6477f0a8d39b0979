package schema

import (
	"fmt"
	"regexp"
	"strings"
	"sync/atomic"
)

// Type describes the shape of a value: how it is validated, coerced and
// serialized. The set of implementations is closed; validation and the codecs
// dispatch on the concrete type.
type Type interface {
	// Name returns the type expression, e.g. "int", "[string]", "tuple(2, float)".
	Name() string
	// Meta returns the declaration metadata (optional, default, placement).
	Meta() Meta
	isType()
}

type base struct {
	meta Meta
}

func (b *base) Meta() Meta { return b.meta }
func (b *base) isType()    {}

// --- Scalars ---

// BoolType validates booleans.
type BoolType struct{ base }

func (t *BoolType) Name() string { return "bool" }

// IntType validates int64 values.
type IntType struct{ base }

func (t *IntType) Name() string { return "int" }

// FloatType validates float64 values.
type FloatType struct{ base }

func (t *FloatType) Name() string { return "float" }

// ComplexType validates complex128 values.
type ComplexType struct{ base }

func (t *ComplexType) Name() string { return "complex" }

// StringType validates strings.
type StringType struct{ base }

func (t *StringType) Name() string { return "string" }

// TimestampType validates epoch seconds stored as float64.
type TimestampType struct{ base }

func (t *TimestampType) Name() string { return "timestamp" }

// PatternType validates strings fully matching a regular expression.
type PatternType struct {
	base
	pattern string
	re      *regexp.Regexp
}

func (t *PatternType) Name() string { return "pattern(" + t.pattern + ")" }

// Pattern returns the source expression.
func (t *PatternType) Pattern() string { return t.pattern }

// ChoiceType validates strings drawn from a fixed set.
type ChoiceType struct {
	base
	choices    []string
	ignoreCase bool
}

func (t *ChoiceType) Name() string { return "choice(" + strings.Join(t.choices, ", ") + ")" }

// Choices returns the allowed literals in declaration order.
func (t *ChoiceType) Choices() []string {
	return append([]string(nil), t.choices...)
}

// CaseInsensitive reports whether regularization folds case.
func (t *ChoiceType) CaseInsensitive() bool { return t.ignoreCase }

// IgnoreCase returns a copy of t whose regularization matches choices
// case-insensitively and canonicalizes to the declared literal.
func (t *ChoiceType) IgnoreCase() *ChoiceType {
	c := *t
	c.ignoreCase = true
	return &c
}

// --- Containers ---

// ListType validates []any values element by element.
type ListType struct {
	base
	elem Type
}

func (t *ListType) Name() string { return "[" + t.elem.Name() + "]" }

// Elem returns the element type.
func (t *ListType) Elem() Type { return t.elem }

// TupleType validates fixed-length Tuple values.
type TupleType struct {
	base
	n    int
	elem Type
}

func (t *TupleType) Name() string { return fmt.Sprintf("tuple(%d, %s)", t.n, t.elem.Name()) }

// Len returns the arity.
func (t *TupleType) Len() int { return t.n }

// Elem returns the element type.
func (t *TupleType) Elem() Type { return t.elem }

// UnionType accepts a value if one of its members does.
type UnionType struct {
	base
	members []Type
}

func (t *UnionType) Name() string {
	names := make([]string, len(t.members))
	for i, m := range t.members {
		names[i] = m.Name()
	}
	return "union(" + strings.Join(names, ", ") + ")"
}

// Members returns the members in priority order.
func (t *UnionType) Members() []Type {
	return append([]Type(nil), t.members...)
}

// RecordType validates *Object values of a kind (or a kind extending it).
type RecordType struct {
	base
	kind *Kind
}

func (t *RecordType) Name() string { return t.kind.name }

// Kind returns the record kind.
func (t *RecordType) Kind() *Kind { return t.kind }

type typeBox struct{ t Type }

// DeferredType refers to a named type that is resolved on first use.
type DeferredType struct {
	base
	name     string
	reg      *Registry
	resolved atomic.Pointer[typeBox]
}

func (t *DeferredType) Name() string { return t.name }

// Target returns the referenced name.
func (t *DeferredType) Target() string { return t.name }

// Resolve returns the referenced type, looking it up once and caching it.
func (t *DeferredType) Resolve() (Type, error) {
	if b := t.resolved.Load(); b != nil {
		return b.t, nil
	}
	target, err := t.reg.Lookup(t.name)
	if err != nil {
		return nil, err
	}
	for seen := 0; ; seen++ {
		d, ok := target.(*DeferredType)
		if !ok {
			break
		}
		if d == t || seen > 64 {
			return nil, fmt.Errorf("%w: reference %q resolves to itself", ErrLookup, t.name)
		}
		if target, err = d.Resolve(); err != nil {
			return nil, err
		}
	}
	t.resolved.CompareAndSwap(nil, &typeBox{t: target})
	return t.resolved.Load().t, nil
}

// Resolve follows deferred references until a concrete type is reached.
func Resolve(t Type) (Type, error) {
	if d, ok := t.(*DeferredType); ok {
		return d.Resolve()
	}
	return t, nil
}

// --- Factory Functions ---

// Bool creates a boolean type.
func Bool(opts ...Option) *BoolType { return &BoolType{base{buildMeta(opts)}} }

// Int creates an integer type.
func Int(opts ...Option) *IntType { return &IntType{base{buildMeta(opts)}} }

// Float creates a floating point type.
func Float(opts ...Option) *FloatType { return &FloatType{base{buildMeta(opts)}} }

// Complex creates a complex number type.
func Complex(opts ...Option) *ComplexType { return &ComplexType{base{buildMeta(opts)}} }

// String creates a string type.
func String(opts ...Option) *StringType { return &StringType{base{buildMeta(opts)}} }

// Timestamp creates a timestamp type.
func Timestamp(opts ...Option) *TimestampType { return &TimestampType{base{buildMeta(opts)}} }

// Pattern creates a string type constrained by a regular expression that must
// match the whole value. It panics if the expression does not compile.
func Pattern(expr string, opts ...Option) *PatternType {
	t, err := CompilePattern(expr, opts...)
	if err != nil {
		panic(err)
	}
	return t
}

// CompilePattern is like Pattern but returns the compile error.
func CompilePattern(expr string, opts ...Option) (*PatternType, error) {
	re, err := regexp.Compile(`^(?:` + expr + `)$`)
	if err != nil {
		return nil, fmt.Errorf("%w: pattern %q: %v", ErrSchema, expr, err)
	}
	return &PatternType{base: base{buildMeta(opts)}, pattern: expr, re: re}, nil
}

// Choice creates a string type restricted to the given literals.
func Choice(choices []string, opts ...Option) *ChoiceType {
	return &ChoiceType{base: base{buildMeta(opts)}, choices: append([]string(nil), choices...)}
}

// ListOf creates a list type for elements of the given type.
func ListOf(elem Type, opts ...Option) *ListType {
	return &ListType{base: base{buildMeta(opts)}, elem: elem}
}

// TupleOf creates a tuple type of n elements of the given type.
func TupleOf(n int, elem Type, opts ...Option) *TupleType {
	if n < 0 {
		panic(fmt.Sprintf("schema: negative tuple arity %d", n))
	}
	return &TupleType{base: base{buildMeta(opts)}, n: n, elem: elem}
}

// UnionOf creates a union of the given members. Member order is the
// disambiguation priority.
func UnionOf(members []Type, opts ...Option) *UnionType {
	return &UnionType{base: base{buildMeta(opts)}, members: append([]Type(nil), members...)}
}

// Defer creates a reference to a kind or named type of the default registry.
func Defer(name string, opts ...Option) *DeferredType {
	return defaultRegistry.Defer(name, opts...)
}

// IsScalar reports whether values of t render as a single piece of text.
// Deferred references are resolved; unresolvable references are not scalar.
func IsScalar(t Type) bool {
	t, err := Resolve(t)
	if err != nil {
		return false
	}
	switch tt := t.(type) {
	case *BoolType, *IntType, *FloatType, *ComplexType, *StringType, *TimestampType, *PatternType, *ChoiceType:
		return true
	case *UnionType:
		for _, m := range tt.members {
			if !IsScalar(m) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

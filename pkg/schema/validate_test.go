package schema

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegularizeScalars(t *testing.T) {
	tests := []struct {
		name  string
		typ   Type
		value any
		want  any
	}{
		{"bool from 1", Bool(), 1, true},
		{"bool from 0", Bool(), 0, false},
		{"bool from \"0\"", Bool(), "0", false},
		{"bool from \"False\"", Bool(), "False", false},
		{"bool from \"yes\"", Bool(), "yes", true},
		{"bool from 0.5", Bool(), 0.5, true},
		{"int from \"1\"", Int(), "1", int64(1)},
		{"int from 1.0", Int(), 1.0, int64(1)},
		{"int from 1.1", Int(), 1.1, int64(1)},
		{"int from -2.9", Int(), -2.9, int64(-2)},
		{"float from \"1.0\"", Float(), "1.0", 1.0},
		{"float from 1", Float(), 1, 1.0},
		{"float from \"inf\"", Float(), "inf", math.Inf(1)},
		{"complex from \"(1+5j)\"", Complex(), "(1+5j)", complex(1, 5)},
		{"complex from 2", Complex(), 2, complex(2, 0)},
		{"string from 1", String(), 1, "1"},
		{"string from 1.5", String(), 1.5, "1.5"},
		{"string from true", String(), true, "true"},
		{"choice ignoring case", Choice([]string{"a", "bcd"}).IgnoreCase(), "BCD", "bcd"},
		{"timestamp from int", Timestamp(), 10, 10.0},
		{"timestamp from date", Timestamp(), "1970-01-02", 86400.0},
		{"timestamp with Z", Timestamp(), "2010-01-01T10:20:01.11Z", 1262341201.11},
		{"timestamp with space", Timestamp(), "2030-12-12 00:00:10.11111", 1923264010.11111},
		{"timestamp with offset", Timestamp(), "1970-01-01T01:00:00+01:00", 0.0},
		{"timestamp from time", Timestamp(), time.Unix(5, 500000000), 5.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Coerce(tt.value, tt.typ)
			require.NoError(t, err)
			if f, ok := tt.want.(float64); ok {
				assert.InDelta(t, f, got, 1e-6)
				return
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRegularizeFailures(t *testing.T) {
	tests := []struct {
		typ   Type
		value any
	}{
		{Int(), "1.5"},
		{Int(), "one"},
		{Int(), math.NaN()},
		{Int(), math.Inf(-1)},
		{Int(), 1e300},
		{Float(), "x"},
		{Complex(), "1+"},
		{Timestamp(), "yesterday"},
		{Timestamp(), "2010-01-01X10:00:00"},
		{Choice([]string{"a", "bcd"}), "BCD"},
		{Pattern("[a-c]+"), 12},
		{String(), []any{1}},
	}

	for _, tt := range tests {
		_, err := Coerce(tt.value, tt.typ)
		assert.ErrorIs(t, err, ErrValidation, "Coerce(%v, %s)", tt.value, tt.typ.Name())
	}
}

func TestStrictAcceptanceImpliesRegularized(t *testing.T) {
	samples := []struct {
		typ   Type
		value any
	}{
		{Bool(), false},
		{Int(), 7},
		{Float(), math.Inf(-1)},
		{Complex(), complex(0, 1)},
		{String(), "x y"},
		{Timestamp(), 1e9},
		{Pattern("[a-c]+"), "abc"},
		{Choice([]string{"a"}), "a"},
		{ListOf(Int()), []int{1, 2}},
		{TupleOf(2, String()), NewTuple("a", "b")},
	}

	for _, s := range samples {
		strict, err := Check(s.value, s.typ)
		require.NoError(t, err)
		loose, err := Coerce(s.value, s.typ)
		require.NoError(t, err)
		assert.True(t, Equal(strict, loose), "%s: %v != %v", s.typ.Name(), strict, loose)
	}
}

func newSample(t *testing.T) (*Registry, *Kind) {
	t.Helper()
	reg := NewRegistry()
	x, err := reg.Define("X").
		Prop("a", Int()).
		Prop("b", Float(Optional())).
		Prop("c", String(Default("dflt"))).
		Prop("d", ListOf(Int())).
		Prop("e", TupleOf(1, Float())).
		Register()
	require.NoError(t, err)
	return reg, x
}

func TestNewInitializesProperties(t *testing.T) {
	_, x := newSample(t)

	obj, err := x.New(Values{"a": 1})
	require.NoError(t, err)

	assert.Equal(t, int64(1), obj.MustGet("a"))
	assert.False(t, obj.IsSet("b"))
	assert.Equal(t, "dflt", obj.MustGet("c"))
	assert.Equal(t, []any{}, obj.MustGet("d"))
	assert.Equal(t, 0, obj.MustGet("e").(Tuple).Len())

	_, err = x.New(Values{"zzz": 1})
	assert.ErrorIs(t, err, ErrArgument)
}

func TestDefaultsAreNotShared(t *testing.T) {
	reg := NewRegistry()
	k := reg.Define("K").Prop("xs", ListOf(Int(), Default([]int{1}))).MustRegister()

	a := k.MustNew(nil)
	b := k.MustNew(nil)
	require.NoError(t, a.Append("xs", 2))

	assert.Equal(t, []any{int64(1), int64(2)}, a.MustGet("xs"))
	assert.Equal(t, []any{int64(1)}, b.MustGet("xs"))
}

func TestObjectSetUnset(t *testing.T) {
	_, x := newSample(t)
	obj := x.MustNew(Values{"a": 1, "b": 2.0, "d": []int{1}})

	require.NoError(t, obj.Set("b", nil))
	assert.False(t, obj.IsSet("b"))

	require.NoError(t, obj.Unset("d"))
	assert.Equal(t, []any{}, obj.MustGet("d"))

	assert.ErrorIs(t, obj.Set("zzz", 1), ErrArgument)
	assert.ErrorIs(t, obj.Append("a", 1), ErrArgument)
	assert.Panics(t, func() { obj.MustGet("zzz") })
}

func TestValidateSample(t *testing.T) {
	_, x := newSample(t)

	obj := x.MustNew(Values{"a": 1, "e": NewTuple(1.0)})
	require.NoError(t, obj.Validate())

	require.NoError(t, obj.Set("e", NewTuple(1.0, 2.0)))
	err := obj.Validate()
	require.ErrorIs(t, err, ErrValidation)
	fields := FieldErrors(err)
	require.Len(t, fields, 1)
	assert.Equal(t, "e", fields[0].Path)
	assert.Contains(t, fields[0].Reason, "expected tuple of 1 elements, got 2")
}

func TestValidateCollectsAllFailures(t *testing.T) {
	_, x := newSample(t)
	obj := x.MustNew(Values{"b": "nope", "d": []any{1, "two", 3, "four"}, "e": NewTuple(1.0)})

	err := obj.Validate()
	require.ErrorIs(t, err, ErrValidation)

	var paths []string
	for _, fe := range FieldErrors(err) {
		paths = append(paths, fe.Path)
	}
	assert.Equal(t, []string{"a", "b", "d[1]", "d[3]"}, paths)
}

func TestRegularizeCommitsOnlyOnSuccess(t *testing.T) {
	_, x := newSample(t)

	obj := x.MustNew(Values{"a": "1", "b": "2.5", "d": []any{"3"}, "e": []any{"4"}})
	require.NoError(t, obj.Validate(Regularize()))
	assert.Equal(t, int64(1), obj.MustGet("a"))
	assert.Equal(t, 2.5, obj.MustGet("b"))
	assert.Equal(t, []any{int64(3)}, obj.MustGet("d"))
	assert.Equal(t, NewTuple(4.0), obj.MustGet("e"))

	bad := x.MustNew(Values{"a": "1", "b": "oops", "e": NewTuple(1.0)})
	require.Error(t, bad.Validate(Regularize()))
	assert.Equal(t, "1", bad.MustGet("a"))
}

func TestUnionPriority(t *testing.T) {
	u := UnionOf([]Type{Int(), Choice([]string{"small", "large"})})

	got, err := Coerce("1", u)
	require.NoError(t, err)
	assert.Equal(t, int64(1), got)

	got, err = Coerce("small", u)
	require.NoError(t, err)
	assert.Equal(t, "small", got)

	_, err = Coerce("fail!", u)
	require.ErrorIs(t, err, ErrValidation)
	assert.Contains(t, err.Error(), "no union member accepts")

	_, err = Check("1", u)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestUnionPrefersStrictMatch(t *testing.T) {
	u := UnionOf([]Type{Int(), String()})
	got, err := Coerce("12", u)
	require.NoError(t, err)
	assert.Equal(t, "12", got)
}

func TestDeferredMutualReference(t *testing.T) {
	reg := NewRegistry()
	a := reg.Define("A").Prop("b", reg.Defer("B", Optional())).MustRegister()
	b := reg.Define("B").Prop("a", reg.Defer("A", Optional())).MustRegister()

	inner := a.MustNew(nil)
	outer := a.MustNew(Values{"b": b.MustNew(Values{"a": inner})})
	require.NoError(t, outer.Validate())

	wrong := a.MustNew(Values{"b": inner})
	err := wrong.Validate()
	require.ErrorIs(t, err, ErrValidation)
	assert.Contains(t, err.Error(), "expected B, got A")
}

func TestDeferredForwardToRequiredBackReference(t *testing.T) {
	reg := NewRegistry()
	a := reg.Define("A").Prop("p", reg.Defer("B", Optional())).MustRegister()
	b := reg.Define("B").Prop("p", a.T()).MustRegister()

	obj := a.MustNew(Values{"p": b.MustNew(Values{"p": a.MustNew(nil)})})
	require.NoError(t, obj.Validate())
	require.NoError(t, obj.Validate(Regularize()))

	err := a.MustNew(Values{"p": b.MustNew(nil)}).Validate()
	require.ErrorIs(t, err, ErrValidation)
	assert.Equal(t, "p.p", FieldErrors(err)[0].Path)
}

func TestDefaultRegistry(t *testing.T) {
	k := Define("GlobalCounter").Prop("n", Int(Default(3))).MustRegister()
	assert.Same(t, DefaultRegistry(), k.Registry())

	got, ok := DefaultRegistry().Kind("GlobalCounter")
	require.True(t, ok)
	assert.Same(t, k, got)
	assert.Equal(t, int64(3), k.MustNew(nil).MustGet("n"))
}

func TestDeferredSelfReference(t *testing.T) {
	reg := NewRegistry()
	node := reg.Define("Node").
		Prop("name", String()).
		Prop("children", ListOf(reg.Defer("Node"))).
		MustRegister()

	leaf := node.MustNew(Values{"name": "leaf"})
	root := node.MustNew(Values{"name": "root", "children": []any{leaf}})
	require.NoError(t, root.Validate())

	require.NoError(t, leaf.Set("name", 5))
	err := root.Validate()
	require.ErrorIs(t, err, ErrValidation)
	assert.Equal(t, "children[0].name", FieldErrors(err)[0].Path)
}

func TestCyclicObjectGraphTerminates(t *testing.T) {
	reg := NewRegistry()
	node := reg.Define("Node").Prop("next", reg.Defer("Node", Optional())).MustRegister()

	n := node.MustNew(nil)
	require.NoError(t, n.Set("next", n))
	assert.NoError(t, n.Validate())
}

func TestDeferredLookupFailure(t *testing.T) {
	reg := NewRegistry()
	k := reg.Define("K").Prop("x", reg.Defer("Missing")).MustRegister()

	err := k.MustNew(Values{"x": 1}).Validate()
	require.ErrorIs(t, err, ErrLookup)
	assert.False(t, errors.Is(err, ErrValidation))
}

func TestDeferredNamedType(t *testing.T) {
	reg := NewRegistry()
	require.NoError(t, reg.RegisterType("Size", Choice([]string{"small", "large"})))
	k := reg.Define("K").Prop("size", reg.Defer("Size")).MustRegister()

	assert.NoError(t, k.MustNew(Values{"size": "small"}).Validate())
	assert.Error(t, k.MustNew(Values{"size": "huge"}).Validate())

	assert.ErrorIs(t, reg.RegisterType("K", Int()), ErrSchema)
}

func TestExtends(t *testing.T) {
	reg := NewRegistry()
	base := reg.Define("Base").Prop("id", String()).Prop("n", Int(Optional())).MustRegister()
	child := reg.Define("Child").Extends(base).
		Prop("n", Float(Optional())).
		Prop("extra", Bool(Optional())).
		MustRegister()

	names := []string{}
	for _, p := range child.Props() {
		names = append(names, p.Name)
	}
	assert.Equal(t, []string{"id", "n", "extra"}, names)

	holder := reg.Define("Holder").Prop("item", base.T()).MustRegister()
	h := holder.MustNew(Values{"item": child.MustNew(Values{"id": "x", "n": 1.5})})
	assert.NoError(t, h.Validate())

	other := reg.Define("Other").Prop("id", String()).MustRegister()
	require.NoError(t, h.Set("item", other.MustNew(Values{"id": "y"})))
	assert.Error(t, h.Validate())
}

func TestDepth(t *testing.T) {
	reg := NewRegistry()
	leaf := reg.Define("Leaf").Prop("v", Int()).MustRegister()
	top := reg.Define("Top").Prop("leaf", leaf.T()).Prop("n", Int()).MustRegister()

	obj := top.MustNew(Values{"leaf": leaf.MustNew(Values{"v": "bad"}), "n": 1})
	assert.Error(t, obj.Validate())
	assert.NoError(t, obj.Validate(Depth(1)))
}

func TestRegularizeMapIntoRecord(t *testing.T) {
	reg := NewRegistry()
	leaf := reg.Define("Leaf").Prop("v", Int()).MustRegister()
	top := reg.Define("Top").Prop("leaf", leaf.T()).MustRegister()

	obj := top.MustNew(Values{"leaf": map[string]any{"v": "7"}})
	require.NoError(t, obj.Validate(Regularize()))

	nested, ok := obj.MustGet("leaf").(*Object)
	require.True(t, ok)
	assert.Equal(t, int64(7), nested.MustGet("v"))
}

func TestRegisterErrors(t *testing.T) {
	reg := NewRegistry()

	_, err := reg.Define("").Register()
	assert.ErrorIs(t, err, ErrSchema)

	_, err = reg.Define("K").Prop("a", Int()).Prop("a", Int()).Register()
	assert.ErrorIs(t, err, ErrSchema)

	_, err = reg.Define("K").Prop("xs", ListOf(Int(), XMLAttribute())).Register()
	assert.ErrorIs(t, err, ErrSchema)

	_, err = reg.Define("K").
		Prop("a", String(XMLContent())).
		Prop("b", String(XMLContent())).
		Register()
	assert.ErrorIs(t, err, ErrSchema)

	_, err = reg.Define("K").
		Prop("a", String(XMLAttribute(), XMLTag("id"))).
		Prop("id", String(XMLAttribute())).
		Register()
	assert.ErrorIs(t, err, ErrSchema)

	_, err = reg.Define("K").
		Prop("a", Int(XMLTag("b"))).
		Prop("b", Int()).
		Register()
	assert.ErrorIs(t, err, ErrSchema)

	_, err = reg.Define("K").
		Prop("a", Int(XMLAttribute())).
		Prop("b", Int(XMLTag("a"))).
		Register()
	assert.NoError(t, err, "attributes and child elements do not collide")
}

func TestRedefinitionReplacesKind(t *testing.T) {
	reg := NewRegistry()
	reg.Define("A").Prop("x", Int()).MustRegister()
	second := reg.Define("A").Tag("a").Prop("y", Int()).MustRegister()

	got, ok := reg.Kind("A")
	require.True(t, ok)
	assert.Same(t, second, got)

	byTag, ok := reg.KindByTag("a")
	require.True(t, ok)
	assert.Same(t, second, byTag)
	assert.Len(t, reg.Kinds(), 1)
}

func TestDeclRoundTrip(t *testing.T) {
	reg := NewRegistry()
	decl := KindDecl{
		Name: "Duration",
		Tag:  "duration",
		Properties: []PropertyDecl{
			{Name: "unit", Type: "string", Optional: true, XMLStyle: "attribute"},
			{Name: "uncertainty", Type: "float", Optional: true},
			{Name: "value", Type: "float", Optional: true, XMLStyle: "content"},
			{Name: "scale", Type: "int", Default: "3"},
		},
	}
	k, err := reg.Declare(decl)
	require.NoError(t, err)

	p, ok := k.Prop("scale")
	require.True(t, ok)
	assert.Equal(t, int64(3), p.Type.Meta().Default)

	decl.Properties[3].Default = int64(3)
	assert.Equal(t, decl, k.Decl())

	raw, err := k.MarshalJSON()
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"xmlstyle":"content"`)
}

func TestDeclareErrors(t *testing.T) {
	reg := NewRegistry()

	_, err := reg.Declare(KindDecl{Name: "K", Extends: "Nope"})
	assert.ErrorIs(t, err, ErrLookup)

	_, err = reg.Declare(KindDecl{Name: "K", Properties: []PropertyDecl{{Name: "a", Type: "int", Default: "x"}}})
	assert.ErrorIs(t, err, ErrSchema)

	_, err = reg.Declare(KindDecl{Name: "K", Properties: []PropertyDecl{{Name: "a", Type: "int", XMLStyle: "side"}}})
	assert.ErrorIs(t, err, ErrSchema)
}

func TestObjectDecode(t *testing.T) {
	reg := NewRegistry()
	k := reg.Define("Duration").
		Prop("unit", String()).
		Prop("values", ListOf(Float())).
		MustRegister()

	var out struct {
		Unit   string    `guts:"unit"`
		Values []float64 `guts:"values"`
	}
	obj := k.MustNew(Values{"unit": "s", "values": []float64{1.5, 2}})
	require.NoError(t, obj.Decode(&out))
	assert.Equal(t, "s", out.Unit)
	assert.Equal(t, []float64{1.5, 2}, out.Values)
}

func TestCloneIsDeep(t *testing.T) {
	_, x := newSample(t)
	obj := x.MustNew(Values{"a": 1, "d": []int{1}})
	c := obj.Clone()
	require.NoError(t, c.Append("d", 2))

	assert.Equal(t, []any{int64(1)}, obj.MustGet("d"))
	assert.True(t, Equal(obj, obj.Clone()))
	assert.False(t, Equal(obj, c))
}

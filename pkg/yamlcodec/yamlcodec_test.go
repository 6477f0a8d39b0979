package yamlcodec

import (
	"math"
	"strings"
	"testing"
	"time"

	"github.com/aretw0/guts/pkg/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tstamp(year int, month time.Month, day, hour, min, sec int) float64 {
	return float64(time.Date(year, month, day, hour, min, sec, 0, time.UTC).Unix())
}

func ascii() string {
	var b strings.Builder
	for c := 32; c < 128; c++ {
		b.WriteByte(byte(c))
	}
	return b.String()
}

type sampleSet struct {
	name   string
	typ    func(opts ...schema.Option) schema.Type
	values []any
}

func basicSamples() []sampleSet {
	return []sampleSet{
		{"bool", func(o ...schema.Option) schema.Type { return schema.Bool(o...) }, []any{true, false}},
		{"int", func(o ...schema.Option) schema.Type { return schema.Int(o...) }, []any{int64(2), int64(1 << 30)}},
		{"float", func(o ...schema.Option) schema.Type { return schema.Float(o...) },
			[]any{0.0, 1.0, math.Pi, math.Inf(1), math.Inf(-1), math.NaN(), 1e-7, 2.5e20}},
		{"string", func(o ...schema.Option) schema.Type { return schema.String(o...) },
			[]any{"", "test", "abc def", "<", "\n", `"`, "'", "1", "true", "null", " padded ", "two\nlines\n", "\ttab", ascii()}},
		{"complex", func(o ...schema.Option) schema.Type { return schema.Complex(o...) },
			[]any{complex(1, 5), complex(0, 0), complex(math.Inf(1), 0), complex(math.Pi, 1)}},
		{"timestamp", func(o ...schema.Option) schema.Type { return schema.Timestamp(o...) },
			[]any{0.0, tstamp(2030, 1, 1, 0, 0, 0), tstamp(1960, 1, 1, 0, 0, 0), tstamp(2010, 10, 10, 10, 10, 10) + 0.000001}},
		{"pattern", func(o ...schema.Option) schema.Type { return schema.Pattern("[a-z]{3}", o...) }, []any{"aaa", "zzz"}},
		{"choice", func(o ...schema.Option) schema.Type { return schema.Choice([]string{"a", "bcd", "efg"}, o...) },
			[]any{"a", "bcd", "efg"}},
	}
}

func TestBasicTypeRoundTrip(t *testing.T) {
	for _, set := range basicSamples() {
		for i, sample := range set.values {
			t.Run(set.name, func(t *testing.T) {
				reg := schema.NewRegistry()
				x := reg.Define("X").Tag("x").
					Prop("a", set.typ()).
					Prop("b", set.typ(schema.Optional())).
					Prop("c", set.typ(schema.Default(sample))).
					Prop("d", schema.ListOf(set.typ())).
					Prop("e", schema.TupleOf(1, set.typ())).
					MustRegister()

				obj := x.MustNew(schema.Values{"a": sample, "e": schema.NewTuple(sample)})
				require.NoError(t, obj.Append("d", sample))
				require.NoError(t, obj.Validate(), "sample %d", i)

				data, err := Dump(obj)
				require.NoError(t, err)

				loaded, err := LoadObject(data, WithRegistry(reg))
				require.NoError(t, err, "yaml:\n%s", data)
				require.NoError(t, loaded.Validate(), "yaml:\n%s", data)

				assert.True(t, schema.Equal(obj, loaded), "sample %d: %v != %v\n%s", i, obj, loaded, data)
				assert.False(t, loaded.IsSet("b"))
				assert.Len(t, loaded.MustGet("d"), 1)
				assert.Equal(t, 1, loaded.MustGet("e").(schema.Tuple).Len())
			})
		}
	}
}

func TestDumpFormat(t *testing.T) {
	reg := schema.NewRegistry()
	k := reg.Define("Reading").
		Prop("when", schema.Timestamp()).
		Prop("value", schema.Float()).
		Prop("label", schema.String(schema.Optional())).
		Prop("flags", schema.ListOf(schema.Bool())).
		MustRegister()

	obj := k.MustNew(schema.Values{
		"when":  tstamp(2010, 1, 1, 10, 20, 1) + 0.5,
		"value": 3.0,
		"flags": []bool{true},
	})
	data, err := Dump(obj)
	require.NoError(t, err)

	out := string(data)
	assert.True(t, strings.HasPrefix(out, "!Reading"), out)
	assert.Contains(t, out, "when: 2010-01-01 10:20:01.500000\n")
	assert.Contains(t, out, "value: 3.0\n")
	assert.Contains(t, out, "flags:\n  - true\n")
	assert.NotContains(t, out, "label")
}

func TestDumpSpecialFloats(t *testing.T) {
	data, err := Dump([]any{math.Inf(1), math.Inf(-1), math.NaN(), 2.0})
	require.NoError(t, err)
	assert.Equal(t, "- .inf\n- -.inf\n- .nan\n- 2.0\n", string(data))
}

func TestLoadPlainValues(t *testing.T) {
	v, err := Load([]byte("a: 1\nb: [x, 2.5, true]\nc: null\n"))
	require.NoError(t, err)
	assert.Equal(t, map[string]any{
		"a": int64(1),
		"b": []any{"x", 2.5, true},
		"c": nil,
	}, v)

	v, err = Load(nil)
	require.NoError(t, err)
	assert.Nil(t, v)
}

func TestLoadCoercesByDeclaredType(t *testing.T) {
	reg := schema.NewRegistry()
	reg.Define("K").
		Prop("f", schema.Float()).
		Prop("s", schema.String()).
		Prop("ts", schema.Timestamp()).
		Prop("c", schema.Complex()).
		MustRegister()

	obj, err := LoadObject([]byte("!K\nf: 1\ns: 1.50\nts: 2010-01-01T10:20:01.11Z\nc: (1+5j)\n"), WithRegistry(reg))
	require.NoError(t, err)
	require.NoError(t, obj.Validate())

	assert.Equal(t, 1.0, obj.MustGet("f"))
	assert.Equal(t, "1.50", obj.MustGet("s"))
	assert.InDelta(t, tstamp(2010, 1, 1, 10, 20, 1)+0.11, obj.MustGet("ts"), 1e-6)
	assert.Equal(t, complex(1, 5), obj.MustGet("c"))
}

func TestLoadNestedUntaggedRecord(t *testing.T) {
	reg := schema.NewRegistry()
	leaf := reg.Define("Leaf").Prop("v", schema.Int()).MustRegister()
	reg.Define("Top").Prop("leaf", leaf.T()).Prop("more", schema.ListOf(reg.Defer("Leaf"))).MustRegister()

	obj, err := LoadObject([]byte("!Top\nleaf:\n  v: 1\nmore:\n  - !Leaf\n    v: 2\n"), WithRegistry(reg))
	require.NoError(t, err)
	require.NoError(t, obj.Validate())

	nested := obj.MustGet("leaf").(*schema.Object)
	assert.Equal(t, "Leaf", nested.Kind().Name())
	assert.Equal(t, int64(2), obj.MustGet("more").([]any)[0].(*schema.Object).MustGet("v"))
}

func TestLoadErrors(t *testing.T) {
	reg := schema.NewRegistry()
	reg.Define("K").Prop("a", schema.Int()).MustRegister()

	tests := []struct {
		name string
		doc  string
		want error
	}{
		{"malformed", "a: [1, 2\n", schema.ErrMalformed},
		{"unknown tag", "!Nope\na: 1\n", schema.ErrLookup},
		{"unknown property", "!K\nb: 1\n", schema.ErrArgument},
		{"not a record", "- 1\n", schema.ErrArgument},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadObject([]byte(tt.doc), WithRegistry(reg))
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestLoadDoesNotValidate(t *testing.T) {
	reg := schema.NewRegistry()
	reg.Define("K").Prop("a", schema.Int()).MustRegister()

	obj, err := LoadObject([]byte("!K\na: many\n"), WithRegistry(reg))
	require.NoError(t, err)
	assert.Equal(t, "many", obj.MustGet("a"))
	assert.ErrorIs(t, obj.Validate(), schema.ErrValidation)
}

func TestDumpAllLoadAll(t *testing.T) {
	reg := schema.NewRegistry()
	k := reg.Define("K").Prop("a", schema.Int()).MustRegister()

	data, err := DumpAll([]any{k.MustNew(schema.Values{"a": 1}), k.MustNew(schema.Values{"a": 2})})
	require.NoError(t, err)
	assert.Equal(t, 1, strings.Count(string(data), "---\n"))

	docs, err := LoadAll(data, WithRegistry(reg))
	require.NoError(t, err)
	require.Len(t, docs, 2)
	assert.Equal(t, int64(2), docs[1].(*schema.Object).MustGet("a"))
}

func TestDumpUnionPicksAcceptingMember(t *testing.T) {
	reg := schema.NewRegistry()
	k := reg.Define("K").
		Prop("u", schema.UnionOf([]schema.Type{schema.Timestamp(), schema.String()})).
		MustRegister()

	data, err := Dump(k.MustNew(schema.Values{"u": 0.0}))
	require.NoError(t, err)
	assert.Contains(t, string(data), "u: 1970-01-01 00:00:00.000000\n")
}

type regularizeSample struct {
	name string
	typ  func(opts ...schema.Option) schema.Type
	in   any
	want any
}

func regularizeSamples() []regularizeSample {
	boolT := func(o ...schema.Option) schema.Type { return schema.Bool(o...) }
	intT := func(o ...schema.Option) schema.Type { return schema.Int(o...) }
	floatT := func(o ...schema.Option) schema.Type { return schema.Float(o...) }
	stringT := func(o ...schema.Option) schema.Type { return schema.String(o...) }
	timeT := func(o ...schema.Option) schema.Type { return schema.Timestamp(o...) }
	return []regularizeSample{
		{"bool from 1", boolT, 1, true},
		{"bool from 0", boolT, 0, false},
		{"bool from \"0\"", boolT, "0", false},
		{"bool from \"False\"", boolT, "False", false},
		{"int from \"1\"", intT, "1", int64(1)},
		{"int from 1.0", intT, 1.0, int64(1)},
		{"int from 1.1", intT, 1.1, int64(1)},
		{"float from \"1.0\"", floatT, "1.0", 1.0},
		{"float from 1", floatT, 1, 1.0},
		{"float from \"inf\"", floatT, "inf", math.Inf(1)},
		{"string from 1", stringT, 1, "1"},
		{"timestamp with space", timeT, "2010-01-01 10:20:01", tstamp(2010, 1, 1, 10, 20, 1)},
		{"timestamp with T", timeT, "2010-01-01T10:20:01", tstamp(2010, 1, 1, 10, 20, 1)},
		{"timestamp with Z", timeT, "2010-01-01T10:20:01.11Z", tstamp(2010, 1, 1, 10, 20, 1) + 0.11},
		{"timestamp with fraction", timeT, "2030-12-12 00:00:10.11111", tstamp(2030, 12, 12, 0, 0, 10) + 0.11111},
	}
}

func TestBasicTypeRegularizeRoundTrip(t *testing.T) {
	for _, tc := range regularizeSamples() {
		t.Run(tc.name, func(t *testing.T) {
			reg := schema.NewRegistry()
			x := reg.Define("X").Tag("x").
				Prop("a", tc.typ()).
				Prop("b", tc.typ(schema.Optional())).
				Prop("c", tc.typ(schema.Default(tc.want))).
				Prop("d", schema.ListOf(tc.typ())).
				Prop("e", schema.TupleOf(1, tc.typ())).
				MustRegister()

			obj := x.MustNew(schema.Values{"a": tc.in, "e": schema.NewTuple(tc.in)})
			require.NoError(t, obj.Append("d", tc.in))
			assert.ErrorIs(t, obj.Validate(), schema.ErrValidation)
			require.NoError(t, obj.Validate(schema.Regularize()))
			assert.Equal(t, tc.want, obj.MustGet("a"))

			data, err := Dump(obj)
			require.NoError(t, err)

			loaded, err := LoadObject(data, WithRegistry(reg))
			require.NoError(t, err, "yaml:\n%s", data)
			require.NoError(t, loaded.Validate(), "yaml:\n%s", data)

			assert.True(t, schema.Equal(obj, loaded), "%v != %v\n%s", obj, loaded, data)
			assert.Equal(t, tc.want, loaded.MustGet("c"))
			assert.Equal(t, []any{tc.want}, loaded.MustGet("d"))
			assert.Equal(t, tc.want, loaded.MustGet("e").(schema.Tuple).Items()[0])
			assert.False(t, loaded.IsSet("b"))
		})
	}
}

func TestLoadKeepsQuotedScalarsForStrictValidation(t *testing.T) {
	reg := schema.NewRegistry()
	reg.Define("K").
		Prop("f", schema.Float()).
		Prop("i", schema.Int()).
		Prop("b", schema.Bool()).
		MustRegister()

	obj, err := LoadObject([]byte("!K\nf: '10'\ni: \"3\"\nb: 'true'\n"), WithRegistry(reg))
	require.NoError(t, err)
	assert.Equal(t, "10", obj.MustGet("f"))
	assert.Equal(t, "3", obj.MustGet("i"))
	assert.Equal(t, "true", obj.MustGet("b"))

	err = obj.Validate()
	require.ErrorIs(t, err, schema.ErrValidation)
	assert.Len(t, schema.FieldErrors(err), 3)

	require.NoError(t, obj.Validate(schema.Regularize()))
	assert.Equal(t, 10.0, obj.MustGet("f"))
	assert.Equal(t, int64(3), obj.MustGet("i"))
	assert.Equal(t, true, obj.MustGet("b"))
}

func TestDumpQuotesStringsWithBreaks(t *testing.T) {
	data, err := Dump(map[string]any{"a": "\n", "b": " x ", "c": "plain"})
	require.NoError(t, err)
	assert.Equal(t, "a: \"\\n\"\nb: \" x \"\nc: plain\n", string(data))

	v, err := Load(data)
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"a": "\n", "b": " x ", "c": "plain"}, v)
}

package schema

import (
	"fmt"
	"strconv"
)

// CheckOption configures a validation call.
type CheckOption func(*checkConfig)

type checkConfig struct {
	regularize bool
	depth      int
}

// Regularize makes validation coerce loosely typed values into their
// canonical representation before checking them.
func Regularize() CheckOption {
	return func(c *checkConfig) { c.regularize = true }
}

// RegularizeIf is Regularize when on is true.
func RegularizeIf(on bool) CheckOption {
	return func(c *checkConfig) { c.regularize = on }
}

// Depth limits how many levels of nested records have their properties
// checked. Negative means unlimited (the default).
func Depth(n int) CheckOption {
	return func(c *checkConfig) { c.depth = n }
}

func newConfig(opts []CheckOption) checkConfig {
	cfg := checkConfig{depth: -1}
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

// Validate checks o against its kind. Every failure in the tree is reported
// in a single *ValidationError. When regularizing, coerced values are written
// back into o (and nested records) only if the whole check succeeds.
func (o *Object) Validate(opts ...CheckOption) error {
	_, err := Check(o, o.kind.T(), opts...)
	return err
}

// Check validates a bare value against t and returns its canonical form.
func Check(v any, t Type, opts ...CheckOption) (any, error) {
	cfg := newConfig(opts)
	c := newChecker(cfg.regularize, cfg.depth)
	out, _ := c.check(normalize(v), t, "")
	if c.fatal != nil {
		return v, c.fatal
	}
	if len(c.errs) > 0 {
		return v, &ValidationError{Errors: c.errs}
	}
	for _, commit := range c.commits {
		commit()
	}
	return out, nil
}

// Coerce regularizes a single value against t and returns its canonical
// form. Nested records reached through v are updated only on success.
func Coerce(v any, t Type) (any, error) {
	return Check(v, t, Regularize())
}

// checker accumulates failures over one walk of a value tree. Writes of
// regularized values are deferred as commits.
type checker struct {
	regularize bool
	depth      int
	errs       []*FieldError
	commits    []func()
	fatal      error
	active     map[*Object]bool
}

func newChecker(regularize bool, depth int) *checker {
	return &checker{regularize: regularize, depth: depth, active: make(map[*Object]bool)}
}

func (c *checker) sub(regularize bool) *checker {
	return &checker{regularize: regularize, depth: c.depth, active: c.active}
}

func (c *checker) fail(path string, v any, format string, args ...any) {
	c.errs = append(c.errs, &FieldError{Path: path, Reason: fmt.Sprintf(format, args...), Value: v})
}

func joinField(path, name string) string {
	if path == "" {
		return name
	}
	return path + "." + name
}

func joinIndex(path string, i int) string {
	return path + "[" + strconv.Itoa(i) + "]"
}

// check returns the canonical form of v and whether v (and everything below
// it) is valid.
func (c *checker) check(v any, t Type, path string) (any, bool) {
	before := len(c.errs)
	ok := func() bool { return len(c.errs) == before && c.fatal == nil }

	switch tt := t.(type) {
	case *DeferredType:
		resolved, err := tt.Resolve()
		if err != nil {
			if c.fatal == nil {
				c.fatal = err
			}
			return v, false
		}
		return c.check(v, resolved, path)

	case *UnionType:
		return c.checkUnion(v, tt, path)

	case *ListType:
		items, isList := v.([]any)
		if !isList && c.regularize {
			if tup, isTuple := v.(Tuple); isTuple {
				items, isList = tup.Items(), true
			}
		}
		if !isList {
			c.fail(path, v, "expected list")
			return v, false
		}
		var out []any
		if c.regularize {
			out = make([]any, len(items))
		}
		for i, item := range items {
			cv, _ := c.check(item, tt.elem, joinIndex(path, i))
			if out != nil {
				out[i] = cv
			}
		}
		if out == nil {
			return v, ok()
		}
		return out, ok()

	case *TupleType:
		tup, isTuple := v.(Tuple)
		if !isTuple && c.regularize {
			if items, isList := v.([]any); isList {
				tup, isTuple = Tuple{items: items}, true
			}
		}
		if !isTuple {
			c.fail(path, v, "expected tuple of %d elements", tt.n)
			return v, false
		}
		if tup.Len() != tt.n {
			c.fail(path, v, "expected tuple of %d elements, got %d", tt.n, tup.Len())
			return v, false
		}
		out := make([]any, tup.Len())
		for i := range out {
			out[i], _ = c.check(tup.At(i), tt.elem, joinIndex(path, i))
		}
		if !c.regularize {
			return v, ok()
		}
		return Tuple{items: out}, ok()

	case *RecordType:
		return c.checkRecord(v, tt, path)

	default:
		out, err := checkScalar(v, t, c.regularize)
		if err != nil {
			c.fail(path, v, "%s", err.Error())
			return v, false
		}
		return out, true
	}
}

func (c *checker) checkRecord(v any, t *RecordType, path string) (any, bool) {
	before := len(c.errs)

	obj, isObj := v.(*Object)
	if !isObj && c.regularize {
		if m, isMap := v.(map[string]any); isMap {
			o, err := t.kind.New(Values(m))
			if err != nil {
				c.fail(path, v, "%s", err.Error())
				return v, false
			}
			obj, isObj = o, true
		}
	}
	if !isObj {
		c.fail(path, v, "expected %s", t.kind.name)
		return v, false
	}
	if !t.kind.AssignableFrom(obj.kind) {
		c.fail(path, nil, "expected %s, got %s", t.kind.name, obj.kind.name)
		return v, false
	}
	if c.depth == 0 || c.active[obj] {
		return obj, true
	}

	c.active[obj] = true
	defer delete(c.active, obj)
	if c.depth > 0 {
		c.depth--
		defer func() { c.depth++ }()
	}

	for _, p := range obj.kind.props {
		fieldPath := joinField(path, p.Name)
		val, set := obj.values[p.Name]
		if !set {
			if !p.Type.Meta().Optional {
				c.fail(fieldPath, nil, "missing required property")
			}
			continue
		}
		cv, valid := c.check(val, p.Type, fieldPath)
		if valid && c.regularize {
			target, name := obj, p.Name
			c.commits = append(c.commits, func() { target.values[name] = cv })
		}
	}
	return obj, len(c.errs) == before && c.fatal == nil
}

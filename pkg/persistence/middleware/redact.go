package middleware

import (
	"context"
	"fmt"
	"regexp"

	"github.com/aretw0/guts/pkg/ports"
	"github.com/aretw0/guts/pkg/schema"
)

// Mask replaces redacted string values.
const Mask = "***"

type redactMiddleware struct {
	next     ports.DocumentStore
	patterns []*regexp.Regexp
}

// NewRedactMiddleware creates a middleware that masks properties whose names
// match any of the patterns, at any depth, before records are saved.
//
// A string value is replaced by Mask when the property type accepts it.
// Otherwise lists are emptied and optional properties unset; a required
// property that cannot hold the mask fails the Save with schema.ErrArgument.
func NewRedactMiddleware(patternStrings []string) (Middleware, error) {
	patterns := make([]*regexp.Regexp, len(patternStrings))
	for i, p := range patternStrings {
		re, err := regexp.Compile(p)
		if err != nil {
			return nil, fmt.Errorf("invalid redact pattern %q: %w", p, err)
		}
		patterns[i] = re
	}
	return func(next ports.DocumentStore) ports.DocumentStore {
		return &redactMiddleware{next: next, patterns: patterns}
	}, nil
}

func (m *redactMiddleware) Save(ctx context.Context, id string, obj *schema.Object) error {
	if obj == nil {
		return m.next.Save(ctx, id, obj)
	}
	// Never touch the caller's record.
	cloned := obj.Clone()
	if err := m.redact(cloned); err != nil {
		return err
	}
	return m.next.Save(ctx, id, cloned)
}

func (m *redactMiddleware) Load(ctx context.Context, id string) (*schema.Object, error) {
	return m.next.Load(ctx, id)
}

func (m *redactMiddleware) Delete(ctx context.Context, id string) error {
	return m.next.Delete(ctx, id)
}

func (m *redactMiddleware) List(ctx context.Context) ([]string, error) {
	return m.next.List(ctx)
}

func (m *redactMiddleware) matches(name string) bool {
	for _, p := range m.patterns {
		if p.MatchString(name) {
			return true
		}
	}
	return false
}

func (m *redactMiddleware) redact(o *schema.Object) error {
	for _, p := range o.Kind().Props() {
		v, ok := o.Get(p.Name)
		if !ok {
			continue
		}
		if m.matches(p.Name) {
			if err := mask(o, p, v); err != nil {
				return err
			}
			continue
		}
		if err := m.walk(v); err != nil {
			return err
		}
	}
	return nil
}

func (m *redactMiddleware) walk(v any) error {
	switch x := v.(type) {
	case *schema.Object:
		return m.redact(x)
	case []any:
		for _, item := range x {
			if err := m.walk(item); err != nil {
				return err
			}
		}
	case schema.Tuple:
		for i := 0; i < x.Len(); i++ {
			if err := m.walk(x.At(i)); err != nil {
				return err
			}
		}
	}
	return nil
}

func mask(o *schema.Object, p *schema.Property, v any) error {
	if _, isString := v.(string); isString {
		if _, err := schema.Check(Mask, p.Type); err == nil {
			return o.Set(p.Name, Mask)
		}
	}
	t, err := schema.Resolve(p.Type)
	if err != nil {
		return err
	}
	if _, isList := t.(*schema.ListType); isList || p.Optional() {
		return o.Unset(p.Name)
	}
	return fmt.Errorf("%w: cannot redact required property %s.%s", schema.ErrArgument, o.Kind().Name(), p.Name)
}

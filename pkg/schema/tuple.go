package schema

import (
	"fmt"
	"strings"
)

// Tuple is an immutable, fixed-length sequence.
type Tuple struct {
	items []any
}

// NewTuple creates a tuple holding a copy of items.
func NewTuple(items ...any) Tuple {
	cp := make([]any, len(items))
	for i, v := range items {
		cp[i] = normalize(v)
	}
	return Tuple{items: cp}
}

// Len returns the number of elements.
func (t Tuple) Len() int { return len(t.items) }

// At returns the i-th element.
func (t Tuple) At(i int) any { return t.items[i] }

// Items returns a copy of the elements.
func (t Tuple) Items() []any {
	return append([]any{}, t.items...)
}

func (t Tuple) String() string {
	parts := make([]string, len(t.items))
	for i, v := range t.items {
		parts[i] = fmt.Sprintf("%v", v)
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

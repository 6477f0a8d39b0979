package schema

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseType converts a type expression into a Type. Names that are not
// built-in types become deferred references into reg.
//
//	bool, int, float, complex, string, timestamp
//	[T]                  list of T
//	tuple(N, T)          tuple of N elements of T
//	union(T1, T2, ...)   union, in priority order
//	choice(a, b, ...)    string choice
//	pattern(REGEX)       pattern-constrained string
//	Name                 reference to a kind or named type
//
// The options apply to the outermost type.
func ParseType(expr string, reg *Registry, opts ...Option) (Type, error) {
	p := &typeParser{s: expr, reg: reg}
	t, err := p.parse(opts)
	if err != nil {
		return nil, fmt.Errorf("%w: type %q: %v", ErrSchema, expr, err)
	}
	p.skipSpace()
	if p.pos != len(p.s) {
		return nil, fmt.Errorf("%w: type %q: unexpected %q", ErrSchema, expr, p.s[p.pos:])
	}
	return t, nil
}

type typeParser struct {
	s   string
	pos int
	reg *Registry
}

func (p *typeParser) skipSpace() {
	for p.pos < len(p.s) && (p.s[p.pos] == ' ' || p.s[p.pos] == '\t') {
		p.pos++
	}
}

func (p *typeParser) peek() byte {
	if p.pos < len(p.s) {
		return p.s[p.pos]
	}
	return 0
}

func (p *typeParser) expect(c byte) error {
	p.skipSpace()
	if p.peek() != c {
		return fmt.Errorf("expected %q at offset %d", c, p.pos)
	}
	p.pos++
	return nil
}

func (p *typeParser) ident() string {
	start := p.pos
	for p.pos < len(p.s) {
		c := p.s[p.pos]
		if c == '_' || c == '.' || c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9' {
			p.pos++
			continue
		}
		break
	}
	return p.s[start:p.pos]
}

// balanced consumes "( ... )" and returns the text between the parentheses.
// Nested parentheses are kept; a backslash escapes the next byte.
func (p *typeParser) balanced() (string, error) {
	if p.peek() != '(' {
		return "", fmt.Errorf("expected '(' at offset %d", p.pos)
	}
	start := p.pos + 1
	depth := 0
	for i := p.pos; i < len(p.s); i++ {
		switch p.s[i] {
		case '\\':
			i++
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 {
				p.pos = i + 1
				return p.s[start:i], nil
			}
		}
	}
	return "", fmt.Errorf("unbalanced parentheses")
}

func (p *typeParser) parse(opts []Option) (Type, error) {
	p.skipSpace()
	if p.peek() == '[' {
		p.pos++
		elem, err := p.parse(nil)
		if err != nil {
			return nil, err
		}
		if err := p.expect(']'); err != nil {
			return nil, err
		}
		return ListOf(elem, opts...), nil
	}

	name := p.ident()
	if name == "" {
		return nil, fmt.Errorf("expected a type at offset %d", p.pos)
	}
	p.skipSpace()

	if p.peek() == '(' {
		switch name {
		case "pattern":
			raw, err := p.balanced()
			if err != nil {
				return nil, err
			}
			return CompilePattern(raw, opts...)
		case "choice":
			raw, err := p.balanced()
			if err != nil {
				return nil, err
			}
			var choices []string
			for _, c := range strings.Split(raw, ",") {
				if c = strings.TrimSpace(c); c != "" {
					choices = append(choices, c)
				}
			}
			return Choice(choices, opts...), nil
		case "tuple":
			p.pos++
			p.skipSpace()
			start := p.pos
			for p.pos < len(p.s) && p.s[p.pos] >= '0' && p.s[p.pos] <= '9' {
				p.pos++
			}
			n, err := strconv.Atoi(p.s[start:p.pos])
			if err != nil {
				return nil, fmt.Errorf("tuple arity: %v", err)
			}
			if err := p.expect(','); err != nil {
				return nil, err
			}
			elem, err := p.parse(nil)
			if err != nil {
				return nil, err
			}
			if err := p.expect(')'); err != nil {
				return nil, err
			}
			return TupleOf(n, elem, opts...), nil
		case "union":
			p.pos++
			var members []Type
			for {
				m, err := p.parse(nil)
				if err != nil {
					return nil, err
				}
				members = append(members, m)
				p.skipSpace()
				if p.peek() == ',' {
					p.pos++
					continue
				}
				break
			}
			if err := p.expect(')'); err != nil {
				return nil, err
			}
			return UnionOf(members, opts...), nil
		default:
			return nil, fmt.Errorf("unknown type constructor %q", name)
		}
	}

	switch name {
	case "bool":
		return Bool(opts...), nil
	case "int":
		return Int(opts...), nil
	case "float":
		return Float(opts...), nil
	case "complex":
		return Complex(opts...), nil
	case "string":
		return String(opts...), nil
	case "timestamp":
		return Timestamp(opts...), nil
	}
	return p.reg.Defer(name, opts...), nil
}

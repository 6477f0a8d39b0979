package schema

import "strings"

// checkUnion selects the first member accepting v: a strict pass over all
// members, then, when regularizing, a coercing pass in the same order.
func (c *checker) checkUnion(v any, u *UnionType, path string) (any, bool) {
	passes := []bool{false}
	if c.regularize {
		passes = append(passes, true)
	}

	for _, regularize := range passes {
		for _, m := range u.members {
			s := c.sub(regularize)
			out, ok := s.check(v, m, path)
			if s.fatal != nil {
				if c.fatal == nil {
					c.fatal = s.fatal
				}
				return v, false
			}
			if ok {
				c.commits = append(c.commits, s.commits...)
				return out, true
			}
		}
	}

	names := make([]string, len(u.members))
	for i, m := range u.members {
		names[i] = m.Name()
	}
	c.fail(path, v, "no union member accepts %v (tried %s)", v, strings.Join(names, ", "))
	return v, false
}

package source

import (
	sitter "github.com/smacker/go-tree-sitter"
)

// Matcher is a predicate over a syntax node.
type Matcher func(n *sitter.Node, content []byte) bool

// Kind matches named nodes of any of the given types.
func Kind(kinds ...string) Matcher {
	return func(n *sitter.Node, _ []byte) bool {
		if n == nil || !n.IsNamed() {
			return false
		}
		t := n.Type()
		for _, k := range kinds {
			if t == k {
				return true
			}
		}
		return false
	}
}

// Text matches nodes whose source text equals s.
func Text(s string) Matcher {
	return func(n *sitter.Node, content []byte) bool {
		return n != nil && n.Content(content) == s
	}
}

// All matches when every matcher does.
func All(ms ...Matcher) Matcher {
	return func(n *sitter.Node, content []byte) bool {
		for _, m := range ms {
			if !m(n, content) {
				return false
			}
		}
		return true
	}
}

// AnyOf matches when at least one matcher does.
func AnyOf(ms ...Matcher) Matcher {
	return func(n *sitter.Node, content []byte) bool {
		for _, m := range ms {
			if m(n, content) {
				return true
			}
		}
		return false
	}
}

// Not inverts m.
func Not(m Matcher) Matcher {
	return func(n *sitter.Node, content []byte) bool {
		return !m(n, content)
	}
}

// Has matches nodes with a strict named descendant matching m.
func Has(m Matcher) Matcher {
	return func(n *sitter.Node, content []byte) bool {
		if n == nil {
			return false
		}
		found := false
		for i := 0; i < int(n.NamedChildCount()) && !found; i++ {
			walk(n.NamedChild(i), func(c *sitter.Node) bool {
				if found {
					return false
				}
				if m(c, content) {
					found = true
					return false
				}
				return true
			})
		}
		return found
	}
}

// Field matches nodes whose child under the given field name matches m.
func Field(name string, m Matcher) Matcher {
	return func(n *sitter.Node, content []byte) bool {
		if n == nil {
			return false
		}
		child := n.ChildByFieldName(name)
		return child != nil && m(child, content)
	}
}

// StringValue matches string literals whose unquoted value equals value.
func StringValue(value string) Matcher {
	return func(n *sitter.Node, content []byte) bool {
		return Kind("string")(n, content) && Unquote(n.Content(content)) == value
	}
}

// Unquote strips one level of matching quotes from a string literal.
func Unquote(s string) string {
	if len(s) < 2 {
		return s
	}
	switch q := s[0]; q {
	case '\'', '"', '`':
		if s[len(s)-1] == q {
			return s[1 : len(s)-1]
		}
	}
	return s
}

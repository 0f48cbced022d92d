package resolve

import "strings"

// NormalizeScopeColons rewrites scope-resolution "::" tokens to "." when they
// occur outside bracketed subscript regions. Colons inside one or more open
// "[" are left alone, since slice syntax legitimately contains "::". The scan
// is a single pass and idempotent on its own output.
func NormalizeScopeColons(s string) string {
	if !strings.Contains(s, "::") {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	depth := 0
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch c {
		case '[':
			depth++
		case ']':
			if depth > 0 {
				depth--
			}
		case ':':
			if depth == 0 && i+1 < len(s) && s[i+1] == ':' {
				b.WriteByte('.')
				i++
				continue
			}
		}
		b.WriteByte(c)
	}
	return b.String()
}

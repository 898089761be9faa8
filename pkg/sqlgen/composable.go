package sqlgen

import "strings"

// CheckComposable reports whether sql can be nested as a derived table.
//
// Leading whitespace, "--" line comments and "/* */" block comments are
// skipped. The first token must then be SELECT (any case) followed by
// whitespace or the start of a comment.
func CheckComposable(sql string) error {
	rest := skipTrivia(sql)
	const kw = "SELECT"
	if len(rest) <= len(kw) || !strings.EqualFold(rest[:len(kw)], kw) {
		return &NonComposableSQLError{SQL: sql}
	}
	next := rest[len(kw):]
	if isSpace(next[0]) || strings.HasPrefix(next, "--") || strings.HasPrefix(next, "/*") {
		return nil
	}
	return &NonComposableSQLError{SQL: sql}
}

// skipTrivia returns s without leading whitespace and comments.
// An unterminated block comment consumes the rest of the input.
func skipTrivia(s string) string {
	for len(s) > 0 {
		switch {
		case isSpace(s[0]):
			s = s[1:]
		case strings.HasPrefix(s, "--"):
			i := strings.IndexByte(s, '\n')
			if i < 0 {
				return ""
			}
			s = s[i+1:]
		case strings.HasPrefix(s, "/*"):
			i := strings.Index(s[2:], "*/")
			if i < 0 {
				return ""
			}
			s = s[i+4:]
		default:
			return s
		}
	}
	return s
}

func isSpace(c byte) bool {
	switch c {
	case ' ', '\t', '\n', '\r', '\v', '\f':
		return true
	}
	return false
}

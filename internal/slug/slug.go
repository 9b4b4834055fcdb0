// Package slug normalizes entity kind names.
package slug

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// Snake converts s into a lowercase snake_case kind name.
// It NFD-normalizes and strips combining marks, splits camelCase words,
// turns whitespace, dashes, dots and underscores into a single underscore,
// and drops every other non-alphanumeric character.
//
//	Snake("UserAccount") == "user_account"
//	Snake("Café order")  == "cafe_order"
func Snake(s string) string {
	s = norm.NFD.String(s)

	var b strings.Builder
	b.Grow(len(s))
	var prev rune
	pendingSep := false
	for _, r := range s {
		switch {
		case unicode.Is(unicode.Mn, r):
			continue
		case unicode.IsSpace(r) || r == '-' || r == '_' || r == '.':
			pendingSep = true
			prev = r
			continue
		case !unicode.IsLetter(r) && !unicode.IsDigit(r):
			continue
		}
		if unicode.IsUpper(r) && (unicode.IsLower(prev) || unicode.IsDigit(prev)) {
			pendingSep = true
		}
		if pendingSep && b.Len() > 0 {
			b.WriteByte('_')
		}
		pendingSep = false
		b.WriteRune(unicode.ToLower(r))
		prev = r
	}
	return b.String()
}

// Valid reports whether s is already in Snake form and non-empty.
func Valid(s string) bool {
	return s != "" && Snake(s) == s
}

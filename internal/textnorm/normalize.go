// Package textnorm reduces free-form grievance text to the lowercase,
// letters-and-spaces form the keyword matcher works on.
package textnorm

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Normalize lowercases text, drops every rune that is not an ASCII letter or
// whitespace, and collapses whitespace runs to a single space. The file,
// group, record and unit separators (U+001C..U+001F) count as whitespace.
func Normalize(text string) string {
	if text == "" {
		return ""
	}
	lower := cases.Lower(language.Und).String(text)
	var b strings.Builder
	b.Grow(len(lower))
	for _, r := range lower {
		switch {
		case r >= 'a' && r <= 'z':
			b.WriteRune(r)
		case unicode.IsSpace(r), r >= 0x1c && r <= 0x1f:
			b.WriteByte(' ')
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

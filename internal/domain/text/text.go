// Package text normalizes free-text input before it is compared against place names.
package text

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

// Normalize applies NFKC, collapses runs of whitespace to a single space,
// trims the ends and lowercases the result.
func Normalize(s string) string {
	s = norm.NFKC.String(s)
	s = strings.Join(strings.Fields(s), " ")
	// cases.Caser is stateful and not safe for concurrent use.
	return cases.Lower(language.Und).String(s)
}

// Tokens splits an already normalized string on whitespace and keeps tokens
// longer than minRunes runes.
func Tokens(normalized string, minRunes int) []string {
	fields := strings.Fields(normalized)
	out := fields[:0]
	for _, f := range fields {
		if utf8.RuneCountInString(f) > minRunes {
			out = append(out, f)
		}
	}
	return out
}

// RuneLen returns the number of runes in s.
func RuneLen(s string) int { return utf8.RuneCountInString(s) }

// Package sanitizer normalizes user and provider supplied strings before
// they are compared or stored.
package sanitizer

import (
	"strings"
	"unicode"
)

// Trim removes surrounding whitespace.
func Trim(s string) string {
	return strings.TrimSpace(s)
}

// NormalizeEmail trims and lower-cases an address so comparisons are
// case-insensitive.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// StripControl drops non-printable runes other than ordinary spaces.
func StripControl(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsControl(r) {
			return -1
		}
		return r
	}, s)
}

// CleanText strips control characters and trims. Interior whitespace is
// preserved.
func CleanText(s string) string {
	return Trim(StripControl(s))
}

// TrimAll applies CleanText to every pointer in fields.
func TrimAll(fields ...*string) {
	for _, f := range fields {
		if f != nil {
			*f = CleanText(*f)
		}
	}
}

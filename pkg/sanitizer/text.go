package sanitizer

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

var (
	whitespaceRegex = regexp.MustCompile(`\s+`)
	htmlTagRegex    = regexp.MustCompile(`<[^>]*>`)
)

// Trim removes leading and trailing whitespace from a string.
func Trim(s string) string {
	return strings.TrimSpace(s)
}

// NormalizeWhitespace collapses whitespace runs into single spaces and trims.
func NormalizeWhitespace(s string) string {
	return strings.TrimSpace(whitespaceRegex.ReplaceAllString(s, " "))
}

// StripControlChars drops control characters other than newline and tab.
func StripControlChars(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsControl(r) && r != '\n' && r != '\t' {
			return -1
		}
		return r
	}, s)
}

// StripHTML removes anything that looks like an HTML tag.
func StripHTML(s string) string {
	return htmlTagRegex.ReplaceAllString(s, "")
}

// ToNFC composes the string into Unicode normalization form C so visually
// identical names compare equal.
func ToNFC(s string) string {
	return norm.NFC.String(s)
}

// NormalizeName prepares a display name for storage.
func NormalizeName(name string) string {
	return Apply(name, ToNFC, StripControlChars, StripHTML, NormalizeWhitespace)
}

// TruncateRunes shortens s to at most n runes.
func TruncateRunes(s string, n int) string {
	if n <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}

package catalog

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

// Normalize prepares text for comparison: NFC, trimmed, case folded.
// Casers keep state, so a fresh one is built for every call.
func Normalize(s string) string {
	return cases.Fold().String(norm.NFC.String(strings.TrimSpace(s)))
}

// Capitalize trims s and upper-cases its first letter, lower-casing the rest.
// "iVAN" becomes "Ivan"; "anna maria" becomes "Anna maria".
func Capitalize(s string) string {
	s = norm.NFC.String(strings.TrimSpace(s))
	if s == "" {
		return ""
	}
	first, size := utf8.DecodeRuneInString(s)
	return string(unicode.ToTitle(first)) + cases.Lower(language.Und).String(s[size:])
}

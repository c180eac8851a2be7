// Package strfold normalizes guest names for matching: lowercase, trimmed,
// diacritics stripped. "María  Silva" and "maria silva" fold to the same key.
package strfold

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Fold returns the canonical matching form of s.
// Transformers carry state, so the chain is built per call rather than shared.
func Fold(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		out = s
	}
	return strings.ToLower(collapseSpaces(strings.TrimSpace(out)))
}

// Contains reports whether haystack contains needle after folding both.
func Contains(haystack, needle string) bool {
	return strings.Contains(Fold(haystack), Fold(needle))
}

func collapseSpaces(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

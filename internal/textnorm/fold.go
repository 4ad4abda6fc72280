// Package textnorm folds text into the lowercase, diacritic-free form that
// every matcher in the retrieval pipeline compares against.
package textnorm

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Fold lowercases s and strips combining marks, so "Expérience" and
// "EXPERIENCE" both become "experience".
func Fold(s string) string {
	// transform.Chain keeps state between calls; build one per call.
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, s)
	if err != nil {
		folded = s
	}
	return strings.ToLower(folded)
}

// IsWordRune reports whether r counts as part of a word for boundary checks.
func IsWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_'
}

// Words splits s on whitespace and returns the folded, deduplicated words
// longer than minLen runes, in first-seen order.
func Words(s string, minLen int) []string {
	fields := strings.Fields(Fold(s))
	out := make([]string, 0, len(fields))
	seen := make(map[string]struct{}, len(fields))
	for _, f := range fields {
		if len([]rune(f)) <= minLen {
			continue
		}
		if _, ok := seen[f]; ok {
			continue
		}
		seen[f] = struct{}{}
		out = append(out, f)
	}
	return out
}

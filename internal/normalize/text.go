// Package normalize canonicalizes field values so two extraction sources
// can be compared for equality. Normalization never mutates the recorded
// source value; callers compare normalized copies and keep the originals.
package normalize

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// stripMarks decomposes to NFD, removes combining marks, and recomposes, so
// "José" and "JOSE" normalize to the same string.
var stripMarks = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Text trims, case-folds, collapses internal whitespace, and strips
// diacritical marks. An unparseable input is returned in this reduced form
// unchanged otherwise; downstream equality simply treats it as non-matching.
// Idempotent: Text(Text(s)) == Text(s).
func Text(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	s = strings.ToLower(s)
	s = strings.Join(strings.Fields(s), " ")
	out, _, err := transform.String(stripMarks, s)
	if err != nil {
		// Transform failures keep the case-folded form; comparison still works.
		return s
	}
	return out
}

// Code normalizes short coded values (nationality, sex, document numbers):
// uppercase, with whitespace and MRZ filler characters removed.
func Code(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	s = strings.ToUpper(s)
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r == '<' || unicode.IsSpace(r) {
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

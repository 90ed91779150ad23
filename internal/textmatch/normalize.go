// Package textmatch provides the deterministic text primitives used for resume scoring:
// normalization, tokenization, stemming, keyword extraction, phrase matching and
// experience estimation. Every function is pure and safe for concurrent use.
package textmatch

import (
	"regexp"
	"strings"
)

// nonTokenChars matches runs of characters that never survive normalization.
// '+', '.' and '#' are kept so tokens like "c++", "c#" and "node.js" stay intact.
var nonTokenChars = regexp.MustCompile(`[^a-z0-9+.# ]+`)

// Normalize lower-cases text and replaces every run of characters outside
// [a-z0-9+.# ] with a single space.
func Normalize(text string) string {
	if text == "" {
		return ""
	}
	return nonTokenChars.ReplaceAllString(strings.ToLower(text), " ")
}

// NormalizePhrase normalizes a skill or phrase and collapses its whitespace, giving
// the canonical key used to compare and deduplicate skills.
func NormalizePhrase(phrase string) string {
	return strings.Join(strings.Fields(Normalize(phrase)), " ")
}

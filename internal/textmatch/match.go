package textmatch

import "strings"

// WordHit reports whether phrase occurs in text as a whole, boundary-delimited word
// or word sequence. Both sides are normalized first, so "Go" does not match "ongoing"
// but "machine  learning" matches "Machine Learning". An empty phrase never matches.
// A boundary is the start or end of text or any character outside [a-z0-9+#], so
// "c" does not match inside "c++".
func WordHit(text, phrase string) bool {
	return NewMatcher(text).Hit(phrase)
}

// Matcher tests many phrases against one text, normalizing the text once.
type Matcher struct {
	text string
}

// NewMatcher normalizes text for repeated Hit calls.
func NewMatcher(text string) Matcher {
	return Matcher{text: Normalize(text)}
}

// Hit is WordHit against the matcher's text.
func (m Matcher) Hit(phrase string) bool {
	p := NormalizePhrase(phrase)
	if p == "" || m.text == "" {
		return false
	}

	for from := 0; from+len(p) <= len(m.text); {
		i := strings.Index(m.text[from:], p)
		if i < 0 {
			return false
		}
		start := from + i
		end := start + len(p)
		if (start == 0 || !isPhraseByte(m.text[start-1])) && (end == len(m.text) || !isPhraseByte(m.text[end])) {
			return true
		}
		from = start + 1
	}
	return false
}

// isPhraseByte reports whether c can continue a skill token in normalized text
func isPhraseByte(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= '0' && c <= '9' || c == '+' || c == '#'
}

// StemSet returns the set of stems for every word in text. Unlike Tokenize it keeps
// short words and stop words, so membership tests see the whole document.
func StemSet(text string) map[string]struct{} {
	words := Words(Normalize(text))
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		set[Stem(w)] = struct{}{}
	}
	return set
}

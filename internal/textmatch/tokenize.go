package textmatch

import (
	"strings"
	"unicode"

	porterstemmer "github.com/reiver/go-porterstemmer"
)

// minTokenLength is the shortest token Tokenize keeps.
const minTokenLength = 3

// Words lower-cases text and splits it on every rune that is not a letter, digit or
// underscore. Compound tokens split at punctuation: "node.js" yields "node" and "js".
func Words(text string) []string {
	if text == "" {
		return nil
	}
	return strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '_'
	})
}

// Tokenize returns the words of text, dropping tokens shorter than three characters
// and stop words.
func Tokenize(text string) []string {
	words := Words(text)
	tokens := make([]string, 0, len(words))
	for _, w := range words {
		if len([]rune(w)) < minTokenLength || IsStopWord(w) {
			continue
		}
		tokens = append(tokens, w)
	}
	return tokens
}

// Stem reduces a word to its Porter stem, so "managing", "managed" and "manages"
// all become "manag". Words of two characters or fewer are returned lower-cased.
// Stem is total: a word the stemming library cannot handle ("eed", "eeds") loses a
// plural "s" and is otherwise returned lower-cased.
func Stem(word string) string {
	lower := strings.ToLower(word)
	if len([]rune(lower)) < minTokenLength {
		return lower
	}
	if stem, ok := porterStem(lower); ok {
		return stem
	}
	if strings.HasSuffix(lower, "s") && !strings.HasSuffix(lower, "ss") {
		singular := strings.TrimSuffix(lower, "s")
		if stem, ok := porterStem(singular); ok {
			return stem
		}
		return singular
	}
	return lower
}

// porterStem runs the library stemmer, reporting false if it panicked
func porterStem(word string) (stem string, ok bool) {
	defer func() {
		if recover() != nil {
			stem, ok = "", false
		}
	}()
	return porterstemmer.StemString(word), true
}

// StemAll stems every token in order.
func StemAll(tokens []string) []string {
	stems := make([]string, len(tokens))
	for i, t := range tokens {
		stems[i] = Stem(t)
	}
	return stems
}

package textmatch

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWordHit(t *testing.T) {
	tests := []struct {
		name   string
		text   string
		phrase string
		want   bool
	}{
		{name: "simple word", text: "I write Go daily", phrase: "go", want: true},
		{name: "no match inside word", text: "ongoing projects", phrase: "go", want: false},
		{name: "java is not javascript", text: "JavaScript expert", phrase: "java", want: false},
		{name: "multi word phrase", text: "Applied Machine Learning at scale", phrase: "machine learning", want: true},
		{name: "phrase whitespace collapsed", text: "machine learning", phrase: "  Machine \t Learning ", want: true},
		{name: "phrase split across punctuation", text: "machine, learning", phrase: "machine learning", want: false},
		{name: "c++ whole word", text: "Expert in C++, Rust", phrase: "C++", want: true},
		{name: "c does not match c++", text: "Expert in C++", phrase: "c", want: false},
		{name: "c# whole word", text: "C# and .NET", phrase: "c#", want: true},
		{name: "node.js intact", text: "Built APIs with Node.js.", phrase: "node.js", want: true},
		{name: "regex metacharacters escaped", text: "nodexjs", phrase: "node.js", want: false},
		{name: "start of text", text: "react developer", phrase: "react", want: true},
		{name: "end of text", text: "developer using react", phrase: "react", want: true},
		{name: "empty text", text: "", phrase: "react", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, WordHit(tt.text, tt.phrase))
		})
	}
}

func TestWordHit_EmptyPhraseNeverMatches(t *testing.T) {
	for _, text := range []string{"", " ", "anything at all", "!!!"} {
		assert.False(t, WordHit(text, ""), "text %q", text)
		assert.False(t, WordHit(text, "  !! "), "punctuation-only phrase on %q", text)
	}
}

func TestStemSet(t *testing.T) {
	set := StemSet("Managed Node.js services; testing in Go")

	for _, stem := range []string{"manag", "node", "js", "servic", "test", "in", "go"} {
		assert.Contains(t, set, stem)
	}
	assert.NotContains(t, set, "managed")
	assert.Empty(t, StemSet(""))
}

func TestStemSet_UnstemmableToken(t *testing.T) {
	var set map[string]struct{}
	require.NotPanics(t, func() { set = StemSet("Go engineer, EED certified") })
	assert.Contains(t, set, "eed")
}

func TestMatcher_AgreesWithWordHit(t *testing.T) {
	text := "Senior C++ engineer; ongoing work in Go, Node.js and C#. Machine Learning."
	m := NewMatcher(text)
	for _, phrase := range []string{"go", "c", "c++", "c#", "node.js", "machine  learning", "ongoing", "java", "", "learning."} {
		assert.Equal(t, WordHit(text, phrase), m.Hit(phrase), "phrase %q", phrase)
	}
	assert.True(t, m.Hit("C++"))
	assert.False(t, m.Hit("on"))
}

func TestMatcher_RetriesAfterEmbeddedOccurrence(t *testing.T) {
	// first "go" sits inside "ongoing"; the later standalone one must still match
	assert.True(t, NewMatcher("ongoing go").Hit("go"))
	assert.False(t, NewMatcher("gogo").Hit("go"))
	assert.False(t, NewMatcher("").Hit("go"))
}

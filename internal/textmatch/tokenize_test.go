package textmatch

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWords_SplitsCompoundTokens(t *testing.T) {
	assert.Equal(t, []string{"node", "js", "c", "c", "go_lang"}, Words("Node.js C++ C# go_lang"))
	assert.Nil(t, Words(""))
}

func TestTokenize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{name: "empty", input: "", want: []string{}},
		{name: "drops short tokens", input: "go to aws", want: []string{"aws"}},
		{name: "drops stop words", input: "the experience with python", want: []string{"experience", "python"}},
		{name: "splits node.js", input: "Node.js developer", want: []string{"node", "developer"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Tokenize(tt.input))
		})
	}
}

func TestStem_PorterGoldenVectors(t *testing.T) {
	tests := map[string]string{
		"managing":    "manag",
		"managed":     "manag",
		"manages":     "manag",
		"testing":     "test",
		"tested":      "test",
		"running":     "run",
		"engineering": "engin",
		"react":       "react",
		"typescript":  "typescript",
		"node":        "node",
		"sql":         "sql",
		"caresses":    "caress",
		"ponies":      "poni",
		"relational":  "relat",
	}

	for word, want := range tests {
		t.Run(word, func(t *testing.T) {
			assert.Equal(t, want, Stem(word))
		})
	}
}

func TestStem_TotalOnShortInput(t *testing.T) {
	assert.Equal(t, "", Stem(""))
	assert.Equal(t, "go", Stem("Go"))
	assert.Equal(t, "a", Stem("A"))
}

func TestStemAll(t *testing.T) {
	assert.Equal(t, []string{"test", "manag"}, StemAll([]string{"testing", "managed"}))
	assert.Empty(t, StemAll(nil))
}

func TestStem_WordsTheLibraryRejects(t *testing.T) {
	assert.Equal(t, "eed", Stem("eed"))
	assert.Equal(t, "eed", Stem("EEDS"))
}

func TestStem_TotalOverShortWords(t *testing.T) {
	const alphabet = "adeisy"
	var words []string
	var build func(prefix string, n int)
	build = func(prefix string, n int) {
		if n == 0 {
			words = append(words, prefix)
			return
		}
		for _, r := range alphabet {
			build(prefix+string(r), n-1)
		}
	}
	for n := 3; n <= 5; n++ {
		build("", n)
	}

	for _, w := range words {
		assert.NotPanics(t, func() { Stem(w) }, "Stem(%q)", w)
		assert.NotEmpty(t, Stem(w), "Stem(%q)", w)
	}
}

package extraction

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCleanText(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"empty", "", ""},
		{"line endings", "a\r\nb\rc", "a\nb\nc"},
		{"collapses spaces", "Go    and\t\tSQL", "Go and SQL"},
		{"non-breaking space", "Go\u00a0developer", "Go developer"},
		{"blank line runs", "a\n\n\n\n\nb", "a\n\nb"},
		{"blank lines with whitespace", "a\n  \n\t\n \nb", "a\n\nb"},
		{"bullets normalized", "• Built APIs\n*   Led team", "- Built APIs\n- Led team"},
		{"trims document", "\n\n  text  \n\n", "text"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CleanText(tt.input))
		})
	}
}

func TestCleanText_Deterministic(t *testing.T) {
	input := "Test content   with   spaces\n\n\nMultiple   blank   lines"
	assert.Equal(t, CleanText(input), CleanText(CleanText(input)))
}

func TestFindContact(t *testing.T) {
	tests := []struct {
		name string
		text string
		want Contact
	}{
		{"both", "Jane Doe\njane.doe@example.com | +1 (555) 123-4567", Contact{Email: "jane.doe@example.com", Phone: "+1 (555) 123-4567"}},
		{"year ranges are not phones", "Acme 2019-2021, Beta 2021-2023", Contact{}},
		{"indian mobile", "Call 98765 43210", Contact{Phone: "98765 43210"}},
		{"none", "no contact here", Contact{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FindContact(tt.text))
		})
	}
}

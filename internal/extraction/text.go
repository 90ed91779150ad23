package extraction

import (
	"regexp"
	"strings"
)

var (
	spaceRuns     = regexp.MustCompile(`[ \t\f\v\x{00A0}]+`)
	blankLineRuns = regexp.MustCompile(`\n\n\n+`)
)

// CleanText normalizes extracted document text while preserving its line structure:
// line endings become LF, runs of spaces collapse to one, trailing whitespace is
// trimmed, and no more than one blank line appears in a row.
func CleanText(content string) string {
	if content == "" {
		return ""
	}

	content = strings.ReplaceAll(content, "\r\n", "\n")
	content = strings.ReplaceAll(content, "\r", "\n")

	lines := strings.Split(content, "\n")
	for i, line := range lines {
		lines[i] = cleanLine(line)
	}

	result := strings.Join(lines, "\n")
	result = blankLineRuns.ReplaceAllString(result, "\n\n")
	return strings.TrimSpace(result)
}

// cleanLine collapses whitespace within a line, keeping bullet markers intact
func cleanLine(line string) string {
	trimmed := strings.TrimSpace(spaceRuns.ReplaceAllString(line, " "))
	if trimmed == "" {
		return ""
	}
	if isBulletLine(trimmed) {
		return "- " + strings.TrimSpace(trimmed[strings.IndexByte(trimmed, ' ')+1:])
	}
	return trimmed
}

// isBulletLine checks if a line is a bullet list item
func isBulletLine(line string) bool {
	return strings.HasPrefix(line, "- ") || strings.HasPrefix(line, "* ") ||
		strings.HasPrefix(line, "• ") || strings.HasPrefix(line, "· ")
}

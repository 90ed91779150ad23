package textmatch

import (
	"regexp"
	"strconv"
)

// yearsPattern matches phrasings like "5 years", "7+ years", "3yrs", "10 + yr".
var yearsPattern = regexp.MustCompile(`(\d+)\s*\+?\s*(?:years?|yrs?)`)

// EstimateYears returns the largest years-of-experience figure mentioned in text,
// or 0 when none is found. Numbers that do not fit an int are ignored.
func EstimateYears(text string) int {
	best := 0
	for _, m := range yearsPattern.FindAllStringSubmatch(Normalize(text), -1) {
		n, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		if n > best {
			best = n
		}
	}
	return best
}

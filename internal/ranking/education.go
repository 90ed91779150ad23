package ranking

import "regexp"

// degreeMarkers matches common degree abbreviations and field names in resume text.
// "B.E." requires its dots so the verb "be" does not count as a degree.
var degreeMarkers = regexp.MustCompile(`(?i)\b(?:` +
	`(?:b\.?\s?tech|m\.?\s?tech|mca|bca|b\.?sc|m\.?sc|ph\.?d|` +
	`bachelor'?s?|master'?s|master of|computer science|computer engineering|cse)\b` +
	`|b\.e\.|m\.e\.)`)

// HasDegreeMarker reports whether resumeText mentions a recognized degree or field of study.
func HasDegreeMarker(resumeText string) bool {
	return degreeMarkers.MatchString(resumeText)
}

package ranking

import (
	"github.com/jonathan/resume-screener/internal/textmatch"
	"github.com/jonathan/resume-screener/internal/types"
)

// ScoreCoverage computes the coverage-only percentage: the share of job keyword stems
// present among the resume's stems, scaled to 0-100 and rounded to 2 decimals.
// An empty keyword list scores 0.
func ScoreCoverage(resumeText string, keywordStems []string) types.CoverageResult {
	matched := make([]string, 0)
	if len(keywordStems) == 0 {
		return types.CoverageResult{Score: 0, Matched: matched}
	}

	stems := textmatch.StemSet(resumeText)
	for _, k := range keywordStems {
		if _, ok := stems[k]; ok {
			matched = append(matched, k)
		}
	}

	score := 100 * float64(len(matched)) / float64(len(keywordStems))
	return types.CoverageResult{Score: round(score, 2), Matched: matched}
}

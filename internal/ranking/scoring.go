// Package ranking scores resumes against job descriptions and orders candidates by score.
package ranking

import (
	"math"
	"strings"

	"github.com/jonathan/resume-screener/internal/textmatch"
	"github.com/jonathan/resume-screener/internal/types"
)

// Weights and limits for the weighted scorer
const (
	CoverageWeight        = 0.60
	ExperienceWeight      = 0.25
	EducationWeight       = 0.10
	PenaltyPerMissingMust = 0.05
	MaxPenalty            = 0.25
	ExperienceCapYears    = 8
	MaxMatchedSkills      = 20
)

// Derived skill fragments must be longer than 2 and shorter than 24 characters.
const (
	minDerivedSkillLen = 3
	maxDerivedSkillLen = 23
)

// ScoreResume computes the weighted match score of a resume against a job.
// jdSkills is used as the skill list when non-empty; otherwise skills are derived
// from jdText. Must-have skills absent from the resume each cost PenaltyPerMissingMust,
// up to MaxPenalty. The final score is clamped to [0, 1] and rounded to 3 decimals.
func ScoreResume(jdText, resumeText string, jdSkills, mustHave []string) types.MatchResult {
	skills := EffectiveSkills(jdText, jdSkills)
	resume := textmatch.NewMatcher(resumeText)

	matched := make([]string, 0, len(skills))
	for _, skill := range skills {
		if resume.Hit(skill) {
			matched = append(matched, skill)
		}
	}
	coverage := float64(len(matched)) / float64(max(len(skills), 1))

	years := textmatch.EstimateYears(resumeText)
	experience := math.Min(float64(years)/ExperienceCapYears, 1.0)

	education := 0.0
	if HasDegreeMarker(resumeText) {
		education = 1.0
	}

	missing := make([]string, 0)
	for _, must := range mustHave {
		if textmatch.NormalizePhrase(must) == "" {
			continue
		}
		if !resume.Hit(must) {
			missing = append(missing, must)
		}
	}
	penalty := math.Min(MaxPenalty, PenaltyPerMissingMust*float64(len(missing)))

	score := CoverageWeight*coverage +
		ExperienceWeight*experience +
		EducationWeight*education -
		penalty

	if len(matched) > MaxMatchedSkills {
		matched = matched[:MaxMatchedSkills]
	}

	return types.MatchResult{
		Score: round(clamp01(score), 3),
		Reasons: types.ScoreReasons{
			MatchedSkills: matched,
			MissingMust:   missing,
			EstYears:      years,
		},
		Breakdown: types.ScoreBreakdown{
			Coverage:   coverage,
			Experience: experience,
			Education:  education,
			Penalty:    penalty,
		},
	}
}

// EffectiveSkills returns the skill list a job is scored on. Supplied skills are kept
// in their original spelling, deduplicated by normalized form, with blank entries
// dropped. When none are supplied, the job text is lower-cased, split on commas,
// slashes and newlines, and each normalized fragment of a plausible skill length is kept.
func EffectiveSkills(jdText string, jdSkills []string) []string {
	seen := make(map[string]bool)
	skills := make([]string, 0)

	if len(jdSkills) > 0 {
		for _, s := range jdSkills {
			key := textmatch.NormalizePhrase(s)
			if key == "" || seen[key] {
				continue
			}
			seen[key] = true
			skills = append(skills, s)
		}
		return skills
	}

	fragments := strings.FieldsFunc(strings.ToLower(jdText), func(r rune) bool {
		return r == ',' || r == '/' || r == '\n'
	})
	for _, frag := range fragments {
		skill := textmatch.NormalizePhrase(frag)
		if len(skill) < minDerivedSkillLen || len(skill) > maxDerivedSkillLen || seen[skill] {
			continue
		}
		seen[skill] = true
		skills = append(skills, skill)
	}
	return skills
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// round rounds v to the given number of decimal places, half away from zero.
func round(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}

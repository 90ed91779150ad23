// Package types provides type definitions for structured data used throughout the resume-screener system.
//
//nolint:revive // types is a standard Go package name pattern
package types

// ScoreReasons explains a weighted score
type ScoreReasons struct {
	MatchedSkills []string `json:"matched_skills"`
	MissingMust   []string `json:"missing_must"`
	EstYears      int      `json:"est_years"`
}

// ScoreBreakdown holds the individual signals behind a weighted score, before weighting
type ScoreBreakdown struct {
	Coverage   float64 `json:"coverage"`   // 0-1 share of job skills found in the resume
	Experience float64 `json:"experience"` // 0-1, years / 8 capped at 1
	Education  float64 `json:"education"`  // 0 or 1
	Penalty    float64 `json:"penalty"`    // 0-0.25 for missing must-have skills
}

// MatchResult is the output of the weighted scorer
type MatchResult struct {
	Score     float64        `json:"score"` // 0-1, rounded to 3 decimals
	Reasons   ScoreReasons   `json:"reasons"`
	Breakdown ScoreBreakdown `json:"breakdown"`
}

// CoverageResult is the output of the coverage-only scorer
type CoverageResult struct {
	Score   float64  `json:"score"` // 0-100, rounded to 2 decimals
	Matched []string `json:"matched"`
}

// Evaluation is the result of scoring with a selected strategy.
// Exactly one of Weighted or Coverage is set, matching Strategy.
type Evaluation struct {
	Strategy Strategy        `json:"strategy"`
	Weighted *MatchResult    `json:"weighted,omitempty"`
	Coverage *CoverageResult `json:"coverage,omitempty"`
}

// Score returns the strategy's score on its own scale
func (e Evaluation) Score() float64 {
	switch {
	case e.Weighted != nil:
		return e.Weighted.Score
	case e.Coverage != nil:
		return e.Coverage.Score
	default:
		return 0
	}
}

// MatchedSkills returns the matched skills or keyword stems of the evaluation
func (e Evaluation) MatchedSkills() []string {
	switch {
	case e.Weighted != nil:
		return e.Weighted.Reasons.MatchedSkills
	case e.Coverage != nil:
		return e.Coverage.Matched
	default:
		return nil
	}
}

// RankedCandidate is one resume's position in a job ranking
type RankedCandidate struct {
	CandidateID string     `json:"candidate_id"`
	Name        string     `json:"name,omitempty"`
	Rank        int        `json:"rank"`
	Score       float64    `json:"score"`
	Evaluation  Evaluation `json:"evaluation"`
	Notes       string     `json:"notes,omitempty"`
}

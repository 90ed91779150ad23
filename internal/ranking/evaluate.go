package ranking

import (
	"fmt"

	"github.com/jonathan/resume-screener/internal/textmatch"
	"github.com/jonathan/resume-screener/internal/types"
)

// Input is the job and resume material one evaluation needs
type Input struct {
	JDText     string
	ResumeText string
	JDSkills   []string
	MustHave   []string
	// Keywords are precomputed job keyword stems for the coverage strategy.
	// When empty they are extracted from JDText.
	Keywords []string
}

// Evaluate scores a resume with the selected strategy.
func Evaluate(strategy types.Strategy, in Input) (types.Evaluation, error) {
	switch strategy {
	case types.StrategyWeighted:
		result := ScoreResume(in.JDText, in.ResumeText, in.JDSkills, in.MustHave)
		return types.Evaluation{Strategy: strategy, Weighted: &result}, nil
	case types.StrategyCoverage:
		keywords := in.Keywords
		if len(keywords) == 0 {
			keywords = textmatch.ExtractKeywords(in.JDText)
		}
		result := ScoreCoverage(in.ResumeText, keywords)
		return types.Evaluation{Strategy: strategy, Coverage: &result}, nil
	default:
		return types.Evaluation{}, fmt.Errorf("unknown scoring strategy %q", strategy)
	}
}

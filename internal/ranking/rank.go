package ranking

import (
	"context"
	"fmt"
	"runtime"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/jonathan/resume-screener/internal/textmatch"
	"github.com/jonathan/resume-screener/internal/types"
)

// Job is the job side of a ranking run
type Job struct {
	Text     string
	Skills   []string
	MustHave []string
	Keywords []string
}

// Candidate is one resume to rank
type Candidate struct {
	ID   string
	Name string
	Text string
}

// RankResumes scores every candidate against job with the given strategy and returns
// them ordered by score descending, ties broken by candidate ID. Candidates are scored
// concurrently with at most concurrency workers; zero or less uses GOMAXPROCS.
func RankResumes(ctx context.Context, strategy types.Strategy, job Job, candidates []Candidate, concurrency int) ([]types.RankedCandidate, error) {
	if strategy != types.StrategyWeighted && strategy != types.StrategyCoverage {
		return nil, fmt.Errorf("unknown scoring strategy %q", strategy)
	}
	if concurrency <= 0 {
		concurrency = runtime.GOMAXPROCS(0)
	}

	keywords := job.Keywords
	if strategy == types.StrategyCoverage && len(keywords) == 0 {
		keywords = textmatch.ExtractKeywords(job.Text)
	}

	ranked := make([]types.RankedCandidate, len(candidates))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	for i, c := range candidates {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			eval, err := Evaluate(strategy, Input{
				JDText:     job.Text,
				ResumeText: c.Text,
				JDSkills:   job.Skills,
				MustHave:   job.MustHave,
				Keywords:   keywords,
			})
			if err != nil {
				return fmt.Errorf("failed to score candidate %s: %w", c.ID, err)
			}
			ranked[i] = types.RankedCandidate{
				CandidateID: c.ID,
				Name:        c.Name,
				Score:       eval.Score(),
				Evaluation:  eval,
				Notes:       GenerateNotes(eval),
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].Score != ranked[j].Score {
			return ranked[i].Score > ranked[j].Score
		}
		return ranked[i].CandidateID < ranked[j].CandidateID
	})
	for i := range ranked {
		ranked[i].Rank = i + 1
	}

	return ranked, nil
}

// GenerateNotes creates a brief explanation of an evaluation.
func GenerateNotes(eval types.Evaluation) string {
	var parts []string

	switch {
	case eval.Weighted != nil:
		r := eval.Weighted
		parts = append(parts, describeMatch(r.Breakdown.Coverage, r.Reasons.MatchedSkills))
		if r.Reasons.EstYears > 0 {
			parts = append(parts, fmt.Sprintf("%d years of experience", r.Reasons.EstYears))
		} else {
			parts = append(parts, "Experience not stated")
		}
		if r.Breakdown.Education > 0 {
			parts = append(parts, "Degree mentioned")
		}
		if len(r.Reasons.MissingMust) > 0 {
			parts = append(parts, fmt.Sprintf("Missing must-have (%s)", strings.Join(r.Reasons.MissingMust, ", ")))
		}
	case eval.Coverage != nil:
		r := eval.Coverage
		parts = append(parts, describeMatch(r.Score/100, r.Matched))
		parts = append(parts, fmt.Sprintf("%.2f%% keyword coverage", r.Score))
	default:
		return ""
	}

	return strings.Join(parts, ". ")
}

func describeMatch(coverage float64, matched []string) string {
	if len(matched) == 0 {
		return "No skill matches"
	}
	list := strings.Join(matched, ", ")
	switch {
	case coverage >= 0.7:
		return fmt.Sprintf("Strong skill match (%s)", list)
	case coverage >= 0.4:
		return fmt.Sprintf("Moderate skill match (%s)", list)
	default:
		return fmt.Sprintf("Weak skill match (%s)", list)
	}
}

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-screener/internal/ranking"
	"github.com/jonathan/resume-screener/internal/schemas"
	"github.com/jonathan/resume-screener/internal/types"
)

var (
	scoreJDFile     string
	scoreResumeFile string
	scoreSkills     string
	scoreMustHave   string
	scoreStrategy   string
	scoreOutFile    string
)

var scoreCmd = &cobra.Command{
	Use:   "score",
	Short: "Score one resume against a job description",
	Long: `Score a resume file against a job description file and print the evaluation as JSON.
The weighted strategy uses --skills when given and otherwise derives skills from the
job description; the coverage strategy compares stemmed keywords.`,
	RunE: runScore,
}

func init() {
	scoreCmd.Flags().StringVar(&scoreJDFile, "jd", "", "Path to job description file (required)")
	scoreCmd.Flags().StringVar(&scoreResumeFile, "resume", "", "Path to resume file (required)")
	scoreCmd.Flags().StringVar(&scoreSkills, "skills", "", "Comma-separated job skills")
	scoreCmd.Flags().StringVar(&scoreMustHave, "must", "", "Comma-separated must-have skills")
	scoreCmd.Flags().StringVar(&scoreStrategy, "strategy", "", "Scoring strategy: weighted or coverage (default from config)")
	scoreCmd.Flags().StringVarP(&scoreOutFile, "out", "o", "", "Path to output JSON file (default stdout)")
	_ = scoreCmd.MarkFlagRequired("jd")
	_ = scoreCmd.MarkFlagRequired("resume")

	rootCmd.AddCommand(scoreCmd)
}

func runScore(_ *cobra.Command, _ []string) error {
	strategy, err := resolveStrategy(scoreStrategy)
	if err != nil {
		return err
	}

	jdText, err := readDocument(scoreJDFile)
	if err != nil {
		return err
	}
	resumeText, err := readDocument(scoreResumeFile)
	if err != nil {
		return err
	}

	eval, err := ranking.Evaluate(strategy, ranking.Input{
		JDText:     jdText,
		ResumeText: resumeText,
		JDSkills:   splitList(scoreSkills),
		MustHave:   splitList(scoreMustHave),
	})
	if err != nil {
		return err
	}

	if err := writeOutput(schemas.EvaluationSchema, scoreOutFile, eval); err != nil {
		return err
	}
	if scoreOutFile != "" {
		fmt.Printf("Score: %g (%s)\n%s\nOutput: %s\n", eval.Score(), eval.Strategy, ranking.GenerateNotes(eval), scoreOutFile)
	}
	return nil
}

// resolveStrategy parses a --strategy flag, falling back to the configured default
func resolveStrategy(name string) (types.Strategy, error) {
	if name != "" {
		return types.ParseStrategy(name)
	}
	cfg, err := loadConfig()
	if err != nil {
		return "", err
	}
	return cfg.Strategy(), nil
}

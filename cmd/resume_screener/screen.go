package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"text/tabwriter"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/jonathan/resume-screener/internal/db"
	"github.com/jonathan/resume-screener/internal/logging"
	"github.com/jonathan/resume-screener/internal/schemas"
	"github.com/jonathan/resume-screener/internal/screening"
	"github.com/jonathan/resume-screener/internal/types"
)

var (
	screenStorePath string
	screenJobTitle  string
	screenJDFile    string
	screenSkills    string
	screenMustHave  string
	screenStrategy  string
	screenOutFile   string
	screenCSVFile   string
)

var screenCmd = &cobra.Command{
	Use:   "screen RESUME...",
	Short: "Screen a batch of resumes against a job description",
	Long: `Create a job in a local SQLite store, upload every resume file to it and print the
ranked candidates. The store keeps the job and resumes for later use with serve.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runScreen,
}

func init() {
	screenCmd.Flags().StringVar(&screenStorePath, "store", "", "Path to SQLite store (default from config, screener.db)")
	screenCmd.Flags().StringVar(&screenJobTitle, "job-title", "", "Job title (default: job description file name)")
	screenCmd.Flags().StringVar(&screenJDFile, "jd", "", "Path to job description file (required)")
	screenCmd.Flags().StringVar(&screenSkills, "skills", "", "Comma-separated required skills")
	screenCmd.Flags().StringVar(&screenMustHave, "must", "", "Comma-separated must-have skills")
	screenCmd.Flags().StringVar(&screenStrategy, "strategy", "", "Ranking strategy: weighted or coverage (default from config)")
	screenCmd.Flags().StringVarP(&screenOutFile, "out", "o", "", "Write the ranking as JSON to this file")
	screenCmd.Flags().StringVar(&screenCSVFile, "csv", "", "Export the job's resumes as CSV to this file")
	_ = screenCmd.MarkFlagRequired("jd")

	rootCmd.AddCommand(screenCmd)
}

func runScreen(_ *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if screenStorePath != "" {
		cfg.StorePath = screenStorePath
	}
	strategy := cfg.Strategy()
	if screenStrategy != "" {
		if strategy, err = types.ParseStrategy(screenStrategy); err != nil {
			return err
		}
	}

	jdText, err := readDocument(screenJDFile)
	if err != nil {
		return err
	}
	title := screenJobTitle
	if title == "" {
		title = filepath.Base(screenJDFile)
	}

	ctx := context.Background()
	store, err := db.OpenLocal(ctx, cfg.StorePath)
	if err != nil {
		return fmt.Errorf("failed to open store: %w", err)
	}
	defer store.Close()

	svc := screening.NewService(store, logging.Discard(), screening.Options{
		Concurrency:     cfg.RankConcurrency,
		DefaultStrategy: strategy,
	})

	job, err := svc.CreateJob(ctx, &types.CreateJobRequest{
		Title:          title,
		Description:    jdText,
		RequiredSkills: splitList(screenSkills),
		MustHaveSkills: splitList(screenMustHave),
	})
	if err != nil {
		return err
	}

	for _, path := range args {
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", path, err)
		}
		if _, err := svc.UploadResume(ctx, screening.UploadInput{
			JobID:    job.ID,
			FileName: filepath.Base(path),
			Data:     data,
		}); err != nil {
			_, _ = fmt.Fprintf(os.Stderr, "Warning: skipping %s: %v\n", path, err)
		}
	}

	ranked, err := svc.RankJob(ctx, job.ID, string(strategy))
	if err != nil {
		return err
	}

	fmt.Printf("Job %s (%s), %d candidates, %s strategy\n\n", job.Title, job.ID, len(ranked), strategy)
	tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(tw, "RANK\tCANDIDATE\tSCORE\tNOTES")
	for _, rc := range ranked {
		_, _ = fmt.Fprintf(tw, "%d\t%s\t%g\t%s\n", rc.Rank, rc.Name, rc.Score, rc.Notes)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	if screenOutFile != "" {
		if err := writeOutput(schemas.RankingSchema, screenOutFile, ranked); err != nil {
			return err
		}
		fmt.Printf("\nRanking: %s\n", screenOutFile)
	}
	if screenCSVFile != "" {
		if err := exportCSV(ctx, svc, job.ID, screenCSVFile); err != nil {
			return err
		}
		fmt.Printf("CSV: %s\n", screenCSVFile)
	}
	return nil
}

// exportCSV writes the job's resumes to path as CSV
func exportCSV(ctx context.Context, svc *screening.Service, jobID uuid.UUID, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create CSV file: %w", err)
	}
	if err := svc.ExportCSV(ctx, f, jobID); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

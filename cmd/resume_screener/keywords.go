package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-screener/internal/textmatch"
)

var (
	keywordsJDFile  string
	keywordsOutFile string
)

var keywordsCmd = &cobra.Command{
	Use:   "keywords",
	Short: "Extract keyword stems from a job description",
	Long:  "Extract the bounded, stemmed keyword list of a job description file (pdf, docx, html or text).",
	RunE:  runKeywords,
}

func init() {
	keywordsCmd.Flags().StringVar(&keywordsJDFile, "jd", "", "Path to job description file (required)")
	keywordsCmd.Flags().StringVarP(&keywordsOutFile, "out", "o", "", "Path to output JSON file (default stdout)")
	_ = keywordsCmd.MarkFlagRequired("jd")

	rootCmd.AddCommand(keywordsCmd)
}

func runKeywords(_ *cobra.Command, _ []string) error {
	text, err := readDocument(keywordsJDFile)
	if err != nil {
		return err
	}

	keywords := textmatch.ExtractKeywords(text)
	if err := writeJSON(keywordsOutFile, map[string]any{"keywords": keywords}); err != nil {
		return err
	}
	if keywordsOutFile != "" {
		fmt.Printf("Extracted %d keywords\nOutput: %s\n", len(keywords), keywordsOutFile)
	}
	return nil
}

package screening

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jonathan/resume-screener/internal/db"
)

// csvHeader lists the exported resume columns in order
var csvHeader = []string{
	"id", "candidate_name", "file_name", "email", "phone",
	"stage", "score", "matched_skills", "created_at",
}

// ExportCSV writes a job's resumes as CSV, best score first. Every field is quoted
// and embedded quotes are doubled.
func (s *Service) ExportCSV(ctx context.Context, w io.Writer, jobID uuid.UUID) error {
	resumes, err := s.ListResumes(ctx, jobID, db.ResumeFilter{})
	if err != nil {
		return err
	}

	bw := bufio.NewWriter(w)
	if err := writeQuotedRow(bw, csvHeader); err != nil {
		return fmt.Errorf("failed to write csv header: %w", err)
	}
	for _, r := range resumes {
		if err := writeQuotedRow(bw, resumeRow(r)); err != nil {
			return fmt.Errorf("failed to write csv row: %w", err)
		}
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("failed to flush csv: %w", err)
	}
	return nil
}

func resumeRow(r db.Resume) []string {
	score := ""
	if r.MatchScore != nil {
		score = strconv.FormatFloat(*r.MatchScore, 'f', -1, 64)
	}
	return []string{
		r.ID.String(),
		r.CandidateName,
		r.FileName,
		r.Email,
		r.Phone,
		string(r.Stage),
		score,
		strings.Join(r.MatchedSkills, "; "),
		r.CreatedAt.UTC().Format(time.RFC3339),
	}
}

func writeQuotedRow(w *bufio.Writer, fields []string) error {
	for i, f := range fields {
		if i > 0 {
			if err := w.WriteByte(','); err != nil {
				return err
			}
		}
		if _, err := w.WriteString(`"` + strings.ReplaceAll(f, `"`, `""`) + `"`); err != nil {
			return err
		}
	}
	return w.WriteByte('\n')
}

package db

import (
	"context"

	"github.com/google/uuid"

	"github.com/jonathan/resume-screener/internal/types"
)

// Store is the persistence surface used by the screening service. Reads return
// (nil, nil) when the record does not exist.
type Store interface {
	CreateJobDescription(ctx context.Context, input *JobDescriptionInput) (*JobDescription, error)
	GetJobDescription(ctx context.Context, id uuid.UUID) (*JobDescription, error)
	ListJobDescriptions(ctx context.Context) ([]JobDescription, error)
	// SaveJobKeywords stores keywords on the job only if none are stored yet and
	// returns the keywords stored after the call.
	SaveJobKeywords(ctx context.Context, id uuid.UUID, keywords []string) ([]string, error)

	CreateResume(ctx context.Context, input *ResumeInput) (*Resume, error)
	GetResume(ctx context.Context, id uuid.UUID) (*Resume, error)
	ListResumesByJob(ctx context.Context, jobID uuid.UUID, filter ResumeFilter) ([]Resume, error)
	UpdateResumeStage(ctx context.Context, id uuid.UUID, stage types.Stage) (*Resume, error)
	DeleteResume(ctx context.Context, id uuid.UUID) (bool, error)

	LogActivity(ctx context.Context, input *ActivityInput) (*Activity, error)
	ListActivity(ctx context.Context, limit int) ([]Activity, error)

	Close()
}

var (
	_ Store = (*DB)(nil)
	_ Store = (*LocalDB)(nil)
)

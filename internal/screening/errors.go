package screening

import (
	"fmt"

	"github.com/google/uuid"
)

// JobNotFoundError indicates the job description does not exist
type JobNotFoundError struct {
	JobID uuid.UUID
}

func (e *JobNotFoundError) Error() string {
	return fmt.Sprintf("job description not found: %s", e.JobID)
}

// ResumeNotFoundError indicates the resume does not exist
type ResumeNotFoundError struct {
	ResumeID uuid.UUID
}

func (e *ResumeNotFoundError) Error() string {
	return fmt.Sprintf("resume not found: %s", e.ResumeID)
}

// InvalidStageError indicates an unknown pipeline stage
type InvalidStageError struct {
	Stage string
}

func (e *InvalidStageError) Error() string {
	return fmt.Sprintf("invalid stage %q (valid: new, reviewed, shortlisted, rejected)", e.Stage)
}

// ValidationError indicates input that cannot be screened
type ValidationError struct {
	Field   string
	Message string
	Cause   error
}

func (e *ValidationError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("validation error: %s - %s: %v", e.Field, e.Message, e.Cause)
	}
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

func (e *ValidationError) Unwrap() error {
	return e.Cause
}

package db

import (
	"time"

	"github.com/google/uuid"

	"github.com/jonathan/resume-screener/internal/types"
)

// Entity types recorded in the activity log
const (
	EntityJob    = "job"
	EntityResume = "resume"
)

// Activity actions
const (
	ActionCreate      = "create"
	ActionUpload      = "upload"
	ActionUpdateStage = "update_stage"
	ActionDelete      = "delete"
)

// Activity list limits
const (
	DefaultActivityLimit = 50
	MaxActivityLimit     = 200
)

// JobDescription is a job the resumes are screened against
type JobDescription struct {
	ID             uuid.UUID `json:"id"`
	Title          string    `json:"title"`
	Description    string    `json:"description"`
	RequiredSkills []string  `json:"required_skills"`
	MustHaveSkills []string  `json:"must_have_skills"`
	Keywords       []string  `json:"keywords"` // cached keyword stems, empty until derived
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// JobDescriptionInput contains the fields needed to create a job description
type JobDescriptionInput struct {
	Title          string
	Description    string
	RequiredSkills []string
	MustHaveSkills []string
}

// Resume is an uploaded resume and its screening result
type Resume struct {
	ID            uuid.UUID         `json:"id"`
	JobID         uuid.UUID         `json:"job_id"`
	CandidateName string            `json:"candidate_name"`
	FileName      string            `json:"file_name"`
	Email         string            `json:"email,omitempty"`
	Phone         string            `json:"phone,omitempty"`
	RawText       string            `json:"-"`
	MatchScore    *float64          `json:"match_score,omitempty"`
	MatchedSkills []string          `json:"matched_skills"`
	Explanation   *types.Evaluation `json:"explanation,omitempty"`
	ExplainText   string            `json:"explain_text,omitempty"`
	Stage         types.Stage       `json:"stage"`
	CreatedAt     time.Time         `json:"created_at"`
	UpdatedAt     time.Time         `json:"updated_at"`
}

// ResumeInput contains the fields needed to store a resume
type ResumeInput struct {
	JobID         uuid.UUID
	CandidateName string
	FileName      string
	Email         string
	Phone         string
	RawText       string
	MatchScore    *float64
	MatchedSkills []string
	Explanation   *types.Evaluation
	ExplainText   string
}

// ResumeFilter narrows a resume listing. Zero values match everything.
type ResumeFilter struct {
	Stage types.Stage
	// Query is a case-insensitive substring of the name, email, phone or a matched skill
	Query string
}

// Activity is one entry of the audit log
type Activity struct {
	ID         uuid.UUID      `json:"id"`
	EntityType string         `json:"entity_type"`
	EntityID   *uuid.UUID     `json:"entity_id,omitempty"`
	Action     string         `json:"action"`
	Details    map[string]any `json:"details,omitempty"`
	CreatedAt  time.Time      `json:"created_at"`
}

// ActivityInput contains the fields needed to log an activity
type ActivityInput struct {
	EntityType string
	EntityID   *uuid.UUID
	Action     string
	Details    map[string]any
}

// clampActivityLimit applies the default and maximum activity page sizes
func clampActivityLimit(limit int) int {
	if limit <= 0 {
		return DefaultActivityLimit
	}
	if limit > MaxActivityLimit {
		return MaxActivityLimit
	}
	return limit
}

// nonNil returns s, or an empty slice when s is nil
func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

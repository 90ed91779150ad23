//nolint:revive // types is a standard Go package name pattern
package types

import (
	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// CreateJobRequest registers a job description
type CreateJobRequest struct {
	Title          string   `json:"title" validate:"required,max=200"`
	Description    string   `json:"description" validate:"required"`
	RequiredSkills []string `json:"required_skills,omitempty" validate:"dive,max=100"`
	MustHaveSkills []string `json:"must_have_skills,omitempty" validate:"dive,max=100"`
}

// ScoreRequest scores resume text against a job description
type ScoreRequest struct {
	JDText     string   `json:"jd_text" validate:"required_without=JDSkills"`
	ResumeText string   `json:"resume_text"`
	JDSkills   []string `json:"jd_skills,omitempty" validate:"dive,max=100"`
	MustHave   []string `json:"must_have,omitempty" validate:"dive,max=100"`
	Strategy   string   `json:"strategy,omitempty" validate:"omitempty,oneof=weighted coverage"`
}

// KeywordsRequest extracts keywords from free text
type KeywordsRequest struct {
	Text string `json:"text" validate:"required"`
}

// UpdateStageRequest moves a resume to another pipeline stage
type UpdateStageRequest struct {
	Stage string `json:"stage" validate:"required,oneof=new reviewed shortlisted rejected"`
}

// Validate validates the CreateJobRequest using the validator.
func (r *CreateJobRequest) Validate() error {
	return validate.Struct(r)
}

// Validate validates the ScoreRequest using the validator.
func (r *ScoreRequest) Validate() error {
	return validate.Struct(r)
}

// Validate validates the KeywordsRequest using the validator.
func (r *KeywordsRequest) Validate() error {
	return validate.Struct(r)
}

// Validate validates the UpdateStageRequest using the validator.
func (r *UpdateStageRequest) Validate() error {
	return validate.Struct(r)
}

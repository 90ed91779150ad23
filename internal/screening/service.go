// Package screening ties document extraction, scoring and the record store together
// into the resume screening workflow.
package screening

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/jonathan/resume-screener/internal/db"
	"github.com/jonathan/resume-screener/internal/extraction"
	"github.com/jonathan/resume-screener/internal/logging"
	"github.com/jonathan/resume-screener/internal/ranking"
	"github.com/jonathan/resume-screener/internal/textmatch"
	"github.com/jonathan/resume-screener/internal/types"
)

// Options tunes a Service
type Options struct {
	// Concurrency bounds the number of resumes scored at once when ranking
	Concurrency int
	// DefaultStrategy is used when a request does not name one
	DefaultStrategy types.Strategy
}

// Service provides the screening operations over a record store
type Service struct {
	store           db.Store
	log             *logrus.Logger
	concurrency     int
	defaultStrategy types.Strategy
}

// NewService creates a new Service. A nil logger discards log output.
func NewService(store db.Store, log *logrus.Logger, opts Options) *Service {
	if log == nil {
		log = logging.Discard()
	}
	strategy := opts.DefaultStrategy
	if strategy == "" {
		strategy = types.StrategyWeighted
	}
	return &Service{
		store:           store,
		log:             log,
		concurrency:     opts.Concurrency,
		defaultStrategy: strategy,
	}
}

// UploadInput is a resume file submitted for a job
type UploadInput struct {
	JobID    uuid.UUID
	FileName string
	Data     []byte
	// CandidateName overrides the name derived from FileName
	CandidateName string
}

// UploadResult is the stored resume and its keyword coverage
type UploadResult struct {
	Resume   *db.Resume           `json:"resume"`
	Coverage types.CoverageResult `json:"coverage"`
}

// ---- Job Methods ----

// CreateJob validates and stores a job description
func (s *Service) CreateJob(ctx context.Context, req *types.CreateJobRequest) (*db.JobDescription, error) {
	if err := req.Validate(); err != nil {
		return nil, &ValidationError{Field: "job", Message: "invalid job description", Cause: err}
	}

	job, err := s.store.CreateJobDescription(ctx, &db.JobDescriptionInput{
		Title:          strings.TrimSpace(req.Title),
		Description:    req.Description,
		RequiredSkills: trimAll(req.RequiredSkills),
		MustHaveSkills: trimAll(req.MustHaveSkills),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create job description: %w", err)
	}

	s.logActivity(ctx, &db.ActivityInput{
		EntityType: db.EntityJob,
		EntityID:   &job.ID,
		Action:     db.ActionCreate,
		Details:    map[string]any{"title": job.Title},
	})
	s.log.WithFields(logrus.Fields{"job_id": job.ID, "title": job.Title}).Info("job description created")

	return job, nil
}

// GetJob returns a job description or a *JobNotFoundError
func (s *Service) GetJob(ctx context.Context, id uuid.UUID) (*db.JobDescription, error) {
	job, err := s.store.GetJobDescription(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get job description: %w", err)
	}
	if job == nil {
		return nil, &JobNotFoundError{JobID: id}
	}
	return job, nil
}

// ListJobs returns every job description, newest first
func (s *Service) ListJobs(ctx context.Context) ([]db.JobDescription, error) {
	jobs, err := s.store.ListJobDescriptions(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list job descriptions: %w", err)
	}
	return jobs, nil
}

// JobKeywords returns the job's keyword stems, deriving and caching them on first use
func (s *Service) JobKeywords(ctx context.Context, id uuid.UUID) ([]string, error) {
	job, err := s.GetJob(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.jobKeywords(ctx, job)
}

func (s *Service) jobKeywords(ctx context.Context, job *db.JobDescription) ([]string, error) {
	if len(job.Keywords) > 0 {
		return job.Keywords, nil
	}

	derived := textmatch.ExtractKeywords(job.Description)
	if len(derived) == 0 {
		return derived, nil
	}

	stored, err := s.store.SaveJobKeywords(ctx, job.ID, derived)
	if err != nil {
		return nil, fmt.Errorf("failed to cache job keywords: %w", err)
	}
	if stored == nil {
		return nil, &JobNotFoundError{JobID: job.ID}
	}
	job.Keywords = stored

	s.log.WithFields(logrus.Fields{"job_id": job.ID, "keywords": len(stored)}).Debug("job keywords cached")
	return stored, nil
}

// ---- Scoring Methods ----

// ScoreText scores free resume text against free job text without touching the store
func (s *Service) ScoreText(req *types.ScoreRequest) (types.Evaluation, error) {
	if err := req.Validate(); err != nil {
		return types.Evaluation{}, &ValidationError{Field: "score", Message: "invalid score request", Cause: err}
	}
	strategy, err := s.resolveStrategy(req.Strategy)
	if err != nil {
		return types.Evaluation{}, err
	}

	return ranking.Evaluate(strategy, ranking.Input{
		JDText:     req.JDText,
		ResumeText: req.ResumeText,
		JDSkills:   req.JDSkills,
		MustHave:   req.MustHave,
	})
}

// ScoreAgainstJob scores resume text against a stored job. The weighted strategy uses
// the job's required and must-have skills; the coverage strategy uses its cached keywords.
func (s *Service) ScoreAgainstJob(ctx context.Context, jobID uuid.UUID, resumeText, strategyName string) (types.Evaluation, error) {
	strategy, err := s.resolveStrategy(strategyName)
	if err != nil {
		return types.Evaluation{}, err
	}
	job, err := s.GetJob(ctx, jobID)
	if err != nil {
		return types.Evaluation{}, err
	}

	in := ranking.Input{
		JDText:     job.Description,
		ResumeText: resumeText,
		JDSkills:   job.RequiredSkills,
		MustHave:   job.MustHaveSkills,
	}
	if strategy == types.StrategyCoverage {
		if in.Keywords, err = s.jobKeywords(ctx, job); err != nil {
			return types.Evaluation{}, err
		}
	}
	return ranking.Evaluate(strategy, in)
}

// RankJob ranks every stored resume of a job, best first
func (s *Service) RankJob(ctx context.Context, jobID uuid.UUID, strategyName string) ([]types.RankedCandidate, error) {
	strategy, err := s.resolveStrategy(strategyName)
	if err != nil {
		return nil, err
	}
	job, err := s.GetJob(ctx, jobID)
	if err != nil {
		return nil, err
	}

	resumes, err := s.store.ListResumesByJob(ctx, jobID, db.ResumeFilter{})
	if err != nil {
		return nil, fmt.Errorf("failed to list resumes: %w", err)
	}

	rankJob := ranking.Job{
		Text:     job.Description,
		Skills:   job.RequiredSkills,
		MustHave: job.MustHaveSkills,
	}
	if strategy == types.StrategyCoverage {
		if rankJob.Keywords, err = s.jobKeywords(ctx, job); err != nil {
			return nil, err
		}
	}

	candidates := make([]ranking.Candidate, len(resumes))
	for i, r := range resumes {
		candidates[i] = ranking.Candidate{ID: r.ID.String(), Name: r.CandidateName, Text: r.RawText}
	}

	ranked, err := ranking.RankResumes(ctx, strategy, rankJob, candidates, s.concurrency)
	if err != nil {
		return nil, fmt.Errorf("failed to rank resumes: %w", err)
	}

	s.log.WithFields(logrus.Fields{
		"job_id":     jobID,
		"strategy":   strategy,
		"candidates": len(ranked),
	}).Debug("resumes ranked")
	return ranked, nil
}

// resolveStrategy parses a strategy name, using the service default when blank
func (s *Service) resolveStrategy(name string) (types.Strategy, error) {
	if strings.TrimSpace(name) == "" {
		return s.defaultStrategy, nil
	}
	strategy, err := types.ParseStrategy(name)
	if err != nil {
		return "", &ValidationError{Field: "strategy", Message: "unknown scoring strategy", Cause: err}
	}
	return strategy, nil
}

// ---- Resume Methods ----

// UploadResume extracts text from an uploaded resume, scores its keyword coverage
// against the job and stores it in the new stage.
func (s *Service) UploadResume(ctx context.Context, in UploadInput) (*UploadResult, error) {
	if strings.TrimSpace(in.FileName) == "" || len(in.Data) == 0 {
		return nil, &ValidationError{Field: "resume", Message: "no file uploaded"}
	}

	text, err := extraction.ExtractText(in.FileName, in.Data)
	if err != nil {
		return nil, err
	}

	job, err := s.GetJob(ctx, in.JobID)
	if err != nil {
		return nil, err
	}
	keywords, err := s.jobKeywords(ctx, job)
	if err != nil {
		return nil, err
	}

	coverage := ranking.ScoreCoverage(text, keywords)
	eval := types.Evaluation{Strategy: types.StrategyCoverage, Coverage: &coverage}

	name := strings.TrimSpace(in.CandidateName)
	if name == "" {
		name = extraction.CandidateNameFromFilename(in.FileName)
	}
	contact := extraction.FindContact(text)
	score := coverage.Score

	resume, err := s.store.CreateResume(ctx, &db.ResumeInput{
		JobID:         job.ID,
		CandidateName: name,
		FileName:      in.FileName,
		Email:         contact.Email,
		Phone:         contact.Phone,
		RawText:       text,
		MatchScore:    &score,
		MatchedSkills: coverage.Matched,
		Explanation:   &eval,
		ExplainText:   ranking.GenerateNotes(eval),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to store resume: %w", err)
	}

	s.logActivity(ctx, &db.ActivityInput{
		EntityType: db.EntityResume,
		EntityID:   &resume.ID,
		Action:     db.ActionUpload,
		Details: map[string]any{
			"job_id":         job.ID.String(),
			"file_name":      in.FileName,
			"candidate_name": name,
			"score":          score,
		},
	})
	s.log.WithFields(logrus.Fields{
		"resume_id": resume.ID,
		"job_id":    job.ID,
		"file_name": in.FileName,
		"score":     score,
	}).Info("resume uploaded")

	return &UploadResult{Resume: resume, Coverage: coverage}, nil
}

// GetResume returns a resume or a *ResumeNotFoundError
func (s *Service) GetResume(ctx context.Context, id uuid.UUID) (*db.Resume, error) {
	resume, err := s.store.GetResume(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get resume: %w", err)
	}
	if resume == nil {
		return nil, &ResumeNotFoundError{ResumeID: id}
	}
	return resume, nil
}

// ListResumes returns a job's resumes, best score first, narrowed by filter
func (s *Service) ListResumes(ctx context.Context, jobID uuid.UUID, filter db.ResumeFilter) ([]db.Resume, error) {
	if filter.Stage != "" && !filter.Stage.Valid() {
		return nil, &InvalidStageError{Stage: string(filter.Stage)}
	}
	if _, err := s.GetJob(ctx, jobID); err != nil {
		return nil, err
	}

	filter.Query = strings.TrimSpace(filter.Query)
	resumes, err := s.store.ListResumesByJob(ctx, jobID, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list resumes: %w", err)
	}
	return resumes, nil
}

// MoveStage moves a resume to another pipeline stage and records the transition
func (s *Service) MoveStage(ctx context.Context, resumeID uuid.UUID, stageName string) (*db.Resume, error) {
	stage := types.Stage(strings.ToLower(strings.TrimSpace(stageName)))
	if !stage.Valid() {
		return nil, &InvalidStageError{Stage: stageName}
	}

	current, err := s.GetResume(ctx, resumeID)
	if err != nil {
		return nil, err
	}

	updated, err := s.store.UpdateResumeStage(ctx, resumeID, stage)
	if err != nil {
		return nil, fmt.Errorf("failed to update resume stage: %w", err)
	}
	if updated == nil {
		return nil, &ResumeNotFoundError{ResumeID: resumeID}
	}

	s.logActivity(ctx, &db.ActivityInput{
		EntityType: db.EntityResume,
		EntityID:   &updated.ID,
		Action:     db.ActionUpdateStage,
		Details: map[string]any{
			"from":           string(current.Stage),
			"to":             string(stage),
			"candidate_name": updated.CandidateName,
		},
	})
	s.log.WithFields(logrus.Fields{
		"resume_id": resumeID,
		"from":      current.Stage,
		"to":        stage,
	}).Info("resume stage updated")

	return updated, nil
}

// DeleteResume removes a resume
func (s *Service) DeleteResume(ctx context.Context, id uuid.UUID) error {
	deleted, err := s.store.DeleteResume(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to delete resume: %w", err)
	}
	if !deleted {
		return &ResumeNotFoundError{ResumeID: id}
	}

	s.logActivity(ctx, &db.ActivityInput{
		EntityType: db.EntityResume,
		EntityID:   &id,
		Action:     db.ActionDelete,
	})
	s.log.WithField("resume_id", id).Info("resume deleted")
	return nil
}

// ---- Activity Methods ----

// ListActivity returns the most recent activity entries
func (s *Service) ListActivity(ctx context.Context, limit int) ([]db.Activity, error) {
	entries, err := s.store.ListActivity(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list activity: %w", err)
	}
	return entries, nil
}

// logActivity records an audit entry. Failures are logged and never fail the operation.
func (s *Service) logActivity(ctx context.Context, input *db.ActivityInput) {
	if _, err := s.store.LogActivity(ctx, input); err != nil {
		s.log.WithError(err).WithFields(logrus.Fields{
			"entity_type": input.EntityType,
			"action":      input.Action,
		}).Warn("failed to log activity")
	}
}

func trimAll(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}

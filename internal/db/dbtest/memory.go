// Package dbtest provides an in-memory db.Store for service and handler tests.
package dbtest

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/jonathan/resume-screener/internal/db"
	"github.com/jonathan/resume-screener/internal/types"
)

// MemoryStore is a db.Store held in maps. Setting Err makes every call fail with it.
type MemoryStore struct {
	mu       sync.Mutex
	jobs     map[uuid.UUID]*db.JobDescription
	resumes  map[uuid.UUID]*db.Resume
	activity []db.Activity
	clock    time.Time

	// Err, when set, is returned by every method
	Err error
	// KeywordSaves counts SaveJobKeywords calls
	KeywordSaves int
}

var _ db.Store = (*MemoryStore)(nil)

// NewMemoryStore returns an empty MemoryStore
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		jobs:    make(map[uuid.UUID]*db.JobDescription),
		resumes: make(map[uuid.UUID]*db.Resume),
		clock:   time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

// tick returns a strictly increasing timestamp so orderings are deterministic
func (m *MemoryStore) tick() time.Time {
	m.clock = m.clock.Add(time.Second)
	return m.clock
}

// ---- Job Description Methods ----

// CreateJobDescription stores a job description
func (m *MemoryStore) CreateJobDescription(_ context.Context, input *db.JobDescriptionInput) (*db.JobDescription, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}

	ts := m.tick()
	job := &db.JobDescription{
		ID:             uuid.New(),
		Title:          input.Title,
		Description:    input.Description,
		RequiredSkills: copyList(input.RequiredSkills),
		MustHaveSkills: copyList(input.MustHaveSkills),
		Keywords:       []string{},
		CreatedAt:      ts,
		UpdatedAt:      ts,
	}
	m.jobs[job.ID] = job
	out := *job
	return &out, nil
}

// GetJobDescription returns a copy of the job, or nil, nil
func (m *MemoryStore) GetJobDescription(_ context.Context, id uuid.UUID) (*db.JobDescription, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}

	job, ok := m.jobs[id]
	if !ok {
		return nil, nil
	}
	out := *job
	out.Keywords = copyList(job.Keywords)
	return &out, nil
}

// ListJobDescriptions returns every job, newest first
func (m *MemoryStore) ListJobDescriptions(_ context.Context) ([]db.JobDescription, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}

	jobs := make([]db.JobDescription, 0, len(m.jobs))
	for _, j := range m.jobs {
		jobs = append(jobs, *j)
	}
	sort.Slice(jobs, func(a, b int) bool { return jobs[a].CreatedAt.After(jobs[b].CreatedAt) })
	return jobs, nil
}

// SaveJobKeywords stores keywords only when none are stored yet
func (m *MemoryStore) SaveJobKeywords(_ context.Context, id uuid.UUID, keywords []string) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}
	m.KeywordSaves++

	job, ok := m.jobs[id]
	if !ok {
		return nil, nil
	}
	if len(job.Keywords) == 0 {
		job.Keywords = copyList(keywords)
		job.UpdatedAt = m.tick()
	}
	return copyList(job.Keywords), nil
}

// ---- Resume Methods ----

// CreateResume stores a resume in stage "new"
func (m *MemoryStore) CreateResume(_ context.Context, input *db.ResumeInput) (*db.Resume, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}

	ts := m.tick()
	r := &db.Resume{
		ID:            uuid.New(),
		JobID:         input.JobID,
		CandidateName: input.CandidateName,
		FileName:      input.FileName,
		Email:         input.Email,
		Phone:         input.Phone,
		RawText:       input.RawText,
		MatchScore:    input.MatchScore,
		MatchedSkills: copyList(input.MatchedSkills),
		Explanation:   input.Explanation,
		ExplainText:   input.ExplainText,
		Stage:         types.StageNew,
		CreatedAt:     ts,
		UpdatedAt:     ts,
	}
	m.resumes[r.ID] = r
	out := *r
	return &out, nil
}

// GetResume returns a copy of the resume, or nil, nil
func (m *MemoryStore) GetResume(_ context.Context, id uuid.UUID) (*db.Resume, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}

	r, ok := m.resumes[id]
	if !ok {
		return nil, nil
	}
	out := *r
	return &out, nil
}

// ListResumesByJob returns the job's resumes, scored first by score descending
func (m *MemoryStore) ListResumesByJob(_ context.Context, jobID uuid.UUID, filter db.ResumeFilter) ([]db.Resume, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}

	query := strings.ToLower(filter.Query)
	out := make([]db.Resume, 0)
	for _, r := range m.resumes {
		if r.JobID != jobID {
			continue
		}
		if filter.Stage != "" && r.Stage != filter.Stage {
			continue
		}
		if query != "" && !matchesQuery(r, query) {
			continue
		}
		out = append(out, *r)
	}

	sort.Slice(out, func(a, b int) bool {
		sa, sb := out[a].MatchScore, out[b].MatchScore
		switch {
		case sa == nil && sb == nil:
		case sa == nil:
			return false
		case sb == nil:
			return true
		case *sa != *sb:
			return *sa > *sb
		}
		return out[a].CreatedAt.Before(out[b].CreatedAt)
	})
	return out, nil
}

func matchesQuery(r *db.Resume, query string) bool {
	fields := []string{r.CandidateName, r.Email, r.Phone, strings.Join(r.MatchedSkills, " ")}
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), query) {
			return true
		}
	}
	return false
}

// UpdateResumeStage moves a resume to a stage, or returns nil, nil when missing
func (m *MemoryStore) UpdateResumeStage(_ context.Context, id uuid.UUID, stage types.Stage) (*db.Resume, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}

	r, ok := m.resumes[id]
	if !ok {
		return nil, nil
	}
	r.Stage = stage
	r.UpdatedAt = m.tick()
	out := *r
	return &out, nil
}

// DeleteResume removes a resume and reports whether it existed
func (m *MemoryStore) DeleteResume(_ context.Context, id uuid.UUID) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return false, m.Err
	}

	if _, ok := m.resumes[id]; !ok {
		return false, nil
	}
	delete(m.resumes, id)
	return true, nil
}

// ---- Activity Methods ----

// LogActivity appends an audit entry
func (m *MemoryStore) LogActivity(_ context.Context, input *db.ActivityInput) (*db.Activity, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}

	a := db.Activity{
		ID:         uuid.New(),
		EntityType: input.EntityType,
		EntityID:   input.EntityID,
		Action:     input.Action,
		Details:    input.Details,
		CreatedAt:  m.tick(),
	}
	m.activity = append(m.activity, a)
	return &a, nil
}

// ListActivity returns up to limit entries, newest first. Zero or less returns 50.
func (m *MemoryStore) ListActivity(_ context.Context, limit int) ([]db.Activity, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}

	if limit <= 0 {
		limit = db.DefaultActivityLimit
	}
	limit = min(limit, db.MaxActivityLimit)

	out := make([]db.Activity, 0, min(limit, len(m.activity)))
	for i := len(m.activity) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, m.activity[i])
	}
	return out, nil
}

// Close is a no-op
func (m *MemoryStore) Close() {}

func copyList(s []string) []string {
	out := make([]string, len(s))
	copy(out, s)
	return out
}

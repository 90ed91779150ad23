package db

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/jonathan/resume-screener/internal/types"
)

// LocalDB is a single-file SQLite store for running the screener without a server
type LocalDB struct {
	db *sql.DB
}

// OpenLocal opens (or creates) the SQLite database at path and applies the schema
func OpenLocal(ctx context.Context, path string) (*LocalDB, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return nil, fmt.Errorf("failed to create store directory %s: %w", dir, err)
		}
	}

	sqlDB, err := sql.Open("sqlite", path+"?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("failed to open local store: %w", err)
	}
	sqlDB.SetMaxOpenConns(1) // SQLite: single writer

	l := &LocalDB{db: sqlDB}
	if err := l.Migrate(ctx); err != nil {
		_ = sqlDB.Close()
		return nil, err
	}
	return l, nil
}

// Close closes the database file
func (l *LocalDB) Close() {
	if l.db != nil {
		_ = l.db.Close()
	}
}

// Migrate creates the tables and indexes if they do not exist
func (l *LocalDB) Migrate(ctx context.Context) error {
	schema, err := schemaFS.ReadFile("schema/sqlite.sql")
	if err != nil {
		return fmt.Errorf("failed to read schema: %w", err)
	}
	if _, err := l.db.ExecContext(ctx, string(schema)); err != nil {
		return fmt.Errorf("failed to apply schema: %w", err)
	}
	return nil
}

// timeLayout is fixed-width UTC so stored timestamps sort lexically.
const timeLayout = "2006-01-02T15:04:05.000000000Z"

func now() string {
	return time.Now().UTC().Format(timeLayout)
}

func parseTime(s string) time.Time {
	t, _ := time.Parse(timeLayout, s)
	return t
}

func encodeList(s []string) (string, error) {
	b, err := json.Marshal(nonNil(s))
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func decodeList(s string) []string {
	var out []string
	if s != "" {
		_ = json.Unmarshal([]byte(s), &out)
	}
	return nonNil(out)
}

// scanner is satisfied by *sql.Row and *sql.Rows
type scanner interface {
	Scan(dest ...any) error
}

// -----------------------------------------------------------------------------
// Job Description Methods
// -----------------------------------------------------------------------------

func scanLocalJobDescription(row scanner) (*JobDescription, error) {
	var j JobDescription
	var id, required, mustHave, keywords, createdAt, updatedAt string
	if err := row.Scan(&id, &j.Title, &j.Description, &required, &mustHave, &keywords, &createdAt, &updatedAt); err != nil {
		return nil, err
	}
	parsed, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("invalid job description id %q: %w", id, err)
	}
	j.ID = parsed
	j.RequiredSkills = decodeList(required)
	j.MustHaveSkills = decodeList(mustHave)
	j.Keywords = decodeList(keywords)
	j.CreatedAt = parseTime(createdAt)
	j.UpdatedAt = parseTime(updatedAt)
	return &j, nil
}

// CreateJobDescription inserts a new job description
func (l *LocalDB) CreateJobDescription(ctx context.Context, input *JobDescriptionInput) (*JobDescription, error) {
	required, err := encodeList(input.RequiredSkills)
	if err != nil {
		return nil, fmt.Errorf("failed to encode required skills: %w", err)
	}
	mustHave, err := encodeList(input.MustHaveSkills)
	if err != nil {
		return nil, fmt.Errorf("failed to encode must-have skills: %w", err)
	}

	id := uuid.New()
	ts := now()
	_, err = l.db.ExecContext(ctx,
		`INSERT INTO job_descriptions (id, title, description, required_skills, must_have_skills, keywords, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, '[]', ?, ?)`,
		id.String(), input.Title, input.Description, required, mustHave, ts, ts,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create job description: %w", err)
	}
	return l.GetJobDescription(ctx, id)
}

// GetJobDescription retrieves a job description by ID
func (l *LocalDB) GetJobDescription(ctx context.Context, id uuid.UUID) (*JobDescription, error) {
	j, err := scanLocalJobDescription(l.db.QueryRowContext(ctx,
		`SELECT `+jobDescriptionColumns+` FROM job_descriptions WHERE id = ?`, id.String()))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get job description: %w", err)
	}
	return j, nil
}

// ListJobDescriptions returns all job descriptions, newest first
func (l *LocalDB) ListJobDescriptions(ctx context.Context) ([]JobDescription, error) {
	rows, err := l.db.QueryContext(ctx,
		`SELECT `+jobDescriptionColumns+` FROM job_descriptions ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list job descriptions: %w", err)
	}
	defer func() { _ = rows.Close() }()

	jobs := make([]JobDescription, 0)
	for rows.Next() {
		j, err := scanLocalJobDescription(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan job description: %w", err)
		}
		jobs = append(jobs, *j)
	}
	return jobs, rows.Err()
}

// SaveJobKeywords caches derived keywords on a job while its stored list is empty.
// Returns nil, nil when the job does not exist.
func (l *LocalDB) SaveJobKeywords(ctx context.Context, id uuid.UUID, keywords []string) ([]string, error) {
	encoded, err := encodeList(keywords)
	if err != nil {
		return nil, fmt.Errorf("failed to encode keywords: %w", err)
	}

	_, err = l.db.ExecContext(ctx,
		`UPDATE job_descriptions SET keywords = ?, updated_at = ?
		 WHERE id = ? AND keywords = '[]'`,
		encoded, now(), id.String(),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to save job keywords: %w", err)
	}

	var stored string
	err = l.db.QueryRowContext(ctx,
		`SELECT keywords FROM job_descriptions WHERE id = ?`, id.String(),
	).Scan(&stored)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read job keywords: %w", err)
	}
	return decodeList(stored), nil
}

// -----------------------------------------------------------------------------
// Resume Methods
// -----------------------------------------------------------------------------

func scanLocalResume(row scanner) (*Resume, error) {
	var r Resume
	var id, jobID, matched, stage, createdAt, updatedAt string
	var score sql.NullFloat64
	var explanation sql.NullString
	err := row.Scan(&id, &jobID, &r.CandidateName, &r.FileName, &r.Email, &r.Phone,
		&r.RawText, &score, &matched, &explanation, &r.ExplainText, &stage, &createdAt, &updatedAt)
	if err != nil {
		return nil, err
	}

	if r.ID, err = uuid.Parse(id); err != nil {
		return nil, fmt.Errorf("invalid resume id %q: %w", id, err)
	}
	if r.JobID, err = uuid.Parse(jobID); err != nil {
		return nil, fmt.Errorf("invalid job id %q: %w", jobID, err)
	}
	if score.Valid {
		v := score.Float64
		r.MatchScore = &v
	}
	r.MatchedSkills = decodeList(matched)
	if explanation.Valid {
		var eval types.Evaluation
		if err := json.Unmarshal([]byte(explanation.String), &eval); err == nil {
			r.Explanation = &eval
		}
	}
	r.Stage = types.Stage(stage)
	r.CreatedAt = parseTime(createdAt)
	r.UpdatedAt = parseTime(updatedAt)
	return &r, nil
}

// CreateResume stores a screened resume in stage "new"
func (l *LocalDB) CreateResume(ctx context.Context, input *ResumeInput) (*Resume, error) {
	matched, err := encodeList(input.MatchedSkills)
	if err != nil {
		return nil, fmt.Errorf("failed to encode matched skills: %w", err)
	}
	var explanation sql.NullString
	if input.Explanation != nil {
		b, err := json.Marshal(input.Explanation)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal explanation: %w", err)
		}
		explanation = sql.NullString{String: string(b), Valid: true}
	}
	var score sql.NullFloat64
	if input.MatchScore != nil {
		score = sql.NullFloat64{Float64: *input.MatchScore, Valid: true}
	}

	id := uuid.New()
	ts := now()
	_, err = l.db.ExecContext(ctx,
		`INSERT INTO resumes (id, job_id, candidate_name, file_name, email, phone, raw_text,
		                      match_score, matched_skills, explanation, explain_text, stage,
		                      created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		id.String(), input.JobID.String(), input.CandidateName, input.FileName, input.Email,
		input.Phone, input.RawText, score, matched, explanation, input.ExplainText,
		string(types.StageNew), ts, ts,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create resume: %w", err)
	}
	return l.GetResume(ctx, id)
}

// GetResume retrieves a resume by ID
func (l *LocalDB) GetResume(ctx context.Context, id uuid.UUID) (*Resume, error) {
	r, err := scanLocalResume(l.db.QueryRowContext(ctx,
		`SELECT `+resumeColumns+` FROM resumes WHERE id = ?`, id.String()))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get resume: %w", err)
	}
	return r, nil
}

// ListResumesByJob returns a job's resumes, best score first
func (l *LocalDB) ListResumesByJob(ctx context.Context, jobID uuid.UUID, filter ResumeFilter) ([]Resume, error) {
	rows, err := l.db.QueryContext(ctx,
		`SELECT `+resumeColumns+` FROM resumes
		 WHERE job_id = ?1
		   AND (?2 = '' OR stage = ?2)
		   AND (?3 = '' OR candidate_name LIKE '%' || ?3 || '%'
		                OR email LIKE '%' || ?3 || '%'
		                OR phone LIKE '%' || ?3 || '%'
		                OR matched_skills LIKE '%' || ?3 || '%')
		 ORDER BY match_score IS NULL, match_score DESC, created_at ASC`,
		jobID.String(), string(filter.Stage), filter.Query,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list resumes: %w", err)
	}
	defer func() { _ = rows.Close() }()

	resumes := make([]Resume, 0)
	for rows.Next() {
		r, err := scanLocalResume(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan resume: %w", err)
		}
		resumes = append(resumes, *r)
	}
	return resumes, rows.Err()
}

// UpdateResumeStage moves a resume to a pipeline stage. Returns nil, nil when the
// resume does not exist.
func (l *LocalDB) UpdateResumeStage(ctx context.Context, id uuid.UUID, stage types.Stage) (*Resume, error) {
	res, err := l.db.ExecContext(ctx,
		`UPDATE resumes SET stage = ?, updated_at = ? WHERE id = ?`,
		string(stage), now(), id.String(),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to update resume stage: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return nil, nil
	}
	return l.GetResume(ctx, id)
}

// DeleteResume removes a resume, reporting whether it existed
func (l *LocalDB) DeleteResume(ctx context.Context, id uuid.UUID) (bool, error) {
	res, err := l.db.ExecContext(ctx, `DELETE FROM resumes WHERE id = ?`, id.String())
	if err != nil {
		return false, fmt.Errorf("failed to delete resume: %w", err)
	}
	n, _ := res.RowsAffected()
	return n > 0, nil
}

// -----------------------------------------------------------------------------
// Activity Methods
// -----------------------------------------------------------------------------

// LogActivity appends an entry to the activity log
func (l *LocalDB) LogActivity(ctx context.Context, input *ActivityInput) (*Activity, error) {
	var details sql.NullString
	if input.Details != nil {
		b, err := json.Marshal(input.Details)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal activity details: %w", err)
		}
		details = sql.NullString{String: string(b), Valid: true}
	}
	var entityID sql.NullString
	if input.EntityID != nil {
		entityID = sql.NullString{String: input.EntityID.String(), Valid: true}
	}

	a := Activity{
		ID:         uuid.New(),
		EntityType: input.EntityType,
		EntityID:   input.EntityID,
		Action:     input.Action,
		Details:    input.Details,
	}
	ts := now()
	_, err := l.db.ExecContext(ctx,
		`INSERT INTO activity_logs (id, entity_type, entity_id, action, details, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		a.ID.String(), a.EntityType, entityID, a.Action, details, ts,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to log activity: %w", err)
	}
	a.CreatedAt = parseTime(ts)
	return &a, nil
}

// ListActivity returns the most recent activity entries
func (l *LocalDB) ListActivity(ctx context.Context, limit int) ([]Activity, error) {
	rows, err := l.db.QueryContext(ctx,
		`SELECT id, entity_type, entity_id, action, details, created_at
		 FROM activity_logs ORDER BY created_at DESC LIMIT ?`,
		clampActivityLimit(limit),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list activity: %w", err)
	}
	defer func() { _ = rows.Close() }()

	activity := make([]Activity, 0)
	for rows.Next() {
		var a Activity
		var id, createdAt string
		var entityID, details sql.NullString
		if err := rows.Scan(&id, &a.EntityType, &entityID, &a.Action, &details, &createdAt); err != nil {
			return nil, fmt.Errorf("failed to scan activity: %w", err)
		}
		a.ID, _ = uuid.Parse(id)
		if entityID.Valid {
			if eid, err := uuid.Parse(entityID.String); err == nil {
				a.EntityID = &eid
			}
		}
		if details.Valid {
			_ = json.Unmarshal([]byte(details.String), &a.Details)
		}
		a.CreatedAt = parseTime(createdAt)
		activity = append(activity, a)
	}
	return activity, rows.Err()
}

// Package db provides storage for job descriptions, screened resumes and the activity log,
// backed by PostgreSQL or a local SQLite file.
package db

import (
	"context"
	"embed"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jonathan/resume-screener/internal/types"
)

//go:embed schema/*.sql
var schemaFS embed.FS

// DB wraps a PostgreSQL connection pool
type DB struct {
	pool *pgxpool.Pool
}

// Connect establishes a connection pool to the database
func Connect(ctx context.Context, databaseURL string) (*DB, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Verify connection
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &DB{pool: pool}, nil
}

// Close closes the connection pool
func (db *DB) Close() {
	if db.pool != nil {
		db.pool.Close()
	}
}

// Migrate creates the tables and indexes if they do not exist
func (db *DB) Migrate(ctx context.Context) error {
	schema, err := schemaFS.ReadFile("schema/postgres.sql")
	if err != nil {
		return fmt.Errorf("failed to read schema: %w", err)
	}
	if _, err := db.pool.Exec(ctx, string(schema)); err != nil {
		return fmt.Errorf("failed to apply schema: %w", err)
	}
	return nil
}

// -----------------------------------------------------------------------------
// Job Description Methods
// -----------------------------------------------------------------------------

const jobDescriptionColumns = `id, title, description, required_skills, must_have_skills, keywords, created_at, updated_at`

func scanJobDescription(row pgx.Row) (*JobDescription, error) {
	var j JobDescription
	err := row.Scan(&j.ID, &j.Title, &j.Description, &j.RequiredSkills, &j.MustHaveSkills,
		&j.Keywords, &j.CreatedAt, &j.UpdatedAt)
	if err != nil {
		return nil, err
	}
	j.RequiredSkills = nonNil(j.RequiredSkills)
	j.MustHaveSkills = nonNil(j.MustHaveSkills)
	j.Keywords = nonNil(j.Keywords)
	return &j, nil
}

// CreateJobDescription inserts a new job description
func (db *DB) CreateJobDescription(ctx context.Context, input *JobDescriptionInput) (*JobDescription, error) {
	j, err := scanJobDescription(db.pool.QueryRow(ctx,
		`INSERT INTO job_descriptions (id, title, description, required_skills, must_have_skills)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING `+jobDescriptionColumns,
		uuid.New(), input.Title, input.Description, nonNil(input.RequiredSkills), nonNil(input.MustHaveSkills),
	))
	if err != nil {
		return nil, fmt.Errorf("failed to create job description: %w", err)
	}
	return j, nil
}

// GetJobDescription retrieves a job description by ID
func (db *DB) GetJobDescription(ctx context.Context, id uuid.UUID) (*JobDescription, error) {
	j, err := scanJobDescription(db.pool.QueryRow(ctx,
		`SELECT `+jobDescriptionColumns+` FROM job_descriptions WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get job description: %w", err)
	}
	return j, nil
}

// ListJobDescriptions returns all job descriptions, newest first
func (db *DB) ListJobDescriptions(ctx context.Context) ([]JobDescription, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT `+jobDescriptionColumns+` FROM job_descriptions ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list job descriptions: %w", err)
	}
	defer rows.Close()

	jobs := make([]JobDescription, 0)
	for rows.Next() {
		j, err := scanJobDescription(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan job description: %w", err)
		}
		jobs = append(jobs, *j)
	}
	return jobs, rows.Err()
}

// SaveJobKeywords caches derived keywords on a job. The write only happens while the
// stored list is empty, so concurrent or repeated calls keep the first result.
// Returns nil, nil when the job does not exist.
func (db *DB) SaveJobKeywords(ctx context.Context, id uuid.UUID, keywords []string) ([]string, error) {
	var stored []string
	err := db.pool.QueryRow(ctx,
		`WITH updated AS (
		     UPDATE job_descriptions SET keywords = $2, updated_at = NOW()
		     WHERE id = $1 AND cardinality(keywords) = 0
		     RETURNING keywords
		 )
		 SELECT keywords FROM updated
		 UNION ALL
		 SELECT keywords FROM job_descriptions
		 WHERE id = $1 AND NOT EXISTS (SELECT 1 FROM updated)`,
		id, nonNil(keywords),
	).Scan(&stored)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to save job keywords: %w", err)
	}
	return nonNil(stored), nil
}

// -----------------------------------------------------------------------------
// Resume Methods
// -----------------------------------------------------------------------------

const resumeColumns = `id, job_id, candidate_name, file_name, email, phone, raw_text, match_score,
	matched_skills, explanation, explain_text, stage, created_at, updated_at`

func scanResume(row pgx.Row) (*Resume, error) {
	var r Resume
	var explanationJSON []byte
	var stage string
	err := row.Scan(&r.ID, &r.JobID, &r.CandidateName, &r.FileName, &r.Email, &r.Phone,
		&r.RawText, &r.MatchScore, &r.MatchedSkills, &explanationJSON, &r.ExplainText,
		&stage, &r.CreatedAt, &r.UpdatedAt)
	if err != nil {
		return nil, err
	}
	r.Stage = types.Stage(stage)
	r.MatchedSkills = nonNil(r.MatchedSkills)
	if explanationJSON != nil {
		var eval types.Evaluation
		if err := json.Unmarshal(explanationJSON, &eval); err == nil {
			r.Explanation = &eval
		}
	}
	return &r, nil
}

// CreateResume stores a screened resume in stage "new"
func (db *DB) CreateResume(ctx context.Context, input *ResumeInput) (*Resume, error) {
	var explanationJSON []byte
	if input.Explanation != nil {
		var err error
		explanationJSON, err = json.Marshal(input.Explanation)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal explanation: %w", err)
		}
	}

	r, err := scanResume(db.pool.QueryRow(ctx,
		`INSERT INTO resumes (id, job_id, candidate_name, file_name, email, phone, raw_text,
		                      match_score, matched_skills, explanation, explain_text, stage)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		 RETURNING `+resumeColumns,
		uuid.New(), input.JobID, input.CandidateName, input.FileName, input.Email, input.Phone,
		input.RawText, input.MatchScore, nonNil(input.MatchedSkills), explanationJSON,
		input.ExplainText, string(types.StageNew),
	))
	if err != nil {
		return nil, fmt.Errorf("failed to create resume: %w", err)
	}
	return r, nil
}

// GetResume retrieves a resume by ID
func (db *DB) GetResume(ctx context.Context, id uuid.UUID) (*Resume, error) {
	r, err := scanResume(db.pool.QueryRow(ctx,
		`SELECT `+resumeColumns+` FROM resumes WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get resume: %w", err)
	}
	return r, nil
}

// ListResumesByJob returns a job's resumes, best score first
func (db *DB) ListResumesByJob(ctx context.Context, jobID uuid.UUID, filter ResumeFilter) ([]Resume, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT `+resumeColumns+` FROM resumes
		 WHERE job_id = $1
		   AND ($2 = '' OR stage = $2)
		   AND ($3 = '' OR candidate_name ILIKE '%' || $3 || '%'
		                OR email ILIKE '%' || $3 || '%'
		                OR phone ILIKE '%' || $3 || '%'
		                OR array_to_string(matched_skills, ' ') ILIKE '%' || $3 || '%')
		 ORDER BY match_score DESC NULLS LAST, created_at ASC`,
		jobID, string(filter.Stage), filter.Query,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list resumes: %w", err)
	}
	defer rows.Close()

	resumes := make([]Resume, 0)
	for rows.Next() {
		r, err := scanResume(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan resume: %w", err)
		}
		resumes = append(resumes, *r)
	}
	return resumes, rows.Err()
}

// UpdateResumeStage moves a resume to a pipeline stage. Returns nil, nil when the
// resume does not exist.
func (db *DB) UpdateResumeStage(ctx context.Context, id uuid.UUID, stage types.Stage) (*Resume, error) {
	r, err := scanResume(db.pool.QueryRow(ctx,
		`UPDATE resumes SET stage = $2, updated_at = NOW() WHERE id = $1
		 RETURNING `+resumeColumns,
		id, string(stage),
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to update resume stage: %w", err)
	}
	return r, nil
}

// DeleteResume removes a resume, reporting whether it existed
func (db *DB) DeleteResume(ctx context.Context, id uuid.UUID) (bool, error) {
	tag, err := db.pool.Exec(ctx, `DELETE FROM resumes WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("failed to delete resume: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// -----------------------------------------------------------------------------
// Activity Methods
// -----------------------------------------------------------------------------

// LogActivity appends an entry to the activity log
func (db *DB) LogActivity(ctx context.Context, input *ActivityInput) (*Activity, error) {
	var detailsJSON []byte
	if input.Details != nil {
		var err error
		detailsJSON, err = json.Marshal(input.Details)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal activity details: %w", err)
		}
	}

	a := Activity{
		ID:         uuid.New(),
		EntityType: input.EntityType,
		EntityID:   input.EntityID,
		Action:     input.Action,
		Details:    input.Details,
	}
	err := db.pool.QueryRow(ctx,
		`INSERT INTO activity_logs (id, entity_type, entity_id, action, details)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING created_at`,
		a.ID, a.EntityType, a.EntityID, a.Action, detailsJSON,
	).Scan(&a.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to log activity: %w", err)
	}
	return &a, nil
}

// ListActivity returns the most recent activity entries
func (db *DB) ListActivity(ctx context.Context, limit int) ([]Activity, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT id, entity_type, entity_id, action, details, created_at
		 FROM activity_logs ORDER BY created_at DESC LIMIT $1`,
		clampActivityLimit(limit),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list activity: %w", err)
	}
	defer rows.Close()

	activity := make([]Activity, 0)
	for rows.Next() {
		var a Activity
		var detailsJSON []byte
		if err := rows.Scan(&a.ID, &a.EntityType, &a.EntityID, &a.Action, &detailsJSON, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan activity: %w", err)
		}
		if detailsJSON != nil {
			_ = json.Unmarshal(detailsJSON, &a.Details)
		}
		activity = append(activity, a)
	}
	return activity, rows.Err()
}

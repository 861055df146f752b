package store

// jobs.go records what each upload did, so operators can answer "what
// happened to Tuesday's parent import" without digging through logs.

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/shulebus/shulebus/internal/importer"
)

// ImportJob is one completed upload action and its outcome.
type ImportJob struct {
	ID           uuid.UUID           `json:"id"`
	EntityType   importer.EntityType `json:"entity_type"`
	FileCount    int                 `json:"file_count"`
	TotalSuccess int                 `json:"total_success"`
	TotalFailed  int                 `json:"total_failed"`
	Errors       []string            `json:"errors,omitempty"`
	CreatedAt    time.Time           `json:"created_at"`
}

const insertJob = `
INSERT INTO import_jobs (id, entity_type, file_count, total_success, total_failed, errors)
VALUES ($1, $2, $3, $4, $5, $6)
RETURNING created_at`

// RecordJob persists the outcome of one finished import and returns the
// stored job.
func (s *Store) RecordJob(ctx context.Context, report *importer.Report) (ImportJob, error) {
	job := ImportJob{
		ID:           uuid.New(),
		EntityType:   report.EntityType,
		FileCount:    len(report.PerFile),
		TotalSuccess: report.TotalSuccess,
		TotalFailed:  report.TotalFailed,
		Errors:       report.AllErrors,
	}

	errsJSON, err := json.Marshal(job.Errors)
	if err != nil {
		return ImportJob{}, fmt.Errorf("marshal job errors: %w", err)
	}
	if len(job.Errors) == 0 {
		errsJSON = []byte("[]")
	}

	err = s.db.QueryRow(ctx, insertJob,
		job.ID, string(job.EntityType), job.FileCount,
		job.TotalSuccess, job.TotalFailed, errsJSON,
	).Scan(&job.CreatedAt)
	if err != nil {
		return ImportJob{}, fmt.Errorf("record import job: %w", err)
	}

	return job, nil
}

const selectJobs = `
SELECT id, entity_type, file_count, total_success, total_failed, errors, created_at
FROM import_jobs
WHERE ($1 = '' OR entity_type = $1)
ORDER BY created_at DESC
LIMIT $2`

// ListJobs returns the most recent import jobs, optionally filtered by
// entity type. limit caps the page size.
func (s *Store) ListJobs(ctx context.Context, entityType importer.EntityType, limit int) ([]ImportJob, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}

	rows, err := s.db.Query(ctx, selectJobs, string(entityType), limit)
	if err != nil {
		return nil, fmt.Errorf("list import jobs: %w", err)
	}
	defer rows.Close()

	var jobs []ImportJob
	for rows.Next() {
		job, err := scanJob(rows)
		if err != nil {
			return nil, err
		}
		jobs = append(jobs, job)
	}
	return jobs, rows.Err()
}

const selectJob = `
SELECT id, entity_type, file_count, total_success, total_failed, errors, created_at
FROM import_jobs
WHERE id = $1`

// GetJob returns one import job by ID.
func (s *Store) GetJob(ctx context.Context, id uuid.UUID) (ImportJob, error) {
	row := s.db.QueryRow(ctx, selectJob, id)
	return scanJob(row)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanJob(row rowScanner) (ImportJob, error) {
	var (
		job        ImportJob
		entityType string
		errsJSON   []byte
	)
	err := row.Scan(&job.ID, &entityType, &job.FileCount,
		&job.TotalSuccess, &job.TotalFailed, &errsJSON, &job.CreatedAt)
	if err != nil {
		return ImportJob{}, fmt.Errorf("scan import job: %w", err)
	}

	job.EntityType = importer.EntityType(entityType)
	if len(errsJSON) > 0 {
		if err := json.Unmarshal(errsJSON, &job.Errors); err != nil {
			return ImportJob{}, fmt.Errorf("unmarshal job errors: %w", err)
		}
	}
	return job, nil
}

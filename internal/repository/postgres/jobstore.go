// Package postgres implements the JobStore interface against PostgreSQL,
// grounded on the teacher's repository/postgres connection-pool and
// query conventions (database/sql, lib/pq driver, fmt.Errorf wrapping,
// log.Println/Printf operational logging).
package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"time"

	_ "github.com/lib/pq" // PostgreSQL driver

	"github.com/your-org/jobrec/internal/repository"
	"github.com/your-org/jobrec/pkg/models"
)

// JobStore implements repository.JobStore for PostgreSQL.
type JobStore struct {
	db *sql.DB
}

// NewJobStore opens a connection pool against connectionString and
// verifies connectivity before returning.
func NewJobStore(connectionString string) (repository.JobStore, error) {
	db, err := sql.Open("postgres", connectionString)
	if err != nil {
		return nil, fmt.Errorf("failed to open database connection: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	log.Println("PostgreSQL connection established successfully")

	return &JobStore{db: db}, nil
}

// Upsert implements repository.JobStore.
func (s *JobStore) Upsert(ctx context.Context, jobs []models.Job) error {
	if len(jobs) == 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	const query = `
		INSERT INTO jobs (
			id, source, source_id, title, company, location, description, url,
			salary_min, salary_max, contract_type, contract_time, category,
			latitude, longitude, label, posted_at, created_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)
		ON CONFLICT (source, source_id) DO UPDATE SET
			title = EXCLUDED.title,
			company = EXCLUDED.company,
			location = EXCLUDED.location,
			description = EXCLUDED.description,
			url = EXCLUDED.url,
			salary_min = EXCLUDED.salary_min,
			salary_max = EXCLUDED.salary_max,
			contract_type = EXCLUDED.contract_type,
			contract_time = EXCLUDED.contract_time,
			category = EXCLUDED.category,
			latitude = EXCLUDED.latitude,
			longitude = EXCLUDED.longitude,
			label = EXCLUDED.label,
			posted_at = EXCLUDED.posted_at
	`

	stmt, err := tx.PrepareContext(ctx, query)
	if err != nil {
		return fmt.Errorf("failed to prepare upsert: %w", err)
	}
	defer stmt.Close()

	for _, j := range jobs {
		createdAt := j.CreatedAt
		if createdAt.IsZero() {
			createdAt = time.Now().UTC()
		}
		if _, err := stmt.ExecContext(
			ctx, j.ID, j.Source, j.SourceID, j.Title, j.Company, j.Location,
			j.Description, j.URL, j.SalaryMin, j.SalaryMax, j.ContractType,
			j.ContractTime, j.Category, j.Latitude, j.Longitude, j.Label,
			j.PostedAt, createdAt,
		); err != nil {
			return fmt.Errorf("failed to upsert job %q: %w", j.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit upsert of %d jobs: %w", len(jobs), err)
	}

	log.Printf("Upserted %d jobs", len(jobs))
	return nil
}

// GetByID implements repository.JobStore.
func (s *JobStore) GetByID(ctx context.Context, id string) (models.Job, error) {
	const query = `
		SELECT id, source, source_id, title, company, location, description, url,
			salary_min, salary_max, contract_type, contract_time, category,
			latitude, longitude, label, posted_at, created_at
		FROM jobs
		WHERE id = $1
	`

	var j models.Job
	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&j.ID, &j.Source, &j.SourceID, &j.Title, &j.Company, &j.Location,
		&j.Description, &j.URL, &j.SalaryMin, &j.SalaryMax, &j.ContractType,
		&j.ContractTime, &j.Category, &j.Latitude, &j.Longitude, &j.Label,
		&j.PostedAt, &j.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return models.Job{}, fmt.Errorf("job not found with id: %s", id)
	}
	if err != nil {
		return models.Job{}, fmt.Errorf("failed to get job: %w", err)
	}
	return j, nil
}

// List implements repository.JobStore.
func (s *JobStore) List(ctx context.Context, sourceFilter string, limit, offset int) ([]models.Job, error) {
	if limit <= 0 {
		limit = 100
	}

	query := `
		SELECT id, source, source_id, title, company, location, description, url,
			salary_min, salary_max, contract_type, contract_time, category,
			latitude, longitude, label, posted_at, created_at
		FROM jobs
	`
	args := []any{}
	argN := 1
	if sourceFilter != "" {
		query += fmt.Sprintf(" WHERE source = $%d", argN)
		args = append(args, sourceFilter)
		argN++
	}
	query += fmt.Sprintf(" ORDER BY posted_at DESC LIMIT $%d OFFSET $%d", argN, argN+1)
	args = append(args, limit, offset)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list jobs: %w", err)
	}
	defer rows.Close()

	var jobs []models.Job
	for rows.Next() {
		var j models.Job
		if err := rows.Scan(
			&j.ID, &j.Source, &j.SourceID, &j.Title, &j.Company, &j.Location,
			&j.Description, &j.URL, &j.SalaryMin, &j.SalaryMax, &j.ContractType,
			&j.ContractTime, &j.Category, &j.Latitude, &j.Longitude, &j.Label,
			&j.PostedAt, &j.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan job row: %w", err)
		}
		jobs = append(jobs, j)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating job rows: %w", err)
	}
	return jobs, nil
}

// Count implements repository.JobStore.
func (s *JobStore) Count(ctx context.Context, sourceFilter string) (int, error) {
	query := "SELECT COUNT(*) FROM jobs"
	args := []any{}
	if sourceFilter != "" {
		query += " WHERE source = $1"
		args = append(args, sourceFilter)
	}

	var count int
	if err := s.db.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count jobs: %w", err)
	}
	return count, nil
}

// Close implements repository.JobStore.
func (s *JobStore) Close() error {
	if s.db != nil {
		log.Println("Closing PostgreSQL database connection")
		return s.db.Close()
	}
	return nil
}

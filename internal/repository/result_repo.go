// Package repository persists scenario results in Postgres for dashboards.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/swaglabs/checkout-e2e/internal/report"
)

// ErrResultNotFound is returned when no result has the given ID
var ErrResultNotFound = errors.New("result not found")

// ResultRepository handles database operations for test results. It is a
// report.Sink.
type ResultRepository struct {
	db *sql.DB
}

var _ report.Sink = (*ResultRepository)(nil)

// NewResultRepository creates a new result repository on db
func NewResultRepository(db *sql.DB) *ResultRepository {
	return &ResultRepository{db: db}
}

// Write stores res
func (r *ResultRepository) Write(ctx context.Context, res *report.Result) error {
	return r.CreateResult(ctx, res)
}

// CreateResult inserts res with its annotations, links and steps in one
// transaction
func (r *ResultRepository) CreateResult(ctx context.Context, res *report.Result) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	now := time.Now()
	_, err = tx.ExecContext(ctx, `
		INSERT INTO test_results (id, name, full_name, status, message, started_at, finished_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`, res.UUID, res.Name, res.FullName, res.Status, res.Message, res.Start, res.Stop, now, now)
	if err != nil {
		return fmt.Errorf("failed to create result: %w", err)
	}

	for i, a := range res.Annotations {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO test_annotations (result_id, position, type, description) VALUES ($1, $2, $3, $4)`,
			res.UUID, i, a.Type, a.Description)
		if err != nil {
			return fmt.Errorf("failed to create annotation %d: %w", i, err)
		}
	}
	for i, l := range res.Links {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO test_links (result_id, position, name, url) VALUES ($1, $2, $3, $4)`,
			res.UUID, i, l.Name, l.URL)
		if err != nil {
			return fmt.Errorf("failed to create link %d: %w", i, err)
		}
	}
	for i, s := range res.Steps {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO test_steps (result_id, position, name, status, message, started_at, finished_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
		`, res.UUID, i, s.Name, s.Status, s.Message, s.Start, s.Stop)
		if err != nil {
			return fmt.Errorf("failed to create step %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit result: %w", err)
	}
	return nil
}

// GetResultByID retrieves a result and its children
func (r *ResultRepository) GetResultByID(ctx context.Context, id string) (*report.Result, error) {
	res := &report.Result{}
	err := r.db.QueryRowContext(ctx, `
		SELECT id, name, full_name, status, message, started_at, finished_at
		FROM test_results
		WHERE id = $1
	`, id).Scan(&res.UUID, &res.Name, &res.FullName, &res.Status, &res.Message, &res.Start, &res.Stop)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("%w: %s", ErrResultNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get result: %w", err)
	}

	if res.Annotations, err = r.annotations(ctx, id); err != nil {
		return nil, err
	}
	if res.Links, err = r.links(ctx, id); err != nil {
		return nil, err
	}
	if res.Steps, err = r.steps(ctx, id); err != nil {
		return nil, err
	}
	return res, nil
}

func (r *ResultRepository) annotations(ctx context.Context, id string) ([]report.Annotation, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT type, description FROM test_annotations WHERE result_id = $1 ORDER BY position`, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get annotations: %w", err)
	}
	defer rows.Close()

	var out []report.Annotation
	for rows.Next() {
		var a report.Annotation
		if err := rows.Scan(&a.Type, &a.Description); err != nil {
			return nil, fmt.Errorf("failed to scan annotation: %w", err)
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func (r *ResultRepository) links(ctx context.Context, id string) ([]report.Link, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT name, url FROM test_links WHERE result_id = $1 ORDER BY position`, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get links: %w", err)
	}
	defer rows.Close()

	var out []report.Link
	for rows.Next() {
		var l report.Link
		if err := rows.Scan(&l.Name, &l.URL); err != nil {
			return nil, fmt.Errorf("failed to scan link: %w", err)
		}
		out = append(out, l)
	}
	return out, rows.Err()
}

func (r *ResultRepository) steps(ctx context.Context, id string) ([]report.StepResult, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT name, status, message, started_at, finished_at
		FROM test_steps
		WHERE result_id = $1
		ORDER BY position
	`, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get steps: %w", err)
	}
	defer rows.Close()

	var out []report.StepResult
	for rows.Next() {
		var s report.StepResult
		if err := rows.Scan(&s.Name, &s.Status, &s.Message, &s.Start, &s.Stop); err != nil {
			return nil, fmt.Errorf("failed to scan step: %w", err)
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// UpdateResultStatus overrides a stored outcome, e.g. after triage marks a
// broken run as a known failure
func (r *ResultRepository) UpdateResultStatus(ctx context.Context, id string, status report.Status, message string) error {
	result, err := r.db.ExecContext(ctx, `
		UPDATE test_results
		SET status = $1, message = $2, updated_at = $3
		WHERE id = $4
	`, status, message, time.Now(), id)
	if err != nil {
		return fmt.Errorf("failed to update result status: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("%w: %s", ErrResultNotFound, id)
	}
	return nil
}

// CountByStatus returns how many stored results of fullName ended with each status
func (r *ResultRepository) CountByStatus(ctx context.Context, fullName string) (map[report.Status]int, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT status, COUNT(*) FROM test_results WHERE full_name = $1 GROUP BY status`, fullName)
	if err != nil {
		return nil, fmt.Errorf("failed to count results: %w", err)
	}
	defer rows.Close()

	counts := make(map[report.Status]int)
	for rows.Next() {
		var status report.Status
		var n int
		if err := rows.Scan(&status, &n); err != nil {
			return nil, fmt.Errorf("failed to scan count: %w", err)
		}
		counts[status] = n
	}
	return counts, rows.Err()
}

package database

import (
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// SourceRepository records the outcome of every feed source attempt.
type SourceRepository struct {
	db *DB
}

func NewSourceRepository(db *DB) *SourceRepository {
	return &SourceRepository{db: db}
}

func (r *SourceRepository) RecordSuccess(source, url string, itemCount int, at time.Time) error {
	stamp := at.UTC().Format(time.RFC3339)
	_, err := r.db.Exec(`
		INSERT INTO source_status (name, url, last_fetched_at, last_success_at, last_error, item_count, consecutive_failures)
		VALUES (?, ?, ?, ?, '', ?, 0)
		ON CONFLICT(name) DO UPDATE SET
			url = excluded.url,
			last_fetched_at = excluded.last_fetched_at,
			last_success_at = excluded.last_success_at,
			last_error = '',
			item_count = excluded.item_count,
			consecutive_failures = 0
	`, source, url, stamp, stamp, itemCount)
	if err != nil {
		return fmt.Errorf("failed to record success for %s: %w", source, err)
	}
	return nil
}

// RecordFailure stores fetchErr and bumps the failure streak. The item count
// and last success of earlier runs are kept.
func (r *SourceRepository) RecordFailure(source, url string, fetchErr error, at time.Time) error {
	message := ""
	if fetchErr != nil {
		message = fetchErr.Error()
	}

	_, err := r.db.Exec(`
		INSERT INTO source_status (name, url, last_fetched_at, last_error, consecutive_failures)
		VALUES (?, ?, ?, ?, 1)
		ON CONFLICT(name) DO UPDATE SET
			url = excluded.url,
			last_fetched_at = excluded.last_fetched_at,
			last_error = excluded.last_error,
			consecutive_failures = source_status.consecutive_failures + 1
	`, source, url, at.UTC().Format(time.RFC3339), message)
	if err != nil {
		return fmt.Errorf("failed to record failure for %s: %w", source, err)
	}
	return nil
}

// GetStatus returns the status of a source, or nil when it was never seen.
func (r *SourceRepository) GetStatus(source string) (*SourceStatus, error) {
	row := r.db.QueryRow(`
		SELECT name, url, last_fetched_at, last_success_at, last_error, item_count, consecutive_failures
		FROM source_status
		WHERE name = ?
	`, source)

	status, err := scanStatus(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get status for %s: %w", source, err)
	}
	return status, nil
}

// GetStatuses returns every recorded source ordered by name.
func (r *SourceRepository) GetStatuses() ([]SourceStatus, error) {
	rows, err := r.db.Query(`
		SELECT name, url, last_fetched_at, last_success_at, last_error, item_count, consecutive_failures
		FROM source_status
		ORDER BY name
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query statuses: %w", err)
	}
	defer rows.Close()

	var statuses []SourceStatus
	for rows.Next() {
		status, err := scanStatus(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan status: %w", err)
		}
		statuses = append(statuses, *status)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating statuses: %w", err)
	}

	return statuses, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanStatus(s scanner) (*SourceStatus, error) {
	var (
		status    SourceStatus
		fetchedAt string
		successAt sql.NullString
	)

	err := s.Scan(&status.Name, &status.URL, &fetchedAt, &successAt, &status.LastError, &status.ItemCount, &status.ConsecutiveFailures)
	if err != nil {
		return nil, err
	}

	status.LastFetchedAt, err = time.Parse(time.RFC3339, fetchedAt)
	if err != nil {
		return nil, fmt.Errorf("invalid fetch time %q: %w", fetchedAt, err)
	}

	if successAt.Valid {
		t, err := time.Parse(time.RFC3339, successAt.String)
		if err != nil {
			return nil, fmt.Errorf("invalid success time %q: %w", successAt.String, err)
		}
		status.LastSuccessAt = &t
	}

	return &status, nil
}

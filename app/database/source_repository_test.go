package database

import (
	"errors"
	"path/filepath"
	"testing"
	"time"
)

func setupDB(t *testing.T) *DB {
	t.Helper()

	db, err := Open(filepath.Join(t.TempDir(), "state", "sources.db"))
	if err != nil {
		t.Fatalf("Failed to open database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	version, dirty, err := RunMigrations(db)
	if err != nil {
		t.Fatalf("Failed to run migrations: %v", err)
	}
	if version != 1 || dirty {
		t.Fatalf("Expected clean version 1, got %d (dirty: %v)", version, dirty)
	}

	return db
}

func TestRunMigrationsIsRepeatable(t *testing.T) {
	db := setupDB(t)

	version, _, err := RunMigrations(db)
	if err != nil {
		t.Fatalf("Expected no error on second run, got %v", err)
	}
	if version != 1 {
		t.Errorf("Expected version 1, got %d", version)
	}
}

func TestSourceRepository_RecordSuccess(t *testing.T) {
	repo := NewSourceRepository(setupDB(t))
	at := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)

	if err := repo.RecordSuccess("Blog", "https://blog.example.com/rss", 7, at); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	status, err := repo.GetStatus("Blog")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if status == nil {
		t.Fatal("Expected status to be recorded")
	}
	if status.ItemCount != 7 {
		t.Errorf("Expected item count 7, got %d", status.ItemCount)
	}
	if !status.LastFetchedAt.Equal(at) {
		t.Errorf("Expected fetch time %v, got %v", at, status.LastFetchedAt)
	}
	if status.LastSuccessAt == nil || !status.LastSuccessAt.Equal(at) {
		t.Errorf("Expected success time %v, got %v", at, status.LastSuccessAt)
	}
}

func TestSourceRepository_FailureKeepsLastSuccess(t *testing.T) {
	repo := NewSourceRepository(setupDB(t))
	first := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	later := first.Add(24 * time.Hour)

	if err := repo.RecordSuccess("Blog", "https://blog.example.com/rss", 3, first); err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 2; i++ {
		if err := repo.RecordFailure("Blog", "https://blog.example.com/rss", errors.New("HTTP error: 500"), later); err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
	}

	status, err := repo.GetStatus("Blog")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if status.LastError != "HTTP error: 500" {
		t.Errorf("Expected last error recorded, got '%s'", status.LastError)
	}
	if status.ConsecutiveFailures != 2 {
		t.Errorf("Expected 2 consecutive failures, got %d", status.ConsecutiveFailures)
	}
	if status.ItemCount != 3 {
		t.Errorf("Expected item count kept at 3, got %d", status.ItemCount)
	}
	if status.LastSuccessAt == nil || !status.LastSuccessAt.Equal(first) {
		t.Errorf("Expected last success kept, got %v", status.LastSuccessAt)
	}
	if !status.LastFetchedAt.Equal(later) {
		t.Errorf("Expected fetch time %v, got %v", later, status.LastFetchedAt)
	}

	if err := repo.RecordSuccess("Blog", "https://blog.example.com/rss", 4, later); err != nil {
		t.Fatal(err)
	}
	status, err = repo.GetStatus("Blog")
	if err != nil {
		t.Fatal(err)
	}
	if status.ConsecutiveFailures != 0 || status.LastError != "" {
		t.Errorf("Expected failure streak reset, got %+v", status)
	}
}

func TestSourceRepository_FirstFailure(t *testing.T) {
	repo := NewSourceRepository(setupDB(t))

	if err := repo.RecordFailure("New", "https://new.example.com/feed", errors.New("timeout"), time.Now()); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	status, err := repo.GetStatus("New")
	if err != nil {
		t.Fatal(err)
	}
	if status.LastSuccessAt != nil {
		t.Errorf("Expected no success time, got %v", status.LastSuccessAt)
	}
	if status.ConsecutiveFailures != 1 {
		t.Errorf("Expected 1 failure, got %d", status.ConsecutiveFailures)
	}
}

func TestSourceRepository_GetStatuses(t *testing.T) {
	repo := NewSourceRepository(setupDB(t))

	missing, err := repo.GetStatus("Nope")
	if err != nil || missing != nil {
		t.Errorf("Expected nil status for unknown source, got %v, %v", missing, err)
	}

	now := time.Now()
	if err := repo.RecordSuccess("Zeta", "https://z.example.com", 1, now); err != nil {
		t.Fatal(err)
	}
	if err := repo.RecordSuccess("Alpha", "https://a.example.com", 2, now); err != nil {
		t.Fatal(err)
	}

	statuses, err := repo.GetStatuses()
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(statuses) != 2 || statuses[0].Name != "Alpha" || statuses[1].Name != "Zeta" {
		t.Errorf("Expected statuses ordered by name, got %+v", statuses)
	}
}

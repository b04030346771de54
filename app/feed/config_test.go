package feed

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "feeds.yml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}
	return path
}

func TestLoadConfig(t *testing.T) {
	path := writeConfig(t, `mediumUrl: https://medium.com/feed/@jane
feeds:
  - name: Blog
    url: https://blog.example.com/rss
    author: jane
    tags: [blog]
    timeout: 5
    filters:
      - field: title
        excludes: [draft]
syncInterval: daily
`)

	config, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if config.MaxItemsPerFeed != DefaultMaxItems {
		t.Errorf("Expected default cap %d, got %d", DefaultMaxItems, config.MaxItemsPerFeed)
	}
	if len(config.Feeds) != 2 {
		t.Fatalf("Expected 2 feeds, got %d", len(config.Feeds))
	}

	blog := config.Feeds[0]
	if blog.Timeout != 5 || len(blog.Filters) != 1 || blog.Filters[0].Excludes[0] != "draft" {
		t.Errorf("Expected per-source settings, got %+v", blog)
	}

	medium := config.Feeds[1]
	if medium.Name != "Medium" || medium.URL != "https://medium.com/feed/@jane" {
		t.Errorf("Expected appended Medium source, got %+v", medium)
	}
	if len(medium.Tags) != 1 || medium.Tags[0] != "medium" {
		t.Errorf("Expected tags [medium], got %v", medium.Tags)
	}
	if medium.Timeout != DefaultTimeout {
		t.Errorf("Expected default timeout, got %d", medium.Timeout)
	}
}

func TestLoadConfigSkipsDuplicateMedium(t *testing.T) {
	path := writeConfig(t, `mediumUrl: https://medium.com/feed/@jane
feeds:
  - name: Medium
    url: https://medium.com/feed/@jane/
maxItemsPerFeed: 5
`)

	config, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(config.Feeds) != 1 {
		t.Errorf("Expected Medium listed once, got %d feeds", len(config.Feeds))
	}
	if config.MaxItemsPerFeed != 5 {
		t.Errorf("Expected cap 5, got %d", config.MaxItemsPerFeed)
	}
}

func TestLoadConfigErrors(t *testing.T) {
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yml")); !errors.Is(err, ErrConfigNotFound) {
		t.Errorf("Expected ErrConfigNotFound, got %v", err)
	}

	if _, err := LoadConfig(writeConfig(t, "feeds: []\n")); !errors.Is(err, ErrNoSources) {
		t.Errorf("Expected ErrNoSources, got %v", err)
	}

	if _, err := LoadConfig(writeConfig(t, "feeds:\n  - name: x\n")); err == nil {
		t.Error("Expected error for feed without url")
	}

	bad := "feeds:\n  - name: x\n    url: http://e.com\n    filters:\n      - field: body\n"
	if _, err := LoadConfig(writeConfig(t, bad)); err == nil {
		t.Error("Expected error for unknown filter field")
	}

	if _, err := LoadConfig(writeConfig(t, "feeds: [")); err == nil {
		t.Error("Expected error for invalid YAML")
	}
}

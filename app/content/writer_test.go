package content

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/lysyi3m/scholar-sync/app/mapper"
)

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read %s: %v", path, err)
	}
	return string(data)
}

func TestMarshalRecordKeepsOrderAndTypes(t *testing.T) {
	rec := mapper.Record{
		{Key: "title", Value: "true"},
		{Key: "date", Value: mapper.Date("2024-01-15")},
		{Key: "year", Value: 2024},
		{Key: "featured", Value: false},
		{Key: "authors", Value: []string{"Jane Doe"}},
		{Key: "nested", Value: mapper.Record{{Key: "b", Value: "x"}, {Key: "a", Value: "z"}}},
		{Key: "items", Value: []mapper.Record{{{Key: "label", Value: "CV"}}}},
	}

	data, err := MarshalRecord(rec)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	want := `title: "true"
date: 2024-01-15
year: 2024
featured: false
authors:
  - Jane Doe
nested:
  b: x
  a: z
items:
  - label: CV
`
	if string(data) != want {
		t.Errorf("Expected:\n%s\ngot:\n%s", want, data)
	}
}

func TestMarshalRecordRejectsUnknownTypes(t *testing.T) {
	if _, err := MarshalRecord(mapper.Record{{Key: "x", Value: 1.5}}); err == nil {
		t.Error("Expected error for unsupported value")
	}
}

func TestWriteDocument(t *testing.T) {
	root := t.TempDir()
	w := NewWriter(root)

	err := w.WriteDocument("announcements", mapper.Document{
		Slug:  "new-grant",
		Front: mapper.Record{{Key: "title", Value: "We got a grant: NSF"}},
		Body:  "Body text\n",
	})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	got := readFile(t, filepath.Join(root, "src/content/announcements/new-grant.md"))
	want := "---\ntitle: 'We got a grant: NSF'\n---\n\nBody text\n"
	if got != want {
		t.Errorf("Expected %q, got %q", want, got)
	}
}

func TestWriteDocumentWithoutBody(t *testing.T) {
	root := t.TempDir()
	w := NewWriter(root)

	if err := w.WriteDocument("publications", mapper.Document{Slug: "p", Front: mapper.Record{{Key: "year", Value: 2020}}}); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	got := readFile(t, filepath.Join(root, "src/content/publications/p.md"))
	if got != "---\nyear: 2020\n---\n" {
		t.Errorf("Expected frontmatter only, got %q", got)
	}
}

func TestWriteConfigWithHeader(t *testing.T) {
	root := t.TempDir()
	w := NewWriter(root)

	if err := w.WriteConfig("scholar", mapper.Record{{Key: "maxResults", Value: 100}}, "Scholar Configuration"); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	got := readFile(t, filepath.Join(root, "config/scholar.yml"))
	if got != "# Scholar Configuration\n\nmaxResults: 100\n" {
		t.Errorf("Expected header and body, got %q", got)
	}
}

func TestCleanCollections(t *testing.T) {
	root := t.TempDir()
	w := NewWriter(root)

	files := []string{
		"src/content/people/example.md",
		"src/content/posts/a.mdx",
		"src/content/posts/keep.json",
		"src/content/other/untouched.md",
		"src/data/feeds.json",
	}
	for _, rel := range files {
		path := filepath.Join(root, rel)
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte(`[{"id":"x"}]`), 0644); err != nil {
			t.Fatal(err)
		}
	}

	removed, err := w.CleanCollections()
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if removed != 2 {
		t.Errorf("Expected 2 removed files, got %d", removed)
	}
	if _, err := os.Stat(filepath.Join(root, "src/content/posts/keep.json")); err != nil {
		t.Errorf("Expected non-Markdown file kept: %v", err)
	}
	if _, err := os.Stat(filepath.Join(root, "src/content/other/untouched.md")); err != nil {
		t.Errorf("Expected other collections kept: %v", err)
	}
	if got := readFile(t, filepath.Join(root, "src/data/feeds.json")); got != "[]\n" {
		t.Errorf("Expected emptied feed cache, got %q", got)
	}
}

func TestCleanCollectionsOnEmptyRoot(t *testing.T) {
	removed, err := NewWriter(t.TempDir()).CleanCollections()
	if err != nil || removed != 0 {
		t.Errorf("Expected nothing to clean, got %d, %v", removed, err)
	}
}

func TestCopyFile(t *testing.T) {
	src := filepath.Join(t.TempDir(), "prof_pic.jpg")
	if err := os.WriteFile(src, []byte("jpeg"), 0644); err != nil {
		t.Fatal(err)
	}

	root := t.TempDir()
	if err := NewWriter(root).CopyFile(src, "src/assets/images/people/profile.jpg"); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if got := readFile(t, filepath.Join(root, "src/assets/images/people/profile.jpg")); got != "jpeg" {
		t.Errorf("Expected copied content, got %q", got)
	}
}

func TestSourceRepository(t *testing.T) {
	root := t.TempDir()
	w := NewWriter(root)

	repo, err := w.SourceRepository()
	if err != nil || repo != "" {
		t.Errorf("Expected empty repository without site config, got %q, %v", repo, err)
	}

	if err := os.MkdirAll(filepath.Join(root, "config"), 0755); err != nil {
		t.Fatal(err)
	}
	site := "title: x\nalfolioRepo: \" https://github.com/jane/site \"\n"
	if err := os.WriteFile(filepath.Join(root, "config/site.yml"), []byte(site), 0644); err != nil {
		t.Fatal(err)
	}

	repo, err = w.SourceRepository()
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if !strings.HasPrefix(repo, "https://github.com/jane/site") || strings.HasSuffix(repo, " ") {
		t.Errorf("Expected trimmed repository URL, got %q", repo)
	}
}

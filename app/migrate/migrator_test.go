package migrate

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/lysyi3m/scholar-sync/app/content"
)

func writeFile(t *testing.T, root, rel, data string) {
	t.Helper()
	path := filepath.Join(root, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}
}

func readFile(t *testing.T, root, rel string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(root, filepath.FromSlash(rel)))
	if err != nil {
		t.Fatalf("Expected %s to exist: %v", rel, err)
	}
	return string(data)
}

func legacySite(t *testing.T) string {
	t.Helper()
	root := t.TempDir()

	writeFile(t, root, "_config.yml", `first_name: Jane
last_name: Doe
email: jane@example.org
github_username: janedoe
keywords: robotics, vision, learning
medium_username: janedoe
`)
	writeFile(t, root, "_pages/about.md", "---\nlayout: about\nnav: true\npermalink: /\nsubtitle: Professor\nprofile:\n  image: me.png\n---\n\nI study robots.\n")
	writeFile(t, root, "_bibliography/papers.bib", `
@article{doe2024robots,
  title = {Robots {Everywhere}},
  author = {Doe, Jane},
  journal = {Science Robotics},
  year = {2024},
  preview = {robots.png}
}
@misc{broken title = {No key}}
`)
	writeFile(t, root, "_news/2024-01-15-new-grant.md", "---\ndate: 2024-01-15\n---\nWe received an NSF grant.\n")
	writeFile(t, root, "_news/2023-01-15-new-grant.md", "---\ndate: 2023-01-15\n---\nAnother grant.\n")
	writeFile(t, root, "_projects/3_robotics-project.md", "---\ntitle: Robotics\n---\nProject body.\n")
	writeFile(t, root, "_posts/2023-06-01-hello.md", "---\ntitle: Hello\n---\nPost body.\n")
	writeFile(t, root, "assets/img/me.png", "png")
	writeFile(t, root, "assets/img/publication_preview/robots.png", "png")
	writeFile(t, root, "assets/img/favicon.ico", "ico")
	writeFile(t, root, "CNAME", "jane.example.org")

	return root
}

func TestMigratorRun(t *testing.T) {
	source := legacySite(t)
	output := t.TempDir()
	writeFile(t, output, "src/content/people/example.md", "old")

	summary, err := NewMigrator(content.NewWriter(output)).Run(context.Background(), source)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if summary.PersonSlug != "jane-doe" {
		t.Errorf("Expected slug 'jane-doe', got '%s'", summary.PersonSlug)
	}
	if summary.Publications != 1 || summary.Announcements != 2 || summary.Projects != 1 || summary.Posts != 1 {
		t.Errorf("Expected counts 1/2/1/1, got %+v", summary)
	}
	if summary.Removed != 1 {
		t.Errorf("Expected 1 removed example file, got %d", summary.Removed)
	}
	if !summary.ProfilePhoto || summary.PublicationImages != 1 {
		t.Errorf("Expected copied images, got %+v", summary)
	}

	person := readFile(t, output, "src/content/people/jane-doe.md")
	if !strings.Contains(person, "photo: ../../assets/images/people/profile.png") {
		t.Errorf("Expected photo reference, got:\n%s", person)
	}
	if !strings.Contains(person, "I study robots.") {
		t.Errorf("Expected about body, got:\n%s", person)
	}

	publication := readFile(t, output, "src/content/publications/doe2024robots.md")
	if !strings.Contains(publication, "image: ../../assets/images/publications/robots.png") {
		t.Errorf("Expected image reference, got:\n%s", publication)
	}
	if !strings.Contains(publication, "- Jane Doe") {
		t.Errorf("Expected reordered author, got:\n%s", publication)
	}

	readFile(t, output, "src/content/announcements/new-grant.md")
	readFile(t, output, "src/content/announcements/new-grant-2.md")
	readFile(t, output, "src/content/projects/robotics-project.md")
	readFile(t, output, "src/content/posts/hello.md")
	readFile(t, output, "src/assets/images/publications/robots.png")
	readFile(t, output, "public/images/people/profile.png")
	readFile(t, output, "public/favicon.ico")
	readFile(t, output, "public/CNAME")

	feeds := readFile(t, output, "config/feeds.yml")
	if !strings.Contains(feeds, "mediumUrl: https://medium.com/feed/@janedoe") {
		t.Errorf("Expected medium feed, got:\n%s", feeds)
	}

	site := readFile(t, output, "config/site.yml")
	if !strings.HasPrefix(site, "# Site Configuration\n") || !strings.Contains(site, `alfolioRepo: ""`) {
		t.Errorf("Expected site config header and cleared source, got:\n%s", site)
	}

	for _, name := range []string{"scholar", "cv", "research"} {
		readFile(t, output, "config/"+name+".yml")
	}

	if _, err := os.Stat(filepath.Join(output, "src/content/people/example.md")); !os.IsNotExist(err) {
		t.Errorf("Expected example content removed, got %v", err)
	}
	if _, err := os.Stat(source); err != nil {
		t.Errorf("Expected local source kept, got %v", err)
	}
}

func TestMigratorRunIsRepeatable(t *testing.T) {
	source := legacySite(t)
	output := t.TempDir()
	m := NewMigrator(content.NewWriter(output))

	if _, err := m.Run(context.Background(), source); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	first := readFile(t, output, "src/content/publications/doe2024robots.md")

	summary, err := m.Run(context.Background(), source)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if summary.Removed == 0 {
		t.Error("Expected previous output to be cleaned")
	}
	if second := readFile(t, output, "src/content/publications/doe2024robots.md"); second != first {
		t.Errorf("Expected identical output across runs")
	}
}

func TestMigratorRunWithoutSource(t *testing.T) {
	_, err := NewMigrator(content.NewWriter(t.TempDir())).Run(context.Background(), "")
	if !errors.Is(err, ErrNoSource) {
		t.Errorf("Expected ErrNoSource, got %v", err)
	}
}

func TestMigratorRunUsesRecordedSource(t *testing.T) {
	source := legacySite(t)
	output := t.TempDir()
	writeFile(t, output, "config/site.yml", "alfolioRepo: "+source+"\n")

	summary, err := NewMigrator(content.NewWriter(output)).Run(context.Background(), "")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if summary.Publications != 1 {
		t.Errorf("Expected migration from recorded source, got %+v", summary)
	}
}

func TestMigratorRunMissingSource(t *testing.T) {
	_, err := NewMigrator(content.NewWriter(t.TempDir())).Run(context.Background(), filepath.Join(t.TempDir(), "missing"))
	if err == nil {
		t.Fatal("Expected error for missing source")
	}
}

package content

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/otiai10/copy"
	"gopkg.in/yaml.v3"

	"github.com/lysyi3m/scholar-sync/app/mapper"
)

// Collections rewritten by a migration.
var Collections = []string{"people", "publications", "announcements", "projects", "posts", "positions", "talks"}

const (
	contentDir = "src/content"
	configDir  = "config"
	FeedCache  = "src/data/feeds.json"
	FeedConfig = "config/feeds.yml"
	SiteConfig = "config/site.yml"
	emptyFeeds = "[]\n"
	dirPerm    = 0755
	filePerm   = 0644
)

// Writer serializes destination records below a site root.
type Writer struct {
	root string
}

func NewWriter(root string) *Writer {
	return &Writer{root: root}
}

func (w *Writer) path(rel string) string {
	return filepath.Join(w.root, filepath.FromSlash(rel))
}

// WriteDocument writes src/content/<collection>/<slug>.md.
func (w *Writer) WriteDocument(collection string, doc mapper.Document) error {
	front, err := MarshalRecord(doc.Front)
	if err != nil {
		return fmt.Errorf("failed to render %s/%s: %w", collection, doc.Slug, err)
	}

	var b strings.Builder
	b.WriteString("---\n")
	b.Write(front)
	b.WriteString("---\n")
	if body := strings.TrimSpace(doc.Body); body != "" {
		b.WriteString("\n")
		b.WriteString(body)
		b.WriteString("\n")
	}

	return w.writeFile(filepath.Join(contentDir, collection, doc.Slug+".md"), []byte(b.String()))
}

// WriteConfig writes config/<name>.yml, preceded by header comment lines.
func (w *Writer) WriteConfig(name string, rec mapper.Record, header ...string) error {
	body, err := MarshalRecord(rec)
	if err != nil {
		return fmt.Errorf("failed to render config %s: %w", name, err)
	}

	var b strings.Builder
	for _, line := range header {
		b.WriteString("# ")
		b.WriteString(line)
		b.WriteString("\n")
	}
	if len(header) > 0 {
		b.WriteString("\n")
	}
	b.Write(body)

	return w.writeFile(filepath.Join(configDir, name+".yml"), []byte(b.String()))
}

func (w *Writer) writeFile(rel string, data []byte) error {
	path := w.path(rel)
	if err := os.MkdirAll(filepath.Dir(path), dirPerm); err != nil {
		return fmt.Errorf("failed to create directory for %s: %w", rel, err)
	}
	if err := os.WriteFile(path, data, filePerm); err != nil {
		return fmt.Errorf("failed to write %s: %w", rel, err)
	}
	return nil
}

// CleanCollections removes the Markdown files of every collection and
// empties the feed cache when one exists. It returns the number of files
// removed.
func (w *Writer) CleanCollections() (int, error) {
	removed := 0
	for _, collection := range Collections {
		matches, err := doublestar.FilepathGlob(filepath.Join(w.path(contentDir), collection, "*.{md,mdx}"))
		if err != nil {
			return removed, fmt.Errorf("failed to list %s: %w", collection, err)
		}
		for _, m := range matches {
			if err := os.Remove(m); err != nil {
				return removed, fmt.Errorf("failed to remove %s: %w", m, err)
			}
			removed++
		}
	}

	if _, err := os.Stat(w.path(FeedCache)); err == nil {
		if err := w.writeFile(FeedCache, []byte(emptyFeeds)); err != nil {
			return removed, err
		}
		slog.Info("Cleared feed cache", "path", w.path(FeedCache))
	}

	return removed, nil
}

// CopyFile copies src to a path relative to the site root.
func (w *Writer) CopyFile(src, rel string) error {
	if err := copy.Copy(src, w.path(rel)); err != nil {
		return fmt.Errorf("failed to copy %s: %w", filepath.Base(src), err)
	}
	return nil
}

// SourceRepository returns the legacy repository recorded in config/site.yml.
func (w *Writer) SourceRepository() (string, error) {
	data, err := os.ReadFile(w.path(SiteConfig))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", nil
		}
		return "", fmt.Errorf("failed to read site config: %w", err)
	}

	var site struct {
		Repository string `yaml:"alfolioRepo"`
	}
	if err := yaml.Unmarshal(data, &site); err != nil {
		return "", fmt.Errorf("failed to parse site config: %w", err)
	}
	return strings.TrimSpace(site.Repository), nil
}

package legacy

import (
	"cmp"
	"encoding/json"
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"gopkg.in/yaml.v3"

	"github.com/lysyi3m/scholar-sync/app/markup"
)

const (
	defaultNewsDate = "2024-01-01"
	defaultNavOrder = 99
)

var aboutCandidates = []string{"_pages/about.md", "about.md", "_pages/about.html"}

// Reader walks a legacy site checkout. Missing files and directories yield
// empty results; recoverable problems are logged and counted per category.
type Reader struct {
	root     string
	warnings map[string]int
}

func NewReader(root string) *Reader {
	return &Reader{
		root:     root,
		warnings: make(map[string]int),
	}
}

func (r *Reader) Root() string {
	return r.root
}

// Warnings returns the number of recoverable problems seen so far, keyed by
// category.
func (r *Reader) Warnings() map[string]int {
	out := make(map[string]int, len(r.warnings))
	for k, v := range r.warnings {
		out[k] = v
	}
	return out
}

func (r *Reader) warn(category, path string, err error) {
	r.warnings[category]++
	slog.Warn("Skipping legacy input", "category", category, "path", path, "error", err)
}

func (r *Reader) path(rel string) string {
	return filepath.Join(r.root, filepath.FromSlash(rel))
}

// readOptional returns the content of a file, or ok=false when it does not
// exist.
func (r *Reader) readOptional(category, rel string) (string, bool) {
	data, err := os.ReadFile(r.path(rel))
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			r.warn(category, rel, err)
		}
		return "", false
	}
	return string(data), true
}

// Find returns the absolute path of the first candidate that exists as a
// regular file.
func (r *Reader) Find(candidates ...string) (string, bool) {
	for _, rel := range candidates {
		if rel == "" {
			continue
		}
		p := r.path(rel)
		if info, err := os.Stat(p); err == nil && info.Mode().IsRegular() {
			return p, true
		}
	}
	return "", false
}

// PreviewPath locates a publication preview image.
func (r *Reader) PreviewPath(name string) (string, bool) {
	if name == "" || filepath.Base(name) != name {
		return "", false
	}
	return r.Find("assets/img/publication_preview/"+name, "assets/img/"+name)
}

func (r *Reader) Config() Config {
	raw, ok := r.readOptional("config", "_config.yml")
	if !ok {
		slog.Warn("Legacy config not found", "path", r.path("_config.yml"))
		return NewConfig(nil)
	}

	var values map[string]any
	if err := yaml.Unmarshal([]byte(raw), &values); err != nil {
		r.warn("config", "_config.yml", err)
		return NewConfig(nil)
	}
	return NewConfig(values)
}

func (r *Reader) About() Page {
	for _, rel := range aboutCandidates {
		raw, ok := r.readOptional("about", rel)
		if !ok {
			continue
		}
		return r.page("about", rel, raw)
	}
	return Page{Data: map[string]any{}}
}

func (r *Reader) page(category, rel, raw string) Page {
	data, body, err := SplitFrontmatter(raw)
	if err != nil {
		r.warn(category, rel, err)
	}
	return Page{Data: data, Body: body}
}

func (r *Reader) Bibliography() string {
	raw, _ := r.readOptional("publications", "_bibliography/papers.bib")
	return raw
}

// glob lists the files of a legacy directory matching pattern, sorted by name.
func (r *Reader) glob(category, dir, pattern string) []string {
	matches, err := doublestar.FilepathGlob(filepath.Join(r.path(dir), pattern))
	if err != nil {
		r.warn(category, dir, err)
		return nil
	}

	files := matches[:0]
	for _, m := range matches {
		if info, err := os.Stat(m); err == nil && info.Mode().IsRegular() {
			files = append(files, m)
		}
	}
	sort.Strings(files)
	return files
}

func (r *Reader) readFile(category, path string) (string, bool) {
	data, err := os.ReadFile(path)
	if err != nil {
		r.warn(category, path, err)
		return "", false
	}
	return string(data), true
}

func (r *Reader) News() []NewsItem {
	files := r.glob("news", "_news", "*.{md,html}")
	items := make([]NewsItem, 0, len(files))

	for _, path := range files {
		raw, ok := r.readFile("news", path)
		if !ok {
			continue
		}
		page := r.page("news", path, raw)
		name := filepath.Base(path)

		date, ok := ParseDate(page.Data["date"])
		if !ok {
			date = defaultNewsDate
		}

		clean := markup.Strip(page.Body)
		title := markup.TitleFromText(cmp.Or(clean, strings.TrimSuffix(name, filepath.Ext(name))))

		slug := SlugFromFilename(name, KindNews)
		if slug == "" {
			slug = Slugify(title)
		}
		if slug == "" {
			r.warn("news", path, errors.New("no usable slug"))
			continue
		}

		items = append(items, NewsItem{
			Slug:     slug,
			Date:     date,
			Title:    title,
			Body:     newsBody(name, page.Body),
			Category: markup.Classify(clean),
			Excerpt:  markup.Excerpt(clean),
		})
	}

	return items
}

func newsBody(name, body string) string {
	if strings.EqualFold(filepath.Ext(name), ".html") {
		return markup.ToMarkdown(body)
	}
	return markup.SimplifyInline(body)
}

func (r *Reader) Projects() []Document {
	return r.documents("projects", "_projects", "*.md", KindProject)
}

func (r *Reader) Posts() []Document {
	return r.documents("posts", "_posts", "*.{md,html}", KindPost)
}

func (r *Reader) documents(category, dir, pattern string, kind Kind) []Document {
	files := r.glob(category, dir, pattern)
	docs := make([]Document, 0, len(files))

	for _, path := range files {
		raw, ok := r.readFile(category, path)
		if !ok {
			continue
		}
		page := r.page(category, path, raw)

		slug := SlugFromFilename(path, kind)
		if slug == "" {
			slug = Slugify(StringField(page.Data, "title"))
		}
		if slug == "" {
			r.warn(category, path, errors.New("no usable slug"))
			continue
		}

		docs = append(docs, Document{Slug: slug, Data: page.Data, Body: page.Body})
	}

	return docs
}

// NavPages returns the pages flagged with `nav: true`, ordered by nav_order.
func (r *Reader) NavPages() []NavPage {
	files := r.glob("pages", "_pages", "*.{md,html}")
	pages := make([]NavPage, 0, len(files))

	for _, path := range files {
		raw, ok := r.readFile("pages", path)
		if !ok {
			continue
		}
		page := r.page("pages", path, raw)
		if !truthy(page.Data["nav"]) {
			continue
		}

		name := filepath.Base(path)
		label := cmp.Or(StringField(page.Data, "title"), strings.TrimSuffix(name, filepath.Ext(name)))
		permalink := cmp.Or(StringField(page.Data, "permalink"), "/"+Slugify(label))

		order := defaultNavOrder
		if n, ok := page.Data["nav_order"].(int); ok && n != 0 {
			order = n
		}

		pages = append(pages, NavPage{Label: label, Permalink: permalink, Order: order})
	}

	sort.SliceStable(pages, func(i, j int) bool {
		return pages[i].Order < pages[j].Order
	})
	return pages
}

func (r *Reader) Repositories() Repositories {
	raw, ok := r.readOptional("repositories", "_data/repositories.yml")
	if !ok {
		return Repositories{}
	}

	var data struct {
		Users []string `yaml:"github_users"`
		Repos []string `yaml:"github_repos"`
	}
	if err := yaml.Unmarshal([]byte(raw), &data); err != nil {
		r.warn("repositories", "_data/repositories.yml", err)
		return Repositories{}
	}

	repos := make([]string, 0, len(data.Repos))
	for _, repo := range data.Repos {
		if _, name, found := strings.Cut(repo, "/"); found {
			repo = name
		}
		repos = append(repos, repo)
	}

	return Repositories{Users: data.Users, Repos: repos}
}

// Resume returns the parsed resume document, or nil when it is absent or
// cannot be parsed.
func (r *Reader) Resume() *Resume {
	raw, ok := r.readOptional("resume", "assets/json/resume.json")
	if !ok {
		return nil
	}

	var resume Resume
	if err := json.Unmarshal([]byte(raw), &resume); err != nil {
		r.warn("resume", "assets/json/resume.json", err)
		return nil
	}
	return &resume
}

func truthy(v any) bool {
	switch value := v.(type) {
	case bool:
		return value
	case string:
		return value == "true"
	}
	return false
}

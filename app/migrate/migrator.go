package migrate

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/lysyi3m/scholar-sync/app/bibtex"
	"github.com/lysyi3m/scholar-sync/app/content"
	"github.com/lysyi3m/scholar-sync/app/legacy"
	"github.com/lysyi3m/scholar-sync/app/mapper"
)

var ErrNoSource = errors.New("no migration source given")

const (
	photoAssetDir       = "src/assets/images/people"
	photoPublicDir      = "public/images/people"
	publicationAssetDir = "src/assets/images/publications"
	photoReference      = "../../assets/images/people/profile"
)

var (
	photoFallbacks   = []string{"prof_pic.jpg", "prof_pic.png", "prof_pic.jpeg", "avatar.jpg", "avatar.png"}
	faviconFallbacks = []string{"favicon.ico", "favicon.svg", "favicon.png"}
)

// Migrator converts a legacy site into the destination content tree rooted
// at the writer's directory.
type Migrator struct {
	writer *content.Writer
}

func NewMigrator(writer *content.Writer) *Migrator {
	return &Migrator{writer: writer}
}

// Run migrates source, a local directory or git URL. When source is empty
// the repository recorded in the site config is used.
func (m *Migrator) Run(ctx context.Context, source string) (*Summary, error) {
	if source == "" {
		recorded, err := m.writer.SourceRepository()
		if err != nil {
			slog.Warn("Failed to read recorded source", "error", err)
		}
		source = recorded
	}
	if source == "" {
		return nil, ErrNoSource
	}

	slog.Info("Starting migration", "source", source)

	checkout, err := legacy.Open(ctx, source)
	if err != nil {
		return nil, fmt.Errorf("failed to open source: %w", err)
	}
	defer func() {
		if err := checkout.Close(); err != nil {
			slog.Warn("Failed to clean up checkout", "path", checkout.Dir, "error", err)
		}
	}()

	run := &migration{
		writer:  m.writer,
		reader:  legacy.NewReader(checkout.Dir),
		summary: newSummary(),
	}
	if err := run.execute(); err != nil {
		return nil, err
	}

	for category, n := range run.reader.Warnings() {
		run.summary.Skipped[category] += n
	}
	return run.summary, nil
}

// migration holds the state of a single Run.
type migration struct {
	writer  *content.Writer
	reader  *legacy.Reader
	summary *Summary
}

func (r *migration) execute() error {
	cfg := r.reader.Config()
	fullName := mapper.FullName(cfg)
	personSlug := legacy.Slugify(fullName)
	r.summary.Person = fullName
	r.summary.PersonSlug = personSlug
	slog.Info("Read legacy config", "name", fullName, "slug", personSlug)

	about := r.reader.About()
	entries := bibtex.Parse(r.reader.Bibliography())
	news := r.reader.News()
	projects := r.reader.Projects()
	posts := r.reader.Posts()
	repos := r.reader.Repositories()
	resume := r.reader.Resume()
	nav := r.reader.NavPages()

	slog.Info("Parsed legacy content",
		"publications", len(entries),
		"news", len(news),
		"projects", len(projects),
		"posts", len(posts),
		"repositories", len(repos.Repos),
		"resume", resume != nil,
		"nav_pages", len(nav))

	removed, err := r.writer.CleanCollections()
	if err != nil {
		return fmt.Errorf("failed to clean existing content: %w", err)
	}
	r.summary.Removed = removed

	r.writePublications(entries)
	photoExt := r.copyProfilePhoto(profileImage(about, cfg))
	r.copySiteFiles()

	configs := []struct {
		name   string
		record mapper.Record
		header []string
	}{
		{"site", mapper.Site(mapper.SiteInput{
			Config:       cfg,
			About:        about,
			Repositories: repos,
			Nav:          nav,
			PhotoExt:     photoExt,
			PersonSlug:   personSlug,
		}), []string{"Site Configuration", "Migrated from al-folio"}},
		{"scholar", mapper.Scholar(cfg, fullName), nil},
		{"feeds", mapper.FeedSources(cfg, personSlug), nil},
		{"cv", mapper.CV(resume, cfg, fullName), []string{"CV Configuration", "Migrated from al-folio resume.json"}},
		{"research", mapper.ResearchAreas(cfg), nil},
	}
	for _, c := range configs {
		if err := r.writer.WriteConfig(c.name, c.record, c.header...); err != nil {
			return err
		}
	}

	photo := ""
	if photoExt != "" {
		photo = photoReference + photoExt
	}
	if err := r.writer.WriteDocument("people", mapper.Person(cfg, about, photo)); err != nil {
		return err
	}

	slugs := mapper.SlugSet{}
	for _, item := range news {
		doc := mapper.Announcement(item)
		doc.Slug = slugs.Claim(doc.Slug)
		r.write("announcements", doc, &r.summary.Announcements)
	}

	slugs = mapper.SlugSet{}
	for _, item := range projects {
		doc := mapper.Project(item, personSlug)
		doc.Slug = slugs.Claim(doc.Slug)
		r.write("projects", doc, &r.summary.Projects)
	}

	slugs = mapper.SlugSet{}
	for _, item := range posts {
		doc := mapper.Post(item, personSlug)
		doc.Slug = slugs.Claim(doc.Slug)
		r.write("posts", doc, &r.summary.Posts)
	}

	return nil
}

func (r *migration) write(collection string, doc mapper.Document, counter *int) {
	if err := r.writer.WriteDocument(collection, doc); err != nil {
		r.summary.Skipped[collection]++
		slog.Warn("Skipping document", "collection", collection, "slug", doc.Slug, "error", err)
		return
	}
	*counter++
}

func (r *migration) writePublications(entries []bibtex.Entry) {
	slugs := mapper.SlugSet{}
	for _, entry := range entries {
		doc := mapper.Publication(entry, r.reader)
		doc.Slug = slugs.Claim(doc.Slug)
		r.write("publications", doc, &r.summary.Publications)

		preview := entry.Field("preview")
		src, ok := r.reader.PreviewPath(preview)
		if !ok {
			continue
		}
		if err := r.writer.CopyFile(src, publicationAssetDir+"/"+preview); err != nil {
			r.summary.Skipped["images"]++
			slog.Warn("Failed to copy preview image", "key", entry.Key, "error", err)
			continue
		}
		r.summary.PublicationImages++
	}
}

// copyProfilePhoto copies the profile picture and returns its extension, or
// "" when none was found.
func (r *migration) copyProfilePhoto(name string) string {
	candidates := make([]string, 0, len(photoFallbacks)+1)
	if name != "" && filepath.Base(name) == name {
		candidates = append(candidates, "assets/img/"+name)
	}
	for _, fallback := range photoFallbacks {
		candidates = append(candidates, "assets/img/"+fallback)
	}

	src, ok := r.reader.Find(candidates...)
	if !ok {
		return ""
	}

	ext := filepath.Ext(src)
	for _, dir := range []string{photoAssetDir, photoPublicDir} {
		if err := r.writer.CopyFile(src, dir+"/profile"+ext); err != nil {
			r.summary.Skipped["images"]++
			slog.Warn("Failed to copy profile photo", "error", err)
			return ""
		}
	}

	r.summary.ProfilePhoto = true
	slog.Info("Copied profile photo", "file", filepath.Base(src))
	return ext
}

// copySiteFiles carries over the favicon and CNAME.
func (r *migration) copySiteFiles() {
	favicons := make([]string, 0, len(faviconFallbacks))
	for _, name := range faviconFallbacks {
		favicons = append(favicons, "assets/img/"+name)
	}

	for _, candidates := range [][]string{favicons, {"CNAME"}} {
		src, ok := r.reader.Find(candidates...)
		if !ok {
			continue
		}
		if err := r.writer.CopyFile(src, "public/"+filepath.Base(src)); err != nil {
			r.summary.Skipped["site files"]++
			slog.Warn("Failed to copy site file", "file", filepath.Base(src), "error", err)
		}
	}
}

func profileImage(about legacy.Page, cfg legacy.Config) string {
	if profile, ok := about.Data["profile"].(map[string]any); ok {
		if image := legacy.ScalarString(profile["image"]); image != "" {
			return image
		}
	}
	return cfg.String("profile_image")
}

package migrate

import (
	"log/slog"
	"sort"
)

// Summary reports what a migration wrote and what it had to skip.
type Summary struct {
	Person            string
	PersonSlug        string
	Publications      int
	Announcements     int
	Projects          int
	Posts             int
	PublicationImages int
	ProfilePhoto      bool
	Removed           int
	// Skipped counts recoverable problems per category.
	Skipped map[string]int
}

func newSummary() *Summary {
	return &Summary{Skipped: make(map[string]int)}
}

// SkippedTotal returns the number of skipped items across categories.
func (s *Summary) SkippedTotal() int {
	total := 0
	for _, n := range s.Skipped {
		total += n
	}
	return total
}

func (s *Summary) Log() {
	slog.Info("Migration complete",
		"person", s.Person,
		"slug", s.PersonSlug,
		"publications", s.Publications,
		"announcements", s.Announcements,
		"projects", s.Projects,
		"posts", s.Posts,
		"publication_images", s.PublicationImages,
		"profile_photo", s.ProfilePhoto,
		"removed", s.Removed,
		"skipped", s.SkippedTotal())

	categories := make([]string, 0, len(s.Skipped))
	for category := range s.Skipped {
		categories = append(categories, category)
	}
	sort.Strings(categories)
	for _, category := range categories {
		slog.Warn("Skipped items", "category", category, "count", s.Skipped[category])
	}
}

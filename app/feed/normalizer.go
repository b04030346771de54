package feed

import (
	"cmp"
	"crypto/sha256"
	"encoding/hex"
	"slices"
	"strings"
	"time"

	"github.com/lysyi3m/scholar-sync/app/legacy"
	"github.com/lysyi3m/scholar-sync/app/markup"
)

const (
	idHashLength = 8
	excerptLimit = 300
	dateLayout   = "2006-01-02"
)

// NormalizeLink strips trailing slashes, giving the key items are matched on.
func NormalizeLink(link string) string {
	return strings.TrimRight(strings.TrimSpace(link), "/")
}

// ItemID derives the stable id of the item at link from its source.
func ItemID(source, link string) string {
	hash := sha256.Sum256([]byte(NormalizeLink(link)))
	return "feed-" + legacy.Slugify(source) + "-" + hex.EncodeToString(hash[:])[:idHashLength]
}

// Normalize caps the entries of one source and turns those with both a
// title and a link into cache items. Entries without a usable date are
// stamped with now.
func Normalize(source Source, maxItems int, entries []Entry, now time.Time) []Item {
	if maxItems > 0 && len(entries) > maxItems {
		entries = entries[:maxItems]
	}

	items := make([]Item, 0, len(entries))
	for _, entry := range entries {
		title := strings.TrimSpace(entry.Title)
		link := NormalizeLink(entry.Link)
		if title == "" || link == "" {
			continue
		}

		item := Item{
			ID:      ItemID(source.Name, link),
			Title:   title,
			Link:    link,
			Date:    formatDate(entry.Date, now),
			Source:  source.Name,
			Excerpt: truncateExcerpt(cmp.Or(entry.Content, entry.Summary)),
			Author:  source.Author,
		}
		if len(source.Tags) > 0 {
			item.Tags = slices.Clone(source.Tags)
		}
		items = append(items, item)
	}

	return items
}

func truncateExcerpt(text string) string {
	return markup.Truncate(markup.Strip(text), excerptLimit)
}

func formatDate(value string, now time.Time) string {
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t.UTC().Format(dateLayout)
	}
	return now.UTC().Format(dateLayout)
}

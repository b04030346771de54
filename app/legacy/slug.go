package legacy

import (
	"path/filepath"
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Kind selects the filename prefix convention of a legacy collection.
type Kind int

const (
	KindNews Kind = iota
	KindPost
	KindProject
	KindPage
)

var (
	nonAlphanumeric = regexp.MustCompile(`[^a-z0-9]+`)
	datePrefix      = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}-?`)
	numericPrefix   = regexp.MustCompile(`^\d+_?`)
)

// Slugify lower-cases s, folds accented letters to their base form and
// replaces every run of other characters with a single hyphen.
func Slugify(s string) string {
	s = strings.ToLower(s)

	folder := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	if folded, _, err := transform.String(folder, s); err == nil {
		s = folded
	}

	return strings.Trim(nonAlphanumeric.ReplaceAllString(s, "-"), "-")
}

// SlugFromFilename derives a slug from a legacy file name. The extension is
// dropped, then the collection's prefix: a publication date for news and
// posts, an ordering number for projects.
func SlugFromFilename(name string, kind Kind) string {
	base := filepath.Base(name)
	base = strings.TrimSuffix(base, filepath.Ext(base))

	switch kind {
	case KindNews, KindPost:
		base = datePrefix.ReplaceAllString(base, "")
	case KindProject:
		base = numericPrefix.ReplaceAllString(base, "")
	}

	return Slugify(base)
}

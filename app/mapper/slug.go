package mapper

import (
	"strconv"
	"strings"

	"github.com/lysyi3m/scholar-sync/app/legacy"
)

const defaultFullName = "Academic"

// FullName joins the configured first and last names.
func FullName(cfg legacy.Config) string {
	parts := make([]string, 0, 2)
	for _, key := range []string{"first_name", "last_name"} {
		if s := cfg.String(key); s != "" {
			parts = append(parts, s)
		}
	}
	if len(parts) == 0 {
		return defaultFullName
	}
	return strings.Join(parts, " ")
}

// SlugSet hands out unique slugs within one collection.
type SlugSet map[string]int

// Claim returns slug, or slug with a numeric suffix when it was already
// claimed.
func (s SlugSet) Claim(slug string) string {
	s[slug]++
	if n := s[slug]; n > 1 {
		candidate := slug + "-" + strconv.Itoa(n)
		for s[candidate] > 0 {
			n++
			candidate = slug + "-" + strconv.Itoa(n)
		}
		s[candidate]++
		return candidate
	}
	return slug
}

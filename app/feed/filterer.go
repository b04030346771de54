package feed

import (
	"fmt"
	"strings"
)

var filterFields = map[string]bool{
	"title":   true,
	"excerpt": true,
	"link":    true,
	"tags":    true,
	"author":  true,
}

type Filterer struct{}

func NewFilterer() *Filterer {
	return &Filterer{}
}

// Run returns the items that pass the source's filters along with the reason
// each dropped item was rejected.
func (f *Filterer) Run(items []Item, source Source) ([]Item, []string) {
	if len(source.Filters) == 0 {
		return items, nil
	}

	kept := make([]Item, 0, len(items))
	var reasons []string
	for _, item := range items {
		if filtered, reason := f.applyFilters(item, source.Filters); filtered {
			reasons = append(reasons, reason)
			continue
		}
		kept = append(kept, item)
	}

	return kept, reasons
}

func (f *Filterer) applyFilters(item Item, filters []Filter) (bool, string) {
	for _, filter := range filters {
		value := f.getFieldValue(item, filter.Field)

		for _, exclude := range filter.Excludes {
			if f.matchesFilter(value, exclude) {
				return true, fmt.Sprintf("Excluded by %s filter: contains '%s'", filter.Field, exclude)
			}
		}

		if len(filter.Includes) > 0 {
			matched := false
			for _, include := range filter.Includes {
				if f.matchesFilter(value, include) {
					matched = true
					break
				}
			}
			if !matched {
				return true, fmt.Sprintf("Excluded by %s filter: does not contain any of %v", filter.Field, filter.Includes)
			}
		}
	}

	return false, ""
}

func (f *Filterer) matchesFilter(value, pattern string) bool {
	return strings.Contains(strings.ToLower(value), strings.ToLower(pattern))
}

func (f *Filterer) getFieldValue(item Item, field string) string {
	switch field {
	case "title":
		return item.Title
	case "excerpt":
		return item.Excerpt
	case "link":
		return item.Link
	case "tags":
		return strings.Join(item.Tags, " ")
	case "author":
		return item.Author
	default:
		return ""
	}
}

package feed

import (
	"maps"
	"slices"
	"sort"
)

// Dedupe keeps the first item for each normalized link.
func Dedupe(items []Item) []Item {
	seen := make(map[string]bool, len(items))
	unique := make([]Item, 0, len(items))
	for _, item := range items {
		key := NormalizeLink(item.Link)
		if seen[key] {
			continue
		}
		seen[key] = true
		unique = append(unique, item)
	}
	return unique
}

// Merge folds freshly fetched items into the cached ones. A fresh item that
// matches a cached link is overlaid onto it with Overlay. Cached items with
// no fresh counterpart are kept unchanged after the fresh ones. Items without
// a link are matched on ID instead.
func Merge(fresh, cached []Item) []Item {
	byLink := make(map[string]Item, len(cached))
	for _, item := range cached {
		key := mergeKey(item)
		if _, ok := byLink[key]; !ok {
			byLink[key] = item
		}
	}

	merged := make([]Item, 0, len(fresh)+len(cached))
	taken := make(map[string]bool, len(fresh)+len(cached))

	for _, item := range fresh {
		key := mergeKey(item)
		if taken[key] {
			continue
		}
		taken[key] = true
		if existing, ok := byLink[key]; ok {
			item = Overlay(existing, item)
		}
		merged = append(merged, item)
	}

	for _, item := range cached {
		key := mergeKey(item)
		if taken[key] {
			continue
		}
		taken[key] = true
		merged = append(merged, item)
	}

	return merged
}

func mergeKey(item Item) string {
	if key := NormalizeLink(item.Link); key != "" {
		return key
	}
	return "id:" + item.ID
}

// Overlay returns existing with every field set on fresh written over it.
// Fields fresh leaves empty keep their cached value, as do unknown keys.
func Overlay(existing, fresh Item) Item {
	out := existing
	overlay(&out.ID, fresh.ID)
	overlay(&out.Title, fresh.Title)
	overlay(&out.Link, fresh.Link)
	overlay(&out.Date, fresh.Date)
	overlay(&out.Source, fresh.Source)
	overlay(&out.Excerpt, fresh.Excerpt)
	overlay(&out.Author, fresh.Author)
	if len(fresh.Tags) > 0 {
		out.Tags = slices.Clone(fresh.Tags)
	}
	if len(fresh.Extra) > 0 {
		out.Extra = maps.Clone(existing.Extra)
		if out.Extra == nil {
			out.Extra = maps.Clone(fresh.Extra)
		} else {
			maps.Copy(out.Extra, fresh.Extra)
		}
	}
	return out
}

func overlay(dst *string, value string) {
	if value != "" {
		*dst = value
	}
}

// SortByDateDesc orders items newest first. Items sharing a date keep their
// relative order.
func SortByDateDesc(items []Item) {
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].Date > items[j].Date
	})
}

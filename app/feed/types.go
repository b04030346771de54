package feed

import (
	"encoding/json"
	"fmt"
)

// Configuration types

type Config struct {
	MediumURL       string   `yaml:"mediumUrl"`
	Feeds           []Source `yaml:"feeds"`
	SyncInterval    string   `yaml:"syncInterval"`
	MaxItemsPerFeed int      `yaml:"maxItemsPerFeed"`
}

type Source struct {
	Name    string   `yaml:"name"`
	URL     string   `yaml:"url"`
	Author  string   `yaml:"author"`
	Tags    []string `yaml:"tags"`
	Timeout int      `yaml:"timeout"` // seconds
	// ExtractExcerpt fetches the linked page for items without an excerpt.
	ExtractExcerpt bool     `yaml:"extract_excerpt"`
	Filters        []Filter `yaml:"filters"`
}

type Filter struct {
	Field    string   `yaml:"field"`
	Includes []string `yaml:"includes"`
	Excludes []string `yaml:"excludes"`
}

// Feed processing types

// Entry is a parsed feed item before normalization.
type Entry struct {
	Title   string
	Link    string
	Date    string // RFC 3339, empty when the feed gave none
	Content string
	Summary string
}

// Item is one record of the feed cache.
type Item struct {
	ID      string
	Title   string
	Link    string
	Date    string // YYYY-MM-DD
	Source  string
	Excerpt string
	Author  string
	Tags    []string

	// Extra holds cached keys this version does not know about.
	Extra map[string]json.RawMessage
}

var knownKeys = map[string]bool{
	"id": true, "title": true, "link": true, "date": true,
	"source": true, "excerpt": true, "author": true, "tags": true,
}

type itemJSON struct {
	ID      string   `json:"id"`
	Title   string   `json:"title"`
	Link    string   `json:"link"`
	Date    string   `json:"date"`
	Source  string   `json:"source"`
	Excerpt string   `json:"excerpt,omitempty"`
	Author  string   `json:"author,omitempty"`
	Tags    []string `json:"tags,omitempty"`
}

func (i Item) MarshalJSON() ([]byte, error) {
	known, err := json.Marshal(itemJSON{
		ID:      i.ID,
		Title:   i.Title,
		Link:    i.Link,
		Date:    i.Date,
		Source:  i.Source,
		Excerpt: i.Excerpt,
		Author:  i.Author,
		Tags:    i.Tags,
	})
	if err != nil || len(i.Extra) == 0 {
		return known, err
	}

	fields := make(map[string]json.RawMessage, len(knownKeys)+len(i.Extra))
	if err := json.Unmarshal(known, &fields); err != nil {
		return nil, err
	}
	for k, v := range i.Extra {
		if !knownKeys[k] {
			fields[k] = v
		}
	}
	// encoding/json sorts map keys, so the output stays deterministic.
	return json.Marshal(fields)
}

func (i *Item) UnmarshalJSON(data []byte) error {
	var known itemJSON
	if err := json.Unmarshal(data, &known); err != nil {
		return fmt.Errorf("failed to decode feed item: %w", err)
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return fmt.Errorf("failed to decode feed item: %w", err)
	}

	*i = Item{
		ID:      known.ID,
		Title:   known.Title,
		Link:    known.Link,
		Date:    known.Date,
		Source:  known.Source,
		Excerpt: known.Excerpt,
		Author:  known.Author,
		Tags:    known.Tags,
	}
	for k, v := range fields {
		if knownKeys[k] {
			continue
		}
		if i.Extra == nil {
			i.Extra = make(map[string]json.RawMessage)
		}
		i.Extra[k] = v
	}
	return nil
}

// Result summarizes one synchronization run.
type Result struct {
	Fetched   int
	Failed    int
	Total     int
	NetChange int
}

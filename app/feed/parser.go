package feed

import (
	"bytes"
	"cmp"
	"fmt"
	"time"

	"github.com/mmcdole/gofeed"
)

type Parser struct {
	gofeedParser *gofeed.Parser
}

func NewParser() *Parser {
	return &Parser{
		gofeedParser: gofeed.NewParser(),
	}
}

// Run parses an RSS, Atom or JSON feed document into entries, in feed order.
func (p *Parser) Run(data []byte) ([]Entry, error) {
	feed, err := p.gofeedParser.Parse(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to parse feed: %w", err)
	}

	entries := make([]Entry, 0, len(feed.Items))
	for _, item := range feed.Items {
		if item == nil {
			continue
		}
		entries = append(entries, p.normalizeItem(item))
	}

	return entries, nil
}

func (p *Parser) normalizeItem(item *gofeed.Item) Entry {
	entry := Entry{
		Title:   item.Title,
		Link:    cmp.Or(item.Link, firstLink(item.Links)),
		Content: item.Content,
		Summary: item.Description,
	}

	switch {
	case item.PublishedParsed != nil:
		entry.Date = item.PublishedParsed.Format(time.RFC3339)
	case item.UpdatedParsed != nil:
		entry.Date = item.UpdatedParsed.Format(time.RFC3339)
	}

	return entry
}

func firstLink(links []string) string {
	if len(links) > 0 {
		return links[0]
	}
	return ""
}

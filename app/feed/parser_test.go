package feed

import (
	"testing"
	"time"
)

const rssFixture = `<?xml version="1.0"?>
<rss version="2.0" xmlns:content="http://purl.org/rss/1.0/modules/content/">
  <channel>
    <title>Test Feed</title>
    <link>https://example.com</link>
    <description>Test Description</description>
    <item>
      <title>Test Item 1</title>
      <link>https://example.com/item1/</link>
      <description>Test Item 1 Description</description>
      <content:encoded><![CDATA[<p>Full <b>content</b> &amp; more</p>]]></content:encoded>
      <pubDate>Mon, 03 Jul 2023 10:00:00 GMT</pubDate>
    </item>
    <item>
      <title>Test Item 2</title>
      <link>https://example.com/item2</link>
      <description>Test Item 2 Description</description>
    </item>
  </channel>
</rss>`

const atomFixture = `<?xml version="1.0" encoding="utf-8"?>
<feed xmlns="http://www.w3.org/2005/Atom">
  <title>Atom Feed</title>
  <id>urn:uuid:feed</id>
  <updated>2024-02-01T00:00:00Z</updated>
  <entry>
    <title>Atom Entry</title>
    <link href="https://example.org/atom-entry"/>
    <id>urn:uuid:entry</id>
    <updated>2024-02-01T08:30:00Z</updated>
    <summary>An atom summary</summary>
  </entry>
</feed>`

func TestParseRSS2(t *testing.T) {
	entries, err := NewParser().Run([]byte(rssFixture))
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	if len(entries) != 2 {
		t.Fatalf("Expected 2 entries, got: %d", len(entries))
	}

	first := entries[0]
	if first.Title != "Test Item 1" {
		t.Errorf("Expected title 'Test Item 1', got: %s", first.Title)
	}
	if first.Link != "https://example.com/item1/" {
		t.Errorf("Expected raw link, got: %s", first.Link)
	}
	if first.Summary != "Test Item 1 Description" {
		t.Errorf("Expected summary from description, got: %s", first.Summary)
	}
	if first.Content == "" {
		t.Error("Expected content:encoded to be parsed")
	}
	if first.Date != "2023-07-03T10:00:00Z" {
		t.Errorf("Expected RFC 3339 date, got: %s", first.Date)
	}

	if entries[1].Date != "" {
		t.Errorf("Expected empty date, got: %s", entries[1].Date)
	}
}

func TestParseAtom(t *testing.T) {
	entries, err := NewParser().Run([]byte(atomFixture))
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	if len(entries) != 1 {
		t.Fatalf("Expected 1 entry, got: %d", len(entries))
	}
	if entries[0].Link != "https://example.org/atom-entry" {
		t.Errorf("Expected atom link, got: %s", entries[0].Link)
	}
	if entries[0].Summary != "An atom summary" {
		t.Errorf("Expected atom summary, got: %s", entries[0].Summary)
	}
	if entries[0].Date != "2024-02-01T08:30:00Z" {
		t.Errorf("Expected updated date fallback, got: %s", entries[0].Date)
	}
}

func TestParseInvalid(t *testing.T) {
	if _, err := NewParser().Run([]byte("not a feed")); err == nil {
		t.Error("Expected error for invalid feed data")
	}
}

func TestNormalize(t *testing.T) {
	now := time.Date(2025, 3, 9, 12, 0, 0, 0, time.UTC)
	source := Source{Name: "My Blog", Author: "jane-doe", Tags: []string{"blog"}}
	entries := []Entry{
		{Title: "  First  ", Link: "https://example.com/a//", Date: "2024-05-01T23:30:00-02:00", Content: "<p>Hello &amp; <i>welcome</i></p>"},
		{Title: "No link"},
		{Link: "https://example.com/untitled"},
		{Title: "Undated", Link: "https://example.com/b", Summary: "Summary only"},
		{Title: "Capped", Link: "https://example.com/c"},
	}

	items := Normalize(source, 4, entries, now)
	if len(items) != 2 {
		t.Fatalf("Expected 2 items, got %d", len(items))
	}

	first := items[0]
	if first.Title != "First" {
		t.Errorf("Expected trimmed title, got '%s'", first.Title)
	}
	if first.Link != "https://example.com/a" {
		t.Errorf("Expected normalized link, got '%s'", first.Link)
	}
	if first.Date != "2024-05-02" {
		t.Errorf("Expected UTC date '2024-05-02', got '%s'", first.Date)
	}
	if first.Excerpt != "Hello & welcome" {
		t.Errorf("Expected stripped excerpt, got '%s'", first.Excerpt)
	}
	if first.Author != "jane-doe" || len(first.Tags) != 1 || first.Tags[0] != "blog" {
		t.Errorf("Expected author and tags from source, got %+v", first)
	}
	if first.ID != ItemID("My Blog", "https://example.com/a") {
		t.Errorf("Expected stable id, got '%s'", first.ID)
	}

	if items[1].Date != "2025-03-09" {
		t.Errorf("Expected today's date for undated item, got '%s'", items[1].Date)
	}
	if items[1].Excerpt != "Summary only" {
		t.Errorf("Expected summary excerpt, got '%s'", items[1].Excerpt)
	}
}

func TestNormalizeTruncatesExcerpt(t *testing.T) {
	long := ""
	for len(long) < 400 {
		long += "word "
	}

	items := Normalize(Source{Name: "S"}, 0, []Entry{{Title: "T", Link: "https://e.com", Content: long}}, time.Now())
	if len(items) != 1 {
		t.Fatalf("Expected 1 item, got %d", len(items))
	}
	excerpt := items[0].Excerpt
	if len(excerpt) > 303 || excerpt[len(excerpt)-3:] != "..." {
		t.Errorf("Expected truncated excerpt ending in '...', got %d chars", len(excerpt))
	}
}

func TestItemID(t *testing.T) {
	id := ItemID("Medium", "https://medium.com/@jane/post/")
	if id != ItemID("Medium", "https://medium.com/@jane/post") {
		t.Error("Expected trailing slash to be ignored")
	}
	if len(id) != len("feed-medium-")+8 || id[:12] != "feed-medium-" {
		t.Errorf("Expected 'feed-medium-<8 hex>', got '%s'", id)
	}
	if id == ItemID("Other", "https://medium.com/@jane/post") {
		t.Error("Expected source to change the id")
	}
}

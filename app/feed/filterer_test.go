package feed

import (
	"testing"
)

func TestFilterer_NoFilters(t *testing.T) {
	items := []Item{{Title: "One"}, {Title: "Two"}}

	kept, reasons := NewFilterer().Run(items, Source{})

	if len(kept) != 2 {
		t.Errorf("Expected 2 items, got %d", len(kept))
	}
	if len(reasons) != 0 {
		t.Errorf("Expected no reasons, got %v", reasons)
	}
}

func TestFilterer_TitleInclude(t *testing.T) {
	items := []Item{
		{Title: "Breaking News: Important Update"},
		{Title: "Sports Update"},
		{Title: "Weather Report"},
	}
	source := Source{Filters: []Filter{{Field: "title", Includes: []string{"news", "update"}}}}

	kept, reasons := NewFilterer().Run(items, source)

	if len(kept) != 2 {
		t.Fatalf("Expected 2 items, got %d", len(kept))
	}
	if kept[1].Title != "Sports Update" {
		t.Errorf("Expected 'Sports Update', got '%s'", kept[1].Title)
	}
	if len(reasons) != 1 {
		t.Errorf("Expected 1 reason, got %v", reasons)
	}
}

func TestFilterer_ExcludeWins(t *testing.T) {
	items := []Item{
		{Title: "Research update", Tags: []string{"medium", "sponsored"}},
		{Title: "Research notes", Tags: []string{"medium"}},
	}
	source := Source{Filters: []Filter{
		{Field: "title", Includes: []string{"research"}},
		{Field: "tags", Excludes: []string{"SPONSORED"}},
	}}

	kept, reasons := NewFilterer().Run(items, source)

	if len(kept) != 1 || kept[0].Title != "Research notes" {
		t.Errorf("Expected only 'Research notes', got %+v", kept)
	}
	if len(reasons) != 1 || reasons[0] != "Excluded by tags filter: contains 'SPONSORED'" {
		t.Errorf("Expected exclusion reason, got %v", reasons)
	}
}

func TestFilterer_Fields(t *testing.T) {
	item := Item{Title: "t", Excerpt: "e", Link: "l", Author: "a", Tags: []string{"x", "y"}}
	f := NewFilterer()

	expected := map[string]string{"title": "t", "excerpt": "e", "link": "l", "author": "a", "tags": "x y", "bogus": ""}
	for field, want := range expected {
		if got := f.getFieldValue(item, field); got != want {
			t.Errorf("Expected %s '%s', got '%s'", field, want, got)
		}
	}
}

package mapper

import (
	"github.com/lysyi3m/scholar-sync/app/legacy"
	"github.com/lysyi3m/scholar-sync/app/markup"
)

const (
	defaultPostDate    = "2024-01-01"
	documentExcerptMax = 200
)

var announcementRules = []Rule{
	{From: []string{"title"}, To: "title"},
	{From: []string{"date"}, To: "date", Transform: func(v any) (any, bool) {
		return Date(legacy.ScalarString(v)), true
	}},
	{From: []string{"category"}, To: "category"},
	{To: "pinned", Transform: Const(false)},
	{To: "featured", Transform: Const(false)},
	{From: []string{"excerpt"}, To: "excerpt"},
}

// Announcement maps a classified news item.
func Announcement(news legacy.NewsItem) Document {
	source := map[string]any{
		"title":    news.Title,
		"date":     news.Date,
		"category": string(news.Category),
		"excerpt":  news.Excerpt,
	}
	return Document{
		Slug:  news.Slug,
		Front: Apply(announcementRules, source),
		Body:  news.Body,
	}
}

var projectRules = []Rule{
	{From: []string{"title", "@slug"}, To: "title", Transform: Text},
	{To: "type", Transform: Const("other")},
	{To: "status", Transform: Const("completed")},
	{From: []string{"url", "website"}, To: "url", Transform: Text},
	{From: []string{"github", "repo_url"}, To: "repoUrl", Transform: Text},
	{From: []string{"@team"}, To: "team"},
	{From: []string{"description", "@paragraph"}, To: "excerpt", Transform: Text},
}

// Project maps a legacy project page. The person is listed as the only team
// member.
func Project(doc legacy.Document, personSlug string) Document {
	body := markup.StripTemplateTags(doc.Body)
	source := derived(doc, body, map[string]any{
		"@team": []string{personSlug},
	})

	return Document{
		Slug:  doc.Slug,
		Front: Apply(projectRules, source),
		Body:  body,
	}
}

var postRules = []Rule{
	{From: []string{"title", "@slug"}, To: "title", Transform: Text},
	{From: []string{"date"}, To: "date", Transform: func(v any) (any, bool) {
		if date, ok := legacy.ParseDate(v); ok {
			return Date(date), true
		}
		return Date(defaultPostDate), true
	}},
	{From: []string{"@author"}, To: "author", Transform: Text},
	{From: []string{"description", "@paragraph"}, To: "excerpt", Transform: Text},
	{From: []string{"tags"}, To: "tags", Transform: List},
	{To: "draft", Transform: Const(false)},
}

// Post maps a legacy blog post authored by the person.
func Post(doc legacy.Document, personSlug string) Document {
	body := markup.StripTemplateTags(doc.Body)
	source := derived(doc, body, map[string]any{
		"@author": personSlug,
	})

	return Document{
		Slug:  doc.Slug,
		Front: Apply(postRules, source),
		Body:  body,
	}
}

// derived copies the legacy frontmatter and adds the computed "@" keys the
// rules fall back to.
func derived(doc legacy.Document, body string, extra map[string]any) map[string]any {
	source := make(map[string]any, len(doc.Data)+len(extra)+2)
	for k, v := range doc.Data {
		source[k] = v
	}
	source["@slug"] = doc.Slug
	source["@paragraph"] = markup.Clip(markup.FirstParagraph(body), documentExcerptMax)
	for k, v := range extra {
		source[k] = v
	}
	return source
}

package mapper

import (
	"github.com/lysyi3m/scholar-sync/app/legacy"
	"github.com/lysyi3m/scholar-sync/app/markup"
)

// Document is a destination content file: frontmatter plus body.
type Document struct {
	Slug  string
	Front Record
	Body  string
}

var personRules = []Rule{
	{From: []string{"name"}, To: "name"},
	{To: "role", Transform: Const("pi")},
	{From: []string{"subtitle"}, To: "title", Transform: func(v any) (any, bool) {
		if s := markup.Strip(legacy.ScalarString(v)); s != "" {
			return s, true
		}
		return "Researcher", true
	}},
	{From: []string{"photo"}, To: "photo"},
	{From: []string{"email"}, To: "email"},
	{From: []string{"socials"}, To: "socials"},
	{To: "sortOrder", Transform: Const(1)},
	{To: "active", Transform: Const(true)},
}

// Person builds the site owner's profile from the legacy config and about
// page. photo is the destination reference of the copied profile picture.
func Person(cfg legacy.Config, about legacy.Page, photo string) Document {
	name := FullName(cfg)
	source := map[string]any{
		"name":     name,
		"subtitle": about.Data["subtitle"],
		"photo":    photo,
		"email":    cfg.String("email"),
		"socials":  Socials(cfg),
	}

	return Document{
		Slug:  legacy.Slugify(name),
		Front: Apply(personRules, source),
		Body:  markup.StripTags(markup.StripTemplateTags(about.Body)),
	}
}

package mapper

import (
	"cmp"
	"strings"

	"github.com/lysyi3m/scholar-sync/app/legacy"
)

const presentMarker = "present"

// CV builds the cv.yml record from the resume. A missing resume yields empty
// sections with contact details taken from the config.
func CV(resume *legacy.Resume, cfg legacy.Config, fullName string) Record {
	if resume == nil {
		resume = &legacy.Resume{}
	}
	basics := resume.Basics

	return Record{
		{Key: "cv", Value: Record{
			{Key: "name", Value: cmp.Or(basics.Name, fullName)},
			{Key: "location", Value: location(basics.Location)},
			{Key: "email", Value: cmp.Or(basics.Email, cfg.String("email"))},
			{Key: "phone", Value: basics.Phone},
			{Key: "website", Value: cmp.Or(basics.URL, cfg.String("url"))},
			{Key: "socialNetworks", Value: socialNetworks(basics.Profiles, cfg)},
			{Key: "sections", Value: Record{
				{Key: "education", Value: education(resume.Education)},
				{Key: "experience", Value: experience(resume.Work)},
				{Key: "publications", Value: cvPublications(resume.Publications, fullName)},
				{Key: "awards", Value: awards(resume.Awards)},
				{Key: "skills", Value: skills(resume.Skills)},
			}},
		}},
		{Key: "design", Value: Record{{Key: "theme", Value: "classic"}}},
	}
}

// MonthDate truncates an ISO date to year-month.
func MonthDate(date string) string {
	if len(date) > 7 {
		return date[:7]
	}
	return date
}

// EndDate is MonthDate with an empty date meaning the entry is ongoing.
func EndDate(date string) string {
	if strings.TrimSpace(date) == "" {
		return presentMarker
	}
	return MonthDate(date)
}

func location(loc *legacy.ResumeLocation) string {
	if loc == nil {
		return ""
	}
	parts := make([]string, 0, 3)
	for _, p := range []string{loc.City, loc.Region, loc.CountryCode} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, ", ")
}

func socialNetworks(profiles []legacy.ResumeProfile, cfg legacy.Config) []Record {
	networks := make([]Record, 0, len(profiles))
	for _, p := range profiles {
		username := cmp.Or(p.Username, p.URL)
		if p.Network == "" || username == "" {
			continue
		}
		networks = append(networks, Record{
			{Key: "network", Value: p.Network},
			{Key: "username", Value: username},
		})
	}
	if len(networks) > 0 {
		return networks
	}

	fallbacks := []struct{ network, key string }{
		{"GitHub", "github_username"},
		{"LinkedIn", "linkedin_username"},
	}
	for _, f := range fallbacks {
		if username := cfg.String(f.key); username != "" {
			networks = append(networks, Record{
				{Key: "network", Value: f.network},
				{Key: "username", Value: username},
			})
		}
	}
	return networks
}

func education(entries []legacy.ResumeEducation) []Record {
	out := make([]Record, 0, len(entries))
	for _, e := range entries {
		highlights := e.Courses
		if highlights == nil {
			highlights = []string{}
		}
		out = append(out, Record{
			{Key: "institution", Value: e.Institution},
			{Key: "area", Value: cmp.Or(e.Area, e.StudyType)},
			{Key: "degree", Value: e.StudyType},
			{Key: "location", Value: ""},
			{Key: "startDate", Value: MonthDate(e.StartDate)},
			{Key: "endDate", Value: EndDate(e.EndDate)},
			{Key: "highlights", Value: highlights},
		})
	}
	return out
}

func experience(entries []legacy.ResumeWork) []Record {
	out := make([]Record, 0, len(entries))
	for _, w := range entries {
		highlights := w.Highlights
		if w.Summary != "" {
			highlights = []string{w.Summary}
		}
		if highlights == nil {
			highlights = []string{}
		}
		out = append(out, Record{
			{Key: "company", Value: cmp.Or(w.Name, w.Company)},
			{Key: "position", Value: w.Position},
			{Key: "location", Value: w.Location},
			{Key: "startDate", Value: MonthDate(w.StartDate)},
			{Key: "endDate", Value: EndDate(w.EndDate)},
			{Key: "highlights", Value: highlights},
		})
	}
	return out
}

func cvPublications(entries []legacy.ResumePublication, fullName string) []Record {
	out := make([]Record, 0, len(entries))
	for _, p := range entries {
		out = append(out, Record{
			{Key: "title", Value: cmp.Or(p.Name, p.Title)},
			{Key: "authors", Value: []string{cmp.Or(p.Author, fullName)}},
			{Key: "journal", Value: p.Publisher},
			{Key: "date", Value: p.ReleaseDate},
			{Key: "url", Value: cmp.Or(p.URL, p.Website)},
		})
	}
	return out
}

func awards(entries []legacy.ResumeAward) []Record {
	out := make([]Record, 0, len(entries))
	for _, a := range entries {
		label := a.Title
		if a.Awarder != "" {
			label += ", " + a.Awarder
		}
		out = append(out, Record{
			{Key: "label", Value: label},
			{Key: "details", Value: a.Date},
		})
	}
	return out
}

func skills(entries []legacy.ResumeSkill) []Record {
	out := make([]Record, 0, len(entries))
	for _, s := range entries {
		out = append(out, Record{
			{Key: "label", Value: s.Name},
			{Key: "details", Value: strings.Join(s.Keywords, ", ")},
		})
	}
	return out
}

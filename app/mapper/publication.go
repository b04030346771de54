package mapper

import (
	"strconv"
	"strings"

	"github.com/lysyi3m/scholar-sync/app/bibtex"
	"github.com/lysyi3m/scholar-sync/app/legacy"
)

const publicationImageDir = "../../assets/images/publications/"

// AssetLocator finds legacy preview images.
type AssetLocator interface {
	PreviewPath(name string) (string, bool)
}

var braces = strings.NewReplacer("{", "", "}", "")

func publicationRules(assets AssetLocator) []Rule {
	return []Rule{
		{From: []string{"title"}, To: "title", Transform: func(v any) (any, bool) {
			if s := strings.TrimSpace(braces.Replace(legacy.ScalarString(v))); s != "" {
				return s, true
			}
			return "Untitled", true
		}},
		{From: []string{"authors"}, To: "authors", Transform: func(v any) (any, bool) {
			authors, _ := v.([]string)
			if authors == nil {
				authors = []string{}
			}
			return authors, true
		}},
		{From: []string{"journal", "booktitle"}, To: "venue", Transform: TextOr("")},
		{From: []string{"year"}, To: "year", Transform: func(v any) (any, bool) {
			return parseYear(legacy.ScalarString(v)), true
		}},
		{From: []string{"doi"}, To: "doi", Transform: Text},
		{From: []string{"url", "href"}, To: "url", Transform: Text},
		{From: []string{"@type"}, To: "type", Transform: Keep},
		{From: []string{"selected"}, To: "featured", Transform: func(v any) (any, bool) {
			return legacy.ScalarString(v) == "true", true
		}},
		{From: []string{"abstract"}, To: "abstract", Transform: Text},
		{From: []string{"@bibtex"}, To: "bibtex", Transform: Text},
		{From: []string{"preview"}, To: "image", Transform: func(v any) (any, bool) {
			name := legacy.ScalarString(v)
			if name == "" || assets == nil {
				return nil, false
			}
			if _, ok := assets.PreviewPath(name); !ok {
				return nil, false
			}
			return publicationImageDir + name, true
		}},
	}
}

// Publication maps a bibliography entry onto a publication document. The
// image reference is only emitted when the preview file exists.
func Publication(entry bibtex.Entry, assets AssetLocator) Document {
	source := make(map[string]any, len(entry.Fields)+3)
	for k, v := range entry.Fields {
		source[k] = v
	}
	authors := bibtex.Authors(entry.Field("author"))
	source["authors"] = authors
	source["@type"] = bibtex.PublicationType(entry.Type)
	source["@bibtex"] = bibtex.Cleanup(entry.Raw)

	front := Apply(publicationRules(assets), source)

	slug := legacy.Slugify(entry.Key)
	if slug == "" {
		title, _ := front.Get("title")
		year, _ := front.Get("year")
		first := "unknown"
		if len(authors) > 0 {
			first = authors[0]
		}
		word, _, _ := strings.Cut(title.(string), " ")
		slug = legacy.Slugify(first + strconv.Itoa(year.(int)) + word)
	}

	return Document{Slug: slug, Front: front}
}

func parseYear(s string) int {
	end := 0
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	year, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0
	}
	return year
}

package mapper

import (
	"cmp"
	"math"
	"strings"

	"github.com/lysyi3m/scholar-sync/app/legacy"
	"github.com/lysyi3m/scholar-sync/app/markup"
)

const (
	mediumFeedPrefix   = "https://medium.com/feed/@"
	defaultMaxItems    = 20
	researchAreaChunks = 3
)

var socialRules = []Rule{
	{From: []string{"github_username"}, To: "github", Transform: prefixed("https://github.com/")},
	{From: []string{"scholar_userid"}, To: "scholar", Transform: prefixed("https://scholar.google.com/citations?user=")},
	{From: []string{"linkedin_username"}, To: "linkedin", Transform: prefixed("https://www.linkedin.com/in/")},
	{From: []string{"x_username"}, To: "twitter", Transform: prefixed("https://x.com/")},
	{From: []string{"orcid_id"}, To: "orcid", Transform: prefixed("https://orcid.org/")},
	{From: []string{"mastodon_username"}, To: "mastodon", Transform: func(v any) (any, bool) {
		return MastodonURL(legacy.ScalarString(v))
	}},
}

func prefixed(base string) Transform {
	return func(v any) (any, bool) {
		s := legacy.ScalarString(v)
		return base + s, s != ""
	}
}

// Socials returns the profile links configured on the legacy site.
func Socials(cfg legacy.Config) Record {
	source := make(map[string]any, len(socialRules))
	for _, rule := range socialRules {
		for _, key := range rule.From {
			source[key] = cfg.String(key)
		}
	}
	return Apply(socialRules, source)
}

// MastodonURL turns a federated handle ("user@instance" or "@user@instance")
// into a profile URL. URLs are returned untouched.
func MastodonURL(handle string) (string, bool) {
	handle = strings.TrimSpace(handle)
	if strings.HasPrefix(handle, "http") {
		return handle, true
	}

	parts := strings.Split(strings.TrimPrefix(handle, "@"), "@")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", false
	}
	return "https://" + parts[1] + "/@" + parts[0], true
}

var routeTable = map[string]string{
	"/":              "/",
	"/publications/": "/publications",
	"/projects/":     "/projects",
	"/blog/":         "/blog",
	"/news/":         "/news",
	"/cv/":           "/cv",
	"/repositories/": "/repositories",
	"/teaching/":     "/blog",
	"/al-folio/":     "/",
}

var defaultNav = []Record{
	navItem("Publications", "/publications"),
	navItem("Blog", "/blog"),
	navItem("CV", "/cv"),
	navItem("Contact", "/contact"),
}

// Route translates a legacy permalink into a destination route.
func Route(permalink string) string {
	if route, ok := routeTable[permalink]; ok {
		return route
	}
	return strings.TrimSuffix(permalink, "/")
}

// Nav maps the legacy navigation pages. The people page has no destination
// on a personal site and is dropped.
func Nav(pages []legacy.NavPage) []Record {
	if len(pages) == 0 {
		return defaultNav
	}

	nav := make([]Record, 0, len(pages))
	for _, page := range pages {
		href := Route(page.Permalink)
		if href == "/people" {
			continue
		}
		nav = append(nav, navItem(page.Label, href))
	}
	return nav
}

func navItem(label, href string) Record {
	return Record{{Key: "label", Value: label}, {Key: "href", Value: href}}
}

// ResearchAreas groups the comma-separated site keywords into at most three
// areas, each titled by its first keyword.
func ResearchAreas(cfg legacy.Config) Record {
	var keywords []string
	for _, k := range strings.Split(cfg.String("keywords"), ",") {
		if k = strings.TrimSpace(k); k != "" {
			keywords = append(keywords, k)
		}
	}

	areas := make([]Record, 0, researchAreaChunks)
	if len(keywords) > 0 {
		size := int(math.Ceil(float64(len(keywords)) / researchAreaChunks))
		for i := 0; i < len(keywords); i += size {
			chunk := keywords[i:min(i+size, len(keywords))]
			areas = append(areas, Record{
				{Key: "title", Value: chunk[0]},
				{Key: "description", Value: ""},
				{Key: "tags", Value: chunk},
			})
		}
	}

	return Record{
		{Key: "description", Value: cfg.String("description")},
		{Key: "areas", Value: areas},
	}
}

// FeedSources builds feeds.yml from the legacy external sources and Medium
// username.
func FeedSources(cfg legacy.Config, personSlug string) Record {
	feeds := make([]Record, 0)
	mediumURL := ""

	for _, src := range cfg.ExternalSources() {
		if src.RSSURL == "" {
			continue
		}
		name, tag := "External Blog", "blog"
		if isMedium(src.RSSURL) {
			name, tag = "Medium", "medium"
			if mediumURL == "" {
				mediumURL = src.RSSURL
			}
		}
		feeds = append(feeds, feedSource(cmp.Or(src.Name, name), src.RSSURL, personSlug, tag))
	}

	if user := cfg.String("medium_username"); user != "" {
		hasMedium := mediumURL != ""
		mediumURL = mediumFeedPrefix + user
		if !hasMedium {
			feeds = append(feeds, feedSource("Medium", mediumURL, personSlug, "medium"))
		}
	}

	return Record{
		{Key: "mediumUrl", Value: mediumURL},
		{Key: "feeds", Value: feeds},
		{Key: "syncInterval", Value: "daily"},
		{Key: "maxItemsPerFeed", Value: defaultMaxItems},
	}
}

func feedSource(name, url, author, tag string) Record {
	return Record{
		{Key: "name", Value: name},
		{Key: "url", Value: url},
		{Key: "author", Value: author},
		{Key: "tags", Value: []string{tag}},
	}
}

func isMedium(url string) bool {
	return strings.Contains(url, "medium.com")
}

// Scholar builds the publication sync settings.
func Scholar(cfg legacy.Config, fullName string) Record {
	return Record{
		{Key: "authors", Value: []Record{{
			{Key: "name", Value: fullName},
			{Key: "scholar_id", Value: cmp.Or(cfg.String("scholar_userid"), "XXXXXXXXXX")},
		}}},
		{Key: "syncInterval", Value: "weekly"},
		{Key: "maxResults", Value: 100},
	}
}

// SiteInput gathers everything the site config is derived from.
type SiteInput struct {
	Config       legacy.Config
	About        legacy.Page
	Repositories legacy.Repositories
	Nav          []legacy.NavPage
	// PhotoExt is the extension of the copied profile picture, empty when
	// none was found.
	PhotoExt   string
	PersonSlug string
}

// Site builds site.yml.
func Site(in SiteInput) Record {
	cfg := in.Config
	name := FullName(cfg)

	aboutImage := "/images/about.jpg"
	if in.PhotoExt != "" {
		aboutImage = "/images/people/profile" + in.PhotoExt
	}

	aboutText := markup.FirstParagraph(markup.StripTags(markup.StripTemplateTags(in.About.Body)))

	theme := "light"
	if cfg.Bool("enable_darkmode") {
		theme = "system"
	}

	socials := Record{}
	if email := cfg.String("email"); email != "" {
		socials = append(socials, Field{Key: "email", Value: email})
	}
	socials = append(socials, Socials(cfg)...)

	githubUser := cfg.String("github_username")
	if len(in.Repositories.Users) > 0 {
		githubUser = in.Repositories.Users[0]
	}
	pinned := in.Repositories.Repos
	if pinned == nil {
		pinned = []string{}
	}

	return Record{
		{Key: "siteMode", Value: "personal"},
		{Key: "lang", Value: cmp.Or(cfg.String("lang"), "en")},
		{Key: "direction", Value: "ltr"},
		{Key: "defaultTheme", Value: theme},
		{Key: "topBar", Value: Record{
			{Key: "enabled", Value: false},
			{Key: "text", Value: ""},
			{Key: "links", Value: []Record{}},
		}},
		{Key: "hero", Value: heroDefaults()},
		{Key: "fonts", Value: fontDefaults()},
		{Key: "colors", Value: Record{
			{Key: "light", Value: Record{{Key: "primary", Value: "#2c5282"}, {Key: "secondary", Value: "#06b6d4"}}},
			{Key: "dark", Value: Record{{Key: "primary", Value: "#22d3ee"}, {Key: "secondary", Value: "#2c5282"}}},
		}},
		{Key: "background", Value: Record{
			{Key: "light", Value: Record{{Key: "color", Value: lightBackground}, {Key: "image", Value: ""}}},
			{Key: "dark", Value: Record{{Key: "color", Value: darkBackground}, {Key: "image", Value: ""}}},
		}},
		{Key: "imageShape", Value: "rectangular"},
		{Key: "about", Value: Record{
			{Key: "enabled", Value: true},
			{Key: "title", Value: "About " + name},
			{Key: "text", Value: cmp.Or(aboutText, cfg.String("description"))},
			{Key: "image", Value: aboutImage},
		}},
		{Key: "homepageSections", Value: homepageSections()},
		{Key: "title", Value: name},
		{Key: "description", Value: cmp.Or(cfg.String("description"), name+"'s academic website")},
		{Key: "author", Value: name},
		{Key: "labName", Value: ""},
		{Key: "university", Value: ""},
		{Key: "department", Value: ""},
		{Key: "siteUrl", Value: cmp.Or(cfg.String("url"), "https://example.com")},
		{Key: "nav", Value: Nav(in.Nav)},
		{Key: "github", Value: Record{
			{Key: "username", Value: githubUser},
			{Key: "stats", Value: true},
			{Key: "trophies", Value: true},
			{Key: "pinnedRepos", Value: pinned},
		}},
		{Key: "socials", Value: socials},
		{Key: "analytics", Value: Record{
			{Key: "googleAnalytics", Value: cfg.String("google_analytics")},
			{Key: "googleTagManager", Value: ""},
			{Key: "cronitor", Value: ""},
			{Key: "openpanel", Value: ""},
			{Key: "pirsch", Value: ""},
			{Key: "microsoftClarity", Value: ""},
		}},
		{Key: "web3forms", Value: Record{{Key: "accessKey", Value: ""}}},
		{Key: "newsletter", Value: Record{
			{Key: "enabled", Value: false},
			{Key: "accessKey", Value: ""},
			{Key: "heading", Value: "Stay Updated"},
			{Key: "text", Value: "Subscribe to get notified about new publications and news."},
		}},
		{Key: "seo", Value: Record{
			{Key: "keywords", Value: cfg.String("keywords")},
			{Key: "googleSiteVerification", Value: ""},
			{Key: "bingSiteVerification", Value: ""},
		}},
		{Key: "adminPath", Value: "admin"},
		{Key: "adminUsers", Value: []string{in.PersonSlug}},
		{Key: "cookieConsent", Value: false},
		{Key: "footer", Value: Record{
			{Key: "text", Value: `Built with <a href="https://scholaros.com">ScholarOS</a>`},
			{Key: "links", Value: []Record{
				navItem("Privacy", "/privacy"),
				navItem("Sitemap", "/sitemap-index.xml"),
			}},
		}},
		{Key: "alfolioRepo", Value: ""},
	}
}

const (
	lightBackground = "#ffffff"
	darkBackground  = "#0d1117"
)

func heroDefaults() Record {
	return Record{
		{Key: "type", Value: "pattern"},
		{Key: "light", Value: Record{{Key: "bgColor", Value: lightBackground}, {Key: "bgImage", Value: ""}}},
		{Key: "dark", Value: Record{{Key: "bgColor", Value: darkBackground}, {Key: "bgImage", Value: ""}}},
		{Key: "video", Value: Record{{Key: "src", Value: ""}, {Key: "poster", Value: ""}}},
		{Key: "pattern", Value: Record{{Key: "name", Value: "hexagons"}}},
		{Key: "animation", Value: Record{{Key: "preset", Value: "wave-lines"}, {Key: "customScript", Value: ""}}},
	}
}

func fontDefaults() Record {
	return Record{
		{Key: "families", Value: Record{
			{Key: "sans", Value: "Roboto"},
			{Key: "serif", Value: "Roboto Slab"},
			{Key: "mono", Value: "Roboto Mono"},
		}},
		{Key: "sizes", Value: Record{
			{Key: "base", Value: "1.2rem"},
			{Key: "sm", Value: "0.95rem"},
			{Key: "lg", Value: "1.3rem"},
			{Key: "h1", Value: "2.3rem"},
			{Key: "h2", Value: "1.7rem"},
			{Key: "h3", Value: "1.5rem"},
		}},
	}
}

var homepageSectionIDs = []string{"hero", "about", "news", "publications", "blog"}

func homepageSections() []Record {
	sections := make([]Record, 0, len(homepageSectionIDs))
	for _, id := range homepageSectionIDs {
		sections = append(sections, Record{{Key: "id", Value: id}, {Key: "enabled", Value: true}})
	}
	return sections
}

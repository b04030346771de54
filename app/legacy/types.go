package legacy

import "github.com/lysyi3m/scholar-sync/app/markup"

// Page is a single frontmatter document such as the about page.
type Page struct {
	Data map[string]any
	Body string
}

// NewsItem is one classified legacy news file.
type NewsItem struct {
	Slug     string
	Date     string
	Title    string
	Body     string
	Category markup.Category
	Excerpt  string
}

// Document is a loosely typed project or post: the frontmatter is kept as-is
// and narrowed later.
type Document struct {
	Slug string
	Data map[string]any
	Body string
}

// NavPage is a page that opted into the legacy navigation bar.
type NavPage struct {
	Label     string
	Permalink string
	Order     int
}

type Repositories struct {
	Users []string
	Repos []string
}

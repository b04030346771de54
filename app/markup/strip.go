package markup

import (
	"regexp"
	"strings"
)

var (
	htmlTag       = regexp.MustCompile(`<[^>]*>`)
	templateBlock = regexp.MustCompile(`(?s)\{%.*?%\}`)
	templateExpr  = regexp.MustCompile(`(?s)\{\{.*?\}\}`)
	conditional   = regexp.MustCompile(`(?s)\{%-?\s*if\b.*?endif\s*-?%\}`)
	include       = regexp.MustCompile(`(?s)\{%-?\s*include\b.*?%\}`)
	whitespace    = regexp.MustCompile(`\s+`)

	entities = strings.NewReplacer(
		"&nbsp;", " ",
		"&amp;", "&",
		"&lt;", "<",
		"&gt;", ">",
		"&quot;", `"`,
		"&#39;", "'",
	)
)

// Strip reduces legacy markup to plain text: tags and templating tags are
// removed, common entities decoded and whitespace collapsed.
func Strip(text string) string {
	text = htmlTag.ReplaceAllString(text, "")
	text = entities.Replace(text)
	text = templateBlock.ReplaceAllString(text, "")
	text = templateExpr.ReplaceAllString(text, "")
	return strings.TrimSpace(whitespace.ReplaceAllString(text, " "))
}

// StripTemplateTags removes templating tags and conditional blocks while
// keeping HTML and line structure intact.
func StripTemplateTags(text string) string {
	text = conditional.ReplaceAllString(text, "")
	text = include.ReplaceAllString(text, "")
	text = templateBlock.ReplaceAllString(text, "")
	text = templateExpr.ReplaceAllString(text, "")
	return strings.TrimSpace(text)
}

// FirstParagraph returns the first blank-line separated block of text.
func FirstParagraph(text string) string {
	text = strings.TrimSpace(strings.ReplaceAll(text, "\r\n", "\n"))
	if i := strings.Index(text, "\n\n"); i >= 0 {
		text = text[:i]
	}
	return strings.TrimSpace(text)
}

// StripTags removes HTML tags and keeps everything else verbatim.
func StripTags(text string) string {
	return strings.TrimSpace(htmlTag.ReplaceAllString(text, ""))
}

// Clip returns the first n characters of text.
func Clip(text string, n int) string {
	return prefix(text, n)
}

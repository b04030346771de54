package markup

import (
	"log/slog"
	"regexp"
	"strings"

	md "github.com/JohannesKaufmann/html-to-markdown"
)

// ToMarkdown converts a legacy HTML fragment into Markdown. Templating tags are
// removed first. If conversion fails, the plain-text rendering is returned.
func ToMarkdown(html string) string {
	html = StripTemplateTags(html)
	if html == "" {
		return ""
	}

	converter := md.NewConverter("", true, nil)
	markdown, err := converter.ConvertString(html)
	if err != nil {
		slog.Warn("Failed to convert HTML to Markdown", "error", err)
		return Strip(html)
	}

	return strings.TrimSpace(markdown)
}

var inlineRules = []struct {
	pattern     *regexp.Regexp
	replacement string
}{
	{regexp.MustCompile(`<a\s+href="([^"]*)"[^>]*>(.*?)</a>`), "[$2]($1)"},
	{regexp.MustCompile(`<b>(.*?)</b>`), "**$1**"},
	{regexp.MustCompile(`<strong>(.*?)</strong>`), "**$1**"},
	{regexp.MustCompile(`<i>(.*?)</i>`), "*$1*"},
	{regexp.MustCompile(`<em>(.*?)</em>`), "*$1*"},
	{regexp.MustCompile(`<br\s*/?>`), "\n"},
}

// SimplifyInline rewrites the inline HTML found in a Markdown document into
// Markdown syntax and drops any other tag. Existing Markdown is left as is.
func SimplifyInline(text string) string {
	for _, rule := range inlineRules {
		text = rule.pattern.ReplaceAllString(text, rule.replacement)
	}
	text = htmlTag.ReplaceAllString(text, "")
	text = templateBlock.ReplaceAllString(text, "")
	text = templateExpr.ReplaceAllString(text, "")
	return strings.TrimSpace(text)
}

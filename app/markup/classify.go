package markup

import "regexp"

// Category is the closed set of announcement categories.
type Category string

const (
	CategoryPaper   Category = "paper"
	CategoryAward   Category = "award"
	CategoryGrant   Category = "grant"
	CategoryTalk    Category = "talk"
	CategoryMedia   Category = "media"
	CategoryGeneral Category = "general"
)

type categoryRule struct {
	category Category
	pattern  *regexp.Regexp
}

// Rules are evaluated in order; the first match wins.
var categoryRules = []categoryRule{
	{CategoryPaper, regexp.MustCompile(`(?i)\b(paper|accepted|publication|published|journal|conference)\b`)},
	{CategoryAward, regexp.MustCompile(`(?i)\b(award|prize|won|winner|honored)\b`)},
	{CategoryGrant, regexp.MustCompile(`(?i)\b(grant|fund|nsf|nih|darpa)\b`)},
	{CategoryTalk, regexp.MustCompile(`(?i)\b(talk|present|invited|keynote|seminar)\b`)},
	{CategoryMedia, regexp.MustCompile(`(?i)\b(intern|join|hired|welcome|new member|position)\b`)},
}

// Classify infers the category of a news text.
func Classify(text string) Category {
	for _, rule := range categoryRules {
		if rule.pattern.MatchString(text) {
			return rule.category
		}
	}
	return CategoryGeneral
}

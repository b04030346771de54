package markup

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

const (
	titleLimit   = 80
	excerptLimit = 150
	ellipsis     = "…"
)

var sentenceEnd = regexp.MustCompile(`[.!?]\s`)

// TitleFromText derives a short title from free text: the first sentence when
// it ends within 80 characters, the whole text when it fits, or a word-boundary
// truncation followed by an ellipsis.
func TitleFromText(text string) string {
	clean := Strip(text)

	if loc := sentenceEnd.FindStringIndex(clean); loc != nil && loc[0] > 0 {
		if utf8.RuneCountInString(clean[:loc[0]]) <= titleLimit {
			return clean[:loc[0]+1]
		}
	}

	if utf8.RuneCountInString(clean) <= titleLimit {
		return clean
	}

	return cutAtWord(clean, titleLimit) + ellipsis
}

// Excerpt returns the text before the first sentence boundary of the cleaned
// text, all of it when there is no boundary. Text opening on a boundary falls
// back to its first 150 characters.
func Excerpt(text string) string {
	clean := Strip(text)
	first := clean
	if loc := sentenceEnd.FindStringIndex(clean); loc != nil {
		first = clean[:loc[0]]
	}
	if first = strings.TrimSpace(first); first != "" {
		return first
	}
	return prefix(clean, excerptLimit)
}

// Truncate shortens text to at most max characters on a word boundary and
// marks the cut with "...".
func Truncate(text string, max int) string {
	if utf8.RuneCountInString(text) <= max {
		return text
	}
	return cutAtWord(text, max) + "..."
}

// cutAtWord returns the longest prefix of at most limit runes that does not
// end inside a word. Text without any whitespace in range is cut hard.
func cutAtWord(text string, limit int) string {
	head := prefix(text, limit)
	next, _ := utf8.DecodeRuneInString(text[len(head):])
	if unicode.IsSpace(next) {
		return strings.TrimRightFunc(head, unicode.IsSpace)
	}

	i := strings.LastIndexFunc(head, unicode.IsSpace)
	if i <= 0 {
		return head
	}
	return strings.TrimRightFunc(head[:i], unicode.IsSpace)
}

func prefix(text string, limit int) string {
	n := 0
	for i := range text {
		if n == limit {
			return text[:i]
		}
		n++
	}
	return text
}

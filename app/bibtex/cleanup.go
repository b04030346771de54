package bibtex

import (
	"regexp"
	"strings"
)

// presentationFields only drive the legacy theme's rendering and are dropped
// from the stored citation.
var presentationFields = []string{
	"preview",
	"selected",
	"bibtex_show",
	"abbr",
	"altmetric",
	"dimensions",
	"google_scholar_id",
	"html",
	"pdf",
	"supp",
	"blog",
	"code",
	"poster",
	"slides",
	"website",
	"award",
}

var (
	presentationSet = fieldSet(presentationFields)
	repeatedCommas  = regexp.MustCompile(`,(\s*,)+`)
	trailingComma   = regexp.MustCompile(`,\s*\}`)
)

func fieldSet(names []string) map[string]bool {
	set := make(map[string]bool, len(names))
	for _, name := range names {
		set[name] = true
	}
	return set
}

// Cleanup removes presentation-only fields from a raw entry and tidies the
// commas left behind. Cleanup(Cleanup(x)) == Cleanup(x).
func Cleanup(raw string) string {
	cleaned := cleanupPass(raw)
	for {
		next := cleanupPass(cleaned)
		if next == cleaned {
			return cleaned
		}
		cleaned = next
	}
}

func cleanupPass(s string) string {
	s = removeFields(s, presentationSet)
	s = repeatedCommas.ReplaceAllString(s, ",")
	s = trailingComma.ReplaceAllString(s, "\n}")
	return strings.TrimSpace(s)
}

// removeFields cuts every top-level field named in names, from the
// whitespace before its name through its value and the comma after it.
// Values are delimited on the token stream, so nested braces stay balanced.
func removeFields(input string, names map[string]bool) string {
	tokens := lex(input)

	var b strings.Builder
	last := 0
	depth := 0
	quoted := false

	for i := 0; i < len(tokens); i++ {
		t := tokens[i]
		switch t.kind {
		case tokOpenBrace:
			depth++
			continue
		case tokCloseBrace:
			if depth > 0 {
				depth--
			}
			continue
		case tokQuote:
			if depth == 1 {
				quoted = !quoted
			}
			continue
		case tokText:
		default:
			continue
		}

		if depth != 1 || quoted || !names[strings.ToLower(t.text)] {
			continue
		}
		eq := skipSpace(tokens, i+1)
		if eq >= len(tokens) || tokens[eq].kind != tokEquals {
			continue
		}

		start := i
		if start > 0 && tokens[start-1].kind == tokSpace {
			start--
		}
		end := valueEnd(tokens, eq+1)

		b.WriteString(input[last:tokens[start].pos])
		if end < len(tokens) {
			last = tokens[end].pos
		} else {
			last = len(input)
		}
		i = end - 1
	}

	b.WriteString(input[last:])
	return b.String()
}

// valueEnd returns the index of the first token after a field value and its
// trailing comma. The brace closing the entry is never consumed.
func valueEnd(tokens []token, i int) int {
	depth := 0
	quoted := false
	for j := i; j < len(tokens); j++ {
		switch tokens[j].kind {
		case tokOpenBrace:
			depth++
		case tokCloseBrace:
			if depth == 0 {
				return j
			}
			depth--
		case tokQuote:
			if depth == 0 {
				quoted = !quoted
			}
		case tokComma:
			if depth == 0 && !quoted {
				return j + 1
			}
		}
	}
	return len(tokens)
}

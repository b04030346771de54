package bibtex

import (
	"strings"
)

// Entry is a single citation record.
type Entry struct {
	Type   string
	Key    string
	Fields map[string]string
	// Raw is the original source span, from the '@' to the closing brace.
	Raw string
}

// Field returns the value of a field, matching its name case-insensitively.
func (e Entry) Field(name string) string {
	return e.Fields[strings.ToLower(name)]
}

var skippedTypes = map[string]bool{
	"string":   true,
	"preamble": true,
	"comment":  true,
}

// Parse returns the entries of a bibliography in source order. @string,
// @preamble and @comment blocks are skipped, as are entries without a key.
func Parse(input string) []Entry {
	tokens := lex(input)
	entries := make([]Entry, 0)

	for i := 0; i < len(tokens); i++ {
		entryType, at, ok := entryOpener(tokens[i])
		if !ok {
			continue
		}

		open := skipSpace(tokens, i+1)
		if open >= len(tokens) || tokens[open].kind != tokOpenBrace {
			continue
		}

		closing := matchBrace(tokens, open)
		start := tokens[i].pos + at
		end := len(input)
		if closing < len(tokens) {
			end = tokens[closing].end()
		}
		i = closing

		if skippedTypes[entryType] {
			continue
		}

		entry, ok := parseEntry(tokens[open+1 : closing])
		if !ok {
			continue
		}
		entry.Type = entryType
		entry.Raw = input[start:end]
		entries = append(entries, entry)
	}

	return entries
}

// entryOpener reports whether a text token ends with "@<word>", returning the
// lower-cased entry type and the offset of '@' inside the token.
func entryOpener(t token) (string, int, bool) {
	if t.kind != tokText {
		return "", 0, false
	}

	at := strings.LastIndexByte(t.text, '@')
	if at < 0 || at == len(t.text)-1 {
		return "", 0, false
	}

	name := t.text[at+1:]
	for i := 0; i < len(name); i++ {
		if !isWordByte(name[i]) {
			return "", 0, false
		}
	}

	return strings.ToLower(name), at, true
}

func parseEntry(body []token) (Entry, bool) {
	comma := -1
	depth := 0
	for i, t := range body {
		switch t.kind {
		case tokOpenBrace:
			depth++
		case tokCloseBrace:
			depth--
		case tokComma:
			if depth == 0 {
				comma = i
			}
		}
		if comma >= 0 {
			break
		}
	}
	if comma < 0 {
		return Entry{}, false
	}

	key := strings.TrimSpace(join(body[:comma]))
	if key == "" {
		return Entry{}, false
	}

	return Entry{
		Key:    key,
		Fields: parseFields(body[comma+1:]),
	}, true
}

func parseFields(tokens []token) map[string]string {
	r := &fieldReader{tokens: tokens}
	fields := make(map[string]string)

	for !r.done() {
		name, ok := r.fieldName()
		if !ok {
			r.skipToComma()
			continue
		}
		fields[name] = collapseSpace(r.value())
		r.skipToComma()
	}

	return fields
}

// fieldReader is a recursive-descent reader over the tokens of one entry body.
type fieldReader struct {
	tokens []token
	i      int
}

func (r *fieldReader) done() bool {
	return r.i >= len(r.tokens)
}

func (r *fieldReader) peek() (token, bool) {
	if r.done() {
		return token{}, false
	}
	return r.tokens[r.i], true
}

func (r *fieldReader) skipSpace() {
	r.i = skipSpace(r.tokens, r.i)
}

// fieldName consumes `name =` and returns the lower-cased name.
func (r *fieldReader) fieldName() (string, bool) {
	for !r.done() && (r.tokens[r.i].kind == tokSpace || r.tokens[r.i].kind == tokComma) {
		r.i++
	}

	t, ok := r.peek()
	if !ok || t.kind != tokText {
		return "", false
	}

	name := trailingWord(t.text)
	if name == "" {
		return "", false
	}

	eq := skipSpace(r.tokens, r.i+1)
	if eq >= len(r.tokens) || r.tokens[eq].kind != tokEquals {
		return "", false
	}

	r.i = eq + 1
	return strings.ToLower(name), true
}

func (r *fieldReader) value() string {
	r.skipSpace()

	t, ok := r.peek()
	if !ok {
		return ""
	}

	switch t.kind {
	case tokOpenBrace:
		return r.braced()
	case tokQuote:
		return r.quoted()
	case tokComma, tokCloseBrace:
		return ""
	default:
		return r.bare()
	}
}

func (r *fieldReader) braced() string {
	closing := matchBrace(r.tokens, r.i)
	inner := join(r.tokens[r.i+1 : closing])
	r.i = closing + 1
	return inner
}

func (r *fieldReader) quoted() string {
	start := r.i + 1
	j := start
	for j < len(r.tokens) && r.tokens[j].kind != tokQuote {
		j++
	}
	inner := join(r.tokens[start:j])
	r.i = j + 1
	return inner
}

func (r *fieldReader) bare() string {
	start := r.i
	depth := 0
	for !r.done() {
		t := r.tokens[r.i]
		if depth == 0 && (t.kind == tokComma || t.kind == tokCloseBrace) {
			break
		}
		switch t.kind {
		case tokOpenBrace:
			depth++
		case tokCloseBrace:
			depth--
		}
		r.i++
	}
	return strings.TrimSpace(join(r.tokens[start:r.i]))
}

// skipToComma advances past the next top-level comma, ignoring anything
// that trails a value (such as `#` concatenations).
func (r *fieldReader) skipToComma() {
	depth := 0
	for !r.done() {
		t := r.tokens[r.i]
		r.i++
		switch t.kind {
		case tokOpenBrace:
			depth++
		case tokCloseBrace:
			if depth > 0 {
				depth--
			}
		case tokQuote:
			if depth == 0 {
				for !r.done() && r.tokens[r.i].kind != tokQuote {
					r.i++
				}
				r.i++
			}
		case tokComma:
			if depth == 0 {
				return
			}
		}
	}
}

// matchBrace returns the index of the brace closing the one at open, or
// len(tokens) when the input ends first.
func matchBrace(tokens []token, open int) int {
	depth := 0
	for j := open; j < len(tokens); j++ {
		switch tokens[j].kind {
		case tokOpenBrace:
			depth++
		case tokCloseBrace:
			depth--
			if depth == 0 {
				return j
			}
		}
	}
	return len(tokens)
}

func skipSpace(tokens []token, i int) int {
	for i < len(tokens) && tokens[i].kind == tokSpace {
		i++
	}
	return i
}

func join(tokens []token) string {
	var b strings.Builder
	for _, t := range tokens {
		b.WriteString(t.text)
	}
	return b.String()
}

func trailingWord(s string) string {
	i := len(s)
	for i > 0 && isWordByte(s[i-1]) {
		i--
	}
	return s[i:]
}

func collapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

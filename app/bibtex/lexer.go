package bibtex

type tokenKind int

const (
	tokText tokenKind = iota
	tokSpace
	tokOpenBrace
	tokCloseBrace
	tokQuote
	tokEquals
	tokComma
)

type token struct {
	kind tokenKind
	text string
	pos  int // byte offset of the token in the lexed input
}

func (t token) end() int {
	return t.pos + len(t.text)
}

// lex splits bibliography text into tokens. A backslash immediately before a
// quote is kept inside a text token so escaped quotes never close a value.
func lex(input string) []token {
	tokens := make([]token, 0, len(input)/4)

	for i := 0; i < len(input); {
		c := input[i]
		switch {
		case c == '{':
			tokens = append(tokens, token{kind: tokOpenBrace, text: "{", pos: i})
			i++
		case c == '}':
			tokens = append(tokens, token{kind: tokCloseBrace, text: "}", pos: i})
			i++
		case c == '"':
			tokens = append(tokens, token{kind: tokQuote, text: `"`, pos: i})
			i++
		case c == '=':
			tokens = append(tokens, token{kind: tokEquals, text: "=", pos: i})
			i++
		case c == ',':
			tokens = append(tokens, token{kind: tokComma, text: ",", pos: i})
			i++
		case isSpace(c):
			start := i
			for i < len(input) && isSpace(input[i]) {
				i++
			}
			tokens = append(tokens, token{kind: tokSpace, text: input[start:i], pos: start})
		default:
			start := i
			for i < len(input) && !isDelimiter(input[i]) {
				if input[i] == '\\' && i+1 < len(input) && input[i+1] == '"' {
					i += 2
					continue
				}
				i++
			}
			tokens = append(tokens, token{kind: tokText, text: input[start:i], pos: start})
		}
	}

	return tokens
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\f' || c == '\v'
}

func isDelimiter(c byte) bool {
	switch c {
	case '{', '}', '"', '=', ',':
		return true
	}
	return isSpace(c)
}

func isWordByte(c byte) bool {
	return c == '_' || (c >= '0' && c <= '9') || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

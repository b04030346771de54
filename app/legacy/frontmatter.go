package legacy

import (
	"errors"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

var ErrMalformedFrontmatter = errors.New("malformed frontmatter")

// SplitFrontmatter separates a `---` delimited YAML header from the body.
// Documents without a header, or whose header never closes, are returned as
// body only. When the header is not valid YAML the returned header is empty
// and err wraps ErrMalformedFrontmatter; the body is still usable.
func SplitFrontmatter(content string) (map[string]any, string, error) {
	header := map[string]any{}
	content = strings.TrimPrefix(content, "\ufeff")
	content = strings.ReplaceAll(content, "\r\n", "\n")

	first, _, _ := strings.Cut(content, "\n")
	if strings.TrimRight(first, " \t") != "---" {
		return header, strings.TrimSpace(content), nil
	}

	rest := content[len(first):]
	end := closingDelimiter(rest)
	if end < 0 {
		return header, strings.TrimSpace(content), nil
	}

	raw := rest[:end]
	body := strings.TrimSpace(strings.TrimPrefix(rest[end:], "---"))

	if strings.TrimSpace(raw) == "" {
		return header, body, nil
	}

	var parsed map[string]any
	if err := yaml.Unmarshal([]byte(raw), &parsed); err != nil {
		return header, body, fmt.Errorf("%w: %v", ErrMalformedFrontmatter, err)
	}
	if parsed != nil {
		header = parsed
	}

	return header, body, nil
}

// closingDelimiter returns the offset of the `---` line ending the header.
func closingDelimiter(s string) int {
	offset := 0
	for {
		nl := strings.IndexByte(s[offset:], '\n')
		if nl < 0 {
			return -1
		}
		lineStart := offset + nl + 1
		line := s[lineStart:]
		if i := strings.IndexByte(line, '\n'); i >= 0 {
			line = line[:i]
		}
		if strings.TrimRight(line, " \t") == "---" {
			return lineStart
		}
		offset = lineStart
	}
}

package bibtex

import (
	"regexp"
	"strings"
)

var authorSeparator = regexp.MustCompile(`(?i)\s+and\s+`)

// Authors splits an author field into display names. "Last, First Middle"
// names are reordered to "First Middle Last"; other names are kept verbatim.
func Authors(field string) []string {
	if strings.TrimSpace(field) == "" {
		return nil
	}

	parts := authorSeparator.Split(field, -1)
	authors := make([]string, 0, len(parts))
	for _, part := range parts {
		name := strings.TrimSpace(strings.NewReplacer("{", "", "}", "").Replace(part))
		if name == "" {
			continue
		}

		if strings.Contains(name, ",") {
			pieces := strings.Split(name, ",")
			last := strings.TrimSpace(pieces[0])
			var ordered []string
			for _, first := range pieces[1:] {
				if first = strings.TrimSpace(first); first != "" {
					ordered = append(ordered, first)
				}
			}
			ordered = append(ordered, last)
			name = strings.Join(ordered, " ")
		}

		authors = append(authors, name)
	}

	return authors
}

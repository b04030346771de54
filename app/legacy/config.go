package legacy

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Config is a read-only snapshot of the legacy site's _config.yml.
type Config struct {
	values map[string]any
}

// ExternalSource is an entry of the legacy external_sources list.
type ExternalSource struct {
	Name   string
	RSSURL string
}

func NewConfig(values map[string]any) Config {
	copied := make(map[string]any, len(values))
	for k, v := range values {
		copied[k] = v
	}
	return Config{values: copied}
}

// String returns a scalar setting as text, or "" when it is absent or not a
// scalar.
func (c Config) String(key string) string {
	return ScalarString(c.values[key])
}

// Bool reports whether a setting is a true boolean.
func (c Config) Bool(key string) bool {
	switch v := c.values[key].(type) {
	case bool:
		return v
	case string:
		b, _ := strconv.ParseBool(strings.TrimSpace(v))
		return b
	}
	return false
}

func (c Config) ExternalSources() []ExternalSource {
	list, ok := c.values["external_sources"].([]any)
	if !ok {
		return nil
	}

	sources := make([]ExternalSource, 0, len(list))
	for _, raw := range list {
		entry, ok := raw.(map[string]any)
		if !ok {
			continue
		}
		sources = append(sources, ExternalSource{
			Name:   ScalarString(entry["name"]),
			RSSURL: ScalarString(entry["rss_url"]),
		})
	}
	return sources
}

// ScalarString renders a YAML scalar as trimmed text. Non-scalars yield "".
func ScalarString(v any) string {
	switch value := v.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(value)
	case int, int64, float64, bool:
		return fmt.Sprint(value)
	case time.Time:
		return value.UTC().Format(time.DateOnly)
	}
	return ""
}

// StringField returns a scalar frontmatter value as trimmed text.
func StringField(data map[string]any, key string) string {
	return ScalarString(data[key])
}

// StringList returns a list frontmatter value. A single scalar is accepted
// as a one-element list; whitespace-separated strings are split.
func StringList(data map[string]any, key string) []string {
	switch v := data[key].(type) {
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			if s := ScalarString(item); s != "" {
				out = append(out, s)
			}
		}
		return out
	case string:
		return strings.Fields(v)
	}
	return nil
}

var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05 -0700",
	"2006-01-02 15:04:05 -07:00",
	"2006-01-02 15:04:05-0700",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	time.DateOnly,
}

// ParseDate reads a frontmatter date and returns it as a calendar date in UTC.
func ParseDate(v any) (string, bool) {
	switch value := v.(type) {
	case time.Time:
		return value.UTC().Format(time.DateOnly), true
	case string:
		value = strings.TrimSpace(value)
		for _, layout := range dateLayouts {
			if t, err := time.Parse(layout, value); err == nil {
				return t.UTC().Format(time.DateOnly), true
			}
		}
	}
	return "", false
}

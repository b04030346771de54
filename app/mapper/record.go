package mapper

import (
	"reflect"
	"strings"

	"github.com/lysyi3m/scholar-sync/app/legacy"
)

// Field is one key of a destination record.
type Field struct {
	Key   string
	Value any
}

// Date is a calendar date (YYYY-MM-DD) written as a YAML date rather than a
// string.
type Date string

// Record is an ordered set of destination fields. Order is kept so the
// written files are stable across runs.
type Record []Field

// Get returns the value stored under key.
func (r Record) Get(key string) (any, bool) {
	for _, f := range r {
		if f.Key == key {
			return f.Value, true
		}
	}
	return nil, false
}

// Transform narrows a legacy value into its destination form. Returning false
// omits the destination field.
type Transform func(value any) (any, bool)

// Rule maps the first non-empty legacy field of From onto the destination
// field To.
type Rule struct {
	From      []string
	To        string
	Transform Transform
}

// Apply evaluates rules in order against a legacy source. Without a Transform
// an empty value omits the field.
func Apply(rules []Rule, source map[string]any) Record {
	record := make(Record, 0, len(rules))
	for _, rule := range rules {
		value := lookup(source, rule.From)

		if rule.Transform == nil {
			if isEmpty(value) {
				continue
			}
			record = append(record, Field{Key: rule.To, Value: value})
			continue
		}

		if out, ok := rule.Transform(value); ok {
			record = append(record, Field{Key: rule.To, Value: out})
		}
	}
	return record
}

func lookup(source map[string]any, keys []string) any {
	for _, key := range keys {
		if v, ok := source[key]; ok && !isEmpty(v) {
			return v
		}
	}
	return nil
}

func isEmpty(v any) bool {
	if v == nil {
		return true
	}
	switch rv := reflect.ValueOf(v); rv.Kind() {
	case reflect.String:
		return strings.TrimSpace(rv.String()) == ""
	case reflect.Slice, reflect.Map:
		return rv.Len() == 0
	}
	return false
}

// Const ignores the legacy value and always emits v.
func Const(v any) Transform {
	return func(any) (any, bool) {
		return v, true
	}
}

// Text emits a non-empty scalar as a string.
func Text(v any) (any, bool) {
	s := legacy.ScalarString(v)
	return s, s != ""
}

// TextOr emits a scalar as a string, falling back to def when empty.
func TextOr(def string) Transform {
	return func(v any) (any, bool) {
		if s := legacy.ScalarString(v); s != "" {
			return s, true
		}
		return def, true
	}
}

// List emits a non-empty list of strings. A whitespace-separated string is
// accepted as a list.
func List(v any) (any, bool) {
	var out []string
	switch value := v.(type) {
	case []string:
		out = value
	case []any:
		for _, item := range value {
			if s := legacy.ScalarString(item); s != "" {
				out = append(out, s)
			}
		}
	case string:
		out = strings.Fields(value)
	}
	return out, len(out) > 0
}

// Keep emits the value unchanged, even when empty.
func Keep(v any) (any, bool) {
	return v, true
}

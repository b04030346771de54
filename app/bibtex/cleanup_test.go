package bibtex

import (
	"strings"
	"testing"
)

func TestCleanupRemovesPresentationFields(t *testing.T) {
	raw := "@article{smith2024,\n  title = {Vision {Transformers}},\n  preview = {fig.png},\n  selected = {true},\n  abbr = ICML,\n  year = {2024},\n}"

	cleaned := Cleanup(raw)

	for _, name := range []string{"preview", "selected", "abbr"} {
		if strings.Contains(cleaned, name) {
			t.Errorf("Expected '%s' to be removed, got %q", name, cleaned)
		}
	}
	if !strings.Contains(cleaned, "title = {Vision {Transformers}}") {
		t.Errorf("Expected title to survive, got %q", cleaned)
	}
	if !strings.Contains(cleaned, "year = {2024}") {
		t.Errorf("Expected year to survive, got %q", cleaned)
	}
	if strings.Contains(cleaned, ",\n}") || strings.Contains(cleaned, ",,") {
		t.Errorf("Expected tidy commas, got %q", cleaned)
	}
	if !strings.HasSuffix(cleaned, "\n}") {
		t.Errorf("Expected closing brace on its own line, got %q", cleaned)
	}
}

func TestCleanupIsIdempotent(t *testing.T) {
	inputs := []string{
		"@article{a, title = {T}, pdf = {a.pdf}, html = \"x\", year = 2020}",
		"@misc{b,\n  code = {https://github.com/x},,\n  note = {kept},\n}",
		"@inproceedings{c, selected = true, award = {Best Paper}}",
		"",
	}

	for _, in := range inputs {
		once := Cleanup(in)
		twice := Cleanup(once)
		if once != twice {
			t.Errorf("Expected idempotent cleanup for %q: %q != %q", in, once, twice)
		}
	}
}

func TestCleanupKeepsFieldsSharingPrefix(t *testing.T) {
	cleaned := Cleanup("@misc{d, codename = {Orca}, website = {x}}")

	if !strings.Contains(cleaned, "codename = {Orca}") {
		t.Errorf("Expected 'codename' to survive, got %q", cleaned)
	}
	if strings.Contains(cleaned, "website") {
		t.Errorf("Expected 'website' to be removed, got %q", cleaned)
	}
}

func TestCleanupNestedBraceValue(t *testing.T) {
	raw := "@inproceedings{k,\n title = {T},\n award = {Best {Paper} Award},\n year = {2020}\n}"

	cleaned := Cleanup(raw)

	if cleaned != "@inproceedings{k,\n title = {T},\n year = {2020}\n}" {
		t.Errorf("Expected award removed whole, got %q", cleaned)
	}
	if strings.Count(cleaned, "{") != strings.Count(cleaned, "}") {
		t.Errorf("Expected balanced braces, got %q", cleaned)
	}

	entries := Parse(cleaned)
	if len(entries) != 1 || entries[0].Field("year") != "2020" {
		t.Errorf("Expected year to survive re-parsing, got %+v", entries)
	}
	if once := Cleanup(cleaned); once != cleaned {
		t.Errorf("Expected idempotent cleanup, got %q", once)
	}
}

func TestCleanupLeavesNestedAndQuotedMentions(t *testing.T) {
	raw := `@misc{m, note = "award = {x}", title = {About {pdf = y}}, pdf = "a, b.pdf" # {c}}`

	cleaned := Cleanup(raw)

	if !strings.Contains(cleaned, `note = "award = {x}"`) {
		t.Errorf("Expected quoted text kept, got %q", cleaned)
	}
	if !strings.Contains(cleaned, "title = {About {pdf = y}}") {
		t.Errorf("Expected braced text kept, got %q", cleaned)
	}
	if strings.Contains(cleaned, "b.pdf") || strings.Contains(cleaned, "{c}") {
		t.Errorf("Expected concatenated pdf value removed, got %q", cleaned)
	}
}

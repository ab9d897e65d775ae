package problem

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeSpecFile(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write spec: %v", err)
	}
	return path
}

// TestLoadSpecYAML parses a YAML problem set.
func TestLoadSpecYAML(t *testing.T) {
	path := writeSpecFile(t, "problems.yml", `version: 1
problems:
  - id: humaneval/2
    prompt: "def truncate_number(number: float) -> float:\n"
    test_code: "def check(candidate):\n    assert candidate(3.5) == 0.5\n"
    entry_point: truncate_number
`)
	spec, err := LoadSpec(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(spec.Problems) != 1 {
		t.Fatalf("expected 1 problem, got %d", len(spec.Problems))
	}
	if spec.Problems[0].EntryPoint != "truncate_number" {
		t.Fatalf("unexpected entry point: %q", spec.Problems[0].EntryPoint)
	}
}

// TestLoadSpecJSON parses a JSON problem set and rejects unknown fields.
func TestLoadSpecJSON(t *testing.T) {
	path := writeSpecFile(t, "problems.json", `{
  "version": 1,
  "problems": [
    {"id": "p1", "prompt": "def f():\n", "test_code": "def check(c): pass\n", "entry_point": "f"}
  ]
}`)
	if _, err := LoadSpec(path); err != nil {
		t.Fatalf("load: %v", err)
	}

	bad := writeSpecFile(t, "bad.json", `{"version": 1, "problems": [], "extra": true}`)
	if _, err := LoadSpec(bad); err == nil {
		t.Fatal("expected error for unknown field")
	}
}

// TestNormalizeSpecRejectsDuplicates flags duplicate problem ids.
func TestNormalizeSpecRejectsDuplicates(t *testing.T) {
	spec := Spec{Version: 1, Problems: []Problem{
		{ID: "p1", Prompt: "a", TestCode: "b", EntryPoint: "f"},
		{ID: "p1", Prompt: "c", TestCode: "d", EntryPoint: "g"},
	}}
	_, err := NormalizeSpec(spec)
	if err == nil {
		t.Fatal("expected validation error")
	}
	if !strings.Contains(err.Error(), "duplicate id") {
		t.Fatalf("unexpected error: %v", err)
	}
}

// TestSelectByCount takes a stable prefix of the problem set.
func TestSelectByCount(t *testing.T) {
	spec := Spec{Version: 1, Problems: []Problem{
		{ID: "p1"}, {ID: "p2"}, {ID: "p3"},
	}}
	selected, err := Select(spec, 2, nil)
	if err != nil {
		t.Fatalf("select: %v", err)
	}
	if len(selected) != 2 || selected[0].ID != "p1" || selected[1].ID != "p2" {
		t.Fatalf("unexpected selection: %+v", selected)
	}
}

// TestSelectByIDs keeps spec order and rejects unknown ids.
func TestSelectByIDs(t *testing.T) {
	spec := Spec{Version: 1, Problems: []Problem{
		{ID: "p1"}, {ID: "p2"}, {ID: "p3"},
	}}
	selected, err := Select(spec, 0, []string{"p3", "p1"})
	if err != nil {
		t.Fatalf("select: %v", err)
	}
	if len(selected) != 2 || selected[0].ID != "p1" || selected[1].ID != "p3" {
		t.Fatalf("expected spec order, got %+v", selected)
	}
	if _, err := Select(spec, 0, []string{"p9"}); err == nil {
		t.Fatal("expected error for unknown id")
	}
}

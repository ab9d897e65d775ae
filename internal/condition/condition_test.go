package condition

import (
	"strings"
	"testing"
)

// TestRegistryOrder verifies the condition set is fixed and control comes first.
func TestRegistryOrder(t *testing.T) {
	names := Names()
	expected := []string{"control", "common_english", "greek_arete", "japanese_shokunin", "combined"}
	if len(names) != len(expected) {
		t.Fatalf("expected %d conditions, got %d", len(expected), len(names))
	}
	for i, name := range expected {
		if names[i] != name {
			t.Fatalf("position %d: expected %q, got %q", i, name, names[i])
		}
	}
}

// TestControlIsIdentity checks the control condition leaves prompts unchanged.
func TestControlIsIdentity(t *testing.T) {
	c, err := ByName(ControlName)
	if err != nil {
		t.Fatalf("lookup control: %v", err)
	}
	prompt := "def add(a, b):\n"
	if got := c.Apply(prompt); got != prompt {
		t.Fatalf("control changed the prompt: %q", got)
	}
}

// TestConditionedPromptsCarryPrefix checks non-control conditions prepend their prefix.
func TestConditionedPromptsCarryPrefix(t *testing.T) {
	prompt := "def add(a, b):\n"
	for _, c := range All() {
		if c.Name == ControlName {
			continue
		}
		conditioned := c.Apply(prompt)
		if !strings.HasPrefix(conditioned, c.Prefix) {
			t.Fatalf("%s: missing prefix", c.Name)
		}
		if !strings.HasSuffix(conditioned, prompt+c.Suffix) {
			t.Fatalf("%s: base prompt not preserved", c.Name)
		}
	}
}

// TestByNameUnknown rejects names outside the registry.
func TestByNameUnknown(t *testing.T) {
	if _, err := ByName("latin_virtus"); err == nil {
		t.Fatal("expected error for unknown condition")
	}
	if Index("latin_virtus") != -1 {
		t.Fatal("expected -1 index for unknown condition")
	}
}

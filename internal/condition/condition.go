package condition

import "fmt"

// Condition names a prompt-conditioning strategy under comparison.
// The prefix and suffix wrap the problem prompt before it is sent to the
// model; the control condition leaves the prompt untouched.
type Condition struct {
	Name   string
	Prefix string
	Suffix string
}

// ControlName is the baseline condition every other condition is compared against.
const ControlName = "control"

// registry holds the fixed condition set in canonical emission order.
var registry = []Condition{
	{
		Name: ControlName,
	},
	{
		Name:   "common_english",
		Prefix: "Write high-quality, production-ready code.\n\n",
	},
	{
		Name:   "greek_arete",
		Prefix: "Write code embodying ἀρετή (excellence).\n\n",
	},
	{
		Name:   "japanese_shokunin",
		Prefix: "Write code with 職人気質 (craftsman spirit).\n\n",
	},
	{
		Name:   "combined",
		Prefix: "Write code embodying ἀρετή and 職人気質.\n\n",
	},
}

// All returns the full condition set in canonical order.
func All() []Condition {
	out := make([]Condition, len(registry))
	copy(out, registry)
	return out
}

// Names returns the condition names in canonical order.
func Names() []string {
	names := make([]string, 0, len(registry))
	for _, c := range registry {
		names = append(names, c.Name)
	}
	return names
}

// ByName looks up a condition by its name.
func ByName(name string) (Condition, error) {
	for _, c := range registry {
		if c.Name == name {
			return c, nil
		}
	}
	return Condition{}, fmt.Errorf("unknown condition %q", name)
}

// Index returns the canonical position of a condition name, or -1.
func Index(name string) int {
	for i, c := range registry {
		if c.Name == name {
			return i
		}
	}
	return -1
}

// Apply wraps a base prompt with the condition's prefix and suffix.
func (c Condition) Apply(basePrompt string) string {
	return c.Prefix + basePrompt + c.Suffix
}

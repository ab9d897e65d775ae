package problem

// Spec defines the problem set schema loaded from JSON or YAML.
type Spec struct {
	Version  int       `json:"version" yaml:"version"`
	Problems []Problem `json:"problems" yaml:"problems"`
}

// Problem is a single benchmark record: a function prompt, the unit tests
// that verify a completion, and the entry point the tests call.
// Problems are immutable once loaded.
type Problem struct {
	ID         string `json:"id" yaml:"id"`
	Prompt     string `json:"prompt" yaml:"prompt"`
	TestCode   string `json:"test_code" yaml:"test_code"`
	EntryPoint string `json:"entry_point" yaml:"entry_point"`
}

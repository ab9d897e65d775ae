package spec

// Config is the experiment configuration loaded from .arete.yml.
type Config struct {
	Version    int              `yaml:"version"`
	Experiment ExperimentConfig `yaml:"experiment"`
	Model      ModelConfig      `yaml:"model"`
	Sandbox    SandboxConfig    `yaml:"sandbox"`
}

// ExperimentConfig selects the benchmark subset and trial counts.
type ExperimentConfig struct {
	OutputDir    string   `yaml:"output_dir"`
	ProblemsFile string   `yaml:"problems_file"`
	ProblemCount int      `yaml:"problem_count"`
	ProblemIDs   []string `yaml:"problem_ids"`
	Trials       int      `yaml:"trials"`
	Workers      int      `yaml:"workers"`
}

// ModelConfig describes the completion collaborator.
type ModelConfig struct {
	Provider        string  `yaml:"provider"`
	Name            string  `yaml:"name"`
	Temperature     float64 `yaml:"temperature"`
	MaxOutputTokens int     `yaml:"max_output_tokens"`
	MaxRetries      int     `yaml:"max_retries"`
	RetryBackoffMS  int     `yaml:"retry_backoff_ms"`
}

// SandboxConfig describes the test-execution collaborator.
type SandboxConfig struct {
	Command        []string `yaml:"command"`
	TimeoutSeconds int      `yaml:"timeout_seconds"`
}

package config

import (
	"strings"

	"arete/internal/spec"
)

// Defaults applied during normalization.
const (
	DefaultOutputDir      = "./results"
	DefaultTrials         = 5
	DefaultWorkers        = 1
	DefaultTemperature    = 0.7
	DefaultMaxTokens      = 1024
	DefaultMaxRetries     = 2
	DefaultRetryBackoffMS = 1000
	DefaultSandboxTimeout = 5
)

// Normalize trims fields and fills defaults in place.
func Normalize(cfg *spec.Config) {
	cfg.Experiment.OutputDir = strings.TrimSpace(cfg.Experiment.OutputDir)
	if cfg.Experiment.OutputDir == "" {
		cfg.Experiment.OutputDir = DefaultOutputDir
	}
	cfg.Experiment.ProblemsFile = strings.TrimSpace(cfg.Experiment.ProblemsFile)
	cfg.Experiment.ProblemIDs = trimSlice(cfg.Experiment.ProblemIDs)
	if cfg.Experiment.Trials <= 0 {
		cfg.Experiment.Trials = DefaultTrials
	}
	if cfg.Experiment.Workers <= 0 {
		cfg.Experiment.Workers = DefaultWorkers
	}

	cfg.Model.Provider = strings.TrimSpace(cfg.Model.Provider)
	cfg.Model.Name = strings.TrimSpace(cfg.Model.Name)
	if cfg.Model.Temperature == 0 {
		cfg.Model.Temperature = DefaultTemperature
	}
	if cfg.Model.MaxOutputTokens <= 0 {
		cfg.Model.MaxOutputTokens = DefaultMaxTokens
	}
	if cfg.Model.MaxRetries < 0 {
		cfg.Model.MaxRetries = 0
	}
	if cfg.Model.MaxRetries == 0 {
		cfg.Model.MaxRetries = DefaultMaxRetries
	}
	if cfg.Model.RetryBackoffMS <= 0 {
		cfg.Model.RetryBackoffMS = DefaultRetryBackoffMS
	}

	if len(cfg.Sandbox.Command) == 0 {
		cfg.Sandbox.Command = []string{"python3"}
	}
	if cfg.Sandbox.TimeoutSeconds <= 0 {
		cfg.Sandbox.TimeoutSeconds = DefaultSandboxTimeout
	}
}

func trimSlice(values []string) []string {
	out := make([]string, 0, len(values))
	for _, value := range values {
		value = strings.TrimSpace(value)
		if value != "" {
			out = append(out, value)
		}
	}
	return out
}

package config

import (
	"fmt"
	"strings"

	"arete/internal/spec"
)

// Issue captures a validation problem in the experiment config.
type Issue struct {
	Field   string
	Message string
}

// ValidationError reports one or more config validation issues.
type ValidationError struct {
	Issues []Issue
}

// Error returns a readable message for validation failures.
func (err *ValidationError) Error() string {
	if err == nil || len(err.Issues) == 0 {
		return ""
	}
	parts := make([]string, 0, len(err.Issues))
	for _, issue := range err.Issues {
		parts = append(parts, fmt.Sprintf("%s: %s", issue.Field, issue.Message))
	}
	return fmt.Sprintf("config validation failed: %s", strings.Join(parts, "; "))
}

// Validate checks a normalized config for structural problems.
func Validate(cfg *spec.Config) error {
	var issues []Issue
	add := func(field, message string) {
		issues = append(issues, Issue{Field: field, Message: message})
	}

	if cfg.Version == 0 {
		add("version", "is required")
	} else if cfg.Version != 1 {
		add("version", fmt.Sprintf("unsupported version %d", cfg.Version))
	}
	if cfg.Experiment.ProblemsFile == "" {
		add("experiment.problems_file", "is required")
	}
	if cfg.Experiment.ProblemCount < 0 {
		add("experiment.problem_count", "must not be negative")
	}
	if cfg.Model.Name == "" {
		add("model.name", "is required")
	}
	if cfg.Model.Temperature < 0 || cfg.Model.Temperature > 2 {
		add("model.temperature", "must be between 0 and 2")
	}

	if len(issues) == 0 {
		return nil
	}
	return &ValidationError{Issues: issues}
}

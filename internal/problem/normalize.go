package problem

import (
	"fmt"
	"strings"
)

// Issue captures a validation problem in a problem set file.
type Issue struct {
	Field   string
	Message string
}

// ValidationError reports one or more validation issues.
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
	return fmt.Sprintf("problem set validation failed: %s", strings.Join(parts, "; "))
}

type issueCollector struct {
	issues []Issue
}

func (collector *issueCollector) add(field, message string) {
	collector.issues = append(collector.issues, Issue{Field: field, Message: message})
}

func (collector *issueCollector) result() error {
	if len(collector.issues) == 0 {
		return nil
	}
	return &ValidationError{Issues: collector.issues}
}

// NormalizeSpec trims identifiers and validates a problem set.
// Prompts and test code keep their whitespace; it is significant for
// Python source.
func NormalizeSpec(spec Spec) (Spec, error) {
	collector := &issueCollector{}
	if spec.Version == 0 {
		collector.add("version", "is required")
	} else if spec.Version != 1 {
		collector.add("version", fmt.Sprintf("unsupported version %d", spec.Version))
	}
	if len(spec.Problems) == 0 {
		collector.add("problems", "must include at least one entry")
	}

	seenIDs := map[string]struct{}{}
	for i, item := range spec.Problems {
		prefix := fmt.Sprintf("problems[%d]", i)
		item.ID = strings.TrimSpace(item.ID)
		if item.ID == "" {
			collector.add(prefix+".id", "is required")
		} else if _, exists := seenIDs[item.ID]; exists {
			collector.add(prefix+".id", fmt.Sprintf("duplicate id %q", item.ID))
		} else {
			seenIDs[item.ID] = struct{}{}
		}
		if strings.TrimSpace(item.Prompt) == "" {
			collector.add(prefix+".prompt", "is required")
		}
		if strings.TrimSpace(item.TestCode) == "" {
			collector.add(prefix+".test_code", "is required")
		}
		item.EntryPoint = strings.TrimSpace(item.EntryPoint)
		if item.EntryPoint == "" {
			collector.add(prefix+".entry_point", "is required")
		}
		spec.Problems[i] = item
	}

	if err := collector.result(); err != nil {
		return Spec{}, err
	}
	return spec, nil
}

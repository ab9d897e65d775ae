package blind

import (
	"encoding/json"
	"fmt"

	"arete/internal/condition"
	"arete/internal/runner"
)

// CheckLeakage scans the serialized blind artifact for anything that
// would let a scorer recover condition identity: a condition-like field
// name, or a condition name stored as a value. It operates on the raw
// bytes so a hand-edited or corrupted artifact is caught too.
func CheckLeakage(data []byte) error {
	var decoded any
	if err := json.Unmarshal(data, &decoded); err != nil {
		return fmt.Errorf("parse blind artifact: %w", err)
	}
	conditionNames := make(map[string]struct{})
	for _, name := range condition.Names() {
		conditionNames[name] = struct{}{}
	}
	return scanValue(decoded, conditionNames)
}

func scanValue(value any, conditionNames map[string]struct{}) error {
	switch v := value.(type) {
	case map[string]any:
		for field, inner := range v {
			if field == "condition" || field == "condition_name" {
				return &runner.InvariantError{
					Invariant: runner.InvariantBlindSeparation,
					Detail:    fmt.Sprintf("blind artifact carries field %q", field),
				}
			}
			if text, ok := inner.(string); ok {
				if _, leaked := conditionNames[text]; leaked {
					return &runner.InvariantError{
						Invariant: runner.InvariantBlindSeparation,
						Detail:    fmt.Sprintf("blind artifact field %q holds condition name %q", field, text),
					}
				}
			}
			if err := scanValue(inner, conditionNames); err != nil {
				return err
			}
		}
	case []any:
		for _, inner := range v {
			if err := scanValue(inner, conditionNames); err != nil {
				return err
			}
		}
	}
	return nil
}

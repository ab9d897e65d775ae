// Package artifact defines the self-describing envelope shared by every
// persisted record set. Each file names its kind and the run it belongs
// to so later phases can check they were handed matching inputs.
package artifact

import (
	"encoding/json"
	"fmt"
	"os"
)

// Artifact kinds.
const (
	KindRawResults = "raw_results"
	KindBlindSet   = "blind_set"
	KindBlindKey   = "blind_key"
	KindScores     = "scores"
	KindReport     = "report"
)

// Header identifies an artifact's kind and run.
type Header struct {
	Artifact string `json:"artifact"`
	RunID    string `json:"run_id"`
}

// Check validates an artifact header against the expected kind.
func (h Header) Check(kind string) error {
	if h.Artifact != kind {
		return fmt.Errorf("expected %s artifact, got %q", kind, h.Artifact)
	}
	if h.RunID == "" {
		return fmt.Errorf("%s artifact is missing a run id", kind)
	}
	return nil
}

// SameRun verifies all headers belong to one run.
func SameRun(headers ...Header) error {
	if len(headers) == 0 {
		return nil
	}
	runID := headers[0].RunID
	for _, h := range headers[1:] {
		if h.RunID != runID {
			return fmt.Errorf("artifact run mismatch: %s (%s) vs %s (%s)",
				headers[0].Artifact, runID, h.Artifact, h.RunID)
		}
	}
	return nil
}

// SaveJSON writes an artifact as pretty JSON.
func SaveJSON(path string, payload any) error {
	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal artifact: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("write artifact: %w", err)
	}
	return nil
}

// LoadJSON reads an artifact file into the provided payload.
func LoadJSON(path string, payload any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read artifact: %w", err)
	}
	if err := json.Unmarshal(data, payload); err != nil {
		return fmt.Errorf("parse artifact %s: %w", path, err)
	}
	return nil
}

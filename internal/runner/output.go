package runner

import (
	"fmt"
	"path/filepath"
	"strings"
)

// OutputPaths describes filesystem locations for one run's artifacts.
type OutputPaths struct {
	Root  string
	RunID string
}

// NewOutputPaths validates and constructs output paths metadata.
func NewOutputPaths(root, runID string) (OutputPaths, error) {
	if strings.TrimSpace(root) == "" {
		return OutputPaths{}, fmt.Errorf("output root is empty")
	}
	if strings.TrimSpace(runID) == "" {
		return OutputPaths{}, fmt.Errorf("run ID is empty")
	}
	return OutputPaths{Root: root, RunID: runID}, nil
}

// PathsForRunDir reconstructs output paths from an existing run directory.
func PathsForRunDir(dir string) OutputPaths {
	return OutputPaths{Root: filepath.Dir(dir), RunID: filepath.Base(dir)}
}

// RunDir returns the directory holding all artifacts for the run.
func (o OutputPaths) RunDir() string {
	return filepath.Join(o.Root, o.RunID)
}

// ResultsPath returns the path to the raw result log.
func (o OutputPaths) ResultsPath() string {
	return filepath.Join(o.RunDir(), "results.jsonl")
}

// BlindPath returns the path to the scorer-facing blind artifact.
func (o OutputPaths) BlindPath() string {
	return filepath.Join(o.RunDir(), "blind.json")
}

// KeyPath returns the path to the concealed condition key.
func (o OutputPaths) KeyPath() string {
	return filepath.Join(o.RunDir(), "key.json")
}

// ScoresPath returns the path to the blind score file.
func (o OutputPaths) ScoresPath() string {
	return filepath.Join(o.RunDir(), "scores.json")
}

// ReportPath returns the path to the reconciled report.
func (o OutputPaths) ReportPath() string {
	return filepath.Join(o.RunDir(), "report.json")
}

// DatabasePath returns the path to the analytical database.
func (o OutputPaths) DatabasePath() string {
	return filepath.Join(o.RunDir(), "arete.duckdb")
}

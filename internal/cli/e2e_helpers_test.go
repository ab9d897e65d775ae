package cli

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"arete/internal/blind"
	"arete/internal/runner"
	"arete/internal/score"
)

const testRunID = "20240101T000000Z-abc123"

const testConfig = `version: 1

experiment:
  output_dir: ./results
  problems_file: ./problems.yml
  problem_count: 1
  trials: 1
  workers: 1

model:
  provider: openrouter
  name: test-model
  temperature: 0.7

sandbox:
  command: [python3]
  timeout_seconds: 5
`

const testProblems = `version: 1

problems:
  - id: p1
    entry_point: f
    prompt: |
      def f():
          """Return one."""
    test_code: |
      def check(candidate):
          assert candidate() == 1
`

func writeFile(path, body string) error {
	return os.WriteFile(path, []byte(body), 0o644)
}

// writeConfigFixture lays out a minimal experiment directory and
// returns the config path.
func writeConfigFixture(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	specPath := filepath.Join(dir, ".arete.yml")
	if err := os.WriteFile(specPath, []byte(testConfig), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "problems.yml"), []byte(testProblems), 0o644); err != nil {
		t.Fatalf("write problems: %v", err)
	}
	return specPath
}

// fakeRawResults builds one passing trial per condition for problem p1.
func fakeRawResults(conditions []string) []runner.RawResult {
	results := make([]runner.RawResult, 0, len(conditions))
	for _, cond := range conditions {
		results = append(results, runner.RawResult{
			RunID:      testRunID,
			Condition:  cond,
			ProblemID:  "p1",
			Trial:      1,
			Completion: "def f():\n    return 1",
			Outcome:    runner.OutcomePass,
			Timestamp:  time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		})
	}
	return results
}

// writeRunArtifacts derives and writes blind.json and key.json for the
// given raw results, returning the run directory.
func writeRunArtifacts(t *testing.T, raw []runner.RawResult) string {
	t.Helper()
	runDir := filepath.Join(t.TempDir(), testRunID)
	if err := os.MkdirAll(runDir, 0o755); err != nil {
		t.Fatalf("create run dir: %v", err)
	}
	set, key, err := blind.Derive(raw, map[string]string{"p1": "def f():"}, 7)
	if err != nil {
		t.Fatalf("Derive: %v", err)
	}
	paths := runner.PathsForRunDir(runDir)
	if err := blind.SaveSet(paths.BlindPath(), set); err != nil {
		t.Fatalf("SaveSet: %v", err)
	}
	if err := blind.SaveKey(paths.KeyPath(), key); err != nil {
		t.Fatalf("SaveKey: %v", err)
	}
	return runDir
}

// writeFullScores rates every key entry with a flat rating.
func writeFullScores(t *testing.T, runDir string, value int) {
	t.Helper()
	paths := runner.PathsForRunDir(runDir)
	key, err := blind.LoadKey(paths.KeyPath())
	if err != nil {
		t.Fatalf("LoadKey: %v", err)
	}
	scores := score.NewFile(key.RunID)
	for _, entry := range key.Entries {
		scores.Scores[entry.BlindID] = score.Rating{
			EdgeCases:     value,
			ErrorHandling: value,
			Idiomaticity:  value,
			Documentation: value,
			ShipIt:        value,
		}
	}
	if err := score.Save(paths.ScoresPath(), scores); err != nil {
		t.Fatalf("Save scores: %v", err)
	}
}

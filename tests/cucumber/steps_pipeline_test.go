package cucumber

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"arete/internal/blind"
	"arete/internal/condition"
	"arete/internal/runner"
	"arete/internal/score"
)

const featureRunID = "20240101T000000Z-abc123"

func (s *featureState) anEmptyProjectDirectory() error {
	dir, err := os.MkdirTemp("", "arete-feature-*")
	if err != nil {
		return fmt.Errorf("create project dir: %w", err)
	}
	wd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("getwd: %w", err)
	}
	s.previousWD = wd
	s.projectDir = dir
	return os.Chdir(dir)
}

func (s *featureState) aConfigWithBrokenProblems() error {
	config := `version: 1

experiment:
  output_dir: ./results
  problems_file: ./problems.yml
  trials: 1
  workers: 1

model:
  provider: openrouter
  name: test-model

sandbox:
  command: [python3]
  timeout_seconds: 5
`
	problems := `version: 1

problems:
  - id: p1
    entry_point: f
    prompt: |
      def f():
          """Return one."""
`
	if err := os.WriteFile(filepath.Join(s.projectDir, ".arete.yml"), []byte(config), 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return os.WriteFile(filepath.Join(s.projectDir, "problems.yml"), []byte(problems), 0o644)
}

func (s *featureState) aCompletedRunDirectory() error {
	if s.projectDir == "" {
		if err := s.anEmptyProjectDirectory(); err != nil {
			return err
		}
	}
	var raw []runner.RawResult
	for _, cond := range condition.Names() {
		for trial := 0; trial < 2; trial++ {
			raw = append(raw, runner.RawResult{
				RunID:      featureRunID,
				Condition:  cond,
				ProblemID:  "p1",
				Trial:      trial,
				Completion: fmt.Sprintf("def f():\n    return %d", trial),
				Outcome:    runner.OutcomePass,
				Timestamp:  time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
			})
		}
	}

	set, key, err := blind.Derive(raw, map[string]string{"p1": "def f():"}, 11)
	if err != nil {
		return fmt.Errorf("derive blind set: %w", err)
	}
	runDir := filepath.Join(s.projectDir, "results", featureRunID)
	if err := os.MkdirAll(runDir, 0o755); err != nil {
		return fmt.Errorf("create run dir: %w", err)
	}
	paths := runner.PathsForRunDir(runDir)
	if err := blind.SaveSet(paths.BlindPath(), set); err != nil {
		return fmt.Errorf("save blind set: %w", err)
	}
	if err := blind.SaveKey(paths.KeyPath(), key); err != nil {
		return fmt.Errorf("save key: %w", err)
	}
	s.runDir = runDir
	return nil
}

func (s *featureState) externalScores(drop int) error {
	paths := runner.PathsForRunDir(s.runDir)
	key, err := blind.LoadKey(paths.KeyPath())
	if err != nil {
		return fmt.Errorf("load key: %w", err)
	}
	scores := score.NewFile(key.RunID)
	for i, entry := range key.Entries {
		if i == drop {
			continue
		}
		scores.Scores[entry.BlindID] = score.Rating{
			EdgeCases:     3,
			ErrorHandling: 3,
			Idiomaticity:  3,
			Documentation: 3,
			ShipIt:        3,
		}
	}
	s.importPath = filepath.Join(s.projectDir, "external-scores.json")
	return score.Save(s.importPath, scores)
}

func (s *featureState) aCompleteExternalScoreFile() error {
	return s.externalScores(-1)
}

func (s *featureState) anExternalScoreFileMissingOneItem() error {
	return s.externalScores(0)
}

func (s *featureState) theBlindSetHasBeenTampered() error {
	paths := runner.PathsForRunDir(s.runDir)
	data, err := os.ReadFile(paths.BlindPath())
	if err != nil {
		return fmt.Errorf("read blind set: %w", err)
	}
	var doc map[string]any
	if err := json.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("parse blind set: %w", err)
	}
	items, ok := doc["items"].([]any)
	if !ok || len(items) == 0 {
		return fmt.Errorf("blind set has no items")
	}
	items[0].(map[string]any)["condition"] = "greek_arete"
	tampered, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("marshal blind set: %w", err)
	}
	return os.WriteFile(paths.BlindPath(), tampered, 0o644)
}

func (s *featureState) iImportTheScores() error {
	return s.iRunCommand(fmt.Sprintf("arete score --dir %s --import %s", s.runDir, s.importPath))
}

func (s *featureState) iRevealTheRun() error {
	return s.iRunCommand(fmt.Sprintf("arete reveal --dir %s", s.runDir))
}

package cli

import (
	"bytes"
	"io"
	"path/filepath"
	"strings"
	"testing"

	"arete/internal/blind"
	"arete/internal/runner"
	"arete/internal/score"
)

func TestScoreImportMergesScores(t *testing.T) {
	runDir := writeRunArtifacts(t, fakeRawResults([]string{"control", "greek_arete"}))
	paths := runner.PathsForRunDir(runDir)

	key, err := blind.LoadKey(paths.KeyPath())
	if err != nil {
		t.Fatalf("LoadKey: %v", err)
	}
	imported := score.NewFile(testRunID)
	for _, entry := range key.Entries {
		imported.Scores[entry.BlindID] = score.Rating{EdgeCases: 3, ErrorHandling: 3, Idiomaticity: 3, Documentation: 3, ShipIt: 3}
	}
	importPath := filepath.Join(t.TempDir(), "external.json")
	if err := score.Save(importPath, imported); err != nil {
		t.Fatalf("Save import: %v", err)
	}

	cmd := findCommand("score")
	var stdout, stderr bytes.Buffer
	code := cmd.Run([]string{"--dir", runDir, "--import", importPath}, &stdout, &stderr)
	if code != ExitOK {
		t.Fatalf("exit = %d, stderr: %s", code, stderr.String())
	}
	if !strings.Contains(stdout.String(), "Imported 2 scores") {
		t.Fatalf("stdout = %q", stdout.String())
	}

	merged, err := score.Load(paths.ScoresPath())
	if err != nil {
		t.Fatalf("Load merged: %v", err)
	}
	if len(merged.Scores) != 2 {
		t.Fatalf("merged scores = %d, want 2", len(merged.Scores))
	}
}

func TestScoreImportRejectsForeignRun(t *testing.T) {
	runDir := writeRunArtifacts(t, fakeRawResults([]string{"control"}))

	imported := score.NewFile("20240909T000000Z-ffffff")
	imported.Scores["whatever"] = score.Rating{EdgeCases: 3, ErrorHandling: 3, Idiomaticity: 3, Documentation: 3, ShipIt: 3}
	importPath := filepath.Join(t.TempDir(), "external.json")
	if err := score.Save(importPath, imported); err != nil {
		t.Fatalf("Save import: %v", err)
	}

	cmd := findCommand("score")
	var stdout, stderr bytes.Buffer
	code := cmd.Run([]string{"--dir", runDir, "--import", importPath}, &stdout, &stderr)
	if code != ExitError {
		t.Fatalf("exit = %d, want %d", code, ExitError)
	}
	if !strings.Contains(stderr.String(), "belong to run") {
		t.Fatalf("stderr = %q", stderr.String())
	}
}

func TestScoreImportRejectsUnknownBlindIDs(t *testing.T) {
	runDir := writeRunArtifacts(t, fakeRawResults([]string{"control"}))

	imported := score.NewFile(testRunID)
	imported.Scores["bogus-id"] = score.Rating{EdgeCases: 3, ErrorHandling: 3, Idiomaticity: 3, Documentation: 3, ShipIt: 3}
	importPath := filepath.Join(t.TempDir(), "external.json")
	if err := score.Save(importPath, imported); err != nil {
		t.Fatalf("Save import: %v", err)
	}

	cmd := findCommand("score")
	var stdout, stderr bytes.Buffer
	code := cmd.Run([]string{"--dir", runDir, "--import", importPath}, &stdout, &stderr)
	if code != ExitError {
		t.Fatalf("exit = %d, want %d", code, ExitError)
	}
	if !strings.Contains(stderr.String(), "bogus-id") {
		t.Fatalf("stderr = %q", stderr.String())
	}
}

func TestScoreInteractiveNeedsTerminal(t *testing.T) {
	runDir := writeRunArtifacts(t, fakeRawResults([]string{"control"}))

	origIsTerminal := isTerminal
	isTerminal = func(io.Writer) bool { return false }
	t.Cleanup(func() { isTerminal = origIsTerminal })

	cmd := findCommand("score")
	var stdout, stderr bytes.Buffer
	code := cmd.Run([]string{"--dir", runDir}, &stdout, &stderr)
	if code != ExitError {
		t.Fatalf("exit = %d, want %d", code, ExitError)
	}
	if !strings.Contains(stderr.String(), "terminal") {
		t.Fatalf("stderr = %q", stderr.String())
	}
}

package scoring

import (
	"strings"
	"testing"

	"arete/internal/artifact"
	"arete/internal/blind"
	"arete/internal/score"
)

func testSet() blind.Set {
	return blind.Set{
		Header: artifact.Header{Artifact: artifact.KindBlindSet, RunID: "20240101T000000Z-abc123"},
		Items: []blind.Item{
			{BlindID: "b-1", ProblemID: "p1", Prompt: "def f():", Completion: "def f():\n    return 1"},
			{BlindID: "b-2", ProblemID: "p2", Prompt: "def g():", Completion: "def g():\n    return 2"},
			{BlindID: "b-3", ProblemID: "p1", Prompt: "def f():", Completion: "def f():\n    return 3"},
		},
	}
}

func TestNewStateSkipsAlreadyScored(t *testing.T) {
	scores := score.NewFile("20240101T000000Z-abc123")
	scores.Scores["b-2"] = score.Rating{EdgeCases: 3, ErrorHandling: 3, Idiomaticity: 3, Documentation: 3, ShipIt: 3}

	state := NewState(testSet(), scores)
	if state.Remaining() != 2 {
		t.Fatalf("remaining = %d, want 2", state.Remaining())
	}
	item, ok := state.Current()
	if !ok || item.BlindID != "b-1" {
		t.Fatalf("current = %+v, want b-1", item)
	}
}

func TestSubmitAdvancesAndRecords(t *testing.T) {
	state := NewState(testSet(), score.NewFile("20240101T000000Z-abc123"))

	state = Submit(state, "3,2,4,3,5")
	if state.ErrLine != "" {
		t.Fatalf("unexpected error line %q", state.ErrLine)
	}
	rating, ok := state.Scores.Scores["b-1"]
	if !ok || rating.Total() != 17 {
		t.Fatalf("b-1 rating = %+v", rating)
	}
	if item, _ := state.Current(); item.BlindID != "b-2" {
		t.Fatalf("did not advance to b-2")
	}
}

func TestSubmitRejectsBadLineWithoutAdvancing(t *testing.T) {
	state := NewState(testSet(), score.NewFile("20240101T000000Z-abc123"))

	state = Submit(state, "not scores")
	if state.ErrLine == "" {
		t.Fatalf("expected an error line")
	}
	if item, _ := state.Current(); item.BlindID != "b-1" {
		t.Fatalf("advanced past an unscored item")
	}
	if len(state.Scores.Scores) != 0 {
		t.Fatalf("recorded a rating for invalid input")
	}
}

func TestSkipAndCompletion(t *testing.T) {
	state := NewState(testSet(), score.NewFile("20240101T000000Z-abc123"))

	state = Submit(state, "3,3,3,3,3")
	state = Skip(state)
	state = Submit(state, "4,4,4,4,4")

	if !state.Done {
		t.Fatalf("session should be done")
	}
	if state.Skipped != 1 {
		t.Fatalf("skipped = %d, want 1", state.Skipped)
	}
	if len(state.Scores.Scores) != 2 {
		t.Fatalf("scored = %d, want 2", len(state.Scores.Scores))
	}
}

func TestRenderNeverShowsConditionNames(t *testing.T) {
	state := NewState(testSet(), score.NewFile("20240101T000000Z-abc123"))
	out := renderSession(state, "> ", true)
	for _, name := range []string{"control", "greek_arete", "japanese_shokunin", "common_english", "combined"} {
		if strings.Contains(out, name) {
			t.Errorf("scoring screen leaks condition %q", name)
		}
	}
	if !strings.Contains(out, "b-1") {
		t.Errorf("scoring screen missing blind id:\n%s", out)
	}
}

// Package scoring provides the interactive terminal UI for rating
// blind items. The scorer only ever sees blind ids and completions.
package scoring

import (
	"arete/internal/blind"
	"arete/internal/score"
)

// State holds the scoring session independent of terminal plumbing.
type State struct {
	Items   []blind.Item
	Scores  score.File
	Index   int
	Skipped int
	ErrLine string
	Done    bool
}

// NewState builds a session over the unscored items of a blind set,
// preserving the set's presentation order. Already scored items are
// skipped so an interrupted session resumes where it stopped.
func NewState(set blind.Set, scores score.File) State {
	var remaining []blind.Item
	for _, item := range set.Items {
		if _, ok := scores.Scores[item.BlindID]; ok {
			continue
		}
		remaining = append(remaining, item)
	}
	return State{Items: remaining, Scores: scores, Done: len(remaining) == 0}
}

// Current returns the item under review.
func (s State) Current() (blind.Item, bool) {
	if s.Index >= len(s.Items) {
		return blind.Item{}, false
	}
	return s.Items[s.Index], true
}

// Scored returns how many items have a rating, including ones scored
// in earlier sessions.
func (s State) Scored() int {
	return len(s.Scores.Scores)
}

// Remaining returns how many items still need a rating this session.
func (s State) Remaining() int {
	return len(s.Items) - s.Index
}

// Submit parses a score line for the current item and advances.
func Submit(s State, line string) State {
	item, ok := s.Current()
	if !ok {
		return s
	}
	rating, err := score.ParseLine(line)
	if err != nil {
		s.ErrLine = err.Error()
		return s
	}
	s.Scores.Scores[item.BlindID] = rating
	s.ErrLine = ""
	return advance(s)
}

// Skip moves past the current item without scoring it.
func Skip(s State) State {
	if _, ok := s.Current(); !ok {
		return s
	}
	s.Skipped++
	s.ErrLine = ""
	return advance(s)
}

func advance(s State) State {
	s.Index++
	if s.Index >= len(s.Items) {
		s.Done = true
	}
	return s
}

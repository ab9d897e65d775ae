// Package blind derives the two companion artifacts of a run: the
// scorer-facing blind set, stripped of condition identity, and the
// concealed key that restores it. The whole experiment's validity rests
// on the separation between the two.
package blind

import (
	"fmt"
	"math/rand"
	"sort"

	"github.com/google/uuid"

	"arete/internal/artifact"
	"arete/internal/runner"
)

// Item is one scorer-facing sample. It carries the problem context a
// scorer needs but never the condition that produced the completion.
type Item struct {
	BlindID    string `json:"blind_id"`
	ProblemID  string `json:"problem_id"`
	Prompt     string `json:"prompt"`
	Completion string `json:"completion"`
}

// Set is the blind artifact: items in seeded-random order.
type Set struct {
	artifact.Header
	Items []Item `json:"items"`
}

// KeyEntry restores the condition identity of one blind item.
type KeyEntry struct {
	BlindID   string         `json:"blind_id"`
	Condition string         `json:"condition"`
	ProblemID string         `json:"problem_id"`
	Trial     int            `json:"trial"`
	Outcome   runner.Outcome `json:"outcome"`
}

// Key is the concealed artifact. It records the shuffle seed so the
// permutation is reproducible for debugging; the seed never appears in
// the blind set. Entries are ordered by blind id, which carries no
// information about the original trial order.
type Key struct {
	artifact.Header
	ShuffleSeed int64      `json:"shuffle_seed"`
	Entries     []KeyEntry `json:"entries"`
}

// Derive builds the blind set and key from a run's raw results. Blind
// ids are fresh random tokens, never derived from any input field, and
// item order is a uniform seeded permutation of the raw emission order.
func Derive(results []runner.RawResult, prompts map[string]string, seed int64) (Set, Key, error) {
	return deriveWithIDs(results, prompts, seed, uuid.NewString)
}

func deriveWithIDs(results []runner.RawResult, prompts map[string]string, seed int64, newID func() string) (Set, Key, error) {
	if len(results) == 0 {
		return Set{}, Key{}, fmt.Errorf("no results to blind")
	}
	runID := results[0].RunID
	items := make([]Item, 0, len(results))
	entries := make([]KeyEntry, 0, len(results))
	seen := make(map[string]struct{}, len(results))
	for _, result := range results {
		if result.RunID != runID {
			return Set{}, Key{}, fmt.Errorf("mixed run ids in results: %s vs %s", runID, result.RunID)
		}
		blindID := newID()
		if _, dup := seen[blindID]; dup {
			return Set{}, Key{}, fmt.Errorf("duplicate blind id %s", blindID)
		}
		seen[blindID] = struct{}{}
		items = append(items, Item{
			BlindID:    blindID,
			ProblemID:  result.ProblemID,
			Prompt:     prompts[result.ProblemID],
			Completion: result.Completion,
		})
		entries = append(entries, KeyEntry{
			BlindID:   blindID,
			Condition: result.Condition,
			ProblemID: result.ProblemID,
			Trial:     result.Trial,
			Outcome:   result.Outcome,
		})
	}

	rng := rand.New(rand.NewSource(seed))
	rng.Shuffle(len(items), func(i, j int) {
		items[i], items[j] = items[j], items[i]
	})

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].BlindID < entries[j].BlindID
	})

	set := Set{
		Header: artifact.Header{Artifact: artifact.KindBlindSet, RunID: runID},
		Items:  items,
	}
	key := Key{
		Header:      artifact.Header{Artifact: artifact.KindBlindKey, RunID: runID},
		ShuffleSeed: seed,
		Entries:     entries,
	}
	if err := VerifyBijection(set, key); err != nil {
		return Set{}, Key{}, err
	}
	return set, key, nil
}

// VerifyBijection checks every blind id appears exactly once in both
// artifacts.
func VerifyBijection(set Set, key Key) error {
	if len(set.Items) != len(key.Entries) {
		return &runner.InvariantError{
			Invariant: runner.InvariantBlindSeparation,
			Detail:    fmt.Sprintf("blind set has %d items but key has %d entries", len(set.Items), len(key.Entries)),
		}
	}
	inKey := make(map[string]struct{}, len(key.Entries))
	for _, entry := range key.Entries {
		if _, dup := inKey[entry.BlindID]; dup {
			return &runner.InvariantError{
				Invariant: runner.InvariantBlindSeparation,
				Detail:    fmt.Sprintf("blind id %s appears twice in key", entry.BlindID),
			}
		}
		inKey[entry.BlindID] = struct{}{}
	}
	seen := make(map[string]struct{}, len(set.Items))
	for _, item := range set.Items {
		if _, dup := seen[item.BlindID]; dup {
			return &runner.InvariantError{
				Invariant: runner.InvariantBlindSeparation,
				Detail:    fmt.Sprintf("blind id %s appears twice in blind set", item.BlindID),
			}
		}
		seen[item.BlindID] = struct{}{}
		if _, ok := inKey[item.BlindID]; !ok {
			return &runner.InvariantError{
				Invariant: runner.InvariantBlindSeparation,
				Detail:    fmt.Sprintf("blind id %s missing from key", item.BlindID),
			}
		}
	}
	return nil
}

// EntryByID indexes key entries by blind id.
func (k Key) EntryByID() map[string]KeyEntry {
	out := make(map[string]KeyEntry, len(k.Entries))
	for _, entry := range k.Entries {
		out[entry.BlindID] = entry
	}
	return out
}

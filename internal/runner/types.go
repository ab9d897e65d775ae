package runner

import (
	"sort"
	"time"

	"arete/internal/condition"
)

// Outcome is the tri-state verdict of a trial. A model-call failure that
// never produced a candidate is unknown; a candidate that ran and did not
// pass (including on timeout) is fail.
type Outcome string

const (
	OutcomePass    Outcome = "pass"
	OutcomeFail    Outcome = "fail"
	OutcomeUnknown Outcome = "unknown"
)

// FailurePlaceholder marks the completion text of a trial whose model
// call never succeeded.
const FailurePlaceholder = "<completion unavailable>"

// Coordinate identifies one trial: a (condition, problem, trial index)
// triple. Trial indexes distinguish repeated samples of the same pair.
type Coordinate struct {
	Condition string `json:"condition"`
	ProblemID string `json:"problem_id"`
	Trial     int    `json:"trial"`
}

// RawResult is the record of a single trial, created exactly once and
// immutable after creation.
type RawResult struct {
	RunID      string    `json:"run_id"`
	Condition  string    `json:"condition"`
	ProblemID  string    `json:"problem_id"`
	Trial      int       `json:"trial"`
	Completion string    `json:"completion"`
	Outcome    Outcome   `json:"outcome"`
	Detail     string    `json:"detail,omitempty"`
	Timestamp  time.Time `json:"timestamp"`
}

// Coordinate returns the trial coordinate of a result.
func (r RawResult) Coordinate() Coordinate {
	return Coordinate{Condition: r.Condition, ProblemID: r.ProblemID, Trial: r.Trial}
}

// SortResults orders results condition-major (canonical condition order,
// then problem id, then trial index), matching the deterministic emission
// order regardless of concurrent completion order.
func SortResults(results []RawResult) {
	sort.SliceStable(results, func(i, j int) bool {
		a, b := results[i], results[j]
		ci, cj := condition.Index(a.Condition), condition.Index(b.Condition)
		if ci != cj {
			return ci < cj
		}
		if a.ProblemID != b.ProblemID {
			return a.ProblemID < b.ProblemID
		}
		return a.Trial < b.Trial
	})
}

// Results is the outcome of a run phase.
type Results struct {
	RunID       string      `json:"run_id"`
	Model       string      `json:"model"`
	Temperature float64     `json:"temperature"`
	Trials      int         `json:"trials"`
	Conditions  []string    `json:"conditions"`
	ProblemIDs  []string    `json:"problem_ids"`
	StartedAt   time.Time   `json:"started_at"`
	FinishedAt  time.Time   `json:"finished_at"`
	Raw         []RawResult `json:"raw"`
	Summary     RunSummary  `json:"summary"`
}

// RunSummary aggregates trial outcomes for the whole run. PassRate is
// computed over evaluated trials only; unknown trials are counted
// separately as failed-to-run.
type RunSummary struct {
	TrialsTotal int     `json:"trials_total"`
	Passed      int     `json:"passed"`
	Failed      int     `json:"failed"`
	Unknown     int     `json:"unknown"`
	PassRate    float64 `json:"pass_rate"`
}

func summarize(results []RawResult) RunSummary {
	summary := RunSummary{TrialsTotal: len(results)}
	for _, result := range results {
		switch result.Outcome {
		case OutcomePass:
			summary.Passed++
		case OutcomeFail:
			summary.Failed++
		default:
			summary.Unknown++
		}
	}
	evaluated := summary.Passed + summary.Failed
	if evaluated > 0 {
		summary.PassRate = float64(summary.Passed) / float64(evaluated)
	}
	return summary
}

package runner

import (
	"fmt"
	"strings"

	"arete/internal/condition"
	"arete/internal/problem"
)

// Trial couples a coordinate with the material needed to execute it.
type Trial struct {
	Coord   Coordinate
	Cond    condition.Condition
	Problem problem.Problem
	Prompt  string
}

// BuildPlan enumerates the full cross product of conditions, problems,
// and trial indexes in deterministic condition-major order.
func BuildPlan(conditions []condition.Condition, problems []problem.Problem, nTrials int) ([]Trial, error) {
	if len(conditions) == 0 {
		return nil, fmt.Errorf("no conditions configured")
	}
	if len(problems) == 0 {
		return nil, fmt.Errorf("no problems selected")
	}
	if nTrials < 1 {
		return nil, fmt.Errorf("trial count must be at least 1, got %d", nTrials)
	}
	plan := make([]Trial, 0, len(conditions)*len(problems)*nTrials)
	for _, cond := range conditions {
		for _, item := range problems {
			for trial := 0; trial < nTrials; trial++ {
				plan = append(plan, Trial{
					Coord:   Coordinate{Condition: cond.Name, ProblemID: item.ID, Trial: trial},
					Cond:    cond,
					Problem: item,
					Prompt:  buildTrialPrompt(cond, item),
				})
			}
		}
	}
	return plan, nil
}

// buildTrialPrompt constructs the conditioned prompt for one trial.
func buildTrialPrompt(cond condition.Condition, item problem.Problem) string {
	var builder strings.Builder
	builder.WriteString("Complete the following Python function:\n\n")
	builder.WriteString(item.Prompt)
	return cond.Apply(builder.String())
}

// FilterSatisfied drops trials whose coordinates already have a result,
// so an interrupted run can resume without duplicating work.
func FilterSatisfied(plan []Trial, satisfied map[Coordinate]struct{}) []Trial {
	if len(satisfied) == 0 {
		return plan
	}
	pending := make([]Trial, 0, len(plan))
	for _, trial := range plan {
		if _, done := satisfied[trial.Coord]; done {
			continue
		}
		pending = append(pending, trial)
	}
	return pending
}

// VerifyComplete checks the result set is exactly the configured cross
// product: no duplicate coordinates, no omissions.
func VerifyComplete(results []RawResult, conditions []condition.Condition, problems []problem.Problem, nTrials int) error {
	expected := len(conditions) * len(problems) * nTrials
	seen := make(map[Coordinate]struct{}, len(results))
	for _, result := range results {
		coord := result.Coordinate()
		if _, dup := seen[coord]; dup {
			return &InvariantError{
				Invariant: InvariantTrialCompleteness,
				Detail:    fmt.Sprintf("duplicate trial %s/%s/%d", coord.Condition, coord.ProblemID, coord.Trial),
			}
		}
		seen[coord] = struct{}{}
	}
	for _, cond := range conditions {
		for _, item := range problems {
			for trial := 0; trial < nTrials; trial++ {
				coord := Coordinate{Condition: cond.Name, ProblemID: item.ID, Trial: trial}
				if _, ok := seen[coord]; !ok {
					return &InvariantError{
						Invariant: InvariantTrialCompleteness,
						Detail:    fmt.Sprintf("missing trial %s/%s/%d", coord.Condition, coord.ProblemID, coord.Trial),
					}
				}
			}
		}
	}
	if len(seen) != expected {
		return &InvariantError{
			Invariant: InvariantTrialCompleteness,
			Detail:    fmt.Sprintf("expected %d trials, found %d", expected, len(seen)),
		}
	}
	return nil
}

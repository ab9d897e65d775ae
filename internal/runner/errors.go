package runner

import "fmt"

// Invariant names for structural failures. These abort the offending
// phase rather than degrading a single record.
const (
	InvariantTrialCompleteness = "trial_completeness"
	InvariantBlindSeparation   = "blind_separation"
)

// InvariantError reports a structural violation in a run's record set.
type InvariantError struct {
	Invariant string
	Detail    string
}

// Error names the violated invariant and its diagnostic.
func (e *InvariantError) Error() string {
	return fmt.Sprintf("invariant %s violated: %s", e.Invariant, e.Detail)
}

package reconcile

import (
	"fmt"
	"strings"
)

// MissingScoreError reports blind ids that were never scored.
// No report is produced while any item remains unscored.
type MissingScoreError struct {
	BlindIDs []string
}

func (e *MissingScoreError) Error() string {
	return fmt.Sprintf("missing scores for %d blind items: %s", len(e.BlindIDs), strings.Join(e.BlindIDs, ", "))
}

// UnknownBlindIDError reports scored blind ids absent from the key.
type UnknownBlindIDError struct {
	BlindIDs []string
}

func (e *UnknownBlindIDError) Error() string {
	return fmt.Sprintf("scores reference %d unknown blind ids: %s", len(e.BlindIDs), strings.Join(e.BlindIDs, ", "))
}

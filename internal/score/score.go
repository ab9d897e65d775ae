// Package score defines the blind quality ratings produced by an
// external scorer, keyed by blind id only.
package score

import (
	"fmt"
	"strconv"
	"strings"

	"arete/internal/artifact"
)

// Dimension names, in rubric order. Every rating carries all five.
var Dimensions = []string{"edge_cases", "error_handling", "idiomaticity", "documentation", "ship_it"}

// Rating bounds.
const (
	MinRating = 1
	MaxRating = 5
)

// Rating is one scorer's judgment of a single blind item.
type Rating struct {
	EdgeCases     int    `json:"edge_cases"`
	ErrorHandling int    `json:"error_handling"`
	Idiomaticity  int    `json:"idiomaticity"`
	Documentation int    `json:"documentation"`
	ShipIt        int    `json:"ship_it"`
	Note          string `json:"note,omitempty"`
}

// Values returns the dimension scores in rubric order.
func (r Rating) Values() []int {
	return []int{r.EdgeCases, r.ErrorHandling, r.Idiomaticity, r.Documentation, r.ShipIt}
}

// Dimension returns the score for a named dimension.
func (r Rating) Dimension(name string) int {
	switch name {
	case "edge_cases":
		return r.EdgeCases
	case "error_handling":
		return r.ErrorHandling
	case "idiomaticity":
		return r.Idiomaticity
	case "documentation":
		return r.Documentation
	case "ship_it":
		return r.ShipIt
	default:
		return 0
	}
}

// Total sums all dimension scores (maximum 25).
func (r Rating) Total() int {
	total := 0
	for _, value := range r.Values() {
		total += value
	}
	return total
}

// Validate checks every dimension is within bounds.
func (r Rating) Validate() error {
	for i, value := range r.Values() {
		if value < MinRating || value > MaxRating {
			return fmt.Errorf("%s must be between %d and %d, got %d", Dimensions[i], MinRating, MaxRating, value)
		}
	}
	return nil
}

// ParseLine parses a comma-separated five-score entry such as "3,2,4,3,3".
func ParseLine(line string) (Rating, error) {
	parts := strings.Split(strings.TrimSpace(line), ",")
	if len(parts) != len(Dimensions) {
		return Rating{}, fmt.Errorf("need exactly %d scores, got %d", len(Dimensions), len(parts))
	}
	values := make([]int, len(parts))
	for i, part := range parts {
		value, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			return Rating{}, fmt.Errorf("score %d is not a number: %q", i+1, part)
		}
		values[i] = value
	}
	rating := Rating{
		EdgeCases:     values[0],
		ErrorHandling: values[1],
		Idiomaticity:  values[2],
		Documentation: values[3],
		ShipIt:        values[4],
	}
	if err := rating.Validate(); err != nil {
		return Rating{}, err
	}
	return rating, nil
}

// File is the persisted scores artifact, keyed by blind id.
type File struct {
	artifact.Header
	Scores map[string]Rating `json:"scores"`
}

// NewFile creates an empty scores artifact for a run.
func NewFile(runID string) File {
	return File{
		Header: artifact.Header{Artifact: artifact.KindScores, RunID: runID},
		Scores: map[string]Rating{},
	}
}

// Load reads and validates a scores artifact.
func Load(path string) (File, error) {
	var file File
	if err := artifact.LoadJSON(path, &file); err != nil {
		return File{}, err
	}
	if err := file.Check(artifact.KindScores); err != nil {
		return File{}, err
	}
	for blindID, rating := range file.Scores {
		if err := rating.Validate(); err != nil {
			return File{}, fmt.Errorf("score for %s: %w", blindID, err)
		}
	}
	if file.Scores == nil {
		file.Scores = map[string]Rating{}
	}
	return file, nil
}

// Save writes a scores artifact.
func Save(path string, file File) error {
	return artifact.SaveJSON(path, file)
}

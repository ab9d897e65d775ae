// Package reconcile joins blind scores back to their conditions and
// computes the per-condition aggregates for the final report.
package reconcile

import (
	"sort"
	"time"

	"arete/internal/artifact"
	"arete/internal/blind"
	"arete/internal/condition"
	"arete/internal/runner"
	"arete/internal/score"
)

// TrialRecord is one fully joined trial: blind id, revealed condition,
// execution outcome, and the blind quality rating.
type TrialRecord struct {
	BlindID   string         `json:"blind_id"`
	Condition string         `json:"condition"`
	ProblemID string         `json:"problem_id"`
	Trial     int            `json:"trial"`
	Outcome   runner.Outcome `json:"outcome"`
	Rating    score.Rating   `json:"rating"`
	Total     int            `json:"total"`
}

// ConditionStats aggregates all trials of one condition.
type ConditionStats struct {
	Condition      string             `json:"condition"`
	Samples        int                `json:"samples"`
	Passed         int                `json:"passed"`
	Failed         int                `json:"failed"`
	Unknown        int                `json:"unknown"`
	PassRate       float64            `json:"pass_rate"`
	DimensionMeans map[string]float64 `json:"dimension_means"`
	TotalMean      float64            `json:"total_mean"`
	TotalStdDev    float64            `json:"total_std_dev"`
}

// Comparison measures one condition against the control baseline.
type Comparison struct {
	Condition    string  `json:"condition"`
	Delta        float64 `json:"delta"`
	PercentDelta float64 `json:"percent_delta"`
	EffectSize   float64 `json:"effect_size"`
}

// ProblemStats aggregates pass rates per problem across all conditions.
type ProblemStats struct {
	ProblemID string  `json:"problem_id"`
	Passed    int     `json:"passed"`
	Evaluated int     `json:"evaluated"`
	PassRate  float64 `json:"pass_rate"`
}

// Report is the reconciled result of a run, persisted as report.json.
type Report struct {
	artifact.Header
	GeneratedAt time.Time        `json:"generated_at"`
	Conditions  []ConditionStats `json:"conditions"`
	VsControl   []Comparison     `json:"vs_control"`
	Problems    []ProblemStats   `json:"problems"`
	Best        string           `json:"best"`
	Records     []TrialRecord    `json:"records"`
}

// Reconcile joins a complete set of blind scores with the blind set and
// key. It fails if the artifacts belong to different runs, if the key
// and set disagree, if any blind item is missing a score, or if a score
// references a blind id the key does not know.
func Reconcile(scores score.File, set blind.Set, key blind.Key, now time.Time) (Report, error) {
	if err := artifact.SameRun(scores.Header, set.Header, key.Header); err != nil {
		return Report{}, err
	}
	if err := blind.VerifyBijection(set, key); err != nil {
		return Report{}, err
	}

	byID := key.EntryByID()
	var unknown []string
	for blindID := range scores.Scores {
		if _, ok := byID[blindID]; !ok {
			unknown = append(unknown, blindID)
		}
	}
	if len(unknown) > 0 {
		sort.Strings(unknown)
		return Report{}, &UnknownBlindIDError{BlindIDs: unknown}
	}

	var missing []string
	for _, entry := range key.Entries {
		if _, ok := scores.Scores[entry.BlindID]; !ok {
			missing = append(missing, entry.BlindID)
		}
	}
	if len(missing) > 0 {
		sort.Strings(missing)
		return Report{}, &MissingScoreError{BlindIDs: missing}
	}

	records := make([]TrialRecord, 0, len(key.Entries))
	for _, entry := range key.Entries {
		rating := scores.Scores[entry.BlindID]
		records = append(records, TrialRecord{
			BlindID:   entry.BlindID,
			Condition: entry.Condition,
			ProblemID: entry.ProblemID,
			Trial:     entry.Trial,
			Outcome:   entry.Outcome,
			Rating:    rating,
			Total:     rating.Total(),
		})
	}
	sort.Slice(records, func(i, j int) bool {
		a, b := records[i], records[j]
		if a.Condition != b.Condition {
			return condition.Index(a.Condition) < condition.Index(b.Condition)
		}
		if a.ProblemID != b.ProblemID {
			return a.ProblemID < b.ProblemID
		}
		return a.Trial < b.Trial
	})

	report := Report{
		Header:      artifact.Header{Artifact: artifact.KindReport, RunID: key.RunID},
		GeneratedAt: now.UTC(),
		Records:     records,
	}
	report.Conditions = conditionStats(records)
	report.VsControl = compareToControl(report.Conditions)
	report.Problems = problemStats(records)
	report.Best = bestCondition(report.Conditions)
	return report, nil
}

func conditionStats(records []TrialRecord) []ConditionStats {
	grouped := map[string][]TrialRecord{}
	for _, record := range records {
		grouped[record.Condition] = append(grouped[record.Condition], record)
	}

	var stats []ConditionStats
	for _, name := range condition.Names() {
		group, ok := grouped[name]
		if !ok {
			continue
		}
		entry := ConditionStats{
			Condition:      name,
			Samples:        len(group),
			DimensionMeans: map[string]float64{},
		}
		totals := make([]float64, 0, len(group))
		for _, record := range group {
			totals = append(totals, float64(record.Total))
			switch record.Outcome {
			case runner.OutcomePass:
				entry.Passed++
			case runner.OutcomeFail:
				entry.Failed++
			default:
				entry.Unknown++
			}
		}
		if evaluated := entry.Passed + entry.Failed; evaluated > 0 {
			entry.PassRate = float64(entry.Passed) / float64(evaluated)
		}
		for _, dim := range score.Dimensions {
			values := make([]float64, 0, len(group))
			for _, record := range group {
				values = append(values, float64(record.Rating.Dimension(dim)))
			}
			entry.DimensionMeans[dim] = mean(values)
		}
		entry.TotalMean = mean(totals)
		entry.TotalStdDev = stdDev(totals)
		stats = append(stats, entry)
	}
	return stats
}

func compareToControl(stats []ConditionStats) []Comparison {
	var control *ConditionStats
	for i := range stats {
		if stats[i].Condition == condition.ControlName {
			control = &stats[i]
			break
		}
	}
	if control == nil {
		return nil
	}

	var comparisons []Comparison
	for _, entry := range stats {
		if entry.Condition == condition.ControlName {
			continue
		}
		diff := entry.TotalMean - control.TotalMean
		comparison := Comparison{
			Condition:  entry.Condition,
			Delta:      diff,
			EffectSize: effectSize(diff, control.TotalStdDev, entry.TotalStdDev),
		}
		if control.TotalMean != 0 {
			comparison.PercentDelta = diff / control.TotalMean * 100
		}
		comparisons = append(comparisons, comparison)
	}
	return comparisons
}

func problemStats(records []TrialRecord) []ProblemStats {
	grouped := map[string][]TrialRecord{}
	var order []string
	for _, record := range records {
		if _, ok := grouped[record.ProblemID]; !ok {
			order = append(order, record.ProblemID)
		}
		grouped[record.ProblemID] = append(grouped[record.ProblemID], record)
	}
	sort.Strings(order)

	var stats []ProblemStats
	for _, problemID := range order {
		entry := ProblemStats{ProblemID: problemID}
		for _, record := range grouped[problemID] {
			switch record.Outcome {
			case runner.OutcomePass:
				entry.Passed++
				entry.Evaluated++
			case runner.OutcomeFail:
				entry.Evaluated++
			}
		}
		if entry.Evaluated > 0 {
			entry.PassRate = float64(entry.Passed) / float64(entry.Evaluated)
		}
		stats = append(stats, entry)
	}
	return stats
}

func bestCondition(stats []ConditionStats) string {
	best := ""
	bestMean := 0.0
	for _, entry := range stats {
		if best == "" || entry.TotalMean > bestMean {
			best = entry.Condition
			bestMean = entry.TotalMean
		}
	}
	return best
}

// LoadReport reads a previously written report artifact.
func LoadReport(path string) (Report, error) {
	var report Report
	if err := artifact.LoadJSON(path, &report); err != nil {
		return Report{}, err
	}
	if err := report.Check(artifact.KindReport); err != nil {
		return Report{}, err
	}
	return report, nil
}

// SaveReport writes the report artifact.
func SaveReport(path string, report Report) error {
	return artifact.SaveJSON(path, report)
}

package problem

import "fmt"

// Select narrows a problem set to a run subset. When ids is non-empty the
// subset is exactly those problems in spec order; otherwise the first
// count problems are taken (count <= 0 selects everything). Order is
// preserved so trial coordinates stay stable across runs.
func Select(spec Spec, count int, ids []string) ([]Problem, error) {
	if len(ids) > 0 {
		wanted := make(map[string]struct{}, len(ids))
		for _, id := range ids {
			wanted[id] = struct{}{}
		}
		selected := make([]Problem, 0, len(ids))
		for _, item := range spec.Problems {
			if _, ok := wanted[item.ID]; ok {
				selected = append(selected, item)
				delete(wanted, item.ID)
			}
		}
		if len(wanted) > 0 {
			for id := range wanted {
				return nil, fmt.Errorf("problem id %q not found in problem set", id)
			}
		}
		return selected, nil
	}
	if count <= 0 || count >= len(spec.Problems) {
		selected := make([]Problem, len(spec.Problems))
		copy(selected, spec.Problems)
		return selected, nil
	}
	selected := make([]Problem, count)
	copy(selected, spec.Problems[:count])
	return selected, nil
}

package cli

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"sort"

	tea "github.com/charmbracelet/bubbletea"

	"arete/internal/blind"
	"arete/internal/runner"
	"arete/internal/score"
	"arete/internal/ui/scoring"
)

// runScoringUI executes the interactive scoring program.
var runScoringUI = func(model scoring.Model, stdout io.Writer) (scoring.Model, error) {
	program := tea.NewProgram(model, tea.WithOutput(stdout))
	final, err := program.Run()
	if err != nil {
		return scoring.Model{}, err
	}
	return final.(scoring.Model), nil
}

func runScore(cmd *Command) func(args []string, stdout, stderr io.Writer) int {
	return func(args []string, stdout, stderr io.Writer) int {
		if wantsHelp(args) {
			printCommandUsage(cmd, stdout)
			return ExitOK
		}
		fs := flag.NewFlagSet(cmd.Name, flag.ContinueOnError)
		fs.SetOutput(stderr)
		runDir := fs.String("dir", "", "Run directory containing blind.json")
		importPath := fs.String("import", "", "Merge scores from an externally produced file")
		noColor := fs.Bool("no-color", false, "Disable colored output")
		if err := fs.Parse(args); err != nil {
			if err == flag.ErrHelp {
				printCommandUsage(cmd, stdout)
				return ExitOK
			}
			return ExitUsage
		}
		if *runDir == "" {
			fmt.Fprintln(stderr, "--dir is required")
			printCommandUsage(cmd, stderr)
			return ExitUsage
		}

		paths := runner.PathsForRunDir(*runDir)
		set, err := blind.LoadSet(paths.BlindPath())
		if err != nil {
			fmt.Fprintf(stderr, "Failed to load blind set: %v\n", err)
			return ExitError
		}

		scores, err := loadOrCreateScores(paths.ScoresPath(), set.RunID)
		if err != nil {
			fmt.Fprintf(stderr, "Failed to load scores: %v\n", err)
			return ExitError
		}

		if *importPath != "" {
			added, err := mergeImported(&scores, set, *importPath)
			if err != nil {
				fmt.Fprintf(stderr, "Import failed: %v\n", err)
				return ExitError
			}
			if err := score.Save(paths.ScoresPath(), scores); err != nil {
				fmt.Fprintf(stderr, "Failed to write scores: %v\n", err)
				return ExitError
			}
			fmt.Fprintf(stdout, "Imported %d scores (%d/%d items scored)\n", added, len(scores.Scores), len(set.Items))
			return ExitOK
		}

		if !isTerminal(stdout) {
			fmt.Fprintln(stderr, "Interactive scoring needs a terminal. Use --import for scripted scoring.")
			return ExitError
		}

		state := scoring.NewState(set, scores)
		if state.Done {
			fmt.Fprintf(stdout, "All %d items already scored.\n", len(set.Items))
			return ExitOK
		}
		save := func(file score.File) error {
			return score.Save(paths.ScoresPath(), file)
		}
		model := scoring.NewModel(state, save, scoring.Options{NoColor: *noColor})
		final, err := runScoringUI(model, stdout)
		if err != nil {
			fmt.Fprintf(stderr, "Scoring UI failed: %v\n", err)
			return ExitError
		}
		if err := final.SaveErr(); err != nil {
			fmt.Fprintf(stderr, "Failed to write scores: %v\n", err)
			return ExitError
		}
		finalState := final.State()
		fmt.Fprintf(stdout, "Scored %d/%d items (%d skipped)\n", finalState.Scored(), len(set.Items), finalState.Skipped)
		if finalState.Scored() == len(set.Items) {
			fmt.Fprintf(stdout, "Next: arete reveal --dir %s\n", paths.RunDir())
		}
		return ExitOK
	}
}

func loadOrCreateScores(path, runID string) (score.File, error) {
	scores, err := score.Load(path)
	if err == nil {
		if scores.RunID != runID {
			return score.File{}, fmt.Errorf("scores belong to run %s, not %s", scores.RunID, runID)
		}
		return scores, nil
	}
	if errors.Is(err, os.ErrNotExist) {
		return score.NewFile(runID), nil
	}
	return score.File{}, err
}

// mergeImported folds an externally produced score file into the run's
// scores, rejecting ids the blind set does not contain.
func mergeImported(scores *score.File, set blind.Set, path string) (int, error) {
	imported, err := score.Load(path)
	if err != nil {
		return 0, err
	}
	if imported.RunID != set.RunID {
		return 0, fmt.Errorf("imported scores belong to run %s, not %s", imported.RunID, set.RunID)
	}
	known := make(map[string]struct{}, len(set.Items))
	for _, item := range set.Items {
		known[item.BlindID] = struct{}{}
	}
	var unknown []string
	for blindID := range imported.Scores {
		if _, ok := known[blindID]; !ok {
			unknown = append(unknown, blindID)
		}
	}
	if len(unknown) > 0 {
		sort.Strings(unknown)
		return 0, fmt.Errorf("imported scores reference unknown blind ids: %v", unknown)
	}
	added := 0
	for blindID, rating := range imported.Scores {
		if _, ok := scores.Scores[blindID]; !ok {
			added++
		}
		scores.Scores[blindID] = rating
	}
	return added, nil
}

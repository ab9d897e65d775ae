package cli

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"arete/internal/blind"
	"arete/internal/reconcile"
	"arete/internal/report"
	"arete/internal/runner"
	"arete/internal/score"
)

func runReveal(cmd *Command) func(args []string, stdout, stderr io.Writer) int {
	return func(args []string, stdout, stderr io.Writer) int {
		if wantsHelp(args) {
			printCommandUsage(cmd, stdout)
			return ExitOK
		}
		fs := flag.NewFlagSet(cmd.Name, flag.ContinueOnError)
		fs.SetOutput(stderr)
		runDir := fs.String("dir", "", "Run directory containing blind.json, key.json and scores.json")
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

		// The scorer-facing file is audited as written to disk, not as
		// parsed: any condition trace in its bytes already leaked.
		blindData, err := os.ReadFile(paths.BlindPath())
		if err != nil {
			fmt.Fprintf(stderr, "Failed to read blind set: %v\n", err)
			return ExitError
		}
		if err := blind.CheckLeakage(blindData); err != nil {
			fmt.Fprintf(stderr, "Blindness violation: %v\n", err)
			return ExitBlind
		}

		set, err := blind.LoadSet(paths.BlindPath())
		if err != nil {
			fmt.Fprintf(stderr, "Failed to load blind set: %v\n", err)
			return ExitError
		}
		key, err := blind.LoadKey(paths.KeyPath())
		if err != nil {
			fmt.Fprintf(stderr, "Failed to load key: %v\n", err)
			return ExitError
		}
		scores, err := score.Load(paths.ScoresPath())
		if err != nil {
			fmt.Fprintf(stderr, "Failed to load scores: %v\n", err)
			return ExitError
		}

		reconciled, err := reconcile.Reconcile(scores, set, key, time.Now())
		if err != nil {
			var invariant *runner.InvariantError
			if errors.As(err, &invariant) {
				fmt.Fprintf(stderr, "Blindness violation: %v\n", err)
				return ExitBlind
			}
			fmt.Fprintf(stderr, "Reveal failed: %v\n", err)
			return ExitError
		}

		if err := reconcile.SaveReport(paths.ReportPath(), reconciled); err != nil {
			fmt.Fprintf(stderr, "Failed to write report: %v\n", err)
			return ExitError
		}

		fmt.Fprint(stdout, report.RenderText(reconciled, *noColor || !isTerminal(stdout)))
		fmt.Fprintf(stdout, "\nReport: %s\n", paths.ReportPath())
		return ExitOK
	}
}

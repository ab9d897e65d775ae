package cli

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"time"

	"arete/internal/blind"
	"arete/internal/config"
	"arete/internal/problem"
	"arete/internal/runner"
	"arete/internal/spec"
)

var runExperiment = runner.Run

func runRun(cmd *Command) func(args []string, stdout, stderr io.Writer) int {
	return func(args []string, stdout, stderr io.Writer) int {
		if wantsHelp(args) {
			printCommandUsage(cmd, stdout)
			return ExitOK
		}
		fs := flag.NewFlagSet(cmd.Name, flag.ContinueOnError)
		fs.SetOutput(stderr)
		specPath := fs.String("spec", ".arete.yml", "Path to .arete.yml")
		outputDir := fs.String("output-dir", "", "Override output directory")
		trials := fs.Int("trials", 0, "Override trials per condition/problem pair")
		workers := fs.Int("workers", 0, "Override worker count")
		modelName := fs.String("model", "", "Override model name")
		temperature := fs.Float64("temperature", -1, "Override sampling temperature")
		problemCount := fs.Int("problems", 0, "Override number of problems")
		seed := fs.Int64("seed", 0, "Shuffle seed for the blind set (default: current time)")
		resume := fs.String("resume", "", "Resume an interrupted run by id")
		verbose := fs.Bool("verbose", false, "Log each trial as it completes")
		noColor := fs.Bool("no-color", false, "Disable colored output")
		if err := fs.Parse(args); err != nil {
			if err == flag.ErrHelp {
				printCommandUsage(cmd, stdout)
				return ExitOK
			}
			return ExitUsage
		}
		if fs.NArg() > 0 {
			fmt.Fprintf(stderr, "unexpected arguments: %v\n", fs.Args())
			printCommandUsage(cmd, stderr)
			return ExitUsage
		}

		cfg, err := config.Load(*specPath)
		if err != nil {
			fmt.Fprintf(stderr, "Failed to load config: %v\n", err)
			return ExitError
		}
		if *trials > 0 {
			cfg.Experiment.Trials = *trials
		}
		if *workers > 0 {
			cfg.Experiment.Workers = *workers
		}
		if *modelName != "" {
			cfg.Model.Name = *modelName
		}
		if *temperature >= 0 {
			cfg.Model.Temperature = *temperature
		}
		if *problemCount > 0 {
			cfg.Experiment.ProblemCount = *problemCount
		}

		configRoot := config.RootFromConfigPath(*specPath)
		results, paths, err := runExperiment(context.Background(), cfg, runner.RunParams{
			ConfigRoot:    configRoot,
			OutputDir:     *outputDir,
			ResumeRunID:   *resume,
			Verbose:       *verbose,
			VerboseWriter: stderr,
			NoColor:       *noColor || !isTerminal(stderr),
		})
		if err != nil {
			fmt.Fprintf(stderr, "Run failed: %v\n", err)
			return ExitError
		}

		prompts, err := basePrompts(cfg, configRoot)
		if err != nil {
			fmt.Fprintf(stderr, "Failed to reload problems: %v\n", err)
			return ExitError
		}
		shuffleSeed := *seed
		if shuffleSeed == 0 {
			shuffleSeed = time.Now().UnixNano()
		}
		set, key, err := blind.Derive(results.Raw, prompts, shuffleSeed)
		if err != nil {
			fmt.Fprintf(stderr, "Blinding failed: %v\n", err)
			var invariant *runner.InvariantError
			if errors.As(err, &invariant) {
				return ExitBlind
			}
			return ExitError
		}
		if err := blind.SaveSet(paths.BlindPath(), set); err != nil {
			fmt.Fprintf(stderr, "Failed to write blind set: %v\n", err)
			return ExitError
		}
		if err := blind.SaveKey(paths.KeyPath(), key); err != nil {
			fmt.Fprintf(stderr, "Failed to write key: %v\n", err)
			return ExitError
		}

		summary := results.Summary
		fmt.Fprintf(stdout, "Run %s completed: %d trials (%d pass, %d fail, %d unknown)\n",
			results.RunID, summary.TrialsTotal, summary.Passed, summary.Failed, summary.Unknown)
		fmt.Fprintf(stdout, "Results: %s\n", paths.ResultsPath())
		fmt.Fprintf(stdout, "Blind set: %s\n", paths.BlindPath())
		fmt.Fprintf(stdout, "Next: arete score --dir %s\n", paths.RunDir())
		return ExitOK
	}
}

// basePrompts maps problem ids to their unconditioned prompts for the
// blind set. Conditioned prompts never reach the scoring side.
func basePrompts(cfg spec.Config, configRoot string) (map[string]string, error) {
	problemsPath := config.ResolvePath(configRoot, cfg.Experiment.ProblemsFile)
	problemSpec, err := problem.LoadSpec(problemsPath)
	if err != nil {
		return nil, err
	}
	problems, err := problem.Select(problemSpec, cfg.Experiment.ProblemCount, cfg.Experiment.ProblemIDs)
	if err != nil {
		return nil, err
	}
	prompts := make(map[string]string, len(problems))
	for _, item := range problems {
		prompts[item.ID] = item.Prompt
	}
	return prompts, nil
}

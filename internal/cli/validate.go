package cli

import (
	"flag"
	"fmt"
	"io"
	"strings"

	"arete/internal/config"
	"arete/internal/problem"
)

func runValidate(cmd *Command) func(args []string, stdout, stderr io.Writer) int {
	return func(args []string, stdout, stderr io.Writer) int {
		if wantsHelp(args) {
			printCommandUsage(cmd, stdout)
			return ExitOK
		}
		fs := flag.NewFlagSet(cmd.Name, flag.ContinueOnError)
		fs.SetOutput(stderr)
		specPath := fs.String("spec", ".arete.yml", "Path to .arete.yml")
		if err := fs.Parse(args); err != nil {
			if err == flag.ErrHelp {
				printCommandUsage(cmd, stdout)
				return ExitOK
			}
			return ExitUsage
		}
		if fs.NArg() > 0 {
			fmt.Fprintf(stderr, "unexpected arguments: %s\n", strings.Join(fs.Args(), " "))
			printCommandUsage(cmd, stderr)
			return ExitUsage
		}

		cfg, err := config.Load(*specPath)
		if err != nil {
			fmt.Fprintf(stderr, "Validation failed:\n%s\n", err.Error())
			return ExitError
		}

		root := config.RootFromConfigPath(*specPath)
		problemsPath := config.ResolvePath(root, cfg.Experiment.ProblemsFile)
		problemSpec, err := problem.LoadSpec(problemsPath)
		if err != nil {
			fmt.Fprintf(stderr, "Validation failed:\n%s\n", err.Error())
			return ExitError
		}
		if _, err := problem.Select(problemSpec, cfg.Experiment.ProblemCount, cfg.Experiment.ProblemIDs); err != nil {
			fmt.Fprintf(stderr, "Validation failed:\n%s\n", err.Error())
			return ExitError
		}

		fmt.Fprintf(stdout, "Config OK (%d problems available)\n", len(problemSpec.Problems))
		return ExitOK
	}
}

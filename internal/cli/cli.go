// Package cli implements the arete command line interface.
package cli

import (
	"fmt"
	"io"
)

const (
	ExitOK    = 0
	ExitError = 1
	ExitUsage = 2
	// ExitBlind signals a blindness violation: condition information
	// reached, or would have reached, the scoring side.
	ExitBlind = 3
)

type Command struct {
	Name    string
	Summary string
	Usage   []string
	Run     func(args []string, stdout, stderr io.Writer) int
}

func Run(args []string, stdout, stderr io.Writer) int {
	if len(args) == 0 {
		printUsage(stdout)
		return ExitUsage
	}
	if isHelpArg(args[0]) {
		printUsage(stdout)
		return ExitOK
	}

	cmd := findCommand(args[0])
	if cmd == nil {
		fmt.Fprintf(stderr, "Unknown command: %s\n\n", args[0])
		printUsage(stderr)
		return ExitUsage
	}

	return cmd.Run(args[1:], stdout, stderr)
}

func findCommand(name string) *Command {
	for _, cmd := range commands {
		if cmd.Name == name {
			return cmd
		}
	}
	return nil
}

func isHelpArg(arg string) bool {
	switch arg {
	case "-h", "--help", "help":
		return true
	default:
		return false
	}
}

func wantsHelp(args []string) bool {
	for _, arg := range args {
		switch arg {
		case "-h", "--help":
			return true
		}
	}
	return false
}

func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  arete <command> [options]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	for _, cmd := range commands {
		fmt.Fprintf(w, "  %-10s %s\n", cmd.Name, cmd.Summary)
	}
	fmt.Fprintln(w, "\nUse \"arete <command> --help\" for more information.")
}

func printCommandUsage(cmd *Command, w io.Writer) {
	fmt.Fprintln(w, "Usage:")
	for _, line := range cmd.Usage {
		fmt.Fprintf(w, "  %s\n", line)
	}
	if cmd.Summary != "" {
		fmt.Fprintf(w, "\n%s\n", cmd.Summary)
	}
}

func command(name, summary string, usage []string, runner func(cmd *Command) func(args []string, stdout, stderr io.Writer) int) *Command {
	cmd := &Command{
		Name:    name,
		Summary: summary,
		Usage:   usage,
	}
	cmd.Run = runner(cmd)
	return cmd
}

var commands = []*Command{
	command("init", "Scaffold .arete.yml and a problems file", []string{
		"arete init [--spec <path>]",
	}, runInit),
	command("validate", "Validate the experiment config and problems file", []string{
		"arete validate [--spec <path>]",
	}, runValidate),
	command("run", "Execute all trials and derive the blind set", []string{
		"arete run [--spec <path>] [--trials N] [--workers N] [--seed N] [--resume <run-id>]",
	}, runRun),
	command("score", "Rate blind completions interactively or import scores", []string{
		"arete score --dir <run-dir>",
		"arete score --dir <run-dir> --import <scores.json>",
	}, runScore),
	command("reveal", "Reconcile blind scores with conditions and report", []string{
		"arete reveal --dir <run-dir> [--no-color]",
	}, runReveal),
	command("ingest", "Load a reconciled report into DuckDB", []string{
		"arete ingest --dir <run-dir> [--db <path>]",
	}, runIngest),
}

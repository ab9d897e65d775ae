package cli

import (
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

const defaultConfigTemplate = `version: 1

experiment:
  output_dir: ./results
  problems_file: %s
  problem_count: 5
  trials: 5
  workers: 1

model:
  provider: openrouter
  name: qwen/qwen-2.5-coder-32b-instruct
  temperature: 0.7
  max_output_tokens: 1024
  max_retries: 2
  retry_backoff_ms: 1000

sandbox:
  command: [python3]
  timeout_seconds: 5
`

const sampleProblems = `version: 1

problems:
  - id: two_sum
    entry_point: two_sum
    prompt: |
      def two_sum(nums, target):
          """Return indices of the two numbers that add up to target."""
    test_code: |
      def check(candidate):
          assert candidate([2, 7, 11, 15], 9) == [0, 1]
          assert candidate([3, 2, 4], 6) == [1, 2]
          assert candidate([3, 3], 6) == [0, 1]
`

func runInit(cmd *Command) func(args []string, stdout, stderr io.Writer) int {
	return func(args []string, stdout, stderr io.Writer) int {
		if wantsHelp(args) {
			printCommandUsage(cmd, stdout)
			return ExitOK
		}
		fs := flag.NewFlagSet(cmd.Name, flag.ContinueOnError)
		fs.SetOutput(stderr)
		specPath := fs.String("spec", ".arete.yml", "Where to write the config file")
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

		if _, err := os.Stat(*specPath); err == nil {
			fmt.Fprintf(stderr, "Init failed: %s already exists\n", *specPath)
			return ExitError
		}

		dir := filepath.Dir(*specPath)
		problemsPath := filepath.Join(dir, "problems.yml")
		if err := os.MkdirAll(dir, 0o755); err != nil {
			fmt.Fprintf(stderr, "Init failed: %v\n", err)
			return ExitError
		}

		configBody := fmt.Sprintf(defaultConfigTemplate, "./problems.yml")
		if err := os.WriteFile(*specPath, []byte(configBody), 0o644); err != nil {
			fmt.Fprintf(stderr, "Init failed: %v\n", err)
			return ExitError
		}
		if _, err := os.Stat(problemsPath); os.IsNotExist(err) {
			if err := os.WriteFile(problemsPath, []byte(sampleProblems), 0o644); err != nil {
				fmt.Fprintf(stderr, "Init failed: %v\n", err)
				return ExitError
			}
			fmt.Fprintf(stdout, "Created %s\n", problemsPath)
		}

		fmt.Fprintf(stdout, "Created %s\n", *specPath)
		fmt.Fprintln(stdout, "Set LLM_API_KEY, then try: arete validate && arete run")
		return ExitOK
	}
}

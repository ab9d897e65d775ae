package cucumber

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/cucumber/godog"

	"arete/internal/cli"
)

// featureState holds scenario state for cucumber CLI tests.
type featureState struct {
	projectDir string
	runDir     string
	importPath string
	previousWD string
	stdout     bytes.Buffer
	stderr     bytes.Buffer
	exitCode   int
}

// InitializeScenario wires cucumber steps to the feature state.
func InitializeScenario(ctx *godog.ScenarioContext) {
	state := &featureState{}

	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		state.reset()
		return ctx, nil
	})

	ctx.After(func(ctx context.Context, sc *godog.Scenario, err error) (context.Context, error) {
		state.cleanup()
		return ctx, nil
	})

	ctx.Step(`^an empty project directory$`, state.anEmptyProjectDirectory)
	ctx.Step(`^a config whose problems file lacks test code$`, state.aConfigWithBrokenProblems)
	ctx.Step(`^a completed run directory$`, state.aCompletedRunDirectory)
	ctx.Step(`^a complete external score file$`, state.aCompleteExternalScoreFile)
	ctx.Step(`^an external score file missing one item$`, state.anExternalScoreFileMissingOneItem)
	ctx.Step(`^the blind set has been tampered with a condition name$`, state.theBlindSetHasBeenTampered)
	ctx.Step(`^I run "([^"]+)"$`, state.iRunCommand)
	ctx.Step(`^I import the scores$`, state.iImportTheScores)
	ctx.Step(`^I reveal the run$`, state.iRevealTheRun)
	ctx.Step(`^the exit code is (\d+)$`, state.theExitCodeIs)
	ctx.Step(`^the exit code is non-zero$`, state.theExitCodeIsNonZero)
	ctx.Step(`^the output lists these commands:$`, state.theOutputListsCommands)
	ctx.Step(`^stdout contains "([^"]+)"$`, state.stdoutContains)
	ctx.Step(`^stderr contains "([^"]+)"$`, state.stderrContains)
	ctx.Step(`^the run directory contains a report$`, state.theRunDirectoryContainsAReport)
	ctx.Step(`^the run directory contains no report$`, state.theRunDirectoryContainsNoReport)
}

// reset clears buffers and state before each scenario.
func (s *featureState) reset() {
	s.stdout.Reset()
	s.stderr.Reset()
	s.exitCode = 0
	s.projectDir = ""
	s.runDir = ""
	s.importPath = ""
	s.previousWD = ""
}

// cleanup restores the working directory and removes temp files.
func (s *featureState) cleanup() {
	if s.previousWD != "" {
		_ = os.Chdir(s.previousWD)
	}
	if s.projectDir != "" {
		_ = os.RemoveAll(s.projectDir)
	}
}

// iRunCommand executes a CLI command for the scenario.
func (s *featureState) iRunCommand(command string) error {
	args := strings.Fields(command)
	if len(args) == 0 {
		return fmt.Errorf("command is empty")
	}
	if args[0] == "arete" {
		args = args[1:]
	}
	s.stdout.Reset()
	s.stderr.Reset()
	s.exitCode = cli.Run(args, &s.stdout, &s.stderr)
	return nil
}

package cucumber

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/cucumber/godog"

	"arete/internal/runner"
)

func (s *featureState) theExitCodeIs(code string) error {
	want, err := strconv.Atoi(code)
	if err != nil {
		return fmt.Errorf("bad exit code %q: %w", code, err)
	}
	if s.exitCode != want {
		return fmt.Errorf("exit code = %d, want %d\nstdout: %s\nstderr: %s", s.exitCode, want, s.stdout.String(), s.stderr.String())
	}
	return nil
}

func (s *featureState) theExitCodeIsNonZero() error {
	if s.exitCode == 0 {
		return fmt.Errorf("exit code = 0, want non-zero\nstdout: %s", s.stdout.String())
	}
	return nil
}

func (s *featureState) theOutputListsCommands(table *godog.Table) error {
	output := s.stdout.String()
	for _, row := range table.Rows {
		name := strings.TrimSpace(row.Cells[0].Value)
		if !strings.Contains(output, name) {
			return fmt.Errorf("output missing command %q:\n%s", name, output)
		}
	}
	return nil
}

func (s *featureState) stdoutContains(text string) error {
	if !strings.Contains(s.stdout.String(), text) {
		return fmt.Errorf("stdout missing %q:\n%s", text, s.stdout.String())
	}
	return nil
}

func (s *featureState) stderrContains(text string) error {
	if !strings.Contains(s.stderr.String(), text) {
		return fmt.Errorf("stderr missing %q:\n%s", text, s.stderr.String())
	}
	return nil
}

func (s *featureState) theRunDirectoryContainsAReport() error {
	paths := runner.PathsForRunDir(s.runDir)
	if _, err := os.Stat(paths.ReportPath()); err != nil {
		return fmt.Errorf("report missing: %w", err)
	}
	return nil
}

func (s *featureState) theRunDirectoryContainsNoReport() error {
	paths := runner.PathsForRunDir(s.runDir)
	if _, err := os.Stat(paths.ReportPath()); !os.IsNotExist(err) {
		return fmt.Errorf("report unexpectedly present")
	}
	return nil
}

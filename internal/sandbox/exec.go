package sandbox

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"
)

// detailLimit truncates diagnostic output so giant tracebacks do not
// bloat the result store.
const detailLimit = 500

// ExecRunner runs candidates through an external interpreter in a
// subprocess with a wall-clock budget.
type ExecRunner struct {
	Command []string
	Timeout time.Duration
}

// NewExecRunner builds an ExecRunner with defaults filled in.
func NewExecRunner(command []string, timeout time.Duration) *ExecRunner {
	if len(command) == 0 {
		command = []string{"python3"}
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &ExecRunner{Command: command, Timeout: timeout}
}

// Run assembles the candidate program, executes it, and maps the outcome
// to a verdict. A timeout is a fail-class verdict: the candidate shipped
// and did not pass within budget.
func (r *ExecRunner) Run(ctx context.Context, req Request) Result {
	source := AssembleProgram(req)
	path, err := writeTempProgram(source)
	if err != nil {
		return Result{Verdict: VerdictFail, Detail: truncateDetail(err.Error())}
	}
	defer os.RemoveAll(filepath.Dir(path))

	runCtx, cancel := context.WithTimeout(ctx, r.Timeout)
	defer cancel()

	args := append(append([]string{}, r.Command[1:]...), path)
	cmd := exec.CommandContext(runCtx, r.Command[0], args...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	err = cmd.Run()
	if runCtx.Err() != nil && errors.Is(runCtx.Err(), context.DeadlineExceeded) {
		return Result{Verdict: VerdictTimeout, Detail: "execution timed out"}
	}
	if err != nil {
		return Result{Verdict: VerdictFail, Detail: truncateDetail(stderr.String())}
	}
	return Result{Verdict: VerdictPass}
}

// AssembleProgram concatenates prompt, completion, tests, and the check
// invocation into one runnable source file.
func AssembleProgram(req Request) string {
	var builder strings.Builder
	builder.WriteString(req.Prompt)
	builder.WriteString(req.Completion)
	builder.WriteString("\n\n")
	builder.WriteString(req.TestCode)
	builder.WriteString("\n\ncheck(")
	builder.WriteString(req.EntryPoint)
	builder.WriteString(")\n")
	return builder.String()
}

func writeTempProgram(source string) (string, error) {
	dir, err := os.MkdirTemp("", "arete-candidate-")
	if err != nil {
		return "", fmt.Errorf("create temp dir: %w", err)
	}
	path := filepath.Join(dir, "candidate.py")
	if err := os.WriteFile(path, []byte(source), 0o644); err != nil {
		os.RemoveAll(dir)
		return "", fmt.Errorf("write candidate: %w", err)
	}
	return path, nil
}

func truncateDetail(detail string) string {
	detail = strings.TrimSpace(detail)
	if len(detail) > detailLimit {
		return detail[:detailLimit]
	}
	return detail
}

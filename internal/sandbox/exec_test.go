package sandbox

import (
	"strings"
	"testing"
	"time"

	"arete/internal/testutil"
)

// shRunner builds a runner that executes candidates with sh so the tests
// do not depend on a Python toolchain.
func shRunner(timeout time.Duration) *ExecRunner {
	return NewExecRunner([]string{"sh"}, timeout)
}

// shRequest produces a request whose assembled program is a shell script.
// The "check" invocation is neutralized by defining it as a no-op command.
func shRequest(body string) Request {
	return Request{
		Prompt:     "check() { :; }\n",
		Completion: body,
		TestCode:   ":",
		EntryPoint: "",
	}
}

// TestRunPass maps a zero exit status to a pass verdict.
func TestRunPass(t *testing.T) {
	ctx := testutil.Context(t, 0)
	result := shRunner(time.Second).Run(ctx, shRequest("true\n"))
	if result.Verdict != VerdictPass {
		t.Fatalf("expected pass, got %s (%s)", result.Verdict, result.Detail)
	}
}

// TestRunFail maps a nonzero exit status to a fail verdict with detail.
func TestRunFail(t *testing.T) {
	ctx := testutil.Context(t, 0)
	result := shRunner(time.Second).Run(ctx, shRequest("echo boom >&2\nexit 3\n"))
	if result.Verdict != VerdictFail {
		t.Fatalf("expected fail, got %s", result.Verdict)
	}
	if !strings.Contains(result.Detail, "boom") {
		t.Fatalf("expected stderr detail, got %q", result.Detail)
	}
}

// TestRunTimeout maps an exceeded budget to a timeout verdict.
func TestRunTimeout(t *testing.T) {
	ctx := testutil.Context(t, 5*time.Second)
	result := shRunner(100 * time.Millisecond).Run(ctx, shRequest("sleep 5\n"))
	if result.Verdict != VerdictTimeout {
		t.Fatalf("expected timeout, got %s (%s)", result.Verdict, result.Detail)
	}
}

// TestAssembleProgram keeps the original prompt+completion+tests+check layout.
func TestAssembleProgram(t *testing.T) {
	source := AssembleProgram(Request{
		Prompt:     "def f(x):\n",
		Completion: "    return x\n",
		TestCode:   "def check(candidate):\n    assert candidate(1) == 1\n",
		EntryPoint: "f",
	})
	if !strings.HasPrefix(source, "def f(x):\n    return x\n") {
		t.Fatalf("prompt and completion not joined: %q", source)
	}
	if !strings.HasSuffix(source, "check(f)\n") {
		t.Fatalf("missing check invocation: %q", source)
	}
}

// TestTruncateDetail bounds diagnostic output length.
func TestTruncateDetail(t *testing.T) {
	long := strings.Repeat("x", detailLimit*2)
	if got := truncateDetail(long); len(got) != detailLimit {
		t.Fatalf("expected %d chars, got %d", detailLimit, len(got))
	}
}

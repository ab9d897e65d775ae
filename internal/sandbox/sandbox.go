package sandbox

import (
	"context"
	"time"
)

// Verdict classifies a candidate's run against its unit tests.
type Verdict string

const (
	// VerdictPass means the tests ran and succeeded.
	VerdictPass Verdict = "pass"
	// VerdictFail means the tests ran and failed.
	VerdictFail Verdict = "fail"
	// VerdictTimeout means the candidate exceeded the execution budget.
	// Generated code is untrusted and may loop forever.
	VerdictTimeout Verdict = "timeout"
)

// Request bundles a candidate completion with the test harness for one problem.
type Request struct {
	Prompt     string
	Completion string
	TestCode   string
	EntryPoint string
}

// Result reports the verdict and any captured diagnostic output.
type Result struct {
	Verdict Verdict
	Detail  string
}

// Runner is the test-execution collaborator. Implementations must bound
// wall-clock time per request.
type Runner interface {
	Run(ctx context.Context, req Request) Result
}

// DefaultTimeout is the per-candidate execution budget.
const DefaultTimeout = 5 * time.Second

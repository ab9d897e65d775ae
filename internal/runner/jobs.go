package runner

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"arete/internal/model"
	"arete/internal/sandbox"
)

// trialDeps bundles dependencies for executing a single trial.
type trialDeps struct {
	runID         string
	completer     model.Completer
	sandbox       sandbox.Runner
	maxRetries    int
	backoff       time.Duration
	sleep         func(time.Duration)
	now           func() time.Time
	store         *Store
	total         int
	verbose       bool
	verboseWriter io.Writer
	noColor       bool
}

// executeTrials runs pending trials through a bounded worker pool and
// appends each result to the store as it is produced. Cancellation stops
// dispatch between trials; already-appended results stay valid.
func executeTrials(ctx context.Context, workers int, pending []Trial, deps trialDeps) error {
	if workers <= 1 {
		return executeTrialsSequential(ctx, pending, deps)
	}
	return executeTrialsConcurrent(ctx, workers, pending, deps)
}

func executeTrialsSequential(ctx context.Context, pending []Trial, deps trialDeps) error {
	for index, trial := range pending {
		if err := ctx.Err(); err != nil {
			return err
		}
		result, err := executeTrial(ctx, deps, trial, index)
		if err != nil {
			return err
		}
		if err := deps.store.Append(result); err != nil {
			return err
		}
	}
	return nil
}

func executeTrialsConcurrent(ctx context.Context, workers int, pending []Trial, deps trialDeps) error {
	jobs := make(chan indexedTrial)
	errCh := make(chan error, workers)
	var wg sync.WaitGroup

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for job := range jobs {
				result, err := executeTrial(ctx, deps, job.trial, job.index)
				if err != nil {
					select {
					case errCh <- err:
					default:
					}
					return
				}
				if err := deps.store.Append(result); err != nil {
					select {
					case errCh <- err:
					default:
					}
					return
				}
			}
		}()
	}

	var dispatchErr error
dispatch:
	for index, trial := range pending {
		select {
		case <-ctx.Done():
			dispatchErr = ctx.Err()
			break dispatch
		case err := <-errCh:
			dispatchErr = err
			break dispatch
		case jobs <- indexedTrial{index: index, trial: trial}:
		}
	}
	close(jobs)
	wg.Wait()

	if dispatchErr != nil {
		return dispatchErr
	}
	select {
	case err := <-errCh:
		return err
	default:
		return nil
	}
}

type indexedTrial struct {
	index int
	trial Trial
}

// executeTrial runs one trial end-to-end: conditioned completion with
// bounded retries, then sandboxed test execution. A model-call failure
// degrades the record to unknown; cancellation aborts the trial without
// recording anything so a resumed run re-executes the coordinate.
func executeTrial(ctx context.Context, deps trialDeps, trial Trial, index int) (RawResult, error) {
	coord := trial.Coord
	logVerbose(deps.verbose, deps.verboseWriter, deps.noColor, styleTrial,
		"Trial %d/%d %s/%s/%d", index+1, deps.total, coord.Condition, coord.ProblemID, coord.Trial)

	result := RawResult{
		RunID:     deps.runID,
		Condition: coord.Condition,
		ProblemID: coord.ProblemID,
		Trial:     coord.Trial,
	}

	completion, err := completeWithRetry(ctx, deps, trial.Prompt)
	if err != nil {
		if ctx.Err() != nil {
			return RawResult{}, ctx.Err()
		}
		logVerbose(deps.verbose, deps.verboseWriter, deps.noColor, styleError,
			"Trial %s/%s/%d completion failed: %v", coord.Condition, coord.ProblemID, coord.Trial, err)
		result.Completion = FailurePlaceholder
		result.Outcome = OutcomeUnknown
		result.Detail = fmt.Sprintf("completion failed: %v", err)
		result.Timestamp = deps.now()
		return result, nil
	}

	code := model.ExtractCode(completion)
	verdict := deps.sandbox.Run(ctx, sandbox.Request{
		Prompt:     trial.Problem.Prompt,
		Completion: code,
		TestCode:   trial.Problem.TestCode,
		EntryPoint: trial.Problem.EntryPoint,
	})
	if err := ctx.Err(); err != nil && verdict.Verdict != sandbox.VerdictPass {
		return RawResult{}, err
	}

	result.Completion = code
	result.Timestamp = deps.now()
	switch verdict.Verdict {
	case sandbox.VerdictPass:
		result.Outcome = OutcomePass
	case sandbox.VerdictTimeout:
		// The candidate shipped and failed to finish within budget.
		result.Outcome = OutcomeFail
		result.Detail = "execution timed out"
	default:
		result.Outcome = OutcomeFail
		result.Detail = verdict.Detail
	}
	logVerbose(deps.verbose, deps.verboseWriter, deps.noColor, styleOutcome,
		"Trial %s/%s/%d outcome=%s", coord.Condition, coord.ProblemID, coord.Trial, result.Outcome)
	return result, nil
}

// completeWithRetry retries transient completion failures a bounded
// number of times with exponential backoff before giving up. A cancelled
// context surfaces as the context error, never as a transient failure.
func completeWithRetry(ctx context.Context, deps trialDeps, prompt string) (string, error) {
	var lastErr error
	for attempt := 0; attempt <= deps.maxRetries; attempt++ {
		if attempt > 0 {
			deps.sleep(deps.backoff << (attempt - 1))
		}
		if err := ctx.Err(); err != nil {
			return "", err
		}
		text, err := deps.completer.Complete(ctx, prompt)
		if err == nil {
			return text, nil
		}
		lastErr = err
	}
	return "", lastErr
}

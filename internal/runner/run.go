package runner

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"arete/internal/condition"
	"arete/internal/config"
	"arete/internal/model"
	"arete/internal/problem"
	"arete/internal/sandbox"
	"arete/internal/spec"
)

// CompleterFactory builds the completion collaborator for a model config.
type CompleterFactory func(cfg spec.ModelConfig) (model.Completer, error)

// SandboxFactory builds the test-execution collaborator.
type SandboxFactory func(cfg spec.SandboxConfig) sandbox.Runner

// RunDependencies allows injecting collaborators and clocks for a run.
type RunDependencies struct {
	CompleterFactory CompleterFactory
	SandboxFactory   SandboxFactory
	RunID            func() (string, error)
	Now              func() time.Time
	Sleep            func(time.Duration)
}

// RunParams configures a run invocation.
type RunParams struct {
	ConfigRoot    string
	OutputDir     string
	ResumeRunID   string
	Verbose       bool
	VerboseWriter io.Writer
	NoColor       bool
	Deps          RunDependencies
}

// Run executes every pending trial of the experiment and returns the
// complete, verified raw result set. Resuming an interrupted run reuses
// its run id and skips coordinates already in the log.
func Run(ctx context.Context, cfg spec.Config, params RunParams) (Results, OutputPaths, error) {
	outputDir := params.OutputDir
	if outputDir == "" {
		outputDir = cfg.Experiment.OutputDir
	}
	outputDir = config.ResolvePath(params.ConfigRoot, outputDir)

	runID := params.ResumeRunID
	if runID == "" {
		var err error
		runID, err = ensureRunID(params.Deps.RunID)
		if err != nil {
			return Results{}, OutputPaths{}, err
		}
	}
	now := params.Deps.Now
	if now == nil {
		now = time.Now
	}
	startedAt := now()

	problemsPath := config.ResolvePath(params.ConfigRoot, cfg.Experiment.ProblemsFile)
	problemSpec, err := problem.LoadSpec(problemsPath)
	if err != nil {
		return Results{}, OutputPaths{}, err
	}
	problems, err := problem.Select(problemSpec, cfg.Experiment.ProblemCount, cfg.Experiment.ProblemIDs)
	if err != nil {
		return Results{}, OutputPaths{}, err
	}
	conditions := condition.All()

	plan, err := BuildPlan(conditions, problems, cfg.Experiment.Trials)
	if err != nil {
		return Results{}, OutputPaths{}, err
	}

	paths, err := NewOutputPaths(outputDir, runID)
	if err != nil {
		return Results{}, OutputPaths{}, err
	}
	if err := os.MkdirAll(paths.RunDir(), 0o755); err != nil {
		return Results{}, OutputPaths{}, fmt.Errorf("create run dir: %w", err)
	}
	store, err := OpenStore(paths.ResultsPath(), runID)
	if err != nil {
		return Results{}, OutputPaths{}, err
	}
	defer store.Close()

	pending := FilterSatisfied(plan, store.Satisfied())

	completerFactory := params.Deps.CompleterFactory
	if completerFactory == nil {
		completerFactory = func(modelCfg spec.ModelConfig) (model.Completer, error) {
			return model.CompleterFromEnv(modelCfg, nil)
		}
	}
	sandboxFactory := params.Deps.SandboxFactory
	if sandboxFactory == nil {
		sandboxFactory = func(sandboxCfg spec.SandboxConfig) sandbox.Runner {
			return sandbox.NewExecRunner(sandboxCfg.Command, time.Duration(sandboxCfg.TimeoutSeconds)*time.Second)
		}
	}
	completer, err := completerFactory(cfg.Model)
	if err != nil {
		return Results{}, OutputPaths{}, err
	}
	sleep := params.Deps.Sleep
	if sleep == nil {
		sleep = time.Sleep
	}

	workers := cfg.Experiment.Workers
	deps := trialDeps{
		runID:         runID,
		completer:     completer,
		sandbox:       sandboxFactory(cfg.Sandbox),
		maxRetries:    cfg.Model.MaxRetries,
		backoff:       time.Duration(cfg.Model.RetryBackoffMS) * time.Millisecond,
		sleep:         sleep,
		now:           now,
		store:         store,
		total:         len(plan),
		verbose:       params.Verbose,
		verboseWriter: wrapVerboseWriter(workers, params.VerboseWriter),
		noColor:       params.NoColor,
	}
	if err := executeTrials(ctx, workers, pending, deps); err != nil {
		return Results{}, paths, err
	}

	storedRunID, raw, err := LoadResultLog(paths.ResultsPath())
	if err != nil {
		return Results{}, paths, err
	}
	if storedRunID != runID {
		return Results{}, paths, fmt.Errorf("result log run id drifted: %s vs %s", storedRunID, runID)
	}
	if err := VerifyComplete(raw, conditions, problems, cfg.Experiment.Trials); err != nil {
		return Results{}, paths, err
	}

	problemIDs := make([]string, 0, len(problems))
	for _, item := range problems {
		problemIDs = append(problemIDs, item.ID)
	}
	results := Results{
		RunID:       runID,
		Model:       cfg.Model.Name,
		Temperature: cfg.Model.Temperature,
		Trials:      cfg.Experiment.Trials,
		Conditions:  condition.Names(),
		ProblemIDs:  problemIDs,
		StartedAt:   startedAt,
		FinishedAt:  now(),
		Raw:         raw,
		Summary:     summarize(raw),
	}
	return results, paths, nil
}

// ensureRunID uses the provided generator or falls back to NewRunID.
func ensureRunID(generator func() (string, error)) (string, error) {
	if generator != nil {
		return generator()
	}
	return NewRunID()
}

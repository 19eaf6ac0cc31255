// Package runner is the keyword-execution host: it reads suite files
// and dispatches their steps through a page-object library, one at a
// time to completion. Step failures are recorded and reported; they do
// not abort the rest of the suite.
package runner

import (
	"context"
	"fmt"

	"github.com/entrhq/pagekit/pkg/logging"
	"github.com/entrhq/pagekit/pkg/pageobject"
)

// Runner executes suites against a library. It also implements
// capability.KeywordRunner, so page-object keywords can call back into
// the host's keyword surface.
type Runner struct {
	lib *pageobject.Library
	log *logging.Logger
}

// New creates a runner without a library; Bind must be called before
// the first step runs. The two-step construction exists because the
// runner is itself one of the capabilities injected into the library.
func New(log *logging.Logger) *Runner {
	if log == nil {
		log = logging.Discard()
	}
	return &Runner{log: log}
}

// Bind attaches the library the runner dispatches into.
func (r *Runner) Bind(lib *pageobject.Library) {
	r.lib = lib
}

// RunKeyword dispatches a single keyword through the library.
func (r *Runner) RunKeyword(ctx context.Context, name string, args ...string) (string, error) {
	if r.lib == nil {
		return "", fmt.Errorf("runner is not bound to a library")
	}
	return r.lib.RunKeyword(ctx, name, args...)
}

// StepResult records the outcome of one step.
type StepResult struct {
	Step   Step
	Result string
	Err    error
}

// Result is the outcome of a suite run.
type Result struct {
	Suite  string
	Steps  []StepResult
	Failed int
}

// OK reports whether every step passed.
func (r *Result) OK() bool { return r.Failed == 0 }

// Run executes the suite's steps in order. A failing step is recorded
// and the run continues; only a canceled context stops it early.
func (r *Runner) Run(ctx context.Context, suite *Suite) (*Result, error) {
	if r.lib == nil {
		return nil, fmt.Errorf("runner is not bound to a library")
	}

	result := &Result{Suite: suite.Name}
	r.log.Infof("running suite %q (%d steps)", suite.Name, len(suite.Steps))

	for i, step := range suite.Steps {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		value, err := r.lib.RunKeyword(ctx, step.Keyword, step.Args...)
		result.Steps = append(result.Steps, StepResult{Step: step, Result: value, Err: err})
		if err != nil {
			result.Failed++
			r.log.Errorf("step %d %q failed: %v", i+1, step.Keyword, err)
			continue
		}
		r.log.Infof("step %d %q passed", i+1, step.Keyword)
	}

	r.log.Infof("suite %q finished: %d/%d steps passed",
		suite.Name, len(suite.Steps)-result.Failed, len(suite.Steps))
	return result, nil
}

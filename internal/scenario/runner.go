package scenario

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/swaglabs/checkout-e2e/internal/report"
)

// Runner executes steps one at a time, stopping at the first failure
type Runner struct {
	logger *zap.Logger
	clock  func() time.Time
}

// NewRunner creates a runner that logs through logger
func NewRunner(logger *zap.Logger) *Runner {
	return &Runner{logger: logger, clock: time.Now}
}

// Run executes steps in order against state, recording each through rec.
// ctx is checked between steps; a step already in progress is not
// interrupted.
func (r *Runner) Run(ctx context.Context, rec *report.Recorder, state *State, steps []Step) error {
	for i, step := range steps {
		if err := ctx.Err(); err != nil {
			return &StepError{Index: i, Step: step.Name, Err: err}
		}

		err := rec.Step(step.Name, func() error {
			return step.Run(ctx, state)
		})
		if err != nil {
			r.logger.Warn("Step failed, skipping the rest of the scenario",
				zap.Int("step", i+1),
				zap.Int("remaining", len(steps)-i-1),
				zap.Error(err))
			return &StepError{Index: i, Step: step.Name, Err: err}
		}
	}
	return nil
}

// Execute annotates a recorder for sc, runs its steps and seals the result.
// The returned error is the run's *StepError, if any.
func (r *Runner) Execute(ctx context.Context, sc Scenario, state *State) (*report.Result, error) {
	rec := report.NewRecorder(sc.Name,
		report.WithFullName(sc.FullName()),
		report.WithLogger(r.logger),
		report.WithClock(r.clock))
	sc.Annotate(rec)

	r.logger.Info("Running scenario", zap.String("scenario", sc.FullName()), zap.Int("steps", len(sc.Steps)))
	err := r.Run(ctx, rec, state, sc.Steps)
	res := rec.Finish(err)
	r.logger.Info("Scenario finished",
		zap.String("scenario", sc.FullName()),
		zap.String("status", string(res.Status)),
		zap.Duration("duration", res.Stop.Sub(res.Start)))
	return res, err
}

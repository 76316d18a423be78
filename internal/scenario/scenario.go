// Package scenario composes the page objects into the storefront's business
// flows. A flow is an ordered list of named steps over a shared State; the
// first failing step ends the run.
package scenario

import (
	"context"
	"fmt"

	"github.com/swaglabs/checkout-e2e/internal/fixtures"
	"github.com/swaglabs/checkout-e2e/internal/pages"
	"github.com/swaglabs/checkout-e2e/internal/report"
)

// ErrExpectation is wrapped by every failed check. It wraps
// report.ErrAssertion so such steps are reported as failed, not broken.
var ErrExpectation = fmt.Errorf("%w: expectation not met", report.ErrAssertion)

// StepError reports which step ended a run
type StepError struct {
	Index int
	Step  string
	Err   error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("step %d %q: %v", e.Index+1, e.Step, e.Err)
}

func (e *StepError) Unwrap() error {
	return e.Err
}

// State is threaded through the steps of one run
type State struct {
	Pages    *pages.Set
	Fixtures fixtures.Fixtures

	// SelectedProduct is the name of the product added to the cart
	SelectedProduct string
}

// NewState starts a run over set with data f
func NewState(set *pages.Set, f fixtures.Fixtures) *State {
	return &State{Pages: set, Fixtures: f}
}

// Step is one sequentially awaited unit of a flow
type Step struct {
	Name string
	Run  func(ctx context.Context, s *State) error
}

// Scenario is a flow plus the metadata it is reported under
type Scenario struct {
	Suite       string
	Name        string
	Feature     string
	Story       string
	Severity    report.Severity
	Description string
	Steps       []Step
}

// FullName qualifies the scenario name with its suite
func (sc Scenario) FullName() string {
	return sc.Suite + "/" + sc.Name
}

// Annotate tags rec with the scenario's metadata
func (sc Scenario) Annotate(rec *report.Recorder) {
	rec.AddFeature(sc.Feature)
	rec.AddStory(sc.Story)
	rec.SetSeverity(sc.Severity)
	rec.AddDescription(sc.Description)
}

// expectf returns an ErrExpectation failure unless ok
func expectf(ok bool, format string, args ...any) error {
	if ok {
		return nil
	}
	return fmt.Errorf("%w: %s", ErrExpectation, fmt.Sprintf(format, args...))
}

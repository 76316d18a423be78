package cli

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/swaglabs/checkout-e2e/internal/report"
	"github.com/swaglabs/checkout-e2e/internal/repository"
	"github.com/swaglabs/checkout-e2e/internal/scenario"
)

// memoryStore is a ResultStore over a map
type memoryStore struct {
	results map[string]*report.Result
}

func newMemoryStore(results ...*report.Result) *memoryStore {
	s := &memoryStore{results: make(map[string]*report.Result)}
	for _, r := range results {
		s.results[r.UUID] = r
	}
	return s
}

func (s *memoryStore) GetResultByID(_ context.Context, id string) (*report.Result, error) {
	res, ok := s.results[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", repository.ErrResultNotFound, id)
	}
	return res, nil
}

func (s *memoryStore) UpdateResultStatus(_ context.Context, id string, status report.Status, message string) error {
	res, ok := s.results[id]
	if !ok {
		return fmt.Errorf("%w: %s", repository.ErrResultNotFound, id)
	}
	res.Status = status
	res.Message = message
	return nil
}

func (s *memoryStore) CountByStatus(_ context.Context, fullName string) (map[report.Status]int, error) {
	counts := make(map[report.Status]int)
	for _, res := range s.results {
		if res.FullName == fullName {
			counts[res.Status]++
		}
	}
	return counts, nil
}

func storedResult(id string, status report.Status) *report.Result {
	start := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	return &report.Result{
		UUID:     id,
		Name:     scenario.Checkout().Name,
		FullName: scenario.Checkout().FullName(),
		Status:   status,
		Steps: []report.StepResult{
			{Name: "Given user is on Swag Labs login page", Status: report.StatusPassed},
			{Name: "When user enters valid credentials and clicks login", Status: status, Message: "wait timed out"},
		},
		Start: start,
		Stop:  start.Add(1500 * time.Millisecond),
	}
}

func TestShowResults_CountsByStatus(t *testing.T) {
	// GIVEN
	store := newMemoryStore(
		storedResult("a", report.StatusPassed),
		storedResult("b", report.StatusPassed),
		storedResult("c", report.StatusBroken),
	)

	// WHEN
	var buf bytes.Buffer
	err := ShowResults(context.Background(), &buf, store, ResultsOptions{Scenario: "checkout"})

	// THEN
	if err != nil {
		t.Fatalf("Expected nil error, got: %v", err)
	}
	var got countsView
	if err := yaml.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("Output is not YAML: %v", err)
	}
	if got.Scenario != scenario.Checkout().FullName() {
		t.Errorf("Expected scenario %q, got %q", scenario.Checkout().FullName(), got.Scenario)
	}
	if got.Counts["passed"] != 2 || got.Counts["broken"] != 1 {
		t.Errorf("Unexpected counts: %v", got.Counts)
	}
}

func TestShowResults_ByID(t *testing.T) {
	// GIVEN
	store := newMemoryStore(storedResult("abc", report.StatusBroken))

	// WHEN
	var buf bytes.Buffer
	err := ShowResults(context.Background(), &buf, store, ResultsOptions{ID: "abc"})

	// THEN
	if err != nil {
		t.Fatalf("Expected nil error, got: %v", err)
	}
	var got resultView
	if err := yaml.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("Output is not YAML: %v", err)
	}
	if got.Status != "broken" || got.Duration != "1.5s" || len(got.Steps) != 2 {
		t.Errorf("Unexpected result view: %+v", got)
	}
	if got.Steps[1].Message != "wait timed out" {
		t.Errorf("Expected step message to be shown, got %q", got.Steps[1].Message)
	}
}

func TestShowResults_SetStatus(t *testing.T) {
	// GIVEN
	store := newMemoryStore(storedResult("abc", report.StatusBroken))

	// WHEN
	var buf bytes.Buffer
	err := ShowResults(context.Background(), &buf, store, ResultsOptions{
		ID:        "abc",
		SetStatus: "Skipped",
		Message:   "saucedemo outage",
	})

	// THEN
	if err != nil {
		t.Fatalf("Expected nil error, got: %v", err)
	}
	if store.results["abc"].Status != report.StatusSkipped {
		t.Errorf("Expected stored status skipped, got %s", store.results["abc"].Status)
	}
	if !strings.Contains(buf.String(), "message: saucedemo outage") {
		t.Errorf("Expected the updated result to be printed, got:\n%s", buf.String())
	}
}

func TestShowResults_Errors(t *testing.T) {
	tests := []struct {
		name    string
		opts    ResultsOptions
		wantErr error
	}{
		{"status without id", ResultsOptions{SetStatus: "passed"}, ErrStatusNeedsID},
		{"unknown status", ResultsOptions{ID: "abc", SetStatus: "flaky"}, report.ErrUnknownStatus},
		{"unknown id", ResultsOptions{ID: "missing"}, repository.ErrResultNotFound},
		{"unknown scenario", ResultsOptions{Scenario: "refund"}, ErrUnknownScenario},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newMemoryStore(storedResult("abc", report.StatusBroken))

			err := ShowResults(context.Background(), &bytes.Buffer{}, store, tt.opts)

			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Expected %v, got: %v", tt.wantErr, err)
			}
			if store.results["abc"].Status != report.StatusBroken {
				t.Error("Expected the stored result to be unchanged")
			}
		})
	}
}

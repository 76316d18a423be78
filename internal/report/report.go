// Package report attaches reporting metadata to a running test and turns
// the test's outcome into a Result that sinks can store.
package report

import (
	"errors"
	"fmt"
	"strings"
)

// Severity ranks how much a failing test matters
type Severity string

// Severities, most to least severe
const (
	SeverityBlocker  Severity = "blocker"
	SeverityCritical Severity = "critical"
	SeverityNormal   Severity = "normal"
	SeverityMinor    Severity = "minor"
	SeverityTrivial  Severity = "trivial"
)

// ErrUnknownSeverity is returned by ParseSeverity for text outside the enum
var ErrUnknownSeverity = errors.New("unknown severity")

// ParseSeverity accepts any case and surrounding spaces
func ParseSeverity(s string) (Severity, error) {
	switch sev := Severity(strings.ToLower(strings.TrimSpace(s))); sev {
	case SeverityBlocker, SeverityCritical, SeverityNormal, SeverityMinor, SeverityTrivial:
		return sev, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownSeverity, s)
}

// AnnotationType names the kind of tag attached to a test
type AnnotationType string

// Annotation types
const (
	AnnotationFeature     AnnotationType = "feature"
	AnnotationStory       AnnotationType = "story"
	AnnotationSeverity    AnnotationType = "severity"
	AnnotationLink        AnnotationType = "link"
	AnnotationDescription AnnotationType = "description"
)

// Annotation is one tag, in the order it was added
type Annotation struct {
	Type        AnnotationType `json:"type"`
	Description string         `json:"description"`
}

// DefaultLinkName is used by AddLink when no name is given
const DefaultLinkName = "Link"

// Link is a named URL attached to a test
type Link struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// Status is the outcome of a test or a step
type Status string

// Statuses. Failed means an expectation was not met, broken means the test
// could not run to the point of checking it.
const (
	StatusPassed  Status = "passed"
	StatusFailed  Status = "failed"
	StatusBroken  Status = "broken"
	StatusSkipped Status = "skipped"
)

// ErrUnknownStatus is returned by ParseStatus for text outside the enum
var ErrUnknownStatus = errors.New("unknown status")

// ParseStatus accepts any case and surrounding spaces
func ParseStatus(s string) (Status, error) {
	switch st := Status(strings.ToLower(strings.TrimSpace(s))); st {
	case StatusPassed, StatusFailed, StatusBroken, StatusSkipped:
		return st, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownStatus, s)
}

// ErrAssertion marks errors that are failed expectations. Wrap it to have
// a step or test reported as failed rather than broken.
var ErrAssertion = errors.New("assertion failed")

// StatusOf classifies err
func StatusOf(err error) Status {
	switch {
	case err == nil:
		return StatusPassed
	case errors.Is(err, ErrAssertion):
		return StatusFailed
	default:
		return StatusBroken
	}
}

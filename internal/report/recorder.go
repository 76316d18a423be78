package report

import (
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// StepResult is one named step of a test
type StepResult struct {
	Name    string
	Status  Status
	Message string
	Start   time.Time
	Stop    time.Time
}

// Result is a finished test ready for a Sink
type Result struct {
	UUID        string
	Name        string
	FullName    string
	Status      Status
	Message     string
	Annotations []Annotation
	Links       []Link
	Steps       []StepResult
	Start       time.Time
	Stop        time.Time
}

// Label returns the first annotation of type t, or ""
func (r *Result) Label(t AnnotationType) string {
	for _, a := range r.Annotations {
		if a.Type == t {
			return a.Description
		}
	}
	return ""
}

// Recorder collects annotations and steps for one running test. A test owns
// its Recorder; it is not safe for concurrent use.
type Recorder struct {
	name        string
	fullName    string
	annotations []Annotation
	links       []Link
	steps       []StepResult
	start       time.Time
	now         func() time.Time
	logger      *zap.Logger
}

// Option configures a Recorder
type Option func(*Recorder)

// WithClock replaces time.Now
func WithClock(now func() time.Time) Option {
	return func(r *Recorder) { r.now = now }
}

// WithLogger logs each step as it finishes
func WithLogger(logger *zap.Logger) Option {
	return func(r *Recorder) { r.logger = logger }
}

// WithFullName sets the qualified test name, e.g. suite/test
func WithFullName(fullName string) Option {
	return func(r *Recorder) { r.fullName = fullName }
}

// NewRecorder starts recording the test called name
func NewRecorder(name string, opts ...Option) *Recorder {
	r := &Recorder{name: name, fullName: name, now: time.Now, logger: zap.NewNop()}
	for _, opt := range opts {
		opt(r)
	}
	r.start = r.now()
	return r
}

func (r *Recorder) AddFeature(feature string) {
	r.annotate(AnnotationFeature, feature)
}

func (r *Recorder) AddStory(story string) {
	r.annotate(AnnotationStory, story)
}

func (r *Recorder) SetSeverity(severity Severity) {
	r.annotate(AnnotationSeverity, string(severity))
}

// AddLink attaches url under name, or under DefaultLinkName if name is empty
func (r *Recorder) AddLink(url, name string) {
	if name == "" {
		name = DefaultLinkName
	}
	r.links = append(r.links, Link{Name: name, URL: url})
	r.annotate(AnnotationLink, name+": "+url)
}

func (r *Recorder) AddDescription(description string) {
	r.annotate(AnnotationDescription, description)
}

func (r *Recorder) annotate(t AnnotationType, description string) {
	r.annotations = append(r.annotations, Annotation{Type: t, Description: description})
}

// Annotations returns a copy of every tag added so far
func (r *Recorder) Annotations() []Annotation {
	out := make([]Annotation, len(r.annotations))
	copy(out, r.annotations)
	return out
}

// Steps returns a copy of the steps recorded so far
func (r *Recorder) Steps() []StepResult {
	out := make([]StepResult, len(r.steps))
	copy(out, r.steps)
	return out
}

// Step runs fn as a named step and records its outcome. fn's error is
// returned unchanged.
func (r *Recorder) Step(name string, fn func() error) error {
	step := StepResult{Name: name, Start: r.now()}
	err := fn()
	step.Stop = r.now()
	step.Status = StatusOf(err)
	if err != nil {
		step.Message = err.Error()
	}
	r.steps = append(r.steps, step)

	r.logger.Info("Step finished",
		zap.String("step", name),
		zap.String("status", string(step.Status)),
		zap.Duration("duration", step.Stop.Sub(step.Start)),
		zap.Error(err))
	return err
}

// Finish seals the test with err as its outcome
func (r *Recorder) Finish(err error) *Result {
	res := &Result{
		UUID:        uuid.NewString(),
		Name:        r.name,
		FullName:    r.fullName,
		Status:      StatusOf(err),
		Annotations: r.Annotations(),
		Links:       append([]Link(nil), r.links...),
		Steps:       r.Steps(),
		Start:       r.start,
		Stop:        r.now(),
	}
	if err != nil {
		res.Message = err.Error()
	}
	return res
}

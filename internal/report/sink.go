package report

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// Sink stores finished results
type Sink interface {
	Write(ctx context.Context, res *Result) error
}

// MultiSink writes to every sink, returning all of their errors joined
type MultiSink []Sink

func (m MultiSink) Write(ctx context.Context, res *Result) error {
	var errs []error
	for _, s := range m {
		if err := s.Write(ctx, res); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// FileSink writes one Allure result file per test into Dir
type FileSink struct {
	Dir string
}

// NewFileSink creates dir if needed
func NewFileSink(dir string) (*FileSink, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create results directory: %w", err)
	}
	return &FileSink{Dir: dir}, nil
}

// Path is where res is written
func (s *FileSink) Path(res *Result) string {
	return filepath.Join(s.Dir, res.UUID+"-result.json")
}

func (s *FileSink) Write(ctx context.Context, res *Result) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	data, err := json.MarshalIndent(toAllure(res), "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode result: %w", err)
	}
	if err := os.WriteFile(s.Path(res), data, 0o644); err != nil {
		return fmt.Errorf("failed to write result: %w", err)
	}
	return nil
}

type allureLabel struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

type allureLink struct {
	Name string `json:"name"`
	URL  string `json:"url"`
	Type string `json:"type"`
}

type allureStatusDetails struct {
	Message string `json:"message,omitempty"`
}

type allureStep struct {
	Name          string               `json:"name"`
	Status        Status               `json:"status"`
	Stage         string               `json:"stage"`
	StatusDetails *allureStatusDetails `json:"statusDetails,omitempty"`
	Start         int64                `json:"start"`
	Stop          int64                `json:"stop"`
}

type allureResult struct {
	UUID          string               `json:"uuid"`
	HistoryID     string               `json:"historyId"`
	Name          string               `json:"name"`
	FullName      string               `json:"fullName"`
	Status        Status               `json:"status"`
	Stage         string               `json:"stage"`
	StatusDetails *allureStatusDetails `json:"statusDetails,omitempty"`
	Description   string               `json:"description,omitempty"`
	Labels        []allureLabel        `json:"labels"`
	Links         []allureLink         `json:"links"`
	Steps         []allureStep         `json:"steps"`
	Start         int64                `json:"start"`
	Stop          int64                `json:"stop"`
}

func details(msg string) *allureStatusDetails {
	if msg == "" {
		return nil
	}
	return &allureStatusDetails{Message: msg}
}

func millis(t time.Time) int64 {
	return t.UnixMilli()
}

// toAllure maps a Result onto the Allure 2 result-file schema. Descriptions
// become the description field, links the links array, every other
// annotation a label.
func toAllure(res *Result) allureResult {
	out := allureResult{
		UUID:          res.UUID,
		HistoryID:     res.FullName,
		Name:          res.Name,
		FullName:      res.FullName,
		Status:        res.Status,
		Stage:         "finished",
		StatusDetails: details(res.Message),
		Labels:        []allureLabel{},
		Links:         []allureLink{},
		Steps:         []allureStep{},
		Start:         millis(res.Start),
		Stop:          millis(res.Stop),
	}
	for _, a := range res.Annotations {
		switch a.Type {
		case AnnotationDescription:
			out.Description = a.Description
		case AnnotationLink:
		default:
			out.Labels = append(out.Labels, allureLabel{Name: string(a.Type), Value: a.Description})
		}
	}
	for _, l := range res.Links {
		out.Links = append(out.Links, allureLink{Name: l.Name, URL: l.URL, Type: "link"})
	}
	for _, s := range res.Steps {
		out.Steps = append(out.Steps, allureStep{
			Name:          s.Name,
			Status:        s.Status,
			Stage:         "finished",
			StatusDetails: details(s.Message),
			Start:         millis(s.Start),
			Stop:          millis(s.Stop),
		})
	}
	return out
}

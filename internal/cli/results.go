package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/swaglabs/checkout-e2e/internal/config"
	"github.com/swaglabs/checkout-e2e/internal/database"
	"github.com/swaglabs/checkout-e2e/internal/report"
	"github.com/swaglabs/checkout-e2e/internal/repository"
	"github.com/swaglabs/checkout-e2e/internal/scenario"
)

// ErrStatusNeedsID is returned when --set-status is given without --id
var ErrStatusNeedsID = errors.New("--set-status needs --id")

// ResultStore is what the results command reads and triages
type ResultStore interface {
	GetResultByID(ctx context.Context, id string) (*report.Result, error)
	UpdateResultStatus(ctx context.Context, id string, status report.Status, message string) error
	CountByStatus(ctx context.Context, fullName string) (map[report.Status]int, error)
}

var _ ResultStore = (*repository.ResultRepository)(nil)

// ResultsOptions are the flags of the results command
type ResultsOptions struct {
	Scenario  string
	ID        string
	SetStatus string
	Message   string
}

// OpenResultStore connects to the Postgres named by POSTGRES_* and migrates
// it. The returned close func releases the connection pool.
func OpenResultStore(getenv func(string) string, logger *zap.Logger) (*repository.ResultRepository, func() error, error) {
	pgCfg, err := config.LoadPostgresConfig(getenv)
	if err != nil {
		return nil, nil, err
	}
	db, err := database.Connect(pgCfg)
	if err != nil {
		return nil, nil, err
	}
	if err := database.RunMigrations(db, logger); err != nil {
		db.Close()
		return nil, nil, err
	}
	logger.Debug("Opened result store", zap.String("host", pgCfg.Host), zap.String("database", pgCfg.Database))
	return repository.NewResultRepository(db), db.Close, nil
}

type countsView struct {
	Scenario string         `yaml:"scenario"`
	Counts   map[string]int `yaml:"counts"`
}

type stepView struct {
	Name    string `yaml:"name"`
	Status  string `yaml:"status"`
	Message string `yaml:"message,omitempty"`
}

type resultView struct {
	ID       string     `yaml:"id"`
	FullName string     `yaml:"fullName"`
	Status   string     `yaml:"status"`
	Message  string     `yaml:"message,omitempty"`
	Started  string     `yaml:"started"`
	Duration string     `yaml:"duration"`
	Steps    []stepView `yaml:"steps"`
}

// ShowResults prints stored results as YAML. With an ID it prints that
// result, after overriding its status when SetStatus is given. Without one
// it prints per-status counts for the scenario.
func ShowResults(ctx context.Context, w io.Writer, store ResultStore, opts ResultsOptions) error {
	if opts.SetStatus != "" {
		if opts.ID == "" {
			return ErrStatusNeedsID
		}
		status, err := report.ParseStatus(opts.SetStatus)
		if err != nil {
			return err
		}
		if err := store.UpdateResultStatus(ctx, opts.ID, status, opts.Message); err != nil {
			return err
		}
	}

	if opts.ID != "" {
		res, err := store.GetResultByID(ctx, opts.ID)
		if err != nil {
			return err
		}
		return writeYAML(w, toResultView(res))
	}

	newScenario, ok := scenario.Scenarios()[opts.Scenario]
	if !ok {
		return fmt.Errorf("%w %q (want one of %s)", ErrUnknownScenario, opts.Scenario, strings.Join(ScenarioNames(), ", "))
	}
	fullName := newScenario().FullName()
	counts, err := store.CountByStatus(ctx, fullName)
	if err != nil {
		return err
	}

	view := countsView{Scenario: fullName, Counts: make(map[string]int, len(counts))}
	for status, n := range counts {
		view.Counts[string(status)] = n
	}
	return writeYAML(w, view)
}

func toResultView(res *report.Result) resultView {
	view := resultView{
		ID:       res.UUID,
		FullName: res.FullName,
		Status:   string(res.Status),
		Message:  res.Message,
		Started:  res.Start.UTC().Format("2006-01-02T15:04:05Z"),
		Duration: res.Stop.Sub(res.Start).String(),
	}
	for _, s := range res.Steps {
		view.Steps = append(view.Steps, stepView{Name: s.Name, Status: string(s.Status), Message: s.Message})
	}
	return view
}

func writeYAML(w io.Writer, v any) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to encode results: %w", err)
	}
	return enc.Close()
}

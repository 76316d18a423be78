package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/swaglabs/checkout-e2e/internal/config"
	"github.com/swaglabs/checkout-e2e/internal/driver"
	"github.com/swaglabs/checkout-e2e/internal/driver/htmldriver"
	"github.com/swaglabs/checkout-e2e/internal/driver/pwdriver"
	"github.com/swaglabs/checkout-e2e/internal/fixtures"
	"github.com/swaglabs/checkout-e2e/internal/pages"
	"github.com/swaglabs/checkout-e2e/internal/report"
	"github.com/swaglabs/checkout-e2e/internal/scenario"
)

// Driver kinds accepted by --driver
const (
	DriverPlaywright = "playwright"
	DriverHTTP       = "http"
)

// DefaultResultsDir is where Allure result files go unless --results-dir is set
const DefaultResultsDir = "allure-results"

var (
	ErrUnknownDriver   = errors.New("unknown driver")
	ErrUnknownScenario = errors.New("unknown scenario")
)

// RunOptions are the flags of the run command
type RunOptions struct {
	Driver       string
	Scenario     string
	ResultsDir   string
	StoreResults bool
	FixturesPath string
}

// RunDependencies holds what a scenario run needs from the process
type RunDependencies struct {
	Config *config.Config
	Getenv func(string) string
	Logger *zap.Logger
}

// Browser is an open driver plus its failure capture and teardown
type Browser struct {
	Driver  driver.Driver
	capture func(name string) string
	close   func() error
}

// CaptureFailure saves a failure artifact named after name and returns its path,
// or "" when nothing could be written
func (b *Browser) CaptureFailure(name string) string {
	return b.capture(name)
}

func (b *Browser) Close() error {
	return b.close()
}

// OpenDriver starts the driver named by kind
func OpenDriver(kind string, getenv func(string) string, logger *zap.Logger) (*Browser, error) {
	browserCfg, err := config.LoadBrowserConfig(getenv)
	if err != nil {
		return nil, fmt.Errorf("invalid browser configuration: %w", err)
	}

	switch kind {
	case DriverHTTP:
		d, err := htmldriver.New(htmldriver.WithTimeout(browserCfg.Timeout))
		if err != nil {
			return nil, err
		}
		return &Browser{
			Driver:  d,
			capture: snapshotter(d, browserCfg.ScreenshotDir, logger),
			close:   d.Close,
		}, nil

	case DriverPlaywright:
		session, err := pwdriver.Launch(browserCfg, logger)
		if err != nil {
			return nil, err
		}
		d, err := session.NewDriver()
		if err != nil {
			session.Close()
			return nil, err
		}
		return &Browser{
			Driver: d,
			capture: func(name string) string {
				return session.CaptureFailure(d, name)
			},
			close: func() error {
				return errors.Join(d.Close(), session.Close())
			},
		}, nil
	}
	return nil, fmt.Errorf("%w %q (want %s or %s)", ErrUnknownDriver, kind, DriverPlaywright, DriverHTTP)
}

// snapshotter writes the HTTP driver's current document as an .html file
func snapshotter(d driver.Driver, dir string, logger *zap.Logger) func(string) string {
	return func(name string) string {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			logger.Warn("Could not create snapshot dir", zap.Error(err))
			return ""
		}
		path := filepath.Join(dir, driver.ArtifactName(name)+".html")
		if err := d.Capture(path); err != nil {
			logger.Warn("Could not capture snapshot", zap.String("path", path), zap.Error(err))
			return ""
		}
		return path
	}
}

// BuildSinks returns the result file sink and, with StoreResults, the
// Postgres result store. The returned close func releases the database.
func BuildSinks(opts RunOptions, getenv func(string) string, logger *zap.Logger) (report.Sink, func() error, error) {
	dir := opts.ResultsDir
	if dir == "" {
		dir = DefaultResultsDir
	}
	files, err := report.NewFileSink(dir)
	if err != nil {
		return nil, nil, err
	}
	noop := func() error { return nil }
	if !opts.StoreResults {
		return files, noop, nil
	}

	store, closeStore, err := OpenResultStore(getenv, logger)
	if err != nil {
		return nil, nil, fmt.Errorf("--store-results: %w", err)
	}
	logger.Info("Storing results in postgres")

	return report.MultiSink{files, store}, closeStore, nil
}

// ScenarioNames lists the names accepted by --scenario
func ScenarioNames() []string {
	names := make([]string, 0, len(scenario.Scenarios()))
	for name := range scenario.Scenarios() {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// RunScenario runs one scenario end to end and writes its result. The
// returned error is the scenario's *scenario.StepError when a step failed,
// joined with any error from writing the result.
func RunScenario(ctx context.Context, deps RunDependencies, opts RunOptions) (*report.Result, error) {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	newScenario, ok := scenario.Scenarios()[opts.Scenario]
	if !ok {
		return nil, fmt.Errorf("%w %q (want one of %s)", ErrUnknownScenario, opts.Scenario, strings.Join(ScenarioNames(), ", "))
	}
	sc := newScenario()

	data := fixtures.Default()
	if opts.FixturesPath != "" {
		var err error
		if data, err = fixtures.Load(opts.FixturesPath); err != nil {
			return nil, err
		}
	}

	if err := deps.Config.Validate(logger); err != nil {
		return nil, err
	}

	sink, closeSink, err := BuildSinks(opts, deps.Getenv, logger)
	if err != nil {
		return nil, err
	}
	defer closeSink()

	browser, err := OpenDriver(opts.Driver, deps.Getenv, logger)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := browser.Close(); err != nil {
			logger.Warn("Failed to close driver", zap.Error(err))
		}
	}()

	state := scenario.NewState(pages.New(browser.Driver, deps.Config), data)
	res, runErr := scenario.NewRunner(logger).Execute(ctx, sc, state)
	if runErr != nil {
		if path := browser.CaptureFailure(sc.FullName()); path != "" {
			logger.Info("Saved failure capture", zap.String("path", path))
		}
	}

	if err := sink.Write(ctx, res); err != nil {
		return res, errors.Join(runErr, fmt.Errorf("failed to write result: %w", err))
	}
	return res, runErr
}

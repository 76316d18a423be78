package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v2"
	"go.uber.org/zap"

	internalcli "github.com/swaglabs/checkout-e2e/internal/cli"
	"github.com/swaglabs/checkout-e2e/internal/config"
	"github.com/swaglabs/checkout-e2e/internal/handlers"
	"github.com/swaglabs/checkout-e2e/internal/logging"
	"github.com/swaglabs/checkout-e2e/internal/scenario"
)

var version = "0.1.0"

// newLogger builds the process logger from --debug or DEBUG_CONFIG
func newLogger(c *cli.Context) (*zap.Logger, error) {
	return logging.New(c.Bool("debug") || os.Getenv("DEBUG_CONFIG") != "")
}

// ServeCommand returns the serve command
func ServeCommand() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Start the Swag Labs storefront stand-in",
		Action: func(c *cli.Context) error {
			logger, err := newLogger(c)
			if err != nil {
				return err
			}
			defer logger.Sync()

			storefront, err := handlers.NewStorefront(logger)
			if err != nil {
				return fmt.Errorf("failed to create storefront: %w", err)
			}

			return internalcli.RunServe(internalcli.ServerDependencies{
				ServerConfig: config.LoadServerConfig(os.Getenv),
				Handler:      storefront.Routes(),
				Logger:       logger,
			})
		},
	}
}

// RunCommand returns the run command
func RunCommand() *cli.Command {
	return &cli.Command{
		Name:  "run",
		Usage: "Run a scenario against BASE_URL",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "driver",
				Value: internalcli.DriverPlaywright,
				Usage: "browser driver: playwright or http",
			},
			&cli.StringFlag{
				Name:  "scenario",
				Value: "checkout",
				Usage: fmt.Sprintf("scenario to run (%v)", internalcli.ScenarioNames()),
			},
			&cli.StringFlag{
				Name:  "results-dir",
				Value: internalcli.DefaultResultsDir,
				Usage: "directory for Allure result files",
			},
			&cli.BoolFlag{
				Name:  "store-results",
				Usage: "also store results in postgres (POSTGRES_* variables)",
			},
			&cli.StringFlag{
				Name:  "fixtures",
				Usage: "YAML file overriding the built-in test data",
			},
		},
		Action: func(c *cli.Context) error {
			logger, err := newLogger(c)
			if err != nil {
				return err
			}
			defer logger.Sync()

			ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
			defer stop()

			deps := internalcli.RunDependencies{
				Config: config.Load(os.Getenv),
				Getenv: os.Getenv,
				Logger: logger,
			}
			opts := internalcli.RunOptions{
				Driver:       c.String("driver"),
				Scenario:     c.String("scenario"),
				ResultsDir:   c.String("results-dir"),
				StoreResults: c.Bool("store-results"),
				FixturesPath: c.String("fixtures"),
			}

			res, err := internalcli.RunScenario(ctx, deps, opts)
			var stepErr *scenario.StepError
			if errors.As(err, &stepErr) {
				return cli.Exit(fmt.Sprintf("%s: %s", res.Status, stepErr), 1)
			}
			if err != nil {
				return err
			}
			logger.Info("Scenario passed", zap.String("scenario", res.FullName))
			return nil
		},
	}
}

// ResultsCommand returns the results command
func ResultsCommand() *cli.Command {
	return &cli.Command{
		Name:  "results",
		Usage: "Show or triage results stored with run --store-results",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "scenario",
				Value: "checkout",
				Usage: "scenario to count stored results for",
			},
			&cli.StringFlag{
				Name:  "id",
				Usage: "show the stored result with this ID",
			},
			&cli.StringFlag{
				Name:  "set-status",
				Usage: "override the status of --id (passed, failed, broken, skipped)",
			},
			&cli.StringFlag{
				Name:  "message",
				Usage: "message stored with --set-status",
			},
		},
		Action: func(c *cli.Context) error {
			logger, err := newLogger(c)
			if err != nil {
				return err
			}
			defer logger.Sync()

			store, closeStore, err := internalcli.OpenResultStore(os.Getenv, logger)
			if err != nil {
				return err
			}
			defer closeStore()

			return internalcli.ShowResults(c.Context, c.App.Writer, store, internalcli.ResultsOptions{
				Scenario:  c.String("scenario"),
				ID:        c.String("id"),
				SetStatus: c.String("set-status"),
				Message:   c.String("message"),
			})
		},
	}
}

// ConfigCommand returns the config command
func ConfigCommand() *cli.Command {
	return &cli.Command{
		Name:  "config",
		Usage: "Print the resolved configuration",
		Action: func(c *cli.Context) error {
			browser, err := config.LoadBrowserConfig(os.Getenv)
			if err != nil {
				return err
			}
			return internalcli.PrintConfig(c.App.Writer, config.Load(os.Getenv), browser)
		},
	}
}

func main() {
	app := &cli.App{
		Name:    "swaglabs",
		Usage:   "Swag Labs checkout end-to-end suite",
		Version: version,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "debug",
				Usage: "log the resolved configuration and every step",
			},
			&cli.StringFlag{
				Name:  "env-file",
				Value: ".env",
				Usage: "override file loaded before reading the environment",
			},
		},
		Before: func(c *cli.Context) error {
			// Load environment variables from the override file
			if err := config.LoadDotEnv(c.String("env-file")); err != nil {
				fmt.Fprintf(os.Stderr, "Warning: %s not found, using environment variables\n", c.String("env-file"))
			}
			return nil
		},
		Commands: []*cli.Command{
			ServeCommand(),
			RunCommand(),
			ResultsCommand(),
			ConfigCommand(),
		},
	}

	if err := app.RunContext(context.Background(), os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

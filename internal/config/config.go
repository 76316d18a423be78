package config

import (
	"errors"
	"fmt"
	"net/url"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

// DefaultBaseURL is the public Swag Labs deployment.
const DefaultBaseURL = "https://www.saucedemo.com"

// Configuration errors
var (
	ErrMissingBaseURL = errors.New("BASE_URL is not configured. Please set it in .env file or as an environment variable")
	ErrInvalidBaseURL = errors.New("BASE_URL must be an absolute http(s) URL")
)

// Config holds the suite-wide settings resolved once at process start.
type Config struct {
	BaseURL string

	// GitHubPAT is read from GH_PAT (GITHUB_* is reserved by Actions).
	// Nothing in the suite sends it anywhere; it is reserved for a reporting integration.
	GitHubPAT string

	IsCI  bool
	Debug bool

	ciVar      string
	actionsVar string
}

// LoadDotEnv reads KEY=VALUE override files. Variables already present in the
// environment are never overwritten, so real environment variables take precedence.
func LoadDotEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	if err := godotenv.Load(paths...); err != nil {
		return fmt.Errorf("failed to load env file: %w", err)
	}
	return nil
}

// Load builds the configuration from getenv, applying defaults.
func Load(getenv func(string) string) *Config {
	cfg := &Config{
		BaseURL:    getenv("BASE_URL"),
		GitHubPAT:  getenv("GH_PAT"),
		Debug:      getenv("DEBUG_CONFIG") != "",
		ciVar:      getenv("CI"),
		actionsVar: getenv("GITHUB_ACTIONS"),
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	cfg.IsCI = cfg.ciVar != "" || cfg.actionsVar != ""
	return cfg
}

// Validate fails on a missing or malformed base URL. A missing GH_PAT only
// produces warnings, worded differently for CI and local runs.
func (c *Config) Validate(logger *zap.Logger) error {
	if c.BaseURL == "" {
		return ErrMissingBaseURL
	}
	u, err := url.Parse(c.BaseURL)
	if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return fmt.Errorf("%w: %q", ErrInvalidBaseURL, c.BaseURL)
	}

	if c.GitHubPAT == "" {
		if c.IsCI {
			logger.Warn("GH_PAT is not configured in CI environment. Some features may not work.")
			logger.Warn("Make sure GH_PAT secret is added to GitHub repository settings.")
		} else {
			logger.Warn("GH_PAT is not configured for local development. Add it to .env file if needed.")
		}
	}

	if c.Debug {
		logger.Info("Configuration Debug",
			zap.String("BASE_URL", c.BaseURL),
			zap.String("GH_PAT", c.MaskedPAT()),
			zap.Bool("CI Environment", c.IsCI),
			zap.String("GITHUB_ACTIONS", orNotSet(c.actionsVar)),
			zap.String("CI", orNotSet(c.ciVar)),
		)
	}
	return nil
}

// MaskedPAT reports whether the token is set without revealing it.
func (c *Config) MaskedPAT() string {
	if c.GitHubPAT == "" {
		return "not configured"
	}
	return "configured"
}

func orNotSet(v string) string {
	if v == "" {
		return "not set"
	}
	return v
}

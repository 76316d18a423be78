package cli

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/swaglabs/checkout-e2e/internal/config"
)

type configView struct {
	BaseURL string      `yaml:"baseURL"`
	GHPAT   string      `yaml:"ghPAT"`
	CI      bool        `yaml:"ci"`
	Debug   bool        `yaml:"debug"`
	Browser browserView `yaml:"browser"`
}

type browserView struct {
	Name          string `yaml:"name"`
	Headless      bool   `yaml:"headless"`
	SlowMo        string `yaml:"slowMo"`
	Timeout       string `yaml:"timeout"`
	ScreenshotDir string `yaml:"screenshotDir"`
}

// PrintConfig writes the resolved configuration to w as YAML. The token is
// only reported as configured or not.
func PrintConfig(w io.Writer, cfg *config.Config, browser *config.BrowserConfig) error {
	view := configView{
		BaseURL: cfg.BaseURL,
		GHPAT:   cfg.MaskedPAT(),
		CI:      cfg.IsCI,
		Debug:   cfg.Debug,
		Browser: browserView{
			Name:          browser.Browser,
			Headless:      browser.Headless,
			SlowMo:        browser.SlowMo.String(),
			Timeout:       browser.Timeout.String(),
			ScreenshotDir: browser.ScreenshotDir,
		},
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(view); err != nil {
		return fmt.Errorf("failed to encode configuration: %w", err)
	}
	return enc.Close()
}

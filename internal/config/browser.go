package config

import (
	"fmt"
	"strconv"
	"time"
)

// Supported browser engines
const (
	BrowserChromium = "chromium"
	BrowserFirefox  = "firefox"
	BrowserWebKit   = "webkit"
)

// BrowserConfig controls how the automation driver launches the browser
type BrowserConfig struct {
	Browser        string
	Headless       bool
	SlowMo         time.Duration
	Timeout        time.Duration
	ScreenshotDir  string
	ExecutablePath string
}

// LoadBrowserConfig loads browser settings from getenv
func LoadBrowserConfig(getenv func(string) string) (*BrowserConfig, error) {
	cfg := &BrowserConfig{
		Browser:        getenv("BROWSER"),
		Headless:       getenv("HEADLESS") != "false",
		Timeout:        30 * time.Second,
		ScreenshotDir:  getenv("SCREENSHOT_DIR"),
		ExecutablePath: getenv("PLAYWRIGHT_CHROMIUM_EXECUTABLE_PATH"),
	}

	switch cfg.Browser {
	case "":
		cfg.Browser = BrowserChromium
	case BrowserChromium, BrowserFirefox, BrowserWebKit:
	default:
		return nil, fmt.Errorf("BROWSER must be one of chromium, firefox, webkit; got %q", cfg.Browser)
	}

	if v := getenv("SLOW_MO"); v != "" {
		ms, err := strconv.Atoi(v)
		if err != nil || ms < 0 {
			return nil, fmt.Errorf("SLOW_MO must be a non-negative number of milliseconds; got %q", v)
		}
		cfg.SlowMo = time.Duration(ms) * time.Millisecond
	}

	if v := getenv("E2E_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil || d <= 0 {
			return nil, fmt.Errorf("E2E_TIMEOUT must be a positive duration; got %q", v)
		}
		cfg.Timeout = d
	}

	if cfg.ScreenshotDir == "" {
		cfg.ScreenshotDir = "test-results/screenshots"
	}

	return cfg, nil
}

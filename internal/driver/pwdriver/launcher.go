package pwdriver

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/playwright-community/playwright-go"
	"go.uber.org/zap"

	"github.com/swaglabs/checkout-e2e/internal/config"
	"github.com/swaglabs/checkout-e2e/internal/driver"
)

// Session owns a running Playwright instance and one launched browser.
// Each test gets its own page (and context) from NewDriver.
type Session struct {
	pw      *playwright.Playwright
	browser playwright.Browser
	cfg     *config.BrowserConfig
	logger  *zap.Logger
}

// Launch starts Playwright and the configured browser engine. Browsers are
// installed on demand unless PLAYWRIGHT_PREINSTALLED=1.
func Launch(cfg *config.BrowserConfig, logger *zap.Logger) (*Session, error) {
	if os.Getenv("PLAYWRIGHT_PREINSTALLED") != "1" {
		if err := playwright.Install(&playwright.RunOptions{Browsers: []string{cfg.Browser}}); err != nil {
			return nil, fmt.Errorf("could not install playwright browsers: %w", err)
		}
	}

	pw, err := playwright.Run()
	if err != nil {
		return nil, fmt.Errorf("could not start playwright: %w", err)
	}

	opts := playwright.BrowserTypeLaunchOptions{
		Headless: playwright.Bool(cfg.Headless),
		SlowMo:   playwright.Float(float64(cfg.SlowMo.Milliseconds())),
	}
	if cfg.ExecutablePath != "" && cfg.Browser == config.BrowserChromium {
		opts.ExecutablePath = playwright.String(cfg.ExecutablePath)
	}

	var browserType playwright.BrowserType
	switch cfg.Browser {
	case config.BrowserFirefox:
		browserType = pw.Firefox
	case config.BrowserWebKit:
		browserType = pw.WebKit
	default:
		browserType = pw.Chromium
	}

	browser, err := browserType.Launch(opts)
	if err != nil {
		pw.Stop()
		return nil, fmt.Errorf("could not launch %s: %w", cfg.Browser, err)
	}
	logger.Info("browser launched",
		zap.String("browser", cfg.Browser),
		zap.String("version", browser.Version()),
		zap.Bool("headless", cfg.Headless))

	return &Session{pw: pw, browser: browser, cfg: cfg, logger: logger}, nil
}

// Browser exposes the launched browser for callers that manage pages themselves
func (s *Session) Browser() playwright.Browser {
	return s.browser
}

// NewDriver opens an isolated context and page with the configured default timeout
func (s *Session) NewDriver() (*Driver, error) {
	ctx, err := s.browser.NewContext(playwright.BrowserNewContextOptions{
		Viewport: &playwright.Size{Width: 1280, Height: 720},
	})
	if err != nil {
		return nil, fmt.Errorf("could not create context: %w", err)
	}
	page, err := ctx.NewPage()
	if err != nil {
		ctx.Close()
		return nil, fmt.Errorf("could not create page: %w", err)
	}
	page.SetDefaultTimeout(float64(s.cfg.Timeout.Milliseconds()))
	return &Driver{page: page, ctx: ctx}, nil
}

// CaptureFailure saves a screenshot named after the failed test
func (s *Session) CaptureFailure(d *Driver, name string) string {
	if err := os.MkdirAll(s.cfg.ScreenshotDir, 0o755); err != nil {
		s.logger.Warn("could not create screenshot dir", zap.Error(err))
		return ""
	}
	path := filepath.Join(s.cfg.ScreenshotDir, driver.ArtifactName(name)+".png")
	if err := d.Capture(path); err != nil {
		s.logger.Warn("could not capture screenshot", zap.String("path", path), zap.Error(err))
		return ""
	}
	return path
}

// Close shuts the browser and the Playwright driver down
func (s *Session) Close() error {
	var firstErr error
	if err := s.browser.Close(); err != nil {
		firstErr = fmt.Errorf("close browser: %w", err)
	}
	if err := s.pw.Stop(); err != nil && firstErr == nil {
		firstErr = fmt.Errorf("stop playwright: %w", err)
	}
	return firstErr
}

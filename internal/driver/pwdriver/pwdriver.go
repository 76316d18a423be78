package pwdriver

import (
	"errors"
	"fmt"
	"time"

	"github.com/playwright-community/playwright-go"

	"github.com/swaglabs/checkout-e2e/internal/driver"
)

var _ driver.Driver = (*Driver)(nil)

// Driver adapts a playwright.Page to driver.Driver
type Driver struct {
	page playwright.Page
	ctx  playwright.BrowserContext // closed with the page when the driver created it
}

// New wraps an existing page. The caller keeps ownership of the page's browser.
func New(page playwright.Page) *Driver {
	return &Driver{page: page}
}

// Page exposes the underlying page for playwright-native assertions
func (d *Driver) Page() playwright.Page {
	return d.page
}

func (d *Driver) Goto(url string) error {
	if _, err := d.page.Goto(url); err != nil {
		return fmt.Errorf("navigate to %s: %w", url, translate(err))
	}
	return nil
}

func (d *Driver) URL() string {
	return d.page.URL()
}

func (d *Driver) Locator(selector string) driver.Locator {
	return &locator{loc: d.page.Locator(selector), desc: selector}
}

func (d *Driver) WaitForLoadState() error {
	err := d.page.WaitForLoadState(playwright.PageWaitForLoadStateOptions{
		State: playwright.LoadStateNetworkidle,
	})
	if err != nil {
		return fmt.Errorf("wait for network idle: %w", translate(err))
	}
	return nil
}

func (d *Driver) Capture(path string) error {
	_, err := d.page.Screenshot(playwright.PageScreenshotOptions{
		Path:     playwright.String(path),
		FullPage: playwright.Bool(true),
	})
	return err
}

func (d *Driver) Close() error {
	if d.ctx != nil {
		return d.ctx.Close()
	}
	return d.page.Close()
}

type locator struct {
	loc  playwright.Locator
	desc string
}

func (l *locator) Count() (int, error) {
	n, err := l.loc.Count()
	if err != nil {
		return 0, fmt.Errorf("count %s: %w", l.desc, translate(err))
	}
	return n, nil
}

func (l *locator) Nth(index int) driver.Locator {
	return &locator{loc: l.loc.Nth(index), desc: fmt.Sprintf("%s >> nth=%d", l.desc, index)}
}

func (l *locator) First() driver.Locator {
	return l.Nth(0)
}

func (l *locator) Locator(selector string) driver.Locator {
	return &locator{loc: l.loc.Locator(selector), desc: l.desc + " " + selector}
}

func (l *locator) Click() error {
	if err := l.loc.Click(); err != nil {
		return fmt.Errorf("click %s: %w", l.desc, translate(err))
	}
	return nil
}

func (l *locator) Fill(value string) error {
	if err := l.loc.Fill(value); err != nil {
		return fmt.Errorf("fill %s: %w", l.desc, translate(err))
	}
	return nil
}

func (l *locator) TextContent() (string, error) {
	text, err := l.loc.TextContent()
	if err != nil {
		return "", fmt.Errorf("text of %s: %w", l.desc, translate(err))
	}
	return text, nil
}

func (l *locator) IsVisible() (bool, error) {
	visible, err := l.loc.IsVisible()
	if err != nil {
		return false, fmt.Errorf("visibility of %s: %w", l.desc, translate(err))
	}
	return visible, nil
}

func (l *locator) WaitFor(timeout time.Duration) error {
	if timeout <= 0 {
		timeout = driver.DefaultWaitTimeout
	}
	err := l.loc.WaitFor(playwright.LocatorWaitForOptions{
		State:   playwright.WaitForSelectorStateVisible,
		Timeout: playwright.Float(float64(timeout.Milliseconds())),
	})
	if err != nil {
		return fmt.Errorf("wait for %s (%s): %w", l.desc, timeout, translate(err))
	}
	return nil
}

// translate maps playwright timeouts onto driver.ErrTimeout while keeping the
// original error in the chain.
func translate(err error) error {
	if errors.Is(err, playwright.ErrTimeout) {
		return fmt.Errorf("%w: %w", driver.ErrTimeout, err)
	}
	return err
}

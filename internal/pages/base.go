// Package pages holds the page objects for the Swag Labs storefront. Every
// screen object is built on BasePage, which is the only code that talks to
// the driver.
package pages

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/swaglabs/checkout-e2e/internal/config"
	"github.com/swaglabs/checkout-e2e/internal/driver"
)

// BasePage is the screen-agnostic vocabulary shared by every page object
type BasePage struct {
	driver  driver.Driver
	baseURL string
	flow    *Flow
}

// NewBasePage binds a driver to the configured base URL. flow may be shared
// by the page objects of one test; nil starts a new one.
func NewBasePage(d driver.Driver, cfg *config.Config, flow *Flow) *BasePage {
	if flow == nil {
		flow = NewFlow()
	}
	return &BasePage{driver: d, baseURL: strings.TrimRight(cfg.BaseURL, "/"), flow: flow}
}

// Driver returns the underlying driver
func (p *BasePage) Driver() driver.Driver {
	return p.driver
}

// Flow returns the screen tracker shared by this test's page objects
func (p *BasePage) Flow() *Flow {
	return p.flow
}

// URL is the browser's current address
func (p *BasePage) URL() string {
	return p.driver.URL()
}

// BaseURL is the storefront origin every screen path is relative to
func (p *BasePage) BaseURL() string {
	return p.baseURL
}

// NavigateTo loads url and resets the flow to whatever screen it shows
func (p *BasePage) NavigateTo(url string) error {
	if err := p.driver.Goto(url); err != nil {
		return fmt.Errorf("navigate to %s: %w", url, err)
	}
	p.flow.Reset(ScreenAt(p.driver.URL()))
	return nil
}

// WaitForElement waits until selector is visible. A timeout <= 0 uses
// driver.DefaultWaitTimeout.
func (p *BasePage) WaitForElement(selector string, timeout time.Duration) error {
	if timeout <= 0 {
		timeout = driver.DefaultWaitTimeout
	}
	if err := p.driver.Locator(selector).First().WaitFor(timeout); err != nil {
		return fmt.Errorf("wait for %s: %w", selector, err)
	}
	return nil
}

func (p *BasePage) Click(selector string) error {
	if err := p.driver.Locator(selector).First().Click(); err != nil {
		return fmt.Errorf("click %s: %w", selector, err)
	}
	return nil
}

func (p *BasePage) FillInput(selector, value string) error {
	if err := p.driver.Locator(selector).First().Fill(value); err != nil {
		return fmt.Errorf("fill %s: %w", selector, err)
	}
	return nil
}

// GetText returns the raw text of the first match, or "" if it has none
func (p *BasePage) GetText(selector string) (string, error) {
	text, err := p.driver.Locator(selector).First().TextContent()
	if err != nil {
		return "", fmt.Errorf("read text of %s: %w", selector, err)
	}
	return text, nil
}

// IsElementVisible reports false, not an error, when nothing matches
func (p *BasePage) IsElementVisible(selector string) (bool, error) {
	visible, err := p.driver.Locator(selector).First().IsVisible()
	if err != nil {
		return false, fmt.Errorf("check visibility of %s: %w", selector, err)
	}
	return visible, nil
}

// GetElements returns a lazy handle over every match of selector
func (p *BasePage) GetElements(selector string) driver.Locator {
	return p.driver.Locator(selector)
}

// WaitForNavigation waits for network activity to settle
func (p *BasePage) WaitForNavigation() error {
	if err := p.driver.WaitForLoadState(); err != nil {
		return fmt.Errorf("wait for navigation: %w", err)
	}
	return nil
}

// screenPage adds the screen guard to BasePage. Each page object embeds one.
type screenPage struct {
	*BasePage
	screen Screen
	root   string
}

// ensure fails with *WrongScreenError unless the browser shows p's screen
func (p *screenPage) ensure() error {
	url := p.driver.URL()
	if got := ScreenAt(url); got != p.screen {
		return &WrongScreenError{Want: p.screen, Got: got, URL: url}
	}
	return nil
}

// WaitForPageLoad waits for the screen's root container, checks the browser
// is on this screen and records the arrival in the flow.
func (p *screenPage) WaitForPageLoad() error {
	if err := p.WaitForElement(p.root, driver.DefaultWaitTimeout); err != nil {
		return fmt.Errorf("%s page did not load: %w", p.screen, err)
	}
	if err := p.ensure(); err != nil {
		return err
	}
	return p.flow.Advance(p.screen)
}

// Screen returns the screen this page object drives
func (p *screenPage) Screen() Screen {
	return p.screen
}

// readCartBadge parses the header badge; a hidden badge means an empty cart
func (p *screenPage) readCartBadge(selector string) (int, error) {
	visible, err := p.IsElementVisible(selector)
	if err != nil || !visible {
		return 0, err
	}
	text, err := p.GetText(selector)
	if err != nil {
		return 0, err
	}
	n, err := strconv.Atoi(strings.TrimSpace(text))
	if err != nil {
		return 0, fmt.Errorf("cart badge %q is not a number: %w", text, err)
	}
	return n, nil
}

// LineItem is one row of the cart or the checkout overview
type LineItem struct {
	Name     string
	Price    string
	Quantity string
}

// CartItem is a row on the cart screen
type CartItem = LineItem

// OverviewItem is a row on the checkout overview screen
type OverviewItem = LineItem

// lineItemSelectors are shared by the cart and overview screens
type lineItemSelectors struct {
	item, name, price, quantity string
}

// readLineItems snapshots every row in DOM order
func (p *screenPage) readLineItems(sel lineItemSelectors) ([]LineItem, error) {
	rows := p.GetElements(sel.item)
	count, err := rows.Count()
	if err != nil {
		return nil, fmt.Errorf("count %s: %w", sel.item, err)
	}

	items := make([]LineItem, 0, count)
	for i := 0; i < count; i++ {
		row := rows.Nth(i)
		name, err := text(row, sel.name)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i, err)
		}
		price, err := text(row, sel.price)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i, err)
		}
		quantity, err := text(row, sel.quantity)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i, err)
		}
		items = append(items, LineItem{Name: name, Price: price, Quantity: quantity})
	}
	return items, nil
}

// text reads and trims the first match of selector under scope
func text(scope driver.Locator, selector string) (string, error) {
	s, err := scope.Locator(selector).First().TextContent()
	if err != nil {
		return "", fmt.Errorf("read %s: %w", selector, err)
	}
	return strings.TrimSpace(s), nil
}

func containsName(items []LineItem, name string) bool {
	_, ok := findByName(items, name)
	return ok
}

func findByName(items []LineItem, name string) (LineItem, bool) {
	for _, item := range items {
		if item.Name == name {
			return item, true
		}
	}
	return LineItem{}, false
}

// visibleText returns the trimmed text of selector, or "" when it is not shown
func (p *screenPage) visibleText(selector string) (string, error) {
	if err := p.ensure(); err != nil {
		return "", err
	}
	visible, err := p.IsElementVisible(selector)
	if err != nil || !visible {
		return "", err
	}
	s, err := p.GetText(selector)
	return strings.TrimSpace(s), err
}

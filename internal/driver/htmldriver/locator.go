package htmldriver

import (
	"fmt"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/swaglabs/checkout-e2e/internal/driver"
)

// locator re-runs resolve against the browser's current document on every call
type locator struct {
	b       *Browser
	desc    string
	resolve func() *goquery.Selection
}

func (l *locator) Count() (int, error) {
	return l.resolve().Length(), nil
}

func (l *locator) Nth(index int) driver.Locator {
	parent := l.resolve
	return &locator{
		b:    l.b,
		desc: fmt.Sprintf("%s >> nth=%d", l.desc, index),
		resolve: func() *goquery.Selection {
			if index < 0 {
				return parent().Slice(0, 0)
			}
			return parent().Eq(index)
		},
	}
}

func (l *locator) First() driver.Locator {
	return l.Nth(0)
}

func (l *locator) Locator(selector string) driver.Locator {
	parent := l.resolve
	return &locator{
		b:    l.b,
		desc: l.desc + " " + selector,
		resolve: func() *goquery.Selection {
			return parent().Find(selector)
		},
	}
}

// first returns the first match or ErrNoElement
func (l *locator) first() (*goquery.Selection, error) {
	s := l.resolve()
	if s.Length() == 0 {
		return nil, fmt.Errorf("%w: %s", driver.ErrNoElement, l.desc)
	}
	return s.First(), nil
}

func (l *locator) Click() error {
	el, err := l.first()
	if err != nil {
		return fmt.Errorf("click: %w", err)
	}
	if !visible(el) {
		return fmt.Errorf("click: %w: %s is hidden", driver.ErrNotInteractable, l.desc)
	}
	if err := l.b.activate(el, l.desc); err != nil {
		return fmt.Errorf("click: %w", err)
	}
	return nil
}

func (l *locator) Fill(value string) error {
	el, err := l.first()
	if err != nil {
		return fmt.Errorf("fill: %w", err)
	}
	if _, disabled := el.Attr("disabled"); disabled || !visible(el) {
		return fmt.Errorf("fill: %w: %s", driver.ErrNotInteractable, l.desc)
	}

	switch goquery.NodeName(el) {
	case "textarea":
		el.SetText(value)
	case "input":
		switch inputType(el) {
		case "submit", "image", "button", "reset", "checkbox", "radio", "file":
			return fmt.Errorf("fill: %w: %s is a %s input", driver.ErrNotInteractable, l.desc, inputType(el))
		}
		el.SetAttr("value", value)
	default:
		return fmt.Errorf("fill: %w: %s is not an input", driver.ErrNotInteractable, l.desc)
	}
	return nil
}

func (l *locator) TextContent() (string, error) {
	el, err := l.first()
	if err != nil {
		return "", fmt.Errorf("text content: %w", err)
	}
	return el.Text(), nil
}

func (l *locator) IsVisible() (bool, error) {
	s := l.resolve()
	if s.Length() == 0 {
		return false, nil
	}
	return visible(s.First()), nil
}

// WaitFor checks once. Without scripts the document cannot change until the
// next navigation, so polling for the timeout would only delay the failure.
func (l *locator) WaitFor(timeout time.Duration) error {
	if timeout <= 0 {
		timeout = driver.DefaultWaitTimeout
	}
	s := l.resolve()
	if s.Length() > 0 && visible(s.First()) {
		return nil
	}
	state := "absent"
	if s.Length() > 0 {
		state = "hidden"
	}
	return fmt.Errorf("%w: %s still %s after %s on %s",
		driver.ErrTimeout, l.desc, state, timeout, strings.TrimSpace(l.b.URL()))
}

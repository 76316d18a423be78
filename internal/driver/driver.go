// Package driver defines the browser-automation surface the page objects are
// written against. Implementations live in the pwdriver (live browser) and
// htmldriver (HTTP + static DOM) subpackages.
package driver

import (
	"errors"
	"time"
)

// DefaultWaitTimeout is the budget for explicit waits when none is given.
const DefaultWaitTimeout = 5 * time.Second

// Driver errors. "Not found" and "not yet rendered" are deliberately the same
// failure class from a caller's perspective.
var (
	ErrTimeout         = errors.New("wait timed out")
	ErrNoElement       = errors.New("selector matched no elements")
	ErrNotInteractable = errors.New("element is not interactable")
)

// Driver is one browser page owned by a single test.
type Driver interface {
	// Goto loads url and returns once the document has loaded.
	Goto(url string) error
	// URL is the address of the current document.
	URL() string
	// Locator returns a lazy query over every element matching selector.
	Locator(selector string) Locator
	// WaitForLoadState blocks until network activity settles.
	WaitForLoadState() error
	// Capture writes a failure artifact (screenshot or DOM snapshot) to path.
	Capture(path string) error
	Close() error
}

// Locator is a deferred query. Nothing is resolved until Count or an action
// is called, and each call resolves again against the current DOM, so a
// Locator never goes stale; Nth(i) addresses whatever is i-th at use time.
type Locator interface {
	Count() (int, error)
	Nth(index int) Locator
	First() Locator
	// Locator scopes a further query to descendants of this one.
	Locator(selector string) Locator

	Click() error
	Fill(value string) error
	// TextContent returns the raw text of the first match.
	TextContent() (string, error)
	// IsVisible reports false, without error, when nothing matches.
	IsVisible() (bool, error)
	// WaitFor blocks until the first match is visible or timeout elapses.
	WaitFor(timeout time.Duration) error
}

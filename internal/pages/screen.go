package pages

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// Screen is one step of the storefront's page sequence
type Screen int

// Screens in checkout order. ScreenUnknown is any URL the suite has no page
// object for, including about:blank before the first navigation.
const (
	ScreenUnknown Screen = iota
	ScreenLogin
	ScreenProducts
	ScreenCart
	ScreenCheckout
	ScreenOverview
	ScreenConfirmation
)

var screenNames = map[Screen]string{
	ScreenUnknown:      "unknown",
	ScreenLogin:        "login",
	ScreenProducts:     "products",
	ScreenCart:         "cart",
	ScreenCheckout:     "checkout",
	ScreenOverview:     "checkout overview",
	ScreenConfirmation: "confirmation",
}

var screenPaths = map[Screen]string{
	ScreenProducts:     "/inventory.html",
	ScreenCart:         "/cart.html",
	ScreenCheckout:     "/checkout-step-one.html",
	ScreenOverview:     "/checkout-step-two.html",
	ScreenConfirmation: "/checkout-complete.html",
}

// transitions lists where a shopper can go from each screen without typing
// a URL. Staying on the same screen is always allowed.
var transitions = map[Screen][]Screen{
	ScreenLogin:        {ScreenProducts},
	ScreenProducts:     {ScreenCart},
	ScreenCart:         {ScreenCheckout, ScreenProducts},
	ScreenCheckout:     {ScreenOverview, ScreenCart},
	ScreenOverview:     {ScreenConfirmation, ScreenProducts},
	ScreenConfirmation: {ScreenProducts},
}

func (s Screen) String() string {
	if name, ok := screenNames[s]; ok {
		return name
	}
	return fmt.Sprintf("Screen(%d)", int(s))
}

// Path is the URL path the screen is served from, relative to the base URL
func (s Screen) Path() string {
	if s == ScreenLogin {
		return "/"
	}
	return screenPaths[s]
}

// ScreenAt identifies the screen shown at rawURL from its path
func ScreenAt(rawURL string) Screen {
	u, err := url.Parse(rawURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") {
		return ScreenUnknown
	}
	for s, p := range screenPaths {
		if strings.HasSuffix(u.Path, p) {
			return s
		}
	}
	if strings.Trim(u.Path, "/") == "" {
		return ScreenLogin
	}
	return ScreenUnknown
}

// CanTransition reports whether the table allows moving from one screen to
// another. Any move out of ScreenUnknown is allowed.
func CanTransition(from, to Screen) bool {
	if from == ScreenUnknown || from == to {
		return true
	}
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// Screen errors
var (
	ErrWrongScreen       = errors.New("browser is on the wrong screen")
	ErrIllegalTransition = errors.New("illegal screen transition")
)

// WrongScreenError is returned when a page object is used while the browser
// shows a different screen. It matches ErrWrongScreen.
type WrongScreenError struct {
	Want Screen
	Got  Screen
	URL  string
}

func (e *WrongScreenError) Error() string {
	return fmt.Sprintf("expected %s screen, browser is on %s screen (%s)", e.Want, e.Got, e.URL)
}

func (e *WrongScreenError) Is(target error) bool {
	return target == ErrWrongScreen
}

// Flow tracks the screen a single test's browser is on. It is owned by one
// test and is not safe for concurrent use.
type Flow struct {
	current Screen
	history []Screen
}

// NewFlow starts a flow on ScreenUnknown
func NewFlow() *Flow {
	return &Flow{}
}

// Current returns the last recorded screen
func (f *Flow) Current() Screen {
	return f.current
}

// History returns every screen recorded since the flow started, oldest first
func (f *Flow) History() []Screen {
	out := make([]Screen, len(f.history))
	copy(out, f.history)
	return out
}

// Reset jumps to s without checking the table. Used for direct navigation.
func (f *Flow) Reset(s Screen) {
	f.current = s
	f.history = append(f.history, s)
}

// Advance records arrival on s, failing if the table does not allow it
func (f *Flow) Advance(s Screen) error {
	if !CanTransition(f.current, s) {
		return fmt.Errorf("%w: %s -> %s", ErrIllegalTransition, f.current, s)
	}
	if s != f.current {
		f.history = append(f.history, s)
	}
	f.current = s
	return nil
}

package scenario

import (
	"context"
	"strings"

	"github.com/swaglabs/checkout-e2e/internal/pages"
	"github.com/swaglabs/checkout-e2e/internal/report"
)

// LockedOutLogin checks that a locked account is refused at the login form
func LockedOutLogin() Scenario {
	return Scenario{
		Suite:       SuiteName,
		Name:        "Should reject a locked out user",
		Feature:     "E-Commerce Platform",
		Story:       "Login",
		Severity:    report.SeverityNormal,
		Description: "Test that a locked out user stays on the login page with an error",
		Steps: []Step{
			{Name: "Given user is on Swag Labs login page", Run: openLoginPage},
			{Name: "When a locked out user enters credentials and clicks login", Run: loginLockedOut},
			{Name: "Then user stays on the login page with a locked out error", Run: expectLockedOutError},
		},
	}
}

func loginLockedOut(_ context.Context, s *State) error {
	creds := s.Fixtures.LockedOutCredentials
	return s.Pages.Login.Login(creds.Username, creds.Password)
}

func expectLockedOutError(_ context.Context, s *State) error {
	if err := s.Pages.Login.WaitForPageLoad(); err != nil {
		return err
	}
	url := s.Pages.Base.URL()
	if err := expectf(pages.ScreenAt(url) == pages.ScreenLogin, "expected to stay on the login page, got %s", url); err != nil {
		return err
	}

	message, err := s.Pages.Login.ErrorMessage()
	if err != nil {
		return err
	}
	return expectf(strings.Contains(message, "locked out"), "login error %q does not mention a locked out user", message)
}

// Scenarios lists every scenario by a short name for the command line
func Scenarios() map[string]func() Scenario {
	return map[string]func() Scenario{
		"checkout":   Checkout,
		"locked-out": LockedOutLogin,
	}
}

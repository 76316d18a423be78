// Package testutil starts the storefront stand-in and an HTTP driver for
// tests that exercise page objects without a browser.
package testutil

import (
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"strconv"
	"testing"

	"go.uber.org/zap/zaptest"

	"github.com/swaglabs/checkout-e2e/internal/config"
	"github.com/swaglabs/checkout-e2e/internal/driver/htmldriver"
	"github.com/swaglabs/checkout-e2e/internal/handlers"
	"github.com/swaglabs/checkout-e2e/internal/pages"
)

// Storefront is a running stand-in plus a browser pointed at it
type Storefront struct {
	Server  *httptest.Server
	Handler *handlers.Storefront
	Browser *htmldriver.Browser
	Config  *config.Config

	// Jar holds the browser's cookies, so a test can act as the same shopper
	// behind the page's back
	Jar http.CookieJar
}

// StartStorefront serves the storefront for the life of t
func StartStorefront(t *testing.T) *Storefront {
	t.Helper()

	sf, err := handlers.NewStorefront(zaptest.NewLogger(t))
	if err != nil {
		t.Fatalf("Failed to create storefront: %v", err)
	}
	srv := httptest.NewServer(sf.Routes())
	t.Cleanup(srv.Close)

	jar, err := cookiejar.New(nil)
	if err != nil {
		t.Fatalf("Failed to create cookie jar: %v", err)
	}
	client := srv.Client()
	client.Jar = jar

	browser, err := htmldriver.New(htmldriver.WithHTTPClient(client))
	if err != nil {
		t.Fatalf("Failed to create browser: %v", err)
	}
	t.Cleanup(func() { browser.Close() })

	return &Storefront{
		Server:  srv,
		Handler: sf,
		Browser: browser,
		Config:  &config.Config{BaseURL: srv.URL},
		Jar:     jar,
	}
}

// Pages builds a fresh page object set over the storefront's browser
func (s *Storefront) Pages() *pages.Set {
	return pages.New(s.Browser, s.Config)
}

// AddToCart adds product id to the browser's cart without touching the page
func (s *Storefront) AddToCart(t *testing.T, id int) {
	t.Helper()
	client := &http.Client{
		Jar: s.Jar,
		CheckRedirect: func(*http.Request, []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}
	resp, err := client.PostForm(s.Server.URL+"/cart/add", url.Values{"id": {strconv.Itoa(id)}})
	if err != nil {
		t.Fatalf("Failed to add product %d: %v", id, err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusSeeOther {
		t.Fatalf("Expected add to cart to redirect, got %d", resp.StatusCode)
	}
}

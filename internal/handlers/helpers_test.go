package handlers

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"go.uber.org/zap/zaptest"
)

func newTestStorefront(t *testing.T) *Storefront {
	t.Helper()
	sf, err := NewStorefront(zaptest.NewLogger(t))
	if err != nil {
		t.Fatalf("Failed to create storefront: %v", err)
	}
	return sf
}

// postForm sends a form-encoded POST through handler, carrying cookie when set
func postForm(handler http.Handler, path string, form url.Values, cookie *http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	if cookie != nil {
		req.AddCookie(cookie)
	}
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	return w
}

func get(handler http.Handler, path string, cookie *http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if cookie != nil {
		req.AddCookie(cookie)
	}
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	return w
}

// login signs standard_user in and returns the session cookie
func login(t *testing.T, handler http.Handler) *http.Cookie {
	t.Helper()
	w := postForm(handler, "/", url.Values{"user-name": {"standard_user"}, "password": {"secret_sauce"}}, nil)
	if w.Code != http.StatusSeeOther {
		t.Fatalf("expected login redirect, got %d", w.Code)
	}
	for _, c := range w.Result().Cookies() {
		if c.Name == SessionCookie {
			return c
		}
	}
	t.Fatal("login did not set a session cookie")
	return nil
}

func assertRedirect(t *testing.T, w *httptest.ResponseRecorder, location string) {
	t.Helper()
	if w.Code != http.StatusSeeOther {
		t.Fatalf("expected status %d, got %d", http.StatusSeeOther, w.Code)
	}
	if got := w.Header().Get("Location"); got != location {
		t.Errorf("expected redirect to %q, got %q", location, got)
	}
}

func assertContains(t *testing.T, w *httptest.ResponseRecorder, want ...string) {
	t.Helper()
	body := w.Body.String()
	for _, s := range want {
		if !strings.Contains(body, s) {
			t.Errorf("expected response to contain '%s', but it was not found", s)
		}
	}
}

func newRequest(method, path string) *http.Request {
	return httptest.NewRequest(method, path, nil)
}

func serve(handler http.Handler, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	return w
}

func contains(body, s string) bool {
	return strings.Contains(body, s)
}

// sessionOf returns the live session behind cookie
func sessionOf(t *testing.T, sf *Storefront, cookie *http.Cookie) *Session {
	t.Helper()
	req := newRequest(http.MethodGet, "/")
	req.AddCookie(cookie)
	var sess *Session
	if !sf.Store.With(req, func(s *Session) { sess = s }) {
		t.Fatal("no session for cookie")
	}
	return sess
}

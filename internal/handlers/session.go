package handlers

import (
	"net/http"
	"sync"

	"github.com/google/uuid"

	"github.com/swaglabs/checkout-e2e/internal/models"
)

// SessionCookie carries the storefront session ID
const SessionCookie = "session-id"

// Session is one logged-in shopper
type Session struct {
	ID       string
	Username string
	Cart     models.Cart
	Customer *models.Customer
	Order    *models.Order
}

// SessionStore keeps sessions in memory. Requests from one shopper may
// arrive concurrently, so every read or write of a Session goes through With.
type SessionStore struct {
	mu       sync.Mutex
	sessions map[string]*Session
}

// NewSessionStore creates an empty store
func NewSessionStore() *SessionStore {
	return &SessionStore{sessions: make(map[string]*Session)}
}

// Create starts a session for username and sets its cookie on w
func (s *SessionStore) Create(w http.ResponseWriter, username string) *Session {
	sess := &Session{ID: uuid.NewString(), Username: username}

	s.mu.Lock()
	s.sessions[sess.ID] = sess
	s.mu.Unlock()

	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    sess.ID,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return sess
}

// With runs fn on the request's session while holding the store lock.
// It reports false when the request carries no valid session.
func (s *SessionStore) With(r *http.Request, fn func(*Session)) bool {
	cookie, err := r.Cookie(SessionCookie)
	if err != nil {
		return false
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[cookie.Value]
	if !ok {
		return false
	}
	fn(sess)
	return true
}

// Destroy ends the request's session and expires its cookie
func (s *SessionStore) Destroy(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(SessionCookie); err == nil {
		s.mu.Lock()
		delete(s.sessions, cookie.Value)
		s.mu.Unlock()
	}
	http.SetCookie(w, &http.Cookie{Name: SessionCookie, Value: "", Path: "/", MaxAge: -1})
}

// Len returns the number of live sessions
func (s *SessionStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// denyAccess sends unauthenticated shoppers back to the login page
func denyAccess(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, "/?denied="+r.URL.Path, http.StatusSeeOther)
}

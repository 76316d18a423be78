package handlers

import (
	"errors"
	"html/template"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/swaglabs/checkout-e2e/internal/models"
)

// LoginData represents the data for the login template
type LoginData struct {
	Username  string
	Error     string
	Usernames []string
}

// LoginHandler serves and processes the login form at /
type LoginHandler struct {
	template *template.Template
	store    *SessionStore
	logger   *zap.Logger
}

// NewLoginHandler creates a new LoginHandler
func NewLoginHandler(store *SessionStore, logger *zap.Logger) (*LoginHandler, error) {
	tmpl, err := parsePage("login.html")
	if err != nil {
		return nil, err
	}
	return &LoginHandler{template: tmpl, store: store, logger: logger}, nil
}

// ServeHTTP handles GET and POST /
func (h *LoginHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}

	switch r.Method {
	case http.MethodGet:
		data := h.data()
		if denied := r.URL.Query().Get("denied"); denied != "" {
			data.Error = "Epic sadface: You can only access '" + denied + "' when you are logged in."
		}
		render(w, h.logger, h.template, data)
	case http.MethodPost:
		h.login(w, r)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

func (h *LoginHandler) login(w http.ResponseWriter, r *http.Request) {
	username := strings.TrimSpace(r.FormValue("user-name"))
	password := r.FormValue("password")

	if err := models.Authenticate(username, password); err != nil {
		h.logger.Info("Login rejected", zap.String("username", username), zap.Error(err))
		data := h.data()
		data.Username = username
		data.Error = loginErrorMessage(err)
		render(w, h.logger, h.template, data)
		return
	}

	sess := h.store.Create(w, username)
	h.logger.Info("Login accepted", zap.String("username", username), zap.String("session", sess.ID))
	http.Redirect(w, r, "/inventory.html", http.StatusSeeOther)
}

func (h *LoginHandler) data() LoginData {
	return LoginData{Usernames: demoUsernames()}
}

func loginErrorMessage(err error) string {
	switch {
	case errors.Is(err, models.ErrUsernameRequired):
		return "Epic sadface: Username is required"
	case errors.Is(err, models.ErrPasswordRequired):
		return "Epic sadface: Password is required"
	case errors.Is(err, models.ErrUserLockedOut):
		return "Epic sadface: Sorry, this user has been locked out."
	default:
		return "Epic sadface: Username and password do not match any user in this service"
	}
}

func demoUsernames() []string {
	return []string{"standard_user", "locked_out_user", "problem_user", "performance_glitch_user", "error_user", "visual_user"}
}

// LogoutHandler ends the session and returns to the login page
type LogoutHandler struct {
	store  *SessionStore
	logger *zap.Logger
}

// NewLogoutHandler creates a new LogoutHandler
func NewLogoutHandler(store *SessionStore, logger *zap.Logger) *LogoutHandler {
	return &LogoutHandler{store: store, logger: logger}
}

// ServeHTTP handles GET /logout
func (h *LogoutHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	// A checkout left on the overview page dies with the session
	var cancelled *models.Order
	h.store.With(r, func(s *Session) {
		cancelled = cancelPendingOrder(s)
	})
	if cancelled != nil {
		h.logger.Info("Order cancelled at logout", zap.String("reference", cancelled.Reference))
	}
	h.store.Destroy(w, r)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

package handlers

import (
	"html/template"
	"net/http"

	"go.uber.org/zap"

	"github.com/swaglabs/checkout-e2e/internal/models"
)

// CartData represents the data for the cart and overview templates
type CartData struct {
	Header
	Items []models.CartItem
}

// CartHandler renders /cart.html
type CartHandler struct {
	template *template.Template
	store    *SessionStore
	logger   *zap.Logger
}

// NewCartHandler creates a new CartHandler
func NewCartHandler(store *SessionStore, logger *zap.Logger) (*CartHandler, error) {
	tmpl, err := parseAppPage("cart.html")
	if err != nil {
		return nil, err
	}
	return &CartHandler{template: tmpl, store: store, logger: logger}, nil
}

// ServeHTTP handles the GET /cart.html request
func (h *CartHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	data := CartData{Header: Header{Title: "Your Cart"}}
	ok := h.store.With(r, func(s *Session) {
		data.CartCount = s.Cart.Count()
		data.Items = s.Cart.Items()
	})
	if !ok {
		denyAccess(w, r)
		return
	}

	render(w, h.logger, h.template, data)
}

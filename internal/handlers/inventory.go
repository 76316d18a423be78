package handlers

import (
	"html/template"
	"net/http"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/swaglabs/checkout-e2e/internal/models"
)

// InventoryItem is a catalogue product plus how many the shopper holds
type InventoryItem struct {
	models.Product
	Quantity int
}

// InventoryData represents the data for the inventory template
type InventoryData struct {
	Header
	Items []InventoryItem
}

// InventoryHandler renders the product list at /inventory.html
type InventoryHandler struct {
	template *template.Template
	store    *SessionStore
	catalog  []models.Product
	logger   *zap.Logger
}

// NewInventoryHandler creates a new InventoryHandler
func NewInventoryHandler(store *SessionStore, catalog []models.Product, logger *zap.Logger) (*InventoryHandler, error) {
	tmpl, err := parseAppPage("inventory.html")
	if err != nil {
		return nil, err
	}
	return &InventoryHandler{template: tmpl, store: store, catalog: catalog, logger: logger}, nil
}

// ServeHTTP handles the GET /inventory.html request
func (h *InventoryHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	data := InventoryData{Header: Header{Title: "Products"}}
	ok := h.store.With(r, func(s *Session) {
		data.CartCount = s.Cart.Count()
		for _, p := range h.catalog {
			data.Items = append(data.Items, InventoryItem{Product: p, Quantity: s.Cart.Quantity(p.ID)})
		}
	})
	if !ok {
		denyAccess(w, r)
		return
	}

	render(w, h.logger, h.template, data)
}

// CartActionHandler adds or removes one product and redirects back
type CartActionHandler struct {
	store  *SessionStore
	remove bool
	logger *zap.Logger
}

// NewCartAddHandler handles POST /cart/add
func NewCartAddHandler(store *SessionStore, logger *zap.Logger) *CartActionHandler {
	return &CartActionHandler{store: store, logger: logger}
}

// NewCartRemoveHandler handles POST /cart/remove
func NewCartRemoveHandler(store *SessionStore, logger *zap.Logger) *CartActionHandler {
	return &CartActionHandler{store: store, remove: true, logger: logger}
}

// ServeHTTP handles the cart mutation request
func (h *CartActionHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	id, err := strconv.Atoi(r.FormValue("id"))
	if err != nil {
		http.Error(w, "Invalid product ID", http.StatusBadRequest)
		return
	}
	product, found := models.FindProduct(id)
	if !found {
		http.Error(w, "Product not found", http.StatusNotFound)
		return
	}

	var actionErr error
	ok := h.store.With(r, func(s *Session) {
		if h.remove {
			actionErr = s.Cart.Remove(product.ID)
			return
		}
		s.Cart.Add(product)
	})
	if !ok {
		denyAccess(w, r)
		return
	}
	if actionErr != nil {
		h.logger.Info("Cart update ignored", zap.Int("product", id), zap.Error(actionErr))
	}

	http.Redirect(w, r, returnPath(r.FormValue("return")), http.StatusSeeOther)
}

// returnPath only allows local absolute paths as redirect targets
func returnPath(p string) string {
	if !strings.HasPrefix(p, "/") || strings.HasPrefix(p, "//") {
		return "/inventory.html"
	}
	return p
}

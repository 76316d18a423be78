package handlers

import (
	"errors"
	"html/template"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/swaglabs/checkout-e2e/internal/models"
)

// CheckoutInfoData represents the data for checkout step one
type CheckoutInfoData struct {
	Header
	Customer models.Customer
	Error    string
}

// CheckoutInfoHandler serves and validates the customer form at /checkout-step-one.html
type CheckoutInfoHandler struct {
	template *template.Template
	store    *SessionStore
	logger   *zap.Logger
}

// NewCheckoutInfoHandler creates a new CheckoutInfoHandler
func NewCheckoutInfoHandler(store *SessionStore, logger *zap.Logger) (*CheckoutInfoHandler, error) {
	tmpl, err := parseAppPage("checkout_info.html")
	if err != nil {
		return nil, err
	}
	return &CheckoutInfoHandler{template: tmpl, store: store, logger: logger}, nil
}

// ServeHTTP handles GET and POST /checkout-step-one.html
func (h *CheckoutInfoHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	data := CheckoutInfoData{Header: Header{Title: "Checkout: Your Information"}}
	customer := models.Customer{
		FirstName:  strings.TrimSpace(r.FormValue("firstName")),
		LastName:   strings.TrimSpace(r.FormValue("lastName")),
		PostalCode: strings.TrimSpace(r.FormValue("postalCode")),
	}
	var validationErr error

	ok := h.store.With(r, func(s *Session) {
		data.CartCount = s.Cart.Count()
		if r.Method != http.MethodPost {
			return
		}
		if validationErr = customer.Validate(); validationErr == nil {
			s.Customer = &customer
		}
	})
	if !ok {
		denyAccess(w, r)
		return
	}

	if r.Method == http.MethodPost {
		if validationErr == nil {
			http.Redirect(w, r, "/checkout-step-two.html", http.StatusSeeOther)
			return
		}
		data.Customer = customer
		data.Error = customerErrorMessage(validationErr)
	}

	render(w, h.logger, h.template, data)
}

func customerErrorMessage(err error) string {
	switch {
	case errors.Is(err, models.ErrFirstNameRequired):
		return "Error: First Name is required"
	case errors.Is(err, models.ErrLastNameRequired):
		return "Error: Last Name is required"
	case errors.Is(err, models.ErrPostalCodeRequired):
		return "Error: Postal Code is required"
	default:
		return "Error: " + err.Error()
	}
}

// OverviewData represents the data for checkout step two
type OverviewData struct {
	Header
	Items     []models.CartItem
	ItemTotal string
	Tax       string
	Total     string
}

// OverviewHandler renders /checkout-step-two.html
type OverviewHandler struct {
	template *template.Template
	store    *SessionStore
	logger   *zap.Logger
}

// NewOverviewHandler creates a new OverviewHandler
func NewOverviewHandler(store *SessionStore, logger *zap.Logger) (*OverviewHandler, error) {
	tmpl, err := parseAppPage("checkout_overview.html")
	if err != nil {
		return nil, err
	}
	return &OverviewHandler{template: tmpl, store: store, logger: logger}, nil
}

// ServeHTTP handles the GET /checkout-step-two.html request
func (h *OverviewHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	data := OverviewData{Header: Header{Title: "Checkout: Overview"}}
	hasCustomer := false
	ok := h.store.With(r, func(s *Session) {
		hasCustomer = s.Customer != nil
		itemTotal := s.Cart.ItemTotalCents()
		tax := models.CalculateTax(itemTotal)
		data.CartCount = s.Cart.Count()
		data.Items = s.Cart.Items()
		data.ItemTotal = models.FormatPrice(itemTotal)
		data.Tax = models.FormatPrice(tax)
		data.Total = models.FormatPrice(itemTotal + tax)
		if hasCustomer {
			refreshPendingOrder(s)
		}
	})
	if !ok {
		denyAccess(w, r)
		return
	}
	if !hasCustomer {
		http.Redirect(w, r, "/checkout-step-one.html", http.StatusSeeOther)
		return
	}

	render(w, h.logger, h.template, data)
}

var errNoCustomer = errors.New("customer information missing")

// refreshPendingOrder prices the current cart into the session's pending
// order, replacing any earlier one. An empty cart leaves no pending order.
func refreshPendingOrder(s *Session) {
	order, err := models.NewOrder(s.Cart.Items(), *s.Customer)
	if err != nil {
		if s.Order != nil && s.Order.IsPending() {
			s.Order = nil
		}
		return
	}
	s.Order = order
}

// cancelPendingOrder abandons the session's pending order, if any
func cancelPendingOrder(s *Session) *models.Order {
	if s.Order == nil || !s.Order.IsPending() {
		return nil
	}
	if err := s.Order.Cancel(); err != nil {
		return nil
	}
	return s.Order
}

// FinishHandler places the order on POST /checkout/finish
type FinishHandler struct {
	store  *SessionStore
	logger *zap.Logger
}

// NewFinishHandler creates a new FinishHandler
func NewFinishHandler(store *SessionStore, logger *zap.Logger) *FinishHandler {
	return &FinishHandler{store: store, logger: logger}
}

// ServeHTTP handles the POST /checkout/finish request
func (h *FinishHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var (
		order    *models.Order
		orderErr error
	)
	ok := h.store.With(r, func(s *Session) {
		if s.Customer == nil {
			orderErr = errNoCustomer
			return
		}
		order = s.Order
		if order == nil || !order.IsPending() {
			order, orderErr = models.NewOrder(s.Cart.Items(), *s.Customer)
			if orderErr != nil {
				return
			}
		}
		if orderErr = order.Complete(); orderErr != nil {
			return
		}
		s.Order = order
		s.Customer = nil
		s.Cart.Clear()
	})
	if !ok {
		denyAccess(w, r)
		return
	}

	switch {
	case errors.Is(orderErr, models.ErrEmptyCart):
		h.logger.Info("Finish with empty cart", zap.Error(orderErr))
		http.Redirect(w, r, "/cart.html", http.StatusSeeOther)
		return
	case orderErr != nil:
		h.logger.Info("Finish rejected", zap.Error(orderErr))
		http.Redirect(w, r, "/checkout-step-one.html", http.StatusSeeOther)
		return
	}

	h.logger.Info("Order placed",
		zap.String("reference", order.Reference),
		zap.Int("lines", len(order.Items)),
		zap.String("total", models.FormatPrice(order.TotalCents())))
	http.Redirect(w, r, "/checkout-complete.html", http.StatusSeeOther)
}

// CancelHandler abandons checkout on POST /checkout/cancel. The cart is
// kept and the shopper goes back to the products page.
type CancelHandler struct {
	store  *SessionStore
	logger *zap.Logger
}

// NewCancelHandler creates a new CancelHandler
func NewCancelHandler(store *SessionStore, logger *zap.Logger) *CancelHandler {
	return &CancelHandler{store: store, logger: logger}
}

// ServeHTTP handles the POST /checkout/cancel request
func (h *CancelHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var cancelled *models.Order
	ok := h.store.With(r, func(s *Session) {
		cancelled = cancelPendingOrder(s)
		s.Customer = nil
	})
	if !ok {
		denyAccess(w, r)
		return
	}

	if cancelled != nil {
		h.logger.Info("Order cancelled", zap.String("reference", cancelled.Reference))
	}
	http.Redirect(w, r, "/inventory.html", http.StatusSeeOther)
}

// CompleteData represents the data for the confirmation template
type CompleteData struct {
	Header
	Order *models.Order
}

// CompleteHandler renders /checkout-complete.html
type CompleteHandler struct {
	template *template.Template
	store    *SessionStore
	logger   *zap.Logger
}

// NewCompleteHandler creates a new CompleteHandler
func NewCompleteHandler(store *SessionStore, logger *zap.Logger) (*CompleteHandler, error) {
	tmpl, err := parseAppPage("checkout_complete.html")
	if err != nil {
		return nil, err
	}
	return &CompleteHandler{template: tmpl, store: store, logger: logger}, nil
}

// ServeHTTP handles the GET /checkout-complete.html request
func (h *CompleteHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	data := CompleteData{Header: Header{Title: "Checkout: Complete!"}}
	ok := h.store.With(r, func(s *Session) {
		data.CartCount = s.Cart.Count()
		data.Order = s.Order
	})
	if !ok {
		denyAccess(w, r)
		return
	}

	render(w, h.logger, h.template, data)
}

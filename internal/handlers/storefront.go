package handlers

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/swaglabs/checkout-e2e/internal/models"
)

// Storefront wires every page of the Swag Labs stand-in to one session store
type Storefront struct {
	Store *SessionStore

	Login        http.Handler
	Logout       http.Handler
	Inventory    http.Handler
	CartAdd      http.Handler
	CartRemove   http.Handler
	Cart         http.Handler
	CheckoutInfo http.Handler
	Overview     http.Handler
	Finish       http.Handler
	Cancel       http.Handler
	Complete     http.Handler
}

// NewStorefront creates all handlers, failing if any template does not parse
func NewStorefront(logger *zap.Logger) (*Storefront, error) {
	store := NewSessionStore()
	sf := &Storefront{
		Store:      store,
		Logout:     NewLogoutHandler(store, logger),
		CartAdd:    NewCartAddHandler(store, logger),
		CartRemove: NewCartRemoveHandler(store, logger),
		Finish:     NewFinishHandler(store, logger),
		Cancel:     NewCancelHandler(store, logger),
	}

	var err error
	if sf.Login, err = NewLoginHandler(store, logger); err != nil {
		return nil, err
	}
	if sf.Inventory, err = NewInventoryHandler(store, models.Catalog, logger); err != nil {
		return nil, err
	}
	if sf.Cart, err = NewCartHandler(store, logger); err != nil {
		return nil, err
	}
	if sf.CheckoutInfo, err = NewCheckoutInfoHandler(store, logger); err != nil {
		return nil, err
	}
	if sf.Overview, err = NewOverviewHandler(store, logger); err != nil {
		return nil, err
	}
	if sf.Complete, err = NewCompleteHandler(store, logger); err != nil {
		return nil, err
	}
	return sf, nil
}

// Routes mounts the storefront on the same paths the public site uses
func (sf *Storefront) Routes() *http.ServeMux {
	mux := http.NewServeMux()
	mux.Handle("/", sf.Login)
	mux.Handle("/logout", sf.Logout)
	mux.Handle("/inventory.html", sf.Inventory)
	mux.Handle("/cart/add", sf.CartAdd)
	mux.Handle("/cart/remove", sf.CartRemove)
	mux.Handle("/cart.html", sf.Cart)
	mux.Handle("/checkout-step-one.html", sf.CheckoutInfo)
	mux.Handle("/checkout-step-two.html", sf.Overview)
	mux.Handle("/checkout/finish", sf.Finish)
	mux.Handle("/checkout/cancel", sf.Cancel)
	mux.Handle("/checkout-complete.html", sf.Complete)
	return mux
}

package pages

import (
	"github.com/swaglabs/checkout-e2e/internal/config"
	"github.com/swaglabs/checkout-e2e/internal/driver"
)

// Set is the page objects for one test, sharing a driver and a Flow
type Set struct {
	Base         *BasePage
	Login        *LoginPage
	Products     *ProductsPage
	Cart         *CartPage
	Checkout     *CheckoutPage
	Overview     *CheckoutOverviewPage
	Confirmation *ConfirmationPage
}

// New builds every page object over d
func New(d driver.Driver, cfg *config.Config) *Set {
	base := NewBasePage(d, cfg, NewFlow())
	return &Set{
		Base:         base,
		Login:        NewLoginPage(base),
		Products:     NewProductsPage(base),
		Cart:         NewCartPage(base),
		Checkout:     NewCheckoutPage(base),
		Overview:     NewCheckoutOverviewPage(base),
		Confirmation: NewConfirmationPage(base),
	}
}

// Flow is the screen tracker shared by the set
func (s *Set) Flow() *Flow {
	return s.Base.flow
}

package pages

import "github.com/swaglabs/checkout-e2e/internal/fixtures"

var checkoutSelectors = struct {
	form, firstName, lastName, postalCode, continueButton, error string
}{
	form:           ".checkout_info",
	firstName:      `input[data-test="firstName"]`,
	lastName:       `input[data-test="lastName"]`,
	postalCode:     `input[data-test="postalCode"]`,
	continueButton: `input[data-test="continue"]`,
	error:          `h3[data-test="error"]`,
}

// CheckoutPage drives the customer information form
type CheckoutPage struct {
	screenPage
}

func NewCheckoutPage(base *BasePage) *CheckoutPage {
	return &CheckoutPage{screenPage{BasePage: base, screen: ScreenCheckout, root: checkoutSelectors.form}}
}

func (p *CheckoutPage) EnterFirstName(firstName string) error {
	return p.fill(checkoutSelectors.firstName, firstName)
}

func (p *CheckoutPage) EnterLastName(lastName string) error {
	return p.fill(checkoutSelectors.lastName, lastName)
}

func (p *CheckoutPage) EnterPostalCode(postalCode string) error {
	return p.fill(checkoutSelectors.postalCode, postalCode)
}

func (p *CheckoutPage) fill(selector, value string) error {
	if err := p.ensure(); err != nil {
		return err
	}
	return p.FillInput(selector, value)
}

// FillCustomerInfo writes every field of info into the form
func (p *CheckoutPage) FillCustomerInfo(info fixtures.CustomerInfo) error {
	if err := p.EnterFirstName(info.FirstName); err != nil {
		return err
	}
	if err := p.EnterLastName(info.LastName); err != nil {
		return err
	}
	return p.EnterPostalCode(info.PostalCode)
}

func (p *CheckoutPage) ClickContinueButton() error {
	if err := p.ensure(); err != nil {
		return err
	}
	return p.Click(checkoutSelectors.continueButton)
}

// CompleteCheckoutStep fills the form and continues to the overview
func (p *CheckoutPage) CompleteCheckoutStep(info fixtures.CustomerInfo) error {
	if err := p.FillCustomerInfo(info); err != nil {
		return err
	}
	return p.ClickContinueButton()
}

// ErrorMessage returns the validation banner, or "" if there is none
func (p *CheckoutPage) ErrorMessage() (string, error) {
	return p.visibleText(checkoutSelectors.error)
}

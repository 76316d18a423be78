package scenario

import (
	"context"
	"regexp"
	"strings"

	"github.com/swaglabs/checkout-e2e/internal/report"
)

// SuiteName groups the storefront scenarios in reports
const SuiteName = "Swag Labs Complete Checkout Flow"

var pricePattern = regexp.MustCompile(`^\$\d+\.\d{2}$`)

// Checkout is the full purchase from login to order confirmation
func Checkout() Scenario {
	return Scenario{
		Suite:       SuiteName,
		Name:        "Should complete a full checkout flow with valid credentials",
		Feature:     "E-Commerce Platform",
		Story:       "Complete Checkout Flow",
		Severity:    report.SeverityCritical,
		Description: "Test complete checkout flow from login to order confirmation",
		Steps:       CheckoutSteps(),
	}
}

// CheckoutSteps lists the checkout flow in order
func CheckoutSteps() []Step {
	return []Step{
		{Name: "Given user is on Swag Labs login page", Run: openLoginPage},
		{Name: "When user enters valid credentials and clicks login", Run: loginWithValidCredentials},
		{Name: "Then user is redirected to products page", Run: expectProductsPage},
		{Name: "When user sees a list of products", Run: expectProductList},
		{Name: "Then user should see productName, productDesc and productPrice in productlist", Run: expectFirstProductDetails},
		{Name: "Then user is able to see Add to cart button", Run: expectAddToCartButton},
		{Name: "Then user is able to click on Add to cart button", Run: addFirstProductToCart},
		{Name: "Then user is able to click on shopping cart icon", Run: openCart},
		{Name: "Then the product should appear in the cart", Run: expectProductInCart},
		{Name: "Then user able to see and click checkout button", Run: startCheckout},
		{Name: "And the user enters valid customer information", Run: enterCustomerInformation},
		{Name: "Then Checkout Overview page is displayed with product details", Run: expectOverview},
		{Name: "Then click on Finish button", Run: finishCheckout},
		{Name: "Then Confirmation message is displayed", Run: expectConfirmation},
	}
}

func openLoginPage(_ context.Context, s *State) error {
	if err := s.Pages.Login.Goto(); err != nil {
		return err
	}
	return s.Pages.Login.WaitForPageLoad()
}

func loginWithValidCredentials(_ context.Context, s *State) error {
	creds := s.Fixtures.Credentials
	return s.Pages.Login.Login(creds.Username, creds.Password)
}

func expectProductsPage(_ context.Context, s *State) error {
	if err := s.Pages.Products.WaitForPageLoad(); err != nil {
		return err
	}
	url := s.Pages.Base.URL()
	return expectf(strings.Contains(url, "/inventory.html"), "URL %s does not contain /inventory.html", url)
}

func expectProductList(_ context.Context, s *State) error {
	products, err := s.Pages.Products.GetAllProducts()
	if err != nil {
		return err
	}
	if err := expectf(len(products) > 0, "product list is empty"); err != nil {
		return err
	}
	for i, p := range products {
		if p.Name == "" || p.Description == "" {
			return expectf(false, "product %d is missing a name or description: %+v", i, p)
		}
		if !pricePattern.MatchString(p.Price) {
			return expectf(false, "product %d price %q is not formatted as $d.dd", i, p.Price)
		}
	}
	return nil
}

func expectFirstProductDetails(_ context.Context, s *State) error {
	products := s.Pages.Products

	name, err := products.GetProductNameByIndex(0)
	if err != nil {
		return err
	}
	if err := expectf(strings.TrimSpace(name) != "", "first product has no name"); err != nil {
		return err
	}

	desc, err := products.GetProductDescriptionByIndex(0)
	if err != nil {
		return err
	}
	if err := expectf(strings.TrimSpace(desc) != "", "first product has no description"); err != nil {
		return err
	}

	price, err := products.GetProductPriceByIndex(0)
	if err != nil {
		return err
	}
	price = strings.TrimSpace(price)
	return expectf(pricePattern.MatchString(price), "first product price %q is not formatted as $d.dd", price)
}

func expectAddToCartButton(_ context.Context, s *State) error {
	visible, err := s.Pages.Products.IsAddToCartButtonVisible(0)
	if err != nil {
		return err
	}
	return expectf(visible, "Add to cart button of the first product is not visible")
}

func addFirstProductToCart(_ context.Context, s *State) error {
	products := s.Pages.Products

	name, err := products.GetProductNameByIndex(0)
	if err != nil {
		return err
	}
	s.SelectedProduct = strings.TrimSpace(name)

	before, err := products.GetCartItemCount()
	if err != nil {
		return err
	}
	if err := products.AddProductToCartByIndex(0); err != nil {
		return err
	}
	after, err := products.GetCartItemCount()
	if err != nil {
		return err
	}
	return expectf(after == before+1, "cart badge went from %d to %d after adding %q", before, after, s.SelectedProduct)
}

func openCart(_ context.Context, s *State) error {
	if err := s.Pages.Products.ClickShoppingCart(); err != nil {
		return err
	}
	return s.Pages.Cart.WaitForPageLoad()
}

func expectProductInCart(_ context.Context, s *State) error {
	found, err := s.Pages.Cart.VerifyProductInCart(s.SelectedProduct)
	if err != nil {
		return err
	}
	return expectf(found, "%q is not in the cart", s.SelectedProduct)
}

func startCheckout(_ context.Context, s *State) error {
	visible, err := s.Pages.Cart.IsCheckoutButtonVisible()
	if err != nil {
		return err
	}
	if err := expectf(visible, "checkout button is not visible"); err != nil {
		return err
	}
	return s.Pages.Cart.ClickCheckoutButton()
}

func enterCustomerInformation(_ context.Context, s *State) error {
	if err := s.Pages.Checkout.WaitForPageLoad(); err != nil {
		return err
	}
	return s.Pages.Checkout.CompleteCheckoutStep(s.Fixtures.Customer)
}

func expectOverview(_ context.Context, s *State) error {
	overview := s.Pages.Overview
	if err := overview.WaitForPageLoad(); err != nil {
		return err
	}

	found, err := overview.VerifyProductInOverview(s.SelectedProduct)
	if err != nil {
		return err
	}
	if err := expectf(found, "%q is not on the checkout overview", s.SelectedProduct); err != nil {
		return err
	}

	items, err := overview.GetAllOverviewItems()
	if err != nil {
		return err
	}
	return expectf(len(items) > 0, "checkout overview has no line items")
}

func finishCheckout(_ context.Context, s *State) error {
	visible, err := s.Pages.Overview.IsFinishButtonVisible()
	if err != nil {
		return err
	}
	if err := expectf(visible, "finish button is not visible"); err != nil {
		return err
	}
	return s.Pages.Overview.ClickFinishButton()
}

func expectConfirmation(_ context.Context, s *State) error {
	confirmation := s.Pages.Confirmation
	if err := confirmation.WaitForPageLoad(); err != nil {
		return err
	}

	displayed, err := confirmation.IsConfirmationPageDisplayed()
	if err != nil {
		return err
	}
	if err := expectf(displayed, "confirmation page is not displayed"); err != nil {
		return err
	}

	message, err := confirmation.GetConfirmationMessage()
	if err != nil {
		return err
	}
	want := s.Fixtures.ExpectedConfirmationMessage
	return expectf(strings.Contains(message, want), "confirmation message %q does not contain %q", message, want)
}

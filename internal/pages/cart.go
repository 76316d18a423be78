package pages

var cartSelectors = struct {
	container, checkout, continueShopping, cartBadge string
	rows                                             lineItemSelectors
}{
	container:        ".cart_list",
	checkout:         `button[data-test="checkout"]`,
	continueShopping: `button[data-test="continue-shopping"]`,
	cartBadge:        ".shopping_cart_badge",
	rows: lineItemSelectors{
		item:     ".cart_item",
		name:     ".inventory_item_name",
		price:    ".inventory_item_price",
		quantity: ".cart_quantity",
	},
}

// CartPage drives /cart.html
type CartPage struct {
	screenPage
}

func NewCartPage(base *BasePage) *CartPage {
	return &CartPage{screenPage{BasePage: base, screen: ScreenCart, root: cartSelectors.container}}
}

// GetAllCartItems snapshots the cart rows in DOM order
func (p *CartPage) GetAllCartItems() ([]CartItem, error) {
	if err := p.ensure(); err != nil {
		return nil, err
	}
	return p.readLineItems(cartSelectors.rows)
}

// VerifyProductInCart reports whether a fresh snapshot holds a row named name
func (p *CartPage) VerifyProductInCart(name string) (bool, error) {
	items, err := p.GetAllCartItems()
	if err != nil {
		return false, err
	}
	return containsName(items, name), nil
}

// GetProductFromCart returns the row named name and whether it was found
func (p *CartPage) GetProductFromCart(name string) (CartItem, bool, error) {
	items, err := p.GetAllCartItems()
	if err != nil {
		return CartItem{}, false, err
	}
	item, ok := findByName(items, name)
	return item, ok, nil
}

func (p *CartPage) GetCartItemCount() (int, error) {
	if err := p.ensure(); err != nil {
		return 0, err
	}
	return p.readCartBadge(cartSelectors.cartBadge)
}

func (p *CartPage) IsCheckoutButtonVisible() (bool, error) {
	if err := p.ensure(); err != nil {
		return false, err
	}
	return p.IsElementVisible(cartSelectors.checkout)
}

func (p *CartPage) ClickCheckoutButton() error {
	if err := p.ensure(); err != nil {
		return err
	}
	return p.Click(cartSelectors.checkout)
}

func (p *CartPage) ClickContinueShopping() error {
	if err := p.ensure(); err != nil {
		return err
	}
	return p.Click(cartSelectors.continueShopping)
}

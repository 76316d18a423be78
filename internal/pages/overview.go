package pages

var overviewSelectors = struct {
	container, finish, subtotal, tax, total string
	rows                                    lineItemSelectors
}{
	container: ".checkout_summary_container",
	finish:    `button[data-test="finish"]`,
	subtotal:  ".summary_subtotal_label",
	tax:       ".summary_tax_label",
	total:     ".summary_total_label",
	rows: lineItemSelectors{
		item:     ".cart_item",
		name:     ".inventory_item_name",
		price:    ".inventory_item_price",
		quantity: ".cart_quantity",
	},
}

// CheckoutOverviewPage drives /checkout-step-two.html
type CheckoutOverviewPage struct {
	screenPage
}

func NewCheckoutOverviewPage(base *BasePage) *CheckoutOverviewPage {
	return &CheckoutOverviewPage{screenPage{BasePage: base, screen: ScreenOverview, root: overviewSelectors.container}}
}

func (p *CheckoutOverviewPage) GetAllOverviewItems() ([]OverviewItem, error) {
	if err := p.ensure(); err != nil {
		return nil, err
	}
	return p.readLineItems(overviewSelectors.rows)
}

func (p *CheckoutOverviewPage) VerifyProductInOverview(name string) (bool, error) {
	items, err := p.GetAllOverviewItems()
	if err != nil {
		return false, err
	}
	return containsName(items, name), nil
}

// GetSubtotal returns the label text as shown, e.g. "Item total: $29.99"
func (p *CheckoutOverviewPage) GetSubtotal() (string, error) {
	return p.label(overviewSelectors.subtotal)
}

func (p *CheckoutOverviewPage) GetTax() (string, error) {
	return p.label(overviewSelectors.tax)
}

func (p *CheckoutOverviewPage) GetTotal() (string, error) {
	return p.label(overviewSelectors.total)
}

func (p *CheckoutOverviewPage) label(selector string) (string, error) {
	if err := p.ensure(); err != nil {
		return "", err
	}
	return p.GetText(selector)
}

func (p *CheckoutOverviewPage) IsFinishButtonVisible() (bool, error) {
	if err := p.ensure(); err != nil {
		return false, err
	}
	return p.IsElementVisible(overviewSelectors.finish)
}

func (p *CheckoutOverviewPage) ClickFinishButton() error {
	if err := p.ensure(); err != nil {
		return err
	}
	return p.Click(overviewSelectors.finish)
}

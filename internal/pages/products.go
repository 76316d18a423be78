package pages

import (
	"errors"
	"fmt"
	"strings"

	"github.com/swaglabs/checkout-e2e/internal/driver"
)

// ErrProductNotFound is returned when no product on the list has the given name
var ErrProductNotFound = errors.New("product not found")

var productSelectors = struct {
	container, item, name, description, price, addToCart, cartIcon, cartBadge string
}{
	container:   ".inventory_container",
	item:        ".inventory_item",
	name:        ".inventory_item_name",
	description: ".inventory_item_desc",
	price:       ".inventory_item_price",
	addToCart:   `button[data-test*="add-to-cart"]`,
	cartIcon:    ".shopping_cart_container",
	cartBadge:   ".shopping_cart_badge",
}

// Product is one entry of the product list as rendered
type Product struct {
	Name        string
	Description string
	Price       string
}

// ProductsPage drives /inventory.html
type ProductsPage struct {
	screenPage
}

func NewProductsPage(base *BasePage) *ProductsPage {
	return &ProductsPage{screenPage{BasePage: base, screen: ScreenProducts, root: productSelectors.container}}
}

// GetAllProducts snapshots the product list in the order it is rendered
func (p *ProductsPage) GetAllProducts() ([]Product, error) {
	if err := p.ensure(); err != nil {
		return nil, err
	}

	items := p.GetElements(productSelectors.item)
	count, err := items.Count()
	if err != nil {
		return nil, fmt.Errorf("count products: %w", err)
	}

	products := make([]Product, 0, count)
	for i := 0; i < count; i++ {
		product, err := p.readProduct(items.Nth(i))
		if err != nil {
			return nil, fmt.Errorf("product %d: %w", i, err)
		}
		products = append(products, product)
	}
	return products, nil
}

func (p *ProductsPage) readProduct(item driver.Locator) (Product, error) {
	name, err := text(item, productSelectors.name)
	if err != nil {
		return Product{}, err
	}
	desc, err := text(item, productSelectors.description)
	if err != nil {
		return Product{}, err
	}
	price, err := text(item, productSelectors.price)
	if err != nil {
		return Product{}, err
	}
	return Product{Name: name, Description: desc, Price: price}, nil
}

// GetProductByName returns a locator for the product whose name is exactly name.
// The index is fixed when the call is made.
func (p *ProductsPage) GetProductByName(name string) (driver.Locator, error) {
	if err := p.ensure(); err != nil {
		return nil, err
	}

	items := p.GetElements(productSelectors.item)
	count, err := items.Count()
	if err != nil {
		return nil, fmt.Errorf("count products: %w", err)
	}
	for i := 0; i < count; i++ {
		item := items.Nth(i)
		got, err := text(item, productSelectors.name)
		if err != nil {
			return nil, fmt.Errorf("product %d: %w", i, err)
		}
		if got == strings.TrimSpace(name) {
			return item, nil
		}
	}
	return nil, fmt.Errorf("%w: %q", ErrProductNotFound, name)
}

// VerifyProductExists reports whether a product called name is shown
func (p *ProductsPage) VerifyProductExists(name string) (bool, error) {
	item, err := p.GetProductByName(name)
	if errors.Is(err, ErrProductNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return item.IsVisible()
}

func (p *ProductsPage) GetProductNameByIndex(index int) (string, error) {
	return p.fieldByIndex(index, productSelectors.name)
}

func (p *ProductsPage) GetProductDescriptionByIndex(index int) (string, error) {
	return p.fieldByIndex(index, productSelectors.description)
}

func (p *ProductsPage) GetProductPriceByIndex(index int) (string, error) {
	return p.fieldByIndex(index, productSelectors.price)
}

func (p *ProductsPage) fieldByIndex(index int, selector string) (string, error) {
	if err := p.ensure(); err != nil {
		return "", err
	}
	s, err := p.GetElements(productSelectors.item).Nth(index).Locator(selector).First().TextContent()
	if err != nil {
		return "", fmt.Errorf("product %d: read %s: %w", index, selector, err)
	}
	return s, nil
}

func (p *ProductsPage) AddProductToCartByName(name string) error {
	item, err := p.GetProductByName(name)
	if err != nil {
		return err
	}
	if err := item.Locator(productSelectors.addToCart).First().Click(); err != nil {
		return fmt.Errorf("add %q to cart: %w", name, err)
	}
	return nil
}

func (p *ProductsPage) AddProductToCartByIndex(index int) error {
	if err := p.ensure(); err != nil {
		return err
	}
	button := p.GetElements(productSelectors.item).Nth(index).Locator(productSelectors.addToCart).First()
	if err := button.Click(); err != nil {
		return fmt.Errorf("add product %d to cart: %w", index, err)
	}
	return nil
}

func (p *ProductsPage) ClickShoppingCart() error {
	if err := p.ensure(); err != nil {
		return err
	}
	return p.Click(productSelectors.cartIcon)
}

// GetCartItemCount reads the header badge, 0 when it is hidden
func (p *ProductsPage) GetCartItemCount() (int, error) {
	if err := p.ensure(); err != nil {
		return 0, err
	}
	return p.readCartBadge(productSelectors.cartBadge)
}

func (p *ProductsPage) IsAddToCartButtonVisible(index int) (bool, error) {
	if err := p.ensure(); err != nil {
		return false, err
	}
	return p.GetElements(productSelectors.item).Nth(index).Locator(productSelectors.addToCart).First().IsVisible()
}

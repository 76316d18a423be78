package models

import (
	"fmt"
	"strings"
)

// Product is a catalogue entry. Prices are kept in cents.
type Product struct {
	ID          int
	Name        string
	Description string
	PriceCents  int64
}

// Price returns the price in the storefront's display format, e.g. "$29.99"
func (p Product) Price() string {
	return FormatPrice(p.PriceCents)
}

// Slug is the data-test suffix used on the product's buttons
func (p Product) Slug() string {
	return strings.ReplaceAll(strings.ToLower(p.Name), " ", "-")
}

// FormatPrice renders cents as dollars with two decimals
func FormatPrice(cents int64) string {
	return fmt.Sprintf("$%d.%02d", cents/100, cents%100)
}

// Catalog is the fixed Swag Labs inventory in its default (name A to Z) order
var Catalog = []Product{
	{ID: 4, Name: "Sauce Labs Backpack", PriceCents: 2999,
		Description: "carry.allTheThings() with the sleek, streamlined Sly Pack that melds uncompromising style with unequaled laptop and tablet protection."},
	{ID: 0, Name: "Sauce Labs Bike Light", PriceCents: 999,
		Description: "A red light isn't the desired state in testing but it sure helps when riding your bike at night. Water-resistant with 3 lighting modes, 1 AAA battery included."},
	{ID: 1, Name: "Sauce Labs Bolt T-Shirt", PriceCents: 1599,
		Description: "Get your testing superhero on with the Sauce Labs bolt T-shirt. From American Apparel, 100% ringspun combed cotton, heather gray with red bolt."},
	{ID: 5, Name: "Sauce Labs Fleece Jacket", PriceCents: 4999,
		Description: "It's not every day that you come across a midweight quarter-zip fleece jacket capable of handling everything from a relaxing day outdoors to a busy day at the office."},
	{ID: 2, Name: "Sauce Labs Onesie", PriceCents: 799,
		Description: "Rib snap infant onesie for the junior automation engineer in development. Reinforced 3-snap bottom closure, two-needle hemmed sleeved and bottom won't unravel."},
	{ID: 3, Name: "Test.allTheThings() T-Shirt (Red)", PriceCents: 1599,
		Description: "This classic Sauce Labs t-shirt is perfect to wear when cozying up to your keyboard to automate a few tests. Super-soft and comfy ringspun combed cotton."},
}

// FindProduct looks a product up by ID
func FindProduct(id int) (Product, bool) {
	for _, p := range Catalog {
		if p.ID == id {
			return p, true
		}
	}
	return Product{}, false
}

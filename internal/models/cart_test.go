package models

import (
	"errors"
	"testing"
)

func TestCart_AddIncrementsQuantity(t *testing.T) {
	var cart Cart
	backpack, _ := FindProduct(4)
	light, _ := FindProduct(0)

	cart.Add(backpack)
	cart.Add(light)
	cart.Add(backpack)

	if got := cart.Count(); got != 3 {
		t.Errorf("Expected count 3, got %d", got)
	}
	if got := cart.Quantity(backpack.ID); got != 2 {
		t.Errorf("Expected backpack quantity 2, got %d", got)
	}

	items := cart.Items()
	if len(items) != 2 {
		t.Fatalf("Expected 2 lines, got %d", len(items))
	}
	if items[0].Product.Name != "Sauce Labs Backpack" {
		t.Errorf("Expected first line to be the first product added, got %s", items[0].Product.Name)
	}
	if got := cart.ItemTotalCents(); got != 2999*2+999 {
		t.Errorf("Expected item total %d, got %d", 2999*2+999, got)
	}
}

func TestCart_Remove(t *testing.T) {
	var cart Cart
	backpack, _ := FindProduct(4)
	cart.Add(backpack)

	if err := cart.Remove(backpack.ID); err != nil {
		t.Fatalf("Remove() unexpected error = %v", err)
	}
	if !cart.IsEmpty() {
		t.Error("Expected cart to be empty")
	}
	if err := cart.Remove(backpack.ID); !errors.Is(err, ErrProductNotInCart) {
		t.Errorf("Expected ErrProductNotInCart, got %v", err)
	}
}

func TestCatalog(t *testing.T) {
	if len(Catalog) != 6 {
		t.Fatalf("Expected 6 products, got %d", len(Catalog))
	}
	seen := map[int]bool{}
	for _, p := range Catalog {
		if seen[p.ID] {
			t.Errorf("Duplicate product ID %d", p.ID)
		}
		seen[p.ID] = true
	}
	if _, ok := FindProduct(99); ok {
		t.Error("Expected unknown product lookup to fail")
	}
	if got := Catalog[0].Slug(); got != "sauce-labs-backpack" {
		t.Errorf("Unexpected slug %s", got)
	}
	if got := Catalog[0].Price(); got != "$29.99" {
		t.Errorf("Unexpected price %s", got)
	}
}

func TestAuthenticate(t *testing.T) {
	tests := []struct {
		username string
		password string
		want     error
	}{
		{"standard_user", "secret_sauce", nil},
		{"problem_user", "secret_sauce", nil},
		{"", "secret_sauce", ErrUsernameRequired},
		{"standard_user", "", ErrPasswordRequired},
		{"standard_user", "wrong", ErrBadCredentials},
		{"nobody", "secret_sauce", ErrBadCredentials},
		{"locked_out_user", "secret_sauce", ErrUserLockedOut},
	}

	for _, tt := range tests {
		if got := Authenticate(tt.username, tt.password); !errors.Is(got, tt.want) {
			t.Errorf("Authenticate(%q, %q) = %v, want %v", tt.username, tt.password, got, tt.want)
		}
	}
}

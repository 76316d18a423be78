package models

import (
	"errors"
	"strings"
)

// Checkout information errors
var (
	ErrFirstNameRequired  = errors.New("first name is required")
	ErrLastNameRequired   = errors.New("last name is required")
	ErrPostalCodeRequired = errors.New("postal code is required")
)

// Customer is the shipping information entered on checkout step one
type Customer struct {
	FirstName  string
	LastName   string
	PostalCode string
}

// Validate checks fields in form order and returns the first problem
func (c Customer) Validate() error {
	if strings.TrimSpace(c.FirstName) == "" {
		return ErrFirstNameRequired
	}
	if strings.TrimSpace(c.LastName) == "" {
		return ErrLastNameRequired
	}
	if strings.TrimSpace(c.PostalCode) == "" {
		return ErrPostalCodeRequired
	}
	return nil
}

// Package fixtures holds the static data the checkout scenario types into
// the storefront.
package fixtures

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Credentials are consumed once by the login form
type Credentials struct {
	Username string `yaml:"username"`
	Password string `yaml:"password"`
}

// CustomerInfo is written into the checkout form and never read back
type CustomerInfo struct {
	FirstName  string `yaml:"firstName"`
	LastName   string `yaml:"lastName"`
	PostalCode string `yaml:"postalCode"`
}

// Fixtures is the full data set for one scenario run
type Fixtures struct {
	Credentials                 Credentials  `yaml:"credentials"`
	LockedOutCredentials        Credentials  `yaml:"lockedOutCredentials"`
	Customer                    CustomerInfo `yaml:"customer"`
	ExpectedConfirmationMessage string       `yaml:"expectedConfirmationMessage"`
}

// Default values
var (
	ValidCredentials = Credentials{Username: "standard_user", Password: "secret_sauce"}
	LockedOutUser    = Credentials{Username: "locked_out_user", Password: "secret_sauce"}
	Customer         = CustomerInfo{FirstName: "John", LastName: "Doe", PostalCode: "12345"}
)

// ExpectedConfirmationMessage is the header of the confirmation screen
const ExpectedConfirmationMessage = "Thank you for your order!"

// ErrIncomplete is returned when a loaded file leaves a required value empty
var ErrIncomplete = errors.New("fixtures are incomplete")

// Default returns the built-in data set
func Default() Fixtures {
	return Fixtures{
		Credentials:                 ValidCredentials,
		LockedOutCredentials:        LockedOutUser,
		Customer:                    Customer,
		ExpectedConfirmationMessage: ExpectedConfirmationMessage,
	}
}

// Load reads a YAML file over the defaults. Keys missing from the file keep
// their default value.
func Load(path string) (Fixtures, error) {
	f := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return Fixtures{}, fmt.Errorf("failed to read fixtures: %w", err)
	}
	if err := yaml.Unmarshal(data, &f); err != nil {
		return Fixtures{}, fmt.Errorf("failed to parse fixtures %s: %w", path, err)
	}
	if err := f.Validate(); err != nil {
		return Fixtures{}, fmt.Errorf("%s: %w", path, err)
	}
	return f, nil
}

// Validate checks the values the checkout scenario cannot run without
func (f Fixtures) Validate() error {
	switch {
	case f.Credentials.Username == "":
		return fmt.Errorf("%w: credentials.username is empty", ErrIncomplete)
	case f.Credentials.Password == "":
		return fmt.Errorf("%w: credentials.password is empty", ErrIncomplete)
	case f.ExpectedConfirmationMessage == "":
		return fmt.Errorf("%w: expectedConfirmationMessage is empty", ErrIncomplete)
	}
	return nil
}

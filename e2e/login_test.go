//go:build e2e

package e2e

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/swaglabs/checkout-e2e/internal/fixtures"
	"github.com/swaglabs/checkout-e2e/internal/pages"
	"github.com/swaglabs/checkout-e2e/internal/scenario"
)

type LoginSuite struct {
	browserSuite
}

func TestLoginSuite(t *testing.T) {
	suite.Run(t, new(LoginSuite))
}

func (s *LoginSuite) TestLockedOutUser() {
	s.runScenario(scenario.LockedOutLogin(), fixtures.Default())
	if s.T().Failed() {
		return
	}

	s.Equal(pages.ScreenLogin, s.pages.Flow().Current())
	s.NoError(s.expect.Locator(s.page().Locator(`h3[data-test="error"]`)).ToContainText("locked out"))
}

func (s *LoginSuite) TestInvalidPassword() {
	creds := fixtures.ValidCredentials

	s.Require().NoError(s.pages.Login.Goto())
	s.Require().NoError(s.pages.Login.Login(creds.Username, "wrong_password"))

	message, err := s.pages.Login.ErrorMessage()
	s.Require().NoError(err)
	s.Contains(message, "Username and password do not match")
	s.NoError(s.expect.Page(s.page()).ToHaveURL(regexp.MustCompile(`^[^?]*/$`)))
}

func (s *LoginSuite) TestValidLoginLandsOnProducts() {
	creds := fixtures.ValidCredentials

	s.Require().NoError(s.pages.Login.Goto())
	s.Require().NoError(s.pages.Login.Login(creds.Username, creds.Password))
	s.Require().NoError(s.pages.Products.WaitForPageLoad())

	s.Contains(s.pages.Base.URL(), "/inventory.html")

	products, err := s.pages.Products.GetAllProducts()
	s.Require().NoError(err)
	s.NotEmpty(products)
	s.NoError(s.expect.Locator(s.page().Locator(".inventory_item")).ToHaveCount(len(products)))
}

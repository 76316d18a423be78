package pages

var confirmationSelectors = struct {
	container, message, text, backHome string
}{
	container: ".checkout_complete_container",
	message:   ".complete-header",
	text:      ".complete-text",
	backHome:  `button[data-test="back-to-products"]`,
}

// ConfirmationPage drives /checkout-complete.html
type ConfirmationPage struct {
	screenPage
}

func NewConfirmationPage(base *BasePage) *ConfirmationPage {
	return &ConfirmationPage{screenPage{BasePage: base, screen: ScreenConfirmation, root: confirmationSelectors.container}}
}

// GetConfirmationMessage returns the header, e.g. "Thank you for your order!"
func (p *ConfirmationPage) GetConfirmationMessage() (string, error) {
	return p.read(confirmationSelectors.message)
}

func (p *ConfirmationPage) GetConfirmationText() (string, error) {
	return p.read(confirmationSelectors.text)
}

func (p *ConfirmationPage) read(selector string) (string, error) {
	if err := p.ensure(); err != nil {
		return "", err
	}
	return p.GetText(selector)
}

// IsConfirmationPageDisplayed reports false on any other screen instead of
// failing
func (p *ConfirmationPage) IsConfirmationPageDisplayed() (bool, error) {
	if err := p.ensure(); err != nil {
		return false, nil
	}
	return p.IsElementVisible(confirmationSelectors.container)
}

func (p *ConfirmationPage) IsBackHomeButtonVisible() (bool, error) {
	if err := p.ensure(); err != nil {
		return false, err
	}
	return p.IsElementVisible(confirmationSelectors.backHome)
}

func (p *ConfirmationPage) ClickBackHomeButton() error {
	if err := p.ensure(); err != nil {
		return err
	}
	return p.Click(confirmationSelectors.backHome)
}

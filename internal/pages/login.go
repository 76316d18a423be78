package pages

var loginSelectors = struct {
	container, username, password, loginButton, error string
}{
	container:   ".login-box",
	username:    `input[data-test="username"]`,
	password:    `input[data-test="password"]`,
	loginButton: `input[data-test="login-button"]`,
	error:       `h3[data-test="error"]`,
}

// LoginPage drives the sign-in form at the base URL
type LoginPage struct {
	screenPage
}

func NewLoginPage(base *BasePage) *LoginPage {
	return &LoginPage{screenPage{BasePage: base, screen: ScreenLogin, root: loginSelectors.container}}
}

// Goto opens the configured base URL
func (p *LoginPage) Goto() error {
	return p.NavigateTo(p.baseURL)
}

func (p *LoginPage) EnterUsername(username string) error {
	if err := p.ensure(); err != nil {
		return err
	}
	return p.FillInput(loginSelectors.username, username)
}

func (p *LoginPage) EnterPassword(password string) error {
	if err := p.ensure(); err != nil {
		return err
	}
	return p.FillInput(loginSelectors.password, password)
}

func (p *LoginPage) ClickLoginButton() error {
	if err := p.ensure(); err != nil {
		return err
	}
	return p.Click(loginSelectors.loginButton)
}

// Login fills both fields and submits
func (p *LoginPage) Login(username, password string) error {
	if err := p.EnterUsername(username); err != nil {
		return err
	}
	if err := p.EnterPassword(password); err != nil {
		return err
	}
	return p.ClickLoginButton()
}

// ErrorMessage returns the banner shown after a rejected login, or "" if
// there is none
func (p *LoginPage) ErrorMessage() (string, error) {
	return p.visibleText(loginSelectors.error)
}

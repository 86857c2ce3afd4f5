package pages

import (
	"github.com/playwright-community/playwright-go"
)

// LoginPage is the /login screen
type LoginPage struct {
	screen
}

// NewLoginPage creates the login page object
func NewLoginPage(page playwright.Page, opts ...Option) *LoginPage {
	return &LoginPage{screen: newScreen(page, opts)}
}

func (p *LoginPage) Heading() playwright.Locator       { return p.page.Locator("h1") }
func (p *LoginPage) EmailInput() playwright.Locator    { return p.page.Locator("input[name='email']") }
func (p *LoginPage) PasswordInput() playwright.Locator { return p.page.Locator("input[name='password']") }
func (p *LoginPage) LoginButton() playwright.Locator   { return p.page.Locator("button[type='submit']") }
func (p *LoginPage) ErrorMessage() playwright.Locator  { return p.page.Locator("p.text-red-600") }
func (p *LoginPage) RegisterLink() playwright.Locator {
	return p.page.Locator("form ~ p a[href='/register'], form a[href='/register'], main a[href='/register']").First()
}

// Open navigates to the screen and waits for its heading
func (p *LoginPage) Open() error {
	return p.open("/login", p.Heading())
}

// Login submits the form. It does not wait for the outcome.
func (p *LoginPage) Login(email, password string) error {
	if err := fill(p.EmailInput(), email, "email"); err != nil {
		return err
	}
	if err := fill(p.PasswordInput(), password, "password"); err != nil {
		return err
	}
	return click(p.LoginButton(), "login button")
}

// ErrorText returns the text of the error message
func (p *LoginPage) ErrorText() (string, error) {
	return text(p.ErrorMessage(), "login error")
}

// ClickRegisterLink follows the in-form link to registration
func (p *LoginPage) ClickRegisterLink() error {
	return click(p.RegisterLink(), "register link")
}

// RegisterPage is the /register screen
type RegisterPage struct {
	screen
}

// NewRegisterPage creates the registration page object
func NewRegisterPage(page playwright.Page, opts ...Option) *RegisterPage {
	return &RegisterPage{screen: newScreen(page, opts)}
}

func (p *RegisterPage) Heading() playwright.Locator        { return p.page.Locator("h1") }
func (p *RegisterPage) NameInput() playwright.Locator      { return p.page.Locator("input[name='name']") }
func (p *RegisterPage) EmailInput() playwright.Locator     { return p.page.Locator("input[name='email']") }
func (p *RegisterPage) PasswordInput() playwright.Locator  { return p.page.Locator("input[name='password']") }
func (p *RegisterPage) RegisterButton() playwright.Locator { return p.page.Locator("button[type='submit']") }
func (p *RegisterPage) ErrorMessage() playwright.Locator   { return p.page.Locator("p.text-red-600") }
func (p *RegisterPage) LoginLink() playwright.Locator {
	return p.page.Locator("form ~ p a[href='/login'], form a[href='/login'], main a[href='/login']").First()
}

// Open navigates to the screen and waits for its heading
func (p *RegisterPage) Open() error {
	return p.open("/register", p.Heading())
}

// Register submits the form. It does not wait for the outcome.
func (p *RegisterPage) Register(name, email, password string) error {
	if err := fill(p.NameInput(), name, "name"); err != nil {
		return err
	}
	if err := fill(p.EmailInput(), email, "email"); err != nil {
		return err
	}
	if err := fill(p.PasswordInput(), password, "password"); err != nil {
		return err
	}
	return click(p.RegisterButton(), "register button")
}

// ErrorText returns the text of the error message
func (p *RegisterPage) ErrorText() (string, error) {
	return text(p.ErrorMessage(), "register error")
}

// ClickLoginLink follows the in-form link to login
func (p *RegisterPage) ClickLoginLink() error {
	return click(p.LoginLink(), "login link")
}

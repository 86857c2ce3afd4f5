package pages

import (
	"github.com/playwright-community/playwright-go"
)

// NavBar is the layout navigation shared by every screen
type NavBar struct {
	screen
}

// NewNavBar creates the navigation component for page
func NewNavBar(page playwright.Page, opts ...Option) *NavBar {
	return &NavBar{screen: newScreen(page, opts)}
}

func (n *NavBar) CartLink() playwright.Locator     { return n.page.Locator("nav a[href='/cart']") }
func (n *NavBar) OrdersLink() playwright.Locator   { return n.page.Locator("nav a[href='/orders']") }
func (n *NavBar) AdminLink() playwright.Locator    { return n.page.Locator("nav a[href='/admin']") }
func (n *NavBar) LoginLink() playwright.Locator    { return n.page.Locator("nav a[href='/login']") }
func (n *NavBar) RegisterLink() playwright.Locator { return n.page.Locator("nav a[href='/register']") }
func (n *NavBar) LogoutButton() playwright.Locator { return n.page.Locator("nav button") }
func (n *NavBar) UserNameLabel() playwright.Locator {
	return n.page.Locator("nav span.text-sm")
}

func (n *NavBar) ClickCart() error     { return click(n.CartLink(), "cart link") }
func (n *NavBar) ClickOrders() error   { return click(n.OrdersLink(), "orders link") }
func (n *NavBar) ClickAdmin() error    { return click(n.AdminLink(), "admin link") }
func (n *NavBar) ClickLogin() error    { return click(n.LoginLink(), "login link") }
func (n *NavBar) ClickRegister() error { return click(n.RegisterLink(), "register link") }
func (n *NavBar) ClickLogout() error   { return click(n.LogoutButton(), "logout button") }

// UserName returns the name shown for the logged-in account
func (n *NavBar) UserName() (string, error) {
	return text(n.UserNameLabel(), "user name")
}

// WaitLoggedIn blocks until the logout button is visible
func (n *NavBar) WaitLoggedIn() error {
	return n.LogoutButton().WaitFor(visible(n.ready))
}

// WaitLoggedOut blocks until the login link is visible
func (n *NavBar) WaitLoggedOut() error {
	return n.LoginLink().WaitFor(visible(n.ready))
}

func visible(r *Readiness) playwright.LocatorWaitForOptions {
	return playwright.LocatorWaitForOptions{
		State:   playwright.WaitForSelectorStateVisible,
		Timeout: playwright.Float(float64(r.Timeout.Milliseconds())),
	}
}

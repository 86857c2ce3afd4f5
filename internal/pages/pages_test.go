package pages_test

import (
	"flag"
	"fmt"
	"log"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/playwright-community/playwright-go"

	"github.com/simplecom/storefront-e2e/internal/handlers"
	"github.com/simplecom/storefront-e2e/internal/pages"
	"github.com/simplecom/storefront-e2e/internal/twin"
)

// Page objects are exercised against the twin UI in a real browser.
// Without an installed browser the tests skip.
var (
	browser   playwright.Browser
	skipWhy   string
	expect    = playwright.NewPlaywrightAssertions(5000)
	adminSeed = twin.Account{Email: "admin@shop.com", Password: "admin123", Name: "Shop Admin"}
	userSeed  = twin.Account{Email: "user@shop.com", Password: "user123", Name: "Jane Customer"}
)

func TestMain(m *testing.M) {
	flag.Parse()
	if testing.Short() {
		skipWhy = "short mode"
		os.Exit(m.Run())
	}

	pw, err := playwright.Run()
	if err != nil {
		skipWhy = fmt.Sprintf("playwright driver unavailable: %v", err)
		os.Exit(m.Run())
	}
	browser, err = pw.Chromium.Launch(playwright.BrowserTypeLaunchOptions{Headless: playwright.Bool(true)})
	if err != nil {
		skipWhy = fmt.Sprintf("chromium unavailable: %v", err)
	}

	code := m.Run()

	if browser != nil {
		if err := browser.Close(); err != nil {
			log.Printf("Failed to close browser: %v", err)
		}
	}
	if err := pw.Stop(); err != nil {
		log.Printf("Failed to stop playwright: %v", err)
	}
	os.Exit(code)
}

// session is one browser page pointed at a fresh twin
type session struct {
	page  playwright.Page
	base  string
	store *twin.Store
	opts  []pages.Option
}

func newSession(t *testing.T) *session {
	t.Helper()
	if browser == nil {
		t.Skip(skipWhy)
	}

	tw, err := twin.New(twin.Options{
		JWTSecret: "pages-secret",
		Seed:      twin.SeedOptions{Admin: adminSeed, User: userSeed},
	})
	if err != nil {
		t.Fatalf("twin.New() error = %v", err)
	}
	ui, err := handlers.NewUI(tw)
	if err != nil {
		t.Fatalf("NewUI() error = %v", err)
	}
	srv := httptest.NewServer(tw.Handler(ui.Routes))
	t.Cleanup(srv.Close)

	ctx, err := browser.NewContext()
	if err != nil {
		t.Fatalf("failed to create browser context: %v", err)
	}
	t.Cleanup(func() { _ = ctx.Close() })
	page, err := ctx.NewPage()
	if err != nil {
		t.Fatalf("failed to create page: %v", err)
	}

	ready := pages.DefaultReadiness()
	ready.Settle = 200 * time.Millisecond
	ready.ShortSettle = 100 * time.Millisecond
	ready.Timeout = 5 * time.Second

	return &session{
		page:  page,
		base:  srv.URL,
		store: tw.Store,
		opts:  []pages.Option{pages.WithBaseURL(srv.URL), pages.WithReadiness(ready)},
	}
}

func (s *session) login(t *testing.T, account twin.Account) {
	t.Helper()
	lp := pages.NewLoginPage(s.page, s.opts...)
	must(t, lp.Open())
	must(t, lp.Login(account.Email, account.Password))
	must(t, pages.NewNavBar(s.page, s.opts...).WaitLoggedIn())
}

func must(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatal(err)
	}
}

func TestLoginAndNavBar(t *testing.T) {
	s := newSession(t)
	nav := pages.NewNavBar(s.page, s.opts...)

	// GIVEN the login screen
	lp := pages.NewLoginPage(s.page, s.opts...)
	must(t, lp.Open())

	// WHEN logging in with a bad password
	must(t, lp.Login(userSeed.Email, "wrong-password"))

	// THEN the error is shown and the user stays logged out
	must(t, expect.Locator(lp.ErrorMessage()).ToBeVisible())
	must(t, nav.WaitLoggedOut())

	// WHEN logging in properly
	must(t, lp.Login(userSeed.Email, userSeed.Password))

	// THEN the nav shows the account
	must(t, nav.WaitLoggedIn())
	name, err := nav.UserName()
	must(t, err)
	if name != userSeed.Name {
		t.Errorf("UserName() = %q, want %q", name, userSeed.Name)
	}
	must(t, expect.Locator(nav.AdminLink()).ToHaveCount(0))

	must(t, nav.ClickLogout())
	must(t, nav.WaitLoggedOut())
}

func TestRegisterPage(t *testing.T) {
	s := newSession(t)
	rp := pages.NewRegisterPage(s.page, s.opts...)
	must(t, rp.Open())

	must(t, rp.Register("Dup", userSeed.Email, "secret123"))
	msg, err := rp.ErrorText()
	must(t, err)
	if msg != "Email already registered" {
		t.Errorf("ErrorText() = %q", msg)
	}

	must(t, rp.ClickLoginLink())
	must(t, expect.Page(s.page).ToHaveURL(s.base+"/login"))
	must(t, pages.NewLoginPage(s.page, s.opts...).ClickRegisterLink())
	must(t, expect.Page(s.page).ToHaveURL(s.base+"/register"))

	must(t, rp.Register("New Shopper", "new.shopper@e2e.example.com", "secret123"))
	must(t, pages.NewNavBar(s.page, s.opts...).WaitLoggedIn())
}

func TestHomePage(t *testing.T) {
	s := newSession(t)
	home := pages.NewHomePage(s.page, s.opts...)
	must(t, home.Open())

	n, err := home.ProductCount()
	must(t, err)
	if n != twin.DefaultPageSize {
		t.Errorf("ProductCount() = %d, want %d", n, twin.DefaultPageSize)
	}

	must(t, home.NextPage())
	must(t, expect.Locator(home.PrevButton()).ToBeVisible())
	must(t, home.PrevPage())

	must(t, home.SelectCategory("Books"))
	must(t, expect.Locator(home.ProductCards()).ToHaveCount(6))

	must(t, home.SelectSort("Price: Low to High"))
	names, err := home.ProductNames()
	must(t, err)
	if len(names) == 0 || names[0] != "Poetry Collection" {
		t.Errorf("cheapest book first, got %v", names)
	}

	must(t, home.Search("no-such-product"))
	must(t, expect.Locator(home.EmptyMessage()).ToBeVisible())

	must(t, home.Open())
	must(t, home.Search("keyboard"))
	must(t, expect.Locator(home.ProductCards()).ToHaveCount(1))
	must(t, home.ClickProduct(0))

	pp := pages.NewProductPage(s.page, s.opts...)
	must(t, expect.Locator(pp.NameHeading()).ToHaveText("Mechanical Keyboard"))
}

func TestShoppingFlow(t *testing.T) {
	s := newSession(t)
	s.login(t, userSeed)

	// Product screen
	pp := pages.NewProductPage(s.page, s.opts...)
	must(t, pp.Open(1))
	price, err := pp.Price()
	must(t, err)
	if price != 89.99 {
		t.Errorf("Price() = %v, want 89.99", price)
	}
	desc, err := pp.Description()
	must(t, err)
	if !strings.Contains(desc, "wireless headphones") {
		t.Errorf("Description() = %q", desc)
	}
	must(t, pp.SetQuantity(2))
	must(t, pp.AddToCartAndConfirm())
	must(t, pp.Open(2))
	must(t, pp.AddToCartAndConfirm())

	// Cart screen
	cart := pages.NewCartPage(s.page, s.opts...)
	must(t, cart.Open())
	must(t, expect.Locator(cart.Rows()).ToHaveCount(2))
	total, err := cart.Total()
	must(t, err)
	if total != 309.48 {
		t.Errorf("Total() = %v, want 309.48", total)
	}

	must(t, cart.DecreaseQuantity(1))
	must(t, expect.Locator(cart.Rows()).ToHaveCount(1))
	must(t, cart.IncreaseQuantity(0))
	must(t, expect.Locator(cart.Rows().Nth(0).Locator("span.quantity")).ToHaveText("3"))
	qty, err := cart.Quantity(0)
	must(t, err)
	if qty != "3" {
		t.Errorf("Quantity(0) = %q, want 3", qty)
	}

	// Checkout lands on the order history
	must(t, cart.Checkout())
	orders := pages.NewOrdersPage(s.page, s.opts...)
	n, err := orders.OrderCount()
	must(t, err)
	if n != 2 {
		t.Errorf("OrderCount() = %d, want seed order plus the new one", n)
	}
	status, err := orders.OrderStatus(0)
	must(t, err)
	orderTotal, err := orders.OrderTotal(0)
	must(t, err)
	if status != "pending" || orderTotal != 269.97 {
		t.Errorf("newest order = %s %v, want pending 269.97", status, orderTotal)
	}

	// An emptied cart shows the empty message
	must(t, pp.Open(3))
	must(t, pp.AddToCartAndConfirm())
	must(t, cart.Open())
	must(t, cart.Clear())
	empty, err := cart.IsEmpty()
	must(t, err)
	if !empty {
		t.Error("cart not empty after Clear()")
	}
}

func TestProductPage_AddToCartWithoutLogin(t *testing.T) {
	// GIVEN an anonymous visitor on a product screen
	s := newSession(t)
	pp := pages.NewProductPage(s.page, s.opts...)
	must(t, pp.Open(1))

	// WHEN
	err := pp.AddToCart()

	// THEN the action itself succeeds and the storefront sends the visitor to login
	must(t, err)
	must(t, expect.Page(s.page).ToHaveURL(s.base+"/login"))
	if n, _ := pp.SuccessMessage().Count(); n != 0 {
		t.Errorf("confirmation shown %d times for an anonymous visitor", n)
	}
}

func TestAdminPage(t *testing.T) {
	s := newSession(t)
	s.login(t, adminSeed)

	admin := pages.NewAdminPage(s.page, s.opts...)
	must(t, admin.Open())

	// Orders tab
	must(t, admin.UpdateOrderStatus(0, "confirmed"))
	must(t, expect.Locator(admin.OrderCards().Nth(0).Locator("span.rounded-full")).ToHaveText("confirmed"))
	status, err := admin.OrderStatus(0)
	must(t, err)
	if status != "confirmed" {
		t.Errorf("OrderStatus(0) = %q, want confirmed", status)
	}

	// Button names match regardless of case
	must(t, admin.UpdateOrderStatus(0, "Shipped"))
	must(t, expect.Locator(admin.OrderCards().Nth(0).Locator("span.rounded-full")).ToHaveText("shipped"))

	// Products tab
	must(t, admin.SwitchToProductsTab())
	must(t, expect.Locator(admin.AddProductButton()).ToBeVisible())
	before, err := admin.ProductCount()
	must(t, err)

	must(t, admin.AddProduct(pages.ProductForm{
		Name:        "Test Product PAGES1",
		Description: "created through the admin form",
		Price:       19.99,
		Stock:       9999,
		Category:    "Books",
		ImageURL:    "https://example.com/images/test.jpg",
	}))
	must(t, expect.Locator(admin.ProductRows()).ToHaveCount(before+1))
	name, err := admin.ProductRowName(0)
	must(t, err)
	if name != "Test Product PAGES1" {
		t.Errorf("ProductRowName(0) = %q", name)
	}

	// Each delete accepts its own dialog, even across page objects
	must(t, admin.DeleteProduct(0))
	must(t, expect.Locator(admin.ProductRows()).ToHaveCount(before))
	again := pages.NewAdminPage(s.page, s.opts...)
	must(t, again.DeleteProduct(0))
	must(t, expect.Locator(admin.ProductRows()).ToHaveCount(before-1))
	if n := s.page.ListenerCount("dialog"); n != 0 {
		t.Errorf("%d dialog handlers left on the page", n)
	}

	must(t, admin.SwitchToOrdersTab())
	must(t, expect.Locator(admin.OrderCards()).ToHaveCount(len(s.store.AllOrders())))
}

package pages

import (
	"fmt"

	"github.com/playwright-community/playwright-go"
)

// CartPage is the /cart screen
type CartPage struct {
	screen
}

// NewCartPage creates the cart page object
func NewCartPage(page playwright.Page, opts ...Option) *CartPage {
	return &CartPage{screen: newScreen(page, opts)}
}

func (p *CartPage) Heading() playwright.Locator        { return p.page.Locator("h1") }
func (p *CartPage) Rows() playwright.Locator           { return p.page.Locator("div.bg-white.p-4.rounded-lg") }
func (p *CartPage) TotalLabel() playwright.Locator     { return p.page.Locator("p.text-2xl.font-bold") }
func (p *CartPage) CheckoutButton() playwright.Locator { return p.button("Checkout") }
func (p *CartPage) ClearButton() playwright.Locator    { return p.button("Clear Cart") }
func (p *CartPage) EmptyMessage() playwright.Locator   { return p.page.GetByText("Your cart is empty.") }

// Open navigates to the cart and waits for its heading
func (p *CartPage) Open() error {
	return p.open("/cart", p.Heading())
}

// ItemCount returns the number of cart lines shown
func (p *CartPage) ItemCount() (int, error) {
	return count(p.Rows(), "cart rows")
}

// Total returns the displayed cart total
func (p *CartPage) Total() (float64, error) {
	raw, err := text(p.TotalLabel(), "cart total")
	if err != nil {
		return 0, err
	}
	return parsePrice(raw)
}

// Quantity returns the quantity shown on the i-th line
func (p *CartPage) Quantity(i int) (string, error) {
	return text(p.Rows().Nth(i).Locator("span.quantity"), fmt.Sprintf("quantity of row %d", i))
}

func (p *CartPage) IncreaseQuantity(i int) error { return p.rowAction(i, "+") }
func (p *CartPage) DecreaseQuantity(i int) error { return p.rowAction(i, "-") }
func (p *CartPage) RemoveItem(i int) error       { return p.rowAction(i, "Remove") }

// Clear empties the cart and waits for the empty message
func (p *CartPage) Clear() error {
	if err := click(p.ClearButton(), "clear cart"); err != nil {
		return err
	}
	return p.EmptyMessage().WaitFor(visible(p.ready))
}

// Checkout places the order and waits for the orders screen
func (p *CartPage) Checkout() error {
	if err := click(p.CheckoutButton(), "checkout"); err != nil {
		return err
	}
	if err := p.page.WaitForURL("**/orders", playwright.PageWaitForURLOptions{
		Timeout: playwright.Float(float64(p.ready.Timeout.Milliseconds())),
	}); err != nil {
		return fmt.Errorf("failed waiting for orders after checkout: %w", err)
	}
	return p.ready.After(p.page.Locator("h1"))
}

// IsEmpty reports whether the empty cart message is shown
func (p *CartPage) IsEmpty() (bool, error) {
	shown, err := p.EmptyMessage().IsVisible()
	if err != nil {
		return false, fmt.Errorf("failed to check empty cart: %w", err)
	}
	return shown, nil
}

func (p *CartPage) rowAction(i int, name string) error {
	if err := click(rowButton(p.Rows().Nth(i), name), fmt.Sprintf("%s on row %d", name, i)); err != nil {
		return err
	}
	return p.ready.After(p.Heading())
}

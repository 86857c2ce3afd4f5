package pages

import (
	"fmt"

	"github.com/playwright-community/playwright-go"
)

const orderCardSelector = "div.bg-white.p-6.rounded-lg.shadow"

// OrdersPage is the /orders history screen
type OrdersPage struct {
	screen
}

// NewOrdersPage creates the order history page object
func NewOrdersPage(page playwright.Page, opts ...Option) *OrdersPage {
	return &OrdersPage{screen: newScreen(page, opts)}
}

func (p *OrdersPage) Heading() playwright.Locator    { return p.page.Locator("h1") }
func (p *OrdersPage) OrderCards() playwright.Locator { return p.page.Locator(orderCardSelector) }

// Open navigates to the order history
func (p *OrdersPage) Open() error {
	return p.open("/orders", p.Heading())
}

func (p *OrdersPage) OrderCount() (int, error) {
	return count(p.OrderCards(), "order cards")
}

// OrderStatus returns the status badge text of the i-th order, newest first
func (p *OrdersPage) OrderStatus(i int) (string, error) {
	return text(p.OrderCards().Nth(i).Locator("span.rounded-full"), fmt.Sprintf("status of order %d", i))
}

// OrderTotal returns the total of the i-th order
func (p *OrdersPage) OrderTotal(i int) (float64, error) {
	raw, err := text(p.OrderCards().Nth(i).Locator("p.text-lg.font-bold"), fmt.Sprintf("total of order %d", i))
	if err != nil {
		return 0, err
	}
	return parsePrice(raw)
}

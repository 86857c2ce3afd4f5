package pages

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/playwright-community/playwright-go"
)

// ProductPage is the detail screen at /products/{id}
type ProductPage struct {
	screen
}

// NewProductPage creates the product detail page object
func NewProductPage(page playwright.Page, opts ...Option) *ProductPage {
	return &ProductPage{screen: newScreen(page, opts)}
}

func (p *ProductPage) NameHeading() playwright.Locator    { return p.page.Locator("h1") }
func (p *ProductPage) PriceLabel() playwright.Locator     { return p.page.Locator("p.text-3xl.font-bold") }
func (p *ProductPage) DescriptionText() playwright.Locator { return p.page.Locator("p.text-gray-600").First() }
func (p *ProductPage) QuantityInput() playwright.Locator  { return p.page.Locator("input[type='number']") }
func (p *ProductPage) AddToCartButton() playwright.Locator { return p.button("Add to Cart") }
func (p *ProductPage) SuccessMessage() playwright.Locator { return p.page.Locator("p.text-green-600") }

// Open navigates to the product and waits for its name
func (p *ProductPage) Open(id int) error {
	return p.open(fmt.Sprintf("/products/%d", id), p.NameHeading())
}

func (p *ProductPage) Name() (string, error) {
	return text(p.NameHeading(), "product name")
}

func (p *ProductPage) Description() (string, error) {
	return text(p.DescriptionText(), "product description")
}

// Price returns the displayed price with the currency symbol stripped
func (p *ProductPage) Price() (float64, error) {
	raw, err := text(p.PriceLabel(), "product price")
	if err != nil {
		return 0, err
	}
	return parsePrice(raw)
}

// SetQuantity replaces the quantity to add
func (p *ProductPage) SetQuantity(qty int) error {
	return fill(p.QuantityInput(), strconv.Itoa(qty), "quantity")
}

// AddToCart clicks the add button and waits for the page to settle.
// Whether the item was added is left to the caller.
func (p *ProductPage) AddToCart() error {
	if err := click(p.AddToCartButton(), "add to cart"); err != nil {
		return err
	}
	return p.ready.After(p.NameHeading())
}

// AddToCartAndConfirm adds to the cart and waits for the confirmation message
func (p *ProductPage) AddToCartAndConfirm() error {
	if err := click(p.AddToCartButton(), "add to cart"); err != nil {
		return err
	}
	if err := p.SuccessMessage().WaitFor(visible(p.ready)); err != nil {
		return fmt.Errorf("failed waiting for add to cart confirmation: %w", err)
	}
	return nil
}

func (p *ProductPage) SuccessText() (string, error) {
	return text(p.SuccessMessage(), "success message")
}

// parsePrice reads "$1,234.50" style labels, ignoring any caption before the currency sign
func parsePrice(raw string) (float64, error) {
	amount := raw
	if i := strings.LastIndex(amount, "$"); i >= 0 {
		amount = amount[i+1:]
	}
	cleaned := strings.ReplaceAll(strings.TrimSpace(amount), ",", "")
	v, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0, fmt.Errorf("failed to parse price %q: %w", raw, err)
	}
	return v, nil
}

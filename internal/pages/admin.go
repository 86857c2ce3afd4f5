package pages

import (
	"fmt"
	"log"
	"strconv"

	"github.com/playwright-community/playwright-go"
)

// ProductForm is what the admin Add Product form accepts
type ProductForm struct {
	Name        string
	Description string
	Price       float64
	Stock       int
	Category    string
	ImageURL    string
}

// AdminPage is the /admin management screen
type AdminPage struct {
	screen
}

// NewAdminPage creates the admin page object
func NewAdminPage(page playwright.Page, opts ...Option) *AdminPage {
	return &AdminPage{screen: newScreen(page, opts)}
}

func (p *AdminPage) Heading() playwright.Locator          { return p.page.Locator("h1") }
func (p *AdminPage) OrdersTab() playwright.Locator        { return p.button("Orders") }
func (p *AdminPage) ProductsTab() playwright.Locator      { return p.button("Products") }
func (p *AdminPage) OrderCards() playwright.Locator       { return p.page.Locator(orderCardSelector) }
func (p *AdminPage) AddProductButton() playwright.Locator { return p.button("Add Product") }
func (p *AdminPage) CreateButton() playwright.Locator     { return p.button("Create") }
func (p *AdminPage) ProductRows() playwright.Locator      { return p.page.Locator("table tbody tr") }

func (p *AdminPage) formField(name string) playwright.Locator {
	return p.page.Locator(fmt.Sprintf("form input[name='%s']", name))
}

// Open navigates to the admin screen on its default orders tab
func (p *AdminPage) Open() error {
	return p.open("/admin", p.Heading())
}

func (p *AdminPage) SwitchToOrdersTab() error {
	if err := click(p.OrdersTab(), "orders tab"); err != nil {
		return err
	}
	return p.ready.AfterShort(p.Heading())
}

func (p *AdminPage) SwitchToProductsTab() error {
	if err := click(p.ProductsTab(), "products tab"); err != nil {
		return err
	}
	return p.ready.AfterShort(p.Heading())
}

func (p *AdminPage) OrderCount() (int, error) {
	return count(p.OrderCards(), "admin order cards")
}

// OrderStatus returns the status badge of the i-th order card
func (p *AdminPage) OrderStatus(i int) (string, error) {
	return text(p.OrderCards().Nth(i).Locator("span.rounded-full"), fmt.Sprintf("status of order %d", i))
}

// UpdateOrderStatus presses the status button on the i-th order card
func (p *AdminPage) UpdateOrderStatus(i int, status string) error {
	btn := rowButton(p.OrderCards().Nth(i), status)
	if err := click(btn, fmt.Sprintf("%s on order %d", status, i)); err != nil {
		return err
	}
	return p.ready.After(p.Heading())
}

// AddProduct opens the form, fills it and submits
func (p *AdminPage) AddProduct(form ProductForm) error {
	if err := click(p.AddProductButton(), "add product"); err != nil {
		return err
	}
	if err := p.ready.AfterShort(p.Heading()); err != nil {
		return err
	}
	fields := []struct{ name, value string }{
		{"name", form.Name},
		{"price", strconv.FormatFloat(form.Price, 'f', 2, 64)},
		{"stock", strconv.Itoa(form.Stock)},
		{"image_url", form.ImageURL},
	}
	for _, f := range fields {
		if err := fill(p.formField(f.name), f.value, f.name); err != nil {
			return err
		}
	}
	if err := fill(p.page.Locator("form textarea[name='description']"), form.Description, "description"); err != nil {
		return err
	}
	if form.Category != "" {
		if err := selectLabel(p.page.Locator("form select[name='category_id']"), form.Category, "category"); err != nil {
			return err
		}
	}
	if err := click(p.CreateButton(), "create"); err != nil {
		return err
	}
	return p.ready.After(p.Heading())
}

// DeleteProduct deletes the i-th product row, accepting the confirmation dialog
func (p *AdminPage) DeleteProduct(i int) error {
	p.page.Once("dialog", func(d playwright.Dialog) {
		if err := d.Accept(); err != nil {
			log.Printf("Failed to accept delete confirmation: %v", err)
		}
	})
	if err := click(rowButton(p.ProductRows().Nth(i), "Delete"), fmt.Sprintf("delete on row %d", i)); err != nil {
		return err
	}
	return p.ready.After(p.Heading())
}

func (p *AdminPage) ProductCount() (int, error) {
	return count(p.ProductRows(), "product rows")
}

// ProductRowName returns the name cell of the i-th product row
func (p *AdminPage) ProductRowName(i int) (string, error) {
	return text(p.ProductRows().Nth(i).Locator("td").First(), fmt.Sprintf("name of product row %d", i))
}

package pages

import (
	"fmt"

	"github.com/playwright-community/playwright-go"
)

// HomePage is the catalog listing at /
type HomePage struct {
	screen
}

// NewHomePage creates the catalog page object
func NewHomePage(page playwright.Page, opts ...Option) *HomePage {
	return &HomePage{screen: newScreen(page, opts)}
}

func (p *HomePage) SearchInput() playwright.Locator {
	return p.page.Locator("input[placeholder*='Search'], input[name='search']").First()
}
func (p *HomePage) SearchButton() playwright.Locator {
	return p.page.Locator("form button[type='submit']").First()
}
func (p *HomePage) CategorySelect() playwright.Locator { return p.page.Locator("select").First() }
func (p *HomePage) SortSelect() playwright.Locator     { return p.page.Locator("select").Last() }
func (p *HomePage) ProductCards() playwright.Locator   { return p.page.Locator(".grid a") }
func (p *HomePage) NextButton() playwright.Locator     { return p.button("Next") }
func (p *HomePage) PrevButton() playwright.Locator     { return p.button("Previous") }
func (p *HomePage) EmptyMessage() playwright.Locator {
	return p.page.GetByText("No products found.")
}

// Open loads the catalog
func (p *HomePage) Open() error {
	if _, err := p.page.Goto(p.url("/")); err != nil {
		return fmt.Errorf("failed to open catalog: %w", err)
	}
	return p.layoutReady()
}

// Search submits a catalog search and waits for the listing to settle
func (p *HomePage) Search(query string) error {
	if err := fill(p.SearchInput(), query, "search"); err != nil {
		return err
	}
	if err := click(p.SearchButton(), "search button"); err != nil {
		return err
	}
	return p.settled()
}

// SelectCategory filters the listing by category label
func (p *HomePage) SelectCategory(label string) error {
	if err := selectLabel(p.CategorySelect(), label, "category"); err != nil {
		return err
	}
	return p.settled()
}

// SelectSort orders the listing by the sort label, e.g. "Price: Low to High"
func (p *HomePage) SelectSort(label string) error {
	if err := selectLabel(p.SortSelect(), label, "sort"); err != nil {
		return err
	}
	return p.settled()
}

// ProductCount returns the number of product cards on the current page
func (p *HomePage) ProductCount() (int, error) {
	return count(p.ProductCards(), "product cards")
}

// ProductNames returns the card texts in display order
func (p *HomePage) ProductNames() ([]string, error) {
	names, err := p.page.Locator(".grid a h3").AllInnerTexts()
	if err != nil {
		return nil, fmt.Errorf("failed to read product names: %w", err)
	}
	return names, nil
}

// ClickProduct opens the i-th product card
func (p *HomePage) ClickProduct(i int) error {
	return click(p.ProductCards().Nth(i), fmt.Sprintf("product card %d", i))
}

func (p *HomePage) NextPage() error {
	if err := click(p.NextButton(), "next page"); err != nil {
		return err
	}
	return p.settled()
}

func (p *HomePage) PrevPage() error {
	if err := click(p.PrevButton(), "previous page"); err != nil {
		return err
	}
	return p.settled()
}

// IsEmpty reports whether the listing shows the no-results message
func (p *HomePage) IsEmpty() (bool, error) {
	visible, err := p.EmptyMessage().IsVisible()
	if err != nil {
		return false, fmt.Errorf("failed to check empty listing: %w", err)
	}
	return visible, nil
}

func (p *HomePage) settled() error {
	return p.ready.After(p.page.Locator("main"))
}

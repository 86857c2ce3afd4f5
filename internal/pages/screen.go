package pages

import (
	"fmt"
	"strings"

	"github.com/playwright-community/playwright-go"
)

// Option configures a page object
type Option func(*screen)

// WithBaseURL resolves screen paths against baseURL instead of the browser context's base URL
func WithBaseURL(baseURL string) Option {
	return func(s *screen) {
		s.baseURL = strings.TrimRight(baseURL, "/")
	}
}

// WithReadiness replaces the default fixed-delay readiness
func WithReadiness(ready *Readiness) Option {
	return func(s *screen) {
		if ready != nil {
			s.ready = ready
		}
	}
}

// screen is the state every page object shares
type screen struct {
	page    playwright.Page
	baseURL string
	ready   *Readiness
}

func newScreen(page playwright.Page, opts []Option) screen {
	s := screen{page: page, ready: DefaultReadiness()}
	for _, opt := range opts {
		opt(&s)
	}
	return s
}

// Page returns the underlying browser page
func (s *screen) Page() playwright.Page {
	return s.page
}

func (s *screen) url(path string) string {
	return s.baseURL + path
}

// open navigates to path and waits for anchor to be ready
func (s *screen) open(path string, anchor playwright.Locator) error {
	if _, err := s.page.Goto(s.url(path)); err != nil {
		return fmt.Errorf("failed to open %s: %w", path, err)
	}
	return s.ready.Ready(anchor)
}

// layoutReady waits for the shared layout instead of a screen-specific anchor
func (s *screen) layoutReady() error {
	return s.ready.Ready(s.page.Locator("nav"))
}

// button matches by case-insensitive substring of the accessible name
func (s *screen) button(name string) playwright.Locator {
	return s.page.GetByRole(*playwright.AriaRoleButton, playwright.PageGetByRoleOptions{Name: name})
}

func rowButton(row playwright.Locator, name string) playwright.Locator {
	return row.GetByRole(*playwright.AriaRoleButton, playwright.LocatorGetByRoleOptions{Name: name})
}

func click(l playwright.Locator, what string) error {
	if err := l.Click(); err != nil {
		return fmt.Errorf("failed to click %s: %w", what, err)
	}
	return nil
}

func fill(l playwright.Locator, value, what string) error {
	if err := l.Fill(value); err != nil {
		return fmt.Errorf("failed to fill %s: %w", what, err)
	}
	return nil
}

func text(l playwright.Locator, what string) (string, error) {
	content, err := l.TextContent()
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", what, err)
	}
	return strings.TrimSpace(content), nil
}

func count(l playwright.Locator, what string) (int, error) {
	n, err := l.Count()
	if err != nil {
		return 0, fmt.Errorf("failed to count %s: %w", what, err)
	}
	return n, nil
}

func selectLabel(l playwright.Locator, label, what string) error {
	if _, err := l.SelectOption(playwright.SelectOptionValues{Labels: &[]string{label}}); err != nil {
		return fmt.Errorf("failed to select %q in %s: %w", label, what, err)
	}
	return nil
}

// Package pages holds one Page Object per storefront screen.
//
// A page object owns the selectors of its screen and exposes the actions a
// user can take there. Readiness is a separate capability injected into every
// screen, so the strategy for "the screen has finished rendering" can change
// without touching the screens themselves.
package pages

import (
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/playwright-community/playwright-go"

	"github.com/simplecom/storefront-e2e/internal/config"
)

// Mode selects how a screen decides it has settled
type Mode string

const (
	// ModeFixed waits for the anchor and then sleeps a fixed delay
	ModeFixed Mode = config.ReadinessFixed
	// ModeStable waits for the anchor and then for its text to stop changing
	ModeStable Mode = config.ReadinessStable
)

// Default timings
const (
	DefaultSettle       = 500 * time.Millisecond
	DefaultShortSettle  = 300 * time.Millisecond
	DefaultPollInterval = 100 * time.Millisecond
	DefaultTimeout      = 10 * time.Second
)

// ErrNotSettled is returned when an anchor keeps changing past the timeout
var ErrNotSettled = errors.New("screen did not settle")

// Anchor is the element a screen waits on
type Anchor interface {
	WaitFor(options ...playwright.LocatorWaitForOptions) error
	AllInnerTexts() ([]string, error)
}

// Readiness decides when a screen is ready for interaction
type Readiness struct {
	Mode         Mode
	Settle       time.Duration
	ShortSettle  time.Duration
	PollInterval time.Duration
	Timeout      time.Duration

	sleep func(time.Duration)
}

// DefaultReadiness returns fixed-delay readiness with the standard timings
func DefaultReadiness() *Readiness {
	return &Readiness{
		Mode:         ModeFixed,
		Settle:       DefaultSettle,
		ShortSettle:  DefaultShortSettle,
		PollInterval: DefaultPollInterval,
		Timeout:      DefaultTimeout,
		sleep:        time.Sleep,
	}
}

// NewReadiness builds readiness from the browser settings
func NewReadiness(cfg config.BrowserConfig) *Readiness {
	r := DefaultReadiness()
	r.Mode = Mode(cfg.Readiness)
	if r.Mode != ModeStable {
		r.Mode = ModeFixed
	}
	r.Settle = cfg.Settle
	r.ShortSettle = cfg.ShortSettle
	if cfg.ActionTimeout > 0 {
		r.Timeout = cfg.ActionTimeout
	}
	return r
}

// Ready waits for the anchor to be visible, then for the screen to settle
func (r *Readiness) Ready(anchor Anchor) error {
	if err := anchor.WaitFor(playwright.LocatorWaitForOptions{
		State:   playwright.WaitForSelectorStateVisible,
		Timeout: playwright.Float(float64(r.Timeout.Milliseconds())),
	}); err != nil {
		return fmt.Errorf("failed waiting for screen anchor: %w", err)
	}
	return r.After(anchor)
}

// After settles the screen following an action
func (r *Readiness) After(anchor Anchor) error {
	return r.settle(anchor, r.Settle)
}

// AfterShort settles the screen following a lightweight action such as a tab switch
func (r *Readiness) AfterShort(anchor Anchor) error {
	return r.settle(anchor, r.ShortSettle)
}

func (r *Readiness) settle(anchor Anchor, delay time.Duration) error {
	if r.Mode != ModeStable {
		r.sleep(delay)
		return nil
	}

	prev, err := anchor.AllInnerTexts()
	if err != nil {
		return fmt.Errorf("failed reading screen anchor: %w", err)
	}

	interval := r.PollInterval
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	attempts := max(int(r.Timeout/interval), 1)
	for range attempts {
		r.sleep(interval)
		cur, err := anchor.AllInnerTexts()
		if err != nil {
			return fmt.Errorf("failed reading screen anchor: %w", err)
		}
		if slices.Equal(prev, cur) {
			return nil
		}
		prev = cur
	}
	return fmt.Errorf("%w after %s", ErrNotSettled, r.Timeout)
}

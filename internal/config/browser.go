package config

import (
	"strconv"
	"time"
)

// Readiness modes for page objects
const (
	ReadinessFixed  = "fixed"
	ReadinessStable = "stable"
)

// BrowserConfig holds the settings used to launch and drive the browser
type BrowserConfig struct {
	Headless       bool          `yaml:"headless"`
	SlowMo         time.Duration `yaml:"slow_mo"`
	ActionTimeout  time.Duration `yaml:"action_timeout"`
	ViewportWidth  int           `yaml:"viewport_width"`
	ViewportHeight int           `yaml:"viewport_height"`
	Readiness      string        `yaml:"readiness"`
	Settle         time.Duration `yaml:"settle"`
	ShortSettle    time.Duration `yaml:"short_settle"`
}

// DefaultBrowserConfig mirrors the desktop Chrome project of the suite.
func DefaultBrowserConfig() BrowserConfig {
	return BrowserConfig{
		Headless:       true,
		ActionTimeout:  10 * time.Second,
		ViewportWidth:  1920,
		ViewportHeight: 1080,
		Readiness:      ReadinessFixed,
		Settle:         500 * time.Millisecond,
		ShortSettle:    300 * time.Millisecond,
	}
}

func resolveBrowser(base BrowserConfig, getenv func(string) string) BrowserConfig {
	b := base
	b.Headless = envBool(getenv, "HEADLESS", b.Headless)
	b.SlowMo = envDuration(getenv, "SLOW_MO", b.SlowMo)
	b.ActionTimeout = envDuration(getenv, "ACTION_TIMEOUT", b.ActionTimeout)
	b.ViewportWidth = envInt(getenv, "VIEWPORT_WIDTH", b.ViewportWidth)
	b.ViewportHeight = envInt(getenv, "VIEWPORT_HEIGHT", b.ViewportHeight)
	b.Settle = envDuration(getenv, "UI_SETTLE", b.Settle)
	b.ShortSettle = envDuration(getenv, "UI_SHORT_SETTLE", b.ShortSettle)
	switch mode := envOr(getenv, "UI_READINESS", b.Readiness); mode {
	case ReadinessFixed, ReadinessStable:
		b.Readiness = mode
	default:
		b.Readiness = ReadinessFixed
	}
	return b
}

func envBool(getenv func(string) string, key string, fallback bool) bool {
	v, err := strconv.ParseBool(envOr(getenv, key, strconv.FormatBool(fallback)))
	if err != nil {
		return fallback
	}
	return v
}

func envInt(getenv func(string) string, key string, fallback int) int {
	v, err := strconv.Atoi(envOr(getenv, key, strconv.Itoa(fallback)))
	if err != nil || v <= 0 {
		return fallback
	}
	return v
}

func envDuration(getenv func(string) string, key string, fallback time.Duration) time.Duration {
	raw := getenv(key)
	if raw == "" {
		return fallback
	}
	v, err := time.ParseDuration(raw)
	if err != nil || v < 0 {
		return fallback
	}
	return v
}

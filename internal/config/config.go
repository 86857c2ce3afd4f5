package config

import (
	"fmt"
	"log"
	"os"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

// Credentials identifies a seed account.
type Credentials struct {
	Email    string `yaml:"email"`
	Password string `yaml:"password"`
}

// Config holds the endpoints and seed identities the suite runs against
type Config struct {
	APIBaseURL string        `yaml:"api_base_url"`
	UIBaseURL  string        `yaml:"ui_base_url"`
	Admin      Credentials   `yaml:"admin"`
	User       Credentials   `yaml:"user"`
	Browser    BrowserConfig `yaml:"browser"`
}

// Defaults used when neither the environment nor the overlay file set a value
const (
	DefaultAPIBaseURL    = "http://localhost:8000"
	DefaultUIBaseURL     = "http://localhost:3000"
	DefaultAdminEmail    = "admin@shop.com"
	DefaultAdminPassword = "admin123"
	DefaultUserEmail     = "user@shop.com"
	DefaultUserPassword  = "user123"
)

// OverlayEnv names the environment variable pointing at an optional YAML overlay file.
const OverlayEnv = "STOREFRONT_E2E_CONFIG"

var (
	loadOnce sync.Once
	loaded   Config
)

// Load resolves the configuration once per process.
// The YAML overlay (if any) sits between the defaults and the environment.
func Load() Config {
	loadOnce.Do(func() {
		base := Default()
		if path := os.Getenv(OverlayEnv); path != "" {
			overlaid, err := ApplyFile(base, path)
			if err != nil {
				log.Printf("Warning: ignoring config overlay: %v", err)
			} else {
				base = overlaid
			}
		}
		loaded = Resolve(base, os.Getenv)
	})
	return loaded
}

// Default returns the configuration with every fallback applied.
func Default() Config {
	return Config{
		APIBaseURL: DefaultAPIBaseURL,
		UIBaseURL:  DefaultUIBaseURL,
		Admin:      Credentials{Email: DefaultAdminEmail, Password: DefaultAdminPassword},
		User:       Credentials{Email: DefaultUserEmail, Password: DefaultUserPassword},
		Browser:    DefaultBrowserConfig(),
	}
}

// LoadConfig builds a configuration from defaults and the given environment lookup
func LoadConfig(getenv func(string) string) Config {
	return Resolve(Default(), getenv)
}

// Resolve overrides base with every non-empty value found through getenv.
func Resolve(base Config, getenv func(string) string) Config {
	cfg := base
	cfg.APIBaseURL = strings.TrimRight(envOr(getenv, "BASE_URL", cfg.APIBaseURL), "/")
	cfg.UIBaseURL = strings.TrimRight(envOr(getenv, "UI_URL", cfg.UIBaseURL), "/")
	cfg.Admin.Email = envOr(getenv, "ADMIN_EMAIL", cfg.Admin.Email)
	cfg.Admin.Password = envOr(getenv, "ADMIN_PASSWORD", cfg.Admin.Password)
	cfg.User.Email = envOr(getenv, "USER_EMAIL", cfg.User.Email)
	cfg.User.Password = envOr(getenv, "USER_PASSWORD", cfg.User.Password)
	cfg.Browser = resolveBrowser(cfg.Browser, getenv)
	return cfg
}

// ApplyFile overlays the YAML document at path onto base.
// Keys missing from the file keep their value from base.
func ApplyFile(base Config, path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return base, fmt.Errorf("reading config %s: %w", path, err)
	}
	cfg := base
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return base, fmt.Errorf("parsing config %s: %w", path, err)
	}
	return cfg, nil
}

// Masked returns a copy that is safe to print.
func (c Config) Masked() Config {
	out := c
	out.Admin.Password = mask(c.Admin.Password)
	out.User.Password = mask(c.User.Password)
	return out
}

// YAML renders the configuration as a YAML document
func (c Config) YAML() (string, error) {
	data, err := yaml.Marshal(c)
	if err != nil {
		return "", fmt.Errorf("failed to marshal config: %w", err)
	}
	return string(data), nil
}

func mask(secret string) string {
	if secret == "" {
		return ""
	}
	return "********"
}

func envOr(getenv func(string) string, key, fallback string) string {
	if v := strings.TrimSpace(getenv(key)); v != "" {
		return v
	}
	return fallback
}

// Package config loads and validates host settings for the page rendering
// service: defaults, then an optional YAML file, then environment overrides.
package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

// Config holds the settings the page chrome and its HTTP host consume.
type Config struct {
	HTTPHost     string `env:"PAGEKIT_HTTP_HOST" yaml:"http_host"`
	HTTPPort     int    `env:"PAGEKIT_HTTP_PORT" yaml:"http_port"`
	URLProtocol  string `env:"PAGEKIT_URL_PROTOCOL" yaml:"url_protocol"`
	Locale       string `env:"PAGEKIT_LOCALE" yaml:"locale"`
	Theme        string `env:"PAGEKIT_THEME" yaml:"theme"`
	ThemeVariant string `env:"PAGEKIT_THEME_VARIANT" yaml:"theme_variant"`
	AppName      string `env:"PAGEKIT_APP_NAME" yaml:"app_name"`

	// TagsDB is the SQLite path for the tag store. Empty selects the
	// in-memory static source.
	TagsDB string `env:"PAGEKIT_TAGS_DB" yaml:"tags_db"`

	// Debug enables the page debug panel plumbing.
	Debug bool `env:"PAGEKIT_DEBUG" yaml:"debug"`
}

// Default returns the baseline configuration.
func Default() Config {
	return Config{
		HTTPHost:    "localhost",
		HTTPPort:    33411,
		URLProtocol: "http",
		Locale:      "en-US",
		AppName:     "Harbormail",
	}
}

// Load builds a Config from defaults, an optional YAML file, and environment
// variables, then validates it. An empty path skips the file layer.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("config: read %s: %w", path, err)
		}
		if err := yaml.Unmarshal(raw, &cfg); err != nil {
			return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
		}
	}

	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("config: parse env: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate normalizes and checks every rule-bound field, reporting all
// violations at once.
func (c *Config) Validate() error {
	var errs []error

	if host, err := CheckHostname(c.HTTPHost); err != nil {
		errs = append(errs, err)
	} else {
		c.HTTPHost = host
	}
	if port, err := CheckPort(c.HTTPPort); err != nil {
		errs = append(errs, err)
	} else {
		c.HTTPPort = port
	}
	if proto, err := CheckURLProtocol(c.URLProtocol); err != nil {
		errs = append(errs, err)
	} else {
		c.URLProtocol = proto
	}
	if c.Theme != "" {
		if slug, err := CheckSlug(c.Theme); err != nil {
			errs = append(errs, err)
		} else {
			c.Theme = slug
		}
	}
	if c.ThemeVariant != "" {
		if slug, err := CheckSlug(c.ThemeVariant); err != nil {
			errs = append(errs, err)
		} else {
			c.ThemeVariant = slug
		}
	}

	return errors.Join(errs...)
}

// Addr returns the host:port the HTTP server binds to.
func (c Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.HTTPHost, c.HTTPPort)
}

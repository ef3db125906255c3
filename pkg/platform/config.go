package platform

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config describes site-wide settings. It is usually loaded from YAML:
//
//	secret: change-me
//	token_lifetime: 24h
//	subject_cookie: session_id
//	locale: de
//	translations:
//	  de:
//	    "This input is required.": "Dieses Feld ist erforderlich."
type Config struct {
	Secret        string                       `yaml:"secret"`
	TokenLifetime time.Duration                `yaml:"token_lifetime"`
	SubjectCookie string                       `yaml:"subject_cookie"`
	Locale        string                       `yaml:"locale"`
	Translations  map[string]map[string]string `yaml:"translations"`
	Rejection     RejectionConfig              `yaml:"rejection"`
}

// RejectionConfig customises the page shown when a token check fails.
type RejectionConfig struct {
	Title   string `yaml:"title"`
	Message string `yaml:"message"`
	// Template overrides the built-in pongo2 page.
	Template string `yaml:"template"`
}

// ParseConfig decodes a YAML configuration document.
func ParseConfig(data []byte) (Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("platform: parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// LoadConfig reads and decodes a YAML configuration file.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("platform: read config: %w", err)
	}
	return ParseConfig(data)
}

// Validate reports configuration errors.
func (c Config) Validate() error {
	if c.Secret == "" {
		return errors.New("platform: config: secret is required")
	}
	if c.TokenLifetime < 0 {
		return errors.New("platform: config: token_lifetime must not be negative")
	}
	return nil
}

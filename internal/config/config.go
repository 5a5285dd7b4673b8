// internal/config/config.go
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// CredentialsConfig describes the durable token slot.
type CredentialsConfig struct {
	// Filename of the SQLite store backing the credential slot.
	Filename string `yaml:"filename"`
	// TokenKey is the key name the session token is stored under.
	TokenKey string `yaml:"token_key"`
	// SweepInterval controls how often the janitor clears expired tokens.
	SweepInterval time.Duration `yaml:"sweep_interval"`
}

type Config struct {
	App struct {
		Name        string `yaml:"name"`
		Environment string `yaml:"environment"`
	} `yaml:"app"`

	API struct {
		BaseURL string `yaml:"base_url"`
		// Timeout applies per request; there is no retry layer.
		Timeout time.Duration `yaml:"timeout"`
		// RequestsPerSecond caps outbound calls; 0 disables the limiter.
		RequestsPerSecond float64 `yaml:"requests_per_second"`
		// AccessToken is a pre-issued token override. Loaded from
		// environment, never from the yaml file.
		AccessToken string `yaml:"-"`
	} `yaml:"api"`

	Credentials CredentialsConfig `yaml:"credentials"`

	Pages struct {
		PageSize int `yaml:"page_size"`
	} `yaml:"pages"`
}

// Load loads both .env and yaml configuration.
func Load(configPath string) (*Config, error) {
	// Load .env file if it exists
	envPath := filepath.Join(filepath.Dir(configPath), ".env")
	if err := godotenv.Load(envPath); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("error loading .env file: %w", err)
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("error parsing config file: %w", err)
	}

	cfg.applyDefaults()

	// Sensitive values come from the environment only.
	cfg.API.AccessToken = os.Getenv("HALICARE_ACCESS_TOKEN")

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.API.Timeout == 0 {
		c.API.Timeout = 15 * time.Second
	}
	if c.Credentials.TokenKey == "" {
		c.Credentials.TokenKey = "token"
	}
	if c.Credentials.SweepInterval == 0 {
		c.Credentials.SweepInterval = 15 * time.Minute
	}
	if c.Pages.PageSize == 0 {
		c.Pages.PageSize = 5
	}
}

func (c *Config) Validate() error {
	if c.App.Name == "" {
		return fmt.Errorf("app name is required")
	}
	if c.API.BaseURL == "" {
		return fmt.Errorf("api base_url is required")
	}
	if c.API.RequestsPerSecond < 0 {
		return fmt.Errorf("api requests_per_second must not be negative")
	}
	if c.Credentials.Filename == "" {
		return fmt.Errorf("credentials filename is required")
	}
	if c.Pages.PageSize < 1 {
		return fmt.Errorf("page size must be at least 1")
	}
	return nil
}

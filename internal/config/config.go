// Package config loads client configuration from environment variables with
// an optional .env file.
package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all client configuration
type Config struct {
	App   AppConfig   `mapstructure:"app"`
	API   APIConfig   `mapstructure:"api"`
	State StateConfig `mapstructure:"state"`
}

// AppConfig holds application-level settings
type AppConfig struct {
	Name        string `mapstructure:"name"`
	Environment string `mapstructure:"environment"` // development, production
	LogLevel    string `mapstructure:"log_level"`
}

// APIConfig holds backend gateway settings
type APIConfig struct {
	// BaseURL is the API root, e.g. http://localhost:8000/api
	BaseURL string `mapstructure:"base_url"`
	// Timeout bounds each request; zero disables the bound
	Timeout time.Duration `mapstructure:"timeout"`
}

// StateConfig holds durable client storage settings
type StateConfig struct {
	// Dir is where token/user/last-workers files live
	Dir string `mapstructure:"dir"`
}

// IsDevelopment reports whether the app runs in development mode
func (c *Config) IsDevelopment() bool {
	return c.App.Environment == "development"
}

// Load reads configuration from the environment and an optional .env file
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigFile(".env")
	v.SetConfigType("env")
	if err := v.ReadInConfig(); err != nil {
		// A missing .env is fine; env vars may still be set.
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok && !os.IsNotExist(err) {
			return nil, fmt.Errorf("read .env: %w", err)
		}
	}

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)

	cfg := &Config{}
	if err := bindConfig(v, cfg); err != nil {
		return nil, fmt.Errorf("bind config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("APP_NAME", "dc-landscaping")
	v.SetDefault("APP_ENVIRONMENT", "development")
	v.SetDefault("APP_LOG_LEVEL", "info")

	v.SetDefault("API_BASE_URL", "http://localhost:8000/api")
	v.SetDefault("API_TIMEOUT", "0s")

	v.SetDefault("STATE_DIR", defaultStateDir())
}

// defaultStateDir is ~/.dc-landscaping, falling back to the working
// directory when the home directory is unknown
func defaultStateDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".dc-landscaping"
	}
	return filepath.Join(home, ".dc-landscaping")
}

func bindConfig(v *viper.Viper, cfg *Config) error {
	cfg.App = AppConfig{
		Name:        v.GetString("APP_NAME"),
		Environment: v.GetString("APP_ENVIRONMENT"),
		LogLevel:    v.GetString("APP_LOG_LEVEL"),
	}
	cfg.API = APIConfig{
		BaseURL: v.GetString("API_BASE_URL"),
		Timeout: v.GetDuration("API_TIMEOUT"),
	}
	cfg.State = StateConfig{
		Dir: v.GetString("STATE_DIR"),
	}
	return nil
}

// Validate checks the loaded configuration
func (c *Config) Validate() error {
	if c.API.BaseURL == "" {
		return fmt.Errorf("api base url is required")
	}
	u, err := url.Parse(c.API.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("api base url %q is not a valid URL", c.API.BaseURL)
	}
	if c.State.Dir == "" {
		return fmt.Errorf("state dir is required")
	}
	return nil
}

package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds the application configuration loaded from files and environment variables.
type Config struct {
	AppName            string        `mapstructure:"app_name"`
	Env                string        `mapstructure:"app_env"`
	LogLevel           string        `mapstructure:"log_level"`
	BaseURL            string        `mapstructure:"base_url"`
	HTTPTimeoutSeconds int64         `mapstructure:"http_timeout_seconds"`
	HTTPTimeout        time.Duration `mapstructure:"-"`
	PublishersFile     string        `mapstructure:"publishers_file"`

	StorageType            string        `mapstructure:"storage_type"`
	BBoltPath              string        `mapstructure:"bbolt_path"`
	PostgresDSN            string        `mapstructure:"postgres_dsn"`
	StorageTTLSeconds      int64         `mapstructure:"storage_ttl_seconds"`
	StorageCleanupSeconds  int64         `mapstructure:"storage_cleanup_interval_seconds"`
	StorageTTL             time.Duration `mapstructure:"-"`
	StorageCleanupInterval time.Duration `mapstructure:"-"`
}

// ExportEnabled reports whether a publishers file was configured.
func (c *Config) ExportEnabled() bool {
	return c != nil && strings.TrimSpace(c.PublishersFile) != ""
}

// StorageTarget returns the path or DSN the configured store opens.
func (c *Config) StorageTarget() string {
	if strings.EqualFold(strings.TrimSpace(c.StorageType), "postgres") {
		return c.PostgresDSN
	}
	return c.BBoltPath
}

// Load reads configuration from environment variables and config files.
func Load() (*Config, error) {
	_ = godotenv.Load("configs/.env")

	v := viper.New()

	v.SetDefault("app_name", "placeholder-client")
	v.SetDefault("app_env", "development")
	v.SetDefault("log_level", "info")
	v.SetDefault("base_url", "https://jsonplaceholder.typicode.com/")
	v.SetDefault("http_timeout_seconds", 15)
	v.SetDefault("publishers_file", "")
	v.SetDefault("storage_type", "bbolt")
	v.SetDefault("bbolt_path", "./data/seen.db")
	v.SetDefault("postgres_dsn", "")
	v.SetDefault("storage_ttl_seconds", int64((7*24*time.Hour)/time.Second))
	v.SetDefault("storage_cleanup_interval_seconds", int64((12*time.Hour)/time.Second))

	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.finalize(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// finalize validates raw values and derives durations.
func (c *Config) finalize() error {
	c.BaseURL = strings.TrimSpace(c.BaseURL)
	if c.BaseURL == "" {
		return fmt.Errorf("invalid base_url (must not be empty)")
	}
	u, err := url.Parse(c.BaseURL)
	if err != nil || u.Host == "" {
		return fmt.Errorf("invalid base_url %q", c.BaseURL)
	}

	if c.HTTPTimeoutSeconds <= 0 {
		return fmt.Errorf("invalid http_timeout_seconds (must be positive seconds)")
	}
	c.HTTPTimeout = time.Duration(c.HTTPTimeoutSeconds) * time.Second

	if c.StorageTTLSeconds <= 0 {
		return fmt.Errorf("invalid storage_ttl_seconds (must be positive seconds)")
	}
	if c.StorageCleanupSeconds <= 0 {
		return fmt.Errorf("invalid storage_cleanup_interval_seconds (must be positive seconds)")
	}
	c.StorageTTL = time.Duration(c.StorageTTLSeconds) * time.Second
	c.StorageCleanupInterval = time.Duration(c.StorageCleanupSeconds) * time.Second

	return nil
}

// Override applies non-empty command line values and revalidates.
func (c *Config) Override(baseURL, logLevel string) error {
	if v := strings.TrimSpace(baseURL); v != "" {
		c.BaseURL = v
	}
	if v := strings.TrimSpace(logLevel); v != "" {
		c.LogLevel = v
	}
	return c.finalize()
}

// LogFields returns the settings safe to log. The postgres DSN is reduced to
// whether one is set since it usually carries a password.
func (c *Config) LogFields() map[string]any {
	return map[string]any{
		"app_name":                         c.AppName,
		"app_env":                          c.Env,
		"log_level":                        c.LogLevel,
		"base_url":                         c.BaseURL,
		"http_timeout_seconds":             c.HTTPTimeoutSeconds,
		"publishers_file":                  c.PublishersFile,
		"storage_type":                     c.StorageType,
		"bbolt_path":                       c.BBoltPath,
		"postgres_dsn_set":                 strings.TrimSpace(c.PostgresDSN) != "",
		"storage_ttl_seconds":              c.StorageTTLSeconds,
		"storage_cleanup_interval_seconds": c.StorageCleanupSeconds,
	}
}

// Package config loads settings for the chart service from an optional YAML
// file, a .env file and MARC_* environment variables.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"marc/database"
	"marc/services"
)

type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Database  database.Config `mapstructure:"database"`
	Logging   LoggingConfig   `mapstructure:"logging"`
	Dashboard DashboardConfig `mapstructure:"dashboard"`
}

type ServerConfig struct {
	Addr        string   `mapstructure:"addr"`
	CORSOrigins []string `mapstructure:"cors_origins"`
	ChartJSURL  string   `mapstructure:"chartjs_url"`
}

type LoggingConfig struct {
	Level string `mapstructure:"level"` // debug, info, warn, error
	Color bool   `mapstructure:"color"`
}

type DashboardConfig struct {
	Title       string               `mapstructure:"title"`
	Concurrency int                  `mapstructure:"concurrency"`
	Charts      []services.ChartSpec `mapstructure:"charts"`
}

// LoadDotEnv loads variables from the given env files (".env" by default)
// without overriding variables already set. A missing file is not an error.
func LoadDotEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil {
			if errors.Is(err, os.ErrNotExist) {
				slog.Debug("env file not found", "file", f)
				continue
			}
			return fmt.Errorf("error loading env file %s: %w", f, err)
		}
	}
	return nil
}

// Load reads the configuration. The file is looked up as marc.yaml in
// ./config, ~/.marc and /etc/marc; it is optional.
// Environment variables override file values: MARC_<SECTION>_<KEY>.
func Load() (*Config, error) {
	v := newViper()
	v.SetConfigName("marc")
	v.SetConfigType("yaml")
	v.AddConfigPath("./config")
	if home, err := os.UserHomeDir(); err == nil {
		v.AddConfigPath(filepath.Join(home, ".marc"))
	}
	v.AddConfigPath("/etc/marc")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}
	return decode(v)
}

// LoadFromFile reads the configuration from path.
func LoadFromFile(path string) (*Config, error) {
	v := newViper()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file %s: %w", path, err)
	}
	return decode(v)
}

func newViper() *viper.Viper {
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix("MARC")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.addr", ":8080")
	v.SetDefault("server.cors_origins", []string{"*"})
	v.SetDefault("server.chartjs_url", "https://cdn.jsdelivr.net/npm/chart.js")

	v.SetDefault("database.url", "")
	v.SetDefault("database.host", "")
	v.SetDefault("database.port", "")
	v.SetDefault("database.user", "")
	v.SetDefault("database.password", "")
	v.SetDefault("database.name", "")
	v.SetDefault("database.max_conns", 10)

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.color", true)

	v.SetDefault("dashboard.title", "DMARC reports")
	v.SetDefault("dashboard.concurrency", 4)
}

func decode(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}
	cfg.Database.FillFromEnv()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks values that cannot be defaulted.
func (c *Config) Validate() error {
	if c.Server.Addr == "" {
		return errors.New("server.addr must not be empty")
	}
	if c.Dashboard.Concurrency < 0 {
		return fmt.Errorf("dashboard.concurrency must not be negative, got %d", c.Dashboard.Concurrency)
	}
	seen := make(map[string]bool)
	for i, spec := range c.Dashboard.Charts {
		if spec.ID == "" {
			continue
		}
		if seen[spec.ID] {
			return fmt.Errorf("dashboard.charts[%d]: duplicate chart id %q", i, spec.ID)
		}
		seen[spec.ID] = true
	}
	return nil
}

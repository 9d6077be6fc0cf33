// internal/config/config.go
package config

import (
	"fmt"
	"io"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/valpere/PeopleScrapexter/internal/output"
	"github.com/valpere/PeopleScrapexter/pkg/types"
)

// LoadFromFile loads configuration from a YAML file
func LoadFromFile(filename string) (*Config, error) {
	if filename == "" {
		return nil, fmt.Errorf("configuration filename cannot be empty")
	}
	if _, err := os.Stat(filename); os.IsNotExist(err) {
		return nil, fmt.Errorf("configuration file not found: %s", filename)
	}
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read configuration file: %v", err)
	}
	return LoadFromBytes(data)
}

// LoadFromBytes loads configuration from YAML bytes
func LoadFromBytes(data []byte) (*Config, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("configuration data cannot be empty")
	}

	// Substitute environment variables so DSNs can stay out of the file
	expanded := os.ExpandEnv(string(data))

	var cfg Config
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse YAML configuration: %v", err)
	}

	applyDefaults(&cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %v", err)
	}
	return &cfg, nil
}

// LoadFromReader loads configuration from an io.Reader
func LoadFromReader(reader io.Reader) (*Config, error) {
	if reader == nil {
		return nil, fmt.Errorf("reader cannot be nil")
	}
	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to read from reader: %v", err)
	}
	return LoadFromBytes(data)
}

func applyDefaults(cfg *Config) {
	if cfg.Variant == "" {
		cfg.Variant = string(types.VariantPrimary)
	}
	if cfg.Browser.ViewportWidth <= 0 {
		cfg.Browser.ViewportWidth = 1366
	}
	if cfg.Browser.ViewportHeight <= 0 {
		cfg.Browser.ViewportHeight = 900
	}
	if cfg.Browser.Timeout <= 0 {
		cfg.Browser.Timeout = types.NewDuration(5 * time.Minute)
	}
	if cfg.Pump.BaseDelay <= 0 {
		cfg.Pump.BaseDelay = types.NewDuration(400 * time.Millisecond)
	}
	if cfg.Pump.MaxAttempts <= 0 {
		cfg.Pump.MaxAttempts = 150
	}
	if cfg.Paging.MaxPages <= 0 {
		cfg.Paging.MaxPages = 1
	}
	if cfg.Paging.PageDelay <= 0 {
		cfg.Paging.PageDelay = types.NewDuration(2 * time.Second)
	}
	if cfg.Server.Addr == "" {
		cfg.Server.Addr = ":8089"
	}
	if cfg.Server.RatePerSecond <= 0 {
		cfg.Server.RatePerSecond = 1
	}
	if cfg.Server.RateBurst <= 0 {
		cfg.Server.RateBurst = 3
	}
	if len(cfg.Outputs) == 0 {
		cfg.Outputs = []output.Options{{Format: output.FormatCSV, File: "-"}}
	}
}

// GenerateTemplate returns a starter configuration document.
func GenerateTemplate() Config {
	return Config{
		Name:    "people-search",
		URL:     "https://example.com/search/results/people/?keywords=product+designer",
		Variant: string(types.VariantPrimary),
		Pump: PumpConfig{
			BaseDelay:   types.NewDuration(400 * time.Millisecond),
			MaxAttempts: 150,
		},
		Paging: PagingConfig{
			MaxPages:  1,
			PageDelay: types.NewDuration(2 * time.Second),
		},
		Outputs: []output.Options{
			{Format: output.FormatCSV, File: "people.csv"},
			{Format: output.FormatSQLite, File: "people.db", Table: "people"},
		},
	}
}

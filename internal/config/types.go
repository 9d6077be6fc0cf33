// internal/config/types.go
package config

import (
	"github.com/valpere/PeopleScrapexter/internal/output"
	"github.com/valpere/PeopleScrapexter/pkg/types"
)

// Config is the root configuration document.
type Config struct {
	Name    string           `yaml:"name" json:"name"`
	URL     string           `yaml:"url" json:"url"`
	Variant string           `yaml:"variant,omitempty" json:"variant,omitempty"`
	Browser BrowserConfig    `yaml:"browser,omitempty" json:"browser,omitempty"`
	Pump    PumpConfig       `yaml:"pump,omitempty" json:"pump,omitempty"`
	Paging  PagingConfig     `yaml:"paging,omitempty" json:"paging,omitempty"`
	Outputs []output.Options `yaml:"outputs" json:"outputs"`
	Server  ServerConfig     `yaml:"server,omitempty" json:"server,omitempty"`
}

// BrowserConfig mirrors the browser driver options.
type BrowserConfig struct {
	Headless       *bool          `yaml:"headless,omitempty" json:"headless,omitempty"`
	UserAgent      string         `yaml:"user_agent,omitempty" json:"user_agent,omitempty"`
	UserDataDir    string         `yaml:"user_data_dir,omitempty" json:"user_data_dir,omitempty"`
	ViewportWidth  int            `yaml:"viewport_width,omitempty" json:"viewport_width,omitempty"`
	ViewportHeight int            `yaml:"viewport_height,omitempty" json:"viewport_height,omitempty"`
	Timeout        types.Duration `yaml:"timeout,omitempty" json:"timeout,omitempty"`
	DisableImages  bool           `yaml:"disable_images,omitempty" json:"disable_images,omitempty"`
}

// PumpConfig tunes the lazy-load pump.
type PumpConfig struct {
	BaseDelay   types.Duration `yaml:"base_delay,omitempty" json:"base_delay,omitempty"`
	MaxAttempts int            `yaml:"max_attempts,omitempty" json:"max_attempts,omitempty"`
}

// PagingConfig bounds multi-page runs.
type PagingConfig struct {
	MaxPages  int            `yaml:"max_pages,omitempty" json:"max_pages,omitempty"`
	PageDelay types.Duration `yaml:"page_delay,omitempty" json:"page_delay,omitempty"`
}

// ServerConfig configures the HTTP surface.
type ServerConfig struct {
	Addr          string  `yaml:"addr,omitempty" json:"addr,omitempty"`
	RatePerSecond float64 `yaml:"rate_per_second,omitempty" json:"rate_per_second,omitempty"`
	RateBurst     int     `yaml:"rate_burst,omitempty" json:"rate_burst,omitempty"`
}

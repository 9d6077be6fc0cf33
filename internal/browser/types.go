// internal/browser/types.go
package browser

import "time"

// Config controls the headless Chrome session.
type Config struct {
	Headless       bool          `yaml:"headless" json:"headless"`
	UserAgent      string        `yaml:"user_agent,omitempty" json:"user_agent,omitempty"`
	UserDataDir    string        `yaml:"user_data_dir,omitempty" json:"user_data_dir,omitempty"`
	ViewportWidth  int           `yaml:"viewport_width,omitempty" json:"viewport_width,omitempty"`
	ViewportHeight int           `yaml:"viewport_height,omitempty" json:"viewport_height,omitempty"`
	Timeout        time.Duration `yaml:"timeout,omitempty" json:"timeout,omitempty"`
	DisableImages  bool          `yaml:"disable_images,omitempty" json:"disable_images,omitempty"`
}

// DefaultConfig returns a headless desktop-sized session.
func DefaultConfig() *Config {
	return &Config{
		Headless:       true,
		ViewportWidth:  1366,
		ViewportHeight: 900,
		Timeout:        5 * time.Minute,
	}
}

// Stats tracks driver activity for diagnostics.
type Stats struct {
	PagesLoaded      int
	PumpRuns         int
	PumpTicks        int
	Errors           int
	AverageLoadTime  time.Duration
	TimeoutsOccurred int
}

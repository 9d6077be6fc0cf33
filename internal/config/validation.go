// internal/config/validation.go
package config

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/valpere/PeopleScrapexter/internal/output"
	"github.com/valpere/PeopleScrapexter/pkg/types"
)

// ValidationError describes one problem in a configuration document.
type ValidationError struct {
	Field   string
	Message string
}

func (ve ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", ve.Field, ve.Message)
}

// Validate checks the configuration and returns an aggregate error listing
// every problem found.
func (c *Config) Validate() error {
	var errs []ValidationError

	if strings.TrimSpace(c.Name) == "" {
		errs = append(errs, ValidationError{"name", "cannot be empty"})
	}
	if c.URL != "" {
		if u, err := url.Parse(c.URL); err != nil || u.Scheme == "" || u.Host == "" {
			errs = append(errs, ValidationError{"url", "must be an absolute URL"})
		}
	}
	if _, err := types.ParseVariant(c.Variant); err != nil {
		errs = append(errs, ValidationError{"variant", err.Error()})
	}
	if c.Pump.MaxAttempts > 1000 {
		errs = append(errs, ValidationError{"pump.max_attempts", "unreasonably large, must be <= 1000"})
	}

	for i, sink := range c.Outputs {
		field := fmt.Sprintf("outputs[%d]", i)
		if !output.IsValidFormat(sink.Format) {
			errs = append(errs, ValidationError{field, fmt.Sprintf("unknown format %q", sink.Format)})
			continue
		}
		switch sink.Format {
		case output.FormatSQLite, output.FormatExcel:
			if sink.File == "" {
				errs = append(errs, ValidationError{field, "file is required"})
			}
		case output.FormatPostgreSQL, output.FormatMySQL, output.FormatMongoDB:
			if sink.DSN == "" {
				errs = append(errs, ValidationError{field, "dsn is required"})
			}
		}
	}

	if len(errs) == 0 {
		return nil
	}
	msgs := make([]string, 0, len(errs))
	for _, e := range errs {
		msgs = append(msgs, e.Error())
	}
	return fmt.Errorf("%d validation error(s): %s", len(errs), strings.Join(msgs, "; "))
}

// internal/output/types.go
package output

import (
	"fmt"
	"regexp"

	"github.com/valpere/PeopleScrapexter/pkg/types"
)

// Format represents the supported output sinks.
type Format string

const (
	FormatCSV        Format = "csv"
	FormatJSON       Format = "json"
	FormatExcel      Format = "excel"
	FormatSQLite     Format = "sqlite"
	FormatPostgreSQL Format = "postgresql"
	FormatMySQL      Format = "mysql"
	FormatMongoDB    Format = "mongodb"
)

// ValidFormats returns all valid output format values.
func ValidFormats() []Format {
	return []Format{
		FormatCSV, FormatJSON, FormatExcel,
		FormatSQLite, FormatPostgreSQL, FormatMySQL, FormatMongoDB,
	}
}

// IsValidFormat checks if a format is supported.
func IsValidFormat(f Format) bool {
	for _, valid := range ValidFormats() {
		if f == valid {
			return true
		}
	}
	return false
}

// Writer persists batches of extracted records. Implementations are safe
// for sequential use only; the pipeline never writes concurrently.
type Writer interface {
	Write(records []types.Record) error
	Close() error
}

// Options selects and configures one sink.
type Options struct {
	Format Format `yaml:"format" json:"format"`
	// File is the destination path for file-based sinks ("-" or empty
	// means stdout for CSV/JSON).
	File string `yaml:"file,omitempty" json:"file,omitempty"`
	// DSN is the connection string for database sinks.
	DSN string `yaml:"dsn,omitempty" json:"dsn,omitempty"`
	// Table is the table (or collection) name for database sinks.
	Table string `yaml:"table,omitempty" json:"table,omitempty"`
	// Database is the database name for MongoDB.
	Database string `yaml:"database,omitempty" json:"database,omitempty"`
	// SheetName overrides the worksheet name for Excel.
	SheetName string `yaml:"sheet_name,omitempty" json:"sheet_name,omitempty"`
}

// identifierRe validates SQL identifiers: starts with a letter or
// underscore, contains letters, digits, underscores.
var identifierRe = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

func validateIdentifier(name string) error {
	if !identifierRe.MatchString(name) {
		return fmt.Errorf("invalid SQL identifier: %q", name)
	}
	return nil
}

// NewWriter constructs the writer for the given options.
func NewWriter(opts Options) (Writer, error) {
	switch opts.Format {
	case FormatCSV:
		return NewCSVWriter(opts.File)
	case FormatJSON:
		return NewJSONWriter(opts.File)
	case FormatExcel:
		return NewExcelWriter(opts)
	case FormatSQLite:
		return NewSQLiteWriter(opts)
	case FormatPostgreSQL:
		return NewPostgreSQLWriter(opts)
	case FormatMySQL:
		return NewMySQLWriter(opts)
	case FormatMongoDB:
		return NewMongoDBWriter(opts)
	default:
		return nil, fmt.Errorf("unsupported output format: %s", opts.Format)
	}
}

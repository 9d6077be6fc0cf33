// internal/output/csv.go
package output

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/valpere/PeopleScrapexter/pkg/types"
)

// CSVWriter writes records as CSV with the fixed header row. Fields are
// comma-joined; a field is quoted (internal quotes doubled) iff it contains
// a comma, quote or newline, which is exactly encoding/csv's behavior.
type CSVWriter struct {
	writer      *csv.Writer
	file        *os.File
	wroteHeader bool
	writtenRows int
}

// NewCSVWriter creates a CSV writer for the given path; empty or "-" means
// stdout.
func NewCSVWriter(path string) (*CSVWriter, error) {
	var out io.Writer = os.Stdout
	var file *os.File
	if path != "" && path != "-" {
		if dir := filepath.Dir(path); dir != "." {
			if err := os.MkdirAll(dir, 0755); err != nil {
				return nil, fmt.Errorf("failed to create output directory: %w", err)
			}
		}
		f, err := os.Create(path)
		if err != nil {
			return nil, fmt.Errorf("failed to create CSV file: %w", err)
		}
		file = f
		out = f
	}
	return &CSVWriter{writer: csv.NewWriter(out), file: file}, nil
}

// Write appends records, emitting the header row before the first batch.
func (w *CSVWriter) Write(records []types.Record) error {
	if !w.wroteHeader {
		if err := w.writer.Write(types.RecordHeader); err != nil {
			return fmt.Errorf("failed to write CSV header: %w", err)
		}
		w.wroteHeader = true
	}
	for i, rec := range records {
		if err := w.writer.Write(rec.Row()); err != nil {
			return fmt.Errorf("failed to write row %d: %w", i, err)
		}
		w.writtenRows++
	}
	w.writer.Flush()
	if err := w.writer.Error(); err != nil {
		return fmt.Errorf("CSV writer error: %w", err)
	}
	return nil
}

// Close flushes and closes the underlying file if any.
func (w *CSVWriter) Close() error {
	w.writer.Flush()
	if err := w.writer.Error(); err != nil {
		return err
	}
	if w.file != nil {
		return w.file.Close()
	}
	return nil
}

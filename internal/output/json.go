// internal/output/json.go
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/valpere/PeopleScrapexter/pkg/types"
)

// JSONWriter writes records as a single JSON array.
type JSONWriter struct {
	out     io.Writer
	file    *os.File
	records []types.Record
}

// NewJSONWriter creates a JSON writer for the given path; empty or "-"
// means stdout.
func NewJSONWriter(path string) (*JSONWriter, error) {
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
			return nil, fmt.Errorf("failed to create JSON file: %w", err)
		}
		file = f
		out = f
	}
	return &JSONWriter{out: out, file: file}, nil
}

// Write buffers the records; the array is emitted on Close so multiple
// batches end up in one document.
func (w *JSONWriter) Write(records []types.Record) error {
	w.records = append(w.records, records...)
	return nil
}

// Close emits the accumulated array and closes the file if any.
func (w *JSONWriter) Close() error {
	enc := json.NewEncoder(w.out)
	enc.SetIndent("", "  ")
	if err := enc.Encode(w.records); err != nil {
		return fmt.Errorf("failed to encode JSON output: %w", err)
	}
	if w.file != nil {
		return w.file.Close()
	}
	return nil
}

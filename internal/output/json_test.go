// internal/output/json_test.go
package output

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/valpere/PeopleScrapexter/pkg/types"
)

func TestJSONWriterSingleArray(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.json")
	w, err := NewJSONWriter(path)
	if err != nil {
		t.Fatalf("NewJSONWriter() error = %v", err)
	}

	// Two batches must land in one array.
	if err := w.Write([]types.Record{{Name: "Jane Doe", ProfileURL: "https://example.com/in/jane"}}); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	if err := w.Write([]types.Record{{Name: "Bob Roe"}}); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read output: %v", err)
	}
	var decoded []types.Record
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("output is not a JSON array: %v", err)
	}
	if len(decoded) != 2 {
		t.Fatalf("decoded %d records, want 2", len(decoded))
	}
	if decoded[0].Name != "Jane Doe" || decoded[1].Name != "Bob Roe" {
		t.Errorf("decoded records out of order: %+v", decoded)
	}
}

func TestJSONWriterEmptyArray(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.json")
	w, err := NewJSONWriter(path)
	if err != nil {
		t.Fatalf("NewJSONWriter() error = %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	data, _ := os.ReadFile(path)
	var decoded []types.Record
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if len(decoded) != 0 {
		t.Errorf("decoded %d records from empty writer, want 0", len(decoded))
	}
}

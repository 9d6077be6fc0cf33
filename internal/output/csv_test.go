// internal/output/csv_test.go
package output

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/valpere/PeopleScrapexter/pkg/types"
)

func TestCSVWriterQuoting(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.csv")
	w, err := NewCSVWriter(path)
	if err != nil {
		t.Fatalf("NewCSVWriter() error = %v", err)
	}

	records := []types.Record{
		{
			Name:       `Smith, John "The Rock"`,
			Title:      "Engineer",
			Company:    "Acme",
			ProfileURL: "https://example.com/in/jsmith",
		},
		{
			Name:       "Jane Doe",
			Title:      "Designer",
			ProfileURL: "https://example.com/in/jane",
		},
	}
	if err := w.Write(records); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read output: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 3 {
		t.Fatalf("got %d lines, want header plus 2 rows", len(lines))
	}

	if lines[0] != strings.Join(types.RecordHeader, ",") {
		t.Errorf("header = %q, want fixed column order", lines[0])
	}

	// A field containing commas and quotes must be quoted with internal
	// quotes doubled.
	if !strings.HasPrefix(lines[1], `"Smith, John ""The Rock""",Engineer,Acme`) {
		t.Errorf("quoted row = %q", lines[1])
	}

	// A plain field stays unquoted.
	if strings.Contains(lines[2], `"`) {
		t.Errorf("plain row should not be quoted: %q", lines[2])
	}
}

func TestCSVWriterHeaderOnce(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.csv")
	w, err := NewCSVWriter(path)
	if err != nil {
		t.Fatalf("NewCSVWriter() error = %v", err)
	}

	batch := []types.Record{{Name: "Jane Doe"}}
	if err := w.Write(batch); err != nil {
		t.Fatalf("first Write() error = %v", err)
	}
	if err := w.Write(batch); err != nil {
		t.Fatalf("second Write() error = %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	data, _ := os.ReadFile(path)
	if got := strings.Count(string(data), "name,title"); got != 1 {
		t.Errorf("header appears %d times, want 1", got)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 3 {
		t.Errorf("got %d lines, want header plus 2 rows", len(lines))
	}
}

func TestCSVWriterCreatesDirectories(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "deeper", "out.csv")
	w, err := NewCSVWriter(path)
	if err != nil {
		t.Fatalf("NewCSVWriter() error = %v", err)
	}
	if err := w.Write([]types.Record{{Name: "Jane Doe"}}); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	w.Close()

	if _, err := os.Stat(path); err != nil {
		t.Errorf("output file missing: %v", err)
	}
}

// internal/output/manager.go
package output

import (
	"fmt"
	"strings"

	"github.com/valpere/PeopleScrapexter/internal/monitoring"
	"github.com/valpere/PeopleScrapexter/pkg/types"
)

// Manager fans records out to every configured sink. A failure in one sink
// is collected but does not stop writes to the others.
type Manager struct {
	writers []Writer
	names   []string
}

// NewManager constructs all configured writers. On any constructor failure
// the already-open writers are closed.
func NewManager(sinks []Options) (*Manager, error) {
	if len(sinks) == 0 {
		return nil, fmt.Errorf("at least one output sink is required")
	}
	m := &Manager{}
	for _, opts := range sinks {
		w, err := NewWriter(opts)
		if err != nil {
			m.Close()
			return nil, fmt.Errorf("failed to open %s sink: %w", opts.Format, err)
		}
		m.writers = append(m.writers, w)
		m.names = append(m.names, string(opts.Format))
	}
	return m, nil
}

// Write sends the batch to every sink.
func (m *Manager) Write(records []types.Record) error {
	var failures []string
	for i, w := range m.writers {
		err := w.Write(records)
		monitoring.ObserveOutput(m.names[i], len(records), err)
		if err != nil {
			failures = append(failures, fmt.Sprintf("%s: %v", m.names[i], err))
		}
	}
	if len(failures) > 0 {
		return fmt.Errorf("output failures: %s", strings.Join(failures, "; "))
	}
	return nil
}

// Close closes every sink, returning the first error encountered.
func (m *Manager) Close() error {
	var first error
	for _, w := range m.writers {
		if err := w.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}

// pkg/types/types.go
package types

import (
	"encoding/json"
	"fmt"
	"time"

	"gopkg.in/yaml.v3"
)

// Variant identifies which of the two supported markup families governs the
// selector cascades and the classifier threshold for one scrape invocation.
// It is set once per request and never changes mid-pipeline.
type Variant string

const (
	// VariantPrimary is the standard people-search results layout.
	VariantPrimary Variant = "primary"
	// VariantSecondary is the lead-list layout, which renders results
	// incrementally and uses a different card structure.
	VariantSecondary Variant = "secondary"
)

// ValidVariants returns all valid variant values
func ValidVariants() []Variant {
	return []Variant{VariantPrimary, VariantSecondary}
}

// IsValid checks if the variant is a valid value
func (v Variant) IsValid() bool {
	for _, valid := range ValidVariants() {
		if v == valid {
			return true
		}
	}
	return false
}

// ParseVariant converts a string into a Variant, defaulting to primary for
// the empty string.
func ParseVariant(s string) (Variant, error) {
	switch s {
	case "", string(VariantPrimary):
		return VariantPrimary, nil
	case string(VariantSecondary):
		return VariantSecondary, nil
	default:
		return "", fmt.Errorf("unknown variant: %q", s)
	}
}

// ConnectionDegree is a network-proximity label. The empty string means the
// degree could not be determined.
type ConnectionDegree string

const (
	DegreeNone   ConnectionDegree = ""
	DegreeFirst  ConnectionDegree = "1st"
	DegreeSecond ConnectionDegree = "2nd"
	DegreeThird  ConnectionDegree = "3rd"
)

// IsValid checks if the connection degree is one of the allowed values.
func (d ConnectionDegree) IsValid() bool {
	switch d {
	case DegreeNone, DegreeFirst, DegreeSecond, DegreeThird:
		return true
	}
	return false
}

// Record is one extracted person/role entry. Every field is best-effort; a
// record is only emitted when Name or ProfileURL is non-empty.
type Record struct {
	Name              string           `json:"name" yaml:"name"`
	Title             string           `json:"title" yaml:"title"`
	Company           string           `json:"company" yaml:"company"`
	Location          string           `json:"location" yaml:"location"`
	Industry          string           `json:"industry" yaml:"industry"`
	ConnectionDegree  ConnectionDegree `json:"connection_degree" yaml:"connection_degree"`
	SharedConnections string           `json:"shared_connections" yaml:"shared_connections"`
	ProfileURL        string           `json:"profile_url" yaml:"profile_url"`
}

// HasIdentity reports whether the record satisfies the inclusion invariant.
func (r Record) HasIdentity() bool {
	return r.Name != "" || r.ProfileURL != ""
}

// Duration represents a time duration with JSON and YAML marshaling
// support, so configuration files can say "400ms" or "2s".
type Duration time.Duration

// MarshalJSON implements json.Marshaler interface
func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}

// UnmarshalJSON implements json.Unmarshaler interface
func (d *Duration) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	duration, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("invalid duration format: %s", s)
	}
	*d = Duration(duration)
	return nil
}

// MarshalYAML implements yaml.Marshaler interface
func (d Duration) MarshalYAML() (interface{}, error) {
	return time.Duration(d).String(), nil
}

// UnmarshalYAML implements yaml.Unmarshaler interface
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	duration, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("invalid duration format: %s", s)
	}
	*d = Duration(duration)
	return nil
}

// String returns the string representation of the duration
func (d Duration) String() string {
	return time.Duration(d).String()
}

// ToDuration converts to standard time.Duration
func (d Duration) ToDuration() time.Duration {
	return time.Duration(d)
}

// NewDuration creates a Duration from time.Duration
func NewDuration(td time.Duration) Duration {
	return Duration(td)
}

// RecordHeader is the fixed column order used by every output sink.
var RecordHeader = []string{
	"name", "title", "company", "location", "industry",
	"connection_degree", "shared_connections", "profile_url",
}

// Row returns the record's values in RecordHeader order.
func (r Record) Row() []string {
	return []string{
		r.Name, r.Title, r.Company, r.Location, r.Industry,
		string(r.ConnectionDegree), r.SharedConnections, r.ProfileURL,
	}
}

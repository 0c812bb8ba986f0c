package source

import (
	"bytes"
	"encoding/json"
)

// RawEntry is one imported row before validation. Amount fields keep the
// operator's text so ParseAmount can apply a single set of rules to CSV and
// JSON input alike.
type RawEntry struct {
	Category   string    `json:"category"`
	Year       int       `json:"year"`
	Month      int       `json:"month"`
	Budget     RawAmount `json:"budget"`
	Actual     RawAmount `json:"actual,omitempty"`
	Reforecast RawAmount `json:"reforecast,omitempty"`
	Adjustment RawAmount `json:"adjustment,omitempty"`
	Notes      string    `json:"notes,omitempty"`
}

// RawAmount accepts a JSON number, string or null. Null and "" mean absent.
type RawAmount string

// UnmarshalJSON implements json.Unmarshaler.
func (a *RawAmount) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case bytes.Equal(data, []byte("null")):
		*a = ""
	case len(data) > 0 && data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*a = RawAmount(s)
	default:
		*a = RawAmount(data)
	}
	return nil
}

// Format is an import file encoding.
type Format string

// Supported import/export formats.
const (
	FormatCSV  Format = "csv"
	FormatJSON Format = "json"
)

// DiscoveredFile is an import file found by ScanDir or named on the command line.
type DiscoveredFile struct {
	Path   string
	Format Format
}

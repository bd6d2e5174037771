package formatting

import (
	"encoding/json"
	"fmt"
)

// JSONFormatter provides structured JSON output formatting
type JSONFormatter struct {
	options Options
}

// NewJSONFormatter creates a new JSON formatter
func NewJSONFormatter(options Options) Formatter {
	return &JSONFormatter{
		options: options,
	}
}

// FormatSites renders sites as a JSON array. An empty list renders as [].
func (f *JSONFormatter) FormatSites(sites []SiteStatus) (string, error) {
	sorted := sortedSites(sites)
	if sorted == nil {
		sorted = []SiteStatus{}
	}

	var (
		data []byte
		err  error
	)
	if f.options.Quiet {
		data, err = json.Marshal(sorted)
	} else {
		data, err = json.MarshalIndent(sorted, "", "  ")
	}
	if err != nil {
		return "", fmt.Errorf("failed to marshal status as JSON: %w", err)
	}
	return string(data) + "\n", nil
}

// SetOptions updates the formatter options
func (f *JSONFormatter) SetOptions(options Options) {
	f.options = options
}

// GetOptions returns the current formatter options
func (f *JSONFormatter) GetOptions() Options {
	return f.options
}

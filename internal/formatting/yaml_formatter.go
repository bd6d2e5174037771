package formatting

import (
	"fmt"

	"sigs.k8s.io/yaml"
)

// YAMLFormatter provides YAML output formatting
type YAMLFormatter struct {
	options Options
}

// NewYAMLFormatter creates a new YAML formatter
func NewYAMLFormatter(options Options) Formatter {
	return &YAMLFormatter{
		options: options,
	}
}

// FormatSites renders sites as a YAML list using their JSON field names.
func (f *YAMLFormatter) FormatSites(sites []SiteStatus) (string, error) {
	sorted := sortedSites(sites)
	if sorted == nil {
		sorted = []SiteStatus{}
	}

	data, err := yaml.Marshal(sorted)
	if err != nil {
		return "", fmt.Errorf("failed to marshal status as YAML: %w", err)
	}
	return string(data), nil
}

// SetOptions updates the formatter options
func (f *YAMLFormatter) SetOptions(options Options) {
	f.options = options
}

// GetOptions returns the current formatter options
func (f *YAMLFormatter) GetOptions() Options {
	return f.options
}

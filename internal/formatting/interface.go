// Package formatting renders DummySite status for the command line.
//
// A Formatter turns a list of SiteStatus values into one of several output
// formats (console, JSON, YAML, table). Use NewFactory().CreateFormatter to
// pick the implementation from Options.
package formatting

// OutputFormat represents the desired output format
type OutputFormat string

const (
	FormatConsole OutputFormat = "console" // Simple console output
	FormatJSON    OutputFormat = "json"    // JSON output
	FormatYAML    OutputFormat = "yaml"    // YAML output
	FormatTable   OutputFormat = "table"   // Rich table output
)

// SupportedFormats lists the formats accepted by ParseOutputFormat.
var SupportedFormats = []OutputFormat{FormatTable, FormatConsole, FormatJSON, FormatYAML}

// Options configures the formatter behavior
type Options struct {
	Format OutputFormat
	Quiet  bool // Suppress decorative elements
	Color  bool // Enable colored output
}

// SiteStatus is the observed state of one DummySite and its Job.
type SiteStatus struct {
	Name       string `json:"name"`
	Namespace  string `json:"namespace"`
	WebsiteURL string `json:"websiteURL"`

	// State is New, JobScheduled or ContentFetched.
	State string `json:"state"`

	// Job and JobStatus are empty when no Job carries the DummySite label.
	Job       string `json:"job,omitempty"`
	JobStatus string `json:"jobStatus,omitempty"`

	// ContentBytes is the length of spec.html; Preview is its first line.
	ContentBytes int    `json:"contentBytes"`
	Preview      string `json:"preview,omitempty"`
}

// Formatter renders DummySite status
type Formatter interface {
	FormatSites(sites []SiteStatus) (string, error)

	// Configuration
	SetOptions(options Options)
	GetOptions() Options
}

// Factory creates formatters for different output formats
type Factory interface {
	CreateFormatter(options Options) Formatter
}

// NewFactory creates a new formatter factory
func NewFactory() Factory {
	return &factory{}
}

// factory implements the Factory interface
type factory struct{}

// CreateFormatter creates the appropriate formatter based on options
func (f *factory) CreateFormatter(options Options) Formatter {
	switch options.Format {
	case FormatJSON:
		return NewJSONFormatter(options)
	case FormatYAML:
		return NewYAMLFormatter(options)
	case FormatTable:
		return NewTableFormatter(options)
	case FormatConsole:
		fallthrough
	default:
		return NewConsoleFormatter(options)
	}
}

package formatting

import (
	"fmt"
	"strings"
)

// ConsoleFormatter provides simple console output formatting
type ConsoleFormatter struct {
	options Options
}

// NewConsoleFormatter creates a new console formatter
func NewConsoleFormatter(options Options) Formatter {
	return &ConsoleFormatter{
		options: options,
	}
}

// FormatSites renders one numbered line per DummySite, followed by a
// preview of its content unless quiet.
func (f *ConsoleFormatter) FormatSites(sites []SiteStatus) (string, error) {
	if len(sites) == 0 {
		return "No DummySites found.\n", nil
	}

	var output []string
	output = append(output, fmt.Sprintf("DummySites (%d):", len(sites)))
	for i, site := range sortedSites(sites) {
		line := fmt.Sprintf("  %d. %-30s %-14s %s", i+1, site.Namespace+"/"+site.Name, colorize(f.options, site.State), site.WebsiteURL)
		if site.Job != "" {
			line += fmt.Sprintf(" (job %s: %s)", site.Job, colorize(f.options, site.JobStatus))
		}
		output = append(output, line)
		if !f.options.Quiet && site.Preview != "" {
			output = append(output, fmt.Sprintf("     %q", site.Preview))
		}
	}
	return strings.Join(output, "\n") + "\n", nil
}

// SetOptions updates the formatter options
func (f *ConsoleFormatter) SetOptions(options Options) {
	f.options = options
}

// GetOptions returns the current formatter options
func (f *ConsoleFormatter) GetOptions() Options {
	return f.options
}

package formatting

import (
	"fmt"
	"strconv"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

// TableFormatter provides rich table output formatting
type TableFormatter struct {
	options Options
}

// NewTableFormatter creates a new table formatter
func NewTableFormatter(options Options) Formatter {
	return &TableFormatter{
		options: options,
	}
}

// FormatSites renders one row per DummySite.
func (f *TableFormatter) FormatSites(sites []SiteStatus) (string, error) {
	if len(sites) == 0 {
		return f.formatEmptyMessage("No DummySites found"), nil
	}

	t := f.createTable()
	t.AppendHeader(table.Row{
		f.header("NAMESPACE"),
		f.header("NAME"),
		f.header("WEBSITE"),
		f.header("STATE"),
		f.header("JOB"),
		f.header("JOB STATUS"),
		f.header("BYTES"),
	})

	for _, site := range sortedSites(sites) {
		t.AppendRow(table.Row{
			site.Namespace,
			site.Name,
			site.WebsiteURL,
			colorize(f.options, site.State),
			dashIfEmpty(site.Job),
			colorize(f.options, dashIfEmpty(site.JobStatus)),
			strconv.Itoa(site.ContentBytes),
		})
	}

	out := t.Render()
	if !f.options.Quiet {
		out += fmt.Sprintf("\nTotal: %d DummySites\n", len(sites))
	}
	return out, nil
}

// SetOptions updates the formatter options
func (f *TableFormatter) SetOptions(options Options) {
	f.options = options
}

// GetOptions returns the current formatter options
func (f *TableFormatter) GetOptions() Options {
	return f.options
}

// Helper methods

// createTable creates a new table with standard styling
func (f *TableFormatter) createTable() table.Writer {
	t := table.NewWriter()
	if f.options.Quiet {
		t.SetStyle(table.StyleLight)
	} else {
		t.SetStyle(table.StyleRounded)
	}
	return t
}

func (f *TableFormatter) header(title string) string {
	if !f.options.Color {
		return title
	}
	return text.FgHiCyan.Sprint(title)
}

// formatEmptyMessage formats empty result messages
func (f *TableFormatter) formatEmptyMessage(message string) string {
	if !f.options.Color {
		return message + "\n"
	}
	return text.FgYellow.Sprint(message) + "\n"
}

func dashIfEmpty(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

package formatting

import (
	"fmt"
	"sort"
	"strings"

	"github.com/jedib0t/go-pretty/v6/text"
)

// ParseOutputFormat validates a user supplied format name.
func ParseOutputFormat(s string) (OutputFormat, error) {
	for _, format := range SupportedFormats {
		if strings.EqualFold(s, string(format)) {
			return format, nil
		}
	}

	names := make([]string, len(SupportedFormats))
	for i, format := range SupportedFormats {
		names[i] = string(format)
	}
	return "", fmt.Errorf("unsupported output format %q (supported: %s)", s, strings.Join(names, ", "))
}

// sortedSites returns a copy of sites ordered by namespace, then name.
func sortedSites(sites []SiteStatus) []SiteStatus {
	sorted := append([]SiteStatus(nil), sites...)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].Namespace != sorted[j].Namespace {
			return sorted[i].Namespace < sorted[j].Namespace
		}
		return sorted[i].Name < sorted[j].Name
	})
	return sorted
}

// stateColors maps states and job statuses to their display color.
var stateColors = map[string]text.Colors{
	"ContentFetched": {text.FgGreen},
	"Succeeded":      {text.FgGreen},
	"JobScheduled":   {text.FgYellow},
	"Active":         {text.FgYellow},
	"New":            {text.FgHiBlack},
	"Failed":         {text.FgRed},
}

// colorize applies the color for value when color output is enabled.
func colorize(options Options, value string) string {
	if !options.Color {
		return value
	}
	if colors, ok := stateColors[value]; ok {
		return colors.Sprint(value)
	}
	return value
}

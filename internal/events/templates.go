package events

import (
	"fmt"
	"strconv"
	"strings"
)

// MessageTemplateEngine provides dynamic message generation for events.
type MessageTemplateEngine struct {
	templates map[EventReason]string
}

// NewMessageTemplateEngine creates a new message template engine with default templates.
func NewMessageTemplateEngine() *MessageTemplateEngine {
	engine := &MessageTemplateEngine{
		templates: make(map[EventReason]string),
	}
	engine.loadDefaultTemplates()
	return engine
}

// loadDefaultTemplates initializes the default message templates for all event reasons.
func (e *MessageTemplateEngine) loadDefaultTemplates() {
	e.templates[ReasonJobScheduled] = "Job {{.JobName}} created to fetch {{.WebsiteURL}}"
	e.templates[ReasonJobScheduleFailed] = "Could not schedule a Job for {{.WebsiteURL}}{{if .Error}}: {{.Error}}{{end}}"
	e.templates[ReasonInvalidWebsiteURL] = "website_url {{.WebsiteURL}} cannot be fetched{{if .Error}}: {{.Error}}{{end}}"
	e.templates[ReasonContentFetched] = "Wrote {{.Bytes}} bytes of text from {{.WebsiteURL}} to spec.html"
	e.templates[ReasonFetchFailed] = "Fetching {{.WebsiteURL}} failed{{if .Error}}: {{.Error}}{{end}}"
	e.templates[ReasonPatchFailed] = "Writing spec.html failed{{if .Error}}: {{.Error}}{{end}}"
	e.templates[ReasonJobSucceeded] = "Job {{.JobName}} succeeded, deleting DummySite {{.Name}}"
}

// Render generates a message for the given event reason and data.
func (e *MessageTemplateEngine) Render(reason EventReason, data EventData) string {
	template, exists := e.templates[reason]
	if !exists {
		// Fallback for unknown event reasons
		return fmt.Sprintf("Event: %s for %s/%s", string(reason), data.Namespace, data.Name)
	}

	return e.renderTemplate(template, data)
}

// SetTemplate allows customizing the message template for a specific event reason.
func (e *MessageTemplateEngine) SetTemplate(reason EventReason, template string) {
	e.templates[reason] = template
}

// GetTemplate returns the template for a specific event reason.
func (e *MessageTemplateEngine) GetTemplate(reason EventReason) (string, bool) {
	template, exists := e.templates[reason]
	return template, exists
}

// renderTemplate performs simple variable substitution with EventData.
// Only {{.Field}} and {{if .Error}}...{{end}} are understood.
func (e *MessageTemplateEngine) renderTemplate(template string, data EventData) string {
	result := renderConditional(template, "{{if .Error}}", "{{end}}", data.Error != "")

	replacer := strings.NewReplacer(
		"{{.Name}}", data.Name,
		"{{.Namespace}}", data.Namespace,
		"{{.JobName}}", data.JobName,
		"{{.WebsiteURL}}", data.WebsiteURL,
		"{{.Error}}", data.Error,
		"{{.Bytes}}", strconv.Itoa(data.Bytes),
	)
	return replacer.Replace(result)
}

// renderConditional keeps or drops the first block between startMarker and endMarker.
func renderConditional(template, startMarker, endMarker string, condition bool) string {
	startIndex := strings.Index(template, startMarker)
	if startIndex == -1 {
		return template
	}

	endIndex := strings.Index(template[startIndex:], endMarker)
	if endIndex == -1 {
		return template
	}
	endIndex += startIndex

	before := template[:startIndex]
	after := template[endIndex+len(endMarker):]
	if condition {
		return before + template[startIndex+len(startMarker):endIndex] + after
	}
	return before + after
}

package events

import (
	"context"

	"dummysite/internal/client"
	"dummysite/pkg/logging"
	"dummysite/pkg/strings"
)

// maxMessageLen is the largest message the API server stores for an Event.
const maxMessageLen = 1024

// EventGenerator records Kubernetes Events on DummySites.
type EventGenerator struct {
	client    client.EventClient
	templates *MessageTemplateEngine
}

// NewEventGenerator creates a new EventGenerator using the provided client.
func NewEventGenerator(eventClient client.EventClient) *EventGenerator {
	return &EventGenerator{
		client:    eventClient,
		templates: NewMessageTemplateEngine(),
	}
}

// DummySiteEvent records an event for the named DummySite.
func (g *EventGenerator) DummySiteEvent(ctx context.Context, name, namespace string, reason EventReason, data EventData) error {
	data.Name = name
	data.Namespace = namespace

	message := strings.Preview(g.templates.Render(reason, data), maxMessageLen)
	eventType := string(getEventType(reason))

	logging.Debug("events", "Generating DummySite event: reason=%s, message=%s, type=%s",
		string(reason), message, eventType)

	return g.client.CreateDummySiteEvent(ctx, name, namespace, string(reason), message, eventType)
}

// SetTemplate allows customizing the message template for a specific event reason.
func (g *EventGenerator) SetTemplate(reason EventReason, template string) {
	g.templates.SetTemplate(reason, template)
}

// GetTemplate returns the template for a specific event reason.
func (g *EventGenerator) GetTemplate(reason EventReason) (string, bool) {
	return g.templates.GetTemplate(reason)
}

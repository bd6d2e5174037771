package events

// EventType represents the type/severity of a Kubernetes Event.
type EventType string

const (
	// EventTypeNormal indicates normal, non-problematic events.
	EventTypeNormal EventType = "Normal"

	// EventTypeWarning indicates events that may require attention.
	EventTypeWarning EventType = "Warning"
)

// EventReason represents the reason code for an event.
type EventReason string

// DummySite event reasons
const (
	// ReasonJobScheduled indicates the fetch Job for a DummySite was created.
	ReasonJobScheduled EventReason = "JobScheduled"

	// ReasonJobScheduleFailed indicates the fetch Job could not be rendered or created.
	ReasonJobScheduleFailed EventReason = "JobScheduleFailed"

	// ReasonInvalidWebsiteURL indicates spec.website_url is missing or unusable.
	ReasonInvalidWebsiteURL EventReason = "InvalidWebsiteURL"

	// ReasonContentFetched indicates the page text was written into spec.html.
	ReasonContentFetched EventReason = "ContentFetched"

	// ReasonFetchFailed indicates the page could not be retrieved.
	ReasonFetchFailed EventReason = "FetchFailed"

	// ReasonPatchFailed indicates spec.html could not be written.
	ReasonPatchFailed EventReason = "PatchFailed"

	// ReasonJobSucceeded indicates the fetch Job completed and the DummySite is being removed.
	ReasonJobSucceeded EventReason = "JobSucceeded"
)

// EventData contains the values substituted into event message templates.
type EventData struct {
	// Name is the DummySite name.
	Name string

	// Namespace is the DummySite namespace.
	Namespace string

	// JobName is the Job the event is about, if any.
	JobName string

	// WebsiteURL is the page the DummySite copies.
	WebsiteURL string

	// Error contains error information for failure events.
	Error string

	// Bytes is the size of the content written.
	Bytes int
}

// getEventType returns the appropriate EventType for a given EventReason.
func getEventType(reason EventReason) EventType {
	switch reason {
	case ReasonJobScheduleFailed,
		ReasonInvalidWebsiteURL,
		ReasonFetchFailed,
		ReasonPatchFailed:
		return EventTypeWarning
	default:
		return EventTypeNormal
	}
}

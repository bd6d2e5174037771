package watch

// EventType is the type field of a Kubernetes watch event.
type EventType string

const (
	// EventAdded is sent for new objects, and for every existing object when a watch is opened.
	EventAdded EventType = "ADDED"

	// EventModified is sent when an object changes.
	EventModified EventType = "MODIFIED"

	// EventDeleted is sent when an object is removed.
	EventDeleted EventType = "DELETED"

	// EventBookmark carries only a resourceVersion and is never forwarded.
	EventBookmark EventType = "BOOKMARK"

	// EventError carries a metav1.Status describing a watch failure.
	EventError EventType = "ERROR"
)

// IsObjectEvent reports whether the event type carries a resource object.
func (t EventType) IsObjectEvent() bool {
	return t == EventAdded || t == EventModified || t == EventDeleted
}

// DecodeFunc turns the raw object of a single watch event into a typed event.
// Returning an error causes the line to be logged and skipped.
type DecodeFunc[T any] func(eventType EventType, rawObject []byte) (T, error)

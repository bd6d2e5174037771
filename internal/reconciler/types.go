package reconciler

import (
	"context"
	"time"

	batchv1 "k8s.io/api/batch/v1"

	"dummysite/internal/events"
	"dummysite/internal/fetcher"
	"dummysite/internal/template"
	"dummysite/internal/watch"
)

// ResourceType represents the kind of resource being reconciled.
type ResourceType string

const (
	// ResourceTypeDummySite is the site descriptor kind.
	ResourceTypeDummySite ResourceType = "DummySite"

	// ResourceTypeJob is the work item kind.
	ResourceTypeJob ResourceType = "Job"
)

// DescriptorEvent is a DummySite watch event reduced to the fields the
// DescriptorReconciler reads.
type DescriptorEvent struct {
	Type       watch.EventType
	Name       string
	Namespace  string
	WebsiteURL string
	Image      string

	// Content is the spec.html already stored on the DummySite, if any.
	Content string
}

// WorkItemEvent is a Job watch event reduced to the fields the
// WorkItemReconciler reads.
type WorkItemEvent struct {
	Type      watch.EventType
	Name      string
	Namespace string

	// DescriptorName is the value of the dummysite label; empty for Jobs
	// the controller does not own.
	DescriptorName string
	WebsiteURL     string

	// Succeeded is true once at least one pod of the Job completed successfully.
	Succeeded bool

	// Deleting is true when the Job has a deletionTimestamp.
	Deleting bool
}

// DescriptorState is the lifecycle state of a DummySite as seen by the
// DescriptorReconciler after handling an event.
type DescriptorState string

const (
	// StateNew means nothing was scheduled for the DummySite.
	StateNew DescriptorState = "New"

	// StateJobScheduled means a Job exists for the DummySite.
	StateJobScheduled DescriptorState = "JobScheduled"

	// StateContentFetched means the fetched text was written to the DummySite.
	StateContentFetched DescriptorState = "ContentFetched"

	// StateRemoved means the DummySite and its Jobs are gone.
	StateRemoved DescriptorState = "Removed"
)

// WorkItemAction describes what the WorkItemReconciler did with an event.
type WorkItemAction string

const (
	// ActionIgnored means the event did not call for any change.
	ActionIgnored WorkItemAction = "Ignored"

	// ActionDescriptorDeleted means the owning DummySite was deleted.
	ActionDescriptorDeleted WorkItemAction = "DescriptorDeleted"

	// ActionDescriptorAbsent means the owning DummySite was already gone.
	ActionDescriptorAbsent WorkItemAction = "DescriptorAbsent"

	// ActionFailed means the delete call failed; the failure was logged.
	ActionFailed WorkItemAction = "Failed"
)

// ContentFetcher retrieves a page into a scratch directory.
type ContentFetcher interface {
	Fetch(ctx context.Context, url, destination string) (*fetcher.Result, error)
}

// ManifestRenderer turns a field set into a Job ready to be created.
type ManifestRenderer interface {
	RenderJob(fields template.JobFields) (*batchv1.Job, error)
}

// EventRecorder records Kubernetes Events on DummySites.
type EventRecorder interface {
	DummySiteEvent(ctx context.Context, name, namespace string, reason events.EventReason, data events.EventData) error
}

// ManagerConfig holds configuration for the Manager.
type ManagerConfig struct {
	// Namespace restricts both watches to one namespace; empty watches all namespaces.
	Namespace string

	// Reconnect re-opens a watch stream after it ends. When false a stream
	// that ends stays closed.
	Reconnect bool

	// InitialBackoff is the fixed delay after any stream ends, cleanly or
	// with an error, before it is re-opened, and the first interval of the
	// exponential backoff between failed open attempts.
	// Defaults to 1 second if not specified.
	InitialBackoff time.Duration

	// MaxBackoff caps the delay between attempts to open a stream.
	// Defaults to 1 minute if not specified.
	MaxBackoff time.Duration
}

// DescriptorConfig holds the settings of the DescriptorReconciler.
type DescriptorConfig struct {
	// ScratchDir is the base directory pages are fetched into.
	ScratchDir string

	// DefaultImage is used when a DummySite names no image.
	DefaultImage string

	// BackoffLimit is passed to the Job template.
	BackoffLimit int32
}

package reconciler

import (
	"context"

	apierrors "k8s.io/apimachinery/pkg/api/errors"

	"dummysite/internal/client"
	"dummysite/internal/events"
	"dummysite/internal/watch"
	"dummysite/pkg/logging"
)

// WorkItemReconciler handles Job watch events. The first time a Job owned
// by a DummySite reports success, the DummySite is deleted; the resulting
// DummySite DELETED event then cleans up the Job.
type WorkItemReconciler struct {
	client   client.SiteClient
	metrics  *ReconcilerMetrics
	recorder EventRecorder
}

// NewWorkItemReconciler creates a WorkItemReconciler.
func NewWorkItemReconciler(c client.SiteClient, metrics *ReconcilerMetrics) *WorkItemReconciler {
	if metrics == nil {
		metrics = NewReconcilerMetrics()
	}
	return &WorkItemReconciler{
		client:  c,
		metrics: metrics,
	}
}

// SetEventRecorder makes the reconciler record a JobSucceeded Event on the
// DummySite before deleting it. Passing nil turns reporting off.
func (r *WorkItemReconciler) SetEventRecorder(recorder EventRecorder) {
	r.recorder = recorder
}

// Handle processes one event and reports what was done.
func (r *WorkItemReconciler) Handle(ctx context.Context, event WorkItemEvent) WorkItemAction {
	r.metrics.RecordEvent(ResourceTypeJob, event.Name)

	if reason := ignoreReason(event); reason != "" {
		r.metrics.RecordIgnored(ResourceTypeJob, event.Name, reason)
		return ActionIgnored
	}

	r.metrics.RecordReconcileAttempt(ResourceTypeJob, event.Name)

	r.recordSucceeded(ctx, event)

	err := r.client.DeleteDummySite(ctx, event.DescriptorName, event.Namespace)
	switch {
	case err == nil:
		r.metrics.RecordDeletion(ResourceTypeDummySite, event.DescriptorName)
		r.metrics.RecordReconcileSuccess(ResourceTypeJob, event.Name)
		logging.Info("WorkItemReconciler", "Job %s/%s succeeded, deleted %s",
			event.Namespace, event.Name, event.DescriptorName)
		return ActionDescriptorDeleted
	case apierrors.IsNotFound(err):
		r.metrics.RecordReconcileSuccess(ResourceTypeJob, event.Name)
		logging.Debug("WorkItemReconciler", "DummySite %s/%s of job %s already deleted",
			event.Namespace, event.DescriptorName, event.Name)
		return ActionDescriptorAbsent
	default:
		r.metrics.RecordReconcileFailure(ResourceTypeJob, event.Name, "descriptor delete failed")
		logging.Error("WorkItemReconciler", err, "Failed to delete %s/%s after job %s succeeded",
			event.Namespace, event.DescriptorName, event.Name)
		return ActionFailed
	}
}

// recordSucceeded records JobSucceeded on the DummySite while it still
// exists. Redeliveries after the delete find nothing and record nothing.
func (r *WorkItemReconciler) recordSucceeded(ctx context.Context, event WorkItemEvent) {
	if r.recorder == nil {
		return
	}
	if _, err := r.client.GetDummySite(ctx, event.DescriptorName, event.Namespace); err != nil {
		if !apierrors.IsNotFound(err) {
			logging.Debug("WorkItemReconciler", "Not recording event on %s/%s: %v", event.Namespace, event.DescriptorName, err)
		}
		return
	}

	err := r.recorder.DummySiteEvent(ctx, event.DescriptorName, event.Namespace, events.ReasonJobSucceeded, events.EventData{
		JobName:    event.Name,
		WebsiteURL: event.WebsiteURL,
	})
	if err != nil {
		logging.Debug("WorkItemReconciler", "Failed to record event on %s/%s: %v", event.Namespace, event.DescriptorName, err)
	}
}

// ignoreReason returns why event calls for no action, or "" if it does.
func ignoreReason(event WorkItemEvent) string {
	switch {
	case event.Type == watch.EventDeleted:
		return "job deleted"
	case event.DescriptorName == "":
		return "not owned by a DummySite"
	case event.Deleting:
		return "job is being deleted"
	case !event.Succeeded:
		return "job has not succeeded"
	default:
		return ""
	}
}

package reconciler

import (
	"context"
	"fmt"
	"net/url"
	"path/filepath"
	"strings"

	corev1 "k8s.io/api/core/v1"
	apierrors "k8s.io/apimachinery/pkg/api/errors"

	"dummysite/internal/client"
	"dummysite/internal/events"
	"dummysite/internal/template"
	"dummysite/internal/watch"
	dummysitev1 "dummysite/pkg/apis/dummysite/v1"
	"dummysite/pkg/logging"
	pkgstrings "dummysite/pkg/strings"
)

const (
	// maxLabelValueLength is the Kubernetes limit for label values.
	maxLabelValueLength = 63

	// Pod labels set by the job controller.
	legacyJobNameLabel = "job-name"
	jobNameLabel       = "batch.kubernetes.io/job-name"
)

// DescriptorReconciler handles DummySite watch events.
//
// ADDED schedules a Job, fetches the page and writes the text back onto
// the DummySite. DELETED removes every Job the DummySite owns, pods first.
// Failures are logged and the event is dropped; nothing is retried.
type DescriptorReconciler struct {
	client   client.SiteClient
	guard    *IdempotencyGuard
	patcher  *StatusPatcher
	renderer ManifestRenderer
	fetcher  ContentFetcher
	config   DescriptorConfig
	metrics  *ReconcilerMetrics
	recorder EventRecorder
}

// NewDescriptorReconciler creates a DescriptorReconciler.
func NewDescriptorReconciler(c client.SiteClient, renderer ManifestRenderer, fetcher ContentFetcher, config DescriptorConfig, metrics *ReconcilerMetrics) *DescriptorReconciler {
	if metrics == nil {
		metrics = NewReconcilerMetrics()
	}
	return &DescriptorReconciler{
		client:   c,
		guard:    NewIdempotencyGuard(c),
		patcher:  NewStatusPatcher(c),
		renderer: renderer,
		fetcher:  fetcher,
		config:   config,
		metrics:  metrics,
	}
}

// SetEventRecorder makes the reconciler report progress as Kubernetes Events
// on the DummySite. Passing nil turns reporting off.
func (r *DescriptorReconciler) SetEventRecorder(recorder EventRecorder) {
	r.recorder = recorder
}

// Handle processes one event and returns the state the DummySite ended in.
// For MODIFIED events the state is derived from the event alone.
func (r *DescriptorReconciler) Handle(ctx context.Context, event DescriptorEvent) DescriptorState {
	r.metrics.RecordEvent(ResourceTypeDummySite, event.Name)

	switch event.Type {
	case watch.EventAdded:
		return r.reconcileAdded(ctx, event)
	case watch.EventDeleted:
		r.cleanup(ctx, event.Name, event.Namespace)
		return StateRemoved
	default:
		r.metrics.RecordIgnored(ResourceTypeDummySite, event.Name, "event type "+string(event.Type))
		if event.Content != "" {
			return StateContentFetched
		}
		return StateNew
	}
}

func (r *DescriptorReconciler) reconcileAdded(ctx context.Context, event DescriptorEvent) DescriptorState {
	if event.Content != "" {
		r.metrics.RecordIgnored(ResourceTypeDummySite, event.Name, "content already present")
		return StateContentFetched
	}

	exists, err := r.guard.Exists(ctx, event.Name, event.Namespace)
	if err != nil {
		logging.Error("DescriptorReconciler", err, "Skipping %s/%s", event.Namespace, event.Name)
		r.metrics.RecordReconcileFailure(ResourceTypeDummySite, event.Name, "job lookup failed")
		return StateNew
	}
	if exists {
		r.metrics.RecordIgnored(ResourceTypeDummySite, event.Name, "job already scheduled")
		return StateJobScheduled
	}

	r.metrics.RecordReconcileAttempt(ResourceTypeDummySite, event.Name)

	target, err := parseWebsiteURL(event.WebsiteURL)
	if err != nil {
		logging.Error("DescriptorReconciler", err, "Skipping %s/%s", event.Namespace, event.Name)
		r.metrics.RecordReconcileFailure(ResourceTypeDummySite, event.Name, "invalid website_url")
		r.recordEvent(ctx, event, events.ReasonInvalidWebsiteURL, events.EventData{
			WebsiteURL: event.WebsiteURL,
			Error:      err.Error(),
		})
		return StateNew
	}

	created, err := r.scheduleJob(ctx, event, target)
	if err != nil {
		logging.Error("DescriptorReconciler", err, "Failed to schedule job for %s/%s", event.Namespace, event.Name)
		r.metrics.RecordReconcileFailure(ResourceTypeDummySite, event.Name, "job creation failed")
		r.recordEvent(ctx, event, events.ReasonJobScheduleFailed, events.EventData{
			WebsiteURL: target.String(),
			Error:      err.Error(),
		})
		return StateNew
	}
	if !created {
		return StateJobScheduled
	}
	r.recordEvent(ctx, event, events.ReasonJobScheduled, events.EventData{
		JobName:    jobNameFor(event.Name),
		WebsiteURL: target.String(),
	})

	destination := filepath.Join(r.config.ScratchDir, scratchDirName(target, event.Name))
	result, err := r.fetcher.Fetch(ctx, target.String(), destination)
	if err != nil {
		logging.Error("DescriptorReconciler", err, "Failed to fetch %s for %s/%s", target, event.Namespace, event.Name)
		r.metrics.RecordFetch(ResourceTypeDummySite, event.Name, false)
		r.metrics.RecordReconcileFailure(ResourceTypeDummySite, event.Name, "fetch failed")
		r.recordEvent(ctx, event, events.ReasonFetchFailed, events.EventData{
			WebsiteURL: target.String(),
			Error:      err.Error(),
		})
		return StateJobScheduled
	}
	r.metrics.RecordFetch(ResourceTypeDummySite, event.Name, true)

	content := strings.TrimSpace(result.Text)
	if content == "" {
		logging.Warn("DescriptorReconciler", "Page %s for %s/%s has no text, nothing to write", target, event.Namespace, event.Name)
		r.metrics.RecordReconcileSuccess(ResourceTypeDummySite, event.Name)
		return StateJobScheduled
	}

	r.metrics.RecordStatusSyncAttempt(ResourceTypeDummySite, event.Name)
	if err := r.patcher.Patch(ctx, event.Name, event.Namespace, content); err != nil {
		logging.Error("DescriptorReconciler", err, "Failed to write content for %s/%s", event.Namespace, event.Name)
		r.metrics.RecordStatusSyncFailure(ResourceTypeDummySite, event.Name, err.Error())
		r.metrics.RecordReconcileFailure(ResourceTypeDummySite, event.Name, "patch failed")
		r.recordEvent(ctx, event, events.ReasonPatchFailed, events.EventData{
			WebsiteURL: target.String(),
			Error:      err.Error(),
		})
		return StateJobScheduled
	}
	r.metrics.RecordStatusSyncSuccess(ResourceTypeDummySite, event.Name)
	r.metrics.RecordReconcileSuccess(ResourceTypeDummySite, event.Name)
	r.recordEvent(ctx, event, events.ReasonContentFetched, events.EventData{
		WebsiteURL: target.String(),
		Bytes:      len(content),
	})

	logging.Info("DescriptorReconciler", "Wrote %d bytes of content from %s to %s/%s: %q",
		len(content), target, event.Namespace, event.Name, pkgstrings.Preview(content, pkgstrings.DefaultPreviewMaxLen))
	return StateContentFetched
}

// recordEvent reports reason on the DummySite of event. Failures only
// cost the event.
func (r *DescriptorReconciler) recordEvent(ctx context.Context, event DescriptorEvent, reason events.EventReason, data events.EventData) {
	if r.recorder == nil {
		return
	}
	if err := r.recorder.DummySiteEvent(ctx, event.Name, event.Namespace, reason, data); err != nil {
		logging.Debug("DescriptorReconciler", "Failed to record %s event on %s/%s: %v", reason, event.Namespace, event.Name, err)
	}
}

// scheduleJob renders and creates the Job for event. It returns false
// without error when the Job already exists.
func (r *DescriptorReconciler) scheduleJob(ctx context.Context, event DescriptorEvent, target *url.URL) (bool, error) {
	image := event.Image
	if image == "" {
		image = r.config.DefaultImage
	}

	fields := template.JobFields{
		DummySiteName: event.Name,
		ContainerName: event.Name,
		JobName:       jobNameFor(event.Name),
		Namespace:     event.Namespace,
		Image:         image,
		WebsiteURL:    target.String(),
		WebsiteHost:   labelValueFor(target.Hostname(), event.Name),
		BackoffLimit:  r.config.BackoffLimit,
	}

	job, err := r.renderer.RenderJob(fields)
	if err != nil {
		return false, err
	}

	if err := r.client.CreateJob(ctx, job); err != nil {
		if apierrors.IsAlreadyExists(err) {
			logging.Debug("DescriptorReconciler", "Job %s/%s already exists", job.Namespace, job.Name)
			r.metrics.RecordIgnored(ResourceTypeDummySite, event.Name, "job already exists")
			return false, nil
		}
		return false, err
	}

	logging.Info("DescriptorReconciler", "Created job %s/%s for %s", job.Namespace, job.Name, target)
	return true, nil
}

// cleanup deletes every Job labelled with descriptorName, each Job's pods
// before the Job itself. NotFound answers count as deleted.
func (r *DescriptorReconciler) cleanup(ctx context.Context, descriptorName, namespace string) {
	jobs, err := r.guard.jobsForDescriptor(ctx, descriptorName, namespace)
	if err != nil {
		logging.Error("DescriptorReconciler", err, "Cleanup of %s/%s abandoned", namespace, descriptorName)
		r.metrics.RecordReconcileFailure(ResourceTypeDummySite, descriptorName, "job lookup failed")
		return
	}
	if len(jobs) == 0 {
		r.metrics.RecordIgnored(ResourceTypeDummySite, descriptorName, "no jobs to clean up")
		return
	}

	r.metrics.RecordReconcileAttempt(ResourceTypeDummySite, descriptorName)

	pods, err := r.client.ListPods(ctx, namespace)
	if err != nil {
		// The Job delete still propagates to its pods in the background.
		logging.Warn("DescriptorReconciler", "Failed to list pods in %s, deleting jobs only: %v", namespace, err)
		pods = nil
	}

	failed := false
	for _, job := range jobs {
		for _, pod := range podsOfJob(pods, job.Name) {
			if err := r.client.DeletePod(ctx, pod.Name, pod.Namespace); err != nil && !apierrors.IsNotFound(err) {
				logging.Error("DescriptorReconciler", err, "Failed to delete pod %s/%s", pod.Namespace, pod.Name)
				failed = true
				continue
			}
			logging.Debug("DescriptorReconciler", "Deleted pod %s/%s", pod.Namespace, pod.Name)
		}

		if err := r.client.DeleteJob(ctx, job.Name, job.Namespace); err != nil {
			if !apierrors.IsNotFound(err) {
				logging.Error("DescriptorReconciler", err, "Failed to delete job %s/%s", job.Namespace, job.Name)
				failed = true
			}
			continue
		}
		r.metrics.RecordDeletion(ResourceTypeJob, job.Name)
		logging.Info("DescriptorReconciler", "Deleted job %s/%s of removed %s", job.Namespace, job.Name, descriptorName)
	}

	if failed {
		r.metrics.RecordReconcileFailure(ResourceTypeDummySite, descriptorName, "cleanup incomplete")
		return
	}
	r.metrics.RecordReconcileSuccess(ResourceTypeDummySite, descriptorName)
}

func podsOfJob(pods []corev1.Pod, jobName string) []corev1.Pod {
	var owned []corev1.Pod
	for _, pod := range pods {
		if pod.Labels[jobNameLabel] == jobName || pod.Labels[legacyJobNameLabel] == jobName {
			owned = append(owned, pod)
		}
	}
	return owned
}

// parseWebsiteURL accepts absolute http and https URLs with a host.
func parseWebsiteURL(raw string) (*url.URL, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, fmt.Errorf("website_url is empty")
	}
	u, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("website_url %q is malformed: %w", raw, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("website_url %q must use http or https", raw)
	}
	if u.Hostname() == "" {
		return nil, fmt.Errorf("website_url %q has no host", raw)
	}
	return u, nil
}

// jobNameFor derives the Job name of a DummySite.
func jobNameFor(descriptorName string) string {
	return dummysitev1.JobName(descriptorName)
}

// labelValueFor turns value into a valid label value: characters outside
// [A-Za-z0-9-_.] become '-', the result is cut to 63 characters and must
// start and end with an alphanumeric. It returns fallback when nothing
// usable remains.
func labelValueFor(value, fallback string) string {
	mapped := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		case r == '-', r == '_', r == '.':
			return r
		default:
			return '-'
		}
	}, value)
	if len(mapped) > maxLabelValueLength {
		mapped = mapped[:maxLabelValueLength]
	}
	mapped = strings.TrimFunc(mapped, func(r rune) bool {
		return !(r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r >= '0' && r <= '9')
	})
	if mapped == "" {
		return fallback
	}
	return mapped
}

// scratchDirName is the directory below the scratch root a page is fetched into.
func scratchDirName(target *url.URL, descriptorName string) string {
	return labelValueFor(target.Hostname(), descriptorName)
}

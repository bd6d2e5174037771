package reconciler

import (
	"encoding/json"
	"errors"
	"fmt"

	batchv1 "k8s.io/api/batch/v1"
	corev1 "k8s.io/api/core/v1"

	"dummysite/internal/watch"
	dummysitev1 "dummysite/pkg/apis/dummysite/v1"
)

var errMissingName = errors.New("object has no metadata.name")

// DecodeDescriptorEvent decodes the object of a DummySite watch event.
func DecodeDescriptorEvent(eventType watch.EventType, rawObject []byte) (DescriptorEvent, error) {
	var site dummysitev1.DummySite
	if err := json.Unmarshal(rawObject, &site); err != nil {
		return DescriptorEvent{}, fmt.Errorf("failed to decode DummySite: %w", err)
	}
	if site.Name == "" {
		return DescriptorEvent{}, errMissingName
	}

	return DescriptorEvent{
		Type:       eventType,
		Name:       site.Name,
		Namespace:  site.Namespace,
		WebsiteURL: site.Spec.WebsiteURL,
		Image:      site.Spec.Image,
		Content:    site.Spec.HTML,
	}, nil
}

// DecodeWorkItemEvent decodes the object of a Job watch event.
func DecodeWorkItemEvent(eventType watch.EventType, rawObject []byte) (WorkItemEvent, error) {
	var job batchv1.Job
	if err := json.Unmarshal(rawObject, &job); err != nil {
		return WorkItemEvent{}, fmt.Errorf("failed to decode Job: %w", err)
	}
	if job.Name == "" {
		return WorkItemEvent{}, errMissingName
	}

	return WorkItemEvent{
		Type:           eventType,
		Name:           job.Name,
		Namespace:      job.Namespace,
		DescriptorName: dummysitev1.OwnerName(job.Labels, job.Annotations),
		WebsiteURL:     job.Annotations[dummysitev1.AnnotationWebsiteURL],
		Succeeded:      jobSucceeded(&job),
		Deleting:       job.DeletionTimestamp != nil,
	}, nil
}

// jobSucceeded reports whether at least one pod of the Job completed
// successfully, or the Job carries a true Complete condition.
func jobSucceeded(job *batchv1.Job) bool {
	if job.Status.Succeeded > 0 {
		return true
	}
	for _, cond := range job.Status.Conditions {
		if cond.Type == batchv1.JobComplete && cond.Status == corev1.ConditionTrue {
			return true
		}
	}
	return false
}

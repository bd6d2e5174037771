package app

import (
	"context"
	"fmt"

	batchv1 "k8s.io/api/batch/v1"
	corev1 "k8s.io/api/core/v1"

	"dummysite/internal/client"
	"dummysite/internal/formatting"
	dummysitev1 "dummysite/pkg/apis/dummysite/v1"
	"dummysite/pkg/strings"
)

// Observed states of a DummySite, as shown by the status command.
const (
	siteStateNew            = "New"
	siteStateJobScheduled   = "JobScheduled"
	siteStateContentFetched = "ContentFetched"
)

// Job statuses, as shown by the status command.
const (
	jobStatusSucceeded = "Succeeded"
	jobStatusFailed    = "Failed"
	jobStatusActive    = "Active"
	jobStatusPending   = "Pending"
)

// CollectSiteStatus lists the DummySites in namespace (all namespaces when
// empty) together with the Job labelled for each of them.
func CollectSiteStatus(ctx context.Context, c client.SiteClient, namespace string) ([]formatting.SiteStatus, error) {
	sites, err := c.ListDummySites(ctx, namespace)
	if err != nil {
		return nil, fmt.Errorf("failed to list DummySites: %w", err)
	}

	jobs, err := c.ListJobs(ctx, namespace)
	if err != nil {
		return nil, fmt.Errorf("failed to list jobs: %w", err)
	}

	jobsBySite := make(map[string]*batchv1.Job)
	for i := range jobs {
		job := &jobs[i]
		owner := dummysitev1.OwnerName(job.Labels, job.Annotations)
		if owner == "" {
			continue
		}
		jobsBySite[job.Namespace+"/"+owner] = job
	}

	statuses := make([]formatting.SiteStatus, 0, len(sites))
	for _, site := range sites {
		status := formatting.SiteStatus{
			Name:         site.Name,
			Namespace:    site.Namespace,
			WebsiteURL:   site.Spec.WebsiteURL,
			State:        siteStateNew,
			ContentBytes: len(site.Spec.HTML),
			Preview:      strings.Preview(site.Spec.HTML, strings.DefaultPreviewMaxLen),
		}

		if job, ok := jobsBySite[site.Namespace+"/"+site.Name]; ok {
			status.State = siteStateJobScheduled
			status.Job = job.Name
			status.JobStatus = jobStatus(job)
		}
		if site.Spec.HTML != "" {
			status.State = siteStateContentFetched
		}

		statuses = append(statuses, status)
	}
	return statuses, nil
}

func jobStatus(job *batchv1.Job) string {
	for _, cond := range job.Status.Conditions {
		if cond.Status != corev1.ConditionTrue {
			continue
		}
		switch cond.Type {
		case batchv1.JobComplete:
			return jobStatusSucceeded
		case batchv1.JobFailed:
			return jobStatusFailed
		}
	}

	switch {
	case job.Status.Succeeded > 0:
		return jobStatusSucceeded
	case job.Status.Active > 0:
		return jobStatusActive
	default:
		return jobStatusPending
	}
}

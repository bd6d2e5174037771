package reconciler

import (
	"context"
	"fmt"

	batchv1 "k8s.io/api/batch/v1"

	"dummysite/internal/client"
	dummysitev1 "dummysite/pkg/apis/dummysite/v1"
)

// IdempotencyGuard answers whether a DummySite already has a Job.
//
// Every call lists the namespace again; nothing is cached.
type IdempotencyGuard struct {
	client client.SiteClient
}

// NewIdempotencyGuard creates a guard backed by the given client.
func NewIdempotencyGuard(c client.SiteClient) *IdempotencyGuard {
	return &IdempotencyGuard{client: c}
}

// Exists reports whether any Job in namespace is owned by descriptorName:
// it carries the dummysite label for that name and, when annotated, the
// full name matches.
func (g *IdempotencyGuard) Exists(ctx context.Context, descriptorName, namespace string) (bool, error) {
	jobs, err := g.jobsForDescriptor(ctx, descriptorName, namespace)
	if err != nil {
		return false, err
	}
	return len(jobs) > 0, nil
}

func (g *IdempotencyGuard) jobsForDescriptor(ctx context.Context, descriptorName, namespace string) ([]batchv1.Job, error) {
	jobs, err := g.client.ListJobs(ctx, namespace)
	if err != nil {
		return nil, fmt.Errorf("failed to list jobs for %s/%s: %w", namespace, descriptorName, err)
	}

	var owned []batchv1.Job
	for _, job := range jobs {
		if dummysitev1.IsOwnedBy(job.Labels, job.Annotations, descriptorName) {
			owned = append(owned, job)
		}
	}
	return owned, nil
}

package client

import (
	"context"
	"io"

	batchv1 "k8s.io/api/batch/v1"
	corev1 "k8s.io/api/core/v1"

	dummysitev1 "dummysite/pkg/apis/dummysite/v1"
)

// SiteClient is the control-plane surface the reconcilers use.
//
// Deletes report NotFound as an error wrapping the API status, so callers
// can tell "already gone" apart from real failures with apierrors.IsNotFound.
type SiteClient interface {
	// Job operations
	ListJobs(ctx context.Context, namespace string) ([]batchv1.Job, error)
	CreateJob(ctx context.Context, job *batchv1.Job) error
	DeleteJob(ctx context.Context, name, namespace string) error

	// Pod operations
	ListPods(ctx context.Context, namespace string) ([]corev1.Pod, error)
	DeletePod(ctx context.Context, name, namespace string) error

	// DummySite operations
	ListDummySites(ctx context.Context, namespace string) ([]dummysitev1.DummySite, error)
	GetDummySite(ctx context.Context, name, namespace string) (*dummysitev1.DummySite, error)
	DeleteDummySite(ctx context.Context, name, namespace string) error
	PatchDummySite(ctx context.Context, name, namespace string, mergePatch []byte) error
}

// WatchClient opens raw watch connections. The returned body is
// newline-delimited JSON, one watch event per line, and must be closed by
// the caller.
type WatchClient interface {
	WatchDummySites(ctx context.Context, namespace string) (io.ReadCloser, error)
	WatchJobs(ctx context.Context, namespace string) (io.ReadCloser, error)
}

// EventClient records Kubernetes Events against DummySites.
type EventClient interface {
	CreateDummySiteEvent(ctx context.Context, name, namespace, reason, message, eventType string) error
}

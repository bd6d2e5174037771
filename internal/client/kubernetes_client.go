package client

import (
	"context"
	"fmt"
	"io"
	"path"
	"time"

	"github.com/google/uuid"

	batchv1 "k8s.io/api/batch/v1"
	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/runtime"
	"k8s.io/apimachinery/pkg/types"
	utilruntime "k8s.io/apimachinery/pkg/util/runtime"
	"k8s.io/client-go/kubernetes"
	clientgoscheme "k8s.io/client-go/kubernetes/scheme"
	"k8s.io/client-go/rest"
	"sigs.k8s.io/controller-runtime/pkg/client"

	dummysitev1 "dummysite/pkg/apis/dummysite/v1"
)

// KubernetesClient implements SiteClient and WatchClient against a Kubernetes API server.
//
// Typed reads and writes go through controller-runtime's client; watches use
// client-go's REST client directly so the caller receives the raw event stream.
type KubernetesClient struct {
	client.Client
	scheme *runtime.Scheme

	// restClient is used for raw watch requests; nil when built from an existing client
	restClient rest.Interface

	// instance identifies this process in the events it records
	instance string
}

// EventComponent is the source component of recorded events.
const EventComponent = "dummysite-controller"

// NewScheme returns a scheme with the built-in Kubernetes types and DummySite registered.
func NewScheme() *runtime.Scheme {
	scheme := runtime.NewScheme()
	utilruntime.Must(clientgoscheme.AddToScheme(scheme))
	utilruntime.Must(dummysitev1.AddToScheme(scheme))
	return scheme
}

// NewKubernetesClient creates a client for the cluster described by config.
//
// Args:
//   - config: Kubernetes REST configuration
//
// Returns:
//   - *KubernetesClient: The Kubernetes-backed client
//   - error: Error if either underlying client cannot be created
func NewKubernetesClient(config *rest.Config) (*KubernetesClient, error) {
	scheme := NewScheme()

	k8sClient, err := client.New(config, client.Options{
		Scheme: scheme,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Kubernetes client: %w", err)
	}

	clientset, err := kubernetes.NewForConfig(config)
	if err != nil {
		return nil, fmt.Errorf("failed to create Kubernetes clientset: %w", err)
	}

	return &KubernetesClient{
		Client:     k8sClient,
		scheme:     scheme,
		restClient: clientset.CoreV1().RESTClient(),
		instance:   newInstanceID(),
	}, nil
}

// NewKubernetesClientFromClient wraps an existing controller-runtime client.
// The result cannot open watches.
func NewKubernetesClientFromClient(c client.Client) *KubernetesClient {
	return &KubernetesClient{
		Client:   c,
		scheme:   c.Scheme(),
		instance: newInstanceID(),
	}
}

// ListJobs lists all Jobs in a namespace.
func (k *KubernetesClient) ListJobs(ctx context.Context, namespace string) ([]batchv1.Job, error) {
	jobList := &batchv1.JobList{}
	if err := k.Client.List(ctx, jobList, client.InNamespace(namespace)); err != nil {
		return nil, fmt.Errorf("failed to list Jobs in namespace %s: %w", namespace, err)
	}

	return jobList.Items, nil
}

// CreateJob creates a Job.
func (k *KubernetesClient) CreateJob(ctx context.Context, job *batchv1.Job) error {
	if err := k.Client.Create(ctx, job); err != nil {
		return fmt.Errorf("failed to create Job %s/%s: %w", job.Namespace, job.Name, err)
	}

	return nil
}

// DeleteJob deletes a Job. Pods are not cascaded here; callers remove them first.
func (k *KubernetesClient) DeleteJob(ctx context.Context, name, namespace string) error {
	job := &batchv1.Job{
		ObjectMeta: metav1.ObjectMeta{
			Name:      name,
			Namespace: namespace,
		},
	}

	if err := k.Client.Delete(ctx, job, client.PropagationPolicy(metav1.DeletePropagationBackground)); err != nil {
		return fmt.Errorf("failed to delete Job %s/%s: %w", namespace, name, err)
	}

	return nil
}

// ListPods lists all Pods in a namespace.
func (k *KubernetesClient) ListPods(ctx context.Context, namespace string) ([]corev1.Pod, error) {
	podList := &corev1.PodList{}
	if err := k.Client.List(ctx, podList, client.InNamespace(namespace)); err != nil {
		return nil, fmt.Errorf("failed to list Pods in namespace %s: %w", namespace, err)
	}

	return podList.Items, nil
}

// DeletePod deletes a Pod.
func (k *KubernetesClient) DeletePod(ctx context.Context, name, namespace string) error {
	pod := &corev1.Pod{
		ObjectMeta: metav1.ObjectMeta{
			Name:      name,
			Namespace: namespace,
		},
	}

	if err := k.Client.Delete(ctx, pod); err != nil {
		return fmt.Errorf("failed to delete Pod %s/%s: %w", namespace, name, err)
	}

	return nil
}

// ListDummySites lists DummySites, in all namespaces when namespace is empty.
func (k *KubernetesClient) ListDummySites(ctx context.Context, namespace string) ([]dummysitev1.DummySite, error) {
	siteList := &dummysitev1.DummySiteList{}
	if err := k.Client.List(ctx, siteList, client.InNamespace(namespace)); err != nil {
		return nil, fmt.Errorf("failed to list DummySites in namespace %s: %w", namespace, err)
	}

	return siteList.Items, nil
}

// GetDummySite retrieves a specific DummySite.
func (k *KubernetesClient) GetDummySite(ctx context.Context, name, namespace string) (*dummysitev1.DummySite, error) {
	site := &dummysitev1.DummySite{}
	key := types.NamespacedName{
		Name:      name,
		Namespace: namespace,
	}

	if err := k.Client.Get(ctx, key, site); err != nil {
		return nil, fmt.Errorf("failed to get DummySite %s/%s: %w", namespace, name, err)
	}

	return site, nil
}

// DeleteDummySite deletes a DummySite.
func (k *KubernetesClient) DeleteDummySite(ctx context.Context, name, namespace string) error {
	site := &dummysitev1.DummySite{
		ObjectMeta: metav1.ObjectMeta{
			Name:      name,
			Namespace: namespace,
		},
	}

	if err := k.Client.Delete(ctx, site); err != nil {
		return fmt.Errorf("failed to delete DummySite %s/%s: %w", namespace, name, err)
	}

	return nil
}

// PatchDummySite sends mergePatch as an application/merge-patch+json PATCH.
// Fields not named in the patch are left untouched by the API server.
func (k *KubernetesClient) PatchDummySite(ctx context.Context, name, namespace string, mergePatch []byte) error {
	site := &dummysitev1.DummySite{
		ObjectMeta: metav1.ObjectMeta{
			Name:      name,
			Namespace: namespace,
		},
	}

	if err := k.Client.Patch(ctx, site, client.RawPatch(types.MergePatchType, mergePatch)); err != nil {
		return fmt.Errorf("failed to patch DummySite %s/%s: %w", namespace, name, err)
	}

	return nil
}

// CreateDummySiteEvent records a Kubernetes Event on a DummySite.
// The DummySite's UID is looked up so the event shows in kubectl describe;
// if the lookup fails the event is still recorded by name.
func (k *KubernetesClient) CreateDummySiteEvent(ctx context.Context, name, namespace, reason, message, eventType string) error {
	var uid types.UID
	if site, err := k.GetDummySite(ctx, name, namespace); err == nil {
		uid = site.UID
	}

	now := metav1.NewTime(time.Now())
	event := &corev1.Event{
		ObjectMeta: metav1.ObjectMeta{
			GenerateName: name + "-",
			Namespace:    namespace,
		},
		InvolvedObject: corev1.ObjectReference{
			APIVersion: dummysitev1.GroupVersion.String(),
			Kind:       dummysitev1.Kind,
			Name:       name,
			Namespace:  namespace,
			UID:        uid,
		},
		Reason:              reason,
		Message:             message,
		Type:                eventType,
		Source:              corev1.EventSource{Component: EventComponent},
		ReportingController: EventComponent,
		ReportingInstance:   k.instance,
		Action:              "Reconcile",
		FirstTimestamp:      now,
		LastTimestamp:       now,
		Count:               1,
	}

	if err := k.Create(ctx, event); err != nil {
		return fmt.Errorf("failed to create Kubernetes Event for DummySite %s/%s: %w", namespace, name, err)
	}

	return nil
}

// WatchDummySites opens a watch on DummySites, cluster-wide when namespace is empty.
func (k *KubernetesClient) WatchDummySites(ctx context.Context, namespace string) (io.ReadCloser, error) {
	return k.openWatch(ctx, collectionPath("/apis/"+dummysitev1.GroupVersion.String(), namespace, dummysitev1.Resource))
}

// WatchJobs opens a watch on Jobs, cluster-wide when namespace is empty.
func (k *KubernetesClient) WatchJobs(ctx context.Context, namespace string) (io.ReadCloser, error) {
	return k.openWatch(ctx, collectionPath("/apis/"+batchv1.SchemeGroupVersion.String(), namespace, "jobs"))
}

func (k *KubernetesClient) openWatch(ctx context.Context, absPath string) (io.ReadCloser, error) {
	if k.restClient == nil {
		return nil, fmt.Errorf("watch %s: client has no REST transport", absPath)
	}

	body, err := k.restClient.Get().
		AbsPath(absPath).
		Param("watch", "true").
		Stream(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to open watch on %s: %w", absPath, err)
	}

	return body, nil
}

// Scheme returns the runtime scheme used by this client.
func (k *KubernetesClient) Scheme() *runtime.Scheme {
	return k.scheme
}

// collectionPath builds the REST path of a resource collection.
func collectionPath(groupVersionPath, namespace, resource string) string {
	if namespace == "" {
		return path.Join(groupVersionPath, resource)
	}
	return path.Join(groupVersionPath, "namespaces", namespace, resource)
}

func newInstanceID() string {
	return EventComponent + "-" + uuid.NewString()
}

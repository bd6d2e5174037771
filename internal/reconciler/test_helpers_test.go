package reconciler

import (
	"bytes"
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	batchv1 "k8s.io/api/batch/v1"
	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/runtime"
	ctrlclient "sigs.k8s.io/controller-runtime/pkg/client"
	"sigs.k8s.io/controller-runtime/pkg/client/fake"
	"sigs.k8s.io/controller-runtime/pkg/client/interceptor"

	"dummysite/internal/client"
	"dummysite/internal/events"
	"dummysite/internal/fetcher"
	"dummysite/internal/template"
	dummysitev1 "dummysite/pkg/apis/dummysite/v1"
	"dummysite/pkg/logging"
)

func init() {
	logging.InitForCLI(logging.LevelError, &bytes.Buffer{})
}

const testNamespace = "default"

// recorder captures the calls that reach the fake API server.
type recorder struct {
	mu      sync.Mutex
	creates []string
	deletes []string
	patches [][]byte
}

func (r *recorder) record(list *[]string, obj ctrlclient.Object) {
	r.mu.Lock()
	defer r.mu.Unlock()
	*list = append(*list, fmt.Sprintf("%T/%s", obj, obj.GetName()))
}

func (r *recorder) Creates() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.creates...)
}

func (r *recorder) Deletes() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.deletes...)
}

func (r *recorder) Patches() [][]byte {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([][]byte(nil), r.patches...)
}

// newTestClient returns a SiteClient over a fake API server holding objs,
// plus a recorder of the writes made through it.
func newTestClient(t *testing.T, objs ...runtime.Object) (*client.KubernetesClient, *recorder) {
	t.Helper()
	rec := &recorder{}

	fakeClient := fake.NewClientBuilder().
		WithScheme(client.NewScheme()).
		WithRuntimeObjects(objs...).
		WithInterceptorFuncs(interceptor.Funcs{
			Create: func(ctx context.Context, c ctrlclient.WithWatch, obj ctrlclient.Object, opts ...ctrlclient.CreateOption) error {
				rec.record(&rec.creates, obj)
				return c.Create(ctx, obj, opts...)
			},
			Delete: func(ctx context.Context, c ctrlclient.WithWatch, obj ctrlclient.Object, opts ...ctrlclient.DeleteOption) error {
				rec.record(&rec.deletes, obj)
				return c.Delete(ctx, obj, opts...)
			},
			Patch: func(ctx context.Context, c ctrlclient.WithWatch, obj ctrlclient.Object, patch ctrlclient.Patch, opts ...ctrlclient.PatchOption) error {
				data, err := patch.Data(obj)
				if err != nil {
					return err
				}
				rec.mu.Lock()
				rec.patches = append(rec.patches, data)
				rec.mu.Unlock()
				return c.Patch(ctx, obj, patch, opts...)
			},
		}).
		Build()

	return client.NewKubernetesClientFromClient(fakeClient), rec
}

// fakeFetcher returns a fixed result and remembers what it was asked for.
type fakeFetcher struct {
	mu    sync.Mutex
	text  string
	err   error
	calls []fetchCall
}

type fetchCall struct {
	URL         string
	Destination string
}

func (f *fakeFetcher) Fetch(ctx context.Context, url, destination string) (*fetcher.Result, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, fetchCall{URL: url, Destination: destination})
	if f.err != nil {
		return nil, f.err
	}
	return &fetcher.Result{Text: f.text, Assets: []string{"index.html"}}, nil
}

func (f *fakeFetcher) Calls() []fetchCall {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]fetchCall(nil), f.calls...)
}

func newTestRenderer(t *testing.T) *template.Renderer {
	t.Helper()
	renderer, err := template.NewRenderer("")
	require.NoError(t, err)
	return renderer
}

func testDescriptorConfig(t *testing.T) DescriptorConfig {
	return DescriptorConfig{
		ScratchDir:   t.TempDir(),
		DefaultImage: "example/fetcher:latest",
		BackoffLimit: 1,
	}
}

func newDummySite(name, websiteURL string) *dummysitev1.DummySite {
	return &dummysitev1.DummySite{
		TypeMeta: metav1.TypeMeta{
			APIVersion: dummysitev1.GroupVersion.String(),
			Kind:       "DummySite",
		},
		ObjectMeta: metav1.ObjectMeta{
			Name:      name,
			Namespace: testNamespace,
		},
		Spec: dummysitev1.DummySiteSpec{
			WebsiteURL: websiteURL,
		},
	}
}

func newOwnedJob(name, descriptorName string) *batchv1.Job {
	return &batchv1.Job{
		ObjectMeta: metav1.ObjectMeta{
			Name:      name,
			Namespace: testNamespace,
			Labels:    map[string]string{dummysitev1.LabelDummySite: descriptorName},
		},
	}
}

func newJobPod(name, labelKey, jobName string) *corev1.Pod {
	return &corev1.Pod{
		ObjectMeta: metav1.ObjectMeta{
			Name:      name,
			Namespace: testNamespace,
			Labels:    map[string]string{labelKey: jobName},
		},
	}
}

func addedEvent(name, websiteURL string) DescriptorEvent {
	return DescriptorEvent{
		Type:       "ADDED",
		Name:       name,
		Namespace:  testNamespace,
		WebsiteURL: websiteURL,
	}
}

func indexOf(list []string, item string) int {
	for i, v := range list {
		if v == item {
			return i
		}
	}
	return -1
}

// fakeEventRecorder captures recorded event reasons as "<name>:<reason>".
type fakeEventRecorder struct {
	mu      sync.Mutex
	records []string
	data    []events.EventData
	err     error
}

func (f *fakeEventRecorder) DummySiteEvent(ctx context.Context, name, namespace string, reason events.EventReason, data events.EventData) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.records = append(f.records, name+":"+string(reason))
	f.data = append(f.data, data)
	return f.err
}

func (f *fakeEventRecorder) Records() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.records...)
}

package template

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	corev1 "k8s.io/api/core/v1"
	"k8s.io/apimachinery/pkg/util/validation"

	dummysitev1 "dummysite/pkg/apis/dummysite/v1"
	"dummysite/pkg/logging"
)

func init() {
	logging.InitForCLI(logging.LevelError, &bytes.Buffer{})
}

func siteAFields() JobFields {
	return JobFields{
		DummySiteName: "site-a",
		ContainerName: "site-a",
		JobName:       "site-a-job",
		Namespace:     "default",
		Image:         "example/fetcher:1",
		WebsiteURL:    "http://example.com",
		WebsiteHost:   "example.com",
		BackoffLimit:  0,
	}
}

func TestRenderer_DefaultTemplate(t *testing.T) {
	r, err := NewRenderer("")
	require.NoError(t, err)

	job, err := r.RenderJob(siteAFields())
	require.NoError(t, err)

	assert.Equal(t, "site-a-job", job.Name)
	assert.Equal(t, "default", job.Namespace)
	assert.Equal(t, "site-a", job.Labels[dummysitev1.LabelDummySite])
	assert.Equal(t, "example.com", job.Labels[dummysitev1.LabelWebsite])
	assert.Equal(t, "http://example.com", job.Annotations[dummysitev1.AnnotationWebsiteURL])
	assert.Equal(t, "site-a", job.Annotations[dummysitev1.AnnotationDummySiteName])
	assert.Equal(t, "site-a", job.Spec.Template.Labels[dummysitev1.LabelDummySite])

	require.NotNil(t, job.Spec.BackoffLimit)
	assert.Equal(t, int32(0), *job.Spec.BackoffLimit)
	assert.Equal(t, corev1.RestartPolicyNever, job.Spec.Template.Spec.RestartPolicy)

	require.Len(t, job.Spec.Template.Spec.Containers, 1)
	container := job.Spec.Template.Spec.Containers[0]
	assert.Equal(t, "site-a", container.Name)
	assert.Equal(t, "example/fetcher:1", container.Image)
	require.Len(t, container.Env, 1)
	assert.Equal(t, "http://example.com", container.Env[0].Value)
}

func TestRenderer_EnforcesOwnershipLabels(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "job.yaml.tmpl")
	// A template that forgets labels and uses a different name
	require.NoError(t, os.WriteFile(path, []byte(`apiVersion: batch/v1
kind: Job
metadata:
  name: something-else
spec:
  template:
    spec:
      restartPolicy: Never
      containers:
        - name: fetch
          image: {{ .Image }}
`), 0644))

	r, err := NewRenderer(path)
	require.NoError(t, err)

	job, err := r.RenderJob(siteAFields())
	require.NoError(t, err)
	assert.Equal(t, "site-a-job", job.Name)
	assert.Equal(t, "default", job.Namespace)
	assert.Equal(t, "site-a", job.Labels[dummysitev1.LabelDummySite])
	assert.Equal(t, "http://example.com", job.Annotations[dummysitev1.AnnotationWebsiteURL])
}

func TestRenderer_LongNameKeepsLabelsValid(t *testing.T) {
	r, err := NewRenderer("")
	require.NoError(t, err)

	name := strings.Repeat("a", 60) + ".alpha"
	fields := siteAFields()
	fields.DummySiteName = name
	fields.ContainerName = name
	fields.JobName = dummysitev1.JobName(name)

	job, err := r.RenderJob(fields)
	require.NoError(t, err)

	label := job.Labels[dummysitev1.LabelDummySite]
	assert.Equal(t, dummysitev1.OwnerLabelValue(name), label)
	assert.Empty(t, validation.IsValidLabelValue(label))
	assert.Equal(t, label, job.Spec.Template.Labels[dummysitev1.LabelDummySite])
	assert.Equal(t, name, job.Annotations[dummysitev1.AnnotationDummySiteName])

	container := job.Spec.Template.Spec.Containers[0]
	assert.Empty(t, validation.IsDNS1123Label(container.Name), "container name %q", container.Name)
}

func TestRenderer_RejectsOtherKinds(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "job.yaml.tmpl")
	require.NoError(t, os.WriteFile(path, []byte("apiVersion: v1\nkind: Pod\nmetadata:\n  name: x\n"), 0644))

	r, err := NewRenderer(path)
	require.NoError(t, err)

	_, err = r.RenderJob(siteAFields())
	assert.Error(t, err)
}

func TestRenderer_UnknownFieldFailsRender(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "job.yaml.tmpl")
	require.NoError(t, os.WriteFile(path, []byte("name: {{ .Nope }}\n"), 0644))

	r, err := NewRenderer(path)
	require.NoError(t, err)

	_, err = r.Render(siteAFields())
	assert.Error(t, err)
}

func TestRenderer_ReloadKeepsPreviousOnParseError(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "job.yaml.tmpl")
	require.NoError(t, os.WriteFile(path, []byte("site: {{ .DummySiteName }}\n"), 0644))

	r, err := NewRenderer(path)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(path, []byte("site: {{ .DummySiteName \n"), 0644))
	assert.Error(t, r.Reload())

	out, err := r.Render(siteAFields())
	require.NoError(t, err)
	assert.Equal(t, "site: site-a\n", out)
}

func TestNewRenderer_MissingFile(t *testing.T) {
	_, err := NewRenderer(filepath.Join(t.TempDir(), "absent.tmpl"))
	assert.Error(t, err)
}

func TestTemplateWatcher_ReloadsOnWrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "job.yaml.tmpl")
	require.NoError(t, os.WriteFile(path, []byte("v1: {{ .DummySiteName }}\n"), 0644))

	r, err := NewRenderer(path)
	require.NoError(t, err)

	reloaded := make(chan error, 4)
	w := NewTemplateWatcher(r)
	w.debounce = 10 * time.Millisecond
	w.onReload = func(err error) { reloaded <- err }
	require.NoError(t, w.Start())
	defer w.Stop()

	require.NoError(t, os.WriteFile(path, []byte("v2: {{ .DummySiteName }}\n"), 0644))

	select {
	case err := <-reloaded:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("template was not reloaded")
	}

	out, err := r.Render(siteAFields())
	require.NoError(t, err)
	assert.Equal(t, "v2: site-a\n", out)
}

func TestTemplateWatcher_BuiltinIsNoop(t *testing.T) {
	r, err := NewRenderer("")
	require.NoError(t, err)

	w := NewTemplateWatcher(r)
	require.NoError(t, w.Start())
	w.Stop()
}

package template

import (
	"bytes"
	"fmt"
	"os"
	"sync"
	"text/template"

	"github.com/Masterminds/sprig/v3"
	batchv1 "k8s.io/api/batch/v1"
	"sigs.k8s.io/yaml"

	dummysitev1 "dummysite/pkg/apis/dummysite/v1"
	"dummysite/pkg/logging"
)

// JobFields is the data a Job template is executed with.
type JobFields struct {
	DummySiteName string

	// DummySiteLabel is the dummysite label value; RenderJob derives it
	// from DummySiteName.
	DummySiteLabel string

	ContainerName string
	JobName       string
	Namespace     string
	Image         string
	WebsiteURL    string
	WebsiteHost   string
	BackoffLimit  int32
}

// Renderer turns JobFields into a Job manifest.
//
// Templates use text/template syntax with the sprig function library.
// Missing keys are an error rather than "<no value>".
type Renderer struct {
	mu sync.RWMutex

	// path is the template file; empty means DefaultJobTemplate
	path string

	tmpl *template.Template
}

// NewRenderer creates a renderer for the template at path, or for
// DefaultJobTemplate when path is empty.
func NewRenderer(path string) (*Renderer, error) {
	r := &Renderer{path: path}
	if err := r.Reload(); err != nil {
		return nil, err
	}
	return r, nil
}

// Path returns the template file this renderer reads, or "" for the built-in template.
func (r *Renderer) Path() string {
	return r.path
}

// Reload re-reads and re-parses the template. On failure the previously
// loaded template stays in use.
func (r *Renderer) Reload() error {
	text := DefaultJobTemplate
	if r.path != "" {
		data, err := os.ReadFile(r.path)
		if err != nil {
			return fmt.Errorf("failed to read job template %s: %w", r.path, err)
		}
		text = string(data)
	}

	tmpl, err := parse(text)
	if err != nil {
		return fmt.Errorf("failed to parse job template %s: %w", r.displayPath(), err)
	}

	r.mu.Lock()
	r.tmpl = tmpl
	r.mu.Unlock()

	logging.Debug("Template", "Loaded job template %s", r.displayPath())
	return nil
}

// Render executes the template and returns the manifest text.
func (r *Renderer) Render(fields JobFields) (string, error) {
	r.mu.RLock()
	tmpl := r.tmpl
	r.mu.RUnlock()

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, fields); err != nil {
		return "", fmt.Errorf("failed to render job template for %s/%s: %w", fields.Namespace, fields.DummySiteName, err)
	}
	return buf.String(), nil
}

// RenderJob renders the manifest and decodes it into a Job.
//
// Whatever the template says, the returned Job carries the name and
// namespace from fields, the ownership labels and the URL annotation; the
// reconcilers depend on them to find the Job again.
func (r *Renderer) RenderJob(fields JobFields) (*batchv1.Job, error) {
	fields.DummySiteLabel = dummysitev1.OwnerLabelValue(fields.DummySiteName)

	manifest, err := r.Render(fields)
	if err != nil {
		return nil, err
	}

	job := &batchv1.Job{}
	if err := yaml.Unmarshal([]byte(manifest), job); err != nil {
		return nil, fmt.Errorf("rendered job manifest for %s/%s is not a valid Job: %w", fields.Namespace, fields.DummySiteName, err)
	}

	if job.Kind != "" && job.Kind != "Job" {
		return nil, fmt.Errorf("rendered job manifest for %s/%s has kind %q", fields.Namespace, fields.DummySiteName, job.Kind)
	}

	job.Name = fields.JobName
	job.Namespace = fields.Namespace
	if job.Labels == nil {
		job.Labels = make(map[string]string)
	}
	job.Labels[dummysitev1.LabelDummySite] = fields.DummySiteLabel
	job.Labels[dummysitev1.LabelWebsite] = fields.WebsiteHost
	if job.Annotations == nil {
		job.Annotations = make(map[string]string)
	}
	job.Annotations[dummysitev1.AnnotationDummySiteName] = fields.DummySiteName
	job.Annotations[dummysitev1.AnnotationWebsiteURL] = fields.WebsiteURL

	return job, nil
}

func (r *Renderer) displayPath() string {
	if r.path == "" {
		return "<built-in>"
	}
	return r.path
}

func parse(text string) (*template.Template, error) {
	return template.New("job").
		Funcs(sprig.TxtFuncMap()).
		Option("missingkey=error").
		Parse(text)
}

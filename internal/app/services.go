package app

import (
	"fmt"

	ctrl "sigs.k8s.io/controller-runtime"

	"dummysite/internal/client"
	"dummysite/internal/config"
	"dummysite/internal/events"
	"dummysite/internal/fetcher"
	"dummysite/internal/reconciler"
	"dummysite/internal/template"
	"dummysite/pkg/logging"
)

// Services holds the components the controller runs with.
type Services struct {
	// Renderer produces the Job manifest for each DummySite.
	Renderer *template.Renderer

	// TemplateWatcher reloads Renderer when a template file is configured; nil otherwise.
	TemplateWatcher *template.TemplateWatcher

	// Metrics is shared by both reconcilers and logged on shutdown.
	Metrics *reconciler.ReconcilerMetrics

	// Events records Kubernetes Events on DummySites; nil when disabled.
	Events *events.EventGenerator

	// Manager runs the DummySite and Job watch loops.
	Manager *reconciler.Manager
}

// InitializeServices connects to the cluster and builds the services.
func InitializeServices(cfg *Config) (*Services, error) {
	k8sClient, err := NewClusterClient()
	if err != nil {
		return nil, err
	}

	return buildServices(*cfg.ControllerConfig, k8sClient, k8sClient, k8sClient, fetcher.New())
}

// NewClusterClient connects to the cluster selected by the --kubeconfig
// flag, $KUBECONFIG, the in-cluster service account or ~/.kube/config.
func NewClusterClient() (*client.KubernetesClient, error) {
	restConfig, err := ctrl.GetConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load Kubernetes configuration: %w", err)
	}

	k8sClient, err := client.NewKubernetesClient(restConfig)
	if err != nil {
		return nil, err
	}
	logging.Debug("Bootstrap", "Connected to Kubernetes API at %s", restConfig.Host)
	return k8sClient, nil
}

// buildServices wires the reconcilers on top of the given clients. Events
// are recorded only when enabled and eventClient is non-nil.
func buildServices(cfg config.ControllerConfig, siteClient client.SiteClient, watchClient client.WatchClient, eventClient client.EventClient, contentFetcher reconciler.ContentFetcher) (*Services, error) {
	renderer, err := template.NewRenderer(cfg.Controller.JobTemplatePath)
	if err != nil {
		return nil, fmt.Errorf("failed to load job template: %w", err)
	}

	var watcher *template.TemplateWatcher
	if renderer.Path() != "" {
		watcher = template.NewTemplateWatcher(renderer)
	}

	metrics := reconciler.NewReconcilerMetrics()

	descriptors := reconciler.NewDescriptorReconciler(siteClient, renderer, contentFetcher, reconciler.DescriptorConfig{
		ScratchDir:   cfg.Controller.ScratchDir,
		DefaultImage: cfg.Controller.DefaultImage,
		BackoffLimit: cfg.Controller.BackoffLimit,
	}, metrics)
	workItems := reconciler.NewWorkItemReconciler(siteClient, metrics)

	var generator *events.EventGenerator
	if cfg.Controller.RecordEvents && eventClient != nil {
		generator = events.NewEventGenerator(eventClient)
		descriptors.SetEventRecorder(generator)
		workItems.SetEventRecorder(generator)
	}

	manager := reconciler.NewManager(reconciler.ManagerConfig{
		Namespace:      cfg.Controller.Namespace,
		Reconnect:      cfg.Watch.Reconnect,
		InitialBackoff: cfg.Watch.InitialBackoff,
		MaxBackoff:     cfg.Watch.MaxBackoff,
	}, watchClient, descriptors, workItems, metrics)

	return &Services{
		Renderer:        renderer,
		TemplateWatcher: watcher,
		Metrics:         metrics,
		Events:          generator,
		Manager:         manager,
	}, nil
}

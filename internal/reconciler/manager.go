package reconciler

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/cenkalti/backoff/v5"
	"golang.org/x/sync/errgroup"

	"dummysite/internal/client"
	"dummysite/internal/watch"
	"dummysite/pkg/logging"
)

// ErrStreamsEnded is returned by Run when both watch streams ended while
// the context was still live.
var ErrStreamsEnded = errors.New("all watch streams ended")

// Manager runs the two watch loops, one per resource kind.
//
// Each loop opens its watch through the WatchClient, decodes it with a
// watch.Stream and hands events to its reconciler strictly one at a time.
// The loops share nothing; a slow fetch on the DummySite side never holds
// up Job events.
type Manager struct {
	config ManagerConfig

	watchClient client.WatchClient
	descriptors *DescriptorReconciler
	workItems   *WorkItemReconciler
	metrics     *ReconcilerMetrics
}

// NewManager creates a new Manager.
func NewManager(config ManagerConfig, watchClient client.WatchClient, descriptors *DescriptorReconciler, workItems *WorkItemReconciler, metrics *ReconcilerMetrics) *Manager {
	// Apply defaults
	if config.InitialBackoff == 0 {
		config.InitialBackoff = time.Second
	}
	if config.MaxBackoff == 0 {
		config.MaxBackoff = time.Minute
	}
	if metrics == nil {
		metrics = NewReconcilerMetrics()
	}

	return &Manager{
		config:      config,
		watchClient: watchClient,
		descriptors: descriptors,
		workItems:   workItems,
		metrics:     metrics,
	}
}

// Metrics returns the metrics the Manager logs on shutdown.
func (m *Manager) Metrics() *ReconcilerMetrics {
	return m.metrics
}

// Run blocks until ctx is cancelled or both watch streams have ended.
//
// A watch that cannot be opened is an error. With Reconnect disabled a
// stream that ends stays closed and the other keeps running; once both
// have ended Run returns ErrStreamsEnded. A cancelled ctx returns nil.
func (m *Manager) Run(ctx context.Context) error {
	logging.Info("ReconcileManager", "Starting watches (namespace: %s, reconnect: %v)",
		namespaceDisplay(m.config.Namespace), m.config.Reconnect)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return runWatch(gctx, m.config, "dummysites", m.watchClient.WatchDummySites, DecodeDescriptorEvent,
			func(ctx context.Context, event DescriptorEvent) {
				state := m.descriptors.Handle(ctx, event)
				logging.Debug("ReconcileManager", "DummySite %s/%s %s -> %s", event.Namespace, event.Name, event.Type, state)
			})
	})
	g.Go(func() error {
		return runWatch(gctx, m.config, "jobs", m.watchClient.WatchJobs, DecodeWorkItemEvent,
			func(ctx context.Context, event WorkItemEvent) {
				action := m.workItems.Handle(ctx, event)
				logging.Debug("ReconcileManager", "Job %s/%s %s -> %s", event.Namespace, event.Name, event.Type, action)
			})
	})

	err := g.Wait()
	m.metrics.LogSummary()

	if ctx.Err() != nil {
		logging.Info("ReconcileManager", "Stopped")
		return nil
	}
	if err != nil {
		return err
	}
	return ErrStreamsEnded
}

type openFunc func(ctx context.Context, namespace string) (io.ReadCloser, error)

// runWatch drains one watch into handle until the stream ends for good.
func runWatch[T any](ctx context.Context, config ManagerConfig, name string, open openFunc, decode watch.DecodeFunc[T], handle func(context.Context, T)) error {
	for {
		body, err := openWatch(ctx, config, name, open)
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return fmt.Errorf("failed to open %s watch: %w", name, err)
		}

		stream := watch.NewStream(name, body, decode)
		stream.Start(ctx)
		for event := range stream.Events() {
			handle(ctx, event)
		}

		if ctx.Err() != nil {
			return nil
		}
		if err := stream.Err(); err != nil {
			logging.Warn("ReconcileManager", "Watch %s ended with error: %v", name, err)
		}
		if !config.Reconnect {
			logging.Warn("ReconcileManager", "Watch %s ended, no further %s events will be handled", name, name)
			return nil
		}

		logging.Info("ReconcileManager", "Re-opening watch %s in %s", name, config.InitialBackoff)
		select {
		case <-ctx.Done():
			return nil
		case <-time.After(config.InitialBackoff):
		}
	}
}

// openWatch opens the watch once, or with exponential backoff until ctx
// ends when reconnecting is enabled.
func openWatch(ctx context.Context, config ManagerConfig, name string, open openFunc) (io.ReadCloser, error) {
	if !config.Reconnect {
		return open(ctx, config.Namespace)
	}

	expBackoff := backoff.NewExponentialBackOff()
	expBackoff.InitialInterval = config.InitialBackoff
	expBackoff.MaxInterval = config.MaxBackoff

	return backoff.Retry(ctx, func() (io.ReadCloser, error) {
		return open(ctx, config.Namespace)
	},
		backoff.WithBackOff(expBackoff),
		backoff.WithMaxElapsedTime(0),
		backoff.WithNotify(func(err error, next time.Duration) {
			logging.Warn("ReconcileManager", "Failed to open watch %s, retrying in %s: %v", name, next, err)
		}),
	)
}

func namespaceDisplay(namespace string) string {
	if namespace == "" {
		return "<all>"
	}
	return namespace
}

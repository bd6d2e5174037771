package reconciler

import (
	"sort"
	"sync"
	"time"

	"dummysite/pkg/logging"
)

// ReconcilerMetrics tracks what the reconcilers did, per resource type.
//
// The counters are kept in memory only and are logged as a summary when the
// Manager stops.
type ReconcilerMetrics struct {
	mu sync.RWMutex

	// Per-resource-type metrics
	resourceMetrics map[ResourceType]*resourceTypeMetrics

	// Global counters for summary metrics
	totalEvents              int64
	totalIgnored             int64
	totalReconcileAttempts   int64
	totalReconcileSuccesses  int64
	totalReconcileFailures   int64
	totalStatusSyncAttempts  int64
	totalStatusSyncSuccesses int64
	totalStatusSyncFailures  int64
	totalFetchSuccesses      int64
	totalFetchFailures       int64
	totalDeletions           int64
}

// resourceTypeMetrics holds reconciliation metrics for a specific resource type.
type resourceTypeMetrics struct {
	ResourceType        ResourceType
	Events              int64
	Ignored             int64
	ReconcileAttempts   int64
	ReconcileSuccesses  int64
	ReconcileFailures   int64
	StatusSyncAttempts  int64
	StatusSyncSuccesses int64
	StatusSyncFailures  int64
	FetchSuccesses      int64
	FetchFailures       int64
	Deletions           int64
	LastEventAt         time.Time
	LastSuccessAt       time.Time
	LastFailureAt       time.Time
	LastStatusSyncAt    time.Time
}

// NewReconcilerMetrics creates a new ReconcilerMetrics instance.
func NewReconcilerMetrics() *ReconcilerMetrics {
	return &ReconcilerMetrics{
		resourceMetrics: make(map[ResourceType]*resourceTypeMetrics),
	}
}

// getOrCreateResourceMetrics returns existing metrics for a resource type or creates new ones.
func (m *ReconcilerMetrics) getOrCreateResourceMetrics(resourceType ResourceType) *resourceTypeMetrics {
	if metrics, exists := m.resourceMetrics[resourceType]; exists {
		return metrics
	}

	metrics := &resourceTypeMetrics{
		ResourceType: resourceType,
	}
	m.resourceMetrics[resourceType] = metrics
	return metrics
}

// RecordEvent records a watch event handed to a reconciler.
func (m *ReconcilerMetrics) RecordEvent(resourceType ResourceType, resourceName string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	metrics := m.getOrCreateResourceMetrics(resourceType)
	metrics.Events++
	metrics.LastEventAt = time.Now()
	m.totalEvents++
}

// RecordIgnored records an event that called for no action.
func (m *ReconcilerMetrics) RecordIgnored(resourceType ResourceType, resourceName string, reason string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	metrics := m.getOrCreateResourceMetrics(resourceType)
	metrics.Ignored++
	m.totalIgnored++

	logging.Debug("ReconcilerMetrics", "Ignored %s/%s: %s", resourceType, resourceName, reason)
}

// RecordReconcileAttempt records the start of a change driven by an event.
func (m *ReconcilerMetrics) RecordReconcileAttempt(resourceType ResourceType, resourceName string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	metrics := m.getOrCreateResourceMetrics(resourceType)
	metrics.ReconcileAttempts++
	m.totalReconcileAttempts++
}

// RecordReconcileSuccess records a change that completed.
func (m *ReconcilerMetrics) RecordReconcileSuccess(resourceType ResourceType, resourceName string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	metrics := m.getOrCreateResourceMetrics(resourceType)
	metrics.ReconcileSuccesses++
	metrics.LastSuccessAt = time.Now()
	m.totalReconcileSuccesses++
}

// RecordReconcileFailure records a change that was abandoned.
func (m *ReconcilerMetrics) RecordReconcileFailure(resourceType ResourceType, resourceName string, reason string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	metrics := m.getOrCreateResourceMetrics(resourceType)
	metrics.ReconcileFailures++
	metrics.LastFailureAt = time.Now()
	m.totalReconcileFailures++

	logging.Debug("ReconcilerMetrics", "Reconcile failure for %s/%s: %s (failures: %d)",
		resourceType, resourceName, reason, metrics.ReconcileFailures)
}

// RecordStatusSyncAttempt records a content patch attempt.
func (m *ReconcilerMetrics) RecordStatusSyncAttempt(resourceType ResourceType, resourceName string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	metrics := m.getOrCreateResourceMetrics(resourceType)
	metrics.StatusSyncAttempts++
	metrics.LastStatusSyncAt = time.Now()
	m.totalStatusSyncAttempts++
}

// RecordStatusSyncSuccess records a successful content patch.
func (m *ReconcilerMetrics) RecordStatusSyncSuccess(resourceType ResourceType, resourceName string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	metrics := m.getOrCreateResourceMetrics(resourceType)
	metrics.StatusSyncSuccesses++
	m.totalStatusSyncSuccesses++
}

// RecordStatusSyncFailure records a failed content patch.
//
// A high failure rate usually points at RBAC missing the patch verb on
// dummysites, or at a CRD schema that prunes spec.html.
func (m *ReconcilerMetrics) RecordStatusSyncFailure(resourceType ResourceType, resourceName string, reason string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	metrics := m.getOrCreateResourceMetrics(resourceType)
	metrics.StatusSyncFailures++
	m.totalStatusSyncFailures++

	logging.Warn("ReconcilerMetrics", "Status sync failure for %s/%s: %s (failures: %d)",
		resourceType, resourceName, reason, metrics.StatusSyncFailures)
}

// RecordFetch records the outcome of a content fetch.
func (m *ReconcilerMetrics) RecordFetch(resourceType ResourceType, resourceName string, ok bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	metrics := m.getOrCreateResourceMetrics(resourceType)
	if ok {
		metrics.FetchSuccesses++
		m.totalFetchSuccesses++
		return
	}
	metrics.FetchFailures++
	m.totalFetchFailures++
}

// RecordDeletion records an object deleted by a reconciler.
func (m *ReconcilerMetrics) RecordDeletion(resourceType ResourceType, resourceName string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	metrics := m.getOrCreateResourceMetrics(resourceType)
	metrics.Deletions++
	m.totalDeletions++
}

// ReconcilerMetricsSummary provides a summary of reconciliation metrics.
type ReconcilerMetricsSummary struct {
	TotalEvents              int64                    `json:"total_events"`
	TotalIgnored             int64                    `json:"total_ignored"`
	TotalReconcileAttempts   int64                    `json:"total_reconcile_attempts"`
	TotalReconcileSuccesses  int64                    `json:"total_reconcile_successes"`
	TotalReconcileFailures   int64                    `json:"total_reconcile_failures"`
	TotalStatusSyncAttempts  int64                    `json:"total_status_sync_attempts"`
	TotalStatusSyncSuccesses int64                    `json:"total_status_sync_successes"`
	TotalStatusSyncFailures  int64                    `json:"total_status_sync_failures"`
	TotalFetchSuccesses      int64                    `json:"total_fetch_successes"`
	TotalFetchFailures       int64                    `json:"total_fetch_failures"`
	TotalDeletions           int64                    `json:"total_deletions"`
	PerResourceTypeMetrics   []ResourceTypeMetricView `json:"per_resource_type_metrics"`
	StatusSyncFailureRate    float64                  `json:"status_sync_failure_rate"`
	ReconcileFailureRate     float64                  `json:"reconcile_failure_rate"`
}

// ResourceTypeMetricView is a read-only view of resource-type-specific metrics.
type ResourceTypeMetricView struct {
	ResourceType        ResourceType `json:"resource_type"`
	Events              int64        `json:"events"`
	Ignored             int64        `json:"ignored"`
	ReconcileAttempts   int64        `json:"reconcile_attempts"`
	ReconcileSuccesses  int64        `json:"reconcile_successes"`
	ReconcileFailures   int64        `json:"reconcile_failures"`
	StatusSyncAttempts  int64        `json:"status_sync_attempts"`
	StatusSyncSuccesses int64        `json:"status_sync_successes"`
	StatusSyncFailures  int64        `json:"status_sync_failures"`
	FetchSuccesses      int64        `json:"fetch_successes"`
	FetchFailures       int64        `json:"fetch_failures"`
	Deletions           int64        `json:"deletions"`
	LastEventAt         time.Time    `json:"last_event_at,omitempty"`
	LastSuccessAt       time.Time    `json:"last_success_at,omitempty"`
	LastFailureAt       time.Time    `json:"last_failure_at,omitempty"`
	LastStatusSyncAt    time.Time    `json:"last_status_sync_at,omitempty"`
}

func (rm *resourceTypeMetrics) view() ResourceTypeMetricView {
	return ResourceTypeMetricView{
		ResourceType:        rm.ResourceType,
		Events:              rm.Events,
		Ignored:             rm.Ignored,
		ReconcileAttempts:   rm.ReconcileAttempts,
		ReconcileSuccesses:  rm.ReconcileSuccesses,
		ReconcileFailures:   rm.ReconcileFailures,
		StatusSyncAttempts:  rm.StatusSyncAttempts,
		StatusSyncSuccesses: rm.StatusSyncSuccesses,
		StatusSyncFailures:  rm.StatusSyncFailures,
		FetchSuccesses:      rm.FetchSuccesses,
		FetchFailures:       rm.FetchFailures,
		Deletions:           rm.Deletions,
		LastEventAt:         rm.LastEventAt,
		LastSuccessAt:       rm.LastSuccessAt,
		LastFailureAt:       rm.LastFailureAt,
		LastStatusSyncAt:    rm.LastStatusSyncAt,
	}
}

// GetSummary returns a snapshot of all metrics.
func (m *ReconcilerMetrics) GetSummary() ReconcilerMetricsSummary {
	m.mu.RLock()
	defer m.mu.RUnlock()

	summary := ReconcilerMetricsSummary{
		TotalEvents:              m.totalEvents,
		TotalIgnored:             m.totalIgnored,
		TotalReconcileAttempts:   m.totalReconcileAttempts,
		TotalReconcileSuccesses:  m.totalReconcileSuccesses,
		TotalReconcileFailures:   m.totalReconcileFailures,
		TotalStatusSyncAttempts:  m.totalStatusSyncAttempts,
		TotalStatusSyncSuccesses: m.totalStatusSyncSuccesses,
		TotalStatusSyncFailures:  m.totalStatusSyncFailures,
		TotalFetchSuccesses:      m.totalFetchSuccesses,
		TotalFetchFailures:       m.totalFetchFailures,
		TotalDeletions:           m.totalDeletions,
		PerResourceTypeMetrics:   make([]ResourceTypeMetricView, 0, len(m.resourceMetrics)),
	}

	if m.totalStatusSyncAttempts > 0 {
		summary.StatusSyncFailureRate = float64(m.totalStatusSyncFailures) / float64(m.totalStatusSyncAttempts)
	}
	if m.totalReconcileAttempts > 0 {
		summary.ReconcileFailureRate = float64(m.totalReconcileFailures) / float64(m.totalReconcileAttempts)
	}

	for _, rm := range m.resourceMetrics {
		summary.PerResourceTypeMetrics = append(summary.PerResourceTypeMetrics, rm.view())
	}
	sort.Slice(summary.PerResourceTypeMetrics, func(i, j int) bool {
		return summary.PerResourceTypeMetrics[i].ResourceType < summary.PerResourceTypeMetrics[j].ResourceType
	})

	return summary
}

// GetResourceTypeMetrics returns the metrics of one resource type, if any were recorded.
func (m *ReconcilerMetrics) GetResourceTypeMetrics(resourceType ResourceType) (ResourceTypeMetricView, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	rm, ok := m.resourceMetrics[resourceType]
	if !ok {
		return ResourceTypeMetricView{}, false
	}
	return rm.view(), true
}

// LogSummary writes the current summary to the log at info level.
func (m *ReconcilerMetrics) LogSummary() {
	summary := m.GetSummary()
	logging.Info("ReconcilerMetrics", "Events: %d (ignored %d), reconciles: %d ok / %d failed, fetches: %d ok / %d failed, patches: %d ok / %d failed, deletions: %d",
		summary.TotalEvents, summary.TotalIgnored,
		summary.TotalReconcileSuccesses, summary.TotalReconcileFailures,
		summary.TotalFetchSuccesses, summary.TotalFetchFailures,
		summary.TotalStatusSyncSuccesses, summary.TotalStatusSyncFailures,
		summary.TotalDeletions)
	for _, rt := range summary.PerResourceTypeMetrics {
		logging.Debug("ReconcilerMetrics", "%s: events=%d ignored=%d attempts=%d failures=%d deletions=%d",
			rt.ResourceType, rt.Events, rt.Ignored, rt.ReconcileAttempts, rt.ReconcileFailures, rt.Deletions)
	}
}

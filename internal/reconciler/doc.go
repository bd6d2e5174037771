// Package reconciler turns DummySite and Job watch events into cluster changes.
//
// # Overview
//
// Two reconcilers run side by side, each fed by its own watch stream:
//
//   - DescriptorReconciler: on DummySite ADDED it schedules one Job, fetches
//     the page named by spec.website_url and writes its text into spec.html.
//     On DummySite DELETED it removes every Job carrying the dummysite label
//     with the DummySite's name, deleting each Job's pods first.
//   - WorkItemReconciler: when a labelled Job reports success it deletes the
//     owning DummySite, which in turn triggers the cleanup above.
//
// The Manager opens both watches and drains them concurrently with an
// errgroup. Events of one stream are handled strictly in order.
//
// # Idempotency
//
// Watches replay every existing object as ADDED when opened. Before
// creating a Job the IdempotencyGuard lists the namespace for a Job owned by
// the DummySite, and Job names are derived from the DummySite name, so a
// replay never schedules a second Job. Deletes treat NotFound as done.
//
// # Failure handling
//
// Every failure is logged and the event dropped. Nothing is retried except
// opening a watch, and only when ManagerConfig.Reconnect is set.
//
// Example usage:
//
//	descriptors := reconciler.NewDescriptorReconciler(c, renderer, fetcher.New(), descCfg, metrics)
//	workItems := reconciler.NewWorkItemReconciler(c, metrics)
//	manager := reconciler.NewManager(cfg, c, descriptors, workItems, metrics)
//	if err := manager.Run(ctx); err != nil {
//	    return fmt.Errorf("controller stopped: %w", err)
//	}
package reconciler

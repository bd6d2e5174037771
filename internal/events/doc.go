// Package events records Kubernetes Events on DummySites, so the progress of
// a DummySite shows up in kubectl describe and kubectl get events.
//
// EventGenerator renders a message for an EventReason from EventData with
// MessageTemplateEngine, classifies it as Normal or Warning and creates a
// core/v1 Event through the client:
//
//	generator := events.NewEventGenerator(k8sClient)
//	err := generator.DummySiteEvent(ctx, "site-a", "default", events.ReasonJobScheduled,
//		events.EventData{JobName: "site-a-job", WebsiteURL: "http://example.com"})
//
// Recording an event is best effort; callers log failures and carry on.
package events

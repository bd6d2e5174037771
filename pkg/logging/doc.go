// Package logging provides the structured logger used across the controller.
//
// It is a thin layer over log/slog that tags every record with a subsystem
// and offers printf-style helpers:
//
//	logging.InitForCLI(logging.LevelInfo, os.Stdout)
//
//	logging.Info("Bootstrap", "Controller starting up")
//	logging.Debug("Stream", "Decoded %s event for %s", kind, name)
//	logging.Warn("WorkItemReconciler", "DummySite %s already gone", name)
//	logging.Error("StatusPatcher", err, "Failed to patch DummySite %s", name)
//
// # Controller-Runtime Integration
//
// InitForCLI also installs the same slog handler as controller-runtime's
// global logr sink, so output from client-go and controller-runtime clients
// lands in the same stream with the same level filter.
//
// # Thread Safety
//
// All functions are safe for concurrent use; the watch streams and both
// reconcilers log from separate goroutines.
package logging

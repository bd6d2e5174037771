// Package app provides application bootstrap and lifecycle management for
// the DummySite controller.
//
// NewApplication initializes logging, loads config.yaml, applies command
// line overrides, connects to the cluster and wires the reconcilers.
// Application.Run then blocks in the reconciler Manager until the context is
// cancelled.
//
// # Configuration Loading
//
// Configuration is read from a single directory: the one given with
// --config-path, or ~/.config/dummysite-controller. A missing config.yaml
// yields the defaults. Flags given on the command line override the file.
//
// # Cluster Access
//
// The Kubernetes REST configuration comes from controller-runtime's
// ctrl.GetConfig, so the controller runs unchanged inside a cluster (service
// account) and on a workstation (kubeconfig).
package app

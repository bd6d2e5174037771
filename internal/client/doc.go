// Package client provides access to the Kubernetes API for the controller.
//
// KubernetesClient combines two clients:
//
//   - a controller-runtime client.Client for typed list, create, delete and
//     patch calls on Jobs, Pods and DummySites;
//   - a client-go REST client for watches, returning the raw
//     newline-delimited JSON body so it can be fed to watch.Stream.
//
// # Usage
//
//	cfg, err := ctrl.GetConfig()
//	if err != nil {
//	    return err
//	}
//	k8s, err := client.NewKubernetesClient(cfg)
//	if err != nil {
//	    return err
//	}
//
//	jobs, err := k8s.ListJobs(ctx, "default")
//	body, err := k8s.WatchDummySites(ctx, "")
//
// Errors are wrapped with %w, so apierrors.IsNotFound and
// apierrors.IsAlreadyExists work on every returned error.
package client

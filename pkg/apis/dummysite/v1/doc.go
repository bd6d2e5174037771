// Package v1 contains API Schema definitions for the dummysite v1 API group.
//
// # API Group: dummysite.dwk/v1
//
// ## DummySite
//
// DummySite describes one website to be fetched. The controller schedules a
// single Job per DummySite, fetches the page and writes its plain text back
// into spec.html.
//
// Example:
//
//	apiVersion: dummysite.dwk/v1
//	kind: DummySite
//	metadata:
//	  name: site-a
//	  namespace: default
//	spec:
//	  website_url: http://example.com
//	  image: jakousa/dwk-app1:b7fc18de2376da80ff0cfc72cf581a9f94d10e64
//
// +kubebuilder:object:generate=true
// +groupName=dummysite.dwk
package v1

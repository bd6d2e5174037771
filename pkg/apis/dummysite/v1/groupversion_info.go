package v1

import (
	"k8s.io/apimachinery/pkg/runtime/schema"
	"sigs.k8s.io/controller-runtime/pkg/scheme"
)

var (
	// GroupVersion is group version used to register these objects
	GroupVersion = schema.GroupVersion{Group: "dummysite.dwk", Version: "v1"}

	// SchemeBuilder is used to add go types to the GroupVersionKind scheme
	SchemeBuilder = &scheme.Builder{GroupVersion: GroupVersion}

	// AddToScheme adds the types in this group-version to the given scheme.
	AddToScheme = SchemeBuilder.AddToScheme
)

const (
	// Resource is the plural resource name served by the API server.
	Resource = "dummysites"

	// Kind is the kind of the DummySite resource.
	Kind = "DummySite"
)

const (
	// LabelDummySite is set on every Job the controller creates; its value is the owning DummySite's name.
	LabelDummySite = "dummysite"

	// LabelWebsite carries the host of the DummySite's URL in label-safe form.
	LabelWebsite = "website"

	// AnnotationDummySiteName carries the full name of the owning DummySite,
	// which the dummysite label only holds in shortened form for long names.
	AnnotationDummySiteName = "dummysite.dwk/name"

	// AnnotationWebsiteURL carries the full URL, which cannot be stored in a label value.
	AnnotationWebsiteURL = "dummysite.dwk/website-url"
)

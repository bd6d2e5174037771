package v1

import (
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
)

// DummySiteSpec defines the desired state of DummySite
type DummySiteSpec struct {
	// WebsiteURL is the page fetched for this site.
	// +kubebuilder:validation:Required
	// +kubebuilder:validation:Pattern="^https?://"
	WebsiteURL string `json:"website_url,omitempty" yaml:"website_url,omitempty"`

	// Image is the container image the fetch Job runs.
	Image string `json:"image,omitempty" yaml:"image,omitempty"`

	// HTML holds the plain text of the fetched page. It is written by the
	// controller once the fetch succeeds.
	HTML string `json:"html,omitempty" yaml:"html,omitempty"`
}

//+kubebuilder:object:root=true
//+kubebuilder:resource:shortName=ds
//+kubebuilder:printcolumn:name="URL",type="string",JSONPath=".spec.website_url"
//+kubebuilder:printcolumn:name="Age",type="date",JSONPath=".metadata.creationTimestamp"

// DummySite is the Schema for the dummysites API
type DummySite struct {
	metav1.TypeMeta   `json:",inline"`
	metav1.ObjectMeta `json:"metadata,omitempty"`

	Spec DummySiteSpec `json:"spec,omitempty"`
}

//+kubebuilder:object:root=true

// DummySiteList contains a list of DummySite
type DummySiteList struct {
	metav1.TypeMeta `json:",inline"`
	metav1.ListMeta `json:"metadata,omitempty"`
	Items           []DummySite `json:"items"`
}

func init() {
	SchemeBuilder.Register(&DummySite{}, &DummySiteList{})
}

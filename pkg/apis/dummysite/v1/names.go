package v1

import (
	"fmt"
	"hash/fnv"
	"strings"

	utilrand "k8s.io/apimachinery/pkg/util/rand"
	"k8s.io/apimachinery/pkg/util/validation"
)

// JobNameSuffix is appended to the DummySite name to form the Job name.
const JobNameSuffix = "-job"

// OwnerLabelValue returns the dummysite label value for a DummySite.
// Names that fit in a label value are used as they are; longer names are
// cut and suffixed with a hash of the full name.
func OwnerLabelValue(name string) string {
	return boundedName(name, validation.LabelValueMaxLength)
}

// JobName returns the name of the Job created for a DummySite. The result
// fits in a label value, because the job controller copies it into the
// job-name label of its pods, and distinct DummySite names give distinct
// Job names.
func JobName(name string) string {
	return boundedName(name, validation.LabelValueMaxLength-len(JobNameSuffix)) + JobNameSuffix
}

// OwnerName returns the name of the DummySite owning an object with the
// given labels and annotations, or "" when it carries no dummysite label.
func OwnerName(labels, annotations map[string]string) string {
	label := labels[LabelDummySite]
	if label == "" {
		return ""
	}
	if name := annotations[AnnotationDummySiteName]; name != "" {
		return name
	}
	return label
}

// IsOwnedBy reports whether an object with the given labels and annotations
// belongs to the named DummySite.
func IsOwnedBy(labels, annotations map[string]string, name string) bool {
	if labels[LabelDummySite] != OwnerLabelValue(name) {
		return false
	}
	full, ok := annotations[AnnotationDummySiteName]
	return !ok || full == name
}

func boundedName(name string, maxLen int) string {
	if len(name) <= maxLen {
		return name
	}
	hash := nameHash(name)
	prefix := strings.TrimRight(name[:maxLen-len(hash)-1], "-.")
	return prefix + "-" + hash
}

// nameHash is a short label-safe hash, encoded the way pod-template-hash is.
func nameHash(name string) string {
	hasher := fnv.New32a()
	hasher.Write([]byte(name))
	return utilrand.SafeEncodeString(fmt.Sprint(hasher.Sum32()))
}

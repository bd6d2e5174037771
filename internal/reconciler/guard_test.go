package reconciler

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	batchv1 "k8s.io/api/batch/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"

	dummysitev1 "dummysite/pkg/apis/dummysite/v1"
)

func TestIdempotencyGuard_Exists(t *testing.T) {
	otherNamespace := &batchv1.Job{
		ObjectMeta: metav1.ObjectMeta{
			Name:      "site-c-job",
			Namespace: "other",
			Labels:    map[string]string{dummysitev1.LabelDummySite: "site-c"},
		},
	}
	c, _ := newTestClient(t,
		newOwnedJob("site-a-job", "site-a"),
		&batchv1.Job{ObjectMeta: metav1.ObjectMeta{Name: "unrelated", Namespace: testNamespace}},
		otherNamespace,
	)
	guard := NewIdempotencyGuard(c)
	ctx := context.Background()

	tests := []struct {
		name       string
		descriptor string
		namespace  string
		want       bool
	}{
		{name: "labelled job present", descriptor: "site-a", namespace: testNamespace, want: true},
		{name: "no job for descriptor", descriptor: "site-b", namespace: testNamespace, want: false},
		{name: "job in another namespace", descriptor: "site-c", namespace: testNamespace, want: false},
		{name: "job in its own namespace", descriptor: "site-c", namespace: "other", want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := guard.Exists(ctx, tt.descriptor, tt.namespace)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestIdempotencyGuard_RequeriesEveryCall(t *testing.T) {
	c, _ := newTestClient(t)
	guard := NewIdempotencyGuard(c)
	ctx := context.Background()

	exists, err := guard.Exists(ctx, "site-a", testNamespace)
	require.NoError(t, err)
	assert.False(t, exists)

	require.NoError(t, c.CreateJob(ctx, newOwnedJob("site-a-job", "site-a")))

	exists, err = guard.Exists(ctx, "site-a", testNamespace)
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestIdempotencyGuard_AnnotatedNameMustMatch(t *testing.T) {
	long := strings.Repeat("a", 70)
	shortened := newOwnedJob("long-job", dummysitev1.OwnerLabelValue(long))
	shortened.Annotations = map[string]string{dummysitev1.AnnotationDummySiteName: long}
	mismatched := newOwnedJob("site-x-job", "site-x")
	mismatched.Annotations = map[string]string{dummysitev1.AnnotationDummySiteName: "site-y"}

	c, _ := newTestClient(t, shortened, mismatched)
	guard := NewIdempotencyGuard(c)
	ctx := context.Background()

	exists, err := guard.Exists(ctx, long, testNamespace)
	require.NoError(t, err)
	assert.True(t, exists, "shortened label with matching annotation")

	exists, err = guard.Exists(ctx, "site-x", testNamespace)
	require.NoError(t, err)
	assert.False(t, exists, "label matches but annotation names another DummySite")
}

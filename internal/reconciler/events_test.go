package reconciler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dummysite/internal/watch"
)

func TestDecodeDescriptorEvent(t *testing.T) {
	raw := []byte(`{
		"apiVersion": "dummysite.dwk/v1",
		"kind": "DummySite",
		"metadata": {"name": "site-a", "namespace": "default"},
		"spec": {"website_url": "http://example.com", "image": "example/fetcher:1", "html": "", "extra": true}
	}`)

	event, err := DecodeDescriptorEvent(watch.EventAdded, raw)
	require.NoError(t, err)
	assert.Equal(t, DescriptorEvent{
		Type:       watch.EventAdded,
		Name:       "site-a",
		Namespace:  "default",
		WebsiteURL: "http://example.com",
		Image:      "example/fetcher:1",
	}, event)
}

func TestDecodeDescriptorEvent_Errors(t *testing.T) {
	_, err := DecodeDescriptorEvent(watch.EventAdded, []byte(`{"metadata": {}}`))
	assert.ErrorIs(t, err, errMissingName)

	_, err = DecodeDescriptorEvent(watch.EventAdded, []byte(`{"spec": "not an object"}`))
	assert.Error(t, err)
}

func TestDecodeWorkItemEvent(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want WorkItemEvent
	}{
		{
			name: "running job",
			raw: `{"metadata": {"name": "site-a-job", "namespace": "default",
				"labels": {"dummysite": "site-a"},
				"annotations": {"dummysite.dwk/website-url": "http://example.com"}},
				"status": {"active": 1}}`,
			want: WorkItemEvent{
				Type: watch.EventModified, Name: "site-a-job", Namespace: "default",
				DescriptorName: "site-a", WebsiteURL: "http://example.com",
			},
		},
		{
			name: "succeeded count",
			raw: `{"metadata": {"name": "site-a-job", "namespace": "default", "labels": {"dummysite": "site-a"}},
				"status": {"succeeded": 1}}`,
			want: WorkItemEvent{
				Type: watch.EventModified, Name: "site-a-job", Namespace: "default",
				DescriptorName: "site-a", Succeeded: true,
			},
		},
		{
			name: "complete condition",
			raw: `{"metadata": {"name": "site-a-job", "namespace": "default", "labels": {"dummysite": "site-a"}},
				"status": {"conditions": [{"type": "Complete", "status": "True"}]}}`,
			want: WorkItemEvent{
				Type: watch.EventModified, Name: "site-a-job", Namespace: "default",
				DescriptorName: "site-a", Succeeded: true,
			},
		},
		{
			name: "failed condition",
			raw: `{"metadata": {"name": "site-a-job", "namespace": "default", "labels": {"dummysite": "site-a"}},
				"status": {"failed": 2, "conditions": [{"type": "Failed", "status": "True"}]}}`,
			want: WorkItemEvent{
				Type: watch.EventModified, Name: "site-a-job", Namespace: "default",
				DescriptorName: "site-a",
			},
		},
		{
			name: "long owner name from annotation",
			raw: `{"metadata": {"name": "aaaa-job", "namespace": "default",
				"labels": {"dummysite": "aaaa-shortened"},
				"annotations": {"dummysite.dwk/name": "aaaa-full-name"}},
				"status": {"succeeded": 1}}`,
			want: WorkItemEvent{
				Type: watch.EventModified, Name: "aaaa-job", Namespace: "default",
				DescriptorName: "aaaa-full-name", Succeeded: true,
			},
		},
		{
			name: "annotation without label is not owned",
			raw: `{"metadata": {"name": "other-job", "namespace": "default",
				"annotations": {"dummysite.dwk/name": "site-a"}},
				"status": {"succeeded": 1}}`,
			want: WorkItemEvent{
				Type: watch.EventModified, Name: "other-job", Namespace: "default",
				Succeeded: true,
			},
		},
		{
			name: "being deleted",
			raw: `{"metadata": {"name": "site-a-job", "namespace": "default", "labels": {"dummysite": "site-a"},
				"deletionTimestamp": "2024-01-01T00:00:00Z"},
				"status": {"succeeded": 1}}`,
			want: WorkItemEvent{
				Type: watch.EventModified, Name: "site-a-job", Namespace: "default",
				DescriptorName: "site-a", Succeeded: true, Deleting: true,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DecodeWorkItemEvent(watch.EventModified, []byte(tt.raw))
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDecodeWorkItemEvent_MissingName(t *testing.T) {
	_, err := DecodeWorkItemEvent(watch.EventAdded, []byte(`{"status": {"succeeded": 1}}`))
	assert.ErrorIs(t, err, errMissingName)
}

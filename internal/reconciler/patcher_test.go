package reconciler

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	apierrors "k8s.io/apimachinery/pkg/api/errors"
)

func TestStatusPatcher_BodyHoldsOnlyContent(t *testing.T) {
	site := newDummySite("site-a", "http://example.com")
	site.Spec.Image = "example/fetcher:1"
	site.Labels = map[string]string{"team": "web"}

	c, rec := newTestClient(t, site)
	patcher := NewStatusPatcher(c)
	ctx := context.Background()

	require.NoError(t, patcher.Patch(ctx, "site-a", testNamespace, "Example Domain"))

	patches := rec.Patches()
	require.Len(t, patches, 1)
	assert.Equal(t, `{"spec":{"html":"Example Domain"}}`, string(patches[0]))

	got, err := c.GetDummySite(ctx, "site-a", testNamespace)
	require.NoError(t, err)
	assert.Equal(t, "Example Domain", got.Spec.HTML)
	assert.Equal(t, "http://example.com", got.Spec.WebsiteURL)
	assert.Equal(t, "example/fetcher:1", got.Spec.Image)
	assert.Equal(t, "web", got.Labels["team"])
}

func TestStatusPatcher_MissingDescriptor(t *testing.T) {
	c, _ := newTestClient(t)
	patcher := NewStatusPatcher(c)

	err := patcher.Patch(context.Background(), "gone", testNamespace, "text")
	require.Error(t, err)
	assert.True(t, apierrors.IsNotFound(err))
}

func TestContentPatchBody_EscapesContent(t *testing.T) {
	body, err := contentPatchBody("line \"one\"\nline two")
	require.NoError(t, err)
	assert.JSONEq(t, `{"spec":{"html":"line \"one\"\nline two"}}`, string(body))
}

package reconciler

import (
	"context"
	"encoding/json"
	"fmt"

	"dummysite/internal/client"
)

type contentPatch struct {
	Spec contentPatchSpec `json:"spec"`
}

type contentPatchSpec struct {
	HTML string `json:"html"`
}

// StatusPatcher writes fetched content back onto a DummySite.
type StatusPatcher struct {
	client client.SiteClient
}

// NewStatusPatcher creates a patcher backed by the given client.
func NewStatusPatcher(c client.SiteClient) *StatusPatcher {
	return &StatusPatcher{client: c}
}

// Patch sets spec.html of the named DummySite with a JSON merge patch.
// The patch body holds that one field, so everything else stored on the
// object is left alone.
func (p *StatusPatcher) Patch(ctx context.Context, descriptorName, namespace, content string) error {
	body, err := contentPatchBody(content)
	if err != nil {
		return err
	}
	if err := p.client.PatchDummySite(ctx, descriptorName, namespace, body); err != nil {
		return fmt.Errorf("failed to patch content of %s/%s: %w", namespace, descriptorName, err)
	}
	return nil
}

func contentPatchBody(content string) ([]byte, error) {
	body, err := json.Marshal(contentPatch{Spec: contentPatchSpec{HTML: content}})
	if err != nil {
		return nil, fmt.Errorf("failed to encode content patch: %w", err)
	}
	return body, nil
}

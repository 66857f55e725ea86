package reconcile

import (
	"context"

	"pricing-modeller/core/pricing"
)

// DraftStore persists the last settled model of each session.
type DraftStore interface {
	// Load returns the stored draft. found is false when none exists.
	Load(ctx context.Context, sessionID string) (model pricing.PricingModel, found bool, err error)

	// Save stores the draft, replacing any previous one.
	Save(ctx context.Context, sessionID string, model pricing.PricingModel) error

	// Delete removes the draft. Deleting a missing draft is not an error.
	Delete(ctx context.Context, sessionID string) error
}

package mocks

import (
	"context"

	"pricing-modeller/core/pricing"

	"github.com/stretchr/testify/mock"
)

// DraftStore is a mock implementation of reconcile.DraftStore
type DraftStore struct {
	mock.Mock
}

func (m *DraftStore) Load(ctx context.Context, sessionID string) (pricing.PricingModel, bool, error) {
	args := m.Called(ctx, sessionID)
	model, _ := args.Get(0).(pricing.PricingModel)
	return model, args.Bool(1), args.Error(2)
}

func (m *DraftStore) Save(ctx context.Context, sessionID string, model pricing.PricingModel) error {
	args := m.Called(ctx, sessionID, model)
	return args.Error(0)
}

func (m *DraftStore) Delete(ctx context.Context, sessionID string) error {
	args := m.Called(ctx, sessionID)
	return args.Error(0)
}

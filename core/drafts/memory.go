package drafts

import (
	"context"
	"sync"

	"pricing-modeller/core/pricing"
	"pricing-modeller/core/reconcile"
)

// MemoryStore keeps drafts in process memory.
type MemoryStore struct {
	mu     sync.RWMutex
	drafts map[string]pricing.PricingModel
}

var _ reconcile.DraftStore = (*MemoryStore)(nil)

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{drafts: make(map[string]pricing.PricingModel)}
}

func (s *MemoryStore) Load(_ context.Context, sessionID string) (pricing.PricingModel, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	m, ok := s.drafts[sessionID]
	if !ok {
		return pricing.PricingModel{}, false, nil
	}
	return m.Clone(), true, nil
}

func (s *MemoryStore) Save(_ context.Context, sessionID string, model pricing.PricingModel) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.drafts[sessionID] = model.Clone()
	return nil
}

func (s *MemoryStore) Delete(_ context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.drafts, sessionID)
	return nil
}

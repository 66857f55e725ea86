package modeller

import (
	"bytes"
	"context"
	"time"

	"pricing-modeller/core/pricing"
	"pricing-modeller/core/projection"
	"pricing-modeller/core/reconcile"

	"go.uber.org/zap"
)

// Service drives the engines of live modelling sessions.
type Service struct {
	registry   *reconcile.Registry
	logger     *zap.Logger
	streamIdle time.Duration
}

// NewService creates a new modeller service. streamIdle bounds how long a
// single stream request may run; zero means no bound.
func NewService(registry *reconcile.Registry, logger *zap.Logger, streamIdle time.Duration) *Service {
	return &Service{
		registry:   registry,
		logger:     logger,
		streamIdle: streamIdle,
	}
}

// CreateSession starts a session holding the empty model.
func (s *Service) CreateSession(ctx context.Context) (string, error) {
	id, _, err := s.registry.Create(ctx)
	return id, err
}

// Model returns the session's current model and whether a stream is in flight.
func (s *Service) Model(ctx context.Context, id string) (pricing.PricingModel, bool, error) {
	engine, err := s.registry.Get(ctx, id)
	if err != nil {
		return pricing.PricingModel{}, false, err
	}
	return engine.Snapshot(), engine.Streaming(), nil
}

// ApplyDelta merges one raw delta. ok is false when the body was not a JSON
// object and was ignored.
func (s *Service) ApplyDelta(ctx context.Context, id string, raw []byte) (reconcile.Summary, bool, error) {
	engine, err := s.registry.Get(ctx, id)
	if err != nil {
		return reconcile.Summary{}, false, err
	}
	sum, ok := engine.ApplyRaw(raw)
	return sum, ok, nil
}

// Finalize replaces the session's model with the final snapshot of a stream.
func (s *Service) Finalize(ctx context.Context, id string, raw []byte) error {
	engine, err := s.registry.Get(ctx, id)
	if err != nil {
		return err
	}
	final, err := pricing.Decode(raw)
	if err != nil {
		return &pricing.ParseError{Err: err}
	}
	engine.Finalize(final)
	return nil
}

// Stream applies newline-delimited stream envelopes in order.
func (s *Service) Stream(ctx context.Context, id string, body []byte) (reconcile.StreamResult, error) {
	engine, err := s.registry.Get(ctx, id)
	if err != nil {
		return reconcile.StreamResult{}, err
	}
	if s.streamIdle > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.streamIdle)
		defer cancel()
	}
	return reconcile.ReplayNDJSON(ctx, engine, bytes.NewReader(body))
}

// Edit applies a manual edit of the whole model.
func (s *Service) Edit(ctx context.Context, id string, raw []byte) error {
	engine, err := s.registry.Get(ctx, id)
	if err != nil {
		return err
	}
	return engine.Edit(raw)
}

// Abort ends the session's open stream without a final model. It is a no-op
// when no stream is open.
func (s *Service) Abort(ctx context.Context, id string) error {
	engine, err := s.registry.Get(ctx, id)
	if err != nil {
		return err
	}
	engine.Abort()
	return nil
}

// Reset empties the session's model.
func (s *Service) Reset(ctx context.Context, id string) error {
	engine, err := s.registry.Get(ctx, id)
	if err != nil {
		return err
	}
	engine.Reset()
	return nil
}

// Drop ends a session and deletes its draft.
func (s *Service) Drop(ctx context.Context, id string) error {
	if _, err := s.registry.Get(ctx, id); err != nil {
		return err
	}
	return s.registry.Drop(ctx, id)
}

// Table renders the session's model as ordered pricing cards.
func (s *Service) Table(ctx context.Context, id string) (projection.Table, error) {
	engine, err := s.registry.Get(ctx, id)
	if err != nil {
		return projection.Table{}, err
	}
	table := projection.BuildTable(engine.Snapshot())
	for _, f := range table.Failures {
		s.logger.Warn("Cannot render product",
			zap.String("session_id", id),
			zap.String("product_id", f.ProductID),
			zap.String("error", f.Error))
	}
	return table, nil
}

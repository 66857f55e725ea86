package submission

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"pricing-modeller/core/pricing"
	"pricing-modeller/core/reconcile"

	"github.com/oklog/ulid/v2"
	"go.uber.org/zap"
	"gorm.io/datatypes"
)

// ErrNoModel is returned when a request names neither a session nor a model.
var ErrNoModel = errors.New("a session_id or a pricing_model is required")

// Request selects the model to submit: the current model of a session, or a
// model given inline.
type Request struct {
	SessionID    string                `json:"session_id"`
	PricingModel *pricing.PricingModel `json:"pricing_model"`
}

// Service persists submitted pricing models.
type Service struct {
	repo     *Repository
	exporter *Exporter
	registry *reconcile.Registry
	logger   *zap.Logger
}

// NewService creates a new submission service. exporter and registry may be
// nil, disabling storage export and session lookups respectively.
func NewService(repo *Repository, exporter *Exporter, registry *reconcile.Registry, logger *zap.Logger) *Service {
	return &Service{
		repo:     repo,
		exporter: exporter,
		registry: registry,
		logger:   logger,
	}
}

// Submit stores a model. Features that do not validate are removed first.
func (s *Service) Submit(ctx context.Context, req Request) (ChatResult, error) {
	model, err := s.resolve(ctx, req)
	if err != nil {
		return ChatResult{}, err
	}

	clean, dropped := Sanitize(model)
	if dropped > 0 {
		s.logger.Info("Dropped invalid features from submission", zap.Int("dropped", dropped))
	}

	data, err := json.Marshal(clean)
	if err != nil {
		return ChatResult{}, fmt.Errorf("failed to encode model: %w", err)
	}

	res := ChatResult{ID: ulid.Make().String(), Data: datatypes.JSON(data)}
	if err := s.repo.Create(ctx, &res); err != nil {
		return ChatResult{}, err
	}

	if s.exporter != nil {
		if err := s.exporter.Export(ctx, res.ID, data); err != nil {
			s.logger.Error("Failed to export submission", zap.String("id", res.ID), zap.Error(err))
		}
	}
	return res, nil
}

// Get loads a submission.
func (s *Service) Get(ctx context.Context, id string) (ChatResult, error) {
	return s.repo.Find(ctx, id)
}

func (s *Service) resolve(ctx context.Context, req Request) (pricing.PricingModel, error) {
	switch {
	case req.PricingModel != nil:
		return *req.PricingModel, nil
	case req.SessionID != "" && s.registry != nil:
		engine, err := s.registry.Get(ctx, req.SessionID)
		if err != nil {
			return pricing.PricingModel{}, err
		}
		return engine.Snapshot(), nil
	default:
		return pricing.PricingModel{}, ErrNoModel
	}
}

// Sanitize returns a copy of m without the features that fail validation,
// and how many were removed.
func Sanitize(m pricing.PricingModel) (pricing.PricingModel, int) {
	out := m.Clone()
	features := make([]pricing.Feature, 0, len(out.Features))
	for _, f := range out.Features {
		if pricing.ValidateFeature(f) == nil {
			features = append(features, f)
		}
	}
	dropped := len(out.Features) - len(features)
	out.Features = features
	if out.Products == nil {
		out.Products = []pricing.Product{}
	}
	return out, dropped
}

package integrity

import (
	"context"

	"pricing-modeller/core/pricing"
	"pricing-modeller/core/reconcile"
	"pricing-modeller/core/storage"
	"pricing-modeller/feature/integrity/checks"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Service handles integrity checks.
type Service struct {
	registry *reconcile.Registry
	db       *gorm.DB
	client   storage.Client
	bucket   string
	logger   *zap.Logger
}

// NewService creates a new integrity service. db and client may be nil when
// the corresponding backend is not configured.
func NewService(registry *reconcile.Registry, db *gorm.DB, client storage.Client, bucket string, logger *zap.Logger) *Service {
	return &Service{
		registry: registry,
		db:       db,
		client:   client,
		bucket:   bucket,
		logger:   logger,
	}
}

// CheckSession checks the current model of a session.
func (s *Service) CheckSession(ctx context.Context, id string) (checks.Report, error) {
	engine, err := s.registry.Get(ctx, id)
	if err != nil {
		return checks.Report{}, err
	}
	return checks.CheckModel(engine.Snapshot()), nil
}

// CheckModel checks a model given inline.
func (s *Service) CheckModel(m pricing.PricingModel) checks.Report {
	return checks.CheckModel(m)
}

// CheckServer checks the submissions table schema.
func (s *Service) CheckServer() (*checks.ServerReport, error) {
	return checks.CheckServerIntegrity(s.db)
}

// CheckStorage checks the export bucket.
func (s *Service) CheckStorage(ctx context.Context) (*checks.StorageReport, error) {
	return checks.CheckStorage(ctx, s.client, s.bucket)
}

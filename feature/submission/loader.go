package submission

import (
	"pricing-modeller/core/reconcile"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Feature implements the loader.Feature interface.
type Feature struct {
	db      *gorm.DB
	handler *Handler
}

// NewFeature creates a new submission feature. It is disabled when db is nil.
func NewFeature(db *gorm.DB, exporter *Exporter, registry *reconcile.Registry, logger *zap.Logger) *Feature {
	f := &Feature{db: db}
	if db != nil {
		f.handler = NewHandler(NewService(NewRepository(db), exporter, registry, logger))
	}
	return f
}

// Name returns the name of the feature.
func (f *Feature) Name() string {
	return "submission"
}

// IsEnabled checks if the feature is enabled.
func (f *Feature) IsEnabled() bool {
	return f.db != nil
}

// Load registers the feature's routes.
func (f *Feature) Load(app fiber.Router) error {
	f.handler.RegisterRoutes(app)
	return nil
}

package submission

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
)

// ErrNotFound is returned for an unknown submission id.
var ErrNotFound = errors.New("submission not found")

// Repository stores submissions through GORM.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a repository on db.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Migrate creates or updates the submissions table.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&ChatResult{}); err != nil {
		return fmt.Errorf("failed to migrate %s: %w", TableName, err)
	}
	return nil
}

// Create inserts a submission.
func (r *Repository) Create(ctx context.Context, res *ChatResult) error {
	if err := r.db.WithContext(ctx).Create(res).Error; err != nil {
		return fmt.Errorf("failed to insert submission %s: %w", res.ID, err)
	}
	return nil
}

// Find loads a submission by id.
func (r *Repository) Find(ctx context.Context, id string) (ChatResult, error) {
	var res ChatResult
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&res).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ChatResult{}, ErrNotFound
	}
	if err != nil {
		return ChatResult{}, fmt.Errorf("failed to load submission %s: %w", id, err)
	}
	return res, nil
}

package repositories

import (
	"context"
	"fmt"

	"bistro/internal/models"

	"gorm.io/gorm"
)

// GORMReviewRepository is a GORM implementation of ReviewRepository.
type GORMReviewRepository struct {
	db *gorm.DB
}

// NewGORMReviewRepository creates a new instance of GORMReviewRepository.
func NewGORMReviewRepository(db *gorm.DB) *GORMReviewRepository {
	return &GORMReviewRepository{db: db}
}

// GetAll returns every stored review.
func (r *GORMReviewRepository) GetAll(ctx context.Context) ([]models.Review, error) {
	reviews := make([]models.Review, 0)
	if err := r.db.WithContext(ctx).Find(&reviews).Error; err != nil {
		return nil, fmt.Errorf("failed to get all reviews: %w", err)
	}
	return reviews, nil
}

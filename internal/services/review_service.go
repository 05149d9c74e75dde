package services

import (
	"context"

	"bistro/internal/models"
	"bistro/internal/repositories"
)

// ReviewService exposes the stored reviews.
type ReviewService struct {
	repo repositories.ReviewRepository
}

// NewReviewService creates a new ReviewService.
func NewReviewService(repo repositories.ReviewRepository) *ReviewService {
	return &ReviewService{repo: repo}
}

// GetAllReviews returns every review.
func (s *ReviewService) GetAllReviews(ctx context.Context) ([]models.Review, error) {
	return s.repo.GetAll(ctx)
}

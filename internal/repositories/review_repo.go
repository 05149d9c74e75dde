package repositories

import (
	"context"

	"bistro/internal/models"
)

// ReviewRepository is read-only.
type ReviewRepository interface {
	GetAll(ctx context.Context) ([]models.Review, error)
}

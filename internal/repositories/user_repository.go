package repositories

import (
	"context"

	"bistro/internal/models"
)

// UserRepository defines the interface for user data access.
type UserRepository interface {
	GetAll(ctx context.Context) ([]models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	Create(ctx context.Context, user *models.User) error
	Delete(ctx context.Context, id string) (int64, error)
	SetRole(ctx context.Context, id string, role string) (models.UpdateResult, error)
	Count(ctx context.Context) (int64, error)
}

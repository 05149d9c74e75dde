package repositories

import (
	"context"

	"bistro/internal/models"
)

// CartRepository defines the interface for cart data access.
type CartRepository interface {
	GetByEmail(ctx context.Context, email string) ([]models.CartItem, error)
	Create(ctx context.Context, item *models.CartItem) error
	Delete(ctx context.Context, id string) (int64, error)
}

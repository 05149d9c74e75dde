package repositories

import (
	"context"
	"fmt"

	"bistro/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GORMCartRepository is a GORM implementation of CartRepository.
type GORMCartRepository struct {
	db *gorm.DB
}

// NewGORMCartRepository creates a new instance of GORMCartRepository.
func NewGORMCartRepository(db *gorm.DB) *GORMCartRepository {
	return &GORMCartRepository{
		db: db,
	}
}

// GetByEmail returns the cart entries belonging to email.
func (r *GORMCartRepository) GetByEmail(ctx context.Context, email string) ([]models.CartItem, error) {
	items := make([]models.CartItem, 0)
	if err := r.db.WithContext(ctx).Where("email = ?", email).Find(&items).Error; err != nil {
		return nil, fmt.Errorf("failed to get cart for %s: %w", email, err)
	}
	return items, nil
}

// Create adds a cart entry.
func (r *GORMCartRepository) Create(ctx context.Context, item *models.CartItem) error {
	if item.ID == "" {
		item.ID = uuid.New().String()
	}
	if err := r.db.WithContext(ctx).Create(item).Error; err != nil {
		return fmt.Errorf("failed to create cart item: %w", err)
	}
	return nil
}

// Delete removes a single cart entry.
func (r *GORMCartRepository) Delete(ctx context.Context, id string) (int64, error) {
	if err := checkUUID(id); err != nil {
		return 0, err
	}
	res := r.db.WithContext(ctx).Delete(&models.CartItem{}, "id = ?", id)
	if res.Error != nil {
		return 0, fmt.Errorf("failed to delete cart item: %w", res.Error)
	}
	return res.RowsAffected, nil
}

package repositories

import (
	"context"
	"errors"
	"fmt"

	"bistro/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GORMMenuRepository is a GORM implementation of MenuRepository.
type GORMMenuRepository struct {
	db *gorm.DB
}

// NewGORMMenuRepository creates a new instance of GORMMenuRepository.
func NewGORMMenuRepository(db *gorm.DB) *GORMMenuRepository {
	return &GORMMenuRepository{
		db: db,
	}
}

// GetAll retrieves all menu items from the database.
func (r *GORMMenuRepository) GetAll(ctx context.Context) ([]models.MenuItem, error) {
	items := make([]models.MenuItem, 0)
	if err := r.db.WithContext(ctx).Find(&items).Error; err != nil {
		return nil, fmt.Errorf("failed to get all menu items: %w", err)
	}
	return items, nil
}

// GetByID retrieves a single menu item by its ID from the database.
func (r *GORMMenuRepository) GetByID(ctx context.Context, id string) (*models.MenuItem, error) {
	if err := checkUUID(id); err != nil {
		return nil, err
	}
	var item models.MenuItem
	if err := r.db.WithContext(ctx).First(&item, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("menu item with ID %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get menu item by ID %s: %w", id, err)
	}
	return &item, nil
}

// Create creates a new menu item in the database.
func (r *GORMMenuRepository) Create(ctx context.Context, item *models.MenuItem) error {
	if item.ID == "" {
		item.ID = uuid.New().String()
	}
	if err := r.db.WithContext(ctx).Create(item).Error; err != nil {
		return fmt.Errorf("failed to create menu item: %w", err)
	}
	return nil
}

// Update overwrites every editable field, including zero values.
func (r *GORMMenuRepository) Update(ctx context.Context, item *models.MenuItem) (models.UpdateResult, error) {
	if err := checkUUID(item.ID); err != nil {
		return models.UpdateResult{}, err
	}
	res := r.db.WithContext(ctx).Model(&models.MenuItem{}).Where("id = ?", item.ID).Updates(map[string]interface{}{
		"name":     item.Name,
		"category": item.Category,
		"recipe":   item.Recipe,
		"price":    item.Price,
		"image":    item.Image,
	})
	if res.Error != nil {
		return models.UpdateResult{}, fmt.Errorf("failed to update menu item: %w", res.Error)
	}
	return models.UpdateResult{MatchedCount: res.RowsAffected, ModifiedCount: res.RowsAffected}, nil
}

// Delete deletes a menu item by its ID from the database.
func (r *GORMMenuRepository) Delete(ctx context.Context, id string) (int64, error) {
	if err := checkUUID(id); err != nil {
		return 0, err
	}
	res := r.db.WithContext(ctx).Delete(&models.MenuItem{}, "id = ?", id)
	if res.Error != nil {
		return 0, fmt.Errorf("failed to delete menu item: %w", res.Error)
	}
	return res.RowsAffected, nil
}

// Count returns the number of menu items.
func (r *GORMMenuRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.WithContext(ctx).Model(&models.MenuItem{}).Count(&n).Error; err != nil {
		return 0, fmt.Errorf("failed to count menu items: %w", err)
	}
	return n, nil
}

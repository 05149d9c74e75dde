package services

import (
	"context"

	"bistro/internal/models"
	"bistro/internal/repositories"
)

// MenuService handles business logic related to the menu.
type MenuService struct {
	repo repositories.MenuRepository
}

// NewMenuService creates a new MenuService.
func NewMenuService(repo repositories.MenuRepository) *MenuService {
	return &MenuService{
		repo: repo,
	}
}

// GetAllItems retrieves the whole menu.
func (s *MenuService) GetAllItems(ctx context.Context) ([]models.MenuItem, error) {
	return s.repo.GetAll(ctx)
}

// GetItemByID retrieves a single menu item by its ID.
func (s *MenuService) GetItemByID(ctx context.Context, id string) (*models.MenuItem, error) {
	return s.repo.GetByID(ctx, id)
}

// CreateItem adds a menu item.
func (s *MenuService) CreateItem(ctx context.Context, item *models.MenuItem) (models.InsertResult, error) {
	item.ID = ""
	if err := s.repo.Create(ctx, item); err != nil {
		return models.InsertResult{}, err
	}
	return models.Inserted(item.ID), nil
}

// UpdateItem overwrites name, category, recipe, price and image of the item with id.
func (s *MenuService) UpdateItem(ctx context.Context, id string, item *models.MenuItem) (models.UpdateResult, error) {
	item.ID = id
	return s.repo.Update(ctx, item)
}

// DeleteItem deletes a menu item by its ID.
func (s *MenuService) DeleteItem(ctx context.Context, id string) (models.DeleteResult, error) {
	n, err := s.repo.Delete(ctx, id)
	if err != nil {
		return models.DeleteResult{}, err
	}
	return models.DeleteResult{DeletedCount: n}, nil
}

package services

import (
	"context"

	"bistro/internal/models"
	"bistro/internal/repositories"
)

// CartService handles business logic related to carts.
type CartService struct {
	repo repositories.CartRepository
}

// NewCartService creates a new CartService.
func NewCartService(repo repositories.CartRepository) *CartService {
	return &CartService{repo: repo}
}

// GetCart returns the cart entries of email.
func (s *CartService) GetCart(ctx context.Context, email string) ([]models.CartItem, error) {
	return s.repo.GetByEmail(ctx, email)
}

// AddItem stores a cart entry.
func (s *CartService) AddItem(ctx context.Context, item *models.CartItem) (models.InsertResult, error) {
	item.ID = ""
	if err := s.repo.Create(ctx, item); err != nil {
		return models.InsertResult{}, err
	}
	return models.Inserted(item.ID), nil
}

// RemoveItem deletes one cart entry.
func (s *CartService) RemoveItem(ctx context.Context, id string) (models.DeleteResult, error) {
	n, err := s.repo.Delete(ctx, id)
	if err != nil {
		return models.DeleteResult{}, err
	}
	return models.DeleteResult{DeletedCount: n}, nil
}

package services

import (
	"context"

	"bistro/internal/models"
	"bistro/internal/repositories"
)

// StatsService computes the admin dashboard figures.
type StatsService struct {
	users    repositories.UserRepository
	menu     repositories.MenuRepository
	payments repositories.PaymentRepository
}

// NewStatsService creates a new StatsService.
func NewStatsService(users repositories.UserRepository, menu repositories.MenuRepository, payments repositories.PaymentRepository) *StatsService {
	return &StatsService{users: users, menu: menu, payments: payments}
}

// AdminStats returns user, menu item and order counts plus total revenue.
func (s *StatsService) AdminStats(ctx context.Context) (models.AdminStats, error) {
	var stats models.AdminStats
	var err error
	if stats.Users, err = s.users.Count(ctx); err != nil {
		return models.AdminStats{}, err
	}
	if stats.MenuItems, err = s.menu.Count(ctx); err != nil {
		return models.AdminStats{}, err
	}
	if stats.Orders, err = s.payments.Count(ctx); err != nil {
		return models.AdminStats{}, err
	}
	if stats.Revenue, err = s.payments.TotalRevenue(ctx); err != nil {
		return models.AdminStats{}, err
	}
	return stats, nil
}

// OrderStats returns quantity and revenue per menu category.
func (s *StatsService) OrderStats(ctx context.Context) ([]models.CategoryStat, error) {
	return s.payments.OrderStats(ctx)
}

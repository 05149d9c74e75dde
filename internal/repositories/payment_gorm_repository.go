package repositories

import (
	"context"
	"fmt"

	"bistro/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GORMPaymentRepository is a GORM implementation of PaymentRepository.
// Menu item ids are expanded into payment_menu_items rows so the order
// stats can be computed with a plain join.
type GORMPaymentRepository struct {
	db *gorm.DB
}

// NewGORMPaymentRepository creates a new instance of GORMPaymentRepository.
func NewGORMPaymentRepository(db *gorm.DB) *GORMPaymentRepository {
	return &GORMPaymentRepository{
		db: db,
	}
}

// GetByEmail returns the payments made by email.
func (r *GORMPaymentRepository) GetByEmail(ctx context.Context, email string) ([]models.Payment, error) {
	payments := make([]models.Payment, 0)
	if err := r.db.WithContext(ctx).Where("email = ?", email).Find(&payments).Error; err != nil {
		return nil, fmt.Errorf("failed to get payments for %s: %w", email, err)
	}
	return payments, nil
}

// CreateAndClearCart inserts the payment and deletes its cart entries in one transaction.
func (r *GORMPaymentRepository) CreateAndClearCart(ctx context.Context, payment *models.Payment) (int64, error) {
	if err := checkUUIDs(payment.CartIDs); err != nil {
		return 0, err
	}
	if payment.ID == "" {
		payment.ID = uuid.New().String()
	}
	payment.Items = make([]models.PaymentMenuItem, 0, len(payment.MenuItemIDs))
	for _, id := range payment.MenuItemIDs {
		payment.Items = append(payment.Items, models.PaymentMenuItem{PaymentID: payment.ID, MenuItemID: id})
	}

	var deleted int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(payment).Error; err != nil {
			return fmt.Errorf("failed to create payment: %w", err)
		}
		if len(payment.CartIDs) == 0 {
			return nil
		}
		res := tx.Where("id IN ?", payment.CartIDs).Delete(&models.CartItem{})
		if res.Error != nil {
			return fmt.Errorf("failed to clear cart for payment %s: %w", payment.ID, res.Error)
		}
		deleted = res.RowsAffected
		return nil
	})
	if err != nil {
		return 0, err
	}
	return deleted, nil
}

// Count returns the number of payments.
func (r *GORMPaymentRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.WithContext(ctx).Model(&models.Payment{}).Count(&n).Error; err != nil {
		return 0, fmt.Errorf("failed to count payments: %w", err)
	}
	return n, nil
}

// TotalRevenue sums the price of all payments.
func (r *GORMPaymentRepository) TotalRevenue(ctx context.Context) (float64, error) {
	var total float64
	err := r.db.WithContext(ctx).Model(&models.Payment{}).Select("COALESCE(SUM(price), 0)").Scan(&total).Error
	if err != nil {
		return 0, fmt.Errorf("failed to sum revenue: %w", err)
	}
	return total, nil
}

// OrderStats joins every listed menu item id against the menu and groups by category.
func (r *GORMPaymentRepository) OrderStats(ctx context.Context) ([]models.CategoryStat, error) {
	stats := make([]models.CategoryStat, 0)
	err := r.db.WithContext(ctx).
		Table("payment_menu_items AS pm").
		Select("m.category AS category, COUNT(*) AS quantity, COALESCE(SUM(m.price), 0) AS revenue").
		Joins("JOIN menu_items AS m ON m.id = pm.menu_item_id").
		Group("m.category").
		Order("m.category").
		Scan(&stats).Error
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate order stats: %w", err)
	}
	return stats, nil
}

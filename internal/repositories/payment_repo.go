package repositories

import (
	"context"

	"bistro/internal/models"
)

// PaymentRepository defines the interface for payment data access and the
// revenue aggregations computed over payments.
type PaymentRepository interface {
	GetByEmail(ctx context.Context, email string) ([]models.Payment, error)
	// CreateAndClearCart stores the payment and removes every cart entry
	// listed in payment.CartIDs as one unit. It returns the number of cart
	// entries removed.
	CreateAndClearCart(ctx context.Context, payment *models.Payment) (int64, error)
	Count(ctx context.Context) (int64, error)
	// TotalRevenue sums Price over all payments; zero when there are none.
	TotalRevenue(ctx context.Context) (float64, error)
	// OrderStats groups every menu item id listed on payments by the
	// category of the referenced menu item.
	OrderStats(ctx context.Context) ([]models.CategoryStat, error)
}

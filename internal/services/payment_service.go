package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"bistro/internal/models"
	"bistro/internal/repositories"
	"bistro/pkg/payment"
	"bistro/pkg/rabbitmq"
)

// ErrInvalidPrice is returned for a payment intent price outside [0, payment.MaxPrice].
var ErrInvalidPrice = errors.New("price must be between 0 and 999999.99")

// PaymentGateway creates payment intents with the card processor.
type PaymentGateway interface {
	CreateIntent(ctx context.Context, amount int64) (*payment.Intent, error)
}

// EventPublisher announces finalized payments.
type EventPublisher interface {
	PublishPaymentCompleted(event rabbitmq.PaymentEvent) error
}

// PaymentService handles payment intents and payment finalization.
type PaymentService struct {
	repo      repositories.PaymentRepository
	gateway   PaymentGateway
	publisher EventPublisher
	now       func() time.Time
}

// NewPaymentService creates a new PaymentService. publisher may be nil.
func NewPaymentService(repo repositories.PaymentRepository, gateway PaymentGateway, publisher EventPublisher) *PaymentService {
	return &PaymentService{
		repo:      repo,
		gateway:   gateway,
		publisher: publisher,
		now:       time.Now,
	}
}

// CreateIntent converts price (dollars) to cents and returns the client secret of a new intent.
func (s *PaymentService) CreateIntent(ctx context.Context, price float64) (string, error) {
	if price < 0 || price > payment.MaxPrice {
		return "", ErrInvalidPrice
	}
	intent, err := s.gateway.CreateIntent(ctx, payment.ToMinorUnits(price))
	if err != nil {
		return "", err
	}
	return intent.ClientSecret, nil
}

// GetPayments returns the payments made by email.
func (s *PaymentService) GetPayments(ctx context.Context, email string) ([]models.Payment, error) {
	return s.repo.GetByEmail(ctx, email)
}

// CompletePayment stores p and removes the cart entries it lists. The
// completion event is best effort and never fails the payment.
func (s *PaymentService) CompletePayment(ctx context.Context, p *models.Payment) (models.PaymentResult, error) {
	p.ID = ""
	if p.Date.IsZero() {
		p.Date = s.now().UTC()
	}
	if p.Status == "" {
		p.Status = "pending"
	}

	deleted, err := s.repo.CreateAndClearCart(ctx, p)
	if err != nil {
		return models.PaymentResult{}, fmt.Errorf("failed to complete payment: %w", err)
	}

	if s.publisher != nil {
		event := rabbitmq.PaymentEvent{
			PaymentID:   p.ID,
			Email:       p.Email,
			Price:       p.Price,
			CartCleared: deleted,
			MenuItemIDs: p.MenuItemIDs,
		}
		if err := s.publisher.PublishPaymentCompleted(event); err != nil {
			log.Warningf("Failed to publish payment completed event for payment %s: %v", p.ID, err)
		}
	}

	return models.PaymentResult{InsertedID: p.ID, DeletedCount: deleted}, nil
}

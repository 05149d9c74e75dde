// Package payment creates card payment intents with Stripe.
package payment

import (
	"context"
	"errors"
	"fmt"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/client"
)

// ErrNotConfigured is returned when no Stripe secret key was supplied.
var ErrNotConfigured = errors.New("payment gateway is not configured")

// Intent is the part of a created payment intent the frontend needs.
type Intent struct {
	ID           string
	ClientSecret string
	Amount       int64
}

// StripeGateway creates USD card payment intents.
type StripeGateway struct {
	api *client.API
}

// NewStripeGateway returns a gateway using secretKey. An empty key yields a
// gateway whose calls fail with ErrNotConfigured.
func NewStripeGateway(secretKey string) *StripeGateway {
	if secretKey == "" {
		return &StripeGateway{}
	}
	return &StripeGateway{api: client.New(secretKey, nil)}
}

// CreateIntent creates a payment intent for amount minor units (cents).
func (g *StripeGateway) CreateIntent(ctx context.Context, amount int64) (*Intent, error) {
	if g.api == nil {
		return nil, ErrNotConfigured
	}
	params := &stripe.PaymentIntentParams{
		Amount:             stripe.Int64(amount),
		Currency:           stripe.String(string(stripe.CurrencyUSD)),
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
	}
	params.Context = ctx

	pi, err := g.api.PaymentIntents.New(params)
	if err != nil {
		return nil, fmt.Errorf("failed to create payment intent: %w", err)
	}
	return &Intent{ID: pi.ID, ClientSecret: pi.ClientSecret, Amount: pi.Amount}, nil
}

// MaxPrice is the largest charge, in dollars, the card processor accepts.
const MaxPrice = 999999.99

// ToMinorUnits converts a price in dollars to cents, truncating any
// fraction of a cent.
func ToMinorUnits(price float64) int64 {
	return int64(price * 100)
}

package handlers

import (
	"errors"

	"bistro/internal/middleware"
	"bistro/internal/models"
	"bistro/internal/services"
	"bistro/pkg/payment"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// PaymentHandler handles payment intents and payment records.
type PaymentHandler struct {
	service  *services.PaymentService
	validate *validator.Validate
}

// NewPaymentHandler creates a new PaymentHandler.
func NewPaymentHandler(service *services.PaymentService) *PaymentHandler {
	return &PaymentHandler{
		service:  service,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the payment routes.
func (h *PaymentHandler) RegisterRoutes(router fiber.Router, g Guards) {
	router.Post("/create-payment-intent", h.HandleCreateIntent)
	router.Get("/payments/:email", g.Token, h.HandleGetPayments)
	router.Post("/payments", h.HandleCompletePayment)
}

// IntentRequest is the body of POST /create-payment-intent.
type IntentRequest struct {
	Price float64 `json:"price" validate:"gte=0,lte=999999.99"`
}

// HandleCreateIntent creates a card payment intent for the posted price.
func (h *PaymentHandler) HandleCreateIntent(c *fiber.Ctx) error {
	var req IntentRequest
	if ok, err := parseBody(c, h.validate, &req); !ok {
		return err
	}

	secret, err := h.service.CreateIntent(c.UserContext(), req.Price)
	if err != nil {
		if errors.Is(err, services.ErrInvalidPrice) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
		}
		if errors.Is(err, payment.ErrNotConfigured) {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"message": err.Error()})
		}
		log.Errorf("Error creating payment intent: %v", err)
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
			"message": "Could not create payment intent",
			"error":   err.Error(),
		})
	}
	return c.JSON(fiber.Map{"clientSecret": secret})
}

// HandleGetPayments returns the caller's own payment history.
func (h *PaymentHandler) HandleGetPayments(c *fiber.Ctx) error {
	email := c.Params("email")
	if email != middleware.Email(c) {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"message": "Forbidden Access"})
	}

	payments, err := h.service.GetPayments(c.UserContext(), email)
	if err != nil {
		return storeError(c, "Could not retrieve payments", err)
	}
	return c.JSON(payments)
}

// HandleCompletePayment records a payment and empties the listed cart entries.
func (h *PaymentHandler) HandleCompletePayment(c *fiber.Ctx) error {
	var p models.Payment
	if ok, err := parseBody(c, h.validate, &p); !ok {
		return err
	}

	res, err := h.service.CompletePayment(c.UserContext(), &p)
	if err != nil {
		return storeError(c, "Could not complete payment", err)
	}
	return c.JSON(res)
}

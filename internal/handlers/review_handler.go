package handlers

import (
	"bistro/internal/services"

	"github.com/gofiber/fiber/v2"
)

// ReviewHandler serves the read-only reviews list.
type ReviewHandler struct {
	service *services.ReviewService
}

// NewReviewHandler creates a new ReviewHandler.
func NewReviewHandler(service *services.ReviewService) *ReviewHandler {
	return &ReviewHandler{service: service}
}

// RegisterRoutes registers the reviews route.
func (h *ReviewHandler) RegisterRoutes(router fiber.Router) {
	router.Get("/reviews", h.HandleGetReviews)
}

// HandleGetReviews returns every review.
func (h *ReviewHandler) HandleGetReviews(c *fiber.Ctx) error {
	reviews, err := h.service.GetAllReviews(c.UserContext())
	if err != nil {
		return storeError(c, "Could not retrieve reviews", err)
	}
	return c.JSON(reviews)
}

package handlers

import (
	"bistro/internal/models"
	"bistro/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// CartHandler handles HTTP requests for shopping carts.
type CartHandler struct {
	service  *services.CartService
	validate *validator.Validate
}

// NewCartHandler creates a new CartHandler.
func NewCartHandler(service *services.CartService) *CartHandler {
	return &CartHandler{
		service:  service,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the cart routes.
func (h *CartHandler) RegisterRoutes(router fiber.Router) {
	carts := router.Group("/carts")
	carts.Get("/", h.HandleGetCart)
	carts.Post("/", h.HandleAddToCart)
	carts.Delete("/:id", h.HandleRemoveFromCart)
}

// HandleGetCart returns the cart of the email query parameter.
func (h *CartHandler) HandleGetCart(c *fiber.Ctx) error {
	items, err := h.service.GetCart(c.UserContext(), c.Query("email"))
	if err != nil {
		return storeError(c, "Could not retrieve cart", err)
	}
	return c.JSON(items)
}

// HandleAddToCart stores one cart entry.
func (h *CartHandler) HandleAddToCart(c *fiber.Ctx) error {
	var item models.CartItem
	if ok, err := parseBody(c, h.validate, &item); !ok {
		return err
	}

	res, err := h.service.AddItem(c.UserContext(), &item)
	if err != nil {
		return storeError(c, "Could not add cart item", err)
	}
	return c.JSON(res)
}

// HandleRemoveFromCart deletes one cart entry.
func (h *CartHandler) HandleRemoveFromCart(c *fiber.Ctx) error {
	res, err := h.service.RemoveItem(c.UserContext(), c.Params("id"))
	if err != nil {
		return storeError(c, "Could not remove cart item", err)
	}
	return c.JSON(res)
}

package handlers

import (
	"bistro/internal/services"

	"github.com/gofiber/fiber/v2"
)

// AuthHandler issues access tokens.
type AuthHandler struct {
	authService *services.AuthService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService *services.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
	}
}

// RegisterRoutes registers the token route.
func (h *AuthHandler) RegisterRoutes(router fiber.Router) {
	router.Post("/jwt", h.HandleIssueToken)
}

// HandleIssueToken signs whatever JSON object the caller posts. The client
// has already authenticated the user with its identity provider.
func (h *AuthHandler) HandleIssueToken(c *fiber.Ctx) error {
	claims := make(map[string]interface{})
	if ok, err := parseBody(c, nil, &claims); !ok {
		return err
	}

	token, err := h.authService.IssueToken(claims)
	if err != nil {
		log.Errorf("Error issuing token: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not issue token",
			"error":   err.Error(),
		})
	}
	return c.JSON(fiber.Map{"token": token})
}

package middleware

import (
	"strings"

	"bistro/internal/services"

	"github.com/dgrijalva/jwt-go"
	"github.com/gofiber/fiber/v2"
	"github.com/op/go-logging"
)

var log = logging.MustGetLogger("middleware")

// Locals keys set by VerifyToken.
const (
	LocalClaims = "decoded"
	LocalEmail  = "email"
)

// VerifyToken is a Fiber middleware that requires "Authorization: Bearer <token>".
func VerifyToken(authService *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get(fiber.HeaderAuthorization)
		if authHeader == "" {
			return unauthorized(c)
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if !(len(parts) == 2 && parts[0] == "Bearer") {
			return unauthorized(c)
		}

		claims, err := authService.ValidateToken(parts[1])
		if err != nil {
			log.Debugf("JWT validation failed: %v", err)
			return unauthorized(c)
		}

		c.Locals(LocalClaims, claims)
		email, _ := claims["email"].(string)
		c.Locals(LocalEmail, email)

		return c.Next()
	}
}

// Claims returns the claims stored by VerifyToken, or nil.
func Claims(c *fiber.Ctx) jwt.MapClaims {
	claims, _ := c.Locals(LocalClaims).(jwt.MapClaims)
	return claims
}

// Email returns the email claim stored by VerifyToken, or "".
func Email(c *fiber.Ctx) string {
	email, _ := c.Locals(LocalEmail).(string)
	return email
}

func unauthorized(c *fiber.Ctx) error {
	return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
		"message": "unauthorized access",
	})
}

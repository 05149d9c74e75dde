package middleware

import (
	"context"

	"github.com/gofiber/fiber/v2"
)

// AdminChecker reports whether an email belongs to an admin.
type AdminChecker interface {
	IsAdmin(ctx context.Context, email string) (bool, error)
}

// VerifyAdmin must be mounted after VerifyToken. It re-reads the caller's
// user record and rejects anyone whose role is not admin.
func VerifyAdmin(users AdminChecker) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if Claims(c) == nil {
			return unauthorized(c)
		}

		isAdmin, err := users.IsAdmin(c.UserContext(), Email(c))
		if err != nil {
			log.Errorf("Admin lookup failed for %s: %v", Email(c), err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"message": "Could not verify admin access",
				"error":   err.Error(),
			})
		}
		if !isAdmin {
			return Forbidden(c)
		}
		return c.Next()
	}
}

// Forbidden writes the 403 body shared by the admin and identity checks.
func Forbidden(c *fiber.Ctx) error {
	return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
		"message": "forbidden access",
	})
}

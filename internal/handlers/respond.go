package handlers

import (
	"errors"
	"fmt"

	"bistro/internal/repositories"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/op/go-logging"
)

var log = logging.MustGetLogger("handlers")

// Guards are the authorization filters handlers attach to protected routes.
// Admin must only ever be mounted after Token.
type Guards struct {
	Token fiber.Handler
	Admin fiber.Handler
}

// parseBody decodes and validates the request body into dst. When it
// returns false the 400 response has been written and err is the result of
// writing it.
func parseBody(c *fiber.Ctx, validate *validator.Validate, dst interface{}) (ok bool, err error) {
	if err := c.BodyParser(dst); err != nil {
		log.Debugf("Error parsing request body: %v", err)
		return false, c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	if validate == nil {
		return true, nil
	}
	if err := validate.Struct(dst); err != nil {
		var validationErrors validator.ValidationErrors
		if !errors.As(err, &validationErrors) {
			return false, c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": "Validation failed",
				"error":   err.Error(),
			})
		}
		errorMessages := make(map[string]string)
		for _, e := range validationErrors {
			errorMessages[e.Field()] = fmt.Sprintf("Field '%s' failed on the '%s' tag", e.Field(), e.Tag())
		}
		return false, c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Validation failed",
			"errors":  errorMessages,
		})
	}
	return true, nil
}

// storeError maps repository errors onto HTTP statuses.
func storeError(c *fiber.Ctx, message string, err error) error {
	switch {
	case errors.Is(err, repositories.ErrInvalidID):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid id",
			"error":   err.Error(),
		})
	case errors.Is(err, repositories.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"message": "Not found",
			"error":   err.Error(),
		})
	}
	log.Errorf("%s: %v", message, err)
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"message": message,
		"error":   err.Error(),
	})
}

package handlers

import (
	"bistro/internal/middleware"
	"bistro/internal/models"
	"bistro/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// UserHandler handles HTTP requests for users and roles.
type UserHandler struct {
	service  *services.UserService
	validate *validator.Validate
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(service *services.UserService) *UserHandler {
	return &UserHandler{
		service:  service,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the user routes.
func (h *UserHandler) RegisterRoutes(router fiber.Router, g Guards) {
	router.Get("/user/admin/:email", g.Token, h.HandleCheckAdmin)

	users := router.Group("/users")
	users.Get("/", g.Token, g.Admin, h.HandleGetUsers)
	users.Post("/", h.HandleCreateUser)
	users.Get("/admin/:email", g.Token, h.HandleCheckAdmin)
	users.Patch("/admin/:id", g.Token, g.Admin, h.HandleMakeAdmin)
	users.Delete("/:id", g.Token, g.Admin, h.HandleDeleteUser)
}

// HandleGetUsers lists all users.
func (h *UserHandler) HandleGetUsers(c *fiber.Ctx) error {
	users, err := h.service.GetAllUsers(c.UserContext())
	if err != nil {
		return storeError(c, "Could not retrieve users", err)
	}
	return c.JSON(users)
}

// HandleCreateUser registers a user once per email.
func (h *UserHandler) HandleCreateUser(c *fiber.Ctx) error {
	var user models.User
	if ok, err := parseBody(c, h.validate, &user); !ok {
		return err
	}

	res, err := h.service.CreateUser(c.UserContext(), &user)
	if err != nil {
		return storeError(c, "Could not create user", err)
	}
	return c.JSON(res)
}

// HandleDeleteUser removes a user.
func (h *UserHandler) HandleDeleteUser(c *fiber.Ctx) error {
	res, err := h.service.DeleteUser(c.UserContext(), c.Params("id"))
	if err != nil {
		return storeError(c, "Could not delete user", err)
	}
	return c.JSON(res)
}

// HandleMakeAdmin grants the admin role.
func (h *UserHandler) HandleMakeAdmin(c *fiber.Ctx) error {
	res, err := h.service.MakeAdmin(c.UserContext(), c.Params("id"))
	if err != nil {
		return storeError(c, "Could not update user role", err)
	}
	return c.JSON(res)
}

// HandleCheckAdmin tells callers whether they are admins. Callers may only
// ask about themselves.
func (h *UserHandler) HandleCheckAdmin(c *fiber.Ctx) error {
	email := c.Params("email")
	if email != middleware.Email(c) {
		return middleware.Forbidden(c)
	}

	isAdmin, err := h.service.IsAdmin(c.UserContext(), email)
	if err != nil {
		return storeError(c, "Could not look up user", err)
	}
	return c.JSON(fiber.Map{"admin": isAdmin})
}

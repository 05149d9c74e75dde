package handlers

import (
	"bistro/internal/models"
	"bistro/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// MenuHandler handles HTTP requests for menu items.
type MenuHandler struct {
	service  *services.MenuService
	validate *validator.Validate
}

// NewMenuHandler creates a new MenuHandler.
func NewMenuHandler(service *services.MenuService) *MenuHandler {
	return &MenuHandler{
		service:  service,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the menu routes. Reads are public, writes are admin only.
func (h *MenuHandler) RegisterRoutes(router fiber.Router, g Guards) {
	menu := router.Group("/menu")
	menu.Get("/", h.HandleGetMenu)
	menu.Get("/:id", h.HandleGetMenuItem)
	menu.Post("/", g.Token, g.Admin, h.HandleCreateMenuItem)
	menu.Patch("/:id", g.Token, g.Admin, h.HandleUpdateMenuItem)
	menu.Delete("/:id", g.Token, g.Admin, h.HandleDeleteMenuItem)
}

// HandleGetMenu returns the whole menu.
func (h *MenuHandler) HandleGetMenu(c *fiber.Ctx) error {
	items, err := h.service.GetAllItems(c.UserContext())
	if err != nil {
		return storeError(c, "Could not retrieve menu", err)
	}
	return c.JSON(items)
}

// HandleGetMenuItem returns a single menu item.
func (h *MenuHandler) HandleGetMenuItem(c *fiber.Ctx) error {
	item, err := h.service.GetItemByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return storeError(c, "Could not retrieve menu item", err)
	}
	return c.JSON(item)
}

// HandleCreateMenuItem adds a menu item.
func (h *MenuHandler) HandleCreateMenuItem(c *fiber.Ctx) error {
	var item models.MenuItem
	if ok, err := parseBody(c, h.validate, &item); !ok {
		return err
	}

	res, err := h.service.CreateItem(c.UserContext(), &item)
	if err != nil {
		return storeError(c, "Could not create menu item", err)
	}
	return c.JSON(res)
}

// HandleUpdateMenuItem replaces the editable fields of a menu item.
func (h *MenuHandler) HandleUpdateMenuItem(c *fiber.Ctx) error {
	var item models.MenuItem
	if ok, err := parseBody(c, h.validate, &item); !ok {
		return err
	}

	res, err := h.service.UpdateItem(c.UserContext(), c.Params("id"), &item)
	if err != nil {
		return storeError(c, "Could not update menu item", err)
	}
	return c.JSON(res)
}

// HandleDeleteMenuItem removes a menu item.
func (h *MenuHandler) HandleDeleteMenuItem(c *fiber.Ctx) error {
	res, err := h.service.DeleteItem(c.UserContext(), c.Params("id"))
	if err != nil {
		return storeError(c, "Could not delete menu item", err)
	}
	return c.JSON(res)
}

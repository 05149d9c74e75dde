// Package routes assembles the fiber application.
package routes

import (
	"time"

	"bistro/internal/database"
	"bistro/internal/handlers"
	"bistro/internal/middleware"
	"bistro/internal/services"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

// Deps are the process-wide collaborators the routes are built from.
type Deps struct {
	Store     *database.Store
	Auth      *services.AuthService
	Gateway   services.PaymentGateway
	Publisher services.EventPublisher
	// AccessLog enables fiber's request logger.
	AccessLog bool
}

// NewApp wires services, handlers and authorization guards into a fiber app.
func NewApp(d Deps) *fiber.App {
	app := fiber.New(fiber.Config{AppName: "bistro"})

	app.Use(recover.New())
	if d.AccessLog {
		app.Use(logger.New())
	}
	app.Use(cors.New())

	userService := services.NewUserService(d.Store.Users)
	menuService := services.NewMenuService(d.Store.Menu)
	reviewService := services.NewReviewService(d.Store.Reviews)
	cartService := services.NewCartService(d.Store.Carts)
	paymentService := services.NewPaymentService(d.Store.Payments, d.Gateway, d.Publisher)
	statsService := services.NewStatsService(d.Store.Users, d.Store.Menu, d.Store.Payments)

	guards := handlers.Guards{
		Token: middleware.VerifyToken(d.Auth),
		Admin: middleware.VerifyAdmin(userService),
	}

	handlers.NewAuthHandler(d.Auth).RegisterRoutes(app)
	handlers.NewUserHandler(userService).RegisterRoutes(app, guards)
	handlers.NewMenuHandler(menuService).RegisterRoutes(app, guards)
	handlers.NewReviewHandler(reviewService).RegisterRoutes(app)
	handlers.NewCartHandler(cartService).RegisterRoutes(app)
	handlers.NewPaymentHandler(paymentService).RegisterRoutes(app, guards)
	handlers.NewStatsHandler(statsService).RegisterRoutes(app, guards)

	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendString("boss server working")
	})
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now().Format(time.RFC3339),
			"store":  d.Store.Driver,
		})
	})

	return app
}

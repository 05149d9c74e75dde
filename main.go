package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"bistro/internal/config"
	"bistro/internal/database"
	"bistro/internal/routes"
	"bistro/internal/services"
	"bistro/pkg/logger"
	"bistro/pkg/payment"
	"bistro/pkg/rabbitmq"

	"github.com/gofiber/fiber/v2"
	"github.com/op/go-logging"
)

var log = logging.MustGetLogger("main")

// server bundles the app with everything that must be released on shutdown.
type server struct {
	app   *fiber.App
	store *database.Store
	mq    *rabbitmq.Client
}

func main() {
	cfg, err := config.Load(os.Args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid configuration: %v\n", err)
		os.Exit(2)
	}
	if err := logger.Init(cfg.LogLevel); err != nil {
		fmt.Fprintf(os.Stderr, "invalid LOG_LEVEL %q: %v\n", cfg.LogLevel, err)
		os.Exit(2)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	srv, err := newServer(ctx, cfg)
	cancel()
	if err != nil {
		log.Fatalf("Failed to start: %v", err)
	}

	if srv.mq != nil {
		go func() {
			log.Info("Starting RabbitMQ consumer for payment events...")
			if err := srv.mq.ConsumePaymentEvents(rabbitmq.LogPaymentEvent); err != nil {
				log.Errorf("Failed to start RabbitMQ consumer: %v", err)
			}
		}()
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		log.Infof("Starting server on %s (store: %s)", cfg.ListenAddr(), cfg.DBDriver)
		if err := srv.app.Listen(cfg.ListenAddr()); err != nil {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	<-quit
	log.Info("Shutting down server...")
	srv.shutdown()
	log.Info("Server gracefully stopped")
}

// newServer opens the store and the optional broker and builds the app.
func newServer(ctx context.Context, cfg *config.Config) (*server, error) {
	store, err := database.Open(ctx, cfg)
	if err != nil {
		return nil, err
	}

	deps := routes.Deps{
		Store:     store,
		Auth:      services.NewAuthService(cfg.JWTSecret, cfg.TokenTTL),
		Gateway:   payment.NewStripeGateway(cfg.StripeKey),
		AccessLog: true,
	}
	if cfg.StripeKey == "" {
		log.Warning("STRIPE_SECRET_KEY is not set; payment intents are disabled")
	}

	srv := &server{store: store}
	if cfg.RabbitMQURL != "" {
		mq, err := rabbitmq.NewClient(rabbitmq.Config{URL: cfg.RabbitMQURL})
		if err != nil {
			_ = store.Close(ctx)
			return nil, fmt.Errorf("failed to initialize RabbitMQ client: %w", err)
		}
		srv.mq = mq
		deps.Publisher = mq
	}

	srv.app = routes.NewApp(deps)
	return srv, nil
}

func (s *server) shutdown() {
	if err := s.app.Shutdown(); err != nil {
		log.Errorf("Error during Fiber shutdown: %v", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := s.store.Close(ctx); err != nil {
		log.Errorf("Error closing store: %v", err)
	}
	if s.mq != nil {
		if err := s.mq.Close(); err != nil {
			log.Errorf("Error closing RabbitMQ client: %v", err)
		}
	}
}

// Package database opens the repository set selected by DB_DRIVER.
package database

import (
	"context"
	"fmt"

	"bistro/internal/config"
	"bistro/internal/repositories"

	"github.com/op/go-logging"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

var log = logging.MustGetLogger("database")

// Store is one backend's implementation of every repository.
type Store struct {
	Driver   string
	Users    repositories.UserRepository
	Menu     repositories.MenuRepository
	Reviews  repositories.ReviewRepository
	Carts    repositories.CartRepository
	Payments repositories.PaymentRepository

	close func(ctx context.Context) error
}

// Close releases the underlying connection.
func (s *Store) Close(ctx context.Context) error {
	if s.close == nil {
		return nil
	}
	return s.close(ctx)
}

// Open connects to the backend named by cfg.DBDriver. SQL backends are
// migrated before Open returns.
func Open(ctx context.Context, cfg *config.Config) (*Store, error) {
	switch cfg.DBDriver {
	case config.DriverMongo:
		return openMongo(ctx, cfg)
	case config.DriverPostgres:
		return openGORM(postgres.Open(cfg.DatabaseDSN), cfg.DBDriver)
	case config.DriverSQLite:
		return openGORM(sqlite.Open(cfg.DatabaseDSN), cfg.DBDriver)
	case config.DriverMemory:
		return NewMemory(), nil
	}
	return nil, fmt.Errorf("unsupported DB_DRIVER %q", cfg.DBDriver)
}

func openMongo(ctx context.Context, cfg *config.Config) (*Store, error) {
	ms, err := repositories.NewMongoStore(ctx, cfg.MongoConnectionURI(), cfg.MongoDatabase)
	if err != nil {
		return nil, err
	}
	log.Infof("Connected to MongoDB database %s", cfg.MongoDatabase)
	return &Store{
		Driver:   config.DriverMongo,
		Users:    repositories.NewMongoUserRepository(ms),
		Menu:     repositories.NewMongoMenuRepository(ms),
		Reviews:  repositories.NewMongoReviewRepository(ms),
		Carts:    repositories.NewMongoCartRepository(ms),
		Payments: repositories.NewMongoPaymentRepository(ms),
		close:    ms.Close,
	}, nil
}

func openGORM(dialector gorm.Dialector, driver string) (*Store, error) {
	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Warn),
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to %s: %w", driver, err)
	}
	if err := repositories.AutoMigrate(db); err != nil {
		return nil, fmt.Errorf("failed to migrate %s: %w", driver, err)
	}
	log.Infof("Connected to %s and migrated schema", driver)
	return NewGORM(db, driver), nil
}

// NewGORM wraps an open GORM connection. The schema must already be migrated.
func NewGORM(db *gorm.DB, driver string) *Store {
	return &Store{
		Driver:   driver,
		Users:    repositories.NewGORMUserRepository(db),
		Menu:     repositories.NewGORMMenuRepository(db),
		Reviews:  repositories.NewGORMReviewRepository(db),
		Carts:    repositories.NewGORMCartRepository(db),
		Payments: repositories.NewGORMPaymentRepository(db),
		close: func(context.Context) error {
			sqlDB, err := db.DB()
			if err != nil {
				return err
			}
			return sqlDB.Close()
		},
	}
}

// NewMemory returns an empty in-process store. Data is lost on exit.
func NewMemory() *Store {
	s := repositories.NewMockStore()
	return &Store{
		Driver:   config.DriverMemory,
		Users:    repositories.NewMockUserRepository(s),
		Menu:     repositories.NewMockMenuRepository(s),
		Reviews:  repositories.NewMockReviewRepository(s),
		Carts:    repositories.NewMockCartRepository(s),
		Payments: repositories.NewMockPaymentRepository(s),
	}
}

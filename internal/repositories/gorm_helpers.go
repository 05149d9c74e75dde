package repositories

import (
	"fmt"

	"bistro/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// checkUUID rejects ids that the SQL and in-memory stores could never have issued.
func checkUUID(id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidID, id)
	}
	return nil
}

func checkUUIDs(ids []string) error {
	for _, id := range ids {
		if err := checkUUID(id); err != nil {
			return err
		}
	}
	return nil
}

// AutoMigrate creates or updates the tables used by the GORM repositories.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.MenuItem{},
		&models.Review{},
		&models.CartItem{},
		&models.Payment{},
		&models.PaymentMenuItem{},
	)
}

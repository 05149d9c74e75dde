package models

import "time"

// Payment records a completed checkout. CartIDs are the cart entries
// consumed by the checkout; MenuItemIDs feed the per-category order stats.
type Payment struct {
	ID            string    `json:"_id" bson:"-" gorm:"primaryKey;type:varchar(36)"`
	Email         string    `json:"email" bson:"email" gorm:"index;type:varchar(255)" validate:"required,email"`
	Price         float64   `json:"price" bson:"price" validate:"gte=0"`
	TransactionID string    `json:"transactionId" bson:"transactionId"`
	Date          time.Time `json:"date" bson:"date"`
	CartIDs       []string  `json:"cartIds" bson:"cartIds" gorm:"serializer:json"`
	MenuItemIDs   []string  `json:"menuItemIds" bson:"menuItemIds" gorm:"serializer:json" validate:"dive,max=255"`
	Status        string    `json:"status" bson:"status" gorm:"type:varchar(50)"`

	// Items is the relational expansion of MenuItemIDs used by SQL stores.
	Items []PaymentMenuItem `json:"-" bson:"-" gorm:"foreignKey:PaymentID;constraint:OnDelete:CASCADE"`
}

// PaymentMenuItem is one row per menu item id listed on a payment.
type PaymentMenuItem struct {
	ID         uint   `gorm:"primaryKey;autoIncrement"`
	PaymentID  string `gorm:"index;type:varchar(36)"`
	MenuItemID string `gorm:"index;type:varchar(255)"`
}

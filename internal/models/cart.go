package models

// CartItem is one menu item placed in a user's cart.
type CartItem struct {
	ID     string  `json:"_id" bson:"-" gorm:"primaryKey;type:varchar(36)"`
	Email  string  `json:"email" bson:"email" gorm:"index;type:varchar(255)" validate:"required,email"`
	MenuID string  `json:"menuId" bson:"menuId" validate:"required"`
	Name   string  `json:"name" bson:"name"`
	Image  string  `json:"image" bson:"image"`
	Price  float64 `json:"price" bson:"price" validate:"gte=0"`
}

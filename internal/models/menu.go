package models

// MenuItem is a dish offered by the restaurant.
type MenuItem struct {
	ID       string  `json:"_id" bson:"-" gorm:"primaryKey;type:varchar(36)"`
	Name     string  `json:"name" bson:"name" validate:"required,max=200"`
	Category string  `json:"category" bson:"category" gorm:"index" validate:"required,max=100"`
	Price    float64 `json:"price" bson:"price" validate:"gte=0"`
	Recipe   string  `json:"recipe" bson:"recipe" validate:"omitempty,max=2000"`
	Image    string  `json:"image" bson:"image" validate:"omitempty,max=1000"`
}

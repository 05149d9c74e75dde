package models

// Review is a customer testimonial. The service only ever reads them.
type Review struct {
	ID       string  `json:"_id" bson:"-" gorm:"primaryKey;type:varchar(36)"`
	Name     string  `json:"name" bson:"name"`
	Details  string  `json:"details" bson:"details"`
	Rating   float64 `json:"rating" bson:"rating"`
	Category string  `json:"category,omitempty" bson:"category,omitempty"`
}

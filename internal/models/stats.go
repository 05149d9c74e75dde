package models

// AdminStats summarizes the whole store for the dashboard.
type AdminStats struct {
	Users     int64   `json:"totalUsers"`
	MenuItems int64   `json:"totalMenuItems"`
	Orders    int64   `json:"totalOrders"`
	Revenue   float64 `json:"revenue"`
}

// CategoryStat is one row of the per-category order breakdown.
type CategoryStat struct {
	Category string  `json:"category" bson:"category"`
	Quantity int64   `json:"quantity" bson:"quantity"`
	Revenue  float64 `json:"revenue" bson:"revenue"`
}

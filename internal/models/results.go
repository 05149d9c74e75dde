package models

// InsertResult is the body returned by every create endpoint.
// InsertedID is nil when nothing was inserted.
type InsertResult struct {
	InsertedID *string `json:"insertedId"`
	Message    string  `json:"message,omitempty"`
}

// DeleteResult reports how many documents a delete removed.
type DeleteResult struct {
	DeletedCount int64 `json:"deletedCount"`
}

// UpdateResult reports how many documents an update matched and changed.
type UpdateResult struct {
	MatchedCount  int64 `json:"matchedCount"`
	ModifiedCount int64 `json:"modifiedCount"`
}

// PaymentResult is returned by payment finalization.
type PaymentResult struct {
	InsertedID   string `json:"insertedId"`
	DeletedCount int64  `json:"deletedCount"`
}

// Inserted builds an InsertResult for a freshly created record.
func Inserted(id string) InsertResult {
	return InsertResult{InsertedID: &id}
}

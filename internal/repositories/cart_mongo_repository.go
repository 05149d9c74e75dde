package repositories

import (
	"context"
	"fmt"

	"bistro/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type cartDocument struct {
	ID              primitive.ObjectID `bson:"_id,omitempty"`
	models.CartItem `bson:",inline"`
}

// MongoCartRepository stores cart entries in the carts collection.
type MongoCartRepository struct {
	coll *mongo.Collection
}

// NewMongoCartRepository creates a MongoCartRepository on s.
func NewMongoCartRepository(s *MongoStore) *MongoCartRepository {
	return &MongoCartRepository{coll: s.collection(CartCollection)}
}

// GetByEmail returns the cart entries of email.
func (r *MongoCartRepository) GetByEmail(ctx context.Context, email string) ([]models.CartItem, error) {
	cur, err := r.coll.Find(ctx, bson.M{"email": email})
	if err != nil {
		return nil, fmt.Errorf("failed to get cart for %s: %w", email, err)
	}
	var docs []cartDocument
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode cart items: %w", err)
	}
	items := make([]models.CartItem, 0, len(docs))
	for _, d := range docs {
		item := d.CartItem
		item.ID = d.ID.Hex()
		items = append(items, item)
	}
	return items, nil
}

// Create inserts item and sets its ID.
func (r *MongoCartRepository) Create(ctx context.Context, item *models.CartItem) error {
	doc := cartDocument{ID: primitive.NewObjectID(), CartItem: *item}
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("failed to create cart item: %w", err)
	}
	item.ID = doc.ID.Hex()
	return nil
}

// Delete removes one cart entry.
func (r *MongoCartRepository) Delete(ctx context.Context, id string) (int64, error) {
	oid, err := objectID(id)
	if err != nil {
		return 0, err
	}
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return 0, fmt.Errorf("failed to delete cart item: %w", err)
	}
	return res.DeletedCount, nil
}

package repositories

import (
	"context"
	"errors"
	"fmt"

	"bistro/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type menuDocument struct {
	ID              primitive.ObjectID `bson:"_id,omitempty"`
	models.MenuItem `bson:",inline"`
}

func (d menuDocument) model() models.MenuItem {
	m := d.MenuItem
	m.ID = d.ID.Hex()
	return m
}

// MongoMenuRepository stores menu items in the menu collection.
type MongoMenuRepository struct {
	coll *mongo.Collection
}

// NewMongoMenuRepository creates a MongoMenuRepository on s.
func NewMongoMenuRepository(s *MongoStore) *MongoMenuRepository {
	return &MongoMenuRepository{coll: s.collection(MenuCollection)}
}

// GetAll returns the whole menu.
func (r *MongoMenuRepository) GetAll(ctx context.Context) ([]models.MenuItem, error) {
	cur, err := r.coll.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("failed to get all menu items: %w", err)
	}
	var docs []menuDocument
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode menu items: %w", err)
	}
	items := make([]models.MenuItem, 0, len(docs))
	for _, d := range docs {
		items = append(items, d.model())
	}
	return items, nil
}

// GetByID returns the menu item with id.
func (r *MongoMenuRepository) GetByID(ctx context.Context, id string) (*models.MenuItem, error) {
	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}
	var doc menuDocument
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("menu item with ID %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get menu item by ID %s: %w", id, err)
	}
	item := doc.model()
	return &item, nil
}

// Create inserts item and sets its ID.
func (r *MongoMenuRepository) Create(ctx context.Context, item *models.MenuItem) error {
	doc := menuDocument{ID: primitive.NewObjectID(), MenuItem: *item}
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("failed to create menu item: %w", err)
	}
	item.ID = doc.ID.Hex()
	return nil
}

// Update sets every editable field of item.
func (r *MongoMenuRepository) Update(ctx context.Context, item *models.MenuItem) (models.UpdateResult, error) {
	oid, err := objectID(item.ID)
	if err != nil {
		return models.UpdateResult{}, err
	}
	update := bson.M{"$set": bson.M{
		"name":     item.Name,
		"category": item.Category,
		"recipe":   item.Recipe,
		"price":    item.Price,
		"image":    item.Image,
	}}
	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": oid}, update)
	if err != nil {
		return models.UpdateResult{}, fmt.Errorf("failed to update menu item: %w", err)
	}
	return models.UpdateResult{MatchedCount: res.MatchedCount, ModifiedCount: res.ModifiedCount}, nil
}

// Delete removes the menu item with id.
func (r *MongoMenuRepository) Delete(ctx context.Context, id string) (int64, error) {
	oid, err := objectID(id)
	if err != nil {
		return 0, err
	}
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return 0, fmt.Errorf("failed to delete menu item: %w", err)
	}
	return res.DeletedCount, nil
}

// Count returns the number of menu items.
func (r *MongoMenuRepository) Count(ctx context.Context) (int64, error) {
	n, err := r.coll.EstimatedDocumentCount(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to count menu items: %w", err)
	}
	return n, nil
}

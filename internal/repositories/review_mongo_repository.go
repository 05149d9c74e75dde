package repositories

import (
	"context"
	"fmt"

	"bistro/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type reviewDocument struct {
	ID            primitive.ObjectID `bson:"_id,omitempty"`
	models.Review `bson:",inline"`
}

// MongoReviewRepository reads the reviews collection.
type MongoReviewRepository struct {
	coll *mongo.Collection
}

// NewMongoReviewRepository creates a MongoReviewRepository on s.
func NewMongoReviewRepository(s *MongoStore) *MongoReviewRepository {
	return &MongoReviewRepository{coll: s.collection(ReviewCollection)}
}

// GetAll returns every review.
func (r *MongoReviewRepository) GetAll(ctx context.Context) ([]models.Review, error) {
	cur, err := r.coll.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("failed to get all reviews: %w", err)
	}
	var docs []reviewDocument
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode reviews: %w", err)
	}
	reviews := make([]models.Review, 0, len(docs))
	for _, d := range docs {
		review := d.Review
		review.ID = d.ID.Hex()
		reviews = append(reviews, review)
	}
	return reviews, nil
}

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

type userDocument struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	models.User `bson:",inline"`
}

func (d userDocument) model() models.User {
	u := d.User
	u.ID = d.ID.Hex()
	return u
}

// MongoUserRepository stores users in the users collection.
type MongoUserRepository struct {
	coll *mongo.Collection
}

// NewMongoUserRepository creates a MongoUserRepository on s.
func NewMongoUserRepository(s *MongoStore) *MongoUserRepository {
	return &MongoUserRepository{coll: s.collection(UserCollection)}
}

// GetAll returns every user.
func (r *MongoUserRepository) GetAll(ctx context.Context) ([]models.User, error) {
	cur, err := r.coll.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("failed to get all users: %w", err)
	}
	var docs []userDocument
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode users: %w", err)
	}
	users := make([]models.User, 0, len(docs))
	for _, d := range docs {
		users = append(users, d.model())
	}
	return users, nil
}

// GetByEmail returns the user registered with email.
func (r *MongoUserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var doc userDocument
	if err := r.coll.FindOne(ctx, bson.M{"email": email}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("user with email %s: %w", email, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get user by email %s: %w", email, err)
	}
	user := doc.model()
	return &user, nil
}

// Create inserts user and sets its ID. A taken email yields ErrDuplicate.
func (r *MongoUserRepository) Create(ctx context.Context, user *models.User) error {
	doc := userDocument{ID: primitive.NewObjectID(), User: *user}
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return fmt.Errorf("user with email %s: %w", user.Email, ErrDuplicate)
		}
		return fmt.Errorf("failed to create user: %w", err)
	}
	user.ID = doc.ID.Hex()
	return nil
}

// Delete removes the user with id.
func (r *MongoUserRepository) Delete(ctx context.Context, id string) (int64, error) {
	oid, err := objectID(id)
	if err != nil {
		return 0, err
	}
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return 0, fmt.Errorf("failed to delete user: %w", err)
	}
	return res.DeletedCount, nil
}

// SetRole assigns role to the user with id.
func (r *MongoUserRepository) SetRole(ctx context.Context, id string, role string) (models.UpdateResult, error) {
	oid, err := objectID(id)
	if err != nil {
		return models.UpdateResult{}, err
	}
	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": bson.M{"role": role}})
	if err != nil {
		return models.UpdateResult{}, fmt.Errorf("failed to set role for user %s: %w", id, err)
	}
	return models.UpdateResult{MatchedCount: res.MatchedCount, ModifiedCount: res.ModifiedCount}, nil
}

// Count returns the number of users.
func (r *MongoUserRepository) Count(ctx context.Context) (int64, error) {
	n, err := r.coll.EstimatedDocumentCount(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to count users: %w", err)
	}
	return n, nil
}

package repositories

import (
	"context"
	"fmt"

	"github.com/op/go-logging"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var log = logging.MustGetLogger("repositories")

// Collection names shared with existing bistro deployments.
const (
	MenuCollection     = "menu"
	ReviewCollection   = "reviews"
	CartCollection     = "carts"
	UserCollection     = "users"
	PaymentCollection  = "payments"
	DefaultMongoDBName = "bistroDB"
)

// MongoStore owns the process-wide MongoDB client.
type MongoStore struct {
	client *mongo.Client
	db     *mongo.Database
	// transactions is false on a standalone mongod, which rejects them.
	transactions bool
}

// NewMongoStore connects to uri using the stable server API and verifies the
// connection with a ping.
func NewMongoStore(ctx context.Context, uri, database string) (*MongoStore, error) {
	serverAPI := options.ServerAPI(options.ServerAPIVersion1).
		SetStrict(true).
		SetDeprecationErrors(true)
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri).SetServerAPIOptions(serverAPI))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("failed to ping MongoDB: %w", err)
	}
	s, err := newMongoStore(ctx, client, database)
	if err != nil {
		_ = client.Disconnect(ctx)
		return nil, err
	}
	return s, nil
}

// newMongoStore inspects the deployment and creates the indexes the
// repositories rely on.
func newMongoStore(ctx context.Context, client *mongo.Client, database string) (*MongoStore, error) {
	if database == "" {
		database = DefaultMongoDBName
	}
	s := &MongoStore{client: client, db: client.Database(database)}

	var err error
	if s.transactions, err = supportsTransactions(ctx, s.db); err != nil {
		return nil, err
	}
	if !s.transactions {
		log.Warning("MongoDB is a standalone server; payments are stored without a transaction")
	}

	_, err = s.collection(UserCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true).SetName("email_unique"),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create users email index: %w", err)
	}
	return s, nil
}

// supportsTransactions reports whether the server is a replica set member or
// a mongos router.
func supportsTransactions(ctx context.Context, db *mongo.Database) (bool, error) {
	var hello struct {
		SetName string `bson:"setName"`
		Msg     string `bson:"msg"`
	}
	if err := db.RunCommand(ctx, bson.D{{Key: "hello", Value: 1}}).Decode(&hello); err != nil {
		return false, fmt.Errorf("failed to run hello: %w", err)
	}
	return hello.SetName != "" || hello.Msg == "isdbgrid", nil
}

// Close disconnects the client.
func (s *MongoStore) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

func (s *MongoStore) collection(name string) *mongo.Collection {
	return s.db.Collection(name)
}

func objectID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("%w: %q", ErrInvalidID, id)
	}
	return oid, nil
}

func objectIDs(ids []string) ([]primitive.ObjectID, error) {
	oids := make([]primitive.ObjectID, 0, len(ids))
	for _, id := range ids {
		oid, err := objectID(id)
		if err != nil {
			return nil, err
		}
		oids = append(oids, oid)
	}
	return oids, nil
}

package repositories

import (
	"context"
	"fmt"

	"bistro/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type paymentDocument struct {
	ID             primitive.ObjectID `bson:"_id,omitempty"`
	models.Payment `bson:",inline"`
}

// MongoPaymentRepository stores payments and clears carts. On a replica set
// or sharded cluster both writes share one session transaction; a standalone
// server gets the insert followed by the delete.
type MongoPaymentRepository struct {
	client       *mongo.Client
	payments     *mongo.Collection
	carts        *mongo.Collection
	transactions bool
}

// NewMongoPaymentRepository creates a MongoPaymentRepository on s.
func NewMongoPaymentRepository(s *MongoStore) *MongoPaymentRepository {
	return &MongoPaymentRepository{
		client:       s.client,
		payments:     s.collection(PaymentCollection),
		carts:        s.collection(CartCollection),
		transactions: s.transactions,
	}
}

// GetByEmail returns the payments made by email.
func (r *MongoPaymentRepository) GetByEmail(ctx context.Context, email string) ([]models.Payment, error) {
	cur, err := r.payments.Find(ctx, bson.M{"email": email})
	if err != nil {
		return nil, fmt.Errorf("failed to get payments for %s: %w", email, err)
	}
	var docs []paymentDocument
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode payments: %w", err)
	}
	payments := make([]models.Payment, 0, len(docs))
	for _, d := range docs {
		p := d.Payment
		p.ID = d.ID.Hex()
		payments = append(payments, p)
	}
	return payments, nil
}

// CreateAndClearCart inserts the payment and deletes the cart entries it lists.
func (r *MongoPaymentRepository) CreateAndClearCart(ctx context.Context, payment *models.Payment) (int64, error) {
	cartIDs, err := objectIDs(payment.CartIDs)
	if err != nil {
		return 0, err
	}
	doc := paymentDocument{ID: primitive.NewObjectID(), Payment: *payment}

	var deleted int64
	if r.transactions {
		deleted, err = r.createAndClearInTransaction(ctx, doc, cartIDs)
	} else {
		deleted, err = r.createAndClear(ctx, doc, cartIDs)
	}
	if err != nil {
		return 0, err
	}
	payment.ID = doc.ID.Hex()
	return deleted, nil
}

func (r *MongoPaymentRepository) createAndClearInTransaction(ctx context.Context, doc paymentDocument, cartIDs []primitive.ObjectID) (int64, error) {
	sess, err := r.client.StartSession()
	if err != nil {
		return 0, fmt.Errorf("failed to start session: %w", err)
	}
	defer sess.EndSession(ctx)

	res, err := sess.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		return r.createAndClear(sc, doc, cartIDs)
	})
	if err != nil {
		return 0, err
	}
	return res.(int64), nil
}

func (r *MongoPaymentRepository) createAndClear(ctx context.Context, doc paymentDocument, cartIDs []primitive.ObjectID) (int64, error) {
	if _, err := r.payments.InsertOne(ctx, doc); err != nil {
		return 0, fmt.Errorf("failed to create payment: %w", err)
	}
	if len(cartIDs) == 0 {
		return 0, nil
	}
	del, err := r.carts.DeleteMany(ctx, bson.M{"_id": bson.M{"$in": cartIDs}})
	if err != nil {
		return 0, fmt.Errorf("failed to clear cart: %w", err)
	}
	return del.DeletedCount, nil
}

// Count returns the number of payments.
func (r *MongoPaymentRepository) Count(ctx context.Context) (int64, error) {
	n, err := r.payments.EstimatedDocumentCount(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to count payments: %w", err)
	}
	return n, nil
}

// TotalRevenue sums price over all payments.
func (r *MongoPaymentRepository) TotalRevenue(ctx context.Context) (float64, error) {
	cur, err := r.payments.Aggregate(ctx, revenuePipeline())
	if err != nil {
		return 0, fmt.Errorf("failed to aggregate revenue: %w", err)
	}
	var rows []struct {
		TotalRevenue float64 `bson:"totalRevenue"`
	}
	if err := cur.All(ctx, &rows); err != nil {
		return 0, fmt.Errorf("failed to decode revenue: %w", err)
	}
	if len(rows) == 0 {
		return 0, nil
	}
	return rows[0].TotalRevenue, nil
}

// OrderStats groups the menu items listed on payments by category.
func (r *MongoPaymentRepository) OrderStats(ctx context.Context) ([]models.CategoryStat, error) {
	cur, err := r.payments.Aggregate(ctx, orderStatsPipeline())
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate order stats: %w", err)
	}
	stats := make([]models.CategoryStat, 0)
	if err := cur.All(ctx, &stats); err != nil {
		return nil, fmt.Errorf("failed to decode order stats: %w", err)
	}
	return stats, nil
}

// revenuePipeline sums price over the whole payments collection.
func revenuePipeline() mongo.Pipeline {
	return mongo.Pipeline{
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: nil},
			{Key: "totalRevenue", Value: bson.D{{Key: "$sum", Value: "$price"}}},
		}}},
	}
}

// orderStatsPipeline expands menuItemIds, joins each against the menu
// collection and groups by category. Ids that are not valid ObjectIDs
// convert to null and drop out at the lookup.
func orderStatsPipeline() mongo.Pipeline {
	return mongo.Pipeline{
		{{Key: "$addFields", Value: bson.D{
			{Key: "menuItemIds", Value: bson.D{{Key: "$map", Value: bson.D{
				{Key: "input", Value: "$menuItemIds"},
				{Key: "as", Value: "itemId"},
				{Key: "in", Value: bson.D{{Key: "$convert", Value: bson.D{
					{Key: "input", Value: "$$itemId"},
					{Key: "to", Value: "objectId"},
					{Key: "onError", Value: nil},
					{Key: "onNull", Value: nil},
				}}}},
			}}}},
		}}},
		{{Key: "$unwind", Value: "$menuItemIds"}},
		{{Key: "$lookup", Value: bson.D{
			{Key: "from", Value: MenuCollection},
			{Key: "localField", Value: "menuItemIds"},
			{Key: "foreignField", Value: "_id"},
			{Key: "as", Value: "menuItems"},
		}}},
		{{Key: "$unwind", Value: "$menuItems"}},
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$menuItems.category"},
			{Key: "quantity", Value: bson.D{{Key: "$sum", Value: 1}}},
			{Key: "revenue", Value: bson.D{{Key: "$sum", Value: "$menuItems.price"}}},
		}}},
		{{Key: "$project", Value: bson.D{
			{Key: "_id", Value: 0},
			{Key: "category", Value: "$_id"},
			{Key: "quantity", Value: "$quantity"},
			{Key: "revenue", Value: "$revenue"},
		}}},
		{{Key: "$sort", Value: bson.D{{Key: "category", Value: 1}}}},
	}
}

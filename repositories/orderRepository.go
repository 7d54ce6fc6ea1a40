package repositories

import (
	"context"
	"errors"
	"time"

	"family-restaurant/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ErrDuplicateOrderID is returned when an insert violates the unique index
// on order_id.
var ErrDuplicateOrderID = errors.New("duplicate order id")

type OrderRepository interface {
	Insert(ctx context.Context, order *models.Order) error
	// FindByID resolves either the Mongo object id or the human-readable
	// ORD- identifier.
	FindByID(ctx context.Context, id string) (*models.Order, error)
	UpdateStatus(ctx context.Context, order *models.Order) error
	// ListNewest returns orders sorted by creation time descending,
	// capped at limit.
	ListNewest(ctx context.Context, limit int64) ([]models.Order, error)
	// ListBetween returns orders created within [from, to], newest first.
	// A limit of zero or less means no cap.
	ListBetween(ctx context.Context, from, to time.Time, limit int64) ([]models.Order, error)
}

type mongoOrderRepository struct {
	collection *mongo.Collection
}

func NewOrderRepository(collection *mongo.Collection) OrderRepository {
	return &mongoOrderRepository{collection: collection}
}

func (r *mongoOrderRepository) Insert(ctx context.Context, order *models.Order) error {
	_, err := r.collection.InsertOne(ctx, order)
	if mongo.IsDuplicateKeyError(err) {
		return ErrDuplicateOrderID
	}
	return err
}

func (r *mongoOrderRepository) FindByID(ctx context.Context, id string) (*models.Order, error) {
	filter := bson.M{"order_id": id}
	if objectID, err := primitive.ObjectIDFromHex(id); err == nil {
		filter = bson.M{"$or": bson.A{
			bson.M{"_id": objectID},
			bson.M{"order_id": id},
		}}
	}

	var order models.Order
	err := r.collection.FindOne(ctx, filter).Decode(&order)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *mongoOrderRepository) UpdateStatus(ctx context.Context, order *models.Order) error {
	updateObj := bson.D{{Key: "status", Value: order.Status}}
	if order.AcceptedAt != nil {
		updateObj = append(updateObj, bson.E{Key: "accepted_at", Value: order.AcceptedAt})
	}
	if order.CompletedAt != nil {
		updateObj = append(updateObj, bson.E{Key: "completed_at", Value: order.CompletedAt})
	}

	result, err := r.collection.UpdateOne(
		ctx,
		bson.M{"order_id": order.OrderID},
		bson.D{{Key: "$set", Value: updateObj}},
	)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *mongoOrderRepository) ListNewest(ctx context.Context, limit int64) ([]models.Order, error) {
	return r.find(ctx, bson.M{}, limit)
}

func (r *mongoOrderRepository) ListBetween(ctx context.Context, from, to time.Time, limit int64) ([]models.Order, error) {
	filter := bson.M{"created_at": bson.M{"$gte": from, "$lte": to}}
	return r.find(ctx, filter, limit)
}

func (r *mongoOrderRepository) find(ctx context.Context, filter bson.M, limit int64) ([]models.Order, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	if limit > 0 {
		opts = opts.SetLimit(limit)
	}

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var orders []models.Order
	if err := cursor.All(ctx, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

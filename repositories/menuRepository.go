package repositories

import (
	"context"
	"errors"

	"family-restaurant/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// ErrNotFound is returned when a document does not exist.
var ErrNotFound = errors.New("not found")

// MenuRepository is the catalog accessor the order core prices against.
type MenuRepository interface {
	GetByID(ctx context.Context, id string) (*models.MenuItem, error)
}

type mongoMenuRepository struct {
	collection *mongo.Collection
}

func NewMenuRepository(collection *mongo.Collection) MenuRepository {
	return &mongoMenuRepository{collection: collection}
}

func (r *mongoMenuRepository) GetByID(ctx context.Context, id string) (*models.MenuItem, error) {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}

	var item models.MenuItem
	err = r.collection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&item)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

package orders

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"clavis/db"
	"clavis/models"
)

var ErrNotFound = errors.New("order not found")

// Store is the persistence collaborator: CRUD over orders keyed by
// (orderID, userID). Errors carry human-readable messages suitable for
// direct display.
type Store interface {
	Create(ctx context.Context, order models.Order) (models.Order, error)
	Get(ctx context.Context, orderID string) (models.Order, error)
	ListByUser(ctx context.Context, userID string) ([]models.Order, error)
	All(ctx context.Context) ([]models.Order, error)
	Update(ctx context.Context, orderID, userID string, order models.Order) error
	Delete(ctx context.Context, orderID, userID string) error
}

// MongoStore backs Store with the orders collection.
type MongoStore struct {
	col *mongo.Collection
}

func NewMongoStore() *MongoStore {
	return &MongoStore{col: db.OrderCollection}
}

func (s *MongoStore) Create(ctx context.Context, order models.Order) (models.Order, error) {
	if _, err := s.col.InsertOne(ctx, order); err != nil {
		return models.Order{}, fmt.Errorf("order creation failed: %w", err)
	}
	return order, nil
}

func (s *MongoStore) Get(ctx context.Context, orderID string) (models.Order, error) {
	var order models.Order
	err := s.col.FindOne(ctx, bson.M{"orderId": orderID}).Decode(&order)
	if err == mongo.ErrNoDocuments {
		return models.Order{}, ErrNotFound
	}
	if err != nil {
		return models.Order{}, fmt.Errorf("order lookup failed: %w", err)
	}
	return order, nil
}

func (s *MongoStore) ListByUser(ctx context.Context, userID string) ([]models.Order, error) {
	return s.find(ctx, bson.M{"userId": userID})
}

func (s *MongoStore) All(ctx context.Context) ([]models.Order, error) {
	return s.find(ctx, bson.M{})
}

func (s *MongoStore) find(ctx context.Context, filter bson.M) ([]models.Order, error) {
	opts := options.Find().SetSort(bson.M{"createdAt": -1})
	cursor, err := s.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("order listing failed: %w", err)
	}
	defer cursor.Close(ctx)

	var list []models.Order
	if err := cursor.All(ctx, &list); err != nil {
		return nil, fmt.Errorf("order decoding failed: %w", err)
	}
	if list == nil {
		list = []models.Order{}
	}
	return list, nil
}

func (s *MongoStore) Update(ctx context.Context, orderID, userID string, order models.Order) error {
	res, err := s.col.ReplaceOne(ctx, bson.M{"orderId": orderID, "userId": userID}, order)
	if err != nil {
		return fmt.Errorf("order update failed: %w", err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *MongoStore) Delete(ctx context.Context, orderID, userID string) error {
	res, err := s.col.DeleteOne(ctx, bson.M{"orderId": orderID, "userId": userID})
	if err != nil {
		return fmt.Errorf("order delete failed: %w", err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

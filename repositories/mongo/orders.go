package mongo

import (
	"context"
	"time"

	"clothing-store/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func (s *Store) CreateOrder(ctx context.Context, order *models.Order) error {
	order.ID = ""
	if order.CreatedAt.IsZero() {
		order.CreatedAt = time.Now().UTC()
	}
	res, err := s.col(ordersCollection).InsertOne(ctx, order)
	if err != nil {
		return translate(err)
	}
	order.ID = insertedHex(res)
	return nil
}

func (s *Store) ListOrdersByEmail(ctx context.Context, email string) ([]models.Order, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cur, err := s.col(ordersCollection).Find(ctx, bson.M{"email": email}, opts)
	if err != nil {
		return nil, err
	}
	orders := []models.Order{}
	if err := cur.All(ctx, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

func (s *Store) ListOrders(ctx context.Context, page, limit int) ([]models.Order, int, error) {
	total, err := s.col(ordersCollection).CountDocuments(ctx, bson.M{})
	if err != nil {
		return nil, 0, err
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetSkip(skip(page, limit)).
		SetLimit(int64(limit))
	cur, err := s.col(ordersCollection).Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, 0, err
	}
	orders := []models.Order{}
	if err := cur.All(ctx, &orders); err != nil {
		return nil, 0, err
	}
	return orders, int(total), nil
}

func (s *Store) CountPlacedOrders(ctx context.Context, email string) (int, error) {
	filter := bson.M{
		"email":  email,
		"status": bson.M{"$nin": bson.A{models.OrderStatusCancelled, models.OrderStatusFailed}},
	}
	n, err := s.col(ordersCollection).CountDocuments(ctx, filter)
	return int(n), err
}

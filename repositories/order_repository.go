package repositories

import (
	"context"

	"gift-orium/config"
	"gift-orium/models"
	"gift-orium/services"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type OrderRepository struct {
	collection *mongo.Collection
}

func NewOrderRepository() *OrderRepository {
	return &OrderRepository{collection: config.DB.Collection("orders")}
}

func (r *OrderRepository) Insert(ctx context.Context, order *models.Order) error {
	result, err := r.collection.InsertOne(ctx, order)
	if err != nil {
		return err
	}
	if id, ok := result.InsertedID.(primitive.ObjectID); ok {
		order.ID = id
	}
	return nil
}

func (r *OrderRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Order, error) {
	var order models.Order
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&order)
	if err == mongo.ErrNoDocuments {
		return nil, services.ErrOrderNotFound
	}
	if err != nil {
		return nil, err
	}
	return &order, nil
}

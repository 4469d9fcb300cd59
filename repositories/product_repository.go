package repositories

import (
	"context"
	"time"

	"gift-orium/config"
	"gift-orium/models"
	"gift-orium/services"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type ProductRepository struct {
	collection *mongo.Collection
}

func NewProductRepository() *ProductRepository {
	return &ProductRepository{collection: config.DB.Collection("products")}
}

func (r *ProductRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Product, error) {
	var product models.Product
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&product)
	if err == mongo.ErrNoDocuments {
		return nil, services.ErrProductNotFound
	}
	if err != nil {
		return nil, err
	}
	return &product, nil
}

// DecrementStock takes qty units in one conditional update; the filter only
// matches while stock >= qty, so concurrent checkouts cannot drive stock
// negative.
func (r *ProductRepository) DecrementStock(ctx context.Context, id primitive.ObjectID, qty int) error {
	result, err := r.collection.UpdateOne(ctx,
		bson.M{"_id": id, "stock": bson.M{"$gte": qty}},
		bson.M{
			"$inc": bson.M{"stock": -qty},
			"$set": bson.M{"updated_at": time.Now()},
		})
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return services.ErrInsufficientStock
	}
	return nil
}

func (r *ProductRepository) IncrementStock(ctx context.Context, id primitive.ObjectID, qty int) error {
	_, err := r.collection.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{
			"$inc": bson.M{"stock": qty},
			"$set": bson.M{"updated_at": time.Now()},
		})
	return err
}

func (r *ProductRepository) UpdateRating(ctx context.Context, id primitive.ObjectID, rating float64, numReviews int) error {
	_, err := r.collection.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{
			"rating":      rating,
			"num_reviews": numReviews,
			"updated_at":  time.Now(),
		}})
	return err
}

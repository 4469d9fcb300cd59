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
	"go.mongodb.org/mongo-driver/mongo/options"
)

type CartRepository struct {
	collection *mongo.Collection
}

func NewCartRepository() *CartRepository {
	return &CartRepository{collection: config.DB.Collection("carts")}
}

// GetOrCreate returns the user's cart, creating an empty one on first
// access.
func (r *CartRepository) GetOrCreate(ctx context.Context, userID primitive.ObjectID) (*models.Cart, error) {
	var cart models.Cart
	err := r.collection.FindOne(ctx, bson.M{"user_id": userID}).Decode(&cart)
	if err == nil {
		return &cart, nil
	}
	if err != mongo.ErrNoDocuments {
		return nil, err
	}

	now := time.Now()
	cart = models.Cart{
		UserID:    userID,
		Items:     []models.CartItem{},
		Total:     0,
		CreatedAt: now,
		UpdatedAt: now,
	}
	result, err := r.collection.InsertOne(ctx, cart)
	if err != nil {
		return nil, err
	}
	if id, ok := result.InsertedID.(primitive.ObjectID); ok {
		cart.ID = id
	}
	return &cart, nil
}

func (r *CartRepository) SaveItems(ctx context.Context, userID primitive.ObjectID, items []models.CartItem, total float64) error {
	_, err := r.collection.UpdateOne(ctx,
		bson.M{"user_id": userID},
		bson.M{"$set": bson.M{
			"items":      items,
			"total":      total,
			"updated_at": time.Now(),
		}})
	return err
}

// BeginCheckout flips the checking_out flag with a conditional update; the
// filter only matches an unmarked cart, so the second of two concurrent
// checkouts observes ErrCheckoutInProgress instead of converting the cart
// again.
func (r *CartRepository) BeginCheckout(ctx context.Context, userID primitive.ObjectID) (*models.Cart, error) {
	var cart models.Cart
	err := r.collection.FindOneAndUpdate(ctx,
		bson.M{"user_id": userID, "checking_out": false},
		bson.M{"$set": bson.M{"checking_out": true, "updated_at": time.Now()}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&cart)

	if err == mongo.ErrNoDocuments {
		count, countErr := r.collection.CountDocuments(ctx, bson.M{"user_id": userID})
		if countErr == nil && count > 0 {
			return nil, services.ErrCheckoutInProgress
		}
		return nil, services.ErrCartEmpty
	}
	if err != nil {
		return nil, err
	}
	return &cart, nil
}

func (r *CartRepository) EndCheckout(ctx context.Context, userID primitive.ObjectID, clear bool) error {
	update := bson.M{
		"checking_out": false,
		"updated_at":   time.Now(),
	}
	if clear {
		update["items"] = []models.CartItem{}
		update["total"] = 0.0
	}
	_, err := r.collection.UpdateOne(ctx, bson.M{"user_id": userID}, bson.M{"$set": update})
	return err
}

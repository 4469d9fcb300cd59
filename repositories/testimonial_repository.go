package repositories

import (
	"context"

	"gift-orium/config"
	"gift-orium/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type TestimonialRepository struct {
	collection *mongo.Collection
}

func NewTestimonialRepository() *TestimonialRepository {
	return &TestimonialRepository{collection: config.DB.Collection("testimonials")}
}

func (r *TestimonialRepository) Insert(ctx context.Context, testimonial *models.Testimonial) error {
	result, err := r.collection.InsertOne(ctx, testimonial)
	if err != nil {
		return err
	}
	if id, ok := result.InsertedID.(primitive.ObjectID); ok {
		testimonial.ID = id
	}
	return nil
}

// ListByProduct matches the single-product and multi-product reference
// fields.
func (r *TestimonialRepository) ListByProduct(ctx context.Context, productID primitive.ObjectID) ([]models.Testimonial, error) {
	filter := bson.M{"$or": []bson.M{
		{"product_id": productID},
		{"product_ids": productID},
	}}

	cursor, err := r.collection.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	testimonials := []models.Testimonial{}
	if err := cursor.All(ctx, &testimonials); err != nil {
		return nil, err
	}
	return testimonials, nil
}

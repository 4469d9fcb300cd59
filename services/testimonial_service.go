package services

import (
	"context"
	"time"

	"gift-orium/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type TestimonialStore interface {
	Insert(ctx context.Context, testimonial *models.Testimonial) error
	ListByProduct(ctx context.Context, productID primitive.ObjectID) ([]models.Testimonial, error)
}

type TestimonialOrderStore interface {
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Order, error)
}

type RatingProductStore interface {
	UpdateRating(ctx context.Context, id primitive.ObjectID, rating float64, numReviews int) error
}

type TestimonialService struct {
	testimonials TestimonialStore
	orders       TestimonialOrderStore
	products     RatingProductStore
}

func NewTestimonialService(testimonials TestimonialStore, orders TestimonialOrderStore, products RatingProductStore) *TestimonialService {
	return &TestimonialService{testimonials: testimonials, orders: orders, products: products}
}

// Create stores a testimonial and recomputes the rating of every product it
// references. When an order reference is supplied the order must belong to
// the submitting user and be delivered; otherwise nothing is written.
func (s *TestimonialService) Create(ctx context.Context, userID primitive.ObjectID, testimonial *models.Testimonial) error {
	productIDs := testimonial.Products()
	if len(productIDs) == 0 {
		return ErrNoProducts
	}

	if testimonial.OrderID != nil {
		order, err := s.orders.FindByID(ctx, *testimonial.OrderID)
		if err != nil {
			return ErrNotAuthorized
		}
		if order.UserID != userID || order.Status != models.OrderStatusDelivered {
			return ErrNotAuthorized
		}
	}

	now := time.Now()
	testimonial.UserID = userID
	testimonial.CreatedAt = now
	testimonial.UpdatedAt = now

	if err := s.testimonials.Insert(ctx, testimonial); err != nil {
		return err
	}

	for _, productID := range productIDs {
		if err := s.RecomputeRating(ctx, productID); err != nil {
			return err
		}
	}
	return nil
}

// RecomputeRating overwrites a product's rating with the arithmetic mean of
// every testimonial referencing it, and its review count with their number.
func (s *TestimonialService) RecomputeRating(ctx context.Context, productID primitive.ObjectID) error {
	testimonials, err := s.testimonials.ListByProduct(ctx, productID)
	if err != nil {
		return err
	}

	if len(testimonials) == 0 {
		return s.products.UpdateRating(ctx, productID, 0, 0)
	}

	sum := 0
	for _, t := range testimonials {
		sum += t.Rating
	}
	mean := float64(sum) / float64(len(testimonials))

	return s.products.UpdateRating(ctx, productID, mean, len(testimonials))
}

package services

import (
	"context"
	"sync"
	"testing"

	"gift-orium/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type fakeTestimonialStore struct {
	mu           sync.Mutex
	testimonials []*models.Testimonial
}

func (s *fakeTestimonialStore) Insert(_ context.Context, testimonial *models.Testimonial) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	testimonial.ID = primitive.NewObjectID()
	s.testimonials = append(s.testimonials, testimonial)
	return nil
}

func (s *fakeTestimonialStore) ListByProduct(_ context.Context, productID primitive.ObjectID) ([]models.Testimonial, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	matched := []models.Testimonial{}
	for _, t := range s.testimonials {
		for _, id := range t.Products() {
			if id == productID {
				matched = append(matched, *t)
				break
			}
		}
	}
	return matched, nil
}

func (s *fakeTestimonialStore) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.testimonials)
}

func testimonialFor(productID primitive.ObjectID, rating int) *models.Testimonial {
	return &models.Testimonial{
		Name:      "Casey",
		Content:   "Lovely gift",
		Rating:    rating,
		ProductID: &productID,
	}
}

func TestCreateRecomputesRatingMean(t *testing.T) {
	productID := primitive.NewObjectID()
	userID := primitive.NewObjectID()

	products := newFakeProductStore(&models.Product{ID: productID, Name: "Globe", Price: 40, Stock: 5})
	store := &fakeTestimonialStore{}
	svc := NewTestimonialService(store, &fakeOrderStore{}, products)

	for _, rating := range []int{5, 3, 4} {
		require.NoError(t, svc.Create(context.Background(), userID, testimonialFor(productID, rating)))
	}

	product, err := products.FindByID(context.Background(), productID)
	require.NoError(t, err)
	assert.Equal(t, 4.0, product.Rating)
	assert.Equal(t, 3, product.NumReviews)
}

func TestCreateRequiresProductReference(t *testing.T) {
	svc := NewTestimonialService(&fakeTestimonialStore{}, &fakeOrderStore{}, newFakeProductStore())
	err := svc.Create(context.Background(), primitive.NewObjectID(), &models.Testimonial{
		Name: "Casey", Content: "No product", Rating: 5,
	})
	assert.ErrorIs(t, err, ErrNoProducts)
}

func TestCreateRejectsForeignOrder(t *testing.T) {
	productID := primitive.NewObjectID()
	owner := primitive.NewObjectID()
	submitter := primitive.NewObjectID()

	orders := &fakeOrderStore{}
	order := &models.Order{UserID: owner, Status: models.OrderStatusDelivered}
	require.NoError(t, orders.Insert(context.Background(), order))

	store := &fakeTestimonialStore{}
	products := newFakeProductStore(&models.Product{ID: productID, Name: "Clock", Price: 55, Stock: 2})
	svc := NewTestimonialService(store, orders, products)

	testimonial := testimonialFor(productID, 5)
	testimonial.OrderID = &order.ID

	err := svc.Create(context.Background(), submitter, testimonial)
	assert.ErrorIs(t, err, ErrNotAuthorized)
	assert.Equal(t, 0, store.count())

	product, _ := products.FindByID(context.Background(), productID)
	assert.Equal(t, 0.0, product.Rating)
}

func TestCreateRejectsUndeliveredOrder(t *testing.T) {
	productID := primitive.NewObjectID()
	userID := primitive.NewObjectID()

	orders := &fakeOrderStore{}
	order := &models.Order{UserID: userID, Status: models.OrderStatusShipped}
	require.NoError(t, orders.Insert(context.Background(), order))

	store := &fakeTestimonialStore{}
	svc := NewTestimonialService(store, orders, newFakeProductStore(&models.Product{ID: productID}))

	testimonial := testimonialFor(productID, 4)
	testimonial.OrderID = &order.ID

	err := svc.Create(context.Background(), userID, testimonial)
	assert.ErrorIs(t, err, ErrNotAuthorized)
	assert.Equal(t, 0, store.count())
}

func TestCreateAcceptsOwnDeliveredOrder(t *testing.T) {
	productID := primitive.NewObjectID()
	userID := primitive.NewObjectID()

	orders := &fakeOrderStore{}
	order := &models.Order{UserID: userID, Status: models.OrderStatusDelivered}
	require.NoError(t, orders.Insert(context.Background(), order))

	store := &fakeTestimonialStore{}
	products := newFakeProductStore(&models.Product{ID: productID, Name: "Diary", Price: 14, Stock: 8})
	svc := NewTestimonialService(store, orders, products)

	testimonial := testimonialFor(productID, 5)
	testimonial.OrderID = &order.ID

	require.NoError(t, svc.Create(context.Background(), userID, testimonial))
	assert.Equal(t, 1, store.count())
	assert.Equal(t, userID, testimonial.UserID)
}

func TestCreateMultiProductUpdatesEveryRating(t *testing.T) {
	first := primitive.NewObjectID()
	second := primitive.NewObjectID()
	userID := primitive.NewObjectID()

	products := newFakeProductStore(
		&models.Product{ID: first, Name: "Soap Set", Price: 9, Stock: 20},
		&models.Product{ID: second, Name: "Towel", Price: 11, Stock: 20},
	)
	svc := NewTestimonialService(&fakeTestimonialStore{}, &fakeOrderStore{}, products)

	err := svc.Create(context.Background(), userID, &models.Testimonial{
		Name:       "Casey",
		Content:    "Great bundle",
		Rating:     4,
		ProductIDs: []primitive.ObjectID{first, second},
	})
	require.NoError(t, err)

	for _, id := range []primitive.ObjectID{first, second} {
		product, err := products.FindByID(context.Background(), id)
		require.NoError(t, err)
		assert.Equal(t, 4.0, product.Rating)
		assert.Equal(t, 1, product.NumReviews)
	}
}

func TestRecomputeRatingNoTestimonials(t *testing.T) {
	productID := primitive.NewObjectID()
	products := newFakeProductStore(&models.Product{ID: productID, Rating: 4.5, NumReviews: 7})
	svc := NewTestimonialService(&fakeTestimonialStore{}, &fakeOrderStore{}, products)

	require.NoError(t, svc.RecomputeRating(context.Background(), productID))

	product, _ := products.FindByID(context.Background(), productID)
	assert.Equal(t, 0.0, product.Rating)
	assert.Equal(t, 0, product.NumReviews)
}

package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestEffectivePrice(t *testing.T) {
	discount := 15.0
	tooHigh := 30.0
	zero := 0.0

	tests := []struct {
		name     string
		product  Product
		expected float64
	}{
		{"no discount", Product{Price: 20}, 20},
		{"valid discount", Product{Price: 20, DiscountPrice: &discount}, 15},
		{"discount above price ignored", Product{Price: 20, DiscountPrice: &tooHigh}, 20},
		{"zero discount ignored", Product{Price: 20, DiscountPrice: &zero}, 20},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.product.EffectivePrice())
		})
	}
}

func TestIsValidCategory(t *testing.T) {
	assert.True(t, IsValidCategory("birthday"))
	assert.True(t, IsValidCategory("home-decor"))
	assert.False(t, IsValidCategory("vehicles"))
	assert.False(t, IsValidCategory(""))
}

func TestCartComputeTotal(t *testing.T) {
	cart := Cart{Items: []CartItem{
		{ProductID: primitive.NewObjectID(), Quantity: 2, Price: 12.5},
		{ProductID: primitive.NewObjectID(), Quantity: 1, Price: 30},
	}}
	assert.Equal(t, 55.0, cart.ComputeTotal())

	empty := Cart{}
	assert.Equal(t, 0.0, empty.ComputeTotal())
}

func TestTestimonialProductsDeduplicates(t *testing.T) {
	shared := primitive.NewObjectID()
	other := primitive.NewObjectID()

	testimonial := Testimonial{
		ProductID:  &shared,
		ProductIDs: []primitive.ObjectID{shared, other, other},
	}

	products := testimonial.Products()
	assert.Equal(t, []primitive.ObjectID{shared, other}, products)
}

func TestTestimonialProductsEmpty(t *testing.T) {
	testimonial := Testimonial{}
	assert.Empty(t, testimonial.Products())
}

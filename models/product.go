package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Product struct {
	ID            primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Name          string             `json:"name" bson:"name"`
	Description   string             `json:"description" bson:"description"`
	Price         float64            `json:"price" bson:"price"`
	DiscountPrice *float64           `json:"discount_price,omitempty" bson:"discount_price,omitempty"`
	Category      string             `json:"category" bson:"category"`
	ImageURL      string             `json:"image_url" bson:"image_url"`
	Images        []string           `json:"images" bson:"images"`
	Stock         int                `json:"stock" bson:"stock"`
	Rating        float64            `json:"rating" bson:"rating"`
	NumReviews    int                `json:"num_reviews" bson:"num_reviews"`
	Featured      bool               `json:"featured" bson:"featured"`
	Tags          []string           `json:"tags" bson:"tags"`
	CreatedAt     time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt     time.Time          `json:"updated_at" bson:"updated_at"`
}

var productCategories = map[string]bool{
	"birthday":     true,
	"anniversary":  true,
	"wedding":      true,
	"home-decor":   true,
	"personalized": true,
	"toys":         true,
	"jewellery":    true,
	"stationery":   true,
}

func IsValidCategory(category string) bool {
	return productCategories[category]
}

// EffectivePrice is what a buyer pays right now: the discount price when one
// is set, otherwise the list price.
func (p *Product) EffectivePrice() float64 {
	if p.DiscountPrice != nil && *p.DiscountPrice > 0 && *p.DiscountPrice < p.Price {
		return *p.DiscountPrice
	}
	return p.Price
}

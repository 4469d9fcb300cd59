package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type CartItem struct {
	ProductID primitive.ObjectID `json:"product_id" bson:"product_id"`
	Quantity  int                `json:"quantity" bson:"quantity"`
	// Price is captured when the item is added; later product price changes
	// do not alter an already cart-resident line.
	Price   float64  `json:"price" bson:"price"`
	Product *Product `json:"product,omitempty" bson:"-"`
}

type Cart struct {
	ID     primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	UserID primitive.ObjectID `json:"user_id" bson:"user_id"`
	Items  []CartItem         `json:"items" bson:"items"`
	Total  float64            `json:"total" bson:"total"`
	// CheckingOut is set atomically at the start of checkout so a duplicate
	// submission cannot convert the same cart twice.
	CheckingOut bool      `json:"-" bson:"checking_out"`
	CreatedAt   time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" bson:"updated_at"`
}

func (c *Cart) ComputeTotal() float64 {
	total := 0.0
	for _, item := range c.Items {
		total += item.Price * float64(item.Quantity)
	}
	return total
}

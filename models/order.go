package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	OrderStatusPending    = "pending"
	OrderStatusProcessing = "processing"
	OrderStatusShipped    = "shipped"
	OrderStatusDelivered  = "delivered"
	OrderStatusCancelled  = "cancelled"
)

type OrderItem struct {
	ProductID primitive.ObjectID `json:"product_id" bson:"product_id"`
	Name      string             `json:"name" bson:"name"`
	ImageURL  string             `json:"image_url" bson:"image_url"`
	Quantity  int                `json:"quantity" bson:"quantity"`
	Price     float64            `json:"price" bson:"price"`
}

type Order struct {
	ID              primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	OrderNumber     string             `json:"order_number" bson:"order_number"`
	UserID          primitive.ObjectID `json:"user_id" bson:"user_id"`
	Items           []OrderItem        `json:"items" bson:"items"`
	TotalAmount     float64            `json:"total_amount" bson:"total_amount"`
	ShippingAddress Address            `json:"shipping_address" bson:"shipping_address"`
	PaymentMethod   string             `json:"payment_method" bson:"payment_method"`
	PaymentStatus   string             `json:"payment_status" bson:"payment_status"`
	Status          string             `json:"status" bson:"status"`
	TrackingNumber  string             `json:"tracking_number,omitempty" bson:"tracking_number,omitempty"`
	SellerNotes     string             `json:"seller_notes,omitempty" bson:"seller_notes,omitempty"`
	CreatedAt       time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt       time.Time          `json:"updated_at" bson:"updated_at"`
}

// orderTransitions is the enforced status machine: forward fulfilment steps
// only, with cancellation allowed from any non-terminal state.
var orderTransitions = map[string][]string{
	OrderStatusPending:    {OrderStatusProcessing, OrderStatusCancelled},
	OrderStatusProcessing: {OrderStatusShipped, OrderStatusCancelled},
	OrderStatusShipped:    {OrderStatusDelivered, OrderStatusCancelled},
	OrderStatusDelivered:  {},
	OrderStatusCancelled:  {},
}

func IsValidOrderStatus(status string) bool {
	_, ok := orderTransitions[status]
	return ok
}

func CanTransitionOrderStatus(from, to string) bool {
	for _, next := range orderTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

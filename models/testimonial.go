package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Testimonial struct {
	ID      primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	UserID  primitive.ObjectID `json:"user_id" bson:"user_id"`
	Name    string             `json:"name" bson:"name"`
	Role    string             `json:"role,omitempty" bson:"role,omitempty"`
	Content string             `json:"content" bson:"content"`
	Rating  int                `json:"rating" bson:"rating"`
	// A testimonial references one product or several; at least one of the
	// two fields is always populated.
	ProductID  *primitive.ObjectID  `json:"product_id,omitempty" bson:"product_id,omitempty"`
	ProductIDs []primitive.ObjectID `json:"product_ids,omitempty" bson:"product_ids,omitempty"`
	OrderID    *primitive.ObjectID  `json:"order_id,omitempty" bson:"order_id,omitempty"`
	AvatarURL  string               `json:"avatar_url,omitempty" bson:"avatar_url,omitempty"`
	Featured   bool                 `json:"featured" bson:"featured"`
	CreatedAt  time.Time            `json:"created_at" bson:"created_at"`
	UpdatedAt  time.Time            `json:"updated_at" bson:"updated_at"`
}

// Products returns every product the testimonial references, deduplicated.
func (t *Testimonial) Products() []primitive.ObjectID {
	seen := map[primitive.ObjectID]bool{}
	ids := []primitive.ObjectID{}
	if t.ProductID != nil && !t.ProductID.IsZero() {
		seen[*t.ProductID] = true
		ids = append(ids, *t.ProductID)
	}
	for _, id := range t.ProductIDs {
		if id.IsZero() || seen[id] {
			continue
		}
		seen[id] = true
		ids = append(ids, id)
	}
	return ids
}

package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	BlogStatusDraft     = "draft"
	BlogStatusPublished = "published"
)

type BlogPost struct {
	ID            primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Title         string             `json:"title" bson:"title"`
	Slug          string             `json:"slug" bson:"slug"`
	Content       string             `json:"content" bson:"content"`
	Summary       string             `json:"summary" bson:"summary"`
	AuthorID      primitive.ObjectID `json:"author_id" bson:"author_id"`
	FeaturedImage string             `json:"featured_image,omitempty" bson:"featured_image,omitempty"`
	ContentImages []string           `json:"content_images" bson:"content_images"`
	Tags          []string           `json:"tags" bson:"tags"`
	Status        string             `json:"status" bson:"status"`
	Featured      bool               `json:"featured" bson:"featured"`
	CreatedAt     time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt     time.Time          `json:"updated_at" bson:"updated_at"`
}

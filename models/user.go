package models

import (
	"context"
	"log"
	"time"

	"gift-orium/config"
	"gift-orium/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

type Address struct {
	Street     string `json:"street,omitempty" bson:"street,omitempty"`
	City       string `json:"city,omitempty" bson:"city,omitempty"`
	PostalCode string `json:"postal_code,omitempty" bson:"postal_code,omitempty"`
	Country    string `json:"country,omitempty" bson:"country,omitempty"`
}

type User struct {
	ID        primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Name      string             `json:"name" bson:"name"`
	Email     string             `json:"email" bson:"email"`
	Password  string             `json:"-" bson:"password"`
	Role      string             `json:"role" bson:"role"`
	Address   *Address           `json:"address,omitempty" bson:"address,omitempty"`
	AvatarURL string             `json:"avatar_url,omitempty" bson:"avatar_url,omitempty"`
	CreatedAt time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time          `json:"updated_at" bson:"updated_at"`
}

// EnsureAdminUser creates the bootstrap admin account from ADMIN_EMAIL and
// ADMIN_PASSWORD when no user with that email exists yet.
func EnsureAdminUser() {
	email := config.AppConfig.AdminEmail
	password := config.AppConfig.AdminPassword
	if email == "" || password == "" {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	users := config.DB.Collection("users")

	var existing User
	err := users.FindOne(ctx, bson.M{"email": email}).Decode(&existing)
	if err == nil {
		return
	}
	if err != mongo.ErrNoDocuments {
		log.Println("Admin bootstrap lookup failed:", err)
		return
	}

	hash, err := utils.HashPassword(password)
	if err != nil {
		log.Println("Admin bootstrap hash failed:", err)
		return
	}

	now := time.Now()
	_, err = users.InsertOne(ctx, User{
		Name:      "Administrator",
		Email:     email,
		Password:  hash,
		Role:      RoleAdmin,
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		log.Println("Admin bootstrap insert failed:", err)
		return
	}

	log.Printf("Admin account created for %s", email)
}

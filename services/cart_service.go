package services

import (
	"context"
	"time"

	"gift-orium/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type CartProductStore interface {
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Product, error)
}

type CartStore interface {
	GetOrCreate(ctx context.Context, userID primitive.ObjectID) (*models.Cart, error)
	SaveItems(ctx context.Context, userID primitive.ObjectID, items []models.CartItem, total float64) error
}

type CartService struct {
	products CartProductStore
	carts    CartStore
}

func NewCartService(products CartProductStore, carts CartStore) *CartService {
	return &CartService{products: products, carts: carts}
}

func (s *CartService) Get(ctx context.Context, userID primitive.ObjectID) (*models.Cart, error) {
	return s.carts.GetOrCreate(ctx, userID)
}

// AddItem appends a line item, capturing the product's effective price at
// add time. Adding a product already in the cart increments its quantity;
// the originally captured price is kept.
func (s *CartService) AddItem(ctx context.Context, userID, productID primitive.ObjectID, quantity int) (*models.Cart, error) {
	product, err := s.products.FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}

	cart, err := s.carts.GetOrCreate(ctx, userID)
	if err != nil {
		return nil, err
	}

	found := false
	for i := range cart.Items {
		if cart.Items[i].ProductID == productID {
			newQuantity := cart.Items[i].Quantity + quantity
			if product.Stock < newQuantity {
				return nil, ErrInsufficientStock
			}
			cart.Items[i].Quantity = newQuantity
			found = true
			break
		}
	}

	if !found {
		if product.Stock < quantity {
			return nil, ErrInsufficientStock
		}
		cart.Items = append(cart.Items, models.CartItem{
			ProductID: productID,
			Quantity:  quantity,
			Price:     product.EffectivePrice(),
		})
	}

	cart.Total = cart.ComputeTotal()
	cart.UpdatedAt = time.Now()
	if err := s.carts.SaveItems(ctx, userID, cart.Items, cart.Total); err != nil {
		return nil, err
	}
	return cart, nil
}

// UpdateQuantity sets a line item's quantity; a quantity of zero or less
// removes the line instead.
func (s *CartService) UpdateQuantity(ctx context.Context, userID, productID primitive.ObjectID, quantity int) (*models.Cart, error) {
	cart, err := s.carts.GetOrCreate(ctx, userID)
	if err != nil {
		return nil, err
	}

	idx := -1
	for i := range cart.Items {
		if cart.Items[i].ProductID == productID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, ErrCartItemNotFound
	}

	if quantity <= 0 {
		cart.Items = append(cart.Items[:idx], cart.Items[idx+1:]...)
	} else {
		product, err := s.products.FindByID(ctx, productID)
		if err != nil {
			return nil, err
		}
		if product.Stock < quantity {
			return nil, ErrInsufficientStock
		}
		cart.Items[idx].Quantity = quantity
	}

	cart.Total = cart.ComputeTotal()
	cart.UpdatedAt = time.Now()
	if err := s.carts.SaveItems(ctx, userID, cart.Items, cart.Total); err != nil {
		return nil, err
	}
	return cart, nil
}

func (s *CartService) RemoveItem(ctx context.Context, userID, productID primitive.ObjectID) (*models.Cart, error) {
	return s.UpdateQuantity(ctx, userID, productID, 0)
}

func (s *CartService) Clear(ctx context.Context, userID primitive.ObjectID) error {
	if _, err := s.carts.GetOrCreate(ctx, userID); err != nil {
		return err
	}
	return s.carts.SaveItems(ctx, userID, []models.CartItem{}, 0)
}

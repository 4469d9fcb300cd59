package services

import (
	"context"
	"testing"

	"gift-orium/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestAddItemCapturesPriceAtAddTime(t *testing.T) {
	productID := primitive.NewObjectID()
	userID := primitive.NewObjectID()

	products := newFakeProductStore(&models.Product{ID: productID, Name: "Bracelet", Price: 35, Stock: 10})
	carts := newFakeCartStore()
	svc := NewCartService(products, carts)

	cart, err := svc.AddItem(context.Background(), userID, productID, 1)
	require.NoError(t, err)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, 35.0, cart.Items[0].Price)

	// a later price change must not touch the line already in the cart
	products.mu.Lock()
	products.products[productID].Price = 50
	products.mu.Unlock()

	cart, err = svc.Get(context.Background(), userID)
	require.NoError(t, err)
	assert.Equal(t, 35.0, cart.Items[0].Price)
	assert.Equal(t, 35.0, cart.Total)
}

func TestAddItemUsesDiscountPrice(t *testing.T) {
	productID := primitive.NewObjectID()
	userID := primitive.NewObjectID()
	discount := 20.0

	products := newFakeProductStore(&models.Product{
		ID: productID, Name: "Tea Set", Price: 30, DiscountPrice: &discount, Stock: 5,
	})
	svc := NewCartService(products, newFakeCartStore())

	cart, err := svc.AddItem(context.Background(), userID, productID, 2)
	require.NoError(t, err)
	assert.Equal(t, 20.0, cart.Items[0].Price)
	assert.Equal(t, 40.0, cart.Total)
}

func TestAddItemIncrementsExistingLine(t *testing.T) {
	productID := primitive.NewObjectID()
	userID := primitive.NewObjectID()

	products := newFakeProductStore(&models.Product{ID: productID, Name: "Notebook", Price: 8, Stock: 10})
	svc := NewCartService(products, newFakeCartStore())

	_, err := svc.AddItem(context.Background(), userID, productID, 2)
	require.NoError(t, err)
	cart, err := svc.AddItem(context.Background(), userID, productID, 3)
	require.NoError(t, err)

	require.Len(t, cart.Items, 1)
	assert.Equal(t, 5, cart.Items[0].Quantity)
	assert.Equal(t, 40.0, cart.Total)
}

func TestAddItemRejectsInsufficientStock(t *testing.T) {
	productID := primitive.NewObjectID()
	userID := primitive.NewObjectID()

	products := newFakeProductStore(&models.Product{ID: productID, Name: "Lamp", Price: 22, Stock: 2})
	svc := NewCartService(products, newFakeCartStore())

	_, err := svc.AddItem(context.Background(), userID, productID, 2)
	require.NoError(t, err)

	// the resulting quantity, not the increment, is checked against stock
	_, err = svc.AddItem(context.Background(), userID, productID, 1)
	assert.ErrorIs(t, err, ErrInsufficientStock)
}

func TestAddItemUnknownProduct(t *testing.T) {
	svc := NewCartService(newFakeProductStore(), newFakeCartStore())
	_, err := svc.AddItem(context.Background(), primitive.NewObjectID(), primitive.NewObjectID(), 1)
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestUpdateQuantityZeroRemovesLine(t *testing.T) {
	productID := primitive.NewObjectID()
	userID := primitive.NewObjectID()

	products := newFakeProductStore(&models.Product{ID: productID, Name: "Poster", Price: 12, Stock: 10})
	svc := NewCartService(products, newFakeCartStore())

	_, err := svc.AddItem(context.Background(), userID, productID, 2)
	require.NoError(t, err)

	cart, err := svc.UpdateQuantity(context.Background(), userID, productID, 0)
	require.NoError(t, err)
	assert.Empty(t, cart.Items)
	assert.Equal(t, 0.0, cart.Total)
}

func TestUpdateQuantityMissingLine(t *testing.T) {
	svc := NewCartService(newFakeProductStore(), newFakeCartStore())
	_, err := svc.UpdateQuantity(context.Background(), primitive.NewObjectID(), primitive.NewObjectID(), 3)
	assert.ErrorIs(t, err, ErrCartItemNotFound)
}

func TestClearEmptiesCart(t *testing.T) {
	productID := primitive.NewObjectID()
	userID := primitive.NewObjectID()

	products := newFakeProductStore(&models.Product{ID: productID, Name: "Puzzle", Price: 18, Stock: 10})
	carts := newFakeCartStore()
	svc := NewCartService(products, carts)

	_, err := svc.AddItem(context.Background(), userID, productID, 4)
	require.NoError(t, err)

	require.NoError(t, svc.Clear(context.Background(), userID))

	cart, err := svc.Get(context.Background(), userID)
	require.NoError(t, err)
	assert.Empty(t, cart.Items)
	assert.Equal(t, 0.0, cart.Total)
}

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

type fakeProductStore struct {
	mu       sync.Mutex
	products map[primitive.ObjectID]*models.Product
}

func newFakeProductStore(products ...*models.Product) *fakeProductStore {
	s := &fakeProductStore{products: map[primitive.ObjectID]*models.Product{}}
	for _, p := range products {
		s.products[p.ID] = p
	}
	return s
}

func (s *fakeProductStore) FindByID(_ context.Context, id primitive.ObjectID) (*models.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.products[id]
	if !ok {
		return nil, ErrProductNotFound
	}
	copied := *p
	return &copied, nil
}

func (s *fakeProductStore) DecrementStock(_ context.Context, id primitive.ObjectID, qty int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.products[id]
	if !ok || p.Stock < qty {
		return ErrInsufficientStock
	}
	p.Stock -= qty
	return nil
}

func (s *fakeProductStore) IncrementStock(_ context.Context, id primitive.ObjectID, qty int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if p, ok := s.products[id]; ok {
		p.Stock += qty
	}
	return nil
}

func (s *fakeProductStore) UpdateRating(_ context.Context, id primitive.ObjectID, rating float64, numReviews int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if p, ok := s.products[id]; ok {
		p.Rating = rating
		p.NumReviews = numReviews
	}
	return nil
}

func (s *fakeProductStore) stock(id primitive.ObjectID) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.products[id].Stock
}

type fakeCartStore struct {
	mu    sync.Mutex
	carts map[primitive.ObjectID]*models.Cart
}

func newFakeCartStore() *fakeCartStore {
	return &fakeCartStore{carts: map[primitive.ObjectID]*models.Cart{}}
}

func (s *fakeCartStore) GetOrCreate(_ context.Context, userID primitive.ObjectID) (*models.Cart, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cart, ok := s.carts[userID]
	if !ok {
		cart = &models.Cart{UserID: userID, Items: []models.CartItem{}}
		s.carts[userID] = cart
	}
	copied := *cart
	copied.Items = append([]models.CartItem{}, cart.Items...)
	return &copied, nil
}

func (s *fakeCartStore) SaveItems(_ context.Context, userID primitive.ObjectID, items []models.CartItem, total float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cart, ok := s.carts[userID]
	if !ok {
		cart = &models.Cart{UserID: userID}
		s.carts[userID] = cart
	}
	cart.Items = append([]models.CartItem{}, items...)
	cart.Total = total
	return nil
}

func (s *fakeCartStore) BeginCheckout(_ context.Context, userID primitive.ObjectID) (*models.Cart, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cart, ok := s.carts[userID]
	if !ok {
		return nil, ErrCartEmpty
	}
	if cart.CheckingOut {
		return nil, ErrCheckoutInProgress
	}
	cart.CheckingOut = true
	copied := *cart
	copied.Items = append([]models.CartItem{}, cart.Items...)
	return &copied, nil
}

func (s *fakeCartStore) EndCheckout(_ context.Context, userID primitive.ObjectID, clear bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cart, ok := s.carts[userID]
	if !ok {
		return nil
	}
	cart.CheckingOut = false
	if clear {
		cart.Items = []models.CartItem{}
		cart.Total = 0
	}
	return nil
}

func (s *fakeCartStore) put(userID primitive.ObjectID, items ...models.CartItem) {
	s.mu.Lock()
	defer s.mu.Unlock()
	total := 0.0
	for _, item := range items {
		total += item.Price * float64(item.Quantity)
	}
	s.carts[userID] = &models.Cart{UserID: userID, Items: items, Total: total}
}

type fakeOrderStore struct {
	mu         sync.Mutex
	orders     []*models.Order
	failInsert bool
}

func (s *fakeOrderStore) Insert(_ context.Context, order *models.Order) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failInsert {
		return assert.AnError
	}
	order.ID = primitive.NewObjectID()
	s.orders = append(s.orders, order)
	return nil
}

func (s *fakeOrderStore) FindByID(_ context.Context, id primitive.ObjectID) (*models.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, order := range s.orders {
		if order.ID == id {
			return order, nil
		}
	}
	return nil, ErrOrderNotFound
}

func (s *fakeOrderStore) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.orders)
}

func placeRequest() models.PlaceOrderRequest {
	return models.PlaceOrderRequest{
		ShippingAddress: models.Address{Street: "1 Main St", City: "Springfield"},
		PaymentMethod:   "card",
	}
}

func TestCheckoutCreatesOrderFromCartSnapshot(t *testing.T) {
	productID := primitive.NewObjectID()
	userID := primitive.NewObjectID()

	products := newFakeProductStore(&models.Product{
		ID: productID, Name: "Scented Candle", ImageURL: "candle.jpg", Price: 25, Stock: 10,
	})
	carts := newFakeCartStore()
	// price captured at add time, below the current product price
	carts.put(userID, models.CartItem{ProductID: productID, Quantity: 2, Price: 20})
	orders := &fakeOrderStore{}

	svc := NewOrderService(products, carts, orders, nil)
	order, err := svc.Checkout(context.Background(), userID, "", placeRequest())
	require.NoError(t, err)

	assert.Equal(t, models.OrderStatusPending, order.Status)
	assert.Equal(t, "unpaid", order.PaymentStatus)
	assert.NotEmpty(t, order.OrderNumber)
	require.Len(t, order.Items, 1)
	assert.Equal(t, "Scented Candle", order.Items[0].Name)
	assert.Equal(t, 20.0, order.Items[0].Price)
	assert.Equal(t, 40.0, order.TotalAmount)

	assert.Equal(t, 8, products.stock(productID))

	cart, err := carts.GetOrCreate(context.Background(), userID)
	require.NoError(t, err)
	assert.Empty(t, cart.Items)
	assert.False(t, cart.CheckingOut)
}

func TestCheckoutEmptyCart(t *testing.T) {
	userID := primitive.NewObjectID()
	carts := newFakeCartStore()
	carts.put(userID)

	svc := NewOrderService(newFakeProductStore(), carts, &fakeOrderStore{}, nil)
	_, err := svc.Checkout(context.Background(), userID, "", placeRequest())
	assert.ErrorIs(t, err, ErrCartEmpty)

	cart, _ := carts.GetOrCreate(context.Background(), userID)
	assert.False(t, cart.CheckingOut)
}

func TestCheckoutDuplicateSubmission(t *testing.T) {
	productID := primitive.NewObjectID()
	userID := primitive.NewObjectID()

	products := newFakeProductStore(&models.Product{ID: productID, Name: "Mug", Price: 10, Stock: 5})
	carts := newFakeCartStore()
	carts.put(userID, models.CartItem{ProductID: productID, Quantity: 1, Price: 10})
	carts.carts[userID].CheckingOut = true

	svc := NewOrderService(products, carts, &fakeOrderStore{}, nil)
	_, err := svc.Checkout(context.Background(), userID, "", placeRequest())
	assert.ErrorIs(t, err, ErrCheckoutInProgress)
}

// Two buyers race for the last unit; exactly one order may be created and
// stock must end at zero, never below.
func TestCheckoutConcurrentLastUnit(t *testing.T) {
	productID := primitive.NewObjectID()
	products := newFakeProductStore(&models.Product{ID: productID, Name: "Music Box", Price: 50, Stock: 1})
	carts := newFakeCartStore()
	orders := &fakeOrderStore{}

	buyers := []primitive.ObjectID{primitive.NewObjectID(), primitive.NewObjectID()}
	for _, userID := range buyers {
		carts.put(userID, models.CartItem{ProductID: productID, Quantity: 1, Price: 50})
	}

	svc := NewOrderService(products, carts, orders, nil)

	var wg sync.WaitGroup
	errs := make([]error, len(buyers))
	for i, userID := range buyers {
		wg.Add(1)
		go func(i int, userID primitive.ObjectID) {
			defer wg.Done()
			_, errs[i] = svc.Checkout(context.Background(), userID, "", placeRequest())
		}(i, userID)
	}
	wg.Wait()

	succeeded := 0
	for _, err := range errs {
		if err == nil {
			succeeded++
		} else {
			assert.ErrorIs(t, err, ErrInsufficientStock)
		}
	}
	assert.Equal(t, 1, succeeded)
	assert.Equal(t, 1, orders.count())
	assert.Equal(t, 0, products.stock(productID))
}

// A failing line rolls back every decrement already applied and leaves the
// cart intact for another attempt.
func TestCheckoutRollbackOnInsufficientStock(t *testing.T) {
	okID := primitive.NewObjectID()
	scarceID := primitive.NewObjectID()
	userID := primitive.NewObjectID()

	products := newFakeProductStore(
		&models.Product{ID: okID, Name: "Photo Frame", Price: 15, Stock: 10},
		&models.Product{ID: scarceID, Name: "Gift Basket", Price: 60, Stock: 1},
	)
	carts := newFakeCartStore()
	carts.put(userID,
		models.CartItem{ProductID: okID, Quantity: 2, Price: 15},
		models.CartItem{ProductID: scarceID, Quantity: 3, Price: 60},
	)
	orders := &fakeOrderStore{}

	svc := NewOrderService(products, carts, orders, nil)
	_, err := svc.Checkout(context.Background(), userID, "", placeRequest())

	require.ErrorIs(t, err, ErrInsufficientStock)
	assert.Contains(t, err.Error(), "Gift Basket")
	assert.Equal(t, 0, orders.count())
	assert.Equal(t, 10, products.stock(okID))
	assert.Equal(t, 1, products.stock(scarceID))

	cart, _ := carts.GetOrCreate(context.Background(), userID)
	assert.Len(t, cart.Items, 2)
	assert.False(t, cart.CheckingOut)
}

func TestCheckoutRollbackOnInsertFailure(t *testing.T) {
	productID := primitive.NewObjectID()
	userID := primitive.NewObjectID()

	products := newFakeProductStore(&models.Product{ID: productID, Name: "Teddy Bear", Price: 30, Stock: 4})
	carts := newFakeCartStore()
	carts.put(userID, models.CartItem{ProductID: productID, Quantity: 2, Price: 30})
	orders := &fakeOrderStore{failInsert: true}

	svc := NewOrderService(products, carts, orders, nil)
	_, err := svc.Checkout(context.Background(), userID, "", placeRequest())

	require.Error(t, err)
	assert.Equal(t, 4, products.stock(productID))

	cart, _ := carts.GetOrCreate(context.Background(), userID)
	assert.Len(t, cart.Items, 1)
	assert.False(t, cart.CheckingOut)
}

type recordingMailer struct {
	mu     sync.Mutex
	sentTo []string
}

func (m *recordingMailer) SendOrderConfirmationEmail(toEmail, orderNumber string, total float64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sentTo = append(m.sentTo, toEmail)
	return nil
}

func TestCheckoutSendsConfirmationEmail(t *testing.T) {
	productID := primitive.NewObjectID()
	userID := primitive.NewObjectID()

	products := newFakeProductStore(&models.Product{ID: productID, Name: "Vase", Price: 45, Stock: 3})
	carts := newFakeCartStore()
	carts.put(userID, models.CartItem{ProductID: productID, Quantity: 1, Price: 45})
	mailer := &recordingMailer{}

	svc := NewOrderService(products, carts, &fakeOrderStore{}, mailer)
	_, err := svc.Checkout(context.Background(), userID, "buyer@example.com", placeRequest())
	require.NoError(t, err)

	assert.Equal(t, []string{"buyer@example.com"}, mailer.sentTo)
}

package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"gift-orium/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type OrderProductStore interface {
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Product, error)
	// DecrementStock subtracts qty only when the product still has at least
	// qty units, in a single conditional update; it reports
	// ErrInsufficientStock otherwise.
	DecrementStock(ctx context.Context, id primitive.ObjectID, qty int) error
	IncrementStock(ctx context.Context, id primitive.ObjectID, qty int) error
}

type CheckoutCartStore interface {
	// BeginCheckout atomically marks the user's cart as checking-out and
	// returns it; a cart already marked reports ErrCheckoutInProgress.
	BeginCheckout(ctx context.Context, userID primitive.ObjectID) (*models.Cart, error)
	// EndCheckout releases the mark, emptying the cart's items when clear is
	// true.
	EndCheckout(ctx context.Context, userID primitive.ObjectID, clear bool) error
}

type OrderStore interface {
	Insert(ctx context.Context, order *models.Order) error
}

type OrderMailer interface {
	SendOrderConfirmationEmail(toEmail, orderNumber string, total float64) error
}

type OrderService struct {
	products OrderProductStore
	carts    CheckoutCartStore
	orders   OrderStore
	mailer   OrderMailer
}

func NewOrderService(products OrderProductStore, carts CheckoutCartStore, orders OrderStore, mailer OrderMailer) *OrderService {
	return &OrderService{products: products, carts: carts, orders: orders, mailer: mailer}
}

// Checkout converts the user's cart into an order. The cart is marked
// checking-out before any stock is touched so a duplicate submission cannot
// produce a second order, and each line item's stock is taken with one
// conditional decrement. If any line fails, every decrement already applied
// is compensated and the cart is released untouched.
func (s *OrderService) Checkout(ctx context.Context, userID primitive.ObjectID, userEmail string, req models.PlaceOrderRequest) (*models.Order, error) {
	cart, err := s.carts.BeginCheckout(ctx, userID)
	if err != nil {
		if errors.Is(err, ErrCartEmpty) || errors.Is(err, ErrCheckoutInProgress) {
			return nil, err
		}
		return nil, err
	}

	if len(cart.Items) == 0 {
		s.release(ctx, userID)
		return nil, ErrCartEmpty
	}

	orderItems := make([]models.OrderItem, 0, len(cart.Items))
	applied := make([]models.CartItem, 0, len(cart.Items))

	for _, item := range cart.Items {
		product, err := s.products.FindByID(ctx, item.ProductID)
		if err != nil {
			s.rollback(ctx, applied)
			s.release(ctx, userID)
			if errors.Is(err, ErrProductNotFound) {
				return nil, fmt.Errorf("%w: a cart item is no longer available", ErrProductNotFound)
			}
			return nil, err
		}

		if err := s.products.DecrementStock(ctx, item.ProductID, item.Quantity); err != nil {
			s.rollback(ctx, applied)
			s.release(ctx, userID)
			if errors.Is(err, ErrInsufficientStock) {
				return nil, fmt.Errorf("%w for %s", ErrInsufficientStock, product.Name)
			}
			return nil, err
		}
		applied = append(applied, item)

		orderItems = append(orderItems, models.OrderItem{
			ProductID: item.ProductID,
			Name:      product.Name,
			ImageURL:  product.ImageURL,
			Quantity:  item.Quantity,
			Price:     item.Price,
		})
	}

	now := time.Now()
	order := &models.Order{
		OrderNumber:     fmt.Sprintf("ORD-%d", now.UnixNano()),
		UserID:          userID,
		Items:           orderItems,
		TotalAmount:     cart.ComputeTotal(),
		ShippingAddress: req.ShippingAddress,
		PaymentMethod:   req.PaymentMethod,
		PaymentStatus:   "unpaid",
		Status:          models.OrderStatusPending,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if err := s.orders.Insert(ctx, order); err != nil {
		s.rollback(ctx, applied)
		s.release(ctx, userID)
		return nil, err
	}

	if err := s.carts.EndCheckout(ctx, userID, true); err != nil {
		log.Println("Failed to clear cart after checkout:", err)
	}

	if s.mailer != nil && userEmail != "" {
		if err := s.mailer.SendOrderConfirmationEmail(userEmail, order.OrderNumber, order.TotalAmount); err != nil {
			log.Println("Failed to send order confirmation email:", err)
		}
	}

	return order, nil
}

func (s *OrderService) rollback(ctx context.Context, applied []models.CartItem) {
	for _, item := range applied {
		if err := s.products.IncrementStock(ctx, item.ProductID, item.Quantity); err != nil {
			log.Printf("Failed to restore stock for product %s: %v", item.ProductID.Hex(), err)
		}
	}
}

func (s *OrderService) release(ctx context.Context, userID primitive.ObjectID) {
	if err := s.carts.EndCheckout(ctx, userID, false); err != nil {
		log.Println("Failed to release cart after checkout failure:", err)
	}
}

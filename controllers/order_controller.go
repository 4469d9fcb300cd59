package controllers

import (
	"errors"
	"time"

	"gift-orium/config"
	"gift-orium/models"
	"gift-orium/services"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type OrderController struct {
	Service *services.OrderService
}

// PlaceOrder godoc
// @Summary Place order
// @Description Convert the cart into an order; stock is reserved atomically
// @Description and a duplicate submission is rejected
// @Tags Orders
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body models.PlaceOrderRequest true "Place Order Request"
// @Success 201 {object} models.Response
// @Failure 400 {object} models.ErrorResponse
// @Failure 409 {object} models.ErrorResponse
// @Router /api/orders [post]
func (ctrl *OrderController) PlaceOrder(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(401, gin.H{"success": false, "message": "Unauthorized"})
		return
	}

	var req models.PlaceOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"success": false, "message": "Invalid request"})
		return
	}

	order, err := ctrl.Service.Checkout(c.Request.Context(), userID, c.GetString("user_email"), req)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrCheckoutInProgress):
			c.JSON(409, gin.H{"success": false, "message": "Checkout already in progress"})
		case errors.Is(err, services.ErrCartEmpty):
			c.JSON(400, gin.H{"success": false, "message": "Cart is empty"})
		case errors.Is(err, services.ErrInsufficientStock),
			errors.Is(err, services.ErrProductNotFound):
			c.JSON(400, gin.H{"success": false, "message": err.Error()})
		default:
			c.JSON(500, gin.H{"success": false, "message": "Failed to place order"})
		}
		return
	}

	c.JSON(201, gin.H{"success": true, "message": "Order placed", "data": order})
}

// GetMyOrders godoc
// @Summary List my orders
// @Description List the current user's orders, newest first
// @Tags Orders
// @Security BearerAuth
// @Produce json
// @Param page query int false "Page number"
// @Param limit query int false "Items per page"
// @Success 200 {object} models.PaginationResponse
// @Router /api/orders/my-orders [get]
func (ctrl *OrderController) GetMyOrders(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(401, gin.H{"success": false, "message": "Unauthorized"})
		return
	}
	ctx := c.Request.Context()
	page, limit := getPaginationParams(c)
	orders := config.DB.Collection("orders")

	filter := bson.M{"user_id": userID}
	totalItems, err := orders.CountDocuments(ctx, filter)
	if err != nil {
		c.JSON(500, gin.H{"success": false, "message": "Failed to fetch orders"})
		return
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetSkip(int64((page - 1) * limit)).
		SetLimit(int64(limit))

	cursor, err := orders.Find(ctx, filter, opts)
	if err != nil {
		c.JSON(500, gin.H{"success": false, "message": "Failed to fetch orders"})
		return
	}
	defer cursor.Close(ctx)

	list := []models.Order{}
	if err := cursor.All(ctx, &list); err != nil {
		c.JSON(500, gin.H{"success": false, "message": "Failed to fetch orders"})
		return
	}

	c.JSON(200, models.PaginationResponse{
		Success: true,
		Message: "Orders retrieved",
		Data:    list,
		Meta:    buildPaginationMeta(page, limit, totalItems),
	})
}

// GetOrderByID godoc
// @Summary Get order
// @Description Get a single order; users only see their own, admins see any.
// @Description Line items are point-in-time snapshots, so the order stays
// @Description readable after a product is deleted.
// @Tags Orders
// @Security BearerAuth
// @Produce json
// @Param id path string true "Order ID"
// @Success 200 {object} models.Response
// @Failure 404 {object} models.ErrorResponse
// @Router /api/orders/{id} [get]
func (ctrl *OrderController) GetOrderByID(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(400, gin.H{"success": false, "message": "Invalid order id"})
		return
	}

	var order models.Order
	if err := config.DB.Collection("orders").
		FindOne(c.Request.Context(), bson.M{"_id": id}).
		Decode(&order); err != nil {
		c.JSON(404, gin.H{"success": false, "message": "Order not found"})
		return
	}

	if c.GetString("user_role") != models.RoleAdmin &&
		order.UserID.Hex() != c.GetString("user_id") {
		c.JSON(404, gin.H{"success": false, "message": "Order not found"})
		return
	}

	c.JSON(200, gin.H{"success": true, "message": "Order retrieved", "data": order})
}

// GetAllOrders godoc
// @Summary List all orders
// @Description List every order with pagination and optional status filter
// @Description (admin only)
// @Tags Orders
// @Security BearerAuth
// @Produce json
// @Param page query int false "Page number"
// @Param limit query int false "Items per page"
// @Param status query string false "Filter by status"
// @Success 200 {object} models.HATEOASResponse
// @Router /api/orders [get]
func (ctrl *OrderController) GetAllOrders(c *gin.Context) {
	page, limit := getPaginationParams(c)
	ctx := c.Request.Context()
	orders := config.DB.Collection("orders")

	filter := bson.M{}
	if status := c.Query("status"); status != "" {
		if !models.IsValidOrderStatus(status) {
			c.JSON(400, gin.H{"success": false, "message": "Unknown order status"})
			return
		}
		filter["status"] = status
	}

	totalItems, err := orders.CountDocuments(ctx, filter)
	if err != nil {
		c.JSON(500, gin.H{"success": false, "message": "Failed to fetch orders"})
		return
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetSkip(int64((page - 1) * limit)).
		SetLimit(int64(limit))

	cursor, err := orders.Find(ctx, filter, opts)
	if err != nil {
		c.JSON(500, gin.H{"success": false, "message": "Failed to fetch orders"})
		return
	}
	defer cursor.Close(ctx)

	list := []models.Order{}
	if err := cursor.All(ctx, &list); err != nil {
		c.JSON(500, gin.H{"success": false, "message": "Failed to fetch orders"})
		return
	}

	meta := buildPaginationMeta(page, limit, totalItems)
	c.JSON(200, models.HATEOASResponse{
		Success: true,
		Message: "Orders retrieved",
		Data:    list,
		Meta:    meta,
		Links:   generateLinks(c, page, limit, meta.TotalPages),
	})
}

func (ctrl *OrderController) applyOrderUpdate(c *gin.Context, id primitive.ObjectID, update bson.M) {
	update["updated_at"] = time.Now()

	var updated models.Order
	err := config.DB.Collection("orders").FindOneAndUpdate(c.Request.Context(),
		bson.M{"_id": id},
		bson.M{"$set": update},
		mongoReturnAfter()).Decode(&updated)
	if err != nil {
		c.JSON(404, gin.H{"success": false, "message": "Order not found"})
		return
	}

	c.JSON(200, gin.H{"success": true, "message": "Order updated", "data": updated})
}

// UpdateOrderStatus godoc
// @Summary Update order status
// @Description Move an order along pending, processing, shipped, delivered;
// @Description cancellation is allowed from any non-terminal state (admin only)
// @Tags Orders
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Order ID"
// @Param request body models.UpdateOrderStatusRequest true "Status Request"
// @Success 200 {object} models.Response
// @Failure 400 {object} models.ErrorResponse
// @Router /api/orders/{id}/status [patch]
func (ctrl *OrderController) UpdateOrderStatus(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(400, gin.H{"success": false, "message": "Invalid order id"})
		return
	}

	var req models.UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"success": false, "message": "Invalid request"})
		return
	}
	if !models.IsValidOrderStatus(req.Status) {
		c.JSON(400, gin.H{"success": false, "message": "Unknown order status"})
		return
	}

	var order models.Order
	if err := config.DB.Collection("orders").
		FindOne(c.Request.Context(), bson.M{"_id": id}).
		Decode(&order); err != nil {
		c.JSON(404, gin.H{"success": false, "message": "Order not found"})
		return
	}

	if req.Status != order.Status && !models.CanTransitionOrderStatus(order.Status, req.Status) {
		c.JSON(400, gin.H{
			"success": false,
			"message": "Cannot move order from " + order.Status + " to " + req.Status,
		})
		return
	}

	ctrl.applyOrderUpdate(c, id, bson.M{"status": req.Status})
}

// UpdateOrderTracking godoc
// @Summary Update tracking number
// @Tags Orders
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Order ID"
// @Param request body models.UpdateOrderTrackingRequest true "Tracking Request"
// @Success 200 {object} models.Response
// @Router /api/orders/{id}/tracking [patch]
func (ctrl *OrderController) UpdateOrderTracking(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(400, gin.H{"success": false, "message": "Invalid order id"})
		return
	}

	var req models.UpdateOrderTrackingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"success": false, "message": "Invalid request"})
		return
	}

	ctrl.applyOrderUpdate(c, id, bson.M{"tracking_number": req.TrackingNumber})
}

// UpdateOrderNotes godoc
// @Summary Update seller notes
// @Tags Orders
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Order ID"
// @Param request body models.UpdateOrderNotesRequest true "Notes Request"
// @Success 200 {object} models.Response
// @Router /api/orders/{id}/notes [patch]
func (ctrl *OrderController) UpdateOrderNotes(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(400, gin.H{"success": false, "message": "Invalid order id"})
		return
	}

	var req models.UpdateOrderNotesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"success": false, "message": "Invalid request"})
		return
	}

	ctrl.applyOrderUpdate(c, id, bson.M{"seller_notes": req.SellerNotes})
}

// UpdateOrderPayment godoc
// @Summary Update payment status
// @Tags Orders
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Order ID"
// @Param request body models.UpdateOrderPaymentRequest true "Payment Request"
// @Success 200 {object} models.Response
// @Router /api/orders/{id}/payment [patch]
func (ctrl *OrderController) UpdateOrderPayment(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(400, gin.H{"success": false, "message": "Invalid order id"})
		return
	}

	var req models.UpdateOrderPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"success": false, "message": "Invalid request"})
		return
	}

	ctrl.applyOrderUpdate(c, id, bson.M{"payment_status": req.PaymentStatus})
}

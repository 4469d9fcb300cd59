package controllers

import (
	"errors"

	"gift-orium/models"
	"gift-orium/services"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type CartController struct {
	Service  *services.CartService
	Products services.CartProductStore
}

// attachProducts resolves the current product document for each line item so
// the storefront can render images and availability. A product deleted since
// it was added leaves its line with a nil product.
func (ctrl *CartController) attachProducts(c *gin.Context, cart *models.Cart) {
	for i := range cart.Items {
		product, err := ctrl.Products.FindByID(c.Request.Context(), cart.Items[i].ProductID)
		if err != nil {
			continue
		}
		cart.Items[i].Product = product
	}
}

func cartError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrProductNotFound):
		c.JSON(404, gin.H{"success": false, "message": "Product not found"})
	case errors.Is(err, services.ErrCartItemNotFound):
		c.JSON(404, gin.H{"success": false, "message": "Item not in cart"})
	case errors.Is(err, services.ErrInsufficientStock):
		c.JSON(400, gin.H{"success": false, "message": "Not enough stock"})
	default:
		c.JSON(500, gin.H{"success": false, "message": "Cart operation failed"})
	}
}

// GetCart godoc
// @Summary Get cart
// @Description Get the current user's cart
// @Tags Cart
// @Security BearerAuth
// @Produce json
// @Success 200 {object} models.Response
// @Router /api/cart [get]
func (ctrl *CartController) GetCart(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(401, gin.H{"success": false, "message": "Unauthorized"})
		return
	}

	cart, err := ctrl.Service.Get(c.Request.Context(), userID)
	if err != nil {
		cartError(c, err)
		return
	}
	ctrl.attachProducts(c, cart)

	c.JSON(200, gin.H{"success": true, "message": "Cart retrieved", "data": cart})
}

// AddToCart godoc
// @Summary Add item to cart
// @Description Add a product to the cart, capturing its current price
// @Tags Cart
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body models.AddToCartRequest true "Add To Cart Request"
// @Success 200 {object} models.Response
// @Failure 400 {object} models.ErrorResponse
// @Router /api/cart/add [post]
func (ctrl *CartController) AddToCart(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(401, gin.H{"success": false, "message": "Unauthorized"})
		return
	}

	var req models.AddToCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"success": false, "message": "Invalid request"})
		return
	}

	productID, err := primitive.ObjectIDFromHex(req.ProductID)
	if err != nil {
		c.JSON(400, gin.H{"success": false, "message": "Invalid product id"})
		return
	}

	cart, err := ctrl.Service.AddItem(c.Request.Context(), userID, productID, req.Quantity)
	if err != nil {
		cartError(c, err)
		return
	}
	ctrl.attachProducts(c, cart)

	c.JSON(200, gin.H{"success": true, "message": "Item added to cart", "data": cart})
}

// UpdateCartItem godoc
// @Summary Update cart item
// @Description Set a cart line's quantity; zero removes the line
// @Tags Cart
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param productId path string true "Product ID"
// @Param request body models.UpdateCartItemRequest true "Update Cart Item Request"
// @Success 200 {object} models.Response
// @Router /api/cart/update/{productId} [patch]
func (ctrl *CartController) UpdateCartItem(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(401, gin.H{"success": false, "message": "Unauthorized"})
		return
	}

	productID, err := primitive.ObjectIDFromHex(c.Param("productId"))
	if err != nil {
		c.JSON(400, gin.H{"success": false, "message": "Invalid product id"})
		return
	}

	var req models.UpdateCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"success": false, "message": "Invalid request"})
		return
	}

	cart, err := ctrl.Service.UpdateQuantity(c.Request.Context(), userID, productID, req.Quantity)
	if err != nil {
		cartError(c, err)
		return
	}
	ctrl.attachProducts(c, cart)

	c.JSON(200, gin.H{"success": true, "message": "Cart updated", "data": cart})
}

// RemoveFromCart godoc
// @Summary Remove cart item
// @Description Remove a product from the cart
// @Tags Cart
// @Security BearerAuth
// @Produce json
// @Param productId path string true "Product ID"
// @Success 200 {object} models.Response
// @Router /api/cart/remove/{productId} [delete]
func (ctrl *CartController) RemoveFromCart(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(401, gin.H{"success": false, "message": "Unauthorized"})
		return
	}

	productID, err := primitive.ObjectIDFromHex(c.Param("productId"))
	if err != nil {
		c.JSON(400, gin.H{"success": false, "message": "Invalid product id"})
		return
	}

	cart, err := ctrl.Service.RemoveItem(c.Request.Context(), userID, productID)
	if err != nil {
		cartError(c, err)
		return
	}
	ctrl.attachProducts(c, cart)

	c.JSON(200, gin.H{"success": true, "message": "Item removed from cart", "data": cart})
}

// ClearCart godoc
// @Summary Clear cart
// @Description Remove every item from the cart
// @Tags Cart
// @Security BearerAuth
// @Produce json
// @Success 200 {object} models.Response
// @Router /api/cart/clear [delete]
func (ctrl *CartController) ClearCart(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(401, gin.H{"success": false, "message": "Unauthorized"})
		return
	}

	if err := ctrl.Service.Clear(c.Request.Context(), userID); err != nil {
		cartError(c, err)
		return
	}

	c.JSON(200, gin.H{"success": true, "message": "Cart cleared"})
}

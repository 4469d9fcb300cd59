package controllers

import (
	"errors"
	"strconv"
	"time"

	"gift-orium/config"
	"gift-orium/models"
	"gift-orium/services"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type TestimonialController struct {
	Service *services.TestimonialService
}

// GetAllTestimonials godoc
// @Summary List testimonials
// @Description List testimonials, optionally filtered by product or featured
// @Tags Testimonials
// @Produce json
// @Param product_id query string false "Filter by referenced product"
// @Param featured query bool false "Only featured testimonials"
// @Success 200 {object} models.Response
// @Router /api/testimonials [get]
func (ctrl *TestimonialController) GetAllTestimonials(c *gin.Context) {
	ctx := c.Request.Context()
	filter := bson.M{}

	if raw := c.Query("product_id"); raw != "" {
		productID, err := primitive.ObjectIDFromHex(raw)
		if err != nil {
			c.JSON(400, gin.H{"success": false, "message": "Invalid product id"})
			return
		}
		filter["$or"] = []bson.M{
			{"product_id": productID},
			{"product_ids": productID},
		}
	}

	if raw := c.Query("featured"); raw != "" {
		featured, err := strconv.ParseBool(raw)
		if err != nil {
			c.JSON(400, gin.H{"success": false, "message": "featured must be true or false"})
			return
		}
		filter["featured"] = featured
	}

	cursor, err := config.DB.Collection("testimonials").Find(ctx, filter,
		options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		c.JSON(500, gin.H{"success": false, "message": "Failed to fetch testimonials"})
		return
	}
	defer cursor.Close(ctx)

	testimonials := []models.Testimonial{}
	if err := cursor.All(ctx, &testimonials); err != nil {
		c.JSON(500, gin.H{"success": false, "message": "Failed to fetch testimonials"})
		return
	}

	c.JSON(200, gin.H{"success": true, "message": "Testimonials retrieved", "data": testimonials})
}

// CreateTestimonial godoc
// @Summary Create testimonial
// @Description Submit a testimonial for one or more products. When an order
// @Description is referenced it must be the submitter's own delivered order.
// @Tags Testimonials
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body models.CreateTestimonialRequest true "Create Testimonial Request"
// @Success 201 {object} models.Response
// @Failure 400 {object} models.ErrorResponse
// @Failure 403 {object} models.ErrorResponse
// @Router /api/testimonials [post]
func (ctrl *TestimonialController) CreateTestimonial(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(401, gin.H{"success": false, "message": "Unauthorized"})
		return
	}

	var req models.CreateTestimonialRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"success": false, "message": "Invalid request"})
		return
	}

	testimonial := models.Testimonial{
		Name:    req.Name,
		Role:    req.Role,
		Content: req.Content,
		Rating:  req.Rating,
	}

	if req.ProductID != "" {
		productID, err := primitive.ObjectIDFromHex(req.ProductID)
		if err != nil {
			c.JSON(400, gin.H{"success": false, "message": "Invalid product id"})
			return
		}
		testimonial.ProductID = &productID
	}
	for _, raw := range req.ProductIDs {
		productID, err := primitive.ObjectIDFromHex(raw)
		if err != nil {
			c.JSON(400, gin.H{"success": false, "message": "Invalid product id"})
			return
		}
		testimonial.ProductIDs = append(testimonial.ProductIDs, productID)
	}
	if req.OrderID != "" {
		orderID, err := primitive.ObjectIDFromHex(req.OrderID)
		if err != nil {
			c.JSON(400, gin.H{"success": false, "message": "Invalid order id"})
			return
		}
		testimonial.OrderID = &orderID
	}

	err := ctrl.Service.Create(c.Request.Context(), userID, &testimonial)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrNoProducts):
			c.JSON(400, gin.H{"success": false, "message": "At least one product reference is required"})
		case errors.Is(err, services.ErrNotAuthorized):
			c.JSON(403, gin.H{"success": false, "message": "Order must be your own delivered order"})
		default:
			c.JSON(500, gin.H{"success": false, "message": "Failed to create testimonial"})
		}
		return
	}

	c.JSON(201, gin.H{"success": true, "message": "Testimonial created", "data": testimonial})
}

// UpdateTestimonial godoc
// @Summary Update testimonial
// @Description Update testimonial fields; a rating change recomputes the
// @Description referenced products' ratings (admin only)
// @Tags Testimonials
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Testimonial ID"
// @Param request body models.UpdateTestimonialRequest true "Update Testimonial Request"
// @Success 200 {object} models.Response
// @Router /api/testimonials/{id} [patch]
func (ctrl *TestimonialController) UpdateTestimonial(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(400, gin.H{"success": false, "message": "Invalid testimonial id"})
		return
	}

	var req models.UpdateTestimonialRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"success": false, "message": "Invalid request"})
		return
	}

	update := bson.M{"updated_at": time.Now()}
	if req.Name != "" {
		update["name"] = req.Name
	}
	if req.Role != "" {
		update["role"] = req.Role
	}
	if req.Content != "" {
		update["content"] = req.Content
	}
	if req.Rating != 0 {
		update["rating"] = req.Rating
	}
	if req.Featured != nil {
		update["featured"] = *req.Featured
	}

	ctx := c.Request.Context()
	var testimonial models.Testimonial
	err = config.DB.Collection("testimonials").FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{"$set": update},
		mongoReturnAfter()).Decode(&testimonial)
	if err != nil {
		c.JSON(404, gin.H{"success": false, "message": "Testimonial not found"})
		return
	}

	if req.Rating != 0 {
		for _, productID := range testimonial.Products() {
			ctrl.Service.RecomputeRating(ctx, productID)
		}
	}

	c.JSON(200, gin.H{"success": true, "message": "Testimonial updated", "data": testimonial})
}

// DeleteTestimonial godoc
// @Summary Delete testimonial
// @Description Delete a testimonial and recompute the referenced products'
// @Description ratings (admin only)
// @Tags Testimonials
// @Security BearerAuth
// @Produce json
// @Param id path string true "Testimonial ID"
// @Success 200 {object} models.Response
// @Router /api/testimonials/{id} [delete]
func (ctrl *TestimonialController) DeleteTestimonial(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(400, gin.H{"success": false, "message": "Invalid testimonial id"})
		return
	}
	ctx := c.Request.Context()
	testimonials := config.DB.Collection("testimonials")

	var testimonial models.Testimonial
	if err := testimonials.FindOne(ctx, bson.M{"_id": id}).Decode(&testimonial); err != nil {
		c.JSON(404, gin.H{"success": false, "message": "Testimonial not found"})
		return
	}

	if _, err := testimonials.DeleteOne(ctx, bson.M{"_id": id}); err != nil {
		c.JSON(500, gin.H{"success": false, "message": "Failed to delete testimonial"})
		return
	}

	for _, productID := range testimonial.Products() {
		ctrl.Service.RecomputeRating(ctx, productID)
	}

	c.JSON(200, gin.H{"success": true, "message": "Testimonial deleted"})
}

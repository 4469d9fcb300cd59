package controllers

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/url"
	"strconv"
	"strings"
	"time"

	"gift-orium/config"
	"gift-orium/libs"
	"gift-orium/models"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const maxProductImages = 5

type ProductController struct {
	Cloudinary *libs.CloudinaryService
}

// buildProductFilter maps the allow-listed query parameters to a mongo
// filter. Parameters outside the allow-list are ignored; malformed values
// for recognised parameters are an error.
func buildProductFilter(values url.Values) (bson.M, error) {
	filter := bson.M{}

	if category := values.Get("category"); category != "" {
		if !models.IsValidCategory(category) {
			return nil, fmt.Errorf("unknown category %q", category)
		}
		filter["category"] = category
	}

	if featured := values.Get("featured"); featured != "" {
		val, err := strconv.ParseBool(featured)
		if err != nil {
			return nil, fmt.Errorf("featured must be true or false")
		}
		filter["featured"] = val
	}

	if search := values.Get("search"); search != "" {
		filter["$or"] = []bson.M{
			{"name": bson.M{"$regex": search, "$options": "i"}},
			{"description": bson.M{"$regex": search, "$options": "i"}},
		}
	}

	if tag := values.Get("tag"); tag != "" {
		filter["tags"] = tag
	}

	price := bson.M{}
	for param, op := range map[string]string{
		"price[gte]": "$gte",
		"price[gt]":  "$gt",
		"price[lte]": "$lte",
		"price[lt]":  "$lt",
	} {
		raw := values.Get(param)
		if raw == "" {
			continue
		}
		val, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, fmt.Errorf("%s must be a number", param)
		}
		price[op] = val
	}
	if len(price) > 0 {
		filter["price"] = price
	}

	return filter, nil
}

// buildProductSort maps a sort parameter like "-price" to a mongo sort
// document. Only allow-listed fields are accepted; the default is newest
// first.
func buildProductSort(sortParam string) (bson.D, error) {
	if sortParam == "" {
		return bson.D{{Key: "created_at", Value: -1}}, nil
	}

	direction := 1
	field := sortParam
	if strings.HasPrefix(sortParam, "-") {
		direction = -1
		field = sortParam[1:]
	}

	sortFields := map[string]string{
		"price":     "price",
		"rating":    "rating",
		"createdAt": "created_at",
		"name":      "name",
	}
	mapped, ok := sortFields[field]
	if !ok {
		return nil, fmt.Errorf("cannot sort by %q", field)
	}
	return bson.D{{Key: mapped, Value: direction}}, nil
}

func productCacheKey(values url.Values) string {
	return "products:" + values.Encode()
}

func invalidateProductCache(ctx context.Context) {
	if config.RedisClient == nil {
		return
	}
	iter := config.RedisClient.Scan(ctx, 0, "products:*", 100).Iterator()
	for iter.Next(ctx) {
		config.RedisClient.Del(ctx, iter.Val())
	}
	if err := iter.Err(); err != nil {
		log.Printf("Failed to invalidate product cache: %v", err)
	}
}

// GetAllProducts godoc
// @Summary List products
// @Description List products with filters, sorting and pagination
// @Tags Products
// @Produce json
// @Param category query string false "Category slug"
// @Param featured query bool false "Only featured products"
// @Param search query string false "Search in name and description"
// @Param tag query string false "Filter by tag"
// @Param sort query string false "Sort field, prefix with - for descending"
// @Param page query int false "Page number"
// @Param limit query int false "Items per page (max 100)"
// @Success 200 {object} models.PaginationResponse
// @Failure 400 {object} models.ErrorResponse
// @Router /api/products [get]
func (ctrl *ProductController) GetAllProducts(c *gin.Context) {
	ctx := c.Request.Context()
	values := c.Request.URL.Query()

	cacheKey := productCacheKey(values)
	if config.RedisClient != nil {
		if cached, err := config.RedisClient.Get(ctx, cacheKey).Result(); err == nil {
			var response models.PaginationResponse
			if json.Unmarshal([]byte(cached), &response) == nil {
				c.JSON(200, response)
				return
			}
		}
	}

	filter, err := buildProductFilter(values)
	if err != nil {
		c.JSON(400, gin.H{"success": false, "message": err.Error()})
		return
	}

	sort, err := buildProductSort(values.Get("sort"))
	if err != nil {
		c.JSON(400, gin.H{"success": false, "message": err.Error()})
		return
	}

	page, limit := getPaginationParams(c)
	products := config.DB.Collection("products")

	totalItems, err := products.CountDocuments(ctx, filter)
	if err != nil {
		c.JSON(500, gin.H{"success": false, "message": "Failed to fetch products"})
		return
	}

	opts := options.Find().
		SetSort(sort).
		SetSkip(int64((page - 1) * limit)).
		SetLimit(int64(limit))

	cursor, err := products.Find(ctx, filter, opts)
	if err != nil {
		c.JSON(500, gin.H{"success": false, "message": "Failed to fetch products"})
		return
	}
	defer cursor.Close(ctx)

	list := []models.Product{}
	if err := cursor.All(ctx, &list); err != nil {
		c.JSON(500, gin.H{"success": false, "message": "Failed to fetch products"})
		return
	}

	response := models.PaginationResponse{
		Success: true,
		Message: "Products retrieved",
		Data:    list,
		Meta:    buildPaginationMeta(page, limit, totalItems),
	}

	if config.RedisClient != nil {
		if payload, err := json.Marshal(response); err == nil {
			config.RedisClient.Set(ctx, cacheKey, payload, 5*time.Minute)
		}
	}

	c.JSON(200, response)
}

// GetProductByID godoc
// @Summary Get product
// @Description Get a single product by id
// @Tags Products
// @Produce json
// @Param id path string true "Product ID"
// @Success 200 {object} models.Response
// @Failure 404 {object} models.ErrorResponse
// @Router /api/products/{id} [get]
func (ctrl *ProductController) GetProductByID(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(400, gin.H{"success": false, "message": "Invalid product id"})
		return
	}

	var product models.Product
	if err := config.DB.Collection("products").
		FindOne(c.Request.Context(), bson.M{"_id": id}).
		Decode(&product); err != nil {
		c.JSON(404, gin.H{"success": false, "message": "Product not found"})
		return
	}

	c.JSON(200, gin.H{"success": true, "message": "Product retrieved", "data": product})
}

func (ctrl *ProductController) uploadFormImages(c *gin.Context, field string) ([]string, error) {
	form, err := c.MultipartForm()
	if err != nil {
		return nil, nil
	}
	files := form.File[field]
	if len(files) == 0 {
		return nil, nil
	}
	if ctrl.Cloudinary == nil {
		return nil, fmt.Errorf("image upload not configured")
	}
	if len(files) > maxProductImages {
		return nil, fmt.Errorf("a product can have at most %d images", maxProductImages)
	}
	return ctrl.Cloudinary.UploadMultipleImages(c.Request.Context(), files, "products")
}

// CreateProduct godoc
// @Summary Create product
// @Description Create a product with 1-5 images; the first image is the
// @Description canonical one (admin only)
// @Tags Products
// @Security BearerAuth
// @Accept multipart/form-data
// @Produce json
// @Param name formData string true "Product name"
// @Param price formData number true "Price"
// @Param category formData string true "Category slug"
// @Param stock formData int true "Stock"
// @Param images formData file true "Product images (1-5)"
// @Success 201 {object} models.Response
// @Failure 400 {object} models.ErrorResponse
// @Router /api/products [post]
func (ctrl *ProductController) CreateProduct(c *gin.Context) {
	name := strings.TrimSpace(c.PostForm("name"))
	category := c.PostForm("category")
	if name == "" || category == "" {
		c.JSON(400, gin.H{"success": false, "message": "Name and category are required"})
		return
	}
	if !models.IsValidCategory(category) {
		c.JSON(400, gin.H{"success": false, "message": "Unknown category"})
		return
	}

	price, err := strconv.ParseFloat(c.PostForm("price"), 64)
	if err != nil || price <= 0 {
		c.JSON(400, gin.H{"success": false, "message": "Price must be a positive number"})
		return
	}

	stock, err := strconv.Atoi(c.PostForm("stock"))
	if err != nil || stock < 0 {
		c.JSON(400, gin.H{"success": false, "message": "Stock must be a non-negative integer"})
		return
	}

	var discountPrice *float64
	if raw := c.PostForm("discount_price"); raw != "" {
		val, err := strconv.ParseFloat(raw, 64)
		if err != nil || val <= 0 || val >= price {
			c.JSON(400, gin.H{"success": false, "message": "Discount price must be below the price"})
			return
		}
		discountPrice = &val
	}

	images, err := ctrl.uploadFormImages(c, "images")
	if err != nil {
		c.JSON(400, gin.H{"success": false, "message": err.Error()})
		return
	}
	if len(images) == 0 {
		c.JSON(400, gin.H{"success": false, "message": "At least one image is required"})
		return
	}
	if len(images) > maxProductImages {
		c.JSON(400, gin.H{"success": false, "message": "A product can have at most 5 images"})
		return
	}

	var tags []string
	if raw := c.PostForm("tags"); raw != "" {
		for _, tag := range strings.Split(raw, ",") {
			if tag = strings.TrimSpace(tag); tag != "" {
				tags = append(tags, tag)
			}
		}
	}

	featured, _ := strconv.ParseBool(c.PostForm("featured"))

	now := time.Now()
	product := models.Product{
		Name:          name,
		Description:   c.PostForm("description"),
		Price:         price,
		DiscountPrice: discountPrice,
		Category:      category,
		ImageURL:      images[0],
		Images:        images,
		Stock:         stock,
		Featured:      featured,
		Tags:          tags,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	result, err := config.DB.Collection("products").InsertOne(c.Request.Context(), product)
	if err != nil {
		c.JSON(500, gin.H{"success": false, "message": "Failed to create product"})
		return
	}
	product.ID = result.InsertedID.(primitive.ObjectID)

	invalidateProductCache(c.Request.Context())

	c.JSON(201, gin.H{"success": true, "message": "Product created", "data": product})
}

// UpdateProduct godoc
// @Summary Update product
// @Description Update product fields; new images are appended unless
// @Description replace_images=true (admin only)
// @Tags Products
// @Security BearerAuth
// @Accept multipart/form-data
// @Produce json
// @Param id path string true "Product ID"
// @Success 200 {object} models.Response
// @Router /api/products/{id} [patch]
func (ctrl *ProductController) UpdateProduct(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(400, gin.H{"success": false, "message": "Invalid product id"})
		return
	}
	ctx := c.Request.Context()
	products := config.DB.Collection("products")

	var existing models.Product
	if err := products.FindOne(ctx, bson.M{"_id": id}).Decode(&existing); err != nil {
		c.JSON(404, gin.H{"success": false, "message": "Product not found"})
		return
	}

	update := bson.M{"updated_at": time.Now()}

	if name := strings.TrimSpace(c.PostForm("name")); name != "" {
		update["name"] = name
	}
	if description := c.PostForm("description"); description != "" {
		update["description"] = description
	}
	if category := c.PostForm("category"); category != "" {
		if !models.IsValidCategory(category) {
			c.JSON(400, gin.H{"success": false, "message": "Unknown category"})
			return
		}
		update["category"] = category
	}

	price := existing.Price
	if raw := c.PostForm("price"); raw != "" {
		val, err := strconv.ParseFloat(raw, 64)
		if err != nil || val <= 0 {
			c.JSON(400, gin.H{"success": false, "message": "Price must be a positive number"})
			return
		}
		price = val
		update["price"] = val
	}
	if raw := c.PostForm("discount_price"); raw != "" {
		val, err := strconv.ParseFloat(raw, 64)
		if err != nil || val <= 0 || val >= price {
			c.JSON(400, gin.H{"success": false, "message": "Discount price must be below the price"})
			return
		}
		update["discount_price"] = val
	}
	if raw := c.PostForm("stock"); raw != "" {
		val, err := strconv.Atoi(raw)
		if err != nil || val < 0 {
			c.JSON(400, gin.H{"success": false, "message": "Stock must be a non-negative integer"})
			return
		}
		update["stock"] = val
	}
	if raw := c.PostForm("featured"); raw != "" {
		val, err := strconv.ParseBool(raw)
		if err != nil {
			c.JSON(400, gin.H{"success": false, "message": "featured must be true or false"})
			return
		}
		update["featured"] = val
	}
	if raw := c.PostForm("tags"); raw != "" {
		tags := []string{}
		for _, tag := range strings.Split(raw, ",") {
			if tag = strings.TrimSpace(tag); tag != "" {
				tags = append(tags, tag)
			}
		}
		update["tags"] = tags
	}

	newImages, err := ctrl.uploadFormImages(c, "images")
	if err != nil {
		c.JSON(400, gin.H{"success": false, "message": err.Error()})
		return
	}
	if len(newImages) > 0 {
		replace, _ := strconv.ParseBool(c.PostForm("replace_images"))
		images := newImages
		if !replace {
			images = append(append([]string{}, existing.Images...), newImages...)
		}
		if len(images) > maxProductImages {
			c.JSON(400, gin.H{"success": false, "message": "A product can have at most 5 images"})
			return
		}
		update["images"] = images
		update["image_url"] = images[0]

		if replace && ctrl.Cloudinary != nil {
			for _, old := range existing.Images {
				if err := ctrl.Cloudinary.DeleteImage(ctx, old); err != nil {
					log.Printf("Failed to delete old product image: %v", err)
				}
			}
		}
	}

	var product models.Product
	err = products.FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{"$set": update},
		mongoReturnAfter()).Decode(&product)
	if err != nil {
		c.JSON(404, gin.H{"success": false, "message": "Product not found"})
		return
	}

	invalidateProductCache(ctx)

	c.JSON(200, gin.H{"success": true, "message": "Product updated", "data": product})
}

// DeleteProduct godoc
// @Summary Delete product
// @Description Delete a product and its hosted images (admin only)
// @Tags Products
// @Security BearerAuth
// @Produce json
// @Param id path string true "Product ID"
// @Success 200 {object} models.Response
// @Router /api/products/{id} [delete]
func (ctrl *ProductController) DeleteProduct(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(400, gin.H{"success": false, "message": "Invalid product id"})
		return
	}
	ctx := c.Request.Context()
	products := config.DB.Collection("products")

	var product models.Product
	if err := products.FindOne(ctx, bson.M{"_id": id}).Decode(&product); err != nil {
		c.JSON(404, gin.H{"success": false, "message": "Product not found"})
		return
	}

	if _, err := products.DeleteOne(ctx, bson.M{"_id": id}); err != nil {
		c.JSON(500, gin.H{"success": false, "message": "Failed to delete product"})
		return
	}

	// Image cleanup is best effort; the product record is already gone.
	if ctrl.Cloudinary != nil {
		for _, image := range product.Images {
			if err := ctrl.Cloudinary.DeleteImage(ctx, image); err != nil {
				log.Printf("Failed to delete product image: %v", err)
			}
		}
	}

	invalidateProductCache(ctx)

	c.JSON(200, gin.H{"success": true, "message": "Product deleted"})
}

// UploadImage godoc
// @Summary Upload product image
// @Description Upload a standalone image and return its URL (admin only)
// @Tags Products
// @Security BearerAuth
// @Accept multipart/form-data
// @Produce json
// @Param image formData file true "Image file"
// @Success 200 {object} models.Response
// @Router /api/products/upload [post]
func (ctrl *ProductController) UploadImage(c *gin.Context) {
	if ctrl.Cloudinary == nil {
		c.JSON(503, gin.H{"success": false, "message": "Image upload not configured"})
		return
	}

	file, err := c.FormFile("image")
	if err != nil {
		c.JSON(400, gin.H{"success": false, "message": "Image file is required"})
		return
	}
	if err := ctrl.Cloudinary.ValidateImageFile(file); err != nil {
		c.JSON(400, gin.H{"success": false, "message": err.Error()})
		return
	}

	f, err := file.Open()
	if err != nil {
		c.JSON(500, gin.H{"success": false, "message": "Failed to read image"})
		return
	}
	defer f.Close()

	url, publicID, err := ctrl.Cloudinary.UploadImage(c.Request.Context(), f, file.Filename, "products")
	if err != nil {
		c.JSON(500, gin.H{"success": false, "message": "Failed to upload image"})
		return
	}

	c.JSON(200, gin.H{
		"success": true,
		"message": "Image uploaded",
		"data":    gin.H{"url": url, "public_id": publicID},
	})
}

package controllers

import (
	"time"

	"gift-orium/config"
	"gift-orium/models"
	"gift-orium/utils"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type UserController struct{}

// GetAllUsers godoc
// @Summary List users
// @Description List users with pagination (admin only)
// @Tags Users
// @Security BearerAuth
// @Produce json
// @Param page query int false "Page number"
// @Param limit query int false "Items per page"
// @Success 200 {object} models.HATEOASResponse
// @Router /api/users [get]
func (ctrl *UserController) GetAllUsers(c *gin.Context) {
	page, limit := getPaginationParams(c)
	ctx := c.Request.Context()
	users := config.DB.Collection("users")

	filter := bson.M{}
	if role := c.Query("role"); role != "" {
		filter["role"] = role
	}

	totalItems, err := users.CountDocuments(ctx, filter)
	if err != nil {
		c.JSON(500, gin.H{"success": false, "message": "Failed to fetch users"})
		return
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetSkip(int64((page - 1) * limit)).
		SetLimit(int64(limit))

	cursor, err := users.Find(ctx, filter, opts)
	if err != nil {
		c.JSON(500, gin.H{"success": false, "message": "Failed to fetch users"})
		return
	}
	defer cursor.Close(ctx)

	list := []models.User{}
	if err := cursor.All(ctx, &list); err != nil {
		c.JSON(500, gin.H{"success": false, "message": "Failed to fetch users"})
		return
	}

	meta := buildPaginationMeta(page, limit, totalItems)
	c.JSON(200, models.HATEOASResponse{
		Success: true,
		Message: "Users retrieved",
		Data:    list,
		Meta:    meta,
		Links:   generateLinks(c, page, limit, meta.TotalPages),
	})
}

// GetUserByID godoc
// @Summary Get user
// @Description Get a single user by id (admin only)
// @Tags Users
// @Security BearerAuth
// @Produce json
// @Param id path string true "User ID"
// @Success 200 {object} models.Response
// @Failure 404 {object} models.ErrorResponse
// @Router /api/users/{id} [get]
func (ctrl *UserController) GetUserByID(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(400, gin.H{"success": false, "message": "Invalid user id"})
		return
	}

	var user models.User
	if err := config.DB.Collection("users").
		FindOne(c.Request.Context(), bson.M{"_id": id}).
		Decode(&user); err != nil {
		c.JSON(404, gin.H{"success": false, "message": "User not found"})
		return
	}

	c.JSON(200, gin.H{"success": true, "message": "User retrieved", "data": user})
}

// CreateUser godoc
// @Summary Create user
// @Description Create a user with an explicit role (admin only)
// @Tags Users
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body models.CreateUserRequest true "Create User Request"
// @Success 201 {object} models.Response
// @Router /api/users [post]
func (ctrl *UserController) CreateUser(c *gin.Context) {
	var req models.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"success": false, "message": "Invalid request"})
		return
	}

	role := req.Role
	if role == "" {
		role = models.RoleUser
	}
	if role != models.RoleUser && role != models.RoleAdmin {
		c.JSON(400, gin.H{"success": false, "message": "Invalid role"})
		return
	}

	ctx := c.Request.Context()
	users := config.DB.Collection("users")

	count, _ := users.CountDocuments(ctx, bson.M{"email": req.Email})
	if count > 0 {
		c.JSON(400, gin.H{"success": false, "message": "Email already exists"})
		return
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		c.JSON(500, gin.H{"success": false, "message": "Failed to create user"})
		return
	}

	now := time.Now()
	user := models.User{
		Name:      req.Name,
		Email:     req.Email,
		Password:  hash,
		Role:      role,
		CreatedAt: now,
		UpdatedAt: now,
	}

	result, err := users.InsertOne(ctx, user)
	if err != nil {
		c.JSON(500, gin.H{"success": false, "message": "Failed to create user"})
		return
	}
	user.ID = result.InsertedID.(primitive.ObjectID)

	c.JSON(201, gin.H{"success": true, "message": "User created", "data": user})
}

// UpdateUser godoc
// @Summary Update user
// @Description Update name, role or address of a user (admin only)
// @Tags Users
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "User ID"
// @Param request body models.UpdateUserRequest true "Update User Request"
// @Success 200 {object} models.Response
// @Router /api/users/{id} [patch]
func (ctrl *UserController) UpdateUser(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(400, gin.H{"success": false, "message": "Invalid user id"})
		return
	}

	var req models.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"success": false, "message": "Invalid request"})
		return
	}

	update := bson.M{"updated_at": time.Now()}
	if req.Name != "" {
		update["name"] = req.Name
	}
	if req.Role != "" {
		if req.Role != models.RoleUser && req.Role != models.RoleAdmin {
			c.JSON(400, gin.H{"success": false, "message": "Invalid role"})
			return
		}
		update["role"] = req.Role
	}
	if req.Address != nil {
		update["address"] = req.Address
	}

	var user models.User
	err = config.DB.Collection("users").FindOneAndUpdate(c.Request.Context(),
		bson.M{"_id": id},
		bson.M{"$set": update},
		mongoReturnAfter()).Decode(&user)
	if err != nil {
		c.JSON(404, gin.H{"success": false, "message": "User not found"})
		return
	}

	c.JSON(200, gin.H{"success": true, "message": "User updated", "data": user})
}

// DeleteUser godoc
// @Summary Delete user
// @Description Delete a user account (admin only)
// @Tags Users
// @Security BearerAuth
// @Produce json
// @Param id path string true "User ID"
// @Success 200 {object} models.Response
// @Router /api/users/{id} [delete]
func (ctrl *UserController) DeleteUser(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(400, gin.H{"success": false, "message": "Invalid user id"})
		return
	}

	if id.Hex() == c.GetString("user_id") {
		c.JSON(400, gin.H{"success": false, "message": "Cannot delete your own account"})
		return
	}

	result, err := config.DB.Collection("users").
		DeleteOne(c.Request.Context(), bson.M{"_id": id})
	if err != nil || result.DeletedCount == 0 {
		c.JSON(404, gin.H{"success": false, "message": "User not found"})
		return
	}

	c.JSON(200, gin.H{"success": true, "message": "User deleted"})
}

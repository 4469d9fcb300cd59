package controllers

import (
	"time"

	"gift-orium/config"
	"gift-orium/libs"
	"gift-orium/models"
	"gift-orium/utils"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type AuthController struct {
	Cloudinary *libs.CloudinaryService
}

func currentUserID(c *gin.Context) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(c.GetString("user_id"))
	if err != nil {
		return primitive.NilObjectID, false
	}
	return id, true
}

// Register godoc
// @Summary Register new user
// @Description Register a new customer account
// @Tags Authentication
// @Accept json
// @Produce json
// @Param request body models.RegisterRequest true "Register Request"
// @Success 201 {object} models.Response
// @Failure 400 {object} models.ErrorResponse
// @Router /api/users/register [post]
func (ctrl *AuthController) Register(c *gin.Context) {
	var req models.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"success": false, "message": "Invalid request"})
		return
	}

	users := config.DB.Collection("users")
	ctx := c.Request.Context()

	count, _ := users.CountDocuments(ctx, bson.M{"email": req.Email})
	if count > 0 {
		c.JSON(400, gin.H{"success": false, "message": "Email already exists"})
		return
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		c.JSON(500, gin.H{"success": false, "message": "Registration failed"})
		return
	}

	now := time.Now()
	user := models.User{
		Name:      req.Name,
		Email:     req.Email,
		Password:  hash,
		Role:      models.RoleUser,
		CreatedAt: now,
		UpdatedAt: now,
	}

	result, err := users.InsertOne(ctx, user)
	if err != nil {
		c.JSON(500, gin.H{"success": false, "message": "Registration failed"})
		return
	}
	user.ID = result.InsertedID.(primitive.ObjectID)

	token, _ := utils.GenerateToken(user.ID.Hex(), user.Email, user.Role)

	c.JSON(201, gin.H{
		"success": true,
		"message": "Registration successful",
		"data": models.LoginResponse{
			Token: token,
			User:  user,
		},
	})
}

// Login godoc
// @Summary User login
// @Description Login with email and password
// @Tags Authentication
// @Accept json
// @Produce json
// @Param request body models.LoginRequest true "Login Request"
// @Success 200 {object} models.Response
// @Failure 401 {object} models.ErrorResponse
// @Router /api/users/login [post]
func (ctrl *AuthController) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"success": false, "message": "Invalid request"})
		return
	}

	var user models.User
	err := config.DB.Collection("users").
		FindOne(c.Request.Context(), bson.M{"email": req.Email}).
		Decode(&user)

	if err != nil {
		c.JSON(401, gin.H{"success": false, "message": "Invalid credentials"})
		return
	}

	valid, err := utils.VerifyPassword(user.Password, req.Password)
	if err != nil || !valid {
		c.JSON(401, gin.H{"success": false, "message": "Invalid credentials"})
		return
	}

	token, _ := utils.GenerateToken(user.ID.Hex(), user.Email, user.Role)

	c.JSON(200, gin.H{
		"success": true,
		"message": "Login successful",
		"data": models.LoginResponse{
			Token: token,
			User:  user,
		},
	})
}

// ValidateToken godoc
// @Summary Validate token
// @Description Confirm the bearer token is still valid and return its user
// @Tags Authentication
// @Security BearerAuth
// @Produce json
// @Success 200 {object} models.Response
// @Router /api/users/validate-token [get]
func (ctrl *AuthController) ValidateToken(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(401, gin.H{"success": false, "message": "Unauthorized"})
		return
	}

	var user models.User
	if err := config.DB.Collection("users").
		FindOne(c.Request.Context(), bson.M{"_id": userID}).
		Decode(&user); err != nil {
		c.JSON(401, gin.H{"success": false, "message": "User no longer exists"})
		return
	}

	c.JSON(200, gin.H{"success": true, "message": "Token is valid", "data": user})
}

// GetProfile godoc
// @Summary Get user profile
// @Description Get current user profile
// @Tags Authentication
// @Security BearerAuth
// @Produce json
// @Success 200 {object} models.Response
// @Router /api/users/profile [get]
func (ctrl *AuthController) GetProfile(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(401, gin.H{"success": false, "message": "Unauthorized"})
		return
	}

	var user models.User
	if err := config.DB.Collection("users").
		FindOne(c.Request.Context(), bson.M{"_id": userID}).
		Decode(&user); err != nil {
		c.JSON(404, gin.H{"success": false, "message": "User not found"})
		return
	}

	c.JSON(200, gin.H{"success": true, "message": "Profile retrieved", "data": user})
}

// UpdateProfile godoc
// @Summary Update profile
// @Description Update profile fields; accepts an avatar file as multipart
// @Tags Authentication
// @Security BearerAuth
// @Accept multipart/form-data
// @Produce json
// @Param name formData string false "Display name"
// @Param avatar formData file false "Avatar image"
// @Success 200 {object} models.Response
// @Router /api/users/profile [patch]
func (ctrl *AuthController) UpdateProfile(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(401, gin.H{"success": false, "message": "Unauthorized"})
		return
	}
	ctx := c.Request.Context()

	update := bson.M{"updated_at": time.Now()}

	contentType := c.ContentType()
	if contentType == "application/json" {
		var req models.UpdateProfileRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(400, gin.H{"success": false, "message": "Invalid request"})
			return
		}
		if req.Name != "" {
			update["name"] = req.Name
		}
		if req.Address != nil {
			update["address"] = req.Address
		}
	} else {
		if name := c.PostForm("name"); name != "" {
			update["name"] = name
		}
		address := models.Address{
			Street:     c.PostForm("street"),
			City:       c.PostForm("city"),
			PostalCode: c.PostForm("postal_code"),
			Country:    c.PostForm("country"),
		}
		if address != (models.Address{}) {
			update["address"] = address
		}

		if file, err := c.FormFile("avatar"); err == nil {
			if ctrl.Cloudinary == nil {
				c.JSON(503, gin.H{"success": false, "message": "Image upload not configured"})
				return
			}
			if err := ctrl.Cloudinary.ValidateImageFile(file); err != nil {
				c.JSON(400, gin.H{"success": false, "message": err.Error()})
				return
			}
			f, err := file.Open()
			if err != nil {
				c.JSON(500, gin.H{"success": false, "message": "Failed to read avatar"})
				return
			}
			url, _, err := ctrl.Cloudinary.UploadImage(ctx, f, file.Filename, "avatars")
			f.Close()
			if err != nil {
				c.JSON(500, gin.H{"success": false, "message": "Failed to upload avatar"})
				return
			}
			update["avatar_url"] = url
		}
	}

	result := config.DB.Collection("users").FindOneAndUpdate(ctx,
		bson.M{"_id": userID},
		bson.M{"$set": update},
		mongoReturnAfter())

	var user models.User
	if err := result.Decode(&user); err != nil {
		c.JSON(404, gin.H{"success": false, "message": "User not found"})
		return
	}

	c.JSON(200, gin.H{"success": true, "message": "Profile updated", "data": user})
}

// ChangePassword godoc
// @Summary Change password
// @Description Change the current user's password
// @Tags Authentication
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body models.ChangePasswordRequest true "Password Request"
// @Success 200 {object} models.Response
// @Router /api/users/change-password [post]
func (ctrl *AuthController) ChangePassword(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(401, gin.H{"success": false, "message": "Unauthorized"})
		return
	}

	var req models.ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"success": false, "message": "Invalid request"})
		return
	}

	ctx := c.Request.Context()
	users := config.DB.Collection("users")

	var user models.User
	if err := users.FindOne(ctx, bson.M{"_id": userID}).Decode(&user); err != nil {
		c.JSON(404, gin.H{"success": false, "message": "User not found"})
		return
	}

	valid, err := utils.VerifyPassword(user.Password, req.OldPassword)
	if err != nil || !valid {
		c.JSON(400, gin.H{"success": false, "message": "Invalid old password"})
		return
	}

	newHash, err := utils.HashPassword(req.NewPassword)
	if err != nil {
		c.JSON(500, gin.H{"success": false, "message": "Failed to change password"})
		return
	}

	users.UpdateOne(ctx, bson.M{"_id": userID},
		bson.M{"$set": bson.M{"password": newHash, "updated_at": time.Now()}})

	c.JSON(200, gin.H{"success": true, "message": "Password changed"})
}

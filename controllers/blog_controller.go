package controllers

import (
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	"gift-orium/config"
	"gift-orium/libs"
	"gift-orium/models"
	"gift-orium/utils"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type BlogController struct {
	Cloudinary *libs.CloudinaryService
}

// ensureUniqueSlug appends a numeric suffix when the derived slug is already
// taken by another post.
func ensureUniqueSlug(c *gin.Context, slug string, excludeID primitive.ObjectID) string {
	posts := config.DB.Collection("blog_posts")
	candidate := slug
	for i := 2; ; i++ {
		filter := bson.M{"slug": candidate}
		if excludeID != primitive.NilObjectID {
			filter["_id"] = bson.M{"$ne": excludeID}
		}
		count, err := posts.CountDocuments(c.Request.Context(), filter)
		if err != nil || count == 0 {
			return candidate
		}
		candidate = fmt.Sprintf("%s-%d", slug, i)
	}
}

// GetPublishedPosts godoc
// @Summary List blog posts
// @Description List published posts with optional tag and featured filters
// @Tags Blog
// @Produce json
// @Param tag query string false "Filter by tag"
// @Param featured query bool false "Only featured posts"
// @Param page query int false "Page number"
// @Param limit query int false "Items per page"
// @Success 200 {object} models.PaginationResponse
// @Router /api/blogs [get]
func (ctrl *BlogController) GetPublishedPosts(c *gin.Context) {
	ctx := c.Request.Context()
	filter := bson.M{"status": models.BlogStatusPublished}

	if tag := c.Query("tag"); tag != "" {
		filter["tags"] = tag
	}
	if raw := c.Query("featured"); raw != "" {
		featured, err := strconv.ParseBool(raw)
		if err != nil {
			c.JSON(400, gin.H{"success": false, "message": "featured must be true or false"})
			return
		}
		filter["featured"] = featured
	}

	page, limit := getPaginationParams(c)
	posts := config.DB.Collection("blog_posts")

	totalItems, err := posts.CountDocuments(ctx, filter)
	if err != nil {
		c.JSON(500, gin.H{"success": false, "message": "Failed to fetch posts"})
		return
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetSkip(int64((page - 1) * limit)).
		SetLimit(int64(limit))

	cursor, err := posts.Find(ctx, filter, opts)
	if err != nil {
		c.JSON(500, gin.H{"success": false, "message": "Failed to fetch posts"})
		return
	}
	defer cursor.Close(ctx)

	list := []models.BlogPost{}
	if err := cursor.All(ctx, &list); err != nil {
		c.JSON(500, gin.H{"success": false, "message": "Failed to fetch posts"})
		return
	}

	c.JSON(200, models.PaginationResponse{
		Success: true,
		Message: "Posts retrieved",
		Data:    list,
		Meta:    buildPaginationMeta(page, limit, totalItems),
	})
}

// GetPost godoc
// @Summary Get blog post
// @Description Get a published post by id or slug
// @Tags Blog
// @Produce json
// @Param idOrSlug path string true "Post ID or slug"
// @Success 200 {object} models.Response
// @Failure 404 {object} models.ErrorResponse
// @Router /api/blogs/{idOrSlug} [get]
func (ctrl *BlogController) GetPost(c *gin.Context) {
	idOrSlug := c.Param("idOrSlug")

	filter := bson.M{"status": models.BlogStatusPublished}
	if id, err := primitive.ObjectIDFromHex(idOrSlug); err == nil {
		filter["_id"] = id
	} else {
		filter["slug"] = idOrSlug
	}

	var post models.BlogPost
	if err := config.DB.Collection("blog_posts").
		FindOne(c.Request.Context(), filter).
		Decode(&post); err != nil {
		c.JSON(404, gin.H{"success": false, "message": "Post not found"})
		return
	}

	c.JSON(200, gin.H{"success": true, "message": "Post retrieved", "data": post})
}

// GetAllPosts godoc
// @Summary List all blog posts
// @Description List every post including drafts (admin only)
// @Tags Blog
// @Security BearerAuth
// @Produce json
// @Param status query string false "Filter by status"
// @Success 200 {object} models.Response
// @Router /api/blogs/all [get]
func (ctrl *BlogController) GetAllPosts(c *gin.Context) {
	ctx := c.Request.Context()
	filter := bson.M{}
	if status := c.Query("status"); status != "" {
		if status != models.BlogStatusDraft && status != models.BlogStatusPublished {
			c.JSON(400, gin.H{"success": false, "message": "Unknown post status"})
			return
		}
		filter["status"] = status
	}

	cursor, err := config.DB.Collection("blog_posts").Find(ctx, filter,
		options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		c.JSON(500, gin.H{"success": false, "message": "Failed to fetch posts"})
		return
	}
	defer cursor.Close(ctx)

	list := []models.BlogPost{}
	if err := cursor.All(ctx, &list); err != nil {
		c.JSON(500, gin.H{"success": false, "message": "Failed to fetch posts"})
		return
	}

	c.JSON(200, gin.H{"success": true, "message": "Posts retrieved", "data": list})
}

func (ctrl *BlogController) uploadBlogImage(c *gin.Context, field string) (string, bool, error) {
	file, err := c.FormFile(field)
	if err != nil {
		return "", false, nil
	}
	if ctrl.Cloudinary == nil {
		return "", false, fmt.Errorf("image upload not configured")
	}
	if err := ctrl.Cloudinary.ValidateImageFile(file); err != nil {
		return "", false, err
	}
	f, err := file.Open()
	if err != nil {
		return "", false, err
	}
	defer f.Close()
	url, _, err := ctrl.Cloudinary.UploadImage(c.Request.Context(), f, file.Filename, "blog")
	if err != nil {
		return "", false, err
	}
	return url, true, nil
}

func (ctrl *BlogController) uploadContentImages(c *gin.Context) ([]string, error) {
	form, err := c.MultipartForm()
	if err != nil {
		return nil, nil
	}
	files := form.File["contentImages"]
	if len(files) == 0 {
		return nil, nil
	}
	if ctrl.Cloudinary == nil {
		return nil, fmt.Errorf("image upload not configured")
	}
	return ctrl.Cloudinary.UploadMultipleImages(c.Request.Context(), files, "blog")
}

// CreatePost godoc
// @Summary Create blog post
// @Description Create a post; the slug is derived from the title (admin only)
// @Tags Blog
// @Security BearerAuth
// @Accept multipart/form-data
// @Produce json
// @Param title formData string true "Post title"
// @Param content formData string true "Post content"
// @Param featuredImage formData file false "Featured image"
// @Success 201 {object} models.Response
// @Router /api/blogs [post]
func (ctrl *BlogController) CreatePost(c *gin.Context) {
	title := strings.TrimSpace(c.PostForm("title"))
	content := c.PostForm("content")
	if title == "" || content == "" {
		c.JSON(400, gin.H{"success": false, "message": "Title and content are required"})
		return
	}

	status := c.PostForm("status")
	if status == "" {
		status = models.BlogStatusDraft
	}
	if status != models.BlogStatusDraft && status != models.BlogStatusPublished {
		c.JSON(400, gin.H{"success": false, "message": "Unknown post status"})
		return
	}

	slug := utils.Slugify(title)
	if slug == "" {
		c.JSON(400, gin.H{"success": false, "message": "Title must contain letters or digits"})
		return
	}
	slug = ensureUniqueSlug(c, slug, primitive.NilObjectID)

	featuredImage, _, err := ctrl.uploadBlogImage(c, "featuredImage")
	if err != nil {
		c.JSON(400, gin.H{"success": false, "message": err.Error()})
		return
	}
	contentImages, err := ctrl.uploadContentImages(c)
	if err != nil {
		c.JSON(400, gin.H{"success": false, "message": err.Error()})
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

	authorID, _ := currentUserID(c)
	now := time.Now()
	post := models.BlogPost{
		Title:         title,
		Slug:          slug,
		Content:       content,
		Summary:       c.PostForm("summary"),
		AuthorID:      authorID,
		FeaturedImage: featuredImage,
		ContentImages: contentImages,
		Tags:          tags,
		Status:        status,
		Featured:      featured,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	result, err := config.DB.Collection("blog_posts").InsertOne(c.Request.Context(), post)
	if err != nil {
		c.JSON(500, gin.H{"success": false, "message": "Failed to create post"})
		return
	}
	post.ID = result.InsertedID.(primitive.ObjectID)

	c.JSON(201, gin.H{"success": true, "message": "Post created", "data": post})
}

// UpdatePost godoc
// @Summary Update blog post
// @Description Update post fields; a title change re-derives the slug
// @Description (admin only)
// @Tags Blog
// @Security BearerAuth
// @Accept multipart/form-data
// @Produce json
// @Param id path string true "Post ID"
// @Success 200 {object} models.Response
// @Router /api/blogs/{id} [patch]
func (ctrl *BlogController) UpdatePost(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(400, gin.H{"success": false, "message": "Invalid post id"})
		return
	}
	ctx := c.Request.Context()
	posts := config.DB.Collection("blog_posts")

	var existing models.BlogPost
	if err := posts.FindOne(ctx, bson.M{"_id": id}).Decode(&existing); err != nil {
		c.JSON(404, gin.H{"success": false, "message": "Post not found"})
		return
	}

	update := bson.M{"updated_at": time.Now()}

	if title := strings.TrimSpace(c.PostForm("title")); title != "" && title != existing.Title {
		slug := utils.Slugify(title)
		if slug == "" {
			c.JSON(400, gin.H{"success": false, "message": "Title must contain letters or digits"})
			return
		}
		update["title"] = title
		update["slug"] = ensureUniqueSlug(c, slug, id)
	}
	if content := c.PostForm("content"); content != "" {
		update["content"] = content
	}
	if summary := c.PostForm("summary"); summary != "" {
		update["summary"] = summary
	}
	if status := c.PostForm("status"); status != "" {
		if status != models.BlogStatusDraft && status != models.BlogStatusPublished {
			c.JSON(400, gin.H{"success": false, "message": "Unknown post status"})
			return
		}
		update["status"] = status
	}
	if raw := c.PostForm("featured"); raw != "" {
		featured, err := strconv.ParseBool(raw)
		if err != nil {
			c.JSON(400, gin.H{"success": false, "message": "featured must be true or false"})
			return
		}
		update["featured"] = featured
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

	featuredImage, uploaded, err := ctrl.uploadBlogImage(c, "featuredImage")
	if err != nil {
		c.JSON(400, gin.H{"success": false, "message": err.Error()})
		return
	}
	if uploaded {
		update["featured_image"] = featuredImage
		if existing.FeaturedImage != "" && ctrl.Cloudinary != nil {
			if err := ctrl.Cloudinary.DeleteImage(ctx, existing.FeaturedImage); err != nil {
				log.Printf("Failed to delete old featured image: %v", err)
			}
		}
	}
	contentImages, err := ctrl.uploadContentImages(c)
	if err != nil {
		c.JSON(400, gin.H{"success": false, "message": err.Error()})
		return
	}
	if len(contentImages) > 0 {
		update["content_images"] = append(append([]string{}, existing.ContentImages...), contentImages...)
	}

	var post models.BlogPost
	err = posts.FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{"$set": update},
		mongoReturnAfter()).Decode(&post)
	if err != nil {
		c.JSON(404, gin.H{"success": false, "message": "Post not found"})
		return
	}

	c.JSON(200, gin.H{"success": true, "message": "Post updated", "data": post})
}

// DeletePost godoc
// @Summary Delete blog post
// @Description Delete a post and its hosted images (admin only)
// @Tags Blog
// @Security BearerAuth
// @Produce json
// @Param id path string true "Post ID"
// @Success 200 {object} models.Response
// @Router /api/blogs/{id} [delete]
func (ctrl *BlogController) DeletePost(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(400, gin.H{"success": false, "message": "Invalid post id"})
		return
	}
	ctx := c.Request.Context()
	posts := config.DB.Collection("blog_posts")

	var post models.BlogPost
	if err := posts.FindOne(ctx, bson.M{"_id": id}).Decode(&post); err != nil {
		c.JSON(404, gin.H{"success": false, "message": "Post not found"})
		return
	}

	if _, err := posts.DeleteOne(ctx, bson.M{"_id": id}); err != nil {
		c.JSON(500, gin.H{"success": false, "message": "Failed to delete post"})
		return
	}

	if ctrl.Cloudinary != nil {
		for _, image := range append([]string{post.FeaturedImage}, post.ContentImages...) {
			if image == "" {
				continue
			}
			if err := ctrl.Cloudinary.DeleteImage(ctx, image); err != nil {
				log.Printf("Failed to delete blog image: %v", err)
			}
		}
	}

	c.JSON(200, gin.H{"success": true, "message": "Post deleted"})
}

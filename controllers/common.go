package controllers

import (
	"fmt"
	"strconv"

	"gift-orium/models"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func mongoReturnAfter() *options.FindOneAndUpdateOptions {
	return options.FindOneAndUpdate().SetReturnDocument(options.After)
}

func getPaginationParams(c *gin.Context) (page, limit int) {
	page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ = strconv.Atoi(c.DefaultQuery("limit", "10"))
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}
	if limit > 100 {
		limit = 100
	}
	return page, limit
}

func generateLinks(c *gin.Context, page, limit, totalPages int) models.PaginationLinks {
	base := c.Request.URL.Path

	query := c.Request.URL.Query()
	buildURL := func(p int) string {
		query.Set("page", strconv.Itoa(p))
		query.Set("limit", strconv.Itoa(limit))
		return fmt.Sprintf("%s?%s", base, query.Encode())
	}

	links := models.PaginationLinks{Self: buildURL(page)}
	if page < totalPages {
		links.Next = buildURL(page + 1)
	}
	if page > 1 {
		links.Prev = buildURL(page - 1)
	}
	return links
}

func buildPaginationMeta(page, limit int, totalItems int64) models.PaginationMeta {
	totalPages := int((totalItems + int64(limit) - 1) / int64(limit))
	return models.PaginationMeta{
		Page:       page,
		Limit:      limit,
		TotalItems: int(totalItems),
		TotalPages: totalPages,
	}
}

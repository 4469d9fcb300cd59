package controllers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestBuildPaginationMeta(t *testing.T) {
	meta := buildPaginationMeta(2, 10, 35)
	assert.Equal(t, 2, meta.Page)
	assert.Equal(t, 10, meta.Limit)
	assert.Equal(t, 35, meta.TotalItems)
	assert.Equal(t, 4, meta.TotalPages)

	empty := buildPaginationMeta(1, 10, 0)
	assert.Equal(t, 0, empty.TotalPages)
}

func TestGetPaginationParamsClampsLimit(t *testing.T) {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodGet, "/api/products?page=0&limit=500", nil)

	page, limit := getPaginationParams(c)
	assert.Equal(t, 1, page)
	assert.Equal(t, 100, limit)
}

func TestGenerateLinks(t *testing.T) {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodGet, "/api/orders?page=2&limit=10&status=pending", nil)

	links := generateLinks(c, 2, 10, 4)
	assert.Contains(t, links.Self, "page=2")
	assert.Contains(t, links.Next, "page=3")
	assert.Contains(t, links.Prev, "page=1")
	assert.Contains(t, links.Self, "status=pending")

	lastPage := generateLinks(c, 4, 10, 4)
	assert.Empty(t, lastPage.Next)

	firstPage := generateLinks(c, 1, 10, 4)
	assert.Empty(t, firstPage.Prev)
}

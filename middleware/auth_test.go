package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"gift-orium/config"
	"gift-orium/models"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func init() {
	gin.SetMode(gin.TestMode)
	config.AppConfig = &config.Config{JWTSecret: "test-secret", JWTExpiry: "1h"}
}

func performRequest(router *gin.Engine, authHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestAuthMiddlewareRejectsMissingHeader(t *testing.T) {
	router := gin.New()
	router.GET("/protected", AuthMiddleware(), func(c *gin.Context) { c.Status(200) })

	w := performRequest(router, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Authorization header required")
}

func TestAuthMiddlewareRejectsMalformedHeader(t *testing.T) {
	router := gin.New()
	router.GET("/protected", AuthMiddleware(), func(c *gin.Context) { c.Status(200) })

	for _, header := range []string{"token-only", "Basic abc123", "Bearer a b"} {
		w := performRequest(router, header)
		assert.Equal(t, http.StatusUnauthorized, w.Code, "header %q", header)
		assert.Contains(t, w.Body.String(), "Invalid authorization header format")
	}
}

func TestAuthMiddlewareRejectsBadToken(t *testing.T) {
	router := gin.New()
	router.GET("/protected", AuthMiddleware(), func(c *gin.Context) { c.Status(200) })

	w := performRequest(router, "Bearer not-a-jwt")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid or expired token")
}

func TestAdminMiddlewareRejectsMissingRole(t *testing.T) {
	router := gin.New()
	router.GET("/protected", AdminMiddleware(), func(c *gin.Context) { c.Status(200) })

	w := performRequest(router, "")
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestAdminMiddlewareRejectsNonAdmin(t *testing.T) {
	router := gin.New()
	router.GET("/protected",
		func(c *gin.Context) { c.Set("user_role", models.RoleUser) },
		AdminMiddleware(),
		func(c *gin.Context) { c.Status(200) })

	w := performRequest(router, "")
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), "Admin role required")
}

func TestAdminMiddlewareAllowsAdmin(t *testing.T) {
	router := gin.New()
	router.GET("/protected",
		func(c *gin.Context) { c.Set("user_role", models.RoleAdmin) },
		AdminMiddleware(),
		func(c *gin.Context) { c.Status(200) })

	w := performRequest(router, "")
	assert.Equal(t, http.StatusOK, w.Code)
}

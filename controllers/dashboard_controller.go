package controllers

import (
	"context"
	"encoding/json"
	"time"

	"gift-orium/config"
	"gift-orium/models"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
)

type DashboardController struct{}

const dashboardCacheTTL = 5 * time.Minute

type dashboardStats struct {
	TotalRevenue      float64          `json:"total_revenue"`
	TotalOrders       int64            `json:"total_orders"`
	TotalUsers        int64            `json:"total_users"`
	TotalProducts     int64            `json:"total_products"`
	TotalTestimonials int64            `json:"total_testimonials"`
	NewUsers30d       int64            `json:"new_users_30d"`
	OrdersByStatus    map[string]int64 `json:"orders_by_status"`
	TopProducts       []topProduct     `json:"top_products"`
}

type topProduct struct {
	ProductID string  `json:"product_id" bson:"_id"`
	Name      string  `json:"name" bson:"name"`
	Quantity  int64   `json:"quantity" bson:"quantity"`
	Revenue   float64 `json:"revenue" bson:"revenue"`
}

type monthlySales struct {
	Month   string  `json:"month" bson:"_id"`
	Orders  int64   `json:"orders" bson:"orders"`
	Revenue float64 `json:"revenue" bson:"revenue"`
}

func aggregateRevenue(ctx context.Context) (float64, error) {
	cursor, err := config.DB.Collection("orders").Aggregate(ctx, []bson.M{
		{"$match": bson.M{"status": bson.M{"$ne": models.OrderStatusCancelled}}},
		{"$group": bson.M{"_id": nil, "total": bson.M{"$sum": "$total_amount"}}},
	})
	if err != nil {
		return 0, err
	}
	defer cursor.Close(ctx)

	var results []struct {
		Total float64 `bson:"total"`
	}
	if err := cursor.All(ctx, &results); err != nil {
		return 0, err
	}
	if len(results) == 0 {
		return 0, nil
	}
	return results[0].Total, nil
}

func aggregateOrdersByStatus(ctx context.Context) (map[string]int64, error) {
	cursor, err := config.DB.Collection("orders").Aggregate(ctx, []bson.M{
		{"$group": bson.M{"_id": "$status", "count": bson.M{"$sum": 1}}},
	})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var results []struct {
		Status string `bson:"_id"`
		Count  int64  `bson:"count"`
	}
	if err := cursor.All(ctx, &results); err != nil {
		return nil, err
	}

	byStatus := map[string]int64{}
	for _, r := range results {
		byStatus[r.Status] = r.Count
	}
	return byStatus, nil
}

// aggregateTopProducts unwinds order line items and ranks products by units
// sold, cancelled orders excluded.
func aggregateTopProducts(ctx context.Context) ([]topProduct, error) {
	cursor, err := config.DB.Collection("orders").Aggregate(ctx, []bson.M{
		{"$match": bson.M{"status": bson.M{"$ne": models.OrderStatusCancelled}}},
		{"$unwind": "$items"},
		{"$group": bson.M{
			"_id":      "$items.product_id",
			"name":     bson.M{"$first": "$items.name"},
			"quantity": bson.M{"$sum": "$items.quantity"},
			"revenue":  bson.M{"$sum": bson.M{"$multiply": []interface{}{"$items.price", "$items.quantity"}}},
		}},
		{"$sort": bson.M{"quantity": -1}},
		{"$limit": 5},
	})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	products := []topProduct{}
	if err := cursor.All(ctx, &products); err != nil {
		return nil, err
	}
	return products, nil
}

// GetDashboard godoc
// @Summary Dashboard statistics
// @Description Revenue, order, user and product aggregates for the admin
// @Description dashboard; cached for five minutes (admin only)
// @Tags Dashboard
// @Security BearerAuth
// @Produce json
// @Success 200 {object} models.Response
// @Router /api/admin/dashboard [get]
func (ctrl *DashboardController) GetDashboard(c *gin.Context) {
	ctx := c.Request.Context()

	const cacheKey = "dashboard:stats"
	if config.RedisClient != nil {
		if cached, err := config.RedisClient.Get(ctx, cacheKey).Result(); err == nil {
			var stats dashboardStats
			if json.Unmarshal([]byte(cached), &stats) == nil {
				c.JSON(200, gin.H{"success": true, "message": "Dashboard retrieved", "data": stats})
				return
			}
		}
	}

	revenue, err := aggregateRevenue(ctx)
	if err != nil {
		c.JSON(500, gin.H{"success": false, "message": "Failed to build dashboard"})
		return
	}
	byStatus, err := aggregateOrdersByStatus(ctx)
	if err != nil {
		c.JSON(500, gin.H{"success": false, "message": "Failed to build dashboard"})
		return
	}
	topProducts, err := aggregateTopProducts(ctx)
	if err != nil {
		c.JSON(500, gin.H{"success": false, "message": "Failed to build dashboard"})
		return
	}

	totalOrders, _ := config.DB.Collection("orders").CountDocuments(ctx, bson.M{})
	totalUsers, _ := config.DB.Collection("users").CountDocuments(ctx, bson.M{})
	totalProducts, _ := config.DB.Collection("products").CountDocuments(ctx, bson.M{})
	totalTestimonials, _ := config.DB.Collection("testimonials").CountDocuments(ctx, bson.M{})
	newUsers, _ := config.DB.Collection("users").CountDocuments(ctx, bson.M{
		"created_at": bson.M{"$gte": time.Now().AddDate(0, 0, -30)},
	})

	stats := dashboardStats{
		TotalRevenue:      revenue,
		TotalOrders:       totalOrders,
		TotalUsers:        totalUsers,
		TotalProducts:     totalProducts,
		TotalTestimonials: totalTestimonials,
		NewUsers30d:       newUsers,
		OrdersByStatus:    byStatus,
		TopProducts:       topProducts,
	}

	if config.RedisClient != nil {
		if payload, err := json.Marshal(stats); err == nil {
			config.RedisClient.Set(ctx, cacheKey, payload, dashboardCacheTTL)
		}
	}

	c.JSON(200, gin.H{"success": true, "message": "Dashboard retrieved", "data": stats})
}

// GetMonthlySales godoc
// @Summary Monthly sales
// @Description Order counts and revenue per month for the trailing twelve
// @Description months, cancelled orders excluded (admin only)
// @Tags Dashboard
// @Security BearerAuth
// @Produce json
// @Success 200 {object} models.Response
// @Router /api/admin/sales/monthly [get]
func (ctrl *DashboardController) GetMonthlySales(c *gin.Context) {
	ctx := c.Request.Context()
	since := time.Now().AddDate(-1, 0, 0)

	cursor, err := config.DB.Collection("orders").Aggregate(ctx, []bson.M{
		{"$match": bson.M{
			"status":     bson.M{"$ne": models.OrderStatusCancelled},
			"created_at": bson.M{"$gte": since},
		}},
		{"$group": bson.M{
			"_id":     bson.M{"$dateToString": bson.M{"format": "%Y-%m", "date": "$created_at"}},
			"orders":  bson.M{"$sum": 1},
			"revenue": bson.M{"$sum": "$total_amount"},
		}},
		{"$sort": bson.M{"_id": 1}},
	})
	if err != nil {
		c.JSON(500, gin.H{"success": false, "message": "Failed to fetch sales"})
		return
	}
	defer cursor.Close(ctx)

	sales := []monthlySales{}
	if err := cursor.All(ctx, &sales); err != nil {
		c.JSON(500, gin.H{"success": false, "message": "Failed to fetch sales"})
		return
	}

	c.JSON(200, gin.H{"success": true, "message": "Monthly sales retrieved", "data": sales})
}

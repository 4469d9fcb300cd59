package routes

import (
	"log"

	"gift-orium/controllers"
	"gift-orium/libs"
	"gift-orium/middleware"
	"gift-orium/models"
	"gift-orium/repositories"
	"gift-orium/services"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func SetupRoutes(router *gin.Engine) {
	cloudinarySvc, err := libs.NewCloudinaryService()
	if err != nil {
		log.Printf("Warning: %v, image uploads disabled", err)
	}

	var mailer services.OrderMailer
	if emailSvc, err := models.NewEmailService(); err == nil {
		mailer = emailSvc
	} else {
		log.Printf("Warning: %v, order emails disabled", err)
	}

	productRepo := repositories.NewProductRepository()
	cartRepo := repositories.NewCartRepository()
	orderRepo := repositories.NewOrderRepository()
	testimonialRepo := repositories.NewTestimonialRepository()

	cartSvc := services.NewCartService(productRepo, cartRepo)
	orderSvc := services.NewOrderService(productRepo, cartRepo, orderRepo, mailer)
	testimonialSvc := services.NewTestimonialService(testimonialRepo, orderRepo, productRepo)

	authCtrl := &controllers.AuthController{Cloudinary: cloudinarySvc}
	userCtrl := &controllers.UserController{}
	productCtrl := &controllers.ProductController{Cloudinary: cloudinarySvc}
	cartCtrl := &controllers.CartController{Service: cartSvc, Products: productRepo}
	orderCtrl := &controllers.OrderController{Service: orderSvc}
	testimonialCtrl := &controllers.TestimonialController{Service: testimonialSvc}
	blogCtrl := &controllers.BlogController{Cloudinary: cloudinarySvc}
	dashboardCtrl := &controllers.DashboardController{}

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	router.GET("/health", func(c *gin.Context) { c.JSON(200, gin.H{"status": "ok"}) })

	api := router.Group("/api")
	authRequired := middleware.AuthMiddleware()
	adminRequired := middleware.AdminMiddleware()

	// users
	api.POST("/users/register", authCtrl.Register)
	api.POST("/users/login", authCtrl.Login)
	api.GET("/users/validate-token", authRequired, authCtrl.ValidateToken)
	api.GET("/users/profile", authRequired, authCtrl.GetProfile)
	api.PATCH("/users/profile", authRequired, authCtrl.UpdateProfile)
	api.POST("/users/change-password", authRequired, authCtrl.ChangePassword)
	api.GET("/users", authRequired, adminRequired, userCtrl.GetAllUsers)
	api.POST("/users", authRequired, adminRequired, userCtrl.CreateUser)
	api.GET("/users/:id", authRequired, adminRequired, userCtrl.GetUserByID)
	api.PATCH("/users/:id", authRequired, adminRequired, userCtrl.UpdateUser)
	api.DELETE("/users/:id", authRequired, adminRequired, userCtrl.DeleteUser)

	// catalog
	api.GET("/products", productCtrl.GetAllProducts)
	api.GET("/products/:id", productCtrl.GetProductByID)
	api.POST("/products", authRequired, adminRequired, productCtrl.CreateProduct)
	api.PATCH("/products/:id", authRequired, adminRequired, productCtrl.UpdateProduct)
	api.DELETE("/products/:id", authRequired, adminRequired, productCtrl.DeleteProduct)
	api.POST("/products/upload", authRequired, adminRequired, productCtrl.UploadImage)

	// cart
	api.GET("/cart", authRequired, cartCtrl.GetCart)
	api.POST("/cart/add", authRequired, cartCtrl.AddToCart)
	api.PATCH("/cart/update/:productId", authRequired, cartCtrl.UpdateCartItem)
	api.DELETE("/cart/remove/:productId", authRequired, cartCtrl.RemoveFromCart)
	api.DELETE("/cart/clear", authRequired, cartCtrl.ClearCart)

	// orders
	api.POST("/orders", authRequired, orderCtrl.PlaceOrder)
	api.GET("/orders/my-orders", authRequired, orderCtrl.GetMyOrders)
	api.GET("/orders/:id", authRequired, orderCtrl.GetOrderByID)
	api.GET("/orders", authRequired, adminRequired, orderCtrl.GetAllOrders)
	api.PATCH("/orders/:id/status", authRequired, adminRequired, orderCtrl.UpdateOrderStatus)
	api.PATCH("/orders/:id/tracking", authRequired, adminRequired, orderCtrl.UpdateOrderTracking)
	api.PATCH("/orders/:id/notes", authRequired, adminRequired, orderCtrl.UpdateOrderNotes)
	api.PATCH("/orders/:id/payment", authRequired, adminRequired, orderCtrl.UpdateOrderPayment)

	// testimonials
	api.GET("/testimonials", testimonialCtrl.GetAllTestimonials)
	api.POST("/testimonials", authRequired, testimonialCtrl.CreateTestimonial)
	api.PATCH("/testimonials/:id", authRequired, adminRequired, testimonialCtrl.UpdateTestimonial)
	api.DELETE("/testimonials/:id", authRequired, adminRequired, testimonialCtrl.DeleteTestimonial)

	// blog
	api.GET("/blogs", blogCtrl.GetPublishedPosts)
	api.GET("/blogs/all", authRequired, adminRequired, blogCtrl.GetAllPosts)
	api.GET("/blogs/:idOrSlug", blogCtrl.GetPost)
	api.POST("/blogs", authRequired, adminRequired, blogCtrl.CreatePost)
	api.PATCH("/blogs/:id", authRequired, adminRequired, blogCtrl.UpdatePost)
	api.DELETE("/blogs/:id", authRequired, adminRequired, blogCtrl.DeletePost)

	admin := api.Group("/admin")
	admin.Use(authRequired, adminRequired)
	{
		admin.GET("/dashboard", dashboardCtrl.GetDashboard)
		admin.GET("/sales/monthly", dashboardCtrl.GetMonthlySales)
	}
}

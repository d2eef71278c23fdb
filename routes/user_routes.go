package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/Badalsingh25/CraftConnect/middleware"
)

// initUserRoutes registers the customer and artisan facing routes
func initUserRoutes(router *gin.RouterGroup, deps Dependencies) {
	auth := middleware.AuthMiddleware(deps.JWTSecret, deps.Users)

	// Public routes
	router.GET("/payments/config", deps.Payments.GetPaymentConfig)
	router.POST("/payments/webhook", deps.Payments.Webhook)
	router.GET("/products/:id/reviews", deps.Reviews.GetProductReviews)
	router.POST("/contact/public", deps.Contact.PublicContact)

	// Protected routes
	router.POST("/coupons/validate", auth, deps.Coupons.ValidateCoupon)

	orders := router.Group("/orders", auth)
	{
		orders.POST("/checkout", deps.Orders.Checkout)
		orders.GET("/mine", deps.Orders.GetMyOrders)
		orders.GET("/mine/export", deps.Orders.ExportMyOrders)
		orders.GET("/customer", deps.Orders.GetCustomerOrders)
		orders.GET("/:id/invoice", deps.Orders.DownloadInvoice)
		orders.PATCH("/:id/status", deps.Orders.UpdateOrderStatus)
		// PUT is kept for clients behind proxies that block PATCH
		orders.PUT("/:id/status", deps.Orders.UpdateOrderStatus)
	}

	payments := router.Group("/payments", auth)
	{
		payments.POST("/create-order", deps.Payments.CreatePaymentOrder)
		payments.POST("/verify", deps.Payments.VerifyPayment)
	}

	router.POST("/products/:id/reviews", auth, deps.Reviews.AddProductReview)
}

package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/Badalsingh25/CraftConnect/middleware"
)

// initAdminRoutes registers coupon administration and review moderation
func initAdminRoutes(router *gin.RouterGroup, deps Dependencies) {
	admin := []gin.HandlerFunc{
		middleware.AuthMiddleware(deps.JWTSecret, deps.Users),
		middleware.AdminMiddleware(),
	}

	coupons := router.Group("/coupons", admin...)
	{
		coupons.GET("", deps.Coupons.ListCoupons)
		coupons.POST("", deps.Coupons.CreateCoupon)
		coupons.PUT("/:id", deps.Coupons.UpdateCoupon)
		coupons.DELETE("/:id", deps.Coupons.DeleteCoupon)
	}

	reviews := router.Group("/reviews", admin...)
	{
		reviews.GET("", deps.Reviews.ListReviews)
		reviews.PATCH("/:id/approval", deps.Reviews.SetReviewApproval)
	}
}

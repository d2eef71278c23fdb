package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/Badalsingh25/CraftConnect/controllers"
	"github.com/Badalsingh25/CraftConnect/services"
	"github.com/Badalsingh25/CraftConnect/utils"
)

// Dependencies is everything the router needs to serve the API
type Dependencies struct {
	JWTSecret          string
	AllowedOrigin      string
	PaymentsConfigured bool
	Users              services.UserStore

	Coupons  *controllers.CouponController
	Orders   *controllers.OrderController
	Payments *controllers.PaymentController
	Reviews  *controllers.ReviewController
	Contact  *controllers.ContactController
}

// SetupRouter initializes and returns the Gin router with all routes
func SetupRouter(deps Dependencies) *gin.Engine {
	router := gin.New()

	router.Use(utils.RequestIDMiddleware())
	router.Use(utils.LoggerMiddleware())
	router.Use(utils.RecoveryMiddleware())
	router.Use(utils.CORSMiddleware(deps.AllowedOrigin))
	router.Use(utils.SecurityHeadersMiddleware())

	api := router.Group("/api")
	{
		api.GET("/health", controllers.Health(deps.PaymentsConfigured))

		initUserRoutes(api, deps)
		initAdminRoutes(api, deps)
	}

	return router
}

package main

import (
	"log"

	"github.com/gin-gonic/gin"

	"github.com/Badalsingh25/CraftConnect/config"
	"github.com/Badalsingh25/CraftConnect/controllers"
	"github.com/Badalsingh25/CraftConnect/repository"
	"github.com/Badalsingh25/CraftConnect/routes"
	"github.com/Badalsingh25/CraftConnect/services"
	"github.com/Badalsingh25/CraftConnect/utils"
)

func main() {
	// Initialize logger
	if err := utils.InitLogger(); err != nil {
		log.Fatal("Failed to initialize logger:", err)
	}
	defer utils.SyncLogger()

	// Load environment variables
	cfg, err := config.LoadConfig()
	if err != nil {
		utils.LogError("Error loading config: %v", err)
		log.Fatal("Error loading config:", err)
	}
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Initialize database
	db, err := config.InitDB(cfg)
	if err != nil {
		utils.LogError("Error initializing database: %v", err)
		log.Fatal("Error initializing database:", err)
	}

	tx := repository.NewTransactor(db)
	users := repository.NewUserRepository(db)
	products := repository.NewProductRepository(db)
	coupons := repository.NewCouponRepository(db)
	orders := repository.NewOrderRepository(db)
	reviews := repository.NewReviewRepository(db)

	if !cfg.Razorpay.Enabled() {
		utils.LogInfo("Razorpay keys not set, payment intents are disabled")
	}
	if !cfg.Mail.Configured() {
		utils.LogInfo("SMTP not configured, order emails are disabled")
	}

	mailer := utils.NewMailer(cfg.Mail)
	notifier := services.NewNotificationService(mailer)
	couponService := services.NewCouponService(coupons)
	checkoutService := services.NewCheckoutService(tx, products, orders, notifier)
	orderService := services.NewOrderService(orders, notifier)
	paymentService := services.NewPaymentService(cfg.Razorpay, services.NewRazorpayGateway(cfg.Razorpay), couponService, orders, tx)
	reviewService := services.NewReviewService(tx, reviews, products)

	// Set up router
	router := routes.SetupRouter(routes.Dependencies{
		JWTSecret:          cfg.JWTSecret,
		AllowedOrigin:      cfg.FrontendOrigin,
		PaymentsConfigured: cfg.Razorpay.Enabled(),
		Users:              users,
		Coupons:            controllers.NewCouponController(couponService),
		Orders:             controllers.NewOrderController(checkoutService, orderService, couponService, services.NewDocumentService()),
		Payments:           controllers.NewPaymentController(paymentService),
		Reviews:            controllers.NewReviewController(reviewService),
		Contact:            controllers.NewContactController(services.NewContactService(mailer, cfg.AdminEmail)),
	})

	utils.LogInfo("Server starting on port %s", cfg.Port)
	// Start server
	if err := router.Run(":" + cfg.Port); err != nil {
		utils.LogError("Error starting server: %v", err)
		log.Fatal("Error starting server:", err)
	}
}

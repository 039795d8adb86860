package main

import (
	"log"
	"strings"
	"time"

	"flower-retail-backend/internal/auth"
	"flower-retail-backend/internal/config"
	"flower-retail-backend/internal/customer"
	"flower-retail-backend/internal/database"
	"flower-retail-backend/internal/farmer"
	"flower-retail-backend/internal/flower"
	"flower-retail-backend/internal/message"
	"flower-retail-backend/internal/notification"
	"flower-retail-backend/internal/otp"
	"flower-retail-backend/internal/pricing"
	"flower-retail-backend/internal/purchase"
	"flower-retail-backend/internal/report"
	"flower-retail-backend/internal/supply"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/limiter"
)

func main() {
	cfg := config.Load()
	database.Init(cfg)
	database.InitRedis(cfg)

	var otpStore otp.Store
	if database.Redis != nil {
		otpStore = otp.NewRedisStore(database.Redis)
	} else {
		otpStore = otp.NewMemoryStore()
	}

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			if e, ok := err.(*fiber.Error); ok {
				return c.Status(e.Code).JSON(fiber.Map{
					"error": e.Message,
				})
			}
			log.Println("Unexpected error:", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Unexpected server error",
			})
		},
	})

	corsOrigins := strings.Split(cfg.CORSOrigins, ",")
	for i := range corsOrigins {
		corsOrigins[i] = strings.TrimSpace(corsOrigins[i])
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins: strings.Join(corsOrigins, ","),
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
	}))

	api := app.Group("/api")

	// Public auth, rate limited
	authLimiter := limiter.New(limiter.Config{
		Max:        20,
		Expiration: 1 * time.Minute,
	})
	api.Post("/auth/register", authLimiter, auth.RegisterHandler(cfg))
	api.Post("/auth/login", authLimiter, auth.LoginHandler(cfg))
	api.Post("/auth/forgot-password", authLimiter, auth.ForgotPasswordHandler(otpStore))
	api.Post("/auth/verify-otp", authLimiter, auth.VerifyOTPHandler(cfg, otpStore))
	api.Post("/auth/reset-password", authLimiter, auth.ResetPasswordHandler(cfg))

	// Protected
	protected := api.Group("")
	protected.Use(auth.JWTMiddleware(cfg))

	protected.Get("/auth/me", auth.MeHandler())
	protected.Put("/auth/profile", auth.UpdateProfileHandler())

	// Farmer registry
	protected.Post("/farmers", farmer.CreateFarmerHandler())
	protected.Get("/farmers", farmer.ListFarmersHandler())
	protected.Get("/farmers/:id", farmer.GetFarmerHandler())
	protected.Put("/farmers/:id", farmer.UpdateFarmerHandler())
	protected.Delete("/farmers/:id", farmer.DeleteFarmerHandler())

	// Customer registry
	protected.Post("/customers", customer.CreateCustomerHandler())
	protected.Get("/customers", customer.ListCustomersHandler())
	protected.Get("/customers/:id", customer.GetCustomerHandler())
	protected.Put("/customers/:id", customer.UpdateCustomerHandler())
	protected.Delete("/customers/:id", customer.DeleteCustomerHandler())

	// Flower types
	protected.Get("/flower-types", flower.ListFlowerTypesHandler())
	protected.Post("/flower-types", flower.CreateFlowerTypeHandler())
	protected.Put("/flower-types/:id", flower.UpdateFlowerTypeHandler())

	// Daily entry
	protected.Post("/supplies", supply.CreateSupplyHandler())
	protected.Get("/supplies", supply.ListSuppliesHandler())
	protected.Post("/purchases", purchase.CreatePurchaseHandler())
	protected.Get("/purchases", purchase.ListPurchasesHandler())

	// Pricing
	protected.Post("/prices", pricing.UpdatePriceHandler())
	protected.Get("/prices", pricing.ListPricesHandler())
	protected.Get("/prices/suggested", pricing.SuggestedPriceHandler())

	// Notifications
	protected.Get("/notifications", notification.ListNotificationsHandler())
	protected.Get("/notifications/unread-count", notification.UnreadCountHandler())
	protected.Post("/notifications/read-all", notification.MarkAllReadHandler())
	protected.Post("/notifications/:id/read", notification.MarkReadHandler())

	// Message logs
	protected.Get("/messages", message.ListMessagesHandler())
	protected.Get("/messages/stats", message.MessageStatsHandler())

	// Dashboard & reports
	protected.Get("/dashboard/flower-summary", report.FlowerSummaryHandler())
	protected.Get("/reports/summary", report.SummaryHandler())
	protected.Get("/payments/overview", report.PaymentsOverviewHandler())

	log.Println("Server listening on port:", cfg.HTTPPort)
	if err := app.Listen(":" + cfg.HTTPPort); err != nil {
		log.Fatal(err)
	}
}

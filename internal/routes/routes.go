package routes

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/example/bazaarhub/internal/config"
	"github.com/example/bazaarhub/internal/handlers"
	"github.com/example/bazaarhub/internal/middleware"
	"github.com/example/bazaarhub/internal/services"
)

// Register wires up all HTTP routes.
func Register(app *fiber.App, db *gorm.DB, cfg *config.Config, log zerolog.Logger) {
	mailer := services.NewMailer(cfg, log)
	payments := services.NewPaymentService(db, log)

	authHandler := handlers.NewAuthHandler(db, cfg, mailer)
	profileHandler := handlers.NewProfileHandler(db)
	productHandler := handlers.NewProductHandler(db)
	orderHandler := handlers.NewOrderHandler(db, payments)
	adminHandler := handlers.NewAdminHandler(db)
	paymentHandler := handlers.NewPaymentHandler(db, payments)

	app.Use(cors.New(cors.Config{
		AllowOrigins:     strings.Join(cfg.ClientOrigins, ","),
		AllowCredentials: true,
	}))

	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendString("Hello, world!")
	})
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	api := app.Group("/api")
	authRequired := middleware.AuthMiddleware(cfg)
	adminRequired := middleware.AdminMiddleware(db)

	// Users
	users := api.Group("/users")
	users.Post("/register", authHandler.Register)
	users.Post("/admin/register", authHandler.RegisterAdmin)
	users.Post("/verify-otp", authHandler.VerifyOTP)
	users.Post("/login", authHandler.Login)
	users.Post("/logout", authHandler.Logout)
	users.Get("/check-auth", authRequired, authHandler.CheckAuth)
	users.Get("/profile", authRequired, profileHandler.GetProfile)
	users.Put("/profile", authRequired, profileHandler.UpdateProfile)

	// Products: reads are public, writes are admin-gated. The search route is
	// registered before /:id so it is not swallowed by the id matcher.
	products := api.Group("/products")
	products.Get("/search", productHandler.SearchProducts)
	products.Get("/", productHandler.ListProducts)
	products.Get("/:id", productHandler.GetProduct)
	products.Post("/", authRequired, adminRequired, productHandler.CreateProduct)
	products.Put("/:id", authRequired, adminRequired, productHandler.UpdateProduct)
	products.Delete("/:id", authRequired, adminRequired, productHandler.DeleteProduct)

	// Orders. The webhook must stay reachable by the external gateway and is
	// therefore outside session auth, guarded by a body signature instead.
	orders := api.Group("/orders")
	orders.Post("/webhook", middleware.WebhookAuthMiddleware(cfg.WebhookSecret), orderHandler.HandleWebhook)
	orders.Get("/admin", authRequired, adminRequired, adminHandler.ListAllOrders)
	orders.Get("/admin/stats", authRequired, adminRequired, adminHandler.DashboardStats)
	orders.Post("/", authRequired, orderHandler.PlaceOrder)
	orders.Get("/", authRequired, orderHandler.ListOrders)
	orders.Put("/:id", authRequired, orderHandler.UpdateOrderStatus)

	// Payments
	paymentsGroup := api.Group("/payments")
	paymentsGroup.Post("/create-order", authRequired, paymentHandler.CreatePaymentOrder)
	paymentsGroup.Post("/verify", authRequired, paymentHandler.VerifyPayment)
}

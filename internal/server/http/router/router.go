package router

import (
	"log/slog"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"

	"github.com/artisanscorner/storefront/internal/server/http/handlers"
	"github.com/artisanscorner/storefront/internal/server/http/middleware"
)

// Setup configures gin router with handlers and middleware.
func Setup(facade handlers.StorefrontFacade, logger *slog.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	engine.Use(gin.Recovery())
	engine.Use(middleware.RequestLogger(logger))
	engine.Use(middleware.DecompressRequest())
	engine.Use(gzip.Gzip(gzip.DefaultCompression))

	authHandler := handlers.NewAuthHandler(facade)
	productHandler := handlers.NewProductHandler(facade)
	orderHandler := handlers.NewOrderHandler(facade, facade)
	paymentHandler := handlers.NewPaymentHandler(facade)
	webhookHandler := handlers.NewWebhookHandler(facade)

	authRequired := middleware.AuthRequired(facade)
	adminRequired := middleware.AdminRequired(facade)

	api := engine.Group("/api")

	users := api.Group("/users")
	users.POST("", authHandler.Register)
	users.POST("/login", authHandler.Login)
	users.GET("/profile", authRequired, authHandler.Profile)

	products := api.Group("/products")
	products.GET("", productHandler.List)
	products.GET("/:id", productHandler.Get)
	products.POST("", authRequired, adminRequired, productHandler.Create)
	products.PUT("/:id", authRequired, adminRequired, productHandler.Update)
	products.DELETE("/:id", authRequired, adminRequired, productHandler.Delete)

	orders := api.Group("/orders")
	orders.Use(authRequired)
	orders.POST("", orderHandler.Create)
	orders.GET("/myorders", orderHandler.MyOrders)
	orders.GET("/:id", orderHandler.Get)
	orders.PUT("/:id/pay", paymentHandler.Pay)
	orders.GET("", adminRequired, orderHandler.ListAll)
	orders.PUT("/:id/deliver", adminRequired, orderHandler.Deliver)

	payment := api.Group("/payment")
	// Webhook authenticates by body signature, not by session.
	payment.POST("/webhook", webhookHandler.Receive)
	payment.POST("/create-order", authRequired, paymentHandler.CreateOrder)
	payment.POST("/verify", authRequired, paymentHandler.Verify)

	return engine
}

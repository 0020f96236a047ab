package routes

import (
	"github.com/kikelara/kikelara-backend-go/handlers"
	customMiddleware "github.com/kikelara/kikelara-backend-go/middleware"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// SetupRoutes registers the public storefront surface and the
// token-gated admin surface.
func SetupRoutes(e *echo.Echo) {
	e.GET("/health", handlers.Health)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	// Public storefront routes
	e.GET("/delivery-pricing", handlers.GetDeliveryPricing)
	e.POST("/orders", handlers.SubmitOrder)
	e.POST("/order", handlers.SubmitOrder) // old endpoint support
	e.POST("/api/contact", handlers.ContactMessage)
	e.GET("/api/products", handlers.GetProducts)
	e.GET("/api/products/:id", handlers.GetProduct)

	// Admin login is public; everything after it requires the token.
	e.POST("/admin/login", handlers.AdminLogin)

	admin := e.Group("/admin", customMiddleware.RequireAdmin)
	admin.GET("/me", handlers.AdminMe)
	admin.GET("/delivery-pricing", handlers.AdminGetPricing)
	admin.PUT("/delivery-pricing", handlers.AdminPutPricing)
	admin.POST("/delivery-pricing/seed", handlers.AdminSeedPricing)
	admin.GET("/messages", handlers.ListMessages)
	admin.DELETE("/messages/:id", handlers.DeleteMessage)

	e.GET("/orders", handlers.ListOrders, customMiddleware.RequireAdmin)
	e.PATCH("/orders/:id/status", handlers.UpdateOrderStatus, customMiddleware.RequireAdmin)

	api := e.Group("/api/products", customMiddleware.RequireAdmin)
	api.POST("", handlers.CreateProduct)
	api.PUT("/:id", handlers.UpdateProduct)
	api.DELETE("/:id", handlers.DeleteProduct)
}

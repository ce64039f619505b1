package routes

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"tidywave/handlers"
	"tidywave/middleware"
)

// RegisterAuthRoutes registers client authentication and profile endpoints.
func RegisterAuthRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/auth")
	{
		api.POST("/register", hb.Auth.RegisterHandler)
		api.POST("/login", hb.Auth.LoginHandler)
		api.POST("/refresh", hb.Auth.RefreshHandler)
		api.GET("/verify-email", hb.Auth.VerifyEmailHandler)
		api.POST("/resend-verification", hb.Auth.ResendVerificationHandler)
		api.POST("/password-reset", hb.Auth.ForgotPasswordHandler)
		api.POST("/password-reset/confirm", hb.Auth.ResetPasswordHandler)
		api.POST("/admin/login", hb.Admin.LoginHandler)

		// Protected routes (require a client token).
		api.Use(middleware.ClientAuthMiddleware())
		api.POST("/logout", hb.Auth.LogoutHandler)
		api.POST("/setup-2fa", hb.Auth.SetupTOTPHandler)
		api.POST("/enable-2fa", hb.Auth.EnableTOTPHandler)
		api.POST("/disable-2fa", hb.Auth.DisableTOTPHandler)
	}

	profile := r.Group("/api/clients", middleware.ClientAuthMiddleware())
	{
		profile.GET("/me", hb.Auth.ProfileHandler)
		profile.PUT("/me", hb.Auth.UpdateProfileHandler)
	}
}

// RegisterCatalogRoutes registers the public service catalog.
func RegisterCatalogRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/services")
	{
		api.GET("", hb.Catalog.ListPublishedHandler)
		api.GET("/:id", hb.Catalog.GetPublishedHandler)
		api.GET("/:id/pricing-structure", hb.Catalog.PricingStructureHandler)
		api.POST("/:id/calculate-price", hb.Catalog.QuoteHandler)
	}
}

// RegisterOrderRoutes registers booking endpoints for clients.
func RegisterOrderRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.GET("/api/timeslots", hb.Orders.AvailableSlotsHandler)

	api := r.Group("/api/orders")
	{
		api.Use(middleware.ClientAuthMiddleware())
		api.POST("/calc", hb.Orders.PreviewOrderHandler)
		api.POST("", hb.Orders.CreateOrderHandler)
		api.GET("", hb.Orders.ListMyOrdersHandler)
		api.GET("/:id", hb.Orders.GetMyOrderHandler)
		api.POST("/:id/cancel", hb.Orders.CancelMyOrderHandler)
	}
}

// RegisterAdminRoutes registers back-office endpoints.
func RegisterAdminRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/admin")
	{
		api.Use(middleware.AdminAuthMiddleware())
		api.POST("/logout", hb.Admin.LogoutHandler)
		api.POST("/admins", hb.Admin.CreateAdminHandler)

		// Catalog management.
		api.GET("/services", hb.Catalog.ListServicesHandler)
		api.POST("/services", hb.Catalog.CreateServiceHandler)
		api.GET("/services/:id", hb.Catalog.GetServiceHandler)
		api.PUT("/services/:id", hb.Catalog.UpdateServiceHandler)
		api.PUT("/services/:id/published", hb.Catalog.SetPublishedHandler)
		api.POST("/services/:id/blocks", hb.Catalog.AddBlockHandler)
		api.PUT("/services/:id/blocks/reorder", hb.Catalog.ReorderBlocksHandler)
		api.PUT("/services/:id/blocks/:blockID", hb.Catalog.UpdateBlockHandler)
		api.PUT("/services/:id/blocks/:blockID/active", hb.Catalog.SetBlockActiveHandler)

		// Order management.
		api.GET("/orders", hb.Orders.ListOrdersHandler)
		api.GET("/orders/:id", hb.Orders.GetOrderHandler)
		api.PUT("/orders/:id/status", hb.Orders.UpdateOrderStatusHandler)
		api.PUT("/orders/:id/cleaner", hb.Orders.AssignCleanerHandler)

		// Staff management.
		api.GET("/cleaners", hb.Admin.ListCleanersHandler)
		api.POST("/cleaners", hb.Admin.CreateCleanerHandler)
		api.GET("/cleaners/:id", hb.Admin.GetCleanerHandler)
		api.PUT("/cleaners/:id", hb.Admin.UpdateCleanerHandler)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	RegisterHealthRoute(r)
	RegisterAuthRoutes(r, hb)
	RegisterCatalogRoutes(r, hb)
	RegisterOrderRoutes(r, hb)
	RegisterAdminRoutes(r, hb)
}

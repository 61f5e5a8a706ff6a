package routes

import (
	"net/http"
	"time"

	"localserve/handlers"
	"localserve/middleware"
	"localserve/services/auth"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// RegisterSearchRoutes registers the provider discovery endpoints.
func RegisterSearchRoutes(r *gin.Engine, hb *handlers.HandlerBundle, issuer auth.TokenIssuer) {
	api := r.Group("/api/search")
	{
		api.POST("", hb.SearchHandler)
		api.POST("/filters", hb.FilterSearchHandler)

		// History requires an authenticated customer.
		api.GET("/history", middleware.CustomerAuthMiddleware(issuer), hb.SearchHistoryHandler)
	}
}

// RegisterAuthRoutes registers the OTP request/verify/resend flow.
func RegisterAuthRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/auth/otp")
	{
		api.POST("/request", hb.RequestOTPHandler)
		api.POST("/verify", hb.VerifyOTPHandler)
		api.POST("/resend", hb.ResendOTPHandler)
	}
}

// RegisterBookingRoutes registers booking preview, creation, cancellation
// and advance payment.
func RegisterBookingRoutes(r *gin.Engine, hb *handlers.HandlerBundle, issuer auth.TokenIssuer) {
	api := r.Group("/api/bookings")
	{
		api.POST("/preview", hb.BookingPreviewHandler)

		protected := api.Group("")
		protected.Use(middleware.CustomerAuthMiddleware(issuer))
		protected.POST("", hb.CreateBookingHandler)
		protected.POST("/:id/cancel", hb.CancelBookingHandler)
		protected.POST("/:id/advance-intent", hb.AdvanceIntentHandler)
	}
}

// RegisterCatalogRoutes registers the service and filter catalog.
func RegisterCatalogRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/services")
	{
		api.GET("", hb.CatalogHandlers.ListServicesHandler)
		api.GET("/:id/filters", hb.CatalogHandlers.ServiceFiltersHandler)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle, issuer auth.TokenIssuer) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	RegisterSearchRoutes(r, hb, issuer)
	RegisterAuthRoutes(r, hb)
	RegisterBookingRoutes(r, hb, issuer)
	RegisterCatalogRoutes(r, hb)
	RegisterHealthRoute(r)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
}

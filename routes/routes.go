package routes

import (
	"time"

	"bookwell/handlers"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterRoutes wires every endpoint onto the router.
func RegisterRoutes(r *gin.Engine) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	RegisterDiscoveryRoutes(r)
	RegisterBookingRoutes(r)
	RegisterVendorRoutes(r)
}

// RegisterVendorRoutes registers vendor schedule maintenance endpoints.
func RegisterVendorRoutes(r *gin.Engine) {
	api := r.Group("/api/vendors")
	{
		api.GET("/:vendorID/blocked", handlers.GetBlockedIntervals)
		api.POST("/:vendorID/blocked", handlers.CreateBlockedInterval)
		api.DELETE("/:vendorID/blocked/:blockID", handlers.RemoveBlockedInterval)
	}
}

// RegisterDiscoveryRoutes registers the read-only discovery endpoints.
func RegisterDiscoveryRoutes(r *gin.Engine) {
	api := r.Group("/api/discovery")
	{
		api.GET("/vendors", handlers.SearchVendors)
		api.GET("/vendors/:vendorID/services", handlers.GetVendorServices)
		api.GET("/vendors/:vendorID/staff", handlers.GetVendorStaff)
		api.POST("/slots", handlers.GetSlots)
		api.POST("/quote", handlers.GetQuote)
	}
}

// RegisterBookingRoutes registers the reservation lifecycle endpoints.
// These always hit live state; nothing here reads the discovery cache.
func RegisterBookingRoutes(r *gin.Engine) {
	api := r.Group("/api/booking")
	{
		api.POST("/quote", handlers.BookingQuote)
		api.POST("/lock", handlers.AcquireLock)
		api.POST("/confirm", handlers.ConfirmAppointment)
		api.POST("/release", handlers.ReleaseLock)
		api.POST("/cancel", handlers.CancelAppointment)
		api.GET("/appointments/:appointmentID", handlers.GetAppointment)
		api.POST("/appointments/:appointmentID/cancel-hold", handlers.CancelHold)
	}
}

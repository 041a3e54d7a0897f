package transport

import (
	"net/http"
	"time"

	"github.com/bookwise/bookwise/internal/transport/middleware"

	"github.com/gin-gonic/gin"
)

func InitRoutes(
	bookingHandler *BookingHandler,
	profileHandler *ProfileHandler,
	notificationHandler *NotificationHandler,
	jwtSecret string,
	requestTimeout time.Duration,
) *gin.Engine {

	router := gin.New()

	// Middleware
	router.Use(gin.Recovery())
	router.Use(middleware.CORS())
	router.Use(middleware.Logger())
	router.Use(middleware.Timeout(requestTimeout))

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// API routes
	api := router.Group("/api/v1")
	{
		// The catalog is public reference data.
		api.GET("/services", bookingHandler.GetServices)

		authed := api.Group("", middleware.JWTAuth(jwtSecret))
		{
			bookings := authed.Group("/bookings")
			{
				bookings.POST("", bookingHandler.CreateBooking)
				bookings.GET("", bookingHandler.GetUserBookings)
				bookings.GET("/:id", bookingHandler.GetBooking)
				bookings.DELETE("/:id", bookingHandler.CancelBooking)
				bookings.POST("/:id/pay", bookingHandler.PayBooking)
			}

			profile := authed.Group("/profile")
			{
				profile.GET("", profileHandler.GetProfile)
				profile.PUT("", profileHandler.UpdateProfile)
				profile.GET("/preferences", profileHandler.GetPreferences)
				profile.PUT("/preferences", profileHandler.UpdatePreferences)
			}

			authed.GET("/notifications", notificationHandler.GetUserNotifications)

			admin := authed.Group("/admin")
			{
				admin.POST("/promotions", notificationHandler.SendPromotion)
			}
		}
	}

	return router
}

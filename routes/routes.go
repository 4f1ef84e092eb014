package routes

import (
	"time"

	"trimly/handlers"
	"trimly/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// Handlers bundles everything the router needs.
type Handlers struct {
	Booking       *handlers.BookingHandler
	Schedule      *handlers.ScheduleHandler
	Appointments  *handlers.AppointmentHandler
	Shops         *handlers.ShopHandler
	Notifications *handlers.NotificationHandler
}

// RegisterRoutes wires every endpoint of the gateway.
func RegisterRoutes(r *gin.Engine, h *Handlers) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/healthz", handlers.Healthz)

	api := r.Group("/api")
	api.Use(middleware.AuthMiddleware())
	{
		// Discovery.
		api.GET("/shops/:shopID", h.Shops.GetShop)
		api.GET("/barbers/:barberID", h.Shops.GetBarber)
		api.GET("/barbers/:barberID/slots", h.Schedule.GetAvailableSlots)

		// Booking flow.
		booking := api.Group("/booking")
		{
			booking.POST("/session", h.Booking.InitiateSession)
			booking.PUT("/session/:sessionID/services", h.Booking.ToggleService)
			booking.PUT("/session/:sessionID/date", h.Booking.SelectDate)
			booking.PUT("/session/:sessionID/slot", h.Booking.SelectSlot)
			booking.POST("/session/:sessionID/confirm", h.Booking.Confirm)
			booking.DELETE("/session/:sessionID", h.Booking.CancelSession)
		}

		// Appointments.
		api.GET("/appointments", h.Appointments.ListAppointments)
		api.PATCH("/appointments/:appointmentID/status", h.Appointments.UpdateStatus)

		// Notifications.
		api.GET("/notifications", h.Notifications.ListNotifications)
		api.GET("/notifications/stream", h.Notifications.StreamNotifications)
	}
}

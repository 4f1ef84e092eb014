// File: trimly/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"trimly/backend"
	"trimly/config"
	"trimly/cron"
	"trimly/handlers"
	"trimly/middleware"
	"trimly/routes"
	"trimly/services/booking"
	"trimly/services/schedule"
	"trimly/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	utils.InitRedis()

	shopLoc, err := time.LoadLocation(config.AppConfig.ShopTimezone)
	if err != nil {
		logger.Sugar().Fatalf("main: invalid SHOP_TIMEZONE %q: %v", config.AppConfig.ShopTimezone, err)
	}

	// Upstream barbershop API client.
	apiClient := backend.NewClient(
		config.AppConfig.APIBaseURL,
		time.Duration(config.AppConfig.APITimeoutSecs)*time.Second,
	)

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())

	// Services.
	scheduleService := schedule.NewService(apiClient, utils.GetScheduleCacheClient(), shopLoc)

	reminderScheduler := cron.NewReminderScheduler(
		time.Duration(config.AppConfig.ReminderLeadMins) * time.Minute,
	)
	cron.InitReminderWorker(apiClient)

	sessionStore := booking.NewRedisSessionStore(utils.GetSessionCacheClient())
	bookingService := booking.NewDefaultSessionService(
		sessionStore,
		scheduleService,
		apiClient,
		reminderScheduler,
		shopLoc,
	)

	// Handlers.
	routeHandlers := &routes.Handlers{
		Booking:       handlers.NewBookingHandler(bookingService, logger),
		Schedule:      handlers.NewScheduleHandler(scheduleService, shopLoc),
		Appointments:  handlers.NewAppointmentHandler(apiClient, logger),
		Shops:         handlers.NewShopHandler(apiClient),
		Notifications: handlers.NewNotificationHandler(apiClient, time.Duration(config.AppConfig.NotifyPollSecs)*time.Second),
	}
	routes.RegisterRoutes(router, routeHandlers)

	utils.StartHealthMonitor(
		[]*redis.Client{utils.GetSessionCacheClient(), utils.GetScheduleCacheClient()},
		apiClient,
	)

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}

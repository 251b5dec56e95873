package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"pg-be-svc/docs"
	"pg-be-svc/internal/config"
	"pg-be-svc/internal/database"
	"pg-be-svc/internal/handler"
	"pg-be-svc/internal/middleware"
	"pg-be-svc/internal/repository"
	"pg-be-svc/internal/scheduler"
	"pg-be-svc/internal/service"
	"pg-be-svc/pkg/logger"
)

// @title PG Hostel Backend Service API
// @version 1.0
// @description RESTful API for paying-guest hostel management: registrations, room allocation and notice periods
// @termsOfService http://swagger.io/terms/

// @contact.name API Support
// @contact.url http://www.swagger.io/support
// @contact.email support@swagger.io

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

// @host localhost:8080
// @BasePath /api/v1

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize Swagger documentation
	docs.SwaggerInfo.Title = "PG Hostel Backend Service API"
	docs.SwaggerInfo.Description = "RESTful API for paying-guest hostel management"
	docs.SwaggerInfo.Version = "1.0"
	docs.SwaggerInfo.Host = fmt.Sprintf("localhost:%s", cfg.Server.Port)
	docs.SwaggerInfo.BasePath = ""
	docs.SwaggerInfo.Schemes = []string{"http"}

	// Initialize logger
	appLogger := logger.NewLogger(cfg.Logger.Level, cfg.Logger.Format)
	appLogger.Info("Starting PG Hostel Backend Service...")

	// Set Gin mode
	gin.SetMode(cfg.Server.GinMode)

	// Initialize database
	db, err := database.NewDatabase(&cfg.Database)
	if err != nil {
		appLogger.WithField("error", err).Fatal("Failed to connect to database")
	}
	appLogger.Info("Database connected successfully")

	// Run auto migration
	if err := db.AutoMigrate(); err != nil {
		appLogger.WithField("error", err).Fatal("Failed to run database migrations")
	}
	appLogger.Info("Database migrations completed successfully")

	// Initialize repositories
	residentRepo := repository.NewResidentRepository(db.DB)
	roomRepo := repository.NewRoomRepository(db.DB)
	allocRepo := repository.NewAllocationRepository(db.DB)
	dashboardRepo := repository.NewDashboardRepository(db.DB)

	// Initialize services
	notificationService := service.NewNotificationService(cfg.Notify, appLogger)
	registrationService := service.NewRegistrationService(residentRepo, appLogger)
	allocationService := service.NewAllocationService(residentRepo, roomRepo, allocRepo, notificationService, appLogger)
	roomService := service.NewRoomService(roomRepo, appLogger)
	dashboardService := service.NewDashboardService(dashboardRepo, appLogger)

	// Initialize gin router
	router := gin.New()

	// Add middleware
	router.Use(middleware.CORS(cfg.CORS.AllowedOrigins))
	router.Use(middleware.LoggerMiddleware(appLogger))
	router.Use(middleware.ErrorHandler())
	router.NoRoute(middleware.NoRouteHandler())
	router.NoMethod(middleware.NoMethodHandler())

	// Setup routes
	handler.SetupRoutes(router, cfg.JWT.Secret, registrationService, allocationService, roomService, dashboardService, appLogger)

	// Start notice-expiry scheduler
	noticeScheduler := scheduler.NewNoticeExpiryScheduler(
		allocationService,
		residentRepo,
		notificationService,
		appLogger,
		cfg.Scheduler.NoticeExpiryCronExpression,
		cfg.Scheduler.ReminderWindowDays,
	)
	if err := noticeScheduler.Start(); err != nil {
		appLogger.WithField("error", err).Fatal("Failed to start notice-expiry scheduler")
	}

	// Create HTTP server
	server := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router,
	}

	// Start server in a goroutine
	go func() {
		appLogger.WithField("port", cfg.Server.Port).Info("Server starting...")
		appLogger.WithField("swagger", fmt.Sprintf("http://localhost:%s/swagger/index.html", cfg.Server.Port)).Info("Swagger documentation available")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			appLogger.WithField("error", err).Fatal("Failed to start server")
		}
	}()

	appLogger.WithField("port", cfg.Server.Port).Info("Server started successfully")

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server...")

	// Stop the scheduler before draining requests
	noticeScheduler.Stop()

	// Give outstanding requests a deadline for completion
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	// Shutdown server
	if err := server.Shutdown(ctx); err != nil {
		appLogger.WithField("error", err).Fatal("Server forced to shutdown")
	}

	// Close database connection
	if err := db.Close(); err != nil {
		appLogger.WithField("error", err).Error("Failed to close database connection")
	}

	appLogger.Info("Server exited successfully")
}

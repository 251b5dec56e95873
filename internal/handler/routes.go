package handler

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"pg-be-svc/internal/middleware"
	"pg-be-svc/internal/service"
	"pg-be-svc/pkg/logger"
)

// SetupRoutes sets up all API routes
func SetupRoutes(
	router *gin.Engine,
	jwtSecret string,
	registrationService service.RegistrationService,
	allocationService service.AllocationService,
	roomService service.RoomService,
	dashboardService service.DashboardService,
	logger *logger.Logger,
) {
	// Initialize handlers
	registrationHandler := NewRegistrationHandler(registrationService, logger)
	allocationHandler := NewAllocationHandler(allocationService, logger)
	noticeHandler := NewNoticeHandler(allocationService, logger)
	roomHandler := NewRoomHandler(roomService, logger)
	dashboardHandler := NewDashboardHandler(dashboardService, logger)

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// API v1 group
	v1 := router.Group("/api/v1")
	{
		// Health check
		v1.GET("/health", HealthCheck)

		// Public registration submission
		v1.POST("/registrations", registrationHandler.Register)

		authenticated := v1.Group("")
		authenticated.Use(middleware.AuthRequired(jwtSecret))
		{
			admin := authenticated.Group("")
			admin.Use(middleware.RequireRole(middleware.RoleAdmin))
			{
				// Registration review
				admin.GET("/registrations/pending", registrationHandler.GetPendingRegistrations)
				admin.POST("/registrations/:id/approve", allocationHandler.Approve)
				admin.POST("/registrations/:id/reject", allocationHandler.Reject)

				// Resident lifecycle
				admin.POST("/residents/:id/deactivate", allocationHandler.Deactivate)
				admin.POST("/residents/:id/reactivate", allocationHandler.Reactivate)

				// Room inventory
				admin.GET("/rooms", roomHandler.GetRooms)
				admin.GET("/rooms/:id", roomHandler.GetRoom)
				admin.POST("/rooms/bulk", roomHandler.CreateRoomsBulk)
				admin.PUT("/rooms/:id/maintenance", roomHandler.SetMaintenance)

				// Dashboard
				admin.GET("/dashboard/occupancy", dashboardHandler.GetOccupancySummary)
			}

			resident := authenticated.Group("")
			resident.Use(middleware.RequireRole(middleware.RoleResident))
			{
				// Notice period, scoped to the calling resident
				resident.POST("/notice-period", noticeHandler.SubmitNoticePeriod)
				resident.DELETE("/notice-period", noticeHandler.WithdrawNoticePeriod)
			}
		}
	}
}

// HealthCheck reports service liveness
func HealthCheck(c *gin.Context) {
	c.JSON(200, gin.H{
		"status":  "ok",
		"message": "Server is running",
		"service": "PG Hostel Backend Service",
	})
}

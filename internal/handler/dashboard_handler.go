package handler

import (
	"github.com/gin-gonic/gin"

	"pg-be-svc/internal/service"
	"pg-be-svc/pkg/logger"
	"pg-be-svc/pkg/utils"
)

// DashboardHandler handles occupancy dashboard HTTP requests
type DashboardHandler struct {
	dashboardService service.DashboardService
	logger           *logger.Logger
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(dashboardService service.DashboardService, logger *logger.Logger) *DashboardHandler {
	return &DashboardHandler{
		dashboardService: dashboardService,
		logger:           logger,
	}
}

// GetOccupancySummary handles GET /api/v1/dashboard/occupancy
// @Summary Get the occupancy dashboard
// @Description Aggregate resident lifecycle and room occupancy counts. Admin only.
// @Tags dashboard
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {object} utils.APIResponse{data=response.OccupancyDashboardResponse} "Occupancy summary retrieved"
// @Failure 401 {object} utils.APIResponse "Unauthenticated"
// @Failure 403 {object} utils.APIResponse "Forbidden"
// @Failure 500 {object} utils.APIResponse "Internal server error"
// @Router /api/v1/dashboard/occupancy [get]
func (h *DashboardHandler) GetOccupancySummary(c *gin.Context) {
	summary, err := h.dashboardService.GetOccupancySummary()
	if err != nil {
		h.logger.WithError(err).Error("Failed to get occupancy summary")
		respondServiceError(c, err, "Failed to get occupancy summary")
		return
	}

	utils.SuccessResponse(c, "Occupancy summary retrieved successfully", summary)
}

package handler

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"pg-be-svc/internal/service"
	"pg-be-svc/pkg/logger"
	"pg-be-svc/pkg/utils"
)

// ApproveRequest represents the approval request body
type ApproveRequest struct {
	RoomNumber  string `json:"room_number" binding:"required" example:"101"`
	Building    string `json:"building,omitempty" example:"A"`
	CheckInDate string `json:"check_in_date,omitempty" example:"2026-09-01"`
}

// RejectRequest represents the rejection request body
type RejectRequest struct {
	Reason string `json:"reason,omitempty" example:"No vacancy in preferred building"`
}

// ReactivateRequest represents the reactivation request body
type ReactivateRequest struct {
	RoomID      *uint  `json:"room_id,omitempty" example:"12"`
	CheckInDate string `json:"check_in_date,omitempty" example:"2026-09-01"`
}

// AllocationHandler handles allocation-related HTTP requests
type AllocationHandler struct {
	allocationService service.AllocationService
	logger            *logger.Logger
}

// NewAllocationHandler creates a new allocation handler
func NewAllocationHandler(allocationService service.AllocationService, logger *logger.Logger) *AllocationHandler {
	return &AllocationHandler{
		allocationService: allocationService,
		logger:            logger,
	}
}

// Approve handles POST /api/v1/registrations/:id/approve
// @Summary Approve a pending registration
// @Description Approve a registration, allocate a room slot and mail the generated credentials. Admin only.
// @Tags allocations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Resident ID"
// @Param request body ApproveRequest true "Target room and optional check-in date"
// @Success 200 {object} utils.APIResponse{data=response.AllocationResponse} "Registration approved"
// @Failure 400 {object} utils.APIResponse "Already processed or room full"
// @Failure 401 {object} utils.APIResponse "Unauthenticated"
// @Failure 403 {object} utils.APIResponse "Forbidden"
// @Failure 404 {object} utils.APIResponse "Resident or room not found"
// @Failure 500 {object} utils.APIResponse "Internal server error"
// @Router /api/v1/registrations/{id}/approve [post]
func (h *AllocationHandler) Approve(c *gin.Context) {
	residentID, ok := parseIDParam(c, h.logger)
	if !ok {
		return
	}

	var req ApproveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.WithError(err).Error("Invalid approve request body")
		utils.BadRequestResponse(c, "Request body must be valid JSON with room_number", err)
		return
	}

	checkIn, ok := parseOptionalDate(c, req.CheckInDate, "check_in_date")
	if !ok {
		return
	}

	result, err := h.allocationService.Approve(residentID, req.Building, req.RoomNumber, checkIn)
	if err != nil {
		h.logger.WithError(err).WithField("resident_id", residentID).Error("Failed to approve registration")
		respondServiceError(c, err, "Failed to approve registration")
		return
	}

	h.logger.WithFields(map[string]interface{}{
		"resident_id": residentID,
		"room_number": req.RoomNumber,
	}).Info("Registration approved")

	utils.SuccessResponse(c, "Registration approved successfully", result)
}

// Reject handles POST /api/v1/registrations/:id/reject
// @Summary Reject a pending registration
// @Description Reject a registration with an optional reason. Admin only.
// @Tags allocations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Resident ID"
// @Param request body RejectRequest false "Optional rejection reason"
// @Success 200 {object} utils.APIResponse{data=response.AllocationResponse} "Registration rejected"
// @Failure 400 {object} utils.APIResponse "Already processed"
// @Failure 401 {object} utils.APIResponse "Unauthenticated"
// @Failure 403 {object} utils.APIResponse "Forbidden"
// @Failure 404 {object} utils.APIResponse "Resident not found"
// @Failure 500 {object} utils.APIResponse "Internal server error"
// @Router /api/v1/registrations/{id}/reject [post]
func (h *AllocationHandler) Reject(c *gin.Context) {
	residentID, ok := parseIDParam(c, h.logger)
	if !ok {
		return
	}

	var req RejectRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			h.logger.WithError(err).Error("Invalid reject request body")
			utils.BadRequestResponse(c, "Request body must be valid JSON", err)
			return
		}
	}

	result, err := h.allocationService.Reject(residentID, req.Reason)
	if err != nil {
		h.logger.WithError(err).WithField("resident_id", residentID).Error("Failed to reject registration")
		respondServiceError(c, err, "Failed to reject registration")
		return
	}

	utils.SuccessResponse(c, "Registration rejected successfully", result)
}

// Deactivate handles POST /api/v1/residents/:id/deactivate
// @Summary Deactivate a resident (move-out)
// @Description Mark an active resident as moved out and release their room slot. Admin only.
// @Tags allocations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Resident ID"
// @Success 200 {object} utils.APIResponse{data=response.AllocationResponse} "Resident deactivated"
// @Failure 400 {object} utils.APIResponse "Resident not active"
// @Failure 401 {object} utils.APIResponse "Unauthenticated"
// @Failure 403 {object} utils.APIResponse "Forbidden"
// @Failure 404 {object} utils.APIResponse "Resident not found"
// @Failure 500 {object} utils.APIResponse "Internal server error"
// @Router /api/v1/residents/{id}/deactivate [post]
func (h *AllocationHandler) Deactivate(c *gin.Context) {
	residentID, ok := parseIDParam(c, h.logger)
	if !ok {
		return
	}

	result, err := h.allocationService.Deactivate(residentID)
	if err != nil {
		h.logger.WithError(err).WithField("resident_id", residentID).Error("Failed to deactivate resident")
		respondServiceError(c, err, "Failed to deactivate resident")
		return
	}

	utils.SuccessResponse(c, "Resident deactivated successfully", result)
}

// Reactivate handles POST /api/v1/residents/:id/reactivate
// @Summary Reactivate a former resident
// @Description Reactivate a previously approved resident, optionally into a room with spare capacity. Admin only.
// @Tags allocations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Resident ID"
// @Param request body ReactivateRequest false "Optional target room and check-in date"
// @Success 200 {object} utils.APIResponse{data=response.AllocationResponse} "Resident reactivated"
// @Failure 400 {object} utils.APIResponse "Room full or resident already active"
// @Failure 401 {object} utils.APIResponse "Unauthenticated"
// @Failure 403 {object} utils.APIResponse "Forbidden"
// @Failure 404 {object} utils.APIResponse "Resident or room not found"
// @Failure 500 {object} utils.APIResponse "Internal server error"
// @Router /api/v1/residents/{id}/reactivate [post]
func (h *AllocationHandler) Reactivate(c *gin.Context) {
	residentID, ok := parseIDParam(c, h.logger)
	if !ok {
		return
	}

	var req ReactivateRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			h.logger.WithError(err).Error("Invalid reactivate request body")
			utils.BadRequestResponse(c, "Request body must be valid JSON", err)
			return
		}
	}

	checkIn, ok := parseOptionalDate(c, req.CheckInDate, "check_in_date")
	if !ok {
		return
	}

	result, err := h.allocationService.Reactivate(residentID, req.RoomID, checkIn)
	if err != nil {
		h.logger.WithError(err).WithField("resident_id", residentID).Error("Failed to reactivate resident")
		respondServiceError(c, err, "Failed to reactivate resident")
		return
	}

	utils.SuccessResponse(c, "Resident reactivated successfully", result)
}

// parseIDParam parses the :id path parameter
func parseIDParam(c *gin.Context, appLogger *logger.Logger) (uint, bool) {
	idParam := c.Param("id")
	id, err := strconv.ParseUint(idParam, 10, 32)
	if err != nil {
		appLogger.WithError(err).WithField("id_param", idParam).Error("Invalid ID parameter")
		utils.BadRequestResponse(c, "Invalid ID", err)
		return 0, false
	}
	return uint(id), true
}

// parseOptionalDate parses a YYYY-MM-DD date string; empty means nil
func parseOptionalDate(c *gin.Context, value, field string) (*time.Time, bool) {
	if value == "" {
		return nil, true
	}
	parsed, err := time.Parse("2006-01-02", value)
	if err != nil {
		utils.BadRequestResponse(c, field+" must be a date in YYYY-MM-DD format", err)
		return nil, false
	}
	return &parsed, true
}

package handler

import (
	"github.com/gin-gonic/gin"

	"pg-be-svc/internal/middleware"
	"pg-be-svc/internal/service"
	"pg-be-svc/pkg/logger"
	"pg-be-svc/pkg/utils"
)

// NoticePeriodRequest represents a notice submission or adjustment
type NoticePeriodRequest struct {
	LastStayingDate string `json:"last_staying_date" binding:"required" example:"2026-10-01"`
}

// NoticeHandler handles notice-period HTTP requests for the calling resident
type NoticeHandler struct {
	allocationService service.AllocationService
	logger            *logger.Logger
}

// NewNoticeHandler creates a new notice handler
func NewNoticeHandler(allocationService service.AllocationService, logger *logger.Logger) *NoticeHandler {
	return &NoticeHandler{
		allocationService: allocationService,
		logger:            logger,
	}
}

// SubmitNoticePeriod handles POST /api/v1/notice-period
// @Summary Submit or adjust a notice period
// @Description Record the caller's intent to vacate by the given date. Fresh notices need 30 days lead; adjustments while on notice need 10.
// @Tags notice-period
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body NoticePeriodRequest true "Last staying date"
// @Success 200 {object} utils.APIResponse{data=response.AllocationResponse} "Notice period recorded"
// @Failure 400 {object} utils.APIResponse "Missing date or below minimum notice"
// @Failure 401 {object} utils.APIResponse "Unauthenticated"
// @Failure 403 {object} utils.APIResponse "Forbidden"
// @Failure 404 {object} utils.APIResponse "No resident record for caller"
// @Failure 500 {object} utils.APIResponse "Internal server error"
// @Router /api/v1/notice-period [post]
func (h *NoticeHandler) SubmitNoticePeriod(c *gin.Context) {
	var req NoticePeriodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.WithError(err).Error("Invalid notice period request body")
		utils.BadRequestResponse(c, "Request body must be valid JSON with last_staying_date", err)
		return
	}

	lastStayingDate, ok := parseOptionalDate(c, req.LastStayingDate, "last_staying_date")
	if !ok {
		return
	}

	email := middleware.CallerEmail(c)

	result, err := h.allocationService.SubmitNoticePeriod(email, lastStayingDate)
	if err != nil {
		h.logger.WithError(err).WithField("email", email).Error("Failed to submit notice period")
		respondServiceError(c, err, "Failed to submit notice period")
		return
	}

	utils.SuccessResponse(c, "Notice period recorded successfully", result)
}

// WithdrawNoticePeriod handles DELETE /api/v1/notice-period
// @Summary Withdraw an active notice period
// @Description Cancel the caller's notice period and clear the last staying date.
// @Tags notice-period
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {object} utils.APIResponse{data=response.AllocationResponse} "Notice period withdrawn"
// @Failure 400 {object} utils.APIResponse "Not on notice"
// @Failure 401 {object} utils.APIResponse "Unauthenticated"
// @Failure 403 {object} utils.APIResponse "Forbidden"
// @Failure 404 {object} utils.APIResponse "No resident record for caller"
// @Failure 500 {object} utils.APIResponse "Internal server error"
// @Router /api/v1/notice-period [delete]
func (h *NoticeHandler) WithdrawNoticePeriod(c *gin.Context) {
	email := middleware.CallerEmail(c)

	result, err := h.allocationService.WithdrawNoticePeriod(email)
	if err != nil {
		h.logger.WithError(err).WithField("email", email).Error("Failed to withdraw notice period")
		respondServiceError(c, err, "Failed to withdraw notice period")
		return
	}

	utils.SuccessResponse(c, "Notice period withdrawn successfully", result)
}

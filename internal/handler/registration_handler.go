package handler

import (
	"github.com/gin-gonic/gin"

	"pg-be-svc/internal/service"
	"pg-be-svc/pkg/logger"
	"pg-be-svc/pkg/utils"
)

// RegisterRequest represents the public registration submission
type RegisterRequest struct {
	Name  string `json:"name" binding:"required" example:"John Doe"`
	Email string `json:"email" binding:"required,email" example:"john.doe@example.com"`
	Phone string `json:"phone" binding:"required,min=7" example:"+919876543210"`
}

// RegistrationHandler handles registration-related HTTP requests
type RegistrationHandler struct {
	registrationService service.RegistrationService
	logger              *logger.Logger
}

// NewRegistrationHandler creates a new registration handler
func NewRegistrationHandler(registrationService service.RegistrationService, logger *logger.Logger) *RegistrationHandler {
	return &RegistrationHandler{
		registrationService: registrationService,
		logger:              logger,
	}
}

// Register handles POST /api/v1/registrations
// @Summary Submit a registration
// @Description Create a pending resident registration awaiting admin approval
// @Tags registrations
// @Accept json
// @Produce json
// @Param request body RegisterRequest true "Registration details"
// @Success 201 {object} utils.APIResponse{data=response.ResidentSummaryResponse} "Registration submitted"
// @Failure 400 {object} utils.APIResponse "Invalid request"
// @Failure 409 {object} utils.APIResponse "Email already registered"
// @Router /api/v1/registrations [post]
func (h *RegistrationHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.WithError(err).Error("Invalid registration request body")
		utils.BadRequestResponse(c, "Request body must be valid JSON with name, email and phone", err)
		return
	}

	resident, err := h.registrationService.Register(req.Name, req.Email, req.Phone)
	if err != nil {
		h.logger.WithError(err).WithField("email", req.Email).Error("Failed to submit registration")
		respondServiceError(c, err, "Failed to submit registration")
		return
	}

	utils.CreatedResponse(c, "Registration submitted successfully", resident)
}

// GetPendingRegistrations handles GET /api/v1/registrations/pending
// @Summary List pending registrations
// @Description Get all registrations awaiting an approval decision. Admin only.
// @Tags registrations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {object} utils.APIResponse{data=[]response.ResidentSummaryResponse} "Pending registrations retrieved"
// @Failure 401 {object} utils.APIResponse "Unauthenticated"
// @Failure 403 {object} utils.APIResponse "Forbidden"
// @Failure 500 {object} utils.APIResponse "Internal server error"
// @Router /api/v1/registrations/pending [get]
func (h *RegistrationHandler) GetPendingRegistrations(c *gin.Context) {
	registrations, err := h.registrationService.GetPendingRegistrations()
	if err != nil {
		h.logger.WithError(err).Error("Failed to get pending registrations")
		respondServiceError(c, err, "Failed to get pending registrations")
		return
	}

	h.logger.WithField("count", len(registrations)).Info("Pending registrations retrieved")

	utils.SuccessResponse(c, "Pending registrations retrieved successfully", registrations)
}

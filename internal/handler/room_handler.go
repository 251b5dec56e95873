package handler

import (
	"github.com/gin-gonic/gin"

	"pg-be-svc/internal/service"
	"pg-be-svc/pkg/logger"
	"pg-be-svc/pkg/utils"
)

// RoomProvisionRequest represents one room in a bulk provisioning request
type RoomProvisionRequest struct {
	RoomNumber  string `json:"room_number" binding:"required" example:"101"`
	Building    string `json:"building" example:"A"`
	Floor       int    `json:"floor" example:"1"`
	Capacity    int    `json:"capacity" binding:"required,min=1" example:"2"`
	MonthlyRent int64  `json:"monthly_rent" example:"8500"`
}

// BulkRoomRequest represents the bulk room provisioning request body
type BulkRoomRequest struct {
	Rooms []RoomProvisionRequest `json:"rooms" binding:"required,min=1,dive"`
}

// MaintenanceRequest represents the maintenance toggle request body
type MaintenanceRequest struct {
	Maintenance *bool `json:"maintenance" binding:"required" example:"true"`
}

// RoomHandler handles room-related HTTP requests
type RoomHandler struct {
	roomService service.RoomService
	logger      *logger.Logger
}

// NewRoomHandler creates a new room handler
func NewRoomHandler(roomService service.RoomService, logger *logger.Logger) *RoomHandler {
	return &RoomHandler{
		roomService: roomService,
		logger:      logger,
	}
}

// GetRooms handles GET /api/v1/rooms
// @Summary List all rooms
// @Description Get all rooms with capacity and occupancy. Admin only.
// @Tags rooms
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {object} utils.APIResponse{data=[]response.RoomSummaryResponse} "Rooms retrieved"
// @Failure 401 {object} utils.APIResponse "Unauthenticated"
// @Failure 403 {object} utils.APIResponse "Forbidden"
// @Failure 500 {object} utils.APIResponse "Internal server error"
// @Router /api/v1/rooms [get]
func (h *RoomHandler) GetRooms(c *gin.Context) {
	rooms, err := h.roomService.GetRooms()
	if err != nil {
		h.logger.WithError(err).Error("Failed to list rooms")
		respondServiceError(c, err, "Failed to list rooms")
		return
	}

	utils.SuccessResponse(c, "Rooms retrieved successfully", rooms)
}

// GetRoom handles GET /api/v1/rooms/:id
// @Summary Get a room
// @Description Get one room by ID. Admin only.
// @Tags rooms
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Room ID"
// @Success 200 {object} utils.APIResponse{data=response.RoomSummaryResponse} "Room retrieved"
// @Failure 401 {object} utils.APIResponse "Unauthenticated"
// @Failure 403 {object} utils.APIResponse "Forbidden"
// @Failure 404 {object} utils.APIResponse "Room not found"
// @Failure 500 {object} utils.APIResponse "Internal server error"
// @Router /api/v1/rooms/{id} [get]
func (h *RoomHandler) GetRoom(c *gin.Context) {
	roomID, ok := parseIDParam(c, h.logger)
	if !ok {
		return
	}

	room, err := h.roomService.GetRoom(roomID)
	if err != nil {
		h.logger.WithError(err).WithField("room_id", roomID).Error("Failed to get room")
		respondServiceError(c, err, "Failed to get room")
		return
	}

	utils.SuccessResponse(c, "Room retrieved successfully", room)
}

// CreateRoomsBulk handles POST /api/v1/rooms/bulk
// @Summary Bulk-provision rooms
// @Description Create multiple room ledger entries with zero occupancy. Admin only.
// @Tags rooms
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body BulkRoomRequest true "Rooms to create"
// @Success 201 {object} utils.APIResponse{data=[]response.RoomSummaryResponse} "Rooms created"
// @Failure 400 {object} utils.APIResponse "Invalid request"
// @Failure 401 {object} utils.APIResponse "Unauthenticated"
// @Failure 403 {object} utils.APIResponse "Forbidden"
// @Failure 500 {object} utils.APIResponse "Internal server error"
// @Router /api/v1/rooms/bulk [post]
func (h *RoomHandler) CreateRoomsBulk(c *gin.Context) {
	var req BulkRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.WithError(err).Error("Invalid bulk room request body")
		utils.BadRequestResponse(c, "Request body must be valid JSON with a rooms list", err)
		return
	}

	inputs := make([]service.RoomProvisionInput, 0, len(req.Rooms))
	for _, room := range req.Rooms {
		inputs = append(inputs, service.RoomProvisionInput{
			RoomNumber:  room.RoomNumber,
			Building:    room.Building,
			Floor:       room.Floor,
			Capacity:    room.Capacity,
			MonthlyRent: room.MonthlyRent,
		})
	}

	rooms, err := h.roomService.ProvisionRooms(inputs)
	if err != nil {
		h.logger.WithError(err).Error("Failed to provision rooms")
		respondServiceError(c, err, "Failed to provision rooms")
		return
	}

	h.logger.WithField("count", len(rooms)).Info("Rooms provisioned")

	utils.CreatedResponse(c, "Rooms created successfully", rooms)
}

// SetMaintenance handles PUT /api/v1/rooms/:id/maintenance
// @Summary Toggle room maintenance
// @Description Put a room into or out of maintenance; leaving maintenance re-derives the status from occupancy. Admin only.
// @Tags rooms
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Room ID"
// @Param request body MaintenanceRequest true "Maintenance flag"
// @Success 200 {object} utils.APIResponse{data=response.RoomSummaryResponse} "Room updated"
// @Failure 400 {object} utils.APIResponse "Invalid request"
// @Failure 401 {object} utils.APIResponse "Unauthenticated"
// @Failure 403 {object} utils.APIResponse "Forbidden"
// @Failure 404 {object} utils.APIResponse "Room not found"
// @Failure 500 {object} utils.APIResponse "Internal server error"
// @Router /api/v1/rooms/{id}/maintenance [put]
func (h *RoomHandler) SetMaintenance(c *gin.Context) {
	roomID, ok := parseIDParam(c, h.logger)
	if !ok {
		return
	}

	var req MaintenanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.WithError(err).Error("Invalid maintenance request body")
		utils.BadRequestResponse(c, "Request body must be valid JSON with a maintenance flag", err)
		return
	}

	room, err := h.roomService.SetMaintenance(roomID, *req.Maintenance)
	if err != nil {
		h.logger.WithError(err).WithField("room_id", roomID).Error("Failed to update maintenance status")
		respondServiceError(c, err, "Failed to update maintenance status")
		return
	}

	utils.SuccessResponse(c, "Room updated successfully", room)
}

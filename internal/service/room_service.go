package service

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"pg-be-svc/internal/models"
	"pg-be-svc/internal/models/response"
	"pg-be-svc/internal/repository"
	"pg-be-svc/pkg/logger"
)

// RoomProvisionInput describes one room to create during bulk provisioning
type RoomProvisionInput struct {
	RoomNumber  string
	Building    string
	Floor       int
	Capacity    int
	MonthlyRent int64
}

// RoomService handles room inventory reads and provisioning. Occupancy
// counters are owned by the allocation service and are never written here.
type RoomService interface {
	GetRooms() ([]*response.RoomSummaryResponse, error)
	GetRoom(id uint) (*response.RoomSummaryResponse, error)
	ProvisionRooms(inputs []RoomProvisionInput) ([]*response.RoomSummaryResponse, error)
	SetMaintenance(id uint, maintenance bool) (*response.RoomSummaryResponse, error)
}

// roomService implements RoomService
type roomService struct {
	roomRepo repository.RoomRepository
	logger   *logger.Logger
}

// NewRoomService creates a new instance of RoomService
func NewRoomService(roomRepo repository.RoomRepository, logger *logger.Logger) RoomService {
	return &roomService{
		roomRepo: roomRepo,
		logger:   logger,
	}
}

// GetRooms lists all rooms
func (s *roomService) GetRooms() ([]*response.RoomSummaryResponse, error) {
	rooms, err := s.roomRepo.GetAll()
	if err != nil {
		s.logger.WithError(err).Error("Failed to list rooms")
		return nil, WrapInternal("failed to list rooms", err)
	}

	summaries := make([]*response.RoomSummaryResponse, 0, len(rooms))
	for _, room := range rooms {
		summaries = append(summaries, toRoomSummary(room))
	}

	return summaries, nil
}

// GetRoom retrieves a single room by ID
func (s *roomService) GetRoom(id uint) (*response.RoomSummaryResponse, error) {
	room, err := s.roomRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NewServiceError(ErrKindNotFound, fmt.Sprintf("room %d not found", id))
		}
		s.logger.WithError(err).WithField("room_id", id).Error("Failed to load room")
		return nil, WrapInternal("failed to load room", err)
	}

	return toRoomSummary(room), nil
}

// ProvisionRooms bulk-creates room ledger entries with zero occupancy
func (s *roomService) ProvisionRooms(inputs []RoomProvisionInput) ([]*response.RoomSummaryResponse, error) {
	if len(inputs) == 0 {
		return nil, NewServiceError(ErrKindInvalidInput, "at least one room is required")
	}

	rooms := make([]*models.Room, 0, len(inputs))
	for _, input := range inputs {
		if input.RoomNumber == "" {
			return nil, NewServiceError(ErrKindInvalidInput, "room_number is required for every room")
		}
		if input.Capacity <= 0 {
			return nil, NewServiceError(ErrKindInvalidInput,
				fmt.Sprintf("room %s: capacity must be positive", input.RoomNumber))
		}

		rooms = append(rooms, &models.Room{
			RoomNumber:       input.RoomNumber,
			Building:         input.Building,
			Floor:            input.Floor,
			Capacity:         input.Capacity,
			CurrentOccupancy: 0,
			Status:           models.RoomStatusAvailable,
			MonthlyRent:      input.MonthlyRent,
		})
	}

	if err := s.roomRepo.CreateBulk(rooms); err != nil {
		s.logger.WithError(err).WithField("count", len(rooms)).Error("Failed to provision rooms")
		return nil, WrapInternal("failed to provision rooms", err)
	}

	s.logger.WithField("count", len(rooms)).Info("Rooms provisioned")

	summaries := make([]*response.RoomSummaryResponse, 0, len(rooms))
	for _, room := range rooms {
		summaries = append(summaries, toRoomSummary(room))
	}

	return summaries, nil
}

// SetMaintenance toggles a room's maintenance status
func (s *roomService) SetMaintenance(id uint, maintenance bool) (*response.RoomSummaryResponse, error) {
	room, err := s.roomRepo.SetMaintenance(id, maintenance)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NewServiceError(ErrKindNotFound, fmt.Sprintf("room %d not found", id))
		}
		s.logger.WithError(err).WithField("room_id", id).Error("Failed to update maintenance status")
		return nil, WrapInternal("failed to update maintenance status", err)
	}

	s.logger.WithFields(map[string]interface{}{
		"room_id":     id,
		"maintenance": maintenance,
		"status":      room.Status,
	}).Info("Room maintenance status updated")

	return toRoomSummary(room), nil
}

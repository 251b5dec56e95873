package service

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"pg-be-svc/internal/models"
	"pg-be-svc/internal/models/response"
	"pg-be-svc/internal/repository"
	"pg-be-svc/pkg/logger"
)

// Minimum notice lead times. A fresh notice commits 30 days out; once a
// resident is already serving notice, shortening the date is floored at 10
// days so the operator is never left with zero lead time.
const (
	minNoticeDaysFresh    = 30
	minNoticeDaysOnNotice = 10
)

// AllocationService executes the registration-approval and room-occupancy
// transitions, keeping room occupancy counts consistent with active
// residents across every operation.
type AllocationService interface {
	Approve(residentID uint, building, roomNumber string, checkInDate *time.Time) (*response.AllocationResponse, error)
	Reject(residentID uint, reason string) (*response.AllocationResponse, error)
	Deactivate(residentID uint) (*response.AllocationResponse, error)
	Reactivate(residentID uint, roomID *uint, checkInDate *time.Time) (*response.AllocationResponse, error)
	SubmitNoticePeriod(email string, lastStayingDate *time.Time) (*response.AllocationResponse, error)
	WithdrawNoticePeriod(email string) (*response.AllocationResponse, error)
}

// allocationService implements AllocationService
type allocationService struct {
	residentRepo repository.ResidentRepository
	roomRepo     repository.RoomRepository
	allocRepo    repository.AllocationRepository
	notifier     NotificationService
	logger       *logger.Logger
}

// NewAllocationService creates a new instance of AllocationService
func NewAllocationService(
	residentRepo repository.ResidentRepository,
	roomRepo repository.RoomRepository,
	allocRepo repository.AllocationRepository,
	notifier NotificationService,
	logger *logger.Logger,
) AllocationService {
	return &allocationService{
		residentRepo: residentRepo,
		roomRepo:     roomRepo,
		allocRepo:    allocRepo,
		notifier:     notifier,
		logger:       logger,
	}
}

// Approve moves a pending registration into an occupied room slot. The
// resident and room records commit together; the welcome email is
// best-effort and never rolls the commit back.
func (s *allocationService) Approve(residentID uint, building, roomNumber string, checkInDate *time.Time) (*response.AllocationResponse, error) {
	resident, err := s.getResident(residentID)
	if err != nil {
		return nil, err
	}

	if !resident.IsPending() {
		return nil, NewServiceError(ErrKindAlreadyProcessed,
			fmt.Sprintf("registration has already been processed: current status is %s", resident.RegistrationStatus))
	}

	room, err := s.roomRepo.GetByNumber(building, roomNumber)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NewServiceError(ErrKindNotFound, fmt.Sprintf("room %s not found", roomNumber))
		}
		s.logger.WithError(err).WithField("room_number", roomNumber).Error("Failed to load room")
		return nil, WrapInternal("failed to load room", err)
	}

	if room.Status == models.RoomStatusMaintenance {
		return nil, NewServiceError(ErrKindRoomFull,
			fmt.Sprintf("room %s is under maintenance and cannot be allocated", roomNumber))
	}
	if room.CurrentOccupancy >= room.Capacity {
		return nil, NewServiceError(ErrKindRoomFull,
			fmt.Sprintf("room %s is full (%d/%d occupied)", roomNumber, room.CurrentOccupancy, room.Capacity))
	}

	pgID, err := s.uniquePGID(resident.Email)
	if err != nil {
		s.logger.WithError(err).WithField("resident_id", residentID).Error("Failed to derive pg_id")
		return nil, WrapInternal("failed to derive login id", err)
	}

	plainPassword := deriveInitialPassword(resident.Phone)
	passwordHash, err := hashPassword(plainPassword)
	if err != nil {
		s.logger.WithError(err).WithField("resident_id", residentID).Error("Failed to hash password")
		return nil, WrapInternal("failed to generate credentials", err)
	}

	now := time.Now()
	moveIn := now
	if checkInDate != nil {
		moveIn = *checkInDate
	}

	resident.RegistrationStatus = models.RegistrationApproved
	resident.PGID = &pgID
	resident.Password = passwordHash
	resident.ApprovalDate = &now
	resident.RoomID = &room.ID
	resident.MoveInDate = &moveIn
	resident.IsActive = true

	// The row-level claim re-checks the pending status, so a duplicate
	// concurrent approval loses here instead of double-allocating.
	guard := repository.ResidentGuard{RegistrationStatus: models.RegistrationPending}
	updatedRoom, err := s.allocRepo.AssignRoomSlot(resident, &room.ID, guard)
	if err != nil {
		if errors.Is(err, repository.ErrStaleResident) {
			return nil, NewServiceError(ErrKindAlreadyProcessed, "registration has already been processed")
		}
		if errors.Is(err, repository.ErrNoVacancy) {
			return nil, NewServiceError(ErrKindRoomFull,
				fmt.Sprintf("room %s is full (%d/%d occupied)", roomNumber, room.Capacity, room.Capacity))
		}
		s.logger.WithError(err).WithFields(map[string]interface{}{
			"resident_id": residentID,
			"room_id":     room.ID,
		}).Error("Failed to commit approval")
		return nil, WrapInternal("failed to approve registration", err)
	}

	s.logger.WithFields(map[string]interface{}{
		"resident_id": residentID,
		"pg_id":       pgID,
		"room_id":     updatedRoom.ID,
		"occupancy":   updatedRoom.CurrentOccupancy,
	}).Info("Registration approved")

	resp := &response.AllocationResponse{
		Resident: toResidentSummary(resident),
		Room:     toRoomSummary(updatedRoom),
	}

	// Welcome mail carries the one-time plaintext password; it exists only
	// in this dispatch and is never persisted.
	if err := s.notifier.Send(resident.Email, TemplateWelcome, map[string]string{
		"name":        resident.Name,
		"pg_id":       pgID,
		"password":    plainPassword,
		"room_number": updatedRoom.RoomNumber,
		"building":    updatedRoom.Building,
	}); err != nil {
		s.logger.WithError(err).WithField("resident_id", residentID).Error("Failed to send welcome email")
		resp.Notification = "welcome email could not be sent"
	}

	return resp, nil
}

// Reject closes a pending registration without touching any room
func (s *allocationService) Reject(residentID uint, reason string) (*response.AllocationResponse, error) {
	resident, err := s.getResident(residentID)
	if err != nil {
		return nil, err
	}

	if !resident.IsPending() {
		return nil, NewServiceError(ErrKindAlreadyProcessed,
			fmt.Sprintf("registration has already been processed: current status is %s", resident.RegistrationStatus))
	}

	now := time.Now()
	resident.RegistrationStatus = models.RegistrationRejected
	resident.RejectionDate = &now
	if reason != "" {
		resident.RejectionReason = &reason
	}

	if err := s.residentRepo.MarkRejected(resident); err != nil {
		if errors.Is(err, repository.ErrStaleResident) {
			return nil, NewServiceError(ErrKindAlreadyProcessed, "registration has already been processed")
		}
		s.logger.WithError(err).WithField("resident_id", residentID).Error("Failed to commit rejection")
		return nil, WrapInternal("failed to reject registration", err)
	}

	s.logger.WithFields(map[string]interface{}{
		"resident_id": residentID,
		"reason":      reason,
	}).Info("Registration rejected")

	resp := &response.AllocationResponse{
		Resident: toResidentSummary(resident),
	}

	if err := s.notifier.Send(resident.Email, TemplateRejection, map[string]string{
		"name":   resident.Name,
		"reason": reason,
	}); err != nil {
		s.logger.WithError(err).WithField("resident_id", residentID).Error("Failed to send rejection email")
		resp.Notification = "rejection email could not be sent"
	}

	return resp, nil
}

// Deactivate moves an active resident out, releasing their room slot
func (s *allocationService) Deactivate(residentID uint) (*response.AllocationResponse, error) {
	resident, err := s.getResident(residentID)
	if err != nil {
		return nil, err
	}

	if !resident.IsActive {
		return nil, NewServiceError(ErrKindNotActive, "resident is not active")
	}

	previousRoomID := resident.RoomID
	now := time.Now()

	resident.IsActive = false
	resident.RoomID = nil
	resident.MoveOutDate = &now
	resident.IsOnNoticePeriod = false
	resident.LastStayingDate = nil

	// Guarding on is_active means a duplicate deactivation cannot release
	// a slot that another resident now holds.
	wasActive := true
	updatedRoom, err := s.allocRepo.ReleaseRoomSlot(resident, previousRoomID, repository.ResidentGuard{IsActive: &wasActive})
	if err != nil {
		if errors.Is(err, repository.ErrStaleResident) {
			return nil, NewServiceError(ErrKindNotActive, "resident is not active")
		}
		s.logger.WithError(err).WithField("resident_id", residentID).Error("Failed to commit deactivation")
		return nil, WrapInternal("failed to deactivate resident", err)
	}

	s.logger.WithFields(map[string]interface{}{
		"resident_id": residentID,
		"room_id":     previousRoomID,
	}).Info("Resident deactivated")

	return &response.AllocationResponse{
		Resident: toResidentSummary(resident),
		Room:     toRoomSummary(updatedRoom),
	}, nil
}

// Reactivate brings a previously approved resident back, optionally into a
// room with spare capacity. There is no fallback room: a missing or full
// target fails outright.
func (s *allocationService) Reactivate(residentID uint, roomID *uint, checkInDate *time.Time) (*response.AllocationResponse, error) {
	resident, err := s.getResident(residentID)
	if err != nil {
		return nil, err
	}

	if resident.IsDeleted {
		// Soft-deleted residents go through a separate restore path
		return nil, NewServiceError(ErrKindInvalidInput, "resident is deleted and must be restored before reactivation")
	}
	if resident.RegistrationStatus != models.RegistrationApproved {
		return nil, NewServiceError(ErrKindInvalidInput,
			fmt.Sprintf("resident registration is not approved: current status is %s", resident.RegistrationStatus))
	}
	if resident.IsActive {
		return nil, NewServiceError(ErrKindInvalidInput, "resident is already active")
	}

	var room *models.Room
	if roomID != nil {
		room, err = s.roomRepo.GetByID(*roomID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, NewServiceError(ErrKindNotFound, fmt.Sprintf("room %d not found", *roomID))
			}
			s.logger.WithError(err).WithField("room_id", *roomID).Error("Failed to load room")
			return nil, WrapInternal("failed to load room", err)
		}
		if !room.HasVacancy() {
			return nil, NewServiceError(ErrKindRoomFull,
				fmt.Sprintf("room %s is full (%d/%d occupied)", room.RoomNumber, room.CurrentOccupancy, room.Capacity))
		}
	}

	now := time.Now()
	moveIn := now
	if checkInDate != nil {
		moveIn = *checkInDate
	}

	resident.IsActive = true
	resident.IsDeleted = false
	resident.MoveInDate = &moveIn
	resident.MoveOutDate = nil
	resident.IsOnNoticePeriod = false
	resident.LastStayingDate = nil
	resident.RoomID = roomID

	wasInactive := false
	guard := repository.ResidentGuard{
		RegistrationStatus: models.RegistrationApproved,
		IsActive:           &wasInactive,
	}
	updatedRoom, err := s.allocRepo.AssignRoomSlot(resident, roomID, guard)
	if err != nil {
		if errors.Is(err, repository.ErrStaleResident) {
			return nil, NewServiceError(ErrKindInvalidInput, "resident is already active")
		}
		if errors.Is(err, repository.ErrNoVacancy) {
			return nil, NewServiceError(ErrKindRoomFull,
				fmt.Sprintf("room %s is full (%d/%d occupied)", room.RoomNumber, room.Capacity, room.Capacity))
		}
		s.logger.WithError(err).WithField("resident_id", residentID).Error("Failed to commit reactivation")
		return nil, WrapInternal("failed to reactivate resident", err)
	}

	s.logger.WithFields(map[string]interface{}{
		"resident_id": residentID,
		"room_id":     roomID,
	}).Info("Resident reactivated")

	return &response.AllocationResponse{
		Resident: toResidentSummary(resident),
		Room:     toRoomSummary(updatedRoom),
	}, nil
}

// SubmitNoticePeriod records or adjusts a resident's intent to vacate.
// Fresh notices must be at least 30 days out; adjusting an existing notice
// is floored at 10 days.
func (s *allocationService) SubmitNoticePeriod(email string, lastStayingDate *time.Time) (*response.AllocationResponse, error) {
	resident, err := s.getResidentByEmail(email)
	if err != nil {
		return nil, err
	}

	if !resident.IsActive {
		return nil, NewServiceError(ErrKindNotActive, "resident is not active")
	}
	if lastStayingDate == nil {
		return nil, NewServiceError(ErrKindInvalidInput, "last_staying_date is required")
	}

	floorDays := minNoticeDaysFresh
	if resident.IsOnNoticePeriod {
		floorDays = minNoticeDaysOnNotice
	}

	today := truncateToDate(time.Now())
	minDate := today.AddDate(0, 0, floorDays)
	requested := truncateToDate(*lastStayingDate)

	if requested.Before(minDate) {
		return nil, NewServiceError(ErrKindBelowMinimumNotice,
			fmt.Sprintf("last staying date must be at least %d days out; earliest allowed date is %s",
				floorDays, minDate.Format("2006-01-02")))
	}

	resident.IsOnNoticePeriod = true
	resident.LastStayingDate = &requested

	if err := s.residentRepo.Update(resident); err != nil {
		s.logger.WithError(err).WithField("resident_id", resident.ID).Error("Failed to commit notice period")
		return nil, WrapInternal("failed to submit notice period", err)
	}

	s.logger.WithFields(map[string]interface{}{
		"resident_id":       resident.ID,
		"last_staying_date": requested.Format("2006-01-02"),
	}).Info("Notice period recorded")

	return &response.AllocationResponse{
		Resident: toResidentSummary(resident),
	}, nil
}

// WithdrawNoticePeriod cancels an active notice
func (s *allocationService) WithdrawNoticePeriod(email string) (*response.AllocationResponse, error) {
	resident, err := s.getResidentByEmail(email)
	if err != nil {
		return nil, err
	}

	if !resident.IsOnNoticePeriod {
		return nil, NewServiceError(ErrKindNotOnNotice, "no active notice period to withdraw")
	}

	resident.IsOnNoticePeriod = false
	resident.LastStayingDate = nil

	if err := s.residentRepo.Update(resident); err != nil {
		s.logger.WithError(err).WithField("resident_id", resident.ID).Error("Failed to withdraw notice period")
		return nil, WrapInternal("failed to withdraw notice period", err)
	}

	s.logger.WithField("resident_id", resident.ID).Info("Notice period withdrawn")

	return &response.AllocationResponse{
		Resident: toResidentSummary(resident),
	}, nil
}

// getResident loads a resident or returns a typed NotFound
func (s *allocationService) getResident(residentID uint) (*models.Resident, error) {
	resident, err := s.residentRepo.GetByID(residentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NewServiceError(ErrKindNotFound, fmt.Sprintf("resident %d not found", residentID))
		}
		s.logger.WithError(err).WithField("resident_id", residentID).Error("Failed to load resident")
		return nil, WrapInternal("failed to load resident", err)
	}
	return resident, nil
}

// getResidentByEmail resolves the caller's own resident record
func (s *allocationService) getResidentByEmail(email string) (*models.Resident, error) {
	resident, err := s.residentRepo.GetByEmail(email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NewServiceError(ErrKindNotFound, "no resident record found for caller")
		}
		s.logger.WithError(err).WithField("email", email).Error("Failed to load resident")
		return nil, WrapInternal("failed to load resident", err)
	}
	if resident.IsDeleted {
		return nil, NewServiceError(ErrKindNotFound, "no resident record found for caller")
	}
	return resident, nil
}

// uniquePGID derives the login id from the email local-part and suffixes a
// counter on collision
func (s *allocationService) uniquePGID(email string) (string, error) {
	base := derivePGID(email)
	candidate := base

	for i := 2; ; i++ {
		exists, err := s.residentRepo.PGIDExists(candidate)
		if err != nil {
			return "", err
		}
		if !exists {
			return candidate, nil
		}
		candidate = fmt.Sprintf("%s%d", base, i)
	}
}

// truncateToDate drops the time-of-day component
func truncateToDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// toResidentSummary converts a resident model to its response summary
func toResidentSummary(resident *models.Resident) *response.ResidentSummaryResponse {
	summary := &response.ResidentSummaryResponse{
		ID:                 resident.ID,
		Name:               resident.Name,
		Email:              resident.Email,
		Phone:              resident.Phone,
		RegistrationStatus: resident.RegistrationStatus,
		IsActive:           resident.IsActive,
		IsOnNoticePeriod:   resident.IsOnNoticePeriod,
		LastStayingDate:    resident.LastStayingDate,
		MoveInDate:         resident.MoveInDate,
		MoveOutDate:        resident.MoveOutDate,
		RoomID:             resident.RoomID,
	}
	if resident.PGID != nil {
		summary.PGID = *resident.PGID
	}
	return summary
}

// toRoomSummary converts a room model to its response summary
func toRoomSummary(room *models.Room) *response.RoomSummaryResponse {
	if room == nil {
		return nil
	}
	return &response.RoomSummaryResponse{
		ID:               room.ID,
		RoomNumber:       room.RoomNumber,
		Building:         room.Building,
		Floor:            room.Floor,
		Capacity:         room.Capacity,
		CurrentOccupancy: room.CurrentOccupancy,
		Status:           room.Status,
	}
}

package service

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	"pg-be-svc/internal/models"
	"pg-be-svc/internal/models/response"
	"pg-be-svc/internal/repository"
	"pg-be-svc/pkg/logger"
)

// RegistrationService handles the public registration submission path and
// the admin view of pending applications
type RegistrationService interface {
	Register(name, email, phone string) (*response.ResidentSummaryResponse, error)
	GetPendingRegistrations() ([]*response.ResidentSummaryResponse, error)
}

// registrationService implements RegistrationService
type registrationService struct {
	residentRepo repository.ResidentRepository
	logger       *logger.Logger
}

// NewRegistrationService creates a new instance of RegistrationService
func NewRegistrationService(residentRepo repository.ResidentRepository, logger *logger.Logger) RegistrationService {
	return &registrationService{
		residentRepo: residentRepo,
		logger:       logger,
	}
}

// Register creates a new pending resident record
func (s *registrationService) Register(name, email, phone string) (*response.ResidentSummaryResponse, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	existing, err := s.residentRepo.GetByEmail(email)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		s.logger.WithError(err).WithField("email", email).Error("Failed to check existing registration")
		return nil, WrapInternal("failed to check existing registration", err)
	}
	if existing != nil {
		return nil, NewServiceError(ErrKindConflict, "a registration with this email already exists")
	}

	resident := &models.Resident{
		Name:               strings.TrimSpace(name),
		Email:              email,
		Phone:              strings.TrimSpace(phone),
		RegistrationStatus: models.RegistrationPending,
	}

	if err := s.residentRepo.Create(resident); err != nil {
		s.logger.WithError(err).WithField("email", email).Error("Failed to create registration")
		return nil, WrapInternal("failed to create registration", err)
	}

	s.logger.WithFields(map[string]interface{}{
		"resident_id": resident.ID,
		"email":       email,
	}).Info("Registration submitted")

	return toResidentSummary(resident), nil
}

// GetPendingRegistrations lists registrations awaiting a decision
func (s *registrationService) GetPendingRegistrations() ([]*response.ResidentSummaryResponse, error) {
	residents, err := s.residentRepo.GetPendingResidents()
	if err != nil {
		s.logger.WithError(err).Error("Failed to get pending registrations")
		return nil, WrapInternal("failed to get pending registrations", err)
	}

	summaries := make([]*response.ResidentSummaryResponse, 0, len(residents))
	for _, resident := range residents {
		summaries = append(summaries, toResidentSummary(resident))
	}

	return summaries, nil
}

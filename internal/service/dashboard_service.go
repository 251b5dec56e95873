package service

import (
	"pg-be-svc/internal/models/response"
	"pg-be-svc/internal/repository"
	"pg-be-svc/pkg/logger"
)

// DashboardService exposes occupancy statistics for the admin dashboard
type DashboardService interface {
	GetOccupancySummary() (*response.OccupancyDashboardResponse, error)
}

// dashboardService implements DashboardService
type dashboardService struct {
	dashboardRepo repository.DashboardRepository
	logger        *logger.Logger
}

// NewDashboardService creates a new instance of DashboardService
func NewDashboardService(dashboardRepo repository.DashboardRepository, logger *logger.Logger) DashboardService {
	return &dashboardService{
		dashboardRepo: dashboardRepo,
		logger:        logger,
	}
}

// GetOccupancySummary aggregates resident and room occupancy counts
func (s *dashboardService) GetOccupancySummary() (*response.OccupancyDashboardResponse, error) {
	summary, err := s.dashboardRepo.GetOccupancySummary()
	if err != nil {
		s.logger.WithError(err).Error("Failed to get occupancy summary")
		return nil, WrapInternal("failed to get occupancy summary", err)
	}

	s.logger.WithFields(map[string]interface{}{
		"active_residents": summary.ActiveResidents,
		"available_rooms":  summary.AvailableRooms,
	}).Info("Occupancy summary retrieved")

	return summary, nil
}

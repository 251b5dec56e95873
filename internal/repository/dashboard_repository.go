package repository

import (
	"gorm.io/gorm"

	"pg-be-svc/internal/models/response"
)

// DashboardRepository defines the interface for occupancy dashboard queries
type DashboardRepository interface {
	GetOccupancySummary() (*response.OccupancyDashboardResponse, error)
}

// dashboardRepository implements DashboardRepository
type dashboardRepository struct {
	db *gorm.DB
}

// NewDashboardRepository creates a new instance of DashboardRepository
func NewDashboardRepository(db *gorm.DB) DashboardRepository {
	return &dashboardRepository{
		db: db,
	}
}

// GetOccupancySummary aggregates resident and room occupancy counts
func (r *dashboardRepository) GetOccupancySummary() (*response.OccupancyDashboardResponse, error) {
	var summary response.OccupancyDashboardResponse

	residentQuery := `
		select
			count(*) filter (where registration_status = 'pending' and is_deleted = false) as pending_registrations,
			count(*) filter (where is_active = true) as active_residents,
			count(*) filter (where is_active = true and is_on_notice_period = true) as residents_on_notice
		from residents
	`

	if err := r.db.Raw(residentQuery).Scan(&summary).Error; err != nil {
		return nil, err
	}

	roomQuery := `
		select
			count(*) as total_rooms,
			count(*) filter (where status = 'available') as available_rooms,
			count(*) filter (where status = 'occupied') as occupied_rooms,
			count(*) filter (where status = 'maintenance') as maintenance_rooms,
			coalesce(sum(capacity), 0) as total_capacity,
			coalesce(sum(current_occupancy), 0) as total_occupancy
		from rooms
	`

	if err := r.db.Raw(roomQuery).Scan(&summary).Error; err != nil {
		return nil, err
	}

	return &summary, nil
}

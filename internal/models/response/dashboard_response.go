package response

// OccupancyDashboardResponse summarizes resident and room occupancy state
type OccupancyDashboardResponse struct {
	PendingRegistrations int64 `json:"pending_registrations" example:"4"`
	ActiveResidents      int64 `json:"active_residents" example:"38"`
	ResidentsOnNotice    int64 `json:"residents_on_notice" example:"3"`
	TotalRooms           int64 `json:"total_rooms" example:"25"`
	AvailableRooms       int64 `json:"available_rooms" example:"6"`
	OccupiedRooms        int64 `json:"occupied_rooms" example:"17"`
	MaintenanceRooms     int64 `json:"maintenance_rooms" example:"2"`
	TotalCapacity        int64 `json:"total_capacity" example:"50"`
	TotalOccupancy       int64 `json:"total_occupancy" example:"38"`
}

package response

import "time"

// ResidentSummaryResponse is the resident summary returned by allocation endpoints
type ResidentSummaryResponse struct {
	ID                 uint       `json:"id" example:"1"`
	PGID               string     `json:"pg_id,omitempty" example:"JOHN.DOE"`
	Name               string     `json:"name" example:"John Doe"`
	Email              string     `json:"email" example:"john.doe@example.com"`
	Phone              string     `json:"phone" example:"+919876543210"`
	RegistrationStatus string     `json:"registration_status" example:"approved"`
	IsActive           bool       `json:"is_active" example:"true"`
	IsOnNoticePeriod   bool       `json:"is_on_notice_period" example:"false"`
	LastStayingDate    *time.Time `json:"last_staying_date,omitempty"`
	MoveInDate         *time.Time `json:"move_in_date,omitempty"`
	MoveOutDate        *time.Time `json:"move_out_date,omitempty"`
	RoomID             *uint      `json:"room_id,omitempty" example:"12"`
}

// RoomSummaryResponse is the room summary returned by allocation endpoints
type RoomSummaryResponse struct {
	ID               uint   `json:"id" example:"12"`
	RoomNumber       string `json:"room_number" example:"101"`
	Building         string `json:"building" example:"A"`
	Floor            int    `json:"floor" example:"1"`
	Capacity         int    `json:"capacity" example:"2"`
	CurrentOccupancy int    `json:"current_occupancy" example:"1"`
	Status           string `json:"status" example:"available"`
}

// AllocationResponse is the combined payload returned by allocation
// operations. Notification carries the best-effort dispatch status and is
// informational only.
type AllocationResponse struct {
	Resident     *ResidentSummaryResponse `json:"resident,omitempty"`
	Room         *RoomSummaryResponse     `json:"room,omitempty"`
	Notification string                   `json:"notification,omitempty" example:"welcome email could not be sent"`
}

package models

import (
	"time"
)

// Registration status values for a resident
const (
	RegistrationPending  = "pending"
	RegistrationApproved = "approved"
	RegistrationRejected = "rejected"
)

// Resident represents the residents table. One record per person, spanning
// the full lifecycle from pending application to active resident to
// departed/reactivated state. Records are never hard-deleted.
type Resident struct {
	ID                 uint       `json:"id" gorm:"primarykey"`
	PGID               *string    `json:"pg_id" gorm:"column:pg_id;uniqueIndex"`
	Name               string     `json:"name" gorm:"column:name"`
	Email              string     `json:"email" gorm:"column:email;uniqueIndex"`
	Phone              string     `json:"phone" gorm:"column:phone"`
	Password           string     `json:"-" gorm:"column:password"`
	RegistrationStatus string     `json:"registration_status" gorm:"column:registration_status;default:pending"`
	RejectionReason    *string    `json:"rejection_reason,omitempty" gorm:"column:rejection_reason"`
	ApprovalDate       *time.Time `json:"approval_date,omitempty" gorm:"column:approval_date"`
	RejectionDate      *time.Time `json:"rejection_date,omitempty" gorm:"column:rejection_date"`
	IsActive           bool       `json:"is_active" gorm:"column:is_active;default:false"`
	IsDeleted          bool       `json:"is_deleted" gorm:"column:is_deleted;default:false"`
	IsOnNoticePeriod   bool       `json:"is_on_notice_period" gorm:"column:is_on_notice_period;default:false"`
	LastStayingDate    *time.Time `json:"last_staying_date,omitempty" gorm:"column:last_staying_date"`
	MoveInDate         *time.Time `json:"move_in_date,omitempty" gorm:"column:move_in_date"`
	MoveOutDate        *time.Time `json:"move_out_date,omitempty" gorm:"column:move_out_date"`
	RoomID             *uint      `json:"room_id,omitempty" gorm:"column:room_id"`
	CreatedAt          time.Time  `json:"created_at"`
	UpdatedAt          time.Time  `json:"updated_at"`
}

// TableName sets the insert table name for Resident
func (Resident) TableName() string {
	return "residents"
}

// IsPending reports whether the registration is still awaiting a decision
func (r *Resident) IsPending() bool {
	return r.RegistrationStatus == RegistrationPending
}

package models

import (
	"time"
)

// Room status values. "maintenance" is set manually and excludes the room
// from allocation regardless of occupancy count.
const (
	RoomStatusAvailable   = "available"
	RoomStatusOccupied    = "occupied"
	RoomStatusMaintenance = "maintenance"
)

// Room represents the rooms table. CurrentOccupancy must always equal the
// count of active residents whose room_id references this room; the
// allocation service is the only writer of the counter.
type Room struct {
	ID               uint      `json:"id" gorm:"primarykey"`
	RoomNumber       string    `json:"room_number" gorm:"column:room_number;uniqueIndex:idx_building_room"`
	Building         string    `json:"building" gorm:"column:building;uniqueIndex:idx_building_room"`
	Floor            int       `json:"floor" gorm:"column:floor"`
	Capacity         int       `json:"capacity" gorm:"column:capacity"`
	CurrentOccupancy int       `json:"current_occupancy" gorm:"column:current_occupancy;default:0"`
	Status           string    `json:"status" gorm:"column:status;default:available"`
	MonthlyRent      int64     `json:"monthly_rent" gorm:"column:monthly_rent"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// TableName sets the insert table name for Room
func (Room) TableName() string {
	return "rooms"
}

// DeriveStatus returns the status implied by occupancy vs capacity. A room
// in maintenance keeps that status regardless of the occupancy count.
func (r *Room) DeriveStatus() string {
	if r.Status == RoomStatusMaintenance {
		return RoomStatusMaintenance
	}
	if r.CurrentOccupancy >= r.Capacity {
		return RoomStatusOccupied
	}
	return RoomStatusAvailable
}

// HasVacancy reports whether the room can accept one more resident
func (r *Room) HasVacancy() bool {
	return r.Status != RoomStatusMaintenance && r.CurrentOccupancy < r.Capacity
}

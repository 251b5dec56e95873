package repository

import (
	"gorm.io/gorm"

	"pg-be-svc/internal/models"
)

// RoomRepository defines the interface for room data operations
type RoomRepository interface {
	CreateBulk(rooms []*models.Room) error
	GetByID(id uint) (*models.Room, error)
	GetByNumber(building, roomNumber string) (*models.Room, error)
	GetAll() ([]*models.Room, error)
	SetMaintenance(id uint, maintenance bool) (*models.Room, error)
}

// roomRepository implements RoomRepository
type roomRepository struct {
	db *gorm.DB
}

// NewRoomRepository creates a new instance of RoomRepository
func NewRoomRepository(db *gorm.DB) RoomRepository {
	return &roomRepository{
		db: db,
	}
}

// CreateBulk inserts multiple room records
func (r *roomRepository) CreateBulk(rooms []*models.Room) error {
	return r.db.CreateInBatches(rooms, 100).Error
}

// GetByID retrieves a room by internal ID
func (r *roomRepository) GetByID(id uint) (*models.Room, error) {
	var room models.Room

	err := r.db.Where("id = ?", id).First(&room).Error
	if err != nil {
		return nil, err
	}

	return &room, nil
}

// GetByNumber retrieves a room by building and room number. An empty
// building matches any building (single-building deployments).
func (r *roomRepository) GetByNumber(building, roomNumber string) (*models.Room, error) {
	var room models.Room

	query := r.db.Where("room_number = ?", roomNumber)
	if building != "" {
		query = query.Where("building = ?", building)
	}

	err := query.First(&room).Error
	if err != nil {
		return nil, err
	}

	return &room, nil
}

// GetAll retrieves all rooms ordered by building and room number
func (r *roomRepository) GetAll() ([]*models.Room, error) {
	var rooms []*models.Room

	err := r.db.Order("building, room_number").Find(&rooms).Error
	if err != nil {
		return nil, err
	}

	return rooms, nil
}

// SetMaintenance toggles a room's maintenance flag. Leaving maintenance
// re-derives the status from occupancy so the two never desynchronize.
func (r *roomRepository) SetMaintenance(id uint, maintenance bool) (*models.Room, error) {
	var room models.Room

	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ?", id).First(&room).Error; err != nil {
			return err
		}

		if maintenance {
			room.Status = models.RoomStatusMaintenance
		} else {
			room.Status = models.RoomStatusAvailable
			room.Status = room.DeriveStatus()
		}

		return tx.Model(&models.Room{}).Where("id = ?", id).
			UpdateColumn("status", room.Status).Error
	})
	if err != nil {
		return nil, err
	}

	return &room, nil
}

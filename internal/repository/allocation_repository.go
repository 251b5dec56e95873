package repository

import (
	"errors"

	"gorm.io/gorm"

	"pg-be-svc/internal/models"
)

// ErrNoVacancy is returned when a room slot cannot be claimed because the
// room is at capacity or under maintenance.
var ErrNoVacancy = errors.New("room has no vacancy")

// ErrStaleResident is returned when the resident row no longer matches the
// guard state, meaning a concurrent operation already transitioned it.
var ErrStaleResident = errors.New("resident state changed concurrently")

// ResidentGuard is the state the resident row must still hold for a paired
// write to commit. Zero-value fields are not checked.
type ResidentGuard struct {
	RegistrationStatus string
	IsActive           *bool
}

// AllocationRepository commits the paired resident-and-room mutation of a
// single allocation operation as one transaction: either both records
// persist or neither does.
type AllocationRepository interface {
	// AssignRoomSlot persists the resident and, when roomID is non-nil,
	// claims one occupancy slot in that room. The resident row is claimed
	// with a conditional UPDATE against the guard state first, and the
	// capacity check and increment are a single conditional UPDATE, so
	// neither duplicate operations on one resident nor concurrent
	// assignments against the last free slot can corrupt the occupancy
	// count. Returns the updated room.
	AssignRoomSlot(resident *models.Resident, roomID *uint, guard ResidentGuard) (*models.Room, error)

	// ReleaseRoomSlot persists the resident and, when roomID is non-nil,
	// releases one occupancy slot in that room, flooring the counter at
	// zero. The resident row is claimed against the guard state the same
	// way as AssignRoomSlot. Returns the updated room.
	ReleaseRoomSlot(resident *models.Resident, roomID *uint, guard ResidentGuard) (*models.Room, error)
}

// allocationRepository implements AllocationRepository
type allocationRepository struct {
	db *gorm.DB
}

// NewAllocationRepository creates a new instance of AllocationRepository
func NewAllocationRepository(db *gorm.DB) AllocationRepository {
	return &allocationRepository{
		db: db,
	}
}

// AssignRoomSlot claims one slot in the target room and saves the resident atomically
func (r *allocationRepository) AssignRoomSlot(resident *models.Resident, roomID *uint, guard ResidentGuard) (*models.Room, error) {
	var room *models.Room

	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := claimResident(tx, resident, guard); err != nil {
			return err
		}

		if roomID != nil {
			// Conditional increment: succeeds only while a slot is free and
			// the room is not under maintenance.
			result := tx.Model(&models.Room{}).
				Where("id = ? AND status <> ? AND current_occupancy < capacity", *roomID, models.RoomStatusMaintenance).
				UpdateColumn("current_occupancy", gorm.Expr("current_occupancy + 1"))
			if result.Error != nil {
				return result.Error
			}
			if result.RowsAffected == 0 {
				return ErrNoVacancy
			}

			updated, err := syncRoomStatus(tx, *roomID)
			if err != nil {
				return err
			}
			room = updated
		}

		return tx.Save(resident).Error
	})
	if err != nil {
		return nil, err
	}

	return room, nil
}

// ReleaseRoomSlot releases one slot in the given room and saves the resident atomically
func (r *allocationRepository) ReleaseRoomSlot(resident *models.Resident, roomID *uint, guard ResidentGuard) (*models.Room, error) {
	var room *models.Room

	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := claimResident(tx, resident, guard); err != nil {
			return err
		}

		if roomID != nil {
			// Floor the counter at zero; releasing an already-empty room is
			// not an error.
			result := tx.Model(&models.Room{}).
				Where("id = ? AND current_occupancy > 0", *roomID).
				UpdateColumn("current_occupancy", gorm.Expr("current_occupancy - 1"))
			if result.Error != nil {
				return result.Error
			}

			updated, err := syncRoomStatus(tx, *roomID)
			if err != nil {
				return err
			}
			room = updated
		}

		return tx.Save(resident).Error
	})
	if err != nil {
		return nil, err
	}

	return room, nil
}

// claimResident flips is_active with a conditional UPDATE that re-checks the
// guard state under the row lock. Zero rows affected means a concurrent
// operation already transitioned the resident, and the transaction rolls
// back before the room counter is touched.
func claimResident(tx *gorm.DB, resident *models.Resident, guard ResidentGuard) error {
	query := tx.Model(&models.Resident{}).Where("id = ?", resident.ID)
	if guard.RegistrationStatus != "" {
		query = query.Where("registration_status = ?", guard.RegistrationStatus)
	}
	if guard.IsActive != nil {
		query = query.Where("is_active = ?", *guard.IsActive)
	}

	result := query.UpdateColumn("is_active", resident.IsActive)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrStaleResident
	}

	return nil
}

// syncRoomStatus reloads the room and re-derives its status from the
// occupancy counter. Maintenance status is never overwritten.
func syncRoomStatus(tx *gorm.DB, roomID uint) (*models.Room, error) {
	var room models.Room

	if err := tx.Where("id = ?", roomID).First(&room).Error; err != nil {
		return nil, err
	}

	if derived := room.DeriveStatus(); derived != room.Status {
		if err := tx.Model(&models.Room{}).Where("id = ?", roomID).
			UpdateColumn("status", derived).Error; err != nil {
			return nil, err
		}
		room.Status = derived
	}

	return &room, nil
}

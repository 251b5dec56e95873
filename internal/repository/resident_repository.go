package repository

import (
	"time"

	"gorm.io/gorm"

	"pg-be-svc/internal/models"
)

// ResidentRepository defines the interface for resident data operations
type ResidentRepository interface {
	Create(resident *models.Resident) error
	Update(resident *models.Resident) error
	// MarkRejected persists the rejection decision only while the stored
	// row is still pending, so a registration transitions out of pending
	// exactly once. Returns ErrStaleResident when the decision already
	// happened.
	MarkRejected(resident *models.Resident) error
	GetByID(id uint) (*models.Resident, error)
	GetByEmail(email string) (*models.Resident, error)
	PGIDExists(pgID string) (bool, error)
	GetPendingResidents() ([]*models.Resident, error)
	GetResidentsWithNoticeExpiring(from, to time.Time) ([]*models.Resident, error)
	GetResidentsWithNoticeExpired(asOf time.Time) ([]*models.Resident, error)
}

// residentRepository implements ResidentRepository
type residentRepository struct {
	db *gorm.DB
}

// NewResidentRepository creates a new instance of ResidentRepository
func NewResidentRepository(db *gorm.DB) ResidentRepository {
	return &residentRepository{
		db: db,
	}
}

// Create inserts a new resident record
func (r *residentRepository) Create(resident *models.Resident) error {
	return r.db.Create(resident).Error
}

// Update persists all fields of an existing resident record
func (r *residentRepository) Update(resident *models.Resident) error {
	return r.db.Save(resident).Error
}

// MarkRejected flips a still-pending registration to rejected with a
// conditional UPDATE
func (r *residentRepository) MarkRejected(resident *models.Resident) error {
	result := r.db.Model(&models.Resident{}).
		Where("id = ? AND registration_status = ?", resident.ID, models.RegistrationPending).
		Updates(map[string]interface{}{
			"registration_status": resident.RegistrationStatus,
			"rejection_reason":    resident.RejectionReason,
			"rejection_date":      resident.RejectionDate,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrStaleResident
	}

	return nil
}

// GetByID retrieves a resident by internal ID
func (r *residentRepository) GetByID(id uint) (*models.Resident, error) {
	var resident models.Resident

	err := r.db.Where("id = ?", id).First(&resident).Error
	if err != nil {
		return nil, err
	}

	return &resident, nil
}

// GetByEmail retrieves a resident by email
func (r *residentRepository) GetByEmail(email string) (*models.Resident, error) {
	var resident models.Resident

	err := r.db.Where("email = ?", email).First(&resident).Error
	if err != nil {
		return nil, err
	}

	return &resident, nil
}

// PGIDExists reports whether a resident already holds the given pg_id
func (r *residentRepository) PGIDExists(pgID string) (bool, error) {
	var count int64

	err := r.db.Model(&models.Resident{}).Where("pg_id = ?", pgID).Count(&count).Error
	if err != nil {
		return false, err
	}

	return count > 0, nil
}

// GetPendingResidents retrieves all residents awaiting an approval decision
func (r *residentRepository) GetPendingResidents() ([]*models.Resident, error) {
	var residents []*models.Resident

	err := r.db.Where("registration_status = ? AND is_deleted = ?", models.RegistrationPending, false).
		Order("created_at").
		Find(&residents).Error
	if err != nil {
		return nil, err
	}

	return residents, nil
}

// GetResidentsWithNoticeExpiring retrieves active residents whose notice
// period ends within the given window
func (r *residentRepository) GetResidentsWithNoticeExpiring(from, to time.Time) ([]*models.Resident, error) {
	var residents []*models.Resident

	err := r.db.Where("is_active = ? AND is_on_notice_period = ? AND last_staying_date BETWEEN ? AND ?",
		true, true, from, to).
		Find(&residents).Error
	if err != nil {
		return nil, err
	}

	return residents, nil
}

// GetResidentsWithNoticeExpired retrieves active residents whose last
// staying date has already passed
func (r *residentRepository) GetResidentsWithNoticeExpired(asOf time.Time) ([]*models.Resident, error) {
	var residents []*models.Resident

	err := r.db.Where("is_active = ? AND is_on_notice_period = ? AND last_staying_date < ?",
		true, true, asOf).
		Find(&residents).Error
	if err != nil {
		return nil, err
	}

	return residents, nil
}

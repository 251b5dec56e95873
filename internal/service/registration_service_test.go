package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pg-be-svc/internal/models"
	"pg-be-svc/pkg/logger"
)

func newTestRegistrationService(t *testing.T) (RegistrationService, *fakeStore) {
	t.Helper()
	store := newFakeStore()
	svc := NewRegistrationService(&fakeResidentRepo{store: store}, logger.NewLogger("error", "text"))
	return svc, store
}

func TestRegisterCreatesPendingResident(t *testing.T) {
	svc, store := newTestRegistrationService(t)

	resident, err := svc.Register("John Doe", "  John.Doe@Example.com ", "+919876543210")
	require.NoError(t, err)
	assert.Equal(t, models.RegistrationPending, resident.RegistrationStatus)
	assert.Equal(t, "john.doe@example.com", resident.Email)
	assert.False(t, resident.IsActive)
	assert.Empty(t, resident.PGID)

	stored := store.residentByID(resident.ID)
	require.NotNil(t, stored)
	assert.Empty(t, stored.Password)
}

func TestRegisterRejectsDuplicateEmail(t *testing.T) {
	svc, _ := newTestRegistrationService(t)

	_, err := svc.Register("John", "john@example.com", "1234567890")
	require.NoError(t, err)

	_, err = svc.Register("Johnny", "JOHN@example.com", "0987654321")
	require.Error(t, err)
	assert.Equal(t, ErrKindConflict, KindOf(err))
}

func TestGetPendingRegistrations(t *testing.T) {
	svc, store := newTestRegistrationService(t)

	_, err := svc.Register("A", "a@example.com", "1111111111")
	require.NoError(t, err)
	_, err = svc.Register("B", "b@example.com", "2222222222")
	require.NoError(t, err)

	// Already-processed residents are excluded
	store.addResident(&models.Resident{
		Name:               "C",
		Email:              "c@example.com",
		RegistrationStatus: models.RegistrationApproved,
	})

	pending, err := svc.GetPendingRegistrations()
	require.NoError(t, err)
	assert.Len(t, pending, 2)
	for _, registration := range pending {
		assert.Equal(t, models.RegistrationPending, registration.RegistrationStatus)
	}
}

package service

import (
	"sync"
	"time"

	"gorm.io/gorm"

	"pg-be-svc/internal/models"
	"pg-be-svc/internal/repository"
)

// fakeStore is an in-memory stand-in for the persistence layer. Paired
// writes hold the store lock for the whole mutation, matching the
// conditional-update guarantee of the real repositories.
type fakeStore struct {
	mu             sync.Mutex
	residents      map[uint]*models.Resident
	rooms          map[uint]*models.Room
	nextResidentID uint
	nextRoomID     uint
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		residents: make(map[uint]*models.Resident),
		rooms:     make(map[uint]*models.Room),
	}
}

func (s *fakeStore) addResident(resident *models.Resident) *models.Resident {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextResidentID++
	resident.ID = s.nextResidentID
	copied := *resident
	s.residents[resident.ID] = &copied
	return resident
}

func (s *fakeStore) addRoom(room *models.Room) *models.Room {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextRoomID++
	room.ID = s.nextRoomID
	if room.Status == "" {
		room.Status = models.RoomStatusAvailable
	}
	copied := *room
	s.rooms[room.ID] = &copied
	return room
}

func (s *fakeStore) residentByID(id uint) *models.Resident {
	s.mu.Lock()
	defer s.mu.Unlock()
	if resident, ok := s.residents[id]; ok {
		copied := *resident
		return &copied
	}
	return nil
}

func (s *fakeStore) roomByID(id uint) *models.Room {
	s.mu.Lock()
	defer s.mu.Unlock()
	if room, ok := s.rooms[id]; ok {
		copied := *room
		return &copied
	}
	return nil
}

// fakeResidentRepo implements repository.ResidentRepository
type fakeResidentRepo struct {
	store *fakeStore
}

func (r *fakeResidentRepo) Create(resident *models.Resident) error {
	r.store.addResident(resident)
	return nil
}

func (r *fakeResidentRepo) Update(resident *models.Resident) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	copied := *resident
	r.store.residents[resident.ID] = &copied
	return nil
}

func (r *fakeResidentRepo) MarkRejected(resident *models.Resident) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	stored, ok := r.store.residents[resident.ID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	if stored.RegistrationStatus != models.RegistrationPending {
		return repository.ErrStaleResident
	}
	stored.RegistrationStatus = resident.RegistrationStatus
	stored.RejectionReason = resident.RejectionReason
	stored.RejectionDate = resident.RejectionDate
	return nil
}

func (r *fakeResidentRepo) GetByID(id uint) (*models.Resident, error) {
	if resident := r.store.residentByID(id); resident != nil {
		return resident, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeResidentRepo) GetByEmail(email string) (*models.Resident, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, resident := range r.store.residents {
		if resident.Email == email {
			copied := *resident
			return &copied, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeResidentRepo) PGIDExists(pgID string) (bool, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, resident := range r.store.residents {
		if resident.PGID != nil && *resident.PGID == pgID {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeResidentRepo) GetPendingResidents() ([]*models.Resident, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var pending []*models.Resident
	for _, resident := range r.store.residents {
		if resident.RegistrationStatus == models.RegistrationPending && !resident.IsDeleted {
			copied := *resident
			pending = append(pending, &copied)
		}
	}
	return pending, nil
}

func (r *fakeResidentRepo) GetResidentsWithNoticeExpiring(from, to time.Time) ([]*models.Resident, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var matched []*models.Resident
	for _, resident := range r.store.residents {
		if resident.IsActive && resident.IsOnNoticePeriod && resident.LastStayingDate != nil &&
			!resident.LastStayingDate.Before(from) && !resident.LastStayingDate.After(to) {
			copied := *resident
			matched = append(matched, &copied)
		}
	}
	return matched, nil
}

func (r *fakeResidentRepo) GetResidentsWithNoticeExpired(asOf time.Time) ([]*models.Resident, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var matched []*models.Resident
	for _, resident := range r.store.residents {
		if resident.IsActive && resident.IsOnNoticePeriod && resident.LastStayingDate != nil &&
			resident.LastStayingDate.Before(asOf) {
			copied := *resident
			matched = append(matched, &copied)
		}
	}
	return matched, nil
}

// fakeRoomRepo implements repository.RoomRepository
type fakeRoomRepo struct {
	store *fakeStore
}

func (r *fakeRoomRepo) CreateBulk(rooms []*models.Room) error {
	for _, room := range rooms {
		r.store.addRoom(room)
	}
	return nil
}

func (r *fakeRoomRepo) GetByID(id uint) (*models.Room, error) {
	if room := r.store.roomByID(id); room != nil {
		return room, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeRoomRepo) GetByNumber(building, roomNumber string) (*models.Room, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, room := range r.store.rooms {
		if room.RoomNumber == roomNumber && (building == "" || room.Building == building) {
			copied := *room
			return &copied, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeRoomRepo) GetAll() ([]*models.Room, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var rooms []*models.Room
	for _, room := range r.store.rooms {
		copied := *room
		rooms = append(rooms, &copied)
	}
	return rooms, nil
}

func (r *fakeRoomRepo) SetMaintenance(id uint, maintenance bool) (*models.Room, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	room, ok := r.store.rooms[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	if maintenance {
		room.Status = models.RoomStatusMaintenance
	} else {
		room.Status = models.RoomStatusAvailable
		room.Status = room.DeriveStatus()
	}
	copied := *room
	return &copied, nil
}

// fakeAllocRepo implements repository.AllocationRepository with the same
// claim-or-fail semantics as the conditional UPDATEs in Postgres: the
// resident guard is re-checked against committed state under the lock, then
// the room counter is claimed.
type fakeAllocRepo struct {
	store *fakeStore
}

func guardHolds(stored *models.Resident, guard repository.ResidentGuard) bool {
	if guard.RegistrationStatus != "" && stored.RegistrationStatus != guard.RegistrationStatus {
		return false
	}
	if guard.IsActive != nil && stored.IsActive != *guard.IsActive {
		return false
	}
	return true
}

func (r *fakeAllocRepo) AssignRoomSlot(resident *models.Resident, roomID *uint, guard repository.ResidentGuard) (*models.Room, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	stored, ok := r.store.residents[resident.ID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	if !guardHolds(stored, guard) {
		return nil, repository.ErrStaleResident
	}

	var updated *models.Room
	if roomID != nil {
		room, ok := r.store.rooms[*roomID]
		if !ok {
			return nil, gorm.ErrRecordNotFound
		}
		if room.Status == models.RoomStatusMaintenance || room.CurrentOccupancy >= room.Capacity {
			return nil, repository.ErrNoVacancy
		}
		room.CurrentOccupancy++
		room.Status = room.DeriveStatus()
		copied := *room
		updated = &copied
	}

	copied := *resident
	r.store.residents[resident.ID] = &copied
	return updated, nil
}

func (r *fakeAllocRepo) ReleaseRoomSlot(resident *models.Resident, roomID *uint, guard repository.ResidentGuard) (*models.Room, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	stored, ok := r.store.residents[resident.ID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	if !guardHolds(stored, guard) {
		return nil, repository.ErrStaleResident
	}

	var updated *models.Room
	if roomID != nil {
		room, ok := r.store.rooms[*roomID]
		if ok {
			if room.CurrentOccupancy > 0 {
				room.CurrentOccupancy--
			}
			room.Status = room.DeriveStatus()
			copied := *room
			updated = &copied
		}
	}

	copied := *resident
	r.store.residents[resident.ID] = &copied
	return updated, nil
}

// sentNotification records one dispatched notification
type sentNotification struct {
	Recipient string
	Kind      TemplateKind
	Data      map[string]string
}

// fakeNotifier implements NotificationService
type fakeNotifier struct {
	mu      sync.Mutex
	sent    []sentNotification
	failErr error
}

func (n *fakeNotifier) Send(recipientEmail string, kind TemplateKind, data map[string]string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.failErr != nil {
		return n.failErr
	}
	n.sent = append(n.sent, sentNotification{Recipient: recipientEmail, Kind: kind, Data: data})
	return nil
}

func (n *fakeNotifier) sentCount() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.sent)
}

func (n *fakeNotifier) lastSent() *sentNotification {
	n.mu.Lock()
	defer n.mu.Unlock()
	if len(n.sent) == 0 {
		return nil
	}
	last := n.sent[len(n.sent)-1]
	return &last
}

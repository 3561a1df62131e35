package services

import (
	"context"
	"sort"
	"sync"
	"time"

	"lifelink-registry/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// In-memory repository fakes backing the service tests. They mirror the
// gorm implementations' contracts, in particular returning
// gorm.ErrRecordNotFound / gorm.ErrDuplicatedKey where the real ones do.

type memRegistrantRepo struct {
	mu     sync.Mutex
	nextID uint
	rows   map[uint]*models.Registrant
}

func newMemRegistrantRepo() *memRegistrantRepo {
	return &memRegistrantRepo{nextID: 1, rows: make(map[uint]*models.Registrant)}
}

func (r *memRegistrantRepo) Create(_ context.Context, registrant *models.Registrant) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, row := range r.rows {
		if row.Email == registrant.Email {
			return gorm.ErrDuplicatedKey
		}
	}

	registrant.ID = r.nextID
	r.nextID++
	if registrant.CreatedAt.IsZero() {
		registrant.CreatedAt = time.Now()
	}

	clone := *registrant
	r.rows[registrant.ID] = &clone
	return nil
}

func (r *memRegistrantRepo) GetByID(_ context.Context, id uint) (*models.Registrant, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	row, ok := r.rows[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	clone := *row
	return &clone, nil
}

func (r *memRegistrantRepo) GetByEmail(_ context.Context, email string) (*models.Registrant, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, row := range r.rows {
		if row.Email == email {
			clone := *row
			return &clone, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *memRegistrantRepo) List(_ context.Context, offset, limit int) ([]*models.Registrant, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	all := make([]*models.Registrant, 0, len(r.rows))
	for _, row := range r.rows {
		clone := *row
		all = append(all, &clone)
	}
	// Newest first, like the SQL listing
	sort.Slice(all, func(i, j int) bool { return all[i].ID > all[j].ID })

	return page(all, offset, limit), int64(len(all)), nil
}

func (r *memRegistrantRepo) ExistsByEmail(_ context.Context, email string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, row := range r.rows {
		if row.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (r *memRegistrantRepo) DeleteCascade(_ context.Context, id uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.rows[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(r.rows, id)
	return nil
}

type memRefreshTokenRepo struct {
	mu     sync.Mutex
	nextID uint
	rows   map[uint]*models.RefreshToken
}

func newMemRefreshTokenRepo() *memRefreshTokenRepo {
	return &memRefreshTokenRepo{nextID: 1, rows: make(map[uint]*models.RefreshToken)}
}

func (r *memRefreshTokenRepo) Create(_ context.Context, token *models.RefreshToken) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	token.ID = r.nextID
	r.nextID++
	clone := *token
	r.rows[token.ID] = &clone
	return nil
}

// GetByTokenHash hides revoked tokens the way the SQL implementation's
// revoked_at IS NULL filter does.
func (r *memRefreshTokenRepo) GetByTokenHash(_ context.Context, tokenHash string) (*models.RefreshToken, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, row := range r.rows {
		if row.TokenHash == tokenHash && row.RevokedAt == nil {
			clone := *row
			return &clone, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *memRefreshTokenRepo) Revoke(_ context.Context, id uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if row, ok := r.rows[id]; ok && row.RevokedAt == nil {
		now := time.Now()
		row.RevokedAt = &now
	}
	return nil
}

func (r *memRefreshTokenRepo) RevokeByTokenHash(_ context.Context, tokenHash string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now()
	for _, row := range r.rows {
		if row.TokenHash == tokenHash && row.RevokedAt == nil {
			row.RevokedAt = &now
		}
	}
	return nil
}

func (r *memRefreshTokenRepo) RevokeAllByRegistrantID(_ context.Context, registrantID uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now()
	for _, row := range r.rows {
		if row.RegistrantID == registrantID && row.RevokedAt == nil {
			row.RevokedAt = &now
		}
	}
	return nil
}

func (r *memRefreshTokenRepo) DeleteExpired(_ context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var deleted int64
	for id, row := range r.rows {
		if time.Now().After(row.ExpiresAt) {
			delete(r.rows, id)
			deleted++
		}
	}
	return deleted, nil
}

func (r *memRefreshTokenRepo) activeCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	n := 0
	for _, row := range r.rows {
		if row.RevokedAt == nil {
			n++
		}
	}
	return n
}

type memRequestRepo struct {
	mu     sync.Mutex
	nextID uint
	rows   map[uint]*models.OrganRequest
}

func newMemRequestRepo() *memRequestRepo {
	return &memRequestRepo{nextID: 1, rows: make(map[uint]*models.OrganRequest)}
}

func (r *memRequestRepo) Create(_ context.Context, request *models.OrganRequest) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	request.ID = r.nextID
	r.nextID++
	if request.CreatedAt.IsZero() {
		request.CreatedAt = time.Now().Add(time.Duration(request.ID) * time.Millisecond)
	}

	clone := *request
	r.rows[request.ID] = &clone
	return nil
}

func (r *memRequestRepo) GetByID(_ context.Context, id uint) (*models.OrganRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	row, ok := r.rows[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	clone := *row
	return &clone, nil
}

func (r *memRequestRepo) ListByBloodGroup(_ context.Context, bloodGroup string, offset, limit int) ([]*models.OrganRequest, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	matched := make([]*models.OrganRequest, 0)
	for _, row := range r.rows {
		if row.BloodGroup == bloodGroup {
			clone := *row
			matched = append(matched, &clone)
		}
	}
	sortByCreation(matched)

	return page(matched, offset, limit), int64(len(matched)), nil
}

func (r *memRequestRepo) ListByRegistrantID(_ context.Context, registrantID uint) ([]*models.OrganRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	matched := make([]*models.OrganRequest, 0)
	for _, row := range r.rows {
		if row.RegistrantID == registrantID {
			clone := *row
			matched = append(matched, &clone)
		}
	}
	sortByCreation(matched)
	return matched, nil
}

func (r *memRequestRepo) ListAll(_ context.Context, offset, limit int) ([]*models.OrganRequest, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	all := make([]*models.OrganRequest, 0, len(r.rows))
	for _, row := range r.rows {
		clone := *row
		all = append(all, &clone)
	}
	sortByCreation(all)

	return page(all, offset, limit), int64(len(all)), nil
}

// deleteIfExists mimics the delete-returning-rows-affected step of the
// fulfillment transaction.
func (r *memRequestRepo) deleteIfExists(id uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.rows[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(r.rows, id)
	return nil
}

// memDonationStore implements both FulfillmentStore and DonationRepository
// so fulfillment writes are visible to the history reads.
type memDonationStore struct {
	mu           sync.Mutex
	requests     *memRequestRepo
	nextDonorID  uint
	nextRecordID uint
	donors       []*models.DonorProfile
	records      []*models.DonationRecord
}

func newMemDonationStore(requests *memRequestRepo) *memDonationStore {
	return &memDonationStore{requests: requests, nextDonorID: 1, nextRecordID: 1}
}

func (s *memDonationStore) GetRequestByID(ctx context.Context, requestID uint) (*models.OrganRequest, error) {
	return s.requests.GetByID(ctx, requestID)
}

// Fulfill serializes competing donations on one mutex. The loser observes
// the request already deleted and persists nothing, matching the row-lock
// transaction in the SQL store.
func (s *memDonationStore) Fulfill(_ context.Context, requestID uint, donor *models.DonorProfile, record *models.DonationRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.requests.deleteIfExists(requestID); err != nil {
		return err
	}

	donor.ID = s.nextDonorID
	s.nextDonorID++
	donorClone := *donor
	s.donors = append(s.donors, &donorClone)

	record.ID = s.nextRecordID
	s.nextRecordID++
	recordClone := *record
	s.records = append(s.records, &recordClone)

	return nil
}

func (s *memDonationStore) ListRecordsByRegistrantID(_ context.Context, registrantID uint) ([]*models.DonationRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	matched := make([]*models.DonationRecord, 0)
	for _, row := range s.records {
		if row.RegistrantID == registrantID {
			clone := *row
			matched = append(matched, &clone)
		}
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].ID > matched[j].ID })
	return matched, nil
}

func (s *memDonationStore) ListAllRecords(_ context.Context, offset, limit int) ([]*models.DonationRecord, int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	all := make([]*models.DonationRecord, 0, len(s.records))
	for _, row := range s.records {
		clone := *row
		all = append(all, &clone)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID > all[j].ID })

	return page(all, offset, limit), int64(len(all)), nil
}

func (s *memDonationStore) counts() (donors, records int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.donors), len(s.records)
}

func sortByCreation(requests []*models.OrganRequest) {
	sort.Slice(requests, func(i, j int) bool {
		if requests[i].CreatedAt.Equal(requests[j].CreatedAt) {
			return requests[i].ID < requests[j].ID
		}
		return requests[i].CreatedAt.Before(requests[j].CreatedAt)
	})
}

func page[T any](rows []*T, offset, limit int) []*T {
	if offset >= len(rows) {
		return []*T{}
	}
	end := offset + limit
	if limit <= 0 || end > len(rows) {
		end = len(rows)
	}
	return rows[offset:end]
}

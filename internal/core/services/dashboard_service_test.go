package services

import (
	"context"
	"testing"

	"lifelink-registry/internal/adapters/persistence/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// The aggregate queries (GetTotals, ListDonors) run raw SQL and are
// exercised against a real database; these tests cover the repo-backed
// listings and the deletion rules.

func newTestDashboardService(t *testing.T) (*DashboardService, *memRegistrantRepo, *memRequestRepo, *memDonationStore) {
	t.Helper()
	registrantRepo := newMemRegistrantRepo()
	requestRepo := newMemRequestRepo()
	store := newMemDonationStore(requestRepo)
	return NewDashboardService(nil, registrantRepo, requestRepo, store), registrantRepo, requestRepo, store
}

func TestListRegistrants(t *testing.T) {
	svc, registrantRepo, _, _ := newTestDashboardService(t)

	for _, email := range []string{"a@example.com", "b@example.com", "c@example.com"} {
		require.NoError(t, registrantRepo.Create(context.Background(), &models.Registrant{
			FirstName: "Test", LastName: "Registrant", Email: email, Password: "hash", BloodGroup: "A+", Role: models.RoleUser,
		}))
	}

	responses, total, err := svc.ListRegistrants(context.Background(), 0, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	require.Len(t, responses, 2)
	assert.Equal(t, "c@example.com", responses[0].Email)
}

func TestListOpenRequests(t *testing.T) {
	svc, _, requestRepo, _ := newTestDashboardService(t)

	require.NoError(t, requestRepo.Create(context.Background(), &models.OrganRequest{
		RegistrantID: 1, OrganType: "kidney", BloodGroup: "O+", Quantity: 1,
		Registrant: &models.Registrant{FirstName: "Ada", LastName: "Okafor"},
	}))

	responses, total, err := svc.ListOpenRequests(context.Background(), 0, 20)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, responses, 1)
	assert.Equal(t, "Ada Okafor", responses[0].Requester)
}

func TestDeleteRegistrant(t *testing.T) {
	svc, registrantRepo, _, _ := newTestDashboardService(t)

	admin := &models.Registrant{FirstName: "Root", LastName: "Admin", Email: "admin@example.com", Password: "hash", BloodGroup: "O+", Role: models.RoleAdmin}
	require.NoError(t, registrantRepo.Create(context.Background(), admin))

	victim := &models.Registrant{FirstName: "Gone", LastName: "Soon", Email: "gone@example.com", Password: "hash", BloodGroup: "A-", Role: models.RoleUser}
	require.NoError(t, registrantRepo.Create(context.Background(), victim))

	require.NoError(t, svc.DeleteRegistrant(context.Background(), victim.ID, admin.ID))

	_, err := registrantRepo.GetByID(context.Background(), victim.ID)
	assert.Error(t, err)
}

func TestDeleteRegistrantSelf(t *testing.T) {
	svc, registrantRepo, _, _ := newTestDashboardService(t)

	admin := &models.Registrant{FirstName: "Root", LastName: "Admin", Email: "admin@example.com", Password: "hash", BloodGroup: "O+", Role: models.RoleAdmin}
	require.NoError(t, registrantRepo.Create(context.Background(), admin))

	err := svc.DeleteRegistrant(context.Background(), admin.ID, admin.ID)
	assert.ErrorIs(t, err, ErrCannotDeleteSelf)

	_, err = registrantRepo.GetByID(context.Background(), admin.ID)
	assert.NoError(t, err)
}

func TestDeleteRegistrantNotFound(t *testing.T) {
	svc, _, _, _ := newTestDashboardService(t)

	err := svc.DeleteRegistrant(context.Background(), 999, 1)
	assert.ErrorIs(t, err, ErrRegistrantNotFound)
}

package services

import (
	"context"
	"testing"

	"lifelink-registry/internal/adapters/persistence/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateRequest(t *testing.T) {
	repo := newMemRequestRepo()
	svc := NewRequestService(repo)

	request, err := svc.Create(context.Background(), 7, &CreateRequestInput{
		OrganType:   "kidney",
		BloodGroup:  "b+",
		Quantity:    2,
		RequestType: "urgent",
		Phone:       "0899999999",
	})
	require.NoError(t, err)

	assert.NotZero(t, request.ID)
	assert.Equal(t, uint(7), request.RegistrantID)
	assert.Equal(t, "B+", request.BloodGroup)
	assert.Equal(t, 2, request.Quantity)

	stored, err := repo.GetByID(context.Background(), request.ID)
	require.NoError(t, err)
	assert.Equal(t, "kidney", stored.OrganType)
}

func TestCreateRequestValidation(t *testing.T) {
	svc := NewRequestService(newMemRequestRepo())

	tests := []struct {
		name  string
		input *CreateRequestInput
		want  error
	}{
		{"missing organ type", &CreateRequestInput{BloodGroup: "A+", Quantity: 1}, ErrMissingOrganType},
		{"missing blood group", &CreateRequestInput{OrganType: "liver", Quantity: 1}, ErrMissingBloodGroup},
		{"zero quantity", &CreateRequestInput{OrganType: "liver", BloodGroup: "A+", Quantity: 0}, ErrInvalidQuantity},
		{"negative quantity", &CreateRequestInput{OrganType: "liver", BloodGroup: "A+", Quantity: -3}, ErrInvalidQuantity},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Create(context.Background(), 1, tt.input)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestListMatching(t *testing.T) {
	repo := newMemRequestRepo()
	svc := NewRequestService(repo)

	seed := []*models.OrganRequest{
		{RegistrantID: 1, OrganType: "kidney", BloodGroup: "A+", Quantity: 1},
		{RegistrantID: 2, OrganType: "blood", BloodGroup: "O-", Quantity: 2},
		{RegistrantID: 3, OrganType: "liver", BloodGroup: "A+", Quantity: 1},
	}
	for _, request := range seed {
		require.NoError(t, repo.Create(context.Background(), request))
	}

	// Matching is caller's blood group, case-insensitive, oldest first
	out, err := svc.ListMatching(context.Background(), "a+", 1, 20)
	require.NoError(t, err)

	assert.Equal(t, int64(2), out.Total)
	require.Len(t, out.Requests, 2)
	assert.Equal(t, "kidney", out.Requests[0].OrganType)
	assert.Equal(t, "liver", out.Requests[1].OrganType)
	for _, request := range out.Requests {
		assert.Equal(t, "A+", request.BloodGroup)
	}
}

func TestListMatchingRequiresBloodGroup(t *testing.T) {
	svc := NewRequestService(newMemRequestRepo())

	_, err := svc.ListMatching(context.Background(), "  ", 1, 20)
	assert.ErrorIs(t, err, ErrMissingBloodGroup)
}

func TestListMatchingPagination(t *testing.T) {
	repo := newMemRequestRepo()
	svc := NewRequestService(repo)

	for i := 0; i < 5; i++ {
		require.NoError(t, repo.Create(context.Background(), &models.OrganRequest{
			RegistrantID: 1, OrganType: "blood", BloodGroup: "AB+", Quantity: 1,
		}))
	}

	out, err := svc.ListMatching(context.Background(), "AB+", 2, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(5), out.Total)
	assert.Len(t, out.Requests, 2)
	assert.Equal(t, 2, out.Page)

	// Out-of-range inputs fall back to sane defaults
	out, err = svc.ListMatching(context.Background(), "AB+", -1, 0)
	require.NoError(t, err)
	assert.Equal(t, 1, out.Page)
	assert.Len(t, out.Requests, 5)
}

func TestListMine(t *testing.T) {
	repo := newMemRequestRepo()
	svc := NewRequestService(repo)

	require.NoError(t, repo.Create(context.Background(), &models.OrganRequest{RegistrantID: 1, OrganType: "kidney", BloodGroup: "A+", Quantity: 1}))
	require.NoError(t, repo.Create(context.Background(), &models.OrganRequest{RegistrantID: 2, OrganType: "blood", BloodGroup: "A+", Quantity: 1}))

	mine, err := svc.ListMine(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, "kidney", mine[0].OrganType)
}

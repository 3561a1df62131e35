package services

import (
	"context"
	"errors"

	"lifelink-registry/internal/adapters/persistence/models"
	"lifelink-registry/internal/adapters/persistence/repositories"

	"gorm.io/gorm"
)

// Dashboard service errors
var (
	ErrCannotDeleteSelf = errors.New("cannot delete your own account")
)

// DashboardService produces the read-only admin aggregates and owns the
// single admin mutation (registrant deletion).
type DashboardService struct {
	db             *gorm.DB
	registrantRepo repositories.RegistrantRepository
	requestRepo    repositories.OrganRequestRepository
	donationRepo   repositories.DonationRepository
}

// NewDashboardService creates a new dashboard service
func NewDashboardService(
	db *gorm.DB,
	registrantRepo repositories.RegistrantRepository,
	requestRepo repositories.OrganRequestRepository,
	donationRepo repositories.DonationRepository,
) *DashboardService {
	return &DashboardService{
		db:             db,
		registrantRepo: registrantRepo,
		requestRepo:    requestRepo,
		donationRepo:   donationRepo,
	}
}

// DashboardTotals represents admin dashboard counters
type DashboardTotals struct {
	TotalRegistrants int64 `json:"total_registrants"`
	OpenRequests     int64 `json:"open_requests"`
	TotalDonations   int64 `json:"total_donations"`
	DonatedQuantity  int64 `json:"donated_quantity"`
}

// GetTotals returns the admin dashboard counters
func (s *DashboardService) GetTotals(ctx context.Context) (*DashboardTotals, error) {
	totals := &DashboardTotals{}

	if err := s.db.WithContext(ctx).Model(&models.Registrant{}).Count(&totals.TotalRegistrants).Error; err != nil {
		return nil, err
	}
	if err := s.db.WithContext(ctx).Model(&models.OrganRequest{}).Count(&totals.OpenRequests).Error; err != nil {
		return nil, err
	}
	if err := s.db.WithContext(ctx).Model(&models.DonationRecord{}).Count(&totals.TotalDonations).Error; err != nil {
		return nil, err
	}
	if err := s.db.WithContext(ctx).Model(&models.DonationRecord{}).
		Select("COALESCE(SUM(quantity), 0)").
		Scan(&totals.DonatedQuantity).Error; err != nil {
		return nil, err
	}

	return totals, nil
}

// ListRegistrants lists all registrants with pagination
func (s *DashboardService) ListRegistrants(ctx context.Context, offset, limit int) ([]*models.RegistrantResponse, int64, error) {
	registrants, total, err := s.registrantRepo.List(ctx, offset, limit)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]*models.RegistrantResponse, 0, len(registrants))
	for _, registrant := range registrants {
		responses = append(responses, registrant.ToResponse())
	}

	return responses, total, nil
}

// ListOpenRequests lists all open requests joined with requester identity
func (s *DashboardService) ListOpenRequests(ctx context.Context, offset, limit int) ([]*models.OrganRequestResponse, int64, error) {
	requests, total, err := s.requestRepo.ListAll(ctx, offset, limit)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]*models.OrganRequestResponse, 0, len(requests))
	for _, request := range requests {
		responses = append(responses, request.ToResponse())
	}

	return responses, total, nil
}

// DonorSummary represents a registrant with their donor-profile count
type DonorSummary struct {
	RegistrantID   uint   `json:"registrant_id"`
	FirstName      string `json:"first_name"`
	LastName       string `json:"last_name"`
	Email          string `json:"email"`
	Phone          string `json:"phone"`
	TotalDonations int64  `json:"total_donations"`
}

// ListDonors lists registrants who have donated, with donor-profile counts
func (s *DashboardService) ListDonors(ctx context.Context) ([]*DonorSummary, error) {
	var donors []*DonorSummary

	err := s.db.WithContext(ctx).
		Table("registrants").
		Select("registrants.id AS registrant_id, registrants.first_name, registrants.last_name, registrants.email, registrants.phone, COUNT(donor_profiles.id) AS total_donations").
		Joins("JOIN donor_profiles ON donor_profiles.registrant_id = registrants.id").
		Group("registrants.id").
		Order("total_donations DESC").
		Scan(&donors).Error
	if err != nil {
		return nil, err
	}

	return donors, nil
}

// ListDonationRecords lists all donation records joined with donor identity
func (s *DashboardService) ListDonationRecords(ctx context.Context, offset, limit int) ([]*models.DonationRecordResponse, int64, error) {
	records, total, err := s.donationRepo.ListAllRecords(ctx, offset, limit)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]*models.DonationRecordResponse, 0, len(records))
	for _, record := range records {
		responses = append(responses, record.ToResponse())
	}

	return responses, total, nil
}

// DeleteRegistrant removes a registrant and all dependent rows. Admins
// cannot delete themselves.
func (s *DashboardService) DeleteRegistrant(ctx context.Context, id, actingAdminID uint) error {
	if id == actingAdminID {
		return ErrCannotDeleteSelf
	}

	if err := s.registrantRepo.DeleteCascade(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrRegistrantNotFound
		}
		return err
	}

	return nil
}

package repositories

import (
	"context"

	"lifelink-registry/internal/adapters/persistence/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// donationRepository implements DonationRepository interface
type donationRepository struct {
	db *gorm.DB
}

// NewDonationRepository creates a new donation repository
func NewDonationRepository(db *gorm.DB) DonationRepository {
	return &donationRepository{db: db}
}

// ListRecordsByRegistrantID lists a registrant's donation history, newest first
func (r *donationRepository) ListRecordsByRegistrantID(ctx context.Context, registrantID uint) ([]*models.DonationRecord, error) {
	var records []*models.DonationRecord
	err := r.db.WithContext(ctx).
		Where("registrant_id = ?", registrantID).
		Order("donated_at DESC").
		Find(&records).Error
	return records, err
}

// ListAllRecords lists all donation records with the donor preloaded (admin view)
func (r *donationRepository) ListAllRecords(ctx context.Context, offset, limit int) ([]*models.DonationRecord, int64, error) {
	var records []*models.DonationRecord
	var total int64

	if err := r.db.WithContext(ctx).Model(&models.DonationRecord{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := r.db.WithContext(ctx).
		Preload("Registrant").
		Order("donated_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&records).Error
	if err != nil {
		return nil, 0, err
	}

	return records, total, nil
}

// fulfillmentStore implements FulfillmentStore interface
type fulfillmentStore struct {
	db *gorm.DB
}

// NewFulfillmentStore creates a new fulfillment store
func NewFulfillmentStore(db *gorm.DB) FulfillmentStore {
	return &fulfillmentStore{db: db}
}

// GetRequestByID gets an organ request by ID
func (s *fulfillmentStore) GetRequestByID(ctx context.Context, requestID uint) (*models.OrganRequest, error) {
	var request models.OrganRequest
	err := s.db.WithContext(ctx).First(&request, requestID).Error
	if err != nil {
		return nil, err
	}
	return &request, nil
}

// Fulfill runs the donation-fulfillment transaction: insert the donor
// profile, insert the donation record, delete the request. The request row
// is locked for the duration of the transaction so two donors racing on the
// same request serialize; the loser finds the row gone and rolls back with
// gorm.ErrRecordNotFound, leaving no donor or record rows behind.
func (s *fulfillmentStore) Fulfill(ctx context.Context, requestID uint, donor *models.DonorProfile, record *models.DonationRecord) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var request models.OrganRequest
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&request, requestID).Error
		if err != nil {
			return err
		}

		if err := tx.Create(donor).Error; err != nil {
			return err
		}
		if err := tx.Create(record).Error; err != nil {
			return err
		}

		res := tx.Delete(&models.OrganRequest{}, requestID)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

package repositories

import (
	"context"

	"lifelink-registry/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// registrantRepository implements RegistrantRepository interface
type registrantRepository struct {
	db *gorm.DB
}

// NewRegistrantRepository creates a new registrant repository
func NewRegistrantRepository(db *gorm.DB) RegistrantRepository {
	return &registrantRepository{db: db}
}

// Create creates a new registrant
func (r *registrantRepository) Create(ctx context.Context, registrant *models.Registrant) error {
	return r.db.WithContext(ctx).Create(registrant).Error
}

// GetByID gets a registrant by ID
func (r *registrantRepository) GetByID(ctx context.Context, id uint) (*models.Registrant, error) {
	var registrant models.Registrant
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&registrant).Error
	if err != nil {
		return nil, err
	}
	return &registrant, nil
}

// GetByEmail gets a registrant by email
func (r *registrantRepository) GetByEmail(ctx context.Context, email string) (*models.Registrant, error) {
	var registrant models.Registrant
	err := r.db.WithContext(ctx).Where("email = ?", email).First(&registrant).Error
	if err != nil {
		return nil, err
	}
	return &registrant, nil
}

// List lists registrants with pagination
func (r *registrantRepository) List(ctx context.Context, offset, limit int) ([]*models.Registrant, int64, error) {
	var registrants []*models.Registrant
	var total int64

	if err := r.db.WithContext(ctx).Model(&models.Registrant{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&registrants).Error
	if err != nil {
		return nil, 0, err
	}

	return registrants, total, nil
}

// ExistsByEmail checks if email exists
func (r *registrantRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Registrant{}).Where("email = ?", email).Count(&count).Error
	return count > 0, err
}

// DeleteCascade removes a registrant together with all dependent rows.
// The original system orphaned requests/donor rows on delete; here the
// whole subtree goes in one transaction.
func (r *registrantRepository) DeleteCascade(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("registrant_id = ?", id).Delete(&models.OrganRequest{}).Error; err != nil {
			return err
		}
		if err := tx.Where("registrant_id = ?", id).Delete(&models.DonorProfile{}).Error; err != nil {
			return err
		}
		if err := tx.Where("registrant_id = ?", id).Delete(&models.DonationRecord{}).Error; err != nil {
			return err
		}
		if err := tx.Where("registrant_id = ?", id).Delete(&models.RefreshToken{}).Error; err != nil {
			return err
		}

		res := tx.Delete(&models.Registrant{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

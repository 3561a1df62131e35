package repositories

import (
	"context"

	"lifelink-registry/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// organRequestRepository implements OrganRequestRepository interface
type organRequestRepository struct {
	db *gorm.DB
}

// NewOrganRequestRepository creates a new organ request repository
func NewOrganRequestRepository(db *gorm.DB) OrganRequestRepository {
	return &organRequestRepository{db: db}
}

// Create creates a new organ request
func (r *organRequestRepository) Create(ctx context.Context, request *models.OrganRequest) error {
	return r.db.WithContext(ctx).Create(request).Error
}

// GetByID gets an organ request by ID with the requester preloaded
func (r *organRequestRepository) GetByID(ctx context.Context, id uint) (*models.OrganRequest, error) {
	var request models.OrganRequest
	err := r.db.WithContext(ctx).
		Preload("Registrant").
		First(&request, id).Error
	if err != nil {
		return nil, err
	}
	return &request, nil
}

// ListByBloodGroup lists open requests needing the given blood group.
// Oldest first so long-waiting requests get matched before newer ones.
func (r *organRequestRepository) ListByBloodGroup(ctx context.Context, bloodGroup string, offset, limit int) ([]*models.OrganRequest, int64, error) {
	var requests []*models.OrganRequest
	var total int64

	if err := r.db.WithContext(ctx).
		Model(&models.OrganRequest{}).
		Where("blood_group = ?", bloodGroup).
		Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := r.db.WithContext(ctx).
		Preload("Registrant").
		Where("blood_group = ?", bloodGroup).
		Order("created_at ASC").
		Offset(offset).
		Limit(limit).
		Find(&requests).Error
	if err != nil {
		return nil, 0, err
	}

	return requests, total, nil
}

// ListByRegistrantID lists a registrant's own open requests
func (r *organRequestRepository) ListByRegistrantID(ctx context.Context, registrantID uint) ([]*models.OrganRequest, error) {
	var requests []*models.OrganRequest
	err := r.db.WithContext(ctx).
		Where("registrant_id = ?", registrantID).
		Order("created_at DESC").
		Find(&requests).Error
	return requests, err
}

// ListAll lists all open requests with the requester preloaded (admin view)
func (r *organRequestRepository) ListAll(ctx context.Context, offset, limit int) ([]*models.OrganRequest, int64, error) {
	var requests []*models.OrganRequest
	var total int64

	if err := r.db.WithContext(ctx).Model(&models.OrganRequest{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := r.db.WithContext(ctx).
		Preload("Registrant").
		Order("created_at ASC").
		Offset(offset).
		Limit(limit).
		Find(&requests).Error
	if err != nil {
		return nil, 0, err
	}

	return requests, total, nil
}

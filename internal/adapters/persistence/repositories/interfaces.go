package repositories

import (
	"context"

	"lifelink-registry/internal/adapters/persistence/models"
)

// RegistrantRepository defines registrant repository interface
type RegistrantRepository interface {
	Create(ctx context.Context, registrant *models.Registrant) error
	GetByID(ctx context.Context, id uint) (*models.Registrant, error)
	GetByEmail(ctx context.Context, email string) (*models.Registrant, error)
	List(ctx context.Context, offset, limit int) ([]*models.Registrant, int64, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	DeleteCascade(ctx context.Context, id uint) error
}

// RefreshTokenRepository defines refresh token repository interface
type RefreshTokenRepository interface {
	Create(ctx context.Context, token *models.RefreshToken) error
	GetByTokenHash(ctx context.Context, tokenHash string) (*models.RefreshToken, error)
	Revoke(ctx context.Context, id uint) error
	RevokeByTokenHash(ctx context.Context, tokenHash string) error
	RevokeAllByRegistrantID(ctx context.Context, registrantID uint) error
	DeleteExpired(ctx context.Context) (int64, error)
}

// OrganRequestRepository defines organ request repository interface
type OrganRequestRepository interface {
	Create(ctx context.Context, request *models.OrganRequest) error
	GetByID(ctx context.Context, id uint) (*models.OrganRequest, error)
	ListByBloodGroup(ctx context.Context, bloodGroup string, offset, limit int) ([]*models.OrganRequest, int64, error)
	ListByRegistrantID(ctx context.Context, registrantID uint) ([]*models.OrganRequest, error)
	ListAll(ctx context.Context, offset, limit int) ([]*models.OrganRequest, int64, error)
}

// DonationRepository defines read access to donor profiles and donation records
type DonationRepository interface {
	ListRecordsByRegistrantID(ctx context.Context, registrantID uint) ([]*models.DonationRecord, error)
	ListAllRecords(ctx context.Context, offset, limit int) ([]*models.DonationRecord, int64, error)
}

// FulfillmentStore executes the donation-fulfillment transaction.
// Fulfill must insert the donor profile and donation record and delete the
// request as one atomic unit; when the request row is already gone it must
// return models-level not-found without persisting anything.
type FulfillmentStore interface {
	GetRequestByID(ctx context.Context, requestID uint) (*models.OrganRequest, error)
	Fulfill(ctx context.Context, requestID uint, donor *models.DonorProfile, record *models.DonationRecord) error
}

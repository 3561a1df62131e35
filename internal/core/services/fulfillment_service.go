package services

import (
	"context"
	"errors"
	"log"
	"time"

	"lifelink-registry/internal/adapters/persistence/models"
	"lifelink-registry/internal/adapters/persistence/repositories"

	"gorm.io/gorm"
)

// Fulfillment service errors
var (
	ErrRequestNotFound    = errors.New("organ request not found")
	ErrInvalidMedicalData = errors.New("weight and BMI must not be negative")
)

// FulfillmentService converts a pending request plus a volunteering
// registrant into a donor profile and a donation record, retiring the
// request. All three writes happen in one store transaction.
type FulfillmentService struct {
	store        repositories.FulfillmentStore
	donationRepo repositories.DonationRepository
}

// NewFulfillmentService creates a new fulfillment service
func NewFulfillmentService(
	store repositories.FulfillmentStore,
	donationRepo repositories.DonationRepository,
) *FulfillmentService {
	return &FulfillmentService{
		store:        store,
		donationRepo: donationRepo,
	}
}

// MedicalProfileInput represents the donor's medical attributes recorded
// at the moment of donation
type MedicalProfileInput struct {
	Weight        float64 `json:"weight"`
	BMI           float64 `json:"bmi"`
	OperationType string  `json:"operation_type"`
	OperationDesc string  `json:"operation_desc"`
	DiseaseType   string  `json:"disease_type"`
	DiseaseDesc   string  `json:"disease_desc"`
	AccidentType  string  `json:"accident_type"`
	AccidentDesc  string  `json:"accident_desc"`
}

// FulfillInput represents fulfill input
type FulfillInput struct {
	Quantity int                 `json:"quantity" validate:"required,gt=0"`
	Medical  MedicalProfileInput `json:"medical"`
}

// GetRequest loads a pending request for the donation form. A missing
// request means it was already fulfilled; callers redirect to the listing.
func (s *FulfillmentService) GetRequest(ctx context.Context, requestID uint) (*models.OrganRequest, error) {
	request, err := s.store.GetRequestByID(ctx, requestID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRequestNotFound
		}
		return nil, err
	}
	return request, nil
}

// Fulfill satisfies a pending request with a donation from donorID.
//
// The donation record carries the request's blood group and the quantity
// the donor supplied; the request row is deleted in full on the first
// fulfillment regardless of its requested quantity, matching the legacy
// registry behavior. When two donors race on the same request the store
// serializes them and the loser gets ErrRequestNotFound with nothing
// persisted.
func (s *FulfillmentService) Fulfill(ctx context.Context, requestID, donorID uint, input *FulfillInput) (*models.DonationRecord, error) {
	if input.Quantity <= 0 {
		return nil, ErrInvalidQuantity
	}
	if input.Medical.Weight < 0 || input.Medical.BMI < 0 {
		return nil, ErrInvalidMedicalData
	}

	request, err := s.store.GetRequestByID(ctx, requestID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRequestNotFound
		}
		return nil, err
	}

	donor := &models.DonorProfile{
		RegistrantID:  donorID,
		Weight:        input.Medical.Weight,
		BMI:           input.Medical.BMI,
		OperationType: input.Medical.OperationType,
		OperationDesc: input.Medical.OperationDesc,
		DiseaseType:   input.Medical.DiseaseType,
		DiseaseDesc:   input.Medical.DiseaseDesc,
		AccidentType:  input.Medical.AccidentType,
		AccidentDesc:  input.Medical.AccidentDesc,
	}

	record := &models.DonationRecord{
		RegistrantID: donorID,
		BloodGroup:   request.BloodGroup,
		Quantity:     input.Quantity,
		DonatedAt:    time.Now(),
	}

	if err := s.store.Fulfill(ctx, requestID, donor, record); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRequestNotFound
		}
		return nil, err
	}

	log.Printf("✅ Request %d fulfilled by registrant %d (%s x%d)",
		requestID, donorID, record.BloodGroup, record.Quantity)

	return record, nil
}

// History lists the registrant's donation records, newest first
func (s *FulfillmentService) History(ctx context.Context, registrantID uint) ([]*models.DonationRecord, error) {
	return s.donationRepo.ListRecordsByRegistrantID(ctx, registrantID)
}

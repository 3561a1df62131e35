package services

import (
	"context"
	"errors"
	"strings"

	"lifelink-registry/internal/adapters/persistence/models"
	"lifelink-registry/internal/adapters/persistence/repositories"
)

// Request service errors
var (
	ErrInvalidQuantity   = errors.New("quantity must be greater than zero")
	ErrMissingOrganType  = errors.New("organ type is required")
	ErrMissingBloodGroup = errors.New("blood group is required")
)

// RequestService handles organ/blood request business logic
type RequestService struct {
	requestRepo repositories.OrganRequestRepository
}

// NewRequestService creates a new request service
func NewRequestService(requestRepo repositories.OrganRequestRepository) *RequestService {
	return &RequestService{requestRepo: requestRepo}
}

// CreateRequestInput represents create request input
type CreateRequestInput struct {
	OrganType   string `json:"organ_type" validate:"required"`
	BloodGroup  string `json:"blood_group" validate:"required"`
	Quantity    int    `json:"quantity" validate:"required,gt=0"`
	RequestType string `json:"request_type"`
	Phone       string `json:"phone"`
	Address     string `json:"address"`
	ZipCode     string `json:"zip_code"`
}

// Create creates a new organ request for the acting registrant
func (s *RequestService) Create(ctx context.Context, requesterID uint, input *CreateRequestInput) (*models.OrganRequest, error) {
	organType := strings.TrimSpace(input.OrganType)
	if organType == "" {
		return nil, ErrMissingOrganType
	}

	bloodGroup := strings.ToUpper(strings.TrimSpace(input.BloodGroup))
	if bloodGroup == "" {
		return nil, ErrMissingBloodGroup
	}

	if input.Quantity <= 0 {
		return nil, ErrInvalidQuantity
	}

	request := &models.OrganRequest{
		RegistrantID: requesterID,
		OrganType:    organType,
		BloodGroup:   bloodGroup,
		Quantity:     input.Quantity,
		RequestType:  input.RequestType,
		Phone:        input.Phone,
		Address:      input.Address,
		ZipCode:      input.ZipCode,
	}

	if err := s.requestRepo.Create(ctx, request); err != nil {
		return nil, err
	}

	return request, nil
}

// MatchingOutput represents a page of matching requests
type MatchingOutput struct {
	Requests []*models.OrganRequestResponse `json:"requests"`
	Total    int64                          `json:"total"`
	Page     int                            `json:"page"`
	Limit    int                            `json:"limit"`
}

// ListMatching lists open requests whose needed blood group equals the
// caller's, oldest first. Fulfilled requests no longer have a row, so
// they never appear here.
func (s *RequestService) ListMatching(ctx context.Context, bloodGroup string, page, limit int) (*MatchingOutput, error) {
	bloodGroup = strings.ToUpper(strings.TrimSpace(bloodGroup))
	if bloodGroup == "" {
		return nil, ErrMissingBloodGroup
	}

	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	offset := (page - 1) * limit

	requests, total, err := s.requestRepo.ListByBloodGroup(ctx, bloodGroup, offset, limit)
	if err != nil {
		return nil, err
	}

	responses := make([]*models.OrganRequestResponse, 0, len(requests))
	for _, request := range requests {
		responses = append(responses, request.ToResponse())
	}

	return &MatchingOutput{
		Requests: responses,
		Total:    total,
		Page:     page,
		Limit:    limit,
	}, nil
}

// ListMine lists the acting registrant's own open requests
func (s *RequestService) ListMine(ctx context.Context, requesterID uint) ([]*models.OrganRequest, error) {
	return s.requestRepo.ListByRegistrantID(ctx, requesterID)
}

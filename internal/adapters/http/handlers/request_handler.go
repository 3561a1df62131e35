package handlers

import (
	"errors"

	"lifelink-registry/internal/core/services"
	"lifelink-registry/internal/pkg/pagination"
	"lifelink-registry/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// RequestHandler handles organ request endpoints
type RequestHandler struct {
	requestService *services.RequestService
}

// NewRequestHandler creates a new request handler
func NewRequestHandler(requestService *services.RequestService) *RequestHandler {
	return &RequestHandler{requestService: requestService}
}

// Create handles organ request creation
// @Summary Create organ/blood request
// @Tags Requests
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body services.CreateRequestInput true "Request data"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /requests [post]
func (h *RequestHandler) Create(c *fiber.Ctx) error {
	registrantID, ok := c.Locals("registrantID").(uint)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	var input services.CreateRequestInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	request, err := h.requestService.Create(c.Context(), registrantID, &input)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrMissingOrganType):
			return response.BadRequest(c, "Organ type is required")
		case errors.Is(err, services.ErrMissingBloodGroup):
			return response.BadRequest(c, "Blood group is required")
		case errors.Is(err, services.ErrInvalidQuantity):
			return response.BadRequest(c, "Quantity must be greater than zero")
		default:
			return response.InternalServerError(c, "Failed to create request")
		}
	}

	return response.Created(c, "Request created successfully", request)
}

// ListMatching lists open requests matching the caller's blood group
// @Summary List requests the caller can donate to
// @Description Open requests whose needed blood group equals the caller's, oldest first
// @Tags Requests
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /requests/matching [get]
func (h *RequestHandler) ListMatching(c *fiber.Ctx) error {
	bloodGroup, ok := c.Locals("bloodGroup").(string)
	if !ok || bloodGroup == "" {
		return response.Unauthorized(c, "Unauthorized")
	}

	params := pagination.GetParams(c)

	result, err := h.requestService.ListMatching(c.Context(), bloodGroup, params.Page, params.Limit)
	if err != nil {
		return response.InternalServerError(c, "Failed to list matching requests")
	}

	return response.Success(c, "Matching requests retrieved", result)
}

// ListMine lists the caller's own open requests
// @Summary List own requests
// @Tags Requests
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /requests/my [get]
func (h *RequestHandler) ListMine(c *fiber.Ctx) error {
	registrantID, ok := c.Locals("registrantID").(uint)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	requests, err := h.requestService.ListMine(c.Context(), registrantID)
	if err != nil {
		return response.InternalServerError(c, "Failed to list requests")
	}

	return response.Success(c, "Requests retrieved", fiber.Map{
		"requests": requests,
	})
}

package handlers

import (
	"errors"
	"strconv"

	"lifelink-registry/internal/core/services"
	"lifelink-registry/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// DonationHandler handles donation-fulfillment endpoints
type DonationHandler struct {
	fulfillmentService *services.FulfillmentService
}

// NewDonationHandler creates a new donation handler
func NewDonationHandler(fulfillmentService *services.FulfillmentService) *DonationHandler {
	return &DonationHandler{fulfillmentService: fulfillmentService}
}

// GetRequest loads a pending request for the donation form
// @Summary Get a pending request
// @Tags Donations
// @Produce json
// @Security BearerAuth
// @Param request_id path int true "Request ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /donations/requests/{request_id} [get]
func (h *DonationHandler) GetRequest(c *fiber.Ctx) error {
	requestID, err := strconv.ParseUint(c.Params("request_id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid request ID")
	}

	request, err := h.fulfillmentService.GetRequest(c.Context(), uint(requestID))
	if err != nil {
		if errors.Is(err, services.ErrRequestNotFound) {
			return response.NotFound(c, "Request not found or already fulfilled")
		}
		return response.InternalServerError(c, "Failed to load request")
	}

	return response.Success(c, "Request retrieved", request)
}

// Fulfill satisfies a pending request with a donation from the caller
// @Summary Fulfill an organ/blood request
// @Description Records the donor profile and donation and retires the request atomically
// @Tags Donations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request_id path int true "Request ID"
// @Param body body services.FulfillInput true "Donation data"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /donations/fulfill/{request_id} [post]
func (h *DonationHandler) Fulfill(c *fiber.Ctx) error {
	registrantID, ok := c.Locals("registrantID").(uint)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	requestID, err := strconv.ParseUint(c.Params("request_id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid request ID")
	}

	var input services.FulfillInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	record, err := h.fulfillmentService.Fulfill(c.Context(), uint(requestID), registrantID, &input)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidQuantity):
			return response.BadRequest(c, "Quantity must be greater than zero")
		case errors.Is(err, services.ErrInvalidMedicalData):
			return response.BadRequest(c, "Weight and BMI must not be negative")
		case errors.Is(err, services.ErrRequestNotFound):
			// Already fulfilled or never existed; the client goes back
			// to the matching list.
			return response.NotFound(c, "Request not found or already fulfilled")
		default:
			return response.InternalServerError(c, "Failed to record donation")
		}
	}

	return response.Created(c, "Donation recorded successfully", record)
}

// History lists the caller's donation records
// @Summary Get own donation history
// @Tags Donations
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /donations/history [get]
func (h *DonationHandler) History(c *fiber.Ctx) error {
	registrantID, ok := c.Locals("registrantID").(uint)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	records, err := h.fulfillmentService.History(c.Context(), registrantID)
	if err != nil {
		return response.InternalServerError(c, "Failed to load donation history")
	}

	return response.Success(c, "Donation history retrieved", fiber.Map{
		"records": records,
	})
}

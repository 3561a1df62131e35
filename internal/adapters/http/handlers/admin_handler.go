package handlers

import (
	"errors"
	"strconv"

	"lifelink-registry/internal/core/services"
	"lifelink-registry/internal/pkg/pagination"
	"lifelink-registry/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// AdminHandler handles the read-only admin aggregates and registrant deletion
type AdminHandler struct {
	dashboardService *services.DashboardService
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(dashboardService *services.DashboardService) *AdminHandler {
	return &AdminHandler{dashboardService: dashboardService}
}

// Dashboard returns registry-wide counters
// @Summary Admin dashboard totals
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /admin/dashboard [get]
func (h *AdminHandler) Dashboard(c *fiber.Ctx) error {
	totals, err := h.dashboardService.GetTotals(c.Context())
	if err != nil {
		return response.InternalServerError(c, "Failed to load dashboard")
	}

	return response.Success(c, "Dashboard retrieved", totals)
}

// ListRegistrants lists all registrants
// @Summary List all registrants
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /admin/registrants [get]
func (h *AdminHandler) ListRegistrants(c *fiber.Ctx) error {
	params := pagination.GetParams(c)

	registrants, total, err := h.dashboardService.ListRegistrants(c.Context(), params.Offset, params.Limit)
	if err != nil {
		return response.InternalServerError(c, "Failed to list registrants")
	}

	return c.JSON(pagination.NewResponse(registrants, params, total))
}

// ListRequests lists all open requests with requester identity
// @Summary List all open requests
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /admin/requests [get]
func (h *AdminHandler) ListRequests(c *fiber.Ctx) error {
	params := pagination.GetParams(c)

	requests, total, err := h.dashboardService.ListOpenRequests(c.Context(), params.Offset, params.Limit)
	if err != nil {
		return response.InternalServerError(c, "Failed to list requests")
	}

	return c.JSON(pagination.NewResponse(requests, params, total))
}

// ListDonors lists registrants with their donor-profile counts
// @Summary List donors with donation counts
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /admin/donors [get]
func (h *AdminHandler) ListDonors(c *fiber.Ctx) error {
	donors, err := h.dashboardService.ListDonors(c.Context())
	if err != nil {
		return response.InternalServerError(c, "Failed to list donors")
	}

	return response.Success(c, "Donors retrieved", fiber.Map{
		"donors": donors,
	})
}

// ListDonationRecords lists all donation records with donor identity
// @Summary List all donation records
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /admin/records [get]
func (h *AdminHandler) ListDonationRecords(c *fiber.Ctx) error {
	params := pagination.GetParams(c)

	records, total, err := h.dashboardService.ListDonationRecords(c.Context(), params.Offset, params.Limit)
	if err != nil {
		return response.InternalServerError(c, "Failed to list donation records")
	}

	return c.JSON(pagination.NewResponse(records, params, total))
}

// DeleteRegistrant removes a registrant and all dependent rows
// @Summary Delete a registrant
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Param id path int true "Registrant ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /admin/registrants/{id} [delete]
func (h *AdminHandler) DeleteRegistrant(c *fiber.Ctx) error {
	adminID, ok := c.Locals("registrantID").(uint)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid registrant ID")
	}

	if err := h.dashboardService.DeleteRegistrant(c.Context(), uint(id), adminID); err != nil {
		switch {
		case errors.Is(err, services.ErrCannotDeleteSelf):
			return response.BadRequest(c, "Cannot delete your own account")
		case errors.Is(err, services.ErrRegistrantNotFound):
			return response.NotFound(c, "Registrant not found")
		default:
			return response.InternalServerError(c, "Failed to delete registrant")
		}
	}

	return response.Success(c, "Registrant deleted", nil)
}

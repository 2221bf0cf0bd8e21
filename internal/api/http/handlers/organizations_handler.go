package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/profile-service/internal/api/dto"
	"github.com/spec-kit/profile-service/internal/service"
)

// OrganizationsHandler exposes tenant organization management.
type OrganizationsHandler struct {
	orgs *service.OrganizationService
}

// NewOrganizationsHandler constructs handler.
func NewOrganizationsHandler(orgService *service.OrganizationService) *OrganizationsHandler {
	return &OrganizationsHandler{orgs: orgService}
}

// Create handles POST /organizations.
func (h *OrganizationsHandler) Create(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	var req dto.OrganizationCreateRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}

	org, err := h.orgs.CreateOrganization(c.Context(), userID, req.Name)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.NewOrganizationResponse(org)})
}

// List handles GET /organizations.
func (h *OrganizationsHandler) List(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	orgs, err := h.orgs.ListOrganizations(c.Context(), userID)
	if err != nil {
		return err
	}

	out := make([]dto.OrganizationResponse, 0, len(orgs))
	for i := range orgs {
		out = append(out, dto.NewOrganizationResponse(&orgs[i]))
	}
	return c.JSON(fiber.Map{"data": out})
}

// Get handles GET /organizations/:id.
func (h *OrganizationsHandler) Get(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	org, err := h.orgs.GetOrganization(c.Context(), userID, c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewOrganizationResponse(org)})
}

// Update handles PUT /organizations/:id.
func (h *OrganizationsHandler) Update(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	var req dto.OrganizationUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}

	org, err := h.orgs.RenameOrganization(c.Context(), userID, c.Params("id"), req.Name)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewOrganizationResponse(org)})
}

// Archive handles DELETE /organizations/:id.
func (h *OrganizationsHandler) Archive(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	org, err := h.orgs.ArchiveOrganization(c.Context(), userID, c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewOrganizationResponse(org)})
}

// CreateApplication handles POST /organizations/:id/applications.
func (h *OrganizationsHandler) CreateApplication(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	var req dto.ApplicationCreateRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}

	app, err := h.orgs.CreateApplication(c.Context(), userID, c.Params("id"), req.Name)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.NewApplicationResponse(app)})
}

// ListApplications handles GET /organizations/:id/applications.
func (h *OrganizationsHandler) ListApplications(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	apps, err := h.orgs.ListApplications(c.Context(), userID, c.Params("id"))
	if err != nil {
		return err
	}

	out := make([]dto.ApplicationResponse, 0, len(apps))
	for i := range apps {
		out = append(out, dto.NewApplicationResponse(&apps[i]))
	}
	return c.JSON(fiber.Map{"data": out})
}

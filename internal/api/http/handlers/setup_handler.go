package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/profile-service/internal/api/dto"
	"github.com/spec-kit/profile-service/internal/auth"
	"github.com/spec-kit/profile-service/internal/repository"
	"github.com/spec-kit/profile-service/internal/service"
)

// SetupHandler exposes the guided profile-setup flow.
type SetupHandler struct {
	setup        *service.SetupService
	verification *service.VerificationService
}

// NewSetupHandler constructs handler.
func NewSetupHandler(setupService *service.SetupService, verificationService *service.VerificationService) *SetupHandler {
	return &SetupHandler{setup: setupService, verification: verificationService}
}

func currentUserID(c *fiber.Ctx) (string, error) {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.User == nil {
		return "", fiber.NewError(http.StatusUnauthorized, http.StatusText(http.StatusUnauthorized))
	}
	return principal.User.ID, nil
}

// Profile handles GET /profile: the snapshot plus per-step completion.
func (h *SetupHandler) Profile(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	status, err := h.setup.Status(c.Context(), userID)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"data": fiber.Map{
			"user": fiber.Map{
				"id":             status.User.ID,
				"email":          status.User.Email,
				"first_name":     status.User.FirstName,
				"last_name":      status.User.LastName,
				"phone_number":   status.User.PhoneNumber,
				"phone_verified": status.User.PhoneVerified,
			},
			"setup": dto.NewSetupStatusResponse(status, time.Now()),
		},
	})
}

// Start handles GET /profile/setup?mode=setup[&startFrom=incomplete].
// The query parameters are the flow's entry points: mode=setup starts the
// full guided flow, startFrom=incomplete resumes at the first incomplete
// step. They are consumed once, here.
func (h *SetupHandler) Start(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	if c.Query("mode") != "setup" {
		return fiber.NewError(http.StatusBadRequest, "mode=setup required")
	}
	resume := c.Query("startFrom") == "incomplete"

	state, err := h.setup.Start(c.Context(), userID, resume)
	if err != nil {
		return err
	}
	return h.stateJSON(c, state)
}

// SubmitName handles POST /profile/setup/name.
func (h *SetupHandler) SubmitName(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	var req dto.SubmitNameRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}

	state, err := h.setup.SubmitName(c.Context(), userID, req.FirstName, req.LastName)
	if err != nil {
		return err
	}
	return h.stateJSON(c, state)
}

// SubmitPhone handles POST /profile/setup/phone.
func (h *SetupHandler) SubmitPhone(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	var req dto.SubmitPhoneRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}

	state, err := h.setup.SubmitPhone(c.Context(), userID, req.PhoneNumber)
	if err != nil {
		return err
	}
	return h.stateJSON(c, state)
}

// Next handles POST /profile/setup/next.
func (h *SetupHandler) Next(c *fiber.Ctx) error {
	return h.navigate(c, h.setup.Next)
}

// Previous handles POST /profile/setup/previous.
func (h *SetupHandler) Previous(c *fiber.Ctx) error {
	return h.navigate(c, h.setup.Previous)
}

// Summary handles POST /profile/setup/summary.
func (h *SetupHandler) Summary(c *fiber.Ctx) error {
	return h.navigate(c, h.setup.Summary)
}

// Skip handles POST /profile/setup/skip.
func (h *SetupHandler) Skip(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	var req dto.SkipRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}

	state, err := h.setup.Skip(c.Context(), userID, req.Step)
	if err != nil {
		return err
	}
	return h.stateJSON(c, state)
}

// Abandon handles DELETE /profile/setup.
func (h *SetupHandler) Abandon(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	if err := h.setup.Abandon(c.Context(), userID); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}

// SendCode handles POST /profile/setup/verification/send.
func (h *SetupHandler) SendCode(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	state, err := h.verification.SendCode(c.Context(), userID)
	if err != nil {
		return err
	}
	return h.stateJSON(c, state)
}

// VerifyCode handles POST /profile/setup/verification/verify.
func (h *SetupHandler) VerifyCode(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	var req dto.VerifyCodeRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if req.Code == "" {
		return fiber.NewError(http.StatusBadRequest, "code required")
	}

	state, verified, err := h.verification.VerifyCode(c.Context(), userID, req.Code)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"data": fiber.Map{
			"verified": verified,
			"state":    dto.NewSetupStateResponse(state, time.Now()),
		},
	})
}

func (h *SetupHandler) navigate(c *fiber.Ctx, fn func(ctx context.Context, userID string) (*repository.SetupState, error)) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	state, err := fn(c.Context(), userID)
	if err != nil {
		return err
	}
	return h.stateJSON(c, state)
}

func (h *SetupHandler) stateJSON(c *fiber.Ctx, state *repository.SetupState) error {
	return c.JSON(fiber.Map{
		"data": fiber.Map{"state": dto.NewSetupStateResponse(state, time.Now())},
	})
}

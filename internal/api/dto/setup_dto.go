package dto

import (
	"time"

	"github.com/spec-kit/profile-service/internal/flow"
	"github.com/spec-kit/profile-service/internal/repository"
	"github.com/spec-kit/profile-service/internal/service"
)

// SubmitNameRequest payload for the name step.
type SubmitNameRequest struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

// SubmitPhoneRequest payload for the phone step.
type SubmitPhoneRequest struct {
	PhoneNumber string `json:"phone_number"`
}

// SkipRequest payload for direct navigation.
type SkipRequest struct {
	Step flow.Step `json:"step"`
}

// VerifyCodeRequest payload for code verification.
type VerifyCodeRequest struct {
	Code string `json:"code"`
}

// VerificationView mirrors the verification sub-flow state.
type VerificationView struct {
	CodeSent      bool       `json:"code_sent"`
	CodeExpiresAt *time.Time `json:"code_expires_at,omitempty"`
	CooldownUntil *time.Time `json:"cooldown_until,omitempty"`
	CanResend     bool       `json:"can_resend"`
	Error         string     `json:"error,omitempty"`
}

// SetupStateResponse is the wire form of one flow snapshot.
type SetupStateResponse struct {
	CurrentStep        flow.Step        `json:"current_step"`
	FlowMode           bool             `json:"flow_mode"`
	StartFromBeginning bool             `json:"start_from_beginning"`
	Progress           int              `json:"progress"`
	PendingSync        bool             `json:"pending_sync"`
	SyncError          string           `json:"sync_error,omitempty"`
	Verification       VerificationView `json:"verification"`
}

// SetupStatusResponse extends the state with per-step completion.
type SetupStatusResponse struct {
	Active bool                `json:"active"`
	State  *SetupStateResponse `json:"state,omitempty"`
	Steps  map[flow.Step]bool  `json:"steps"`
}

// NewSetupStateResponse converts a stored setup session for the wire.
func NewSetupStateResponse(state *repository.SetupState, now time.Time) *SetupStateResponse {
	if state == nil {
		return nil
	}
	return &SetupStateResponse{
		CurrentStep:        state.Flow.Current,
		FlowMode:           state.Flow.FlowMode,
		StartFromBeginning: state.Flow.StartFromBeginning,
		Progress:           flow.Progress(state.Flow.Current),
		PendingSync:        state.Flow.PendingSync,
		SyncError:          state.Flow.SyncError,
		Verification: VerificationView{
			CodeSent:      state.Verification.CodeSent,
			CodeExpiresAt: state.Verification.CodeExpiresAt,
			CooldownUntil: state.Verification.CooldownUntil,
			CanResend:     state.Verification.CanResend(now),
			Error:         state.Verification.Error,
		},
	}
}

// NewSetupStatusResponse converts the read model for the wire.
func NewSetupStatusResponse(status *service.SetupStatus, now time.Time) *SetupStatusResponse {
	resp := &SetupStatusResponse{
		Active: status.State != nil,
		State:  NewSetupStateResponse(status.State, now),
		Steps:  status.Steps,
	}
	return resp
}

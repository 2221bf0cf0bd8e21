package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spec-kit/profile-service/internal/config"
	"github.com/spec-kit/profile-service/internal/domain"
	"github.com/spec-kit/profile-service/internal/events"
	"github.com/spec-kit/profile-service/internal/flow"
	"github.com/spec-kit/profile-service/internal/repository"
	apperrors "github.com/spec-kit/profile-service/pkg/util"
)

// SetupService owns the guided profile-setup flow for each user. The
// navigator state lives in Redis with a session TTL; the profile fields
// themselves are persisted through the user repository. The two are
// deliberately independent slices: step submissions advance the navigator
// before the account update settles, and the reconciliation path rolls the
// step back and records the failure when the update does not apply.
type SetupService struct {
	users      repository.UserRepository
	states     repository.SetupStateRepository
	dispatcher events.Dispatcher
	logger     *zap.Logger
	allowSkip  bool
	now        func() time.Time
}

// SetupDependencies encapsulates repo requirements for the setup service.
type SetupDependencies struct {
	UserRepo       repository.UserRepository
	SetupStateRepo repository.SetupStateRepository
	Dispatcher     events.Dispatcher
}

// SetupStatus is the read model returned to the UI.
type SetupStatus struct {
	State    *repository.SetupState
	User     *domain.User
	Progress int
	Steps    map[flow.Step]bool
}

// NewSetupService builds the service.
func NewSetupService(cfg config.SetupConfig, deps SetupDependencies, logger *zap.Logger) *SetupService {
	return &SetupService{
		users:      deps.UserRepo,
		states:     deps.SetupStateRepo,
		dispatcher: deps.Dispatcher,
		logger:     logger,
		allowSkip:  cfg.AllowSkip,
		now:        time.Now,
	}
}

// Start begins a new flow for the user: a full flow from the first step, or,
// when resume is set, from the first incomplete step. Any previous session
// and its verification sub-flow state are discarded.
func (s *SetupService) Start(ctx context.Context, userID string, resume bool) (*repository.SetupState, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	var st flow.State
	if resume {
		st = flow.StartFromIncomplete(user.Snapshot())
	} else {
		st = flow.StartFullFlow()
	}
	st.AllowSkip = s.allowSkip

	state := &repository.SetupState{Flow: st}
	if err := s.states.Save(ctx, userID, state); err != nil {
		return nil, err
	}
	return state, nil
}

// Status returns the current flow state (nil when no flow is active)
// alongside the per-step completion read model.
func (s *SetupService) Status(ctx context.Context, userID string) (*SetupStatus, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	state, err := s.states.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	snap := user.Snapshot()
	steps := make(map[flow.Step]bool, len(flow.Order))
	for _, step := range flow.Order {
		steps[step] = flow.IsStepComplete(step, snap)
	}

	status := &SetupStatus{State: state, User: user, Steps: steps}
	if state != nil {
		status.Progress = flow.Progress(state.Flow.Current)
	}
	return status, nil
}

// SubmitName records the user's name and advances past the name step.
func (s *SetupService) SubmitName(ctx context.Context, userID, firstName, lastName string) (*repository.SetupState, error) {
	firstName = strings.TrimSpace(firstName)
	lastName = strings.TrimSpace(lastName)
	if firstName == "" || lastName == "" {
		return nil, apperrors.NewValidationError("first name and last name are required", nil)
	}

	state, err := s.loadActive(ctx, userID)
	if err != nil {
		return nil, err
	}
	if state.Flow.Current != flow.StepName {
		return nil, apperrors.NewConflict("name step is not active", map[string]any{"current_step": state.Flow.Current})
	}

	return s.advanceWithUpdate(ctx, userID, state, []string{"first_name", "last_name"}, func(u *domain.User) {
		u.FirstName = firstName
		u.LastName = lastName
	})
}

// SubmitPhone records the user's phone number and advances past the phone
// step. Changing the number invalidates any earlier verification.
func (s *SetupService) SubmitPhone(ctx context.Context, userID, phoneNumber string) (*repository.SetupState, error) {
	phoneNumber = strings.TrimSpace(phoneNumber)
	if !flow.ValidPhone(phoneNumber) {
		return nil, apperrors.NewValidationError("phone number must be in E.164 format", map[string]any{"phone_number": phoneNumber})
	}

	state, err := s.loadActive(ctx, userID)
	if err != nil {
		return nil, err
	}
	if state.Flow.Current != flow.StepPhone {
		return nil, apperrors.NewConflict("phone step is not active", map[string]any{"current_step": state.Flow.Current})
	}

	state.Verification = flow.Verification{}

	return s.advanceWithUpdate(ctx, userID, state, []string{"phone_number"}, func(u *domain.User) {
		if u.PhoneNumber != phoneNumber {
			u.PhoneVerified = false
		}
		u.PhoneNumber = phoneNumber
	})
}

// Next advances to the successor step without submitting anything (used when
// the active step is already complete).
func (s *SetupService) Next(ctx context.Context, userID string) (*repository.SetupState, error) {
	return s.transition(ctx, userID, flow.State.Next)
}

// Previous moves back one step.
func (s *SetupService) Previous(ctx context.Context, userID string) (*repository.SetupState, error) {
	return s.transition(ctx, userID, flow.State.Previous)
}

// Summary exits guided mode into the summary view.
func (s *SetupService) Summary(ctx context.Context, userID string) (*repository.SetupState, error) {
	return s.transition(ctx, userID, flow.State.ShowSummary)
}

// Skip jumps directly to target. Non-sequential forward jumps are refused
// unless enabled via configuration.
func (s *SetupService) Skip(ctx context.Context, userID string, target flow.Step) (*repository.SetupState, error) {
	if !flow.Valid(target) {
		return nil, apperrors.NewValidationError("unknown step", map[string]any{"step": target})
	}

	state, err := s.loadActive(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !state.Flow.AllowSkip && flow.Index(target) > flow.Index(state.Flow.Current)+1 {
		return nil, apperrors.NewForbidden("non-sequential navigation is not enabled")
	}

	state.Flow = state.Flow.SkipTo(target)
	if err := s.states.Save(ctx, userID, state); err != nil {
		return nil, err
	}
	return state, nil
}

// Abandon discards the flow and its verification sub-flow state. Network
// effects that already completed (profile updates, sent codes) stand.
func (s *SetupService) Abandon(ctx context.Context, userID string) error {
	return s.states.Delete(ctx, userID)
}

func (s *SetupService) transition(ctx context.Context, userID string, fn func(flow.State) flow.State) (*repository.SetupState, error) {
	state, err := s.loadActive(ctx, userID)
	if err != nil {
		return nil, err
	}
	state.Flow = fn(state.Flow)
	if err := s.states.Save(ctx, userID, state); err != nil {
		return nil, err
	}
	return state, nil
}

func (s *SetupService) loadActive(ctx context.Context, userID string) (*repository.SetupState, error) {
	state, err := s.states.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	if state == nil {
		return nil, apperrors.NewConflict("no active setup flow", nil)
	}
	return state, nil
}

// advanceWithUpdate moves the navigator forward first, then applies the
// account update and reconciles: on failure the step rolls back to where it
// was and the error is surfaced on the flow state rather than the response.
func (s *SetupService) advanceWithUpdate(ctx context.Context, userID string, state *repository.SetupState, fields []string, mutate func(*domain.User)) (*repository.SetupState, error) {
	prev := state.Flow.Current
	state.Flow = state.Flow.Next()
	state.Flow.PendingSync = true
	state.Flow.SyncError = ""
	if err := s.states.Save(ctx, userID, state); err != nil {
		return nil, err
	}

	user, err := s.users.GetByID(ctx, userID)
	if err == nil {
		mutate(user)
		err = s.users.Update(ctx, user)
	}

	if err != nil {
		state.Flow.Current = prev
		state.Flow.FlowMode = true
		state.Flow.PendingSync = false
		state.Flow.SyncError = "profile update failed"
		if saveErr := s.states.Save(ctx, userID, state); saveErr != nil {
			return nil, saveErr
		}
		s.publish(ctx, events.EventProfileUpdateFailed, userID, events.ProfileUpdateFailedPayload{
			Step:   prev,
			Fields: fields,
			Reason: err.Error(),
		})
		s.logger.Warn("profile update failed",
			zap.String("user_id", userID),
			zap.String("step", string(prev)),
			zap.Error(err))
		return state, nil
	}

	state.Flow.PendingSync = false
	if err := s.states.Save(ctx, userID, state); err != nil {
		return nil, err
	}
	s.publish(ctx, events.EventProfileUpdateApplied, userID, events.ProfileUpdateAppliedPayload{
		Step:   prev,
		Fields: fields,
	})
	return state, nil
}

func (s *SetupService) publish(ctx context.Context, eventType events.EventType, userID string, payload interface{}) {
	if s.dispatcher == nil {
		return
	}
	_ = s.dispatcher.Publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		UserID:    userID,
		Timestamp: s.now(),
		Payload:   payload,
	})
}

package service

import (
	"context"
	"crypto/rand"
	"errors"
	"math/big"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/spec-kit/profile-service/internal/config"
	"github.com/spec-kit/profile-service/internal/events"
	"github.com/spec-kit/profile-service/internal/flow"
	"github.com/spec-kit/profile-service/internal/repository"
	apperrors "github.com/spec-kit/profile-service/pkg/util"
)

// VerificationService runs the phone-code sub-flow nested inside the
// PHONE_VERIFY step. Codes are stored hashed in Redis with their own TTL;
// the flow state only ever sees the send/expiry/cooldown bookkeeping.
//
// Send and verify failures are recoverable: they surface on the flow state's
// verification slice, never as fatal errors.
type VerificationService struct {
	users      repository.UserRepository
	states     repository.SetupStateRepository
	codes      repository.VerificationCodeRepository
	dispatcher events.Dispatcher
	logger     *zap.Logger
	cfg        config.VerificationConfig
	now        func() time.Time
	genCode    func(length int) (string, error)
}

// VerificationDependencies encapsulates repo requirements.
type VerificationDependencies struct {
	UserRepo       repository.UserRepository
	SetupStateRepo repository.SetupStateRepository
	CodeRepo       repository.VerificationCodeRepository
	Dispatcher     events.Dispatcher
}

// NewVerificationService builds the service.
func NewVerificationService(cfg config.VerificationConfig, deps VerificationDependencies, logger *zap.Logger) *VerificationService {
	return &VerificationService{
		users:      deps.UserRepo,
		states:     deps.SetupStateRepo,
		codes:      deps.CodeRepo,
		dispatcher: deps.Dispatcher,
		logger:     logger,
		cfg:        cfg,
		now:        time.Now,
		genCode:    generateCode,
	}
}

// SendCode generates and stores a fresh verification code for the user's
// phone number and starts the resend cooldown. Refusals (no phone on record,
// cooldown still running) are reported on the returned state's verification
// slice, not as errors.
func (s *VerificationService) SendCode(ctx context.Context, userID string) (*repository.SetupState, error) {
	state, err := s.loadActive(ctx, userID)
	if err != nil {
		return nil, err
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user.PhoneNumber == "" {
		return s.saveSendFailure(ctx, userID, state, "no phone number on record")
	}

	now := s.now()
	if !state.Verification.CanResend(now) {
		return s.saveSendFailure(ctx, userID, state, "a code was sent recently; wait before requesting another")
	}

	code, err := s.genCode(s.cfg.CodeLength)
	if err != nil {
		return nil, err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(code), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	if err := s.codes.SaveCode(ctx, userID, string(hash), s.cfg.CodeTTL()); err != nil {
		return s.saveSendFailure(ctx, userID, state, "could not issue a code; try again")
	}
	if err := s.codes.SetCooldown(ctx, userID, s.cfg.ResendCooldown()); err != nil {
		s.logger.Warn("set resend cooldown failed", zap.String("user_id", userID), zap.Error(err))
	}

	state.Verification = state.Verification.MarkSent(now, s.cfg.CodeTTL(), s.cfg.ResendCooldown())
	if err := s.states.Save(ctx, userID, state); err != nil {
		return nil, err
	}

	s.publish(ctx, events.EventCodeSent, userID, events.CodeSentPayload{
		PhoneNumber: user.PhoneNumber,
		Code:        code,
		ExpiresAt:   *state.Verification.CodeExpiresAt,
	})
	return state, nil
}

// VerifyCode checks a submitted code. On success the user's phone is marked
// verified and the flow moves to the summary view; on failure the flow stays
// on the verification step with the error surfaced for retry.
func (s *VerificationService) VerifyCode(ctx context.Context, userID, code string) (*repository.SetupState, bool, error) {
	state, err := s.loadActive(ctx, userID)
	if err != nil {
		return nil, false, err
	}

	now := s.now()
	if !state.Verification.CodeSent {
		return s.saveVerifyFailure(ctx, userID, state, "no code has been sent")
	}
	if state.Verification.Expired(now) {
		_ = s.codes.DeleteCode(ctx, userID)
		return s.saveVerifyFailure(ctx, userID, state, "code expired; request a new one")
	}

	hash, err := s.codes.GetCode(ctx, userID)
	if errors.Is(err, repository.ErrCodeNotFound) {
		return s.saveVerifyFailure(ctx, userID, state, "code expired; request a new one")
	}
	if err != nil {
		return nil, false, err
	}

	attempts, err := s.codes.IncrementAttempts(ctx, userID, s.cfg.CodeTTL())
	if err != nil {
		return nil, false, err
	}
	if attempts > s.cfg.MaxAttempts {
		_ = s.codes.DeleteCode(ctx, userID)
		return s.saveVerifyFailure(ctx, userID, state, "too many attempts; request a new code")
	}

	if bcrypt.CompareHashAndPassword([]byte(hash), []byte(code)) != nil {
		return s.saveVerifyFailure(ctx, userID, state, "invalid code")
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, false, err
	}
	user.PhoneVerified = true
	if err := s.users.Update(ctx, user); err != nil {
		return nil, false, err
	}
	_ = s.codes.DeleteCode(ctx, userID)

	state.Verification = flow.Verification{}
	state.Flow = state.Flow.ShowSummary()
	if err := s.states.Save(ctx, userID, state); err != nil {
		return nil, false, err
	}

	s.publish(ctx, events.EventPhoneVerified, userID, events.PhoneVerifiedPayload{PhoneNumber: user.PhoneNumber})
	return state, true, nil
}

func (s *VerificationService) loadActive(ctx context.Context, userID string) (*repository.SetupState, error) {
	state, err := s.states.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	if state == nil {
		return nil, apperrors.NewConflict("no active setup flow", nil)
	}
	return state, nil
}

func (s *VerificationService) saveSendFailure(ctx context.Context, userID string, state *repository.SetupState, msg string) (*repository.SetupState, error) {
	state.Verification = state.Verification.MarkSendFailed(msg)
	if err := s.states.Save(ctx, userID, state); err != nil {
		return nil, err
	}
	return state, nil
}

func (s *VerificationService) saveVerifyFailure(ctx context.Context, userID string, state *repository.SetupState, msg string) (*repository.SetupState, bool, error) {
	state.Verification = state.Verification.MarkVerifyFailed(msg)
	if err := s.states.Save(ctx, userID, state); err != nil {
		return nil, false, err
	}
	return state, false, nil
}

func (s *VerificationService) publish(ctx context.Context, eventType events.EventType, userID string, payload interface{}) {
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

// generateCode returns a zero-padded numeric code of the given length.
func generateCode(length int) (string, error) {
	if length <= 0 {
		length = 6
	}
	digits := make([]byte, length)
	for i := range digits {
		n, err := rand.Int(rand.Reader, big.NewInt(10))
		if err != nil {
			return "", err
		}
		digits[i] = byte('0' + n.Int64())
	}
	return string(digits), nil
}

package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/profile-service/internal/config"
	"github.com/spec-kit/profile-service/internal/domain"
	"github.com/spec-kit/profile-service/internal/events"
	"github.com/spec-kit/profile-service/internal/flow"
	"github.com/spec-kit/profile-service/internal/repository"
)

func verificationConfig() config.VerificationConfig {
	return config.VerificationConfig{
		CodeTTLMinutes:        10,
		ResendCooldownSeconds: 60,
		CodeLength:            6,
		MaxAttempts:           3,
	}
}

type verificationFixture struct {
	svc    *VerificationService
	users  *fakeUserRepo
	states *fakeStateRepo
	codes  *fakeCodeRepo
	clock  *time.Time
}

func newVerificationFixture(t *testing.T, user *domain.User) *verificationFixture {
	t.Helper()

	users := newFakeUserRepo(user)
	states := newFakeStateRepo()
	codes := newFakeCodeRepo()

	svc := NewVerificationService(verificationConfig(), VerificationDependencies{
		UserRepo:       users,
		SetupStateRepo: states,
		CodeRepo:       codes,
		Dispatcher:     events.NewInMemoryDispatcher(zap.NewNop()),
	}, zap.NewNop())

	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }
	svc.genCode = func(int) (string, error) { return "123456", nil }

	// Position the flow on the verification step.
	state := flow.StartFullFlow().SkipTo(flow.StepPhone).SkipTo(flow.StepPhoneVerify)
	require.NoError(t, states.Save(context.Background(), user.ID, &repository.SetupState{Flow: state}))

	return &verificationFixture{svc: svc, users: users, states: states, codes: codes, clock: &now}
}

func verifiedUser() *domain.User {
	return &domain.User{
		ID:          "user-1",
		Email:       "ada@example.org",
		FirstName:   "Ada",
		LastName:    "Lovelace",
		PhoneNumber: "+15551234567",
		Status:      domain.UserStatusActive,
	}
}

func TestSendCodeSuccess(t *testing.T) {
	f := newVerificationFixture(t, verifiedUser())
	ctx := context.Background()

	state, err := f.svc.SendCode(ctx, "user-1")
	require.NoError(t, err)
	assert.True(t, state.Verification.CodeSent)
	assert.Empty(t, state.Verification.Error)
	require.NotNil(t, state.Verification.CodeExpiresAt)
	require.NotNil(t, state.Verification.CooldownUntil)
	assert.Equal(t, f.clock.Add(10*time.Minute), *state.Verification.CodeExpiresAt)
	assert.Equal(t, f.clock.Add(60*time.Second), *state.Verification.CooldownUntil)

	assert.False(t, state.Verification.CanResend(*f.clock))
	assert.True(t, state.Verification.CanResend(f.clock.Add(61*time.Second)))

	_, err = f.codes.GetCode(ctx, "user-1")
	assert.NoError(t, err, "a hashed code is stored")
}

func TestSendCodeWithoutPhone(t *testing.T) {
	u := verifiedUser()
	u.PhoneNumber = ""
	f := newVerificationFixture(t, u)

	state, err := f.svc.SendCode(context.Background(), "user-1")
	require.NoError(t, err, "refusals surface on the state, not as errors")
	assert.False(t, state.Verification.CodeSent)
	assert.NotEmpty(t, state.Verification.Error)
}

func TestSendCodeCooldown(t *testing.T) {
	f := newVerificationFixture(t, verifiedUser())
	ctx := context.Background()

	_, err := f.svc.SendCode(ctx, "user-1")
	require.NoError(t, err)

	state, err := f.svc.SendCode(ctx, "user-1")
	require.NoError(t, err)
	assert.NotEmpty(t, state.Verification.Error, "second send within cooldown is refused")
	assert.True(t, state.Verification.CodeSent, "the first code stays usable")

	// After the cooldown window the resend goes through.
	*f.clock = f.clock.Add(61 * time.Second)
	state, err = f.svc.SendCode(ctx, "user-1")
	require.NoError(t, err)
	assert.Empty(t, state.Verification.Error)
}

func TestVerifyCodeSuccess(t *testing.T) {
	f := newVerificationFixture(t, verifiedUser())
	ctx := context.Background()

	_, err := f.svc.SendCode(ctx, "user-1")
	require.NoError(t, err)

	state, verified, err := f.svc.VerifyCode(ctx, "user-1", "123456")
	require.NoError(t, err)
	assert.True(t, verified)
	assert.Equal(t, flow.StepComplete, state.Flow.Current)
	assert.False(t, state.Flow.FlowMode, "successful verification moves the flow to the summary")
	assert.Empty(t, state.Verification.Error)

	user, err := f.users.GetByID(ctx, "user-1")
	require.NoError(t, err)
	assert.True(t, user.PhoneVerified)

	_, err = f.codes.GetCode(ctx, "user-1")
	assert.Error(t, err, "the code is single use")
}

func TestVerifyCodeWrongCode(t *testing.T) {
	f := newVerificationFixture(t, verifiedUser())
	ctx := context.Background()

	_, err := f.svc.SendCode(ctx, "user-1")
	require.NoError(t, err)

	state, verified, err := f.svc.VerifyCode(ctx, "user-1", "000000")
	require.NoError(t, err)
	assert.False(t, verified)
	assert.Equal(t, flow.StepPhoneVerify, state.Flow.Current, "the flow stays on the verification step")
	assert.Equal(t, "invalid code", state.Verification.Error)

	// The right code still works afterwards.
	_, verified, err = f.svc.VerifyCode(ctx, "user-1", "123456")
	require.NoError(t, err)
	assert.True(t, verified)
}

func TestVerifyCodeWithoutSend(t *testing.T) {
	f := newVerificationFixture(t, verifiedUser())

	state, verified, err := f.svc.VerifyCode(context.Background(), "user-1", "123456")
	require.NoError(t, err)
	assert.False(t, verified)
	assert.NotEmpty(t, state.Verification.Error)
}

func TestVerifyCodeExpired(t *testing.T) {
	f := newVerificationFixture(t, verifiedUser())
	ctx := context.Background()

	_, err := f.svc.SendCode(ctx, "user-1")
	require.NoError(t, err)

	*f.clock = f.clock.Add(11 * time.Minute)
	state, verified, err := f.svc.VerifyCode(ctx, "user-1", "123456")
	require.NoError(t, err)
	assert.False(t, verified)
	assert.Contains(t, state.Verification.Error, "expired")
}

func TestVerifyCodeAttemptLimit(t *testing.T) {
	f := newVerificationFixture(t, verifiedUser())
	ctx := context.Background()

	_, err := f.svc.SendCode(ctx, "user-1")
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		_, verified, err := f.svc.VerifyCode(ctx, "user-1", "000000")
		require.NoError(t, err)
		assert.False(t, verified)
	}

	// The fourth attempt exceeds the limit; even the right code is refused
	// and the stored code has been invalidated.
	state, verified, err := f.svc.VerifyCode(ctx, "user-1", "123456")
	require.NoError(t, err)
	assert.False(t, verified)
	assert.Contains(t, state.Verification.Error, "attempts")

	_, err = f.codes.GetCode(ctx, "user-1")
	assert.Error(t, err)
}

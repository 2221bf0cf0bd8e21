package flow

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarkSent(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	v := Verification{Error: "previous failure"}.MarkSent(now, 10*time.Minute, 60*time.Second)

	assert.True(t, v.CodeSent)
	require.NotNil(t, v.CodeExpiresAt)
	require.NotNil(t, v.CooldownUntil)
	assert.Equal(t, now.Add(10*time.Minute), *v.CodeExpiresAt)
	assert.Equal(t, now.Add(60*time.Second), *v.CooldownUntil)
	assert.Empty(t, v.Error, "a successful send clears any previous error")
	assert.True(t, v.CodeExpiresAt.After(now))
	assert.True(t, v.CooldownUntil.After(now))
}

func TestCanResend(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	var v Verification
	assert.True(t, v.CanResend(now), "no cooldown means resend is permitted")

	v = v.MarkSent(now, 10*time.Minute, 60*time.Second)
	assert.False(t, v.CanResend(now))
	assert.False(t, v.CanResend(now.Add(59*time.Second)))
	assert.True(t, v.CanResend(now.Add(61*time.Second)))
}

func TestExpired(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	var v Verification
	assert.False(t, v.Expired(now), "nothing sent, nothing to expire")

	v = v.MarkSent(now, 10*time.Minute, time.Minute)
	assert.False(t, v.Expired(now.Add(9*time.Minute)))
	assert.True(t, v.Expired(now.Add(11*time.Minute)))
}

func TestMarkSendFailedKeepsSentFlags(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	v := Verification{}.MarkSent(now, 10*time.Minute, time.Minute)

	failed := v.MarkSendFailed("gateway unavailable")
	assert.Equal(t, "gateway unavailable", failed.Error)
	assert.True(t, failed.CodeSent, "an earlier code stays usable after a failed resend")
	assert.Equal(t, v.CodeExpiresAt, failed.CodeExpiresAt)
}

func TestMarkVerifyFailedAndClearError(t *testing.T) {
	v := Verification{}.MarkVerifyFailed("invalid code")
	assert.Equal(t, "invalid code", v.Error)

	v = v.ClearError()
	assert.Empty(t, v.Error)
}

package flow

import "time"

// Verification tracks the phone-code sub-flow nested inside the PHONE_VERIFY
// step. It is reset whenever the flow (re)starts and discarded with the flow.
//
// Invariant: CodeSent implies CodeExpiresAt != nil.
type Verification struct {
	CodeSent      bool       `json:"code_sent"`
	CodeExpiresAt *time.Time `json:"code_expires_at,omitempty"`
	CooldownUntil *time.Time `json:"cooldown_until,omitempty"`
	Error         string     `json:"error,omitempty"`
}

// MarkSent records a successful code send: the code stays valid for ttl and
// the next send is allowed after cooldown. Any previous error is cleared.
func (v Verification) MarkSent(now time.Time, ttl, cooldown time.Duration) Verification {
	exp := now.Add(ttl)
	cd := now.Add(cooldown)
	return Verification{CodeSent: true, CodeExpiresAt: &exp, CooldownUntil: &cd}
}

// MarkSendFailed surfaces a send failure; the sent flags are left untouched
// so an earlier code, if any, remains usable.
func (v Verification) MarkSendFailed(msg string) Verification {
	v.Error = msg
	return v
}

// MarkVerifyFailed surfaces a failed code check; the user stays on the
// verification step and may retry.
func (v Verification) MarkVerifyFailed(msg string) Verification {
	v.Error = msg
	return v
}

// ClearError drops a stale error message, keeping the rest of the state.
func (v Verification) ClearError() Verification {
	v.Error = ""
	return v
}

// CanResend reports whether the resend cooldown has elapsed. A missing
// cooldown means a send was never attempted and is always permitted.
func (v Verification) CanResend(now time.Time) bool {
	return v.CooldownUntil == nil || now.After(*v.CooldownUntil)
}

// Expired reports whether a previously sent code is past its validity window.
func (v Verification) Expired(now time.Time) bool {
	return v.CodeSent && v.CodeExpiresAt != nil && now.After(*v.CodeExpiresAt)
}

package flow

import "strings"

// Snapshot is the read-only view of a user's profile needed to decide which
// setup steps are already satisfied.
type Snapshot struct {
	FirstName     string
	LastName      string
	PhoneNumber   string
	PhoneVerified bool
}

// IsStepComplete reports whether a single step is satisfied by the snapshot.
// Name, Phone and PhoneVerify are each gated only on their own fields; the
// terminal step requires all three. A nil snapshot satisfies nothing.
func IsStepComplete(s Step, snap *Snapshot) bool {
	if snap == nil {
		return false
	}
	switch s {
	case StepName:
		return strings.TrimSpace(snap.FirstName) != "" && strings.TrimSpace(snap.LastName) != ""
	case StepPhone:
		return snap.PhoneNumber != ""
	case StepPhoneVerify:
		return snap.PhoneVerified
	case StepComplete:
		return IsStepComplete(StepName, snap) &&
			IsStepComplete(StepPhone, snap) &&
			IsStepComplete(StepPhoneVerify, snap)
	}
	return false
}

// FirstIncompleteStep returns the earliest step in the fixed order that the
// snapshot does not satisfy, StepComplete when the profile is fully set up,
// and StepName when no snapshot is available.
func FirstIncompleteStep(snap *Snapshot) Step {
	if snap == nil {
		return StepName
	}
	for _, s := range Order[:len(Order)-1] {
		if !IsStepComplete(s, snap) {
			return s
		}
	}
	return StepComplete
}

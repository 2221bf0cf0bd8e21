package flow

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsStepComplete(t *testing.T) {
	tests := []struct {
		name string
		step Step
		snap *Snapshot
		want bool
	}{
		{"nil snapshot", StepName, nil, false},
		{"name both set", StepName, &Snapshot{FirstName: "Ada", LastName: "Lovelace"}, true},
		{"name missing last", StepName, &Snapshot{FirstName: "Ada"}, false},
		{"name whitespace only", StepName, &Snapshot{FirstName: "  ", LastName: "\t"}, false},
		{"phone set", StepPhone, &Snapshot{PhoneNumber: "+15551234567"}, true},
		{"phone empty", StepPhone, &Snapshot{}, false},
		{"verify true", StepPhoneVerify, &Snapshot{PhoneVerified: true}, true},
		{"verify false", StepPhoneVerify, &Snapshot{PhoneNumber: "+15551234567"}, false},
		{"complete all", StepComplete, &Snapshot{FirstName: "Ada", LastName: "Lovelace", PhoneNumber: "+15551234567", PhoneVerified: true}, true},
		{"complete missing verify", StepComplete, &Snapshot{FirstName: "Ada", LastName: "Lovelace", PhoneNumber: "+15551234567"}, false},
		{"unknown step", Step("BOGUS"), &Snapshot{FirstName: "Ada", LastName: "Lovelace"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsStepComplete(tt.step, tt.snap))
		})
	}
}

func TestFirstIncompleteStep(t *testing.T) {
	tests := []struct {
		name string
		snap *Snapshot
		want Step
	}{
		{"nil snapshot", nil, StepName},
		{"empty profile", &Snapshot{}, StepName},
		{"name only half", &Snapshot{FirstName: "A"}, StepName},
		{"name done", &Snapshot{FirstName: "A", LastName: "B"}, StepPhone},
		{"phone unverified", &Snapshot{FirstName: "A", LastName: "B", PhoneNumber: "+15551234567"}, StepPhoneVerify},
		{"all done", &Snapshot{FirstName: "A", LastName: "B", PhoneNumber: "+15551234567", PhoneVerified: true}, StepComplete},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FirstIncompleteStep(tt.snap))
		})
	}
}

// The returned step is itself incomplete unless it is the terminal step, in
// which case every sub-predicate holds.
func TestFirstIncompleteStepConsistent(t *testing.T) {
	snaps := []*Snapshot{
		nil,
		{},
		{FirstName: "A"},
		{FirstName: "A", LastName: "B"},
		{PhoneNumber: "+15551234567"},
		{PhoneVerified: true},
		{FirstName: "A", LastName: "B", PhoneNumber: "+15551234567"},
		{FirstName: "A", LastName: "B", PhoneNumber: "+15551234567", PhoneVerified: true},
	}

	for _, snap := range snaps {
		s := FirstIncompleteStep(snap)
		if s == StepComplete {
			assert.True(t, IsStepComplete(StepName, snap))
			assert.True(t, IsStepComplete(StepPhone, snap))
			assert.True(t, IsStepComplete(StepPhoneVerify, snap))
		} else {
			assert.False(t, IsStepComplete(s, snap))
		}
	}
}

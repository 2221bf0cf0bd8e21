package flow

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStartFullFlow(t *testing.T) {
	st := StartFullFlow()
	assert.Equal(t, StepName, st.Current)
	assert.True(t, st.FlowMode)
	assert.True(t, st.StartFromBeginning)
}

func TestStartFromIncomplete(t *testing.T) {
	st := StartFromIncomplete(&Snapshot{FirstName: "A", LastName: "B"})
	assert.Equal(t, StepPhone, st.Current)
	assert.True(t, st.FlowMode)
	assert.False(t, st.StartFromBeginning)

	st = StartFromIncomplete(nil)
	assert.Equal(t, StepName, st.Current)
}

func TestStartFromIncompleteFullyComplete(t *testing.T) {
	snap := &Snapshot{FirstName: "A", LastName: "B", PhoneNumber: "+15551234567", PhoneVerified: true}
	st := StartFromIncomplete(snap)
	assert.Equal(t, StepComplete, st.Current)
	assert.False(t, st.FlowMode, "a complete profile resumes into the summary view")
}

func TestNextWalksTheOrder(t *testing.T) {
	st := StartFullFlow()

	st = st.Next()
	assert.Equal(t, StepPhone, st.Current)
	assert.True(t, st.FlowMode)

	st = st.Next()
	assert.Equal(t, StepPhoneVerify, st.Current)
	assert.True(t, st.FlowMode)

	st = st.Next()
	assert.Equal(t, StepComplete, st.Current)
	assert.False(t, st.FlowMode, "reaching the terminal step exits guided mode")
}

func TestNextSaturatesAtTerminal(t *testing.T) {
	st := StartFullFlow().Next().Next().Next()
	require.Equal(t, StepComplete, st.Current)

	again := st.Next()
	assert.Equal(t, st, again, "Next at the terminal step is a no-op")
}

func TestPreviousSaturatesAtFirst(t *testing.T) {
	st := StartFullFlow()
	assert.Equal(t, st, st.Previous(), "Previous at the first step is a no-op")
}

func TestNextThenPreviousRestoresStep(t *testing.T) {
	for _, start := range []Step{StepName, StepPhone} {
		st := State{Current: start, FlowMode: true}
		roundTrip := st.Next().Previous()
		assert.Equal(t, start, roundTrip.Current, string(start))
	}
}

// Current == StepComplete implies FlowMode == false for every state produced
// by the navigator, regardless of the call sequence.
func TestTerminalStepNeverInFlowMode(t *testing.T) {
	states := []State{
		StartFullFlow(),
		StartFromIncomplete(nil),
		StartFromIncomplete(&Snapshot{FirstName: "A", LastName: "B", PhoneNumber: "+1", PhoneVerified: true}),
	}
	for _, st := range states {
		for i := 0; i < 6; i++ {
			if st.Current == StepComplete {
				assert.False(t, st.FlowMode)
			}
			st = st.Next()
		}
		st = st.ShowSummary()
		assert.Equal(t, StepComplete, st.Current)
		assert.False(t, st.FlowMode)
	}
}

func TestShowSummary(t *testing.T) {
	st := State{Current: StepPhone, FlowMode: true}.ShowSummary()
	assert.Equal(t, StepComplete, st.Current)
	assert.False(t, st.FlowMode)
	assert.True(t, st.StartFromBeginning)
}

func TestSkipToRefusedWithoutAllowSkip(t *testing.T) {
	st := StartFullFlow()
	jumped := st.SkipTo(StepPhoneVerify)
	assert.Equal(t, st, jumped, "non-adjacent forward jump is refused by default")
}

func TestSkipToAdjacentAndBackward(t *testing.T) {
	st := StartFullFlow()

	st = st.SkipTo(StepPhone)
	assert.Equal(t, StepPhone, st.Current)

	st = st.SkipTo(StepName)
	assert.Equal(t, StepName, st.Current)
	assert.True(t, st.FlowMode)
}

func TestSkipToWithAllowSkip(t *testing.T) {
	st := StartFullFlow()
	st.AllowSkip = true

	st = st.SkipTo(StepPhoneVerify)
	assert.Equal(t, StepPhoneVerify, st.Current)
	assert.True(t, st.FlowMode)

	st = st.SkipTo(StepComplete)
	assert.Equal(t, StepComplete, st.Current)
	assert.False(t, st.FlowMode)
}

func TestSkipToUnknownStep(t *testing.T) {
	st := StartFullFlow()
	assert.Equal(t, st, st.SkipTo(Step("BOGUS")))
}

package flow

// Step identifies one stage of the guided profile-setup flow.
type Step string

const (
	StepName        Step = "NAME"
	StepPhone       Step = "PHONE"
	StepPhoneVerify Step = "PHONE_VERIFY"
	StepComplete    Step = "COMPLETE"
)

// Order is the fixed traversal order. StepComplete is always last and is the
// only terminal step.
var Order = []Step{StepName, StepPhone, StepPhoneVerify, StepComplete}

// Index returns the position of s in the fixed order, or -1 for an unknown step.
func Index(s Step) int {
	for i, step := range Order {
		if step == s {
			return i
		}
	}
	return -1
}

// Valid reports whether s belongs to the closed step set.
func Valid(s Step) bool {
	return Index(s) >= 0
}

// Progress returns how far through the flow s is, as a percentage:
// 0 at StepName, 100 at StepComplete.
func Progress(s Step) int {
	idx := Index(s)
	if idx < 0 {
		return 0
	}
	return idx * 100 / (len(Order) - 1)
}

package flow

// State is the navigator's view of a guided flow: the active step, whether
// the user is stepping through guided mode or looking at the summary view,
// and how the flow was entered.
//
// Invariant: Current == StepComplete implies FlowMode == false. Every
// transition below preserves it.
//
// PendingSync and SyncError track the remote persistence slice separately
// from navigation: a step may advance before its profile update settles, and
// the reconciliation path records the outcome here.
type State struct {
	Current            Step   `json:"current_step"`
	FlowMode           bool   `json:"flow_mode"`
	StartFromBeginning bool   `json:"start_from_beginning"`
	AllowSkip          bool   `json:"allow_skip"`
	PendingSync        bool   `json:"pending_sync"`
	SyncError          string `json:"sync_error,omitempty"`
}

// StartFullFlow returns a fresh guided flow positioned at the first step.
func StartFullFlow() State {
	return State{Current: StepName, FlowMode: true, StartFromBeginning: true}
}

// StartFromIncomplete returns a guided flow resumed at the first step the
// snapshot has not satisfied. A fully complete profile resumes straight into
// the summary view.
func StartFromIncomplete(snap *Snapshot) State {
	s := State{Current: FirstIncompleteStep(snap), FlowMode: true}
	if s.Current == StepComplete {
		return s.ShowSummary()
	}
	return s
}

// Next advances to the successor step and saturates at the end: calling it on
// the terminal step is a no-op. Reaching the terminal step exits guided mode
// into the summary view.
func (s State) Next() State {
	idx := Index(s.Current)
	if idx < 0 || idx >= len(Order)-1 {
		return s
	}
	s.Current = Order[idx+1]
	if s.Current == StepComplete {
		return s.ShowSummary()
	}
	return s
}

// Previous moves back one step; no-op at the first step.
func (s State) Previous() State {
	idx := Index(s.Current)
	if idx <= 0 {
		return s
	}
	s.Current = Order[idx-1]
	return s
}

// SkipTo jumps directly to target. Unless AllowSkip is set, only backward
// moves and the immediate successor are honored; a refused jump returns the
// state unchanged. Jumping to the terminal step shows the summary.
func (s State) SkipTo(target Step) State {
	ti := Index(target)
	if ti < 0 {
		return s
	}
	if !s.AllowSkip && ti > Index(s.Current)+1 {
		return s
	}
	if target == StepComplete {
		return s.ShowSummary()
	}
	s.Current = target
	s.FlowMode = true
	return s
}

// ShowSummary unconditionally exits guided mode into the summary view.
func (s State) ShowSummary() State {
	s.Current = StepComplete
	s.FlowMode = false
	s.StartFromBeginning = true
	return s
}

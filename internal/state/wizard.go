package state

import (
	"time"

	"thermobot/internal/domain"
	"thermobot/internal/expiry"
)

// WizardMachine drives the three-step registration flow per chat:
// name → groups → position → completed. Every operation called in the wrong
// step returns a failure value instead of an error: duplicate taps and stale
// retries are normal traffic here.
type WizardMachine struct {
	states *expiry.Map[int64, *domain.WizardState]
	now    func() time.Time
}

// NewWizardMachine creates a machine with the given abandonment TTL
func NewWizardMachine(ttl time.Duration) *WizardMachine {
	return newWizardMachine(ttl, time.Now)
}

func newWizardMachine(ttl time.Duration, now func() time.Time) *WizardMachine {
	return &WizardMachine{
		states: expiry.NewWithClock[int64, *domain.WizardState](ttl, now),
		now:    now,
	}
}

// Start creates a wizard in the name step if absent or expired.
// Calling it again mid-flow is a no-op.
func (m *WizardMachine) Start(chatID int64) {
	if _, ok := m.states.Get(chatID); ok {
		return
	}
	m.states.Put(chatID, &domain.WizardState{
		ChatID:    chatID,
		Step:      domain.StepName,
		Groups:    make(map[string]struct{}),
		StartedAt: m.now(),
	})
}

// Get returns the wizard state of a chat, or nil if absent or expired
func (m *WizardMachine) Get(chatID int64) *domain.WizardState {
	st, ok := m.states.Get(chatID)
	if !ok {
		return nil
	}
	return st
}

// InProgress reports whether the chat has an active registration
func (m *WizardMachine) InProgress(chatID int64) bool {
	return m.Get(chatID) != nil
}

// Step returns the current step, or WizardStep("") when no wizard is active
func (m *WizardMachine) Step(chatID int64) domain.WizardStep {
	st := m.Get(chatID)
	if st == nil {
		return ""
	}
	return st.Step
}

// SubmitName stores an already-validated name and moves to group selection.
// The group set starts empty regardless of any earlier attempt.
func (m *WizardMachine) SubmitName(chatID int64, name string) bool {
	st := m.Get(chatID)
	if st == nil || st.Step != domain.StepName {
		return false
	}
	st.Name = name
	st.Groups = make(map[string]struct{})
	st.Step = domain.StepGroups
	m.states.Put(chatID, st)
	return true
}

// ToggleGroup flips membership of a group. The first return value tells
// whether the group is now selected; the second is false on a step mismatch.
func (m *WizardMachine) ToggleGroup(chatID int64, group string) (added bool, ok bool) {
	st := m.Get(chatID)
	if st == nil || st.Step != domain.StepGroups {
		return false, false
	}
	if _, selected := st.Groups[group]; selected {
		delete(st.Groups, group)
		added = false
	} else {
		st.Groups[group] = struct{}{}
		added = true
	}
	m.states.Put(chatID, st)
	return added, true
}

// FinishGroups moves to the position step. Fails without a transition when
// no group is selected or the step does not match.
func (m *WizardMachine) FinishGroups(chatID int64) bool {
	st := m.Get(chatID)
	if st == nil || st.Step != domain.StepGroups || len(st.Groups) == 0 {
		return false
	}
	st.Step = domain.StepPosition
	m.states.Put(chatID, st)
	return true
}

// SubmitPosition stores an already-validated position and completes the flow
func (m *WizardMachine) SubmitPosition(chatID int64, position string) bool {
	st := m.Get(chatID)
	if st == nil || st.Step != domain.StepPosition {
		return false
	}
	st.Position = position
	st.Step = domain.StepCompleted
	m.states.Put(chatID, st)
	return true
}

// ConsumeCompleted returns the collected registration data exactly once and
// deletes the state. Returns nil unless the wizard is in the completed step.
func (m *WizardMachine) ConsumeCompleted(chatID int64) *domain.RegistrationResult {
	st := m.Get(chatID)
	if st == nil || st.Step != domain.StepCompleted {
		return nil
	}
	m.states.Delete(chatID)
	return &domain.RegistrationResult{
		Name:     st.Name,
		Groups:   st.SelectedGroups(),
		Position: st.Position,
	}
}

// Reset abandons the registration of a chat from any step
func (m *WizardMachine) Reset(chatID int64) {
	m.states.Delete(chatID)
}

// SweepExpired evicts abandoned wizards and returns the removed count
func (m *WizardMachine) SweepExpired() int {
	return m.states.Sweep()
}

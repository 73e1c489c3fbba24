package domain

import "time"

// WizardStep is the current step of the registration wizard
type WizardStep string

const (
	StepName      WizardStep = "name"
	StepGroups    WizardStep = "groups"
	StepPosition  WizardStep = "position"
	StepCompleted WizardStep = "completed"
)

// WizardState holds the in-flight registration of one chat.
// Groups is meaningful from StepGroups on, Position from StepPosition on.
type WizardState struct {
	ChatID    int64
	Step      WizardStep
	Name      string
	Groups    map[string]struct{}
	Position  string
	StartedAt time.Time
}

// SelectedGroups returns the chosen groups as a sorted-insensitive slice copy
func (w *WizardState) SelectedGroups() []string {
	if w == nil || len(w.Groups) == 0 {
		return nil
	}
	out := make([]string, 0, len(w.Groups))
	for g := range w.Groups {
		out = append(out, g)
	}
	return out
}

// RegistrationResult is the consumed outcome of a completed wizard
type RegistrationResult struct {
	Name     string
	Groups   []string
	Position string
}

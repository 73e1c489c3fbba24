package state

import (
	"testing"
	"time"

	"thermobot/internal/domain"

	"github.com/stretchr/testify/assert"
)

func TestWizardMachine_StartIsIdempotent(t *testing.T) {
	machine := NewWizardMachine(time.Hour)

	machine.Start(1)
	assert.True(t, machine.SubmitName(1, "Пушкин Александр Сергеевич"))

	// A second Start mid-flow must not reset progress
	machine.Start(1)
	assert.Equal(t, domain.StepGroups, machine.Step(1))
}

func TestWizardMachine_StartAfterExpiry(t *testing.T) {
	clock := newFakeClock()
	machine := newWizardMachine(30*time.Minute, clock.Now)

	machine.Start(1)
	machine.SubmitName(1, "Пушкин Александр Сергеевич")

	clock.Advance(31 * time.Minute)
	assert.False(t, machine.InProgress(1))

	machine.Start(1)
	assert.Equal(t, domain.StepName, machine.Step(1))
}

func TestWizardMachine_SubmitName(t *testing.T) {
	machine := NewWizardMachine(time.Hour)

	// No wizard started yet
	assert.False(t, machine.SubmitName(1, "Пушкин Александр Сергеевич"))

	machine.Start(1)
	assert.True(t, machine.SubmitName(1, "Пушкин Александр Сергеевич"))

	st := machine.Get(1)
	assert.Equal(t, domain.StepGroups, st.Step)
	assert.Equal(t, "Пушкин Александр Сергеевич", st.Name)
	assert.Empty(t, st.Groups)

	// Wrong step now
	assert.False(t, machine.SubmitName(1, "Другое Имя Тут"))
}

func TestWizardMachine_ToggleGroup(t *testing.T) {
	machine := NewWizardMachine(time.Hour)
	machine.Start(1)

	// Outside the groups step: a state mismatch, not a panic or error
	_, ok := machine.ToggleGroup(1, "G1")
	assert.False(t, ok)

	machine.SubmitName(1, "Пушкин Александр Сергеевич")

	added, ok := machine.ToggleGroup(1, "G1")
	assert.True(t, ok)
	assert.True(t, added)

	// Toggling twice returns membership to its original state
	added, ok = machine.ToggleGroup(1, "G1")
	assert.True(t, ok)
	assert.False(t, added)
	assert.Empty(t, machine.Get(1).Groups)
}

func TestWizardMachine_FinishGroups(t *testing.T) {
	machine := NewWizardMachine(time.Hour)
	machine.Start(1)
	machine.SubmitName(1, "Пушкин Александр Сергеевич")

	// Empty selection fails without a transition
	assert.False(t, machine.FinishGroups(1))
	assert.Equal(t, domain.StepGroups, machine.Step(1))

	machine.ToggleGroup(1, "G1")
	machine.ToggleGroup(1, "G2")
	assert.True(t, machine.FinishGroups(1))
	assert.Equal(t, domain.StepPosition, machine.Step(1))

	// Stale retry of the finish button
	assert.False(t, machine.FinishGroups(1))
}

func TestWizardMachine_FullFlow(t *testing.T) {
	machine := NewWizardMachine(time.Hour)

	machine.Start(1)
	assert.True(t, machine.SubmitName(1, "Пушкин Александр Сергеевич"))
	added, ok := machine.ToggleGroup(1, "G1")
	assert.True(t, ok && added)
	assert.True(t, machine.FinishGroups(1))
	assert.True(t, machine.SubmitPosition(1, "Директор"))

	// Not completed for another chat
	assert.Nil(t, machine.ConsumeCompleted(2))

	result := machine.ConsumeCompleted(1)
	assert.NotNil(t, result)
	assert.Equal(t, "Пушкин Александр Сергеевич", result.Name)
	assert.Equal(t, []string{"G1"}, result.Groups)
	assert.Equal(t, "Директор", result.Position)

	// Consumed exactly once, no residual state
	assert.Nil(t, machine.ConsumeCompleted(1))
	assert.False(t, machine.InProgress(1))
}

func TestWizardMachine_SubmitPositionWrongStep(t *testing.T) {
	machine := NewWizardMachine(time.Hour)
	machine.Start(1)

	assert.False(t, machine.SubmitPosition(1, "Директор"))
	assert.Equal(t, domain.StepName, machine.Step(1))
}

func TestWizardMachine_Reset(t *testing.T) {
	machine := NewWizardMachine(time.Hour)
	machine.Start(1)
	machine.SubmitName(1, "Пушкин Александр Сергеевич")

	machine.Reset(1)
	assert.False(t, machine.InProgress(1))

	// Reset of an absent wizard is a no-op
	machine.Reset(2)
}

func TestWizardMachine_SweepExpired(t *testing.T) {
	clock := newFakeClock()
	machine := newWizardMachine(30*time.Minute, clock.Now)

	machine.Start(1)
	clock.Advance(time.Hour)
	machine.Start(2)

	assert.Equal(t, 1, machine.SweepExpired())
	assert.True(t, machine.InProgress(2))
}

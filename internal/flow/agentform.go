// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package flow

import (
	"errors"

	"github.com/jeranaias/agentdesk/internal/model"
	"github.com/jeranaias/agentdesk/internal/view"
)

// FormField identifies an input of the agent form.
type FormField int

const (
	FieldName FormField = iota
	FieldCategory
	FieldInstruction
	FieldAvatar
)

// fieldCount is the number of focusable fields.
const fieldCount = 4

// =============================================================================
// AGENT FORM
// =============================================================================

// AgentForm collects the fields of a new agent.
type AgentForm struct {
	store  AgentCreator
	notify Notifier

	state   ModalState
	spec    model.AgentSpec
	avatar  int
	focus   FormField
	created model.Agent
}

// NewAgentForm creates a closed form.
func NewAgentForm(store AgentCreator, notify Notifier) *AgentForm {
	return &AgentForm{store: store, notify: notify}
}

// State returns the form state.
func (f *AgentForm) State() ModalState { return f.state }

// IsOpen reports whether the form is showing.
func (f *AgentForm) IsOpen() bool { return f.state == ModalOpen }

// Open shows an empty form with the first avatar selected.
func (f *AgentForm) Open() {
	f.reset()
	f.state = ModalOpen
}

// Close dismisses the form and clears it.
func (f *AgentForm) Close() {
	f.reset()
	f.state = ModalClosed
}

func (f *AgentForm) reset() {
	f.spec = model.AgentSpec{}
	f.avatar = 0
	f.focus = FieldName
}

// Spec returns the values entered so far.
func (f *AgentForm) Spec() model.AgentSpec {
	spec := f.spec
	spec.Avatar = model.Avatars[f.avatar]
	return spec
}

// Focus returns the focused field.
func (f *AgentForm) Focus() FormField { return f.focus }

// NextField moves focus forward, wrapping around.
func (f *AgentForm) NextField() {
	f.focus = (f.focus + 1) % fieldCount
}

// PrevField moves focus backward, wrapping around.
func (f *AgentForm) PrevField() {
	f.focus = (f.focus + fieldCount - 1) % fieldCount
}

// SetName sets the agent name.
func (f *AgentForm) SetName(s string) { f.spec.Name = s }

// SetCategory sets the agent category.
func (f *AgentForm) SetCategory(s string) { f.spec.Category = s }

// SetInstruction sets the agent instruction.
func (f *AgentForm) SetInstruction(s string) { f.spec.Instruction = s }

// Avatar returns the selected avatar reference.
func (f *AgentForm) Avatar() string { return model.Avatars[f.avatar] }

// CycleAvatar moves the avatar selection by delta, wrapping around.
func (f *AgentForm) CycleAvatar(delta int) {
	n := len(model.Avatars)
	f.avatar = ((f.avatar+delta)%n + n) % n
}

// SelectAvatar picks an avatar by reference. Unknown references are
// ignored.
func (f *AgentForm) SelectAvatar(avatar string) {
	for i, a := range model.Avatars {
		if a == avatar {
			f.avatar = i
			return
		}
	}
}

// Created returns the agent made by the last successful Save.
func (f *AgentForm) Created() model.Agent { return f.created }

// Save creates the agent. A blank name keeps the form open.
func (f *AgentForm) Save() (model.Agent, error) {
	if f.state != ModalOpen {
		return model.Agent{}, ErrNotOpen
	}
	agent, err := f.store.CreateAgent(f.Spec())
	if err != nil {
		if errors.Is(err, model.ErrValidation) {
			f.notify.OnNotify("Please enter the agent name.", view.SeverityError)
		}
		return model.Agent{}, err
	}
	f.created = agent
	f.reset()
	f.state = ModalDone
	f.notify.OnNotify("Agent created successfully!", view.SeveritySuccess)
	return agent, nil
}

// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package flow

import (
	"github.com/jeranaias/agentdesk/internal/model"
	"github.com/jeranaias/agentdesk/internal/view"
)

// SwitchPhase is the state of the agent switch wizard.
type SwitchPhase int

const (
	SwitchClosed SwitchPhase = iota
	PhaseSelectTrigger
	PhaseSelectAgent
)

// String returns the phase name.
func (p SwitchPhase) String() string {
	switch p {
	case SwitchClosed:
		return "closed"
	case PhaseSelectTrigger:
		return "select-trigger"
	case PhaseSelectAgent:
		return "select-agent"
	default:
		return "unknown"
	}
}

// =============================================================================
// AGENT SWITCH WIZARD
// =============================================================================

// AgentSwitch is the two-phase wizard that changes the current agent. The
// first phase confirms the intent; the second lists agents with a search box
// and a category filter.
type AgentSwitch struct {
	store  AgentSwitcher
	notify Notifier

	phase    SwitchPhase
	query    string
	category string
	cursor   int
}

// NewAgentSwitch creates a closed wizard.
func NewAgentSwitch(store AgentSwitcher, notify Notifier) *AgentSwitch {
	return &AgentSwitch{store: store, notify: notify}
}

// Phase returns the current phase.
func (w *AgentSwitch) Phase() SwitchPhase { return w.phase }

// IsOpen reports whether the wizard is showing.
func (w *AgentSwitch) IsOpen() bool { return w.phase != SwitchClosed }

// Open shows the trigger phase with empty filters.
func (w *AgentSwitch) Open() {
	w.phase = PhaseSelectTrigger
	w.query = ""
	w.category = ""
	w.cursor = 0
}

// Advance moves from the trigger phase to the agent list.
func (w *AgentSwitch) Advance() error {
	if w.phase != PhaseSelectTrigger {
		return ErrNotOpen
	}
	w.phase = PhaseSelectAgent
	w.cursor = 0
	return nil
}

// Back returns from the agent list to the trigger phase.
func (w *AgentSwitch) Back() error {
	if w.phase != PhaseSelectAgent {
		return ErrNotOpen
	}
	w.phase = PhaseSelectTrigger
	return nil
}

// Cancel closes the wizard from any phase without changing anything.
func (w *AgentSwitch) Cancel() {
	w.phase = SwitchClosed
	w.query = ""
	w.category = ""
	w.cursor = 0
}

// Query returns the search text.
func (w *AgentSwitch) Query() string { return w.query }

// SetQuery replaces the search text.
func (w *AgentSwitch) SetQuery(q string) {
	w.query = q
	w.cursor = 0
}

// Category returns the category filter, empty for all.
func (w *AgentSwitch) Category() string { return w.category }

// SetCategory sets the exact category filter. Empty clears it.
func (w *AgentSwitch) SetCategory(c string) {
	w.category = c
	w.cursor = 0
}

// CycleCategory steps the category filter through "" and every category.
func (w *AgentSwitch) CycleCategory() {
	options := append([]string{""}, w.Categories()...)
	next := 0
	for i, c := range options {
		if c == w.category {
			next = (i + 1) % len(options)
			break
		}
	}
	w.SetCategory(options[next])
}

// Categories lists the categories available for filtering.
func (w *AgentSwitch) Categories() []string {
	return Categories(w.store.Agents())
}

// Results returns the filtered agents, current agent first, then by name.
func (w *AgentSwitch) Results() []model.Agent {
	agents := FilterAgents(w.store.Agents(), w.query, w.category)
	return SortAgents(agents, w.store.CurrentAgentID())
}

// Cursor returns the highlighted row.
func (w *AgentSwitch) Cursor() int { return w.cursor }

// MoveCursor moves the highlight by delta, clamped to the result list.
func (w *AgentSwitch) MoveCursor(delta int) {
	n := len(w.Results())
	if n == 0 {
		w.cursor = 0
		return
	}
	w.cursor += delta
	if w.cursor < 0 {
		w.cursor = 0
	}
	if w.cursor >= n {
		w.cursor = n - 1
	}
}

// Highlighted returns the agent under the cursor.
func (w *AgentSwitch) Highlighted() (model.Agent, bool) {
	results := w.Results()
	if w.cursor < 0 || w.cursor >= len(results) {
		return model.Agent{}, false
	}
	return results[w.cursor], true
}

// Select switches to agentID and closes the wizard. It is only valid in the
// agent phase; an unknown id leaves the wizard open.
func (w *AgentSwitch) Select(agentID string) error {
	if w.phase != PhaseSelectAgent {
		return ErrNotOpen
	}
	if err := w.store.SwitchAgent(agentID); err != nil {
		return err
	}
	name := agentID
	for _, a := range w.store.Agents() {
		if a.ID == agentID {
			name = a.Name
			break
		}
	}
	w.Cancel()
	w.notify.OnNotify("Agent switched to "+name, view.SeverityInfo)
	return nil
}

// SelectHighlighted selects the agent under the cursor.
func (w *AgentSwitch) SelectHighlighted() error {
	agent, ok := w.Highlighted()
	if !ok {
		return ErrNotOpen
	}
	return w.Select(agent.ID)
}

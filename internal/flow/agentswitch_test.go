// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package flow

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/agentdesk/internal/model"
	"github.com/jeranaias/agentdesk/internal/view"
)

func TestAgentSwitch_Phases(t *testing.T) {
	s, rec := newTestStore(t)
	w := NewAgentSwitch(s, rec)

	assert.False(t, w.IsOpen())
	assert.ErrorIs(t, w.Advance(), ErrNotOpen)

	w.Open()
	assert.Equal(t, PhaseSelectTrigger, w.Phase())
	assert.ErrorIs(t, w.Back(), ErrNotOpen)
	assert.ErrorIs(t, w.Select(model.SeedDeveloperAgentID), ErrNotOpen)

	require.NoError(t, w.Advance())
	assert.Equal(t, PhaseSelectAgent, w.Phase())

	require.NoError(t, w.Back())
	assert.Equal(t, PhaseSelectTrigger, w.Phase())

	w.Cancel()
	assert.Equal(t, SwitchClosed, w.Phase())
	assert.Equal(t, model.SeedGeneralAgentID, s.CurrentAgentID())
}

func TestAgentSwitch_SelectSwitchesAndCloses(t *testing.T) {
	s, rec := newTestStore(t)
	w := NewAgentSwitch(s, rec)

	w.Open()
	require.NoError(t, w.Advance())
	require.NoError(t, w.Select(model.SeedDeveloperAgentID))

	assert.False(t, w.IsOpen())
	assert.Equal(t, model.SeedDeveloperAgentID, s.CurrentAgentID())
	assert.Equal(t, model.SeedDeveloperAgentID, s.CurrentChat().AgentID)

	n, ok := rec.LastNotification()
	require.True(t, ok)
	assert.Equal(t, "Agent switched to Programador Sênior", n.Message)
	assert.Equal(t, view.SeverityInfo, n.Severity)
}

func TestAgentSwitch_UnknownAgentStaysOpen(t *testing.T) {
	s, rec := newTestStore(t)
	w := NewAgentSwitch(s, rec)

	w.Open()
	require.NoError(t, w.Advance())
	err := w.Select("missing")
	assert.ErrorIs(t, err, model.ErrNotFound)
	assert.Equal(t, PhaseSelectAgent, w.Phase())
	assert.Equal(t, model.SeedGeneralAgentID, s.CurrentAgentID())
}

func TestAgentSwitch_ResultsAndFilters(t *testing.T) {
	s, rec := newTestStore(t)
	w := NewAgentSwitch(s, rec)
	w.Open()
	require.NoError(t, w.Advance())

	assert.Equal(t, []string{
		"Assistente Geral",
		"Especialista em Marketing",
		"Programador Sênior",
	}, agentNames(w.Results()))

	w.SetQuery("sênior")
	assert.Equal(t, []string{"Programador Sênior"}, agentNames(w.Results()))

	w.SetQuery("")
	assert.Equal(t, []string{"desenvolvimento", "marketing"}, w.Categories())

	w.CycleCategory()
	assert.Equal(t, "desenvolvimento", w.Category())
	w.CycleCategory()
	assert.Equal(t, "marketing", w.Category())
	assert.Equal(t, []string{"Especialista em Marketing"}, agentNames(w.Results()))
	w.CycleCategory()
	assert.Equal(t, "", w.Category())
}

func TestAgentSwitch_Cursor(t *testing.T) {
	s, rec := newTestStore(t)
	w := NewAgentSwitch(s, rec)
	w.Open()
	require.NoError(t, w.Advance())

	w.MoveCursor(-1)
	assert.Equal(t, 0, w.Cursor())
	w.MoveCursor(10)
	assert.Equal(t, 2, w.Cursor())

	agent, ok := w.Highlighted()
	require.True(t, ok)
	assert.Equal(t, "Programador Sênior", agent.Name)

	require.NoError(t, w.SelectHighlighted())
	assert.Equal(t, model.SeedDeveloperAgentID, s.CurrentAgentID())
}

func TestAgentSwitch_EmptyResults(t *testing.T) {
	s, rec := newTestStore(t)
	w := NewAgentSwitch(s, rec)
	w.Open()
	require.NoError(t, w.Advance())

	w.SetQuery("nobody")
	assert.Empty(t, w.Results())
	_, ok := w.Highlighted()
	assert.False(t, ok)
	assert.ErrorIs(t, w.SelectHighlighted(), ErrNotOpen)
}

func TestAgentSwitch_OpenResetsFilters(t *testing.T) {
	s, rec := newTestStore(t)
	w := NewAgentSwitch(s, rec)
	w.Open()
	w.SetQuery("x")
	w.SetCategory("marketing")
	w.Cancel()

	w.Open()
	assert.Empty(t, w.Query())
	assert.Empty(t, w.Category())
}

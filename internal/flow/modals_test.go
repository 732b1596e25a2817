// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package flow

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/agentdesk/internal/model"
	"github.com/jeranaias/agentdesk/internal/view"
)

// =============================================================================
// RENAME
// =============================================================================

func TestRenameModal_Save(t *testing.T) {
	s, rec := newTestStore(t)
	r := NewRenameModal(s, rec)

	require.NoError(t, r.Open(model.SeedChatID))
	assert.Equal(t, ModalOpen, r.State())
	assert.Equal(t, s.CurrentChat().Title, r.Input())

	r.SetInput("  Quarterly plan  ")
	require.NoError(t, r.Save())
	assert.Equal(t, ModalDone, r.State())

	chat, err := s.Chat(model.SeedChatID)
	require.NoError(t, err)
	assert.Equal(t, "Quarterly plan", chat.Title)

	n, ok := rec.LastNotification()
	require.True(t, ok)
	assert.Equal(t, "Conversation renamed successfully!", n.Message)
	assert.Equal(t, view.SeveritySuccess, n.Severity)
}

func TestRenameModal_BlankShakes(t *testing.T) {
	s, rec := newTestStore(t)
	r := NewRenameModal(s, rec)
	require.NoError(t, r.Open(model.SeedChatID))
	before := s.CurrentChat().Title

	r.SetInput("   ")
	err := r.Save()
	assert.ErrorIs(t, err, model.ErrValidation)
	assert.True(t, r.Shake())
	assert.True(t, r.IsOpen())
	assert.Equal(t, before, s.CurrentChat().Title)

	n, ok := rec.LastNotification()
	require.True(t, ok)
	assert.Equal(t, "Please enter a name for the conversation.", n.Message)
	assert.Equal(t, view.SeverityError, n.Severity)

	r.SetInput("ok")
	assert.False(t, r.Shake())
}

func TestRenameModal_CounterAndLimit(t *testing.T) {
	s, rec := newTestStore(t)
	r := NewRenameModal(s, rec)
	require.NoError(t, r.Open(model.SeedChatID))

	r.SetInput(strings.Repeat("a", 39))
	assert.Equal(t, MarkerNormal, r.Marker())
	r.SetInput(strings.Repeat("a", 40))
	assert.Equal(t, MarkerWarn, r.Marker())
	r.SetInput(strings.Repeat("a", 45))
	assert.Equal(t, MarkerDanger, r.Marker())

	r.SetInput(strings.Repeat("é", 80))
	assert.Equal(t, model.MaxTitleLength, r.CharCount())
}

func TestRenameModal_OpenUnknown(t *testing.T) {
	s, rec := newTestStore(t)
	r := NewRenameModal(s, rec)
	assert.ErrorIs(t, r.Open("missing"), model.ErrNotFound)
	assert.Equal(t, ModalClosed, r.State())
	assert.ErrorIs(t, r.Save(), ErrNotOpen)
}

func TestRenameModal_CloseDiscards(t *testing.T) {
	s, rec := newTestStore(t)
	r := NewRenameModal(s, rec)
	require.NoError(t, r.Open(model.SeedChatID))
	r.SetInput("draft")
	r.Close()

	assert.Equal(t, ModalClosed, r.State())
	assert.Empty(t, r.Input())
	assert.NotEqual(t, "draft", s.CurrentChat().Title)
}

// =============================================================================
// DELETE
// =============================================================================

func TestDeleteModal_Confirm(t *testing.T) {
	s, rec := newTestStore(t)
	chat, err := s.CreateChat("")
	require.NoError(t, err)

	d := NewDeleteModal(s, rec)
	require.NoError(t, d.Open(chat.ID))
	assert.Equal(t, chat.GetTitle(), d.Title())

	require.NoError(t, d.Confirm())
	assert.Equal(t, ModalDone, d.State())
	_, err = s.Chat(chat.ID)
	assert.ErrorIs(t, err, model.ErrNotFound)

	n, ok := rec.LastNotification()
	require.True(t, ok)
	assert.Equal(t, "Conversation permanently deleted!", n.Message)
	assert.Equal(t, view.SeverityInfo, n.Severity)
}

func TestDeleteModal_CancelKeepsChat(t *testing.T) {
	s, rec := newTestStore(t)
	d := NewDeleteModal(s, rec)
	require.NoError(t, d.Open(model.SeedChatID))
	d.Close()

	assert.ErrorIs(t, d.Confirm(), ErrNotOpen)
	_, err := s.Chat(model.SeedChatID)
	assert.NoError(t, err)
}

func TestDeleteModal_LastChatIsReplaced(t *testing.T) {
	s, rec := newTestStore(t)
	d := NewDeleteModal(s, rec)
	require.NoError(t, d.Open(model.SeedChatID))
	require.NoError(t, d.Confirm())

	chats := s.Chats()
	require.Len(t, chats, 1)
	assert.NotEqual(t, model.SeedChatID, chats[0].ID)
}

// =============================================================================
// AGENT FORM
// =============================================================================

func TestAgentForm_Save(t *testing.T) {
	s, rec := newTestStore(t)
	f := NewAgentForm(s, rec)

	_, err := f.Save()
	assert.ErrorIs(t, err, ErrNotOpen)

	f.Open()
	assert.Equal(t, model.Avatars[0], f.Avatar())
	f.SetName("Tutor")
	f.SetCategory("education")
	f.SetInstruction("Teach patiently.")
	f.SelectAvatar("fa-graduation-cap")

	agent, err := f.Save()
	require.NoError(t, err)
	assert.Equal(t, ModalDone, f.State())
	assert.Equal(t, "Tutor", agent.Name)
	assert.Equal(t, "fa-graduation-cap", agent.Avatar)
	assert.Equal(t, agent, f.Created())
	assert.Empty(t, f.Spec().Name)

	got, ok := s.Agent(agent.ID)
	require.True(t, ok)
	assert.Equal(t, "education", got.Category)

	n, ok := rec.LastNotification()
	require.True(t, ok)
	assert.Equal(t, "Agent created successfully!", n.Message)
	assert.Equal(t, view.SeveritySuccess, n.Severity)
}

func TestAgentForm_BlankName(t *testing.T) {
	s, rec := newTestStore(t)
	f := NewAgentForm(s, rec)
	f.Open()
	f.SetName("  ")
	f.SetInstruction("kept")

	_, err := f.Save()
	assert.ErrorIs(t, err, model.ErrValidation)
	assert.True(t, f.IsOpen())
	assert.Equal(t, "kept", f.Spec().Instruction)
	assert.Len(t, s.Agents(), 3)

	n, ok := rec.LastNotification()
	require.True(t, ok)
	assert.Equal(t, "Please enter the agent name.", n.Message)
	assert.Equal(t, view.SeverityError, n.Severity)
}

func TestAgentForm_FocusAndAvatarCycle(t *testing.T) {
	s, rec := newTestStore(t)
	f := NewAgentForm(s, rec)
	f.Open()

	assert.Equal(t, FieldName, f.Focus())
	f.PrevField()
	assert.Equal(t, FieldAvatar, f.Focus())
	f.NextField()
	f.NextField()
	assert.Equal(t, FieldCategory, f.Focus())

	f.CycleAvatar(-1)
	assert.Equal(t, model.Avatars[len(model.Avatars)-1], f.Avatar())
	f.CycleAvatar(1)
	assert.Equal(t, model.Avatars[0], f.Avatar())

	f.SelectAvatar("not-an-avatar")
	assert.Equal(t, model.Avatars[0], f.Avatar())
}

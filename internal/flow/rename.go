// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package flow

import (
	"errors"

	"github.com/jeranaias/agentdesk/internal/model"
	"github.com/jeranaias/agentdesk/internal/util"
	"github.com/jeranaias/agentdesk/internal/view"
)

// ModalState is the state shared by the rename, delete and agent form
// modals.
type ModalState int

const (
	ModalClosed ModalState = iota
	ModalOpen
	// ModalDone means the modal's action succeeded (saved or confirmed).
	ModalDone
)

// String returns the state name.
func (s ModalState) String() string {
	switch s {
	case ModalClosed:
		return "closed"
	case ModalOpen:
		return "open"
	case ModalDone:
		return "done"
	default:
		return "unknown"
	}
}

// CounterMarker is the visual state of a character counter.
type CounterMarker int

const (
	MarkerNormal CounterMarker = iota
	MarkerWarn
	MarkerDanger
)

// =============================================================================
// RENAME MODAL
// =============================================================================

// RenameModal edits a chat title.
type RenameModal struct {
	store  ChatRenamer
	notify Notifier

	state  ModalState
	chatID string
	input  string
	shake  bool
}

// NewRenameModal creates a closed modal.
func NewRenameModal(store ChatRenamer, notify Notifier) *RenameModal {
	return &RenameModal{store: store, notify: notify}
}

// State returns the modal state.
func (r *RenameModal) State() ModalState { return r.state }

// IsOpen reports whether the modal is showing.
func (r *RenameModal) IsOpen() bool { return r.state == ModalOpen }

// ChatID returns the chat being renamed.
func (r *RenameModal) ChatID() string { return r.chatID }

// Open starts editing chatID with its current title.
func (r *RenameModal) Open(chatID string) error {
	chat, err := r.store.Chat(chatID)
	if err != nil {
		return err
	}
	r.state = ModalOpen
	r.chatID = chatID
	r.input = util.ClampRunes(chat.Title, model.MaxTitleLength)
	r.shake = false
	return nil
}

// Input returns the edited title.
func (r *RenameModal) Input() string { return r.input }

// SetInput replaces the edited title, cut to the maximum title length.
func (r *RenameModal) SetInput(s string) {
	r.input = util.ClampRunes(s, model.MaxTitleLength)
	r.shake = false
}

// CharCount returns the number of characters typed.
func (r *RenameModal) CharCount() int { return util.RuneLen(r.input) }

// Marker returns the counter state for the current input.
func (r *RenameModal) Marker() CounterMarker {
	switch n := r.CharCount(); {
	case n >= model.TitleDangerLength:
		return MarkerDanger
	case n >= model.TitleWarnLength:
		return MarkerWarn
	default:
		return MarkerNormal
	}
}

// Shake reports whether the last save was rejected.
func (r *RenameModal) Shake() bool { return r.shake }

// Save renames the chat. A blank title keeps the modal open with the shake
// flag set.
func (r *RenameModal) Save() error {
	if r.state != ModalOpen {
		return ErrNotOpen
	}
	if err := r.store.RenameChat(r.chatID, r.input); err != nil {
		if errors.Is(err, model.ErrValidation) {
			r.shake = true
			r.notify.OnNotify("Please enter a name for the conversation.", view.SeverityError)
		}
		return err
	}
	r.state = ModalDone
	r.shake = false
	r.notify.OnNotify("Conversation renamed successfully!", view.SeveritySuccess)
	return nil
}

// Close dismisses the modal without saving.
func (r *RenameModal) Close() {
	r.state = ModalClosed
	r.chatID = ""
	r.input = ""
	r.shake = false
}

// =============================================================================
// DELETE MODAL
// =============================================================================

// DeleteModal confirms the permanent deletion of a chat.
type DeleteModal struct {
	store  ChatDeleter
	notify Notifier

	state  ModalState
	chatID string
	title  string
}

// NewDeleteModal creates a closed modal.
func NewDeleteModal(store ChatDeleter, notify Notifier) *DeleteModal {
	return &DeleteModal{store: store, notify: notify}
}

// State returns the modal state.
func (d *DeleteModal) State() ModalState { return d.state }

// IsOpen reports whether the modal is showing.
func (d *DeleteModal) IsOpen() bool { return d.state == ModalOpen }

// ChatID returns the chat pending deletion.
func (d *DeleteModal) ChatID() string { return d.chatID }

// Title returns the title of the chat pending deletion.
func (d *DeleteModal) Title() string { return d.title }

// Open asks to delete chatID.
func (d *DeleteModal) Open(chatID string) error {
	chat, err := d.store.Chat(chatID)
	if err != nil {
		return err
	}
	d.state = ModalOpen
	d.chatID = chatID
	d.title = chat.GetTitle()
	return nil
}

// Confirm deletes the chat.
func (d *DeleteModal) Confirm() error {
	if d.state != ModalOpen {
		return ErrNotOpen
	}
	if err := d.store.DeleteChat(d.chatID); err != nil {
		return err
	}
	d.state = ModalDone
	d.notify.OnNotify("Conversation permanently deleted!", view.SeverityInfo)
	return nil
}

// Close dismisses the modal without deleting.
func (d *DeleteModal) Close() {
	d.state = ModalClosed
	d.chatID = ""
	d.title = ""
}

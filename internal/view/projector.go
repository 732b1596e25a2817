// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package view

import (
	"sync"

	"github.com/jeranaias/agentdesk/internal/model"
)

// Severity classifies a user-facing notification.
type Severity string

const (
	SeveritySuccess Severity = "success"
	SeverityError   Severity = "error"
	SeverityInfo    Severity = "info"
)

// Projector receives every state change the core makes.
type Projector interface {
	// OnAgentsChanged is called with the full agent list after it changes.
	OnAgentsChanged(agents []model.Agent)

	// OnChatsChanged is called with all chats, most recent first, after the
	// collection or any title changes.
	OnChatsChanged(chats []model.Chat)

	// OnCurrentChatChanged is called with the full current chat whenever the
	// selection changes or its message list is rewritten.
	OnCurrentChatChanged(chat model.Chat)

	// OnMessageAppended is called after a message is appended to chatID.
	OnMessageAppended(chatID string, msg model.Message)

	// OnGenerationStateChanged is called when a response starts or ends.
	OnGenerationStateChanged(generating bool)

	// OnNotify shows a transient notification.
	OnNotify(message string, severity Severity)
}

// =============================================================================
// NOP
// =============================================================================

// Nop discards every event.
type Nop struct{}

func (Nop) OnAgentsChanged([]model.Agent)           {}
func (Nop) OnChatsChanged([]model.Chat)             {}
func (Nop) OnCurrentChatChanged(model.Chat)         {}
func (Nop) OnMessageAppended(string, model.Message) {}
func (Nop) OnGenerationStateChanged(bool)           {}
func (Nop) OnNotify(string, Severity)               {}

// =============================================================================
// FANOUT
// =============================================================================

// Fanout forwards every event to each projector in order.
type Fanout []Projector

func (f Fanout) OnAgentsChanged(agents []model.Agent) {
	for _, p := range f {
		p.OnAgentsChanged(agents)
	}
}

func (f Fanout) OnChatsChanged(chats []model.Chat) {
	for _, p := range f {
		p.OnChatsChanged(chats)
	}
}

func (f Fanout) OnCurrentChatChanged(chat model.Chat) {
	for _, p := range f {
		p.OnCurrentChatChanged(chat)
	}
}

func (f Fanout) OnMessageAppended(chatID string, msg model.Message) {
	for _, p := range f {
		p.OnMessageAppended(chatID, msg)
	}
}

func (f Fanout) OnGenerationStateChanged(generating bool) {
	for _, p := range f {
		p.OnGenerationStateChanged(generating)
	}
}

func (f Fanout) OnNotify(message string, severity Severity) {
	for _, p := range f {
		p.OnNotify(message, severity)
	}
}

// =============================================================================
// SWAPPABLE
// =============================================================================

// Swappable forwards to a projector that can be replaced at runtime. The
// TUI needs this because the Bubble Tea program only exists after the core
// has been initialized.
type Swappable struct {
	mu     sync.RWMutex
	target Projector
}

// NewSwappable starts out forwarding to Nop.
func NewSwappable() *Swappable {
	return &Swappable{target: Nop{}}
}

// Set replaces the target. nil restores Nop.
func (s *Swappable) Set(p Projector) {
	if p == nil {
		p = Nop{}
	}
	s.mu.Lock()
	s.target = p
	s.mu.Unlock()
}

func (s *Swappable) get() Projector {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.target
}

func (s *Swappable) OnAgentsChanged(agents []model.Agent)     { s.get().OnAgentsChanged(agents) }
func (s *Swappable) OnChatsChanged(chats []model.Chat)        { s.get().OnChatsChanged(chats) }
func (s *Swappable) OnCurrentChatChanged(chat model.Chat)     { s.get().OnCurrentChatChanged(chat) }
func (s *Swappable) OnGenerationStateChanged(generating bool) { s.get().OnGenerationStateChanged(generating) }
func (s *Swappable) OnNotify(message string, severity Severity) {
	s.get().OnNotify(message, severity)
}
func (s *Swappable) OnMessageAppended(chatID string, msg model.Message) {
	s.get().OnMessageAppended(chatID, msg)
}

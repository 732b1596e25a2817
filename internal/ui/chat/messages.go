// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"github.com/jeranaias/agentdesk/internal/model"
	"github.com/jeranaias/agentdesk/internal/ui/styles"
	"github.com/jeranaias/agentdesk/internal/view"
)

// =============================================================================
// PROJECTOR MESSAGES
// =============================================================================
// These carry core events into the Bubble Tea loop. They are produced by
// Projector and consumed by Model.Update.

// AgentsChangedMsg carries the full agent collection.
type AgentsChangedMsg struct {
	Agents []model.Agent
}

// ChatsChangedMsg carries the full chat collection, most recent first.
type ChatsChangedMsg struct {
	Chats []model.Chat
}

// CurrentChatMsg carries the newly selected chat with all its messages.
type CurrentChatMsg struct {
	Chat model.Chat
}

// MessageAppendedMsg carries a message appended to a chat.
type MessageAppendedMsg struct {
	ChatID  string
	Message model.Message
}

// GenerationMsg reports a change of the generating flag.
type GenerationMsg struct {
	Generating bool
}

// NotifyMsg is a transient notification.
type NotifyMsg struct {
	Message  string
	Severity view.Severity
}

// =============================================================================
// UI MESSAGES
// =============================================================================

// ThemeMsg replaces the theme, for example after the config file changed.
type ThemeMsg struct {
	Mode styles.Mode
}

// modelsRefreshedMsg ends a background model status refresh.
type modelsRefreshedMsg struct {
	err error
}

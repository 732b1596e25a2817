// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package flow

import (
	"errors"

	"github.com/jeranaias/agentdesk/internal/model"
	"github.com/jeranaias/agentdesk/internal/view"
)

// ErrNotOpen is returned when an action needs a machine to be open, or in a
// specific phase, and it is not.
var ErrNotOpen = errors.New("flow: not in a state that accepts this action")

// Notifier shows transient notifications. view.Projector satisfies it.
type Notifier interface {
	OnNotify(message string, severity view.Severity)
}

// AgentSwitcher is the part of the domain store the agent switch wizard uses.
type AgentSwitcher interface {
	Agents() []model.Agent
	CurrentAgentID() string
	SwitchAgent(agentID string) error
}

// ChatRenamer is the part of the domain store the rename modal uses.
type ChatRenamer interface {
	Chat(id string) (model.Chat, error)
	RenameChat(id, title string) error
}

// ChatDeleter is the part of the domain store the delete modal uses.
type ChatDeleter interface {
	Chat(id string) (model.Chat, error)
	DeleteChat(id string) error
}

// AgentCreator is the part of the domain store the agent form uses.
type AgentCreator interface {
	CreateAgent(spec model.AgentSpec) (model.Agent, error)
}

// PreferenceStore persists scalar preferences. storage.Store satisfies it.
type PreferenceStore interface {
	SavePreference(key, value string) error
}

// ModelListener is told about model changes. conversation.Engine satisfies
// it.
type ModelListener interface {
	SetModel(id string)
}

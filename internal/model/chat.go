// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

import "time"

const (
	// DefaultChatTitle is the title of a freshly created chat.
	DefaultChatTitle = "New conversation"

	// MaxTitleLength bounds titles entered through the rename flow.
	MaxTitleLength = 50

	// TitleWarnLength and TitleDangerLength are the visual markers shown
	// while editing a title.
	TitleWarnLength   = 40
	TitleDangerLength = 45
)

// =============================================================================
// CHAT TYPE
// =============================================================================

// Chat is an ordered message log bound to an agent. AgentID is a weak
// reference: the agent may be missing after a partial restore.
type Chat struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	AgentID   string    `json:"agentId"`
	Messages  []Message `json:"messages"`
	CreatedAt time.Time `json:"createdAt"`
}

// NewChat creates an empty chat bound to agentID with the default title.
func NewChat(agentID string) Chat {
	return Chat{
		ID:        NewChatID(),
		Title:     DefaultChatTitle,
		AgentID:   agentID,
		Messages:  make([]Message, 0),
		CreatedAt: time.Now(),
	}
}

// Append adds a message to the end of the log.
func (c *Chat) Append(msg Message) {
	c.Messages = append(c.Messages, msg)
}

// RemoveAt removes the message at index. Out of range indices are ignored.
func (c *Chat) RemoveAt(index int) bool {
	if index < 0 || index >= len(c.Messages) {
		return false
	}
	c.Messages = append(c.Messages[:index:index], c.Messages[index+1:]...)
	return true
}

// HasUserMessage reports whether the user has sent anything in this chat.
func (c Chat) HasUserMessage() bool {
	for _, m := range c.Messages {
		if m.Role == RoleUser {
			return true
		}
	}
	return false
}

// LastMessage returns the newest message, if any.
func (c Chat) LastMessage() (Message, bool) {
	if len(c.Messages) == 0 {
		return Message{}, false
	}
	return c.Messages[len(c.Messages)-1], true
}

// LastAssistantIndex returns the index of the newest assistant message or -1.
func (c Chat) LastAssistantIndex() int {
	for i := len(c.Messages) - 1; i >= 0; i-- {
		if c.Messages[i].Role == RoleAssistant {
			return i
		}
	}
	return -1
}

// GetTitle returns the title or the default when blank.
func (c Chat) GetTitle() string {
	if c.Title != "" {
		return c.Title
	}
	return DefaultChatTitle
}

// Preview returns a one-line summary used in chat lists.
func (c Chat) Preview(maxLen int) string {
	last, ok := c.LastMessage()
	if !ok {
		return "Empty conversation"
	}
	return last.Preview(maxLen)
}

// Clone returns a deep copy of the chat.
func (c Chat) Clone() Chat {
	out := c
	out.Messages = make([]Message, len(c.Messages))
	copy(out.Messages, c.Messages)
	return out
}

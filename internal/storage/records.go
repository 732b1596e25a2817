// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package storage

import (
	"errors"
	"fmt"
	"time"

	"github.com/jeranaias/agentdesk/internal/model"
)

// =============================================================================
// RECORD TYPES
// =============================================================================

// chatRecord is the persisted shape of a chat.
type chatRecord struct {
	ID        string          `json:"id"`
	Title     string          `json:"title"`
	AgentID   string          `json:"agentId"`
	Messages  []messageRecord `json:"messages"`
	CreatedAt string          `json:"createdAt,omitempty"`
}

// messageRecord is the persisted shape of a message.
type messageRecord struct {
	ID        string `json:"id"`
	Role      string `json:"role"`
	Content   string `json:"content"`
	Timestamp string `json:"timestamp"`
}

// agentRecord is the persisted shape of an agent. A null category means
// the general category.
type agentRecord struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Avatar      string  `json:"avatar"`
	Category    *string `json:"category"`
	Instruction string  `json:"instruction"`
}

// =============================================================================
// ENCODING
// =============================================================================

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(time.RFC3339Nano)
}

func parseTime(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	return time.Parse(time.RFC3339Nano, s)
}

func chatToRecord(c model.Chat) chatRecord {
	rec := chatRecord{
		ID:        c.ID,
		Title:     c.Title,
		AgentID:   c.AgentID,
		Messages:  make([]messageRecord, 0, len(c.Messages)),
		CreatedAt: formatTime(c.CreatedAt),
	}
	for _, m := range c.Messages {
		rec.Messages = append(rec.Messages, messageRecord{
			ID:        m.ID,
			Role:      string(m.Role),
			Content:   m.Content,
			Timestamp: formatTime(m.Timestamp),
		})
	}
	return rec
}

func agentToRecord(a model.Agent) agentRecord {
	rec := agentRecord{
		ID:          a.ID,
		Name:        a.Name,
		Avatar:      a.Avatar,
		Instruction: a.Instruction,
	}
	if a.Category != "" {
		category := a.Category
		rec.Category = &category
	}
	return rec
}

// =============================================================================
// DECODING
// =============================================================================

var errMissingID = errors.New("missing id")

// parseRole accepts the legacy "ai" spelling for assistant messages.
func parseRole(s string) (model.Role, error) {
	switch s {
	case "user":
		return model.RoleUser, nil
	case "assistant", "ai":
		return model.RoleAssistant, nil
	default:
		return "", fmt.Errorf("unknown role %q", s)
	}
}

func (r chatRecord) toChat() (model.Chat, error) {
	if r.ID == "" {
		return model.Chat{}, errMissingID
	}
	created, err := parseTime(r.CreatedAt)
	if err != nil {
		return model.Chat{}, fmt.Errorf("chat %s: createdAt: %w", r.ID, err)
	}
	chat := model.Chat{
		ID:        r.ID,
		Title:     r.Title,
		AgentID:   r.AgentID,
		Messages:  make([]model.Message, 0, len(r.Messages)),
		CreatedAt: created,
	}
	if chat.Title == "" {
		chat.Title = model.DefaultChatTitle
	}
	for i, m := range r.Messages {
		role, err := parseRole(m.Role)
		if err != nil {
			return model.Chat{}, fmt.Errorf("chat %s: message %d: %w", r.ID, i, err)
		}
		ts, err := parseTime(m.Timestamp)
		if err != nil {
			return model.Chat{}, fmt.Errorf("chat %s: message %d: timestamp: %w", r.ID, i, err)
		}
		chat.Messages = append(chat.Messages, model.Message{
			ID:        m.ID,
			Role:      role,
			Content:   m.Content,
			Timestamp: ts,
		})
	}
	return chat, nil
}

func (r agentRecord) toAgent() (model.Agent, error) {
	if r.ID == "" {
		return model.Agent{}, errMissingID
	}
	if r.Name == "" {
		return model.Agent{}, fmt.Errorf("agent %s: empty name", r.ID)
	}
	agent := model.Agent{
		ID:          r.ID,
		Name:        r.Name,
		Avatar:      r.Avatar,
		Instruction: r.Instruction,
	}
	if r.Category != nil {
		agent.Category = *r.Category
	}
	if agent.Avatar == "" {
		agent.Avatar = model.Avatars[0]
	}
	if agent.Instruction == "" {
		agent.Instruction = model.DefaultInstruction
	}
	return agent, nil
}

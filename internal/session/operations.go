// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package session

import (
	"strings"

	"go.uber.org/zap"

	"github.com/jeranaias/agentdesk/internal/model"
)

// =============================================================================
// AGENT OPERATIONS
// =============================================================================

// CreateAgent adds a new agent. The name must be non-blank; the avatar and
// instruction fall back to their defaults.
func (s *Store) CreateAgent(spec model.AgentSpec) (model.Agent, error) {
	if err := spec.Validate(); err != nil {
		return model.Agent{}, err
	}
	spec = spec.Normalize()

	s.mu.Lock()
	var evs events

	agent := model.Agent{
		ID:          model.NewAgentID(),
		Name:        spec.Name,
		Avatar:      spec.Avatar,
		Category:    spec.Category,
		Instruction: spec.Instruction,
	}
	for s.agentIndexLocked(agent.ID) >= 0 {
		agent.ID = model.NewAgentID()
	}
	s.agents = append(s.agents, agent)
	s.saveAgentsLocked(&evs)

	s.log.Info("agent created", zap.String("agent_id", agent.ID), zap.String("name", agent.Name))
	evs.agents(s)
	s.mu.Unlock()

	s.emit(evs)
	return agent, nil
}

// SwitchAgent makes agentID current and rebinds the current chat to it.
// The current chat does not change.
func (s *Store) SwitchAgent(agentID string) error {
	s.mu.Lock()
	var evs events

	if s.agentIndexLocked(agentID) < 0 {
		s.mu.Unlock()
		return &model.NotFoundError{Kind: "agent", ID: agentID}
	}

	s.currentAgentID = agentID
	if i := s.chatIndexLocked(s.currentChatID); i >= 0 && s.chats[i].AgentID != agentID {
		s.chats[i].AgentID = agentID
		s.saveChatsLocked(&evs)
	}

	s.log.Info("agent switched", zap.String("agent_id", agentID), zap.String("chat_id", s.currentChatID))
	evs.chats(s)
	evs.current(s)
	s.mu.Unlock()

	s.emit(evs)
	return nil
}

// =============================================================================
// CHAT OPERATIONS
// =============================================================================

// CreateChat creates an empty chat bound to agentID, or to the current agent
// when agentID is empty, and makes it current.
func (s *Store) CreateChat(agentID string) (model.Chat, error) {
	s.mu.Lock()
	var evs events

	chat, err := s.createChatLocked(agentID, &evs)
	if err != nil {
		s.mu.Unlock()
		return model.Chat{}, err
	}

	evs.chats(s)
	evs.current(s)
	s.mu.Unlock()

	s.emit(evs)
	return chat, nil
}

func (s *Store) createChatLocked(agentID string, evs *events) (model.Chat, error) {
	if agentID == "" {
		agentID = s.currentAgentLocked().ID
	}
	if s.agentIndexLocked(agentID) < 0 {
		return model.Chat{}, &model.NotFoundError{Kind: "agent", ID: agentID}
	}

	chat := model.NewChat(agentID)
	chat.CreatedAt = s.now()
	for s.chatIndexLocked(chat.ID) >= 0 {
		chat.ID = model.NewChatID()
	}

	s.chats = append(s.chats, chat)
	s.selectLocked(chat)
	s.saveChatsLocked(evs)

	s.log.Info("chat created", zap.String("chat_id", chat.ID), zap.String("agent_id", agentID))
	return chat.Clone(), nil
}

// DeleteChat removes a chat. Deleting the current chat selects the most
// recently created remaining chat, or a fresh chat bound to the current
// agent when none remain. The collection is never left empty.
func (s *Store) DeleteChat(chatID string) error {
	s.mu.Lock()
	var evs events

	i := s.chatIndexLocked(chatID)
	if i < 0 {
		s.mu.Unlock()
		return &model.NotFoundError{Kind: "chat", ID: chatID}
	}

	wasCurrent := chatID == s.currentChatID
	s.chats = append(s.chats[:i:i], s.chats[i+1:]...)

	switch {
	case !wasCurrent:
		s.saveChatsLocked(&evs)
	case len(s.chats) > 0:
		s.selectLocked(s.chats[len(s.chats)-1])
		s.saveChatsLocked(&evs)
		evs.current(s)
	default:
		// createChatLocked persists the new collection.
		if _, err := s.createChatLocked("", &evs); err != nil {
			s.log.Error("failed to recreate chat after delete", zap.Error(err))
		}
		evs.current(s)
	}

	s.log.Info("chat deleted", zap.String("chat_id", chatID), zap.Bool("was_current", wasCurrent))
	evs.chats(s)
	s.mu.Unlock()

	s.emit(evs)
	return nil
}

// RenameChat sets a chat's title. The title is trimmed and must be
// non-blank.
func (s *Store) RenameChat(chatID, title string) error {
	title = strings.TrimSpace(title)

	s.mu.Lock()
	var evs events

	i := s.chatIndexLocked(chatID)
	if i < 0 {
		s.mu.Unlock()
		return &model.NotFoundError{Kind: "chat", ID: chatID}
	}
	if title == "" {
		s.mu.Unlock()
		return &model.ValidationError{Field: "title", Message: "title is required"}
	}

	s.chats[i].Title = title
	s.saveChatsLocked(&evs)

	s.log.Info("chat renamed", zap.String("chat_id", chatID))
	evs.chats(s)
	if chatID == s.currentChatID {
		evs.current(s)
	}
	s.mu.Unlock()

	s.emit(evs)
	return nil
}

// LoadChat makes chatID current and switches the current agent to the
// chat's agent. Loading the current chat again changes nothing.
func (s *Store) LoadChat(chatID string) (model.Chat, error) {
	s.mu.Lock()
	var evs events

	i := s.chatIndexLocked(chatID)
	if i < 0 {
		s.mu.Unlock()
		return model.Chat{}, &model.NotFoundError{Kind: "chat", ID: chatID}
	}

	s.selectLocked(s.chats[i])
	chat := s.chats[i].Clone()

	s.log.Debug("chat loaded", zap.String("chat_id", chatID))
	evs.current(s)
	s.mu.Unlock()

	s.emit(evs)
	return chat, nil
}

// =============================================================================
// GENERATION SUPPORT
// =============================================================================

// BeginGeneration sets the generation flag. It returns false when a
// generation is already running.
func (s *Store) BeginGeneration() bool {
	s.mu.Lock()
	if s.generating {
		s.mu.Unlock()
		return false
	}
	s.generating = true
	var evs events
	evs.generation(true)
	s.mu.Unlock()

	s.emit(evs)
	return true
}

// EndGeneration clears the generation flag.
func (s *Store) EndGeneration() {
	s.mu.Lock()
	if !s.generating {
		s.mu.Unlock()
		return
	}
	s.generating = false
	var evs events
	evs.generation(false)
	s.mu.Unlock()

	s.emit(evs)
}

// AppendMessage appends msg to chatID. It fails with NotFoundError when the
// chat no longer exists.
func (s *Store) AppendMessage(chatID string, msg model.Message) error {
	s.mu.Lock()
	var evs events

	i := s.chatIndexLocked(chatID)
	if i < 0 {
		s.mu.Unlock()
		return &model.NotFoundError{Kind: "chat", ID: chatID}
	}

	s.chats[i].Append(msg)
	s.saveChatsLocked(&evs)

	evs.appended(chatID, msg)
	s.mu.Unlock()

	s.emit(evs)
	return nil
}

// RemoveMessage removes the message at index from chatID. Out of range
// indices leave the chat untouched and return false.
func (s *Store) RemoveMessage(chatID string, index int) bool {
	s.mu.Lock()
	var evs events

	i := s.chatIndexLocked(chatID)
	if i < 0 || !s.chats[i].RemoveAt(index) {
		s.mu.Unlock()
		return false
	}
	s.saveChatsLocked(&evs)

	if chatID == s.currentChatID {
		evs.current(s)
	}
	s.mu.Unlock()

	s.emit(evs)
	return true
}

// SuggestTitle replaces a chat's title with a generated one. Blank
// suggestions are ignored.
func (s *Store) SuggestTitle(chatID, title string) {
	title = strings.TrimSpace(title)
	if title == "" {
		return
	}

	s.mu.Lock()
	var evs events

	i := s.chatIndexLocked(chatID)
	if i < 0 {
		s.mu.Unlock()
		return
	}
	s.chats[i].Title = title
	s.saveChatsLocked(&evs)

	evs.chats(s)
	if chatID == s.currentChatID {
		evs.current(s)
	}
	s.mu.Unlock()

	s.emit(evs)
}

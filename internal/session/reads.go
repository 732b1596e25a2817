// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package session

import (
	"sort"

	"github.com/jeranaias/agentdesk/internal/model"
)

// Snapshot is a deep copy of the state a view renders.
type Snapshot struct {
	Agents       []model.Agent
	Chats        []model.Chat // most recent first
	CurrentChat  model.Chat
	CurrentAgent model.Agent
	Generating   bool
}

// AgentGroup is a set of agents sharing a category.
type AgentGroup struct {
	Category string // empty for general
	Label    string
	Agents   []model.Agent
}

// =============================================================================
// READS
// =============================================================================

// Snapshot returns a consistent copy of the whole state.
func (s *Store) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Snapshot{
		Agents:       s.agentsLocked(),
		Chats:        s.chatsLocked(),
		CurrentChat:  s.currentChatLocked(),
		CurrentAgent: s.currentAgentLocked(),
		Generating:   s.generating,
	}
}

// Agents returns all agents in creation order.
func (s *Store) Agents() []model.Agent {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.agentsLocked()
}

// Agent returns the agent with id.
func (s *Store) Agent(id string) (model.Agent, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i := s.agentIndexLocked(id); i >= 0 {
		return s.agents[i], true
	}
	return model.Agent{}, false
}

// Chats returns all chats, most recently created first.
func (s *Store) Chats() []model.Chat {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.chatsLocked()
}

// Chat returns a copy of the chat with id.
func (s *Store) Chat(id string) (model.Chat, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i := s.chatIndexLocked(id); i >= 0 {
		return s.chats[i].Clone(), nil
	}
	return model.Chat{}, &model.NotFoundError{Kind: "chat", ID: id}
}

// CurrentChat returns a copy of the current chat.
func (s *Store) CurrentChat() model.Chat {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.currentChatLocked()
}

// CurrentChatID returns the id of the current chat.
func (s *Store) CurrentChatID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.currentChatID
}

// CurrentAgent returns the current agent. A chat bound to a missing agent
// reports the general agent.
func (s *Store) CurrentAgent() model.Agent {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.currentAgentLocked()
}

// CurrentAgentID returns the raw current agent id.
func (s *Store) CurrentAgentID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.currentAgentID
}

// IsGenerating reports whether a response is being generated.
func (s *Store) IsGenerating() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.generating
}

// AgentGroups returns agents grouped by category: general agents first,
// then categories in alphabetical order. Agents keep creation order inside
// a group.
func (s *Store) AgentGroups() []AgentGroup {
	s.mu.Lock()
	agents := s.agentsLocked()
	s.mu.Unlock()
	return GroupAgents(agents)
}

// GroupAgents groups agents by category.
func GroupAgents(agents []model.Agent) []AgentGroup {
	index := make(map[string]int)
	var groups []AgentGroup
	for _, a := range agents {
		i, ok := index[a.Category]
		if !ok {
			i = len(groups)
			index[a.Category] = i
			groups = append(groups, AgentGroup{Category: a.Category, Label: a.CategoryLabel()})
		}
		groups[i].Agents = append(groups[i].Agents, a)
	}
	sort.SliceStable(groups, func(i, j int) bool {
		if groups[i].Category == "" || groups[j].Category == "" {
			return groups[i].Category == "" && groups[j].Category != ""
		}
		return groups[i].Category < groups[j].Category
	})
	return groups
}

// =============================================================================
// LOCKED HELPERS
// =============================================================================

func (s *Store) agentsLocked() []model.Agent {
	out := make([]model.Agent, len(s.agents))
	copy(out, s.agents)
	return out
}

// chatsLocked returns deep copies, most recent first.
func (s *Store) chatsLocked() []model.Chat {
	out := make([]model.Chat, 0, len(s.chats))
	for i := len(s.chats) - 1; i >= 0; i-- {
		out = append(out, s.chats[i].Clone())
	}
	return out
}

// chatsInOrderLocked returns deep copies in creation order for persistence.
func (s *Store) chatsInOrderLocked() []model.Chat {
	out := make([]model.Chat, 0, len(s.chats))
	for _, c := range s.chats {
		out = append(out, c.Clone())
	}
	return out
}

func (s *Store) currentChatLocked() model.Chat {
	if i := s.chatIndexLocked(s.currentChatID); i >= 0 {
		return s.chats[i].Clone()
	}
	return model.Chat{}
}

func (s *Store) currentAgentLocked() model.Agent {
	if i := s.agentIndexLocked(s.currentAgentID); i >= 0 {
		return s.agents[i]
	}
	if i := s.agentIndexLocked(model.SeedGeneralAgentID); i >= 0 {
		return s.agents[i]
	}
	return model.Agent{}
}

// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package session

import (
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/jeranaias/agentdesk/internal/model"
	"github.com/jeranaias/agentdesk/internal/storage"
	"github.com/jeranaias/agentdesk/internal/view"
)

// Persister stores the two collections. storage.Store implements it.
type Persister interface {
	LoadChats() ([]model.Chat, error)
	SaveChats(chats []model.Chat) error
	LoadAgents() ([]model.Agent, error)
	SaveAgents(agents []model.Agent) error
	Clear() error
}

// =============================================================================
// STORE
// =============================================================================

// Store is the domain store. It is safe for concurrent use; all transitions
// are serialized on one mutex.
type Store struct {
	mu sync.Mutex

	agents []model.Agent
	chats  []model.Chat // creation order, most recent last

	currentAgentID string
	currentChatID  string
	generating     bool
	ready          bool

	persist Persister
	view    view.Projector
	log     *zap.Logger
	now     func() time.Time
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger.
func WithLogger(log *zap.Logger) Option {
	return func(s *Store) {
		if log != nil {
			s.log = log
		}
	}
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		if now != nil {
			s.now = now
		}
	}
}

// New creates a store. Call Init before using it.
func New(persist Persister, projector view.Projector, opts ...Option) *Store {
	if projector == nil {
		projector = view.Nop{}
	}
	s := &Store{
		persist: persist,
		view:    projector,
		log:     zap.NewNop(),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// =============================================================================
// INITIALIZATION
// =============================================================================

// Init runs seed data load, then persisted-state overlay, then marks the
// store ready. Read failures are logged and the affected collection keeps
// its seeded state.
func (s *Store) Init() {
	s.mu.Lock()
	var evs events

	s.seedLocked()
	s.overlayAgentsLocked()
	s.overlayChatsLocked()

	last := s.chats[len(s.chats)-1]
	s.selectLocked(last)
	s.ready = true

	s.log.Info("store ready",
		zap.Int("agents", len(s.agents)),
		zap.Int("chats", len(s.chats)),
		zap.String("current_chat", s.currentChatID))

	evs.agents(s)
	evs.chats(s)
	evs.current(s)
	s.mu.Unlock()

	s.emit(evs)
}

func (s *Store) seedLocked() {
	now := s.now()
	s.agents = model.SeedAgents()
	s.chats = []model.Chat{model.SeedChat(now)}
	s.currentAgentID = model.SeedGeneralAgentID
	s.currentChatID = model.SeedChatID
	s.generating = false
}

func (s *Store) overlayAgentsLocked() {
	stored, err := s.persist.LoadAgents()
	if err != nil {
		if !errors.Is(err, storage.ErrNoData) {
			s.log.Warn("failed to load agents, keeping built-ins", zap.Error(err))
		}
		return
	}
	for _, a := range stored {
		if i := s.agentIndexLocked(a.ID); i >= 0 {
			s.agents[i] = a
			continue
		}
		s.agents = append(s.agents, a)
	}
}

func (s *Store) overlayChatsLocked() {
	stored, err := s.persist.LoadChats()
	if err != nil {
		if !errors.Is(err, storage.ErrNoData) {
			s.log.Warn("failed to load chats, keeping seed chat", zap.Error(err))
		}
		return
	}
	if len(stored) == 0 {
		return
	}
	s.chats = stored
}

// Ready reports whether Init has completed.
func (s *Store) Ready() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ready
}

// Reset clears persisted state and reseeds memory. This is the logout path.
// Callers stop any pending reply first (see app.App.Reset); Reset only clears
// the generating flag.
func (s *Store) Reset() error {
	s.mu.Lock()
	var evs events

	err := s.persist.Clear()
	if err != nil {
		s.log.Error("failed to clear storage", zap.Error(err))
		evs.notify("Could not clear saved data: "+err.Error(), view.SeverityError)
	}

	s.seedLocked()
	s.selectLocked(s.chats[0])
	s.log.Info("store reset")

	evs.agents(s)
	evs.chats(s)
	evs.current(s)
	evs.generation(false)
	s.mu.Unlock()

	s.emit(evs)
	return err
}

// =============================================================================
// EVENTS
// =============================================================================

// events collects projector calls made under the lock so they can be
// delivered after it is released.
type events []func(view.Projector)

func (e *events) add(fn func(view.Projector)) {
	*e = append(*e, fn)
}

func (e *events) agents(s *Store) {
	agents := s.agentsLocked()
	e.add(func(p view.Projector) { p.OnAgentsChanged(agents) })
}

func (e *events) chats(s *Store) {
	chats := s.chatsLocked()
	e.add(func(p view.Projector) { p.OnChatsChanged(chats) })
}

func (e *events) current(s *Store) {
	chat := s.currentChatLocked()
	e.add(func(p view.Projector) { p.OnCurrentChatChanged(chat) })
}

func (e *events) appended(chatID string, msg model.Message) {
	e.add(func(p view.Projector) { p.OnMessageAppended(chatID, msg) })
}

func (e *events) generation(generating bool) {
	e.add(func(p view.Projector) { p.OnGenerationStateChanged(generating) })
}

func (e *events) notify(message string, severity view.Severity) {
	e.add(func(p view.Projector) { p.OnNotify(message, severity) })
}

func (s *Store) emit(evs events) {
	for _, fn := range evs {
		fn(s.view)
	}
}

// =============================================================================
// PERSISTENCE
// =============================================================================

func (s *Store) saveChatsLocked(evs *events) {
	if err := s.persist.SaveChats(s.chatsInOrderLocked()); err != nil {
		s.log.Error("failed to persist chats", zap.Error(err))
		evs.notify("Could not save conversations: "+err.Error(), view.SeverityError)
	}
}

func (s *Store) saveAgentsLocked(evs *events) {
	if err := s.persist.SaveAgents(s.agentsLocked()); err != nil {
		s.log.Error("failed to persist agents", zap.Error(err))
		evs.notify("Could not save agents: "+err.Error(), view.SeverityError)
	}
}

// =============================================================================
// LOOKUP HELPERS
// =============================================================================

func (s *Store) agentIndexLocked(id string) int {
	for i := range s.agents {
		if s.agents[i].ID == id {
			return i
		}
	}
	return -1
}

func (s *Store) chatIndexLocked(id string) int {
	for i := range s.chats {
		if s.chats[i].ID == id {
			return i
		}
	}
	return -1
}

// selectLocked makes chat current. The current agent follows the chat's
// binding unless that agent no longer exists, in which case the previous
// agent stays.
func (s *Store) selectLocked(chat model.Chat) {
	s.currentChatID = chat.ID
	if s.agentIndexLocked(chat.AgentID) >= 0 {
		s.currentAgentID = chat.AgentID
	}
}

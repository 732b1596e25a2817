// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package storage

import (
	"encoding/json"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/jeranaias/agentdesk/internal/model"
)

// ErrNoData is returned by the Load methods when nothing has been stored yet.
var ErrNoData = errors.New("no stored data")

// =============================================================================
// STORE
// =============================================================================

// Store serializes the chat and agent collections and preferences into a
// Backend. Every Save rewrites the whole collection.
type Store struct {
	backend Backend
	log     *zap.Logger
}

// New wraps backend. A nil logger is replaced by a no-op logger.
func New(backend Backend, log *zap.Logger) *Store {
	if log == nil {
		log = zap.NewNop()
	}
	return &Store{backend: backend, log: log}
}

// Backend returns the underlying backend.
func (s *Store) Backend() Backend { return s.backend }

// Close closes the backend.
func (s *Store) Close() error { return s.backend.Close() }

// =============================================================================
// CHATS
// =============================================================================

// SaveChats replaces the stored chat collection.
func (s *Store) SaveChats(chats []model.Chat) error {
	records := make([]chatRecord, 0, len(chats))
	for _, c := range chats {
		records = append(records, chatToRecord(c))
	}
	return s.putJSON(KeyChats, records)
}

// LoadChats returns the stored chats in stored order. A malformed record
// rejects the whole collection with a PersistenceError. Returns ErrNoData
// when the key is absent.
func (s *Store) LoadChats() ([]model.Chat, error) {
	raw, err := s.getArray(KeyChats)
	if err != nil {
		return nil, err
	}
	chats := make([]model.Chat, 0, len(raw))
	seen := make(map[string]bool, len(raw))
	for i, item := range raw {
		var rec chatRecord
		if err := json.Unmarshal(item, &rec); err != nil {
			return nil, decodeError(KeyChats, i, err)
		}
		chat, err := rec.toChat()
		if err != nil {
			return nil, decodeError(KeyChats, i, err)
		}
		if seen[chat.ID] {
			return nil, decodeError(KeyChats, i, fmt.Errorf("duplicate id %q", chat.ID))
		}
		seen[chat.ID] = true
		chats = append(chats, chat)
	}
	return chats, nil
}

// =============================================================================
// AGENTS
// =============================================================================

// SaveAgents replaces the stored agent collection.
func (s *Store) SaveAgents(agents []model.Agent) error {
	records := make([]agentRecord, 0, len(agents))
	for _, a := range agents {
		records = append(records, agentToRecord(a))
	}
	return s.putJSON(KeyAgents, records)
}

// LoadAgents returns the stored agents. A malformed record rejects the
// whole collection with a PersistenceError. Returns ErrNoData when the key
// is absent.
func (s *Store) LoadAgents() ([]model.Agent, error) {
	raw, err := s.getArray(KeyAgents)
	if err != nil {
		return nil, err
	}
	agents := make([]model.Agent, 0, len(raw))
	for i, item := range raw {
		var rec agentRecord
		if err := json.Unmarshal(item, &rec); err != nil {
			return nil, decodeError(KeyAgents, i, err)
		}
		agent, err := rec.toAgent()
		if err != nil {
			return nil, decodeError(KeyAgents, i, err)
		}
		agents = append(agents, agent)
	}
	return agents, nil
}

// =============================================================================
// PREFERENCES
// =============================================================================

// SavePreference stores a scalar preference such as the preferred model.
func (s *Store) SavePreference(key, value string) error {
	return s.putJSON(key, value)
}

// LoadPreference returns a stored preference. ok is false when unset.
func (s *Store) LoadPreference(key string) (value string, ok bool, err error) {
	data, err := s.backend.Get(key)
	if errors.Is(err, ErrKeyNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, &model.PersistenceError{Op: "read", Key: key, Err: err}
	}
	if err := json.Unmarshal(data, &value); err != nil {
		// Older builds stored bare strings.
		return string(data), true, nil
	}
	return value, true, nil
}

// =============================================================================
// RESET
// =============================================================================

// Clear removes every key agentdesk owns. Errors are joined so one failing
// key does not stop the others from being removed.
func (s *Store) Clear() error {
	var errs []error
	for _, key := range AllKeys {
		if err := s.backend.Delete(key); err != nil {
			errs = append(errs, &model.PersistenceError{Op: "delete", Key: key, Err: err})
		}
	}
	return errors.Join(errs...)
}

// =============================================================================
// HELPERS
// =============================================================================

func (s *Store) putJSON(key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return &model.PersistenceError{Op: "encode", Key: key, Err: err}
	}
	if err := s.backend.Put(key, data); err != nil {
		return &model.PersistenceError{Op: "write", Key: key, Err: err}
	}
	s.log.Debug("persisted", zap.String("key", key), zap.Int("bytes", len(data)))
	return nil
}

func decodeError(key string, index int, err error) error {
	return &model.PersistenceError{Op: "decode", Key: key, Err: fmt.Errorf("record %d: %w", index, err)}
}

func (s *Store) getArray(key string) ([]json.RawMessage, error) {
	data, err := s.backend.Get(key)
	if errors.Is(err, ErrKeyNotFound) {
		return nil, ErrNoData
	}
	if err != nil {
		return nil, &model.PersistenceError{Op: "read", Key: key, Err: err}
	}
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, &model.PersistenceError{Op: "decode", Key: key, Err: fmt.Errorf("not a JSON array: %w", err)}
	}
	return raw, nil
}

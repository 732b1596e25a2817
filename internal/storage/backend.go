// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package storage

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// Well-known keys.
const (
	KeyChats          = "chats"
	KeyAgents         = "agents"
	KeyPreferredModel = "preferredModel"
	KeyTheme          = "theme"
)

// AllKeys lists every key agentdesk writes, used by Clear.
var AllKeys = []string{KeyChats, KeyAgents, KeyPreferredModel, KeyTheme}

// ErrKeyNotFound is returned by Backend.Get for absent keys.
var ErrKeyNotFound = errors.New("key not found")

// Backend is a synchronous local key-value store.
type Backend interface {
	// Get returns the value stored under key or ErrKeyNotFound.
	Get(key string) ([]byte, error)

	// Put replaces the value stored under key.
	Put(key string, value []byte) error

	// Delete removes key. Deleting an absent key is not an error.
	Delete(key string) error

	// Close releases resources held by the backend.
	Close() error
}

// Backend kinds accepted by OpenBackend.
const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
	BackendMemory = "memory"
)

// OpenBackend opens a backend of the given kind rooted at dir.
func OpenBackend(kind, dir string) (Backend, error) {
	switch strings.ToLower(kind) {
	case BackendFile, "":
		return NewFileBackend(dir)
	case BackendSQLite:
		return NewSQLiteBackend(filepath.Join(dir, "agentdesk.db"))
	case BackendMemory:
		return NewMemoryBackend(), nil
	default:
		return nil, fmt.Errorf("unknown storage backend %q", kind)
	}
}

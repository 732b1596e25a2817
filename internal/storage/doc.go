// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package storage persists agentdesk state in a local key-value store.
//
// Two collections are stored, each under its own key as a JSON array of flat
// records: "chats" and "agents". Message timestamps are written as RFC 3339
// strings and parsed back into time.Time. Two scalar preferences live next
// to them: "preferredModel" and "theme".
//
// A Store is backed by one of three Backends:
//
//   - FileBackend: one JSON file per key, written atomically
//   - SQLiteBackend: a single kv table in a pure-Go SQLite database
//   - MemoryBackend: process-local, used by tests and --ephemeral
//
// # Usage
//
//	backend, err := storage.OpenBackend("file", "~/.agentdesk/data")
//	store := storage.New(backend, logger)
//	chats, err := store.LoadChats()
//	err = store.SaveChats(chats)
//
// Read failures and malformed payloads surface as *model.PersistenceError.
// One malformed record rejects its whole collection.
package storage

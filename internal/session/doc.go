// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package session holds the canonical agentdesk state: agents, chats and the
// selection (current agent, current chat, generation flag).
//
// Store is the only thing that mutates that state. Every operation is
// synchronous, validates its input before touching anything, writes the
// affected collection through the Persister, and then reports the change to
// the view.Projector outside its lock.
//
// # Key Types
//
//   - Store: the domain store
//   - Persister: the storage contract (implemented by storage.Store)
//   - Snapshot: a deep copy of everything a view needs to render
//   - AgentGroup: agents grouped by category for sidebars and pickers
//
// # Usage
//
//	store := session.New(persister, projector, session.WithLogger(log))
//	store.Init() // seed, overlay persisted state, ready
//
//	chat, err := store.CreateChat("")          // bound to the current agent
//	err = store.RenameChat(chat.ID, "Roadmap") // ValidationError if blank
//	err = store.SwitchAgent("2")               // NotFoundError if unknown
//
// Write failures do not roll back memory; they are logged and surfaced as
// error notifications.
package session

// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the domain types of agentdesk.
//
// # Key Types
//
//   - Agent: a persona (name, avatar glyph, optional category, instruction)
//   - Chat: an ordered message log bound to one agent
//   - Message: a single user or assistant utterance with a timestamp
//   - ModelInfo: an entry of the fixed model catalog with a health status
//   - ValidationError, NotFoundError, PersistenceError: the error taxonomy
//
// # Usage
//
//	agents := model.SeedAgents()
//	chat := model.NewChat(agents[2].ID)
//	chat.Append(model.NewUserMessage("hello"))
//
//	if errors.Is(err, model.ErrNotFound) {
//	    // unknown chat or agent id
//	}
package model

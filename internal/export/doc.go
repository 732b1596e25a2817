// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package export writes chats to files and renders them for the terminal.
//
// # Key Types
//
//   - Document: A chat with its agent and model
//   - Exporter: Format interface (Markdown, JSON)
//   - Options: Export configuration options
//
// # Usage
//
//	doc := &export.Document{Chat: chat, Agent: agent, ModelID: "gpt-4o"}
//	path, err := export.ExportChat(doc, "markdown", export.DefaultOptions())
package export

// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package util provides small helpers shared across agentdesk.
//
// String Utilities:
//   - TruncateRunes, ClampRunes: UTF-8 safe truncation by character count
//   - TruncateWidth, PadWidth: terminal-column aware truncation (go-runewidth)
//
// File Operations:
//   - AtomicWriteFile: crash-safe file writing with fsync + rename
//
// # Usage
//
//	// Sidebar titles
//	title := util.TruncateWidth(chat.Title, 24)
//
//	// Persist a collection without risking a torn file
//	err := util.AtomicWriteFile(path, data, 0600)
package util

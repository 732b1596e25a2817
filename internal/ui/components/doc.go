// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package components provides reusable pieces of the agentdesk TUI.
//
// Toasts show success, error and info notifications. Each toast enters
// after a short delay and expires on its own timer:
//
//	toast, cmd := toasts.Add("Agent created successfully!", view.SeveritySuccess)
//	return m, cmd
package components

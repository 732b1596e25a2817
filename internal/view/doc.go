// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package view defines the contract between the agentdesk core and whatever
// renders it.
//
// The core pushes state changes through a Projector and never reads UI state
// back. A projector may call core operations in response to user input, but
// it never mutates core state directly. Callbacks are invoked outside the
// core's locks, so a projector may read snapshots from the core while
// handling one.
//
// Implementations in this repository:
//
//   - ui/chat: the Bubble Tea terminal UI
//   - cli: the line-mode REPL printer
//   - Recorder: records every call, used in tests
//   - Nop: discards everything
package view

// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package app wires agentdesk together.
//
// New loads the configuration, opens the logger and the storage backend,
// initializes the domain store and builds the conversation engine and the
// interactive flows on top of it. Front ends (the TUI in RunTUI, the line
// REPL in package cli) install their projector on App.View.
package app

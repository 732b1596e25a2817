// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package flow implements the modal interactions of agentdesk as explicit
// state machines. Each machine owns its canonical state; views re-render
// from it and forward user intents to its methods.
//
//   - AgentSwitch: Closed -> SelectTrigger -> SelectAgent -> Closed
//   - ModelSelector: Closed <-> Open, with filtering and status refresh
//   - RenameModal: Closed -> Open -> (Closed | Saved)
//   - DeleteModal: Closed -> Open -> (Closed | Confirmed)
//   - AgentForm: Closed -> Open -> (Closed | Saved)
//
// Mutations go through the domain store; the machines only hold what the
// user is in the middle of choosing or typing.
package flow

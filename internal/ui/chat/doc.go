// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Package chat provides the main chat view of the agentdesk TUI.

The view is a Bubble Tea program that renders the session state and
dispatches key presses to the core. It never mutates chats or agents itself.

# Key Components

## Projector (projector.go)

Projector implements view.Projector. Core events are queued and delivered
to the program in order from a single goroutine, so the core never waits on
the Bubble Tea loop.

## Model (model.go, update.go)

Model keeps a projected copy of the agents, the chat list, the current chat
and the generating flag. Keys open the flow overlays (agent switch wizard,
model selector, rename, delete, new agent) or call the conversation engine.

## View Rendering (view.go, markdown.go)

A sidebar lists chats, most recent first, and agents grouped by category.
Assistant replies are rendered as Markdown with glamour. Notifications are
drawn as toasts over the bottom of the message area.

# Usage

	proj := chat.NewProjector(program)
	swappable.Set(proj)
	defer proj.Close()
*/
package chat

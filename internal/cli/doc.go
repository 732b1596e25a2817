// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Package cli implements the agentdesk command line.

Commands:

	agentdesk                      Start the TUI (or the REPL when not on a terminal)
	agentdesk chat                 Line-mode chat with history
	agentdesk agents list|create   Show or add agents
	agentdesk chats list|show|rename|delete
	agentdesk export [chat-id]     Write or preview a chat as Markdown or JSON
	agentdesk reset                Delete all stored chats, agents and preferences
	agentdesk config show|get|set|path

Global flags:

	--config PATH   Config file (default ~/.agentdesk/config.toml)
	--ephemeral     Keep everything in memory for this run
	-v, --verbose   Debug logging
*/
package cli

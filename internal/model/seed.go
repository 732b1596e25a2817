// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

import "time"

// Built-in ids. New agents and chats get uuids, so these never collide.
const (
	SeedMarketingAgentID = "1"
	SeedDeveloperAgentID = "2"
	SeedGeneralAgentID   = "3"
	SeedChatID           = "1"
)

// SeedGreeting is the assistant message the built-in chat starts with.
const SeedGreeting = "Hello! How can I help you today?"

// SeedAgents returns the built-in agents in display order.
func SeedAgents() []Agent {
	return []Agent{
		{
			ID:          SeedMarketingAgentID,
			Name:        "Especialista em Marketing",
			Avatar:      "fa-bullhorn",
			Category:    "marketing",
			Instruction: "Você é um especialista em marketing digital, focado em criar conteúdo envolvente e estratégias eficazes.",
		},
		{
			ID:          SeedDeveloperAgentID,
			Name:        "Programador Sênior",
			Avatar:      "fa-code",
			Category:    "desenvolvimento",
			Instruction: "Você é um programador experiente, especializado em melhores práticas de código e arquitetura de software.",
		},
		{
			ID:          SeedGeneralAgentID,
			Name:        "Assistente Geral",
			Avatar:      "fa-robot",
			Instruction: "Você é um assistente prestativo e versátil, capaz de ajudar com diversas tarefas.",
		},
	}
}

// SeedChat returns the built-in chat bound to the general agent.
func SeedChat(now time.Time) Chat {
	return Chat{
		ID:      SeedChatID,
		Title:   DefaultChatTitle,
		AgentID: SeedGeneralAgentID,
		Messages: []Message{{
			ID:        "msg_seed",
			Role:      RoleAssistant,
			Content:   SeedGreeting,
			Timestamp: now,
		}},
		CreatedAt: now,
	}
}

// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

import "fmt"

// =============================================================================
// HEALTH STATUS
// =============================================================================

// HealthStatus is the reachability of a catalog model as last observed.
type HealthStatus string

const (
	StatusOnline  HealthStatus = "online"
	StatusSlow    HealthStatus = "slow"
	StatusOffline HealthStatus = "offline"
)

// Label returns the status text shown next to a model.
func (s HealthStatus) Label() string {
	switch s {
	case StatusOnline:
		return "Online"
	case StatusSlow:
		return "Slow"
	case StatusOffline:
		return "Offline"
	default:
		return string(s)
	}
}

// Indicator returns a one-character status dot.
func (s HealthStatus) Indicator() string {
	switch s {
	case StatusSlow:
		return "◐"
	case StatusOffline:
		return "○"
	default:
		return "●"
	}
}

// =============================================================================
// MODEL INFO TYPE
// =============================================================================

// ModelInfo describes a selectable model. The selection is a preference
// carried to the response generator; nothing is dispatched over a network.
type ModelInfo struct {
	ID          string       `json:"id"`
	Name        string       `json:"name"`
	Provider    string       `json:"provider"`
	Description string       `json:"description"`
	MaxTokens   int          `json:"max_tokens"`
	Status      HealthStatus `json:"status"`
}

// ContextString returns a formatted context window string.
func (m ModelInfo) ContextString() string {
	if m.MaxTokens >= 1000000 {
		return fmt.Sprintf("%.1fM tokens", float64(m.MaxTokens)/1000000)
	}
	if m.MaxTokens >= 1000 {
		return fmt.Sprintf("%dK tokens", m.MaxTokens/1000)
	}
	return fmt.Sprintf("%d tokens", m.MaxTokens)
}

// =============================================================================
// CATALOG
// =============================================================================

// DefaultModelID is selected when no preference has been stored.
const DefaultModelID = "gpt-4o"

// Catalog returns a fresh copy of the fixed model catalog, all online.
func Catalog() []ModelInfo {
	return []ModelInfo{
		{ID: "gpt-4o", Name: "GPT-4o", Provider: "OpenAI", MaxTokens: 128000, Status: StatusOnline,
			Description: "Most capable general model for complex tasks"},
		{ID: "gpt-4o-mini", Name: "GPT-4o mini", Provider: "OpenAI", MaxTokens: 128000, Status: StatusOnline,
			Description: "Fast and economical for everyday tasks"},
		{ID: "claude-3-5-sonnet", Name: "Claude 3.5 Sonnet", Provider: "Anthropic", MaxTokens: 200000, Status: StatusOnline,
			Description: "Balanced speed and reasoning, strong at writing and code"},
		{ID: "claude-3-haiku", Name: "Claude 3 Haiku", Provider: "Anthropic", MaxTokens: 200000, Status: StatusOnline,
			Description: "Lightweight and quick responses"},
		{ID: "gemini-1.5-pro", Name: "Gemini 1.5 Pro", Provider: "Google", MaxTokens: 1000000, Status: StatusOnline,
			Description: "Very long context for large documents"},
		{ID: "llama-3.1-70b", Name: "Llama 3.1 70B", Provider: "Meta", MaxTokens: 128000, Status: StatusOnline,
			Description: "Open model with solid multilingual performance"},
	}
}

// FindModel looks a model up by id in catalog.
func FindModel(catalog []ModelInfo, id string) (ModelInfo, bool) {
	for _, m := range catalog {
		if m.ID == id {
			return m, true
		}
	}
	return ModelInfo{}, false
}

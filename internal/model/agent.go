// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

import "strings"

// DefaultInstruction is used when an agent is created without one.
const DefaultInstruction = "You are a helpful assistant."

// GeneralCategoryLabel is shown for agents without a category.
const GeneralCategoryLabel = "General assistant"

// Avatars is the fixed set of glyph references an agent can use. The first
// entry is the default.
var Avatars = []string{
	"fa-robot",
	"fa-user-tie",
	"fa-bullhorn",
	"fa-code",
	"fa-pen-nib",
	"fa-chart-line",
	"fa-graduation-cap",
	"fa-flask",
}

// avatarGlyphs maps avatar references to terminal-friendly glyphs.
var avatarGlyphs = map[string]string{
	"fa-robot":          "🤖",
	"fa-user-tie":       "👔",
	"fa-bullhorn":       "📣",
	"fa-code":           "💻",
	"fa-pen-nib":        "✒️",
	"fa-chart-line":     "📈",
	"fa-graduation-cap": "🎓",
	"fa-flask":          "⚗️",
	"fa-user":           "👤",
}

// =============================================================================
// AGENT TYPE
// =============================================================================

// Agent is a persona a chat is bound to. Agents are never deleted.
type Agent struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Avatar      string `json:"avatar"`
	Category    string `json:"category,omitempty"`
	Instruction string `json:"instruction"`
}

// AgentSpec is the user input for creating an agent.
type AgentSpec struct {
	Name        string
	Avatar      string
	Category    string
	Instruction string
}

// Normalize trims the spec and fills the avatar and instruction defaults.
func (s AgentSpec) Normalize() AgentSpec {
	s.Name = strings.TrimSpace(s.Name)
	s.Category = strings.TrimSpace(s.Category)
	s.Instruction = strings.TrimSpace(s.Instruction)
	s.Avatar = strings.TrimSpace(s.Avatar)
	if s.Avatar == "" || !IsAvatar(s.Avatar) {
		s.Avatar = Avatars[0]
	}
	if s.Instruction == "" {
		s.Instruction = DefaultInstruction
	}
	return s
}

// Validate reports a ValidationError when the name is blank.
func (s AgentSpec) Validate() error {
	if strings.TrimSpace(s.Name) == "" {
		return &ValidationError{Field: "name", Message: "agent name is required"}
	}
	return nil
}

// IsGeneral reports whether the agent has no category.
func (a Agent) IsGeneral() bool {
	return a.Category == ""
}

// CategoryLabel returns the category for display.
func (a Agent) CategoryLabel() string {
	if a.IsGeneral() {
		return GeneralCategoryLabel
	}
	return a.Category
}

// Glyph returns a printable glyph for the agent's avatar.
func (a Agent) Glyph() string {
	return AvatarGlyph(a.Avatar)
}

// AvatarGlyph returns the terminal glyph for an avatar reference.
func AvatarGlyph(avatar string) string {
	if g, ok := avatarGlyphs[avatar]; ok {
		return g
	}
	return avatarGlyphs[Avatars[0]]
}

// IsAvatar reports whether avatar is in the fixed avatar set.
func IsAvatar(avatar string) bool {
	for _, a := range Avatars {
		if a == avatar {
			return true
		}
	}
	return false
}

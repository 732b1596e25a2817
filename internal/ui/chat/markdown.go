// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"
)

// markdownRenderer renders assistant replies with glamour. Messages are
// immutable, so output is cached by message ID for the renderer's width and
// style.
type markdownRenderer struct {
	width    int
	renderer *glamour.TermRenderer
	cache    map[string]string
}

func newMarkdownRenderer(width int, style string, log *zap.Logger) *markdownRenderer {
	r := &markdownRenderer{
		width: width,
		cache: make(map[string]string),
	}
	renderer, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(style),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		log.Warn("markdown renderer unavailable", zap.Error(err))
		return r
	}
	r.renderer = renderer
	return r
}

// Render returns content rendered for the terminal. It falls back to plain
// wrapped text when glamour fails.
func (r *markdownRenderer) Render(id, content string) string {
	if out, ok := r.cache[id]; ok {
		return out
	}

	out := ""
	if r.renderer != nil {
		if rendered, err := r.renderer.Render(content); err == nil {
			out = strings.Trim(rendered, "\n")
		}
	}
	if out == "" {
		out = lipgloss.NewStyle().Width(r.width).Render(content)
	}
	if id != "" {
		r.cache[id] = out
	}
	return out
}

// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package export

import (
	"fmt"

	"github.com/charmbracelet/glamour"
)

// RenderMarkdown renders Markdown for a terminal of the given width. Style
// is "dark", "light" or "notty"; anything else detects the background.
func RenderMarkdown(content string, width int, style string) (string, error) {
	if width <= 0 {
		width = 80
	}
	styleOpt := glamour.WithAutoStyle()
	switch style {
	case "dark", "light", "notty":
		styleOpt = glamour.WithStandardStyle(style)
	}

	renderer, err := glamour.NewTermRenderer(styleOpt, glamour.WithWordWrap(width))
	if err != nil {
		return "", fmt.Errorf("create markdown renderer: %w", err)
	}
	out, err := renderer.Render(content)
	if err != nil {
		return "", fmt.Errorf("render markdown: %w", err)
	}
	return out, nil
}

// Preview renders a document as terminal Markdown.
func Preview(doc *Document, width int, style string) (string, error) {
	opts := DefaultOptions()
	opts.IncludeMetadata = false
	opts.RawContent = true
	content, err := NewMarkdownExporter(opts).Export(doc)
	if err != nil {
		return "", err
	}
	return RenderMarkdown(string(content), width, style)
}

// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package export

import (
	"fmt"
	"strings"
	"time"

	"github.com/jeranaias/agentdesk/internal/model"
)

// =============================================================================
// MARKDOWN EXPORTER
// =============================================================================

// MarkdownExporter exports chats to Markdown.
type MarkdownExporter struct {
	options *Options
}

// NewMarkdownExporter creates a new Markdown exporter.
func NewMarkdownExporter(opts *Options) *MarkdownExporter {
	if opts == nil {
		opts = DefaultOptions()
	}
	return &MarkdownExporter{options: opts}
}

// Export converts a document to Markdown.
func (e *MarkdownExporter) Export(doc *Document) ([]byte, error) {
	if err := doc.validate(); err != nil {
		return nil, err
	}
	chat := doc.Chat
	title := chat.GetTitle()

	var sb strings.Builder

	if e.options.IncludeMetadata {
		sb.WriteString("---\n")
		fmt.Fprintf(&sb, "title: %s\n", escapeYAML(title))
		fmt.Fprintf(&sb, "agent: %s\n", escapeYAML(doc.Agent.Name))
		if doc.ModelID != "" {
			fmt.Fprintf(&sb, "model: %s\n", escapeYAML(doc.ModelID))
		}
		fmt.Fprintf(&sb, "date: %s\n", chat.CreatedAt.Format(time.RFC3339))
		fmt.Fprintf(&sb, "messages: %d\n", len(chat.Messages))
		fmt.Fprintf(&sb, "exported: %s\n", doc.exportedAt().Format(time.RFC3339))
		sb.WriteString("generator: agentdesk\n")
		sb.WriteString("---\n\n")
	}

	fmt.Fprintf(&sb, "# %s\n\n", escapeMarkdown(title))

	if e.options.IncludeMetadata {
		sb.WriteString("## Session Information\n\n")
		fmt.Fprintf(&sb, "- **Agent**: %s (%s)\n", escapeMarkdown(doc.Agent.Name), escapeMarkdown(doc.Agent.CategoryLabel()))
		if doc.ModelID != "" {
			fmt.Fprintf(&sb, "- **Model**: %s\n", doc.ModelID)
		}
		fmt.Fprintf(&sb, "- **Created**: %s\n", formatTimestamp(chat.CreatedAt))
		fmt.Fprintf(&sb, "- **Messages**: %d\n", len(chat.Messages))
		sb.WriteString("\n---\n\n")
	}

	sb.WriteString("## Conversation\n\n")

	for i, msg := range chat.Messages {
		label := e.roleLabel(msg.Role, doc.Agent)
		if e.options.IncludeTimestamps {
			fmt.Fprintf(&sb, "### %s <sub>%s</sub>\n\n", label, formatShortTimestamp(msg.Timestamp))
		} else {
			fmt.Fprintf(&sb, "### %s\n\n", label)
		}

		// Markdown viewers pass raw HTML through, so markup in a message
		// is written as text.
		content := msg.Escaped()
		if e.options.RawContent {
			content = msg.Content
		}
		sb.WriteString(strings.TrimSpace(content))
		sb.WriteString("\n\n")

		if i < len(chat.Messages)-1 {
			sb.WriteString("---\n\n")
		}
	}

	sb.WriteString("\n---\n\n")
	fmt.Fprintf(&sb, "*Exported from agentdesk on %s*\n",
		doc.exportedAt().Format("January 2, 2006 at 3:04 PM"))

	return []byte(sb.String()), nil
}

// FileExtension returns the file extension for Markdown.
func (e *MarkdownExporter) FileExtension() string {
	return ".md"
}

// MimeType returns the MIME type for Markdown.
func (e *MarkdownExporter) MimeType() string {
	return "text/markdown"
}

// roleLabel names the speaker. Assistant turns carry the agent name.
func (e *MarkdownExporter) roleLabel(role model.Role, agent model.Agent) string {
	switch role {
	case model.RoleUser:
		return "[" + role.DisplayName() + "]"
	case model.RoleAssistant:
		if agent.Name != "" {
			return "[" + escapeMarkdown(agent.Name) + "]"
		}
		return "[" + role.DisplayName() + "]"
	case "":
		return "Unknown"
	default:
		return string(role)
	}
}

// =============================================================================
// ESCAPING HELPERS
// =============================================================================

// escapeMarkdown escapes characters that break formatting in headings and
// folds line breaks to spaces.
func escapeMarkdown(s string) string {
	s = strings.NewReplacer("\r\n", " ", "\n", " ", "\r", " ").Replace(s)
	s = strings.ReplaceAll(s, "#", "\\#")
	s = strings.ReplaceAll(s, "*", "\\*")
	s = strings.ReplaceAll(s, "_", "\\_")
	s = strings.ReplaceAll(s, "[", "\\[")
	s = strings.ReplaceAll(s, "]", "\\]")
	return s
}

// escapeYAML quotes a YAML scalar when it contains special characters.
func escapeYAML(s string) string {
	if strings.ContainsAny(s, ":#|>@`\"'[]{}!%&*\n\r\\") || strings.HasPrefix(s, " ") || strings.HasSuffix(s, " ") {
		s = strings.ReplaceAll(s, "\\", "\\\\")
		s = strings.ReplaceAll(s, "\"", "\\\"")
		s = strings.ReplaceAll(s, "\n", "\\n")
		s = strings.ReplaceAll(s, "\r", "\\r")
		return fmt.Sprintf("\"%s\"", s)
	}
	return s
}

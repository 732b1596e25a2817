// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package export

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/agentdesk/internal/model"
)

var exportTime = time.Date(2025, 3, 4, 10, 30, 0, 0, time.UTC)

func sampleDocument() *Document {
	created := time.Date(2025, 3, 4, 9, 0, 0, 0, time.UTC)
	return &Document{
		Chat: model.Chat{
			ID:      "chat-1",
			Title:   "Launch plan",
			AgentID: model.SeedMarketingAgentID,
			Messages: []model.Message{
				{ID: "m1", Role: model.RoleUser, Content: "Draft a tagline", Timestamp: created},
				{ID: "m2", Role: model.RoleAssistant, Content: "**Ship faster.**", Timestamp: created.Add(time.Minute)},
			},
			CreatedAt: created,
		},
		Agent:      model.SeedAgents()[0],
		ModelID:    "gpt-4o",
		ExportedAt: exportTime,
	}
}

func TestMarkdownExporter_Export(t *testing.T) {
	out, err := NewMarkdownExporter(nil).Export(sampleDocument())
	require.NoError(t, err)
	md := string(out)

	assert.True(t, strings.HasPrefix(md, "---\ntitle: Launch plan\n"))
	assert.Contains(t, md, "agent: Especialista em Marketing\n")
	assert.Contains(t, md, "model: gpt-4o\n")
	assert.Contains(t, md, "messages: 2\n")
	assert.Contains(t, md, "# Launch plan\n")
	assert.Contains(t, md, "### [You] <sub>09:00:00</sub>")
	assert.Contains(t, md, "### [Especialista em Marketing] <sub>09:01:00</sub>")
	assert.Contains(t, md, "**Ship faster.**")
	assert.Contains(t, md, "*Exported from agentdesk on March 4, 2025 at 10:30 AM*")
}

func TestMarkdownExporter_WithoutMetadata(t *testing.T) {
	opts := &Options{IncludeMetadata: false, IncludeTimestamps: false}
	out, err := NewMarkdownExporter(opts).Export(sampleDocument())
	require.NoError(t, err)
	md := string(out)

	assert.False(t, strings.HasPrefix(md, "---"))
	assert.NotContains(t, md, "Session Information")
	assert.Contains(t, md, "### [You]\n")
}

func TestMarkdownExporter_EscapesTitle(t *testing.T) {
	doc := sampleDocument()
	doc.Chat.Title = "Plan: #1\ninjected: yes"

	out, err := NewMarkdownExporter(nil).Export(doc)
	require.NoError(t, err)
	md := string(out)

	assert.Contains(t, md, `title: "Plan: #1\ninjected: yes"`)
	assert.NotContains(t, md, "\ninjected: yes\n")
	assert.Contains(t, md, `# Plan: \#1`)
}

func TestMarkdownExporter_EscapesMessageMarkup(t *testing.T) {
	doc := sampleDocument()
	doc.Chat.Messages[0].Content = `<script>alert("hi")</script> & more`

	out, err := NewMarkdownExporter(nil).Export(doc)
	require.NoError(t, err)
	md := string(out)

	assert.NotContains(t, md, "<script>")
	assert.Contains(t, md, "&lt;script&gt;alert(&#34;hi&#34;)&lt;/script&gt; &amp; more")
	assert.Contains(t, md, "**Ship faster.**", "markdown syntax is kept")

	raw, err := NewMarkdownExporter(&Options{RawContent: true}).Export(doc)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `<script>alert("hi")</script> & more`)
}

func TestExporters_RejectEmptyChat(t *testing.T) {
	doc := sampleDocument()
	doc.Chat.Messages = nil

	_, err := NewMarkdownExporter(nil).Export(doc)
	assert.ErrorIs(t, err, ErrEmptyChat)
	_, err = NewJSONExporter(nil).Export(doc)
	assert.ErrorIs(t, err, ErrEmptyChat)

	var nilDoc *Document
	_, err = NewJSONExporter(nil).Export(nilDoc)
	assert.Error(t, err)
}

func TestJSONExporter_Export(t *testing.T) {
	out, err := NewJSONExporter(nil).Export(sampleDocument())
	require.NoError(t, err)

	var decoded struct {
		ID       string          `json:"id"`
		Title    string          `json:"title"`
		Model    string          `json:"model"`
		Agent    model.Agent     `json:"agent"`
		Messages []model.Message `json:"messages"`
	}
	require.NoError(t, json.Unmarshal(out, &decoded))
	assert.Equal(t, "chat-1", decoded.ID)
	assert.Equal(t, "Launch plan", decoded.Title)
	assert.Equal(t, "gpt-4o", decoded.Model)
	assert.Equal(t, model.SeedMarketingAgentID, decoded.Agent.ID)
	require.Len(t, decoded.Messages, 2)
	assert.Equal(t, model.RoleAssistant, decoded.Messages[1].Role)
}

func TestNewExporter(t *testing.T) {
	for _, format := range []string{"markdown", "md", ""} {
		e, err := NewExporter(format, nil)
		require.NoError(t, err)
		assert.Equal(t, ".md", e.FileExtension())
	}
	e, err := NewExporter("json", nil)
	require.NoError(t, err)
	assert.Equal(t, "application/json", e.MimeType())

	_, err = NewExporter("pdf", nil)
	assert.Error(t, err)
}

func TestExportChat_WritesFile(t *testing.T) {
	dir := t.TempDir()
	opts := DefaultOptions()
	opts.OutputDir = dir

	path, err := ExportChat(sampleDocument(), "json", opts)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "chat_Launch_plan_20250304_103000.json"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, json.Valid(data))
}

func TestSanitizeFilename(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Launch plan", "Launch_plan"},
		{`a/b\c:d*e?f"g<h>i|j`, "a-b-c-d-e-f-g-h-i-j"},
		{"tab\there", "tab_here"},
		{"bell\x07", "bell-"},
		{"", "chat"},
		{strings.Repeat("x", 80), strings.Repeat("x", model.MaxTitleLength)},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, sanitizeFilename(tt.in), tt.in)
	}
}

func TestPreview_RendersPlainStyle(t *testing.T) {
	out, err := Preview(sampleDocument(), 60, "notty")
	require.NoError(t, err)
	assert.Contains(t, out, "Launch plan")
	assert.Contains(t, out, "Ship faster.")
	assert.NotContains(t, out, "generator: agentdesk")
}

// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package export

import (
	"encoding/json"
	"time"

	"github.com/jeranaias/agentdesk/internal/model"
)

// =============================================================================
// JSON EXPORTER
// =============================================================================

// JSONExporter exports chats to JSON. The output always carries the full
// message list; options do not filter it.
type JSONExporter struct {
	options *Options
}

// NewJSONExporter creates a new JSON exporter.
func NewJSONExporter(opts *Options) *JSONExporter {
	if opts == nil {
		opts = DefaultOptions()
	}
	return &JSONExporter{options: opts}
}

type jsonDocument struct {
	ID         string          `json:"id"`
	Title      string          `json:"title"`
	Agent      model.Agent     `json:"agent"`
	Model      string          `json:"model,omitempty"`
	CreatedAt  time.Time       `json:"createdAt"`
	ExportedAt time.Time       `json:"exportedAt"`
	Messages   []model.Message `json:"messages"`
}

// Export converts a document to indented JSON.
func (e *JSONExporter) Export(doc *Document) ([]byte, error) {
	if err := doc.validate(); err != nil {
		return nil, err
	}
	return json.MarshalIndent(jsonDocument{
		ID:         doc.Chat.ID,
		Title:      doc.Chat.GetTitle(),
		Agent:      doc.Agent,
		Model:      doc.ModelID,
		CreatedAt:  doc.Chat.CreatedAt,
		ExportedAt: doc.exportedAt(),
		Messages:   doc.Chat.Messages,
	}, "", "  ")
}

// FileExtension returns the file extension for JSON.
func (e *JSONExporter) FileExtension() string {
	return ".json"
}

// MimeType returns the MIME type for JSON.
func (e *JSONExporter) MimeType() string {
	return "application/json"
}

// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package conversation

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/jeranaias/agentdesk/internal/model"
)

// MaxAttachmentSize is the largest file that can be attached.
const MaxAttachmentSize = 50 * 1024 * 1024

// DescribeAttachment returns the marker appended to the draft for a file of
// the given name and size. Files larger than MaxAttachmentSize are rejected.
// Only the marker is kept; file contents are never read.
func DescribeAttachment(name string, size int64) (string, error) {
	if size > MaxAttachmentSize {
		return "", &model.ValidationError{
			Field:   "attachment",
			Message: fmt.Sprintf("file too large (%s). Maximum is 50MB.", FormatFileSize(size)),
		}
	}
	return fmt.Sprintf("[Attached file: %s]", name), nil
}

// AttachFile stats path and returns its marker.
func AttachFile(path string) (string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return "", &model.ValidationError{Field: "attachment", Message: err.Error()}
	}
	if info.IsDir() {
		return "", &model.ValidationError{Field: "attachment", Message: "cannot attach a directory"}
	}
	return DescribeAttachment(filepath.Base(path), info.Size())
}

// AppendToDraft appends marker to draft on its own line.
func AppendToDraft(draft, marker string) string {
	draft = strings.TrimRight(draft, " \n")
	if draft == "" {
		return marker
	}
	return draft + "\n" + marker
}

// FormatFileSize renders a byte count as B, KB, MB or GB with up to two
// decimals.
func FormatFileSize(size int64) string {
	if size <= 0 {
		return "0 Bytes"
	}
	units := []string{"Bytes", "KB", "MB", "GB"}
	value := float64(size)
	i := 0
	for value >= 1024 && i < len(units)-1 {
		value /= 1024
		i++
	}
	s := strings.TrimRight(strings.TrimRight(fmt.Sprintf("%.2f", value), "0"), ".")
	return s + " " + units[i]
}

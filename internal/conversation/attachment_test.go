// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package conversation

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/agentdesk/internal/model"
)

func TestFormatFileSize(t *testing.T) {
	tests := []struct {
		size int64
		want string
	}{
		{0, "0 Bytes"},
		{512, "512 Bytes"},
		{1024, "1 KB"},
		{1536, "1.5 KB"},
		{5 * 1024 * 1024, "5 MB"},
		{3 * 1024 * 1024 * 1024, "3 GB"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatFileSize(tt.size), "size %d", tt.size)
	}
}

func TestDescribeAttachment(t *testing.T) {
	marker, err := DescribeAttachment("report.pdf", 1024)
	require.NoError(t, err)
	assert.Equal(t, "[Attached file: report.pdf]", marker)

	_, err = DescribeAttachment("huge.iso", MaxAttachmentSize+1)
	assert.ErrorIs(t, err, model.ErrValidation)

	_, err = DescribeAttachment("exact.bin", MaxAttachmentSize)
	assert.NoError(t, err)
}

func TestAttachFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "notes.txt")
	require.NoError(t, os.WriteFile(path, []byte("hello"), 0600))

	marker, err := AttachFile(path)
	require.NoError(t, err)
	assert.Equal(t, "[Attached file: notes.txt]", marker)

	_, err = AttachFile(dir)
	assert.ErrorIs(t, err, model.ErrValidation)

	_, err = AttachFile(filepath.Join(dir, "missing"))
	assert.ErrorIs(t, err, model.ErrValidation)
}

func TestAppendToDraft(t *testing.T) {
	assert.Equal(t, "[Attached file: a]", AppendToDraft("", "[Attached file: a]"))
	assert.Equal(t, "look at this\n[Attached file: a]", AppendToDraft("look at this  \n", "[Attached file: a]"))
}

// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package logging

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestNew_WritesJSONToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "agentdesk.log")

	log, err := New(Options{Level: "info", Path: path})
	require.NoError(t, err)

	log.Debug("hidden")
	log.Info("chat created", zap.String("chat_id", "c1"))
	require.NoError(t, log.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 1)

	var entry map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &entry))
	assert.Equal(t, "chat created", entry["msg"])
	assert.Equal(t, "c1", entry["chat_id"])
	assert.Equal(t, "agentdesk", entry["logger"])
	assert.Contains(t, entry, "time")
}

func TestLogger_SetLevel(t *testing.T) {
	path := filepath.Join(t.TempDir(), "agentdesk.log")
	log, err := New(Options{Level: "error", Path: path})
	require.NoError(t, err)
	assert.Equal(t, zapcore.ErrorLevel, log.Level())

	require.NoError(t, log.SetLevel("debug"))
	assert.Equal(t, zapcore.DebugLevel, log.Level())
	assert.Error(t, log.SetLevel("loud"))
	assert.Equal(t, zapcore.DebugLevel, log.Level())
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    zapcore.Level
		wantErr bool
	}{
		{"", zapcore.InfoLevel, false},
		{"debug", zapcore.DebugLevel, false},
		{"warn", zapcore.WarnLevel, false},
		{"error", zapcore.ErrorLevel, false},
		{"verbose", zapcore.InfoLevel, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseLevel(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNop(t *testing.T) {
	log := Nop()
	log.Info("discarded")
	assert.NoError(t, log.Close())
}

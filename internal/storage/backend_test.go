// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package storage

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// =============================================================================
// BACKEND CONFORMANCE
// =============================================================================

func backends(t *testing.T) map[string]Backend {
	t.Helper()

	file, err := NewFileBackend(filepath.Join(t.TempDir(), "data"))
	require.NoError(t, err)

	sqlite, err := NewSQLiteBackend(filepath.Join(t.TempDir(), "agentdesk.db"))
	require.NoError(t, err)
	t.Cleanup(func() { sqlite.Close() })

	return map[string]Backend{
		BackendFile:   file,
		BackendSQLite: sqlite,
		BackendMemory: NewMemoryBackend(),
	}
}

func TestBackends_GetMissing(t *testing.T) {
	for name, b := range backends(t) {
		t.Run(name, func(t *testing.T) {
			_, err := b.Get(KeyChats)
			assert.True(t, errors.Is(err, ErrKeyNotFound), "got %v", err)
		})
	}
}

func TestBackends_PutGetOverwrite(t *testing.T) {
	for name, b := range backends(t) {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, b.Put(KeyTheme, []byte(`"light"`)))
			require.NoError(t, b.Put(KeyTheme, []byte(`"dark"`)))

			got, err := b.Get(KeyTheme)
			require.NoError(t, err)
			assert.Equal(t, `"dark"`, string(got))
		})
	}
}

func TestBackends_Delete(t *testing.T) {
	for name, b := range backends(t) {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, b.Put(KeyAgents, []byte("[]")))
			require.NoError(t, b.Delete(KeyAgents))
			require.NoError(t, b.Delete(KeyAgents), "deleting twice must succeed")

			_, err := b.Get(KeyAgents)
			assert.ErrorIs(t, err, ErrKeyNotFound)
		})
	}
}

func TestMemoryBackend_CopiesValues(t *testing.T) {
	b := NewMemoryBackend()
	value := []byte("abc")
	require.NoError(t, b.Put("k", value))
	value[0] = 'x'

	got, err := b.Get("k")
	require.NoError(t, err)
	assert.Equal(t, "abc", string(got))
}

func TestFileBackend_RejectsPathKeys(t *testing.T) {
	b, err := NewFileBackend(t.TempDir())
	require.NoError(t, err)

	assert.Error(t, b.Put("../escape", []byte("x")))
	_, err = b.Get("a/b")
	assert.Error(t, err)
}

func TestFileBackend_WritesJSONFile(t *testing.T) {
	dir := t.TempDir()
	b, err := NewFileBackend(dir)
	require.NoError(t, err)

	require.NoError(t, b.Put(KeyChats, []byte("[]")))
	_, err = os.Stat(filepath.Join(dir, "chats.json"))
	assert.NoError(t, err)
}

func TestSQLiteBackend_Reopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "agentdesk.db")

	b, err := NewSQLiteBackend(path)
	require.NoError(t, err)
	require.NoError(t, b.Put(KeyPreferredModel, []byte(`"gpt-4o"`)))
	require.NoError(t, b.Close())

	b, err = NewSQLiteBackend(path)
	require.NoError(t, err)
	defer b.Close()

	got, err := b.Get(KeyPreferredModel)
	require.NoError(t, err)
	assert.Equal(t, `"gpt-4o"`, string(got))
}

func TestOpenBackend(t *testing.T) {
	dir := t.TempDir()

	for _, kind := range []string{BackendFile, BackendSQLite, BackendMemory} {
		b, err := OpenBackend(kind, dir)
		require.NoError(t, err, kind)
		require.NoError(t, b.Close())
	}

	_, err := OpenBackend("redis", dir)
	assert.Error(t, err)
}

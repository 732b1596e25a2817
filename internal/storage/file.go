// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"

	"github.com/jeranaias/agentdesk/internal/util"
)

// validKey restricts keys to safe file names.
var validKey = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

// FileBackend stores each key as <BaseDir>/<key>.json.
type FileBackend struct {
	// BaseDir is the directory holding the key files.
	// Default: ~/.agentdesk/data/
	BaseDir string
}

// NewFileBackend creates the base directory if needed.
func NewFileBackend(baseDir string) (*FileBackend, error) {
	if baseDir == "" {
		return nil, errors.New("file backend: empty base directory")
	}
	if err := os.MkdirAll(baseDir, 0700); err != nil {
		return nil, fmt.Errorf("file backend: %w", err)
	}
	return &FileBackend{BaseDir: baseDir}, nil
}

func (b *FileBackend) path(key string) (string, error) {
	if !validKey.MatchString(key) {
		return "", fmt.Errorf("invalid key %q", key)
	}
	return filepath.Join(b.BaseDir, key+".json"), nil
}

// Get reads the key file.
func (b *FileBackend) Get(key string) ([]byte, error) {
	path, err := b.path(key)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, ErrKeyNotFound
	}
	return data, err
}

// Put atomically replaces the key file.
func (b *FileBackend) Put(key string, value []byte) error {
	path, err := b.path(key)
	if err != nil {
		return err
	}
	return util.AtomicWriteFile(path, value, 0600)
}

// Delete removes the key file.
func (b *FileBackend) Delete(key string) error {
	path, err := b.path(key)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}

// Close is a no-op.
func (b *FileBackend) Close() error { return nil }

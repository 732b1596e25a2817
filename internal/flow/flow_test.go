// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package flow

import (
	"testing"

	"github.com/jeranaias/agentdesk/internal/session"
	"github.com/jeranaias/agentdesk/internal/storage"
	"github.com/jeranaias/agentdesk/internal/view"
)

func newTestStore(t *testing.T) (*session.Store, *view.Recorder) {
	t.Helper()
	rec := &view.Recorder{}
	s := session.New(storage.New(storage.NewMemoryBackend(), nil), rec)
	s.Init()
	return s, rec
}

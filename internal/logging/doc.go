// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package logging builds the zap logger shared by every agentdesk
// component. Components take a *zap.Logger and default to zap.NewNop when
// none is given.
package logging

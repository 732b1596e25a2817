// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

import "github.com/google/uuid"

// NewAgentID returns a fresh random agent id.
func NewAgentID() string {
	return uuid.NewString()
}

// NewChatID returns a fresh time-ordered chat id.
func NewChatID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}

// NewMessageID returns a fresh message id.
func NewMessageID() string {
	return "msg_" + uuid.NewString()
}

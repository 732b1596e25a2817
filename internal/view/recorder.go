// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package view

import (
	"sync"

	"github.com/jeranaias/agentdesk/internal/model"
)

// Notification is a recorded OnNotify call.
type Notification struct {
	Message  string
	Severity Severity
}

// Recorder keeps every event it receives. It is safe for concurrent use.
type Recorder struct {
	mu            sync.Mutex
	Agents        [][]model.Agent
	Chats         [][]model.Chat
	CurrentChats  []model.Chat
	Appended      []model.Message
	Generation    []bool
	Notifications []Notification
}

func (r *Recorder) OnAgentsChanged(agents []model.Agent) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Agents = append(r.Agents, agents)
}

func (r *Recorder) OnChatsChanged(chats []model.Chat) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Chats = append(r.Chats, chats)
}

func (r *Recorder) OnCurrentChatChanged(chat model.Chat) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.CurrentChats = append(r.CurrentChats, chat)
}

func (r *Recorder) OnMessageAppended(_ string, msg model.Message) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Appended = append(r.Appended, msg)
}

func (r *Recorder) OnGenerationStateChanged(generating bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Generation = append(r.Generation, generating)
}

func (r *Recorder) OnNotify(message string, severity Severity) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Notifications = append(r.Notifications, Notification{Message: message, Severity: severity})
}

// LastNotification returns the most recent notification.
func (r *Recorder) LastNotification() (Notification, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.Notifications) == 0 {
		return Notification{}, false
	}
	return r.Notifications[len(r.Notifications)-1], true
}

// NotificationsOf returns the notifications with the given severity.
func (r *Recorder) NotificationsOf(severity Severity) []Notification {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []Notification
	for _, n := range r.Notifications {
		if n.Severity == severity {
			out = append(out, n)
		}
	}
	return out
}

// GenerationStates returns a copy of the recorded generation flags.
func (r *Recorder) GenerationStates() []bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]bool(nil), r.Generation...)
}

// AppendedMessages returns a copy of the recorded appended messages.
func (r *Recorder) AppendedMessages() []model.Message {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]model.Message(nil), r.Appended...)
}

// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/jeranaias/agentdesk/internal/model"
	"github.com/jeranaias/agentdesk/internal/view"
)

type collectingSender struct {
	mu   sync.Mutex
	msgs []tea.Msg
	gate chan struct{}
}

func (s *collectingSender) Send(msg tea.Msg) {
	if s.gate != nil {
		<-s.gate
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.msgs = append(s.msgs, msg)
}

func (s *collectingSender) received() []tea.Msg {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]tea.Msg, len(s.msgs))
	copy(out, s.msgs)
	return out
}

func TestProjector_DeliversInOrder(t *testing.T) {
	defer goleak.VerifyNone(t)

	sender := &collectingSender{}
	p := NewProjector(sender)
	defer p.Close()

	msg := model.NewUserMessage("hi")
	p.OnAgentsChanged(model.SeedAgents())
	p.OnChatsChanged(nil)
	p.OnCurrentChatChanged(model.Chat{ID: "1"})
	p.OnMessageAppended("1", msg)
	p.OnGenerationStateChanged(true)
	p.OnNotify("done", view.SeverityInfo)
	p.Send(ThemeMsg{})

	require.Eventually(t, func() bool { return len(sender.received()) == 7 }, time.Second, 5*time.Millisecond)
	got := sender.received()
	assert.IsType(t, AgentsChangedMsg{}, got[0])
	assert.IsType(t, ChatsChangedMsg{}, got[1])
	assert.Equal(t, CurrentChatMsg{Chat: model.Chat{ID: "1"}}, got[2])
	assert.Equal(t, MessageAppendedMsg{ChatID: "1", Message: msg}, got[3])
	assert.Equal(t, GenerationMsg{Generating: true}, got[4])
	assert.Equal(t, NotifyMsg{Message: "done", Severity: view.SeverityInfo}, got[5])
	assert.IsType(t, ThemeMsg{}, got[6])
}

func TestProjector_DoesNotBlockCaller(t *testing.T) {
	defer goleak.VerifyNone(t)

	sender := &collectingSender{gate: make(chan struct{})}
	p := NewProjector(sender)

	done := make(chan struct{})
	go func() {
		for i := 0; i < 100; i++ {
			p.OnGenerationStateChanged(i%2 == 0)
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("projector blocked the caller")
	}

	close(sender.gate)
	require.Eventually(t, func() bool { return len(sender.received()) == 100 }, time.Second, 5*time.Millisecond)
	p.Close()
}

func TestProjector_CloseDropsLaterEvents(t *testing.T) {
	defer goleak.VerifyNone(t)

	sender := &collectingSender{}
	p := NewProjector(sender)
	p.Close()
	p.Close()

	p.OnNotify("ignored", view.SeverityInfo)
	assert.Empty(t, sender.received())
}

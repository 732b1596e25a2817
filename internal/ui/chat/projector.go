// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/agentdesk/internal/model"
	"github.com/jeranaias/agentdesk/internal/view"
)

// Sender delivers messages to a running program. *tea.Program satisfies it.
type Sender interface {
	Send(msg tea.Msg)
}

// Projector turns core events into Bubble Tea messages. Events are queued
// and delivered in order by a single goroutine, so the core never blocks on
// the program's message loop, including when an event is raised from inside
// Update.
type Projector struct {
	sender Sender

	mu     sync.Mutex
	cond   *sync.Cond
	queue  []tea.Msg
	closed bool
	done   chan struct{}
}

var _ view.Projector = (*Projector)(nil)

// NewProjector starts a projector delivering to sender. Call Close to stop
// it.
func NewProjector(sender Sender) *Projector {
	p := &Projector{
		sender: sender,
		done:   make(chan struct{}),
	}
	p.cond = sync.NewCond(&p.mu)
	go p.loop()
	return p
}

// OnAgentsChanged implements view.Projector.
func (p *Projector) OnAgentsChanged(agents []model.Agent) {
	p.enqueue(AgentsChangedMsg{Agents: agents})
}

// OnChatsChanged implements view.Projector.
func (p *Projector) OnChatsChanged(chats []model.Chat) {
	p.enqueue(ChatsChangedMsg{Chats: chats})
}

// OnCurrentChatChanged implements view.Projector.
func (p *Projector) OnCurrentChatChanged(chat model.Chat) {
	p.enqueue(CurrentChatMsg{Chat: chat})
}

// OnMessageAppended implements view.Projector.
func (p *Projector) OnMessageAppended(chatID string, msg model.Message) {
	p.enqueue(MessageAppendedMsg{ChatID: chatID, Message: msg})
}

// OnGenerationStateChanged implements view.Projector.
func (p *Projector) OnGenerationStateChanged(generating bool) {
	p.enqueue(GenerationMsg{Generating: generating})
}

// OnNotify implements view.Projector.
func (p *Projector) OnNotify(message string, severity view.Severity) {
	p.enqueue(NotifyMsg{Message: message, Severity: severity})
}

// Send queues an arbitrary message for the program.
func (p *Projector) Send(msg tea.Msg) {
	p.enqueue(msg)
}

// Close stops delivery. Queued messages not yet sent are dropped.
func (p *Projector) Close() {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return
	}
	p.closed = true
	p.cond.Broadcast()
	p.mu.Unlock()
	<-p.done
}

func (p *Projector) enqueue(msg tea.Msg) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return
	}
	p.queue = append(p.queue, msg)
	p.cond.Signal()
}

func (p *Projector) loop() {
	defer close(p.done)
	for {
		p.mu.Lock()
		for len(p.queue) == 0 && !p.closed {
			p.cond.Wait()
		}
		if p.closed {
			p.mu.Unlock()
			return
		}
		msg := p.queue[0]
		p.queue[0] = nil
		p.queue = p.queue[1:]
		p.mu.Unlock()

		p.sender.Send(msg)
	}
}

// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package conversation

import (
	"context"
	"errors"
	"math/rand/v2"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/jeranaias/agentdesk/internal/model"
	"github.com/jeranaias/agentdesk/internal/session"
	"github.com/jeranaias/agentdesk/internal/view"
)

// =============================================================================
// CONFIGURATION
// =============================================================================

// Config holds engine settings.
type Config struct {
	// MinDelay and MaxDelay bound the simulated response latency. The delay
	// is drawn uniformly from [MinDelay, MaxDelay).
	MinDelay time.Duration
	MaxDelay time.Duration

	// ModelID is the initially selected model.
	ModelID string
}

// DefaultConfig returns a 1.5s to 3s delay window and the default model.
func DefaultConfig() Config {
	return Config{
		MinDelay: 1500 * time.Millisecond,
		MaxDelay: 3000 * time.Millisecond,
		ModelID:  model.DefaultModelID,
	}
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the logger.
func WithLogger(log *zap.Logger) Option {
	return func(e *Engine) {
		if log != nil {
			e.log = log
		}
	}
}

// WithRand sets the source used to draw delays.
func WithRand(rng *rand.Rand) Option {
	return func(e *Engine) {
		if rng != nil {
			e.rng = rng
		}
	}
}

// WithSleep replaces the context-aware sleep used for the response delay.
func WithSleep(sleep func(ctx context.Context, d time.Duration) error) Option {
	return func(e *Engine) {
		if sleep != nil {
			e.sleep = sleep
		}
	}
}

// =============================================================================
// ENGINE
// =============================================================================

// generation is the in-flight reply. Only the generation whose id matches
// Engine.active may touch the store when it finishes.
type generation struct {
	id     uint64
	chatID string
	cancel context.CancelFunc
}

// Engine runs the send/generate/regenerate/cancel cycle.
type Engine struct {
	store *session.Store
	gen   Generator
	view  view.Projector
	log   *zap.Logger

	minDelay time.Duration
	maxDelay time.Duration
	sleep    func(ctx context.Context, d time.Duration) error

	rngMu sync.Mutex
	rng   *rand.Rand

	mu     sync.Mutex
	seq    uint64
	active *generation

	modelMu sync.RWMutex
	modelID string

	wg sync.WaitGroup
}

// New creates an engine over store. Notifications go to projector.
func New(store *session.Store, gen Generator, projector view.Projector, cfg Config, opts ...Option) *Engine {
	if projector == nil {
		projector = view.Nop{}
	}
	if cfg.ModelID == "" {
		cfg.ModelID = model.DefaultModelID
	}
	if cfg.MaxDelay < cfg.MinDelay {
		cfg.MaxDelay = cfg.MinDelay
	}
	e := &Engine{
		store:    store,
		gen:      gen,
		view:     projector,
		log:      zap.NewNop(),
		minDelay: cfg.MinDelay,
		maxDelay: cfg.MaxDelay,
		sleep:    sleepContext,
		rng:      newRand(),
		modelID:  cfg.ModelID,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// SetModel records the selected model. It is passed to the generator with
// every request.
func (e *Engine) SetModel(id string) {
	e.modelMu.Lock()
	defer e.modelMu.Unlock()
	e.modelID = id
}

// Model returns the selected model id.
func (e *Engine) Model() string {
	e.modelMu.RLock()
	defer e.modelMu.RUnlock()
	return e.modelID
}

// =============================================================================
// OPERATIONS
// =============================================================================

// errBusy is returned when a reply is still pending.
var errBusy = &model.ValidationError{Field: "message", Message: "a response is already being generated"}

// SendUserMessage appends text as a user message to the current chat and
// starts generating a reply. Blank text, or a reply still pending, is a
// no-op reported as a ValidationError.
func (e *Engine) SendUserMessage(ctx context.Context, text string) error {
	text = strings.TrimSpace(text)
	if text == "" {
		return &model.ValidationError{Field: "message", Message: "message is empty"}
	}
	if !e.store.BeginGeneration() {
		return errBusy
	}

	chat := e.store.CurrentChat()
	firstUserMessage := !chat.HasUserMessage()

	if err := e.store.AppendMessage(chat.ID, model.NewUserMessage(text)); err != nil {
		e.store.EndGeneration()
		return err
	}
	e.log.Debug("user message sent", zap.String("chat_id", chat.ID), zap.Int("length", len(text)))

	if firstUserMessage {
		e.suggestTitle(ctx, chat.ID, text)
	}

	e.start(ctx, chat.ID)
	return nil
}

// GenerateResponse starts generating a reply for the current chat.
func (e *Engine) GenerateResponse(ctx context.Context) error {
	if !e.store.BeginGeneration() {
		return errBusy
	}
	e.start(ctx, e.store.CurrentChatID())
	return nil
}

// Regenerate removes the message at index from the current chat and
// generates a new reply. An index out of range does nothing.
func (e *Engine) Regenerate(ctx context.Context, index int) error {
	if e.store.IsGenerating() {
		return errBusy
	}
	chat := e.store.CurrentChat()
	if index < 0 || index >= len(chat.Messages) {
		return nil
	}
	if !e.store.RemoveMessage(chat.ID, index) {
		return nil
	}
	e.log.Debug("regenerating", zap.String("chat_id", chat.ID), zap.Int("index", index))
	return e.GenerateResponse(ctx)
}

// Cancel stops the pending reply. Nothing is appended and the generating
// flag clears right away. Returns false when nothing was pending.
func (e *Engine) Cancel() bool {
	e.mu.Lock()
	g := e.active
	if g == nil {
		e.mu.Unlock()
		return false
	}
	e.active = nil
	g.cancel()
	e.store.EndGeneration()
	e.mu.Unlock()

	e.log.Info("generation cancelled", zap.String("chat_id", g.chatID))
	e.view.OnNotify("Generation stopped", view.SeverityInfo)
	return true
}

// Wait blocks until every started generation goroutine has returned.
func (e *Engine) Wait() {
	e.wg.Wait()
}

// Close cancels any pending reply and waits for it to unwind.
func (e *Engine) Close() {
	e.mu.Lock()
	if g := e.active; g != nil {
		e.active = nil
		g.cancel()
		e.store.EndGeneration()
	}
	e.mu.Unlock()
	e.wg.Wait()
}

// =============================================================================
// GENERATION
// =============================================================================

// start launches the reply goroutine. The caller has already set the
// generating flag.
func (e *Engine) start(ctx context.Context, chatID string) {
	gctx, cancel := context.WithCancel(ctx)

	req := e.request(chatID)

	e.mu.Lock()
	e.seq++
	g := &generation{id: e.seq, chatID: chatID, cancel: cancel}
	e.active = g
	e.mu.Unlock()

	delay := e.delay()
	e.log.Debug("generation started",
		zap.String("chat_id", chatID),
		zap.Uint64("generation", g.id),
		zap.Duration("delay", delay))

	e.wg.Add(1)
	go func() {
		defer e.wg.Done()
		defer cancel()
		e.run(gctx, g, req, delay)
	}()
}

func (e *Engine) run(ctx context.Context, g *generation, req Request, delay time.Duration) {
	if err := e.sleep(ctx, delay); err != nil {
		e.abandon(g)
		return
	}

	reply, genErr := e.gen.Reply(ctx, req)

	e.mu.Lock()
	defer e.mu.Unlock()
	if e.active != g {
		// Cancelled while the generator was running.
		return
	}
	e.active = nil

	switch {
	case genErr != nil:
		e.log.Error("generator failed", zap.String("chat_id", g.chatID), zap.Error(genErr))
		e.view.OnNotify("Could not generate a response", view.SeverityError)
	default:
		err := e.store.AppendMessage(g.chatID, model.NewAssistantMessage(reply))
		if errors.Is(err, model.ErrNotFound) {
			e.log.Info("chat deleted before reply arrived, dropping", zap.String("chat_id", g.chatID))
		}
	}
	e.store.EndGeneration()
}

// abandon clears the flag when the parent context ends a generation that
// was not cancelled through Cancel.
func (e *Engine) abandon(g *generation) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.active != g {
		return
	}
	e.active = nil
	e.store.EndGeneration()
	e.log.Debug("generation abandoned", zap.String("chat_id", g.chatID))
}

func (e *Engine) request(chatID string) Request {
	req := Request{ModelID: e.Model()}
	chat, err := e.store.Chat(chatID)
	if err != nil {
		return req
	}
	req.History = chat.Messages
	if agent, ok := e.store.Agent(chat.AgentID); ok {
		req.Agent = agent
	} else {
		req.Agent = e.store.CurrentAgent()
	}
	return req
}

func (e *Engine) suggestTitle(ctx context.Context, chatID, first string) {
	title, err := e.gen.SuggestTitle(ctx, first)
	if err != nil {
		e.log.Warn("title suggestion failed", zap.Error(err))
		return
	}
	e.store.SuggestTitle(chatID, title)
}

func (e *Engine) delay() time.Duration {
	span := e.maxDelay - e.minDelay
	if span <= 0 {
		return e.minDelay
	}
	e.rngMu.Lock()
	defer e.rngMu.Unlock()
	return e.minDelay + time.Duration(e.rng.Int64N(int64(span)))
}

func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

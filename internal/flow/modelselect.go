// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package flow

import (
	"context"
	"errors"
	"math/rand/v2"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/jeranaias/agentdesk/internal/model"
	"github.com/jeranaias/agentdesk/internal/storage"
	"github.com/jeranaias/agentdesk/internal/view"
)

// ErrRefreshThrottled is returned when Refresh is called again too soon or
// while a refresh is still running.
var ErrRefreshThrottled = errors.New("model refresh throttled")

// RefreshDelay is how long a status refresh takes.
const RefreshDelay = 1500 * time.Millisecond

// =============================================================================
// MODEL SELECTOR
// =============================================================================

// ModelSelector is the dropdown that picks the preferred model. Refresh runs
// off the UI goroutine, so all state is guarded.
type ModelSelector struct {
	prefs    PreferenceStore
	listener ModelListener
	notify   Notifier
	log      *zap.Logger

	mu         sync.Mutex
	open       bool
	query      string
	cursor     int
	catalog    []model.ModelInfo
	selected   string
	refreshing bool

	limiter      *rate.Limiter
	refreshDelay time.Duration
	sleep        func(ctx context.Context, d time.Duration) error
	rng          *rand.Rand
}

// ModelSelectorOption configures a ModelSelector.
type ModelSelectorOption func(*ModelSelector)

// WithRefreshDelay overrides RefreshDelay.
func WithRefreshDelay(d time.Duration) ModelSelectorOption {
	return func(m *ModelSelector) { m.refreshDelay = d }
}

// WithRefreshRand sets the source for simulated statuses.
func WithRefreshRand(rng *rand.Rand) ModelSelectorOption {
	return func(m *ModelSelector) {
		if rng != nil {
			m.rng = rng
		}
	}
}

// WithRefreshLimit sets how often Refresh may run.
func WithRefreshLimit(every time.Duration) ModelSelectorOption {
	return func(m *ModelSelector) { m.limiter = rate.NewLimiter(rate.Every(every), 1) }
}

// WithSelectorLogger sets the logger.
func WithSelectorLogger(log *zap.Logger) ModelSelectorOption {
	return func(m *ModelSelector) {
		if log != nil {
			m.log = log
		}
	}
}

// NewModelSelector creates a closed selector over the fixed catalog.
// selectedID is the stored preference; unknown ids fall back to the default.
func NewModelSelector(prefs PreferenceStore, listener ModelListener, notify Notifier, selectedID string, opts ...ModelSelectorOption) *ModelSelector {
	catalog := model.Catalog()
	if _, ok := model.FindModel(catalog, selectedID); !ok {
		selectedID = model.DefaultModelID
	}
	m := &ModelSelector{
		prefs:        prefs,
		listener:     listener,
		notify:       notify,
		log:          zap.NewNop(),
		catalog:      catalog,
		selected:     selectedID,
		limiter:      rate.NewLimiter(rate.Every(5*time.Second), 1),
		refreshDelay: RefreshDelay,
		sleep:        sleepContext,
		rng:          rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// IsOpen reports whether the dropdown is showing.
func (m *ModelSelector) IsOpen() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.open
}

// Open shows the dropdown with the selected model highlighted.
func (m *ModelSelector) Open() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.open = true
	m.cursor = m.indexOfLocked(m.selected)
}

// Close hides the dropdown and clears the filter.
func (m *ModelSelector) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.open = false
	m.query = ""
	m.cursor = 0
}

// Toggle opens a closed dropdown and closes an open one.
func (m *ModelSelector) Toggle() {
	if m.IsOpen() {
		m.Close()
		return
	}
	m.Open()
}

// Query returns the filter text.
func (m *ModelSelector) Query() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.query
}

// SetQuery replaces the filter text.
func (m *ModelSelector) SetQuery(q string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.query = q
	m.cursor = 0
}

// Visible returns the models matching the filter. An empty result means the
// view shows a "no models found" state.
func (m *ModelSelector) Visible() []model.ModelInfo {
	m.mu.Lock()
	defer m.mu.Unlock()
	return FilterModels(m.catalog, m.query)
}

// Cursor returns the highlighted row of Visible.
func (m *ModelSelector) Cursor() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.cursor
}

// MoveCursor moves the highlight by delta, clamped to the visible list.
func (m *ModelSelector) MoveCursor(delta int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := len(FilterModels(m.catalog, m.query))
	m.cursor += delta
	if m.cursor >= n {
		m.cursor = n - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

// Selected returns the selected model.
func (m *ModelSelector) Selected() model.ModelInfo {
	m.mu.Lock()
	defer m.mu.Unlock()
	info, _ := model.FindModel(m.catalog, m.selected)
	return info
}

// Select persists id as the preferred model, informs the listener, closes
// the dropdown and notifies.
func (m *ModelSelector) Select(id string) error {
	m.mu.Lock()
	info, ok := model.FindModel(m.catalog, id)
	if !ok {
		m.mu.Unlock()
		return &model.NotFoundError{Kind: "model", ID: id}
	}
	m.selected = id
	m.open = false
	m.query = ""
	m.cursor = 0
	m.mu.Unlock()

	if err := m.prefs.SavePreference(storage.KeyPreferredModel, id); err != nil {
		m.log.Error("failed to persist preferred model", zap.Error(err))
		m.notify.OnNotify("Could not save model preference: "+err.Error(), view.SeverityError)
	}
	m.listener.SetModel(id)
	m.log.Info("model selected", zap.String("model", id))
	m.notify.OnNotify("Model changed to "+info.Name, view.SeverityInfo)
	return nil
}

// SelectHighlighted selects the model under the cursor.
func (m *ModelSelector) SelectHighlighted() error {
	visible := m.Visible()
	cursor := m.Cursor()
	if cursor < 0 || cursor >= len(visible) {
		return ErrNotOpen
	}
	return m.Select(visible[cursor].ID)
}

// Refreshing reports whether a refresh is running.
func (m *ModelSelector) Refreshing() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.refreshing
}

// Refresh simulates polling model health: after the refresh delay each
// model is online with 70% probability, slow with 20% and offline with 10%.
// It blocks for the delay, so UIs call it from a background command.
func (m *ModelSelector) Refresh(ctx context.Context) error {
	m.mu.Lock()
	if m.refreshing || !m.limiter.Allow() {
		m.mu.Unlock()
		return ErrRefreshThrottled
	}
	m.refreshing = true
	m.mu.Unlock()

	err := m.sleep(ctx, m.refreshDelay)

	m.mu.Lock()
	m.refreshing = false
	if err != nil {
		m.mu.Unlock()
		return err
	}
	for i := range m.catalog {
		m.catalog[i].Status = m.randomStatusLocked()
	}
	m.mu.Unlock()

	m.log.Debug("model statuses refreshed")
	m.notify.OnNotify("Model list updated!", view.SeveritySuccess)
	return nil
}

func (m *ModelSelector) randomStatusLocked() model.HealthStatus {
	r := m.rng.Float64()
	switch {
	case r < 0.7:
		return model.StatusOnline
	case r < 0.9:
		return model.StatusSlow
	default:
		return model.StatusOffline
	}
}

func (m *ModelSelector) indexOfLocked(id string) int {
	for i, info := range FilterModels(m.catalog, m.query) {
		if info.ID == id {
			return i
		}
	}
	return 0
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

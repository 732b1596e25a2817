// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/jeranaias/agentdesk/internal/ui/styles"
	"github.com/jeranaias/agentdesk/internal/view"
)

// Default toast timing.
const (
	DefaultToastEntry   = 100 * time.Millisecond
	DefaultToastDisplay = 3 * time.Second
)

// =============================================================================
// TOAST
// =============================================================================

// Toast is a transient notification. Each toast runs on its own timers; the
// manager does not queue or coalesce them.
type Toast struct {
	ID        int
	Message   string
	Severity  view.Severity
	CreatedAt time.Time
	// Entered flips once the entry animation delay has passed.
	Entered bool
}

// =============================================================================
// TOAST MESSAGES
// =============================================================================

// ToastEnteredMsg ends the entry animation of a toast.
type ToastEnteredMsg struct {
	ID int
}

// ToastExpiredMsg removes a toast.
type ToastExpiredMsg struct {
	ID int
}

// =============================================================================
// TOAST MANAGER
// =============================================================================

// ToastManager tracks the visible toasts.
type ToastManager struct {
	mu      sync.Mutex
	toasts  []Toast
	nextID  int
	entry   time.Duration
	display time.Duration
	now     func() time.Time
}

// NewToastManager creates a manager. Non-positive durations use the
// defaults; a zero entry delay is allowed.
func NewToastManager(entry, display time.Duration) *ToastManager {
	if entry < 0 {
		entry = DefaultToastEntry
	}
	if display <= 0 {
		display = DefaultToastDisplay
	}
	return &ToastManager{
		nextID:  1,
		entry:   entry,
		display: display,
		now:     time.Now,
	}
}

// Add enqueues a toast and returns the command that drives its timers.
func (m *ToastManager) Add(message string, severity view.Severity) (Toast, tea.Cmd) {
	m.mu.Lock()
	toast := Toast{
		ID:        m.nextID,
		Message:   message,
		Severity:  severity,
		CreatedAt: m.now(),
	}
	m.nextID++
	m.toasts = append(m.toasts, toast)
	entry, display := m.entry, m.display
	m.mu.Unlock()

	id := toast.ID
	return toast, tea.Batch(
		tea.Tick(entry, func(time.Time) tea.Msg { return ToastEnteredMsg{ID: id} }),
		tea.Tick(entry+display, func(time.Time) tea.Msg { return ToastExpiredMsg{ID: id} }),
	)
}

// Update applies a timer message. It reports whether msg was a toast
// message.
func (m *ToastManager) Update(msg tea.Msg) bool {
	switch msg := msg.(type) {
	case ToastEnteredMsg:
		m.mu.Lock()
		for i := range m.toasts {
			if m.toasts[i].ID == msg.ID {
				m.toasts[i].Entered = true
				break
			}
		}
		m.mu.Unlock()
		return true
	case ToastExpiredMsg:
		m.Dismiss(msg.ID)
		return true
	}
	return false
}

// Dismiss removes a toast by ID.
func (m *ToastManager) Dismiss(id int) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i, toast := range m.toasts {
		if toast.ID == id {
			m.toasts = append(m.toasts[:i:i], m.toasts[i+1:]...)
			return
		}
	}
}

// Toasts returns a copy of the current toasts, oldest first.
func (m *ToastManager) Toasts() []Toast {
	m.mu.Lock()
	defer m.mu.Unlock()

	result := make([]Toast, len(m.toasts))
	copy(result, m.toasts)
	return result
}

// HasToasts reports whether any toast is live.
func (m *ToastManager) HasToasts() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.toasts) > 0
}

// Clear removes all toasts.
func (m *ToastManager) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.toasts = nil
}

// =============================================================================
// TOAST RENDERING
// =============================================================================

// RenderToast renders a single toast. Toasts still entering render dimmed.
func RenderToast(theme *styles.Theme, toast Toast, width int) string {
	maxWidth := 60
	if width > 0 && width-8 < maxWidth {
		maxWidth = width - 8
	}
	if maxWidth < 20 {
		maxWidth = 20
	}

	var style lipgloss.Style
	var icon string
	switch toast.Severity {
	case view.SeverityError:
		style, icon = theme.ToastError, styles.StatusIndicators.Error
	case view.SeveritySuccess:
		style, icon = theme.ToastSuccess, styles.StatusIndicators.Success
	default:
		style, icon = theme.ToastInfo, styles.StatusIndicators.Info
	}
	if !toast.Entered {
		style = style.Faint(true)
	}

	text := wrapToastText(icon+" "+toast.Message, maxWidth-2)
	return style.MaxWidth(maxWidth).Render(text)
}

// RenderToastStack renders toasts stacked vertically, newest at the
// bottom, right-aligned to width.
func RenderToastStack(theme *styles.Theme, toasts []Toast, width int) string {
	if len(toasts) == 0 {
		return ""
	}

	rendered := make([]string, 0, len(toasts))
	for _, toast := range toasts {
		rendered = append(rendered, RenderToast(theme, toast, width))
	}
	stack := lipgloss.JoinVertical(lipgloss.Right, rendered...)
	if width > 0 {
		return lipgloss.PlaceHorizontal(width, lipgloss.Right, stack)
	}
	return stack
}

// =============================================================================
// HELPER FUNCTIONS
// =============================================================================

// wrapToastText performs display-width aware word wrapping.
func wrapToastText(text string, maxWidth int) string {
	if maxWidth <= 0 {
		return text
	}

	words := strings.Fields(text)
	if len(words) == 0 {
		return text
	}

	var lines []string
	var current strings.Builder
	currentWidth := 0

	for _, word := range words {
		w := runewidth.StringWidth(word)
		switch {
		case currentWidth == 0:
			current.WriteString(word)
			currentWidth = w
		case currentWidth+1+w <= maxWidth:
			current.WriteString(" ")
			current.WriteString(word)
			currentWidth += 1 + w
		default:
			lines = append(lines, current.String())
			current.Reset()
			current.WriteString(word)
			currentWidth = w
		}
	}
	if current.Len() > 0 {
		lines = append(lines, current.String())
	}
	return strings.Join(lines, "\n")
}

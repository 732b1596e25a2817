// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/agentdesk/internal/ui/styles"
	"github.com/jeranaias/agentdesk/internal/view"
)

func TestToastManager_Lifecycle(t *testing.T) {
	m := NewToastManager(10*time.Millisecond, time.Second)

	toast, cmd := m.Add("Agent created successfully!", view.SeveritySuccess)
	require.NotNil(t, cmd)
	assert.Equal(t, 1, toast.ID)
	assert.False(t, toast.Entered)
	assert.True(t, m.HasToasts())

	assert.True(t, m.Update(ToastEnteredMsg{ID: toast.ID}))
	require.Len(t, m.Toasts(), 1)
	assert.True(t, m.Toasts()[0].Entered)

	assert.True(t, m.Update(ToastExpiredMsg{ID: toast.ID}))
	assert.False(t, m.HasToasts())
}

func TestToastManager_IndependentTimers(t *testing.T) {
	m := NewToastManager(0, time.Second)

	first, _ := m.Add("one", view.SeverityInfo)
	second, _ := m.Add("two", view.SeverityError)
	assert.NotEqual(t, first.ID, second.ID)

	m.Update(ToastExpiredMsg{ID: first.ID})
	toasts := m.Toasts()
	require.Len(t, toasts, 1)
	assert.Equal(t, "two", toasts[0].Message)

	// Expiring an unknown toast is harmless.
	m.Update(ToastExpiredMsg{ID: 99})
	assert.Len(t, m.Toasts(), 1)
}

func TestToastManager_IgnoresOtherMessages(t *testing.T) {
	m := NewToastManager(0, 0)
	assert.False(t, m.Update("not a toast message"))
}

func TestToastManager_Clear(t *testing.T) {
	m := NewToastManager(0, 0)
	m.Add("a", view.SeverityInfo)
	m.Add("b", view.SeverityInfo)
	m.Clear()
	assert.False(t, m.HasToasts())
}

func TestRenderToast(t *testing.T) {
	theme := styles.NewTheme(styles.ModeDark)

	out := RenderToast(theme, Toast{Message: "Message copied!", Severity: view.SeveritySuccess, Entered: true}, 80)
	assert.Contains(t, out, styles.StatusIndicators.Success)
	assert.Contains(t, out, "Message copied!")

	out = RenderToast(theme, Toast{Message: "Could not save", Severity: view.SeverityError}, 80)
	assert.Contains(t, out, styles.StatusIndicators.Error)
}

func TestRenderToastStack(t *testing.T) {
	theme := styles.NewTheme(styles.ModeLight)
	assert.Empty(t, RenderToastStack(theme, nil, 80))

	out := RenderToastStack(theme, []Toast{
		{Message: "first", Severity: view.SeverityInfo, Entered: true},
		{Message: "second", Severity: view.SeverityInfo, Entered: true},
	}, 80)
	assert.Less(t, strings.Index(out, "first"), strings.Index(out, "second"))
}

func TestWrapToastText(t *testing.T) {
	assert.Equal(t, "aaa bbb\nccc", wrapToastText("aaa bbb ccc", 7))
	assert.Equal(t, "short", wrapToastText("short", 40))
	assert.Equal(t, "", wrapToastText("", 10))
}

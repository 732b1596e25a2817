// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Mode is the requested theme.
type Mode string

const (
	ModeAuto  Mode = "auto"
	ModeDark  Mode = "dark"
	ModeLight Mode = "light"
)

// ParseMode maps a stored or configured value to a Mode. Unknown values
// mean auto.
func ParseMode(s string) Mode {
	switch Mode(strings.ToLower(strings.TrimSpace(s))) {
	case ModeDark:
		return ModeDark
	case ModeLight:
		return ModeLight
	default:
		return ModeAuto
	}
}

// Theme holds all the styled components for the application.
type Theme struct {
	Mode         Mode
	IsDark       bool
	ColorProfile termenv.Profile

	App lipgloss.Style

	// Sidebar
	Sidebar             lipgloss.Style
	SidebarTitle        lipgloss.Style
	SidebarSection      lipgloss.Style
	SidebarItem         lipgloss.Style
	SidebarItemSelected lipgloss.Style
	SidebarItemActive   lipgloss.Style
	SidebarMeta         lipgloss.Style

	// Header
	Header         lipgloss.Style
	HeaderTitle    lipgloss.Style
	HeaderSubtitle lipgloss.Style

	// Messages
	UserBubble      lipgloss.Style
	AssistantBubble lipgloss.Style
	MessageMeta     lipgloss.Style
	Typing          lipgloss.Style

	// Input
	InputContainer   lipgloss.Style
	InputPrompt      lipgloss.Style
	CharCount        lipgloss.Style
	CharCountWarning lipgloss.Style
	CharCountDanger  lipgloss.Style

	// Status bar
	StatusBar    lipgloss.Style
	ShortcutKey  lipgloss.Style
	ShortcutDesc lipgloss.Style

	// Modals and dropdowns
	Modal             lipgloss.Style
	ModalShake        lipgloss.Style
	ModalTitle        lipgloss.Style
	ModalItem         lipgloss.Style
	ModalItemSelected lipgloss.Style
	ModalHint         lipgloss.Style
	ModalLabel        lipgloss.Style
	ModalFocused      lipgloss.Style

	// Model health
	StatusOnline  lipgloss.Style
	StatusSlow    lipgloss.Style
	StatusOffline lipgloss.Style

	// Notifications
	ToastSuccess lipgloss.Style
	ToastError   lipgloss.Style
	ToastInfo    lipgloss.Style

	Muted   lipgloss.Style
	Spinner lipgloss.Style
}

// NewTheme creates a theme for mode. ModeAuto follows the terminal
// background.
func NewTheme(mode Mode) *Theme {
	isDark := true
	switch mode {
	case ModeLight:
		isDark = false
	case ModeDark:
	default:
		mode = ModeAuto
		isDark = termenv.HasDarkBackground()
	}

	t := &Theme{
		Mode:         mode,
		IsDark:       isDark,
		ColorProfile: termenv.ColorProfile(),
	}
	t.initStyles()
	return t
}

// Toggled returns a theme for the opposite of the current appearance.
func (t *Theme) Toggled() *Theme {
	if t.IsDark {
		return NewTheme(ModeLight)
	}
	return NewTheme(ModeDark)
}

// Appearance returns "dark" or "light", the value stored for the theme
// preference and the glamour style name.
func (t *Theme) Appearance() string {
	if t.IsDark {
		return string(ModeDark)
	}
	return string(ModeLight)
}

// Color resolves an adaptive color for the current appearance.
func (t *Theme) Color(c lipgloss.AdaptiveColor) lipgloss.Color {
	if t.IsDark {
		return lipgloss.Color(c.Dark)
	}
	return lipgloss.Color(c.Light)
}

// initStyles initializes all the lip gloss styles.
func (t *Theme) initStyles() {
	c := t.Color

	t.App = lipgloss.NewStyle().Foreground(c(TextPrimary))

	// Sidebar
	t.Sidebar = lipgloss.NewStyle().
		Background(c(SurfaceDim)).
		BorderStyle(lipgloss.NormalBorder()).
		BorderRight(true).
		BorderForeground(c(Overlay)).
		Padding(0, 1)

	t.SidebarTitle = lipgloss.NewStyle().
		Bold(true).
		Foreground(c(Cyan))

	t.SidebarSection = lipgloss.NewStyle().
		Bold(true).
		Foreground(c(TextSecondary)).
		MarginTop(1)

	t.SidebarItem = lipgloss.NewStyle().
		Foreground(c(TextPrimary))

	t.SidebarItemSelected = lipgloss.NewStyle().
		Foreground(c(TextPrimary)).
		Background(c(SelectionBg)).
		Bold(true)

	t.SidebarItemActive = lipgloss.NewStyle().
		Foreground(c(Purple)).
		Bold(true)

	t.SidebarMeta = lipgloss.NewStyle().
		Foreground(c(TextMuted))

	// Header
	t.Header = lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderBottom(true).
		BorderForeground(c(Overlay)).
		Padding(0, 1)

	t.HeaderTitle = lipgloss.NewStyle().
		Bold(true).
		Foreground(c(Purple))

	t.HeaderSubtitle = lipgloss.NewStyle().
		Foreground(c(TextSecondary)).
		Italic(true)

	// Messages
	t.UserBubble = lipgloss.NewStyle().
		Foreground(c(UserBubbleFg)).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(c(UserBubbleBorder)).
		Padding(0, 1).
		MarginLeft(4)

	t.AssistantBubble = lipgloss.NewStyle().
		Foreground(c(AssistantBubbleFg)).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(c(AssistantBubbleBorder)).
		Padding(0, 1).
		MarginRight(4)

	t.MessageMeta = lipgloss.NewStyle().
		Foreground(c(TextMuted))

	t.Typing = lipgloss.NewStyle().
		Foreground(c(TextSecondary)).
		Italic(true)

	// Input
	t.InputContainer = lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderTop(true).
		BorderForeground(c(Overlay)).
		Padding(0, 1)

	t.InputPrompt = lipgloss.NewStyle().
		Foreground(c(Cyan)).
		Bold(true)

	t.CharCount = lipgloss.NewStyle().Foreground(c(TextMuted))
	t.CharCountWarning = lipgloss.NewStyle().Foreground(c(Amber))
	t.CharCountDanger = lipgloss.NewStyle().Foreground(c(Rose)).Bold(true)

	// Status bar
	t.StatusBar = lipgloss.NewStyle().
		Background(c(SurfaceDim)).
		Foreground(c(TextSecondary)).
		Padding(0, 1)

	t.ShortcutKey = lipgloss.NewStyle().
		Foreground(c(Cyan)).
		Bold(true)

	t.ShortcutDesc = lipgloss.NewStyle().
		Foreground(c(TextMuted))

	// Modals
	t.Modal = lipgloss.NewStyle().
		Background(c(Surface)).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(c(Purple)).
		Padding(1, 2)

	t.ModalShake = t.Modal.
		BorderForeground(c(Rose)).
		MarginLeft(2)

	t.ModalTitle = lipgloss.NewStyle().
		Bold(true).
		Foreground(c(Purple)).
		MarginBottom(1)

	t.ModalItem = lipgloss.NewStyle().
		Foreground(c(TextPrimary)).
		PaddingLeft(2)

	t.ModalItemSelected = lipgloss.NewStyle().
		Foreground(c(TextInverse)).
		Background(c(Purple)).
		Bold(true).
		PaddingLeft(2)

	t.ModalHint = lipgloss.NewStyle().
		Foreground(c(TextMuted)).
		Italic(true).
		MarginTop(1)

	t.ModalLabel = lipgloss.NewStyle().
		Foreground(c(TextSecondary))

	t.ModalFocused = lipgloss.NewStyle().
		Foreground(c(Cyan)).
		Bold(true)

	// Model health
	t.StatusOnline = lipgloss.NewStyle().Foreground(c(Emerald))
	t.StatusSlow = lipgloss.NewStyle().Foreground(c(Amber))
	t.StatusOffline = lipgloss.NewStyle().Foreground(c(Rose))

	// Notifications
	toast := lipgloss.NewStyle().
		Bold(true).
		Padding(0, 1).
		Foreground(c(TextInverse))
	t.ToastSuccess = toast.Background(c(Emerald))
	t.ToastError = toast.Background(c(Rose))
	t.ToastInfo = toast.Background(c(Blue))

	t.Muted = lipgloss.NewStyle().Foreground(c(TextMuted))
	t.Spinner = lipgloss.NewStyle().Foreground(c(Purple))
}

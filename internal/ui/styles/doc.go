// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Package styles provides the visual styling system for the agentdesk TUI.

# Color System (colors.go)

Colors are declared as Lip Gloss AdaptiveColor pairs. Unlike automatic
detection, the theme resolves them explicitly so the user can toggle
between light and dark at runtime.

	Purple  - Assistant messages and selections
	Cyan    - Brand color and user highlights
	Emerald - Success toasts and online models
	Amber   - Counter warnings and slow models
	Rose    - Errors and offline models

# Theme System (theme.go)

	theme := styles.NewTheme(styles.ParseMode(cfg.UI.Theme))
	theme = theme.Toggled()
	prefs.SavePreference(storage.KeyTheme, theme.Appearance())

ModeAuto asks termenv whether the terminal background is dark.
*/
package styles

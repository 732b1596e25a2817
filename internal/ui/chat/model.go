// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"context"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/jeranaias/agentdesk/internal/conversation"
	"github.com/jeranaias/agentdesk/internal/flow"
	"github.com/jeranaias/agentdesk/internal/model"
	"github.com/jeranaias/agentdesk/internal/session"
	"github.com/jeranaias/agentdesk/internal/ui/components"
	"github.com/jeranaias/agentdesk/internal/ui/styles"
)

// =============================================================================
// CHAT STATE
// =============================================================================

// Focus is the pane receiving keys when no overlay is open.
type Focus int

const (
	FocusInput   Focus = iota // Typing a message
	FocusSidebar              // Browsing chats and agents
)

// sidebarWidth is the fixed width of the chat/agent list.
const sidebarWidth = 32

// maxInputLength bounds a single message.
const maxInputLength = 4000

// Deps are the core components the chat view drives.
type Deps struct {
	Store    *session.Store
	Engine   *conversation.Engine
	Prefs    flow.PreferenceStore
	Switcher *flow.AgentSwitch
	Models   *flow.ModelSelector
	Rename   *flow.RenameModal
	Delete   *flow.DeleteModal
	Form     *flow.AgentForm
	Toasts   *components.ToastManager
	Theme    *styles.Theme
	Logger   *zap.Logger

	// ExportDir receives chats written by the /export command.
	ExportDir string
}

// =============================================================================
// CHAT MODEL
// =============================================================================

// Model is the Bubble Tea model for the chat view. It renders from the
// events it receives and dispatches user intents to the core.
type Model struct {
	ctx      context.Context
	store    *session.Store
	engine   *conversation.Engine
	prefs    flow.PreferenceStore
	switcher *flow.AgentSwitch
	models   *flow.ModelSelector
	rename   *flow.RenameModal
	del      *flow.DeleteModal
	form     *flow.AgentForm
	toasts   *components.ToastManager
	log      *zap.Logger

	exportDir string
	copyText  func(string) error

	keys  KeyMap
	theme *styles.Theme
	md    *markdownRenderer

	width  int
	height int

	// Projected state
	agents     []model.Agent
	chats      []model.Chat
	current    model.Chat
	generating bool

	focus         Focus
	sidebarCursor int
	showHelp      bool

	input       textinput.Model
	query       textinput.Model
	renameInput textinput.Model
	formInputs  [3]textinput.Model
	viewport    viewport.Model
	spinner     spinner.Model
	help        help.Model
}

// New creates the chat model. The initial state is read from the store;
// later changes arrive as projector messages.
func New(ctx context.Context, deps Deps) Model {
	if ctx == nil {
		ctx = context.Background()
	}
	log := deps.Logger
	if log == nil {
		log = zap.NewNop()
	}
	theme := deps.Theme
	if theme == nil {
		theme = styles.NewTheme(styles.ModeAuto)
	}
	toasts := deps.Toasts
	if toasts == nil {
		toasts = components.NewToastManager(components.DefaultToastEntry, components.DefaultToastDisplay)
	}

	input := textinput.New()
	input.Placeholder = "Type your message..."
	input.CharLimit = maxInputLength
	input.Focus()

	query := textinput.New()
	query.Placeholder = "Search..."

	renameInput := textinput.New()
	renameInput.CharLimit = model.MaxTitleLength

	var formInputs [3]textinput.Model
	for i, placeholder := range []string{"Agent name", "Category (optional)", model.DefaultInstruction} {
		formInputs[i] = textinput.New()
		formInputs[i].Placeholder = placeholder
	}

	sp := spinner.New()
	sp.Spinner = spinner.Spinner{
		Frames: []string{".  ", ".. ", "...", " ..", "  .", "   "},
		FPS:    spinner.Dot.FPS,
	}

	snap := deps.Store.Snapshot()

	m := Model{
		ctx:         ctx,
		store:       deps.Store,
		engine:      deps.Engine,
		prefs:       deps.Prefs,
		switcher:    deps.Switcher,
		models:      deps.Models,
		rename:      deps.Rename,
		del:         deps.Delete,
		form:        deps.Form,
		toasts:      toasts,
		log:         log,
		exportDir:   deps.ExportDir,
		copyText:    clipboard.WriteAll,
		keys:        DefaultKeyMap(),
		theme:       theme,
		width:       80,
		height:      24,
		agents:      snap.Agents,
		chats:       snap.Chats,
		current:     snap.CurrentChat,
		generating:  snap.Generating,
		input:       input,
		query:       query,
		renameInput: renameInput,
		formInputs:  formInputs,
		viewport:    viewport.New(80-sidebarWidth, 16),
		spinner:     sp,
		help:        help.New(),
	}
	m.applyTheme()
	m.layout()
	return m
}

// Init starts the cursor blink and, if a reply is already pending, the
// spinner.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{textinput.Blink}
	if m.generating {
		cmds = append(cmds, m.spinner.Tick)
	}
	return tea.Batch(cmds...)
}

// =============================================================================
// ACCESSORS
// =============================================================================

// Focus returns the pane receiving keys.
func (m Model) Focus() Focus { return m.focus }

// Theme returns the active theme.
func (m Model) Theme() *styles.Theme { return m.theme }

// CurrentChat returns the chat being displayed.
func (m Model) CurrentChat() model.Chat { return m.current }

// Generating reports whether a reply is pending.
func (m Model) Generating() bool { return m.generating }

// Draft returns the text in the message input.
func (m Model) Draft() string { return m.input.Value() }

// WithClipboard replaces the clipboard writer.
func (m Model) WithClipboard(write func(string) error) Model {
	m.copyText = write
	return m
}

// =============================================================================
// HELPERS
// =============================================================================

// applyTheme styles the bubbles and resets the markdown renderer.
func (m *Model) applyTheme() {
	m.spinner.Style = m.theme.Spinner
	m.input.PromptStyle = m.theme.InputPrompt
	m.input.Prompt = "> "
	m.help.Styles.ShortKey = m.theme.ShortcutKey
	m.help.Styles.ShortDesc = m.theme.ShortcutDesc
	m.help.Styles.FullKey = m.theme.ShortcutKey
	m.help.Styles.FullDesc = m.theme.ShortcutDesc
	m.md = newMarkdownRenderer(m.bubbleWidth(), m.theme.Appearance(), m.log)
}

// layout sizes the viewport and inputs for the window.
func (m *Model) layout() {
	mainWidth := m.mainWidth()

	// header(2) + input(3) + status(1)
	vpHeight := m.height - 6
	if vpHeight < 1 {
		vpHeight = 1
	}
	m.viewport.Width = mainWidth
	m.viewport.Height = vpHeight

	m.input.Width = mainWidth - 14
	if m.input.Width < 10 {
		m.input.Width = 10
	}
	m.md = newMarkdownRenderer(m.bubbleWidth(), m.theme.Appearance(), m.log)
	m.refreshViewport(false)
}

func (m Model) mainWidth() int {
	w := m.width - sidebarWidth
	if w < 20 {
		w = 20
	}
	return w
}

func (m Model) bubbleWidth() int {
	w := m.mainWidth() - 6
	if w < 16 {
		w = 16
	}
	return w
}

// displayedChat is the current chat with its latest title and binding from
// the chat list.
func (m Model) displayedChat() model.Chat {
	for _, c := range m.chats {
		if c.ID == m.current.ID {
			merged := m.current
			merged.Title = c.Title
			merged.AgentID = c.AgentID
			return merged
		}
	}
	return m.current
}

func (m Model) agentByID(id string) (model.Agent, bool) {
	for _, a := range m.agents {
		if a.ID == id {
			return a, true
		}
	}
	return model.Agent{}, false
}

// refreshViewport re-renders the message list.
func (m *Model) refreshViewport(toBottom bool) {
	atBottom := m.viewport.AtBottom()
	m.viewport.SetContent(m.renderMessages())
	if toBottom || atBottom {
		m.viewport.GotoBottom()
	}
}

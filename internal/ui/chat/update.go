// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/jeranaias/agentdesk/internal/conversation"
	"github.com/jeranaias/agentdesk/internal/export"
	"github.com/jeranaias/agentdesk/internal/flow"
	"github.com/jeranaias/agentdesk/internal/model"
	"github.com/jeranaias/agentdesk/internal/session"
	"github.com/jeranaias/agentdesk/internal/storage"
	"github.com/jeranaias/agentdesk/internal/ui/components"
	"github.com/jeranaias/agentdesk/internal/ui/styles"
	"github.com/jeranaias/agentdesk/internal/view"
)

// =============================================================================
// UPDATE
// =============================================================================

// Update handles projector messages, timers and keys.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.layout()
		return m, nil

	case AgentsChangedMsg:
		m.agents = msg.Agents
		m.clampSidebar()
		return m, nil

	case ChatsChangedMsg:
		m.chats = msg.Chats
		m.clampSidebar()
		return m, nil

	case CurrentChatMsg:
		m.current = msg.Chat
		m.refreshViewport(true)
		return m, nil

	case MessageAppendedMsg:
		if msg.ChatID == m.current.ID && !m.hasMessage(msg.Message.ID) {
			m.current.Messages = append(m.current.Messages, msg.Message)
			m.refreshViewport(true)
		}
		return m, nil

	case GenerationMsg:
		m.generating = msg.Generating
		m.refreshViewport(false)
		if m.generating {
			return m, m.spinner.Tick
		}
		return m, nil

	case NotifyMsg:
		return m, m.notify(msg.Message, msg.Severity)

	case ThemeMsg:
		if msg.Mode != m.theme.Mode {
			m.theme = styles.NewTheme(msg.Mode)
			m.applyTheme()
			m.refreshViewport(false)
		}
		return m, nil

	case modelsRefreshedMsg:
		if errors.Is(msg.err, flow.ErrRefreshThrottled) {
			return m, m.notify("Model list was refreshed recently.", view.SeverityInfo)
		}
		return m, nil

	case components.ToastEnteredMsg, components.ToastExpiredMsg:
		m.toasts.Update(msg)
		return m, nil

	case spinner.TickMsg:
		if !m.generating {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		m.refreshViewport(false)
		return m, cmd

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	}
	return m, nil
}

// notify shows a toast directly.
func (m Model) notify(message string, severity view.Severity) tea.Cmd {
	_, cmd := m.toasts.Add(message, severity)
	return cmd
}

// notifyErr shows err as an error toast.
func (m Model) notifyErr(err error) tea.Cmd {
	return m.notify(errorText(err), view.SeverityError)
}

func (m Model) hasMessage(id string) bool {
	for _, msg := range m.current.Messages {
		if msg.ID == id {
			return true
		}
	}
	return false
}

// =============================================================================
// KEY HANDLING
// =============================================================================

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Quit) {
		return m, tea.Quit
	}

	switch {
	case m.showHelp:
		m.showHelp = false
		return m, nil
	case m.switcher.IsOpen():
		return m.handleSwitchKey(msg)
	case m.models.IsOpen():
		return m.handleModelKey(msg)
	case m.rename.IsOpen():
		return m.handleRenameKey(msg)
	case m.del.IsOpen():
		return m.handleDeleteKey(msg)
	case m.form.IsOpen():
		return m.handleFormKey(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Cancel):
		if m.generating {
			m.engine.Cancel()
			return m, nil
		}
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		m.setFocus(FocusInput)
		return m, nil

	case key.Matches(msg, m.keys.NewChat):
		if _, err := m.store.CreateChat(""); err != nil {
			return m, m.notifyErr(err)
		}
		m.setFocus(FocusInput)
		return m, nil

	case key.Matches(msg, m.keys.Regenerate):
		return m.regenerate()

	case key.Matches(msg, m.keys.Copy):
		return m.copyLastReply()

	case key.Matches(msg, m.keys.Theme):
		return m.toggleTheme()

	case key.Matches(msg, m.keys.Rename):
		if err := m.rename.Open(m.current.ID); err != nil {
			return m, m.notifyErr(err)
		}
		m.renameInput.SetValue(m.rename.Input())
		m.renameInput.Focus()
		m.input.Blur()
		return m, nil

	case key.Matches(msg, m.keys.Delete):
		if err := m.del.Open(m.current.ID); err != nil {
			return m, m.notifyErr(err)
		}
		return m, nil

	case key.Matches(msg, m.keys.SwitchAgent):
		m.switcher.Open()
		m.query.Reset()
		m.input.Blur()
		return m, nil

	case key.Matches(msg, m.keys.Models):
		m.models.Open()
		m.query.Reset()
		m.query.Focus()
		m.input.Blur()
		return m, nil

	case key.Matches(msg, m.keys.NewAgent):
		m.form.Open()
		m.resetFormInputs()
		m.input.Blur()
		return m, nil

	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
		return m, nil

	case key.Matches(msg, m.keys.Focus):
		if m.focus == FocusInput {
			m.setFocus(FocusSidebar)
		} else {
			m.setFocus(FocusInput)
		}
		return m, nil

	case key.Matches(msg, m.keys.PageUp):
		m.viewport.HalfViewUp()
		return m, nil

	case key.Matches(msg, m.keys.PageDown):
		m.viewport.HalfViewDown()
		return m, nil
	}

	if m.focus == FocusSidebar {
		return m.handleSidebarKey(msg)
	}

	if key.Matches(msg, m.keys.Submit) {
		return m.submit()
	}
	switch msg.String() {
	case "up":
		m.viewport.LineUp(1)
		return m, nil
	case "down":
		m.viewport.LineDown(1)
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) setFocus(f Focus) {
	m.focus = f
	if f == FocusInput {
		m.input.Focus()
	} else {
		m.input.Blur()
	}
}

// =============================================================================
// ACTIONS
// =============================================================================

// submit sends the draft or runs an input command.
func (m Model) submit() (tea.Model, tea.Cmd) {
	text := strings.TrimSpace(m.input.Value())
	switch {
	case text == "":
		return m, nil
	case commandArg(text, commandAttach) != nil:
		return m.attach(*commandArg(text, commandAttach))
	case commandArg(text, commandExport) != nil:
		return m.exportChat(*commandArg(text, commandExport))
	}

	if err := m.engine.SendUserMessage(m.ctx, text); err != nil {
		if errors.Is(err, model.ErrValidation) {
			return m, nil
		}
		return m, m.notifyErr(err)
	}
	m.input.Reset()
	return m, nil
}

// commandArg returns the argument of a "/cmd arg" line, or nil if text is
// not that command.
func commandArg(text, command string) *string {
	if text != command && !strings.HasPrefix(text, command+" ") {
		return nil
	}
	arg := strings.TrimSpace(strings.TrimPrefix(text, command))
	return &arg
}

func (m Model) attach(path string) (tea.Model, tea.Cmd) {
	if path == "" {
		return m, m.notify("Usage: /attach <path>", view.SeverityInfo)
	}
	marker, err := conversation.AttachFile(path)
	if err != nil {
		if strings.Contains(err.Error(), "too large") {
			return m, m.notify("File too large! Maximum is 50MB.", view.SeverityError)
		}
		return m, m.notifyErr(err)
	}
	m.input.SetValue(conversation.AppendToDraft("", marker))
	m.input.CursorEnd()
	return m, m.notify(fmt.Sprintf("File %q attached successfully!", filepath.Base(path)), view.SeveritySuccess)
}

func (m Model) exportChat(format string) (tea.Model, tea.Cmd) {
	chat := m.displayedChat()
	agent, _ := m.agentByID(chat.AgentID)

	opts := export.DefaultOptions()
	if m.exportDir != "" {
		opts.OutputDir = m.exportDir
	}
	doc := &export.Document{Chat: chat, Agent: agent, ModelID: m.engine.Model()}
	path, err := export.ExportChat(doc, format, opts)
	if err != nil {
		if errors.Is(err, export.ErrEmptyChat) {
			return m, m.notify("Nothing to export yet.", view.SeverityInfo)
		}
		return m, m.notifyErr(err)
	}
	m.input.Reset()
	m.log.Info("chat exported", zap.String("chat_id", chat.ID), zap.String("path", path))
	return m, m.notify("Chat exported to "+path, view.SeveritySuccess)
}

func (m Model) regenerate() (tea.Model, tea.Cmd) {
	index := m.current.LastAssistantIndex()
	if index < 0 {
		return m, m.notify("Nothing to regenerate.", view.SeverityInfo)
	}
	if err := m.engine.Regenerate(m.ctx, index); err != nil {
		if errors.Is(err, model.ErrValidation) {
			return m, nil
		}
		return m, m.notifyErr(err)
	}
	return m, nil
}

func (m Model) copyLastReply() (tea.Model, tea.Cmd) {
	index := m.current.LastAssistantIndex()
	if index < 0 {
		return m, m.notify("Nothing to copy.", view.SeverityInfo)
	}
	if err := m.copyText(m.current.Messages[index].Content); err != nil {
		m.log.Warn("clipboard write failed", zap.Error(err))
		return m, m.notify("Could not copy message.", view.SeverityError)
	}
	return m, m.notify("Message copied!", view.SeveritySuccess)
}

func (m Model) toggleTheme() (tea.Model, tea.Cmd) {
	m.theme = m.theme.Toggled()
	m.applyTheme()
	m.refreshViewport(false)
	if m.prefs != nil {
		if err := m.prefs.SavePreference(storage.KeyTheme, m.theme.Appearance()); err != nil {
			m.log.Error("failed to persist theme", zap.Error(err))
			return m, m.notify("Could not save theme preference.", view.SeverityError)
		}
	}
	return m, nil
}

// =============================================================================
// SIDEBAR
// =============================================================================

func (m Model) handleSidebarKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	items := m.sidebarItems()
	switch {
	case key.Matches(msg, m.keys.Up):
		if m.sidebarCursor > 0 {
			m.sidebarCursor--
		}
	case key.Matches(msg, m.keys.Down):
		if m.sidebarCursor < len(items)-1 {
			m.sidebarCursor++
		}
	case key.Matches(msg, m.keys.Submit):
		if m.sidebarCursor >= len(items) {
			return m, nil
		}
		item := items[m.sidebarCursor]
		var err error
		if item.chat != nil {
			_, err = m.store.LoadChat(item.chat.ID)
		} else {
			_, err = m.store.CreateChat(item.agent.ID)
		}
		if err != nil {
			return m, m.notifyErr(err)
		}
		m.setFocus(FocusInput)
	}
	return m, nil
}

// sidebarItem is a selectable sidebar row: a chat or an agent.
type sidebarItem struct {
	chat  *model.Chat
	agent *model.Agent
	group string
}

// sidebarItems lists chats, most recent first, then agents grouped by
// category.
func (m Model) sidebarItems() []sidebarItem {
	items := make([]sidebarItem, 0, len(m.chats)+len(m.agents))
	for i := range m.chats {
		items = append(items, sidebarItem{chat: &m.chats[i]})
	}
	for _, group := range session.GroupAgents(m.agents) {
		for i := range group.Agents {
			items = append(items, sidebarItem{agent: &group.Agents[i], group: group.Label})
		}
	}
	return items
}

func (m *Model) clampSidebar() {
	n := len(m.chats) + len(m.agents)
	if m.sidebarCursor >= n {
		m.sidebarCursor = n - 1
	}
	if m.sidebarCursor < 0 {
		m.sidebarCursor = 0
	}
}

// =============================================================================
// OVERLAYS
// =============================================================================

func (m Model) handleSwitchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.switcher.Phase() == flow.PhaseSelectTrigger {
		switch msg.String() {
		case "enter":
			if err := m.switcher.Advance(); err == nil {
				m.query.Reset()
				m.query.Focus()
			}
		case "esc", "ctrl+c":
			m.closeOverlay()
			m.switcher.Cancel()
		}
		return m, nil
	}

	switch msg.String() {
	case "esc":
		_ = m.switcher.Back()
		m.query.Blur()
		return m, nil
	case "ctrl+c":
		m.switcher.Cancel()
		m.closeOverlay()
		return m, nil
	case "up":
		m.switcher.MoveCursor(-1)
		return m, nil
	case "down":
		m.switcher.MoveCursor(1)
		return m, nil
	case "tab":
		m.switcher.CycleCategory()
		return m, nil
	case "enter":
		if err := m.switcher.SelectHighlighted(); err != nil {
			if errors.Is(err, flow.ErrNotOpen) {
				return m, nil
			}
			return m, m.notifyErr(err)
		}
		m.closeOverlay()
		return m, nil
	}

	var cmd tea.Cmd
	m.query, cmd = m.query.Update(msg)
	m.switcher.SetQuery(m.query.Value())
	return m, cmd
}

func (m Model) handleModelKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "ctrl+c":
		m.models.Close()
		m.closeOverlay()
		return m, nil
	case "up":
		m.models.MoveCursor(-1)
		return m, nil
	case "down":
		m.models.MoveCursor(1)
		return m, nil
	case "ctrl+r":
		return m, m.refreshModels()
	case "enter":
		if err := m.models.SelectHighlighted(); err != nil {
			if errors.Is(err, flow.ErrNotOpen) {
				return m, nil
			}
			return m, m.notifyErr(err)
		}
		m.closeOverlay()
		return m, nil
	}

	var cmd tea.Cmd
	m.query, cmd = m.query.Update(msg)
	m.models.SetQuery(m.query.Value())
	return m, cmd
}

// refreshModels runs the model status refresh off the update loop.
func (m Model) refreshModels() tea.Cmd {
	selector, ctx := m.models, m.ctx
	return func() tea.Msg {
		return modelsRefreshedMsg{err: selector.Refresh(ctx)}
	}
}

func (m Model) handleRenameKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "ctrl+c":
		m.rename.Close()
		m.closeOverlay()
		return m, nil
	case "enter":
		if err := m.rename.Save(); err != nil {
			if errors.Is(err, model.ErrValidation) {
				return m, nil
			}
			return m, m.notifyErr(err)
		}
		m.rename.Close()
		m.closeOverlay()
		return m, nil
	}

	var cmd tea.Cmd
	m.renameInput, cmd = m.renameInput.Update(msg)
	m.rename.SetInput(m.renameInput.Value())
	if m.renameInput.Value() != m.rename.Input() {
		m.renameInput.SetValue(m.rename.Input())
	}
	return m, cmd
}

func (m Model) handleDeleteKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y", "enter":
		if err := m.del.Confirm(); err != nil {
			m.del.Close()
			m.closeOverlay()
			return m, m.notifyErr(err)
		}
		m.del.Close()
		m.closeOverlay()
	case "n", "N", "esc", "ctrl+c":
		m.del.Close()
		m.closeOverlay()
	}
	return m, nil
}

func (m Model) handleFormKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "ctrl+c":
		m.form.Close()
		m.closeOverlay()
		return m, nil
	case "tab", "down":
		m.form.NextField()
		m.focusFormInput()
		return m, nil
	case "shift+tab", "up":
		m.form.PrevField()
		m.focusFormInput()
		return m, nil
	case "enter", "ctrl+s":
		if _, err := m.form.Save(); err != nil {
			if errors.Is(err, model.ErrValidation) {
				return m, nil
			}
			return m, m.notifyErr(err)
		}
		m.form.Close()
		m.closeOverlay()
		return m, nil
	}

	focus := m.form.Focus()
	if focus == flow.FieldAvatar {
		switch msg.String() {
		case "left", "h":
			m.form.CycleAvatar(-1)
		case "right", "l", " ":
			m.form.CycleAvatar(1)
		}
		return m, nil
	}

	i := int(focus)
	var cmd tea.Cmd
	m.formInputs[i], cmd = m.formInputs[i].Update(msg)
	value := m.formInputs[i].Value()
	switch focus {
	case flow.FieldName:
		m.form.SetName(value)
	case flow.FieldCategory:
		m.form.SetCategory(value)
	case flow.FieldInstruction:
		m.form.SetInstruction(value)
	}
	return m, cmd
}

func (m *Model) resetFormInputs() {
	for i := range m.formInputs {
		m.formInputs[i].Reset()
	}
	m.focusFormInput()
}

func (m *Model) focusFormInput() {
	focus := int(m.form.Focus())
	for i := range m.formInputs {
		if i == focus {
			m.formInputs[i].Focus()
		} else {
			m.formInputs[i].Blur()
		}
	}
}

// closeOverlay returns keyboard focus to the message input.
func (m *Model) closeOverlay() {
	m.query.Blur()
	m.renameInput.Blur()
	for i := range m.formInputs {
		m.formInputs[i].Blur()
	}
	m.setFocus(FocusInput)
}

// =============================================================================
// HELPERS
// =============================================================================

// errorText returns a short user-facing message for err.
func errorText(err error) string {
	var ve *model.ValidationError
	text := err.Error()
	if errors.As(err, &ve) {
		text = ve.Message
	}
	if text == "" {
		return "Something went wrong."
	}
	r, size := utf8.DecodeRuneInString(text)
	return string(unicode.ToUpper(r)) + text[size:]
}

// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/agentdesk/internal/flow"
	"github.com/jeranaias/agentdesk/internal/model"
	"github.com/jeranaias/agentdesk/internal/ui/components"
	"github.com/jeranaias/agentdesk/internal/util"
)

// =============================================================================
// VIEW
// =============================================================================

// View renders the whole screen.
func (m Model) View() string {
	if overlay := m.renderOverlay(); overlay != "" {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, overlay)
	}

	main := lipgloss.JoinVertical(lipgloss.Left,
		m.renderHeader(),
		m.renderBody(),
		m.renderInput(),
		m.renderStatusBar(),
	)
	return lipgloss.JoinHorizontal(lipgloss.Top, m.renderSidebar(), main)
}

// =============================================================================
// HEADER
// =============================================================================

func (m Model) renderHeader() string {
	chat := m.displayedChat()
	title := m.theme.HeaderTitle.Render(util.TruncateWidth(chat.GetTitle(), m.mainWidth()/2))

	var parts []string
	if agent, ok := m.agentByID(chat.AgentID); ok {
		parts = append(parts, agent.Glyph()+" "+agent.Name)
	}
	if m.models != nil {
		info := m.models.Selected()
		parts = append(parts, info.Status.Indicator()+" "+info.Name)
	}
	subtitle := m.theme.HeaderSubtitle.Render(strings.Join(parts, "  |  "))

	return m.theme.Header.Width(m.mainWidth()).Render(title + "  " + subtitle)
}

// =============================================================================
// MESSAGES
// =============================================================================

// renderBody draws the viewport with toasts over its bottom-right corner.
func (m Model) renderBody() string {
	body := m.viewport.View()
	toasts := m.toasts.Toasts()
	if len(toasts) == 0 {
		return body
	}

	stack := strings.Split(components.RenderToastStack(m.theme, toasts, m.mainWidth()), "\n")
	lines := strings.Split(body, "\n")
	offset := len(lines) - len(stack)
	if offset < 0 {
		stack = stack[-offset:]
		offset = 0
	}
	for i, line := range stack {
		lines[offset+i] = line
	}
	return strings.Join(lines, "\n")
}

// renderMessages renders the current chat as a list of bubbles.
func (m Model) renderMessages() string {
	chat := m.displayedChat()
	agent, _ := m.agentByID(chat.AgentID)
	agentName := agent.Name
	if agentName == "" {
		agentName = model.RoleAssistant.DisplayName()
	}

	if len(chat.Messages) == 0 && !m.generating {
		return m.theme.Muted.Render(fmt.Sprintf("Start a conversation with %s.", agentName))
	}

	var b strings.Builder
	for i, msg := range chat.Messages {
		if i > 0 {
			b.WriteString("\n\n")
		}
		b.WriteString(m.renderMessage(msg, agentName))
	}

	if m.generating {
		if b.Len() > 0 {
			b.WriteString("\n\n")
		}
		b.WriteString(m.theme.Typing.Render(agentName + " is typing " + m.spinner.View()))
	}
	return b.String()
}

func (m Model) renderMessage(msg model.Message, agentName string) string {
	if msg.IsUser() {
		meta := m.theme.MessageMeta.Render(msg.Role.DisplayName() + "  " + msg.FormatTime())
		bubble := m.theme.UserBubble.Width(m.bubbleWidth()).Render(msg.Content)
		return lipgloss.JoinVertical(lipgloss.Left, meta, bubble)
	}

	meta := m.theme.MessageMeta.Render(agentName + "  " + msg.FormatTime())
	bubble := m.theme.AssistantBubble.Render(m.md.Render(msg.ID, msg.Content))
	return lipgloss.JoinVertical(lipgloss.Left, meta, bubble)
}

// =============================================================================
// INPUT AND STATUS BAR
// =============================================================================

func (m Model) renderInput() string {
	count := util.RuneLen(m.input.Value())
	counter := fmt.Sprintf("%d/%d", count, maxInputLength)
	switch {
	case count >= maxInputLength*95/100:
		counter = m.theme.CharCountDanger.Render(counter)
	case count >= maxInputLength*80/100:
		counter = m.theme.CharCountWarning.Render(counter)
	default:
		counter = m.theme.CharCount.Render(counter)
	}

	style := m.theme.InputContainer.Width(m.mainWidth() - 2)
	if m.focus != FocusInput {
		style = style.Faint(true)
	}
	return style.Render(m.input.View() + " " + counter)
}

func (m Model) renderStatusBar() string {
	h := m.help
	h.Width = m.mainWidth()
	return m.theme.StatusBar.Width(m.mainWidth()).Render(h.ShortHelpView(m.keys.ShortHelp()))
}

// =============================================================================
// SIDEBAR
// =============================================================================

func (m Model) renderSidebar() string {
	inner := sidebarWidth - 4
	var b strings.Builder

	b.WriteString(m.theme.SidebarTitle.Render("agentdesk"))
	b.WriteString("\n\n")
	b.WriteString(m.theme.SidebarSection.Render("Conversations"))
	b.WriteString("\n")

	index := 0
	group := ""
	for _, item := range m.sidebarItems() {
		if item.agent != nil && item.group != group {
			if group == "" {
				b.WriteString("\n")
				b.WriteString(m.theme.SidebarSection.Render("Agents"))
				b.WriteString("\n")
			}
			group = item.group
			b.WriteString(m.theme.SidebarMeta.Render(util.TruncateWidth(group, inner)))
			b.WriteString("\n")
		}

		var label, meta string
		active := false
		if item.chat != nil {
			label = item.chat.GetTitle()
			meta = item.chat.Preview(inner - 2)
			active = item.chat.ID == m.current.ID
		} else {
			label = item.agent.Glyph() + " " + item.agent.Name
		}

		style := m.theme.SidebarItem
		switch {
		case m.focus == FocusSidebar && index == m.sidebarCursor:
			style = m.theme.SidebarItemSelected
		case active:
			style = m.theme.SidebarItemActive
		}
		b.WriteString(style.Render(util.TruncateWidth(label, inner)))
		b.WriteString("\n")
		if meta != "" {
			b.WriteString(m.theme.SidebarMeta.Render(util.TruncateWidth(meta, inner)))
			b.WriteString("\n")
		}
		index++
	}

	return m.theme.Sidebar.Width(sidebarWidth - 2).Height(m.height - 2).Render(strings.TrimRight(b.String(), "\n"))
}

// =============================================================================
// OVERLAYS
// =============================================================================

// renderOverlay returns the open modal, or "" when none is open.
func (m Model) renderOverlay() string {
	switch {
	case m.showHelp:
		h := m.help
		h.ShowAll = true
		body := m.theme.ModalTitle.Render("Keyboard shortcuts") + "\n\n" + h.FullHelpView(m.keys.FullHelp()) +
			"\n\n" + m.theme.ModalHint.Render("/attach <path>  attach a file    /export [md|json]  export this chat") +
			"\n" + m.theme.ModalHint.Render("Press any key to close")
		return m.theme.Modal.Render(body)
	case m.switcher != nil && m.switcher.IsOpen():
		return m.renderSwitcher()
	case m.models != nil && m.models.IsOpen():
		return m.renderModels()
	case m.rename != nil && m.rename.IsOpen():
		return m.renderRename()
	case m.del != nil && m.del.IsOpen():
		return m.renderDelete()
	case m.form != nil && m.form.IsOpen():
		return m.renderForm()
	}
	return ""
}

func (m Model) renderSwitcher() string {
	var b strings.Builder
	b.WriteString(m.theme.ModalTitle.Render("Switch agent"))
	b.WriteString("\n\n")

	current, _ := m.agentByID(m.displayedChat().AgentID)
	if m.switcher.Phase() == flow.PhaseSelectTrigger {
		b.WriteString(m.theme.ModalLabel.Render("Current agent: "))
		b.WriteString(current.Glyph() + " " + current.Name)
		b.WriteString("\n\n")
		b.WriteString(m.theme.ModalHint.Render("Enter choose another agent  |  Esc cancel"))
		return m.theme.Modal.Render(b.String())
	}

	category := m.switcher.Category()
	if category == "" {
		category = "All"
	}
	b.WriteString(m.query.View())
	b.WriteString("\n")
	b.WriteString(m.theme.ModalLabel.Render("Category: " + category))
	b.WriteString("\n\n")

	results := m.switcher.Results()
	if len(results) == 0 {
		b.WriteString(m.theme.Muted.Render("No agents found"))
		b.WriteString("\n")
	}
	for i, agent := range results {
		line := fmt.Sprintf("%s %s  %s", agent.Glyph(), agent.Name, m.theme.Muted.Render(agent.CategoryLabel()))
		if agent.ID == current.ID {
			line += "  " + m.theme.StatusOnline.Render("(current)")
		}
		if i == m.switcher.Cursor() {
			b.WriteString(m.theme.ModalItemSelected.Render("> " + line))
		} else {
			b.WriteString(m.theme.ModalItem.Render("  " + line))
		}
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(m.theme.ModalHint.Render("Enter select  |  Tab category  |  Esc back"))
	return m.theme.Modal.Render(b.String())
}

func (m Model) renderModels() string {
	var b strings.Builder
	b.WriteString(m.theme.ModalTitle.Render("Select model"))
	b.WriteString("\n\n")
	b.WriteString(m.query.View())
	b.WriteString("\n\n")

	selected := m.models.Selected()
	visible := m.models.Visible()
	if len(visible) == 0 {
		b.WriteString(m.theme.Muted.Render("No models found"))
		b.WriteString("\n")
	}
	for i, info := range visible {
		status := m.theme.StatusOnline
		switch info.Status {
		case model.StatusSlow:
			status = m.theme.StatusSlow
		case model.StatusOffline:
			status = m.theme.StatusOffline
		}
		check := "  "
		if info.ID == selected.ID {
			check = "* "
		}
		line := fmt.Sprintf("%s%s %s  %s  %s", check, status.Render(info.Status.Indicator()), info.Name,
			m.theme.Muted.Render(info.Provider), m.theme.Muted.Render(info.ContextString()))
		if i == m.models.Cursor() {
			b.WriteString(m.theme.ModalItemSelected.Render(line))
		} else {
			b.WriteString(m.theme.ModalItem.Render(line))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if m.models.Refreshing() {
		b.WriteString(m.theme.Muted.Render("Refreshing model status..."))
		b.WriteString("\n")
	}
	b.WriteString(m.theme.ModalHint.Render("Enter select  |  C-r refresh  |  Esc close"))
	return m.theme.Modal.Render(b.String())
}

func (m Model) renderRename() string {
	counter := fmt.Sprintf("%d/%d", m.rename.CharCount(), model.MaxTitleLength)
	switch m.rename.Marker() {
	case flow.MarkerDanger:
		counter = m.theme.CharCountDanger.Render(counter)
	case flow.MarkerWarn:
		counter = m.theme.CharCountWarning.Render(counter)
	default:
		counter = m.theme.CharCount.Render(counter)
	}

	body := m.theme.ModalTitle.Render("Rename conversation") + "\n\n" +
		m.renameInput.View() + "\n" + counter + "\n\n" +
		m.theme.ModalHint.Render("Enter save  |  Esc cancel")

	if m.rename.Shake() {
		return m.theme.ModalShake.Render(body)
	}
	return m.theme.Modal.Render(body)
}

func (m Model) renderDelete() string {
	body := m.theme.ModalTitle.Render("Delete conversation?") + "\n\n" +
		util.TruncateWidth(m.del.Title(), 48) + "\n" +
		m.theme.Muted.Render("This cannot be undone.") + "\n\n" +
		m.theme.ModalHint.Render("y delete  |  n cancel")
	return m.theme.Modal.Render(body)
}

func (m Model) renderForm() string {
	var b strings.Builder
	b.WriteString(m.theme.ModalTitle.Render("New agent"))
	b.WriteString("\n\n")

	labels := []string{"Name", "Category", "Instruction"}
	for i, label := range labels {
		style := m.theme.ModalLabel
		if int(m.form.Focus()) == i {
			style = m.theme.ModalFocused
		}
		b.WriteString(style.Render(label))
		b.WriteString("\n")
		b.WriteString(m.formInputs[i].View())
		b.WriteString("\n\n")
	}

	avatarLabel := m.theme.ModalLabel
	if m.form.Focus() == flow.FieldAvatar {
		avatarLabel = m.theme.ModalFocused
	}
	b.WriteString(avatarLabel.Render("Avatar"))
	b.WriteString("\n")
	current := m.form.Avatar()
	for _, avatar := range model.Avatars {
		glyph := " " + model.AvatarGlyph(avatar) + " "
		if avatar == current {
			b.WriteString(m.theme.ModalItemSelected.Render(glyph))
		} else {
			b.WriteString(m.theme.ModalItem.Render(glyph))
		}
	}
	b.WriteString("\n\n")
	b.WriteString(m.theme.ModalHint.Render("Tab next field  |  Enter create  |  Esc cancel"))
	return m.theme.Modal.Render(b.String())
}

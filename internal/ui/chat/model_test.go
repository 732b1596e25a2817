// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"context"
	"math/rand/v2"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/agentdesk/internal/conversation"
	"github.com/jeranaias/agentdesk/internal/flow"
	"github.com/jeranaias/agentdesk/internal/model"
	"github.com/jeranaias/agentdesk/internal/session"
	"github.com/jeranaias/agentdesk/internal/storage"
	"github.com/jeranaias/agentdesk/internal/ui/components"
	"github.com/jeranaias/agentdesk/internal/ui/styles"
	"github.com/jeranaias/agentdesk/internal/view"
)

// =============================================================================
// FIXTURE
// =============================================================================

type fixture struct {
	store  *session.Store
	prefs  *storage.Store
	engine *conversation.Engine
	rec    *view.Recorder
	model  Model
}

// blockUntilCancelled keeps a generation pending until it is cancelled.
func blockUntilCancelled(ctx context.Context, _ time.Duration) error {
	<-ctx.Done()
	return ctx.Err()
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	rec := &view.Recorder{}
	prefs := storage.New(storage.NewMemoryBackend(), nil)
	store := session.New(prefs, rec)
	store.Init()

	engine := conversation.New(store,
		conversation.NewCannedGenerator(rand.New(rand.NewPCG(1, 2))),
		rec, conversation.DefaultConfig(),
		conversation.WithSleep(blockUntilCancelled))
	t.Cleanup(engine.Close)

	m := New(context.Background(), Deps{
		Store:     store,
		Engine:    engine,
		Prefs:     prefs,
		Switcher:  flow.NewAgentSwitch(store, rec),
		Models:    flow.NewModelSelector(prefs, engine, rec, model.DefaultModelID, flow.WithRefreshDelay(0)),
		Rename:    flow.NewRenameModal(store, rec),
		Delete:    flow.NewDeleteModal(store, rec),
		Form:      flow.NewAgentForm(store, rec),
		Toasts:    components.NewToastManager(0, time.Second),
		Theme:     styles.NewTheme(styles.ModeDark),
		ExportDir: t.TempDir(),
	})
	return &fixture{store: store, prefs: prefs, engine: engine, rec: rec, model: m}
}

func (f *fixture) send(msgs ...tea.Msg) {
	for _, msg := range msgs {
		next, _ := f.model.Update(msg)
		f.model = next.(Model)
	}
}

func (f *fixture) typeText(s string) {
	f.send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)})
}

func key(t tea.KeyType) tea.KeyMsg { return tea.KeyMsg{Type: t} }

func toastMessages(m Model) []string {
	var out []string
	for _, toast := range m.toasts.Toasts() {
		out = append(out, toast.Message)
	}
	return out
}

// =============================================================================
// PROJECTED STATE
// =============================================================================

func TestNew_ReadsInitialState(t *testing.T) {
	f := newFixture(t)

	assert.Equal(t, "1", f.model.CurrentChat().ID)
	assert.False(t, f.model.Generating())
	assert.Equal(t, FocusInput, f.model.Focus())
	assert.Len(t, f.model.agents, 3)
}

func TestUpdate_ProjectorMessages(t *testing.T) {
	f := newFixture(t)

	msg := model.NewAssistantMessage("Second reply")
	f.send(MessageAppendedMsg{ChatID: "1", Message: msg})
	f.send(MessageAppendedMsg{ChatID: "1", Message: msg})
	require.Len(t, f.model.CurrentChat().Messages, 2)

	f.send(MessageAppendedMsg{ChatID: "other", Message: model.NewUserMessage("x")})
	assert.Len(t, f.model.CurrentChat().Messages, 2)

	f.send(GenerationMsg{Generating: true})
	assert.True(t, f.model.Generating())

	f.send(NotifyMsg{Message: "Agent created successfully!", Severity: view.SeveritySuccess})
	assert.Contains(t, toastMessages(f.model), "Agent created successfully!")

	f.send(ThemeMsg{Mode: styles.ModeLight})
	assert.Equal(t, "light", f.model.Theme().Appearance())
}

func TestUpdate_ToastExpiry(t *testing.T) {
	f := newFixture(t)

	f.send(NotifyMsg{Message: "one", Severity: view.SeverityInfo})
	toasts := f.model.toasts.Toasts()
	require.Len(t, toasts, 1)

	f.send(components.ToastExpiredMsg{ID: toasts[0].ID})
	assert.Empty(t, f.model.toasts.Toasts())
}

// =============================================================================
// CONVERSATION ACTIONS
// =============================================================================

func TestSubmit_SendsAndCancel(t *testing.T) {
	f := newFixture(t)

	f.typeText("hello")
	f.send(key(tea.KeyEnter))

	chat := f.store.CurrentChat()
	require.Len(t, chat.Messages, 2)
	assert.Equal(t, "hello", chat.Messages[1].Content)
	assert.Empty(t, f.model.Draft())
	assert.True(t, f.store.IsGenerating())

	f.send(GenerationMsg{Generating: true})
	f.send(key(tea.KeyEscape))
	assert.False(t, f.store.IsGenerating())
	assert.Len(t, f.store.CurrentChat().Messages, 2)
}

func TestSubmit_BlankIsNoop(t *testing.T) {
	f := newFixture(t)

	f.typeText("   ")
	f.send(key(tea.KeyEnter))
	assert.Len(t, f.store.CurrentChat().Messages, 1)
}

func TestNewChat(t *testing.T) {
	f := newFixture(t)

	f.send(key(tea.KeyCtrlN))
	assert.Len(t, f.store.Chats(), 2)
	assert.NotEqual(t, "1", f.store.CurrentChatID())
}

func TestCopyLastReply(t *testing.T) {
	f := newFixture(t)
	var copied string
	f.model = f.model.WithClipboard(func(s string) error {
		copied = s
		return nil
	})

	f.send(key(tea.KeyCtrlY))
	assert.Equal(t, model.SeedGreeting, copied)
	assert.Contains(t, toastMessages(f.model), "Message copied!")
}

func TestToggleTheme_PersistsPreference(t *testing.T) {
	f := newFixture(t)

	f.send(key(tea.KeyCtrlT))
	assert.Equal(t, "light", f.model.Theme().Appearance())

	value, ok, err := f.prefs.LoadPreference(storage.KeyTheme)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "light", value)
}

func TestAttachCommand(t *testing.T) {
	f := newFixture(t)
	path := filepath.Join(t.TempDir(), "notes.txt")
	require.NoError(t, os.WriteFile(path, []byte("hi"), 0o600))

	f.typeText("/attach " + path)
	f.send(key(tea.KeyEnter))

	assert.Equal(t, "[Attached file: notes.txt]", f.model.Draft())
	assert.Contains(t, toastMessages(f.model), `File "notes.txt" attached successfully!`)
	assert.Len(t, f.store.CurrentChat().Messages, 1)
}

func TestExportCommand(t *testing.T) {
	f := newFixture(t)

	f.typeText("/export json")
	f.send(key(tea.KeyEnter))

	entries, err := os.ReadDir(f.model.exportDir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.True(t, strings.HasSuffix(entries[0].Name(), ".json"))
}

// =============================================================================
// OVERLAYS
// =============================================================================

func TestRenameOverlay(t *testing.T) {
	f := newFixture(t)

	f.send(key(tea.KeyCtrlE))
	require.True(t, f.model.rename.IsOpen())
	f.model.renameInput.SetValue("")
	f.typeText("Launch plan")
	f.send(key(tea.KeyEnter))

	assert.False(t, f.model.rename.IsOpen())
	chat, err := f.store.Chat("1")
	require.NoError(t, err)
	assert.Equal(t, "Launch plan", chat.Title)
}

func TestRenameOverlay_BlankStaysOpen(t *testing.T) {
	f := newFixture(t)

	f.send(key(tea.KeyCtrlE))
	f.model.renameInput.SetValue("")
	f.model.rename.SetInput("")
	f.send(key(tea.KeyEnter))

	assert.True(t, f.model.rename.IsOpen())
	assert.True(t, f.model.rename.Shake())
	assert.Contains(t, f.model.View(), "Rename conversation")
}

func TestDeleteOverlay(t *testing.T) {
	f := newFixture(t)
	_, err := f.store.CreateChat("")
	require.NoError(t, err)

	f.send(key(tea.KeyCtrlX))
	require.True(t, f.model.del.IsOpen())
	f.typeText("y")

	assert.False(t, f.model.del.IsOpen())
	assert.Len(t, f.store.Chats(), 1)
}

func TestDeleteOverlay_Cancel(t *testing.T) {
	f := newFixture(t)

	f.send(key(tea.KeyCtrlX))
	f.typeText("n")
	assert.False(t, f.model.del.IsOpen())
	assert.Len(t, f.store.Chats(), 1)
}

func TestAgentSwitchOverlay(t *testing.T) {
	f := newFixture(t)

	f.send(key(tea.KeyCtrlA))
	assert.Equal(t, flow.PhaseSelectTrigger, f.model.switcher.Phase())
	f.send(key(tea.KeyEnter))
	assert.Equal(t, flow.PhaseSelectAgent, f.model.switcher.Phase())

	f.typeText("programador")
	require.Len(t, f.model.switcher.Results(), 1)
	f.send(key(tea.KeyEnter))

	assert.False(t, f.model.switcher.IsOpen())
	assert.Equal(t, "2", f.store.CurrentAgentID())
}

func TestAgentSwitchOverlay_EscGoesBack(t *testing.T) {
	f := newFixture(t)

	f.send(key(tea.KeyCtrlA), key(tea.KeyEnter), key(tea.KeyEscape))
	assert.Equal(t, flow.PhaseSelectTrigger, f.model.switcher.Phase())
	f.send(key(tea.KeyEscape))
	assert.False(t, f.model.switcher.IsOpen())
	assert.Equal(t, "3", f.store.CurrentAgentID())
}

func TestModelOverlay(t *testing.T) {
	f := newFixture(t)

	f.send(key(tea.KeyCtrlO))
	require.True(t, f.model.models.IsOpen())
	f.typeText("claude")
	visible := f.model.models.Visible()
	require.NotEmpty(t, visible)
	f.send(key(tea.KeyEnter))

	assert.False(t, f.model.models.IsOpen())
	assert.Equal(t, visible[0].ID, f.engine.Model())
	value, ok, err := f.prefs.LoadPreference(storage.KeyPreferredModel)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, visible[0].ID, value)
}

func TestAgentFormOverlay(t *testing.T) {
	f := newFixture(t)

	f.send(key(tea.KeyCtrlG))
	require.True(t, f.model.form.IsOpen())
	f.typeText("Tradutor")
	f.send(key(tea.KeyTab))
	f.typeText("idiomas")
	f.send(key(tea.KeyEnter))

	assert.False(t, f.model.form.IsOpen())
	agents := f.store.Agents()
	require.Len(t, agents, 4)
	assert.Equal(t, "Tradutor", agents[3].Name)
	assert.Equal(t, "idiomas", agents[3].Category)
}

func TestSidebar_LoadChatAndStartWithAgent(t *testing.T) {
	f := newFixture(t)
	second, err := f.store.CreateChat("")
	require.NoError(t, err)
	f.send(ChatsChangedMsg{Chats: f.store.Chats()})

	f.send(key(tea.KeyTab))
	require.Equal(t, FocusSidebar, f.model.Focus())

	// Chats are listed most recent first; the seed chat is second.
	f.send(key(tea.KeyDown), key(tea.KeyEnter))
	assert.Equal(t, "1", f.store.CurrentChatID())
	assert.NotEqual(t, second.ID, f.store.CurrentChatID())
	assert.Equal(t, FocusInput, f.model.Focus())

	// First agent row follows the two chats.
	f.send(key(tea.KeyTab), key(tea.KeyDown), key(tea.KeyEnter))
	assert.Len(t, f.store.Chats(), 3)
}

func TestView_RendersLayout(t *testing.T) {
	f := newFixture(t)
	f.send(tea.WindowSizeMsg{Width: 120, Height: 40})

	out := f.model.View()
	assert.Contains(t, out, "agentdesk")
	assert.Contains(t, out, model.DefaultChatTitle)
	assert.Contains(t, out, "Conversations")
}

func TestErrorText(t *testing.T) {
	assert.Equal(t, "Title is empty", errorText(&model.ValidationError{Field: "title", Message: "title is empty"}))
	assert.Equal(t, `Chat "x" not found`, errorText(&model.NotFoundError{Kind: "chat", ID: "x"}))
}

// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"sync"

	"github.com/peterh/liner"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jeranaias/agentdesk/internal/app"
	"github.com/jeranaias/agentdesk/internal/conversation"
	"github.com/jeranaias/agentdesk/internal/export"
	"github.com/jeranaias/agentdesk/internal/flow"
	"github.com/jeranaias/agentdesk/internal/model"
	"github.com/jeranaias/agentdesk/internal/util"
	"github.com/jeranaias/agentdesk/internal/view"
)

// historyFile is the REPL history, kept in the data directory.
const historyFile = "chat_history"

func newChatCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "chat",
		Short: "Start a line-mode chat session",
		Long: `Start a line-mode chat session in the current chat.

Type a message and press Enter. Lines starting with / are commands; type
/help for the list. Ctrl+C stops a pending reply, Ctrl+D exits.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runChat(cmd, opts)
		},
	}
}

func runChat(cmd *cobra.Command, opts *rootOptions) error {
	a, err := opts.openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	r := newREPL(a, cmd.OutOrStdout())
	a.View.Set(r)
	defer a.View.Set(nil)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt)
	defer func() {
		signal.Stop(sigCh)
		close(sigCh)
	}()
	go func() {
		for range sigCh {
			a.Engine.Cancel()
		}
	}()

	var reader lineReader
	if IsTTY() {
		line := liner.NewLiner()
		line.SetCtrlCAborts(true)
		historyPath := ""
		if dir, err := a.Config.DataDir(); err == nil {
			historyPath = filepath.Join(dir, historyFile)
		}
		loadHistory(line, historyPath)
		defer func() {
			saveHistory(line, historyPath, a.Logger.Logger)
			line.Close()
		}()
		reader = line
	} else {
		reader = newScanReader(cmd.InOrStdin())
	}

	return r.run(cmd.Context(), reader)
}

// =============================================================================
// LINE INPUT
// =============================================================================

// lineReader reads one line of input. *liner.State satisfies it.
type lineReader interface {
	Prompt(prompt string) (string, error)
	AppendHistory(item string)
}

// scanReader reads lines from a non-terminal input.
type scanReader struct {
	scanner *bufio.Scanner
}

func newScanReader(r io.Reader) *scanReader {
	return &scanReader{scanner: bufio.NewScanner(r)}
}

func (s *scanReader) Prompt(string) (string, error) {
	if !s.scanner.Scan() {
		if err := s.scanner.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return s.scanner.Text(), nil
}

func (s *scanReader) AppendHistory(string) {}

func loadHistory(line *liner.State, path string) {
	if path == "" {
		return
	}
	f, err := os.Open(path)
	if err != nil {
		return
	}
	defer f.Close()
	_, _ = line.ReadHistory(f)
}

func saveHistory(line *liner.State, path string, log *zap.Logger) {
	if path == "" {
		return
	}
	var buf bytes.Buffer
	if _, err := line.WriteHistory(&buf); err != nil {
		log.Warn("failed to write chat history", zap.Error(err))
		return
	}
	if err := util.AtomicWriteFile(path, buf.Bytes(), 0600); err != nil {
		log.Warn("failed to save chat history", zap.Error(err))
	}
}

// =============================================================================
// REPL
// =============================================================================

// repl is the line-mode front end. It is also the projector for the core,
// printing replies and notifications as they happen.
type repl struct {
	app   *app.App
	width int
	style string

	mu  sync.Mutex
	out io.Writer

	// draft holds attachment markers waiting for the next message.
	draft string
}

var _ view.Projector = (*repl)(nil)

func newREPL(a *app.App, out io.Writer) *repl {
	return &repl{
		app:   a,
		out:   out,
		width: GetTerminalWidth() - 4,
		style: markdownStyle(),
	}
}

func (r *repl) printf(format string, args ...interface{}) {
	r.mu.Lock()
	defer r.mu.Unlock()
	fmt.Fprintf(r.out, format, args...)
}

// OnAgentsChanged implements view.Projector.
func (r *repl) OnAgentsChanged([]model.Agent) {}

// OnChatsChanged implements view.Projector.
func (r *repl) OnChatsChanged([]model.Chat) {}

// OnCurrentChatChanged implements view.Projector.
func (r *repl) OnCurrentChatChanged(model.Chat) {}

// OnMessageAppended prints assistant replies.
func (r *repl) OnMessageAppended(chatID string, msg model.Message) {
	if msg.IsUser() {
		return
	}
	r.printf("%s\n%s\n\n", TitleStyle.Render(r.agentName(chatID)), r.renderContent(msg.Content))
}

// OnGenerationStateChanged prints a typing hint.
func (r *repl) OnGenerationStateChanged(generating bool) {
	if generating {
		r.printf("%s\n", DimStyle.Render(r.app.Store.CurrentAgent().Name+" is typing... (Ctrl+C to stop)"))
	}
}

// OnNotify prints a notification line.
func (r *repl) OnNotify(message string, severity view.Severity) {
	r.printf("%s\n", RenderNotification(message, severity))
}

func (r *repl) agentName(chatID string) string {
	if chat, err := r.app.Store.Chat(chatID); err == nil {
		if agent, ok := r.app.Store.Agent(chat.AgentID); ok {
			return agent.Name
		}
	}
	return model.RoleAssistant.DisplayName()
}

func (r *repl) renderContent(content string) string {
	if r.style == "notty" {
		return content
	}
	out, err := export.RenderMarkdown(content, r.width, r.style)
	if err != nil {
		return content
	}
	return strings.Trim(out, "\n")
}

// run reads lines until EOF or /quit.
func (r *repl) run(ctx context.Context, in lineReader) error {
	r.printWelcome()
	for {
		line, err := in.Prompt(r.prompt())
		if errors.Is(err, io.EOF) || errors.Is(err, liner.ErrPromptAborted) {
			r.printf("\n")
			return nil
		}
		if err != nil {
			return err
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		in.AppendHistory(line)

		if strings.HasPrefix(line, "/") {
			quit, err := r.command(ctx, line)
			if err != nil {
				r.printErr(err)
			}
			if quit {
				return nil
			}
			continue
		}

		r.send(ctx, line)
	}
}

func (r *repl) prompt() string {
	return PromptStyle.Render(r.app.Store.CurrentAgent().Name+" > ")
}

func (r *repl) printWelcome() {
	chat := r.app.Store.CurrentChat()
	agent := r.app.Store.CurrentAgent()
	r.printf("%s\n", TitleStyle.Render("agentdesk"))
	r.printf("%s%s\n", RenderLabel("Chat"), chat.GetTitle())
	r.printf("%s%s %s\n", RenderLabel("Agent"), agent.Glyph(), agent.Name)
	r.printf("%s%s\n", RenderLabel("Model"), r.app.Models.Selected().Name)
	r.printf("%s\n\n", DimStyle.Render("Type /help for commands."))
	r.printHistory(chat)
}

func (r *repl) printHistory(chat model.Chat) {
	agent, _ := r.app.Store.Agent(chat.AgentID)
	for _, msg := range chat.Messages {
		name := agent.Name
		if msg.IsUser() {
			name = msg.Role.DisplayName()
		}
		r.printf("%s %s\n%s\n\n", TitleStyle.Render(name), DimStyle.Render(msg.FormatTime()), r.renderContent(msg.Content))
	}
}

func (r *repl) printErr(err error) {
	var ve *model.ValidationError
	if errors.As(err, &ve) {
		r.printf("%s\n", RenderNotification(ve.Message, view.SeverityError))
		return
	}
	r.printf("%s\n", RenderNotification(err.Error(), view.SeverityError))
}

// send sends a message and waits for the reply.
func (r *repl) send(ctx context.Context, text string) {
	if r.draft != "" {
		text = r.draft + "\n" + text
		r.draft = ""
	}
	if err := r.app.Engine.SendUserMessage(ctx, text); err != nil {
		r.printErr(err)
		return
	}
	r.app.Engine.Wait()
}

// =============================================================================
// COMMANDS
// =============================================================================

const replHelp = `Commands:
  /new [agent-id]        Start a new chat
  /chats                 List chats
  /load <chat-id>        Open a chat
  /rename <title>        Rename the current chat
  /delete                Delete the current chat
  /agents                List agents
  /agent <id or name>    Switch the current chat's agent
  /newagent <name> [| category [| instruction]]
                         Create an agent
  /models                List models
  /model <id>            Select a model
  /refresh               Refresh model status
  /regen                 Regenerate the last reply
  /attach <path>         Attach a file to the next message
  /export [md|json]      Export the current chat
  /history               Show the current chat
  /quit                  Exit`

// command runs a slash command. It reports whether the REPL should exit.
func (r *repl) command(ctx context.Context, line string) (bool, error) {
	name, arg, _ := strings.Cut(line, " ")
	arg = strings.TrimSpace(arg)
	store := r.app.Store

	switch name {
	case "/quit", "/q", "/exit":
		return true, nil

	case "/help", "/h":
		r.printf("%s\n", replHelp)

	case "/new":
		chat, err := store.CreateChat(arg)
		if err != nil {
			return false, err
		}
		r.printf("%s\n", RenderNotification("Started "+chat.GetTitle()+" with "+store.CurrentAgent().Name, view.SeverityInfo))

	case "/chats":
		current := store.CurrentChatID()
		for _, chat := range store.Chats() {
			marker := "  "
			if chat.ID == current {
				marker = "* "
			}
			r.printf("%s%s  %s  %s\n", marker, DimStyle.Render(chat.ID), chat.GetTitle(), DimStyle.Render(chat.Preview(40)))
		}

	case "/load":
		chat, err := store.LoadChat(arg)
		if err != nil {
			return false, err
		}
		r.printHistory(chat)

	case "/rename":
		if err := r.app.Rename.Open(store.CurrentChatID()); err != nil {
			return false, err
		}
		defer r.app.Rename.Close()
		r.app.Rename.SetInput(arg)
		if err := r.app.Rename.Save(); err != nil && !errors.Is(err, model.ErrValidation) {
			return false, err
		}

	case "/delete":
		if err := r.app.Delete.Open(store.CurrentChatID()); err != nil {
			return false, err
		}
		defer r.app.Delete.Close()
		if err := r.app.Delete.Confirm(); err != nil {
			return false, err
		}

	case "/agents":
		current := store.CurrentAgentID()
		for _, group := range store.AgentGroups() {
			r.printf("%s\n", SectionStyle.Render(group.Label))
			for _, agent := range group.Agents {
				marker := "  "
				if agent.ID == current {
					marker = "* "
				}
				r.printf("%s%s %s  %s\n", marker, agent.Glyph(), agent.Name, DimStyle.Render(agent.ID))
			}
		}

	case "/agent":
		return false, r.switchAgent(arg)

	case "/newagent":
		return false, r.createAgent(arg)

	case "/models":
		selected := r.app.Models.Selected().ID
		for _, info := range model.Catalog() {
			marker := "  "
			if info.ID == selected {
				marker = "* "
			}
			r.printf("%s%s %s  %s  %s\n", marker, info.Status.Indicator(), info.ID, info.Name, DimStyle.Render(info.Description))
		}

	case "/model":
		return false, r.app.Models.Select(arg)

	case "/refresh":
		if err := r.app.Models.Refresh(ctx); err != nil {
			if errors.Is(err, flow.ErrRefreshThrottled) {
				r.printf("%s\n", RenderNotification("Model list was refreshed recently.", view.SeverityInfo))
				return false, nil
			}
			return false, err
		}

	case "/regen":
		index := store.CurrentChat().LastAssistantIndex()
		if index < 0 {
			r.printf("%s\n", RenderNotification("Nothing to regenerate.", view.SeverityInfo))
			return false, nil
		}
		if err := r.app.Engine.Regenerate(ctx, index); err != nil {
			return false, err
		}
		r.app.Engine.Wait()

	case "/attach":
		marker, err := conversation.AttachFile(arg)
		if err != nil {
			return false, err
		}
		r.draft = conversation.AppendToDraft(r.draft, marker)
		r.printf("%s\n", RenderNotification(fmt.Sprintf("File %q attached successfully!", filepath.Base(arg)), view.SeveritySuccess))

	case "/export":
		return false, r.exportCurrent(arg)

	case "/history":
		r.printHistory(store.CurrentChat())

	default:
		return false, fmt.Errorf("unknown command %s (try /help)", name)
	}
	return false, nil
}

// switchAgent runs the agent switch wizard: an exact id wins, otherwise the
// first agent matching the text.
func (r *repl) switchAgent(arg string) error {
	w := r.app.Switcher
	w.Open()
	defer w.Cancel()
	if err := w.Advance(); err != nil {
		return err
	}
	if _, ok := r.app.Store.Agent(arg); ok {
		return w.Select(arg)
	}
	w.SetQuery(arg)
	if _, ok := w.Highlighted(); !ok {
		return &model.NotFoundError{Kind: "agent", ID: arg}
	}
	return w.SelectHighlighted()
}

// createAgent parses "name | category | instruction" and submits the agent
// form.
func (r *repl) createAgent(arg string) error {
	parts := strings.SplitN(arg, "|", 3)
	f := r.app.Form
	f.Open()
	defer f.Close()
	f.SetName(strings.TrimSpace(parts[0]))
	if len(parts) > 1 {
		f.SetCategory(strings.TrimSpace(parts[1]))
	}
	if len(parts) > 2 {
		f.SetInstruction(strings.TrimSpace(parts[2]))
	}
	_, err := f.Save()
	if errors.Is(err, model.ErrValidation) {
		return nil
	}
	return err
}

func (r *repl) exportCurrent(format string) error {
	chat := r.app.Store.CurrentChat()
	agent, _ := r.app.Store.Agent(chat.AgentID)
	opts := export.DefaultOptions()
	if dir, err := r.app.Config.DataDir(); err == nil {
		opts.OutputDir = dir
	}
	path, err := export.ExportChat(&export.Document{Chat: chat, Agent: agent, ModelID: r.app.Engine.Model()}, format, opts)
	if err != nil {
		return err
	}
	r.printf("%s\n", RenderNotification("Chat exported to "+path, view.SeveritySuccess))
	return nil
}

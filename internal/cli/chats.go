// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/jeranaias/agentdesk/internal/model"
	"github.com/jeranaias/agentdesk/internal/util"
)

func newChatsCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "chats",
		Short: "List, show, rename and delete chats",
	}
	cmd.AddCommand(
		newChatsListCmd(opts),
		newChatsShowCmd(opts),
		newChatsRenameCmd(opts),
		newChatsDeleteCmd(opts),
	)
	return cmd
}

// chatSummary is the JSON shape of a chat listing entry.
type chatSummary struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	AgentID   string    `json:"agentId"`
	Messages  int       `json:"messages"`
	Preview   string    `json:"preview"`
	CreatedAt time.Time `json:"createdAt"`
	Current   bool      `json:"current"`
}

func newChatsListCmd(opts *rootOptions) *cobra.Command {
	var jsonMode bool
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List chats, most recent first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := opts.openApp()
			if err != nil {
				return err
			}
			defer a.Close()

			out := cmd.OutOrStdout()
			current := a.Store.CurrentChatID()
			return OutputJSON(out, jsonMode, "chats list", func() (interface{}, error) {
				chats := a.Store.Chats()
				summaries := make([]chatSummary, 0, len(chats))
				for _, chat := range chats {
					summaries = append(summaries, chatSummary{
						ID:        chat.ID,
						Title:     chat.GetTitle(),
						AgentID:   chat.AgentID,
						Messages:  len(chat.Messages),
						Preview:   chat.Preview(60),
						CreatedAt: chat.CreatedAt,
						Current:   chat.ID == current,
					})
				}
				if jsonMode {
					return summaries, nil
				}
				for _, s := range summaries {
					marker := "  "
					if s.Current {
						marker = SuccessStyle.Render("* ")
					}
					fmt.Fprintf(out, "%s%s  %s  %s\n", marker, DimStyle.Render(s.ID),
						util.PadWidth(util.TruncateWidth(s.Title, 30), 30), DimStyle.Render(s.Preview))
				}
				return nil, nil
			})
		},
	}
	cmd.Flags().BoolVar(&jsonMode, "json", false, "Output in JSON format")
	return cmd
}

func newChatsShowCmd(opts *rootOptions) *cobra.Command {
	var jsonMode bool
	cmd := &cobra.Command{
		Use:   "show <chat-id>",
		Short: "Print a chat transcript",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := opts.openApp()
			if err != nil {
				return err
			}
			defer a.Close()

			out := cmd.OutOrStdout()
			return OutputJSON(out, jsonMode, "chats show", func() (interface{}, error) {
				chat, err := a.Store.Chat(args[0])
				if err != nil {
					return nil, err
				}
				if jsonMode {
					return chat, nil
				}
				agent, _ := a.Store.Agent(chat.AgentID)
				fmt.Fprintln(out, TitleStyle.Render(chat.GetTitle()))
				fmt.Fprintf(out, "%s%s %s\n\n", RenderLabel("Agent"), agent.Glyph(), agent.Name)
				for _, msg := range chat.Messages {
					name := agent.Name
					if msg.Role == model.RoleUser {
						name = msg.Role.DisplayName()
					}
					fmt.Fprintf(out, "%s %s\n%s\n\n", SectionStyle.UnsetMarginTop().Render(name), DimStyle.Render(msg.FormatTime()), msg.Content)
				}
				return nil, nil
			})
		},
	}
	cmd.Flags().BoolVar(&jsonMode, "json", false, "Output in JSON format")
	return cmd
}

func newChatsRenameCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "rename <chat-id> <title>",
		Short: "Rename a chat",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := opts.openApp()
			if err != nil {
				return err
			}
			defer a.Close()
			a.View.Set(notifyPrinter{out: cmd.OutOrStdout()})

			if err := a.Rename.Open(args[0]); err != nil {
				return err
			}
			defer a.Rename.Close()
			a.Rename.SetInput(args[1])
			return a.Rename.Save()
		},
	}
}

func newChatsDeleteCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <chat-id>",
		Short: "Delete a chat",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := opts.openApp()
			if err != nil {
				return err
			}
			defer a.Close()
			a.View.Set(notifyPrinter{out: cmd.OutOrStdout()})

			if err := a.Delete.Open(args[0]); err != nil {
				return err
			}
			defer a.Delete.Close()
			return a.Delete.Confirm()
		},
	}
}

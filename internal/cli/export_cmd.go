// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jeranaias/agentdesk/internal/export"
	"github.com/jeranaias/agentdesk/internal/view"
)

func newExportCmd(opts *rootOptions) *cobra.Command {
	var (
		format   string
		outDir   string
		preview  bool
		noMeta   bool
		noTimes  bool
		openFile bool
	)
	cmd := &cobra.Command{
		Use:   "export [chat-id]",
		Short: "Export a chat to Markdown or JSON",
		Long: `Export a chat to Markdown or JSON. Without a chat id the current chat is
exported. With --preview the Markdown is rendered to the terminal instead
of written to a file.`,
		Example: `  agentdesk export
  agentdesk export 1f0c... --format json --out ./exports
  agentdesk export --preview`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := opts.openApp()
			if err != nil {
				return err
			}
			defer a.Close()

			chat := a.Store.CurrentChat()
			if len(args) == 1 {
				if chat, err = a.Store.Chat(args[0]); err != nil {
					return err
				}
			}
			agent, _ := a.Store.Agent(chat.AgentID)
			doc := &export.Document{Chat: chat, Agent: agent, ModelID: a.Engine.Model()}
			out := cmd.OutOrStdout()

			if preview {
				rendered, err := export.Preview(doc, GetTerminalWidth(), markdownStyle())
				if err != nil {
					return err
				}
				fmt.Fprint(out, rendered)
				return nil
			}

			exportOpts := export.DefaultOptions()
			exportOpts.IncludeMetadata = !noMeta
			exportOpts.IncludeTimestamps = !noTimes
			exportOpts.OpenAfterExport = openFile
			exportOpts.OutputDir = outDir
			if exportOpts.OutputDir == "" {
				if exportOpts.OutputDir, err = a.Config.DataDir(); err != nil {
					return err
				}
			}
			path, err := export.ExportChat(doc, format, exportOpts)
			if err != nil {
				return err
			}
			fmt.Fprintln(out, RenderNotification("Chat exported to "+path, view.SeveritySuccess))
			return nil
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "md", "Export format: md or json")
	cmd.Flags().StringVarP(&outDir, "out", "o", "", "Output directory (default: data directory)")
	cmd.Flags().BoolVar(&preview, "preview", false, "Render the chat to the terminal")
	cmd.Flags().BoolVar(&noMeta, "no-metadata", false, "Omit the metadata header")
	cmd.Flags().BoolVar(&noTimes, "no-timestamps", false, "Omit message timestamps")
	cmd.Flags().BoolVar(&openFile, "open", false, "Open the file after export")
	return cmd
}

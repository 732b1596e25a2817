// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jeranaias/agentdesk/internal/view"
)

func newResetCmd(opts *rootOptions) *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Delete all chats, agents and preferences",
		Long: `Delete all saved chats, custom agents and preferences, and start over
with the built-in agents and a fresh chat.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if !yes {
				fmt.Fprint(out, "This deletes all chats, agents and preferences. Continue? [y/N] ")
				answer, _ := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
				answer = strings.ToLower(strings.TrimSpace(answer))
				if answer != "y" && answer != "yes" {
					fmt.Fprintln(out, DimStyle.Render("Aborted."))
					return nil
				}
			}

			a, err := opts.openApp()
			if err != nil {
				return err
			}
			defer a.Close()
			a.View.Set(notifyPrinter{out: out})

			if err := a.Reset(); err != nil {
				return err
			}
			fmt.Fprintln(out, RenderNotification("All data cleared.", view.SeveritySuccess))
			return nil
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip the confirmation prompt")
	return cmd
}

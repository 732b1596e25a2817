// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/jeranaias/agentdesk/internal/model"
)

func newAgentsCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "agents",
		Short: "List and create agents",
	}
	cmd.AddCommand(newAgentsListCmd(opts), newAgentsCreateCmd(opts))
	return cmd
}

// agentJSON is the JSON shape of an agent listing entry.
type agentJSON struct {
	model.Agent
	CategoryLabel string `json:"categoryLabel"`
	Current       bool   `json:"current"`
}

func newAgentsListCmd(opts *rootOptions) *cobra.Command {
	var jsonMode bool
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List agents grouped by category",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := opts.openApp()
			if err != nil {
				return err
			}
			defer a.Close()

			out := cmd.OutOrStdout()
			current := a.Store.CurrentAgentID()
			return OutputJSON(out, jsonMode, "agents list", func() (interface{}, error) {
				groups := a.Store.AgentGroups()
				if jsonMode {
					var list []agentJSON
					for _, g := range groups {
						for _, agent := range g.Agents {
							list = append(list, agentJSON{Agent: agent, CategoryLabel: g.Label, Current: agent.ID == current})
						}
					}
					return list, nil
				}
				for _, g := range groups {
					fmt.Fprintln(out, SectionStyle.Render(g.Label))
					for _, agent := range g.Agents {
						printAgent(out, agent, agent.ID == current)
					}
				}
				return nil, nil
			})
		},
	}
	cmd.Flags().BoolVar(&jsonMode, "json", false, "Output in JSON format")
	return cmd
}

func printAgent(out io.Writer, agent model.Agent, current bool) {
	marker := "  "
	if current {
		marker = SuccessStyle.Render("* ")
	}
	fmt.Fprintf(out, "%s%s %-24s %s\n", marker, agent.Glyph(), agent.Name, DimStyle.Render(agent.ID))
}

func newAgentsCreateCmd(opts *rootOptions) *cobra.Command {
	var name, category, instruction, avatar string
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create an agent",
		Example: `  agentdesk agents create --name "SQL Helper" --category Data \
      --instruction "Answer with PostgreSQL queries." --avatar cat`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if avatar != "" && !model.IsAvatar(avatar) {
				return &model.ValidationError{Field: "avatar", Message: fmt.Sprintf("unknown avatar %q", avatar)}
			}
			a, err := opts.openApp()
			if err != nil {
				return err
			}
			defer a.Close()
			a.View.Set(notifyPrinter{out: cmd.OutOrStdout()})

			f := a.Form
			f.Open()
			defer f.Close()
			f.SetName(name)
			f.SetCategory(category)
			f.SetInstruction(instruction)
			if avatar != "" {
				f.SelectAvatar(avatar)
			}
			agent, err := f.Save()
			if err != nil {
				return err
			}
			printAgent(cmd.OutOrStdout(), agent, false)
			return nil
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "Agent name (required)")
	cmd.Flags().StringVar(&category, "category", "", "Category (blank means General)")
	cmd.Flags().StringVar(&instruction, "instruction", "", "Instruction (blank uses the default)")
	cmd.Flags().StringVar(&avatar, "avatar", "", "Avatar name")
	return cmd
}

// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/jeranaias/agentdesk/internal/app"
	"github.com/jeranaias/agentdesk/internal/config"
)

// Version information, set by main from build flags.
var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// rootOptions holds the global flags.
type rootOptions struct {
	configPath string
	ephemeral  bool
	verbose    bool
}

// loadConfig reads the config named by --config, or the default one.
func (o *rootOptions) loadConfig() (*config.Config, error) {
	if o.configPath == "" {
		return config.Load()
	}
	if _, err := os.Stat(o.configPath); os.IsNotExist(err) {
		cfg := config.Default()
		cfg.ApplyEnvOverrides()
		return cfg, cfg.Validate()
	}
	return config.LoadFromPath(o.configPath)
}

// configFile returns the path config writes go to.
func (o *rootOptions) configFile() (string, error) {
	if o.configPath != "" {
		return o.configPath, nil
	}
	return config.ConfigPath()
}

// openApp assembles the core for a command.
func (o *rootOptions) openApp() (*app.App, error) {
	cfg, err := o.loadConfig()
	if err != nil {
		return nil, err
	}
	return app.New(app.Options{
		Config:     cfg,
		ConfigPath: o.configPath,
		Ephemeral:  o.ephemeral,
		Verbose:    o.verbose,
	})
}

// NewRootCmd builds the command tree.
func NewRootCmd() *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:   "agentdesk",
		Short: "Chat with configurable AI agents in your terminal",
		Long: `agentdesk keeps conversations with a set of agents, each with its own
persona and instructions. Chats, agents and preferences are stored locally.

Run without arguments to start the interactive interface.`,
		Version:       fmt.Sprintf("%s (commit %s, built %s)", Version, GitCommit, BuildDate),
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !Interactive() {
				return runChat(cmd, opts)
			}
			a, err := opts.openApp()
			if err != nil {
				return err
			}
			defer a.Close()
			return a.RunTUI(cmd.Context())
		},
	}

	root.PersistentFlags().StringVar(&opts.configPath, "config", "", "Config file (default ~/.agentdesk/config.toml)")
	root.PersistentFlags().BoolVar(&opts.ephemeral, "ephemeral", false, "Keep chats and agents in memory only")
	root.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "Enable debug logging")

	root.AddCommand(
		newChatCmd(opts),
		newAgentsCmd(opts),
		newChatsCmd(opts),
		newExportCmd(opts),
		newResetCmd(opts),
		newConfigCmd(opts),
	)
	return root
}

// Execute runs the CLI and returns the process exit code.
func Execute() int {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM)
	defer stop()

	if err := NewRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, ErrorStyle.Render("Error:"), err)
		return 1
	}
	return 0
}

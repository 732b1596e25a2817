// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package app

import (
	"context"
	"errors"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/jeranaias/agentdesk/internal/config"
	"github.com/jeranaias/agentdesk/internal/ui/chat"
	"github.com/jeranaias/agentdesk/internal/ui/components"
	"github.com/jeranaias/agentdesk/internal/ui/styles"
	"github.com/jeranaias/agentdesk/internal/view"
)

// ChatModel builds the TUI model over the assembled core.
func (a *App) ChatModel(ctx context.Context) chat.Model {
	exportDir, err := a.Config.DataDir()
	if err != nil {
		exportDir = "."
	}
	return chat.New(ctx, chat.Deps{
		Store:     a.Store,
		Engine:    a.Engine,
		Prefs:     a.Prefs,
		Switcher:  a.Switcher,
		Models:    a.Models,
		Rename:    a.Rename,
		Delete:    a.Delete,
		Form:      a.Form,
		Toasts:    components.NewToastManager(a.Config.Notifications.Entry(), a.Config.Notifications.Display()),
		Theme:     a.Theme(),
		Logger:    a.Logger.Named("tui"),
		ExportDir: exportDir,
	})
}

// RunTUI runs the Bubble Tea program until the user quits or ctx is done.
// While it runs, edits to the config file apply the new theme and log
// level.
func (a *App) RunTUI(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	program := tea.NewProgram(a.ChatModel(ctx), tea.WithAltScreen(), tea.WithMouseCellMotion())
	projector := chat.NewProjector(program)
	a.View.Set(projector)
	defer func() {
		a.View.Set(view.Nop{})
		projector.Close()
	}()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		defer cancel()
		_, err := program.Run()
		return err
	})
	g.Go(func() error {
		<-gctx.Done()
		program.Quit()
		return nil
	})

	if watcher := a.newConfigWatcher(projector); watcher != nil {
		g.Go(func() error {
			if err := watcher.Run(gctx); !errors.Is(err, context.Canceled) {
				return err
			}
			return nil
		})
	}

	err := g.Wait()
	a.Engine.Close()
	return err
}

// newConfigWatcher watches the config file, or returns nil when it cannot.
func (a *App) newConfigWatcher(sender chat.Sender) *config.Watcher {
	path := a.configPath
	if path == "" {
		p, err := config.ConfigPath()
		if err != nil {
			return nil
		}
		path = p
	}
	watcher, err := config.NewWatcher(path, config.DefaultWatchDebounce, a.Logger.Named("config"), func(cfg *config.Config) {
		a.ApplyConfig(cfg)
		sender.Send(chat.ThemeMsg{Mode: styles.ParseMode(cfg.UI.Theme)})
	})
	if err != nil {
		a.Logger.Debug("config watch disabled", zap.String("path", path), zap.Error(err))
		return nil
	}
	return watcher
}

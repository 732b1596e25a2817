// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package app

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/jeranaias/agentdesk/internal/config"
	"github.com/jeranaias/agentdesk/internal/conversation"
	"github.com/jeranaias/agentdesk/internal/flow"
	"github.com/jeranaias/agentdesk/internal/logging"
	"github.com/jeranaias/agentdesk/internal/model"
	"github.com/jeranaias/agentdesk/internal/session"
	"github.com/jeranaias/agentdesk/internal/storage"
	"github.com/jeranaias/agentdesk/internal/ui/styles"
	"github.com/jeranaias/agentdesk/internal/view"
)

// Options control how the application is assembled.
type Options struct {
	// Config is used as is when set; otherwise the config file is loaded.
	Config *config.Config

	// ConfigPath is the file watched for live changes. Empty means the
	// default config path.
	ConfigPath string

	// Ephemeral keeps everything in memory.
	Ephemeral bool

	// Verbose forces debug logging.
	Verbose bool

	// Logger replaces the file logger built from the config.
	Logger *logging.Logger

	// Generator replaces the canned response generator.
	Generator conversation.Generator
}

// App is the assembled core: configuration, logging, persistence, the
// domain store, the conversation engine and the interactive flows.
type App struct {
	Config *config.Config
	Logger *logging.Logger

	Prefs  *storage.Store
	Store  *session.Store
	Engine *conversation.Engine

	// View receives every core event. Front ends install their projector
	// with View.Set.
	View *view.Swappable

	Switcher *flow.AgentSwitch
	Models   *flow.ModelSelector
	Rename   *flow.RenameModal
	Delete   *flow.DeleteModal
	Form     *flow.AgentForm

	configPath string
	ownsLogger bool
}

// New assembles the application in order: config, logger, storage
// backend, domain store (seed, overlay, ready), engine, then flows.
func New(opts Options) (*App, error) {
	cfg := opts.Config
	if cfg == nil {
		loaded, err := config.Load()
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}
	if opts.Ephemeral {
		cfg.Storage.Backend = storage.BackendMemory
	}

	a := &App{Config: cfg, configPath: opts.ConfigPath}

	a.Logger = opts.Logger
	if a.Logger == nil {
		logger, err := newLogger(cfg, opts.Verbose)
		if err != nil {
			return nil, err
		}
		a.Logger = logger
		a.ownsLogger = true
	}
	log := a.Logger.Logger

	dir, err := cfg.DataDir()
	if err != nil {
		a.closeLogger()
		return nil, err
	}
	backend, err := storage.OpenBackend(cfg.Storage.Backend, dir)
	if err != nil {
		a.closeLogger()
		return nil, fmt.Errorf("failed to open %s storage: %w", cfg.Storage.Backend, err)
	}
	a.Prefs = storage.New(backend, log.Named("storage"))

	a.View = view.NewSwappable()
	a.Store = session.New(a.Prefs, a.View, session.WithLogger(log.Named("session")))
	a.Store.Init()

	modelID := a.preferredModel()
	gen := opts.Generator
	if gen == nil {
		gen = conversation.NewCannedGenerator(nil)
	}
	a.Engine = conversation.New(a.Store, gen, a.View, conversation.Config{
		MinDelay: cfg.Generation.MinDelay(),
		MaxDelay: cfg.Generation.MaxDelay(),
		ModelID:  modelID,
	}, conversation.WithLogger(log.Named("engine")))

	a.Switcher = flow.NewAgentSwitch(a.Store, a.View)
	a.Models = flow.NewModelSelector(a.Prefs, a.Engine, a.View, modelID,
		flow.WithSelectorLogger(log.Named("models")))
	a.Rename = flow.NewRenameModal(a.Store, a.View)
	a.Delete = flow.NewDeleteModal(a.Store, a.View)
	a.Form = flow.NewAgentForm(a.Store, a.View)

	log.Info("agentdesk started",
		zap.String("backend", cfg.Storage.Backend),
		zap.String("data_dir", dir),
		zap.String("model", modelID),
		zap.Int("agents", len(a.Store.Agents())),
		zap.Int("chats", len(a.Store.Chats())))
	return a, nil
}

func newLogger(cfg *config.Config, verbose bool) (*logging.Logger, error) {
	level := cfg.Log.Level
	if verbose {
		level = "debug"
	}
	if cfg.Storage.Backend == storage.BackendMemory && cfg.Log.File == "" {
		return logging.Nop(), nil
	}
	path, err := cfg.LogPath()
	if err != nil {
		return nil, err
	}
	return logging.New(logging.Options{Level: level, Path: path})
}

// preferredModel returns the stored model preference if it names a model in
// the catalog, else the default.
func (a *App) preferredModel() string {
	id, ok, err := a.Prefs.LoadPreference(storage.KeyPreferredModel)
	if err != nil {
		a.Logger.Warn("failed to load model preference", zap.Error(err))
		return model.DefaultModelID
	}
	if !ok {
		return model.DefaultModelID
	}
	if _, found := model.FindModel(model.Catalog(), id); !found {
		return model.DefaultModelID
	}
	return id
}

// Theme returns the theme to start with: the stored preference when set,
// otherwise the configured mode.
func (a *App) Theme() *styles.Theme {
	mode := styles.ParseMode(a.Config.UI.Theme)
	if value, ok, err := a.Prefs.LoadPreference(storage.KeyTheme); err == nil && ok {
		mode = styles.ParseMode(value)
	}
	return styles.NewTheme(mode)
}

// ApplyConfig takes the live-reloadable parts of cfg: the log level and
// the theme.
func (a *App) ApplyConfig(cfg *config.Config) {
	if err := a.Logger.SetLevel(cfg.Log.Level); err != nil {
		a.Logger.Warn("ignoring log level", zap.String("level", cfg.Log.Level), zap.Error(err))
	}
	a.Config.Log.Level = cfg.Log.Level
	a.Config.UI.Theme = cfg.UI.Theme
	a.Logger.Info("config reloaded", zap.String("theme", cfg.UI.Theme))
}

// Reset stops any pending reply, then clears stored data and reseeds the
// store. The reply must stop first or it would land in the fresh seed chat,
// which reuses the seed id.
func (a *App) Reset() error {
	a.Engine.Cancel()
	a.Engine.Wait()
	return a.Store.Reset()
}

// Close stops pending generation and releases storage and the logger.
func (a *App) Close() error {
	a.Engine.Close()
	var errs []error
	if err := a.Prefs.Close(); err != nil {
		errs = append(errs, fmt.Errorf("failed to close storage: %w", err))
	}
	a.closeLogger()
	return errors.Join(errs...)
}

func (a *App) closeLogger() {
	if a.ownsLogger {
		_ = a.Logger.Close()
	}
}

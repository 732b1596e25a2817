// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides configuration loading and management for
// agentdesk.
//
// # Key Types
//
//   - Config: Main configuration structure
//   - StorageConfig: Persistence backend and data directory
//   - GenerationConfig: Simulated reply delay bounds
//   - NotificationsConfig: Toast timing
//   - Watcher: Live reload of the config file
//
// # Configuration Precedence
//
// Configuration is loaded from (in order of precedence):
//   - Environment variables (AGENTDESK_*)
//   - ~/.agentdesk/config.toml
//   - Built-in defaults
//
// # Usage
//
//	cfg, err := config.Load()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	dir, _ := cfg.DataDir()
package config

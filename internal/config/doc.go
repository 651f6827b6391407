// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config loads coinchat settings from TOML with environment overrides.
//
// # Configuration Precedence
//
// Later sources win:
//   - Built-in defaults
//   - ~/.coinchat/config.toml (or the --config path)
//   - Environment variables (COINCHAT_*)
//   - Command-line flags, applied by the cli package
//
// # Usage
//
//	cfg, err := config.Load("")
//	if err != nil {
//	    return err
//	}
//	interval := cfg.Health.Interval.Duration
package config

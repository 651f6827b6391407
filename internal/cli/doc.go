// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package cli provides the coinchat command tree.
//
// # Commands
//
//   - coinchat, coinchat tui: full-screen chat (default on a terminal)
//   - coinchat chat: line-mode chat with history and slash commands
//   - coinchat ask: one question, one printed reply
//   - coinchat status: one health check; exits non-zero unless connected
//   - coinchat config show|path|init: inspect or create the config file
//   - coinchat version: build information
//
// Global flags (--config, --url, --log-level, --log-file) are applied on
// top of the loaded configuration before any command runs.
//
// # Usage
//
//	func main() {
//	    os.Exit(cli.Execute())
//	}
package cli

// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package commands provides the slash command system shared by the TUI and
// the line-mode REPL.
//
// The package only recognizes commands; each front end decides what an
// Action does. Input that is not a registered command is an ordinary chat
// message, even when it starts with "/".
//
// # Built-in Commands
//
//   - /help (/h, /?): show keys, commands and quick prompts
//   - /quick N (/q N): send quick prompt N
//   - /copy (/c): copy the last reply to the clipboard
//   - /status (/s): re-check the backend connection
//   - /quit (/exit): leave coinchat
//
// # Usage
//
//	parser := commands.NewParser(commands.NewRegistry())
//	res := parser.Parse(input)
//	if res.Command != nil {
//	    switch res.Command.Action { ... }
//	}
package commands

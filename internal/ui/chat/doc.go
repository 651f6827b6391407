// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat provides the Bubble Tea front end for coinchat.
//
// The model owns no conversation state of its own: it submits text to a
// session.Controller and re-renders the controller's messages. Each
// exchange is resolved in a tea.Cmd, so the event loop never blocks on the
// network. Connection status comes from a health.Monitor polled with
// tea.Tick.
//
// # Layout
//
//	header       title and connection indicator
//	transcript   scrolling viewport (welcome screen while empty)
//	spinner      shown while a reply is pending
//	input        auto-growing textarea
//	status bar   key hints and toasts
package chat

// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package components provides the visual UI components for the coinchat TUI.
//
// Components are plain structs with a View method; they hold no tea.Model
// state of their own except Toast, which schedules its own expiry.
//
//   - MessageBubble: one transcript entry with avatar, name and time
//   - Header: title bar with the connection indicator
//   - StatusBar: key hints and transient notices
//   - Toast: auto-dismissing notification
//   - Welcome: empty-conversation screen listing quick prompts
//   - Help: markdown help overlay rendered with glamour
package components

// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"github.com/jeranaias/coinchat/internal/health"
	"github.com/jeranaias/coinchat/internal/session"
)

// =============================================================================
// EXCHANGE MESSAGES
// =============================================================================

// SettledMsg carries the outcome of an exchange back to the event loop.
type SettledMsg struct {
	Settlement session.Settlement
}

// =============================================================================
// HEALTH MESSAGES
// =============================================================================

// HealthMsg carries a completed health check.
type HealthMsg struct {
	Result health.Result
	// Manual is set for checks requested with ctrl+r or /status; those do
	// not schedule another poll.
	Manual bool
}

// healthTickMsg fires when the next scheduled check is due.
type healthTickMsg struct{}

// =============================================================================
// CLIPBOARD MESSAGES
// =============================================================================

// ClipboardMsg reports the result of a copy.
type ClipboardMsg struct {
	Err error
}

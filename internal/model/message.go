// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

import (
	"time"

	"github.com/google/uuid"
)

// =============================================================================
// ROLE TYPE
// =============================================================================

// Role represents the author of a message.
type Role string

const (
	RoleUser Role = "user"
	RoleBot  Role = "bot"
)

// String returns the string representation of the role.
func (r Role) String() string {
	return string(r)
}

// DisplayName returns a human-readable name for the role.
func (r Role) DisplayName() string {
	switch r {
	case RoleUser:
		return "You"
	case RoleBot:
		return "Assistant"
	default:
		return string(r)
	}
}

// Avatar returns the glyph shown next to messages of this role.
func (r Role) Avatar() string {
	if r == RoleBot {
		return "🤖"
	}
	return "👤"
}

// =============================================================================
// MESSAGE TYPE
// =============================================================================

// ClockLayout is the display format for message timestamps.
const ClockLayout = "15:04"

// Message is a single turn in a conversation.
// Fields are unexported so a message cannot change after it is created.
type Message struct {
	id        string
	role      Role
	text      string
	timestamp time.Time
}

// NewMessage creates a message stamped with the current wall-clock time.
func NewMessage(role Role, text string) Message {
	return NewMessageAt(role, text, time.Now())
}

// NewMessageAt creates a message with an explicit timestamp.
func NewMessageAt(role Role, text string, at time.Time) Message {
	return Message{
		id:        "msg_" + uuid.NewString(),
		role:      role,
		text:      text,
		timestamp: at,
	}
}

// ID returns the unique message identifier.
func (m Message) ID() string { return m.id }

// Role returns the author of the message.
func (m Message) Role() Role { return m.role }

// Text returns the raw, unformatted content.
func (m Message) Text() string { return m.text }

// Timestamp returns the capture time.
func (m Message) Timestamp() time.Time { return m.timestamp }

// Clock returns the timestamp at minute precision, e.g. "14:05".
func (m Message) Clock() string {
	return m.timestamp.Format(ClockLayout)
}

// IsZero reports whether m is the zero Message.
func (m Message) IsZero() bool {
	return m.id == ""
}

// Preview returns a truncated preview of the message text.
// Uses rune-based truncation to handle Unicode correctly.
func (m Message) Preview(maxLen int) string {
	runes := []rune(m.text)
	if len(runes) <= maxLen {
		return m.text
	}
	if maxLen <= 3 {
		return string(runes[:maxLen])
	}
	return string(runes[:maxLen-3]) + "..."
}

// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/coinchat/internal/model"
	"github.com/jeranaias/coinchat/internal/render"
	"github.com/jeranaias/coinchat/internal/ui/styles"
)

// =============================================================================
// MESSAGE BUBBLE COMPONENT
// =============================================================================

// MessageBubble renders a single transcript message.
type MessageBubble struct {
	Message       model.Message
	Width         int
	ShowTimestamp bool
	theme         *styles.Theme
	formatter     *render.Terminal
}

// NewMessageBubble creates a bubble for msg. A nil formatter shows raw text.
func NewMessageBubble(msg model.Message, theme *styles.Theme, formatter *render.Terminal) *MessageBubble {
	return &MessageBubble{
		Message:       msg,
		Width:         80,
		ShowTimestamp: true,
		theme:         theme,
		formatter:     formatter,
	}
}

// SetWidth sets the bubble width
func (b *MessageBubble) SetWidth(width int) {
	b.Width = width
}

// View renders the header line and the bordered body.
func (b *MessageBubble) View() string {
	role := b.Message.Role()

	bubbleStyle := b.theme.BotBubble
	nameStyle := b.theme.BotName
	if role == model.RoleUser {
		bubbleStyle = b.theme.UserBubble
		nameStyle = b.theme.UserName
	}

	parts := []string{role.Avatar(), nameStyle.Render(role.DisplayName())}
	if b.ShowTimestamp && !b.Message.Timestamp().IsZero() {
		parts = append(parts, b.theme.Timestamp.Render(b.Message.Clock()))
	}
	header := strings.Join(parts, " ")

	body := b.Message.Text()
	if b.formatter != nil {
		body = b.formatter.Format(body)
	}

	// Border and padding take four columns; margins take four more.
	contentWidth := b.Width - 8 - bubbleStyle.GetHorizontalMargins()
	if contentWidth < 20 {
		contentWidth = 20
	}
	if w := lipgloss.Width(body); w < contentWidth {
		contentWidth = w
	}
	bubble := bubbleStyle.Width(contentWidth + bubbleStyle.GetHorizontalPadding()).Render(body)

	if role == model.RoleUser {
		// Right-align user messages.
		return lipgloss.PlaceHorizontal(b.Width, lipgloss.Right, lipgloss.JoinVertical(lipgloss.Right, header, bubble))
	}
	return lipgloss.JoinVertical(lipgloss.Left, header, bubble)
}

// RenderTranscript renders every message separated by a blank line.
func RenderTranscript(msgs []model.Message, width int, showTimestamps bool, theme *styles.Theme, formatter *render.Terminal) string {
	views := make([]string, 0, len(msgs))
	for _, msg := range msgs {
		b := NewMessageBubble(msg, theme, formatter)
		b.SetWidth(width)
		b.ShowTimestamp = showTimestamps
		views = append(views, b.View())
	}
	return strings.Join(views, "\n\n")
}

// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"github.com/charmbracelet/lipgloss"
)

// =============================================================================
// VIEW
// =============================================================================

// View renders the chat interface.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if !m.ready {
		return "Initializing..."
	}

	body := m.viewport.View()
	if m.showHelp {
		body = m.helpOverlay()
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		m.header.View(),
		body,
		m.pendingLine(),
		m.inputView(),
		m.statusLine(),
	)
}

// helpOverlay replaces the transcript with commands, prompts and keys.
func (m Model) helpOverlay() string {
	content := lipgloss.JoinVertical(lipgloss.Left,
		m.helpView.View(),
		m.theme.HelpBox.Render(m.keyHelp()),
	)
	h := m.viewport.Height
	return lipgloss.NewStyle().Width(m.width).Height(h).MaxHeight(h).Render(content)
}

func (m Model) pendingLine() string {
	if !m.Pending() {
		return ""
	}
	return m.spinner.View() + " " + m.theme.ThinkingText.Render("Thinking...")
}

func (m Model) inputView() string {
	style := m.theme.InputContainer
	if m.Pending() {
		style = m.theme.InputDisabled
	}
	return style.Render(m.input.View())
}

func (m Model) statusLine() string {
	m.statusBar.Notice = m.toaster.View(m.theme, m.width/2)
	return m.statusBar.View()
}

// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/coinchat/internal/model"
	"github.com/jeranaias/coinchat/internal/ui/components"
)

// =============================================================================
// UPDATE
// =============================================================================

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.layout()
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case SettledMsg:
		return m.handleSettled(msg)

	case HealthMsg:
		m.header.SetStatus(msg.Result)
		if msg.Manual {
			return m, nil
		}
		return m, m.scheduleHealthCmd()

	case healthTickMsg:
		return m, m.checkHealthCmd(false)

	case spinner.TickMsg:
		if !m.Pending() {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case components.ToastExpiredMsg:
		m.toaster.Expire(msg)
		return m, nil

	case ClipboardMsg:
		if msg.Err != nil {
			m.log.Warn().Err(msg.Err).Msg("clipboard write failed")
			return m, m.toast("Copy failed", components.ToastKindError)
		}
		return m, m.toast(components.CopiedNotice, components.ToastKindSuccess)
	}

	// Cursor blink and anything else the textarea understands.
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// handleKey routes key presses. Only the bindings in KeyMap reach the
// viewport; everything else goes to the input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keyMap.Quit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keyMap.Help):
		m.showHelp = !m.showHelp
		return m, nil

	case key.Matches(msg, m.keyMap.Close):
		m.showHelp = false
		return m, nil

	case key.Matches(msg, m.keyMap.Copy):
		return m, m.copyCmd()

	case key.Matches(msg, m.keyMap.Refresh):
		return m.refresh()

	case key.Matches(msg, m.keyMap.PageUp):
		m.viewport.ViewUp()
		return m, nil

	case key.Matches(msg, m.keyMap.PageDown):
		m.viewport.ViewDown()
		return m, nil

	case key.Matches(msg, m.keyMap.Top):
		m.viewport.GotoTop()
		return m, nil

	case key.Matches(msg, m.keyMap.Bottom):
		m.viewport.GotoBottom()
		return m, nil

	case key.Matches(msg, m.keyMap.Complete):
		return m.complete()

	case key.Matches(msg, m.keyMap.Submit):
		return m.submit()
	}

	if i := m.keyMap.QuickIndex(msg); i >= 0 {
		return m.quick(i)
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	m.resizeInput()
	return m, cmd
}

// submit sends the input, or runs it when it names a registered command.
// Nothing happens while a reply is pending.
func (m Model) submit() (tea.Model, tea.Cmd) {
	if m.Pending() {
		return m, nil
	}
	text := m.input.Value()
	if strings.TrimSpace(text) == "" {
		return m, nil
	}

	if res := m.parser.Parse(text); res.IsCommand() {
		return m.runCommand(res)
	}
	return m.send(text)
}

func (m Model) handleSettled(msg SettledMsg) (tea.Model, tea.Cmd) {
	s := msg.Settlement
	if m.inflight != nil && m.inflight.ID() == s.ExchangeID {
		m.inflight = nil
	}
	if s.Failed() {
		m.log.Debug().Str("exchange", s.ExchangeID).Msg("reply replaced by apology")
	}

	m.refreshTranscript()
	return m, m.input.Focus()
}

// =============================================================================
// LAYOUT
// =============================================================================

// layout sizes every component from the window dimensions.
func (m *Model) layout() {
	if m.width == 0 {
		return
	}
	m.theme.SetSize(m.width, m.height)
	m.header.SetWidth(m.width)
	m.statusBar.Width = m.width
	m.welcome.Width = m.width
	m.helpView.Width = m.width
	m.help.Width = m.width - 4

	frame := m.theme.InputContainer.GetHorizontalFrameSize()
	m.input.SetWidth(max(m.width-frame, 10))

	// header, spinner line, input box, status bar
	chrome := lipgloss.Height(m.header.View()) + 1 +
		m.input.Height() + m.theme.InputContainer.GetVerticalFrameSize() + 1
	m.viewport.Width = m.width
	m.viewport.Height = max(m.height-chrome, 3)

	m.refreshTranscript()
}

// resizeInput grows the input with its content, up to maxInputLines.
func (m *Model) resizeInput() {
	lines := min(max(m.input.LineCount(), 1), m.maxInputLines)
	if lines != m.input.Height() {
		m.input.SetHeight(lines)
		m.layout()
	}
}

func (m *Model) resetInput() {
	m.input.Reset()
	if m.input.Height() != 1 {
		m.input.SetHeight(1)
		m.layout()
	}
}

// refreshTranscript re-renders the conversation, or the welcome screen
// while it is empty, and scrolls to the newest message.
func (m *Model) refreshTranscript() {
	var msgs []model.Message
	if m.ctrl != nil {
		msgs = m.ctrl.Messages()
	}
	if len(msgs) == 0 {
		m.viewport.SetContent(m.welcome.View())
		m.viewport.GotoTop()
		return
	}
	m.viewport.SetContent(components.RenderTranscript(msgs, m.viewport.Width, m.showTimestamps, m.theme, m.format))
	m.viewport.GotoBottom()
}

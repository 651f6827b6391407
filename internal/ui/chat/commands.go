// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/coinchat/internal/commands"
	"github.com/jeranaias/coinchat/internal/session"
	"github.com/jeranaias/coinchat/internal/ui/components"
)

// =============================================================================
// ASYNC COMMANDS
// =============================================================================

// resolveCmd waits for ex off the event loop.
func (m Model) resolveCmd(ex *session.Exchange) tea.Cmd {
	ctx := m.ctx
	return func() tea.Msg {
		return SettledMsg{Settlement: ex.Resolve(ctx)}
	}
}

// checkHealthCmd runs one health check.
func (m Model) checkHealthCmd(manual bool) tea.Cmd {
	if m.monitor == nil {
		return nil
	}
	mon, ctx := m.monitor, m.ctx
	return func() tea.Msg {
		return HealthMsg{Result: mon.Check(ctx), Manual: manual}
	}
}

// scheduleHealthCmd waits one interval before the next scheduled check.
func (m Model) scheduleHealthCmd() tea.Cmd {
	if m.monitor == nil {
		return nil
	}
	return tea.Tick(m.monitor.Interval(), func(time.Time) tea.Msg {
		return healthTickMsg{}
	})
}

// copyCmd copies the latest reply to the clipboard.
func (m Model) copyCmd() tea.Cmd {
	if m.ctrl == nil {
		return nil
	}
	reply, ok := m.ctrl.LastReply()
	if !ok {
		return m.toast("No reply to copy yet", components.ToastKindError)
	}
	text, write := reply.Text(), m.copyFn
	return func() tea.Msg {
		return ClipboardMsg{Err: write(text)}
	}
}

func (m Model) toast(text string, kind components.ToastKind) tea.Cmd {
	return m.toaster.Show(text, kind, m.notifyFor)
}

// =============================================================================
// ACTIONS
// =============================================================================

// send submits text to the controller and starts resolving the exchange.
func (m Model) send(text string) (Model, tea.Cmd) {
	if m.ctrl == nil {
		return m, nil
	}
	ex := m.ctrl.Submit(text)
	if ex == nil {
		return m, nil
	}
	m.log.Debug().Str("exchange", ex.ID()).Msg("message submitted")

	m.inflight = ex
	m.resetInput()
	m.input.Blur()
	m.refreshTranscript()
	return m, tea.Batch(m.resolveCmd(ex), m.spinner.Tick)
}

// quick sends quick prompt i.
func (m Model) quick(i int) (Model, tea.Cmd) {
	if m.Pending() || i < 0 || i >= len(m.quickPrompts) {
		return m, nil
	}
	return m.send(m.quickPrompts[i])
}

// refresh requests a manual health check, subject to the monitor's limiter.
func (m Model) refresh() (Model, tea.Cmd) {
	if m.monitor == nil {
		return m, nil
	}
	if !m.monitor.AllowRefresh() {
		return m, m.toast("Checked recently, try again shortly", components.ToastKindError)
	}
	return m, m.checkHealthCmd(true)
}

// runCommand performs a registered slash command.
func (m Model) runCommand(res commands.ParseResult) (Model, tea.Cmd) {
	m.resetInput()
	if res.Error != nil {
		return m, m.toast(res.Error.Error(), components.ToastKindError)
	}

	m.log.Debug().Str("command", res.Command.Name).Stringer("action", res.Command.Action).Msg("slash command")

	switch res.Command.Action {
	case commands.ActionHelp:
		m.showHelp = true
		return m, nil
	case commands.ActionQuick:
		i, err := commands.QuickIndex(res.Args, len(m.quickPrompts))
		if err != nil {
			return m, m.toast(err.Error()+": "+strings.Join(res.Args, " "), components.ToastKindError)
		}
		return m.quick(i)
	case commands.ActionCopy:
		return m, m.copyCmd()
	case commands.ActionStatus:
		return m.refresh()
	case commands.ActionQuit:
		m.quitting = true
		return m, tea.Quit
	}
	return m, nil
}

// complete expands a partial /command in the input.
func (m Model) complete() (Model, tea.Cmd) {
	matches := m.completer.Complete(m.input.Value())
	switch len(matches) {
	case 0:
		return m, nil
	case 1:
		m.input.SetValue(matches[0] + " ")
		m.input.CursorEnd()
		return m, nil
	default:
		return m, m.toast(strings.Join(matches, "  "), components.ToastKindSuccess)
	}
}

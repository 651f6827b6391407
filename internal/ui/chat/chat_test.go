// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"context"
	"errors"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/coinchat/internal/health"
	"github.com/jeranaias/coinchat/internal/session"
	"github.com/jeranaias/coinchat/internal/ui/components"
)

// =============================================================================
// TEST HELPERS
// =============================================================================

type senderFunc func(ctx context.Context, message string) (string, error)

func (f senderFunc) Chat(ctx context.Context, message string) (string, error) {
	return f(ctx, message)
}

type probeFunc func(ctx context.Context) (int, error)

func (f probeFunc) Health(ctx context.Context) (int, error) { return f(ctx) }

var testPrompts = []string{"What is Bitcoin?", "What is Ethereum?"}

func echoSender() senderFunc {
	return func(_ context.Context, message string) (string, error) {
		return "re: " + message, nil
	}
}

func newTestModel(t *testing.T, sender session.Sender, opts Options) Model {
	t.Helper()
	opts.Controller = session.New(sender, session.Options{})
	if opts.QuickPrompts == nil {
		opts.QuickPrompts = testPrompts
	}
	if opts.Clipboard == nil {
		opts.Clipboard = func(string) error { return nil }
	}
	m := New(opts)
	return update(t, m, tea.WindowSizeMsg{Width: 100, Height: 40})
}

func update(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	out, ok := next.(Model)
	require.True(t, ok, "Update returned %T", next)
	return out
}

func updateCmd(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	return next.(Model), cmd
}

func keyPress(k tea.KeyType) tea.KeyMsg {
	return tea.KeyMsg{Type: k}
}

func altDigit(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}, Alt: true}
}

func typed(t *testing.T, m Model, text string) Model {
	t.Helper()
	m.input.SetValue(text)
	return m
}

// settle resolves the in-flight exchange and feeds the result back.
func settle(t *testing.T, m Model) Model {
	t.Helper()
	require.NotNil(t, m.inflight, "no exchange in flight")
	s := m.inflight.Resolve(context.Background())
	return update(t, m, SettledMsg{Settlement: s})
}

// =============================================================================
// SUBMISSION TESTS
// =============================================================================

func TestSubmit_SendsAndSettles(t *testing.T) {
	m := newTestModel(t, echoSender(), Options{})
	m = typed(t, m, "hello")

	m, cmd := updateCmd(t, m, keyPress(tea.KeyEnter))
	require.NotNil(t, cmd)
	assert.True(t, m.Pending())
	assert.Empty(t, m.InputValue())
	assert.Contains(t, m.View(), "Thinking...")

	m = settle(t, m)
	assert.False(t, m.Pending())
	assert.Nil(t, m.inflight)
	assert.Contains(t, m.viewport.View(), "hello")
	assert.Contains(t, m.viewport.View(), "re: hello")
	assert.NotContains(t, m.View(), "Thinking...")
}

func TestSubmit_BlankInputIgnored(t *testing.T) {
	m := newTestModel(t, echoSender(), Options{})
	m = typed(t, m, "   ")

	m, cmd := updateCmd(t, m, keyPress(tea.KeyEnter))
	assert.Nil(t, cmd)
	assert.False(t, m.Pending())
	assert.Equal(t, 0, m.ctrl.Len())
}

func TestSubmit_IgnoredWhilePending(t *testing.T) {
	release := make(chan struct{})
	sender := senderFunc(func(context.Context, string) (string, error) {
		<-release
		return "ok", nil
	})
	m := newTestModel(t, sender, Options{})

	m = typed(t, m, "first")
	m = update(t, m, keyPress(tea.KeyEnter))
	require.True(t, m.Pending())

	m = typed(t, m, "second")
	m = update(t, m, keyPress(tea.KeyEnter))
	m = update(t, m, altDigit('1'))
	assert.Equal(t, 1, m.ctrl.Len())
	assert.Equal(t, "second", m.InputValue())

	close(release)
	m = settle(t, m)
	assert.Equal(t, 2, m.ctrl.Len())
}

func TestSubmit_FailureShowsApology(t *testing.T) {
	m := newTestModel(t, senderFunc(func(context.Context, string) (string, error) {
		return "", errors.New("backend exploded")
	}), Options{})

	m = typed(t, m, "x")
	m = update(t, m, keyPress(tea.KeyEnter))
	m = settle(t, m)

	view := m.viewport.View()
	assert.Contains(t, view, "apologize")
	assert.NotContains(t, view, "exploded")
}

func TestSubmit_UnknownSlashWordIsSent(t *testing.T) {
	m := newTestModel(t, echoSender(), Options{})
	m = typed(t, m, "/moon when?")

	m = update(t, m, keyPress(tea.KeyEnter))
	assert.True(t, m.Pending())
	m = settle(t, m)
	assert.Equal(t, 2, m.ctrl.Len())
}

func TestWelcome_ShownWhileEmpty(t *testing.T) {
	m := newTestModel(t, echoSender(), Options{})

	view := m.View()
	assert.Contains(t, view, "Welcome to CoinChat")
	assert.Contains(t, view, "What is Bitcoin?")
}

// =============================================================================
// QUICK PROMPT TESTS
// =============================================================================

func TestQuickPrompt_AltDigitSends(t *testing.T) {
	var got string
	m := newTestModel(t, senderFunc(func(_ context.Context, message string) (string, error) {
		got = message
		return "ok", nil
	}), Options{})

	m = update(t, m, altDigit('2'))
	require.True(t, m.Pending())
	settle(t, m)

	assert.Equal(t, "What is Ethereum?", got)
}

func TestQuickPrompt_OutOfRangeIgnored(t *testing.T) {
	m := newTestModel(t, echoSender(), Options{})

	m = update(t, m, altDigit('9'))
	assert.False(t, m.Pending())
}

func TestQuickCommand(t *testing.T) {
	m := newTestModel(t, echoSender(), Options{})
	m = typed(t, m, "/quick 1")

	m = update(t, m, keyPress(tea.KeyEnter))
	require.True(t, m.Pending())
	m = settle(t, m)
	assert.Equal(t, "What is Bitcoin?", m.ctrl.Messages()[0].Text())
}

func TestQuickCommand_Errors(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"/quick 7", "no such quick prompt"},
		{"/quick", "usage: /quick <n>"},
	}

	for _, tc := range tests {
		t.Run(tc.input, func(t *testing.T) {
			m := newTestModel(t, echoSender(), Options{})
			m = typed(t, m, tc.input)

			m = update(t, m, keyPress(tea.KeyEnter))
			assert.False(t, m.Pending())
			assert.Empty(t, m.InputValue())

			toast, ok := m.toaster.Current()
			require.True(t, ok)
			assert.Contains(t, toast.Message, tc.want)
			assert.Equal(t, components.ToastKindError, toast.Kind)
		})
	}
}

// =============================================================================
// COMMAND AND KEY TESTS
// =============================================================================

func TestHelp_ToggleAndClose(t *testing.T) {
	m := newTestModel(t, echoSender(), Options{})

	m = update(t, m, keyPress(tea.KeyF1))
	assert.True(t, m.HelpVisible())
	assert.Contains(t, m.View(), "/quick")

	m = update(t, m, keyPress(tea.KeyEsc))
	assert.False(t, m.HelpVisible())

	m = typed(t, m, "/help")
	m = update(t, m, keyPress(tea.KeyEnter))
	assert.True(t, m.HelpVisible())
	assert.Equal(t, 0, m.ctrl.Len())
}

func TestQuit(t *testing.T) {
	for _, input := range []string{"", "/quit"} {
		m := newTestModel(t, echoSender(), Options{})
		var cmd tea.Cmd
		if input == "" {
			m, cmd = updateCmd(t, m, keyPress(tea.KeyCtrlC))
		} else {
			m = typed(t, m, input)
			m, cmd = updateCmd(t, m, keyPress(tea.KeyEnter))
		}

		require.NotNil(t, cmd)
		_, ok := cmd().(tea.QuitMsg)
		assert.True(t, ok, "input %q should quit", input)
		assert.Empty(t, m.View())
	}
}

func TestComplete_SingleMatch(t *testing.T) {
	m := newTestModel(t, echoSender(), Options{})
	m = typed(t, m, "/co")

	m = update(t, m, keyPress(tea.KeyTab))
	assert.Equal(t, "/copy ", m.InputValue())
}

func TestInput_GrowsWithContent(t *testing.T) {
	m := newTestModel(t, echoSender(), Options{InputMaxLines: 3})
	startHeight := m.viewport.Height

	m = typed(t, m, "a\nb")
	m = update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'c'}})
	assert.Equal(t, 2, m.input.Height())
	assert.Equal(t, startHeight-1, m.viewport.Height)

	m = typed(t, m, "a\nb\nc\nd\ne")
	m = update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'f'}})
	assert.Equal(t, 3, m.input.Height())
}

// =============================================================================
// CLIPBOARD TESTS
// =============================================================================

func TestCopy_WritesLastReply(t *testing.T) {
	var copied string
	m := newTestModel(t, echoSender(), Options{
		Clipboard: func(s string) error { copied = s; return nil },
	})
	m = typed(t, m, "hi")
	m = update(t, m, keyPress(tea.KeyEnter))
	m = settle(t, m)

	m, cmd := updateCmd(t, m, keyPress(tea.KeyCtrlY))
	require.NotNil(t, cmd)
	m = update(t, m, cmd())

	assert.Equal(t, "re: hi", copied)
	toast, ok := m.toaster.Current()
	require.True(t, ok)
	assert.Equal(t, components.CopiedNotice, toast.Message)
	assert.Contains(t, m.View(), components.CopiedNotice)
}

func TestCopy_Failures(t *testing.T) {
	m := newTestModel(t, echoSender(), Options{
		Clipboard: func(string) error { return errors.New("no display") },
	})

	m = update(t, m, keyPress(tea.KeyCtrlY))
	toast, ok := m.toaster.Current()
	require.True(t, ok)
	assert.Equal(t, "No reply to copy yet", toast.Message)

	m = update(t, m, ClipboardMsg{Err: errors.New("no display")})
	toast, _ = m.toaster.Current()
	assert.Equal(t, "Copy failed", toast.Message)
	assert.Equal(t, components.ToastKindError, toast.Kind)
}

// =============================================================================
// HEALTH TESTS
// =============================================================================

func TestHealth_ScheduledResultUpdatesHeader(t *testing.T) {
	mon := health.NewMonitor(probeFunc(func(context.Context) (int, error) { return 200, nil }),
		health.Config{Interval: time.Minute}, nil)
	m := newTestModel(t, echoSender(), Options{Monitor: mon})
	assert.Equal(t, health.StatusUnknown, m.Status())
	assert.Contains(t, m.View(), "Checking...")

	m, cmd := updateCmd(t, m, HealthMsg{Result: health.Result{Status: health.StatusConnected, Code: 200}})
	assert.Equal(t, health.StatusConnected, m.Status())
	assert.NotNil(t, cmd, "scheduled result should arm the next tick")
	assert.Contains(t, m.View(), "Connected")

	_, cmd = updateCmd(t, m, HealthMsg{Result: health.Result{Status: health.StatusOffline}, Manual: true})
	assert.Nil(t, cmd, "manual result must not arm another tick")
}

func TestHealth_TickRunsCheck(t *testing.T) {
	mon := health.NewMonitor(probeFunc(func(context.Context) (int, error) { return 503, nil }),
		health.Config{Interval: time.Minute}, nil)
	m := newTestModel(t, echoSender(), Options{Monitor: mon})

	_, cmd := updateCmd(t, m, healthTickMsg{})
	require.NotNil(t, cmd)

	msg, ok := cmd().(HealthMsg)
	require.True(t, ok)
	assert.False(t, msg.Manual)
	assert.Equal(t, health.StatusDegraded, msg.Result.Status)
	assert.Equal(t, 503, msg.Result.Code)
}

func TestHealth_RefreshIsThrottled(t *testing.T) {
	mon := health.NewMonitor(probeFunc(func(context.Context) (int, error) { return 200, nil }),
		health.Config{Interval: time.Hour, RefreshBurst: 1}, nil)
	m := newTestModel(t, echoSender(), Options{Monitor: mon})

	m, cmd := updateCmd(t, m, keyPress(tea.KeyCtrlR))
	require.NotNil(t, cmd)
	msg, ok := cmd().(HealthMsg)
	require.True(t, ok)
	assert.True(t, msg.Manual)

	m = typed(t, m, "/status")
	m = update(t, m, keyPress(tea.KeyEnter))
	toast, ok := m.toaster.Current()
	require.True(t, ok)
	assert.Equal(t, components.ToastKindError, toast.Kind)
}

func TestInit_ChecksHealthWithoutMonitor(t *testing.T) {
	m := newTestModel(t, echoSender(), Options{})
	assert.NotNil(t, m.Init())
	assert.Nil(t, m.checkHealthCmd(false))
}

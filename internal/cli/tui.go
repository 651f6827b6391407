// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/jeranaias/coinchat/internal/ui/chat"
)

func newTUICommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Open the full-screen chat",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(cmd.Context(), app)
		},
	}
}

// runTUI runs the Bubble Tea chat until the user quits or ctx ends.
func runTUI(ctx context.Context, app *App) error {
	if !IsTTY() {
		return usageError(&TTYRequiredError{Operation: "open the full-screen chat"})
	}

	d := app.wire()
	cfg := app.Config
	m := chat.New(chat.Options{
		Controller:     d.ctrl,
		Monitor:        d.monitor,
		Theme:          d.theme,
		Formatter:      d.format,
		QuickPrompts:   cfg.UI.QuickPrompts,
		ShowTimestamps: cfg.UI.ShowTimestamps,
		NotifyDuration: time.Duration(cfg.UI.NotifySeconds) * time.Second,
		InputMaxLines:  cfg.UI.InputMaxLines,
		Endpoint:       d.client.Endpoint(),
		Context:        ctx,
		Logger:         &app.Logger,
		Clipboard:      app.Clipboard,
	})

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return errors.Wrap(err, "chat interface failed")
	}
	app.Logger.Debug().Int("messages", d.ctrl.Len()).Msg("chat interface closed")
	return nil
}

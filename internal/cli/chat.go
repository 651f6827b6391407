// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// chat.go - line-mode chat for pipes and terminals without alt-screen.
//
// Interactive Commands (during chat):
//
//	/help, /h           Show available commands
//	/quick N, /q N      Send quick prompt N
//	/copy, /c           Copy the last reply
//	/status, /s         Check the connection now
//	/quit, /exit        Leave
//	Ctrl+C, Ctrl+D      Leave
package cli

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"

	"github.com/peterh/liner"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/jeranaias/coinchat/internal/commands"
	"github.com/jeranaias/coinchat/internal/health"
	"github.com/jeranaias/coinchat/internal/model"
	"github.com/jeranaias/coinchat/internal/ui/components"
)

const linePrompt = "› "

func newChatCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "chat",
		Short: "Chat in line mode",
		Long: `Chat in line mode with input history and slash commands.

Type /help for the command list. Ctrl+C or Ctrl+D leaves.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLineChat(cmd.Context(), app, cmd.OutOrStdout())
		},
	}
}

// =============================================================================
// LINE CHAT
// =============================================================================

// lineChat handles input lines; output may also come from the health loop.
type lineChat struct {
	app     *App
	d       *deps
	parser  *commands.Parser
	prompts []string
	width   int

	mu         sync.Mutex // guards out and status
	out        io.Writer
	status     health.Status
	seenStatus bool
}

func newLineChat(app *App, d *deps, out io.Writer) *lineChat {
	return &lineChat{
		app:     app,
		d:       d,
		parser:  commands.NewParser(nil),
		prompts: app.Config.UI.QuickPrompts,
		width:   GetTerminalWidth(),
		out:     out,
	}
}

// runLineChat reads lines until EOF, Ctrl+C, /quit or cancellation while
// the health monitor reports status changes in the background.
func runLineChat(ctx context.Context, app *App, out io.Writer) error {
	configureColor()

	d := app.wire()
	c := newLineChat(app, d, out)
	completer := commands.NewCompleter(c.parser.Registry())

	line := liner.NewLiner()
	defer line.Close()
	line.SetCtrlCAborts(true)
	line.SetCompleter(completer.Complete)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		err := d.monitor.Run(gctx, c.onHealth)
		if errors.Is(err, context.Canceled) {
			return nil
		}
		return err
	})

	g.Go(func() error {
		defer cancel()
		c.printWelcome()
		for {
			input, err := line.Prompt(linePrompt)
			if err == liner.ErrPromptAborted || err == io.EOF {
				return nil
			}
			if err != nil {
				return errors.Wrap(err, "failed to read input")
			}
			if strings.TrimSpace(input) != "" {
				line.AppendHistory(input)
			}
			if !c.handle(gctx, input) || gctx.Err() != nil {
				return nil
			}
		}
	})

	err := g.Wait()
	app.Logger.Debug().Int("messages", d.ctrl.Len()).Msg("line chat closed")
	return err
}

// handle processes one input line and reports whether to keep reading.
func (c *lineChat) handle(ctx context.Context, input string) bool {
	text := strings.TrimSpace(input)
	if text == "" {
		return true
	}
	if res := c.parser.Parse(text); res.IsCommand() {
		return c.runCommand(ctx, res)
	}
	c.send(ctx, text)
	return true
}

func (c *lineChat) runCommand(ctx context.Context, res commands.ParseResult) bool {
	if res.Error != nil {
		c.println(c.d.theme.Muted.Render(res.Error.Error()))
		return true
	}

	switch res.Command.Action {
	case commands.ActionHelp:
		c.printHelp()
	case commands.ActionQuick:
		i, err := commands.QuickIndex(res.Args, len(c.prompts))
		if err != nil {
			c.println(c.d.theme.Muted.Render(fmt.Sprintf("%v; choose 1-%d", err, len(c.prompts))))
			return true
		}
		c.println(c.d.theme.InputPrompt.Render(linePrompt) + c.prompts[i])
		c.send(ctx, c.prompts[i])
	case commands.ActionCopy:
		c.copyLastReply()
	case commands.ActionStatus:
		res, ok := c.d.monitor.Refresh(ctx)
		if !ok {
			c.println(c.d.theme.Muted.Render("Checked recently, try again shortly"))
		}
		c.printStatus(res)
	case commands.ActionQuit:
		return false
	}
	return true
}

// send runs one exchange and prints the reply.
func (c *lineChat) send(ctx context.Context, text string) {
	ex := c.d.ctrl.Submit(text)
	if ex == nil {
		return
	}
	c.println(c.d.theme.ThinkingText.Render("Thinking..."))
	s := ex.Resolve(ctx)
	c.printMessage(s.Reply)
}

func (c *lineChat) copyLastReply() {
	reply, ok := c.d.ctrl.LastReply()
	if !ok {
		c.println(c.d.theme.Muted.Render("No reply to copy yet"))
		return
	}
	if err := c.app.Clipboard(reply.Text()); err != nil {
		c.app.Logger.Warn().Err(err).Msg("clipboard write failed")
		c.println(c.d.theme.Muted.Render("Copy failed: " + err.Error()))
		return
	}
	c.println(c.d.theme.Toast.Render(components.CopiedNotice))
}

// onHealth prints the indicator whenever the status changes.
func (c *lineChat) onHealth(r health.Result) {
	c.mu.Lock()
	changed := !c.seenStatus || r.Status != c.status
	c.status, c.seenStatus = r.Status, true
	c.mu.Unlock()

	if changed {
		c.printStatus(r)
	}
}

// =============================================================================
// OUTPUT
// =============================================================================

func (c *lineChat) println(s string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	fmt.Fprintln(c.out, s)
}

func (c *lineChat) printMessage(msg model.Message) {
	b := components.NewMessageBubble(msg, c.d.theme, c.d.format)
	b.ShowTimestamp = c.app.Config.UI.ShowTimestamps
	b.SetWidth(c.width)
	c.println(b.View())
}

func (c *lineChat) printStatus(r health.Result) {
	line := c.d.theme.RenderStatus(r.Status)
	if r.Status == health.StatusDegraded && r.Code != 0 {
		line += c.d.theme.Muted.Render("  " + r.Detail())
	}
	c.println(line)
}

func (c *lineChat) printWelcome() {
	var b strings.Builder
	b.WriteString(c.d.theme.HeaderTitle.Render("Welcome to CoinChat") + "\n")
	b.WriteString(components.WelcomeText + "\n")
	for i, p := range c.prompts {
		b.WriteString("  " + c.d.theme.QuickKey.Render("/quick "+strconv.Itoa(i+1)) + "  " + p + "\n")
	}
	b.WriteString(c.d.theme.Muted.Render("Type /help for commands."))
	c.println(b.String())
}

func (c *lineChat) printHelp() {
	var cmds []components.HelpEntry
	for _, cmd := range c.parser.Registry().All() {
		cmds = append(cmds, components.HelpEntry{Keys: cmd.Display(), Desc: cmd.Description})
	}
	keys := []components.HelpEntry{
		{Keys: "up/down", Desc: "input history"},
		{Keys: "tab", Desc: "complete /command"},
		{Keys: "ctrl+c", Desc: "leave"},
	}
	c.println(components.RenderMarkdown(components.HelpMarkdown(keys, cmds, c.prompts), c.width, ""))
}

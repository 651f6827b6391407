// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/jeranaias/coinchat/internal/render"
)

func newAskCommand(app *App) *cobra.Command {
	var asHTML bool

	cmd := &cobra.Command{
		Use:   "ask [question]",
		Short: "Ask one question and print the reply",
		Long: `Ask one question and print the reply.

Without arguments the question is read from piped stdin. A failed request
prints the same apology the chat shows and exits non-zero.`,
		Example: `  coinchat ask "What's the current price of Bitcoin?"
  echo "What is Ethereum?" | coinchat ask
  coinchat ask --html "Explain blockchain technology"`,
		RunE: func(cmd *cobra.Command, args []string) error {
			question := strings.Join(args, " ")
			if strings.TrimSpace(question) == "" && !IsTTY() {
				data, err := io.ReadAll(cmd.InOrStdin())
				if err != nil {
					return errors.Wrap(err, "failed to read question from stdin")
				}
				question = string(data)
			}
			return runAsk(cmd.Context(), app, cmd.OutOrStdout(), question, asHTML)
		},
	}
	cmd.Flags().BoolVar(&asHTML, "html", false, "print the reply as HTML markup")
	return cmd
}

// runAsk performs a single exchange through a fresh controller.
func runAsk(ctx context.Context, app *App, out io.Writer, question string, asHTML bool) error {
	question = strings.TrimSpace(question)
	if question == "" {
		return usageError(errors.New("no question given"))
	}
	configureColor()

	d := app.wire()
	s := d.ctrl.Submit(question).Resolve(ctx)

	text := s.Reply.Text()
	if asHTML {
		text = render.New(render.Options{EscapeHTML: app.Config.Render.EscapeHTML}).Format(text)
	} else {
		text = d.format.Format(text)
	}
	fmt.Fprintln(out, text)

	if s.Failed() {
		return exchangeError(s.Err)
	}
	return nil
}

// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/coinchat/internal/ui/styles"
	"github.com/jeranaias/coinchat/internal/util"
)

// WelcomeText greets the user before the first message.
const WelcomeText = "Hi! I'm your crypto assistant. Ask me about prices, trends, or how blockchains work."

// Welcome is shown while the conversation is empty.
type Welcome struct {
	QuickPrompts []string
	Width        int
	theme        *styles.Theme
}

// NewWelcome creates the welcome screen.
func NewWelcome(theme *styles.Theme, prompts []string) *Welcome {
	return &Welcome{QuickPrompts: prompts, Width: 80, theme: theme}
}

// View renders the greeting and numbered quick prompts.
func (w *Welcome) View() string {
	lines := []string{
		w.theme.HeaderTitle.Render("Welcome to CoinChat"),
		"",
		lipgloss.NewStyle().Width(clampWidth(w.Width-4, 20, 72)).Render(WelcomeText),
	}

	if len(w.QuickPrompts) > 0 {
		lines = append(lines, "", w.theme.Muted.Render("Quick prompts:"))
		for i, p := range w.QuickPrompts {
			key := "alt+" + strconv.Itoa(i+1)
			text := util.TruncateWidth(p, clampWidth(w.Width-len(key)-6, 10, 72))
			lines = append(lines, "  "+w.theme.QuickKey.Render(key)+"  "+w.theme.QuickPrompt.Render(text))
		}
	}

	return strings.Join(lines, "\n")
}

func clampWidth(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

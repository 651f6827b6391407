// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/glamour"

	"github.com/jeranaias/coinchat/internal/ui/styles"
)

// =============================================================================
// HELP OVERLAY
// =============================================================================

// HelpEntry documents one key or command.
type HelpEntry struct {
	Keys string
	Desc string
}

// HelpMarkdown builds the help text shown by /help and f1.
// The keys table is omitted when keys is empty.
func HelpMarkdown(keys, commands []HelpEntry, prompts []string) string {
	var b strings.Builder
	b.WriteString("# CoinChat help\n\n")

	if len(keys) > 0 {
		b.WriteString("## Keys\n\n| Key | Action |\n|---|---|\n")
		for _, e := range keys {
			b.WriteString("| `" + e.Keys + "` | " + e.Desc + " |\n")
		}
	}

	b.WriteString("\n## Commands\n\n")
	for _, e := range commands {
		b.WriteString("- `" + e.Keys + "` " + e.Desc + "\n")
	}

	if len(prompts) > 0 {
		b.WriteString("\n## Quick prompts\n\n")
		for i, p := range prompts {
			b.WriteString(strconv.Itoa(i+1) + ". " + p + "\n")
		}
	}

	b.WriteString("\nReplies support **bold**, *italic*, `code` and links.\n")
	return b.String()
}

// Help renders help markdown inside a bordered box.
type Help struct {
	Markdown string
	Width    int
	// Style names a glamour standard style; empty detects it from the terminal.
	Style string
	theme *styles.Theme

	cacheWidth int
	cache      string
}

// NewHelp creates the overlay for markdown.
func NewHelp(theme *styles.Theme, markdown string) *Help {
	return &Help{Markdown: markdown, Width: 80, theme: theme}
}

// View renders the overlay; glamour output is cached per width.
func (h *Help) View() string {
	width := h.Width - h.theme.HelpBox.GetHorizontalFrameSize()
	if width < 20 {
		width = 20
	}
	if h.cache == "" || h.cacheWidth != width {
		h.cache = RenderMarkdown(h.Markdown, width, h.Style)
		h.cacheWidth = width
	}
	return h.theme.HelpBox.Render(h.cache)
}

// RenderMarkdown renders md for the terminal, falling back to the raw text
// when glamour cannot build a renderer. An empty style picks one from the
// terminal.
func RenderMarkdown(md string, width int, style string) string {
	styleOpt := glamour.WithAutoStyle()
	if style != "" {
		styleOpt = glamour.WithStandardStyle(style)
	}
	r, err := glamour.NewTermRenderer(
		styleOpt,
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return md
	}
	out, err := r.Render(md)
	if err != nil {
		return md
	}
	return strings.Trim(out, "\n")
}

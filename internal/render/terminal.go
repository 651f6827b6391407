// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package render

import (
	"regexp"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// terminalLinkPattern stops at escape sequences so a URL never swallows the
// styling emitted by earlier stages.
var terminalLinkPattern = regexp.MustCompile(`https?://[^\s\v\p{Z}\x{FEFF}\x1b]+`)

// TerminalStyles are the styles substituted for each markup stage.
type TerminalStyles struct {
	Bold   lipgloss.Style
	Italic lipgloss.Style
	Code   lipgloss.Style
	Link   lipgloss.Style
}

// PlainStyles returns styles that only set text attributes, with no colors.
func PlainStyles() TerminalStyles {
	return TerminalStyles{
		Bold:   lipgloss.NewStyle().Bold(true),
		Italic: lipgloss.NewStyle().Italic(true),
		Code:   lipgloss.NewStyle().Reverse(true),
		Link:   lipgloss.NewStyle().Underline(true),
	}
}

// Terminal formats message text for display in a terminal.
//
// It runs the same stages as Format. Line breaks stay as newlines and URLs
// become OSC-8 hyperlinks when Hyperlinks is set.
type Terminal struct {
	Styles     TerminalStyles
	Hyperlinks bool
}

// NewTerminal creates a terminal formatter.
func NewTerminal(styles TerminalStyles, hyperlinks bool) *Terminal {
	return &Terminal{Styles: styles, Hyperlinks: hyperlinks}
}

// Format converts raw text to styled terminal output.
func (t *Terminal) Format(text string) string {
	text = replaceGroup(boldPattern, text, t.Styles.Bold)
	text = replaceGroup(italicPattern, text, t.Styles.Italic)
	text = replaceGroup(codePattern, text, t.Styles.Code)
	text = terminalLinkPattern.ReplaceAllStringFunc(text, func(url string) string {
		label := t.Styles.Link.Render(url)
		if !t.Hyperlinks {
			return label
		}
		return termenv.Hyperlink(url, label)
	})
	return text
}

// replaceGroup renders the first capture group of every match with style.
func replaceGroup(re *regexp.Regexp, text string, style lipgloss.Style) string {
	return re.ReplaceAllStringFunc(text, func(match string) string {
		sub := re.FindStringSubmatch(match)
		if len(sub) < 2 {
			return match
		}
		return style.Render(sub[1])
	})
}

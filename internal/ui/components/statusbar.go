// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/coinchat/internal/ui/styles"
	"github.com/jeranaias/coinchat/internal/util"
)

// =============================================================================
// STATUS BAR COMPONENT
// =============================================================================

// Shortcut is one key hint in the status bar.
type Shortcut struct {
	Key  string
	Desc string
}

// StatusBar shows key hints on the left and a notice (toast) on the right.
type StatusBar struct {
	Shortcuts []Shortcut
	Notice    string // pre-rendered
	Width     int
	theme     *styles.Theme
}

// NewStatusBar creates an empty status bar.
func NewStatusBar(theme *styles.Theme) *StatusBar {
	return &StatusBar{Width: 80, theme: theme}
}

// View renders as many hints as fit beside the notice.
func (s *StatusBar) View() string {
	inner := s.Width - s.theme.StatusBar.GetHorizontalFrameSize()
	if inner < 10 {
		inner = 10
	}
	room := inner - lipgloss.Width(s.Notice)
	if s.Notice != "" {
		room--
	}

	var hints []string
	used := 0
	for _, sc := range s.Shortcuts {
		plain := sc.Key + " " + sc.Desc
		w := util.StringWidth(plain)
		if len(hints) > 0 {
			w += 2
		}
		if used+w > room {
			break
		}
		used += w
		hints = append(hints, s.theme.ShortcutKey.Render(sc.Key)+" "+s.theme.ShortcutDesc.Render(sc.Desc))
	}

	left := strings.Join(hints, "  ")
	gap := inner - lipgloss.Width(left) - lipgloss.Width(s.Notice)
	if gap < 0 {
		gap = 0
	}
	return s.theme.StatusBar.Width(s.Width).Render(left + strings.Repeat(" ", gap) + s.Notice)
}

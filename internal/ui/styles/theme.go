// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/jeranaias/coinchat/internal/health"
	"github.com/jeranaias/coinchat/internal/render"
)

// Theme holds all the styled components for the application.
// It detects the terminal's color capability and adjusts accordingly.
type Theme struct {
	// Terminal capabilities
	IsDark       bool
	ColorProfile termenv.Profile

	// Layout dimensions
	Width  int
	Height int

	// ==========================================================================
	// HEADER STYLES
	// ==========================================================================

	Header      lipgloss.Style
	HeaderTitle lipgloss.Style

	StatusUnknown   lipgloss.Style
	StatusConnected lipgloss.Style
	StatusDegraded  lipgloss.Style
	StatusOffline   lipgloss.Style

	// ==========================================================================
	// MESSAGE BUBBLE STYLES
	// ==========================================================================

	UserBubble lipgloss.Style
	BotBubble  lipgloss.Style
	UserName   lipgloss.Style
	BotName    lipgloss.Style
	Timestamp  lipgloss.Style

	// Inline markup inside bubbles
	Bold   lipgloss.Style
	Italic lipgloss.Style
	Code   lipgloss.Style
	Link   lipgloss.Style

	// ==========================================================================
	// INPUT AREA STYLES
	// ==========================================================================

	InputContainer lipgloss.Style
	InputDisabled  lipgloss.Style
	InputPrompt    lipgloss.Style

	// ==========================================================================
	// SPINNER, TOAST, OVERLAY
	// ==========================================================================

	Spinner      lipgloss.Style
	ThinkingText lipgloss.Style
	Toast        lipgloss.Style
	HelpBox      lipgloss.Style

	// ==========================================================================
	// STATUS BAR AND WELCOME
	// ==========================================================================

	StatusBar    lipgloss.Style
	ShortcutKey  lipgloss.Style
	ShortcutDesc lipgloss.Style
	QuickKey     lipgloss.Style
	QuickPrompt  lipgloss.Style
	Muted        lipgloss.Style
}

// NewTheme creates a new theme with all styles configured.
func NewTheme() *Theme {
	t := &Theme{
		IsDark:       termenv.HasDarkBackground(),
		ColorProfile: termenv.ColorProfile(),
	}
	t.initStyles()
	return t
}

// initStyles initializes all the lip gloss styles.
func (t *Theme) initStyles() {
	// Header
	t.Header = lipgloss.NewStyle().
		Background(SurfaceDim).
		BorderStyle(lipgloss.NormalBorder()).
		BorderBottom(true).
		BorderForeground(Overlay).
		Padding(0, 1)

	t.HeaderTitle = lipgloss.NewStyle().
		Bold(true).
		Foreground(Gold)

	t.StatusUnknown = lipgloss.NewStyle().Foreground(TextMuted)
	t.StatusConnected = lipgloss.NewStyle().Foreground(Emerald).Bold(true)
	t.StatusDegraded = lipgloss.NewStyle().Foreground(Amber).Bold(true)
	t.StatusOffline = lipgloss.NewStyle().Foreground(Rose).Bold(true)

	// Message bubbles
	t.UserBubble = lipgloss.NewStyle().
		Foreground(UserBubbleFg).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(UserBubbleBorder).
		Padding(0, 1).
		MarginLeft(4)

	t.BotBubble = lipgloss.NewStyle().
		Foreground(BotBubbleFg).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(BotBubbleBorder).
		Padding(0, 1).
		MarginRight(4)

	t.UserName = lipgloss.NewStyle().Foreground(UserBubbleBorder).Bold(true)
	t.BotName = lipgloss.NewStyle().Foreground(Indigo).Bold(true)
	t.Timestamp = lipgloss.NewStyle().Foreground(TextMuted)

	t.Bold = lipgloss.NewStyle().Bold(true)
	t.Italic = lipgloss.NewStyle().Italic(true)
	t.Code = lipgloss.NewStyle().Background(CodeBg).Foreground(Gold)
	t.Link = lipgloss.NewStyle().Foreground(Indigo).Underline(true)

	// Input area
	t.InputContainer = lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderTop(true).
		BorderForeground(Overlay)

	t.InputDisabled = t.InputContainer.
		BorderForeground(TextMuted).
		Foreground(TextMuted)

	t.InputPrompt = lipgloss.NewStyle().
		Foreground(Gold).
		Bold(true)

	t.Spinner = lipgloss.NewStyle().Foreground(Gold)
	t.ThinkingText = lipgloss.NewStyle().Foreground(TextSecondary).Italic(true)

	t.Toast = lipgloss.NewStyle().
		Foreground(TextInverse).
		Background(Emerald).
		Bold(true).
		Padding(0, 1)

	t.HelpBox = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Gold).
		Padding(0, 1)

	// Status bar
	t.StatusBar = lipgloss.NewStyle().
		Background(SurfaceDim).
		Foreground(TextSecondary).
		Padding(0, 1)

	t.ShortcutKey = lipgloss.NewStyle().Foreground(Gold).Bold(true)
	t.ShortcutDesc = lipgloss.NewStyle().Foreground(TextMuted)

	t.QuickKey = lipgloss.NewStyle().Foreground(Gold).Bold(true)
	t.QuickPrompt = lipgloss.NewStyle().Foreground(TextPrimary)
	t.Muted = lipgloss.NewStyle().Foreground(TextMuted)
}

// SetSize updates the theme dimensions for responsive layouts.
func (t *Theme) SetSize(width, height int) {
	t.Width = width
	t.Height = height
}

// StatusStyle returns the indicator style for a connection status.
func (t *Theme) StatusStyle(s health.Status) lipgloss.Style {
	switch s {
	case health.StatusConnected:
		return t.StatusConnected
	case health.StatusDegraded:
		return t.StatusDegraded
	case health.StatusOffline:
		return t.StatusOffline
	default:
		return t.StatusUnknown
	}
}

// StatusDot returns the shape drawn beside the connection title.
func StatusDot(s health.Status) string {
	switch s {
	case health.StatusConnected:
		return StatusDots.Connected
	case health.StatusDegraded:
		return StatusDots.Degraded
	case health.StatusOffline:
		return StatusDots.Offline
	default:
		return StatusDots.Unknown
	}
}

// RenderStatus renders the dot and title for s.
func (t *Theme) RenderStatus(s health.Status) string {
	return t.StatusStyle(s).Render(StatusDot(s) + " " + s.Title())
}

// MessageStyles returns the inline markup styles for the terminal renderer.
func (t *Theme) MessageStyles() render.TerminalStyles {
	return render.TerminalStyles{
		Bold:   t.Bold,
		Italic: t.Italic,
		Code:   t.Code,
		Link:   t.Link,
	}
}

// Hyperlinks reports whether OSC-8 links should be emitted.
func (t *Theme) Hyperlinks() bool {
	return t.ColorProfile != termenv.Ascii
}

// GetLayoutMode returns the current layout mode based on width.
func (t *Theme) GetLayoutMode() LayoutMode {
	if t.Width < 60 {
		return LayoutNarrow
	}
	if t.Width < 100 {
		return LayoutMedium
	}
	return LayoutWide
}

// LayoutMode represents the current responsive layout mode.
type LayoutMode int

const (
	LayoutNarrow LayoutMode = iota // < 60 columns
	LayoutMedium                   // 60-100 columns
	LayoutWide                     // >= 100 columns
)

// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Package styles provides the visual styling system for the coinchat TUI.

All colors use Lip Gloss AdaptiveColor for automatic light/dark terminal
detection.

# Color System (colors.go)

  - Gold - Brand color, header, quick prompt keys
  - Indigo - Assistant messages and links
  - Emerald / Amber / Rose - Connected, degraded and offline indicators

Message bubbles use semantic tokens (UserBubbleBg, BotBubbleBg, ...) and text
uses a TextPrimary / TextSecondary / TextMuted hierarchy.

# Theme System (theme.go)

	theme := styles.NewTheme()
	header := theme.StatusStyle(health.StatusConnected).Render("Connected")
	formatter := render.NewTerminal(theme.MessageStyles(), theme.Hyperlinks())
*/
package styles

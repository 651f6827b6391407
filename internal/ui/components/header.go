// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/coinchat/internal/backend"
	"github.com/jeranaias/coinchat/internal/health"
	"github.com/jeranaias/coinchat/internal/ui/styles"
	"github.com/jeranaias/coinchat/internal/util"
)

// =============================================================================
// HEADER COMPONENT
// =============================================================================

// Header is the title bar with the connection indicator on the right.
type Header struct {
	Title    string
	Status   health.Status
	Detail   string // shown after the title when there is room, e.g. "503 Service Unavailable"
	Endpoint string
	Width    int
	theme    *styles.Theme
}

// NewHeader creates a Header in the Checking... state.
func NewHeader(theme *styles.Theme) *Header {
	return &Header{
		Title:  "🪙 CoinChat",
		Status: health.StatusUnknown,
		Width:  80,
		theme:  theme,
	}
}

// SetWidth updates the header width
func (h *Header) SetWidth(width int) {
	h.Width = width
}

// SetStatus updates the connection indicator from a health result.
func (h *Header) SetStatus(r health.Result) {
	h.Status = r.Status
	h.Detail = ""
	if r.Status == health.StatusDegraded && r.Code != 0 {
		h.Detail = backend.DescribeStatus(r.Code)
	}
}

// View renders the header on a single line.
func (h *Header) View() string {
	width := h.Width
	if width < 30 {
		width = 30
	}
	inner := width - h.theme.Header.GetHorizontalFrameSize()

	title := h.theme.HeaderTitle.Render(h.Title)
	status := h.theme.RenderStatus(h.Status)

	middle := ""
	room := inner - lipgloss.Width(title) - lipgloss.Width(status) - 2
	label := h.Endpoint
	if h.Detail != "" {
		label = h.Detail
	}
	if label != "" && room > 8 {
		middle = h.theme.Muted.Render(util.TruncateWidth(label, room))
	}

	gap := inner - lipgloss.Width(title) - lipgloss.Width(middle) - lipgloss.Width(status)
	if gap < 1 {
		gap = 1
	}
	left := gap
	if middle != "" {
		left = gap / 2
	}
	line := title + strings.Repeat(" ", left) + middle + strings.Repeat(" ", gap-left) + status

	return h.theme.Header.Width(width - h.theme.Header.GetHorizontalBorderSize()).Render(line)
}

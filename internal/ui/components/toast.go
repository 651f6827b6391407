// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/coinchat/internal/ui/styles"
	"github.com/jeranaias/coinchat/internal/util"
)

// DefaultToastDuration is the auto-dismiss duration when none is configured.
const DefaultToastDuration = 3 * time.Second

// CopiedNotice is shown after a reply is copied.
const CopiedNotice = "Copied to clipboard!"

// ToastKind selects the toast color.
type ToastKind int

const (
	ToastKindSuccess ToastKind = iota
	ToastKindError
)

// Toast is a single auto-dismissing notification.
type Toast struct {
	ID        int
	Message   string
	Kind      ToastKind
	CreatedAt time.Time
	Duration  time.Duration
}

// IsExpired returns true if the toast should be dismissed.
func (t Toast) IsExpired(now time.Time) bool {
	return now.Sub(t.CreatedAt) >= t.Duration
}

// ToastExpiredMsg is delivered when the toast with ID should disappear.
type ToastExpiredMsg struct {
	ID int
}

// Toaster holds the current toast, if any.
type Toaster struct {
	current *Toast
	nextID  int
	now     func() time.Time
}

// NewToaster creates an empty Toaster.
func NewToaster() *Toaster {
	return &Toaster{nextID: 1, now: time.Now}
}

// Show replaces the current toast and returns the command that expires it.
func (t *Toaster) Show(message string, kind ToastKind, d time.Duration) tea.Cmd {
	if d <= 0 {
		d = DefaultToastDuration
	}
	toast := Toast{
		ID:        t.nextID,
		Message:   message,
		Kind:      kind,
		CreatedAt: t.now(),
		Duration:  d,
	}
	t.nextID++
	t.current = &toast

	id := toast.ID
	return tea.Tick(d, func(time.Time) tea.Msg {
		return ToastExpiredMsg{ID: id}
	})
}

// Expire clears the toast if it is still the one identified by msg.
// A newer toast survives the expiry of an older one.
func (t *Toaster) Expire(msg ToastExpiredMsg) {
	if t.current != nil && t.current.ID == msg.ID {
		t.current = nil
	}
}

// Current returns the visible toast.
func (t *Toaster) Current() (Toast, bool) {
	if t.current == nil {
		return Toast{}, false
	}
	return *t.current, true
}

// View renders the current toast truncated to width, or "".
func (t *Toaster) View(theme *styles.Theme, width int) string {
	toast, ok := t.Current()
	if !ok {
		return ""
	}
	style := theme.Toast
	if toast.Kind == ToastKindError {
		style = style.Background(styles.Rose)
	}
	limit := width - style.GetHorizontalFrameSize()
	if limit < 10 {
		limit = 10
	}
	return style.Render(util.TruncateWidth(toast.Message, limit))
}

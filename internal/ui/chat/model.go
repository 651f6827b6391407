// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"context"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"

	"github.com/jeranaias/coinchat/internal/commands"
	"github.com/jeranaias/coinchat/internal/health"
	"github.com/jeranaias/coinchat/internal/render"
	"github.com/jeranaias/coinchat/internal/session"
	"github.com/jeranaias/coinchat/internal/ui/components"
	"github.com/jeranaias/coinchat/internal/ui/styles"
)

// =============================================================================
// OPTIONS
// =============================================================================

// Options wires the model to its collaborators.
type Options struct {
	Controller *session.Controller
	Monitor    *health.Monitor
	Theme      *styles.Theme

	// Formatter renders message markup; nil builds one from Theme.
	Formatter *render.Terminal

	QuickPrompts   []string
	ShowTimestamps bool
	NotifyDuration time.Duration
	InputMaxLines  int

	// Endpoint is shown in the header when there is room.
	Endpoint string

	// Context bounds exchanges and health checks; nil means Background.
	Context context.Context

	Logger *zerolog.Logger

	// Clipboard writes text to the system clipboard; nil uses atotto/clipboard.
	Clipboard func(string) error
}

// =============================================================================
// CHAT MODEL
// =============================================================================

// Model is the Bubble Tea model for the chat view.
type Model struct {
	ctrl    *session.Controller
	monitor *health.Monitor
	theme   *styles.Theme
	format  *render.Terminal
	ctx     context.Context
	log     zerolog.Logger
	copyFn  func(string) error

	quickPrompts   []string
	showTimestamps bool
	notifyFor      time.Duration
	maxInputLines  int

	// Dimensions
	width  int
	height int
	ready  bool

	// UI Components
	viewport  viewport.Model
	input     textarea.Model
	spinner   spinner.Model
	help      help.Model
	header    *components.Header
	statusBar *components.StatusBar
	toaster   *components.Toaster
	helpView  *components.Help
	welcome   *components.Welcome

	keyMap    KeyMap
	parser    *commands.Parser
	completer *commands.Completer

	// inflight is the exchange awaiting its SettledMsg.
	inflight *session.Exchange
	showHelp bool
	quitting bool
}

// New creates a new chat model.
func New(opts Options) Model {
	theme := opts.Theme
	if theme == nil {
		theme = styles.NewTheme()
	}
	format := opts.Formatter
	if format == nil {
		format = render.NewTerminal(theme.MessageStyles(), theme.Hyperlinks())
	}
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}
	log := zerolog.Nop()
	if opts.Logger != nil {
		log = *opts.Logger
	}
	copyFn := opts.Clipboard
	if copyFn == nil {
		copyFn = clipboard.WriteAll
	}
	maxLines := opts.InputMaxLines
	if maxLines < 1 {
		maxLines = 5
	}
	prompts := opts.QuickPrompts
	if len(prompts) > maxQuickPrompts {
		prompts = prompts[:maxQuickPrompts]
	}

	km := DefaultKeyMap()

	ta := textarea.New()
	ta.Placeholder = "Ask about crypto prices, trends, or technology..."
	ta.Prompt = "› "
	ta.ShowLineNumbers = false
	ta.CharLimit = 4000
	ta.SetHeight(1)
	ta.FocusedStyle.CursorLine = lipgloss.NewStyle()
	ta.BlurredStyle.CursorLine = lipgloss.NewStyle()
	ta.FocusedStyle.Prompt = theme.InputPrompt
	ta.BlurredStyle.Prompt = theme.Muted
	ta.KeyMap.InsertNewline = km.Newline
	ta.Focus()

	vp := viewport.New(80, 20)
	// Only the bindings in KeyMap scroll; letters belong to the input.
	vp.KeyMap = viewport.KeyMap{}

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = theme.Spinner

	registry := commands.NewRegistry()

	m := Model{
		ctrl:           opts.Controller,
		monitor:        opts.Monitor,
		theme:          theme,
		format:         format,
		ctx:            ctx,
		log:            log.With().Str("component", "tui").Logger(),
		copyFn:         copyFn,
		quickPrompts:   prompts,
		showTimestamps: opts.ShowTimestamps,
		notifyFor:      opts.NotifyDuration,
		maxInputLines:  maxLines,
		viewport:       vp,
		input:          ta,
		spinner:        sp,
		help:           help.New(),
		header:         components.NewHeader(theme),
		statusBar:      components.NewStatusBar(theme),
		toaster:        components.NewToaster(),
		welcome:        components.NewWelcome(theme, prompts),
		keyMap:         km,
		parser:         commands.NewParser(registry),
		completer:      commands.NewCompleter(registry),
	}
	m.header.Endpoint = opts.Endpoint
	m.helpView = components.NewHelp(theme, m.helpMarkdown())
	m.help.ShowAll = true

	shortcuts := make([]components.Shortcut, 0, len(km.ShortHelp()))
	for _, b := range km.ShortHelp() {
		h := b.Help()
		shortcuts = append(shortcuts, components.Shortcut{Key: h.Key, Desc: h.Desc})
	}
	m.statusBar.Shortcuts = shortcuts

	m.refreshTranscript()
	return m
}

// Init starts the cursor blink and the first health check.
func (m Model) Init() tea.Cmd {
	return tea.Batch(textarea.Blink, m.checkHealthCmd(false))
}

// =============================================================================
// ACCESSORS
// =============================================================================

// Pending reports whether a reply is outstanding.
func (m Model) Pending() bool {
	return m.ctrl != nil && m.ctrl.Pending()
}

// Status returns the connection status shown in the header.
func (m Model) Status() health.Status {
	return m.header.Status
}

// InputValue returns the current input text.
func (m Model) InputValue() string {
	return m.input.Value()
}

// HelpVisible reports whether the help overlay is open.
func (m Model) HelpVisible() bool {
	return m.showHelp
}

// helpMarkdown lists commands and quick prompts; keys come from bubbles/help.
func (m Model) helpMarkdown() string {
	var cmds []components.HelpEntry
	for _, c := range m.parser.Registry().All() {
		cmds = append(cmds, components.HelpEntry{Keys: c.Display(), Desc: c.Description})
	}
	return components.HelpMarkdown(nil, cmds, m.quickPrompts)
}

// keyHelp renders the full key reference.
func (m Model) keyHelp() string {
	return m.help.View(m.keyMap)
}

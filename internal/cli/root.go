// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/jeranaias/coinchat/internal/backend"
	"github.com/jeranaias/coinchat/internal/config"
	"github.com/jeranaias/coinchat/internal/health"
	"github.com/jeranaias/coinchat/internal/logging"
	"github.com/jeranaias/coinchat/internal/render"
	"github.com/jeranaias/coinchat/internal/session"
	"github.com/jeranaias/coinchat/internal/ui/styles"
)

// Version information (can be overridden at build time)
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// skipConfig marks commands that must work even with a broken config file.
const skipConfig = "coinchat/skip-config"

// =============================================================================
// APP STATE
// =============================================================================

// App holds the flags and the state every command shares once the
// persistent pre-run has loaded configuration and logging.
type App struct {
	ConfigPath string
	URL        string
	LogLevel   string
	LogFile    string

	Config *config.Config
	Logger zerolog.Logger

	// Clipboard writes text to the system clipboard.
	Clipboard func(string) error

	closer io.Closer
}

// setup loads configuration, applies flag overrides and opens the log.
func (a *App) setup(cmd *cobra.Command) error {
	if cmd.Annotations[skipConfig] == "true" {
		return nil
	}

	cfg, err := config.Load(a.ConfigPath)
	if err != nil {
		return configError(err)
	}
	if a.URL != "" {
		cfg.Server.BaseURL = strings.TrimRight(a.URL, "/")
	}
	if a.LogLevel != "" {
		cfg.Log.Level = a.LogLevel
	}
	if a.LogFile != "" {
		cfg.Log.File = a.LogFile
	}
	if err := cfg.Validate(); err != nil {
		return configError(errors.Wrap(err, "invalid flags"))
	}

	defaultLog, err := config.DefaultLogPath()
	if err != nil {
		defaultLog = ""
	}
	logger, closer, err := logging.Setup(logging.Options{
		Level:       cfg.Log.Level,
		File:        cfg.Log.File,
		DefaultFile: defaultLog,
	})
	if err != nil {
		return configError(err)
	}

	a.Config = cfg
	a.Logger = logger
	a.closer = closer
	a.Logger.Debug().
		Str("command", cmd.CommandPath()).
		Str("backend", cfg.Server.BaseURL).
		Msg("coinchat starting")
	return nil
}

// run executes root and closes the log afterwards, whether or not the
// command failed. Cobra skips post-run hooks after an error.
func (a *App) run(ctx context.Context, root *cobra.Command) error {
	defer a.Close()
	return root.ExecuteContext(ctx)
}

// Close releases the log file.
func (a *App) Close() {
	if a.closer != nil {
		a.closer.Close()
		a.closer = nil
	}
}

// deps are the collaborators built from the loaded configuration.
type deps struct {
	client  *backend.Client
	ctrl    *session.Controller
	monitor *health.Monitor
	theme   *styles.Theme
	format  *render.Terminal
}

func (a *App) wire() *deps {
	cfg := a.Config
	client := backend.NewClientWithConfig(&backend.ClientConfig{
		BaseURL:    cfg.Server.BaseURL,
		ChatPath:   cfg.Server.ChatPath,
		HealthPath: cfg.Server.HealthPath,
		Timeout:    cfg.Server.Timeout.Duration,
		UserAgent:  "coinchat/" + Version,
	})
	theme := styles.NewTheme()
	return &deps{
		client: client,
		ctrl:   session.New(client, session.Options{Logger: &a.Logger}),
		monitor: health.NewMonitor(client, health.Config{
			Interval:     cfg.Health.Interval.Duration,
			Timeout:      cfg.Health.Timeout.Duration,
			RefreshBurst: cfg.Health.RefreshBurst,
		}, &a.Logger),
		theme:  theme,
		format: render.NewTerminal(theme.MessageStyles(), theme.Hyperlinks()),
	}
}

// =============================================================================
// ROOT COMMAND
// =============================================================================

// NewApp returns an App with the system clipboard.
func NewApp() *App {
	return &App{Clipboard: clipboard.WriteAll}
}

// newRootCommand builds the coinchat command tree around app.
func newRootCommand(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:   "coinchat",
		Short: "Chat with a cryptocurrency assistant from the terminal",
		Long: `coinchat talks to a crypto chat backend over HTTP.

On a terminal it opens the full-screen chat; with piped input it falls back
to line mode. Settings come from ~/.coinchat/config.toml, COINCHAT_*
environment variables and the flags below, in that order.`,
		Version:       Version,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return app.setup(cmd)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if IsTTY() && IsStdoutTTY() {
				return runTUI(cmd.Context(), app)
			}
			return runLineChat(cmd.Context(), app, cmd.OutOrStdout())
		},
	}
	root.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return usageError(err)
	})

	flags := root.PersistentFlags()
	flags.StringVar(&app.ConfigPath, "config", "", "config file (default ~/.coinchat/config.toml)")
	flags.StringVar(&app.URL, "url", "", "backend base URL, e.g. http://127.0.0.1:5000")
	flags.StringVar(&app.LogLevel, "log-level", "", "log level: trace, debug, info, warn, error")
	flags.StringVar(&app.LogFile, "log-file", "", `log file path, "-" for stderr`)

	root.AddCommand(
		newTUICommand(app),
		newChatCommand(app),
		newAskCommand(app),
		newStatusCommand(app),
		newConfigCommand(app),
		newVersionCommand(),
	)
	return root
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:         "version",
		Short:       "Print version information",
		Args:        cobra.NoArgs,
		Annotations: map[string]string{skipConfig: "true"},
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "coinchat %s (commit %s, built %s)\n", Version, GitCommit, BuildDate)
		},
	}
}

// Execute runs the root command and returns the process exit code.
// An interrupt cancels the command's context.
func Execute() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	app := NewApp()
	root := newRootCommand(app)
	if err := app.run(ctx, root); err != nil {
		return reportError(root.ErrOrStderr(), err)
	}
	return ExitSuccess
}

// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"bytes"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/pkg/errors"

	"github.com/jeranaias/coinchat/internal/util"
)

// =============================================================================
// CONFIG STRUCTURES
// =============================================================================

// Config is the top-level coinchat configuration.
type Config struct {
	Server ServerConfig `toml:"server"`
	Health HealthConfig `toml:"health"`
	Render RenderConfig `toml:"render"`
	UI     UIConfig     `toml:"ui"`
	Log    LogConfig    `toml:"log"`
}

// ServerConfig locates the chat backend.
type ServerConfig struct {
	BaseURL    string   `toml:"base_url"`
	ChatPath   string   `toml:"chat_path"`
	HealthPath string   `toml:"health_path"`
	Timeout    Duration `toml:"timeout"`
}

// HealthConfig controls the connection monitor.
type HealthConfig struct {
	Interval     Duration `toml:"interval"`
	Timeout      Duration `toml:"timeout"`
	RefreshBurst int      `toml:"refresh_burst"`
}

// RenderConfig controls message formatting.
type RenderConfig struct {
	// EscapeHTML escapes the reply text before markup is applied.
	EscapeHTML bool `toml:"escape_html"`
}

// UIConfig holds presentation settings for both front ends.
type UIConfig struct {
	ShowTimestamps bool     `toml:"show_timestamps"`
	QuickPrompts   []string `toml:"quick_prompts"`
	NotifySeconds  int      `toml:"notify_seconds"`
	InputMaxLines  int      `toml:"input_max_lines"`
}

// LogConfig selects log verbosity and destination.
type LogConfig struct {
	Level string `toml:"level"`
	// File is the log path; "-" means stderr, "" means the default file.
	File string `toml:"file"`
}

// Duration is a time.Duration written as "30s" in TOML.
type Duration struct {
	time.Duration
}

// UnmarshalText parses a Go duration string.
func (d *Duration) UnmarshalText(text []byte) error {
	parsed, err := time.ParseDuration(strings.TrimSpace(string(text)))
	if err != nil {
		return errors.Wrapf(err, "invalid duration %q", string(text))
	}
	d.Duration = parsed
	return nil
}

// MarshalText writes the duration in Go notation.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// =============================================================================
// DEFAULTS
// =============================================================================

// DefaultQuickPrompts are the canned questions offered on first launch.
var DefaultQuickPrompts = []string{
	"What's the current price of Bitcoin?",
	"Show me trending cryptocurrencies",
	"What is Ethereum?",
	"Explain blockchain technology",
}

// Default returns a Config populated with the built-in defaults.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			BaseURL:    "http://127.0.0.1:5000",
			ChatPath:   "/chat",
			HealthPath: "/health",
			Timeout:    Duration{60 * time.Second},
		},
		Health: HealthConfig{
			Interval:     Duration{30 * time.Second},
			Timeout:      Duration{5 * time.Second},
			RefreshBurst: 3,
		},
		Render: RenderConfig{
			EscapeHTML: false,
		},
		UI: UIConfig{
			ShowTimestamps: true,
			QuickPrompts:   append([]string(nil), DefaultQuickPrompts...),
			NotifySeconds:  3,
			InputMaxLines:  5,
		},
		Log: LogConfig{
			Level: "info",
			File:  "",
		},
	}
}

// =============================================================================
// PATHS
// =============================================================================

// ConfigDir returns the coinchat configuration directory (~/.coinchat).
func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", errors.Wrap(err, "failed to get home directory")
	}
	return filepath.Join(home, ".coinchat"), nil
}

// ConfigPathTOML returns the default config file path.
func ConfigPathTOML() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// DefaultLogPath returns ~/.coinchat/coinchat.log.
func DefaultLogPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "coinchat.log"), nil
}

// EnsureConfigDir creates the config directory if it doesn't exist.
func EnsureConfigDir() error {
	dir, err := ConfigDir()
	if err != nil {
		return err
	}
	return errors.Wrap(os.MkdirAll(dir, 0700), "failed to create config directory")
}

// =============================================================================
// LOADING
// =============================================================================

// Load builds the effective configuration: defaults, then the TOML file,
// then COINCHAT_* environment overrides. An empty path means the default
// location, where a missing file is not an error. An explicit path must exist.
func Load(path string) (*Config, error) {
	explicit := path != ""
	if !explicit {
		p, err := ConfigPathTOML()
		if err != nil {
			return nil, err
		}
		path = p
	}

	cfg := Default()
	if err := LoadTOML(path, cfg); err != nil && (explicit || !errors.Is(err, os.ErrNotExist)) {
		return nil, err
	}

	if err := cfg.ApplyEnvOverrides(); err != nil {
		return nil, err
	}
	cfg.SetDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid configuration")
	}
	return cfg, nil
}

// LoadTOML decodes path on top of the values already in cfg.
func LoadTOML(path string, cfg *Config) error {
	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return err
		}
		return errors.Wrapf(err, "failed to parse %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return errors.Errorf("%s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	return nil
}

// SaveTOML atomically writes cfg to path, creating parent directories as needed.
func SaveTOML(path string, cfg *Config) error {
	data, err := cfg.TOML()
	if err != nil {
		return err
	}
	return errors.Wrap(util.WriteFileAtomic(path, data, 0600, 0700), "failed to write config")
}

// ApplyEnvOverrides applies COINCHAT_* environment variables.
func (c *Config) ApplyEnvOverrides() error {
	if v := os.Getenv("COINCHAT_URL"); v != "" {
		c.Server.BaseURL = v
	}
	if v := os.Getenv("COINCHAT_LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}
	if v := os.Getenv("COINCHAT_LOG_FILE"); v != "" {
		c.Log.File = v
	}
	if v := os.Getenv("COINCHAT_HEALTH_INTERVAL"); v != "" {
		var d Duration
		if err := d.UnmarshalText([]byte(v)); err != nil {
			return errors.Wrap(err, "COINCHAT_HEALTH_INTERVAL")
		}
		c.Health.Interval = d
	}
	if v := os.Getenv("COINCHAT_ESCAPE_HTML"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return errors.Wrap(err, "COINCHAT_ESCAPE_HTML")
		}
		c.Render.EscapeHTML = b
	}
	return nil
}

// SetDefaults fills zero values left by a partial file.
func (c *Config) SetDefaults() {
	d := Default()
	if c.Server.BaseURL == "" {
		c.Server.BaseURL = d.Server.BaseURL
	}
	c.Server.BaseURL = strings.TrimRight(c.Server.BaseURL, "/")
	if c.Server.ChatPath == "" {
		c.Server.ChatPath = d.Server.ChatPath
	}
	if c.Server.HealthPath == "" {
		c.Server.HealthPath = d.Server.HealthPath
	}
	if c.Health.RefreshBurst == 0 {
		c.Health.RefreshBurst = d.Health.RefreshBurst
	}
	if c.UI.NotifySeconds == 0 {
		c.UI.NotifySeconds = d.UI.NotifySeconds
	}
	if c.UI.InputMaxLines == 0 {
		c.UI.InputMaxLines = d.UI.InputMaxLines
	}
	if c.Log.Level == "" {
		c.Log.Level = d.Log.Level
	}
}

// =============================================================================
// VALIDATION
// =============================================================================

// ValidationError describes one invalid field.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return e.Field + ": " + e.Message
}

// ValidateErrors collects every ValidationError found.
type ValidateErrors []ValidationError

func (e ValidateErrors) Error() string {
	msgs := make([]string, len(e))
	for i, err := range e {
		msgs[i] = err.Error()
	}
	return strings.Join(msgs, "; ")
}

var validLevels = map[string]bool{
	"trace": true, "debug": true, "info": true, "warn": true,
	"error": true, "fatal": true, "panic": true, "disabled": true,
}

// Validate checks the configuration and returns ValidateErrors if anything is wrong.
func (c *Config) Validate() error {
	var errs ValidateErrors

	if u, err := url.Parse(c.Server.BaseURL); err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		errs = append(errs, ValidationError{"server.base_url", "must be an http(s) URL"})
	}
	if !strings.HasPrefix(c.Server.ChatPath, "/") {
		errs = append(errs, ValidationError{"server.chat_path", "must start with /"})
	}
	if !strings.HasPrefix(c.Server.HealthPath, "/") {
		errs = append(errs, ValidationError{"server.health_path", "must start with /"})
	}
	if c.Server.Timeout.Duration < 0 {
		errs = append(errs, ValidationError{"server.timeout", "must not be negative"})
	}
	if c.Health.Interval.Duration <= 0 {
		errs = append(errs, ValidationError{"health.interval", "must be positive"})
	}
	if c.Health.Timeout.Duration <= 0 {
		errs = append(errs, ValidationError{"health.timeout", "must be positive"})
	}
	if c.Health.RefreshBurst < 1 {
		errs = append(errs, ValidationError{"health.refresh_burst", "must be at least 1"})
	}
	if c.UI.NotifySeconds < 1 {
		errs = append(errs, ValidationError{"ui.notify_seconds", "must be at least 1"})
	}
	if c.UI.InputMaxLines < 1 {
		errs = append(errs, ValidationError{"ui.input_max_lines", "must be at least 1"})
	}
	if len(c.UI.QuickPrompts) > 9 {
		errs = append(errs, ValidationError{"ui.quick_prompts", "at most 9 prompts are supported"})
	}
	for i, p := range c.UI.QuickPrompts {
		if strings.TrimSpace(p) == "" {
			errs = append(errs, ValidationError{"ui.quick_prompts[" + strconv.Itoa(i) + "]", "must not be blank"})
		}
	}
	if !validLevels[strings.ToLower(c.Log.Level)] {
		errs = append(errs, ValidationError{"log.level", "unknown level " + strconv.Quote(c.Log.Level)})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// =============================================================================
// OUTPUT
// =============================================================================

// TOML encodes the configuration as a TOML document.
func (c *Config) TOML() ([]byte, error) {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(c); err != nil {
		return nil, errors.Wrap(err, "failed to encode config")
	}
	return buf.Bytes(), nil
}

// String returns the TOML form, or the encode error text.
func (c *Config) String() string {
	data, err := c.TOML()
	if err != nil {
		return err.Error()
	}
	return string(data)
}

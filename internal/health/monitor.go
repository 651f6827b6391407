// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package health

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/jeranaias/coinchat/internal/backend"
)

// DefaultInterval is the time between the end of one check and the next.
const DefaultInterval = 30 * time.Second

// DefaultTimeout bounds a single check.
const DefaultTimeout = 5 * time.Second

// =============================================================================
// STATUS
// =============================================================================

// Status is the connection indicator state.
type Status int

const (
	StatusUnknown Status = iota
	StatusConnected
	StatusDegraded
	StatusOffline
)

// String returns a short machine-friendly name.
func (s Status) String() string {
	switch s {
	case StatusConnected:
		return "connected"
	case StatusDegraded:
		return "degraded"
	case StatusOffline:
		return "offline"
	default:
		return "unknown"
	}
}

// Title returns the human-readable indicator text.
func (s Status) Title() string {
	switch s {
	case StatusConnected:
		return "Connected"
	case StatusDegraded:
		return "Connection issues"
	case StatusOffline:
		return "Offline"
	default:
		return "Checking..."
	}
}

// Healthy reports whether the backend answered with a 2xx.
func (s Status) Healthy() bool {
	return s == StatusConnected
}

// FromProbe maps a probe outcome to a Status.
func FromProbe(code int, err error) Status {
	switch {
	case err != nil:
		return StatusOffline
	case code >= 200 && code <= 299:
		return StatusConnected
	default:
		return StatusDegraded
	}
}

// =============================================================================
// MONITOR
// =============================================================================

// Prober performs one health request. *backend.Client implements it.
type Prober interface {
	Health(ctx context.Context) (int, error)
}

// Result is the outcome of one check.
type Result struct {
	Status    Status
	Code      int
	Err       error
	CheckedAt time.Time
	Latency   time.Duration
}

// Detail returns a one-line description for status displays.
func (r Result) Detail() string {
	switch {
	case r.Err != nil:
		return r.Status.Title() + ": " + r.Err.Error()
	case r.Code != 0:
		return r.Status.Title() + " (" + backend.DescribeStatus(r.Code) + ")"
	default:
		return r.Status.Title()
	}
}

// Config controls polling.
type Config struct {
	// Interval between checks, measured from the end of the previous one.
	Interval time.Duration

	// Timeout bounds a single check.
	Timeout time.Duration

	// RefreshBurst is how many manual refreshes may run back to back;
	// afterwards one is allowed per Interval/RefreshBurst.
	RefreshBurst int
}

// DefaultConfig returns the default polling configuration.
func DefaultConfig() Config {
	return Config{
		Interval:     DefaultInterval,
		Timeout:      DefaultTimeout,
		RefreshBurst: 3,
	}
}

// Monitor runs health checks and remembers the latest result.
type Monitor struct {
	prober  Prober
	cfg     Config
	log     zerolog.Logger
	limiter *rate.Limiter

	mu   sync.RWMutex
	last Result
}

// NewMonitor creates a monitor. Zero config fields take their defaults.
func NewMonitor(prober Prober, cfg Config, logger *zerolog.Logger) *Monitor {
	defaults := DefaultConfig()
	if cfg.Interval <= 0 {
		cfg.Interval = defaults.Interval
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaults.Timeout
	}
	if cfg.RefreshBurst <= 0 {
		cfg.RefreshBurst = defaults.RefreshBurst
	}

	log := zerolog.Nop()
	if logger != nil {
		log = *logger
	}

	every := cfg.Interval / time.Duration(cfg.RefreshBurst)
	return &Monitor{
		prober:  prober,
		cfg:     cfg,
		log:     log.With().Str("component", "health").Logger(),
		limiter: rate.NewLimiter(rate.Every(every), cfg.RefreshBurst),
	}
}

// Interval returns the polling interval.
func (m *Monitor) Interval() time.Duration {
	return m.cfg.Interval
}

// Check performs one health request and records the result.
func (m *Monitor) Check(ctx context.Context) Result {
	ctx, cancel := context.WithTimeout(ctx, m.cfg.Timeout)
	defer cancel()

	start := time.Now()
	var (
		code int
		err  error
	)
	if m.prober == nil {
		err = backend.ErrUnreachable
	} else {
		code, err = m.prober.Health(ctx)
	}

	res := Result{
		Status:    FromProbe(code, err),
		Code:      code,
		Err:       err,
		CheckedAt: time.Now(),
		Latency:   time.Since(start),
	}

	m.mu.Lock()
	prev := m.last.Status
	m.last = res
	m.mu.Unlock()

	if prev != res.Status {
		ev := m.log.Info()
		if !res.Status.Healthy() {
			ev = m.log.Warn().Err(err).Int("code", code)
		}
		ev.Str("from", prev.String()).
			Str("to", res.Status.String()).
			Dur("latency", res.Latency).
			Msg("backend status changed")
	}

	return res
}

// Refresh runs a check on demand unless manual refreshes are being throttled.
// The second return value is false when the request was throttled.
func (m *Monitor) Refresh(ctx context.Context) (Result, bool) {
	if !m.limiter.Allow() {
		return m.Last(), false
	}
	return m.Check(ctx), true
}

// AllowRefresh consumes a manual refresh token without checking.
// Adapters that run the check elsewhere (a tea.Cmd) use it to throttle.
func (m *Monitor) AllowRefresh() bool {
	return m.limiter.Allow()
}

// Last returns the most recent result.
func (m *Monitor) Last() Result {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.last
}

// Run checks immediately, then again Interval after each check returns,
// calling fn with every result. It returns when ctx is cancelled.
func (m *Monitor) Run(ctx context.Context, fn func(Result)) error {
	timer := time.NewTimer(0)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-timer.C:
		}

		res := m.Check(ctx)
		if fn != nil {
			fn(res)
		}
		timer.Reset(m.cfg.Interval)
	}
}

// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/jeranaias/coinchat/internal/backend"
	"github.com/jeranaias/coinchat/internal/health"
)

// labelStyle pads field names in the status report.
var labelStyle = lipgloss.NewStyle().Width(10)

// StatusReport is the --json form of a health check.
type StatusReport struct {
	Status    string `json:"status"`
	Title     string `json:"title"`
	Endpoint  string `json:"endpoint"`
	Code      int    `json:"code,omitempty"`
	Error     string `json:"error,omitempty"`
	LatencyMS int64  `json:"latency_ms"`
}

func newStatusCommand(app *App) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:     "status",
		Aliases: []string{"s"},
		Short:   "Check the backend connection",
		Long: `Run one health check against the backend.

Exits 0 when connected, 5 otherwise.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStatus(cmd.Context(), app, cmd.OutOrStdout(), asJSON)
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "output in JSON format")
	return cmd
}

func runStatus(ctx context.Context, app *App, out io.Writer, asJSON bool) error {
	configureColor()

	d := app.wire()
	res := d.monitor.Check(ctx)
	report := newStatusReport(res, d.client.Endpoint())

	if asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(report); err != nil {
			return errors.Wrap(err, "failed to encode status")
		}
	} else {
		fmt.Fprintln(out, d.theme.RenderStatus(res.Status))
		fmt.Fprintln(out, labelStyle.Render("Endpoint")+report.Endpoint)
		if res.Code != 0 {
			fmt.Fprintln(out, labelStyle.Render("HTTP")+backend.DescribeStatus(res.Code))
		}
		if res.Err != nil {
			fmt.Fprintln(out, labelStyle.Render("Error")+res.Err.Error())
		}
		fmt.Fprintln(out, labelStyle.Render("Latency")+res.Latency.Round(time.Millisecond).String())
	}

	if !res.Status.Healthy() {
		return &ExitError{Code: ExitNetworkError, Err: errors.New(res.Detail()), Silent: true}
	}
	return nil
}

func newStatusReport(res health.Result, endpoint string) StatusReport {
	r := StatusReport{
		Status:    res.Status.String(),
		Title:     res.Status.Title(),
		Endpoint:  endpoint,
		Code:      res.Code,
		LatencyMS: res.Latency.Milliseconds(),
	}
	if res.Err != nil {
		r.Error = res.Err.Error()
	}
	return r
}

// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"fmt"
	"io"

	"github.com/pkg/errors"

	"github.com/jeranaias/coinchat/internal/backend"
)

// =============================================================================
// EXIT CODES
// =============================================================================

const (
	// ExitSuccess indicates successful execution
	ExitSuccess = 0
	// ExitGeneralError indicates a general/unknown error
	ExitGeneralError = 1
	// ExitUsageError indicates invalid command usage or arguments
	ExitUsageError = 2
	// ExitConfigError indicates configuration file or settings error
	ExitConfigError = 3
	// ExitNetworkError indicates the backend could not be reached
	ExitNetworkError = 5
)

// =============================================================================
// EXIT ERROR
// =============================================================================

// ExitError carries the process exit code for a failed command.
type ExitError struct {
	Code int
	Err  error
	// Silent errors have already been reported on stdout.
	Silent bool
}

func (e *ExitError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("exit status %d", e.Code)
	}
	return e.Err.Error()
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

func usageError(err error) error {
	return &ExitError{Code: ExitUsageError, Err: err}
}

func configError(err error) error {
	return &ExitError{Code: ExitConfigError, Err: err}
}

// exchangeError maps a failed exchange to an exit code.
func exchangeError(err error) error {
	code := ExitGeneralError
	if backend.IsUnreachable(err) || backend.IsTimeout(err) {
		code = ExitNetworkError
	}
	return &ExitError{Code: code, Err: errors.Wrap(err, "chat request failed")}
}

// ExitCode returns the exit code for err.
func ExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return ExitGeneralError
}

// reportError prints err unless it is silent and returns its exit code.
func reportError(w io.Writer, err error) int {
	var exitErr *ExitError
	if !errors.As(err, &exitErr) || !exitErr.Silent {
		fmt.Fprintln(w, "Error:", err)
	}
	return ExitCode(err)
}

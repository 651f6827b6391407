// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package util provides small helpers used throughout coinchat.
//
// # Key Functions
//
// String Utilities:
//   - TruncateWidth: column-aware truncation with ellipsis
//   - FitWidth: truncate or pad to an exact column count
//
// File Operations:
//   - WriteFileAtomic: crash-safe file writing with fsync
//
// # Usage
//
//	label := util.TruncateWidth(status, 40)
//	err := util.WriteFileAtomic(path, data, 0600, 0700)
package util

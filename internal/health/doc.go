// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package health polls the backend health endpoint and maps the outcome to
// a connection indicator.
//
//   - reachable, 2xx      -> Connected
//   - reachable, non-2xx  -> Degraded
//   - unreachable         -> Offline
//
// Checks never touch the chat path and may overlap an in-flight chat request.
package health

// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package backend provides the HTTP client for the chat backend.
//
// The backend exposes two endpoints:
//
//   - POST /chat   body {"message": "..."}, answers {"response": "..."} or {"error": "..."}
//   - GET  /health any 2xx means healthy
//
// # Key Types
//
//   - Client: HTTP client for both endpoints
//   - ClientError: typed failure with an ErrorType for handling
//
// # Usage
//
//	client := backend.NewClient()
//	reply, err := client.Chat(ctx, "What is Ethereum?")
//	if backend.IsBackendError(err) {
//	    // the server answered with an "error" field
//	}
package backend

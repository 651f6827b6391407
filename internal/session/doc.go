// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package session provides the conversation controller.
//
// The Controller owns the message history of one run and enforces that at
// most one chat request is outstanding. It knows nothing about terminals;
// adapters feed it input and render what it hands back.
//
// # Key Types
//
//   - Controller: conversation state plus the Idle/Pending submission machine
//   - Exchange: the single request created by an accepted submission
//   - Settlement: the outcome of an exchange, used as a render instruction
//
// # Usage
//
//	ctrl := session.New(client, session.Options{Logger: &logger})
//	if ex := ctrl.Submit(input); ex != nil {
//	    s := ex.Resolve(ctx)
//	    fmt.Println(s.Reply.Text())
//	}
//
// # Lifecycle
//
// Submit appends the user message and moves the controller to Pending.
// Resolve issues the request, appends the bot message (the reply, or
// ApologyText on any failure) and always returns the controller to Idle.
// Every Exchange returned by Submit must be resolved.
package session

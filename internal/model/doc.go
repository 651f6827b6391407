// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the data structures for conversations and messages.
//
// # Key Types
//
//   - Message: one turn authored by the user or the bot; immutable once created
//   - Conversation: append-only ordered sequence of messages for one run
//   - Role: message author enumeration (user, bot)
//
// # Usage
//
//	conv := model.NewConversation()
//	conv.Append(model.NewMessage(model.RoleUser, "What is Ethereum?"))
//	for _, msg := range conv.Messages() {
//	    fmt.Println(msg.Clock(), msg.Role().DisplayName(), msg.Text())
//	}
package model

// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package session

import (
	"context"
	"sync"
	"time"

	"github.com/jeranaias/coinchat/internal/model"
)

// Exchange is the one request created by an accepted submission.
type Exchange struct {
	id   string
	ctrl *Controller
	user model.Message

	once   sync.Once
	result Settlement
}

// ID returns the exchange identifier used in logs.
func (e *Exchange) ID() string { return e.id }

// UserMessage returns the message that opened the exchange.
func (e *Exchange) UserMessage() model.Message { return e.user }

// Resolve issues the request and blocks until it settles.
// Only the first call sends; later calls return the same Settlement.
func (e *Exchange) Resolve(ctx context.Context) Settlement {
	e.once.Do(func() {
		e.result = e.ctrl.settle(ctx, e)
	})
	return e.result
}

// Settlement is the outcome of an exchange.
type Settlement struct {
	ExchangeID string
	User       model.Message
	Reply      model.Message
	Err        error // diagnostic detail; never shown as message text
	Elapsed    time.Duration
}

// Failed reports whether the reply is the apology rather than a backend answer.
func (s Settlement) Failed() bool {
	return s.Err != nil
}

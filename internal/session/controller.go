// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package session

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/jeranaias/coinchat/internal/backend"
	"github.com/jeranaias/coinchat/internal/model"
)

// ApologyText is the bot message shown for every failed exchange.
const ApologyText = "I apologize, but I encountered an error processing your request. Please try again."

// ErrNoSender is reported when a controller was built without a Sender.
var ErrNoSender = errors.New("no chat sender configured")

// =============================================================================
// STATE
// =============================================================================

// State is the submission state of the controller.
type State int

const (
	StateIdle    State = iota // Ready for input
	StatePending              // One request in flight
)

// String returns the state name.
func (s State) String() string {
	if s == StatePending {
		return "pending"
	}
	return "idle"
}

// =============================================================================
// COLLABORATORS
// =============================================================================

// Sender delivers one message to the chat backend and returns the reply.
// *backend.Client implements it.
type Sender interface {
	Chat(ctx context.Context, message string) (string, error)
}

// Options configure a Controller.
type Options struct {
	// Logger receives failure details hidden from the user. Nil disables logging.
	Logger *zerolog.Logger

	// Now overrides the clock used for message timestamps.
	Now func() time.Time

	// OnAppend is called after every message is appended, outside the lock.
	OnAppend func(model.Message)
}

// =============================================================================
// CONTROLLER
// =============================================================================

// Controller owns the conversation and the Idle -> Pending -> Idle machine.
// All methods are safe for concurrent use.
type Controller struct {
	mu    sync.Mutex
	conv  *model.Conversation
	state State

	sender   Sender
	log      zerolog.Logger
	now      func() time.Time
	onAppend func(model.Message)
}

// New creates a controller that sends through sender.
func New(sender Sender, opts Options) *Controller {
	logger := zerolog.Nop()
	if opts.Logger != nil {
		logger = *opts.Logger
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}

	conv := model.NewConversation()
	return &Controller{
		conv:     conv,
		sender:   sender,
		log:      logger.With().Str("component", "session").Str("conversation", conv.ID).Logger(),
		now:      now,
		onAppend: opts.OnAppend,
	}
}

// Submit accepts user input.
//
// It returns nil without touching the conversation when the trimmed text is
// empty or a request is already pending. Otherwise the user message is
// appended, the controller becomes Pending, and the returned Exchange must
// be resolved to issue the request.
func (c *Controller) Submit(text string) *Exchange {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return nil
	}

	c.mu.Lock()
	if c.state == StatePending {
		c.mu.Unlock()
		c.log.Debug().Msg("submission ignored while a request is pending")
		return nil
	}
	msg := model.NewMessageAt(model.RoleUser, trimmed, c.now())
	c.conv.Append(msg)
	c.state = StatePending
	c.mu.Unlock()

	ex := &Exchange{
		id:   "ex_" + uuid.NewString(),
		ctrl: c,
		user: msg,
	}
	c.log.Debug().Str("exchange", ex.id).Int("length", len(trimmed)).Msg("submitted")
	c.notify(msg)
	return ex
}

// State returns the current submission state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Pending reports whether a request is in flight.
func (c *Controller) Pending() bool {
	return c.State() == StatePending
}

// Messages returns the conversation in creation order.
func (c *Controller) Messages() []model.Message {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conv.Messages()
}

// Len returns the number of messages in the conversation.
func (c *Controller) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conv.Len()
}

// LastReply returns the most recent bot message.
func (c *Controller) LastReply() (model.Message, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conv.LastOf(model.RoleBot)
}

// ConversationID returns the identifier used to correlate log lines.
func (c *Controller) ConversationID() string {
	return c.conv.ID
}

// =============================================================================
// SETTLEMENT
// =============================================================================

func (c *Controller) settle(ctx context.Context, ex *Exchange) Settlement {
	defer c.release()

	start := time.Now()
	reply, err := c.send(ctx, ex.user.Text())
	elapsed := time.Since(start)

	text := reply
	if err != nil {
		text = ApologyText
		c.log.Error().
			Err(err).
			Str("exchange", ex.id).
			Str("kind", backend.Kind(err)).
			Int("status", backend.StatusCode(err)).
			Dur("elapsed", elapsed).
			Msg("chat request failed")
	} else {
		c.log.Info().
			Str("exchange", ex.id).
			Int("reply_length", len(reply)).
			Dur("elapsed", elapsed).
			Msg("chat request settled")
	}

	msg := model.NewMessageAt(model.RoleBot, text, c.now())
	c.mu.Lock()
	c.conv.Append(msg)
	c.mu.Unlock()
	c.notify(msg)

	return Settlement{
		ExchangeID: ex.id,
		User:       ex.user,
		Reply:      msg,
		Err:        err,
		Elapsed:    elapsed,
	}
}

// send calls the sender, turning a panic into an ordinary failure.
func (c *Controller) send(ctx context.Context, text string) (reply string, err error) {
	if c.sender == nil {
		return "", ErrNoSender
	}
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("chat sender panicked: %v", r)
		}
	}()
	return c.sender.Chat(ctx, text)
}

func (c *Controller) release() {
	c.mu.Lock()
	c.state = StateIdle
	c.mu.Unlock()
}

// notify runs the OnAppend hook. A panicking hook is logged and swallowed so
// the settlement still completes.
func (c *Controller) notify(msg model.Message) {
	if c.onAppend == nil {
		return
	}
	defer func() {
		if r := recover(); r != nil {
			c.log.Error().
				Str("message", msg.ID()).
				Interface("panic", r).
				Msg("append hook panicked")
		}
	}()
	c.onAppend(msg)
}

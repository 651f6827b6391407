// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package session

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/coinchat/internal/backend"
	"github.com/jeranaias/coinchat/internal/model"
)

// =============================================================================
// TEST DOUBLES
// =============================================================================

// stubSender answers from a function and counts calls.
type stubSender struct {
	calls atomic.Int32
	fn    func(ctx context.Context, message string) (string, error)
}

func (s *stubSender) Chat(ctx context.Context, message string) (string, error) {
	s.calls.Add(1)
	return s.fn(ctx, message)
}

func replyWith(text string) *stubSender {
	return &stubSender{fn: func(context.Context, string) (string, error) { return text, nil }}
}

func failWith(err error) *stubSender {
	return &stubSender{fn: func(context.Context, string) (string, error) { return "", err }}
}

// gatedSender blocks until release is closed.
func gatedSender(release <-chan struct{}, reply string) *stubSender {
	return &stubSender{fn: func(ctx context.Context, _ string) (string, error) {
		<-release
		return reply, nil
	}}
}

func texts(msgs []model.Message) []string {
	out := make([]string, len(msgs))
	for i, m := range msgs {
		out[i] = m.Role().String() + ":" + m.Text()
	}
	return out
}

// =============================================================================
// SUBMIT TESTS
// =============================================================================

func TestSubmit_IgnoresBlankInput(t *testing.T) {
	sender := replyWith("unused")
	ctrl := New(sender, Options{})

	for _, in := range []string{"", " ", "\t\n", "   \r\n  "} {
		if ex := ctrl.Submit(in); ex != nil {
			t.Errorf("Submit(%q) returned an exchange, want nil", in)
		}
	}

	if ctrl.Len() != 0 {
		t.Errorf("Len() = %d, want 0", ctrl.Len())
	}
	if ctrl.State() != StateIdle {
		t.Errorf("State() = %v, want idle", ctrl.State())
	}
	if sender.calls.Load() != 0 {
		t.Errorf("sender called %d times, want 0", sender.calls.Load())
	}
}

func TestSubmit_AppendsTrimmedUserMessageBeforeResponse(t *testing.T) {
	release := make(chan struct{})
	ctrl := New(gatedSender(release, "hi"), Options{})

	ex := ctrl.Submit("  hello \n")
	require.NotNil(t, ex)

	msgs := ctrl.Messages()
	require.Len(t, msgs, 1)
	assert.Equal(t, model.RoleUser, msgs[0].Role())
	assert.Equal(t, "hello", msgs[0].Text())
	assert.Equal(t, msgs[0].ID(), ex.UserMessage().ID())
	assert.True(t, ctrl.Pending())

	done := make(chan Settlement)
	go func() { done <- ex.Resolve(context.Background()) }()

	// Still one message while the request is in flight.
	assert.Equal(t, 1, ctrl.Len())

	close(release)
	s := <-done
	assert.NoError(t, s.Err)
	assert.Equal(t, StateIdle, ctrl.State())
}

func TestSubmit_IgnoredWhilePending(t *testing.T) {
	release := make(chan struct{})
	sender := gatedSender(release, "ok")
	ctrl := New(sender, Options{})

	ex := ctrl.Submit("first")
	require.NotNil(t, ex)

	if again := ctrl.Submit("second"); again != nil {
		t.Fatal("Submit while pending returned an exchange, want nil")
	}
	if ctrl.Len() != 1 {
		t.Errorf("Len() = %d, want 1", ctrl.Len())
	}

	close(release)
	ex.Resolve(context.Background())

	if sender.calls.Load() != 1 {
		t.Errorf("sender called %d times, want 1", sender.calls.Load())
	}
}

func TestSubmit_CarriesMessageToSender(t *testing.T) {
	var got string
	sender := &stubSender{fn: func(_ context.Context, message string) (string, error) {
		got = message
		return "ok", nil
	}}
	ctrl := New(sender, Options{})

	ctrl.Submit("  price of btc?  ").Resolve(context.Background())

	if got != "price of btc?" {
		t.Errorf("sender received %q, want trimmed text", got)
	}
}

// =============================================================================
// SETTLEMENT TESTS
// =============================================================================

func TestResolve_Success(t *testing.T) {
	ctrl := New(replyWith("hi"), Options{})

	s := ctrl.Submit("hello").Resolve(context.Background())

	assert.False(t, s.Failed())
	assert.Equal(t, "hi", s.Reply.Text())
	assert.Equal(t, model.RoleBot, s.Reply.Role())
	assert.Equal(t, []string{"user:hello", "bot:hi"}, texts(ctrl.Messages()))
	assert.Equal(t, StateIdle, ctrl.State())
}

func TestResolve_FailuresShowApology(t *testing.T) {
	tests := []struct {
		name   string
		sender Sender
	}{
		{"transport failure", failWith(backend.ErrUnreachable)},
		{"backend error field", failWith(&backend.ClientError{Type: backend.ErrTypeBackend, Message: "quota exceeded"})},
		{"status 500", failWith(&backend.ClientError{Type: backend.ErrTypeStatus, StatusCode: 500, Message: "chat request failed: 500"})},
		{"panicking sender", &stubSender{fn: func(context.Context, string) (string, error) { panic("boom") }}},
		{"nil sender", nil},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := New(tc.sender, Options{})

			s := ctrl.Submit("x").Resolve(context.Background())

			require.Error(t, s.Err)
			assert.Equal(t, ApologyText, s.Reply.Text())
			assert.Equal(t, []string{"user:x", "bot:" + ApologyText}, texts(ctrl.Messages()))
			assert.Equal(t, StateIdle, ctrl.State())

			// A new submission is accepted after any settlement.
			assert.NotNil(t, ctrl.Submit("again"))
		})
	}
}

func TestResolve_DetailNeverShownButLogged(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf)
	ctrl := New(failWith(errors.New("secret stack trace")), Options{Logger: &logger})

	s := ctrl.Submit("x").Resolve(context.Background())

	for _, msg := range ctrl.Messages() {
		if strings.Contains(msg.Text(), "secret") {
			t.Errorf("failure detail leaked into message %q", msg.Text())
		}
	}
	if !strings.Contains(s.Err.Error(), "secret stack trace") {
		t.Errorf("Settlement.Err = %v, want detail preserved", s.Err)
	}
	if !strings.Contains(buf.String(), "secret stack trace") {
		t.Errorf("log = %q, want failure detail", buf.String())
	}
	if !strings.Contains(buf.String(), s.ExchangeID) {
		t.Errorf("log = %q, want exchange id %q", buf.String(), s.ExchangeID)
	}
}

func TestResolve_Idempotent(t *testing.T) {
	sender := replyWith("once")
	ctrl := New(sender, Options{})

	ex := ctrl.Submit("q")
	first := ex.Resolve(context.Background())
	second := ex.Resolve(context.Background())

	assert.Equal(t, first.Reply.ID(), second.Reply.ID())
	assert.EqualValues(t, 1, sender.calls.Load())
	assert.Equal(t, 2, ctrl.Len())
}

func TestResolve_UsesInjectedClock(t *testing.T) {
	at := time.Date(2025, 1, 2, 15, 4, 0, 0, time.UTC)
	ctrl := New(replyWith("hi"), Options{Now: func() time.Time { return at }})

	s := ctrl.Submit("hello").Resolve(context.Background())

	assert.Equal(t, at, s.User.Timestamp())
	assert.Equal(t, at, s.Reply.Timestamp())
}

func TestOnAppend_SeesEveryMessageInOrder(t *testing.T) {
	var seen []string
	ctrl := New(replyWith("hi"), Options{
		OnAppend: func(m model.Message) { seen = append(seen, m.Role().String()+":"+m.Text()) },
	})

	ctrl.Submit("hello").Resolve(context.Background())

	assert.Equal(t, []string{"user:hello", "bot:hi"}, seen)
}

func TestOnAppend_PanicDoesNotBreakSettlement(t *testing.T) {
	ctrl := New(replyWith("hi"), Options{
		OnAppend: func(m model.Message) {
			if m.Role() == model.RoleBot {
				panic("hook failed")
			}
		},
	})

	ex := ctrl.Submit("hello")
	require.NotNil(t, ex)

	var s Settlement
	require.NotPanics(t, func() { s = ex.Resolve(context.Background()) })
	assert.Equal(t, "hi", s.Reply.Text())
	assert.Equal(t, ex.ID(), s.ExchangeID)

	again := ex.Resolve(context.Background())
	assert.Equal(t, s.Reply.ID(), again.Reply.ID())

	assert.Equal(t, StateIdle, ctrl.State())
	assert.NotNil(t, ctrl.Submit("next"), "controller should accept input after settling")
}

func TestLastReply(t *testing.T) {
	ctrl := New(replyWith("answer"), Options{})
	if _, ok := ctrl.LastReply(); ok {
		t.Error("LastReply() on empty conversation should report false")
	}

	ctrl.Submit("q").Resolve(context.Background())

	reply, ok := ctrl.LastReply()
	if !ok || reply.Text() != "answer" {
		t.Errorf("LastReply() = %q, %v; want answer, true", reply.Text(), ok)
	}
}

// =============================================================================
// END-TO-END SCENARIOS
// =============================================================================

func TestScenario_AgainstHTTPBackend(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		handler http.HandlerFunc
		want    []string
	}{
		{
			name:  "hello gets hi",
			input: "hello",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(`{"response":"hi"}`))
			},
			want: []string{"user:hello", "bot:hi"},
		},
		{
			name:  "status 500 gets apology",
			input: "x",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusInternalServerError)
				w.Write([]byte(`{"error":"gemini exploded"}`))
			},
			want: []string{"user:x", "bot:" + ApologyText},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			srv := httptest.NewServer(tc.handler)
			defer srv.Close()

			client := backend.NewClientWithConfig(&backend.ClientConfig{BaseURL: srv.URL})
			ctrl := New(client, Options{})

			ctrl.Submit(tc.input).Resolve(context.Background())

			assert.Equal(t, tc.want, texts(ctrl.Messages()))
			assert.Equal(t, StateIdle, ctrl.State())
		})
	}
}

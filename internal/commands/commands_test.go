// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package commands

import (
	"errors"
	"testing"
)

// =============================================================================
// PARSER TESTS
// =============================================================================

func TestParse(t *testing.T) {
	p := NewParser(NewRegistry())

	tests := []struct {
		input   string
		action  Action
		isCmd   bool
		args    []string
		wantErr bool
	}{
		{"/help", ActionHelp, true, nil, false},
		{"  /h  ", ActionHelp, true, nil, false},
		{"/HELP", ActionHelp, true, nil, false},
		{"/quick 2", ActionQuick, true, []string{"2"}, false},
		{"/quick", ActionQuick, true, nil, true},
		{"/copy", ActionCopy, true, nil, false},
		{"/status", ActionStatus, true, nil, false},
		{"/exit", ActionQuit, true, nil, false},
		{"what is /help?", 0, false, nil, false},
		{"/btc price", 0, false, nil, false},
		{"hello", 0, false, nil, false},
		{"", 0, false, nil, false},
	}

	for _, tc := range tests {
		t.Run(tc.input, func(t *testing.T) {
			res := p.Parse(tc.input)
			if res.IsCommand() != tc.isCmd {
				t.Fatalf("Parse(%q).IsCommand() = %v, want %v", tc.input, res.IsCommand(), tc.isCmd)
			}
			if !tc.isCmd {
				return
			}
			if res.Command.Action != tc.action {
				t.Errorf("Parse(%q) action = %v, want %v", tc.input, res.Command.Action, tc.action)
			}
			if len(res.Args) != len(tc.args) {
				t.Errorf("Parse(%q) args = %v, want %v", tc.input, res.Args, tc.args)
			}
			if (res.Error != nil) != tc.wantErr {
				t.Errorf("Parse(%q) error = %v, wantErr %v", tc.input, res.Error, tc.wantErr)
			}
		})
	}
}

func TestParse_UsageError(t *testing.T) {
	res := NewParser(nil).Parse("/quick")

	var usage *UsageError
	if !errors.As(res.Error, &usage) {
		t.Fatalf("Parse(/quick).Error = %v, want *UsageError", res.Error)
	}
	if got := usage.Error(); got != "usage: /quick <n>" {
		t.Errorf("UsageError = %q", got)
	}
}

func TestSplitCommandLine(t *testing.T) {
	tests := []struct {
		input string
		want  []string
	}{
		{"/quick 1", []string{"/quick", "1"}},
		{`/quick "2"`, []string{"/quick", "2"}},
		{"/a  'b c'  d", []string{"/a", "b c", "d"}},
		{"", nil},
	}

	for _, tc := range tests {
		got := splitCommandLine(tc.input)
		if len(got) != len(tc.want) {
			t.Errorf("splitCommandLine(%q) = %q, want %q", tc.input, got, tc.want)
			continue
		}
		for i := range got {
			if got[i] != tc.want[i] {
				t.Errorf("splitCommandLine(%q)[%d] = %q, want %q", tc.input, i, got[i], tc.want[i])
			}
		}
	}
}

func TestQuickIndex(t *testing.T) {
	tests := []struct {
		args    []string
		count   int
		want    int
		wantErr bool
	}{
		{[]string{"1"}, 4, 0, false},
		{[]string{"4"}, 4, 3, false},
		{[]string{"5"}, 4, 0, true},
		{[]string{"0"}, 4, 0, true},
		{[]string{"x"}, 4, 0, true},
		{nil, 4, 0, true},
	}

	for _, tc := range tests {
		got, err := QuickIndex(tc.args, tc.count)
		if (err != nil) != tc.wantErr {
			t.Errorf("QuickIndex(%v, %d) error = %v, wantErr %v", tc.args, tc.count, err, tc.wantErr)
			continue
		}
		if err != nil && !errors.Is(err, ErrQuickIndex) {
			t.Errorf("QuickIndex error = %v, want ErrQuickIndex", err)
		}
		if got != tc.want {
			t.Errorf("QuickIndex(%v, %d) = %d, want %d", tc.args, tc.count, got, tc.want)
		}
	}
}

// =============================================================================
// REGISTRY AND COMPLETION TESTS
// =============================================================================

func TestRegistry_AllKeepsOrder(t *testing.T) {
	r := NewRegistry()
	want := []string{"/help", "/quick", "/copy", "/status", "/quit"}

	all := r.All()
	if len(all) != len(want) {
		t.Fatalf("All() returned %d commands, want %d", len(all), len(want))
	}
	for i, cmd := range all {
		if cmd.Name != want[i] {
			t.Errorf("All()[%d] = %s, want %s", i, cmd.Name, want[i])
		}
	}
}

func TestRegistry_RegisterReplaces(t *testing.T) {
	r := NewRegistry()
	r.Register(&Command{Name: "/copy", Description: "replaced", Action: ActionCopy})

	if got := r.Get("/copy").Description; got != "replaced" {
		t.Errorf("Get(/copy).Description = %q, want replaced", got)
	}
	if n := len(r.All()); n != 5 {
		t.Errorf("len(All()) = %d, want 5", n)
	}
}

func TestCompleter(t *testing.T) {
	c := NewCompleter(NewRegistry())

	tests := []struct {
		input string
		want  []string
	}{
		{"/q", []string{"/quit", "/quick"}},
		{"/co", []string{"/copy"}},
		{"/", []string{"/help", "/copy", "/quit", "/quick", "/status"}},
		{"/quick 1", nil},
		{"hello", nil},
	}

	for _, tc := range tests {
		got := c.Complete(tc.input)
		if len(got) != len(tc.want) {
			t.Errorf("Complete(%q) = %v, want %v", tc.input, got, tc.want)
			continue
		}
		for i := range got {
			if got[i] != tc.want[i] {
				t.Errorf("Complete(%q) = %v, want %v", tc.input, got, tc.want)
				break
			}
		}
	}
}

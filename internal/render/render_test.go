// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package render

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
)

// =============================================================================
// HTML FORMAT TESTS
// =============================================================================

func TestFormat(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain", "hello", "hello"},
		{"bold", "**a**", "<strong>a</strong>"},
		{"italic", "*a*", "<em>a</em>"},
		{"code", "`a`", "<code>a</code>"},
		{"line break", "line1\nline2", "line1<br>line2"},
		{
			"link",
			"see https://example.com now",
			`see <a href="https://example.com" target="_blank" rel="noopener noreferrer">https://example.com</a> now`,
		},
		{"two bolds non-greedy", "**a** and **b**", "<strong>a</strong> and <strong>b</strong>"},
		{"bold then italic", "**a** *b*", "<strong>a</strong> <em>b</em>"},
		// Triple markers: the bold stage takes the inner star as content and
		// the italic stage pairs the leftover stars across the closing tag.
		{"triple markers", "***a***", "<strong><em>a</strong></em>"},
		{"unclosed bold", "**a", "<em></em>a"},
		{"bold does not cross lines", "**a\nb**", "<em></em>a<br>b<em></em>"},
		{"empty", "", ""},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := Format(tc.in); got != tc.want {
				t.Errorf("Format(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}

func TestFormat_LinkAbsorbsFollowingBreak(t *testing.T) {
	// The link stage runs after line breaks become <br>, and <br> is not
	// whitespace, so the URL runs on into the next line.
	got := Format("https://a.io\nnext")
	want := `<a href="https://a.io<br>next" target="_blank" rel="noopener noreferrer">https://a.io<br>next</a>`
	if got != want {
		t.Errorf("Format() = %q, want %q", got, want)
	}
}

func TestFormat_LinkStopsAtUnicodeSpace(t *testing.T) {
	got := Format("https://a.io\u00a0rest")
	if !strings.Contains(got, `href="https://a.io"`) {
		t.Errorf("Format() = %q, want link to end before no-break space", got)
	}
}

func TestFormat_DoesNotEscapeByDefault(t *testing.T) {
	in := `<img src=x onerror="alert(1)">`
	if got := Format(in); got != in {
		t.Errorf("Format(%q) = %q, want input passed through", in, got)
	}
}

func TestRenderer_EscapeHTML(t *testing.T) {
	r := New(Options{EscapeHTML: true})
	if !r.Escaping() {
		t.Fatal("Escaping() = false, want true")
	}

	got := r.Format("<b>**hi**</b> & `x<y`")
	want := "&lt;b&gt;<strong>hi</strong>&lt;/b&gt; &amp; <code>x&lt;y</code>"
	if got != want {
		t.Errorf("Format() = %q, want %q", got, want)
	}
}

func TestRenderer_EscapeHTMLKeepsLinks(t *testing.T) {
	r := New(Options{EscapeHTML: true})
	got := r.Format("https://example.com/?a=1&b=2")
	if !strings.Contains(got, `href="https://example.com/?a=1&amp;b=2"`) {
		t.Errorf("Format() = %q, want escaped ampersand inside link", got)
	}
}

func TestStage_String(t *testing.T) {
	want := []string{"bold", "italic", "code", "linebreak", "link"}
	for i, s := range Stages {
		if s.String() != want[i] {
			t.Errorf("Stages[%d].String() = %q, want %q", i, s.String(), want[i])
		}
	}
}

// =============================================================================
// TERMINAL FORMAT TESTS
// =============================================================================

func unstyled() TerminalStyles {
	return TerminalStyles{
		Bold:   lipgloss.NewStyle(),
		Italic: lipgloss.NewStyle(),
		Code:   lipgloss.NewStyle(),
		Link:   lipgloss.NewStyle(),
	}
}

func TestTerminal_StripsMarkers(t *testing.T) {
	term := NewTerminal(unstyled(), false)

	tests := []struct {
		in   string
		want string
	}{
		{"**a**", "a"},
		{"*a*", "a"},
		{"`a`", "a"},
		{"line1\nline2", "line1\nline2"},
		{"see https://example.com now", "see https://example.com now"},
	}

	for _, tc := range tests {
		if got := term.Format(tc.in); got != tc.want {
			t.Errorf("Format(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestTerminal_Hyperlinks(t *testing.T) {
	term := NewTerminal(unstyled(), true)
	got := term.Format("see https://example.com now")

	if !strings.Contains(got, "\x1b]8;;https://example.com") {
		t.Errorf("Format() = %q, want OSC-8 hyperlink", got)
	}
	if !strings.HasPrefix(got, "see ") || !strings.HasSuffix(got, " now") {
		t.Errorf("Format() = %q, surrounding text changed", got)
	}
}

func TestTerminal_LinkStopsAtNewline(t *testing.T) {
	term := NewTerminal(unstyled(), true)
	got := term.Format("https://a.io\nnext")

	if !strings.Contains(got, "\x1b]8;;https://a.io\x1b") {
		t.Errorf("Format() = %q, want link target to end at newline", got)
	}
	if !strings.HasSuffix(got, "\nnext") {
		t.Errorf("Format() = %q, want following line untouched", got)
	}
}

// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package render

import (
	"html"
	"regexp"
)

// =============================================================================
// STAGES
// =============================================================================

// Stage identifies one substitution pass.
type Stage int

const (
	StageBold Stage = iota
	StageItalic
	StageCode
	StageLineBreak
	StageLink
)

// String returns the stage name.
func (s Stage) String() string {
	switch s {
	case StageBold:
		return "bold"
	case StageItalic:
		return "italic"
	case StageCode:
		return "code"
	case StageLineBreak:
		return "linebreak"
	case StageLink:
		return "link"
	default:
		return "unknown"
	}
}

// Stages lists every stage in application order.
var Stages = []Stage{StageBold, StageItalic, StageCode, StageLineBreak, StageLink}

var (
	boldPattern      = regexp.MustCompile(`\*\*(.*?)\*\*`)
	italicPattern    = regexp.MustCompile(`\*(.*?)\*`)
	codePattern      = regexp.MustCompile("`(.*?)`")
	lineBreakPattern = regexp.MustCompile(`\n`)

	// URLs run until whitespace, including the Unicode spaces a browser's \s covers.
	linkPattern = regexp.MustCompile(`https?://[^\s\v\p{Z}\x{FEFF}]+`)
)

// htmlTemplates holds the replacement for each stage, in Stages order.
var htmlTemplates = [...]string{
	StageBold:      `<strong>${1}</strong>`,
	StageItalic:    `<em>${1}</em>`,
	StageCode:      `<code>${1}</code>`,
	StageLineBreak: `<br>`,
	StageLink:      `<a href="${0}" target="_blank" rel="noopener noreferrer">${0}</a>`,
}

// =============================================================================
// RENDERER
// =============================================================================

// Options control HTML rendering.
type Options struct {
	// EscapeHTML escapes & < > " ' before the first stage.
	EscapeHTML bool
}

// Renderer formats message text as HTML.
// A Renderer holds no mutable state and is safe for concurrent use.
type Renderer struct {
	opts Options
}

// New creates a Renderer with the given options.
func New(opts Options) *Renderer {
	return &Renderer{opts: opts}
}

var defaultRenderer = New(Options{})

// Format converts raw text to HTML markup without escaping the input.
func Format(text string) string {
	return defaultRenderer.Format(text)
}

// Escaping reports whether the renderer escapes raw markup characters.
func (r *Renderer) Escaping() bool {
	return r.opts.EscapeHTML
}

// Format converts raw text to HTML markup.
func (r *Renderer) Format(text string) string {
	if r.opts.EscapeHTML {
		text = html.EscapeString(text)
	}
	text = boldPattern.ReplaceAllString(text, htmlTemplates[StageBold])
	text = italicPattern.ReplaceAllString(text, htmlTemplates[StageItalic])
	text = codePattern.ReplaceAllString(text, htmlTemplates[StageCode])
	text = lineBreakPattern.ReplaceAllLiteralString(text, htmlTemplates[StageLineBreak])
	text = linkPattern.ReplaceAllString(text, htmlTemplates[StageLink])
	return text
}

// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package render turns raw message text into display markup.
//
// Five substitution stages run in a fixed order, each over the previous
// stage's output: bold (**x**), italic (*x*), inline code (`x`), line
// breaks, and autolinked http(s) URLs. Matching is non-greedy and
// left-to-right per stage; overlapping markers are not corrected.
//
// Format produces HTML. Terminal applies the same stages with lipgloss
// styles and OSC-8 hyperlinks for display in a terminal.
//
// Format does not escape markup-significant characters in the input, so
// text containing raw HTML passes through. Use New(Options{EscapeHTML: true})
// when the output is going to be interpreted by a browser.
package render

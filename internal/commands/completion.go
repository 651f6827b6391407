// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package commands

import (
	"sort"
	"strings"
	"unicode"
)

// =============================================================================
// COMPLETER
// =============================================================================

// Completer suggests command names for a partially typed "/word".
type Completer struct {
	registry *Registry
}

// NewCompleter creates a new completer with the given registry.
func NewCompleter(registry *Registry) *Completer {
	return &Completer{registry: registry}
}

// Complete returns visible command names that start with the partial
// command in input, shortest first. Input past the command name yields nil.
func (c *Completer) Complete(input string) []string {
	partial := partialCommand(input)
	if partial == "" || c.registry == nil {
		return nil
	}

	var out []string
	for _, cmd := range c.registry.All() {
		if strings.HasPrefix(cmd.Name, partial) {
			out = append(out, cmd.Name)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return len(out[i]) < len(out[j]) })
	return out
}

// partialCommand returns the command being typed, or "" once a space follows it.
func partialCommand(input string) string {
	input = strings.TrimLeftFunc(input, unicode.IsSpace)
	if !strings.HasPrefix(input, "/") || strings.IndexFunc(input, unicode.IsSpace) >= 0 {
		return ""
	}
	return strings.ToLower(input)
}

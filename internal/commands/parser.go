// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package commands

import (
	"errors"
	"strconv"
	"strings"
	"unicode"
)

// ErrQuickIndex is returned for a /quick argument that names no prompt.
var ErrQuickIndex = errors.New("no such quick prompt")

// =============================================================================
// PARSE RESULT
// =============================================================================

// ParseResult contains the result of parsing user input.
type ParseResult struct {
	// Command is the matched command, nil for ordinary messages
	Command *Command

	// CommandName is the raw first token when the input starts with /
	CommandName string

	// Args are the parsed arguments
	Args []string

	// RawInput is the trimmed input
	RawInput string

	// Error is set when a known command is missing arguments
	Error error
}

// IsCommand reports whether the input names a registered command.
func (r ParseResult) IsCommand() bool {
	return r.Command != nil
}

// =============================================================================
// PARSER
// =============================================================================

// Parser handles parsing of slash commands and their arguments.
type Parser struct {
	registry *Registry
}

// NewParser creates a new parser with the given registry.
func NewParser(registry *Registry) *Parser {
	if registry == nil {
		registry = NewRegistry()
	}
	return &Parser{registry: registry}
}

// Registry returns the registry the parser resolves against.
func (p *Parser) Registry() *Registry {
	return p.registry
}

// Parse parses user input. Unknown "/words" leave Command nil so the text
// can be sent as a message.
func (p *Parser) Parse(input string) ParseResult {
	input = strings.TrimSpace(input)
	result := ParseResult{RawInput: input}

	if !strings.HasPrefix(input, "/") {
		return result
	}

	parts := splitCommandLine(input)
	if len(parts) == 0 {
		return result
	}
	result.CommandName = strings.ToLower(parts[0])
	result.Args = parts[1:]
	result.Command = p.registry.Get(result.CommandName)

	if result.Command != nil && len(result.Args) < result.Command.MinArgs {
		result.Error = &UsageError{Command: result.Command}
	}
	return result
}

// QuickIndex converts the first argument of /quick into a zero-based index
// into a list of count prompts.
func QuickIndex(args []string, count int) (int, error) {
	if len(args) == 0 {
		return 0, ErrQuickIndex
	}
	n, err := strconv.Atoi(args[0])
	if err != nil || n < 1 || n > count {
		return 0, ErrQuickIndex
	}
	return n - 1, nil
}

// =============================================================================
// ARGUMENT PARSING
// =============================================================================

// splitCommandLine splits a command line into tokens, respecting quotes.
func splitCommandLine(input string) []string {
	var tokens []string
	var current strings.Builder
	var inSingleQuote, inDoubleQuote bool

	for _, char := range input {
		switch {
		case char == '\'' && !inDoubleQuote:
			inSingleQuote = !inSingleQuote
		case char == '"' && !inSingleQuote:
			inDoubleQuote = !inDoubleQuote
		case unicode.IsSpace(char) && !inSingleQuote && !inDoubleQuote:
			if current.Len() > 0 {
				tokens = append(tokens, current.String())
				current.Reset()
			}
		default:
			current.WriteRune(char)
		}
	}

	if current.Len() > 0 {
		tokens = append(tokens, current.String())
	}
	return tokens
}

// =============================================================================
// USAGE ERROR
// =============================================================================

// UsageError reports a command invoked without its required arguments.
type UsageError struct {
	Command *Command
}

func (e *UsageError) Error() string {
	return "usage: " + e.Command.Display()
}

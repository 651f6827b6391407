// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package commands

// =============================================================================
// COMMAND DEFINITION
// =============================================================================

// Action identifies what a command asks the front end to do.
type Action int

const (
	ActionHelp Action = iota
	ActionQuick
	ActionCopy
	ActionStatus
	ActionQuit
)

// String returns the action name for logs.
func (a Action) String() string {
	switch a {
	case ActionHelp:
		return "help"
	case ActionQuick:
		return "quick"
	case ActionCopy:
		return "copy"
	case ActionStatus:
		return "status"
	case ActionQuit:
		return "quit"
	default:
		return "unknown"
	}
}

// Command represents a slash command.
type Command struct {
	// Name is the primary command name (e.g., "/help")
	Name string

	// Aliases are alternative names (e.g., "/h", "/?")
	Aliases []string

	// Description is shown in help and completion
	Description string

	// Usage shows argument syntax (e.g., "/quick <n>")
	Usage string

	// Action is what the front end should do
	Action Action

	// MinArgs is the number of required arguments
	MinArgs int

	// Hidden commands don't appear in help
	Hidden bool
}

// Display returns Usage, or Name when the command takes no arguments.
func (c *Command) Display() string {
	if c.Usage != "" {
		return c.Usage
	}
	return c.Name
}

// =============================================================================
// COMMAND REGISTRY
// =============================================================================

// Registry holds all registered commands in registration order.
type Registry struct {
	ordered  []*Command
	commands map[string]*Command
	aliases  map[string]*Command
}

// NewRegistry creates a new command registry with all built-in commands.
func NewRegistry() *Registry {
	r := &Registry{
		commands: make(map[string]*Command),
		aliases:  make(map[string]*Command),
	}
	r.registerBuiltins()
	return r
}

// Register adds a command to the registry, replacing one with the same name.
func (r *Registry) Register(cmd *Command) {
	if _, exists := r.commands[cmd.Name]; !exists {
		r.ordered = append(r.ordered, cmd)
	} else {
		for i, c := range r.ordered {
			if c.Name == cmd.Name {
				r.ordered[i] = cmd
			}
		}
	}
	r.commands[cmd.Name] = cmd
	for _, alias := range cmd.Aliases {
		r.aliases[alias] = cmd
	}
}

// Get retrieves a command by name or alias.
func (r *Registry) Get(name string) *Command {
	if cmd, ok := r.commands[name]; ok {
		return cmd
	}
	if cmd, ok := r.aliases[name]; ok {
		return cmd
	}
	return nil
}

// All returns the visible commands in registration order.
func (r *Registry) All() []*Command {
	cmds := make([]*Command, 0, len(r.ordered))
	for _, cmd := range r.ordered {
		if !cmd.Hidden {
			cmds = append(cmds, cmd)
		}
	}
	return cmds
}

// =============================================================================
// BUILT-IN COMMANDS
// =============================================================================

func (r *Registry) registerBuiltins() {
	r.Register(&Command{
		Name:        "/help",
		Aliases:     []string{"/h", "/?"},
		Description: "Show keys, commands and quick prompts",
		Action:      ActionHelp,
	})

	r.Register(&Command{
		Name:        "/quick",
		Aliases:     []string{"/q"},
		Description: "Send quick prompt number n",
		Usage:       "/quick <n>",
		Action:      ActionQuick,
		MinArgs:     1,
	})

	r.Register(&Command{
		Name:        "/copy",
		Aliases:     []string{"/c"},
		Description: "Copy the last reply to the clipboard",
		Action:      ActionCopy,
	})

	r.Register(&Command{
		Name:        "/status",
		Aliases:     []string{"/s"},
		Description: "Check the backend connection now",
		Action:      ActionStatus,
	})

	r.Register(&Command{
		Name:        "/quit",
		Aliases:     []string{"/exit"},
		Description: "Exit coinchat",
		Action:      ActionQuit,
	})
}

// Package commands provides the externally invocable actions of vercelctl.
//
// Each action implements Command and is registered under a stable identifier
// in a Registry, so any front end (the CLI, a REPL, an editor bridge) can
// dispatch it by name.
package commands

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
)

// ErrUnknownCommand is returned when no command is registered under an id.
var ErrUnknownCommand = errors.New("unknown command")

// Command represents an action that can be invoked by identifier.
type Command interface {
	// Execute runs the command with the given arguments
	Execute(ctx context.Context, args []string) error

	// Usage returns the usage string for the command
	Usage() string

	// Description returns a brief description of what the command does
	Description() string

	// Aliases returns alternative names for this command
	Aliases() []string
}

// Registry manages available commands.
type Registry struct {
	mu       sync.RWMutex
	commands map[string]Command
	aliases  map[string]string // alias -> primary command id
}

// NewRegistry creates a new command registry.
func NewRegistry() *Registry {
	return &Registry{
		commands: make(map[string]Command),
		aliases:  make(map[string]string),
	}
}

// Register adds a command to the registry.
func (r *Registry) Register(id string, cmd Command) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.commands[id] = cmd
	for _, alias := range cmd.Aliases() {
		r.aliases[alias] = id
	}
}

// Get retrieves a command by id or alias.
func (r *Registry) Get(id string) (Command, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if cmd, exists := r.commands[id]; exists {
		return cmd, true
	}
	if primary, exists := r.aliases[id]; exists {
		if cmd, exists := r.commands[primary]; exists {
			return cmd, true
		}
	}
	return nil, false
}

// List returns all registered command ids, sorted.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.commands))
	for name := range r.commands {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Execute runs the command registered under id.
func (r *Registry) Execute(ctx context.Context, id string, args []string) error {
	cmd, ok := r.Get(id)
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownCommand, id)
	}
	return cmd.Execute(ctx, args)
}

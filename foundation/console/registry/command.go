// File: command.go
// Title: Console Command Metadata
// Description: Command descriptors and the immutable name set handed to the
//              lexer for command recognition.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-17
// Modified: 2026-10-17
//
// Change History:
// - 2026-10-17 v0.1.0: Initial implementation

package registry

import (
	"strings"
	"unicode"

	mdwerror "github.com/msto63/hcmd/foundation/core/error"
)

// MaxArity is the largest accepted argument bound
const MaxArity = 255

// Command describes a registered console command
type Command struct {
	Name    string
	MinArgs int
	MaxArgs int
	Usage   string
}

// Accepts reports whether n arguments are within the command's bounds
func (c Command) Accepts(n int) bool {
	return n >= c.MinArgs && n <= c.MaxArgs
}

// Validate checks name and arity bounds
func (c Command) Validate() error {
	if c.Name == "" || strings.IndexFunc(c.Name, unicode.IsSpace) >= 0 || strings.ContainsRune(c.Name, ';') {
		return mdwerror.New("command name must be a non-empty word").
			WithCode(mdwerror.CodeInvalidCommand).
			WithOperation("registry.Register").
			WithDetail("name", c.Name)
	}

	if c.MinArgs < 0 || c.MinArgs > c.MaxArgs || c.MaxArgs > MaxArity {
		return mdwerror.Newf("invalid arity [%d, %d] for command %q", c.MinArgs, c.MaxArgs, c.Name).
			WithCode(mdwerror.CodeInvalidCommand).
			WithOperation("registry.Register").
			WithDetails(map[string]interface{}{
				"name": c.Name,
				"min":  c.MinArgs,
				"max":  c.MaxArgs,
			})
	}

	return nil
}

// Variable is a stored variable or alias
type Variable struct {
	Name  string
	Value string
}

// NameSet is an immutable snapshot of command names. The registry replaces
// its snapshot whenever the command list changes, so a NameSet obtained
// earlier never observes later registrations.
type NameSet struct {
	names map[string]struct{}
}

func newNameSet(commands []Command) NameSet {
	names := make(map[string]struct{}, len(commands))
	for _, c := range commands {
		names[c.Name] = struct{}{}
	}
	return NameSet{names: names}
}

// HasCommand reports whether name is in the set
func (s NameSet) HasCommand(name string) bool {
	_, ok := s.names[name]
	return ok
}

// Len returns the number of names in the set
func (s NameSet) Len() int {
	return len(s.names)
}

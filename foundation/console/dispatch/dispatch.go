// File: dispatch.go
// Title: Console Dispatch Table
// Description: Maps command names to handlers and invokes them with the
//              invocation context prepared by the parser.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-17
// Modified: 2026-10-17
//
// Change History:
// - 2026-10-17 v0.1.0: Initial implementation

// Package dispatch binds console command names to their handlers.
package dispatch

import (
	"github.com/msto63/hcmd/foundation/console/output"
	"github.com/msto63/hcmd/foundation/console/registry"
	mdwerror "github.com/msto63/hcmd/foundation/core/error"
	"github.com/msto63/hcmd/foundation/core/log"
)

// Context is passed to a handler for one invocation. Args already passed
// arity validation.
type Context struct {
	Registry *registry.Registry
	Command  registry.Command
	Args     []string
	Output   output.Sink
	Logger   *log.Logger
}

// Arg returns the i-th argument or "" when out of range
func (c *Context) Arg(i int) string {
	if i < 0 || i >= len(c.Args) {
		return ""
	}
	return c.Args[i]
}

// Print writes text to the output sink
func (c *Context) Print(text string) {
	c.Output.Print(text)
}

// Println writes text and a newline to the output sink
func (c *Context) Println(text string) {
	c.Output.Println(text)
}

// Handler executes a console command
type Handler interface {
	Invoke(ctx *Context) error
}

// HandlerFunc adapts a function to Handler
type HandlerFunc func(ctx *Context) error

// Invoke implements Handler
func (f HandlerFunc) Invoke(ctx *Context) error {
	return f(ctx)
}

// Table maps command names to handlers
type Table struct {
	handlers map[string]Handler
}

// NewTable creates an empty dispatch table
func NewTable() *Table {
	return &Table{handlers: make(map[string]Handler)}
}

// Register binds name to h, replacing any previous binding
func (t *Table) Register(name string, h Handler) {
	t.handlers[name] = h
}

// Lookup returns the handler bound to name
func (t *Table) Lookup(name string) (Handler, bool) {
	h, ok := t.handlers[name]
	return h, ok && h != nil
}

// Remove unbinds name and reports whether it was bound
func (t *Table) Remove(name string) bool {
	if _, ok := t.handlers[name]; !ok {
		return false
	}
	delete(t.handlers, name)
	return true
}

// Len returns the number of bound handlers
func (t *Table) Len() int {
	return len(t.handlers)
}

// Invoke runs the handler bound to ctx.Command.Name
func (t *Table) Invoke(ctx *Context) error {
	h, ok := t.Lookup(ctx.Command.Name)
	if !ok {
		return mdwerror.Newf("no handler bound to command \"%s\"", ctx.Command.Name).
			WithCode(mdwerror.CodeNotFound).
			WithOperation("dispatch.Invoke").
			WithDetail("name", ctx.Command.Name)
	}
	return h.Invoke(ctx)
}
